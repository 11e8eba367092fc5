//go:build integration

package service

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"

	"notifygate/internal/domain"
	"notifygate/pkg/platform/sentinel"
)

func newRedisClient(t *testing.T) *redis.Client {
	t.Helper()
	ctx := context.Background()

	container, err := tcredis.Run(ctx, "redis:7-alpine")
	require.NoError(t, err, "failed to start redis container")
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	url, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	opts, err := redis.ParseURL(url)
	require.NoError(t, err)

	client := redis.NewClient(opts)
	require.NoError(t, client.Ping(ctx).Err())
	t.Cleanup(func() { _ = client.Close() })
	return client
}

// countingStore wraps the memory store to count backend reads, exposing
// whether the cache actually served a request.
type countingStore struct {
	*MemoryStore
	reads int
}

func (s *countingStore) BySubscription(ctx context.Context, id string) (domain.ServiceRecord, error) {
	s.reads++
	return s.MemoryStore.BySubscription(ctx, id)
}

func (s *countingStore) ByServiceID(ctx context.Context, id string) (domain.ServiceRecord, error) {
	s.reads++
	return s.MemoryStore.ByServiceID(ctx, id)
}

func TestCachedStoreIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client := newRedisClient(t)

	record, err := domain.ServiceFromPayload(domain.ServicePayload{
		ServiceID:        "sub-1",
		ServiceName:      "Road maintenance alerts",
		OrganizationName: "City of Testopoli",
		DepartmentName:   "Public Works",
		AuthorizedCIDRs:  []string{"10.0.0.0/24"},
	})
	require.NoError(t, err)

	t.Run("second read is served from the cache", func(t *testing.T) {
		require.NoError(t, client.FlushAll(ctx).Err())
		inner := &countingStore{MemoryStore: NewMemoryStore()}
		store := NewCachedStore(inner, client, time.Minute)

		require.NoError(t, store.Upsert(ctx, record))

		first, err := store.BySubscription(ctx, "sub-1")
		require.NoError(t, err)
		readsAfterFirst := inner.reads

		second, err := store.BySubscription(ctx, "sub-1")
		require.NoError(t, err)
		assert.Equal(t, first, second)
		assert.Equal(t, readsAfterFirst, inner.reads, "cache hit must not touch the backend")
	})

	t.Run("upsert invalidates the cached entry", func(t *testing.T) {
		require.NoError(t, client.FlushAll(ctx).Err())
		inner := &countingStore{MemoryStore: NewMemoryStore()}
		store := NewCachedStore(inner, client, time.Minute)

		require.NoError(t, store.Upsert(ctx, record))
		_, err := store.BySubscription(ctx, "sub-1")
		require.NoError(t, err)

		updated := record.Clone()
		updated.ServiceName = "Renamed service"
		require.NoError(t, store.Upsert(ctx, updated))

		got, err := store.BySubscription(ctx, "sub-1")
		require.NoError(t, err)
		assert.Equal(t, "Renamed service", got.ServiceName)
	})

	t.Run("not-found passes through", func(t *testing.T) {
		require.NoError(t, client.FlushAll(ctx).Err())
		store := NewCachedStore(NewMemoryStore(), client, time.Minute)

		_, err := store.BySubscription(ctx, "sub-missing")
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	t.Run("undecodable cache entries fall back to the backend", func(t *testing.T) {
		require.NoError(t, client.FlushAll(ctx).Err())
		inner := &countingStore{MemoryStore: NewMemoryStore()}
		store := NewCachedStore(inner, client, time.Minute)
		require.NoError(t, store.Upsert(ctx, record))

		require.NoError(t, client.Set(ctx, "service:sub-1", "not-json", time.Minute).Err())

		got, err := store.BySubscription(ctx, "sub-1")
		require.NoError(t, err)
		assert.Equal(t, "Road maintenance alerts", got.ServiceName)
	})
}
