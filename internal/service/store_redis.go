package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"notifygate/internal/domain"
)

// CachedStore is a read-through Redis decorator around another Store. Cache
// failures degrade to the inner store so Redis never becomes a hard
// dependency of request handling; only found records are cached.
type CachedStore struct {
	inner Store
	rdb   *redis.Client
	ttl   time.Duration
}

// NewCachedStore wraps inner with a Redis cache using the given TTL.
func NewCachedStore(inner Store, rdb *redis.Client, ttl time.Duration) *CachedStore {
	return &CachedStore{inner: inner, rdb: rdb, ttl: ttl}
}

func cacheKey(id string) string { return "service:" + id }

func (s *CachedStore) BySubscription(ctx context.Context, subscriptionID string) (domain.ServiceRecord, error) {
	return s.cached(ctx, subscriptionID, s.inner.BySubscription)
}

func (s *CachedStore) ByServiceID(ctx context.Context, serviceID string) (domain.ServiceRecord, error) {
	return s.cached(ctx, serviceID, s.inner.ByServiceID)
}

func (s *CachedStore) cached(ctx context.Context, id string, fetch func(context.Context, string) (domain.ServiceRecord, error)) (domain.ServiceRecord, error) {
	if raw, err := s.rdb.Get(ctx, cacheKey(id)).Bytes(); err == nil {
		var payload domain.ServicePayload
		if err := json.Unmarshal(raw, &payload); err == nil {
			if record, err := domain.ServiceFromPayload(payload); err == nil {
				return record, nil
			}
		}
		// Undecodable entry: fall through to the source of truth.
		s.rdb.Del(ctx, cacheKey(id))
	}

	record, err := fetch(ctx, id)
	if err != nil {
		return domain.ServiceRecord{}, err
	}
	if raw, err := json.Marshal(record.ToPayload()); err == nil {
		s.rdb.Set(ctx, cacheKey(id), raw, s.ttl)
	}
	return record, nil
}

func (s *CachedStore) Upsert(ctx context.Context, record domain.ServiceRecord) error {
	if err := s.inner.Upsert(ctx, record); err != nil {
		return err
	}
	s.rdb.Del(ctx, cacheKey(record.ServiceID))
	return nil
}
