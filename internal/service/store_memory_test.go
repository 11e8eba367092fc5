package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notifygate/internal/domain"
	"notifygate/pkg/platform/sentinel"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()

	t.Run("missing record", func(t *testing.T) {
		store := NewMemoryStore()
		_, err := store.BySubscription(ctx, "sub-missing")
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	t.Run("upsert then read back", func(t *testing.T) {
		store := NewMemoryStore()
		rec := domain.ServiceRecord{
			ServiceID:            "sub-1",
			ServiceName:          "Alerts",
			OrganizationName:     "City of Testopoli",
			DepartmentName:       "Public Works",
			AuthorizedRecipients: domain.NewRecipientSet("RSSMRA85T10A562S"),
		}
		require.NoError(t, store.Upsert(ctx, rec))

		bySub, err := store.BySubscription(ctx, "sub-1")
		require.NoError(t, err)
		assert.Equal(t, "Alerts", bySub.ServiceName)

		byID, err := store.ByServiceID(ctx, "sub-1")
		require.NoError(t, err)
		assert.Equal(t, bySub.ServiceID, byID.ServiceID)
	})

	t.Run("upsert replaces the previous record", func(t *testing.T) {
		store := NewMemoryStore()
		require.NoError(t, store.Upsert(ctx, domain.ServiceRecord{ServiceID: "sub-1", ServiceName: "Old"}))
		require.NoError(t, store.Upsert(ctx, domain.ServiceRecord{ServiceID: "sub-1", ServiceName: "New"}))

		rec, err := store.BySubscription(ctx, "sub-1")
		require.NoError(t, err)
		assert.Equal(t, "New", rec.ServiceName)
	})

	t.Run("reads return independent copies", func(t *testing.T) {
		store := NewMemoryStore()
		require.NoError(t, store.Upsert(ctx, domain.ServiceRecord{
			ServiceID:            "sub-1",
			AuthorizedRecipients: domain.NewRecipientSet("RSSMRA85T10A562S"),
		}))

		first, err := store.BySubscription(ctx, "sub-1")
		require.NoError(t, err)
		delete(first.AuthorizedRecipients, domain.FiscalCode("RSSMRA85T10A562S"))

		second, err := store.BySubscription(ctx, "sub-1")
		require.NoError(t, err)
		assert.Len(t, second.AuthorizedRecipients, 1)
	})
}
