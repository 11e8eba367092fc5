// Package service provides the registry of API consumer service records and
// its storage backends. The request pipeline consumes it as the lookup
// collaborator that maps a subscription onto the caller's registered service.
package service

import (
	"context"

	"notifygate/internal/domain"
)

// Store persists service records. Not-found is reported with
// sentinel.ErrNotFound (optionally wrapped) so callers can treat absence as a
// valid value rather than a query failure. Implementations must be safe for
// concurrent use.
//
// Subscription ids are provisioned to carry the service id of the registered
// service, so BySubscription and ByServiceID share one key space.
type Store interface {
	BySubscription(ctx context.Context, subscriptionID string) (domain.ServiceRecord, error)
	ByServiceID(ctx context.Context, serviceID string) (domain.ServiceRecord, error)
	Upsert(ctx context.Context, record domain.ServiceRecord) error
}
