package domain

import "notifygate/pkg/option"

// Identity is the authenticated, group-scoped caller identity derived from
// the gateway-injected headers. It is immutable after construction and built
// exactly once per request; it always carries at least one recognized group.
type Identity struct {
	Groups         GroupSet
	UserID         string
	SubscriptionID string
}

// UserAttributes carries the caller's registered service record, if any.
// Service is absent when the subscription has no matching registration,
// which is a valid outcome rather than an error.
type UserAttributes struct {
	Email   string
	Service option.Option[ServiceRecord]
}
