package pipeline

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"notifygate/internal/apiresponse"
	"notifygate/internal/domain"
	"notifygate/pkg/option"
	"notifygate/pkg/platform/sentinel"
	"notifygate/pkg/result"
)

//go:generate mockgen -source=userattributes.go -destination=mocks/servicelookup_mocks.go -package=mocks ServiceLookup

// ServiceLookup resolves the service record registered for a subscription.
// Absence is reported with sentinel.ErrNotFound; any other error is an
// infrastructure failure. Implementations must be safe for concurrent use
// across overlapping requests.
type ServiceLookup interface {
	BySubscription(ctx context.Context, subscriptionID string) (domain.ServiceRecord, error)
}

// AzureUserAttributes resolves the caller's registered service record through
// the injected lookup collaborator.
//
// The gateway always injects x-user-email and x-subscription-id, so an empty
// value is a contract violation reported as an internal error, not a client
// failure; email is checked before the subscription id and the collaborator
// is never invoked when either check fails. A missing registration is a valid
// outcome carried as an absent Service, distinct from a lookup failure which
// is reported as a query error.
func AzureUserAttributes(services ServiceLookup) Middleware[domain.UserAttributes] {
	return func(r *http.Request) result.Result[apiresponse.ErrorResponse, domain.UserAttributes] {
		email := strings.TrimSpace(r.Header.Get(HeaderUserEmail))
		if email == "" {
			return result.Fail[apiresponse.ErrorResponse, domain.UserAttributes](
				apiresponse.InternalError("Missing or empty " + HeaderUserEmail + " header"))
		}
		subscriptionID := strings.TrimSpace(r.Header.Get(HeaderSubscriptionID))
		if subscriptionID == "" {
			return result.Fail[apiresponse.ErrorResponse, domain.UserAttributes](
				apiresponse.InternalError("Missing or empty " + HeaderSubscriptionID + " header"))
		}

		record, err := services.BySubscription(r.Context(), subscriptionID)
		if err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return result.Ok[apiresponse.ErrorResponse](domain.UserAttributes{
					Email:   email,
					Service: option.None[domain.ServiceRecord](),
				})
			}
			return result.Fail[apiresponse.ErrorResponse, domain.UserAttributes](
				apiresponse.QueryError("Error while looking up the service for the subscription"))
		}

		return result.Ok[apiresponse.ErrorResponse](domain.UserAttributes{
			Email:   email,
			Service: option.Some(record.Clone()),
		})
	}
}
