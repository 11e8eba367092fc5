package pipeline

import (
	"net/http"
	"strings"

	"notifygate/internal/apiresponse"
	"notifygate/internal/domain"
	"notifygate/pkg/result"
)

// Header names injected by the API management gateway fronting this service.
// Values are asserted by the gateway and trusted verbatim here.
const (
	HeaderUserID         = "x-user-id"
	HeaderSubscriptionID = "x-subscription-id"
	HeaderUserGroups     = "x-user-groups"
	HeaderUserEmail      = "x-user-email"
)

// AzureAPIAuth derives the caller identity from the gateway headers and
// authorizes it against the required group set chosen by the route.
//
// Check order is fixed: missing user or subscription id fails as an anonymous
// user before groups are even read; an empty or entirely unrecognized group
// header fails as no-authorization-groups; a parsed set disjoint from the
// required set fails as not-authorized. On success the identity carries the
// full parsed set, not just the intersection, so handlers can make
// finer-grained decisions (for example the limited message write scope).
func AzureAPIAuth(required domain.GroupSet) Middleware[domain.Identity] {
	return func(r *http.Request) result.Result[apiresponse.ErrorResponse, domain.Identity] {
		userID := strings.TrimSpace(r.Header.Get(HeaderUserID))
		subscriptionID := strings.TrimSpace(r.Header.Get(HeaderSubscriptionID))
		if userID == "" || subscriptionID == "" {
			return result.Fail[apiresponse.ErrorResponse, domain.Identity](
				apiresponse.ForbiddenAnonymousUser())
		}

		groups := domain.ParseGroups(r.Header.Get(HeaderUserGroups))
		if len(groups) == 0 {
			return result.Fail[apiresponse.ErrorResponse, domain.Identity](
				apiresponse.ForbiddenNoAuthorizationGroups())
		}
		if !groups.Intersects(required) {
			return result.Fail[apiresponse.ErrorResponse, domain.Identity](
				apiresponse.ForbiddenNotAuthorized("You do not have enough permission to complete the operation you requested"))
		}

		return result.Ok[apiresponse.ErrorResponse](domain.Identity{
			Groups:         groups,
			UserID:         userID,
			SubscriptionID: subscriptionID,
		})
	}
}
