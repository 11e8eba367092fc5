package pipeline

import (
	"net/http"
	"net/netip"

	"notifygate/internal/apiresponse"
	"notifygate/pkg/iputil"
	"notifygate/pkg/result"
)

// ClientIP extracts the caller's network address from forwarding metadata.
// It always succeeds: a request without usable metadata resolves to the
// loopback sentinel so the source-IP gate still has an address to test.
func ClientIP() Middleware[netip.Addr] {
	return func(r *http.Request) result.Result[apiresponse.ErrorResponse, netip.Addr] {
		return result.Ok[apiresponse.ErrorResponse](iputil.FromRequest(r))
	}
}
