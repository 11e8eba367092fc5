package pipeline

import (
	"context"
	"net/netip"

	"notifygate/internal/apiresponse"
	"notifygate/pkg/iputil"
	"notifygate/pkg/result"
)

// SourceIPGuard3 wraps a fully resolved handler with the source-IP gate. The
// projector extracts the client address and the authorized ranges from the
// already validated arguments; an empty range set means no restriction. On a
// mismatch the wrapped handler is never invoked, so it has no partial side
// effects to roll back.
func SourceIPGuard3[A, B, C any](h HandlerFunc3[A, B, C], project func(a A, b B, c C) (netip.Addr, iputil.CIDRSet)) HandlerFunc3[A, B, C] {
	return func(ctx context.Context, a A, b B, c C) result.Result[apiresponse.ErrorResponse, apiresponse.Success] {
		ip, authorized := project(a, b, c)
		if f, blocked := checkSourceIP(ip, authorized); blocked {
			return result.Fail[apiresponse.ErrorResponse, apiresponse.Success](f)
		}
		return h(ctx, a, b, c)
	}
}

// SourceIPGuard4 is SourceIPGuard3 for four-argument handlers.
func SourceIPGuard4[A, B, C, D any](h HandlerFunc4[A, B, C, D], project func(a A, b B, c C, d D) (netip.Addr, iputil.CIDRSet)) HandlerFunc4[A, B, C, D] {
	return func(ctx context.Context, a A, b B, c C, d D) result.Result[apiresponse.ErrorResponse, apiresponse.Success] {
		ip, authorized := project(a, b, c, d)
		if f, blocked := checkSourceIP(ip, authorized); blocked {
			return result.Fail[apiresponse.ErrorResponse, apiresponse.Success](f)
		}
		return h(ctx, a, b, c, d)
	}
}

func checkSourceIP(ip netip.Addr, authorized iputil.CIDRSet) (apiresponse.ErrorResponse, bool) {
	if len(authorized) == 0 {
		return apiresponse.ErrorResponse{}, false
	}
	if authorized.Contains(ip) {
		return apiresponse.ErrorResponse{}, false
	}
	return apiresponse.ForbiddenNotAuthorized(
		"Request source IP " + ip.String() + " is not in the authorized range for this service"), true
}
