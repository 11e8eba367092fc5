// Package requestcontext provides HTTP-independent context accessors for
// request-scoped values. Values are set by transport middleware and consumed
// by handlers, sinks, and loggers without pulling in net/http.
//
// Usage in middleware (set values):
//
//	ctx = requestcontext.WithRequestID(ctx, requestID)
//
// Usage in handlers and sinks (read values):
//
//	requestID := requestcontext.RequestID(ctx)
package requestcontext

import "context"

// Context key types (unexported for encapsulation).
type (
	requestIDKey struct{}
)

// Exported context keys for tests that need context.WithValue directly.
var (
	ContextKeyRequestID = requestIDKey{}
)

// RequestID retrieves the correlation ID assigned to the request.
// Returns the empty string if not set.
func RequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(ContextKeyRequestID).(string); ok {
		return requestID
	}
	return ""
}

// WithRequestID injects a correlation ID into the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ContextKeyRequestID, requestID)
}
