package httptransport

import (
	"log/slog"
	"net/http"

	"notifygate/internal/apiresponse"
	"notifygate/internal/audit"
	"notifygate/internal/metrics"
	"notifygate/pkg/requestcontext"
)

// reporter implements pipeline.Observer: every terminal kind feeds the
// outcome counter, and denials plus infrastructure failures additionally go
// to the log and the security audit trail.
type reporter struct {
	log     *slog.Logger
	metrics *metrics.Metrics
	audit   *audit.Recorder
}

func newReporter(log *slog.Logger, m *metrics.Metrics, rec *audit.Recorder) *reporter {
	return &reporter{log: log, metrics: m, audit: rec}
}

func (rep *reporter) Observe(r *http.Request, kind apiresponse.Kind, detail string) {
	rep.metrics.IncrementOutcome(string(kind))

	switch kind {
	case apiresponse.KindForbiddenAnonymousUser,
		apiresponse.KindForbiddenNoAuthorizationGroups,
		apiresponse.KindForbiddenNotAuthorized,
		apiresponse.KindErrorQuery,
		apiresponse.KindErrorInternal:
	default:
		return
	}

	ctx := r.Context()
	rep.log.WarnContext(ctx, "request rejected",
		"kind", kind,
		"method", r.Method,
		"path", r.URL.Path,
		"detail", detail,
		"request_id", requestcontext.RequestID(ctx),
	)
	if rep.audit != nil {
		rep.audit.Record(audit.EventFromRequest(r, string(kind), detail))
	}
}
