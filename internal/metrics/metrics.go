// Package metrics provides Prometheus observability for the authorization
// pipeline.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics aggregates the pipeline instruments. A nil *Metrics is valid and
// records nothing, so tests can pass nil.
type Metrics struct {
	// Terminal response kinds per request.
	AuthzOutcomes *prometheus.CounterVec

	// End-to-end request latency per matched route.
	RequestDuration *prometheus.HistogramVec

	// Audit events dropped because the queue was full.
	AuditDropped prometheus.Counter
}

// New creates a Metrics instance with all instruments registered on the
// default registerer.
func New() *Metrics {
	return &Metrics{
		AuthzOutcomes: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "notifygate_authz_outcomes_total",
			Help: "Total terminal response kinds produced by the authorization pipeline",
		}, []string{"kind"}),

		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "notifygate_request_duration_seconds",
			Help:    "Duration of request handling by matched route",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"route"}),

		AuditDropped: promauto.NewCounter(prometheus.CounterOpts{
			Name: "notifygate_audit_dropped_total",
			Help: "Total audit events dropped due to a full queue",
		}),
	}
}

// IncrementOutcome records a terminal response kind.
func (m *Metrics) IncrementOutcome(kind string) {
	if m != nil {
		m.AuthzOutcomes.WithLabelValues(kind).Inc()
	}
}

// ObserveRequestDuration records the handling time of one request.
func (m *Metrics) ObserveRequestDuration(route string, d time.Duration) {
	if m != nil {
		m.RequestDuration.WithLabelValues(route).Observe(d.Seconds())
	}
}

// IncrementAuditDropped records one dropped audit event.
func (m *Metrics) IncrementAuditDropped() {
	if m != nil {
		m.AuditDropped.Inc()
	}
}
