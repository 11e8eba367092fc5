// Package httptransport wires the authorization pipeline and the business
// handlers onto the HTTP router. Handlers stay thin: every route runs the
// identity, client-IP and service-attributes middlewares, and the sensitive
// ones add the source-IP gate around the handler.
package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"notifygate/internal/audit"
	"notifygate/internal/message"
	"notifygate/internal/metrics"
	"notifygate/internal/service"
)

// Dependencies carries everything the router needs. All collaborators are
// injected; there is no ambient default instance.
type Dependencies struct {
	Logger   *slog.Logger
	Services service.Store
	Messages message.Store
	Metrics  *metrics.Metrics
	Audit    *audit.Recorder
}

// NewRouter mounts all public endpoints.
func NewRouter(deps Dependencies) http.Handler {
	obs := newReporter(deps.Logger, deps.Metrics, deps.Audit)

	messages := NewMessagesHandler(deps.Messages, deps.Services, deps.Logger)
	services := NewServicesHandler(deps.Services, deps.Logger)

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Duration(deps.Metrics))

	r.Get("/healthz", handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(api chi.Router) {
		api.Post("/messages/{fiscal_code}", messages.Create(obs))
		api.Get("/messages/{fiscal_code}/{id}", messages.Get(obs))
		api.Get("/services/{service_id}", services.Get(obs))
		api.Put("/services/{service_id}", services.Upsert(obs))
	})

	return r
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
