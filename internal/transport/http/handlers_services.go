package httptransport

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/netip"

	"github.com/go-chi/chi/v5"

	"notifygate/internal/apiresponse"
	"notifygate/internal/domain"
	"notifygate/internal/pipeline"
	"notifygate/internal/service"
	"notifygate/pkg/iputil"
	"notifygate/pkg/platform/sentinel"
	"notifygate/pkg/requestcontext"
	"notifygate/pkg/result"
)

// ServicesHandler exposes read and upsert access to the service registry.
type ServicesHandler struct {
	services service.Store
	log      *slog.Logger
}

// NewServicesHandler constructs the handler with its dependencies.
func NewServicesHandler(services service.Store, log *slog.Logger) *ServicesHandler {
	return &ServicesHandler{services: services, log: log}
}

func decodeServiceID() pipeline.Middleware[string] {
	return func(r *http.Request) result.Result[apiresponse.ErrorResponse, string] {
		id := chi.URLParam(r, "service_id")
		if id == "" {
			return result.Fail[apiresponse.ErrorResponse, string](
				apiresponse.ValidationError("Invalid service id", "The service id must not be empty"))
		}
		return result.Ok[apiresponse.ErrorResponse](id)
	}
}

func decodeServicePayload() pipeline.Middleware[domain.ServiceRecord] {
	return func(r *http.Request) result.Result[apiresponse.ErrorResponse, domain.ServiceRecord] {
		var payload domain.ServicePayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			return result.Fail[apiresponse.ErrorResponse, domain.ServiceRecord](
				apiresponse.ValidationError("Invalid request body", "The request body is not valid JSON"))
		}
		if id := chi.URLParam(r, "service_id"); id != "" && id != payload.ServiceID {
			return result.Fail[apiresponse.ErrorResponse, domain.ServiceRecord](
				apiresponse.ValidationError("Service id mismatch", "The path service id does not match the payload"))
		}
		record, err := domain.ServiceFromPayload(payload)
		if err != nil {
			return result.Fail[apiresponse.ErrorResponse, domain.ServiceRecord](
				apiresponse.ValidationError("Invalid service payload", err.Error()))
		}
		return result.Ok[apiresponse.ErrorResponse](record)
	}
}

// Get handles GET /api/v1/services/{service_id}.
func (h *ServicesHandler) Get(obs pipeline.Observer) http.HandlerFunc {
	auth := pipeline.AzureAPIAuth(domain.NewGroupSet(domain.GroupAPIServiceRead))
	guarded := pipeline.SourceIPGuard4(h.get,
		func(_ domain.Identity, ip netip.Addr, attrs domain.UserAttributes, _ string) (netip.Addr, iputil.CIDRSet) {
			return ip, serviceCIDRs(attrs)
		})
	return pipeline.Handler4(obs,
		auth,
		pipeline.ClientIP(),
		pipeline.AzureUserAttributes(h.services),
		decodeServiceID(),
		guarded,
	)
}

func (h *ServicesHandler) get(ctx context.Context, _ domain.Identity, _ netip.Addr, _ domain.UserAttributes, serviceID string) result.Result[apiresponse.ErrorResponse, apiresponse.Success] {
	record, err := h.services.ByServiceID(ctx, serviceID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return result.Fail[apiresponse.ErrorResponse, apiresponse.Success](
				apiresponse.NotFoundError("The requested service was not found"))
		}
		h.log.ErrorContext(ctx, "failed to load service",
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		return result.Fail[apiresponse.ErrorResponse, apiresponse.Success](
			apiresponse.QueryError("Error while retrieving the service"))
	}
	return result.Ok[apiresponse.ErrorResponse](apiresponse.OKJSON(record.ToPayload()))
}

// Upsert handles PUT /api/v1/services/{service_id}.
func (h *ServicesHandler) Upsert(obs pipeline.Observer) http.HandlerFunc {
	auth := pipeline.AzureAPIAuth(domain.NewGroupSet(domain.GroupAPIServiceWrite))
	guarded := pipeline.SourceIPGuard4(h.upsert,
		func(_ domain.Identity, ip netip.Addr, attrs domain.UserAttributes, _ domain.ServiceRecord) (netip.Addr, iputil.CIDRSet) {
			return ip, serviceCIDRs(attrs)
		})
	return pipeline.Handler4(obs,
		auth,
		pipeline.ClientIP(),
		pipeline.AzureUserAttributes(h.services),
		decodeServicePayload(),
		guarded,
	)
}

func (h *ServicesHandler) upsert(ctx context.Context, _ domain.Identity, _ netip.Addr, _ domain.UserAttributes, record domain.ServiceRecord) result.Result[apiresponse.ErrorResponse, apiresponse.Success] {
	if err := h.services.Upsert(ctx, record); err != nil {
		h.log.ErrorContext(ctx, "failed to upsert service",
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		return result.Fail[apiresponse.ErrorResponse, apiresponse.Success](
			apiresponse.QueryError("Error while storing the service"))
	}
	return result.Ok[apiresponse.ErrorResponse](apiresponse.OKJSON(record.ToPayload()))
}
