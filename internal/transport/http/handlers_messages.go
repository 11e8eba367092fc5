package httptransport

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/netip"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"notifygate/internal/apiresponse"
	"notifygate/internal/domain"
	"notifygate/internal/message"
	"notifygate/internal/pipeline"
	"notifygate/pkg/iputil"
	"notifygate/pkg/platform/sentinel"
	"notifygate/pkg/requestcontext"
	"notifygate/pkg/result"
)

// MessagesHandler exposes the notification submission and retrieval
// endpoints behind the full authorization pipeline.
type MessagesHandler struct {
	messages message.Store
	services pipeline.ServiceLookup
	log      *slog.Logger
}

// NewMessagesHandler constructs the handler with its dependencies.
func NewMessagesHandler(messages message.Store, services pipeline.ServiceLookup, log *slog.Logger) *MessagesHandler {
	return &MessagesHandler{messages: messages, services: services, log: log}
}

// CreateMessageRequest is the validated input of the create endpoint: the
// recipient from the path and the decoded body.
type CreateMessageRequest struct {
	Recipient domain.FiscalCode
	Content   message.MessageContent
}

// decodeCreateMessage validates the path recipient and the JSON body before
// any business logic runs.
func decodeCreateMessage() pipeline.Middleware[CreateMessageRequest] {
	return func(r *http.Request) result.Result[apiresponse.ErrorResponse, CreateMessageRequest] {
		recipient, err := domain.ParseFiscalCode(chi.URLParam(r, "fiscal_code"))
		if err != nil {
			return result.Fail[apiresponse.ErrorResponse, CreateMessageRequest](
				apiresponse.ValidationError("Invalid fiscal code", err.Error()))
		}
		var body struct {
			Content message.MessageContent `json:"content"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			return result.Fail[apiresponse.ErrorResponse, CreateMessageRequest](
				apiresponse.ValidationError("Invalid request body", "The request body is not valid JSON"))
		}
		if err := body.Content.Validate(); err != nil {
			return result.Fail[apiresponse.ErrorResponse, CreateMessageRequest](
				apiresponse.ValidationError("Invalid message content", err.Error()))
		}
		return result.Ok[apiresponse.ErrorResponse](CreateMessageRequest{
			Recipient: recipient,
			Content:   body.Content,
		})
	}
}

// MessageRef identifies one message of one recipient from the path.
type MessageRef struct {
	FiscalCode domain.FiscalCode
	ID         string
}

func decodeMessageRef() pipeline.Middleware[MessageRef] {
	return func(r *http.Request) result.Result[apiresponse.ErrorResponse, MessageRef] {
		fc, err := domain.ParseFiscalCode(chi.URLParam(r, "fiscal_code"))
		if err != nil {
			return result.Fail[apiresponse.ErrorResponse, MessageRef](
				apiresponse.ValidationError("Invalid fiscal code", err.Error()))
		}
		id := chi.URLParam(r, "id")
		if id == "" {
			return result.Fail[apiresponse.ErrorResponse, MessageRef](
				apiresponse.ValidationError("Invalid message id", "The message id must not be empty"))
		}
		return result.Ok[apiresponse.ErrorResponse](MessageRef{FiscalCode: fc, ID: id})
	}
}

// serviceCIDRs projects the authorized source ranges out of the resolved
// attributes for the source-IP gate. An unregistered subscription projects an
// empty set; the handler decides whether a service is required at all.
func serviceCIDRs(attrs domain.UserAttributes) iputil.CIDRSet {
	if svc, ok := attrs.Service.Get(); ok {
		return svc.AuthorizedCIDRs
	}
	return nil
}

// Create handles POST /api/v1/messages/{fiscal_code}.
func (h *MessagesHandler) Create(obs pipeline.Observer) http.HandlerFunc {
	auth := pipeline.AzureAPIAuth(domain.NewGroupSet(
		domain.GroupAPIMessageWrite,
		domain.GroupAPILimitedMessageWrite,
	))
	guarded := pipeline.SourceIPGuard4(h.create,
		func(_ domain.Identity, ip netip.Addr, attrs domain.UserAttributes, _ CreateMessageRequest) (netip.Addr, iputil.CIDRSet) {
			return ip, serviceCIDRs(attrs)
		})
	return pipeline.Handler4(obs,
		auth,
		pipeline.ClientIP(),
		pipeline.AzureUserAttributes(h.services),
		decodeCreateMessage(),
		guarded,
	)
}

func (h *MessagesHandler) create(ctx context.Context, identity domain.Identity, _ netip.Addr, attrs domain.UserAttributes, req CreateMessageRequest) result.Result[apiresponse.ErrorResponse, apiresponse.Success] {
	svc, ok := attrs.Service.Get()
	if !ok {
		return result.Fail[apiresponse.ErrorResponse, apiresponse.Success](
			apiresponse.ForbiddenNotAuthorized("No service is registered for this subscription"))
	}

	// Senders holding only the limited write scope may target only the
	// recipients enumerated on their service record.
	if !identity.Groups.Has(domain.GroupAPIMessageWrite) &&
		!svc.AuthorizedRecipients.Has(req.Recipient) {
		return result.Fail[apiresponse.ErrorResponse, apiresponse.Success](
			apiresponse.ForbiddenNotAuthorized("The recipient is not authorized for this sender"))
	}

	msg := message.Message{
		ID:              uuid.NewString(),
		FiscalCode:      req.Recipient,
		SenderServiceID: svc.ServiceID,
		Content:         req.Content,
		CreatedAt:       time.Now().UTC(),
	}
	if err := h.messages.Create(ctx, msg); err != nil {
		h.log.ErrorContext(ctx, "failed to store message",
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		return result.Fail[apiresponse.ErrorResponse, apiresponse.Success](
			apiresponse.QueryError("Error while storing the message"))
	}

	return result.Ok[apiresponse.ErrorResponse](apiresponse.CreatedJSON(map[string]string{"id": msg.ID}))
}

// Get handles GET /api/v1/messages/{fiscal_code}/{id}.
func (h *MessagesHandler) Get(obs pipeline.Observer) http.HandlerFunc {
	auth := pipeline.AzureAPIAuth(domain.NewGroupSet(domain.GroupAPIMessageRead))
	guarded := pipeline.SourceIPGuard4(h.get,
		func(_ domain.Identity, ip netip.Addr, attrs domain.UserAttributes, _ MessageRef) (netip.Addr, iputil.CIDRSet) {
			return ip, serviceCIDRs(attrs)
		})
	return pipeline.Handler4(obs,
		auth,
		pipeline.ClientIP(),
		pipeline.AzureUserAttributes(h.services),
		decodeMessageRef(),
		guarded,
	)
}

func (h *MessagesHandler) get(ctx context.Context, _ domain.Identity, _ netip.Addr, attrs domain.UserAttributes, ref MessageRef) result.Result[apiresponse.ErrorResponse, apiresponse.Success] {
	svc, ok := attrs.Service.Get()
	if !ok {
		return result.Fail[apiresponse.ErrorResponse, apiresponse.Success](
			apiresponse.ForbiddenNotAuthorized("No service is registered for this subscription"))
	}

	msg, err := h.messages.Get(ctx, ref.FiscalCode, ref.ID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return result.Fail[apiresponse.ErrorResponse, apiresponse.Success](
				apiresponse.NotFoundError("The requested message was not found"))
		}
		h.log.ErrorContext(ctx, "failed to load message",
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		return result.Fail[apiresponse.ErrorResponse, apiresponse.Success](
			apiresponse.QueryError("Error while retrieving the message"))
	}

	// A sender can only read back messages of its own service; anything
	// else looks like a missing message to avoid leaking existence.
	if msg.SenderServiceID != svc.ServiceID {
		return result.Fail[apiresponse.ErrorResponse, apiresponse.Success](
			apiresponse.NotFoundError("The requested message was not found"))
	}

	return result.Ok[apiresponse.ErrorResponse](apiresponse.OKJSON(msg))
}
