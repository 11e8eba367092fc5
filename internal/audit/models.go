// Package audit records denied and failed authorization outcomes as
// structured security events, decoupled from request handling through a
// bounded queue.
package audit

import (
	"net/http"
	"time"

	"github.com/mssola/useragent"

	"notifygate/pkg/iputil"
	"notifygate/pkg/requestcontext"
)

// Event captures one authorization outcome worth a trace. Keep it flat and
// JSON-friendly so sinks can serialize it without schema knowledge.
type Event struct {
	Time           time.Time `json:"time"`
	Kind           string    `json:"kind"`
	Method         string    `json:"method"`
	Path           string    `json:"path"`
	ClientIP       string    `json:"client_ip,omitempty"`
	UserID         string    `json:"user_id,omitempty"`
	SubscriptionID string    `json:"subscription_id,omitempty"`
	RequestID      string    `json:"request_id,omitempty"`
	Detail         string    `json:"detail,omitempty"`
	UserAgent      UserAgent `json:"user_agent"`
}

// UserAgent is the parsed caller user agent, kept alongside the raw value so
// analysts can filter on browser family or bot traffic.
type UserAgent struct {
	Raw     string `json:"raw,omitempty"`
	Browser string `json:"browser,omitempty"`
	Version string `json:"version,omitempty"`
	OS      string `json:"os,omitempty"`
	Bot     bool   `json:"bot,omitempty"`
}

// EventFromRequest builds an event from the request metadata. The identity
// headers are read verbatim; they were already validated (or found wanting)
// by the pipeline that produced the outcome.
func EventFromRequest(r *http.Request, kind, detail string) Event {
	e := Event{
		Time:           time.Now().UTC(),
		Kind:           kind,
		Method:         r.Method,
		Path:           r.URL.Path,
		ClientIP:       iputil.FromRequest(r).String(),
		UserID:         r.Header.Get("x-user-id"),
		SubscriptionID: r.Header.Get("x-subscription-id"),
		RequestID:      requestcontext.RequestID(r.Context()),
		Detail:         detail,
	}
	if raw := r.Header.Get("User-Agent"); raw != "" {
		ua := useragent.New(raw)
		name, version := ua.Browser()
		e.UserAgent = UserAgent{
			Raw:     raw,
			Browser: name,
			Version: version,
			OS:      ua.OS(),
			Bot:     ua.Bot(),
		}
	}
	return e
}
