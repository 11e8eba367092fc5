// Package apiresponse defines the closed set of transport response kinds the
// request pipeline can produce, and writes them as HTTP responses. Failures
// serialize as application/problem+json with a machine-readable kind;
// successes as plain JSON.
package apiresponse

import (
	"encoding/json"
	"net/http"
)

// Kind tags a response so clients and observers can branch on it without
// parsing human-readable text.
type Kind string

const (
	KindSuccessJSON                    Kind = "SuccessJson"
	KindForbiddenAnonymousUser         Kind = "ForbiddenAnonymousUser"
	KindForbiddenNoAuthorizationGroups Kind = "ForbiddenNoAuthorizationGroups"
	KindForbiddenNotAuthorized         Kind = "ForbiddenNotAuthorized"
	KindErrorValidation                Kind = "ErrorValidation"
	KindErrorNotFound                  Kind = "ErrorNotFound"
	KindErrorQuery                     Kind = "ErrorQuery"
	KindErrorInternal                  Kind = "ErrorInternal"
)

// ErrorResponse is a terminal failure produced by a middleware, the source-IP
// gate, or a handler. It is a plain value; the pipeline propagates it instead
// of throwing.
type ErrorResponse struct {
	Kind   Kind
	Status int
	Title  string
	Detail string
}

// ForbiddenAnonymousUser reports a request that could not be associated to a
// caller because the gateway identity headers are missing or empty.
func ForbiddenAnonymousUser() ErrorResponse {
	return ErrorResponse{
		Kind:   KindForbiddenAnonymousUser,
		Status: http.StatusForbidden,
		Title:  "Anonymous user",
		Detail: "The request could not be associated to a user, missing userId or subscriptionId.",
	}
}

// ForbiddenNoAuthorizationGroups reports a caller whose credential carries no
// recognized capability group.
func ForbiddenNoAuthorizationGroups() ErrorResponse {
	return ErrorResponse{
		Kind:   KindForbiddenNoAuthorizationGroups,
		Status: http.StatusForbidden,
		Title:  "User has no valid scopes",
		Detail: "You do not have any valid scopes, you should ask the administrator or subscribe to the API.",
	}
}

// ForbiddenNotAuthorized reports a caller that is authenticated but not
// allowed to perform the operation.
func ForbiddenNotAuthorized(detail string) ErrorResponse {
	return ErrorResponse{
		Kind:   KindForbiddenNotAuthorized,
		Status: http.StatusForbidden,
		Title:  "You are not allowed here",
		Detail: detail,
	}
}

// ValidationError reports a malformed request payload or path parameter.
func ValidationError(title, detail string) ErrorResponse {
	return ErrorResponse{
		Kind:   KindErrorValidation,
		Status: http.StatusBadRequest,
		Title:  title,
		Detail: detail,
	}
}

// NotFoundError reports a missing resource.
func NotFoundError(detail string) ErrorResponse {
	return ErrorResponse{
		Kind:   KindErrorNotFound,
		Status: http.StatusNotFound,
		Title:  "Resource not found",
		Detail: detail,
	}
}

// QueryError reports a failed collaborator call (transport or storage), as
// opposed to a record that is merely absent.
func QueryError(detail string) ErrorResponse {
	return ErrorResponse{
		Kind:   KindErrorQuery,
		Status: http.StatusInternalServerError,
		Title:  "Error while executing query",
		Detail: detail,
	}
}

// InternalError reports a contract violation below this layer, such as a
// header the trusted gateway should always inject being absent.
func InternalError(detail string) ErrorResponse {
	return ErrorResponse{
		Kind:   KindErrorInternal,
		Status: http.StatusInternalServerError,
		Title:  "Internal server error",
		Detail: detail,
	}
}

// Success is a terminal success carrying a JSON-serializable payload.
type Success struct {
	Kind    Kind
	Status  int
	Payload any
}

// OKJSON wraps a payload in a 200 response.
func OKJSON(payload any) Success {
	return Success{Kind: KindSuccessJSON, Status: http.StatusOK, Payload: payload}
}

// CreatedJSON wraps a payload in a 201 response.
func CreatedJSON(payload any) Success {
	return Success{Kind: KindSuccessJSON, Status: http.StatusCreated, Payload: payload}
}

// problem is the RFC 7807 style error body.
type problem struct {
	Kind   Kind   `json:"kind"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

// WriteError writes the failure as application/problem+json.
func WriteError(w http.ResponseWriter, e ErrorResponse) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(e.Status)
	_ = json.NewEncoder(w).Encode(problem{
		Kind:   e.Kind,
		Title:  e.Title,
		Status: e.Status,
		Detail: e.Detail,
	})
}

// WriteSuccess writes the payload as application/json.
func WriteSuccess(w http.ResponseWriter, s Success) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(s.Status)
	_ = json.NewEncoder(w).Encode(s.Payload)
}
