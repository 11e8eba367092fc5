// Package testutil provides common test utilities for handler and
// integration tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// NewJSONRequest creates an HTTP request with a JSON body.
func NewJSONRequest(t *testing.T, method, path string, body any) *http.Request {
	t.Helper()

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		require.NoError(t, err, "failed to marshal request body")
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req := httptest.NewRequest(method, path, bodyReader)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// NewRequest creates a simple HTTP request without a body.
func NewRequest(t *testing.T, method, path string) *http.Request {
	t.Helper()
	return httptest.NewRequest(method, path, nil)
}

// WithAPIHeaders stamps the gateway identity headers onto a request, the way
// the upstream API management layer would.
func WithAPIHeaders(req *http.Request, userID, subscriptionID, email string, groups ...string) *http.Request {
	if userID != "" {
		req.Header.Set("x-user-id", userID)
	}
	if subscriptionID != "" {
		req.Header.Set("x-subscription-id", subscriptionID)
	}
	if email != "" {
		req.Header.Set("x-user-email", email)
	}
	if len(groups) > 0 {
		req.Header.Set("x-user-groups", strings.Join(groups, ","))
	}
	return req
}

// DoRequest executes a request against a handler and returns the recorder.
func DoRequest(handler http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

// DecodeJSON unmarshals a response body into v, failing the test on error.
func DecodeJSON(t *testing.T, rr *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), v), "failed to decode response body")
}
