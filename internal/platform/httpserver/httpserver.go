package httpserver

import (
	"net/http"
	"time"
)

// New builds an HTTP server with sane defaults for this service. Request
// deadlines beyond the header read are left to the hosting environment.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
