// Package httpserver builds the http.Server with sane timeouts so main
// stays small.
package httpserver

import (
	"net/http"
	"time"
)

// New returns a server ready for ListenAndServe. Write timeout is generous
// because mint requests wait for an on-chain receipt.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      5 * time.Minute,
		IdleTimeout:       2 * time.Minute,
	}
}
