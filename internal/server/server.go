package server

import (
	"net/http"
	"time"
)

// NewServer creates and configures an HTTP server. The write timeout is
// generous because a relay request waits on two upstream round-trips
// (chain RPC, then paymaster) before it can respond.
func NewServer(handler http.Handler, port string) *http.Server {
	return &http.Server{
		Addr:         ":" + port,
		Handler:      handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
}
