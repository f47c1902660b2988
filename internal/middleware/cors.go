// Package middleware wraps relay handlers with the cross-cutting HTTP
// concerns: CORS, access logging and request metrics.
package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// CORS returns a middleware allowing browser calls from the given
// origins. The frontend is served from a different origin than the relay,
// so this is load-bearing, not cosmetic. An allow-list of ["*"] mirrors
// the permissive default the dashboard was developed against.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	})
	return c.Handler
}
