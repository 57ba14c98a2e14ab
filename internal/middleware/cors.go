package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// CORS allows the storefront origins. A single "*" reflects any origin, which
// browsers accept together with credentials (the session cookie).
func CORS(allowOrigins []string) func(http.Handler) http.Handler {
	allowAll := len(allowOrigins) == 1 && allowOrigins[0] == "*"

	opts := cors.Options{
		AllowedOrigins:   allowOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization", HeaderCorrelationID},
		ExposedHeaders:   []string{HeaderCorrelationID},
		AllowCredentials: true,
	}
	if allowAll {
		opts.AllowedOrigins = nil
		opts.AllowOriginFunc = func(string) bool { return true }
	}
	return cors.New(opts).Handler
}
