// ABOUTME: CORS middleware for API cross-origin requests
// ABOUTME: Echoes allowed origins and answers OPTIONS preflight

package middleware

import (
	"net/http"
	"slices"
)

// CORS returns middleware that adds CORS headers for the allowed origins.
// An empty list blocks every cross-origin request; "*" allows any origin.
// OPTIONS preflight requests get 204 without calling the wrapped handler.
func CORS(allowedOrigins []string) Middleware {
	allowAny := slices.Contains(allowedOrigins, "*")

	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin != "" && (allowAny || slices.Contains(allowedOrigins, origin)) {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+RequestIDHeader)
				w.Header().Set("Access-Control-Expose-Headers", RequestIDHeader+", Retry-After")
				w.Header().Add("Vary", "Origin")
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next(w, r)
		}
	}
}
