// ABOUTME: Middleware type and chaining for the API server
// ABOUTME: Composes middleware in declaration order, first is outermost

package middleware

import "net/http"

// Middleware wraps a handler with cross-cutting behavior
type Middleware func(http.HandlerFunc) http.HandlerFunc

// Chain wraps h so that Chain(h, a, b) serves as a(b(h)). Nil entries are skipped.
func Chain(h http.HandlerFunc, middlewares ...Middleware) http.HandlerFunc {
	for i := len(middlewares) - 1; i >= 0; i-- {
		if middlewares[i] != nil {
			h = middlewares[i](h)
		}
	}
	return h
}
