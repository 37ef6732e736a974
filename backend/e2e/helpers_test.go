// ABOUTME: Test helpers for e2e tests
// ABOUTME: Builds the full middleware chain over a real handler from environment config

package e2e

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/markalston/gpu-tco-analyzer/backend/catalog"
	"github.com/markalston/gpu-tco-analyzer/backend/config"
	"github.com/markalston/gpu-tco-analyzer/backend/handlers"
	"github.com/markalston/gpu-tco-analyzer/backend/middleware"
)

// withTestEnv sets env vars for the duration of a test, with DOTENV_PATH
// pointed away from any developer .env, returning a cleanup function that
// restores all original values.
//
// Example:
//
//	func TestSomething(t *testing.T) {
//	    t.Cleanup(withTestEnv(t, map[string]string{
//	        "CORS_ALLOWED_ORIGINS": "https://example.com",
//	    }))
//	}
func withTestEnv(t *testing.T, extra map[string]string) func() {
	t.Helper()

	empty := filepath.Join(t.TempDir(), "empty.env")
	if err := os.WriteFile(empty, nil, 0o600); err != nil {
		t.Fatal(err)
	}
	vars := map[string]string{"DOTENV_PATH": empty}
	for key, value := range extra {
		vars[key] = value
	}

	type saved struct {
		value string
		set   bool
	}
	originals := make(map[string]saved, len(vars))
	for key, value := range vars {
		v, ok := os.LookupEnv(key)
		originals[key] = saved{v, ok}
		os.Setenv(key, value)
	}

	return func() {
		for key, orig := range originals {
			if orig.set {
				os.Setenv(key, orig.value)
			} else {
				os.Unsetenv(key)
			}
		}
	}
}

// newServer loads config from the environment and serves every API route
// through the same chain main.go uses.
func newServer(t *testing.T) *httptest.Server {
	t.Helper()

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("config.Load() = %v", err)
	}

	store := catalog.NewStore(cfg.CatalogPath, time.Duration(cfg.CatalogCacheTTL)*time.Second)
	t.Cleanup(store.Close)
	h := handlers.NewHandler(cfg, store)
	t.Cleanup(h.Close)

	limiters := map[handlers.RouteClass]*middleware.RateLimiter{}
	if cfg.RateLimitEnabled {
		limiters[handlers.ClassCompute] = middleware.NewRateLimiter("compute", cfg.RateLimitCompute, time.Minute)
		limiters[handlers.ClassAdmin] = middleware.NewRateLimiter("admin", cfg.RateLimitAdmin, time.Minute)
	}

	mux := http.NewServeMux()
	for _, route := range h.Routes() {
		mux.HandleFunc(route.Method+" "+route.Path, middleware.RateLimit(limiters[route.Class])(route.Handler))
	}

	srv := httptest.NewServer(middleware.Chain(mux.ServeHTTP,
		middleware.LogRequest,
		middleware.CORS(cfg.CORSAllowedOrigins),
		middleware.Recover,
	))
	t.Cleanup(srv.Close)
	return srv
}
