// ABOUTME: Tests for HTTP server wiring
// ABOUTME: Verifies route registration, method matching, CORS preflight and /metrics

package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/markalston/gpu-tco-analyzer/backend/config"
	"github.com/markalston/gpu-tco-analyzer/backend/handlers"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func newTestServer(t *testing.T, cfg *config.Config) *httptest.Server {
	t.Helper()
	h := handlers.NewHandler(cfg, nil)
	t.Cleanup(h.Close)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())

	srv := httptest.NewServer(buildMux(cfg, h, registry))
	t.Cleanup(srv.Close)
	return srv
}

func TestBuildMux_Routes(t *testing.T) {
	srv := newTestServer(t, &config.Config{MetricsEnabled: true})

	tests := []struct {
		method string
		path   string
		body   string
		want   int
	}{
		{http.MethodGet, "/api/v1/health", "", http.StatusOK},
		{http.MethodGet, "/api/v1/catalog", "", http.StatusOK},
		{http.MethodPost, "/api/v1/storage/calculate", `{"gpu_count":1000,"workload":{"training":100},"tenants":{"small":100}}`, http.StatusOK},
		{http.MethodGet, "/api/v1/storage/calculate", "", http.StatusMethodNotAllowed},
		{http.MethodPost, "/api/v1/infrastructure/service-mix", `{"compute":{"gpu_count":100}}`, http.StatusOK},
		{http.MethodGet, "/api/v1/infrastructure/vsphere", "", http.StatusServiceUnavailable},
		{http.MethodGet, "/api/v1/nope", "", http.StatusNotFound},
		{http.MethodGet, "/metrics", "", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req, err := http.NewRequest(tt.method, srv.URL+tt.path, strings.NewReader(tt.body))
			if err != nil {
				t.Fatal(err)
			}
			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				t.Fatal(err)
			}
			resp.Body.Close()

			if resp.StatusCode != tt.want {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.want)
			}
			if resp.Header.Get("X-Request-ID") == "" {
				t.Error("missing X-Request-ID header")
			}
		})
	}
}

func TestBuildMux_MetricsDisabled(t *testing.T) {
	srv := newTestServer(t, &config.Config{MetricsEnabled: false})

	resp, err := http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404 with metrics disabled", resp.StatusCode)
	}
}

func TestBuildMux_Preflight(t *testing.T) {
	srv := newTestServer(t, &config.Config{CORSAllowedOrigins: []string{"http://localhost:5173"}})

	req, _ := http.NewRequest(http.MethodOptions, srv.URL+"/api/v1/storage/calculate", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("status = %d, want 204", resp.StatusCode)
	}
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}
}

func TestBuildMux_RateLimit(t *testing.T) {
	srv := newTestServer(t, &config.Config{
		RateLimitEnabled:   true,
		RateLimitCompute:   2,
		RateLimitDiscovery: 1,
		RateLimitAdmin:     1,
	})

	post := func() *http.Response {
		resp, err := http.Post(srv.URL+"/api/v1/infrastructure/capabilities", "application/json",
			strings.NewReader(`{"compute":{"gpu_count":64}}`))
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		return resp
	}

	for i := 0; i < 2; i++ {
		if resp := post(); resp.StatusCode != http.StatusOK {
			t.Fatalf("request %d status = %d, want 200", i+1, resp.StatusCode)
		}
	}
	resp := post()
	if resp.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", resp.StatusCode)
	}
	if resp.Header.Get("Retry-After") == "" {
		t.Error("missing Retry-After header")
	}

	// Unlimited routes are unaffected
	for i := 0; i < 5; i++ {
		health, err := http.Get(srv.URL + "/api/v1/health")
		if err != nil {
			t.Fatal(err)
		}
		health.Body.Close()
		if health.StatusCode != http.StatusOK {
			t.Fatalf("health status = %d, want 200", health.StatusCode)
		}
	}
}
