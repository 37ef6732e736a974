// ABOUTME: Entry point for GPU TCO Analyzer backend service
// ABOUTME: Provides HTTP API for storage TCO planning and service-mix derivation

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/markalston/gpu-tco-analyzer/backend/catalog"
	"github.com/markalston/gpu-tco-analyzer/backend/config"
	"github.com/markalston/gpu-tco-analyzer/backend/handlers"
	"github.com/markalston/gpu-tco-analyzer/backend/logger"
	"github.com/markalston/gpu-tco-analyzer/backend/metrics"
	"github.com/markalston/gpu-tco-analyzer/backend/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const shutdownTimeout = 10 * time.Second

// rateWindow is the period every per-minute limit is counted over
const rateWindow = time.Minute

// buildLimiters returns one limiter per rate limited route class, or nil when
// limiting is disabled.
func buildLimiters(cfg *config.Config) map[handlers.RouteClass]*middleware.RateLimiter {
	if !cfg.RateLimitEnabled {
		return nil
	}
	return map[handlers.RouteClass]*middleware.RateLimiter{
		handlers.ClassCompute:   middleware.NewRateLimiter(string(handlers.ClassCompute), cfg.RateLimitCompute, rateWindow),
		handlers.ClassDiscovery: middleware.NewRateLimiter(string(handlers.ClassDiscovery), cfg.RateLimitDiscovery, rateWindow),
		handlers.ClassAdmin:     middleware.NewRateLimiter(string(handlers.ClassAdmin), cfg.RateLimitAdmin, rateWindow),
	}
}

// buildMux registers every API route plus /metrics and wraps the mux in the
// shared middleware chain.
func buildMux(cfg *config.Config, h *handlers.Handler, gatherer prometheus.Gatherer) http.Handler {
	limiters := buildLimiters(cfg)
	mux := http.NewServeMux()
	for _, route := range h.Routes() {
		mux.HandleFunc(route.Method+" "+route.Path, middleware.RateLimit(limiters[route.Class])(route.Handler))
	}
	if cfg.MetricsEnabled && gatherer != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	return middleware.Chain(mux.ServeHTTP,
		middleware.LogRequest,
		middleware.CORS(cfg.CORSAllowedOrigins),
		middleware.Recover,
	)
}

func main() {
	// Initialize structured logging
	logger.Init()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("Starting GPU TCO Analyzer Backend")
	if cfg.VSphereConfigured() {
		slog.Info("vSphere configured", "host", cfg.VSphereHost, "datacenter", cfg.VSphereDatacenter,
			"proxy", cfg.VSphereAllProxy != "")
	} else {
		slog.Info("vSphere not configured, discovery disabled")
	}
	if cfg.RateLimitEnabled {
		slog.Info("Rate limiting enabled", "compute", cfg.RateLimitCompute,
			"discovery", cfg.RateLimitDiscovery, "admin", cfg.RateLimitAdmin)
	}

	var gatherer prometheus.Gatherer
	if cfg.MetricsEnabled {
		registry := prometheus.NewRegistry()
		registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		if err := metrics.InitMetrics(registry); err != nil {
			slog.Error("Failed to register metrics", "error", err)
			os.Exit(1)
		}
		gatherer = registry
	}

	// Initialize catalog store
	catalogTTL := time.Duration(cfg.CatalogCacheTTL) * time.Second
	store := catalog.NewStore(cfg.CatalogPath, catalogTTL)
	defer store.Close()
	snap := store.Current()
	slog.Info("Catalog initialized", "source", snap.Source, "version", snap.Catalog.Version, "ttl", catalogTTL)

	// Initialize handlers
	h := handlers.NewHandler(cfg, store)
	defer h.Close()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           buildMux(cfg, h, gatherer),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown failed", "error", err)
		}
	}()

	// Start server
	slog.Info("Server listening", "addr", srv.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Server stopped")
}
