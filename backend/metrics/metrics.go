// ABOUTME: Prometheus metrics for calculations, warnings and HTTP traffic
// ABOUTME: Registered once; recording before registration is a no-op

package metrics

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metric names
const (
	CalculationsTotal   = "gpu_tco_calculations_total"
	CalculationDuration = "gpu_tco_calculation_duration_seconds"
	WarningsTotal       = "gpu_tco_warnings_total"
	HTTPRequestsTotal   = "gpu_tco_http_requests_total"
	CatalogReloadsTotal = "gpu_tco_catalog_reloads_total"
	RateLimitedTotal    = "gpu_tco_rate_limited_total"
)

// Operation label values
const (
	OperationStorage      = "storage"
	OperationCapabilities = "capabilities"
	OperationServiceMix   = "service_mix"
	OperationDiscovery    = "vsphere_discovery"
)

var (
	calculationsTotal   *prometheus.CounterVec
	calculationDuration *prometheus.HistogramVec
	warningsTotal       *prometheus.CounterVec
	httpRequestsTotal   *prometheus.CounterVec
	catalogReloadsTotal *prometheus.CounterVec
	rateLimitedTotal    *prometheus.CounterVec

	// initOnce ensures InitMetrics is only executed once
	initOnce sync.Once
	initErr  error
	mu       sync.RWMutex
	ready    bool
)

// InitMetrics registers all metrics with the provided registry.
// It is safe to call more than once; only the first call's registry is used.
func InitMetrics(registry prometheus.Registerer) error {
	initOnce.Do(func() {
		calculationsTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: CalculationsTotal,
				Help: "Total number of engine calculations by operation",
			},
			[]string{"operation"},
		)
		calculationDuration = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    CalculationDuration,
				Help:    "Engine calculation latency by operation",
				Buckets: prometheus.ExponentialBuckets(0.00005, 4, 8),
			},
			[]string{"operation"},
		)
		warningsTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: WarningsTotal,
				Help: "Total number of warnings and constraints emitted by operation",
			},
			[]string{"operation"},
		)
		httpRequestsTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: HTTPRequestsTotal,
				Help: "Total number of HTTP requests by method and status code",
			},
			[]string{"method", "status"},
		)
		catalogReloadsTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: CatalogReloadsTotal,
				Help: "Total number of catalog loads by resulting source",
			},
			[]string{"source"},
		)
		rateLimitedTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: RateLimitedTotal,
				Help: "Total number of requests rejected by rate limiting by route class",
			},
			[]string{"class"},
		)

		for name, c := range map[string]prometheus.Collector{
			CalculationsTotal:   calculationsTotal,
			CalculationDuration: calculationDuration,
			WarningsTotal:       warningsTotal,
			HTTPRequestsTotal:   httpRequestsTotal,
			CatalogReloadsTotal: catalogReloadsTotal,
			RateLimitedTotal:    rateLimitedTotal,
		} {
			if err := registry.Register(c); err != nil {
				initErr = fmt.Errorf("failed to register %s metric: %w", name, err)
				return
			}
		}

		mu.Lock()
		ready = true
		mu.Unlock()
	})

	return initErr
}

func enabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return ready
}

// RecordCalculation counts one calculation, its latency and emitted warnings
func RecordCalculation(operation string, elapsed time.Duration, warnings int) {
	if !enabled() {
		return
	}
	calculationsTotal.WithLabelValues(operation).Inc()
	calculationDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
	if warnings > 0 {
		warningsTotal.WithLabelValues(operation).Add(float64(warnings))
	}
}

// RecordHTTPRequest counts one served request
func RecordHTTPRequest(method string, status int) {
	if !enabled() {
		return
	}
	httpRequestsTotal.WithLabelValues(method, strconv.Itoa(status)).Inc()
}

// RecordCatalogLoad counts one catalog load from source
func RecordCatalogLoad(source string) {
	if !enabled() {
		return
	}
	catalogReloadsTotal.WithLabelValues(source).Inc()
}

// RecordRateLimited counts one request rejected for class
func RecordRateLimited(class string) {
	if !enabled() {
		return
	}
	rateLimitedTotal.WithLabelValues(class).Inc()
}
