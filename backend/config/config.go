// ABOUTME: Configuration loader for backend service
// ABOUTME: Loads settings from environment variables, optionally seeded from a .env file

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultDotenvPath is read when DOTENV_PATH is unset; a missing file is ignored
const DefaultDotenvPath = ".env"

// maxTTL bounds every TTL setting (one day)
const maxTTL = 86400

type Config struct {
	// Server
	Port               string
	CacheTTL           int      // seconds, default for general cache
	CORSAllowedOrigins []string // allowed CORS origins (empty = block all cross-origin)
	MetricsEnabled     bool     // expose /metrics (default: true)

	// Rate limiting, requests per minute per client IP
	RateLimitEnabled   bool // default: true
	RateLimitCompute   int  // calculate, capabilities, service-mix (default: 120)
	RateLimitDiscovery int  // vSphere discovery (default: 10)
	RateLimitAdmin     int  // catalog reload (default: 5)

	// Catalog
	CatalogPath     string // optional YAML override; empty = built-in catalog
	CatalogCacheTTL int    // seconds between override file re-reads (default 60)

	// vSphere (optional)
	VSphereHost       string
	VSphereUsername   string
	VSpherePassword   string
	VSphereDatacenter string
	VSphereInsecure   bool
	VSphereAllProxy   string // ssh+socks5://user@jumpbox:22?private-key=/path
	VSphereCacheTTL   int    // seconds, default 300 (5 min)
}

// VSphereConfigured returns true if vSphere credentials are set
func (c *Config) VSphereConfigured() bool {
	return c.VSphereHost != "" && c.VSphereUsername != "" && c.VSpherePassword != "" && c.VSphereDatacenter != ""
}

// loadDotenv seeds the environment from a .env file. Variables already set
// in the environment win. An explicit DOTENV_PATH must exist.
func loadDotenv() error {
	path, explicit := os.LookupEnv("DOTENV_PATH")
	if !explicit || path == "" {
		path = DefaultDotenvPath
		explicit = false
	}

	err := godotenv.Load(path)
	if err == nil {
		return nil
	}
	if !explicit && errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("loading %s: %w", path, err)
}

func Load() (*Config, error) {
	if err := loadDotenv(); err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:               getEnv("PORT", "8080"),
		CacheTTL:           getEnvInt("CACHE_TTL", 300),
		CORSAllowedOrigins: getEnvStringList("CORS_ALLOWED_ORIGINS"),
		MetricsEnabled:     getEnvBool("METRICS_ENABLED", true),

		RateLimitEnabled:   getEnvBool("RATE_LIMIT_ENABLED", true),
		RateLimitCompute:   getEnvInt("RATE_LIMIT_COMPUTE", 120),
		RateLimitDiscovery: getEnvInt("RATE_LIMIT_DISCOVERY", 10),
		RateLimitAdmin:     getEnvInt("RATE_LIMIT_ADMIN", 5),

		CatalogPath:     os.Getenv("CATALOG_PATH"),
		CatalogCacheTTL: getEnvInt("CATALOG_CACHE_TTL", 60),

		VSphereHost:       os.Getenv("VSPHERE_HOST"),
		VSphereUsername:   os.Getenv("VSPHERE_USERNAME"),
		VSpherePassword:   os.Getenv("VSPHERE_PASSWORD"),
		VSphereDatacenter: os.Getenv("VSPHERE_DATACENTER"),
		VSphereInsecure:   getEnvBool("VSPHERE_INSECURE", false),
		VSphereAllProxy:   os.Getenv("VSPHERE_ALL_PROXY"),
		VSphereCacheTTL:   getEnvInt("VSPHERE_CACHE_TTL", 300),
	}

	if _, err := strconv.Atoi(cfg.Port); err != nil {
		return nil, fmt.Errorf("PORT must be numeric, got %q", cfg.Port)
	}

	// Validate TTL values
	for _, ttl := range []struct {
		name  string
		value int
	}{
		{"CACHE_TTL", cfg.CacheTTL},
		{"CATALOG_CACHE_TTL", cfg.CatalogCacheTTL},
		{"VSPHERE_CACHE_TTL", cfg.VSphereCacheTTL},
	} {
		if ttl.value < 1 || ttl.value > maxTTL {
			return nil, fmt.Errorf("%s must be between 1 and %d, got %d", ttl.name, maxTTL, ttl.value)
		}
	}

	if cfg.RateLimitEnabled {
		for _, rl := range []struct {
			name  string
			value int
		}{
			{"RATE_LIMIT_COMPUTE", cfg.RateLimitCompute},
			{"RATE_LIMIT_DISCOVERY", cfg.RateLimitDiscovery},
			{"RATE_LIMIT_ADMIN", cfg.RateLimitAdmin},
		} {
			if rl.value < 1 {
				return nil, fmt.Errorf("%s must be at least 1, got %d", rl.name, rl.value)
			}
		}
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvStringList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
