// ABOUTME: HTTP handlers for GPU TCO analyzer API endpoints
// ABOUTME: Holds shared dependencies and JSON request/response helpers

package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/markalston/gpu-tco-analyzer/backend/cache"
	"github.com/markalston/gpu-tco-analyzer/backend/catalog"
	"github.com/markalston/gpu-tco-analyzer/backend/config"
	"github.com/markalston/gpu-tco-analyzer/backend/models"
	"github.com/markalston/gpu-tco-analyzer/backend/services"
	"golang.org/x/sync/singleflight"
)

// maxRequestBodySize limits JSON request bodies to 1MB to prevent DOS attacks
const maxRequestBodySize = 1 << 20 // 1MB

// discoveryTimeout bounds a single vCenter inventory walk
const discoveryTimeout = 30 * time.Second

// discoverFunc walks vCenter and returns the GPU inventory
type discoverFunc func(ctx context.Context, c *catalog.Catalog) (models.GPUInventory, error)

type Handler struct {
	cfg       *config.Config
	catalogs  *catalog.Store
	inventory *cache.Cache[models.GPUInventory]
	discover  discoverFunc
	sfGroup   singleflight.Group
}

// NewHandler wires handlers to cfg and the catalog store. A nil cfg or store
// falls back to defaults so route tables can be inspected in tests.
func NewHandler(cfg *config.Config, store *catalog.Store) *Handler {
	if cfg == nil {
		cfg = &config.Config{}
	}
	if store == nil {
		store = catalog.NewStore("", ttlSeconds(cfg.CatalogCacheTTL))
	}

	h := &Handler{
		cfg:       cfg,
		catalogs:  store,
		inventory: cache.New[models.GPUInventory](ttlSeconds(cfg.VSphereCacheTTL)),
	}

	// vSphere discovery is optional
	if cfg.VSphereConfigured() {
		creds := services.VSphereCredentials{
			Host:       cfg.VSphereHost,
			Username:   cfg.VSphereUsername,
			Password:   cfg.VSpherePassword,
			Datacenter: cfg.VSphereDatacenter,
			Insecure:   cfg.VSphereInsecure,
			AllProxy:   cfg.VSphereAllProxy,
		}
		h.discover = func(ctx context.Context, c *catalog.Catalog) (models.GPUInventory, error) {
			client := services.NewVSphereClient(creds, c)
			defer client.Disconnect(context.Background())
			return client.DiscoverGPUs(ctx)
		}
	}

	return h
}

// ttlSeconds converts a configured TTL, defaulting unset values to five minutes
func ttlSeconds(n int) time.Duration {
	if n <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(n) * time.Second
}

// Close releases cache sweepers
func (h *Handler) Close() {
	h.inventory.Stop()
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	h.writeJSON(w, code, models.ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// writeRequestError maps validation failures to 400 with per-field details
func (h *Handler) writeRequestError(w http.ResponseWriter, err error) {
	var verrs services.ValidationErrors
	if errors.As(err, &verrs) {
		h.writeJSON(w, http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid request",
			Details: verrs.Details(),
			Code:    http.StatusBadRequest,
		})
		return
	}
	h.writeError(w, err.Error(), http.StatusBadRequest)
}

// decodeJSON reads a size-limited JSON body into v, writing a 400 on failure
func (h *Handler) decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.writeError(w, "Request body too large", http.StatusBadRequest)
			return false
		}
		h.writeError(w, "Invalid JSON", http.StatusBadRequest)
		return false
	}
	return true
}
