// ABOUTME: HTTP handler for storage TCO calculation
// ABOUTME: Validates a StorageConfig and runs the storage engine against the active catalog

package handlers

import (
	"net/http"
	"time"

	"github.com/markalston/gpu-tco-analyzer/backend/metrics"
	"github.com/markalston/gpu-tco-analyzer/backend/models"
	"github.com/markalston/gpu-tco-analyzer/backend/services"
)

// CalculateStorage computes the storage plan for a cluster description.
// HTTP method validation handled by Go 1.22+ router pattern matching.
func (h *Handler) CalculateStorage(w http.ResponseWriter, r *http.Request) {
	var cfg models.StorageConfig
	if !h.decodeJSON(w, r, &cfg) {
		return
	}
	if err := services.ValidateStorageConfig(cfg); err != nil {
		h.writeRequestError(w, err)
		return
	}

	start := time.Now()
	calc := services.NewStorageCalculator(h.catalogs.Current().Catalog)
	results := calc.Calculate(cfg)
	metrics.RecordCalculation(metrics.OperationStorage, time.Since(start), len(results.Warnings))

	h.writeJSON(w, http.StatusOK, results)
}
