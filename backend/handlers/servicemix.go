// ABOUTME: HTTP handlers for capability analysis and service-mix derivation
// ABOUTME: Accept an InfrastructureConfig and return capabilities or a full mix report

package handlers

import (
	"net/http"
	"time"

	"github.com/markalston/gpu-tco-analyzer/backend/metrics"
	"github.com/markalston/gpu-tco-analyzer/backend/models"
	"github.com/markalston/gpu-tco-analyzer/backend/services"
)

func (h *Handler) decodeInfrastructure(w http.ResponseWriter, r *http.Request) (models.InfrastructureConfig, bool) {
	var cfg models.InfrastructureConfig
	if !h.decodeJSON(w, r, &cfg) {
		return cfg, false
	}
	if err := services.ValidateInfrastructureConfig(cfg); err != nil {
		h.writeRequestError(w, err)
		return cfg, false
	}
	return cfg, true
}

// AnalyzeCapabilities derives capability flags from an infrastructure description.
func (h *Handler) AnalyzeCapabilities(w http.ResponseWriter, r *http.Request) {
	cfg, ok := h.decodeInfrastructure(w, r)
	if !ok {
		return
	}

	start := time.Now()
	calc := services.NewServiceMixCalculator(h.catalogs.Current().Catalog)
	caps := calc.AnalyzeInfrastructureCapabilities(cfg)
	metrics.RecordCalculation(metrics.OperationCapabilities, time.Since(start), 0)

	h.writeJSON(w, http.StatusOK, caps)
}

// DeriveServiceMix returns capabilities, the recommended mix and constraints.
func (h *Handler) DeriveServiceMix(w http.ResponseWriter, r *http.Request) {
	cfg, ok := h.decodeInfrastructure(w, r)
	if !ok {
		return
	}

	start := time.Now()
	calc := services.NewServiceMixCalculator(h.catalogs.Current().Catalog)
	resp := calc.Analyze(cfg)
	metrics.RecordCalculation(metrics.OperationServiceMix, time.Since(start), len(resp.Constraints))

	h.writeJSON(w, http.StatusOK, resp)
}
