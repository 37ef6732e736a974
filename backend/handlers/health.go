// ABOUTME: HTTP handler for the health endpoint
// ABOUTME: Reports active catalog and vSphere integration status

package handlers

import (
	"net/http"
	"time"

	"github.com/markalston/gpu-tco-analyzer/backend/models"
)

// Health returns API health status including catalog source and vSphere status.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	snap := h.catalogs.Current()

	resp := models.HealthResponse{
		Status:         "ok",
		CatalogVersion: snap.Catalog.Version,
		CatalogSource:  snap.Source,
		VSphere:        "not_configured",
		Timestamp:      time.Now().UTC(),
	}
	if h.discover != nil {
		resp.VSphere = "configured"
	}

	h.writeJSON(w, http.StatusOK, resp)
}
