// ABOUTME: HTTP handlers for reference catalog inspection and reload
// ABOUTME: Serves the active catalog snapshot with its source

package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/markalston/gpu-tco-analyzer/backend/catalog"
)

// CatalogResponse wraps the active catalog with where it came from
type CatalogResponse struct {
	Source   string           `json:"source"`
	Path     string           `json:"path,omitempty"`
	LoadedAt time.Time        `json:"loaded_at"`
	Catalog  *catalog.Catalog `json:"catalog"`
}

func (h *Handler) catalogResponse(snap catalog.Snapshot) CatalogResponse {
	return CatalogResponse{
		Source:   snap.Source,
		Path:     h.catalogs.Path(),
		LoadedAt: snap.LoadedAt,
		Catalog:  snap.Catalog,
	}
}

// GetCatalog returns the active reference catalog.
func (h *Handler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.catalogResponse(h.catalogs.Current()))
}

// ReloadCatalog re-reads CATALOG_PATH immediately instead of waiting for the TTL.
func (h *Handler) ReloadCatalog(w http.ResponseWriter, r *http.Request) {
	snap := h.catalogs.Reload()
	slog.Info("Catalog reload requested", "source", snap.Source, "version", snap.Catalog.Version)
	h.writeJSON(w, http.StatusOK, h.catalogResponse(snap))
}
