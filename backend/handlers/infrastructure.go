// ABOUTME: HTTP handler for vSphere GPU discovery
// ABOUTME: Caches inventory and coalesces concurrent vCenter walks

package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/markalston/gpu-tco-analyzer/backend/metrics"
	"github.com/markalston/gpu-tco-analyzer/backend/models"
)

const inventoryCacheKey = "infrastructure:vsphere"

// DiscoverVSphere returns the GPU inventory discovered from vCenter.
// Pass refresh=true to bypass the cache.
func (h *Handler) DiscoverVSphere(w http.ResponseWriter, r *http.Request) {
	if h.discover == nil {
		h.writeError(w, "vSphere not configured. Set VSPHERE_HOST, VSPHERE_USERNAME, VSPHERE_PASSWORD, and VSPHERE_DATACENTER environment variables.", http.StatusServiceUnavailable)
		return
	}

	refresh, _ := strconv.ParseBool(r.URL.Query().Get("refresh"))
	if !refresh {
		if inv, found := h.inventory.Get(inventoryCacheKey); found {
			slog.Debug("Inventory cache hit")
			inv.Cached = true
			h.writeJSON(w, http.StatusOK, inv)
			return
		}
	}

	v, err, _ := h.sfGroup.Do(inventoryCacheKey, func() (interface{}, error) {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), discoveryTimeout)
		defer cancel()

		start := time.Now()
		inv, err := h.discover(ctx, h.catalogs.Current().Catalog)
		if err != nil {
			return nil, err
		}
		metrics.RecordCalculation(metrics.OperationDiscovery, time.Since(start), 0)

		h.inventory.Set(inventoryCacheKey, inv)
		return inv, nil
	})
	if err != nil {
		slog.Error("vSphere discovery failed", "error", err)
		h.writeError(w, "Infrastructure service temporarily unavailable", http.StatusServiceUnavailable)
		return
	}

	h.writeJSON(w, http.StatusOK, v.(models.GPUInventory))
}
