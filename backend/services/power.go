// ABOUTME: Power model for storage tiers
// ABOUTME: Tier power is capacity times catalog power density, with GPU power for context

package services

import "github.com/markalston/gpu-tco-analyzer/backend/models"

// PowerDraw computes storage power per tier and compares it with GPU power
func (c *StorageCalculator) PowerDraw(cfg models.StorageConfig, allocations []models.TierAllocation) models.PowerDraw {
	draw := models.PowerDraw{ByTier: make(map[string]float64, len(allocations))}
	for i, a := range allocations {
		kw := a.CapacityPB * c.catalog.Tiers[i].PowerDensityKWPerPB
		draw.ByTier[a.TierID] = kw
		draw.TotalKW += kw
	}

	draw.GPUPowerKW = float64(gpuCount(cfg)) * c.catalog.GPUTDPKW(cfg.GPUModel)
	if draw.GPUPowerKW > 0 {
		draw.StorageSharePct = draw.TotalKW / draw.GPUPowerKW * 100
	}
	return draw
}
