// ABOUTME: Storage TCO engine entry point composing the component models
// ABOUTME: Capacity, checkpoints, tiers, vendors, bandwidth, power, cost and warnings in one pass

package services

import (
	"github.com/markalston/gpu-tco-analyzer/backend/catalog"
	"github.com/markalston/gpu-tco-analyzer/backend/models"
)

// StorageCalculator computes storage TCO plans against an injected catalog.
// It holds no mutable state and is safe for concurrent use.
type StorageCalculator struct {
	catalog *catalog.Catalog
}

// NewStorageCalculator creates a calculator bound to c
func NewStorageCalculator(c *catalog.Catalog) *StorageCalculator {
	return &StorageCalculator{catalog: c}
}

// Calculate derives the full storage plan for cfg. Identical inputs always
// produce identical results; invalid inputs are the caller's concern.
func (c *StorageCalculator) Calculate(cfg models.StorageConfig) models.StorageResults {
	gpus := gpuCount(cfg)

	checkpoint := c.CheckpointPlan(gpus)
	base := c.BaseCapacityTB(cfg)
	total := base + checkpoint.StorageOverheadTB

	profile := c.SelectProfile(cfg)
	capacity := models.CapacityBreakdown{
		BaseTB:       base,
		CheckpointTB: checkpoint.StorageOverheadTB,
		TotalTB:      total,
		TotalPB:      total / 1000,
		Tiers:        c.AllocateTiers(total, profile),
	}

	vendor := c.SelectVendor(cfg)
	power := c.PowerDraw(cfg, capacity.Tiers)

	return models.StorageResults{
		GPUCount:            gpus,
		DistributionProfile: profile,
		Capacity:            capacity,
		Checkpoint:          checkpoint,
		Bandwidth:           c.Bandwidth(cfg),
		Vendor:              vendor,
		Costs:               c.Costs(cfg, capacity, vendor, power),
		Performance:         c.TierPerformance(capacity.Tiers),
		Power:               power,
		Warnings:            c.Warnings(gpus, power, vendor),
	}
}
