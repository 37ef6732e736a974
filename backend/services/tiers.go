// ABOUTME: Tier allocator splitting total capacity across storage tiers
// ABOUTME: Selects a distribution profile and derives per-tier performance

package services

import "github.com/markalston/gpu-tco-analyzer/backend/models"

// SelectProfile picks the tier distribution profile. Training share above the
// threshold wins over budget; otherwise cost-conscious budgets get the
// cost-optimized profile and everything else is balanced.
func (c *StorageCalculator) SelectProfile(cfg models.StorageConfig) string {
	if cfg.Workload.Training > c.catalog.Constants.TrainingHeavyThreshold {
		return models.ProfileTrainingHeavy
	}
	if cfg.Budget == models.BudgetCostConscious {
		return models.ProfileCostOptimized
	}
	return models.ProfileBalanced
}

// AllocateTiers converts totalTB into per-tier PB using the profile's
// percentages, in catalog tier order.
func (c *StorageCalculator) AllocateTiers(totalTB float64, profile string) []models.TierAllocation {
	tiers := c.catalog.Tiers
	weights := make([]float64, len(tiers))
	for i, t := range tiers {
		weights[i] = t.Percent(profile)
	}
	rounded := NormalizeToHundred(weights)

	allocations := make([]models.TierAllocation, len(tiers))
	for i, t := range tiers {
		pct := t.Percent(profile)
		allocations[i] = models.TierAllocation{
			TierID:         t.ID,
			Name:           t.Name,
			Percent:        pct,
			RoundedPercent: rounded[i],
			CapacityPB:     totalTB * pct / 100 / 1000,
		}
	}
	return allocations
}

// TierPerformance derives latency, IOPS and throughput for each allocation
func (c *StorageCalculator) TierPerformance(allocations []models.TierAllocation) []models.TierPerformance {
	perf := make([]models.TierPerformance, 0, len(allocations))
	for i, a := range allocations {
		t := c.catalog.Tiers[i]
		perf = append(perf, models.TierPerformance{
			TierID:         a.TierID,
			LatencyMs:      t.LatencyMs,
			IOPS:           t.IOPSPerPB * a.CapacityPB,
			ThroughputGBps: t.ThroughputGBpsPerPB * a.CapacityPB,
		})
	}
	return perf
}
