// ABOUTME: Cost aggregator for storage CAPEX, OPEX and multi-year TCO
// ABOUTME: Local tiers use tier list prices, shared tiers use the primary vendor's price

package services

import (
	"math"

	"github.com/markalston/gpu-tco-analyzer/backend/models"
)

// localVendorKey attributes CAPEX for locally priced tiers
const localVendorKey = "local"

// tierCostPerPB resolves $/PB for one tier: local tiers use the tier's own
// list price, shared tiers the primary vendor's price falling back to the
// tier price when the vendor is unknown.
func (c *StorageCalculator) tierCostPerPB(tierIndex int, primary string) float64 {
	tier := c.catalog.Tiers[tierIndex]
	if tier.LocalPricing {
		return tier.CostPerPB
	}
	return c.catalog.VendorCostPerPB(primary, tier.CostPerPB)
}

// AdminHeadcount is one storage administrator per GPUsPerAdmin GPUs, rounded up
func (c *StorageCalculator) AdminHeadcount(gpus int) int {
	if gpus <= 0 {
		return 0
	}
	per := c.catalog.Constants.GPUsPerAdmin
	return int(math.Ceil(float64(gpus) / float64(per)))
}

// Costs aggregates CAPEX, annual OPEX and TCO for a plan
func (c *StorageCalculator) Costs(cfg models.StorageConfig, capacity models.CapacityBreakdown, vendor models.VendorSelection, power models.PowerDraw) models.CostBreakdown {
	k := c.catalog.Constants
	gpus := gpuCount(cfg)

	costs := models.CostBreakdown{
		CapexByTier:   make(map[string]float64, len(capacity.Tiers)),
		CapexByVendor: make(map[string]float64),
	}
	for i, a := range capacity.Tiers {
		capex := a.CapacityPB * c.tierCostPerPB(i, vendor.Primary)
		costs.CapexByTier[a.TierID] = capex
		costs.TotalCapex += capex

		owner := vendor.Primary
		if c.catalog.Tiers[i].LocalPricing {
			owner = localVendorKey
		}
		costs.CapexByVendor[owner] += capex
	}

	rate := c.catalog.PowerRatePerKWMonth(cfg.Region)
	headcount := c.AdminHeadcount(gpus)
	opex := models.OpexBreakdown{
		PowerRatePerKWMonth: rate,
		Power:               power.TotalKW * rate * 12,
		Support:             costs.TotalCapex * k.SupportRate,
		Admin:               float64(headcount) * k.AdminSalary,
		AdminHeadcount:      headcount,
	}
	opex.AnnualTotal = opex.Power + opex.Support + opex.Admin
	costs.Opex = opex

	costs.TCOByYear = make([]float64, k.TCOYears)
	for year := 1; year <= k.TCOYears; year++ {
		costs.TCOByYear[year-1] = costs.TotalCapex + float64(year)*opex.AnnualTotal
	}
	costs.TCO5Year = costs.TotalCapex + float64(k.TCOYears)*opex.AnnualTotal

	if gpus > 0 {
		costs.CostPerGPU = costs.TCO5Year / float64(gpus)
	}
	if capacity.TotalTB > 0 {
		costs.CostPerTB = costs.TotalCapex / capacity.TotalTB
	}
	return costs
}
