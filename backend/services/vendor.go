// ABOUTME: Vendor selector implemented as an ordered list of guarded rules
// ABOUTME: Scale and workload pick primary/secondary vendors; overrides short-circuit the rules

package services

import (
	"fmt"
	"strings"

	"github.com/markalston/gpu-tco-analyzer/backend/models"
)

// vendorRule selects a vendor pair when its guard matches. Rules are
// evaluated in order and the first match wins.
type vendorRule struct {
	name      string
	when      func(cfg models.StorageConfig) bool
	primary   func(cfg models.StorageConfig) string
	secondary func(cfg models.StorageConfig) string
	rationale func(cfg models.StorageConfig) string
}

func fixed(id string) func(models.StorageConfig) string {
	return func(models.StorageConfig) string { return id }
}

var vendorRules = []vendorRule{
	{
		name: "mega-scale",
		when: func(cfg models.StorageConfig) bool { return cfg.GPUCount >= 100000 },
		primary: func(cfg models.StorageConfig) string {
			if cfg.Budget == models.BudgetUnlimited {
				return "ddn"
			}
			return "vast"
		},
		secondary: func(cfg models.StorageConfig) string {
			if cfg.Budget == models.BudgetUnlimited {
				return "vast"
			}
			return "ceph"
		},
		rationale: func(cfg models.StorageConfig) string {
			if cfg.Budget == models.BudgetUnlimited {
				return "100,000+ GPUs with unlimited budget: highest-end parallel filesystem proven at this scale"
			}
			return "100,000+ GPUs under budget pressure: cost-optimized software-defined storage with open-source fallback"
		},
	},
	{
		name: "large-scale",
		when: func(cfg models.StorageConfig) bool { return cfg.GPUCount >= 25000 },
		primary: func(cfg models.StorageConfig) string {
			if cfg.Workload.Training > 70 {
				return "ibm-scale"
			}
			return "netapp"
		},
		secondary: func(cfg models.StorageConfig) string {
			if cfg.Workload.Training > 70 {
				return "vast"
			}
			return "pure"
		},
		rationale: func(cfg models.StorageConfig) string {
			if cfg.Workload.Training > 70 {
				return "25,000-100,000 GPUs, training-dominant: parallel filesystem for checkpoint throughput"
			}
			return "25,000-100,000 GPUs, mixed workloads: enterprise NAS/SAN"
		},
	},
	{
		name:      "mid-scale",
		when:      func(cfg models.StorageConfig) bool { return cfg.GPUCount >= 5000 },
		primary:   fixed("weka"),
		secondary: fixed("ceph"),
		rationale: func(models.StorageConfig) string {
			return "5,000-25,000 GPUs: mid-scale software-defined storage"
		},
	},
	{
		name:      "small-scale",
		when:      func(models.StorageConfig) bool { return true },
		primary:   fixed("pure"),
		secondary: fixed("ceph"),
		rationale: func(models.StorageConfig) string {
			return "under 5,000 GPUs: traditional enterprise appliance with open-source secondary"
		},
	},
}

// SelectVendor chooses primary and secondary vendors. An explicit override
// bypasses the rules; unknown override ids are kept as given and later cost
// lookups fall back to tier catalog prices.
func (c *StorageCalculator) SelectVendor(cfg models.StorageConfig) models.VendorSelection {
	override := strings.ToLower(strings.TrimSpace(cfg.Vendor))
	if override != "" && override != models.VendorAuto {
		return c.overrideSelection(override)
	}

	for _, rule := range vendorRules {
		if !rule.when(cfg) {
			continue
		}
		primary, secondary := rule.primary(cfg), rule.secondary(cfg)
		return models.VendorSelection{
			Primary:       primary,
			PrimaryName:   c.catalog.VendorName(primary),
			Secondary:     secondary,
			SecondaryName: c.catalog.VendorName(secondary),
			Rule:          rule.name,
			Rationale:     rule.rationale(cfg),
		}
	}

	// unreachable: the last rule always matches
	return models.VendorSelection{}
}

func (c *StorageCalculator) overrideSelection(id string) models.VendorSelection {
	secondary := c.catalog.Constants.OverrideSecondary
	sel := models.VendorSelection{
		Primary:       id,
		PrimaryName:   c.catalog.VendorName(id),
		Secondary:     secondary,
		SecondaryName: c.catalog.VendorName(secondary),
		Rule:          "override",
		Override:      true,
	}
	if c.catalog.AnyVendor(id) == nil {
		sel.Rationale = fmt.Sprintf("vendor override %q not in catalog; tier list prices used for costing", id)
	} else {
		sel.Rationale = fmt.Sprintf("vendor override %q with low-cost open-source secondary", id)
	}
	return sel
}
