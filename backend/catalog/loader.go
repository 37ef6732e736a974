// ABOUTME: YAML catalog override loading and validation
// ABOUTME: Override files are merged field-by-field over the built-in catalog

package catalog

import (
	"fmt"
	"math"
	"os"
	"strings"

	"gopkg.in/yaml.v2"
)

// Profiles lists the tier distribution profiles every tier must define
var Profiles = []string{"training-heavy", "balanced", "cost-optimized"}

// LoadFile reads a YAML catalog from path and merges it over Default.
// Lists in the file replace the built-in lists; maps merge by key.
func LoadFile(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("reading catalog %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML catalog data over Default and validates the result
func Parse(data []byte) (Catalog, error) {
	c := Default()
	if err := yaml.UnmarshalStrict(data, &c); err != nil {
		return Catalog{}, fmt.Errorf("parsing catalog: %w", err)
	}
	for i := range c.Vendors {
		c.Vendors[i].ID = strings.ToLower(c.Vendors[i].ID)
	}
	for i := range c.ObjectVendors {
		c.ObjectVendors[i].ID = strings.ToLower(c.ObjectVendors[i].ID)
	}
	if err := c.Validate(); err != nil {
		return Catalog{}, err
	}
	return c, nil
}

// Validate checks the structural rules the engines depend on
func (c *Catalog) Validate() error {
	if len(c.Tiers) == 0 {
		return fmt.Errorf("catalog has no storage tiers")
	}
	for _, profile := range Profiles {
		var sum float64
		for _, t := range c.Tiers {
			sum += t.Percent(profile)
		}
		if math.Abs(sum-100) > 1e-6 {
			return fmt.Errorf("tier distribution for profile %q sums to %.4f, want 100", profile, sum)
		}
	}
	for _, t := range c.Tiers {
		if t.CostPerPB < 0 || t.PowerDensityKWPerPB < 0 {
			return fmt.Errorf("tier %q has negative cost or power density", t.ID)
		}
	}
	if len(c.Vendors) == 0 {
		return fmt.Errorf("catalog has no storage vendors")
	}
	if c.Constants.GPUsPerNode <= 0 {
		return fmt.Errorf("constants.gpus_per_node must be positive, got %d", c.Constants.GPUsPerNode)
	}
	if c.Constants.GPUsPerAdmin <= 0 {
		return fmt.Errorf("constants.gpus_per_admin must be positive, got %d", c.Constants.GPUsPerAdmin)
	}
	if c.Constants.TCOYears <= 0 {
		return fmt.Errorf("constants.tco_years must be positive, got %d", c.Constants.TCOYears)
	}
	if c.ServiceMix.WhaleMaxPercent < 0 || c.ServiceMix.WhaleMaxPercent > 100 {
		return fmt.Errorf("service_mix.whale_max_percent must be between 0 and 100, got %d", c.ServiceMix.WhaleMaxPercent)
	}
	if c.AnyVendor(c.Constants.OverrideSecondary) == nil {
		return fmt.Errorf("constants.override_secondary %q is not a known vendor", c.Constants.OverrideSecondary)
	}
	return nil
}
