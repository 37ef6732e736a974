// ABOUTME: Lookup-or-default accessors over catalog tables
// ABOUTME: Missing entries resolve to documented fallbacks instead of errors

package catalog

import "strings"

// Vendor returns the vendor with id from the primary vendor table, or nil
func (c *Catalog) Vendor(id string) *Vendor {
	return findVendor(c.Vendors, id)
}

// AnyVendor searches the vendor table, then the object vendor table
func (c *Catalog) AnyVendor(id string) *Vendor {
	if v := findVendor(c.Vendors, id); v != nil {
		return v
	}
	return findVendor(c.ObjectVendors, id)
}

// VendorCostPerPB returns the vendor's $/PB, or fallback when the vendor is unknown
func (c *Catalog) VendorCostPerPB(id string, fallback float64) float64 {
	if v := c.AnyVendor(id); v != nil && v.CostPerPB > 0 {
		return v.CostPerPB
	}
	return fallback
}

// VendorName returns the display name for a vendor id, or the id itself
func (c *Catalog) VendorName(id string) string {
	if v := c.AnyVendor(id); v != nil {
		return v.Name
	}
	return id
}

func findVendor(vendors []Vendor, id string) *Vendor {
	key := strings.ToLower(strings.TrimSpace(id))
	for i := range vendors {
		if vendors[i].ID == key {
			return &vendors[i]
		}
	}
	return nil
}

// GPU returns the GPU entry for model, matching case-insensitively, or nil
func (c *Catalog) GPU(model string) *GPU {
	key := normalizeGPUModel(model)
	if key == "" {
		return nil
	}
	for i := range c.GPUs {
		if c.GPUs[i].ID == key {
			return &c.GPUs[i]
		}
	}
	return nil
}

// GPUTDPKW returns the TDP for model, or the catalog default when unknown
func (c *Catalog) GPUTDPKW(model string) float64 {
	if g := c.GPU(model); g != nil && g.TDPKW > 0 {
		return g.TDPKW
	}
	return c.Constants.DefaultGPUTDPKW
}

// normalizeGPUModel maps inputs like "NVIDIA H100 SXM" or "H100" to "h100"
func normalizeGPUModel(model string) string {
	m := strings.ToLower(strings.TrimSpace(model))
	m = strings.TrimPrefix(m, "nvidia ")
	if i := strings.IndexAny(m, " -_"); i > 0 {
		m = m[:i]
	}
	return m
}

// Tenant returns the tenant profile for class, or a zero profile when unknown
func (c *Catalog) Tenant(class string) TenantProfile {
	return c.TenantProfiles[class]
}

// PowerRatePerKWMonth returns $/kW/month for region. Known regions convert
// their $/kWh rate over HoursPerMonth; anything else uses the fixed rate.
func (c *Catalog) PowerRatePerKWMonth(region string) float64 {
	if rate, ok := c.RegionalRates[strings.ToLower(strings.TrimSpace(region))]; ok && rate > 0 {
		return rate * c.Constants.HoursPerMonth
	}
	return c.Constants.PowerCostPerKWMonth
}

// Percent returns the tier's share for profile, or 0 when the profile is missing
func (t Tier) Percent(profile string) float64 {
	return t.Distribution[profile]
}
