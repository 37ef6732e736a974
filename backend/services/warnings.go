// ABOUTME: Scale warning generator driven by the catalog threshold table
// ABOUTME: Emits threshold warnings in table order, then power and vendor-scale advisories

package services

import (
	"fmt"

	"github.com/markalston/gpu-tco-analyzer/backend/models"
)

// Warnings returns every scale warning that applies to the plan. The result is never nil.
func (c *StorageCalculator) Warnings(gpus int, power models.PowerDraw, vendor models.VendorSelection) []string {
	warnings := []string{}

	for _, t := range c.catalog.ScaleThresholds {
		if gpus >= t.GPUCount {
			warnings = append(warnings, t.Message)
		}
	}

	if alert := c.catalog.Constants.StoragePowerAlertKW; alert > 0 && power.TotalKW >= alert {
		warnings = append(warnings, fmt.Sprintf(
			"Storage power draw %.0f kW exceeds %.0f kW: confirm facility power and cooling allocation for storage racks",
			power.TotalKW, alert))
	}

	if v := c.catalog.AnyVendor(vendor.Primary); v != nil && v.MaxGPUScale > 0 && gpus > v.MaxGPUScale {
		warnings = append(warnings, fmt.Sprintf(
			"%s is validated up to %d GPUs; %d GPUs exceeds its reference deployments",
			v.Name, v.MaxGPUScale, gpus))
	}

	return warnings
}
