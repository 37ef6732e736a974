// ABOUTME: Service constraint diagnostics for infrastructure capabilities
// ABOUTME: Each check is independent and reports severity, message and mitigation

package services

import (
	"fmt"

	"github.com/markalston/gpu-tco-analyzer/backend/models"
)

// IdentifyServiceConstraints lists the capability gaps limiting the service
// mix. The result is never nil.
func (c *ServiceMixCalculator) IdentifyServiceConstraints(caps models.InfrastructureCapabilities) []models.ServiceConstraint {
	policy := c.catalog.ServiceMix
	constraints := []models.ServiceConstraint{}

	if caps.GPUCount < policy.WhaleMinGPUs {
		constraints = append(constraints, models.ServiceConstraint{
			ID:         "scale",
			Severity:   models.SeverityInfo,
			Message:    fmt.Sprintf("%d GPUs is below the %d GPUs needed for a bare-metal whale tier", caps.GPUCount, policy.WhaleMinGPUs),
			Mitigation: "Offer large tenants reserved Kubernetes node pools until the fleet grows",
		})
	}

	switch caps.BandwidthClass {
	case models.BandwidthLow:
		constraints = append(constraints, models.ServiceConstraint{
			ID:         "bandwidth",
			Severity:   models.SeverityCritical,
			Message:    fmt.Sprintf("Fabric bandwidth below %d Gbps per GPU cannot sustain distributed training", policy.MediumBandwidthGbps),
			Mitigation: "Upgrade to 400G InfiniBand or RoCE NICs per GPU",
		})
	case models.BandwidthMedium:
		constraints = append(constraints, models.ServiceConstraint{
			ID:         "bandwidth",
			Severity:   models.SeverityWarning,
			Message:    "Fabric bandwidth limits large-scale distributed training",
			Mitigation: fmt.Sprintf("Provide %d+ Gbps RDMA bandwidth per GPU for training tenants", policy.HighBandwidthGbps),
		})
	}

	if !caps.NonBlocking {
		constraints = append(constraints, models.ServiceConstraint{
			ID:         "topology",
			Severity:   models.SeverityWarning,
			Message:    "Oversubscribed fabric causes collective-communication slowdowns",
			Mitigation: "Deploy a non-blocking fat-tree or rail-optimized topology for training pods",
		})
	}

	if !caps.DenseTrainingSupport {
		msg := "Facility power per GPU is too low for dense training racks"
		if !caps.LiquidCooled {
			msg = "Air cooling limits rack density for current-generation training GPUs"
		}
		constraints = append(constraints, models.ServiceConstraint{
			ID:         "cooling",
			Severity:   models.SeverityWarning,
			Message:    msg,
			Mitigation: "Add direct liquid cooling and at least 1.5x GPU TDP of facility power per GPU",
		})
	}

	switch {
	case caps.HighPerfStorageRatio < 0.2:
		constraints = append(constraints, models.ServiceConstraint{
			ID:         "storage-performance",
			Severity:   models.SeverityCritical,
			Message:    fmt.Sprintf("High-performance storage is %.0f%% of capacity; training will be I/O bound", caps.HighPerfStorageRatio*100),
			Mitigation: "Expand all-flash hot tiers to at least 20% of installed capacity",
		})
	case caps.HighPerfStorageRatio <= policy.WhaleMinHighPerfRatio:
		constraints = append(constraints, models.ServiceConstraint{
			ID:         "storage-performance",
			Severity:   models.SeverityWarning,
			Message:    fmt.Sprintf("High-performance storage is %.0f%% of capacity", caps.HighPerfStorageRatio*100),
			Mitigation: fmt.Sprintf("Raise hot-tier share above %.0f%% to support whale tenants", policy.WhaleMinHighPerfRatio*100),
		})
	}

	if !caps.ObjectStorageSufficient {
		constraints = append(constraints, models.ServiceConstraint{
			ID:         "object-storage",
			Severity:   models.SeverityWarning,
			Message:    "Object storage is insufficient for managed MLOps datasets and model registries",
			Mitigation: fmt.Sprintf("Provision at least %.1f TB of object storage per GPU", policy.ObjectTBPerGPU),
		})
	}

	switch {
	case caps.PUE > policy.PUECritical:
		constraints = append(constraints, models.ServiceConstraint{
			ID:         "efficiency",
			Severity:   models.SeverityCritical,
			Message:    fmt.Sprintf("PUE %.2f makes GPU hours uncompetitive", caps.PUE),
			Mitigation: "Retrofit cooling or relocate capacity to a more efficient facility",
		})
	case caps.PUE > policy.PUEWarning:
		constraints = append(constraints, models.ServiceConstraint{
			ID:         "efficiency",
			Severity:   models.SeverityWarning,
			Message:    fmt.Sprintf("PUE %.2f inflates operating cost", caps.PUE),
			Mitigation: "Consider liquid cooling or hot-aisle containment",
		})
	}

	if !caps.GPUModelKnown {
		constraints = append(constraints, models.ServiceConstraint{
			ID:         "gpu-model",
			Severity:   models.SeverityInfo,
			Message:    fmt.Sprintf("GPU model %q is not in the catalog; default power figures were used", caps.GPUModel),
			Mitigation: "Add the GPU model to the catalog override file",
		})
	}

	return constraints
}
