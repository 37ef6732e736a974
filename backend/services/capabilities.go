// ABOUTME: Infrastructure capability analysis for service-mix derivation
// ABOUTME: Turns compute, fabric, storage and facility descriptions into capability flags

package services

import (
	"strconv"
	"strings"

	"github.com/docker/go-units"
	"github.com/markalston/gpu-tco-analyzer/backend/catalog"
	"github.com/markalston/gpu-tco-analyzer/backend/models"
)

var (
	nonBlockingTopologies = map[string]bool{"fat-tree": true, "rail-optimized": true}
	rdmaFabrics           = map[string]bool{"infiniband": true, "roce": true}
	liquidCooling         = map[string]bool{"liquid": true, "immersion": true}
	highPerfTiers         = map[string]bool{"ultra-hot": true, "hot": true}
)

const objectTier = "object"

// ServiceMixCalculator derives capabilities, service mixes and constraints
// from physical infrastructure descriptions. It holds no mutable state.
type ServiceMixCalculator struct {
	catalog *catalog.Catalog
}

// NewServiceMixCalculator creates a calculator bound to c
func NewServiceMixCalculator(c *catalog.Catalog) *ServiceMixCalculator {
	return &ServiceMixCalculator{catalog: c}
}

// Analyze derives capabilities, the recommended mix and constraints in one call
func (c *ServiceMixCalculator) Analyze(cfg models.InfrastructureConfig) models.ServiceMixResponse {
	caps := c.AnalyzeInfrastructureCapabilities(cfg)
	return models.ServiceMixResponse{
		Capabilities:   caps,
		Recommendation: c.DeriveOptimalServiceMix(caps),
		Constraints:    c.IdentifyServiceConstraints(caps),
	}
}

// AnalyzeInfrastructureCapabilities derives capability flags from cfg
func (c *ServiceMixCalculator) AnalyzeInfrastructureCapabilities(cfg models.InfrastructureConfig) models.InfrastructureCapabilities {
	policy := c.catalog.ServiceMix
	gpus := cfg.Compute.GPUCount
	if gpus < 0 {
		gpus = 0
	}

	caps := models.InfrastructureCapabilities{
		GPUCount: gpus,
		GPUModel: cfg.Compute.GPUModel,
	}

	gpu := c.catalog.GPU(cfg.Compute.GPUModel)
	caps.GPUModelKnown = gpu != nil

	fabric := strings.ToLower(cfg.Networking.FabricType)
	caps.BandwidthClass = c.bandwidthClass(fabric, cfg.Networking.BandwidthPerGPUGbps)
	caps.NonBlocking = isNonBlocking(cfg.Networking)
	caps.TrainingOptimized = caps.BandwidthClass == models.BandwidthHigh && caps.NonBlocking
	caps.InferenceOptimized = (gpu != nil && gpu.Class == "inference") ||
		(!caps.TrainingOptimized && fabric == "ethernet")

	for _, tier := range cfg.Storage.Tiers {
		tb := StorageTB(tier.Capacity, tier.Unit)
		name := strings.ToLower(tier.Tier)
		caps.TotalStorageTB += tb
		if highPerfTiers[name] {
			caps.HighPerfStorageTB += tb
		}
		if name == objectTier {
			caps.ObjectStorageTB += tb
		}
	}
	if caps.TotalStorageTB > 0 {
		caps.HighPerfStorageRatio = caps.HighPerfStorageTB / caps.TotalStorageTB
	}
	caps.ObjectStorageSufficient = gpus > 0 && caps.ObjectStorageTB >= policy.ObjectTBPerGPU*float64(gpus)

	cooling := strings.ToLower(cfg.Power.CoolingType)
	caps.LiquidCooled = liquidCooling[cooling]
	if gpus > 0 {
		caps.PowerPerGPUKW = cfg.Power.TotalCapacityMW * 1000 / float64(gpus)
	}
	caps.DenseTrainingSupport = caps.LiquidCooled &&
		caps.PowerPerGPUKW >= policy.DensePowerHeadroom*c.catalog.GPUTDPKW(cfg.Compute.GPUModel)

	caps.PUE = cfg.Power.PUE
	if caps.PUE <= 0 {
		caps.PUE = c.defaultPUE(cooling)
	}

	return caps
}

func (c *ServiceMixCalculator) bandwidthClass(fabric string, gbps int) string {
	policy := c.catalog.ServiceMix
	switch {
	case rdmaFabrics[fabric] && gbps >= policy.HighBandwidthGbps:
		return models.BandwidthHigh
	case gbps >= policy.MediumBandwidthGbps:
		return models.BandwidthMedium
	default:
		return models.BandwidthLow
	}
}

// isNonBlocking uses the explicit oversubscription ratio when given,
// otherwise the topology name.
func isNonBlocking(n models.NetworkingConfig) bool {
	if n.Oversubscription > 0 {
		return n.Oversubscription <= 1
	}
	return nonBlockingTopologies[strings.ToLower(n.Topology)]
}

func (c *ServiceMixCalculator) defaultPUE(cooling string) float64 {
	if pue, ok := c.catalog.ServiceMix.CoolingPUE[cooling]; ok {
		return pue
	}
	return c.catalog.ServiceMix.DefaultPUE
}

// StorageTB converts a capacity in unit (GB, TB, PB; decimal) to TB.
// An empty or unrecognized unit is taken as TB.
func StorageTB(capacity float64, unit string) float64 {
	if capacity <= 0 {
		return 0
	}
	u := strings.TrimSpace(unit)
	if u == "" {
		return capacity
	}
	bytes, err := units.FromHumanSize(strconv.FormatFloat(capacity, 'f', -1, 64) + u)
	if err != nil {
		return capacity
	}
	return float64(bytes) / 1e12
}
