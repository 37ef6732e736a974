// ABOUTME: Tests for capability analysis, service-mix derivation and constraints
// ABOUTME: Anchors the three reference clusters and the always-100 invariant

package services

import (
	"testing"

	"github.com/markalston/gpu-tco-analyzer/backend/catalog"
	"github.com/markalston/gpu-tco-analyzer/backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServiceMixCalculator() *ServiceMixCalculator {
	c := catalog.Default()
	return NewServiceMixCalculator(&c)
}

func trainingFactory() models.InfrastructureConfig {
	return models.InfrastructureConfig{
		Name:    "training-factory",
		Compute: models.ComputeConfig{GPUModel: "H100", GPUCount: 10000, GPUsPerNode: 8},
		Networking: models.NetworkingConfig{
			FabricType:          "infiniband",
			Topology:            "fat-tree",
			BandwidthPerGPUGbps: 400,
		},
		Storage: models.StorageInfraConfig{Tiers: []models.StorageTierCapacity{
			{Tier: "ultra-hot", Capacity: 2, Unit: "PB"},
			{Tier: "hot", Capacity: 6, Unit: "PB"},
			{Tier: "warm", Capacity: 3, Unit: "PB"},
			{Tier: "object", Capacity: 6, Unit: "PB"},
		}},
		Power: models.PowerConfig{TotalCapacityMW: 15, CoolingType: "liquid"},
	}
}

func inferenceEdge() models.InfrastructureConfig {
	return models.InfrastructureConfig{
		Name:    "inference-edge",
		Compute: models.ComputeConfig{GPUModel: "l40s", GPUCount: 500},
		Networking: models.NetworkingConfig{
			FabricType:          "ethernet",
			Topology:            "leaf-spine",
			Oversubscription:    3,
			BandwidthPerGPUGbps: 100,
		},
		Storage: models.StorageInfraConfig{Tiers: []models.StorageTierCapacity{
			{Tier: "hot", Capacity: 100, Unit: "TB"},
			{Tier: "warm", Capacity: 400, Unit: "TB"},
		}},
		Power: models.PowerConfig{TotalCapacityMW: 0.5, CoolingType: "air"},
	}
}

func midRoCECluster() models.InfrastructureConfig {
	return models.InfrastructureConfig{
		Compute: models.ComputeConfig{GPUModel: "h100", GPUCount: 1500},
		Networking: models.NetworkingConfig{
			FabricType:          "roce",
			Topology:            "fat-tree",
			BandwidthPerGPUGbps: 200,
		},
		Storage: models.StorageInfraConfig{Tiers: []models.StorageTierCapacity{
			{Tier: "hot", Capacity: 300, Unit: "TB"},
			{Tier: "warm", Capacity: 500, Unit: "TB"},
			{Tier: "object", Capacity: 1, Unit: "PB"},
		}},
		Power: models.PowerConfig{TotalCapacityMW: 2, CoolingType: "hybrid"},
	}
}

func constraintIDs(constraints []models.ServiceConstraint) []string {
	ids := make([]string, 0, len(constraints))
	for _, c := range constraints {
		ids = append(ids, c.ID)
	}
	return ids
}

func TestAnalyzeCapabilities_TrainingFactory(t *testing.T) {
	calc := newTestServiceMixCalculator()
	caps := calc.AnalyzeInfrastructureCapabilities(trainingFactory())

	assert.True(t, caps.GPUModelKnown)
	assert.Equal(t, models.BandwidthHigh, caps.BandwidthClass)
	assert.True(t, caps.NonBlocking)
	assert.True(t, caps.TrainingOptimized)
	assert.False(t, caps.InferenceOptimized)
	assert.InDelta(t, 17000, caps.TotalStorageTB, 1e-6)
	assert.InDelta(t, 8000, caps.HighPerfStorageTB, 1e-6)
	assert.InDelta(t, 8000.0/17000.0, caps.HighPerfStorageRatio, 1e-9)
	assert.True(t, caps.ObjectStorageSufficient)
	assert.True(t, caps.LiquidCooled)
	assert.InDelta(t, 1.5, caps.PowerPerGPUKW, 1e-9)
	assert.True(t, caps.DenseTrainingSupport)
	assert.Equal(t, 1.2, caps.PUE, "liquid cooling default")
}

func TestAnalyzeCapabilities_InferenceEdge(t *testing.T) {
	calc := newTestServiceMixCalculator()
	caps := calc.AnalyzeInfrastructureCapabilities(inferenceEdge())

	assert.Equal(t, models.BandwidthLow, caps.BandwidthClass)
	assert.False(t, caps.NonBlocking, "oversubscription 3:1 overrides topology")
	assert.False(t, caps.TrainingOptimized)
	assert.True(t, caps.InferenceOptimized)
	assert.False(t, caps.ObjectStorageSufficient)
	assert.False(t, caps.DenseTrainingSupport)
	assert.InDelta(t, 0.2, caps.HighPerfStorageRatio, 1e-9)
	assert.Equal(t, 1.5, caps.PUE)
}

func TestAnalyzeCapabilities_EmptyConfig(t *testing.T) {
	calc := newTestServiceMixCalculator()
	caps := calc.AnalyzeInfrastructureCapabilities(models.InfrastructureConfig{})

	assert.Equal(t, 0, caps.GPUCount)
	assert.False(t, caps.GPUModelKnown)
	assert.Equal(t, 0.0, caps.HighPerfStorageRatio)
	assert.Equal(t, 0.0, caps.PowerPerGPUKW)
	assert.False(t, caps.ObjectStorageSufficient)
	assert.Equal(t, 1.5, caps.PUE)
}

func TestAnalyzeCapabilities_ExplicitPUEWins(t *testing.T) {
	calc := newTestServiceMixCalculator()
	cfg := trainingFactory()
	cfg.Power.PUE = 1.1
	caps := calc.AnalyzeInfrastructureCapabilities(cfg)
	assert.Equal(t, 1.1, caps.PUE)
}

func TestDeriveOptimalServiceMix_ReferenceClusters(t *testing.T) {
	tests := []struct {
		name                                string
		cfg                                 models.InfrastructureConfig
		whale, kubernetes, mlops, inference int
	}{
		{"training factory", trainingFactory(), 30, 34, 8, 28},
		{"inference edge", inferenceEdge(), 0, 45, 0, 55},
		{"mid RoCE cluster", midRoCECluster(), 0, 35, 15, 50},
	}

	calc := newTestServiceMixCalculator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			caps := calc.AnalyzeInfrastructureCapabilities(tt.cfg)
			mix := calc.DeriveOptimalServiceMix(caps)

			assert.Equal(t, tt.whale, mix.BareMetalWhale)
			assert.Equal(t, tt.kubernetes, mix.OrchestratedKubernetes)
			assert.Equal(t, tt.mlops, mix.ManagedMLOps)
			assert.Equal(t, tt.inference, mix.InferenceService)
			assert.Equal(t, 100, mix.Total())
			assert.NotEmpty(t, mix.Rationale)
		})
	}
}

func TestDeriveOptimalServiceMix_WhaleShareScalesAndCaps(t *testing.T) {
	calc := newTestServiceMixCalculator()
	for _, tt := range []struct {
		gpus  int
		whale int
	}{
		{4999, 0},
		{5000, 25},
		{5999, 25},
		{6000, 30},
		{100000, 30},
	} {
		cfg := trainingFactory()
		cfg.Compute.GPUCount = tt.gpus
		cfg.Power.TotalCapacityMW = float64(tt.gpus) * 1.5 / 1000
		cfg.Storage.Tiers = []models.StorageTierCapacity{
			{Tier: "hot", Capacity: float64(tt.gpus), Unit: "TB"},
			{Tier: "object", Capacity: float64(tt.gpus) / 2, Unit: "TB"},
		}
		mix := calc.DeriveOptimalServiceMix(calc.AnalyzeInfrastructureCapabilities(cfg))
		assert.Equal(t, tt.whale, mix.BareMetalWhale, "gpus=%d", tt.gpus)
		assert.Equal(t, 100, mix.Total(), "gpus=%d", tt.gpus)
	}
}

func TestDeriveOptimalServiceMix_WhaleNeedsEveryCapability(t *testing.T) {
	calc := newTestServiceMixCalculator()
	mutations := map[string]func(*models.InfrastructureConfig){
		"ethernet fabric":   func(c *models.InfrastructureConfig) { c.Networking.FabricType = "ethernet" },
		"oversubscribed":    func(c *models.InfrastructureConfig) { c.Networking.Oversubscription = 2 },
		"air cooled":        func(c *models.InfrastructureConfig) { c.Power.CoolingType = "air" },
		"thin power":        func(c *models.InfrastructureConfig) { c.Power.TotalCapacityMW = 5 },
		"capacity-heavy":    func(c *models.InfrastructureConfig) { c.Storage.Tiers[2].Capacity = 30 },
		"below whale scale": func(c *models.InfrastructureConfig) { c.Compute.GPUCount = 4000 },
	}
	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			cfg := trainingFactory()
			mutate(&cfg)
			caps := calc.AnalyzeInfrastructureCapabilities(cfg)
			assert.False(t, calc.WhaleEligible(caps))
			mix := calc.DeriveOptimalServiceMix(caps)
			assert.Zero(t, mix.BareMetalWhale)
			assert.Equal(t, 100, mix.Total())
		})
	}
}

func TestDeriveOptimalServiceMix_AlwaysSumsToHundred(t *testing.T) {
	calc := newTestServiceMixCalculator()
	for _, gpus := range []int{0, 1, 7, 999, 1000, 1999, 2000, 4999, 5000, 12345, 250000} {
		for _, fabric := range []string{"infiniband", "roce", "ethernet", ""} {
			for _, bw := range []int{0, 100, 200, 400, 800} {
				cfg := trainingFactory()
				cfg.Compute.GPUCount = gpus
				cfg.Networking.FabricType = fabric
				cfg.Networking.BandwidthPerGPUGbps = bw
				mix := calc.DeriveOptimalServiceMix(calc.AnalyzeInfrastructureCapabilities(cfg))
				require.Equal(t, 100, mix.Total(), "gpus=%d fabric=%q bw=%d", gpus, fabric, bw)
				assert.LessOrEqual(t, mix.BareMetalWhale, 30)
				assert.GreaterOrEqual(t, mix.ManagedMLOps, 0)
				assert.GreaterOrEqual(t, mix.InferenceService, 0)
			}
		}
	}
}

func TestIdentifyServiceConstraints_TrainingFactoryIsClean(t *testing.T) {
	calc := newTestServiceMixCalculator()
	constraints := calc.IdentifyServiceConstraints(calc.AnalyzeInfrastructureCapabilities(trainingFactory()))
	assert.NotNil(t, constraints)
	assert.Empty(t, constraints)
}

func TestIdentifyServiceConstraints_InferenceEdge(t *testing.T) {
	calc := newTestServiceMixCalculator()
	constraints := calc.IdentifyServiceConstraints(calc.AnalyzeInfrastructureCapabilities(inferenceEdge()))

	assert.Equal(t, []string{
		"scale", "bandwidth", "topology", "cooling", "storage-performance", "object-storage",
	}, constraintIDs(constraints))

	bySeverity := map[string]string{}
	for _, c := range constraints {
		bySeverity[c.ID] = c.Severity
		assert.NotEmpty(t, c.Message)
		assert.NotEmpty(t, c.Mitigation)
	}
	assert.Equal(t, models.SeverityInfo, bySeverity["scale"])
	assert.Equal(t, models.SeverityCritical, bySeverity["bandwidth"])
	assert.Equal(t, models.SeverityWarning, bySeverity["storage-performance"])
	assert.Contains(t, constraints[3].Message, "Air cooling")
}

func TestIdentifyServiceConstraints_Severities(t *testing.T) {
	calc := newTestServiceMixCalculator()
	base := calc.AnalyzeInfrastructureCapabilities(trainingFactory())

	tests := []struct {
		name     string
		mutate   func(*models.InfrastructureCapabilities)
		id       string
		severity string
	}{
		{"medium bandwidth", func(c *models.InfrastructureCapabilities) { c.BandwidthClass = models.BandwidthMedium }, "bandwidth", models.SeverityWarning},
		{"starved hot tier", func(c *models.InfrastructureCapabilities) { c.HighPerfStorageRatio = 0.1 }, "storage-performance", models.SeverityCritical},
		{"pue warning", func(c *models.InfrastructureCapabilities) { c.PUE = 1.6 }, "efficiency", models.SeverityWarning},
		{"pue critical", func(c *models.InfrastructureCapabilities) { c.PUE = 2.0 }, "efficiency", models.SeverityCritical},
		{"unknown gpu", func(c *models.InfrastructureCapabilities) { c.GPUModelKnown = false }, "gpu-model", models.SeverityInfo},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			caps := base
			tt.mutate(&caps)
			constraints := calc.IdentifyServiceConstraints(caps)
			require.Len(t, constraints, 1)
			assert.Equal(t, tt.id, constraints[0].ID)
			assert.Equal(t, tt.severity, constraints[0].Severity)
		})
	}
}

func TestAnalyze_BundlesAllThree(t *testing.T) {
	calc := newTestServiceMixCalculator()
	resp := calc.Analyze(inferenceEdge())
	assert.Equal(t, 500, resp.Capabilities.GPUCount)
	assert.Equal(t, 100, resp.Recommendation.Total())
	assert.Len(t, resp.Constraints, 6)
}

func TestStorageTB(t *testing.T) {
	tests := []struct {
		capacity float64
		unit     string
		want     float64
	}{
		{10, "TB", 10},
		{10, "", 10},
		{500, "GB", 0.5},
		{1.5, "PB", 1500},
		{2, "pb", 2000},
		{7, "parsecs", 7},
		{-3, "TB", 0},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, StorageTB(tt.capacity, tt.unit), 1e-9, "%v %s", tt.capacity, tt.unit)
	}
}
