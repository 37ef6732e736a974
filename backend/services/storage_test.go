// ABOUTME: Tests for the storage TCO engine and its component models
// ABOUTME: Covers capacity, checkpoint, tiering, vendor rules, bandwidth, cost, power and warnings

package services

import (
	"math"
	"reflect"
	"testing"

	"github.com/markalston/gpu-tco-analyzer/backend/catalog"
	"github.com/markalston/gpu-tco-analyzer/backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorageCalculator() *StorageCalculator {
	c := catalog.Default()
	return NewStorageCalculator(&c)
}

func trainingCluster(gpus int) models.StorageConfig {
	return models.StorageConfig{
		GPUCount: gpus,
		GPUModel: "h100",
		Workload: models.WorkloadMix{Training: 70, Inference: 20, Finetuning: 10},
		Tenants:  models.TenantMix{Whale: 60, Medium: 30, Small: 10},
		Budget:   models.BudgetOptimized,
		Vendor:   models.VendorAuto,
	}
}

func TestCalculate_TenThousandGPUTrainingCluster(t *testing.T) {
	calc := newTestStorageCalculator()
	r := calc.Calculate(trainingCluster(10000))

	// 10000 x 1.55 TB/GPU x 1.33 + 10000 x 0.5
	assert.InDelta(t, 25615, r.Capacity.BaseTB, 1e-6)
	assert.Equal(t, 2.0, r.Checkpoint.ModelSizeTB, "10,000 GPUs is not above the 10,000 breakpoint")
	assert.Equal(t, 50, r.Checkpoint.RetentionCount)
	assert.Equal(t, 1250, r.Checkpoint.NodeCount)
	assert.InDelta(t, 2.0, r.Checkpoint.CadenceMinutes, 1e-9)
	assert.InDelta(t, 300, r.Checkpoint.StorageOverheadTB, 1e-9)
	assert.InDelta(t, 25915, r.Capacity.TotalTB, 1e-6)
	assert.InDelta(t, 25.915, r.Capacity.TotalPB, 1e-9)

	assert.Equal(t, models.ProfileTrainingHeavy, r.DistributionProfile)
	require.Len(t, r.Capacity.Tiers, 5)
	assert.InDelta(t, 2.5915, r.Capacity.Tiers[0].CapacityPB, 1e-9)
	assert.InDelta(t, 9.07025, r.Capacity.Tiers[1].CapacityPB, 1e-9)

	assert.Equal(t, "weka", r.Vendor.Primary)
	assert.Equal(t, "ceph", r.Vendor.Secondary)
	assert.Equal(t, "mid-scale", r.Vendor.Rule)

	assert.InDelta(t, 2.15, r.Bandwidth.PerGPUGiBps, 1e-9)
	assert.InDelta(t, 23.091, r.Bandwidth.SustainedTBps, 1e-9)
	assert.Equal(t, 5.0, r.Bandwidth.BurstMultiplier)
	assert.InDelta(t, 115.455, r.Bandwidth.BurstTBps, 1e-9)
	assert.InDelta(t, 30.0183, r.Bandwidth.RequiredTBps, 1e-9)

	assert.InDelta(t, 151.60275, r.Power.TotalKW, 1e-6)
	assert.InDelta(t, 7000, r.Power.GPUPowerKW, 1e-9)

	assert.InDelta(t, 4094570, r.Costs.TotalCapex, 1e-3)
	assert.InDelta(t, 1295750, r.Costs.CapexByVendor["local"], 1e-3)
	assert.InDelta(t, 2798820, r.Costs.CapexByVendor["weka"], 1e-3)
	assert.InDelta(t, 218307.96, r.Costs.Opex.Power, 1e-3)
	assert.InDelta(t, 818914, r.Costs.Opex.Support, 1e-3)
	assert.Equal(t, 2, r.Costs.Opex.AdminHeadcount)
	assert.InDelta(t, 300000, r.Costs.Opex.Admin, 1e-9)
	assert.InDelta(t, 4094570+5*1337221.96, r.Costs.TCO5Year, 1e-3)
	assert.InDelta(t, r.Costs.TCO5Year/10000, r.Costs.CostPerGPU, 1e-6)
	assert.InDelta(t, 4094570/25915.0, r.Costs.CostPerTB, 1e-6)

	require.Len(t, r.Warnings, 1)
	assert.Contains(t, r.Warnings[0], "Metadata bottleneck")
}

func TestCalculate_ZeroGPUsYieldsZeros(t *testing.T) {
	calc := newTestStorageCalculator()
	r := calc.Calculate(trainingCluster(0))

	assert.Zero(t, r.Capacity.BaseTB)
	assert.Zero(t, r.Capacity.CheckpointTB)
	assert.Zero(t, r.Capacity.TotalTB)
	for _, tier := range r.Capacity.Tiers {
		assert.Zero(t, tier.CapacityPB, tier.TierID)
	}
	assert.Equal(t, models.CheckpointPlan{}, r.Checkpoint)
	assert.Zero(t, r.Bandwidth.SustainedTBps)
	assert.Zero(t, r.Bandwidth.RequiredTBps)
	assert.Zero(t, r.Power.TotalKW)
	assert.Zero(t, r.Power.StorageSharePct)
	assert.Zero(t, r.Costs.TotalCapex)
	assert.Zero(t, r.Costs.Opex.AnnualTotal)
	assert.Zero(t, r.Costs.TCO5Year)
	assert.Zero(t, r.Costs.CostPerGPU)
	assert.Zero(t, r.Costs.CostPerTB)
	assert.NotNil(t, r.Warnings)
	assert.Empty(t, r.Warnings)
	assert.NotEmpty(t, r.Vendor.Primary)
	assert.NotEmpty(t, r.Vendor.Secondary)
}

func TestCalculate_NegativeGPUsTreatedAsZero(t *testing.T) {
	calc := newTestStorageCalculator()
	r := calc.Calculate(trainingCluster(-50))

	assert.Zero(t, r.GPUCount)
	assert.Zero(t, r.Capacity.TotalTB)
	assert.Zero(t, r.Costs.TCO5Year)
}

func TestCalculate_IsDeterministic(t *testing.T) {
	calc := newTestStorageCalculator()
	cfg := trainingCluster(42000)

	first := calc.Calculate(cfg)
	second := calc.Calculate(cfg)
	assert.True(t, reflect.DeepEqual(first, second))
}

func TestCalculate_NoNaNOrInf(t *testing.T) {
	calc := newTestStorageCalculator()
	for _, gpus := range []int{0, 1, 7, 8, 4999, 5000, 10001, 50001, 100000, 250000} {
		r := calc.Calculate(trainingCluster(gpus))
		values := []float64{
			r.Capacity.TotalTB, r.Checkpoint.CadenceMinutes, r.Bandwidth.BurstTBps,
			r.Costs.TCO5Year, r.Costs.CostPerGPU, r.Costs.CostPerTB, r.Power.StorageSharePct,
		}
		for _, v := range values {
			assert.False(t, math.IsNaN(v) || math.IsInf(v, 0), "gpus=%d", gpus)
		}
	}
}

func TestSelectProfile(t *testing.T) {
	calc := newTestStorageCalculator()
	tests := []struct {
		name     string
		training float64
		budget   string
		want     string
	}{
		{"training-heavy wins over cost-conscious", 61, models.BudgetCostConscious, models.ProfileTrainingHeavy},
		{"exactly 60 is not training-heavy", 60, models.BudgetUnlimited, models.ProfileBalanced},
		{"cost-conscious budget", 40, models.BudgetCostConscious, models.ProfileCostOptimized},
		{"optimized budget is balanced", 40, models.BudgetOptimized, models.ProfileBalanced},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := models.StorageConfig{Workload: models.WorkloadMix{Training: tt.training}, Budget: tt.budget}
			assert.Equal(t, tt.want, calc.SelectProfile(cfg))
		})
	}
}

func TestAllocateTiers_PercentagesSumToHundred(t *testing.T) {
	calc := newTestStorageCalculator()
	for _, profile := range catalog.Profiles {
		tiers := calc.AllocateTiers(12345, profile)
		var pct, pb float64
		rounded := 0
		for _, a := range tiers {
			pct += a.Percent
			pb += a.CapacityPB
			rounded += a.RoundedPercent
		}
		assert.InDelta(t, 100, pct, 1e-6, profile)
		assert.Equal(t, 100, rounded, profile)
		assert.InDelta(t, 12.345, pb, 1e-9, profile)
	}
}

func TestCheckpoint_ModelSizeAndRetentionBuckets(t *testing.T) {
	calc := newTestStorageCalculator()
	tests := []struct {
		gpus      int
		sizeTB    float64
		retention int
	}{
		{100, 0.5, 20},
		{5000, 0.5, 20},
		{5001, 2, 20},
		{10000, 2, 50},
		{10001, 5, 50},
		{50000, 5, 100},
		{50001, 10, 100},
		{100001, 15, 100},
	}
	for _, tt := range tests {
		plan := calc.CheckpointPlan(tt.gpus)
		assert.Equal(t, tt.sizeTB, plan.ModelSizeTB, "gpus=%d size", tt.gpus)
		assert.Equal(t, tt.retention, plan.RetentionCount, "gpus=%d retention", tt.gpus)
		assert.InDelta(t, tt.sizeTB*float64(tt.retention)*3, plan.StorageOverheadTB, 1e-9)
	}
}

func TestCheckpoint_CadenceNeverBelowFloor(t *testing.T) {
	calc := newTestStorageCalculator()
	for gpus := 1; gpus <= 1000000; gpus *= 3 {
		plan := calc.CheckpointPlan(gpus)
		assert.GreaterOrEqual(t, plan.CadenceMinutes, 1.5, "gpus=%d", gpus)
	}
	assert.Equal(t, 1.5, calc.CheckpointPlan(100000).CadenceMinutes)
	// one node: 60 / (1 x 0.001 x 24) minutes
	assert.InDelta(t, 2500, calc.CheckpointPlan(8).CadenceMinutes, 1e-9)
	assert.Equal(t, 2, calc.CheckpointPlan(9).NodeCount, "partial nodes round up")
}

func TestSelectVendor_Rules(t *testing.T) {
	calc := newTestStorageCalculator()
	tests := []struct {
		name      string
		gpus      int
		training  float64
		budget    string
		primary   string
		secondary string
	}{
		{"mega-scale unlimited", 150000, 70, models.BudgetUnlimited, "ddn", "vast"},
		{"mega-scale cost-conscious", 150000, 70, models.BudgetCostConscious, "vast", "ceph"},
		{"mega-scale boundary", 100000, 50, models.BudgetOptimized, "vast", "ceph"},
		{"large-scale training-dominant", 99999, 71, models.BudgetUnlimited, "ibm-scale", "vast"},
		{"large-scale at 70 percent training", 25000, 70, models.BudgetUnlimited, "netapp", "pure"},
		{"mid-scale upper", 24999, 90, models.BudgetUnlimited, "weka", "ceph"},
		{"mid-scale lower", 5000, 10, models.BudgetCostConscious, "weka", "ceph"},
		{"small-scale", 4999, 90, models.BudgetUnlimited, "pure", "ceph"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := models.StorageConfig{
				GPUCount: tt.gpus,
				Workload: models.WorkloadMix{Training: tt.training},
				Budget:   tt.budget,
			}
			sel := calc.SelectVendor(cfg)
			assert.Equal(t, tt.primary, sel.Primary)
			assert.Equal(t, tt.secondary, sel.Secondary)
			assert.False(t, sel.Override)
			assert.NotEmpty(t, sel.Rationale)
		})
	}
}

func TestSelectVendor_OverrideFromObjectCatalog(t *testing.T) {
	calc := newTestStorageCalculator()
	cfg := trainingCluster(150000)
	cfg.Vendor = "MinIO"

	sel := calc.SelectVendor(cfg)
	assert.True(t, sel.Override)
	assert.Equal(t, "minio", sel.Primary)
	assert.Equal(t, "MinIO", sel.PrimaryName)
	assert.Equal(t, "ceph", sel.Secondary)
}

func TestCalculate_UnknownOverrideFallsBackToTierPrices(t *testing.T) {
	calc := newTestStorageCalculator()
	cfg := trainingCluster(10000)
	cfg.Vendor = "acme-storage"

	r := calc.Calculate(cfg)
	assert.Equal(t, "acme-storage", r.Vendor.Primary)
	assert.Equal(t, "ceph", r.Vendor.Secondary)
	assert.Contains(t, r.Vendor.Rationale, "not in catalog")
	assert.InDelta(t, 9.07025*300000, r.Costs.CapexByTier["hot"], 1e-3)
	assert.InDelta(t, 2.5915*500000, r.Costs.CapexByTier["ultra-hot"], 1e-3)
	assert.InDelta(t, 5416235, r.Costs.TotalCapex, 1e-3)
}

// The burst multiplier is a step function, a known approximation of real burst demand.
func TestBandwidth_BurstStep(t *testing.T) {
	calc := newTestStorageCalculator()
	assert.Equal(t, 5.0, calc.BurstMultiplier(50000))
	assert.Equal(t, 10.0, calc.BurstMultiplier(50001))

	b := calc.Bandwidth(trainingCluster(60000))
	assert.InDelta(t, b.SustainedTBps*10, b.BurstTBps, 1e-9)
	assert.InDelta(t, b.SustainedTBps*1.3, b.RequiredTBps, 1e-9)
}

func TestCosts_RegionalPowerRate(t *testing.T) {
	calc := newTestStorageCalculator()
	cfg := trainingCluster(10000)
	cfg.Region = "eu-west"

	r := calc.Calculate(cfg)
	assert.InDelta(t, 0.19*730, r.Costs.Opex.PowerRatePerKWMonth, 1e-9)
	assert.InDelta(t, r.Power.TotalKW*0.19*730*12, r.Costs.Opex.Power, 1e-6)
}

func TestCosts_TCOByYearIsCumulative(t *testing.T) {
	calc := newTestStorageCalculator()
	r := calc.Calculate(trainingCluster(20000))

	require.Len(t, r.Costs.TCOByYear, 5)
	for i, v := range r.Costs.TCOByYear {
		assert.InDelta(t, r.Costs.TotalCapex+float64(i+1)*r.Costs.Opex.AnnualTotal, v, 1e-6)
	}
	assert.InDelta(t, r.Costs.TCOByYear[4], r.Costs.TCO5Year, 1e-6)
}

func TestAdminHeadcount(t *testing.T) {
	calc := newTestStorageCalculator()
	assert.Equal(t, 0, calc.AdminHeadcount(0))
	assert.Equal(t, 1, calc.AdminHeadcount(1))
	assert.Equal(t, 1, calc.AdminHeadcount(5000))
	assert.Equal(t, 2, calc.AdminHeadcount(5001))
}

func TestWarnings_Thresholds(t *testing.T) {
	calc := newTestStorageCalculator()
	none := models.PowerDraw{}

	assert.Empty(t, calc.Warnings(9999, none, models.VendorSelection{}))
	assert.Len(t, calc.Warnings(10000, none, models.VendorSelection{}), 1)
	assert.Len(t, calc.Warnings(32767, none, models.VendorSelection{}), 1)
	assert.Len(t, calc.Warnings(32768, none, models.VendorSelection{}), 2)

	all := calc.Warnings(150000, none, models.VendorSelection{Primary: "ddn"})
	require.Len(t, all, 4)
	c := catalog.Default()
	for i, threshold := range c.ScaleThresholds {
		assert.Equal(t, threshold.Message, all[i], "warnings follow table order")
	}
}

func TestWarnings_PowerAndVendorScaleAdvisories(t *testing.T) {
	calc := newTestStorageCalculator()

	w := calc.Warnings(1000, models.PowerDraw{TotalKW: 1500}, models.VendorSelection{Primary: "pure"})
	require.Len(t, w, 1)
	assert.Contains(t, w[0], "1500 kW")

	w = calc.Warnings(30000, models.PowerDraw{}, models.VendorSelection{Primary: "pure"})
	require.Len(t, w, 2)
	assert.Contains(t, w[1], "Pure Storage FlashBlade is validated up to 25000 GPUs")
}

func TestNormalizeToHundred(t *testing.T) {
	tests := []struct {
		name    string
		weights []float64
		want    []int
	}{
		{"already whole", []float64{25, 25, 50}, []int{25, 25, 50}},
		{"thirds give residual to largest", []float64{1, 1, 1}, []int{34, 33, 33}},
		{"scales arbitrary totals", []float64{1, 3}, []int{25, 75}},
		{"residual to largest bucket", []float64{10.4, 10.4, 79.2}, []int{10, 10, 80}},
		{"negative treated as zero", []float64{-5, 50, 50}, []int{0, 50, 50}},
		{"all zero", []float64{0, 0}, []int{0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeToHundred(tt.weights)
			assert.Equal(t, tt.want, got)
		})
	}
}
