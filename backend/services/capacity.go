// ABOUTME: Capacity model for raw storage demand
// ABOUTME: Weights per-tenant TB/GPU by tenant mix and workload multipliers

package services

import "github.com/markalston/gpu-tco-analyzer/backend/models"

// tenantTBPerGPU is the tenant-mix-weighted TB/GPU
func (c *StorageCalculator) tenantTBPerGPU(mix models.TenantMix) float64 {
	return mix.Whale/100*c.catalog.Tenant("whale").TBPerGPU +
		mix.Medium/100*c.catalog.Tenant("medium").TBPerGPU +
		mix.Small/100*c.catalog.Tenant("small").TBPerGPU
}

// workloadCapacityFactor weights the capacity multipliers by workload mix
func (c *StorageCalculator) workloadCapacityFactor(mix models.WorkloadMix) float64 {
	k := c.catalog.Constants
	return mix.Training/100*k.TrainingCapacityFactor +
		mix.Inference/100*k.InferenceCapacityFactor +
		mix.Finetuning/100*k.FinetuneCapacityFactor
}

// BaseCapacityTB returns dataset and working capacity before checkpoints:
// GPUs x tenant TB/GPU x workload factor, plus a flat per-GPU dataset overhead.
func (c *StorageCalculator) BaseCapacityTB(cfg models.StorageConfig) float64 {
	gpus := float64(gpuCount(cfg))
	perGPU := c.tenantTBPerGPU(cfg.Tenants) * c.workloadCapacityFactor(cfg.Workload)
	return gpus*perGPU + gpus*c.catalog.Constants.DatasetOverheadTBPerGPU
}

// gpuCount clamps negative counts to zero
func gpuCount(cfg models.StorageConfig) int {
	if cfg.GPUCount < 0 {
		return 0
	}
	return cfg.GPUCount
}
