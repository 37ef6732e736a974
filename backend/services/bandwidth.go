// ABOUTME: Bandwidth model for sustained, burst and network overhead throughput
// ABOUTME: Per-GPU demand is weighted by workload mix and scaled to TB/s

package services

import "github.com/markalston/gpu-tco-analyzer/backend/models"

// BurstMultiplier returns the burst factor for gpus GPUs. The single step
// above LargeBurstAboveGPUs is a coarse approximation kept as-is.
func (c *StorageCalculator) BurstMultiplier(gpus int) float64 {
	k := c.catalog.Constants
	if gpus > k.LargeBurstAboveGPUs {
		return k.LargeBurstMultiplier
	}
	return k.BurstMultiplier
}

// Bandwidth derives storage bandwidth requirements for cfg
func (c *StorageCalculator) Bandwidth(cfg models.StorageConfig) models.BandwidthRequirements {
	k := c.catalog.Constants
	gpus := gpuCount(cfg)

	perGPU := cfg.Workload.Training/100*k.TrainingGiBpsPerGPU +
		cfg.Workload.Inference/100*k.InferenceGiBpsPerGPU +
		cfg.Workload.Finetuning/100*k.FinetuneGiBpsPerGPU

	sustained := perGPU * float64(gpus) * k.GiBToTBCorrection / 1000
	burstFactor := c.BurstMultiplier(gpus)
	overhead := sustained * k.NetworkOverheadFactor

	return models.BandwidthRequirements{
		PerGPUGiBps:         perGPU,
		SustainedTBps:       sustained,
		BurstMultiplier:     burstFactor,
		BurstTBps:           sustained * burstFactor,
		NetworkOverheadTBps: overhead,
		RequiredTBps:        sustained + overhead,
	}
}
