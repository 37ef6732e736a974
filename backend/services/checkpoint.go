// ABOUTME: Checkpoint model for model size, cadence, retention and overhead
// ABOUTME: Cadence follows node failure rate and never drops below the catalog floor

package services

import (
	"math"

	"github.com/markalston/gpu-tco-analyzer/backend/models"
)

// ModelSizeTB returns the checkpoint size for a cluster of gpus GPUs
func (c *StorageCalculator) ModelSizeTB(gpus int) float64 {
	for _, b := range c.catalog.Constants.ModelSizeBuckets {
		if gpus > b.AboveGPUs {
			return b.ModelSizeTB
		}
	}
	return c.catalog.Constants.DefaultModelSizeTB
}

// RetentionCount returns how many checkpoints are retained at this scale
func (c *StorageCalculator) RetentionCount(gpus int) int {
	for _, b := range c.catalog.Constants.RetentionBuckets {
		if gpus >= b.MinGPUs {
			return b.Count
		}
	}
	return c.catalog.Constants.DefaultRetention
}

// CheckpointPlan derives the checkpoint parameters for gpus GPUs.
// A cluster with no GPUs gets an all-zero plan.
func (c *StorageCalculator) CheckpointPlan(gpus int) models.CheckpointPlan {
	if gpus <= 0 {
		return models.CheckpointPlan{}
	}

	k := c.catalog.Constants
	nodes := int(math.Ceil(float64(gpus) / float64(k.GPUsPerNode)))

	cadence := k.MinCheckpointMinutes
	if failureFactor := float64(nodes) * k.FailureRatePerNodeDay * 24; failureFactor > 0 {
		cadence = math.Max(k.MinCheckpointMinutes, 1/failureFactor*60)
	}

	size := c.ModelSizeTB(gpus)
	retention := c.RetentionCount(gpus)

	return models.CheckpointPlan{
		ModelSizeTB:       size,
		NodeCount:         nodes,
		FailureRate:       k.FailureRatePerNodeDay,
		CadenceMinutes:    cadence,
		RetentionCount:    retention,
		ReplicationFactor: k.CheckpointReplication,
		StorageOverheadTB: size * float64(retention) * float64(k.CheckpointReplication),
	}
}
