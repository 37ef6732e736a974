// ABOUTME: Service-mix deriver splitting capacity across four service tiers
// ABOUTME: Bare-metal whale, orchestrated Kubernetes, managed MLOps and inference

package services

import (
	"fmt"
	"math"

	"github.com/markalston/gpu-tco-analyzer/backend/models"
)

// platformSplit is the Kubernetes/MLOps ratio for the platform share
type platformSplit struct {
	name       string
	when       func(caps models.InfrastructureCapabilities) bool
	kubernetes float64
	mlops      float64
}

var platformSplits = []platformSplit{
	{
		name:       "no object storage for managed MLOps",
		when:       func(caps models.InfrastructureCapabilities) bool { return !caps.ObjectStorageSufficient },
		kubernetes: 1.0,
	},
	{
		name:       "2,000+ GPUs",
		when:       func(caps models.InfrastructureCapabilities) bool { return caps.GPUCount >= 2000 },
		kubernetes: 0.8,
		mlops:      0.2,
	},
	{
		name:       "1,000+ GPUs",
		when:       func(caps models.InfrastructureCapabilities) bool { return caps.GPUCount >= 1000 },
		kubernetes: 0.7,
		mlops:      0.3,
	},
	{
		name:       "under 1,000 GPUs",
		when:       func(models.InfrastructureCapabilities) bool { return true },
		kubernetes: 0.65,
		mlops:      0.35,
	},
}

// WhaleEligible reports whether the infrastructure can host a bare-metal whale tier
func (c *ServiceMixCalculator) WhaleEligible(caps models.InfrastructureCapabilities) bool {
	policy := c.catalog.ServiceMix
	return caps.GPUCount >= policy.WhaleMinGPUs &&
		caps.BandwidthClass == models.BandwidthHigh &&
		caps.NonBlocking &&
		caps.DenseTrainingSupport &&
		caps.HighPerfStorageRatio > policy.WhaleMinHighPerfRatio
}

// platformShare is the fraction of non-whale capacity given to Kubernetes and MLOps
func platformShare(caps models.InfrastructureCapabilities) float64 {
	switch {
	case caps.TrainingOptimized && !caps.InferenceOptimized:
		return 0.6
	case caps.InferenceOptimized && !caps.TrainingOptimized:
		return 0.4
	default:
		return 0.5
	}
}

// DeriveOptimalServiceMix recommends a four-tier split summing to exactly 100
func (c *ServiceMixCalculator) DeriveOptimalServiceMix(caps models.InfrastructureCapabilities) models.ServiceMixRecommendation {
	policy := c.catalog.ServiceMix
	var rationale []string

	whale := 0
	if c.WhaleEligible(caps) {
		whale = min(policy.WhaleMaxPercent, policy.WhalePercentPer1kGPUs*(caps.GPUCount/1000))
		rationale = append(rationale, fmt.Sprintf("bare-metal whale tier at %d%%: scale, fabric, cooling and storage support dedicated training", whale))
	} else {
		rationale = append(rationale, "no bare-metal whale tier: infrastructure does not meet dedicated training requirements")
	}

	remaining := 100 - whale
	platform := float64(remaining) * platformShare(caps)

	var split platformSplit
	for _, s := range platformSplits {
		if s.when(caps) {
			split = s
			break
		}
	}
	kubernetes := int(math.Round(platform * split.kubernetes))
	mlops := int(math.Round(platform * split.mlops))
	rationale = append(rationale, fmt.Sprintf("platform share %.0f%% split %.0f/%.0f Kubernetes/MLOps (%s)",
		platform, split.kubernetes*100, split.mlops*100, split.name))

	inference := min(policy.InferenceMaxPercent, remaining-kubernetes-mlops)

	if leftover := remaining - kubernetes - mlops - inference; leftover > 0 {
		if caps.ObjectStorageSufficient {
			toMLOps := int(math.Round(float64(leftover) * 0.6))
			mlops += toMLOps
			inference += leftover - toMLOps
		} else {
			toKubernetes := int(math.Round(float64(leftover) * 0.5))
			kubernetes += toKubernetes
			inference += leftover - toKubernetes
		}
		rationale = append(rationale, fmt.Sprintf("%d%% above the inference cap redistributed", leftover))
	}

	shares := NormalizeToHundred([]float64{
		float64(whale), float64(kubernetes), float64(mlops), float64(inference),
	})
	return models.ServiceMixRecommendation{
		BareMetalWhale:         shares[0],
		OrchestratedKubernetes: shares[1],
		ManagedMLOps:           shares[2],
		InferenceService:       shares[3],
		Rationale:              rationale,
	}
}
