// ABOUTME: Built-in reference catalog used when no override file is configured
// ABOUTME: Vendor pricing, tier distribution, GPU power and engine coefficients

package catalog

// DefaultVersion identifies the built-in catalog
const DefaultVersion = "builtin-2025.1"

// Default returns a fresh copy of the built-in catalog.
// Callers may modify the returned value freely.
func Default() Catalog {
	return Catalog{
		Version: DefaultVersion,
		GPUs: []GPU{
			{ID: "h100", Name: "NVIDIA H100", TDPKW: 0.7, Class: "training"},
			{ID: "h200", Name: "NVIDIA H200", TDPKW: 0.7, Class: "training"},
			{ID: "b200", Name: "NVIDIA B200", TDPKW: 1.0, Class: "training"},
			{ID: "gb200", Name: "NVIDIA GB200", TDPKW: 1.2, Class: "training"},
			{ID: "a100", Name: "NVIDIA A100", TDPKW: 0.4, Class: "training"},
			{ID: "l40s", Name: "NVIDIA L40S", TDPKW: 0.35, Class: "inference"},
			{ID: "l4", Name: "NVIDIA L4", TDPKW: 0.072, Class: "inference"},
		},
		Vendors: []Vendor{
			{ID: "ddn", Name: "DDN EXAScaler", Category: "parallel-filesystem", CostPerPB: 180000, PowerPerPB: 6.0, ThroughputClass: "extreme", LatencyClass: "ultra-low", MaxGPUScale: 500000},
			{ID: "vast", Name: "VAST Data", Category: "software-defined", CostPerPB: 140000, PowerPerPB: 4.5, ThroughputClass: "very-high", LatencyClass: "low", MaxGPUScale: 200000},
			{ID: "weka", Name: "WEKA", Category: "software-defined", CostPerPB: 120000, PowerPerPB: 5.0, ThroughputClass: "very-high", LatencyClass: "ultra-low", MaxGPUScale: 100000},
			{ID: "ibm-scale", Name: "IBM Storage Scale", Category: "parallel-filesystem", CostPerPB: 150000, PowerPerPB: 5.5, ThroughputClass: "extreme", LatencyClass: "low", MaxGPUScale: 150000},
			{ID: "netapp", Name: "NetApp AFF", Category: "enterprise-nas", CostPerPB: 170000, PowerPerPB: 5.5, ThroughputClass: "high", LatencyClass: "low", MaxGPUScale: 50000},
			{ID: "pure", Name: "Pure Storage FlashBlade", Category: "enterprise-appliance", CostPerPB: 160000, PowerPerPB: 4.0, ThroughputClass: "high", LatencyClass: "low", MaxGPUScale: 25000},
			{ID: "ceph", Name: "Ceph", Category: "open-source", CostPerPB: 60000, PowerPerPB: 3.5, ThroughputClass: "medium", LatencyClass: "medium", MaxGPUScale: 100000},
		},
		ObjectVendors: []Vendor{
			{ID: "minio", Name: "MinIO", Category: "object", CostPerPB: 40000, PowerPerPB: 3.0, ThroughputClass: "medium", LatencyClass: "high", MaxGPUScale: 1000000},
			{ID: "ceph-rgw", Name: "Ceph RADOS Gateway", Category: "object", CostPerPB: 45000, PowerPerPB: 3.2, ThroughputClass: "medium", LatencyClass: "high", MaxGPUScale: 1000000},
		},
		Tiers: []Tier{
			{
				ID:   "ultra-hot",
				Name: "Ultra-hot (local NVMe)",
				Distribution: map[string]float64{
					"training-heavy": 10,
					"balanced":       5,
					"cost-optimized": 3,
				},
				CostRange:           CostRange{MinPerPB: 400000, MaxPerPB: 600000},
				CostPerPB:           500000,
				PowerDensityKWPerPB: 12,
				LocalPricing:        true,
				LatencyMs:           0.1,
				IOPSPerPB:           10000000,
				ThroughputGBpsPerPB: 100,
			},
			{
				ID:   "hot",
				Name: "Hot (all-flash shared)",
				Distribution: map[string]float64{
					"training-heavy": 35,
					"balanced":       25,
					"cost-optimized": 15,
				},
				CostRange:           CostRange{MinPerPB: 250000, MaxPerPB: 350000},
				CostPerPB:           300000,
				PowerDensityKWPerPB: 8,
				LatencyMs:           0.5,
				IOPSPerPB:           2000000,
				ThroughputGBpsPerPB: 40,
			},
			{
				ID:   "warm",
				Name: "Warm (hybrid flash)",
				Distribution: map[string]float64{
					"training-heavy": 30,
					"balanced":       35,
					"cost-optimized": 32,
				},
				CostRange:           CostRange{MinPerPB: 120000, MaxPerPB: 180000},
				CostPerPB:           150000,
				PowerDensityKWPerPB: 5,
				LatencyMs:           2,
				IOPSPerPB:           500000,
				ThroughputGBpsPerPB: 15,
			},
			{
				ID:   "cold",
				Name: "Cold (capacity HDD)",
				Distribution: map[string]float64{
					"training-heavy": 15,
					"balanced":       20,
					"cost-optimized": 30,
				},
				CostRange:           CostRange{MinPerPB: 40000, MaxPerPB: 60000},
				CostPerPB:           50000,
				PowerDensityKWPerPB: 2,
				LatencyMs:           10,
				IOPSPerPB:           50000,
				ThroughputGBpsPerPB: 5,
			},
			{
				ID:   "archive",
				Name: "Archive (object / tape)",
				Distribution: map[string]float64{
					"training-heavy": 10,
					"balanced":       15,
					"cost-optimized": 20,
				},
				CostRange:           CostRange{MinPerPB: 10000, MaxPerPB: 20000},
				CostPerPB:           15000,
				PowerDensityKWPerPB: 0.5,
				LatencyMs:           1000,
				IOPSPerPB:           1000,
				ThroughputGBpsPerPB: 1,
			},
		},
		TenantProfiles: map[string]TenantProfile{
			"whale":  {TBPerGPU: 2.0, GiBpsPerGPU: 2.5},
			"medium": {TBPerGPU: 1.0, GiBpsPerGPU: 1.5},
			"small":  {TBPerGPU: 0.5, GiBpsPerGPU: 0.8},
		},
		RegionalRates: map[string]float64{
			"us-east":      0.085,
			"us-west":      0.11,
			"us-central":   0.075,
			"eu-west":      0.19,
			"eu-north":     0.06,
			"ap-northeast": 0.17,
			"ap-southeast": 0.14,
		},
		ScaleThresholds: []ScaleThreshold{
			{ID: "network-topology", GPUCount: 32768, Message: "Network topology transition: beyond 32,768 GPUs a three-tier (or rail-optimized) fabric is required for storage traffic"},
			{ID: "metadata-bottleneck", GPUCount: 10000, Message: "Metadata bottleneck: 10,000+ GPUs require distributed metadata services to avoid namespace contention"},
			{ID: "checkpoint-storm", GPUCount: 50000, Message: "Checkpoint storm: 50,000+ GPUs can saturate storage with synchronized checkpoints; stagger or tier checkpoint writes"},
			{ID: "cluster-split", GPUCount: 100000, Message: "Cluster split: 100,000+ GPUs should be partitioned into multiple storage domains"},
		},
		Constants: Constants{
			DatasetOverheadTBPerGPU: 0.5,
			TrainingCapacityFactor:  1.5,
			InferenceCapacityFactor: 0.8,
			FinetuneCapacityFactor:  1.2,

			GPUsPerNode:           8,
			FailureRatePerNodeDay: 0.001,
			MinCheckpointMinutes:  1.5,
			CheckpointReplication: 3,
			DefaultModelSizeTB:    0.5,
			ModelSizeBuckets: []ModelSizeBucket{
				{AboveGPUs: 100000, ModelSizeTB: 15},
				{AboveGPUs: 50000, ModelSizeTB: 10},
				{AboveGPUs: 10000, ModelSizeTB: 5},
				{AboveGPUs: 5000, ModelSizeTB: 2},
			},
			DefaultRetention: 20,
			RetentionBuckets: []RetentionBucket{
				{MinGPUs: 50000, Count: 100},
				{MinGPUs: 10000, Count: 50},
			},
			TrainingHeavyThreshold: 60,

			TrainingGiBpsPerGPU:   2.7,
			InferenceGiBpsPerGPU:  0.3,
			FinetuneGiBpsPerGPU:   2.0,
			GiBToTBCorrection:     1.074,
			BurstMultiplier:       5,
			LargeBurstMultiplier:  10,
			LargeBurstAboveGPUs:   50000,
			NetworkOverheadFactor: 0.3,

			PowerCostPerKWMonth: 120,
			HoursPerMonth:       730,
			SupportRate:         0.2,
			AdminSalary:         150000,
			GPUsPerAdmin:        5000,
			TCOYears:            5,
			StoragePowerAlertKW: 1000,
			DefaultGPUTDPKW:     0.7,
			OverrideSecondary:   "ceph",
		},
		ServiceMix: ServiceMixPolicy{
			WhaleMinGPUs:          5000,
			WhalePercentPer1kGPUs: 5,
			WhaleMaxPercent:       30,
			WhaleMinHighPerfRatio: 0.4,
			InferenceMaxPercent:   50,
			HighBandwidthGbps:     400,
			MediumBandwidthGbps:   200,
			ObjectTBPerGPU:        0.5,
			DensePowerHeadroom:    1.5,
			CoolingPUE: map[string]float64{
				"air":       1.5,
				"hybrid":    1.3,
				"liquid":    1.2,
				"immersion": 1.05,
			},
			DefaultPUE:  1.5,
			PUEWarning:  1.5,
			PUECritical: 1.8,
		},
	}
}
