// ABOUTME: Physical infrastructure models for service-mix derivation
// ABOUTME: InfrastructureConfig input, derived capabilities, recommendation and constraints

package models

// Constraint severity levels
const (
	SeverityInfo     = "info"
	SeverityWarning  = "warning"
	SeverityCritical = "critical"
)

// Bandwidth classes reported in InfrastructureCapabilities
const (
	BandwidthHigh   = "high"
	BandwidthMedium = "medium"
	BandwidthLow    = "low"
)

// ComputeConfig describes the GPU fleet
type ComputeConfig struct {
	GPUModel    string `json:"gpu_model"`
	GPUCount    int    `json:"gpu_count"`
	GPUsPerNode int    `json:"gpus_per_node,omitempty"`
}

// NetworkingConfig describes the GPU fabric
type NetworkingConfig struct {
	FabricType          string  `json:"fabric_type"` // infiniband, roce, ethernet
	Topology            string  `json:"topology"`    // fat-tree, rail-optimized, leaf-spine, dragonfly
	Oversubscription    float64 `json:"oversubscription,omitempty"`
	BandwidthPerGPUGbps int     `json:"bandwidth_per_gpu_gbps"`
}

// StorageTierCapacity is one installed storage tier with its unit
type StorageTierCapacity struct {
	Tier     string  `json:"tier"` // ultra-hot, hot, warm, cold, archive, object
	Capacity float64 `json:"capacity"`
	Unit     string  `json:"unit"` // GB, TB, PB
}

// StorageInfraConfig lists installed storage capacity by tier
type StorageInfraConfig struct {
	Tiers []StorageTierCapacity `json:"tiers"`
}

// PowerConfig describes facility power and cooling
type PowerConfig struct {
	TotalCapacityMW float64 `json:"total_capacity_mw"`
	CoolingType     string  `json:"cooling_type"` // air, hybrid, liquid, immersion
	PUE             float64 `json:"pue,omitempty"`
}

// InfrastructureConfig is the physical description of a GPU cluster
type InfrastructureConfig struct {
	Name       string             `json:"name,omitempty"`
	Source     string             `json:"source,omitempty"`
	Compute    ComputeConfig      `json:"compute"`
	Networking NetworkingConfig   `json:"networking"`
	Storage    StorageInfraConfig `json:"storage"`
	Power      PowerConfig        `json:"power"`
}

// InfrastructureCapabilities are capability flags derived from an InfrastructureConfig
type InfrastructureCapabilities struct {
	GPUCount                int     `json:"gpu_count"`
	GPUModel                string  `json:"gpu_model"`
	GPUModelKnown           bool    `json:"gpu_model_known"`
	TrainingOptimized       bool    `json:"training_optimized"`
	InferenceOptimized      bool    `json:"inference_optimized"`
	BandwidthClass          string  `json:"bandwidth_class"`
	NonBlocking             bool    `json:"non_blocking"`
	TotalStorageTB          float64 `json:"total_storage_tb"`
	HighPerfStorageTB       float64 `json:"high_perf_storage_tb"`
	HighPerfStorageRatio    float64 `json:"high_perf_storage_ratio"`
	ObjectStorageTB         float64 `json:"object_storage_tb"`
	ObjectStorageSufficient bool    `json:"object_storage_sufficient"`
	LiquidCooled            bool    `json:"liquid_cooled"`
	PowerPerGPUKW           float64 `json:"power_per_gpu_kw"`
	DenseTrainingSupport    bool    `json:"dense_training_support"`
	PUE                     float64 `json:"pue"`
}

// ServiceMixRecommendation is the recommended split across four service tiers.
// The four percentages always sum to exactly 100.
type ServiceMixRecommendation struct {
	BareMetalWhale         int      `json:"bare_metal_whale"`
	OrchestratedKubernetes int      `json:"orchestrated_kubernetes"`
	ManagedMLOps           int      `json:"managed_mlops"`
	InferenceService       int      `json:"inference_service"`
	Rationale              []string `json:"rationale"`
}

// Total returns the sum of the four tier percentages
func (r ServiceMixRecommendation) Total() int {
	return r.BareMetalWhale + r.OrchestratedKubernetes + r.ManagedMLOps + r.InferenceService
}

// ServiceConstraint describes something limiting the service mix
type ServiceConstraint struct {
	ID         string `json:"id"`
	Severity   string `json:"severity"` // "info", "warning", "critical"
	Message    string `json:"message"`
	Mitigation string `json:"mitigation"`
}

// ServiceMixResponse bundles capabilities, recommendation and constraints
type ServiceMixResponse struct {
	Capabilities   InfrastructureCapabilities `json:"capabilities"`
	Recommendation ServiceMixRecommendation   `json:"recommendation"`
	Constraints    []ServiceConstraint        `json:"constraints"`
}
