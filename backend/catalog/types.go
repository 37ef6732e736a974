// ABOUTME: Reference catalog types for vendors, tiers, GPUs and engine constants
// ABOUTME: Catalogs are plain data injected into calculators, never mutated by them

package catalog

// Vendor is a storage vendor entry
type Vendor struct {
	ID              string  `yaml:"id" json:"id"`
	Name            string  `yaml:"name" json:"name"`
	Category        string  `yaml:"category" json:"category"`
	CostPerPB       float64 `yaml:"cost_per_pb" json:"cost_per_pb"`
	PowerPerPB      float64 `yaml:"power_per_pb" json:"power_per_pb"`
	ThroughputClass string  `yaml:"throughput_class" json:"throughput_class"`
	LatencyClass    string  `yaml:"latency_class" json:"latency_class"`
	MaxGPUScale     int     `yaml:"max_gpu_scale" json:"max_gpu_scale"`
}

// CostRange is the published $/PB range for a tier
type CostRange struct {
	MinPerPB float64 `yaml:"min_per_pb" json:"min_per_pb"`
	MaxPerPB float64 `yaml:"max_per_pb" json:"max_per_pb"`
}

// Tier is a storage tier entry. Distribution maps profile name to percent.
type Tier struct {
	ID                  string             `yaml:"id" json:"id"`
	Name                string             `yaml:"name" json:"name"`
	Distribution        map[string]float64 `yaml:"distribution" json:"distribution"`
	CostRange           CostRange          `yaml:"cost_range" json:"cost_range"`
	CostPerPB           float64            `yaml:"cost_per_pb" json:"cost_per_pb"`
	PowerDensityKWPerPB float64            `yaml:"power_density_kw_per_pb" json:"power_density_kw_per_pb"`
	LocalPricing        bool               `yaml:"local_pricing" json:"local_pricing"`
	LatencyMs           float64            `yaml:"latency_ms" json:"latency_ms"`
	IOPSPerPB           float64            `yaml:"iops_per_pb" json:"iops_per_pb"`
	ThroughputGBpsPerPB float64            `yaml:"throughput_gbps_per_pb" json:"throughput_gbps_per_pb"`
}

// TenantProfile holds per-GPU storage and bandwidth for a tenant class
type TenantProfile struct {
	TBPerGPU    float64 `yaml:"tb_per_gpu" json:"tb_per_gpu"`
	GiBpsPerGPU float64 `yaml:"gibps_per_gpu" json:"gibps_per_gpu"`
}

// GPU is a GPU model entry
type GPU struct {
	ID    string  `yaml:"id" json:"id"`
	Name  string  `yaml:"name" json:"name"`
	TDPKW float64 `yaml:"tdp_kw" json:"tdp_kw"`
	Class string  `yaml:"class" json:"class"` // training, inference
}

// ScaleThreshold is one row of the warning threshold table
type ScaleThreshold struct {
	ID       string `yaml:"id" json:"id"`
	GPUCount int    `yaml:"gpu_count" json:"gpu_count"`
	Message  string `yaml:"message" json:"message"`
}

// ModelSizeBucket maps a GPU count breakpoint to checkpoint model size.
// A bucket applies when the GPU count is strictly above AboveGPUs.
type ModelSizeBucket struct {
	AboveGPUs   int     `yaml:"above_gpus" json:"above_gpus"`
	ModelSizeTB float64 `yaml:"model_size_tb" json:"model_size_tb"`
}

// RetentionBucket maps a GPU count floor to checkpoint retention
type RetentionBucket struct {
	MinGPUs int `yaml:"min_gpus" json:"min_gpus"`
	Count   int `yaml:"count" json:"count"`
}

// Constants are the fixed coefficients used by the storage engine
type Constants struct {
	DatasetOverheadTBPerGPU float64 `yaml:"dataset_overhead_tb_per_gpu" json:"dataset_overhead_tb_per_gpu"`
	TrainingCapacityFactor  float64 `yaml:"training_capacity_factor" json:"training_capacity_factor"`
	InferenceCapacityFactor float64 `yaml:"inference_capacity_factor" json:"inference_capacity_factor"`
	FinetuneCapacityFactor  float64 `yaml:"finetune_capacity_factor" json:"finetune_capacity_factor"`

	GPUsPerNode            int               `yaml:"gpus_per_node" json:"gpus_per_node"`
	FailureRatePerNodeDay  float64           `yaml:"failure_rate_per_node_day" json:"failure_rate_per_node_day"`
	MinCheckpointMinutes   float64           `yaml:"min_checkpoint_minutes" json:"min_checkpoint_minutes"`
	CheckpointReplication  int               `yaml:"checkpoint_replication" json:"checkpoint_replication"`
	DefaultModelSizeTB     float64           `yaml:"default_model_size_tb" json:"default_model_size_tb"`
	ModelSizeBuckets       []ModelSizeBucket `yaml:"model_size_buckets" json:"model_size_buckets"`
	DefaultRetention       int               `yaml:"default_retention" json:"default_retention"`
	RetentionBuckets       []RetentionBucket `yaml:"retention_buckets" json:"retention_buckets"`
	TrainingHeavyThreshold float64           `yaml:"training_heavy_threshold" json:"training_heavy_threshold"`

	TrainingGiBpsPerGPU   float64 `yaml:"training_gibps_per_gpu" json:"training_gibps_per_gpu"`
	InferenceGiBpsPerGPU  float64 `yaml:"inference_gibps_per_gpu" json:"inference_gibps_per_gpu"`
	FinetuneGiBpsPerGPU   float64 `yaml:"finetune_gibps_per_gpu" json:"finetune_gibps_per_gpu"`
	GiBToTBCorrection     float64 `yaml:"gib_to_tb_correction" json:"gib_to_tb_correction"`
	BurstMultiplier       float64 `yaml:"burst_multiplier" json:"burst_multiplier"`
	LargeBurstMultiplier  float64 `yaml:"large_burst_multiplier" json:"large_burst_multiplier"`
	LargeBurstAboveGPUs   int     `yaml:"large_burst_above_gpus" json:"large_burst_above_gpus"`
	NetworkOverheadFactor float64 `yaml:"network_overhead_factor" json:"network_overhead_factor"`

	PowerCostPerKWMonth float64 `yaml:"power_cost_per_kw_month" json:"power_cost_per_kw_month"`
	HoursPerMonth       float64 `yaml:"hours_per_month" json:"hours_per_month"`
	SupportRate         float64 `yaml:"support_rate" json:"support_rate"`
	AdminSalary         float64 `yaml:"admin_salary" json:"admin_salary"`
	GPUsPerAdmin        int     `yaml:"gpus_per_admin" json:"gpus_per_admin"`
	TCOYears            int     `yaml:"tco_years" json:"tco_years"`
	StoragePowerAlertKW float64 `yaml:"storage_power_alert_kw" json:"storage_power_alert_kw"`
	DefaultGPUTDPKW     float64 `yaml:"default_gpu_tdp_kw" json:"default_gpu_tdp_kw"`
	OverrideSecondary   string  `yaml:"override_secondary" json:"override_secondary"`
}

// ServiceMixPolicy holds the thresholds used when deriving a service mix
type ServiceMixPolicy struct {
	WhaleMinGPUs          int                `yaml:"whale_min_gpus" json:"whale_min_gpus"`
	WhalePercentPer1kGPUs int                `yaml:"whale_percent_per_1k_gpus" json:"whale_percent_per_1k_gpus"`
	WhaleMaxPercent       int                `yaml:"whale_max_percent" json:"whale_max_percent"`
	WhaleMinHighPerfRatio float64            `yaml:"whale_min_high_perf_ratio" json:"whale_min_high_perf_ratio"`
	InferenceMaxPercent   int                `yaml:"inference_max_percent" json:"inference_max_percent"`
	HighBandwidthGbps     int                `yaml:"high_bandwidth_gbps" json:"high_bandwidth_gbps"`
	MediumBandwidthGbps   int                `yaml:"medium_bandwidth_gbps" json:"medium_bandwidth_gbps"`
	ObjectTBPerGPU        float64            `yaml:"object_tb_per_gpu" json:"object_tb_per_gpu"`
	DensePowerHeadroom    float64            `yaml:"dense_power_headroom" json:"dense_power_headroom"`
	CoolingPUE            map[string]float64 `yaml:"cooling_pue" json:"cooling_pue"`
	DefaultPUE            float64            `yaml:"default_pue" json:"default_pue"`
	PUEWarning            float64            `yaml:"pue_warning" json:"pue_warning"`
	PUECritical           float64            `yaml:"pue_critical" json:"pue_critical"`
}

// Catalog bundles every reference table the engines read
type Catalog struct {
	Version         string                   `yaml:"version" json:"version"`
	GPUs            []GPU                    `yaml:"gpus" json:"gpus"`
	Vendors         []Vendor                 `yaml:"vendors" json:"vendors"`
	ObjectVendors   []Vendor                 `yaml:"object_vendors" json:"object_vendors"`
	Tiers           []Tier                   `yaml:"tiers" json:"tiers"`
	TenantProfiles  map[string]TenantProfile `yaml:"tenant_profiles" json:"tenant_profiles"`
	RegionalRates   map[string]float64       `yaml:"regional_rates" json:"regional_rates"` // $/kWh
	ScaleThresholds []ScaleThreshold         `yaml:"scale_thresholds" json:"scale_thresholds"`
	Constants       Constants                `yaml:"constants" json:"constants"`
	ServiceMix      ServiceMixPolicy         `yaml:"service_mix" json:"service_mix"`
}
