// ABOUTME: Storage TCO input and result models
// ABOUTME: StorageConfig describes a GPU cluster, StorageResults holds the derived plan

package models

// Budget classes accepted in StorageConfig.Budget
const (
	BudgetUnlimited     = "unlimited"
	BudgetOptimized     = "optimized"
	BudgetCostConscious = "cost-conscious"
)

// VendorAuto lets the selector pick vendors by scale and workload
const VendorAuto = "auto"

// Distribution profiles used by the tier allocator
const (
	ProfileTrainingHeavy = "training-heavy"
	ProfileBalanced      = "balanced"
	ProfileCostOptimized = "cost-optimized"
)

// WorkloadMix is the percentage split of cluster time by workload type
type WorkloadMix struct {
	Training   float64 `json:"training"`
	Inference  float64 `json:"inference"`
	Finetuning float64 `json:"finetuning"`
}

// TenantMix is the percentage split of GPUs by tenant size class
type TenantMix struct {
	Whale  float64 `json:"whale"`
	Medium float64 `json:"medium"`
	Small  float64 `json:"small"`
}

// StorageConfig is the cluster description consumed by the storage engine
type StorageConfig struct {
	GPUCount int         `json:"gpu_count"`
	GPUModel string      `json:"gpu_model,omitempty"`
	Region   string      `json:"region,omitempty"`
	Workload WorkloadMix `json:"workload"`
	Tenants  TenantMix   `json:"tenants"`
	Budget   string      `json:"budget"`
	Vendor   string      `json:"vendor,omitempty"`
}

// TierAllocation is the capacity assigned to one storage tier
type TierAllocation struct {
	TierID         string  `json:"tier_id"`
	Name           string  `json:"name"`
	Percent        float64 `json:"percent"`
	RoundedPercent int     `json:"rounded_percent"`
	CapacityPB     float64 `json:"capacity_pb"`
}

// CapacityBreakdown holds raw and tiered capacity requirements
type CapacityBreakdown struct {
	BaseTB       float64          `json:"base_tb"`
	CheckpointTB float64          `json:"checkpoint_tb"`
	TotalTB      float64          `json:"total_tb"`
	TotalPB      float64          `json:"total_pb"`
	Tiers        []TierAllocation `json:"tiers"`
}

// CheckpointPlan describes checkpoint sizing, cadence and retention
type CheckpointPlan struct {
	ModelSizeTB       float64 `json:"model_size_tb"`
	NodeCount         int     `json:"node_count"`
	FailureRate       float64 `json:"failure_rate_per_node_day"`
	CadenceMinutes    float64 `json:"cadence_minutes"`
	RetentionCount    int     `json:"retention_count"`
	ReplicationFactor int     `json:"replication_factor"`
	StorageOverheadTB float64 `json:"storage_overhead_tb"`
}

// BandwidthRequirements holds sustained, burst and network overhead figures
type BandwidthRequirements struct {
	PerGPUGiBps         float64 `json:"per_gpu_gibps"`
	SustainedTBps       float64 `json:"sustained_tbps"`
	BurstMultiplier     float64 `json:"burst_multiplier"`
	BurstTBps           float64 `json:"burst_tbps"`
	NetworkOverheadTBps float64 `json:"network_overhead_tbps"`
	RequiredTBps        float64 `json:"required_tbps"`
}

// VendorSelection names the primary and secondary storage vendors
type VendorSelection struct {
	Primary       string `json:"primary"`
	PrimaryName   string `json:"primary_name,omitempty"`
	Secondary     string `json:"secondary"`
	SecondaryName string `json:"secondary_name,omitempty"`
	Rule          string `json:"rule"`
	Rationale     string `json:"rationale"`
	Override      bool   `json:"override"`
}

// OpexBreakdown holds annual operating cost components
type OpexBreakdown struct {
	PowerRatePerKWMonth float64 `json:"power_rate_per_kw_month"`
	Power               float64 `json:"power"`
	Support             float64 `json:"support"`
	Admin               float64 `json:"admin"`
	AdminHeadcount      int     `json:"admin_headcount"`
	AnnualTotal         float64 `json:"annual_total"`
}

// CostBreakdown holds CAPEX, OPEX and TCO figures in USD
type CostBreakdown struct {
	CapexByTier   map[string]float64 `json:"capex_by_tier"`
	CapexByVendor map[string]float64 `json:"capex_by_vendor"`
	TotalCapex    float64            `json:"total_capex"`
	Opex          OpexBreakdown      `json:"opex"`
	TCO5Year      float64            `json:"tco_5_year"`
	TCOByYear     []float64          `json:"tco_by_year"`
	CostPerGPU    float64            `json:"cost_per_gpu"`
	CostPerTB     float64            `json:"cost_per_tb"`
}

// TierPerformance holds derived performance figures for one tier
type TierPerformance struct {
	TierID         string  `json:"tier_id"`
	LatencyMs      float64 `json:"latency_ms"`
	IOPS           float64 `json:"iops"`
	ThroughputGBps float64 `json:"throughput_gbps"`
}

// PowerDraw holds storage power by tier plus GPU power context
type PowerDraw struct {
	ByTier          map[string]float64 `json:"by_tier"`
	TotalKW         float64            `json:"total_kw"`
	GPUPowerKW      float64            `json:"gpu_power_kw"`
	StorageSharePct float64            `json:"storage_share_pct"`
}

// StorageResults is the full storage TCO plan for one StorageConfig
type StorageResults struct {
	GPUCount            int                   `json:"gpu_count"`
	DistributionProfile string                `json:"distribution_profile"`
	Capacity            CapacityBreakdown     `json:"capacity"`
	Checkpoint          CheckpointPlan        `json:"checkpoint"`
	Bandwidth           BandwidthRequirements `json:"bandwidth"`
	Vendor              VendorSelection       `json:"vendor"`
	Costs               CostBreakdown         `json:"costs"`
	Performance         []TierPerformance     `json:"performance"`
	Power               PowerDraw             `json:"power"`
	Warnings            []string              `json:"warnings"`
}
