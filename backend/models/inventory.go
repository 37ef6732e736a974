// ABOUTME: GPU inventory models discovered from vCenter
// ABOUTME: Per-host PCI device counts rolled up by cluster and GPU model

package models

import "time"

// HostGPUInventory is the GPU complement of one ESXi host
type HostGPUInventory struct {
	Name        string         `json:"name"`
	Cluster     string         `json:"cluster"`
	PowerState  string         `json:"power_state"`
	Maintenance bool           `json:"maintenance"`
	GPUCount    int            `json:"gpu_count"`
	GPUModel    string         `json:"gpu_model,omitempty"`
	Devices     map[string]int `json:"devices,omitempty"` // PCI device name -> count
}

// Active reports whether the host contributes capacity
func (h HostGPUInventory) Active() bool {
	return h.PowerState == "poweredOn" && !h.Maintenance
}

// ClusterGPUInventory groups hosts of one vSphere cluster
type ClusterGPUInventory struct {
	Name     string             `json:"name"`
	Hosts    []HostGPUInventory `json:"hosts"`
	GPUCount int                `json:"gpu_count"`
}

// GPUInventory is the datacenter-wide discovery result
type GPUInventory struct {
	Datacenter     string                `json:"datacenter"`
	Clusters       []ClusterGPUInventory `json:"clusters"`
	TotalGPUs      int                   `json:"total_gpus"`
	ByModel        map[string]int        `json:"by_model"`
	Infrastructure InfrastructureConfig  `json:"infrastructure"`
	DiscoveredAt   time.Time             `json:"discovered_at"`
	Cached         bool                  `json:"cached"`
}
