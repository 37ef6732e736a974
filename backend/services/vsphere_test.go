// ABOUTME: Unit tests for vSphere GPU discovery
// ABOUTME: Tests PCI device filtering, model matching and inventory roll-up

package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/markalston/gpu-tco-analyzer/backend/catalog"
	"github.com/markalston/gpu-tco-analyzer/backend/models"
	"github.com/vmware/govmomi/vim25/types"
)

func nvidiaDevice(name string) types.HostPciDevice {
	return types.HostPciDevice{VendorId: 0x10de, ClassId: 0x0302, DeviceName: name, VendorName: "NVIDIA Corporation"}
}

func newTestVSphereClient() *VSphereClient {
	c := catalog.Default()
	return NewVSphereClient(VSphereCredentials{}, &c)
}

func TestIsNVIDIAGPU(t *testing.T) {
	tests := []struct {
		name   string
		device types.HostPciDevice
		want   bool
	}{
		{"3D controller", nvidiaDevice("GH100 [H100 SXM5 80GB]"), true},
		{"VGA controller", types.HostPciDevice{VendorId: 0x10de, ClassId: 0x0300}, true},
		{"NVSwitch bridge", types.HostPciDevice{VendorId: 0x10de, ClassId: 0x0680}, false},
		{"Mellanox NIC", types.HostPciDevice{VendorId: 0x15b3, ClassId: 0x0207}, false},
		{"Matrox VGA", types.HostPciDevice{VendorId: 0x102b, ClassId: 0x0300}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsNVIDIAGPU(tt.device); got != tt.want {
				t.Errorf("IsNVIDIAGPU() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMatchGPUModel(t *testing.T) {
	c := catalog.Default()
	tests := []struct {
		deviceName string
		want       string
	}{
		{"GH100 [H100 SXM5 80GB]", "h100"},
		{"GH100 [H200 SXM 141GB]", "h200"},
		{"GA100 [A100 SXM4 80GB]", "a100"},
		{"AD102GL [L40S]", "l40s"},
		{"AD104GL [L4]", "l4"},
		{"GB200 NVL", "gb200"},
		{"B200", "b200"},
		{"TU104GL [Tesla T4]", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.deviceName, func(t *testing.T) {
			if got := MatchGPUModel(&c, tt.deviceName); got != tt.want {
				t.Errorf("MatchGPUModel(%q) = %q, want %q", tt.deviceName, got, tt.want)
			}
		})
	}
}

func TestHostInventory(t *testing.T) {
	v := newTestVSphereClient()
	devices := []types.HostPciDevice{
		{VendorId: 0x15b3, ClassId: 0x0207, DeviceName: "MT2910 Family [ConnectX-7]"},
		{VendorId: 0x10de, ClassId: 0x0680, DeviceName: "NVSwitch"},
	}
	for i := 0; i < 8; i++ {
		devices = append(devices, nvidiaDevice("GH100 [H100 SXM5 80GB]"))
	}

	host := v.HostInventory("esx-01", "gpu-a", "poweredOn", false, devices)
	if host.GPUCount != 8 {
		t.Errorf("GPUCount = %d, want 8", host.GPUCount)
	}
	if host.GPUModel != "h100" {
		t.Errorf("GPUModel = %q, want h100", host.GPUModel)
	}
	if host.Devices["GH100 [H100 SXM5 80GB]"] != 8 || len(host.Devices) != 1 {
		t.Errorf("Devices = %v", host.Devices)
	}
	if !host.Active() {
		t.Error("expected powered-on host to be active")
	}

	empty := v.HostInventory("esx-02", "gpu-a", "poweredOn", false, nil)
	if empty.GPUCount != 0 || empty.GPUModel != "" {
		t.Errorf("empty host = %+v", empty)
	}
}

func TestBuildGPUInventory(t *testing.T) {
	clusters := []models.ClusterGPUInventory{
		{
			Name: "training-b",
			Hosts: []models.HostGPUInventory{
				{Name: "esx-10", PowerState: "poweredOn", GPUCount: 8, GPUModel: "h100"},
				{Name: "esx-11", PowerState: "poweredOn", GPUCount: 8, GPUModel: "h100"},
				{Name: "esx-12", PowerState: "poweredOff", GPUCount: 8, GPUModel: "h100"},
			},
		},
		{
			Name: "inference-a",
			Hosts: []models.HostGPUInventory{
				{Name: "esx-01", PowerState: "poweredOn", GPUCount: 4, GPUModel: "l40s"},
				{Name: "esx-02", PowerState: "poweredOn", Maintenance: true, GPUCount: 4, GPUModel: "l40s"},
				{Name: "esx-03", PowerState: "poweredOn", GPUCount: 2},
			},
		},
	}

	inv := BuildGPUInventory("DC1", clusters)

	if inv.TotalGPUs != 22 {
		t.Errorf("TotalGPUs = %d, want 22", inv.TotalGPUs)
	}
	if inv.Clusters[0].Name != "inference-a" || inv.Clusters[0].GPUCount != 6 {
		t.Errorf("first cluster = %s/%d, want inference-a/6", inv.Clusters[0].Name, inv.Clusters[0].GPUCount)
	}
	if inv.Clusters[1].GPUCount != 16 {
		t.Errorf("training-b GPUCount = %d, want 16", inv.Clusters[1].GPUCount)
	}
	if inv.ByModel["h100"] != 16 || inv.ByModel["l40s"] != 4 || inv.ByModel["unknown"] != 2 {
		t.Errorf("ByModel = %v", inv.ByModel)
	}

	infra := inv.Infrastructure
	if infra.Source != "vsphere" || infra.Name != "DC1" {
		t.Errorf("Infrastructure name/source = %q/%q", infra.Name, infra.Source)
	}
	if infra.Compute.GPUModel != "h100" || infra.Compute.GPUCount != 22 || infra.Compute.GPUsPerNode != 8 {
		t.Errorf("Compute = %+v", infra.Compute)
	}
	if inv.DiscoveredAt.IsZero() {
		t.Error("DiscoveredAt not set")
	}
}

func TestBuildGPUInventory_Empty(t *testing.T) {
	inv := BuildGPUInventory("DC1", nil)
	if inv.TotalGPUs != 0 || inv.Infrastructure.Compute.GPUModel != "" || inv.Infrastructure.Compute.GPUsPerNode != 0 {
		t.Errorf("empty inventory = %+v", inv)
	}
}

func TestVSphereClient_NotConfigured(t *testing.T) {
	v := newTestVSphereClient()
	if v.Configured() {
		t.Error("client without host should not be configured")
	}
	if err := v.Connect(context.Background()); !errors.Is(err, ErrVSphereNotConfigured) {
		t.Errorf("Connect() error = %v, want ErrVSphereNotConfigured", err)
	}
	if _, err := v.DiscoverGPUs(context.Background()); !errors.Is(err, ErrVSphereNotConfigured) {
		t.Errorf("DiscoverGPUs() error = %v, want ErrVSphereNotConfigured", err)
	}
	if err := v.Disconnect(context.Background()); err != nil {
		t.Errorf("Disconnect() on unconnected client = %v", err)
	}

	var nilClient *VSphereClient
	if nilClient.Configured() {
		t.Error("nil client should not be configured")
	}
}

func TestVSphereClient_BadProxy(t *testing.T) {
	c := catalog.Default()
	v := NewVSphereClient(VSphereCredentials{Host: "vcenter.example.com", AllProxy: "ssh+socks5://jumpbox:22"}, &c)
	err := v.Connect(context.Background())
	if err == nil || !strings.Contains(err.Error(), "configuring vCenter proxy") {
		t.Errorf("Connect() error = %v, want proxy configuration error", err)
	}
}

func TestDescribeConnectError(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"dial tcp 10.0.0.1:443: connect: connection refused", "connection refused"},
		{"lookup vc.example: no such host", "cannot resolve"},
		{"ServerFaultCode: Cannot complete login due to an incorrect user name or password.", "authentication failed"},
		{"context deadline exceeded", "connection timeout"},
		{"x509: certificate signed by unknown authority", "VSPHERE_INSECURE"},
		{"something odd", "failed to connect"},
	}
	for _, tt := range tests {
		err := describeConnectError("vc.example", errors.New(tt.raw))
		if !strings.Contains(err.Error(), tt.want) {
			t.Errorf("describeConnectError(%q) = %q, want it to contain %q", tt.raw, err, tt.want)
		}
	}
}
