// ABOUTME: vSphere client for GPU host discovery via govmomi
// ABOUTME: Counts NVIDIA PCI devices per host and builds an InfrastructureConfig skeleton

package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/markalston/gpu-tco-analyzer/backend/catalog"
	"github.com/markalston/gpu-tco-analyzer/backend/models"
	"github.com/vmware/govmomi"
	"github.com/vmware/govmomi/find"
	"github.com/vmware/govmomi/object"
	"github.com/vmware/govmomi/session"
	"github.com/vmware/govmomi/vim25"
	"github.com/vmware/govmomi/vim25/mo"
	"github.com/vmware/govmomi/vim25/soap"
	"github.com/vmware/govmomi/vim25/types"
)

// PCI identifiers for NVIDIA display and 3D controllers
const (
	pciVendorNVIDIA      int16 = 0x10de
	pciClassVGA          int16 = 0x0300
	pciClass3DController int16 = 0x0302
)

// ErrVSphereNotConfigured is returned when no vCenter host is configured
var ErrVSphereNotConfigured = errors.New("vSphere not configured")

// VSphereCredentials holds vCenter connection info
type VSphereCredentials struct {
	Host       string
	Username   string
	Password   string
	Datacenter string
	Insecure   bool
	AllProxy   string // optional ssh+socks5:// jumpbox URL
}

// VSphereClient wraps govmomi client for GPU discovery
type VSphereClient struct {
	creds   VSphereCredentials
	catalog *catalog.Catalog
	client  *govmomi.Client
	finder  *find.Finder
}

// NewVSphereClient creates a new vSphere client. Device names are mapped to
// GPU models using c.
func NewVSphereClient(creds VSphereCredentials, c *catalog.Catalog) *VSphereClient {
	return &VSphereClient{
		creds:   creds,
		catalog: c,
	}
}

// Configured reports whether a vCenter host has been set
func (v *VSphereClient) Configured() bool {
	return v != nil && v.creds.Host != ""
}

// Connect establishes connection to vCenter, tunnelling through the
// configured SOCKS5 proxy when one is set.
func (v *VSphereClient) Connect(ctx context.Context) error {
	if !v.Configured() {
		return ErrVSphereNotConfigured
	}

	host := v.creds.Host
	if !strings.HasPrefix(host, "https://") && !strings.HasPrefix(host, "http://") {
		host = "https://" + host
	}

	u, err := url.Parse(host + "/sdk")
	if err != nil {
		return fmt.Errorf("invalid vCenter URL '%s': %w", v.creds.Host, err)
	}
	u.User = url.UserPassword(v.creds.Username, v.creds.Password)

	soapClient := soap.NewClient(u, v.creds.Insecure)
	if v.creds.AllProxy != "" {
		dial, err := NewSOCKS5DialContextFunc(v.creds.AllProxy)
		if err != nil {
			return fmt.Errorf("configuring vCenter proxy: %w", err)
		}
		soapClient.DefaultTransport().DialContext = dial
		slog.Info("vSphere connecting through SOCKS5 proxy")
	}

	vimClient, err := vim25.NewClient(ctx, soapClient)
	if err != nil {
		return describeConnectError(v.creds.Host, err)
	}
	client := &govmomi.Client{
		Client:         vimClient,
		SessionManager: session.NewManager(vimClient),
	}
	if err := client.Login(ctx, u.User); err != nil {
		return describeConnectError(v.creds.Host, err)
	}

	v.client = client
	v.finder = find.NewFinder(client.Client, true)

	dc, err := v.finder.Datacenter(ctx, v.creds.Datacenter)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			return fmt.Errorf("datacenter '%s' not found - verify the datacenter name", v.creds.Datacenter)
		}
		return fmt.Errorf("error accessing datacenter '%s': %w", v.creds.Datacenter, err)
	}
	v.finder.SetDatacenter(dc)

	slog.Info("vSphere connected successfully")
	slog.Debug("vSphere connection details", "host", v.creds.Host, "datacenter", v.creds.Datacenter)
	return nil
}

// describeConnectError maps common govmomi failures to actionable messages
func describeConnectError(host string, err error) error {
	errStr := err.Error()
	switch {
	case strings.Contains(errStr, "connection refused"):
		return fmt.Errorf("connection refused to vCenter at %s - verify the host is reachable", host)
	case strings.Contains(errStr, "no such host"):
		return fmt.Errorf("cannot resolve vCenter hostname '%s' - verify DNS", host)
	case strings.Contains(errStr, "401") || strings.Contains(errStr, "Cannot complete login"):
		return fmt.Errorf("authentication failed - verify username and password")
	case strings.Contains(errStr, "context deadline exceeded") || strings.Contains(errStr, "timeout"):
		return fmt.Errorf("connection timeout to vCenter at %s - check network connectivity", host)
	case strings.Contains(errStr, "certificate") || strings.Contains(errStr, "x509"):
		return fmt.Errorf("SSL certificate error connecting to %s - try setting VSPHERE_INSECURE=true", host)
	}
	return fmt.Errorf("failed to connect to vCenter at %s: %w", host, err)
}

// Disconnect closes the vCenter connection
func (v *VSphereClient) Disconnect(ctx context.Context) error {
	if v.client != nil {
		return v.client.Logout(ctx)
	}
	return nil
}

// IsConnected returns true if client has an active connection
func (v *VSphereClient) IsConnected() bool {
	return v.client != nil && v.client.Valid()
}

// DiscoverGPUs connects, walks every cluster and returns the GPU inventory
func (v *VSphereClient) DiscoverGPUs(ctx context.Context) (models.GPUInventory, error) {
	if !v.IsConnected() {
		if err := v.Connect(ctx); err != nil {
			return models.GPUInventory{}, err
		}
	}

	clusters, err := v.finder.ClusterComputeResourceList(ctx, "*")
	if err != nil {
		return models.GPUInventory{}, fmt.Errorf("listing clusters: %w", err)
	}

	inventories := make([]models.ClusterGPUInventory, 0, len(clusters))
	for _, cluster := range clusters {
		inv, err := v.clusterInventory(ctx, cluster)
		if err != nil {
			return models.GPUInventory{}, fmt.Errorf("getting cluster %s inventory: %w", cluster.Name(), err)
		}
		inventories = append(inventories, inv)
	}

	inventory := BuildGPUInventory(v.creds.Datacenter, inventories)
	slog.Info("vSphere GPU discovery complete", "clusters", len(inventories), "gpus", inventory.TotalGPUs)
	return inventory, nil
}

func (v *VSphereClient) clusterInventory(ctx context.Context, cluster *object.ClusterComputeResource) (models.ClusterGPUInventory, error) {
	inv := models.ClusterGPUInventory{Name: cluster.Name()}

	var clusterMo mo.ClusterComputeResource
	if err := cluster.Properties(ctx, cluster.Reference(), []string{"host"}, &clusterMo); err != nil {
		return inv, fmt.Errorf("getting cluster properties: %w", err)
	}

	for _, hostRef := range clusterMo.Host {
		host := object.NewHostSystem(v.client.Client, hostRef)

		var hostMo mo.HostSystem
		if err := host.Properties(ctx, host.Reference(), []string{"name", "runtime", "hardware"}, &hostMo); err != nil {
			return inv, fmt.Errorf("getting host properties: %w", err)
		}

		var devices []types.HostPciDevice
		if hostMo.Hardware != nil {
			devices = hostMo.Hardware.PciDevice
		}
		inv.Hosts = append(inv.Hosts, v.HostInventory(hostMo.Name, cluster.Name(),
			string(hostMo.Runtime.PowerState), hostMo.Runtime.InMaintenanceMode, devices))
	}

	return inv, nil
}

// IsNVIDIAGPU reports whether a PCI device is an NVIDIA display or 3D controller
func IsNVIDIAGPU(d types.HostPciDevice) bool {
	return d.VendorId == pciVendorNVIDIA && (d.ClassId == pciClass3DController || d.ClassId == pciClassVGA)
}

// HostInventory summarizes the NVIDIA GPUs among a host's PCI devices
func (v *VSphereClient) HostInventory(name, cluster, powerState string, maintenance bool, devices []types.HostPciDevice) models.HostGPUInventory {
	host := models.HostGPUInventory{
		Name:        name,
		Cluster:     cluster,
		PowerState:  powerState,
		Maintenance: maintenance,
		Devices:     map[string]int{},
	}

	byModel := map[string]int{}
	for _, d := range devices {
		if !IsNVIDIAGPU(d) {
			continue
		}
		host.GPUCount++
		host.Devices[d.DeviceName]++
		if model := MatchGPUModel(v.catalog, d.DeviceName); model != "" {
			byModel[model]++
		}
	}
	host.GPUModel = dominant(byModel)
	return host
}

// MatchGPUModel maps a PCI device name such as "GH100 [H100 SXM5 80GB]" to a
// catalog GPU id by whole-token match. It returns "" when nothing matches.
func MatchGPUModel(c *catalog.Catalog, deviceName string) string {
	tokens := strings.FieldsFunc(strings.ToLower(deviceName), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, tok := range tokens {
		for _, gpu := range c.GPUs {
			if tok == gpu.ID {
				return gpu.ID
			}
		}
	}
	return ""
}

// dominant returns the key with the highest count, smallest key on ties
func dominant(counts map[string]int) string {
	best, bestN := "", 0
	for k, n := range counts {
		if n > bestN || (n == bestN && k < best) {
			best, bestN = k, n
		}
	}
	return best
}

// BuildGPUInventory rolls host inventories up into cluster and datacenter
// totals. Powered-off hosts and hosts in maintenance are listed but not counted.
func BuildGPUInventory(datacenter string, clusters []models.ClusterGPUInventory) models.GPUInventory {
	inv := models.GPUInventory{
		Datacenter:   datacenter,
		Clusters:     clusters,
		ByModel:      map[string]int{},
		DiscoveredAt: time.Now().UTC(),
	}

	perNode := map[int]int{}
	for i := range inv.Clusters {
		c := &inv.Clusters[i]
		c.GPUCount = 0
		for _, h := range c.Hosts {
			if !h.Active() || h.GPUCount == 0 {
				continue
			}
			c.GPUCount += h.GPUCount
			perNode[h.GPUCount]++
			model := h.GPUModel
			if model == "" {
				model = "unknown"
			}
			inv.ByModel[model] += h.GPUCount
		}
		inv.TotalGPUs += c.GPUCount
	}
	sort.Slice(inv.Clusters, func(i, j int) bool { return inv.Clusters[i].Name < inv.Clusters[j].Name })

	gpusPerNode, nodes := 0, 0
	for n, hosts := range perNode {
		if hosts > nodes || (hosts == nodes && n > gpusPerNode) {
			gpusPerNode, nodes = n, hosts
		}
	}

	model := dominant(inv.ByModel)
	if model == "unknown" {
		model = ""
	}
	inv.Infrastructure = models.InfrastructureConfig{
		Name:   datacenter,
		Source: "vsphere",
		Compute: models.ComputeConfig{
			GPUModel:    model,
			GPUCount:    inv.TotalGPUs,
			GPUsPerNode: gpusPerNode,
		},
	}
	return inv
}
