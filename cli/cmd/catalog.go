// ABOUTME: Catalog command for gpu-tco CLI
// ABOUTME: Lists vendors, tiers and GPU models from the active reference catalog

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/markalston/gpu-tco-analyzer/backend/catalog"
	"github.com/markalston/gpu-tco-analyzer/cli/internal/client"
	"github.com/spf13/cobra"
)

var reloadCatalog bool

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Show the reference catalog",
	Long: `Show the storage vendors, tiers and GPU models the engines price against.

Without --offline the backend's active catalog is shown; --reload asks the
backend to re-read CATALOG_PATH first.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runCatalog(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.Flags().BoolVar(&reloadCatalog, "reload", false, "Reload the backend catalog before showing it")
	addEngineFlags(catalogCmd)
}

// runCatalog fetches or loads the catalog and returns exit code
func runCatalog(ctx context.Context, w io.Writer) int {
	resp, err := fetchCatalog(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		if err := writeJSON(w, resp); err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return 2
		}
		return 0
	}

	formatCatalogHuman(w, resp)
	return 0
}

func fetchCatalog(ctx context.Context) (*client.CatalogResponse, error) {
	if offline {
		if reloadCatalog {
			return nil, fmt.Errorf("--reload needs the backend and cannot be combined with --offline")
		}
		c, err := loadLocalCatalog()
		if err != nil {
			return nil, err
		}
		resp := &client.CatalogResponse{Source: catalog.SourceBuiltin, Catalog: *c}
		if catalogPath != "" {
			resp.Source = catalog.SourceFile
			resp.Path = catalogPath
		}
		return resp, nil
	}

	c := newClient()
	if reloadCatalog {
		return c.ReloadCatalog(ctx)
	}
	return c.Catalog(ctx)
}

// formatCatalogHuman writes vendor, tier and GPU tables
func formatCatalogHuman(w io.Writer, resp *client.CatalogResponse) {
	source := resp.Source
	if resp.Path != "" {
		source += " (" + resp.Path + ")"
	}
	fmt.Fprintf(w, "Catalog %s from %s\n\n", resp.Catalog.Version, source)

	vendors := make([][]string, 0, len(resp.Catalog.Vendors)+len(resp.Catalog.ObjectVendors))
	for _, v := range append(append([]catalog.Vendor{}, resp.Catalog.Vendors...), resp.Catalog.ObjectVendors...) {
		vendors = append(vendors, []string{
			v.ID,
			v.Name,
			v.Category,
			money(v.CostPerPB),
			fmt.Sprintf("%.1f kW", v.PowerPerPB),
			fmt.Sprintf("%d", v.MaxGPUScale),
		})
	}
	emitTable(w, []string{"Vendor", "Name", "Category", "$/PB", "Power/PB", "Max GPUs"}, vendors, nil)

	fmt.Fprintln(w)
	tiers := make([][]string, 0, len(resp.Catalog.Tiers))
	for _, t := range resp.Catalog.Tiers {
		row := []string{t.ID, t.Name}
		for _, profile := range catalog.Profiles {
			row = append(row, fmt.Sprintf("%.0f%%", t.Percent(profile)))
		}
		row = append(row, money(t.CostPerPB), fmt.Sprintf("%g ms", t.LatencyMs))
		tiers = append(tiers, row)
	}
	headers := append([]string{"Tier", "Name"}, catalog.Profiles...)
	headers = append(headers, "$/PB", "Latency")
	emitTable(w, headers, tiers, nil)

	fmt.Fprintln(w)
	gpus := make([][]string, 0, len(resp.Catalog.GPUs))
	for _, g := range resp.Catalog.GPUs {
		gpus = append(gpus, []string{g.ID, g.Name, g.Class, fmt.Sprintf("%.3f kW", g.TDPKW)})
	}
	emitTable(w, []string{"GPU", "Name", "Class", "TDP"}, gpus, nil)
}
