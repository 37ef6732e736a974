// ABOUTME: Health command for gpu-tco CLI
// ABOUTME: Checks backend connectivity and flags a degraded catalog

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/markalston/gpu-tco-analyzer/backend/catalog"
	"github.com/markalston/gpu-tco-analyzer/backend/models"
	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check backend connectivity",
	Long: `Check connectivity to the GPU TCO Analyzer backend and report the active
catalog and vSphere integration.

Exit codes:
  0 - Backend healthy
  1 - Backend reachable but serving the built-in catalog after a failed override load
  2 - Error (connectivity)`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runHealth(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
}

// healthReport is the --json shape of the health command
type healthReport struct {
	Backend        string `json:"backend"`
	Status         string `json:"status"`
	CatalogVersion string `json:"catalog_version"`
	CatalogSource  string `json:"catalog_source"`
	VSphere        string `json:"vsphere"`
	Degraded       bool   `json:"degraded"`
}

// runHealth executes the health check and returns exit code
func runHealth(ctx context.Context, w io.Writer) int {
	url := GetAPIURL()
	resp, err := newClient().Health(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	degraded := resp.CatalogSource == catalog.SourceFallback
	if IsJSONOutput() {
		if err := writeJSON(w, healthReport{
			Backend:        url,
			Status:         resp.Status,
			CatalogVersion: resp.CatalogVersion,
			CatalogSource:  resp.CatalogSource,
			VSphere:        resp.VSphere,
			Degraded:       degraded,
		}); err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return 2
		}
	} else {
		fmt.Fprintln(w, formatHealthHuman(url, resp))
		if degraded {
			fmt.Fprintln(w, "\nWarning: catalog override failed to load; the backend is pricing with the built-in catalog")
		}
	}

	if degraded {
		return 1
	}
	return 0
}

// formatHealthHuman formats health response for human readability
func formatHealthHuman(url string, resp *models.HealthResponse) string {
	return fmt.Sprintf(`Backend:  %s
Status:   %s
Catalog:  %s (%s)
vSphere:  %s`, url, resp.Status, resp.CatalogVersion, resp.CatalogSource, resp.VSphere)
}
