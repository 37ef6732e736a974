// ABOUTME: Plan command for gpu-tco CLI
// ABOUTME: Launches the interactive storage planning wizard and report

package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/markalston/gpu-tco-analyzer/backend/catalog"
	"github.com/markalston/gpu-tco-analyzer/cli/internal/tui"
	"github.com/spf13/cobra"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Interactive storage planning wizard",
	Long: `Walk through cluster, workload and tenant questions, then browse the
resulting storage plan. Press e on the report to adjust inputs and recompute.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runPlan(context.Background()); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(2)
		}
	},
}

func init() {
	rootCmd.AddCommand(planCmd)
	addEngineFlags(planCmd)
}

// planCatalog returns the catalog the wizard draws its choices from
func planCatalog(ctx context.Context) (*catalog.Catalog, error) {
	if offline {
		return loadLocalCatalog()
	}
	resp, err := newClient().Catalog(ctx)
	if err != nil {
		return nil, err
	}
	return &resp.Catalog, nil
}

func runPlan(ctx context.Context) error {
	c, err := planCatalog(ctx)
	if err != nil {
		return err
	}
	e, source, err := newEngine()
	if err != nil {
		return err
	}
	return tui.Run(e, c, source)
}
