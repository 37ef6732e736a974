// ABOUTME: Calculate command for gpu-tco CLI
// ABOUTME: Sizes storage and estimates TCO for a GPU cluster description

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/markalston/gpu-tco-analyzer/backend/models"
	"github.com/spf13/cobra"
)

var (
	calcConfig     models.StorageConfig
	failOnWarnings bool
)

var calculateCmd = &cobra.Command{
	Use:   "calculate",
	Short: "Size storage and estimate TCO for a GPU cluster",
	Long: `Calculate capacity, checkpoint cadence, tier split, vendor choice, bandwidth,
cost and power for a GPU cluster.

Exit codes:
  0 - Plan computed
  1 - Plan computed with warnings (only with --fail-on-warnings)
  2 - Error (connectivity, invalid input)`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runCalculate(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(calculateCmd)
	f := calculateCmd.Flags()
	f.IntVar(&calcConfig.GPUCount, "gpus", 1024, "Number of GPUs")
	f.StringVar(&calcConfig.GPUModel, "gpu-model", "", "GPU model id from the catalog (e.g. h100)")
	f.StringVar(&calcConfig.Region, "region", "", "Region for power pricing (e.g. us-east)")
	f.StringVar(&calcConfig.Vendor, "vendor", "", "Primary storage vendor override")
	f.StringVar(&calcConfig.Budget, "budget", models.BudgetOptimized, "Budget class: unlimited, optimized, cost-conscious")
	f.Float64Var(&calcConfig.Workload.Training, "training", 60, "Training share of workload (%)")
	f.Float64Var(&calcConfig.Workload.Inference, "inference", 30, "Inference share of workload (%)")
	f.Float64Var(&calcConfig.Workload.Finetuning, "finetuning", 10, "Fine-tuning share of workload (%)")
	f.Float64Var(&calcConfig.Tenants.Whale, "whale", 40, "Whale tenant share (%)")
	f.Float64Var(&calcConfig.Tenants.Medium, "medium", 40, "Medium tenant share (%)")
	f.Float64Var(&calcConfig.Tenants.Small, "small", 20, "Small tenant share (%)")
	f.BoolVar(&failOnWarnings, "fail-on-warnings", false, "Exit 1 when the plan carries warnings")
	addEngineFlags(calculateCmd)
}

// runCalculate computes the plan and returns exit code
func runCalculate(ctx context.Context, w io.Writer) int {
	e, _, err := newEngine()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	cfg := calcConfig
	cfg.GPUModel = strings.ToLower(cfg.GPUModel)
	cfg.Vendor = strings.ToLower(cfg.Vendor)

	results, err := e.CalculateStorage(ctx, &cfg)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		if err := writeJSON(w, results); err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return 2
		}
	} else {
		formatCalculateHuman(w, results)
	}

	if failOnWarnings && len(results.Warnings) > 0 {
		return 1
	}
	return 0
}

// formatCalculateHuman writes a summary plus tier and cost tables
func formatCalculateHuman(w io.Writer, res *models.StorageResults) {
	primary := res.Vendor.PrimaryName
	if primary == "" {
		primary = res.Vendor.Primary
	}
	secondary := res.Vendor.SecondaryName
	if secondary == "" {
		secondary = res.Vendor.Secondary
	}

	fmt.Fprintf(w, `GPUs:          %d
Profile:       %s
Capacity:      %s (base %s + checkpoints %s)
Checkpoints:   every %.1f min, keep %d × %d replicas
Bandwidth:     %.2f TB/s required (burst %.2f TB/s)
Vendors:       %s + %s (%s)
Power:         %.1f kW (%.1f%% of GPU power)

`,
		res.GPUCount,
		res.DistributionProfile,
		humanTB(res.Capacity.TotalTB), humanTB(res.Capacity.BaseTB), humanTB(res.Capacity.CheckpointTB),
		res.Checkpoint.CadenceMinutes, res.Checkpoint.RetentionCount, res.Checkpoint.ReplicationFactor,
		res.Bandwidth.RequiredTBps, res.Bandwidth.BurstTBps,
		primary, secondary, res.Vendor.Rule,
		res.Power.TotalKW, res.Power.StorageSharePct,
	)

	rows := make([][]string, 0, len(res.Capacity.Tiers))
	for _, t := range res.Capacity.Tiers {
		rows = append(rows, []string{
			t.TierID,
			fmt.Sprintf("%d%%", t.RoundedPercent),
			humanTB(t.CapacityPB * 1000),
			money(res.Costs.CapexByTier[t.TierID]),
			fmt.Sprintf("%.1f kW", res.Power.ByTier[t.TierID]),
		})
	}
	emitTable(w, []string{"Tier", "Share", "Capacity", "CAPEX", "Power"}, rows, rightAlignNumbers(5))

	fmt.Fprintln(w)
	c := res.Costs
	emitTable(w, []string{"Cost", "Amount"}, [][]string{
		{"CAPEX", money(c.TotalCapex)},
		{"OPEX / year", money(c.Opex.AnnualTotal)},
		{fmt.Sprintf("TCO (%d yr)", len(c.TCOByYear)), money(c.TCO5Year)},
		{"Per GPU", money(c.CostPerGPU)},
		{"Per TB", money(c.CostPerTB)},
	}, rightAlignNumbers(2))

	if len(res.Warnings) > 0 {
		fmt.Fprintln(w, "\nWarnings:")
		for _, warning := range res.Warnings {
			fmt.Fprintf(w, "  ⚠ %s\n", warning)
		}
	}
}
