// ABOUTME: Service-mix command for gpu-tco CLI
// ABOUTME: Reports capabilities, recommended mix and constraints for an infrastructure

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/markalston/gpu-tco-analyzer/backend/models"
	"github.com/spf13/cobra"
)

var (
	infraFile   string
	fromVSphere bool
	failOnCrit  bool
)

var serviceMixCmd = &cobra.Command{
	Use:   "service-mix",
	Short: "Recommend a service mix for an infrastructure description",
	Long: `Derive infrastructure capabilities, the recommended split across bare-metal,
Kubernetes, managed MLOps and inference services, and the constraints that apply.

The infrastructure is read from --file (JSON, "-" for stdin) or discovered from
vSphere through the backend with --vsphere.

Exit codes:
  0 - Recommendation computed
  1 - Critical constraints found (only with --fail-on-critical)
  2 - Error (connectivity, invalid input)`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runServiceMix(ctx, os.Stdin, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(serviceMixCmd)
	serviceMixCmd.Flags().StringVarP(&infraFile, "file", "f", "", "InfrastructureConfig JSON file (\"-\" reads stdin)")
	serviceMixCmd.Flags().BoolVar(&fromVSphere, "vsphere", false, "Use the backend's vSphere GPU discovery as input")
	serviceMixCmd.Flags().BoolVar(&failOnCrit, "fail-on-critical", false, "Exit 1 when any constraint is critical")
	addEngineFlags(serviceMixCmd)
}

// runServiceMix executes the analysis and returns exit code
func runServiceMix(ctx context.Context, stdin io.Reader, w io.Writer) int {
	cfg, err := loadInfrastructure(ctx, stdin)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	e, _, err := newEngine()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	resp, err := e.ServiceMix(ctx, cfg)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		if err := writeJSON(w, resp); err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return 2
		}
	} else {
		formatServiceMixHuman(w, resp)
	}

	if failOnCrit && hasCritical(resp.Constraints) {
		return 1
	}
	return 0
}

// loadInfrastructure reads the config from --file or the backend's discovery
func loadInfrastructure(ctx context.Context, stdin io.Reader) (*models.InfrastructureConfig, error) {
	switch {
	case fromVSphere && infraFile != "":
		return nil, fmt.Errorf("--file and --vsphere are mutually exclusive")
	case fromVSphere:
		if offline {
			return nil, fmt.Errorf("--vsphere needs the backend and cannot be combined with --offline")
		}
		inv, err := newClient().DiscoverVSphere(ctx, false)
		if err != nil {
			return nil, err
		}
		return &inv.Infrastructure, nil
	case infraFile == "":
		return nil, fmt.Errorf("--file or --vsphere is required")
	}

	var r io.Reader = stdin
	if infraFile != "-" {
		f, err := os.Open(infraFile)
		if err != nil {
			return nil, fmt.Errorf("opening infrastructure file: %w", err)
		}
		defer f.Close()
		r = f
	}

	var cfg models.InfrastructureConfig
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parsing infrastructure file: %w", err)
	}
	return &cfg, nil
}

func hasCritical(constraints []models.ServiceConstraint) bool {
	for _, c := range constraints {
		if c.Severity == "critical" {
			return true
		}
	}
	return false
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// formatServiceMixHuman writes capability, mix and constraint tables
func formatServiceMixHuman(w io.Writer, resp *models.ServiceMixResponse) {
	caps := resp.Capabilities
	emitTable(w, []string{"Capability", "Value"}, [][]string{
		{"GPUs", fmt.Sprintf("%d × %s", caps.GPUCount, caps.GPUModel)},
		{"Bandwidth class", caps.BandwidthClass},
		{"Non-blocking fabric", yesNo(caps.NonBlocking)},
		{"Training optimized", yesNo(caps.TrainingOptimized)},
		{"Inference optimized", yesNo(caps.InferenceOptimized)},
		{"High-perf storage", fmt.Sprintf("%s (%.0f%%)", humanTB(caps.HighPerfStorageTB), caps.HighPerfStorageRatio*100)},
		{"Object storage", fmt.Sprintf("%s (sufficient: %s)", humanTB(caps.ObjectStorageTB), yesNo(caps.ObjectStorageSufficient))},
		{"Power per GPU", fmt.Sprintf("%.2f kW", caps.PowerPerGPUKW)},
		{"Dense training", yesNo(caps.DenseTrainingSupport)},
		{"PUE", fmt.Sprintf("%.2f", caps.PUE)},
	}, nil)

	fmt.Fprintln(w)
	rec := resp.Recommendation
	emitTable(w, []string{"Service", "Share"}, [][]string{
		{"Bare-metal whale", fmt.Sprintf("%d%%", rec.BareMetalWhale)},
		{"Orchestrated Kubernetes", fmt.Sprintf("%d%%", rec.OrchestratedKubernetes)},
		{"Managed MLOps", fmt.Sprintf("%d%%", rec.ManagedMLOps)},
		{"Inference service", fmt.Sprintf("%d%%", rec.InferenceService)},
	}, rightAlignNumbers(2))

	for _, line := range rec.Rationale {
		fmt.Fprintf(w, "  • %s\n", line)
	}

	if len(resp.Constraints) == 0 {
		return
	}
	fmt.Fprintln(w)
	rows := make([][]string, 0, len(resp.Constraints))
	for _, c := range resp.Constraints {
		rows = append(rows, []string{c.Severity, c.ID, c.Message, c.Mitigation})
	}
	emitTable(w, []string{"Severity", "Constraint", "Message", "Mitigation"}, rows, nil)
}
