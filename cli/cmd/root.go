// ABOUTME: Root command for gpu-tco CLI
// ABOUTME: Holds global flags and builds the backend client from them

package cmd

import (
	"os"
	"time"

	"github.com/markalston/gpu-tco-analyzer/cli/internal/client"
	"github.com/spf13/cobra"
)

var (
	apiURL         string
	jsonOutput     bool
	requestTimeout time.Duration
)

const defaultAPIURL = "http://localhost:8080"

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "gpu-tco",
	Short: "CLI for the GPU cluster storage TCO analyzer",
	Long: `gpu-tco is a command-line interface for the GPU cluster storage TCO analyzer.

It sizes storage for a GPU cluster, estimates multi-year cost of ownership, and
recommends a service mix for an existing infrastructure description. Commands
that compute can run against the backend API or in-process with --offline.

Environment Variables:
  GPU_TCO_API_URL  Backend API URL (default: http://localhost:8080)`,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&apiURL, "api-url", "", "Backend API URL (overrides GPU_TCO_API_URL)")
	flags.BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
	flags.DurationVar(&requestTimeout, "timeout", client.DefaultTimeout, "Per-request backend timeout")
}

// GetAPIURL returns the API URL from flag, env, or default (in priority order)
func GetAPIURL() string {
	if apiURL != "" {
		return apiURL
	}
	if envURL := os.Getenv("GPU_TCO_API_URL"); envURL != "" {
		return envURL
	}
	return defaultAPIURL
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}

// newClient returns a backend client honoring --api-url and --timeout
func newClient() *client.Client {
	return client.New(GetAPIURL(), client.WithTimeout(requestTimeout))
}
