// ABOUTME: Entry point for gpu-tco CLI
// ABOUTME: Command-line tool for GPU storage sizing and TCO planning

package main

import (
	"fmt"
	"os"

	"github.com/markalston/gpu-tco-analyzer/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
