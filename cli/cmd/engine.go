// ABOUTME: Backend selection for computing commands
// ABOUTME: Runs the engines in-process with --offline or calls the API otherwise

package cmd

import (
	"context"
	"fmt"

	"github.com/markalston/gpu-tco-analyzer/backend/catalog"
	"github.com/markalston/gpu-tco-analyzer/backend/models"
	"github.com/markalston/gpu-tco-analyzer/backend/services"
	"github.com/spf13/cobra"
)

// engine is what computing commands need from either backend
type engine interface {
	CalculateStorage(ctx context.Context, cfg *models.StorageConfig) (*models.StorageResults, error)
	ServiceMix(ctx context.Context, cfg *models.InfrastructureConfig) (*models.ServiceMixResponse, error)
}

// offlineEngine computes against a local catalog without a backend
type offlineEngine struct {
	catalog *catalog.Catalog
}

func (e *offlineEngine) CalculateStorage(_ context.Context, cfg *models.StorageConfig) (*models.StorageResults, error) {
	if err := services.ValidateStorageConfig(*cfg); err != nil {
		return nil, err
	}
	results := services.NewStorageCalculator(e.catalog).Calculate(*cfg)
	return &results, nil
}

func (e *offlineEngine) ServiceMix(_ context.Context, cfg *models.InfrastructureConfig) (*models.ServiceMixResponse, error) {
	if err := services.ValidateInfrastructureConfig(*cfg); err != nil {
		return nil, err
	}
	resp := services.NewServiceMixCalculator(e.catalog).Analyze(*cfg)
	return &resp, nil
}

var (
	offline     bool
	catalogPath string
)

// addEngineFlags registers --offline and --catalog on a computing command
func addEngineFlags(c *cobra.Command) {
	c.Flags().BoolVar(&offline, "offline", false, "Compute in-process instead of calling the backend")
	c.Flags().StringVar(&catalogPath, "catalog", "", "YAML catalog override for --offline (default: built-in)")
}

// loadLocalCatalog returns the built-in catalog or the --catalog override
func loadLocalCatalog() (*catalog.Catalog, error) {
	if catalogPath == "" {
		c := catalog.Default()
		return &c, nil
	}
	c, err := catalog.LoadFile(catalogPath)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	return &c, nil
}

// newEngine picks the offline engine or the API client; source labels the choice
func newEngine() (e engine, source string, err error) {
	if !offline {
		url := GetAPIURL()
		return newClient(), url, nil
	}
	c, err := loadLocalCatalog()
	if err != nil {
		return nil, "", err
	}
	source = "offline (built-in catalog)"
	if catalogPath != "" {
		source = "offline (" + catalogPath + ")"
	}
	return &offlineEngine{catalog: c}, source, nil
}
