// ABOUTME: Caller-level validation for storage and infrastructure requests
// ABOUTME: Collects field errors so handlers can report them together as a 400

package services

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/markalston/gpu-tco-analyzer/backend/models"
)

// mixTolerance is how far a percentage mix may drift from 100
const mixTolerance = 0.5

// identifierPattern matches vendor ids and GPU model names (alphanumeric, dots, hyphens, underscores, spaces)
var identifierPattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9 ._-]*$`)

var validBudgets = map[string]bool{
	"":                         true,
	models.BudgetUnlimited:     true,
	models.BudgetOptimized:     true,
	models.BudgetCostConscious: true,
}

// sanitizeForLog removes control characters from strings to prevent log injection
// when including user input in error messages
func sanitizeForLog(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 32 || r == 127 {
			return -1 // Remove control characters
		}
		return r
	}, s)
}

// FieldError is a single invalid input field
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// ValidationErrors collects every FieldError found in a request
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(v.Details(), "; "))
}

// Details returns one "field: message" string per error
func (v ValidationErrors) Details() []string {
	out := make([]string, len(v))
	for i, e := range v {
		out[i] = e.Error()
	}
	return out
}

func (v *ValidationErrors) add(field, format string, args ...any) {
	*v = append(*v, FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
}

func (v ValidationErrors) err() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

type mixPart struct {
	name string
	pct  float64
}

func checkMix(errs *ValidationErrors, field string, parts []mixPart) {
	var total float64
	for _, p := range parts {
		name, pct := p.name, p.pct
		if math.IsNaN(pct) || math.IsInf(pct, 0) {
			errs.add(field+"."+name, "must be a finite number")
			return
		}
		if pct < 0 || pct > 100 {
			errs.add(field+"."+name, "must be between 0 and 100, got %g", pct)
			return
		}
		total += pct
	}
	if math.Abs(total-100) > mixTolerance {
		errs.add(field, "percentages must sum to 100, got %g", total)
	}
}

func checkIdentifier(errs *ValidationErrors, field, value string) {
	if value == "" {
		return
	}
	if !identifierPattern.MatchString(value) {
		errs.add(field, "invalid format: %s", sanitizeForLog(value))
	}
}

// ValidateStorageConfig rejects requests the engine would otherwise silently
// degrade. It returns nil or a ValidationErrors.
func ValidateStorageConfig(cfg models.StorageConfig) error {
	var errs ValidationErrors

	if cfg.GPUCount < 0 {
		errs.add("gpu_count", "must not be negative, got %d", cfg.GPUCount)
	}
	checkIdentifier(&errs, "gpu_model", cfg.GPUModel)
	checkIdentifier(&errs, "region", cfg.Region)
	checkIdentifier(&errs, "vendor", cfg.Vendor)

	checkMix(&errs, "workload", []mixPart{
		{"training", cfg.Workload.Training},
		{"inference", cfg.Workload.Inference},
		{"finetuning", cfg.Workload.Finetuning},
	})
	checkMix(&errs, "tenants", []mixPart{
		{"whale", cfg.Tenants.Whale},
		{"medium", cfg.Tenants.Medium},
		{"small", cfg.Tenants.Small},
	})

	if !validBudgets[cfg.Budget] {
		errs.add("budget", "must be one of %s, %s, %s; got %q",
			models.BudgetUnlimited, models.BudgetOptimized, models.BudgetCostConscious, sanitizeForLog(cfg.Budget))
	}

	return errs.err()
}

// ValidateInfrastructureConfig checks the physical description used for
// service-mix derivation. It returns nil or a ValidationErrors.
func ValidateInfrastructureConfig(cfg models.InfrastructureConfig) error {
	var errs ValidationErrors

	if cfg.Compute.GPUCount < 0 {
		errs.add("compute.gpu_count", "must not be negative, got %d", cfg.Compute.GPUCount)
	}
	if cfg.Compute.GPUsPerNode < 0 {
		errs.add("compute.gpus_per_node", "must not be negative, got %d", cfg.Compute.GPUsPerNode)
	}
	checkIdentifier(&errs, "compute.gpu_model", cfg.Compute.GPUModel)

	if cfg.Networking.BandwidthPerGPUGbps < 0 {
		errs.add("networking.bandwidth_per_gpu_gbps", "must not be negative, got %d", cfg.Networking.BandwidthPerGPUGbps)
	}
	if cfg.Networking.Oversubscription < 0 {
		errs.add("networking.oversubscription", "must not be negative, got %g", cfg.Networking.Oversubscription)
	}

	for i, tier := range cfg.Storage.Tiers {
		field := fmt.Sprintf("storage.tiers[%d]", i)
		if tier.Tier == "" {
			errs.add(field+".tier", "is required")
		}
		if tier.Capacity < 0 || math.IsNaN(tier.Capacity) || math.IsInf(tier.Capacity, 0) {
			errs.add(field+".capacity", "must be a non-negative number, got %g", tier.Capacity)
		}
	}

	if cfg.Power.TotalCapacityMW < 0 {
		errs.add("power.total_capacity_mw", "must not be negative, got %g", cfg.Power.TotalCapacityMW)
	}
	if cfg.Power.PUE != 0 && cfg.Power.PUE < 1 {
		errs.add("power.pue", "must be at least 1.0, got %g", cfg.Power.PUE)
	}

	return errs.err()
}
