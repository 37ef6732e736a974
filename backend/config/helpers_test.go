// ABOUTME: Test helpers for config tests
// ABOUTME: Provides utilities for environment variable management

package config

import (
	"os"
	"testing"
)

// withCleanEnv clears the environment, points DOTENV_PATH at nothing, sets
// extra, and returns a cleanup function that restores the original env.
// Use with t.Cleanup().
//
// Example:
//
//	func TestSomething(t *testing.T) {
//	    t.Cleanup(withCleanEnv(t, map[string]string{
//	        "CATALOG_PATH": "/etc/gpu-tco/catalog.yaml",
//	    }))
//	}
func withCleanEnv(t *testing.T, extra map[string]string) func() {
	t.Helper()

	// Save entire environment and working directory
	originalEnv := os.Environ()
	originalDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}

	// Clear environment for clean slate and run from an empty directory so
	// a developer's .env cannot leak into the test
	os.Clearenv()
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("chdir: %v", err)
	}

	for key, value := range extra {
		os.Setenv(key, value)
	}

	// Return cleanup function that restores original environment
	return func() {
		os.Clearenv()
		for _, env := range originalEnv {
			for i := 0; i < len(env); i++ {
				if env[i] == '=' {
					os.Setenv(env[:i], env[i+1:])
					break
				}
			}
		}
		_ = os.Chdir(originalDir)
	}
}
