// ABOUTME: Shared API response models for the TCO analyzer
// ABOUTME: JSON-serializable envelopes for errors, health and catalog listings

package models

import "time"

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
	Code    int      `json:"code"`
}

// HealthResponse reports service and dependency status
type HealthResponse struct {
	Status         string    `json:"status"`
	CatalogVersion string    `json:"catalog_version"`
	CatalogSource  string    `json:"catalog_source"`
	VSphere        string    `json:"vsphere"`
	Timestamp      time.Time `json:"timestamp"`
}
