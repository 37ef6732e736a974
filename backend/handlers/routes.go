// ABOUTME: Declarative route table for API endpoints
// ABOUTME: Defines all routes with their HTTP methods, handlers and rate limit class

package handlers

import "net/http"

// RouteClass groups routes that share a rate limit budget
type RouteClass string

const (
	ClassUnlimited RouteClass = ""
	ClassCompute   RouteClass = "compute"
	ClassDiscovery RouteClass = "discovery"
	ClassAdmin     RouteClass = "admin"
)

// Route defines an API endpoint with its HTTP method and handler.
type Route struct {
	Method  string           // HTTP method (GET, POST, etc.)
	Path    string           // URL path (e.g., "/api/v1/health")
	Handler http.HandlerFunc // Handler function
	Class   RouteClass       // Rate limit budget
}

// Routes returns all API routes for registration.
func (h *Handler) Routes() []Route {
	return []Route{
		// Health & Status
		{Method: http.MethodGet, Path: "/api/v1/health", Handler: h.Health},

		// Catalog
		{Method: http.MethodGet, Path: "/api/v1/catalog", Handler: h.GetCatalog},
		{Method: http.MethodPost, Path: "/api/v1/catalog/reload", Handler: h.ReloadCatalog, Class: ClassAdmin},

		// Storage TCO
		{Method: http.MethodPost, Path: "/api/v1/storage/calculate", Handler: h.CalculateStorage, Class: ClassCompute},

		// Infrastructure
		{Method: http.MethodPost, Path: "/api/v1/infrastructure/capabilities", Handler: h.AnalyzeCapabilities, Class: ClassCompute},
		{Method: http.MethodPost, Path: "/api/v1/infrastructure/service-mix", Handler: h.DeriveServiceMix, Class: ClassCompute},
		{Method: http.MethodGet, Path: "/api/v1/infrastructure/vsphere", Handler: h.DiscoverVSphere, Class: ClassDiscovery},

		// Documentation
		{Method: http.MethodGet, Path: "/api/v1/openapi.yaml", Handler: h.OpenAPISpec},
	}
}
