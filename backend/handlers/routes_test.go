// ABOUTME: Tests for route table definitions
// ABOUTME: Verifies all routes have required fields and no duplicates

package handlers

import (
	"net/http"
	"strings"
	"testing"
)

func TestRoutes_AllRoutesHaveRequiredFields(t *testing.T) {
	h := newTestHandler(t)
	routes := h.Routes()

	if len(routes) == 0 {
		t.Fatal("Routes() returned empty slice")
	}

	for i, route := range routes {
		if route.Method == "" {
			t.Errorf("Route %d: Method is empty", i)
		}
		if route.Path == "" {
			t.Errorf("Route %d: Path is empty", i)
		}
		if route.Handler == nil {
			t.Errorf("Route %d: Handler is nil", i)
		}
		if !strings.HasPrefix(route.Path, "/api/v1/") {
			t.Errorf("Route %d: Path %q must start with /api/v1/", i, route.Path)
		}
	}
}

func TestRoutes_NoDuplicatePaths(t *testing.T) {
	h := newTestHandler(t)
	routes := h.Routes()

	seen := make(map[string]bool)
	for _, route := range routes {
		key := route.Method + " " + route.Path
		if seen[key] {
			t.Errorf("Duplicate route: %s", key)
		}
		seen[key] = true
	}
}

func TestRoutes_ExpectedEndpoints(t *testing.T) {
	h := newTestHandler(t)
	routes := h.Routes()

	expected := map[string]bool{
		"GET /api/v1/health":                       false,
		"GET /api/v1/catalog":                      false,
		"POST /api/v1/catalog/reload":              false,
		"POST /api/v1/storage/calculate":           false,
		"POST /api/v1/infrastructure/capabilities": false,
		"POST /api/v1/infrastructure/service-mix":  false,
		"GET /api/v1/infrastructure/vsphere":       false,
		"GET /api/v1/openapi.yaml":                 false,
	}

	for _, route := range routes {
		key := route.Method + " " + route.Path
		if _, ok := expected[key]; ok {
			expected[key] = true
		}
	}

	for key, found := range expected {
		if !found {
			t.Errorf("Missing expected route: %s", key)
		}
	}
}

func TestRoutes_PostRoutesAreLimited(t *testing.T) {
	h := newTestHandler(t)

	for _, route := range h.Routes() {
		if route.Method == http.MethodPost && route.Class == ClassUnlimited {
			t.Errorf("Route %s %s has no rate limit class", route.Method, route.Path)
		}
	}
}
