// ABOUTME: HTTP client for the GPU TCO Analyzer API
// ABOUTME: Wraps API calls with proper error handling for CLI usage

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/markalston/gpu-tco-analyzer/backend/catalog"
	"github.com/markalston/gpu-tco-analyzer/backend/models"
)

// Client is the API client for the GPU TCO Analyzer backend
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// DefaultTimeout bounds each request unless WithTimeout overrides it
const DefaultTimeout = 30 * time.Second

// Option configures a Client
type Option func(*Client)

// WithTimeout sets the per-request timeout; zero or negative keeps the default
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// New creates a new API client with the given base URL
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CatalogResponse mirrors GET /api/v1/catalog
type CatalogResponse struct {
	Source   string          `json:"source"`
	Path     string          `json:"path,omitempty"`
	LoadedAt time.Time       `json:"loaded_at"`
	Catalog  catalog.Catalog `json:"catalog"`
}

// APIError is a non-2xx response from the backend
type APIError struct {
	StatusCode int
	Message    string
	Details    []string
	RetryAfter time.Duration // set on 429
}

func (e *APIError) Error() string {
	if e.StatusCode == http.StatusTooManyRequests && e.RetryAfter > 0 {
		return fmt.Sprintf("backend error: %s, retry in %s", e.Message, e.RetryAfter)
	}
	if len(e.Details) > 0 {
		return fmt.Sprintf("backend error: %s (%s)", e.Message, strings.Join(e.Details, "; "))
	}
	return fmt.Sprintf("backend error: %s", e.Message)
}

// IsValidationError reports whether err is a 400 from the backend
func IsValidationError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusBadRequest
}

// Health calls GET /api/v1/health
func (c *Client) Health(ctx context.Context) (*models.HealthResponse, error) {
	var health models.HealthResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/health", nil, &health); err != nil {
		return nil, err
	}
	return &health, nil
}

// Catalog calls GET /api/v1/catalog
func (c *Client) Catalog(ctx context.Context) (*CatalogResponse, error) {
	var resp CatalogResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/catalog", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ReloadCatalog calls POST /api/v1/catalog/reload
func (c *Client) ReloadCatalog(ctx context.Context) (*CatalogResponse, error) {
	var resp CatalogResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/catalog/reload", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CalculateStorage calls POST /api/v1/storage/calculate
func (c *Client) CalculateStorage(ctx context.Context, cfg *models.StorageConfig) (*models.StorageResults, error) {
	var results models.StorageResults
	if err := c.do(ctx, http.MethodPost, "/api/v1/storage/calculate", cfg, &results); err != nil {
		return nil, err
	}
	return &results, nil
}

// ServiceMix calls POST /api/v1/infrastructure/service-mix
func (c *Client) ServiceMix(ctx context.Context, cfg *models.InfrastructureConfig) (*models.ServiceMixResponse, error) {
	var resp models.ServiceMixResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/infrastructure/service-mix", cfg, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DiscoverVSphere calls GET /api/v1/infrastructure/vsphere
func (c *Client) DiscoverVSphere(ctx context.Context, refresh bool) (*models.GPUInventory, error) {
	path := "/api/v1/infrastructure/vsphere"
	if refresh {
		path += "?refresh=true"
	}
	var inv models.GPUInventory
	if err := c.do(ctx, http.MethodGet, path, nil, &inv); err != nil {
		return nil, err
	}
	return &inv, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal input: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.handleRequestError(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.handleErrorResponse(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("invalid response from backend: %w", err)
	}
	return nil
}

// handleRequestError converts context errors to user-friendly messages
func (c *Client) handleRequestError(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.Canceled) {
		return fmt.Errorf("request canceled")
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("request timed out")
	}
	return fmt.Errorf("cannot connect to backend at %s: %w", c.baseURL, err)
}

// handleErrorResponse parses API error responses
func (c *Client) handleErrorResponse(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("status %d", resp.StatusCode)}
	if secs, err := strconv.Atoi(resp.Header.Get("Retry-After")); err == nil && secs > 0 {
		apiErr.RetryAfter = time.Duration(secs) * time.Second
	}

	var errResp models.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Error != "" {
		apiErr.Message = errResp.Error
		apiErr.Details = errResp.Details
	}
	return apiErr
}
