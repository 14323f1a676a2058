package sdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultTimeout = 30 * time.Second

// Client talks to a shardcost API server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the request timeout on the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// New creates a client for the API at baseURL, e.g. "http://localhost:8080".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Health checks that the server is up.
func (c *Client) Health(ctx context.Context) error {
	var resp map[string]string
	return c.do(ctx, http.MethodGet, "/healthz", nil, &resp)
}

// Databases lists the catalog designs.
func (c *Client) Databases(ctx context.Context) ([]DatabaseSummary, error) {
	var resp struct {
		Databases []DatabaseSummary `json:"databases"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/v1/databases", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Databases, nil
}

// Sizes returns the storage footprint of a design.
func (c *Client) Sizes(ctx context.Context, databaseID int) (SizeReport, error) {
	var report SizeReport
	path := fmt.Sprintf("/api/v1/databases/%d/sizes", databaseID)
	if err := c.do(ctx, http.MethodGet, path, nil, &report); err != nil {
		return SizeReport{}, err
	}
	return report, nil
}

// Sharding compares sharding key candidates for a design.
func (c *Client) Sharding(ctx context.Context, databaseID int) ([]ShardingAnalysis, error) {
	var resp struct {
		Sharding []ShardingAnalysis `json:"sharding"`
	}
	path := fmt.Sprintf("/api/v1/databases/%d/sharding", databaseID)
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Sharding, nil
}

// RunQuery estimates one catalog query (1-7) against a design.
func (c *Client) RunQuery(ctx context.Context, databaseID, query int, req EstimateRequest) (QueryResponse, error) {
	var resp QueryResponse
	path := fmt.Sprintf("/api/v1/databases/%d/queries/%d", databaseID, query)
	if err := c.do(ctx, http.MethodPost, path, req, &resp); err != nil {
		return QueryResponse{}, err
	}
	return resp, nil
}

// Report runs the full analysis of a design.
func (c *Client) Report(ctx context.Context, databaseID int, req EstimateRequest) (ReportResponse, error) {
	var resp ReportResponse
	path := fmt.Sprintf("/api/v1/databases/%d/report", databaseID)
	if err := c.do(ctx, http.MethodPost, path, req, &resp); err != nil {
		return ReportResponse{}, err
	}
	return resp, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("shardcost api: encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("shardcost api: build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("shardcost api: %s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		apiErr := &APIError{Status: resp.StatusCode, Code: "unknown"}
		if err := json.NewDecoder(resp.Body).Decode(apiErr); err != nil {
			apiErr.Message = resp.Status
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("shardcost api: decode response: %w", err)
	}
	return nil
}
