// Package solr is a minimal HTTP client for a Solr-compatible search index.
// It issues exactly one request per call: no retries and no client-level
// timeout. Budgets are enforced by the caller through the context.
package solr

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/kailas-cloud/contentd/internal/metrics"
)

// PingPath is the Solr core health endpoint.
const PingPath = "/solr/articles/admin/ping"

// maxBodyBytes caps how much of an error response body is kept for diagnostics.
const maxBodyBytes = 4 << 10

// StatusError reports a non-2xx response from the index.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("solr returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("solr returned status %d: %s", e.StatusCode, e.Body)
}

// Config holds the search index client settings.
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// Client talks to the search index over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// NewClient creates a search index client. A nil HTTPClient gets a fresh
// *http.Client with no Timeout set.
func NewClient(cfg *Config) *Client {
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    hc,
		logger:  logger,
	}
}

// Get issues a single GET for requestURI (path plus query, already escaped)
// and returns the raw body on a 2xx answer.
func (c *Client) Get(ctx context.Context, requestURI string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+requestURI, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("GET %s: %w", requestURI, err)
	}
	defer func() { _ = resp.Body.Close() }()

	metrics.SearchUpstreamStatusTotal.WithLabelValues(strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
		return "", &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response body: %w", err)
	}

	c.logger.Debug("Search index responded",
		zap.String("request_uri", requestURI),
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(body)),
	)
	return string(body), nil
}

// HealthCheck verifies the index answers its ping endpoint.
func (c *Client) HealthCheck(ctx context.Context) error {
	if _, err := c.Get(ctx, PingPath); err != nil {
		return fmt.Errorf("solr ping: %w", err)
	}
	return nil
}
