// Package api is the HTTP client for the operadoras API.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/j-veylop/operadoras-tui/internal/logger"
	"github.com/j-veylop/operadoras-tui/internal/models"
)

const (
	// DefaultDespesasLimit is the expense page size used by the detail page:
	// three years of quarters.
	DefaultDespesasLimit = 12

	// apiPrefix is appended to the configured base URL.
	apiPrefix = "/api"
)

// Client issues GET requests against the operadoras API. It keeps no state
// between calls besides its configuration and is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	baseURL    *url.URL
	timeout    time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets a per-request timeout. Zero means no timeout. The
// timeout is applied to a copy of the http.Client, so a client passed to
// WithHTTPClient is never modified.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// New creates a client for the API rooted at baseURL. The "/api" prefix is
// added here, so baseURL is the server origin (e.g. http://localhost:5000).
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, fmt.Errorf("api base URL is empty")
	}

	u, err := url.Parse(strings.TrimRight(baseURL, "/") + apiPrefix)
	if err != nil {
		return nil, fmt.Errorf("invalid api base URL %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid api base URL %q: scheme must be http or https", baseURL)
	}

	c := &Client{
		httpClient: &http.Client{},
		baseURL:    u,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		hc := *c.httpClient
		hc.Timeout = c.timeout
		c.httpClient = &hc
	}
	return c, nil
}

// BaseURL returns the resolved API root, including the /api prefix.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// ListOperadoras fetches one page of operadoras. An empty search is omitted
// from the query string.
func (c *Client) ListOperadoras(ctx context.Context, page, limit int, search string) (*models.PaginatedResponse[models.Operadora], error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))
	if search != "" {
		q.Set("search", search)
	}

	var resp models.PaginatedResponse[models.Operadora]
	if err := c.get(ctx, "/operadoras", q, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetOperadora fetches the full record of one operadora.
func (c *Client) GetOperadora(ctx context.Context, cnpj string) (*models.Operadora, error) {
	cnpj, err := normalizeCNPJ(cnpj)
	if err != nil {
		return nil, err
	}

	var op models.Operadora
	if err := c.get(ctx, "/operadoras/"+url.PathEscape(cnpj), nil, &op); err != nil {
		return nil, err
	}
	return &op, nil
}

// ListDespesas fetches one page of quarterly expenses for an operadora.
// A page below 1 is treated as 1.
func (c *Client) ListDespesas(ctx context.Context, cnpj string, page, limit int) (*models.PaginatedResponse[models.Despesa], error) {
	cnpj, err := normalizeCNPJ(cnpj)
	if err != nil {
		return nil, err
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultDespesasLimit
	}

	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))

	var resp models.PaginatedResponse[models.Despesa]
	if err := c.get(ctx, "/operadoras/"+url.PathEscape(cnpj)+"/despesas", q, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetEstatisticas fetches the aggregate statistics.
func (c *Client) GetEstatisticas(ctx context.Context) (*models.StatsResponse, error) {
	var stats models.StatsResponse
	if err := c.get(ctx, "/estatisticas", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func normalizeCNPJ(cnpj string) (string, error) {
	clean := models.CleanCNPJ(cnpj)
	if len(clean) != models.CNPJLength {
		return "", fmt.Errorf("%w: %q", ErrInvalidCNPJ, cnpj)
	}
	return clean, nil
}

// get performs a GET on path relative to the API root and decodes the JSON
// body into out.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	endpoint := c.baseURL.JoinPath(path)
	if len(query) > 0 {
		endpoint.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Error("failed to close response body", "error", err)
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response from %s: %w", path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newStatusError(resp.StatusCode, body)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response from %s: %w", path, err)
	}

	return nil
}
