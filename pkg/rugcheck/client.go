// Package rugcheck provides a client for the RugCheck token risk API.
package rugcheck

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/rotisserie/eris"

	"github.com/sells-group/token-scout/internal/resilience"
)

// Source is the name this client reports in errors and metrics.
const Source = "rugcheck"

// Client defines the RugCheck operations.
type Client interface {
	// Scan returns the raw risk report for a Solana mint.
	Scan(ctx context.Context, mint string) (json.RawMessage, error)
}

// Option configures the RugCheck client.
type Option func(*httpClient)

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(url string) Option {
	return func(c *httpClient) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.caller.HTTP = hc
	}
}

// WithRateLimit caps outbound requests per second. Zero disables limiting.
func WithRateLimit(perSec float64) Option {
	return func(c *httpClient) {
		c.caller.Limiter = resilience.NewLimiter(Source, perSec)
	}
}

type httpClient struct {
	apiKey  string
	baseURL string
	caller  *resilience.Caller
}

// NewClient creates a new RugCheck client.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: "https://api.rugcheck.xyz",
		caller:  &resilience.Caller{Source: Source, HTTP: resilience.NewHTTPClient()},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *httpClient) Scan(ctx context.Context, mint string) (json.RawMessage, error) {
	reqURL := c.baseURL + "/tokens/scan/solana/" + url.PathEscape(mint)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "rugcheck: create request")
	}
	req.Header.Set("X-API-KEY", c.apiKey)
	req.Header.Set("Accept", "application/json")

	body, err := c.caller.Do(req)
	if err != nil {
		return nil, err
	}
	if !json.Valid(body) {
		return nil, resilience.Malformed(Source, eris.New("invalid json"))
	}

	return body, nil
}
