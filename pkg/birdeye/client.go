// Package birdeye provides a client for the Birdeye public market-data API.
package birdeye

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/rotisserie/eris"

	"github.com/sells-group/token-scout/internal/resilience"
)

// Source is the name this client reports in errors and metrics.
const Source = "birdeye"

// Client defines the Birdeye operations.
type Client interface {
	// TokenOverview returns the raw overview ("data") object for a mint.
	// Fields of interest are price, liquidity and v24hUSD.
	TokenOverview(ctx context.Context, mint string) (json.RawMessage, error)
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// Option configures the Birdeye client.
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

// NewClient creates a new Birdeye client.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: "https://public-api.birdeye.so",
		caller:  &resilience.Caller{Source: Source, HTTP: resilience.NewHTTPClient()},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *httpClient) TokenOverview(ctx context.Context, mint string) (json.RawMessage, error) {
	reqURL := c.baseURL + "/defi/token_overview?address=" + url.QueryEscape(mint)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "birdeye: create request")
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("x-chain", "solana")
	req.Header.Set("X-API-KEY", c.apiKey)

	body, err := c.caller.Do(req)
	if err != nil {
		return nil, err
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, resilience.Malformed(Source, err)
	}
	if !env.Success {
		msg := env.Message
		if msg == "" {
			msg = "success=false"
		}
		return nil, resilience.Malformed(Source, eris.New(msg))
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil, resilience.Malformed(Source, eris.New("empty data"))
	}

	return env.Data, nil
}
