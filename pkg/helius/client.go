// Package helius provides a client for the Helius DAS JSON-RPC API.
package helius

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/rotisserie/eris"

	"github.com/sells-group/token-scout/internal/resilience"
)

// Source is the name this client reports in errors and metrics.
const Source = "helius"

// Client defines the Helius operations.
type Client interface {
	// GetAsset returns the raw DAS asset document for a mint.
	GetAsset(ctx context.Context, mint string) (json.RawMessage, error)
}

// RPCError is the error object of a JSON-RPC response.
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

type rpcRequest struct {
	JSONRPC string    `json:"jsonrpc"`
	ID      string    `json:"id"`
	Method  string    `json:"method"`
	Params  rpcParams `json:"params"`
}

type rpcParams struct {
	ID             string         `json:"id"`
	DisplayOptions displayOptions `json:"displayOptions"`
}

type displayOptions struct {
	ShowFungible bool `json:"showFungible"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *RPCError       `json:"error"`
}

// Option configures the Helius client.
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

// NewClient creates a new Helius client.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: "https://mainnet.helius-rpc.com",
		caller:  &resilience.Caller{Source: Source, HTTP: resilience.NewHTTPClient()},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *httpClient) GetAsset(ctx context.Context, mint string) (json.RawMessage, error) {
	payload, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		ID:      "token-metadata",
		Method:  "getAsset",
		Params: rpcParams{
			ID:             mint,
			DisplayOptions: displayOptions{ShowFungible: true},
		},
	})
	if err != nil {
		return nil, eris.Wrap(err, "helius: marshal request")
	}

	reqURL := c.baseURL + "/?api-key=" + url.QueryEscape(c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(payload))
	if err != nil {
		return nil, eris.Wrap(err, "helius: create request")
	}
	req.Header.Set("Content-Type", "application/json")

	body, err := c.caller.Do(req)
	if err != nil {
		return nil, err
	}

	var resp rpcResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, resilience.Malformed(Source, err)
	}
	if resp.Error != nil {
		return nil, resilience.NewUpstreamError(Source, 0, resp.Error)
	}
	if len(resp.Result) == 0 || string(resp.Result) == "null" {
		return nil, resilience.Malformed(Source, eris.New("empty result"))
	}

	return resp.Result, nil
}
