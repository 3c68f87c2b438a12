// Package mlscore provides a client for the external scoring delegate.
package mlscore

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/token-scout/internal/model"
	"github.com/sells-group/token-scout/internal/resilience"
)

// Source is the name this client reports in errors and metrics.
const Source = "mlscore"

// Client defines the scoring delegate operations.
type Client interface {
	// Score submits req to the delegate and returns its verdict.
	Score(ctx context.Context, req model.ScoreRequest) (model.ScoreResult, error)
}

// Option configures the delegate client.
type Option func(*httpClient)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.caller.HTTP = hc
	}
}

type httpClient struct {
	baseURL string
	caller  *resilience.Caller
}

// NewClient creates a delegate client for the service at baseURL.
func NewClient(baseURL string, opts ...Option) Client {
	c := &httpClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		caller:  &resilience.Caller{Source: Source, HTTP: resilience.NewHTTPClient()},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *httpClient) Score(ctx context.Context, sr model.ScoreRequest) (model.ScoreResult, error) {
	payload, err := json.Marshal(sr)
	if err != nil {
		return model.ScoreResult{}, eris.Wrap(err, "mlscore: marshal request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/score", bytes.NewReader(payload))
	if err != nil {
		return model.ScoreResult{}, eris.Wrap(err, "mlscore: create request")
	}
	req.Header.Set("Content-Type", "application/json")

	body, err := c.caller.Do(req)
	if err != nil {
		return model.ScoreResult{}, err
	}

	var result struct {
		Probability *float64           `json:"probability"`
		Explain     string             `json:"explain"`
		Factors     map[string]float64 `json:"factors"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return model.ScoreResult{}, resilience.Malformed(Source, err)
	}
	if result.Probability == nil {
		return model.ScoreResult{}, resilience.Malformed(Source, eris.New("missing probability"))
	}
	p := *result.Probability
	if p < 0 || p > 1 {
		return model.ScoreResult{}, resilience.Malformed(Source, eris.Errorf("probability %v out of range", p))
	}

	return model.ScoreResult{Probability: p, Explain: result.Explain, Factors: result.Factors}, nil
}
