package resilience

import (
	"errors"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rotisserie/eris"
)

// maxBodyBytes caps how much of an upstream response is read.
const maxBodyBytes = 8 << 20

// Caller performs single-attempt HTTP calls to one upstream source. Failures
// come back as *UpstreamError so they can be classified.
type Caller struct {
	Source  string
	HTTP    *http.Client
	Limiter *AdaptiveLimiter
}

// NewHTTPClient returns the pooled client used for upstream calls. Deadlines
// come from the request context, the timeout here is only a backstop.
func NewHTTPClient() *http.Client {
	return &http.Client{
		Timeout: 30 * time.Second,
		Transport: &http.Transport{
			MaxIdleConnsPerHost: 10,
			MaxConnsPerHost:     20,
			IdleConnTimeout:     90 * time.Second,
		},
	}
}

// Do sends req once and returns the body of a 2xx response.
func (c *Caller) Do(req *http.Request) ([]byte, error) {
	ctx := req.Context()
	if err := c.Limiter.Wait(ctx); err != nil {
		return nil, NewUpstreamError(c.Source, 0, err)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, NewUpstreamError(c.Source, 0, eris.Wrap(redactURL(err), "request failed"))
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, NewUpstreamError(c.Source, resp.StatusCode, eris.Wrap(err, "read response body"))
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		c.Limiter.OnRateLimit()
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, NewUpstreamError(c.Source, resp.StatusCode,
			eris.Errorf("unexpected status %d: %s", resp.StatusCode, truncate(body, 256)))
	}

	c.Limiter.OnSuccess()
	return body, nil
}

// redactURL drops the query string and userinfo from the URL that net/http
// embeds in transport errors. API keys travel in the query for some sources.
func redactURL(err error) error {
	var ue *url.Error
	if !errors.As(err, &ue) {
		return err
	}
	if u, perr := url.Parse(ue.URL); perr == nil {
		u.RawQuery = ""
		u.User = nil
		ue.URL = u.String()
	} else {
		ue.URL = "[redacted]"
	}
	return ue
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
