package monitoring

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/token-scout/internal/resilience"
)

func TestUpstreamOutcomes(t *testing.T) {
	m := NewMetrics()

	m.Upstream("helius", nil)
	m.Upstream("helius", nil)
	m.Upstream("helius", context.DeadlineExceeded)
	m.Upstream("birdeye", resilience.NewUpstreamError("birdeye", 503, assert.AnError))

	assert.InDelta(t, 2, testutil.ToFloat64(m.upstream.WithLabelValues("helius", "ok")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.upstream.WithLabelValues("helius", "timeout")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.upstream.WithLabelValues("birdeye", "unavailable")), 0)
}

func TestFallbackAndNonEnglish(t *testing.T) {
	m := NewMetrics()

	m.Fallback("token", ReasonInvalidAddress)
	m.NonEnglish()
	m.NonEnglish()

	assert.InDelta(t, 1, testutil.ToFloat64(m.fallbacks.WithLabelValues("token", ReasonInvalidAddress)), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(m.nonEnglish), 0)
}

func TestScoreHistogram(t *testing.T) {
	m := NewMetrics()
	m.Score("heuristic", 0.99)
	m.Score("heuristic", 0.01)

	assert.Equal(t, 1, testutil.CollectAndCount(m.scores))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.Upstream("helius", nil)
		m.Fallback("risk", ReasonDemoMode)
		m.Score("heuristic", 0.5)
		m.NonEnglish()
	})
}

func TestHandler(t *testing.T) {
	m := NewMetrics()
	m.Fallback("score", ReasonBadRequest)

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `tokenscout_fallbacks_total{artifact="score",reason="bad_request"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}
