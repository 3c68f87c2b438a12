package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/token-scout/internal/config"
	"github.com/sells-group/token-scout/internal/demo"
	"github.com/sells-group/token-scout/internal/model"
	"github.com/sells-group/token-scout/internal/monitoring"
	"github.com/sells-group/token-scout/internal/pipeline"
	"github.com/sells-group/token-scout/internal/scorer"
)

const bonk = "DezXAZ8z7PnrnRJjz3wXBoRgixCa6xjnB7YaB1pPB263"

// newDemoServer wires a real analyzer with every source in demo mode.
func newDemoServer(t *testing.T) (*httptest.Server, *monitoring.Metrics) {
	t.Helper()
	h, err := scorer.NewHeuristic(config.DefaultScoringConfig())
	require.NoError(t, err)
	m := monitoring.NewMetrics()
	a, err := pipeline.New(pipeline.Options{Heuristic: h, Demo: demo.MustLoad(), Metrics: m})
	require.NoError(t, err)

	srv := httptest.NewServer(NewRouter(a, Config{
		CORSOrigins: []string{"http://localhost:3000"},
		Metrics:     m.Handler(),
	}))
	t.Cleanup(srv.Close)
	return srv, m
}

func get(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

func TestHealth(t *testing.T) {
	srv, _ := newDemoServer(t)

	resp, body := get(t, srv.URL+"/health")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, string(body))
	assert.NotEmpty(t, resp.Header.Get(requestIDHeader))
}

func TestMissingIdentifierIs400(t *testing.T) {
	srv, _ := newDemoServer(t)

	for _, path := range []string{"/api/token", "/api/risk", "/api/rugcheck", "/api/analyze", "/api/token?id="} {
		t.Run(path, func(t *testing.T) {
			resp, body := get(t, srv.URL+path)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.JSONEq(t, `{"error":"Mint address is required"}`, string(body))
		})
	}
}

func TestTokenDemo(t *testing.T) {
	srv, _ := newDemoServer(t)

	for _, q := range []string{"?id=" + bonk, "?mint=" + bonk, "?id=garbage"} {
		resp, body := get(t, srv.URL+"/api/token"+q)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

		var tok model.TokenDescriptor
		require.NoError(t, json.Unmarshal(body, &tok))
		assert.Equal(t, "Demo Pepe", tok.Name)
	}
}

func TestRiskAliases(t *testing.T) {
	srv, _ := newDemoServer(t)

	for _, path := range []string{"/api/risk?id=", "/api/rugcheck?mint="} {
		resp, body := get(t, srv.URL+path+bonk)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var risk model.RiskAssessment
		require.NoError(t, json.Unmarshal(body, &risk))
		assert.Equal(t, model.RiskMedium, risk.Risk)
		assert.Equal(t, "demo", risk.Status)
	}
}

func TestScore(t *testing.T) {
	srv, _ := newDemoServer(t)

	body := `{"name":"MoonRocket","description":"to the moon 100x","socials":{"twitter":"x"},
		"market":{"liquidity":200000,"volume24h":60000},"rug":{"risk":"low"}}`
	resp, err := http.Post(srv.URL+"/api/score", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var got model.ScoreResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.InDelta(t, 0.99, got.Probability, 1e-9)
	assert.Equal(t,
		"Analysis based on: +moon, +rocket, +100x, +twitter, +liquidity, +volume, +low_risk. Strong pump potential detected!",
		got.Explain)
}

func TestScoreMalformedBodyServesDemo(t *testing.T) {
	srv, _ := newDemoServer(t)

	resp, err := http.Post(srv.URL+"/api/score", "application/json", strings.NewReader(`{not json`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var got model.ScoreResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, demo.MustLoad().Score(), got)
}

func TestAnalyzeDemo(t *testing.T) {
	srv, _ := newDemoServer(t)

	resp, body := get(t, srv.URL+"/api/analyze?id="+bonk)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var report model.Report
	require.NoError(t, json.Unmarshal(body, &report))
	assert.Equal(t, bonk, report.Mint)
	assert.NotEmpty(t, report.ID)
	assert.Equal(t, "Demo Pepe", report.Token.Name)
	assert.Greater(t, report.Score.Probability, 0.0)
}

func TestMetricsEndpoint(t *testing.T) {
	srv, _ := newDemoServer(t)

	get(t, srv.URL+"/api/token?id="+bonk)
	resp, body := get(t, srv.URL+"/metrics")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `tokenscout_fallbacks_total{artifact="token",reason="demo_mode"} 1`)
}

func TestCORS(t *testing.T) {
	srv, _ := newDemoServer(t)

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/api/score", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "http://localhost:3000", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestRequestIDPropagated(t *testing.T) {
	srv, _ := newDemoServer(t)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/health", nil)
	require.NoError(t, err)
	req.Header.Set(requestIDHeader, "abc-123")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "abc-123", resp.Header.Get(requestIDHeader))
}

func TestHandlersWithMockService(t *testing.T) {
	svc := &mockService{}
	svc.On("Token", mock.Anything, bonk).Return(model.TokenDescriptor{Name: "Bonk", Symbol: "Bonk"}, nil)
	svc.On("Risk", mock.Anything, "").Return(model.RiskAssessment{}, pipeline.ErrMissingIdentifier)
	svc.On("Analyze", mock.Anything, bonk).Return(model.Report{}, assert.AnError)
	svc.On("ScoreRaw", mock.Anything, []byte(`{}`)).Return(model.ScoreResult{Probability: 0.5, Explain: "x"})

	srv := httptest.NewServer(NewRouter(svc, Config{}))
	defer srv.Close()

	resp, body := get(t, srv.URL+"/api/token?mint="+bonk)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"name":"Bonk"`)

	resp, _ = get(t, srv.URL+"/api/risk")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = get(t, srv.URL+"/api/analyze?id="+bonk)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	post, err := http.Post(srv.URL+"/api/score", "application/json", strings.NewReader(`{}`))
	require.NoError(t, err)
	post.Body.Close()
	assert.Equal(t, http.StatusOK, post.StatusCode)

	resp, _ = get(t, srv.URL+"/metrics")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	svc.AssertExpectations(t)
}
