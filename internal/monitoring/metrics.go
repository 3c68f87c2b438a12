// Package monitoring exposes Prometheus metrics for upstream calls, fallbacks
// and scores.
package monitoring

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sells-group/token-scout/internal/resilience"
)

const namespace = "tokenscout"

// Fallback reasons.
const (
	ReasonDemoMode       = "demo_mode"
	ReasonInvalidAddress = "invalid_address"
	ReasonUpstream       = "upstream_failure"
	ReasonPanic          = "panic"
	ReasonBadRequest     = "bad_request"
)

// Metrics holds the service collectors. A nil *Metrics records nothing.
type Metrics struct {
	registry *prometheus.Registry

	upstream   *prometheus.CounterVec
	fallbacks  *prometheus.CounterVec
	scores     *prometheus.HistogramVec
	nonEnglish prometheus.Counter
}

// NewMetrics creates and registers the collectors on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		upstream: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_requests_total",
			Help:      "Upstream API calls by source and outcome.",
		}, []string{"source", "outcome"}),
		fallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fallbacks_total",
			Help:      "Demo or local substitutions by artifact and reason.",
		}, []string{"artifact", "reason"}),
		scores: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "score_probability",
			Help:      "Distribution of returned pump probabilities.",
			Buckets:   prometheus.LinearBuckets(0.1, 0.1, 9),
		}, []string{"scorer"}),
		nonEnglish: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "non_english_text_total",
			Help:      "Score requests whose name and description are not detected as English.",
		}),
	}
	m.registry.MustRegister(
		m.upstream,
		m.fallbacks,
		m.scores,
		m.nonEnglish,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Upstream records one upstream call; err == nil counts as "ok".
func (m *Metrics) Upstream(source string, err error) {
	if m == nil {
		return
	}
	m.upstream.WithLabelValues(source, string(resilience.Classify(err))).Inc()
}

// Fallback records a substitution of artifact for reason.
func (m *Metrics) Fallback(artifact, reason string) {
	if m == nil {
		return
	}
	m.fallbacks.WithLabelValues(artifact, reason).Inc()
}

// Score records a returned probability from scorer.
func (m *Metrics) Score(scorer string, probability float64) {
	if m == nil {
		return
	}
	m.scores.WithLabelValues(scorer).Observe(probability)
}

// NonEnglish records a score request with non-English text.
func (m *Metrics) NonEnglish() {
	if m == nil {
		return
	}
	m.nonEnglish.Inc()
}

// Registry returns the underlying registry, for tests and extra collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
