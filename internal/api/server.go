// Package api serves the token analysis JSON API.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/sells-group/token-scout/internal/model"
)

// Service is the analysis surface the handlers depend on.
type Service interface {
	Token(ctx context.Context, id string) (model.TokenDescriptor, error)
	Risk(ctx context.Context, id string) (model.RiskAssessment, error)
	ScoreRaw(ctx context.Context, body []byte) model.ScoreResult
	Analyze(ctx context.Context, id string) (model.Report, error)
}

// Config configures the router.
type Config struct {
	CORSOrigins []string
	// Metrics serves /metrics when set.
	Metrics http.Handler
	// RequestTimeout bounds each request; zero means 60s.
	RequestTimeout time.Duration
}

// NewRouter builds the HTTP handler for svc.
func NewRouter(svc Service, cfg Config) http.Handler {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 60 * time.Second
	}
	h := &handlers{svc: svc}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.RealIP)
	r.Use(accessLog)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", requestIDHeader},
		ExposedHeaders: []string{requestIDHeader},
		MaxAge:         300,
	}))

	r.Get("/health", h.health)
	if cfg.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", cfg.Metrics)
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Timeout(cfg.RequestTimeout))
		r.Get("/token", h.token)
		r.Get("/risk", h.risk)
		r.Get("/rugcheck", h.risk)
		r.Post("/score", h.score)
		r.Get("/analyze", h.analyze)
	})

	return r
}
