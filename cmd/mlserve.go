package main

import (
	"encoding/json"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/token-scout/internal/api"
	"github.com/sells-group/token-scout/internal/model"
	"github.com/sells-group/token-scout/internal/scorer"
)

const mlserveVersion = "1.0.0"

var mlservePort int

var mlserveCmd = &cobra.Command{
	Use:   "mlserve",
	Short: "Serve the feature-based scoring delegate",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		cfg.Server.Port = mlservePort
		if err := cfg.Validate("mlserve"); err != nil {
			return err
		}

		fs, err := scorer.NewFeatureScorer(scorer.DefaultFeatureConfig())
		if err != nil {
			return err
		}

		return listenAndServe(ctx, mlservePort, buildScoringMux(fs, cfg.Server.CORSOrigins))
	},
}

// buildScoringMux serves the delegate endpoints over fs.
func buildScoringMux(fs *scorer.FeatureScorer, origins []string) http.Handler {
	validate := validator.New()

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	}))

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		api.WriteJSON(w, http.StatusOK, map[string]string{
			"status":  "ok",
			"service": "token-scout scoring delegate",
			"version": mlserveVersion,
		})
	})

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		api.WriteJSON(w, http.StatusOK, map[string]any{"status": "healthy", "model_loaded": true})
	})

	r.Post("/score", func(w http.ResponseWriter, r *http.Request) {
		var req model.ScoreRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			api.WriteJSON(w, http.StatusUnprocessableEntity, map[string]string{"detail": "invalid request body"})
			return
		}
		if err := validate.Struct(req); err != nil {
			api.WriteJSON(w, http.StatusUnprocessableEntity, map[string]string{"detail": err.Error()})
			return
		}

		res := fs.Score(req)
		zap.L().Debug("mlserve: scored",
			zap.String("name", req.Name),
			zap.Float64("probability", res.Probability),
		)
		api.WriteJSON(w, http.StatusOK, res)
	})

	return r
}

func init() {
	mlserveCmd.Flags().IntVar(&mlservePort, "port", 8000, "delegate server port")
	rootCmd.AddCommand(mlserveCmd)
}
