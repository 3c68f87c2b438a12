package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/sells-group/token-scout/internal/pipeline"
)

const maxScoreBody = 1 << 20

type handlers struct {
	svc Service
}

func (h *handlers) health(w http.ResponseWriter, _ *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handlers) token(w http.ResponseWriter, r *http.Request) {
	token, err := h.svc.Token(r.Context(), mintParam(r))
	if err != nil {
		writeError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, token)
}

func (h *handlers) risk(w http.ResponseWriter, r *http.Request) {
	risk, err := h.svc.Risk(r.Context(), mintParam(r))
	if err != nil {
		writeError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, risk)
}

func (h *handlers) score(w http.ResponseWriter, r *http.Request) {
	// A truncated or unreadable body still goes to ScoreRaw, which answers
	// undecodable input with the demo score.
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxScoreBody))
	if err != nil {
		zap.L().Warn("api: read score body", zap.Error(err))
	}
	WriteJSON(w, http.StatusOK, h.svc.ScoreRaw(r.Context(), body))
}

func (h *handlers) analyze(w http.ResponseWriter, r *http.Request) {
	report, err := h.svc.Analyze(r.Context(), mintParam(r))
	if err != nil {
		writeError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, report)
}

// mintParam reads the mint from ?id=, falling back to ?mint=.
func mintParam(r *http.Request) string {
	q := r.URL.Query()
	if id := q.Get("id"); id != "" {
		return id
	}
	return q.Get("mint")
}

func writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, pipeline.ErrMissingIdentifier) {
		WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "Mint address is required"})
		return
	}
	zap.L().Error("api: unexpected error", zap.Error(err))
	WriteJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
}

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Warn("api: encode response", zap.Error(err))
	}
}
