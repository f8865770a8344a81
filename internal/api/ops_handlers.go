package api

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/econbrief/econbrief/internal/models"
	"github.com/econbrief/econbrief/internal/prompt"
)

// InferenceLogReader reads back recorded completion calls.
type InferenceLogReader interface {
	List(ctx context.Context, query models.InferenceLogQuery) ([]models.InferenceLog, error)
	GetStats(ctx context.Context) (*models.InferenceLogStats, error)
}

// OpsHandler serves health, service info and inference log endpoints.
type OpsHandler struct {
	health    func(ctx context.Context) error
	inference InferenceLogReader
	version   string
	logger    *slog.Logger
}

// NewOpsHandler creates the operational handler. health and inference may be nil.
func NewOpsHandler(health func(ctx context.Context) error, inference InferenceLogReader, version string, logger *slog.Logger) *OpsHandler {
	return &OpsHandler{health: health, inference: inference, version: version, logger: logger}
}

// Healthz handles GET /healthz.
func (h *OpsHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	if h.health != nil {
		if err := h.health(r.Context()); err != nil {
			h.logger.Error("health check failed", "error", err)
			writeJSON(w, h.logger, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	writeJSON(w, h.logger, http.StatusOK, map[string]string{"status": "ok"})
}

type infoResponse struct {
	Service   string                    `json:"service"`
	Status    string                    `json:"status"`
	Version   string                    `json:"version"`
	Templates []string                  `json:"templates"`
	Inference *models.InferenceLogStats `json:"inference,omitempty"`
}

// Info handles GET /api/info.
func (h *OpsHandler) Info(w http.ResponseWriter, r *http.Request) {
	resp := infoResponse{
		Service: "econbrief",
		Status:  "ready",
		Version: h.version,
	}
	for _, kind := range prompt.Kinds {
		resp.Templates = append(resp.Templates, string(kind))
	}

	if h.inference != nil {
		stats, err := h.inference.GetStats(r.Context())
		if err != nil {
			h.logger.Warn("failed to load inference stats", "error", err)
		} else {
			resp.Inference = stats
		}
	}

	writeJSON(w, h.logger, http.StatusOK, resp)
}

// InferenceLogs handles GET /api/inference-logs.
func (h *OpsHandler) InferenceLogs(w http.ResponseWriter, r *http.Request) {
	if h.inference == nil {
		writeError(w, h.logger, http.StatusNotFound, "Inference logging is disabled")
		return
	}

	q := r.URL.Query()
	query := models.InferenceLogQuery{
		Operation: q.Get("operation"),
		Country:   q.Get("country"),
		Status:    q.Get("status"),
	}

	for _, p := range []struct {
		name   string
		target *int
	}{
		{"limit", &query.Limit},
		{"offset", &query.Offset},
	} {
		raw := q.Get(p.name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, h.logger, http.StatusBadRequest, ValidationError{Field: p.name, Message: "must be a non-negative integer"}.Error())
			return
		}
		*p.target = n
	}
	if query.Limit > 500 {
		query.Limit = 500
	}

	logs, err := h.inference.List(r.Context(), query)
	if err != nil {
		h.logger.Error("failed to list inference logs", "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, h.logger, http.StatusOK, map[string]any{"logs": logs, "count": len(logs)})
}
