// Package admin exposes the collector's read-only local HTTP surface:
// health, a stats snapshot, and prometheus metrics. It is never the ingest
// path; events only arrive over the unix socket.
package admin

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"scribe/internal/collector"
)

// Handler serves the admin endpoints.
type Handler struct {
	logger    *slog.Logger
	collector *collector.Collector
}

// New constructs the admin handler around a running collector.
func New(c *collector.Collector, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, collector: c}
}

// Register mounts the admin endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/healthz", h.handleHealthz)
	r.Get("/stats", h.handleStats)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
}

// Router returns a ready-to-serve router with all endpoints registered.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	h.Register(r)
	return r
}

func (h *Handler) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":     "ok",
		"session_id": h.collector.Session().ID,
	})
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.collector.Stats())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
