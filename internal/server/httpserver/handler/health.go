package handler

import (
	"net/http"
	"time"

	"github.com/yndnr/sealslot-go/internal/core/domain"
)

// handleHealth handles GET /health.
func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, http.StatusOK, HealthResponse{
		Status: "healthy",
		Time:   time.Now().UTC().Format(time.RFC3339),
	})
}

// handleReady handles GET /ready. It fails while the server drains.
func (h *Handler) handleReady(w http.ResponseWriter, r *http.Request) {
	if !h.ready() {
		WriteError(w, r, domain.ErrServiceUnavailable.WithDetails("shutting down"))
		return
	}
	h.writeJSON(w, r, http.StatusOK, HealthResponse{
		Status:       "ready",
		Time:         time.Now().UTC().Format(time.RFC3339),
		Clients:      h.protocol.Registry().Count(),
		HistoryDepth: h.protocol.HistoryDepth(),
	})
}
