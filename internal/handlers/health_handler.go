package handlers

import (
	"io"
	"net/http"

	"learneasy/internal/database"
)

// HealthHandler reports service liveness
type HealthHandler struct {
	db *database.DB
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db *database.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Health checks database connectivity and reports service status
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.db.Ping(); err != nil {
		respondWithError(w, http.StatusServiceUnavailable, "unhealthy", "Health check failed", err)
		return
	}

	w.Header().Set("Content-Type", "text/plain")
	io.WriteString(w, "ok")
}
