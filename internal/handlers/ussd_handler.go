package handlers

import (
	"context"
	"io"
	"net/http"

	"learneasy/internal/ussd"
)

// GameEngine processes one menu exchange and returns the rendered screen.
type GameEngine interface {
	Handle(ctx context.Context, req ussd.Request) (string, error)
}

// USSDHandler handles gateway callback HTTP requests
type USSDHandler struct {
	engine GameEngine
}

// NewUSSDHandler creates a new USSD callback handler
func NewUSSDHandler(engine GameEngine) *USSDHandler {
	return &USSDHandler{engine: engine}
}

// Callback processes one USSD exchange. The gateway sends sessionId,
// serviceCode, phoneNumber and the accumulated text as form parameters and
// expects a plain-text CON/END screen back.
func (h *USSDHandler) Callback(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeScreen(w, http.StatusBadRequest, "END Invalid request parameters")
		return
	}

	req := ussd.Request{
		SessionID:   r.FormValue("sessionId"),
		ServiceCode: r.FormValue("serviceCode"),
		PhoneNumber: r.FormValue("phoneNumber"),
		Text:        r.FormValue("text"),
	}

	// Malformed requests are rejected before the store is touched.
	if req.SessionID == "" || req.ServiceCode == "" || req.PhoneNumber == "" {
		writeScreen(w, http.StatusBadRequest, "END Invalid request parameters")
		return
	}

	screen, err := h.engine.Handle(r.Context(), req)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "END Service error. Try again later.",
			"Error handling USSD request", err)
		return
	}

	writeScreen(w, http.StatusOK, screen)
}

// writeScreen writes a plain-text menu screen with the given status
func writeScreen(w http.ResponseWriter, status int, screen string) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(status)
	io.WriteString(w, screen)
}
