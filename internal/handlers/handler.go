package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/RiaanWest/whatsapp-fpv-groups/internal/scanner"
	"github.com/RiaanWest/whatsapp-fpv-groups/internal/transport"
)

// Handler contains shared dependencies for all HTTP handlers.
type Handler struct {
	svc       *scanner.Service
	transport transport.Transport
	log       zerolog.Logger
}

// NewHandler creates a new Handler.
func NewHandler(svc *scanner.Service, t transport.Transport, log zerolog.Logger) *Handler {
	return &Handler{svc: svc, transport: t, log: log}
}

// JSON sends a JSON response with the given status code.
func (h *Handler) JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// Error sends a JSON error response with the given status code.
func (h *Handler) Error(w http.ResponseWriter, status int, message string) {
	h.JSON(w, status, map[string]string{"error": message})
}

// transportError maps transport failures to a response. A missing
// session is an explicit 503, never an empty 200.
func (h *Handler) transportError(w http.ResponseWriter, err error) {
	if errors.Is(err, transport.ErrNotConnected) {
		h.Error(w, http.StatusServiceUnavailable, "whatsapp not connected")
		return
	}
	h.log.Error().Err(err).Msg("transport request failed")
	h.Error(w, http.StatusInternalServerError, "transport error")
}
