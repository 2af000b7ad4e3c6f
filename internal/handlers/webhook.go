package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/RiaanWest/whatsapp-fpv-groups/internal/models"
)

// Webhook receives one inbound message from the sidecar and feeds it
// to the detection pipeline. The sidecar delivers at-least-once, which
// is safe because detection is idempotent per message ID.
func (h *Handler) Webhook(w http.ResponseWriter, r *http.Request) {
	var msg models.Message
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		h.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if msg.ID == "" || msg.ChatID == "" {
		h.Error(w, http.StatusBadRequest, "id and chatId are required")
		return
	}

	h.svc.HandleIncomingMessage(r.Context(), msg)

	h.JSON(w, http.StatusAccepted, map[string]string{"status": "accepted"})
}
