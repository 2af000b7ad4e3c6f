package handlers

import "net/http"

// Status reports the WhatsApp session state.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	status, err := h.transport.Status(r.Context())
	if err != nil {
		h.transportError(w, err)
		return
	}
	h.JSON(w, http.StatusOK, status)
}

// QRCode returns the pairing QR code while pairing is pending.
func (h *Handler) QRCode(w http.ResponseWriter, r *http.Request) {
	qr, err := h.transport.QRCode(r.Context())
	if err != nil {
		h.transportError(w, err)
		return
	}
	if qr == "" {
		h.Error(w, http.StatusNotFound, "QR code not available")
		return
	}
	h.JSON(w, http.StatusOK, map[string]string{"qrCode": qr})
}

// Disconnect tears down the WhatsApp session. Group activation state
// is kept so a reconnect resumes scanning the same groups.
func (h *Handler) Disconnect(w http.ResponseWriter, r *http.Request) {
	if err := h.transport.Disconnect(r.Context()); err != nil {
		h.transportError(w, err)
		return
	}
	h.JSON(w, http.StatusOK, map[string]string{"message": "disconnected successfully"})
}
