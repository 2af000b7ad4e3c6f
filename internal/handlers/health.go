package handlers

import (
	"context"
	"net/http"
	"time"
)

const version = "0.1.0"

// Check represents the status of a health check.
type Check struct {
	Status  string `json:"status"`            // "pass" or "fail"
	Latency string `json:"latency,omitempty"` // e.g., "2ms"
	Message string `json:"message,omitempty"`
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string           `json:"status"` // "healthy" or "degraded"
	Version   string           `json:"version"`
	Checks    map[string]Check `json:"checks"`
	Timestamp string           `json:"timestamp"`
}

// Health reports server health. A missing WhatsApp session degrades the
// result but the server itself stays up.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	checks := make(map[string]Check)
	allHealthy := true

	bridgeStart := time.Now()
	status, err := h.transport.Status(ctx)
	switch {
	case err != nil:
		checks["bridge"] = Check{Status: "fail", Message: "bridge unreachable"}
		allHealthy = false
	case !status.IsConnected:
		checks["bridge"] = Check{Status: "fail", Message: "whatsapp not connected"}
		allHealthy = false
	default:
		checks["bridge"] = Check{Status: "pass", Latency: time.Since(bridgeStart).String()}
	}

	result := "healthy"
	statusCode := http.StatusOK
	if !allHealthy {
		result = "degraded"
		statusCode = http.StatusServiceUnavailable
	}

	h.JSON(w, statusCode, HealthResponse{
		Status:    result,
		Version:   version,
		Checks:    checks,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
