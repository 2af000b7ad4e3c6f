package handlers

import (
	"net/http"
	"time"

	"github.com/RiaanWest/whatsapp-fpv-groups/internal/models"
	"github.com/RiaanWest/whatsapp-fpv-groups/internal/scanner"
)

// SyncResponse represents the force-resync response.
type SyncResponse struct {
	Message   string              `json:"message"`
	Timestamp string              `json:"timestamp"`
	Stats     scanner.ScanSummary `json:"stats"`
}

// ActiveItems returns all tracked listings not yet sold.
func (h *Handler) ActiveItems(w http.ResponseWriter, r *http.Request) {
	h.JSON(w, http.StatusOK, h.svc.ActiveListings())
}

// SoldItems returns tracked listings marked sold and not yet expired.
func (h *Handler) SoldItems(w http.ResponseWriter, r *http.Request) {
	h.JSON(w, http.StatusOK, h.svc.SoldListings())
}

// RecentItems returns the cached-or-fresh windowed scan result.
func (h *Handler) RecentItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.WindowedListings(r.Context())
	if err != nil {
		h.transportError(w, err)
		return
	}
	h.JSON(w, http.StatusOK, items)
}

// RecentSoldItems returns the sold subset of the windowed scan result.
func (h *Handler) RecentSoldItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.WindowedListings(r.Context())
	if err != nil {
		h.transportError(w, err)
		return
	}
	sold := make([]models.Listing, 0, len(items))
	for _, item := range items {
		if item.IsSold {
			sold = append(sold, item)
		}
	}
	h.JSON(w, http.StatusOK, sold)
}

// Sync invalidates the scan cache, runs a fresh scan and reports what
// it found.
func (h *Handler) Sync(w http.ResponseWriter, r *http.Request) {
	summary, err := h.svc.ForceResync(r.Context())
	if err != nil {
		h.transportError(w, err)
		return
	}
	h.JSON(w, http.StatusOK, SyncResponse{
		Message:   "Sync completed",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Stats:     summary,
	})
}
