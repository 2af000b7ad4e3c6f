package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// UpdateGroupRequest represents the group activation request.
type UpdateGroupRequest struct {
	IsActive bool `json:"isActive"`
}

// UpdateGroupResponse represents the group activation response.
type UpdateGroupResponse struct {
	Success  bool   `json:"success"`
	GroupID  string `json:"groupId"`
	IsActive bool   `json:"isActive"`
}

// ListGroups returns every group chat with its activation state and
// listing count. Requires a connected session.
func (h *Handler) ListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.svc.Groups(r.Context())
	if err != nil {
		h.transportError(w, err)
		return
	}
	h.JSON(w, http.StatusOK, groups)
}

// UpdateGroup opts a group in or out of scanning. Activation is plain
// in-process state, so this works even while WhatsApp is disconnected.
func (h *Handler) UpdateGroup(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "id")
	if groupID == "" {
		h.Error(w, http.StatusBadRequest, "group ID is required")
		return
	}

	var req UpdateGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	h.svc.SetGroupActive(groupID, req.IsActive)

	h.JSON(w, http.StatusOK, UpdateGroupResponse{
		Success:  true,
		GroupID:  groupID,
		IsActive: req.IsActive,
	})
}
