package handlers

import (
	"net/http"

	"neurobud-backend/internal/services"
)

type AdminHandler struct {
	retention *services.RetentionScheduler
}

func NewAdminHandler(retention *services.RetentionScheduler) *AdminHandler {
	return &AdminHandler{retention: retention}
}

// Cleanup deletes conversations older than ?days (default 90).
func (h *AdminHandler) Cleanup(w http.ResponseWriter, r *http.Request) {
	days := queryIntOrDefault(r, "days", 90)

	deleted, err := h.retention.Cleanup(r.Context(), days)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":               true,
		"conversations_deleted": deleted,
		"days_threshold":        days,
	})
}
