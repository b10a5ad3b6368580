package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"neurobud-backend/internal/models"
	"neurobud-backend/internal/repository"
)

type FeedbackHandler struct {
	modelResponseRepo *repository.ModelResponseRepo
}

func NewFeedbackHandler(modelResponseRepo *repository.ModelResponseRepo) *FeedbackHandler {
	return &FeedbackHandler{modelResponseRepo: modelResponseRepo}
}

// Rate attaches user feedback to the model response behind an assistant
// message, feeding the A/B comparison.
func (h *FeedbackHandler) Rate(w http.ResponseWriter, r *http.Request) {
	messageID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid message ID", r))
		return
	}

	var req models.FeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	if req.Rating != nil && (*req.Rating < 1 || *req.Rating > 5) {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Rating must be between 1 and 5", r))
		return
	}
	if req.Rating == nil && req.Feedback == nil && req.WasHelpful == nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "At least one feedback field is required", r))
		return
	}

	found, err := h.modelResponseRepo.SaveFeedback(r.Context(), messageID, req.Rating, req.Feedback, req.WasHelpful)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to save feedback", r))
		return
	}
	if !found {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Message not found", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Feedback recorded"})
}
