package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"neurobud-backend/internal/middleware"
	"neurobud-backend/internal/models"
	"neurobud-backend/internal/repository"
	"neurobud-backend/internal/services"
)

type MoodHandler struct {
	moodRepo *repository.MoodRepo
}

func NewMoodHandler(moodRepo *repository.MoodRepo) *MoodHandler {
	return &MoodHandler{moodRepo: moodRepo}
}

func (h *MoodHandler) Log(w http.ResponseWriter, r *http.Request) {
	var req models.MoodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	if !services.ValidMoodScore(req.MoodScore) {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Mood score must be between 1 and 10", r))
		return
	}

	entry := &models.MoodEntry{
		UserID:    middleware.GetOptionalUserID(r.Context()),
		MoodScore: req.MoodScore,
		Note:      services.SanitizeNote(req.Note),
	}

	if err := h.moodRepo.Create(r.Context(), entry); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to save mood entry", r))
		return
	}

	writeJSON(w, http.StatusCreated, entry)
}

func (h *MoodHandler) History(w http.ResponseWriter, r *http.Request) {
	days := queryIntOrDefault(r, "days", 30)
	limit := queryIntOrDefault(r, "limit", 100)

	if days < 1 || days > 365 {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Days must be between 1 and 365", r))
		return
	}
	if limit < 1 || limit > 500 {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Limit must be between 1 and 500", r))
		return
	}

	cutoff := time.Now().AddDate(0, 0, -days)
	entries, err := h.moodRepo.ListSince(r.Context(), cutoff, limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to load mood history", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"entries": entries,
		"total":   len(entries),
		"days":    days,
	})
}

func queryIntOrDefault(r *http.Request, key string, defaultVal int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}
