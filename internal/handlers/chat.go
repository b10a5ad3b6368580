package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"neurobud-backend/internal/middleware"
	"neurobud-backend/internal/models"
	"neurobud-backend/internal/services"
)

type conversationStore interface {
	Create(ctx context.Context, c *models.Conversation) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Conversation, error)
	Touch(ctx context.Context, id uuid.UUID) error
}

type messageLister interface {
	ListByConversation(ctx context.Context, conversationID uuid.UUID) ([]*models.Message, error)
}

type ChatHandler struct {
	conversations conversationStore
	messages      messageLister
	chatService   *services.ChatService
	recorder      *services.TurnRecorder
}

func NewChatHandler(conversations conversationStore, messages messageLister, chatService *services.ChatService, recorder *services.TurnRecorder) *ChatHandler {
	return &ChatHandler{
		conversations: conversations,
		messages:      messages,
		chatService:   chatService,
		recorder:      recorder,
	}
}

// Chat runs one turn: resolve the conversation, load its history, let the
// orchestrator decide the branch, then persist the outcome in the required
// order (user message, crisis event, assistant message, cost records).
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	userID := middleware.GetOptionalUserID(r.Context())

	// Get or create the conversation
	var conversation *models.Conversation
	if req.ConversationID != "" {
		conversationID, err := uuid.Parse(req.ConversationID)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid conversation ID", r))
			return
		}
		conversation, err = h.conversations.GetByID(r.Context(), conversationID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Conversation not found", r))
				return
			}
			writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to load conversation", r))
			return
		}
	} else {
		conversation = &models.Conversation{UserID: userID}
		if err := h.conversations.Create(r.Context(), conversation); err != nil {
			writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to create conversation", r))
			return
		}
	}

	stored, err := h.messages.ListByConversation(r.Context(), conversation.ID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to load conversation history", r))
		return
	}
	history := make([]models.ChatMessage, len(stored))
	for i, m := range stored {
		history[i] = models.ChatMessage{Role: m.Role, Content: m.Content}
	}

	outcome, err := h.chatService.ProcessTurn(r.Context(), services.ChatTurn{
		ConversationID: conversation.ID,
		UserID:         userID,
		Message:        req.Message,
		History:        history,
	})
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	if _, err := h.recorder.Record(r.Context(), userID, outcome); err != nil {
		// Store failures are the one hard error: the ordering contract
		// cannot be honored without the store.
		writeJSON(w, http.StatusInternalServerError, errorResp("STORE_ERROR", "Failed to save conversation", r))
		return
	}

	h.conversations.Touch(r.Context(), conversation.ID)

	resp := models.ChatResponse{
		ConversationID: conversation.ID.String(),
		Message:        outcome.UserMessage.Content,
		Response:       outcome.AssistantMessage.Content,
		IsCrisis:       outcome.Verdict.IsCrisis,
		Model:          outcome.Assignment.Model,
		ModelVariant:   outcome.Assignment.Variant,
		TokensUsed:     outcome.AssistantMessage.TokensUsed,
		ResponseTimeMs: outcome.AssistantMessage.ResponseTimeMs,
	}
	if outcome.Verdict.IsCrisis {
		severity := outcome.Verdict.Severity
		resp.CrisisSeverity = &severity
	}

	writeJSON(w, http.StatusOK, resp)
}

// History returns the stored messages of a conversation in order.
func (h *ChatHandler) History(w http.ResponseWriter, r *http.Request) {
	conversationID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid conversation ID", r))
		return
	}

	if _, err := h.conversations.GetByID(r.Context(), conversationID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Conversation not found", r))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to load conversation", r))
		return
	}

	messages, err := h.messages.ListByConversation(r.Context(), conversationID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to load conversation history", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"conversation_id": conversationID,
		"messages":        messages,
		"total":           len(messages),
	})
}
