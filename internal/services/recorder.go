package services

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"neurobud-backend/internal/models"
)

// Store interfaces the recorder needs; satisfied by the repository layer.

type messageStore interface {
	Create(ctx context.Context, m *models.Message) error
}

type crisisStore interface {
	Create(ctx context.Context, e *models.CrisisEvent) error
}

type costStore interface {
	Create(ctx context.Context, c *models.CostRecord) error
}

type modelResponseStore interface {
	Create(ctx context.Context, mr *models.ModelResponse) error
}

// RecordedTurn reports what was durably written. AccountingFailed
// distinguishes "turn succeeded, accounting failed" from a failed turn: the
// assistant reply is never lost because billing bookkeeping broke.
type RecordedTurn struct {
	UserMessageID      uuid.UUID
	AssistantMessageID uuid.UUID
	AccountingFailed   bool
}

// TurnRecorder applies a TurnOutcome to the stores in the mandated order:
// user message, then the crisis event (if any), then the assistant message,
// then the cost and model-response records. Message and crisis-event write
// failures propagate; cost/model-response failures are logged and swallowed.
type TurnRecorder struct {
	messages       messageStore
	crisisEvents   crisisStore
	costs          costStore
	modelResponses modelResponseStore
}

func NewTurnRecorder(messages messageStore, crisisEvents crisisStore, costs costStore, modelResponses modelResponseStore) *TurnRecorder {
	return &TurnRecorder{
		messages:       messages,
		crisisEvents:   crisisEvents,
		costs:          costs,
		modelResponses: modelResponses,
	}
}

func (r *TurnRecorder) Record(ctx context.Context, userID *uuid.UUID, outcome *TurnOutcome) (*RecordedTurn, error) {
	userMsg := outcome.UserMessage
	if err := r.messages.Create(ctx, &userMsg); err != nil {
		return nil, fmt.Errorf("failed to save user message: %w", err)
	}

	if outcome.CrisisEvent != nil {
		event := *outcome.CrisisEvent
		event.MessageID = userMsg.ID
		if err := r.crisisEvents.Create(ctx, &event); err != nil {
			return nil, fmt.Errorf("failed to save crisis event: %w", err)
		}
	}

	assistantMsg := outcome.AssistantMessage
	if err := r.messages.Create(ctx, &assistantMsg); err != nil {
		return nil, fmt.Errorf("failed to save assistant message: %w", err)
	}

	recorded := &RecordedTurn{
		UserMessageID:      userMsg.ID,
		AssistantMessageID: assistantMsg.ID,
	}

	if outcome.Cost != nil {
		record := &models.CostRecord{
			ConversationID: &outcome.UserMessage.ConversationID,
			MessageID:      &assistantMsg.ID,
			Model:          outcome.Cost.Model,
			Feature:        "chat",
			InputTokens:    outcome.Cost.InputTokens,
			OutputTokens:   outcome.Cost.OutputTokens,
			TotalTokens:    outcome.Cost.TotalTokens,
			InputCost:      outcome.Cost.InputCost,
			OutputCost:     outcome.Cost.OutputCost,
			TotalCost:      outcome.Cost.TotalCost,
			ResponseTimeMs: outcome.AssistantMessage.ResponseTimeMs,
		}
		if err := r.costs.Create(ctx, record); err != nil {
			log.Printf("failed to save cost record for message %s: %v", assistantMsg.ID, err)
			recorded.AccountingFailed = true
		}
	}

	mr := &models.ModelResponse{
		MessageID:      assistantMsg.ID,
		UserID:         userID,
		ModelID:        outcome.Assignment.Model,
		ModelVariant:   outcome.Assignment.Variant,
		ResponseTimeMs: outcome.AssistantMessage.ResponseTimeMs,
		TokensUsed:     outcome.AssistantMessage.TokensUsed,
	}
	if err := r.modelResponses.Create(ctx, mr); err != nil {
		log.Printf("failed to save model response for message %s: %v", assistantMsg.ID, err)
		recorded.AccountingFailed = true
	}

	return recorded, nil
}
