package services

import (
	"context"
	"log"

	"github.com/google/uuid"

	"neurobud-backend/internal/models"
)

const (
	maxMessageLength = 2000

	// History sent to the provider is bounded to the most recent 10 turns
	// (user + assistant pairs) to bound prompt size.
	maxHistoryTurns    = 10
	maxHistoryMessages = maxHistoryTurns * 2

	providerFallbackText = "I'm having trouble connecting right now. Please try again in a moment."
)

// ChatTurn is the input to one orchestration call: the new message, the
// conversation it belongs to, its prior history in chronological order, and
// the stable user id when the caller is authenticated (nil for guests).
type ChatTurn struct {
	ConversationID uuid.UUID
	UserID         *uuid.UUID
	Message        string
	History        []models.ChatMessage
}

// TurnOutcome describes everything one turn requires persisting. The
// orchestrator performs no writes itself; TurnRecorder applies the outcome
// in the mandated order.
type TurnOutcome struct {
	UserMessage      models.Message
	AssistantMessage models.Message
	Verdict          CrisisVerdict
	Assignment       ModelAssignment
	CrisisEvent      *models.CrisisEvent // present iff the verdict flagged a crisis
	Cost             *CostBreakdown      // present iff the crisis protocol did not serve the reply
	Degraded         bool                // provider failed, apology fallback served
}

// ChatService orchestrates one chat turn: crisis check, then either the
// crisis protocol or router → provider → cost accounting.
type ChatService struct {
	detector   *CrisisDetector
	router     *ModelRouter
	calculator *CostCalculator
	provider   CompletionProvider
}

func NewChatService(detector *CrisisDetector, router *ModelRouter, calculator *CostCalculator, provider CompletionProvider) *ChatService {
	return &ChatService{
		detector:   detector,
		router:     router,
		calculator: calculator,
		provider:   provider,
	}
}

// ProcessTurn runs the turn state machine. The only error it returns is
// *ValidationError; provider failures degrade into an apology outcome
// instead of failing the turn.
func (s *ChatService) ProcessTurn(ctx context.Context, turn ChatTurn) (*TurnOutcome, error) {
	// Sanitize without truncating below the limit, so over-length input is
	// rejected rather than silently clipped.
	message := SanitizeText(turn.Message, maxMessageLength*2)
	if message == "" {
		return nil, &ValidationError{Fields: map[string]string{"message": "Message cannot be empty"}}
	}
	if len(message) > maxMessageLength {
		return nil, &ValidationError{Fields: map[string]string{"message": "Message too long (max 2000 characters)"}}
	}

	verdict := s.detector.Detect(message)

	outcome := &TurnOutcome{
		Verdict: verdict,
		UserMessage: models.Message{
			ConversationID: turn.ConversationID,
			Role:           "user",
			Content:        message,
		},
	}

	// The crisis event is recorded whenever the detector flags, no matter
	// which branch ends up serving the reply.
	if verdict.IsCrisis {
		outcome.CrisisEvent = &models.CrisisEvent{
			ConversationID:   turn.ConversationID,
			TriggerType:      "keyword",
			Severity:         verdict.Severity,
			KeywordsDetected: verdict.KeywordsDetected,
		}
	}

	if verdict.IsCrisis && (verdict.Severity == SeverityCritical || verdict.Severity == SeverityModerate) {
		s.crisisBranch(outcome, turn)
		return outcome, nil
	}

	s.modelBranch(ctx, outcome, turn, message)
	return outcome, nil
}

// crisisBranch serves the fixed resource text. No provider call, no cost
// record: crisis responses are not billed.
func (s *ChatService) crisisBranch(outcome *TurnOutcome, turn ChatTurn) {
	response := s.detector.CrisisResponse(outcome.Verdict.Severity)
	model := ModelCrisisProtocol
	variant := VariantCrisis

	outcome.Assignment = ModelAssignment{Model: model, Variant: variant}
	outcome.AssistantMessage = models.Message{
		ConversationID: turn.ConversationID,
		Role:           "assistant",
		Content:        response,
		Model:          &model,
		Variant:        &variant,
		TokensUsed:     EstimateTokens(response),
	}
}

func (s *ChatService) modelBranch(ctx context.Context, outcome *TurnOutcome, turn ChatTurn, message string) {
	assignment := s.router.SelectModel(turn.UserID)
	outcome.Assignment = assignment

	history := turn.History
	if len(history) > maxHistoryMessages {
		history = history[len(history)-maxHistoryMessages:]
	}

	result, err := s.provider.Complete(ctx, assignment.Model, history, message)
	if err != nil {
		// No retry: degrade to the apology response and complete the turn.
		log.Printf("completion provider error: %v", err)
		model := ModelError
		variant := assignment.Variant
		outcome.Degraded = true
		outcome.AssistantMessage = models.Message{
			ConversationID: turn.ConversationID,
			Role:           "assistant",
			Content:        providerFallbackText,
			Model:          &model,
			Variant:        &variant,
		}
		cost := s.calculator.CalculateChatCost(0, 0, assignment.Model)
		outcome.Cost = &cost
		return
	}

	inputTokens, outputTokens := result.InputTokens, result.OutputTokens
	if inputTokens == 0 && outputTokens == 0 {
		// Only a combined total is known: apply the 40/60 estimation split.
		inputTokens, outputTokens = SplitTotalTokens(result.TotalTokens)
	}
	cost := s.calculator.CalculateChatCost(inputTokens, outputTokens, assignment.Model)
	outcome.Cost = &cost

	model := result.Model
	variant := assignment.Variant
	outcome.AssistantMessage = models.Message{
		ConversationID: turn.ConversationID,
		Role:           "assistant",
		Content:        result.Response,
		Model:          &model,
		Variant:        &variant,
		TokensUsed:     cost.TotalTokens,
		ResponseTimeMs: result.ResponseTimeMs,
	}
}
