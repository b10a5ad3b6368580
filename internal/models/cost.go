package models

import (
	"time"

	"github.com/google/uuid"
)

// CostRecord meters one billable API call. Costs are in USD.
type CostRecord struct {
	ID             uuid.UUID  `json:"id"`
	ConversationID *uuid.UUID `json:"conversation_id"`
	MessageID      *uuid.UUID `json:"message_id"`
	Model          string     `json:"model"`
	Feature        string     `json:"feature"` // "chat" | "embedding" | "fine_tuning"
	InputTokens    int        `json:"input_tokens"`
	OutputTokens   int        `json:"output_tokens"`
	TotalTokens    int        `json:"total_tokens"`
	InputCost      float64    `json:"input_cost"`
	OutputCost     float64    `json:"output_cost"`
	TotalCost      float64    `json:"total_cost"`
	ResponseTimeMs float64    `json:"response_time_ms"`
	CreatedAt      time.Time  `json:"created_at"`
}

// ModelResponse tracks which model population served an assistant message,
// for A/B comparison and optional user feedback.
type ModelResponse struct {
	ID             uuid.UUID  `json:"id"`
	MessageID      uuid.UUID  `json:"message_id"`
	UserID         *uuid.UUID `json:"user_id"`
	ModelID        string     `json:"model_id"`
	ModelVariant   string     `json:"model_variant"` // "base" | "fine_tuned" | "crisis"
	ResponseTimeMs float64    `json:"response_time_ms"`
	TokensUsed     int        `json:"tokens_used"`
	UserRating     *int       `json:"user_rating"` // 1-5 stars
	UserFeedback   *string    `json:"user_feedback"`
	WasHelpful     *bool      `json:"was_helpful"`
	CreatedAt      time.Time  `json:"created_at"`
}

type FeedbackRequest struct {
	Rating     *int    `json:"rating"`
	Feedback   *string `json:"feedback"`
	WasHelpful *bool   `json:"was_helpful"`
}
