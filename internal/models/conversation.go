package models

import (
	"time"

	"github.com/google/uuid"
)

// Conversation groups messages exchanged with one (possibly anonymous) user.
// UserID is nil for guest traffic.
type Conversation struct {
	ID        uuid.UUID  `json:"id"`
	UserID    *uuid.UUID `json:"user_id"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

// Message is one stored chat message. Model, Variant, TokensUsed and
// ResponseTimeMs are only set on assistant messages.
type Message struct {
	ID             uuid.UUID `json:"id"`
	ConversationID uuid.UUID `json:"conversation_id"`
	Role           string    `json:"role"` // "user" | "assistant"
	Content        string    `json:"content"`
	Model          *string   `json:"model,omitempty"`
	Variant        *string   `json:"variant,omitempty"`
	TokensUsed     int       `json:"tokens_used"`
	ResponseTimeMs float64   `json:"response_time_ms"`
	CreatedAt      time.Time `json:"created_at"`
}
