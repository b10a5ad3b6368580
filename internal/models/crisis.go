package models

import (
	"time"

	"github.com/google/uuid"
)

// CrisisEvent is the audit record written whenever the detector flags a
// message, independently of which branch served the reply.
type CrisisEvent struct {
	ID               uuid.UUID `json:"id"`
	ConversationID   uuid.UUID `json:"conversation_id"`
	MessageID        uuid.UUID `json:"message_id"`
	TriggerType      string    `json:"trigger_type"` // "keyword"
	Severity         string    `json:"severity"`
	KeywordsDetected []string  `json:"keywords_detected"`
	FlaggedAt        time.Time `json:"flagged_at"`
}
