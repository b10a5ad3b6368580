package models

import (
	"time"

	"github.com/google/uuid"
)

type MoodEntry struct {
	ID        uuid.UUID  `json:"id"`
	UserID    *uuid.UUID `json:"user_id"`
	MoodScore int        `json:"mood_score"` // 1-10
	Note      *string    `json:"note"`
	CreatedAt time.Time  `json:"created_at"`
}

type MoodRequest struct {
	MoodScore int     `json:"mood_score"`
	Note      *string `json:"note"`
}
