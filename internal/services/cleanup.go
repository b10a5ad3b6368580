package services

import (
	"context"
	"log"
	"time"
)

type conversationCleaner interface {
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error)
}

// RetentionScheduler deletes conversations (and their dependent rows) older
// than the configured retention window. Runs once at start, then daily.
type RetentionScheduler struct {
	conversations conversationCleaner
	retentionDays int
	stopChan      chan struct{}
}

func NewRetentionScheduler(conversations conversationCleaner, retentionDays int) *RetentionScheduler {
	return &RetentionScheduler{
		conversations: conversations,
		retentionDays: retentionDays,
		stopChan:      make(chan struct{}),
	}
}

func (s *RetentionScheduler) Start() {
	go func() {
		s.runOnce()

		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()

		for {
			select {
			case <-s.stopChan:
				return
			case <-ticker.C:
				s.runOnce()
			}
		}
	}()
}

func (s *RetentionScheduler) Stop() {
	close(s.stopChan)
}

func (s *RetentionScheduler) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	deleted, err := s.Cleanup(ctx, s.retentionDays)
	if err != nil {
		log.Printf("retention cleanup failed: %v", err)
		return
	}
	if deleted > 0 {
		log.Printf("retention cleanup removed %d conversations older than %d days", deleted, s.retentionDays)
	}
}

// Cleanup deletes conversations older than the given number of days and
// returns how many were removed.
func (s *RetentionScheduler) Cleanup(ctx context.Context, days int) (int, error) {
	if days < 1 {
		return 0, &ValidationError{Fields: map[string]string{"days": "Days must be at least 1"}}
	}
	cutoff := time.Now().AddDate(0, 0, -days)
	return s.conversations.DeleteOlderThan(ctx, cutoff)
}
