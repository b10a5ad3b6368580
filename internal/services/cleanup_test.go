package services

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeCleaner struct {
	deleted int
	cutoff  time.Time
	err     error
}

func (f *fakeCleaner) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	f.cutoff = cutoff
	if f.err != nil {
		return 0, f.err
	}
	return f.deleted, nil
}

func TestCleanupDeletesOldConversations(t *testing.T) {
	cleaner := &fakeCleaner{deleted: 7}
	scheduler := NewRetentionScheduler(cleaner, 90)

	deleted, err := scheduler.Cleanup(context.Background(), 30)
	if err != nil {
		t.Fatalf("Cleanup returned error: %v", err)
	}
	if deleted != 7 {
		t.Errorf("deleted = %d, want 7", deleted)
	}

	wantCutoff := time.Now().AddDate(0, 0, -30)
	if diff := cleaner.cutoff.Sub(wantCutoff); diff < -time.Minute || diff > time.Minute {
		t.Errorf("cutoff = %v, want roughly 30 days ago", cleaner.cutoff)
	}
}

func TestCleanupRejectsInvalidDays(t *testing.T) {
	scheduler := NewRetentionScheduler(&fakeCleaner{}, 90)

	for _, days := range []int{0, -5} {
		_, err := scheduler.Cleanup(context.Background(), days)
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Errorf("Cleanup(%d) error = %v, want *ValidationError", days, err)
		}
	}
}

func TestCleanupPropagatesStoreError(t *testing.T) {
	cleaner := &fakeCleaner{err: errors.New("db down")}
	scheduler := NewRetentionScheduler(cleaner, 90)

	if _, err := scheduler.Cleanup(context.Background(), 30); err == nil {
		t.Error("Cleanup swallowed the store error")
	}
}
