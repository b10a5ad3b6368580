package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"neurobud-backend/internal/models"
)

type MoodRepo struct {
	pool *pgxpool.Pool
}

func NewMoodRepo(pool *pgxpool.Pool) *MoodRepo {
	return &MoodRepo{pool: pool}
}

func (r *MoodRepo) Create(ctx context.Context, m *models.MoodEntry) error {
	m.ID = uuid.New()
	query := `INSERT INTO mood_entries (id, user_id, mood_score, note)
		VALUES ($1, $2, $3, $4) RETURNING created_at`

	return r.pool.QueryRow(ctx, query, m.ID, m.UserID, m.MoodScore, m.Note).Scan(&m.CreatedAt)
}

// ListSince returns the newest entries created after the cutoff, up to limit.
func (r *MoodRepo) ListSince(ctx context.Context, cutoff time.Time, limit int) ([]*models.MoodEntry, error) {
	query := `SELECT id, user_id, mood_score, note, created_at
		FROM mood_entries WHERE created_at >= $1 ORDER BY created_at DESC LIMIT $2`

	rows, err := r.pool.Query(ctx, query, cutoff, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*models.MoodEntry
	for rows.Next() {
		m := &models.MoodEntry{}
		if err := rows.Scan(&m.ID, &m.UserID, &m.MoodScore, &m.Note, &m.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, m)
	}

	return entries, rows.Err()
}
