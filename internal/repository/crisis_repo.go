package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"neurobud-backend/internal/models"
)

type CrisisRepo struct {
	pool *pgxpool.Pool
}

func NewCrisisRepo(pool *pgxpool.Pool) *CrisisRepo {
	return &CrisisRepo{pool: pool}
}

func (r *CrisisRepo) Create(ctx context.Context, e *models.CrisisEvent) error {
	e.ID = uuid.New()
	query := `INSERT INTO crisis_events (id, conversation_id, message_id, trigger_type, severity, keywords_detected)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING flagged_at`

	return r.pool.QueryRow(ctx, query,
		e.ID, e.ConversationID, e.MessageID, e.TriggerType, e.Severity,
		strings.Join(e.KeywordsDetected, ","),
	).Scan(&e.FlaggedAt)
}

func (r *CrisisRepo) ListByConversation(ctx context.Context, conversationID uuid.UUID) ([]*models.CrisisEvent, error) {
	query := `SELECT id, conversation_id, message_id, trigger_type, severity, keywords_detected, flagged_at
		FROM crisis_events WHERE conversation_id = $1 ORDER BY flagged_at ASC`

	rows, err := r.pool.Query(ctx, query, conversationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*models.CrisisEvent
	for rows.Next() {
		e := &models.CrisisEvent{}
		var keywords string
		err := rows.Scan(&e.ID, &e.ConversationID, &e.MessageID, &e.TriggerType, &e.Severity, &keywords, &e.FlaggedAt)
		if err != nil {
			return nil, err
		}
		if keywords != "" {
			e.KeywordsDetected = strings.Split(keywords, ",")
		}
		events = append(events, e)
	}

	return events, rows.Err()
}
