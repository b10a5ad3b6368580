package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"neurobud-backend/internal/models"
)

type ModelResponseRepo struct {
	pool *pgxpool.Pool
}

func NewModelResponseRepo(pool *pgxpool.Pool) *ModelResponseRepo {
	return &ModelResponseRepo{pool: pool}
}

func (r *ModelResponseRepo) Create(ctx context.Context, mr *models.ModelResponse) error {
	mr.ID = uuid.New()
	query := `INSERT INTO model_responses (id, message_id, user_id, model_id, model_variant, response_time_ms, tokens_used)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING created_at`

	return r.pool.QueryRow(ctx, query,
		mr.ID, mr.MessageID, mr.UserID, mr.ModelID, mr.ModelVariant, mr.ResponseTimeMs, mr.TokensUsed,
	).Scan(&mr.CreatedAt)
}

// SaveFeedback attaches the user's rating to the response row for a message.
func (r *ModelResponseRepo) SaveFeedback(ctx context.Context, messageID uuid.UUID, rating *int, feedback *string, wasHelpful *bool) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE model_responses SET user_rating = $1, user_feedback = $2, was_helpful = $3 WHERE message_id = $4`,
		rating, feedback, wasHelpful, messageID,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
