package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"neurobud-backend/internal/models"
)

type CostRepo struct {
	pool *pgxpool.Pool
}

func NewCostRepo(pool *pgxpool.Pool) *CostRepo {
	return &CostRepo{pool: pool}
}

func (r *CostRepo) Create(ctx context.Context, c *models.CostRecord) error {
	c.ID = uuid.New()
	query := `INSERT INTO api_costs (id, conversation_id, message_id, model, feature,
		input_tokens, output_tokens, total_tokens, input_cost, output_cost, total_cost, response_time_ms)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) RETURNING created_at`

	return r.pool.QueryRow(ctx, query,
		c.ID, c.ConversationID, c.MessageID, c.Model, c.Feature,
		c.InputTokens, c.OutputTokens, c.TotalTokens,
		c.InputCost, c.OutputCost, c.TotalCost, c.ResponseTimeMs,
	).Scan(&c.CreatedAt)
}

// TotalSpend sums all recorded costs, for the analytics endpoint.
func (r *CostRepo) TotalSpend(ctx context.Context) (float64, error) {
	var total float64
	err := r.pool.QueryRow(ctx, "SELECT COALESCE(SUM(total_cost), 0) FROM api_costs").Scan(&total)
	return total, err
}
