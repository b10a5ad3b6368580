package handlers

import (
	"math"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
)

type AnalyticsHandler struct {
	pool *pgxpool.Pool
}

func NewAnalyticsHandler(pool *pgxpool.Pool) *AnalyticsHandler {
	return &AnalyticsHandler{pool: pool}
}

// Get returns basic system counters. Simple counting queries only, no
// aggregation pipeline.
func (h *AnalyticsHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var totalConversations, totalMessages, totalMoods, totalCrisisEvents, recentConversations int
	h.pool.QueryRow(ctx, "SELECT COUNT(*) FROM conversations").Scan(&totalConversations)
	h.pool.QueryRow(ctx, "SELECT COUNT(*) FROM messages").Scan(&totalMessages)
	h.pool.QueryRow(ctx, "SELECT COUNT(*) FROM mood_entries").Scan(&totalMoods)
	h.pool.QueryRow(ctx, "SELECT COUNT(*) FROM crisis_events").Scan(&totalCrisisEvents)
	h.pool.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM conversations
		WHERE created_at >= NOW() - INTERVAL '24 hours'
	`).Scan(&recentConversations)

	var avgMood float64
	h.pool.QueryRow(ctx, `
		SELECT COALESCE(AVG(mood_score), 0)
		FROM mood_entries
		WHERE created_at >= NOW() - INTERVAL '7 days'
	`).Scan(&avgMood)

	var totalSpend float64
	h.pool.QueryRow(ctx, "SELECT COALESCE(SUM(total_cost), 0) FROM api_costs").Scan(&totalSpend)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"total_conversations":    totalConversations,
		"total_messages":         totalMessages,
		"total_mood_entries":     totalMoods,
		"total_crisis_events":    totalCrisisEvents,
		"conversations_last_24h": recentConversations,
		"avg_mood_last_7d":       math.Round(avgMood*10) / 10,
		"total_api_cost_usd":     totalSpend,
	})
}
