package services

import (
	"math/rand"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
)

// Model variants for A/B comparison.
const (
	VariantBase      = "base"
	VariantFineTuned = "fine_tuned"
	VariantCrisis    = "crisis"
)

// Sentinel model ids recorded on non-billable assistant messages.
const (
	ModelCrisisProtocol = "crisis_protocol"
	ModelError          = "error"
)

// ModelAssignment is the outcome of one routing decision.
type ModelAssignment struct {
	Model   string `json:"model"`
	Variant string `json:"variant"`
}

// RouterConfig is the immutable slice of configuration the router needs.
type RouterConfig struct {
	BaseModel        string
	FineTunedModelID string
	ABTestingEnabled bool
	SplitRatio       float64 // fraction of traffic assigned to the base model
}

// ModelRouter picks the model for a turn. Assignment is pinned per user:
// the same user id with the same configuration always lands in the same
// bucket, across requests and process restarts. Bucketing hashes the id's
// string form with xxhash rather than any runtime-provided hash, so the
// mapping is stable across machines.
type ModelRouter struct {
	cfg RouterConfig
}

func NewModelRouter(cfg RouterConfig) *ModelRouter {
	return &ModelRouter{cfg: cfg}
}

// SelectModel returns the assignment for an optional stable user id.
// Anonymous traffic (nil id) is bucketed uniformly at random per call since
// there is no identity to pin.
func (r *ModelRouter) SelectModel(userID *uuid.UUID) ModelAssignment {
	if !r.cfg.ABTestingEnabled || r.cfg.FineTunedModelID == "" {
		return ModelAssignment{Model: r.cfg.BaseModel, Variant: VariantBase}
	}

	if userID != nil {
		bucket := xxhash.Sum64String(userID.String()) % 100
		if float64(bucket) < r.cfg.SplitRatio*100 {
			return ModelAssignment{Model: r.cfg.BaseModel, Variant: VariantBase}
		}
		return ModelAssignment{Model: r.cfg.FineTunedModelID, Variant: VariantFineTuned}
	}

	if rand.Float64() < r.cfg.SplitRatio {
		return ModelAssignment{Model: r.cfg.BaseModel, Variant: VariantBase}
	}
	return ModelAssignment{Model: r.cfg.FineTunedModelID, Variant: VariantFineTuned}
}
