package services

import (
	"testing"

	"github.com/google/uuid"
)

func newTestRouter(enabled bool, fineTunedID string, split float64) *ModelRouter {
	return NewModelRouter(RouterConfig{
		BaseModel:        "gpt-4o-mini",
		FineTunedModelID: fineTunedID,
		ABTestingEnabled: enabled,
		SplitRatio:       split,
	})
}

func TestSelectModelPinnedPerUser(t *testing.T) {
	router := newTestRouter(true, "ft:gpt-4o-mini:org::abc123", 0.5)

	userID := uuid.New()
	first := router.SelectModel(&userID)

	for i := 0; i < 100; i++ {
		again := router.SelectModel(&userID)
		if again != first {
			t.Fatalf("assignment changed for the same user: %+v vs %+v", first, again)
		}
	}
}

func TestSelectModelStableAcrossRouters(t *testing.T) {
	userID := uuid.New()

	a := newTestRouter(true, "ft:gpt-4o-mini:org::abc123", 0.5).SelectModel(&userID)
	b := newTestRouter(true, "ft:gpt-4o-mini:org::abc123", 0.5).SelectModel(&userID)
	if a != b {
		t.Fatalf("same config, same user, different assignment: %+v vs %+v", a, b)
	}
}

func TestSelectModelSplitRatio(t *testing.T) {
	router := newTestRouter(true, "ft:gpt-4o-mini:org::abc123", 0.5)

	base := 0
	const n = 10000
	for i := 0; i < n; i++ {
		id := uuid.New()
		if router.SelectModel(&id).Variant == VariantBase {
			base++
		}
	}

	fraction := float64(base) / n
	if fraction < 0.45 || fraction > 0.55 {
		t.Errorf("base fraction = %.3f, want roughly 0.5", fraction)
	}
}

func TestSelectModelDisabled(t *testing.T) {
	router := newTestRouter(false, "ft:gpt-4o-mini:org::abc123", 0.5)

	userID := uuid.New()
	got := router.SelectModel(&userID)
	if got.Model != "gpt-4o-mini" || got.Variant != VariantBase {
		t.Errorf("SelectModel with A/B disabled = %+v, want base model", got)
	}
}

func TestSelectModelNoFineTunedModel(t *testing.T) {
	router := newTestRouter(true, "", 0.5)

	userID := uuid.New()
	got := router.SelectModel(&userID)
	if got.Model != "gpt-4o-mini" || got.Variant != VariantBase {
		t.Errorf("SelectModel without fine-tuned model = %+v, want base model", got)
	}
}

func TestSelectModelAnonymous(t *testing.T) {
	router := newTestRouter(true, "ft:gpt-4o-mini:org::abc123", 1.0)

	// With a split ratio of 1.0 even anonymous traffic always gets base.
	for i := 0; i < 50; i++ {
		got := router.SelectModel(nil)
		if got.Variant != VariantBase {
			t.Fatalf("anonymous assignment = %+v, want base at ratio 1.0", got)
		}
	}
}

func TestSelectModelExtremeRatios(t *testing.T) {
	userID := uuid.New()

	allBase := newTestRouter(true, "ft:gpt-4o-mini:org::abc123", 1.0)
	if got := allBase.SelectModel(&userID); got.Variant != VariantBase {
		t.Errorf("ratio 1.0 assignment = %+v, want base", got)
	}

	allFineTuned := newTestRouter(true, "ft:gpt-4o-mini:org::abc123", 0.0)
	if got := allFineTuned.SelectModel(&userID); got.Variant != VariantFineTuned {
		t.Errorf("ratio 0.0 assignment = %+v, want fine_tuned", got)
	}
}
