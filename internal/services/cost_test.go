package services

import (
	"math"
	"testing"
)

func newTestCalculator() *CostCalculator {
	return NewCostCalculator(PricingConfig{
		BaseInputPrice:       0.150,
		BaseOutputPrice:      0.600,
		FineTunedInputPrice:  0.300,
		FineTunedOutputPrice: 1.200,
		EmbeddingPrice:       0.020,
		FineTuneTrainPrice:   3.00,
	})
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestCalculateChatCostBaseModel(t *testing.T) {
	calc := newTestCalculator()

	// One million input tokens must cost exactly the per-1M input rate.
	got := calc.CalculateChatCost(1_000_000, 0, "gpt-4o-mini")
	if !approxEqual(got.InputCost, 0.150) {
		t.Errorf("InputCost = %v, want 0.150", got.InputCost)
	}
	if !approxEqual(got.OutputCost, 0) {
		t.Errorf("OutputCost = %v, want 0", got.OutputCost)
	}
	if !approxEqual(got.TotalCost, 0.150) {
		t.Errorf("TotalCost = %v, want 0.150", got.TotalCost)
	}
}

func TestCalculateChatCostTotals(t *testing.T) {
	calc := newTestCalculator()

	got := calc.CalculateChatCost(1234, 567, "gpt-4o-mini")
	if got.TotalTokens != 1234+567 {
		t.Errorf("TotalTokens = %d, want %d", got.TotalTokens, 1234+567)
	}
	if !approxEqual(got.TotalCost, got.InputCost+got.OutputCost) {
		t.Errorf("TotalCost = %v, want InputCost+OutputCost = %v", got.TotalCost, got.InputCost+got.OutputCost)
	}
	if got.Model != "gpt-4o-mini" {
		t.Errorf("Model = %q, want gpt-4o-mini", got.Model)
	}
}

func TestCalculateChatCostFineTunedPrefix(t *testing.T) {
	calc := newTestCalculator()

	base := calc.CalculateChatCost(100_000, 100_000, "gpt-4o-mini")
	ft := calc.CalculateChatCost(100_000, 100_000, "ft:gpt-4o-mini:org::abc123")

	if !approxEqual(ft.InputCost, 2*base.InputCost) {
		t.Errorf("fine-tuned InputCost = %v, want double the base %v", ft.InputCost, base.InputCost)
	}
	if !approxEqual(ft.OutputCost, 2*base.OutputCost) {
		t.Errorf("fine-tuned OutputCost = %v, want double the base %v", ft.OutputCost, base.OutputCost)
	}
}

func TestCalculateChatCostRounding(t *testing.T) {
	calc := newTestCalculator()

	// 7 input tokens at $0.150/1M is 0.00000105, which rounds to 0.000001.
	got := calc.CalculateChatCost(7, 0, "gpt-4o-mini")
	if !approxEqual(got.InputCost, 0.000001) {
		t.Errorf("InputCost = %v, want 0.000001 after 6-decimal rounding", got.InputCost)
	}
}

func TestCalculateChatCostZeroTokens(t *testing.T) {
	calc := newTestCalculator()

	got := calc.CalculateChatCost(0, 0, "gpt-4o-mini")
	if got.TotalTokens != 0 || !approxEqual(got.TotalCost, 0) {
		t.Errorf("zero-token cost = %+v, want all zeros", got)
	}
}

func TestSplitTotalTokens(t *testing.T) {
	tests := []struct {
		total      int
		wantInput  int
		wantOutput int
	}{
		{0, 0, 0},
		{1, 0, 1},
		{10, 4, 6},
		{100, 40, 60},
		{1001, 400, 601},
	}

	for _, tt := range tests {
		input, output := SplitTotalTokens(tt.total)
		if input != tt.wantInput || output != tt.wantOutput {
			t.Errorf("SplitTotalTokens(%d) = (%d, %d), want (%d, %d)",
				tt.total, input, output, tt.wantInput, tt.wantOutput)
		}
		if input+output != tt.total {
			t.Errorf("SplitTotalTokens(%d) loses tokens: %d + %d", tt.total, input, output)
		}
	}
}

func TestCalculateEmbeddingCost(t *testing.T) {
	calc := newTestCalculator()

	if got := calc.CalculateEmbeddingCost(1_000_000); !approxEqual(got, 0.020) {
		t.Errorf("CalculateEmbeddingCost(1M) = %v, want 0.020", got)
	}
}

func TestCalculateFineTuningCost(t *testing.T) {
	calc := newTestCalculator()

	if got := calc.CalculateFineTuningCost(500_000); !approxEqual(got, 1.50) {
		t.Errorf("CalculateFineTuningCost(500k) = %v, want 1.50", got)
	}
}
