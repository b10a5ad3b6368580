package services

import (
	"math"
	"strings"
)

// PricingConfig holds the static USD-per-1M-token rates.
type PricingConfig struct {
	BaseInputPrice       float64
	BaseOutputPrice      float64
	FineTunedInputPrice  float64
	FineTunedOutputPrice float64
	EmbeddingPrice       float64
	FineTuneTrainPrice   float64
}

// CostBreakdown is the metered cost of one model invocation, in USD.
// TotalCost = InputCost + OutputCost, each rounded to 6 decimal places.
type CostBreakdown struct {
	InputTokens  int     `json:"input_tokens"`
	OutputTokens int     `json:"output_tokens"`
	TotalTokens  int     `json:"total_tokens"`
	InputCost    float64 `json:"input_cost"`
	OutputCost   float64 `json:"output_cost"`
	TotalCost    float64 `json:"total_cost"`
	Model        string  `json:"model"`
}

// CostCalculator converts token counts into dollar amounts using static
// pricing. Token counts are assumed non-negative; validation happens at the
// caller.
type CostCalculator struct {
	pricing PricingConfig
}

func NewCostCalculator(pricing PricingConfig) *CostCalculator {
	return &CostCalculator{pricing: pricing}
}

// CalculateChatCost prices a chat completion. Fine-tuned models are
// identified by the OpenAI "ft:" naming prefix.
func (c *CostCalculator) CalculateChatCost(inputTokens, outputTokens int, model string) CostBreakdown {
	inputPrice := c.pricing.BaseInputPrice
	outputPrice := c.pricing.BaseOutputPrice
	if strings.HasPrefix(model, "ft:") {
		inputPrice = c.pricing.FineTunedInputPrice
		outputPrice = c.pricing.FineTunedOutputPrice
	}

	inputCost := round6(float64(inputTokens) / 1_000_000 * inputPrice)
	outputCost := round6(float64(outputTokens) / 1_000_000 * outputPrice)

	return CostBreakdown{
		InputTokens:  inputTokens,
		OutputTokens: outputTokens,
		TotalTokens:  inputTokens + outputTokens,
		InputCost:    inputCost,
		OutputCost:   outputCost,
		TotalCost:    round6(inputCost + outputCost),
		Model:        model,
	}
}

// CalculateEmbeddingCost prices an embedding call.
func (c *CostCalculator) CalculateEmbeddingCost(tokens int) float64 {
	return round6(float64(tokens) / 1_000_000 * c.pricing.EmbeddingPrice)
}

// CalculateFineTuningCost prices a training run.
func (c *CostCalculator) CalculateFineTuningCost(trainingTokens int) float64 {
	return round6(float64(trainingTokens) / 1_000_000 * c.pricing.FineTuneTrainPrice)
}

// SplitTotalTokens apportions a combined token count 40% input / 60% output.
// This is a declared estimation policy for provider responses that only
// report a total, not a measured split, and is a known source of
// cost-report imprecision.
func SplitTotalTokens(totalTokens int) (inputTokens, outputTokens int) {
	inputTokens = totalTokens * 40 / 100
	outputTokens = totalTokens - inputTokens
	return
}

func round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}
