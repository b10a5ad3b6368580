package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"neurobud-backend/internal/models"
)

const (
	maxResponseTokens = 500
	chatTemperature   = 0.7
)

// systemPrompt frames the companion role, its boundaries and the safety
// protocol. Crisis handling is still enforced upstream by the keyword
// detector; this only shapes model behavior for non-flagged messages.
const systemPrompt = `You are Neurobud, a compassionate mental wellness AI companion.

YOUR ROLE:
1. Listen actively and validate feelings without judgment
2. Ask thoughtful, open-ended follow-up questions
3. Suggest evidence-based coping strategies (CBT, mindfulness, breathing exercises)
4. Teach users about their emotions (psychoeducation)
5. Encourage professional help when appropriate
6. Provide small, actionable steps users can take

CRITICAL BOUNDARIES:
- You are NOT a therapist, psychologist, psychiatrist, or medical professional
- You CANNOT diagnose mental health conditions
- You CANNOT provide medical advice, treatment plans, or medication guidance
- You are NOT a substitute for professional therapy
- You CANNOT guarantee confidentiality (conversations are logged for safety)

SAFETY PROTOCOLS:
If the user mentions suicide, self-harm, "want to die" or "end it all", IMMEDIATELY provide crisis resources (988, Crisis Text Line). If they describe severe symptoms (can't function, not eating or sleeping for days, hearing voices), strongly encourage professional help. For medication questions say you can't advise and point to a doctor or psychiatrist. For diagnosis requests say a licensed therapist can properly assess symptoms.

COMMUNICATION STYLE:
- Warm, empathetic, non-judgmental, like a supportive friend
- Simple conversational language, no clinical jargon unless explaining
- Concise responses, 2-3 paragraphs maximum
- End with a gentle question to continue the conversation
- Use validation phrases: "That sounds really difficult", "It makes sense you'd feel that way"

REMINDERS:
Every 5-7 messages, gently remind the user you are an AI companion, not a therapist, and that ongoing support belongs with a licensed mental health professional.

CRISIS RESOURCES (always available):
- 988 Suicide & Crisis Lifeline (US): Call or text 988
- Crisis Text Line: Text HOME to 741741
- 911 for immediate emergencies

Your goal is to be a supportive companion who teaches coping skills and bridges users to professional care when needed. You are a friend with boundaries, not a replacement for therapy.`

// CompletionResult is what one provider call produced. When the provider
// reports real token usage, InputTokens/OutputTokens carry the measured
// split; otherwise only TotalTokens is set, from the character estimate.
type CompletionResult struct {
	Response       string
	InputTokens    int
	OutputTokens   int
	TotalTokens    int
	Model          string
	ResponseTimeMs float64
}

// CompletionProvider abstracts the hosted LLM behind (history, message) →
// completion + token usage. Failures surface as a single opaque error.
type CompletionProvider interface {
	Complete(ctx context.Context, model string, history []models.ChatMessage, message string) (*CompletionResult, error)
}

// OpenAIService implements CompletionProvider on the OpenAI chat
// completions API.
type OpenAIService struct {
	client  *openai.Client
	timeout time.Duration
}

func NewOpenAIService(apiKey string, timeoutSeconds int) *OpenAIService {
	return &OpenAIService{
		client:  openai.NewClient(apiKey),
		timeout: time.Duration(timeoutSeconds) * time.Second,
	}
}

func (s *OpenAIService) Complete(ctx context.Context, model string, history []models.ChatMessage, message string) (*CompletionResult, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(history)+2)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: systemPrompt,
	})
	for _, msg := range history {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    msg.Role,
			Content: msg.Content,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: message,
	})

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       model,
		Messages:    messages,
		Temperature: chatTemperature,
		MaxTokens:   maxResponseTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("no response from OpenAI")
	}

	elapsed := float64(time.Since(start).Microseconds()) / 1000.0
	reply := resp.Choices[0].Message.Content

	result := &CompletionResult{
		Response:       reply,
		InputTokens:    resp.Usage.PromptTokens,
		OutputTokens:   resp.Usage.CompletionTokens,
		TotalTokens:    resp.Usage.TotalTokens,
		Model:          resp.Model,
		ResponseTimeMs: elapsed,
	}
	if result.Model == "" {
		result.Model = model
	}
	if result.TotalTokens == 0 {
		// Usage missing: estimate from text, leaving the input/output
		// split to the accounting layer's declared policy.
		total := EstimateTokens(systemPrompt) + EstimateTokens(message) + EstimateTokens(reply)
		for _, msg := range history {
			total += EstimateTokens(msg.Content)
		}
		result.TotalTokens = total
	}

	return result, nil
}

// EstimateTokens approximates token usage at 4 characters per token. Used
// only where the provider did not report real usage.
func EstimateTokens(text string) int {
	return len(text) / 4
}
