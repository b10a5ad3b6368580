package models

// ChatMessage is a single (role, content) entry in a conversation history.
type ChatMessage struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// ChatRequest is the payload sent to the chat endpoint.
type ChatRequest struct {
	Message        string `json:"message"`
	ConversationID string `json:"conversation_id,omitempty"`
}

// ChatResponse is the reply from one chat turn.
type ChatResponse struct {
	ConversationID string  `json:"conversation_id"`
	Message        string  `json:"message"`
	Response       string  `json:"response"`
	IsCrisis       bool    `json:"is_crisis"`
	CrisisSeverity *string `json:"crisis_severity,omitempty"`
	Model          string  `json:"model"`
	ModelVariant   string  `json:"model_variant"`
	TokensUsed     int     `json:"tokens_used"`
	ResponseTimeMs float64 `json:"response_time_ms"`
}
