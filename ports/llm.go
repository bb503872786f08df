package ports

import "context"

// ChatMessage is one turn of a chat-completion conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// LLMClient interface for chat LLM providers
type LLMClient interface {
	ChatCompletion(ctx context.Context, messages []ChatMessage) (string, error)
}
