package llm

import "context"

type Client interface {
	Chat(ctx context.Context, req *ChatRequest) (*ChatResponse, error)
	Provider() string
	Model() string
}

type ChatRequest struct {
	Messages    []Message
	Temperature float32
	MaxTokens   int
	// Seed makes repeated calls reproducible on backends that honor it.
	// Zero means no seed is sent.
	Seed int
}

type ChatResponse struct {
	Message Message
	Usage   Usage
}
