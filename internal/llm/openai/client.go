package openai

import (
	"context"

	"mcpchat/internal/llm"

	openai "github.com/sashabaranov/go-openai"
)

type Client struct {
	client *openai.Client
	model  string
}

// NewClient creates a new OpenAI client with the given API key and model.
// If baseURL is empty, it uses the default OpenAI API endpoint.
// If baseURL is provided, it uses the custom endpoint (useful for
// OpenAI-compatible APIs such as Azure OpenAI or Ollama).
func NewClient(apiKey, model string, baseURL ...string) *Client {
	var client *openai.Client

	if len(baseURL) > 0 && baseURL[0] != "" {
		config := openai.DefaultConfig(apiKey)
		config.BaseURL = baseURL[0]
		client = openai.NewClientWithConfig(config)
	} else {
		client = openai.NewClient(apiKey)
	}

	return &Client{
		client: client,
		model:  model,
	}
}

func (c *Client) Chat(ctx context.Context, req *llm.ChatRequest) (*llm.ChatResponse, error) {
	ocReq := openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    c.convertMessages(req.Messages),
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}
	if req.Seed != 0 {
		seed := req.Seed
		ocReq.Seed = &seed
	}

	resp, err := c.client.CreateChatCompletion(ctx, ocReq)
	if err != nil {
		return nil, err
	}

	return c.convertResponse(resp), nil
}

func (c *Client) Provider() string {
	return "openai"
}

func (c *Client) Model() string {
	return c.model
}

// Helper method: message format conversion
func (c *Client) convertMessages(msgs []llm.Message) []openai.ChatCompletionMessage {
	result := make([]openai.ChatCompletionMessage, len(msgs))
	for i, msg := range msgs {
		result[i] = openai.ChatCompletionMessage{
			Role:    string(msg.Role),
			Content: msg.Content,
		}
	}
	return result
}

// Helper method: response conversion
func (c *Client) convertResponse(resp openai.ChatCompletionResponse) *llm.ChatResponse {
	msg := resp.Choices[0].Message

	return &llm.ChatResponse{
		Message: llm.Message{
			Role:    llm.Role(msg.Role),
			Content: msg.Content,
		},
		Usage: llm.Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}
}
