package llm

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/1933211129/news-summary/internal/config"
	"github.com/1933211129/news-summary/internal/ports"
)

// Client implements ports.ChatClient backed by OpenAI-compatible APIs.
// Model, temperature and token cap come from immutable startup config.
type Client struct {
	api         *openai.Client
	model       string
	temperature float32
	maxTokens   int
}

var _ ports.ChatClient = (*Client)(nil)

// NewClient builds a client from configuration. Missing credentials are a
// configuration error surfaced before any call is attempted.
func NewClient(cfg config.LLMConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("llm api key is not configured")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("llm model is not configured")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &Client{
		api:         openai.NewClientWithConfig(clientConfig),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
	}, nil
}

// Complete sends the conversation and returns the first choice's text.
// Transport, auth and rate-limit failures propagate to the caller; retry
// policy, if any, belongs to a wrapper.
func (c *Client) Complete(ctx context.Context, messages []ports.Message) (string, error) {
	chatMessages := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		chatMessages = append(chatMessages, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    chatMessages,
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}

	return resp.Choices[0].Message.Content, nil
}
