package llm

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// Options control a single completion request. A zero MaxTokens falls back to
// the client default; JSONMode asks the endpoint to emit a single JSON object.
type Options struct {
	Temperature float32
	MaxTokens   int
	JSONMode    bool
}

// Client wraps an OpenAI-compatible chat completion endpoint. Its output is
// untrusted text; callers validate shape before use.
type Client struct {
	APIKey  string
	BaseURL string
	Model   string
	client  *openai.Client
}

func NewClient(apiKey string, model string, baseURL string) *Client {
	if model == "" {
		model = "gpt-4o-mini"
	}
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}

	config := openai.DefaultConfig(apiKey)
	config.BaseURL = baseURL

	return &Client{
		APIKey:  apiKey,
		Model:   model,
		BaseURL: baseURL,
		client:  openai.NewClientWithConfig(config),
	}
}

// Complete sends a system and user prompt and returns the raw completion text.
// Callers bound the call with a context deadline.
func (c *Client) Complete(ctx context.Context, systemPrompt string, userPrompt string, opts Options) (string, error) {
	if c.client == nil {
		return "", fmt.Errorf("client not initialized")
	}

	maxTokens := opts.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 2048
	}

	req := openai.ChatCompletionRequest{
		Model: c.Model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: systemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: userPrompt,
			},
		},
		Temperature: opts.Temperature,
		TopP:        0.95,
		MaxTokens:   maxTokens,
	}
	if opts.JSONMode {
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("completion error: %w", err)
	}

	// A response that arrived but carries no usable text is still a received
	// completion; callers treat it like any other malformed output rather
	// than a transport failure.
	if len(resp.Choices) == 0 {
		return "", nil
	}

	return resp.Choices[0].Message.Content, nil
}
