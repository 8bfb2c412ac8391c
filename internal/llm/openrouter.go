package llm

import (
	"context"
	"errors"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"mergelens/internal/explain"
)

const (
	DefaultBaseURL = "https://openrouter.ai/api/v1"
	DefaultModel   = "mistralai/mixtral-8x7b-instruct"
)

// OpenRouterClient talks to an OpenAI-compatible chat completions endpoint.
type OpenRouterClient struct {
	client *openai.Client
	model  string
	logger *zap.Logger
}

func NewOpenRouterClient(apiKey, baseURL, model string, logger *zap.Logger) *OpenRouterClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if model == "" {
		model = DefaultModel
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = baseURL

	return &OpenRouterClient{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
		logger: logger,
	}
}

// Complete sends a single user message and returns the completion text.
func (c *OpenRouterClient) Complete(ctx context.Context, prompt string) (string, error) {
	c.logger.Debug("sending chat completion", zap.String("model", c.model))

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.3,
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			c.logger.Warn("chat completion rejected",
				zap.Int("status", apiErr.HTTPStatusCode),
				zap.String("message", apiErr.Message))
			return "", &Failure{Status: apiErr.HTTPStatusCode, Body: apiErr.Message}
		}
		c.logger.Warn("chat completion failed", zap.Error(err))
		return "", &Failure{Body: err.Error()}
	}

	if len(resp.Choices) == 0 {
		return "", &Failure{Body: "response contained no choices"}
	}

	return resp.Choices[0].Message.Content, nil
}

// Explain implements Explainer on top of Complete.
func (c *OpenRouterClient) Explain(ctx context.Context, req explain.Request) (string, error) {
	return c.Complete(ctx, req.Prompt)
}
