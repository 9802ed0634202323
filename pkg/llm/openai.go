package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// Config holds configuration for creating a backend client.
type Config struct {
	APIKey  string // Secret; empty means generation is unavailable
	BaseURL string // Optional endpoint override for proxies / compatible servers
}

// OpenAIClient provides access to OpenAI chat-completion endpoints.
type OpenAIClient struct {
	client *openai.Client
	hasKey bool
	logger *zap.Logger
}

// NewOpenAIClient creates a new OpenAI client.
// A missing API key is not an error here; calls will fail fast with
// ErrMissingAPIKey so the caller can surface a configuration failure.
func NewOpenAIClient(cfg *Config, logger *zap.Logger) *OpenAIClient {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")
	}

	return &OpenAIClient{
		client: openai.NewClientWithConfig(clientConfig),
		hasKey: cfg.APIKey != "",
		logger: logger.Named("llm"),
	}
}

// GenerateText requests a single chat completion from the named model.
func (c *OpenAIClient) GenerateText(ctx context.Context, model, systemMessage, prompt string, temperature float32, maxTokens int) (string, error) {
	if !c.hasKey {
		return "", ErrMissingAPIKey
	}

	c.logger.Debug("backend request",
		zap.String("provider", "openai"),
		zap.String("model", model),
		zap.Int("prompt_len", len(prompt)))

	start := time.Now()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       model,
		Temperature: temperature,
		MaxTokens:   maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemMessage},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		c.logger.Warn("backend request failed",
			zap.String("model", model),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		llmErr := ClassifyError(err)
		llmErr.Model = model
		return "", llmErr
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}

	c.logger.Debug("backend request completed",
		zap.String("model", model),
		zap.Int("completion_tokens", resp.Usage.CompletionTokens),
		zap.Duration("elapsed", time.Since(start)))

	return resp.Choices[0].Message.Content, nil
}

// Provider returns "openai".
func (c *OpenAIClient) Provider() string {
	return "openai"
}
