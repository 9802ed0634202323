package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/liushuangls/go-anthropic/v2"
	"go.uber.org/zap"
)

// AnthropicClient provides access to Anthropic message endpoints.
// It is selected over OpenAI via backend.provider config.
type AnthropicClient struct {
	client *anthropic.Client
	hasKey bool
	logger *zap.Logger
}

// NewAnthropicClient creates a new Anthropic client.
// As with the OpenAI client, a missing key surfaces on first call.
func NewAnthropicClient(cfg *Config, logger *zap.Logger) *AnthropicClient {
	var opts []anthropic.ClientOption
	if cfg.BaseURL != "" {
		opts = append(opts, anthropic.WithBaseURL(cfg.BaseURL))
	}

	return &AnthropicClient{
		client: anthropic.NewClient(cfg.APIKey, opts...),
		hasKey: cfg.APIKey != "",
		logger: logger.Named("llm"),
	}
}

// GenerateText requests a single message completion from the named model.
func (c *AnthropicClient) GenerateText(ctx context.Context, model, systemMessage, prompt string, temperature float32, maxTokens int) (string, error) {
	if !c.hasKey {
		return "", ErrMissingAPIKey
	}

	c.logger.Debug("backend request",
		zap.String("provider", "anthropic"),
		zap.String("model", model),
		zap.Int("prompt_len", len(prompt)))

	start := time.Now()

	resp, err := c.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model:       anthropic.Model(model),
		System:      systemMessage,
		MaxTokens:   maxTokens,
		Temperature: &temperature,
		Messages: []anthropic.Message{
			anthropic.NewUserTextMessage(prompt),
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

	text := resp.GetFirstContentText()
	if text == "" {
		return "", fmt.Errorf("no content in response")
	}

	c.logger.Debug("backend request completed",
		zap.String("model", model),
		zap.Duration("elapsed", time.Since(start)))

	return text, nil
}

// Provider returns "anthropic".
func (c *AnthropicClient) Provider() string {
	return "anthropic"
}
