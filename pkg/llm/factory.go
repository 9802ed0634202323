package llm

import (
	"fmt"

	"go.uber.org/zap"
)

// NewClient creates a backend client for the named provider.
// Supported providers: "openai", "anthropic".
func NewClient(provider string, cfg *Config, logger *zap.Logger) (Client, error) {
	switch provider {
	case "openai":
		return NewOpenAIClient(cfg, logger), nil
	case "anthropic":
		return NewAnthropicClient(cfg, logger), nil
	default:
		return nil, fmt.Errorf("unknown backend provider %q", provider)
	}
}
