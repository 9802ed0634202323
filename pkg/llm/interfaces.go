// Package llm provides text-generation backend clients.
package llm

import (
	"context"
	"errors"
)

// ErrMissingAPIKey indicates no backend credential is configured.
// It is fatal for the calling operation and must not be retried.
var ErrMissingAPIKey = errors.New("backend API key is missing, cannot generate movie facts")

// Client defines the interface for text-generation operations.
// Use this interface for dependency injection to enable mocking in tests.
type Client interface {
	// GenerateText requests a single completion from the named model.
	GenerateText(ctx context.Context, model, systemMessage, prompt string, temperature float32, maxTokens int) (string, error)

	// Provider returns the backend provider name ("openai", "anthropic", ...).
	Provider() string
}

// Compile-time interface checks.
var (
	_ Client = (*OpenAIClient)(nil)
	_ Client = (*AnthropicClient)(nil)
)
