package llm

import (
	"context"
)

// MockClient is a configurable mock for testing generation functionality.
// Set the function field to control behavior in tests.
type MockClient struct {
	// GenerateTextFunc is called when GenerateText is invoked.
	// If nil, returns empty string and nil error.
	GenerateTextFunc func(ctx context.Context, model, systemMessage, prompt string, temperature float32, maxTokens int) (string, error)

	// ProviderName is returned by Provider. Defaults to "mock".
	ProviderName string

	// Call tracking for verification
	GenerateTextCalls int
	Models            []string // models requested, in call order
}

// NewMockClient creates a new mock with sensible defaults.
func NewMockClient() *MockClient {
	return &MockClient{ProviderName: "mock"}
}

// GenerateText implements Client.
func (m *MockClient) GenerateText(ctx context.Context, model, systemMessage, prompt string, temperature float32, maxTokens int) (string, error) {
	m.GenerateTextCalls++
	m.Models = append(m.Models, model)
	if m.GenerateTextFunc != nil {
		return m.GenerateTextFunc(ctx, model, systemMessage, prompt, temperature, maxTokens)
	}
	return "", nil
}

// Provider implements Client.
func (m *MockClient) Provider() string {
	if m.ProviderName == "" {
		return "mock"
	}
	return m.ProviderName
}

// Reset clears call tracking.
func (m *MockClient) Reset() {
	m.GenerateTextCalls = 0
	m.Models = nil
}

// Ensure MockClient implements Client at compile time.
var _ Client = (*MockClient)(nil)
