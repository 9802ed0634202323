package llm

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
)

func TestOpenAIClient_FailsFastWithoutKey(t *testing.T) {
	client := NewOpenAIClient(&Config{}, zap.NewNop())

	_, err := client.GenerateText(context.Background(), "gpt-4o-mini", "system", "prompt", 0.2, 120)
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("expected ErrMissingAPIKey, got %v", err)
	}
}

func TestAnthropicClient_FailsFastWithoutKey(t *testing.T) {
	client := NewAnthropicClient(&Config{}, zap.NewNop())

	_, err := client.GenerateText(context.Background(), "claude-3-5-haiku-latest", "system", "prompt", 0.2, 120)
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("expected ErrMissingAPIKey, got %v", err)
	}
}

func TestNewClient(t *testing.T) {
	logger := zap.NewNop()

	client, err := NewClient("openai", &Config{APIKey: "k"}, logger)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.Provider() != "openai" {
		t.Errorf("expected openai provider, got %s", client.Provider())
	}

	client, err = NewClient("anthropic", &Config{APIKey: "k"}, logger)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.Provider() != "anthropic" {
		t.Errorf("expected anthropic provider, got %s", client.Provider())
	}

	if _, err := NewClient("cohere", &Config{}, logger); err == nil {
		t.Error("expected error for unknown provider")
	}
}

func TestMockClient_TracksCalls(t *testing.T) {
	mock := NewMockClient()

	_, _ = mock.GenerateText(context.Background(), "model-a", "s", "p", 0.2, 120)
	_, _ = mock.GenerateText(context.Background(), "model-b", "s", "p", 0.2, 120)

	if mock.GenerateTextCalls != 2 {
		t.Errorf("expected 2 calls, got %d", mock.GenerateTextCalls)
	}
	if len(mock.Models) != 2 || mock.Models[1] != "model-b" {
		t.Errorf("unexpected model tracking: %v", mock.Models)
	}

	mock.Reset()
	if mock.GenerateTextCalls != 0 || mock.Models != nil {
		t.Error("Reset must clear tracking")
	}
}
