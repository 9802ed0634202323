package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

func fastConfig() *Config {
	return &Config{
		MaxRetries:   3,
		InitialDelay: time.Millisecond,
		MaxDelay:     10 * time.Millisecond,
		Multiplier:   2.0,
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.MaxRetries != 3 {
		t.Errorf("expected MaxRetries=3, got %d", cfg.MaxRetries)
	}
	if cfg.InitialDelay != 100*time.Millisecond {
		t.Errorf("expected InitialDelay=100ms, got %v", cfg.InitialDelay)
	}
	if cfg.MaxDelay != 5*time.Second {
		t.Errorf("expected MaxDelay=5s, got %v", cfg.MaxDelay)
	}
}

func TestDo_Success(t *testing.T) {
	callCount := 0
	err := Do(context.Background(), fastConfig(), func() error {
		callCount++
		return nil
	})

	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}
	if callCount != 1 {
		t.Errorf("expected 1 call, got %d", callCount)
	}
}

func TestDo_SuccessAfterRetries(t *testing.T) {
	callCount := 0
	err := Do(context.Background(), fastConfig(), func() error {
		callCount++
		if callCount < 3 {
			return errors.New("dial tcp: connection refused")
		}
		return nil
	})

	if err != nil {
		t.Errorf("expected success after retries, got %v", err)
	}
	if callCount != 3 {
		t.Errorf("expected 3 calls, got %d", callCount)
	}
}

func TestDo_Exhausted(t *testing.T) {
	wantErr := errors.New("i/o timeout")
	callCount := 0
	err := Do(context.Background(), fastConfig(), func() error {
		callCount++
		return wantErr
	})

	if !errors.Is(err, wantErr) {
		t.Errorf("expected last error, got %v", err)
	}
	if callCount != 4 {
		t.Errorf("expected initial call + 3 retries, got %d", callCount)
	}
}

func TestDo_PermanentErrorStopsImmediately(t *testing.T) {
	wantErr := errors.New("failed to parse database URL")
	callCount := 0
	err := Do(context.Background(), fastConfig(), func() error {
		callCount++
		return wantErr
	})

	if !errors.Is(err, wantErr) {
		t.Errorf("expected the permanent error, got %v", err)
	}
	if callCount != 1 {
		t.Errorf("permanent errors must not be retried, got %d calls", callCount)
	}
}

func TestDo_ExplicitNonRetryableStopsImmediately(t *testing.T) {
	callCount := 0
	err := Do(context.Background(), fastConfig(), func() error {
		callCount++
		return &explicitErr{retryable: false}
	})

	if err == nil {
		t.Fatal("expected the error back")
	}
	if callCount != 1 {
		t.Errorf("explicitly non-retryable errors must not be retried, got %d calls", callCount)
	}
}

func TestDo_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	err := Do(ctx, &Config{
		MaxRetries:   3,
		InitialDelay: time.Hour,
		MaxDelay:     time.Hour,
		Multiplier:   2.0,
	}, func() error {
		cancel()
		return errors.New("connection reset by peer")
	})

	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestDoWithResult(t *testing.T) {
	callCount := 0
	got, err := DoWithResult(context.Background(), fastConfig(), func() (string, error) {
		callCount++
		if callCount < 2 {
			return "", errors.New("i/o timeout")
		}
		return "connected", nil
	})

	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}
	if got != "connected" {
		t.Errorf("expected result, got %q", got)
	}
}

type explicitErr struct{ retryable bool }

func (e *explicitErr) Error() string     { return "explicit" }
func (e *explicitErr) IsRetryable() bool { return e.retryable }

func TestIsRetryable(t *testing.T) {
	if IsRetryable(nil) {
		t.Error("nil is not retryable")
	}
	if !IsRetryable(&explicitErr{retryable: true}) {
		t.Error("RetryableError true must win")
	}
	if IsRetryable(&explicitErr{retryable: false}) {
		t.Error("RetryableError false must win over pattern matching")
	}
	if !IsRetryable(errors.New("dial tcp: connection refused")) {
		t.Error("connection errors are retryable")
	}
	if !IsRetryable(errors.New("503 Service Unavailable")) {
		t.Error("5xx errors are retryable")
	}
	if IsRetryable(errors.New("syntax error near SELECT")) {
		t.Error("permanent errors are not retryable")
	}
}
