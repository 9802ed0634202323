package llm

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrorType classifies backend errors.
type ErrorType string

const (
	ErrorTypeAuth     ErrorType = "auth"
	ErrorTypeConfig   ErrorType = "config"
	ErrorTypeModel    ErrorType = "model"
	ErrorTypeEndpoint ErrorType = "endpoint"
	ErrorTypeUnknown  ErrorType = "unknown"
)

// Error is a classified backend error. Retryable distinguishes transient
// failures (timeouts, rate limits, 5xx) from ones another attempt cannot
// fix (bad credentials, unknown model).
type Error struct {
	Type       ErrorType
	Message    string
	Retryable  bool
	Cause      error
	StatusCode int
	Model      string
}

func (e *Error) Error() string {
	var parts []string
	parts = append(parts, string(e.Type))

	if e.StatusCode > 0 {
		parts = append(parts, fmt.Sprintf("HTTP %d", e.StatusCode))
	}
	if e.Model != "" {
		parts = append(parts, fmt.Sprintf("model=%s", e.Model))
	}

	parts = append(parts, e.Message)

	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", strings.Join(parts, " "), e.Cause)
	}
	return strings.Join(parts, " ")
}

// Unwrap returns the underlying cause for errors.Is/As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// IsRetryable implements the retry.RetryableError interface, so the retry
// package can check retryability without importing this one.
func (e *Error) IsRetryable() bool {
	return e.Retryable
}

// NewError creates a classified backend error.
func NewError(errType ErrorType, message string, retryable bool, cause error) *Error {
	return &Error{
		Type:      errType,
		Message:   message,
		Retryable: retryable,
		Cause:     cause,
	}
}

// classifyRule matches an error string (lowercased) against substring
// markers. Rules are checked in order; the first hit wins.
type classifyRule struct {
	markers   []string
	errType   ErrorType
	message   string
	retryable bool
}

var classifyRules = []classifyRule{
	{[]string{"401", "unauthorized", "invalid api key"}, ErrorTypeAuth, "authentication failed", false},
	{[]string{"connection refused", "no such host"}, ErrorTypeEndpoint, "connection failed", true},
	{[]string{"timeout", "deadline exceeded", "context canceled"}, ErrorTypeEndpoint, "request timeout", true},
	{[]string{"429", "rate limit"}, ErrorTypeUnknown, "rate limited", true},
	{[]string{"500", "502", "503", "504"}, ErrorTypeEndpoint, "server error", true},
}

// ClassifyError turns an arbitrary backend error into a structured *Error.
// Errors that are already classified pass through unchanged.
func ClassifyError(err error) *Error {
	if err == nil {
		return nil
	}

	var llmErr *Error
	if errors.As(err, &llmErr) {
		return llmErr
	}

	if errors.Is(err, ErrMissingAPIKey) {
		return NewError(ErrorTypeConfig, "backend credential missing", false, err)
	}

	lower := strings.ToLower(err.Error())
	statusCode := extractStatusCode(lower)

	// Providers phrase unknown-model errors differently ("model X not
	// found", "the model `x` does not exist"), so this one is matched on
	// word pairs rather than a contiguous marker.
	if strings.Contains(lower, "model") &&
		(strings.Contains(lower, "not found") || strings.Contains(lower, "does not exist")) {
		e := NewError(ErrorTypeModel, "model not found", false, err)
		e.StatusCode = statusCode
		return e
	}

	for _, rule := range classifyRules {
		for _, marker := range rule.markers {
			if strings.Contains(lower, marker) {
				e := NewError(rule.errType, rule.message, rule.retryable, err)
				e.StatusCode = statusCode
				return e
			}
		}
	}

	e := NewError(ErrorTypeUnknown, "backend error", false, err)
	e.StatusCode = statusCode
	return e
}

func extractStatusCode(errStr string) int {
	for _, code := range []int{400, 401, 403, 404, 429, 500, 502, 503, 504} {
		if strings.Contains(errStr, strconv.Itoa(code)) {
			return code
		}
	}
	return 0
}

// IsFatal reports whether the error should abort the whole operation
// rather than just the current attempt (missing or rejected credentials).
func IsFatal(err error) bool {
	if errors.Is(err, ErrMissingAPIKey) {
		return true
	}
	var llmErr *Error
	if errors.As(err, &llmErr) {
		return llmErr.Type == ErrorTypeConfig
	}
	return false
}
