package genai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"
)

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorAction
	}{
		{"nil error", nil, ActionFail},
		{"context canceled", context.Canceled, ActionFail},
		{"deadline exceeded", context.DeadlineExceeded, ActionRetry},
		{"quota exhausted", errors.New("quota exceeded for this project"), ActionFallback},
		{"daily limit", errors.New("daily limit reached"), ActionFallback},
		{"billing", errors.New("billing account required"), ActionFallback},
		{"rate limited", errors.New("rate limit exceeded, slow down"), ActionRetry},
		{"too many requests", errors.New("too many requests"), ActionRetry},
		{"server error", errors.New("500 internal server error"), ActionRetry},
		{"bad gateway", errors.New("502 bad gateway"), ActionRetry},
		{"overloaded", errors.New("model is overloaded"), ActionRetry},
		{"timeout", errors.New("connection timeout"), ActionRetry},
		{"bad request", errors.New("400 bad request"), ActionFail},
		{"invalid api key", errors.New("invalid api key"), ActionFail},
		{"forbidden", errors.New("403 forbidden"), ActionFail},
		{"not found", errors.New("model not found"), ActionFail},
		{"unprocessable", errors.New("unprocessable entity"), ActionFail},
		{"unknown error", errors.New("something odd happened"), ActionRetry},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyError(tt.err); got != tt.want {
				t.Errorf("ClassifyError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestClassifyErrorStatusCode(t *testing.T) {
	tests := []struct {
		status int
		want   ErrorAction
	}{
		{http.StatusTooManyRequests, ActionRetry},
		{http.StatusRequestTimeout, ActionRetry},
		{http.StatusConflict, ActionRetry},
		{http.StatusInternalServerError, ActionRetry},
		{http.StatusServiceUnavailable, ActionRetry},
		{http.StatusBadRequest, ActionFail},
		{http.StatusUnauthorized, ActionFail},
		{http.StatusNotFound, ActionFail},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("status_%d", tt.status), func(t *testing.T) {
			err := WrapError(errors.New("api error"), ProviderGroq, tt.status)
			if got := ClassifyError(err); got != tt.want {
				t.Errorf("ClassifyError(status %d) = %v, want %v", tt.status, got, tt.want)
			}
		})
	}
}

func TestClassifyErrorWrapped(t *testing.T) {
	inner := WrapError(errors.New("rate limited"), ProviderCerebras, http.StatusTooManyRequests)
	wrapped := fmt.Errorf("extract: %w", inner)

	if got := ClassifyError(wrapped); got != ActionRetry {
		t.Errorf("ClassifyError(wrapped) = %v, want %v", got, ActionRetry)
	}

	var llmErr *LLMError
	if !errors.As(wrapped, &llmErr) {
		t.Fatal("errors.As failed to unwrap LLMError")
	}
	if llmErr.Provider != ProviderCerebras {
		t.Errorf("Provider = %v, want %v", llmErr.Provider, ProviderCerebras)
	}
}

func TestLLMErrorMessage(t *testing.T) {
	err := &LLMError{Err: errors.New("boom"), StatusCode: 503}
	if got := err.Error(); got != "boom (status: 503)" {
		t.Errorf("Error() = %q", got)
	}

	err = &LLMError{Err: errors.New("boom")}
	if got := err.Error(); got != "boom" {
		t.Errorf("Error() without status = %q", got)
	}
}

func TestParseRetryAfter(t *testing.T) {
	tests := []struct {
		name    string
		headers http.Header
		want    time.Duration
	}{
		{"missing", http.Header{}, 0},
		{"seconds", http.Header{"Retry-After": []string{"5"}}, 5 * time.Second},
		{"milliseconds", http.Header{"Retry-After-Ms": []string{"250"}}, 250 * time.Millisecond},
		{"invalid", http.Header{"Retry-After": []string{"soon"}}, 0},
		{"negative", http.Header{"Retry-After": []string{"-3"}}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseRetryAfter(tt.headers); got != tt.want {
				t.Errorf("ParseRetryAfter() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestErrorPredicates(t *testing.T) {
	if !ShouldFallback(errors.New("quota exceeded")) {
		t.Error("ShouldFallback(quota) = false")
	}
	if !IsRetryable(errors.New("503 unavailable")) {
		t.Error("IsRetryable(503) = false")
	}
	if !IsPermanent(errors.New("401 unauthorized")) {
		t.Error("IsPermanent(401) = false")
	}
}

func TestWrapErrorNil(t *testing.T) {
	if WrapError(nil, ProviderGemini, 500) != nil {
		t.Error("WrapError(nil) should return nil")
	}
}
