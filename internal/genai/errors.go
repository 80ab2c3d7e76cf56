// This file contains error classification for retry/fallback decisions.
package genai

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// ErrorAction defines the action to take based on error type.
type ErrorAction int

const (
	// ActionRetry indicates the request should be retried with the same provider/model.
	ActionRetry ErrorAction = iota
	// ActionFallback indicates fallback to another provider should be attempted.
	ActionFallback
	// ActionFail indicates the request should fail immediately (permanent error).
	ActionFail
)

func (a ErrorAction) String() string {
	switch a {
	case ActionRetry:
		return "retry"
	case ActionFallback:
		return "fallback"
	case ActionFail:
		return "fail"
	default:
		return "unknown"
	}
}

// LLMError carries the HTTP status and provider of a failed extraction call
// so the retry loop can classify without string matching. RetryAfter holds
// the server-requested delay when the response included one.
type LLMError struct {
	Err        error
	StatusCode int
	Provider   Provider
	Retryable  bool
	RetryAfter time.Duration
}

func (e *LLMError) Error() string {
	if e.StatusCode > 0 {
		return e.Err.Error() + " (status: " + strconv.Itoa(e.StatusCode) + ")"
	}
	return e.Err.Error()
}

func (e *LLMError) Unwrap() error {
	return e.Err
}

// messageRules maps error-message fragments to actions. Rules are checked
// in order; quota exhaustion must come before the generic rate limit rule
// because both mention limits.
var messageRules = []struct {
	action    ErrorAction
	fragments []string
}{
	{ActionFallback, []string{"quota", "daily limit", "monthly limit", "billing"}},
	{ActionRetry, []string{"rate limit", "too many requests", "resource_exhausted", "429"}},
	{ActionRetry, []string{
		"unavailable", "503", "502", "500", "504",
		"internal server error", "bad gateway", "gateway timeout",
		"overloaded", "capacity",
	}},
	{ActionRetry, []string{"408", "409", "timeout", "deadline", "connection"}},
	{ActionFail, []string{"400", "invalid", "bad request", "malformed"}},
	{ActionFail, []string{"401", "unauthorized", "unauthenticated"}},
	{ActionFail, []string{"403", "forbidden", "permission denied"}},
	{ActionFail, []string{"404", "not found"}},
	{ActionFail, []string{"422", "unprocessable"}},
}

// ClassifyError determines the appropriate action for an extraction error:
// transient failures retry, quota exhaustion falls back to the next
// provider, permanent client errors fail immediately.
func ClassifyError(err error) ErrorAction {
	if err == nil {
		return ActionFail
	}
	if errors.Is(err, context.Canceled) {
		return ActionFail
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ActionRetry
	}

	var llmErr *LLMError
	if errors.As(err, &llmErr) && llmErr.StatusCode > 0 {
		return classifyStatus(llmErr.StatusCode)
	}

	msg := strings.ToLower(err.Error())
	for _, rule := range messageRules {
		for _, fragment := range rule.fragments {
			if strings.Contains(msg, fragment) {
				return rule.action
			}
		}
	}

	// Unknown errors get one more chance.
	return ActionRetry
}

func classifyStatus(status int) ErrorAction {
	switch status {
	case http.StatusTooManyRequests, http.StatusRequestTimeout, http.StatusConflict:
		return ActionRetry
	}
	if status >= 500 {
		return ActionRetry
	}
	if status >= 400 {
		return ActionFail
	}
	return ActionRetry
}

// ParseRetryAfter reads the delay a provider requested before the next
// attempt. It understands retry-after-ms, integer seconds and HTTP dates,
// and reports 0 when no usable value is present.
func ParseRetryAfter(headers http.Header) time.Duration {
	if ms := headers.Get("retry-after-ms"); ms != "" {
		if n, err := strconv.Atoi(ms); err == nil && n > 0 {
			return time.Duration(n) * time.Millisecond
		}
	}
	raw := headers.Get("retry-after")
	if raw == "" {
		return 0
	}
	if sec, err := strconv.Atoi(raw); err == nil && sec > 0 {
		return time.Duration(sec) * time.Second
	}
	if at, err := http.ParseTime(raw); err == nil {
		return time.Until(at)
	}
	return 0
}

// ShouldFallback reports whether the error warrants trying another provider.
func ShouldFallback(err error) bool {
	return ClassifyError(err) == ActionFallback
}

// IsRetryable reports whether the error is transient.
func IsRetryable(err error) bool {
	return ClassifyError(err) == ActionRetry
}

// IsPermanent reports whether retrying cannot help.
func IsPermanent(err error) bool {
	return ClassifyError(err) == ActionFail
}

// WrapError attaches provider and status information to an extraction error.
func WrapError(err error, provider Provider, statusCode int) error {
	if err == nil {
		return nil
	}
	return &LLMError{
		Err:        err,
		StatusCode: statusCode,
		Provider:   provider,
		Retryable:  ClassifyError(err) == ActionRetry,
	}
}
