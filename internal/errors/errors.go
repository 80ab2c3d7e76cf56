// Package errors provides domain-specific error types and sentinel errors
// for improved error handling across the application.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common scenarios.
// Use errors.Is() to check these errors in your code.
var (
	// ErrNoConfidentMatch indicates fuzzy matching found no candidate above
	// the acceptance threshold. The affected slot stays empty.
	ErrNoConfidentMatch = errors.New("no confident match")

	// ErrAmbiguousMatch indicates fuzzy matching found several candidates in
	// the disambiguation band. Callers should present the candidate list.
	ErrAmbiguousMatch = errors.New("ambiguous match")

	// ErrFallbackUnavailable indicates the LLM extraction stage failed or
	// returned malformed output. The rule-stage result stands.
	ErrFallbackUnavailable = errors.New("fallback extractor unavailable")

	// ErrLLMBudgetExhausted indicates the per-partner LLM budget was spent.
	// Treated the same as ErrFallbackUnavailable by the router.
	ErrLLMBudgetExhausted = errors.New("llm budget exhausted")
)

// ValidationError represents input validation failures.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}
