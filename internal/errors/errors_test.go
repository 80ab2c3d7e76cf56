package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestSentinelErrors(t *testing.T) {
	wrapped := fmt.Errorf("matching degree: %w", ErrNoConfidentMatch)
	if !errors.Is(wrapped, ErrNoConfidentMatch) {
		t.Error("wrapped error should match ErrNoConfidentMatch")
	}
	if errors.Is(wrapped, ErrAmbiguousMatch) {
		t.Error("wrapped error should not match ErrAmbiguousMatch")
	}
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("degree_level", "unknown value")
	want := "validation failed on degree_level: unknown value"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	var vErr *ValidationError
	if !errors.As(fmt.Errorf("bad request: %w", err), &vErr) {
		t.Fatal("errors.As should find ValidationError")
	}
	if vErr.Field != "degree_level" {
		t.Errorf("Field = %q, want degree_level", vErr.Field)
	}
}
