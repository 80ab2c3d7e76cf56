package genai

import (
	"context"
	"testing"
	"time"
)

func TestCalculateBackoff(t *testing.T) {
	initial := 500 * time.Millisecond
	max := 3 * time.Second

	for attempt := 1; attempt <= 5; attempt++ {
		ceiling := time.Duration(float64(initial) * float64(int(1)<<(attempt-1)))
		if ceiling > max {
			ceiling = max
		}

		for range 20 {
			d := CalculateBackoff(attempt, initial, max)
			if d < 0 || d > ceiling {
				t.Fatalf("attempt %d: backoff %v outside [0, %v]", attempt, d, ceiling)
			}
		}
	}
}

func TestCalculateBackoffZeroAttempt(t *testing.T) {
	if d := CalculateBackoff(0, time.Second, time.Minute); d != 0 {
		t.Errorf("attempt 0: got %v, want 0", d)
	}
	if d := CalculateBackoff(-1, time.Second, time.Minute); d != 0 {
		t.Errorf("attempt -1: got %v, want 0", d)
	}
}

func TestSleepCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := Sleep(ctx, time.Minute); err != context.Canceled {
		t.Errorf("Sleep on canceled context: got %v, want context.Canceled", err)
	}
}

func TestSleepZeroDuration(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// zero duration returns before checking the context
	if err := Sleep(ctx, 0); err != nil {
		t.Errorf("Sleep(0) = %v, want nil", err)
	}
}

func TestHasSufficientBudget(t *testing.T) {
	if !HasSufficientBudget(context.Background(), time.Hour) {
		t.Error("no deadline should always have budget")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if HasSufficientBudget(ctx, time.Second) {
		t.Error("50ms budget should not cover 1s requirement")
	}
	if !HasSufficientBudget(ctx, time.Millisecond) {
		t.Error("50ms budget should cover 1ms requirement")
	}
}
