// This file contains backoff helpers for the extraction retry loop.
package genai

import (
	"context"
	"crypto/rand"
	"math/big"
	"time"
)

// CalculateBackoff returns the delay before retry number attempt, drawn
// uniformly from [0, min(maxDelay, initial*2^(attempt-1))]. Full Jitter
// keeps concurrent retries from synchronizing against a recovering
// provider.
//
// Reference: https://aws.amazon.com/blogs/architecture/exponential-backoff-and-jitter/
func CalculateBackoff(attempt int, initial, maxDelay time.Duration) time.Duration {
	if attempt <= 0 || initial <= 0 {
		return 0
	}

	ceiling := maxDelay
	if shift := attempt - 1; shift < 62 && initial<<shift < maxDelay {
		ceiling = initial << shift
	}
	if ceiling <= 0 {
		return 0
	}

	// crypto/rand for uniform distribution without modulo bias
	n, err := rand.Int(rand.Reader, big.NewInt(int64(ceiling)))
	if err != nil {
		return ceiling / 2
	}
	return time.Duration(n.Int64())
}

// Sleep blocks for d or until ctx is done, whichever comes first.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// HasSufficientBudget reports whether at least required time remains before
// the context deadline. Contexts without a deadline always have budget.
func HasSufficientBudget(ctx context.Context, required time.Duration) bool {
	deadline, ok := ctx.Deadline()
	if !ok {
		return true
	}
	return time.Until(deadline) >= required
}
