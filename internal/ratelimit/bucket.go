// Package ratelimit provides token bucket rate limiting. Its main consumer
// is the per-partner LLM budget that gates second-stage extraction calls.
package ratelimit

import (
	"sync"
	"time"
)

// Limiter is a token bucket. Tokens accrue at ratePerSec up to capacity,
// and Allow spends one token per call. Safe for concurrent use.
type Limiter struct {
	mu         sync.Mutex
	capacity   float64
	ratePerSec float64
	tokens     float64
	updatedAt  time.Time
}

// New returns a full bucket holding capacity tokens that refills at
// ratePerSec tokens per second.
func New(capacity, ratePerSec float64) *Limiter {
	return &Limiter{
		capacity:   capacity,
		ratePerSec: ratePerSec,
		tokens:     capacity,
		updatedAt:  time.Now(),
	}
}

// advance credits tokens for the time elapsed since the last update.
// Callers must hold mu.
func (l *Limiter) advance(now time.Time) {
	l.tokens += now.Sub(l.updatedAt).Seconds() * l.ratePerSec
	if l.tokens > l.capacity {
		l.tokens = l.capacity
	}
	l.updatedAt = now
}

// Allow spends one token if available. It never blocks.
func (l *Limiter) Allow() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.advance(time.Now())
	if l.tokens < 1.0 {
		return false
	}
	l.tokens--
	return true
}

// Available reports the current token count.
func (l *Limiter) Available() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.advance(time.Now())
	return l.tokens
}

// IsFull reports whether the bucket has refilled to capacity. A full
// bucket has seen no recent traffic and can be discarded.
func (l *Limiter) IsFull() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.advance(time.Now())
	return l.tokens >= l.capacity
}

// Reset refills the bucket to capacity.
func (l *Limiter) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.tokens = l.capacity
	l.updatedAt = time.Now()
}
