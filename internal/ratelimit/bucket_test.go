package ratelimit

import (
	"testing"
	"time"
)

func TestLimiterAllow(t *testing.T) {
	l := New(3, 0.001)

	for i := range 3 {
		if !l.Allow() {
			t.Fatalf("request %d should be allowed", i)
		}
	}
	if l.Allow() {
		t.Error("request beyond capacity should be denied")
	}
}

func TestLimiterRefill(t *testing.T) {
	l := New(1, 1000)

	if !l.Allow() {
		t.Fatal("first request should pass")
	}
	// at 1000 tokens/sec the bucket refills almost immediately
	time.Sleep(5 * time.Millisecond)
	if !l.Allow() {
		t.Error("bucket should have refilled")
	}
}

func TestLimiterAvailable(t *testing.T) {
	l := New(5, 0.001)

	if got := l.Available(); got != 5 {
		t.Errorf("Available = %v, want 5", got)
	}
	l.Allow()
	if got := l.Available(); got >= 5 {
		t.Errorf("Available after consume = %v", got)
	}
}

func TestLimiterIsFullAndReset(t *testing.T) {
	l := New(2, 0.001)

	if !l.IsFull() {
		t.Error("new limiter should be full")
	}
	l.Allow()
	if l.IsFull() {
		t.Error("limiter should not be full after consuming")
	}
	l.Reset()
	if !l.IsFull() {
		t.Error("limiter should be full after reset")
	}
}
