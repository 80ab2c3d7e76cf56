package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/studygate/partner-bot-go/internal/ctxutil"
	domerrors "github.com/studygate/partner-bot-go/internal/errors"
	"github.com/studygate/partner-bot-go/internal/slots"
)

func TestLLMBudgetPerPartner(t *testing.T) {
	budget := NewLLMBudget(2, time.Minute, nil)
	defer budget.Stop()

	if !budget.Allow("partner-a") || !budget.Allow("partner-a") {
		t.Fatal("first two calls should pass")
	}
	if budget.Allow("partner-a") {
		t.Error("third call should be denied")
	}

	// other partners are unaffected
	if !budget.Allow("partner-b") {
		t.Error("partner-b should have its own budget")
	}
}

func TestLLMBudgetEmptyPartnerUnlimited(t *testing.T) {
	budget := NewLLMBudget(1, time.Minute, nil)
	defer budget.Stop()

	for range 5 {
		if !budget.Allow("") {
			t.Fatal("empty partner ID must never be limited")
		}
	}
}

func TestLLMBudgetGetAvailable(t *testing.T) {
	budget := NewLLMBudget(10, time.Minute, nil)
	defer budget.Stop()

	if got := budget.GetAvailable("fresh"); got != 10 {
		t.Errorf("GetAvailable(fresh) = %v, want 10", got)
	}
	budget.Allow("used")
	if got := budget.GetAvailable("used"); got >= 10 {
		t.Errorf("GetAvailable(used) = %v", got)
	}
}

type countingExtractor struct {
	calls int
}

func (c *countingExtractor) Extract(_ context.Context, _ string, _ []slots.ConversationTurn, _ *slots.QueryState) (*slots.QueryState, error) {
	c.calls++
	return slots.New(), nil
}

func TestBudgetedExtractor(t *testing.T) {
	budget := NewLLMBudget(1, time.Minute, nil)
	defer budget.Stop()

	inner := &countingExtractor{}
	e := NewBudgetedExtractor(inner, budget)

	ctx := ctxutil.WithPartnerID(context.Background(), "partner-a")

	if _, err := e.Extract(ctx, "q", nil, nil); err != nil {
		t.Fatalf("first call: %v", err)
	}

	_, err := e.Extract(ctx, "q", nil, nil)
	if !errors.Is(err, domerrors.ErrLLMBudgetExhausted) {
		t.Fatalf("second call err = %v, want ErrLLMBudgetExhausted", err)
	}
	if inner.calls != 1 {
		t.Errorf("inner calls = %d, want 1", inner.calls)
	}
}

func TestBudgetedExtractorNilBudget(t *testing.T) {
	inner := &countingExtractor{}
	e := NewBudgetedExtractor(inner, nil)

	for range 3 {
		if _, err := e.Extract(context.Background(), "q", nil, nil); err != nil {
			t.Fatalf("Extract: %v", err)
		}
	}
	if inner.calls != 3 {
		t.Errorf("inner calls = %d", inner.calls)
	}
}
