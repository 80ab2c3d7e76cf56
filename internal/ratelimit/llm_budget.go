package ratelimit

import (
	"context"
	"time"

	"github.com/studygate/partner-bot-go/internal/ctxutil"
	domerrors "github.com/studygate/partner-bot-go/internal/errors"
	"github.com/studygate/partner-bot-go/internal/metrics"
	"github.com/studygate/partner-bot-go/internal/slots"
)

// LLMBudget tracks per-partner LLM usage with hourly limits. Extraction
// calls are the expensive path, so they are limited independently from
// regular request handling.
type LLMBudget struct {
	pkl        *PerKeyLimiter
	maxPerHour float64
}

// NewLLMBudget creates a per-partner LLM budget.
//
// Parameters:
//   - maxPerHour: maximum extraction calls per partner per hour (e.g., 30)
//   - cleanup: cleanup interval for removing inactive limiters
//   - m: optional metrics recorder
//
// The budget uses a token bucket with:
//   - maxTokens = maxPerHour (burst capacity)
//   - refillRate = maxPerHour / 3600 (tokens per second)
func NewLLMBudget(maxPerHour float64, cleanup time.Duration, m *metrics.Metrics) *LLMBudget {
	budget := &LLMBudget{maxPerHour: maxPerHour}

	budget.pkl = NewPerKeyLimiter(PerKeyLimiterConfig{
		MaxTokens:     maxPerHour,
		RefillRate:    maxPerHour / 3600.0,
		CleanupPeriod: cleanup,
	})

	if m != nil {
		budget.pkl.OnDrop(func() {
			m.RecordRateLimiterDrop("llm")
		})
	}

	return budget
}

// Allow checks if an extraction call for partnerID fits the budget.
// Returns true if allowed (token consumed), false if the budget is spent.
// An empty partner ID is never limited.
func (b *LLMBudget) Allow(partnerID string) bool {
	return b.pkl.Allow(partnerID)
}

// GetAvailable returns the remaining budget for a partner.
func (b *LLMBudget) GetAvailable(partnerID string) float64 {
	if partnerID == "" {
		return b.maxPerHour
	}
	return b.pkl.GetAvailable(partnerID)
}

// Stop stops the background cleanup.
func (b *LLMBudget) Stop() {
	b.pkl.Stop()
}

// Extractor is the second-stage extraction interface this package gates.
// It matches the router's fallback extractor contract.
type Extractor interface {
	Extract(ctx context.Context, query string, history []slots.ConversationTurn, prev *slots.QueryState) (*slots.QueryState, error)
}

// BudgetedExtractor wraps an extractor with the per-partner budget. A spent
// budget reads as the fallback stage being unavailable; the router then
// settles on the rule result, same as any other extraction failure.
type BudgetedExtractor struct {
	next   Extractor
	budget *LLMBudget
}

// NewBudgetedExtractor wraps next with budget. budget may be nil, in which
// case extraction is never limited.
func NewBudgetedExtractor(next Extractor, budget *LLMBudget) *BudgetedExtractor {
	return &BudgetedExtractor{next: next, budget: budget}
}

// Extract checks the calling partner's budget before delegating.
// The partner ID is read from the context.
func (e *BudgetedExtractor) Extract(ctx context.Context, query string, history []slots.ConversationTurn, prev *slots.QueryState) (*slots.QueryState, error) {
	if e.budget != nil && !e.budget.Allow(ctxutil.GetPartnerID(ctx)) {
		return nil, domerrors.ErrLLMBudgetExhausted
	}
	return e.next.Extract(ctx, query, history, prev)
}
