// This file contains the failover wrapper for cross-provider extraction.
package genai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	domerrors "github.com/studygate/partner-bot-go/internal/errors"
	"github.com/studygate/partner-bot-go/internal/metrics"
	"github.com/studygate/partner-bot-go/internal/slots"
)

// FallbackSlotExtractor wraps a primary and fallback SlotExtractor.
// It implements three-layer failover:
// 1. Model retry with backoff (same provider)
// 2. Provider fallback (primary → fallback provider)
// 3. The caller absorbs a full failure and proceeds rules-only
type FallbackSlotExtractor struct {
	primary     SlotExtractor
	fallback    SlotExtractor
	retryConfig RetryConfig
	metrics     *metrics.Metrics
}

// NewFallbackSlotExtractor creates a new failover-enabled extractor.
// If fallback is nil, only retry logic is applied to the primary provider.
// m may be nil to disable metrics.
func NewFallbackSlotExtractor(primary, fallback SlotExtractor, cfg RetryConfig, m *metrics.Metrics) *FallbackSlotExtractor {
	return &FallbackSlotExtractor{
		primary:     primary,
		fallback:    fallback,
		retryConfig: cfg,
		metrics:     m,
	}
}

// Extract tries the primary extractor first with retry, then fails over.
func (f *FallbackSlotExtractor) Extract(ctx context.Context, query string, history []slots.ConversationTurn, prev *slots.QueryState) (*slots.QueryState, error) {
	if f == nil || f.primary == nil {
		return nil, errors.New("slot extractor not configured")
	}

	start := time.Now()
	provider := f.primary.Provider()

	state, err := f.extractWithRetry(ctx, f.primary, query, history, prev)
	if err == nil {
		f.metrics.RecordLLM(provider.String(), "success", time.Since(start).Seconds())
		return state, nil
	}

	action := ClassifyError(err)
	slog.WarnContext(ctx, "primary slot extractor failed",
		"provider", provider,
		"error", err,
		"action", action,
		"duration", time.Since(start))

	if action == ActionFail || f.fallback == nil {
		f.metrics.RecordLLM(provider.String(), errorStatus(err), time.Since(start).Seconds())
		return nil, err
	}

	slog.InfoContext(ctx, "failing over to secondary provider",
		"from", provider,
		"to", f.fallback.Provider())

	fallbackStart := time.Now()
	fallbackProvider := f.fallback.Provider()

	state, err = f.extractWithRetry(ctx, f.fallback, query, history, prev)
	if err == nil {
		f.metrics.RecordLLM(fallbackProvider.String(), "success", time.Since(fallbackStart).Seconds())
		f.metrics.RecordLLMFallback(provider.String(), fallbackProvider.String(), time.Since(start).Seconds())
		return state, nil
	}

	f.metrics.RecordLLM(fallbackProvider.String(), errorStatus(err), time.Since(fallbackStart).Seconds())
	slog.ErrorContext(ctx, "all slot extractors failed",
		"primary", provider,
		"fallback", fallbackProvider,
		"error", err)

	return nil, fmt.Errorf("%w: all providers failed: %v", domerrors.ErrFallbackUnavailable, err)
}

// extractWithRetry attempts extraction with retry logic.
func (f *FallbackSlotExtractor) extractWithRetry(ctx context.Context, extractor SlotExtractor, query string, history []slots.ConversationTurn, prev *slots.QueryState) (*slots.QueryState, error) {
	var lastErr error

	for attempt := range f.retryConfig.MaxAttempts {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		state, err := extractor.Extract(ctx, query, history, prev)
		if err == nil {
			return state, nil
		}

		lastErr = err
		if ClassifyError(err) != ActionRetry {
			return nil, err
		}

		if attempt == f.retryConfig.MaxAttempts-1 {
			break
		}

		backoff := CalculateBackoff(attempt+1, f.retryConfig.InitialDelay, f.retryConfig.MaxDelay)
		var llmErr *LLMError
		if errors.As(err, &llmErr) && llmErr.RetryAfter > backoff {
			backoff = llmErr.RetryAfter
		}
		if !HasSufficientBudget(ctx, backoff) {
			return nil, fmt.Errorf("timeout during retry: %w", lastErr)
		}

		slog.DebugContext(ctx, "retrying slot extraction",
			"provider", extractor.Provider(),
			"attempt", attempt+1,
			"backoff", backoff,
			"error", err)

		if err := Sleep(ctx, backoff); err != nil {
			return nil, err
		}
	}

	return nil, lastErr
}

// IsEnabled returns true if at least one extractor is enabled.
func (f *FallbackSlotExtractor) IsEnabled() bool {
	if f == nil {
		return false
	}
	return (f.primary != nil && f.primary.IsEnabled()) ||
		(f.fallback != nil && f.fallback.IsEnabled())
}

// Provider returns the primary provider type.
func (f *FallbackSlotExtractor) Provider() Provider {
	if f == nil || f.primary == nil {
		return ""
	}
	return f.primary.Provider()
}

// Close closes both extractors.
func (f *FallbackSlotExtractor) Close() error {
	if f == nil {
		return nil
	}

	var errs []error
	if f.primary != nil {
		if err := f.primary.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if f.fallback != nil {
		if err := f.fallback.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}

// errorStatus maps an extraction error to a metric status label.
func errorStatus(err error) string {
	if err == nil {
		return "success"
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "timeout"
	}
	if errors.Is(err, context.Canceled) {
		return "canceled"
	}

	var llmErr *LLMError
	if errors.As(err, &llmErr) {
		switch {
		case llmErr.StatusCode == 429:
			return "rate_limit"
		case llmErr.StatusCode >= 500:
			return "server_error"
		}
	}

	switch ClassifyError(err) {
	case ActionFallback:
		return "quota_exhausted"
	case ActionRetry:
		return "transient_error"
	default:
		return "error"
	}
}
