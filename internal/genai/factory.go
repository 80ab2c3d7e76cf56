package genai

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/studygate/partner-bot-go/internal/metrics"
)

// NewSlotExtractor builds the provider failover chain from configuration.
// Providers are tried in cfg.Providers order; each link wraps the next as
// its fallback. Returns nil (not an error) when no provider is configured,
// so the router degrades to rules-only routing.
//
//nolint:nilnil // nil extractor means LLM extraction disabled
func NewSlotExtractor(ctx context.Context, cfg LLMConfig, m *metrics.Metrics) (SlotExtractor, error) {
	providers := cfg.ConfiguredProviders()
	if len(providers) == 0 {
		slog.InfoContext(ctx, "no LLM provider configured, rules-only routing")
		return nil, nil
	}

	retryCfg := cfg.RetryConfig
	if retryCfg.MaxAttempts <= 0 {
		retryCfg.MaxAttempts = DefaultMaxRetryAttempts
	}
	if retryCfg.InitialDelay <= 0 {
		retryCfg.InitialDelay = DefaultInitialRetryDelay
	}
	if retryCfg.MaxDelay <= 0 {
		retryCfg.MaxDelay = DefaultMaxRetryDelay
	}

	extractors := make([]SlotExtractor, 0, len(providers))
	for _, p := range providers {
		e, err := newProviderExtractor(ctx, p, cfg)
		if err != nil {
			return nil, fmt.Errorf("init %s extractor: %w", p, err)
		}
		if e == nil {
			continue
		}
		extractors = append(extractors, e)
	}

	if len(extractors) == 0 {
		return nil, nil //nolint:nilnil // all constructors declined, extraction disabled
	}

	// Fold right to left so the first configured provider sits outermost.
	chain := extractors[len(extractors)-1]
	for i := len(extractors) - 2; i >= 0; i-- {
		chain = NewFallbackSlotExtractor(extractors[i], chain, retryCfg, m)
	}
	if len(extractors) == 1 {
		chain = NewFallbackSlotExtractor(chain, nil, retryCfg, m)
	}

	slog.InfoContext(ctx, "slot extraction enabled",
		"providers", providers,
		"primary", extractors[0].Provider())

	return chain, nil
}

// newProviderExtractor builds a single-provider extractor using the
// provider's primary model.
func newProviderExtractor(ctx context.Context, p Provider, cfg LLMConfig) (SlotExtractor, error) {
	pc := cfg.GetProviderConfig(p)
	if pc == nil || pc.APIKey == "" {
		return nil, nil //nolint:nilnil // provider not configured
	}

	model := primaryModel(p, pc.Models)

	switch p {
	case ProviderGemini:
		e, err := newGeminiSlotExtractor(ctx, pc.APIKey, model)
		if err != nil || e == nil {
			return nil, err
		}
		return e, nil
	case ProviderGroq, ProviderCerebras:
		e, err := newOpenAISlotExtractor(p, pc.APIKey, model)
		if err != nil || e == nil {
			return nil, err
		}
		return e, nil
	default:
		return nil, fmt.Errorf("unknown provider: %s", p)
	}
}

// primaryModel returns the first configured model for a provider,
// falling back to the provider's default chain.
func primaryModel(p Provider, models []string) string {
	if len(models) > 0 && models[0] != "" {
		return models[0]
	}

	switch p {
	case ProviderGemini:
		return DefaultGeminiModels[0]
	case ProviderGroq:
		return DefaultGroqModels[0]
	case ProviderCerebras:
		return DefaultCerebrasModels[0]
	default:
		return ""
	}
}
