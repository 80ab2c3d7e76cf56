// This file contains the unified OpenAI-compatible slot extractor. It works
// with any OpenAI-compatible provider (Groq, Cerebras) via custom BaseURL.
package genai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/studygate/partner-bot-go/internal/slots"
)

// openaiSlotExtractor implements SlotExtractor over an OpenAI-compatible API.
type openaiSlotExtractor struct {
	client   openai.Client
	model    string
	provider Provider
}

// newOpenAISlotExtractor creates a new OpenAI-compatible extractor.
// Returns nil if apiKey is empty (extraction disabled for this provider).
func newOpenAISlotExtractor(provider Provider, apiKey, model string) (*openaiSlotExtractor, error) {
	if apiKey == "" {
		return nil, nil //nolint:nilnil // Intentional: provider disabled when no API key
	}

	baseURL, ok := ProviderEndpoint[provider]
	if !ok {
		return nil, fmt.Errorf("unsupported OpenAI-compatible provider: %s", provider)
	}

	if model == "" {
		switch provider {
		case ProviderGroq:
			model = DefaultGroqModels[0]
		case ProviderCerebras:
			model = DefaultCerebrasModels[0]
		default:
			return nil, fmt.Errorf("no default model for provider: %s", provider)
		}
	}

	client := openai.NewClient(
		option.WithBaseURL(baseURL),
		option.WithAPIKey(apiKey),
	)

	return &openaiSlotExtractor{
		client:   client,
		model:    model,
		provider: provider,
	}, nil
}

// Extract sends the extraction prompt and decodes the JSON reply.
func (e *openaiSlotExtractor) Extract(ctx context.Context, query string, history []slots.ConversationTurn, _ *slots.QueryState) (*slots.QueryState, error) {
	if e == nil {
		return nil, errors.New("slot extractor is nil")
	}

	prompt := BuildExtractionPrompt(appendCurrentTurn(history, query))

	params := openai.ChatCompletionNewParams{
		Model: e.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(extractionSystemPrompt),
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(0.0), // deterministic extraction
		MaxTokens:   openai.Int(512),
	}

	start := time.Now()
	resp, err := e.client.Chat.Completions.New(ctx, params)
	duration := time.Since(start)

	if err != nil {
		slog.WarnContext(ctx, "slot extraction API call failed",
			"provider", e.provider,
			"model", e.model,
			"duration_ms", duration.Milliseconds(),
			"error", err)
		wrapped := fmt.Errorf("chat completion failed: %w", err)
		var apiErr *openai.Error
		if !errors.As(err, &apiErr) {
			return nil, WrapError(wrapped, e.provider, 0)
		}
		llmErr := &LLMError{
			Err:        wrapped,
			StatusCode: apiErr.StatusCode,
			Provider:   e.provider,
		}
		if apiErr.Response != nil {
			llmErr.RetryAfter = ParseRetryAfter(apiErr.Response.Header)
		}
		llmErr.Retryable = ClassifyError(llmErr) == ActionRetry
		return nil, llmErr
	}

	if len(resp.Choices) == 0 {
		return nil, errors.New("empty response from model")
	}

	state, err := DecodeExtraction(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, fmt.Errorf("decode extraction: %w", err)
	}

	if resp.Usage.TotalTokens > 0 {
		slog.DebugContext(ctx, "slot extraction completed",
			"provider", e.provider,
			"model", e.model,
			"input_tokens", resp.Usage.PromptTokens,
			"output_tokens", resp.Usage.CompletionTokens,
			"duration_ms", duration.Milliseconds(),
			"intent", state.Intent)
	}

	return state, nil
}

// IsEnabled returns true if the extractor is enabled.
func (e *openaiSlotExtractor) IsEnabled() bool {
	return e != nil
}

// Provider returns the provider type for this extractor.
func (e *openaiSlotExtractor) Provider() Provider {
	if e == nil {
		return ""
	}
	return e.provider
}

// Close releases resources held by the extractor.
// Safe to call on nil receiver.
func (e *openaiSlotExtractor) Close() error {
	// openai-go client doesn't require cleanup
	return nil
}

// appendCurrentTurn ensures the newest user message is part of the rendered
// transcript; some callers pass a history that already ends with it.
func appendCurrentTurn(history []slots.ConversationTurn, query string) []slots.ConversationTurn {
	if n := len(history); n > 0 && history[n-1].Role == slots.RoleUser && history[n-1].Text == query {
		return history
	}
	out := make([]slots.ConversationTurn, 0, len(history)+1)
	out = append(out, history...)
	return append(out, slots.ConversationTurn{Role: slots.RoleUser, Text: query})
}
