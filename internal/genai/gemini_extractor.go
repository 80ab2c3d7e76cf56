// This file contains the Gemini implementation of slot extraction.
package genai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/studygate/partner-bot-go/internal/slots"
)

// geminiSlotExtractor implements SlotExtractor using the official Gemini SDK.
type geminiSlotExtractor struct {
	client *genai.Client
	model  string
}

// newGeminiSlotExtractor creates a new Gemini-based extractor.
// Returns nil if apiKey is empty (extraction disabled for this provider).
func newGeminiSlotExtractor(ctx context.Context, apiKey, model string) (*geminiSlotExtractor, error) {
	if apiKey == "" {
		return nil, nil //nolint:nilnil // Intentional: provider disabled when no API key
	}

	if model == "" {
		model = DefaultGeminiModels[0]
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &geminiSlotExtractor{
		client: client,
		model:  model,
	}, nil
}

// Extract sends the extraction prompt and decodes the JSON reply.
func (e *geminiSlotExtractor) Extract(ctx context.Context, query string, history []slots.ConversationTurn, _ *slots.QueryState) (*slots.QueryState, error) {
	if e == nil || e.client == nil {
		return nil, errors.New("slot extractor is nil")
	}

	prompt := BuildExtractionPrompt(appendCurrentTurn(history, query))

	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(extractionSystemPrompt, genai.RoleUser),
		Temperature:       genai.Ptr[float32](0.0), // deterministic extraction
		MaxOutputTokens:   512,
		ResponseMIMEType:  "application/json",
	}

	start := time.Now()
	resp, err := e.client.Models.GenerateContent(ctx, e.model, genai.Text(prompt), config)
	duration := time.Since(start)

	if err != nil {
		slog.WarnContext(ctx, "slot extraction API call failed",
			"provider", "gemini",
			"model", e.model,
			"duration_ms", duration.Milliseconds(),
			"error", err)
		return nil, fmt.Errorf("generate content failed: %w", err)
	}

	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, errors.New("empty response from model")
	}

	var content strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part.Text != "" {
			content.WriteString(part.Text)
		}
	}

	state, err := DecodeExtraction(content.String())
	if err != nil {
		return nil, fmt.Errorf("decode extraction: %w", err)
	}

	if resp.UsageMetadata != nil {
		slog.DebugContext(ctx, "slot extraction completed",
			"provider", "gemini",
			"model", e.model,
			"input_tokens", resp.UsageMetadata.PromptTokenCount,
			"output_tokens", resp.UsageMetadata.CandidatesTokenCount,
			"duration_ms", duration.Milliseconds(),
			"intent", state.Intent)
	}

	return state, nil
}

// IsEnabled returns true if the extractor is enabled.
func (e *geminiSlotExtractor) IsEnabled() bool {
	return e != nil && e.client != nil
}

// Provider returns the provider type for this extractor.
func (e *geminiSlotExtractor) Provider() Provider {
	return ProviderGemini
}

// Close releases resources held by the extractor.
// genai.Client is stateless and doesn't require explicit closure.
func (e *geminiSlotExtractor) Close() error {
	return nil
}
