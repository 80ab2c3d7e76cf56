package genai

import (
	"strings"
	"testing"

	"github.com/studygate/partner-bot-go/internal/slots"
)

func TestBuildExtractionPrompt(t *testing.T) {
	history := []slots.ConversationTurn{
		{Role: slots.RoleUser, Text: "show me masters programs"},
		{Role: slots.RoleAssistant, Text: "Which field of study are you interested in?"},
		{Role: slots.RoleUser, Text: "computer science"},
	}

	prompt := BuildExtractionPrompt(history)

	if !strings.Contains(prompt, `"intent"`) {
		t.Error("prompt missing schema")
	}
	if !strings.Contains(prompt, "user: show me masters programs") {
		t.Error("prompt missing first user turn")
	}
	if !strings.Contains(prompt, "assistant: Which field of study") {
		t.Error("prompt missing assistant turn")
	}
	if !strings.HasSuffix(prompt, "Output ONLY valid JSON, no other text:") {
		t.Error("prompt missing trailing instruction")
	}

	// transcript must come after the schema
	schemaIdx := strings.Index(prompt, `"intent"`)
	turnIdx := strings.Index(prompt, "user: show me")
	if turnIdx < schemaIdx {
		t.Error("transcript appears before schema")
	}
}

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"bare json", `{"intent": "FEES"}`, `{"intent": "FEES"}`},
		{"json fence", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"plain fence", "```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"surrounding whitespace", "  \n{\"a\": 1}\n  ", `{"a": 1}`},
		{"fence without newline", "```json{\"a\": 1}```", `{"a": 1}`},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripCodeFence(tt.content); got != tt.want {
				t.Errorf("StripCodeFence(%q) = %q, want %q", tt.content, got, tt.want)
			}
		})
	}
}

func TestAppendCurrentTurn(t *testing.T) {
	history := []slots.ConversationTurn{
		{Role: slots.RoleUser, Text: "hi"},
	}

	got := appendCurrentTurn(history, "fees for MBBS")
	if len(got) != 2 || got[1].Text != "fees for MBBS" {
		t.Fatalf("appendCurrentTurn did not append: %v", got)
	}

	// no duplicate when history already ends with the query
	again := appendCurrentTurn(got, "fees for MBBS")
	if len(again) != 2 {
		t.Errorf("appendCurrentTurn duplicated the turn: %v", again)
	}
}
