// This file contains the extraction prompt and response cleanup helpers.
package genai

import (
	"strings"

	"github.com/studygate/partner-bot-go/internal/slots"
)

// extractionSystemPrompt forces bare-JSON replies. Some models still wrap the
// object in a markdown fence, which StripCodeFence removes.
const extractionSystemPrompt = "You are a JSON extractor. Output only valid JSON matching the exact schema."

// extractionPromptHeader describes the slot schema the model must fill.
const extractionPromptHeader = `Extract information from this conversation. Output ONLY valid JSON with these exact fields:
{
  "intent": "PAGINATION" | "LIST_UNIVERSITIES" | "LIST_PROGRAMS" | "ADMISSION_REQUIREMENTS" | "SCHOLARSHIP" | "FEES" | "COMPARISON" | "PROGRAM_DETAILS" | "GENERAL",
  "degree_level": "Language" | "Non-degree" | "Bachelor" | "Master" | "PhD" | "Diploma" | null,
  "major_query": string or null,
  "university_query": string or null,
  "teaching_language": "English" | "Chinese" | "Any" | null,
  "intake_term": "March" | "September" | "Any" | null,
  "intake_year": number or null,
  "duration_years_target": number or null,
  "duration_constraint": "exact" | "min" | "max" | "approx" | null,
  "wants_requirements": boolean,
  "wants_fees": boolean,
  "wants_scholarship": boolean,
  "wants_list": boolean,
  "page_action": "none" | "next" | "prev" | "first",
  "city": string or null,
  "province": string or null,
  "country": string or null,
  "budget_max": number or null,
  "wants_earliest": boolean
}

RULES:
- Extract ONLY what the user explicitly stated. Do NOT guess.
- For major_query: Extract subject/major (e.g., "computer science", "pharmacy"). NEVER extract "university/universities/database/list/program/course/major/majors".
- For university_query: Extract university name as written.
- For teaching_language: ONLY set if user explicitly said "English" or "Chinese".

Conversation:
`

// BuildExtractionPrompt renders the extraction prompt with the conversation
// transcript appended. The caller bounds the history window.
func BuildExtractionPrompt(history []slots.ConversationTurn) string {
	var b strings.Builder
	b.WriteString(extractionPromptHeader)
	for _, turn := range history {
		b.WriteString(string(turn.Role))
		b.WriteString(": ")
		b.WriteString(turn.Text)
		b.WriteByte('\n')
	}
	b.WriteString("\nOutput ONLY valid JSON, no other text:")
	return b.String()
}

// StripCodeFence removes a surrounding markdown code fence from a model
// reply, if present.
func StripCodeFence(content string) string {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```json") {
		content = content[len("```json"):]
	} else if strings.HasPrefix(content, "```") {
		content = content[len("```"):]
	}
	content = strings.TrimSuffix(strings.TrimSpace(content), "```")
	return strings.TrimSpace(content)
}
