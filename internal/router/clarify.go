package router

import (
	"strings"

	"github.com/studygate/partner-bot-go/internal/slots"
)

// Clarifying questions, keyed by the situation that triggers them.
const (
	questionDegreeAndIntake = "Which level (Language/Bachelor/Master/PhD) and which intake (March/September)?"
	questionDegreeAndMajor  = "Which degree level and which subject/major?"
	questionTarget          = "Which university or which program (degree + major)?"
	questionDegree          = "Which degree level (Language/Bachelor/Master/PhD)?"
	questionFeeTarget       = "Which university/program/intake should I calculate for?"
)

// NeedsClarification reports whether the intent's mandatory slots are still
// missing and, if so, marks the state pending and returns the question to
// ask. A wants-earliest query with no intake never triggers a question; the
// lookup orders by deadline instead.
func NeedsClarification(state *slots.QueryState) (bool, string) {
	switch state.Intent {
	case slots.IntentListUniversities:
		if state.DegreeLevel == "" && state.IntakeTerm == "" && state.City == "" && state.Province == "" {
			state.SetPending(slots.SlotDegreeLevel)
			return true, questionDegreeAndIntake
		}
	case slots.IntentListPrograms:
		if state.DegreeLevel == "" && state.MajorQuery == "" {
			state.SetPending(slots.SlotDegreeLevel)
			return true, questionDegreeAndMajor
		}
	case slots.IntentAdmissionRequirements:
		if !state.HasTarget() {
			state.SetPending(slots.SlotTarget)
			return true, questionTarget
		}
	case slots.IntentScholarship:
		if state.DegreeLevel == "" {
			state.SetPending(slots.SlotDegreeLevel)
			return true, questionDegree
		}
	case slots.IntentFees, slots.IntentComparison:
		if state.UniversityQuery == "" && state.MajorQuery == "" {
			state.SetPending(slots.SlotTarget)
			return true, questionFeeTarget
		}
	}
	return false, ""
}

// DetectClarificationMode inspects the tail of the conversation for a
// clarifying question from the assistant. Callers that resend pending_slot
// do not need this; it covers callers that only replay the transcript.
func DetectClarificationMode(history []slots.ConversationTurn) (bool, string) {
	if len(history) < 2 {
		return false, ""
	}

	start := len(history) - 4
	if start < 0 {
		start = 0
	}
	var lastAssistant string
	for i := len(history) - 1; i >= start; i-- {
		if history[i].Role == slots.RoleAssistant {
			lastAssistant = strings.ToLower(history[i].Text)
			break
		}
	}
	if lastAssistant == "" {
		return false, ""
	}

	for _, q := range clarificationQuestions {
		if q.pattern.MatchString(lastAssistant) {
			return true, q.slot
		}
	}
	return false, ""
}

// resolvePending handles the reply to a clarifying question without running
// either extraction stage. The prior intent, flags, and slots carry over
// unchanged; only the pending slot may be filled. On success the pending
// marker clears and confidence is absolute. On failure the marker stays so
// the caller can ask again.
func resolvePending(raw string, prev *slots.QueryState) *slots.QueryState {
	state := slots.New()
	state.CopyIntentFlags(prev)
	state.CopySlots(prev)

	filled := false
	switch prev.PendingSlot {
	case slots.SlotDegreeLevel, slots.SlotTarget:
		if degree := MatchDegreeLevel(raw); degree != "" {
			state.DegreeLevel = degree
			state.MajorQuery = ""
			filled = true
		} else if prev.PendingSlot == slots.SlotTarget {
			filled = fillTarget(raw, state)
		}
	case slots.SlotIntakeTerm:
		normalized := Normalize(raw)
		switch {
		case marchTerm.MatchString(normalized):
			state.IntakeTerm = "March"
			filled = true
		case septemberTerm.MatchString(normalized):
			state.IntakeTerm = "September"
			filled = true
		}
	case slots.SlotMajorQuery:
		normalized := Normalize(raw)
		cleaned := strings.TrimSpace(majorCleanup.ReplaceAllString(normalized, ""))
		cleaned = strings.Join(strings.Fields(cleaned), " ")
		if len(cleaned) > 2 && !isDegreeWord(cleaned) {
			state.MajorQuery = cleaned
			filled = true
		}
	}

	if filled {
		state.ClearPending()
		state.Confidence = 1.0
	} else {
		state.SetPending(prev.PendingSlot)
	}
	return state
}

// fillTarget treats a clarification reply as a university or program name.
// Capitalized names are tried first; otherwise the reply itself becomes the
// free-text query for the catalog matcher to resolve.
func fillTarget(raw string, state *slots.QueryState) bool {
	for _, pattern := range universityNamePatterns {
		if m := pattern.FindStringSubmatch(raw); m != nil {
			candidate := strings.TrimSpace(m[len(m)-1])
			if len(candidate) > 3 {
				state.UniversityQuery = candidate
				return true
			}
		}
	}
	normalized := Normalize(raw)
	cleaned := strings.TrimSpace(majorCleanup.ReplaceAllString(normalized, ""))
	cleaned = strings.Join(strings.Fields(cleaned), " ")
	if len(cleaned) > 2 && !isDegreeWord(cleaned) {
		state.UniversityQuery = strings.TrimSpace(raw)
		return true
	}
	return false
}
