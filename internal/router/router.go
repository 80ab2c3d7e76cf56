package router

import (
	"context"
	"strings"
	"time"

	"github.com/studygate/partner-bot-go/internal/logger"
	"github.com/studygate/partner-bot-go/internal/query"
	"github.com/studygate/partner-bot-go/internal/slots"
)

// Confidence assigned to a turn consumed in clarification mode without the
// single-word degree shortcut.
const clarifyConfidence = 0.9

// FallbackExtractor is the second extraction stage. Implementations call an
// external completion model and map its JSON reply onto the slot schema. A
// failed extraction returns an error; the router degrades to the rule result.
type FallbackExtractor interface {
	Extract(ctx context.Context, query string, history []slots.ConversationTurn, prev *slots.QueryState) (*slots.QueryState, error)
}

// ParamsBuilder projects a final state into catalog query parameters,
// resolving free-text university and major mentions along the way.
type ParamsBuilder interface {
	Build(ctx context.Context, state *slots.QueryState) (*query.Params, error)
}

// Result is the outcome of routing one turn. When NeedsClarification is set,
// Question holds what to ask and Params is nil; otherwise Params is ready for
// the catalog query layer.
type Result struct {
	State              *slots.QueryState
	NeedsClarification bool
	Question           string
	Params             *query.Params
}

// Router runs the two-stage intent and slot extraction pipeline.
type Router struct {
	fallback        FallbackExtractor
	params          ParamsBuilder
	log             *logger.Logger
	fallbackTimeout time.Duration
}

// New builds a Router. fallback may be nil, in which case low-confidence
// turns settle on the rule result alone.
func New(fallback FallbackExtractor, params ParamsBuilder, log *logger.Logger, fallbackTimeout time.Duration) *Router {
	return &Router{
		fallback:        fallback,
		params:          params,
		log:             log.WithModule("router"),
		fallbackTimeout: fallbackTimeout,
	}
}

// Route processes one conversation turn. turns is the transcript so far with
// the newest user message last; prev is the state returned for the previous
// turn, nil on the first.
func (r *Router) Route(ctx context.Context, turns []slots.ConversationTurn, prev *slots.QueryState) (*Result, error) {
	raw := latestUserText(turns)
	state := r.routeState(ctx, raw, turns, prev)

	result := &Result{State: state}
	if state.IsClarifying {
		result.NeedsClarification = true
		result.Question = pendingQuestion(state)
		return result, nil
	}

	if needs, question := NeedsClarification(state); needs {
		result.NeedsClarification = true
		result.Question = question
		return result, nil
	}

	if r.params != nil {
		params, err := r.params.Build(ctx, state)
		if err != nil {
			return nil, err
		}
		result.Params = params
	}
	return result, nil
}

// routeState is the state machine proper: clarification fast-path, then the
// rule stage, then the gated fallback stage.
func (r *Router) routeState(ctx context.Context, raw string, turns []slots.ConversationTurn, prev *slots.QueryState) *slots.QueryState {
	// A pending slot short-circuits everything. No re-classification, no
	// fallback call.
	if prev != nil && prev.PendingSlot != "" {
		return resolvePending(raw, prev)
	}

	isClarifying, pendingSlot := DetectClarificationMode(turns)
	singleDegree := MatchDegreeLevel(raw)

	// Single-word degree reply to a clarifying question: fill the slot,
	// keep everything else from the previous turn.
	if isClarifying && singleDegree != "" &&
		(pendingSlot == slots.SlotDegreeLevel || pendingSlot == slots.SlotTarget) {
		state := slots.New()
		state.CopyIntentFlags(prev)
		state.CopySlots(prev)
		state.DegreeLevel = singleDegree
		state.MajorQuery = ""
		state.Confidence = 1.0
		return state
	}

	// Any other reply while clarifying: intent stays locked, rule
	// extraction may update slots, the fallback stage stays off.
	if isClarifying && prev != nil {
		state := slots.New()
		state.CopyIntentFlags(prev)
		state.CopySlots(prev)

		rules := ExtractStage1(raw, prev)
		mergeSlotUpdates(state, rules)
		state.Confidence = clarifyConfidence
		return state
	}

	normalized := Normalize(raw)
	rules := ExtractStage1(raw, prev)

	// A whole-utterance degree match always wins the degree slot and bars
	// the major slot.
	if singleDegree != "" {
		rules.DegreeLevel = singleDegree
		rules.MajorQuery = ""
		if rules.Confidence < 0.8 {
			rules.Confidence = 0.8
		}
	}

	if rules.MajorQuery != "" && isDegreeWord(rules.MajorQuery) {
		rules.MajorQuery = ""
	}

	if r.needsFallback(normalized, singleDegree, isClarifying, rules) {
		fallback := r.extractFallback(ctx, raw, turns, prev)
		if fallback == nil {
			fallback = rules
		}
		return mergeStates(normalized, rules, fallback, prev)
	}

	lockIntent(normalized, rules, prev)
	return rules
}

// needsFallback is the gate in front of the completion model. Short messages,
// clarification turns, and whole-utterance degree matches never reach it; the
// rest go through when rule confidence is low or the intent demands a target
// the rules could not find.
func (r *Router) needsFallback(normalized, singleDegree string, isClarifying bool, rules *slots.QueryState) bool {
	if r.fallback == nil || isClarifying || singleDegree != "" {
		return false
	}
	if len(strings.Fields(normalized)) <= ShortMessageTokens {
		return false
	}
	if rules.Confidence < Stage2ConfidenceThreshold {
		return true
	}
	if rules.Intent == slots.IntentAdmissionRequirements && !rules.HasTarget() {
		return true
	}
	if rules.Intent == slots.IntentComparison && rules.UniversityQuery == "" && rules.MajorQuery == "" {
		return true
	}
	return false
}

// extractFallback calls the completion model under a bounded timeout. Any
// failure returns nil; the caller degrades to rules-only.
func (r *Router) extractFallback(ctx context.Context, raw string, turns []slots.ConversationTurn, prev *slots.QueryState) *slots.QueryState {
	ctx, cancel := context.WithTimeout(ctx, r.fallbackTimeout)
	defer cancel()

	if len(turns) > historyWindow {
		turns = turns[len(turns)-historyWindow:]
	}

	state, err := r.fallback.Extract(ctx, raw, turns, prev)
	if err != nil {
		r.log.WithError(err).Warnf("fallback extraction failed, using rule result")
		return nil
	}
	return state
}

// mergeSlotUpdates overlays freshly extracted slots onto a carried state,
// keeping the carried value wherever the new turn said nothing.
func mergeSlotUpdates(state, rules *slots.QueryState) {
	state.DegreeLevel = firstNonEmpty(rules.DegreeLevel, state.DegreeLevel)
	state.MajorQuery = firstNonEmpty(rules.MajorQuery, state.MajorQuery)
	state.UniversityQuery = firstNonEmpty(rules.UniversityQuery, state.UniversityQuery)
	state.IntakeTerm = firstNonEmpty(rules.IntakeTerm, state.IntakeTerm)
	if rules.IntakeYear != 0 {
		state.IntakeYear = rules.IntakeYear
	}
	state.TeachingLanguage = firstNonEmpty(rules.TeachingLanguage, state.TeachingLanguage)
}

// pendingQuestion maps a still-pending slot back to its question, for turns
// where the fast-path could not parse the reply and the caller must re-ask.
func pendingQuestion(state *slots.QueryState) string {
	switch state.PendingSlot {
	case slots.SlotDegreeLevel:
		return questionDegree
	case slots.SlotIntakeTerm:
		return questionDegreeAndIntake
	case slots.SlotMajorQuery:
		return questionDegreeAndMajor
	case slots.SlotTarget:
		return questionTarget
	}
	return ""
}

// latestUserText returns the text of the newest user turn.
func latestUserText(turns []slots.ConversationTurn) string {
	for i := len(turns) - 1; i >= 0; i-- {
		if turns[i].Role == slots.RoleUser {
			return turns[i].Text
		}
	}
	return ""
}
