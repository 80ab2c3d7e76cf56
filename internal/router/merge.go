package router

import (
	"strings"

	"github.com/studygate/partner-bot-go/internal/slots"
)

// bannedMajorValues are generic catalog words a rule pass sometimes leaves in
// the major slot. When the rule value is one of these, the fallback value is
// preferred.
var bannedMajorValues = map[string]bool{
	"university":   true,
	"universities": true,
	"database":     true,
	"list":         true,
	"program":      true,
	"course":       true,
	"major":        true,
	"majors":       true,
}

// mergeStates reconciles the rule pass with the fallback extraction. Rule
// values win; fallback values fill only what the rules left empty. The
// previous turn's intent is locked in unless the utterance carries an
// explicit change cue.
func mergeStates(normalized string, rules, fallback, prev *slots.QueryState) *slots.QueryState {
	merged := slots.New()

	merged.Intent = resolveIntent(normalized, rules, fallback, prev)
	if prev != nil && merged.Intent == prev.Intent {
		merged.WantsScholarship = prev.WantsScholarship
		merged.WantsFees = prev.WantsFees
		merged.WantsRequirements = prev.WantsRequirements
	}
	merged.Confidence = rules.Confidence
	if merged.Confidence < MergedConfidenceFloor {
		merged.Confidence = MergedConfidenceFloor
	}

	merged.DegreeLevel = firstNonEmpty(rules.DegreeLevel, fallback.DegreeLevel)
	merged.MajorQuery = resolveMajor(rules, fallback)
	merged.UniversityQuery = firstNonEmpty(rules.UniversityQuery, fallback.UniversityQuery)
	merged.TeachingLanguage = firstNonEmpty(rules.TeachingLanguage, fallback.TeachingLanguage)
	merged.IntakeTerm = firstNonEmpty(rules.IntakeTerm, fallback.IntakeTerm)
	merged.IntakeYear = rules.IntakeYear
	if merged.IntakeYear == 0 {
		merged.IntakeYear = fallback.IntakeYear
	}
	merged.DurationYears = rules.DurationYears
	if merged.DurationYears == 0 {
		merged.DurationYears = fallback.DurationYears
	}
	merged.DurationBound = rules.DurationBound
	if merged.DurationBound == "" {
		merged.DurationBound = fallback.DurationBound
	}

	merged.WantsRequirements = merged.WantsRequirements || rules.WantsRequirements || fallback.WantsRequirements
	merged.WantsFees = merged.WantsFees || rules.WantsFees || fallback.WantsFees
	merged.WantsFreeTuition = rules.WantsFreeTuition || fallback.WantsFreeTuition
	merged.WantsScholarship = merged.WantsScholarship || rules.WantsScholarship || fallback.WantsScholarship
	merged.WantsList = rules.WantsList || fallback.WantsList
	merged.WantsEarliest = rules.WantsEarliest || fallback.WantsEarliest

	merged.Pagination = rules.Pagination
	if merged.Pagination.Action == slots.PageNone {
		merged.Pagination.Action = fallback.Pagination.Action
	}

	merged.City = firstNonEmpty(rules.City, fallback.City)
	merged.Province = firstNonEmpty(rules.Province, fallback.Province)
	merged.Country = firstNonEmpty(rules.Country, fallback.Country)
	merged.BudgetMax = rules.BudgetMax
	if merged.BudgetMax == 0 {
		merged.BudgetMax = fallback.BudgetMax
	}

	if fallback.WantsRequirements {
		merged.ReqFocus = fallback.ReqFocus
	} else {
		merged.ReqFocus = rules.ReqFocus
	}
	if fallback.WantsScholarship {
		merged.ScholarshipFocus = fallback.ScholarshipFocus
	} else {
		merged.ScholarshipFocus = rules.ScholarshipFocus
	}

	return merged
}

// resolveIntent applies the intent lock. A previous non-general intent holds
// unless the new utterance signals a change; otherwise the rule intent wins
// over the fallback intent.
func resolveIntent(normalized string, rules, fallback, prev *slots.QueryState) slots.Intent {
	if prev != nil && prev.Intent != slots.IntentGeneral && !changeIndicators.MatchString(normalized) {
		return prev.Intent
	}
	if rules.Intent != slots.IntentGeneral {
		return rules.Intent
	}
	return fallback.Intent
}

// resolveMajor picks a major candidate and then re-applies the degree-word
// defense, since the fallback extraction is free text and may return a degree
// synonym as a subject.
func resolveMajor(rules, fallback *slots.QueryState) string {
	candidate := rules.MajorQuery
	if candidate == "" || bannedMajorValues[strings.ToLower(candidate)] {
		candidate = firstNonEmpty(fallback.MajorQuery, rules.MajorQuery)
	}
	if candidate == "" || isDegreeWord(candidate) {
		return ""
	}
	return candidate
}

// lockIntent carries a previous non-general intent onto a rules-only result
// when the utterance stayed on topic and the rules came back general.
func lockIntent(normalized string, state, prev *slots.QueryState) {
	if prev == nil || prev.Intent == slots.IntentGeneral {
		return
	}
	if !changeIndicators.MatchString(normalized) && state.Intent == slots.IntentGeneral {
		state.Intent = prev.Intent
		state.WantsScholarship = prev.WantsScholarship
		state.WantsFees = prev.WantsFees
		state.WantsRequirements = prev.WantsRequirements
	}
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
