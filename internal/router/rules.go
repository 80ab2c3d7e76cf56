package router

import (
	"strconv"
	"strings"

	"github.com/studygate/partner-bot-go/internal/slots"
)

// Confidence increments for the rule stage.
const (
	intentConfidence = 0.4
	slotConfidence   = 0.2
)

// intentRule is one row of the Stage-1 intent table. Rules are evaluated in
// order; the first match wins the intent and applies its flags.
type intentRule struct {
	name  string
	match func(normalized string) bool
	apply func(normalized string, state *slots.QueryState)
}

// intentRules is the ordered Stage-1 intent table. Priority is explicit:
// pagination commands outrank everything, fees is the catch-all money rule.
var intentRules = []intentRule{
	{
		name:  "pagination",
		match: paginationPattern.MatchString,
		apply: func(normalized string, state *slots.QueryState) {
			state.Intent = slots.IntentPagination
			switch {
			case pageNextPattern.MatchString(normalized):
				state.Pagination.Action = slots.PageNext
			case pagePrevPattern.MatchString(normalized):
				state.Pagination.Action = slots.PagePrev
			case pageFirstPattern.MatchString(normalized):
				state.Pagination.Action = slots.PageFirst
			}
		},
	},
	{
		name:  "list_universities",
		match: universityPattern.MatchString,
		apply: func(_ string, state *slots.QueryState) {
			state.Intent = slots.IntentListUniversities
			state.WantsList = true
		},
	},
	{
		name: "list_programs",
		match: func(normalized string) bool {
			return programListPattern.MatchString(normalized) || programSeekPattern.MatchString(normalized)
		},
		apply: func(_ string, state *slots.QueryState) {
			state.Intent = slots.IntentListPrograms
			state.WantsList = true
		},
	},
	{
		name:  "admission_requirements",
		match: requirementPattern.MatchString,
		apply: func(normalized string, state *slots.QueryState) {
			state.Intent = slots.IntentAdmissionRequirements
			state.WantsRequirements = true
			state.ReqFocus = extractRequirementFocus(normalized)
		},
	},
	{
		name:  "scholarship",
		match: scholarshipPattern.MatchString,
		apply: func(normalized string, state *slots.QueryState) {
			state.Intent = slots.IntentScholarship
			state.WantsScholarship = true
			if cscPattern.MatchString(normalized) {
				state.ScholarshipFocus.CSC = true
				state.ScholarshipFocus.Any = false
			}
			if uniScholarPattern.MatchString(normalized) {
				state.ScholarshipFocus.University = true
				state.ScholarshipFocus.Any = false
			}
		},
	},
	{
		name:  "comparison",
		match: comparisonPattern.MatchString,
		apply: func(_ string, state *slots.QueryState) {
			state.Intent = slots.IntentComparison
			state.WantsFees = true
		},
	},
	{
		name:  "fees",
		match: feesPattern.MatchString,
		apply: func(normalized string, state *slots.QueryState) {
			state.Intent = slots.IntentFees
			state.WantsFees = true
			if freeTuition.MatchString(normalized) {
				state.WantsFreeTuition = true
			}
		},
	},
}

// extractRequirementFocus builds the focus flag set for an
// admission-requirements utterance. An umbrella mention ("requirements",
// "eligibility") with no specific sub-topic keyword lights every flag;
// otherwise only the flags whose keywords appear.
func extractRequirementFocus(normalized string) slots.RequirementFocus {
	if bareReqPattern.MatchString(normalized) && !reqSpecificPattern.MatchString(normalized) {
		return slots.AllRequirementFocus()
	}

	var focus slots.RequirementFocus
	focus.Docs = reqDocsPattern.MatchString(normalized)
	focus.Exams = reqExamsPattern.MatchString(normalized)
	focus.Bank = reqBankPattern.MatchString(normalized)
	focus.Age = reqAgePattern.MatchString(normalized)
	focus.InsideCountry = reqInsidePattern.MatchString(normalized)
	focus.Deadline = reqDeadline.MatchString(normalized)
	focus.Accommodation = reqAccommodation.MatchString(normalized)
	focus.Country = reqCountryPattern.MatchString(normalized)
	return focus
}

// ExtractStage1 runs the deterministic rule stage over one utterance.
// Intent classification walks the ordered rule table (first match wins);
// slot extraction runs regardless of which intent rule fired. Confidence
// accumulates +0.4 for an intent match and +0.2 per resolved slot, clamped
// to [0,1]. The raw (unnormalized) text is needed for university-name
// capitalization. prev may be nil on the first turn.
func ExtractStage1(raw string, prev *slots.QueryState) *slots.QueryState {
	normalized := Normalize(raw)
	state := slots.New()

	for _, rule := range intentRules {
		if rule.match(normalized) {
			rule.apply(normalized, state)
			state.AddConfidence(intentConfidence)
			break
		}
	}

	extractDegreeSlot(normalized, state)
	extractLanguageSlot(normalized, state)
	extractIntakeSlots(normalized, state)
	extractDurationSlot(normalized, state)
	extractLocationSlots(normalized, state)
	extractBudgetSlot(normalized, state)

	if earliestPattern.MatchString(normalized) {
		state.WantsEarliest = true
	}

	extractMajorSlot(normalized, state)
	extractUniversitySlot(raw, state)

	applyIntentContinuity(normalized, state, prev)

	return state
}

// applyIntentContinuity reconciles the fresh extraction against the previous
// turn. The state is built fresh each turn, so a change cue needs no slot
// clearing here; anything not re-stated is already absent. Without a change
// cue, a non-general previous intent survives a turn the rules classified
// as general.
func applyIntentContinuity(normalized string, state, prev *slots.QueryState) {
	if prev == nil || changeIndicators.MatchString(normalized) {
		return
	}
	if prev.Intent != slots.IntentGeneral && state.Intent == slots.IntentGeneral {
		state.Intent = prev.Intent
		state.WantsScholarship = prev.WantsScholarship
		state.WantsFees = prev.WantsFees
		state.WantsRequirements = prev.WantsRequirements
	}
}

func extractDegreeSlot(normalized string, state *slots.QueryState) {
	switch {
	case degreeBachelorSlot.MatchString(normalized):
		state.DegreeLevel = slots.DegreeBachelor
	case degreeMasterSlot.MatchString(normalized):
		state.DegreeLevel = slots.DegreeMaster
	case degreePhDSlot.MatchString(normalized):
		state.DegreeLevel = slots.DegreePhD
	case degreeLanguageSlot.MatchString(normalized):
		state.DegreeLevel = slots.DegreeLanguage
	case degreeDiplomaSlot.MatchString(normalized):
		state.DegreeLevel = slots.DegreeDiploma
	default:
		return
	}
	state.AddConfidence(slotConfidence)
}

func extractLanguageSlot(normalized string, state *slots.QueryState) {
	switch {
	case englishTaught.MatchString(normalized):
		state.TeachingLanguage = "English"
	case chineseTaught.MatchString(normalized):
		state.TeachingLanguage = "Chinese"
	}
}

func extractIntakeSlots(normalized string, state *slots.QueryState) {
	switch {
	case marchTerm.MatchString(normalized):
		state.IntakeTerm = "March"
		state.AddConfidence(slotConfidence)
	case septemberTerm.MatchString(normalized):
		state.IntakeTerm = "September"
		state.AddConfidence(slotConfidence)
	}

	if m := intakeYear.FindStringSubmatch(normalized); m != nil {
		if year, err := strconv.Atoi(m[1]); err == nil {
			state.IntakeYear = year
			state.AddConfidence(slotConfidence)
		}
	}
}

func extractDurationSlot(normalized string, state *slots.QueryState) {
	if years, constraint, ok := ParseDuration(normalized); ok {
		state.DurationYears = years
		state.DurationBound = constraint
		state.AddConfidence(slotConfidence)
	}
}

func extractLocationSlots(normalized string, state *slots.QueryState) {
	if m := cityPattern.FindStringSubmatch(normalized); m != nil {
		if knownCities[m[1]] {
			state.City = titleCase(m[1])
		}
	}
	if m := provincePattern.FindStringSubmatch(normalized); m != nil {
		state.Province = titleCase(m[1])
	}
}

func extractBudgetSlot(normalized string, state *slots.QueryState) {
	if m := budgetPattern.FindStringSubmatch(normalized); m != nil {
		if value, err := strconv.ParseFloat(m[2], 64); err == nil {
			state.BudgetMax = value
		}
	}
}

// extractMajorSlot pulls a subject query out of the stop-word-filtered
// remainder. Degree words are barred twice: by the word filter here and by
// the fuzzy defense in isDegreeWord. List intents never carry a major.
func extractMajorSlot(normalized string, state *slots.QueryState) {
	if state.Intent == slots.IntentListUniversities || state.Intent == slots.IntentListPrograms {
		return
	}

	var majorWords []string
	for _, word := range strings.Fields(normalized) {
		if majorStopWords[word] || degreeWords[word] || len(word) <= 2 {
			continue
		}
		majorWords = append(majorWords, word)
	}
	if len(majorWords) == 0 {
		return
	}

	cleaned := strings.TrimSpace(majorCleanup.ReplaceAllString(strings.Join(majorWords, " "), ""))
	cleaned = strings.Join(strings.Fields(cleaned), " ")
	if len(cleaned) <= 2 || isDegreeWord(cleaned) {
		return
	}

	state.MajorQuery = cleaned
	state.AddConfidence(slotConfidence)
}

// extractUniversitySlot matches capitalized institution names, so it runs on
// the raw utterance, not the lowercased normalization.
func extractUniversitySlot(raw string, state *slots.QueryState) {
	for _, pattern := range universityNamePatterns {
		m := pattern.FindStringSubmatch(raw)
		if m == nil {
			continue
		}
		candidate := strings.TrimSpace(m[len(m)-1])
		if len(candidate) > 3 {
			state.UniversityQuery = candidate
			state.AddConfidence(slotConfidence)
			return
		}
	}
}

// titleCase uppercases the first letter of each word. Gazetteer values are
// single ASCII words, so this stays simple.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
