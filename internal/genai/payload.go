// This file maps the model's JSON reply onto the slot schema.
package genai

import (
	"encoding/json"
	"strings"

	"github.com/studygate/partner-bot-go/internal/slots"
)

// extractionPayload mirrors the JSON schema the prompt demands. Pointers
// distinguish "absent" from zero values; unknown fields are ignored rather
// than rejected since model output is untrusted.
type extractionPayload struct {
	Intent            string   `json:"intent"`
	DegreeLevel       *string  `json:"degree_level"`
	MajorQuery        *string  `json:"major_query"`
	UniversityQuery   *string  `json:"university_query"`
	TeachingLanguage  *string  `json:"teaching_language"`
	IntakeTerm        *string  `json:"intake_term"`
	IntakeYear        *int     `json:"intake_year"`
	DurationYears     *float64 `json:"duration_years_target"`
	DurationBound     *string  `json:"duration_constraint"`
	WantsRequirements bool     `json:"wants_requirements"`
	WantsFees         bool     `json:"wants_fees"`
	WantsScholarship  bool     `json:"wants_scholarship"`
	WantsList         bool     `json:"wants_list"`
	PageAction        *string  `json:"page_action"`
	City              *string  `json:"city"`
	Province          *string  `json:"province"`
	Country           *string  `json:"country"`
	BudgetMax         *float64 `json:"budget_max"`
	WantsEarliest     bool     `json:"wants_earliest"`
}

// validDegreeLevels are the degree values the model may emit. "Non-degree"
// is an alias the prompt allows; it folds into Language.
var validDegreeLevels = map[string]string{
	"Bachelor":   slots.DegreeBachelor,
	"Master":     slots.DegreeMaster,
	"PhD":        slots.DegreePhD,
	"Language":   slots.DegreeLanguage,
	"Non-degree": slots.DegreeLanguage,
	"Diploma":    slots.DegreeDiploma,
}

var validConstraints = map[string]slots.DurationConstraint{
	"exact":  slots.ConstraintExact,
	"min":    slots.ConstraintMin,
	"max":    slots.ConstraintMax,
	"approx": slots.ConstraintApprox,
}

var validPageActions = map[string]slots.PageAction{
	"none":  slots.PageNone,
	"next":  slots.PageNext,
	"prev":  slots.PagePrev,
	"first": slots.PageFirst,
}

// DecodeExtraction parses a model reply (with or without a code fence) into
// a fresh state. Schema violations in individual fields are dropped, not
// fatal; only unparseable JSON is an error.
func DecodeExtraction(content string) (*slots.QueryState, error) {
	var payload extractionPayload
	if err := json.Unmarshal([]byte(StripCodeFence(content)), &payload); err != nil {
		return nil, err
	}
	return payload.toState(), nil
}

func (p *extractionPayload) toState() *slots.QueryState {
	state := slots.New()

	if intent := slots.Intent(p.Intent); intent.Valid() {
		state.Intent = intent
	}

	if p.DegreeLevel != nil {
		if level, ok := validDegreeLevels[*p.DegreeLevel]; ok {
			state.DegreeLevel = level
		}
	}
	state.MajorQuery = cleanString(p.MajorQuery)
	state.UniversityQuery = cleanString(p.UniversityQuery)

	// "Any" means no preference; treat it as the slot being unset.
	if lang := cleanString(p.TeachingLanguage); lang == "English" || lang == "Chinese" {
		state.TeachingLanguage = lang
	}
	if term := cleanString(p.IntakeTerm); term == "March" || term == "September" {
		state.IntakeTerm = term
	}

	if p.IntakeYear != nil && *p.IntakeYear > 2000 {
		state.IntakeYear = *p.IntakeYear
	}
	if p.DurationYears != nil && *p.DurationYears > 0 {
		state.DurationYears = *p.DurationYears
		if p.DurationBound != nil {
			if constraint, ok := validConstraints[*p.DurationBound]; ok {
				state.DurationBound = constraint
			}
		}
		if state.DurationBound == "" {
			state.DurationBound = slots.ConstraintExact
		}
	}

	state.WantsRequirements = p.WantsRequirements
	state.WantsFees = p.WantsFees
	state.WantsScholarship = p.WantsScholarship
	state.WantsList = p.WantsList
	state.WantsEarliest = p.WantsEarliest
	if p.WantsRequirements {
		state.ReqFocus = slots.AllRequirementFocus()
	}

	if p.PageAction != nil {
		if action, ok := validPageActions[*p.PageAction]; ok {
			state.Pagination.Action = action
		}
	}

	state.City = cleanString(p.City)
	state.Province = cleanString(p.Province)
	state.Country = cleanString(p.Country)
	if p.BudgetMax != nil && *p.BudgetMax > 0 {
		state.BudgetMax = *p.BudgetMax
	}

	return state
}

func cleanString(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
