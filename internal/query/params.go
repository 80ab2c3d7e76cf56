// Package query projects a final routed state into catalog query parameters.
// The builder resolves free-text university and major mentions against the
// catalog snapshot; the resulting Params is plain data and never queries
// anything itself.
package query

import (
	"github.com/studygate/partner-bot-go/internal/slots"
)

// Params is the filter object handed to the catalog query layer.
type Params struct {
	Intent slots.Intent `json:"intent"`

	DegreeLevel string `json:"degree_level,omitempty"`

	// MajorIDs are the resolved candidate majors in score order.
	// MajorQuery keeps the raw text when no catalog major matched.
	MajorIDs   []int64 `json:"major_ids,omitempty"`
	MajorQuery string  `json:"major_query,omitempty"`

	// UniversityID is set when the mention resolved confidently;
	// UniversityName then carries the canonical catalog name.
	UniversityID   int64  `json:"university_id,omitempty"`
	UniversityName string `json:"university_name,omitempty"`

	TeachingLanguage string `json:"teaching_language,omitempty"`

	IntakeTerm string `json:"intake_term,omitempty"`
	IntakeYear int    `json:"intake_year,omitempty"`

	DurationYears float64                  `json:"duration_years,omitempty"`
	DurationBound slots.DurationConstraint `json:"duration_constraint,omitempty"`

	City     string `json:"city,omitempty"`
	Province string `json:"province,omitempty"`
	Country  string `json:"country,omitempty"`

	BudgetMax float64 `json:"budget_max,omitempty"`

	WantsRequirements bool `json:"wants_requirements,omitempty"`
	WantsFees         bool `json:"wants_fees,omitempty"`
	WantsFreeTuition  bool `json:"wants_free_tuition,omitempty"`
	WantsScholarship  bool `json:"wants_scholarship,omitempty"`
	WantsList         bool `json:"wants_list,omitempty"`
	WantsEarliest     bool `json:"wants_earliest,omitempty"`

	ReqFocus         slots.RequirementFocus `json:"req_focus"`
	ScholarshipFocus slots.ScholarshipFocus `json:"scholarship_focus"`

	Pagination slots.Pagination `json:"pagination"`
}

// project copies the state fields that map one-to-one onto Params.
// University and major resolution happen in the builder.
func project(state *slots.QueryState) *Params {
	return &Params{
		Intent:            state.Intent,
		DegreeLevel:       state.DegreeLevel,
		TeachingLanguage:  state.TeachingLanguage,
		IntakeTerm:        state.IntakeTerm,
		IntakeYear:        state.IntakeYear,
		DurationYears:     state.DurationYears,
		DurationBound:     state.DurationBound,
		City:              state.City,
		Province:          state.Province,
		Country:           state.Country,
		BudgetMax:         state.BudgetMax,
		WantsRequirements: state.WantsRequirements,
		WantsFees:         state.WantsFees,
		WantsFreeTuition:  state.WantsFreeTuition,
		WantsScholarship:  state.WantsScholarship,
		WantsList:         state.WantsList,
		WantsEarliest:     state.WantsEarliest,
		ReqFocus:          state.ReqFocus,
		ScholarshipFocus:  state.ScholarshipFocus,
		Pagination:        state.Pagination,
	}
}
