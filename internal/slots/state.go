// Package slots defines the closed slot schema shared by the rule stage,
// the LLM extraction stage, and the query parameter builder. Every slot a
// partner query can carry is a named field here, so merging and invalidation
// are forced through the same typed rules.
package slots

// Intent is the coarse task classification of one utterance.
type Intent string

// Closed intent set. First-match-wins rule evaluation uses this order.
const (
	IntentPagination            Intent = "PAGINATION"
	IntentListUniversities      Intent = "LIST_UNIVERSITIES"
	IntentListPrograms          Intent = "LIST_PROGRAMS"
	IntentAdmissionRequirements Intent = "ADMISSION_REQUIREMENTS"
	IntentScholarship           Intent = "SCHOLARSHIP"
	IntentFees                  Intent = "FEES"
	IntentComparison            Intent = "COMPARISON"
	IntentProgramDetails        Intent = "PROGRAM_DETAILS"
	IntentGeneral               Intent = "GENERAL"
)

// Valid reports whether i is a member of the closed intent set.
func (i Intent) Valid() bool {
	switch i {
	case IntentPagination, IntentListUniversities, IntentListPrograms,
		IntentAdmissionRequirements, IntentScholarship, IntentFees,
		IntentComparison, IntentProgramDetails, IntentGeneral:
		return true
	}
	return false
}

// Canonical degree levels produced by the fuzzy degree matcher.
const (
	DegreeBachelor = "Bachelor"
	DegreeMaster   = "Master"
	DegreePhD      = "PhD"
	DegreeLanguage = "Language"
	DegreeDiploma  = "Diploma"
)

// DurationConstraint qualifies a parsed duration target.
type DurationConstraint string

// Duration constraint values.
const (
	ConstraintExact  DurationConstraint = "exact"
	ConstraintMin    DurationConstraint = "min"
	ConstraintMax    DurationConstraint = "max"
	ConstraintApprox DurationConstraint = "approx"
)

// PageAction is a pagination command extracted from the utterance.
type PageAction string

// Page actions.
const (
	PageNone  PageAction = "none"
	PageNext  PageAction = "next"
	PagePrev  PageAction = "prev"
	PageFirst PageAction = "first"
)

// RequirementFocus narrows an admission-requirements query to sub-topics.
// A bare "requirements" question sets every flag; specific keywords set
// only the matching flags.
type RequirementFocus struct {
	Docs          bool `json:"docs"`
	Exams         bool `json:"exams"`
	Bank          bool `json:"bank"`
	Age           bool `json:"age"`
	InsideCountry bool `json:"inside_country"`
	Deadline      bool `json:"deadline"`
	Accommodation bool `json:"accommodation"`
	Country       bool `json:"country"`
}

// AllRequirementFocus returns a RequirementFocus with every flag set.
func AllRequirementFocus() RequirementFocus {
	return RequirementFocus{
		Docs:          true,
		Exams:         true,
		Bank:          true,
		Age:           true,
		InsideCountry: true,
		Deadline:      true,
		Accommodation: true,
		Country:       true,
	}
}

// Any reports whether at least one focus flag is set.
func (f RequirementFocus) Any() bool {
	return f.Docs || f.Exams || f.Bank || f.Age || f.InsideCountry ||
		f.Deadline || f.Accommodation || f.Country
}

// ScholarshipFocus narrows a scholarship query to a provider.
// Any is the default; naming a provider clears it.
type ScholarshipFocus struct {
	Any        bool `json:"any"`
	CSC        bool `json:"csc"`
	University bool `json:"university"`
}

// Pagination carries the page window for list-style intents.
type Pagination struct {
	Limit  int        `json:"limit"`
	Offset int        `json:"offset"`
	Action PageAction `json:"action"`
}

// DefaultPageLimit is the page size used when the caller supplies none.
const DefaultPageLimit = 10

// QueryState is the structured result of routing one conversation turn.
// It is rebuilt every turn from the previous state plus the new utterance
// and has no persistence of its own; cross-turn continuity is the caller's
// responsibility.
type QueryState struct {
	Intent     Intent  `json:"intent"`
	Confidence float64 `json:"confidence"`

	// Core slots. Empty string / zero means "not extracted".
	DegreeLevel      string             `json:"degree_level,omitempty"`
	MajorQuery       string             `json:"major_query,omitempty"`
	UniversityQuery  string             `json:"university_query,omitempty"`
	TeachingLanguage string             `json:"teaching_language,omitempty"`
	IntakeTerm       string             `json:"intake_term,omitempty"`
	IntakeYear       int                `json:"intake_year,omitempty"`
	DurationYears    float64            `json:"duration_years_target,omitempty"`
	DurationBound    DurationConstraint `json:"duration_constraint,omitempty"`

	// Location slots.
	City     string `json:"city,omitempty"`
	Province string `json:"province,omitempty"`
	Country  string `json:"country,omitempty"`

	// Budget ceiling in the catalog's currency.
	BudgetMax float64 `json:"budget_max,omitempty"`

	// Want flags tied to the intent.
	WantsRequirements bool `json:"wants_requirements"`
	WantsFees         bool `json:"wants_fees"`
	WantsFreeTuition  bool `json:"wants_free_tuition"`
	WantsScholarship  bool `json:"wants_scholarship"`
	WantsList         bool `json:"wants_list"`
	WantsEarliest     bool `json:"wants_earliest"`

	ReqFocus         RequirementFocus `json:"req_focus"`
	ScholarshipFocus ScholarshipFocus `json:"scholarship_focus"`
	Pagination       Pagination       `json:"pagination"`

	// Clarification state. IsClarifying is true iff PendingSlot is set.
	PendingSlot  string `json:"pending_slot,omitempty"`
	IsClarifying bool   `json:"is_clarifying"`
}

// Pending slot names used by the clarification manager.
const (
	SlotDegreeLevel = "degree_level"
	SlotIntakeTerm  = "intake_term"
	SlotMajorQuery  = "major_query"
	SlotTarget      = "target"
)

// New returns a fresh QueryState with defaults applied: general intent,
// scholarship focus "any", and the default page window.
func New() *QueryState {
	return &QueryState{
		Intent:           IntentGeneral,
		ScholarshipFocus: ScholarshipFocus{Any: true},
		Pagination:       Pagination{Limit: DefaultPageLimit, Action: PageNone},
	}
}

// AddConfidence adds delta to the confidence score, clamped to [0,1].
func (s *QueryState) AddConfidence(delta float64) {
	s.Confidence += delta
	if s.Confidence > 1.0 {
		s.Confidence = 1.0
	}
	if s.Confidence < 0 {
		s.Confidence = 0
	}
}

// SetPending marks slot as awaiting clarification.
func (s *QueryState) SetPending(slot string) {
	s.PendingSlot = slot
	s.IsClarifying = slot != ""
}

// ClearPending resets the clarification state.
func (s *QueryState) ClearPending() {
	s.PendingSlot = ""
	s.IsClarifying = false
}

// HasTarget reports whether the state identifies something to answer about:
// either a university mention or a degree level plus a major.
func (s *QueryState) HasTarget() bool {
	return s.UniversityQuery != "" || (s.DegreeLevel != "" && s.MajorQuery != "")
}

// CopyIntentFlags copies the intent and its associated want/focus flags from
// prev. Used by the intent lock and the clarification fast-path, which must
// never re-classify.
func (s *QueryState) CopyIntentFlags(prev *QueryState) {
	if prev == nil {
		return
	}
	s.Intent = prev.Intent
	s.WantsRequirements = prev.WantsRequirements
	s.WantsFees = prev.WantsFees
	s.WantsFreeTuition = prev.WantsFreeTuition
	s.WantsScholarship = prev.WantsScholarship
	s.WantsList = prev.WantsList
	s.WantsEarliest = prev.WantsEarliest
	s.ReqFocus = prev.ReqFocus
	s.ScholarshipFocus = prev.ScholarshipFocus
}

// CopySlots copies every extractable slot from prev. The clarification
// fast-path uses this to carry prior answers forward unchanged.
func (s *QueryState) CopySlots(prev *QueryState) {
	if prev == nil {
		return
	}
	s.DegreeLevel = prev.DegreeLevel
	s.MajorQuery = prev.MajorQuery
	s.UniversityQuery = prev.UniversityQuery
	s.TeachingLanguage = prev.TeachingLanguage
	s.IntakeTerm = prev.IntakeTerm
	s.IntakeYear = prev.IntakeYear
	s.DurationYears = prev.DurationYears
	s.DurationBound = prev.DurationBound
	s.City = prev.City
	s.Province = prev.Province
	s.Country = prev.Country
	s.BudgetMax = prev.BudgetMax
}

// Role identifies the author of a conversation turn.
type Role string

// Turn roles.
const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ConversationTurn is one caller-supplied message in the bounded window.
type ConversationTurn struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}
