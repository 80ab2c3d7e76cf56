// Package catalog resolves free-text university and major mentions against
// the program catalog. It holds the entity types, the fuzzy matcher, and a
// time-stamped snapshot provider that refreshes lazily from storage.
package catalog

import "time"

// University is one catalog institution.
type University struct {
	ID            int64
	Name          string
	LocalizedName string
	City          string
	Province      string
	Country       string
	Aliases       []string
}

// Major is one program offering at a university.
type Major struct {
	ID           int64
	UniversityID int64
	Name         string
	DegreeLevel  string
	Keywords     []string
}

// Snapshot is an immutable view of the catalog taken at FetchedAt.
// Consumers must not mutate it; the provider hands the same snapshot to
// concurrent callers until it expires.
type Snapshot struct {
	Universities []University
	Majors       []Major
	FetchedAt    time.Time
}

// MatchOutcome classifies a resolution attempt.
type MatchOutcome string

// Match outcomes.
const (
	// OutcomeConfident means the best candidate scored at or above the
	// confident threshold and can be used without asking the user.
	OutcomeConfident MatchOutcome = "confident"
	// OutcomeAmbiguous means close candidates exist but none is confident;
	// the caller should offer the candidates and ask the user to pick.
	OutcomeAmbiguous MatchOutcome = "ambiguous"
	// OutcomeNone means nothing scored above the ambiguity floor.
	OutcomeNone MatchOutcome = "none"
)

// UniversityMatch is one scored university candidate.
type UniversityMatch struct {
	University University
	Score      float64
}

// MajorMatch is one scored major candidate.
type MajorMatch struct {
	Major Major
	Score float64
}

// UniversityResult is the outcome of resolving a university mention.
type UniversityResult struct {
	Outcome    MatchOutcome
	Best       *University
	Candidates []UniversityMatch
}

// MajorResult is the outcome of resolving a major mention.
type MajorResult struct {
	Outcome    MatchOutcome
	Candidates []MajorMatch
}

// IDs returns the candidate major ids in score order.
func (r MajorResult) IDs() []int64 {
	ids := make([]int64, 0, len(r.Candidates))
	for _, m := range r.Candidates {
		ids = append(ids, m.Major.ID)
	}
	return ids
}
