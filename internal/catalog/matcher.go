// This file contains the fuzzy matcher for university and major mentions.
package catalog

import (
	"regexp"
	"sort"
	"strings"
)

// Thresholds control how match scores map to outcomes.
type Thresholds struct {
	// Confident is the minimum score for an unambiguous match.
	Confident float64
	// Ambiguous is the minimum score for a candidate worth offering.
	Ambiguous float64
}

// DefaultThresholds are the scoring cutoffs used in production.
var DefaultThresholds = Thresholds{Confident: 0.8, Ambiguous: 0.6}

const (
	// maxUniversityCandidates bounds the disambiguation list.
	maxUniversityCandidates = 3
	// maxMajorMatches bounds the candidate majors fed into the query filter.
	maxMajorMatches = 10
	// minWordOverlap is the word-overlap ratio floor for major matching.
	minWordOverlap = 0.4
)

var nonWordPattern = regexp.MustCompile(`[^\w\s&]`)

// Matcher resolves free-text mentions against a catalog snapshot.
type Matcher struct {
	thresholds Thresholds
}

// NewMatcher creates a matcher with the given thresholds. Zero thresholds
// fall back to the defaults.
func NewMatcher(t Thresholds) *Matcher {
	if t.Confident <= 0 {
		t.Confident = DefaultThresholds.Confident
	}
	if t.Ambiguous <= 0 {
		t.Ambiguous = DefaultThresholds.Ambiguous
	}
	return &Matcher{thresholds: t}
}

// MatchUniversity resolves a university mention. An exact name, alias, or
// localized-name hit short-circuits at score 1.0. Otherwise candidates are
// scored by containment plus similarity ratio, deduplicated by id keeping
// the best score, and classified by threshold.
func (m *Matcher) MatchUniversity(input string, snap *Snapshot) UniversityResult {
	query := strings.ToLower(strings.TrimSpace(input))
	if query == "" || snap == nil {
		return UniversityResult{Outcome: OutcomeNone}
	}

	var matches []UniversityMatch
	for i := range snap.Universities {
		uni := &snap.Universities[i]

		for _, name := range universityNames(uni) {
			if query == name {
				return UniversityResult{
					Outcome:    OutcomeConfident,
					Best:       uni,
					Candidates: []UniversityMatch{{University: *uni, Score: 1.0}},
				}
			}
			if strings.Contains(name, query) || strings.Contains(query, name) {
				matches = append(matches, UniversityMatch{
					University: *uni,
					Score:      containmentRatio(query, name),
				})
			}
		}
	}

	matches = dedupeUniversities(matches)
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].Score > matches[j].Score })

	if len(matches) == 0 || matches[0].Score < m.thresholds.Ambiguous {
		return UniversityResult{Outcome: OutcomeNone}
	}
	if len(matches) > maxUniversityCandidates {
		matches = matches[:maxUniversityCandidates]
	}
	if matches[0].Score >= m.thresholds.Confident {
		best := matches[0].University
		return UniversityResult{Outcome: OutcomeConfident, Best: &best, Candidates: matches}
	}
	return UniversityResult{Outcome: OutcomeAmbiguous, Candidates: matches}
}

// MatchMajors resolves a major mention, optionally filtered by university id
// and degree level. Returns up to maxMajorMatches candidates in score order.
func (m *Matcher) MatchMajors(input string, snap *Snapshot, universityID int64, degreeLevel string) MajorResult {
	query := cleanMajorText(input)
	if query == "" || snap == nil {
		return MajorResult{Outcome: OutcomeNone}
	}

	queryWords := wordSet(query)

	var matches []MajorMatch
	for i := range snap.Majors {
		major := &snap.Majors[i]
		if universityID != 0 && major.UniversityID != universityID {
			continue
		}
		if degreeLevel != "" && !strings.EqualFold(major.DegreeLevel, degreeLevel) {
			continue
		}

		name := cleanMajorText(major.Name)
		if query == name {
			matches = append(matches, MajorMatch{Major: *major, Score: 1.0})
			continue
		}

		// A short mention like "mbbs" scores low on containment against a
		// long official name but exactly on a keyword. Take the best of the
		// signals rather than the first one that fires.
		best := 0.0
		if strings.Contains(name, query) || strings.Contains(query, name) {
			best = containmentRatio(query, name)
		}
		if score, ok := keywordScore(query, major.Keywords); ok && score > best {
			best = score
		}
		if score, ok := wordOverlapScore(queryWords, wordSet(name)); ok && score > best {
			best = score
		}
		if best > 0 {
			matches = append(matches, MajorMatch{Major: *major, Score: best})
		}
	}

	matches = dedupeMajors(matches)
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].Score > matches[j].Score })
	if len(matches) > maxMajorMatches {
		matches = matches[:maxMajorMatches]
	}

	if len(matches) == 0 || matches[0].Score < m.thresholds.Ambiguous {
		return MajorResult{Outcome: OutcomeNone}
	}
	if matches[0].Score >= m.thresholds.Confident {
		return MajorResult{Outcome: OutcomeConfident, Candidates: matches}
	}
	return MajorResult{Outcome: OutcomeAmbiguous, Candidates: matches}
}

// universityNames returns all lowercase names a university can be matched on.
func universityNames(uni *University) []string {
	names := make([]string, 0, 2+len(uni.Aliases))
	names = append(names, strings.ToLower(uni.Name))
	if uni.LocalizedName != "" {
		names = append(names, strings.ToLower(uni.LocalizedName))
	}
	for _, alias := range uni.Aliases {
		if alias != "" {
			names = append(names, strings.ToLower(alias))
		}
	}
	return names
}

func keywordScore(query string, keywords []string) (float64, bool) {
	for _, keyword := range keywords {
		kw := cleanMajorText(keyword)
		if kw == "" {
			continue
		}
		if strings.Contains(kw, query) || strings.Contains(query, kw) {
			return containmentRatio(query, kw), true
		}
	}
	return 0, false
}

// wordOverlapScore requires at least two shared words and an overlap ratio
// of minWordOverlap against the longer side.
func wordOverlapScore(queryWords, nameWords map[string]struct{}) (float64, bool) {
	common := 0
	for w := range queryWords {
		if _, ok := nameWords[w]; ok {
			common++
		}
	}
	if common < 2 {
		return 0, false
	}

	longer := len(queryWords)
	if len(nameWords) > longer {
		longer = len(nameWords)
	}
	score := float64(common) / float64(longer)
	if score < minWordOverlap {
		return 0, false
	}
	return score, true
}

// containmentRatio scores a pair where one string contains the other. The
// shorter string is the whole overlap, so the score is the overlap counted
// against both lengths. A query matching most of a name scores high; a tiny
// fragment of a long name scores low.
func containmentRatio(a, b string) float64 {
	la := len([]rune(a))
	lb := len([]rune(b))
	if la+lb == 0 {
		return 0
	}
	shorter := la
	if lb < shorter {
		shorter = lb
	}
	return 2 * float64(shorter) / float64(la+lb)
}

func cleanMajorText(s string) string {
	return strings.TrimSpace(nonWordPattern.ReplaceAllString(strings.ToLower(s), ""))
}

func wordSet(s string) map[string]struct{} {
	words := make(map[string]struct{})
	for _, w := range strings.Fields(s) {
		words[w] = struct{}{}
	}
	return words
}

func dedupeUniversities(matches []UniversityMatch) []UniversityMatch {
	best := make(map[int64]UniversityMatch, len(matches))
	order := make([]int64, 0, len(matches))
	for _, m := range matches {
		prev, seen := best[m.University.ID]
		if !seen {
			order = append(order, m.University.ID)
		}
		if !seen || m.Score > prev.Score {
			best[m.University.ID] = m
		}
	}

	out := make([]UniversityMatch, 0, len(order))
	for _, id := range order {
		out = append(out, best[id])
	}
	return out
}

func dedupeMajors(matches []MajorMatch) []MajorMatch {
	best := make(map[int64]MajorMatch, len(matches))
	order := make([]int64, 0, len(matches))
	for _, m := range matches {
		prev, seen := best[m.Major.ID]
		if !seen {
			order = append(order, m.Major.ID)
		}
		if !seen || m.Score > prev.Score {
			best[m.Major.ID] = m
		}
	}

	out := make([]MajorMatch, 0, len(order))
	for _, id := range order {
		out = append(out, best[id])
	}
	return out
}
