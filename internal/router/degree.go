package router

import (
	"strings"

	"github.com/studygate/partner-bot-go/internal/stringutil"
)

// MatchDegreeLevel maps a short noisy utterance to a canonical degree level.
// Returns "" when the input is longer than two tokens or nothing clears the
// similarity threshold.
//
// Literal abbreviation families are tried first (bsc/msc/phd/...); only when
// none match is similarity scoring applied against every degree synonym, and
// the best candidate accepted only at ratio >= DegreeMatchThreshold.
//
// The clarification fast-path calls this directly on raw replies, so it must
// normalize its own input.
func MatchDegreeLevel(text string) string {
	normalized := strings.TrimSpace(stringutil.StripPunctuation(Normalize(text)))
	if normalized == "" {
		return ""
	}

	// Whole-utterance matcher only: degree replies are one or two tokens.
	if len(strings.Fields(normalized)) > 2 {
		return ""
	}

	for _, lit := range degreeLiterals {
		if lit.pattern.MatchString(normalized) {
			return lit.level
		}
	}

	bestLevel := ""
	bestScore := 0.0
	for level, variants := range degreeSynonyms {
		for _, variant := range variants {
			if score := stringutil.Ratio(normalized, variant); score > bestScore {
				bestScore = score
				bestLevel = level
			}
		}
	}

	if bestScore >= DegreeMatchThreshold {
		return bestLevel
	}
	return ""
}

// isDegreeWord reports whether candidate is a degree synonym, exactly or by
// fuzzy similarity. Used to keep degree terms out of the major slot.
func isDegreeWord(candidate string) bool {
	candidate = strings.ToLower(strings.TrimSpace(candidate))
	if candidate == "" {
		return false
	}
	if degreeWords[candidate] {
		return true
	}
	for _, word := range strings.Fields(candidate) {
		if degreeWords[word] {
			return true
		}
	}
	for word := range degreeWords {
		if stringutil.Ratio(candidate, word) >= DegreeMatchThreshold {
			return true
		}
	}
	return false
}
