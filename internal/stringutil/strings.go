// Package stringutil provides common string matching utilities.
package stringutil

import (
	"strings"
	"unicode"

	"github.com/agnivade/levenshtein"
)

// Ratio computes a normalized string-similarity ratio in [0,1] between a and b.
// 1.0 means identical, 0.0 means no overlap. Based on Levenshtein distance
// normalized by the longer string's rune length.
func Ratio(a, b string) float64 {
	if a == b {
		return 1.0
	}
	if a == "" || b == "" {
		return 0.0
	}

	maxLen := len([]rune(a))
	if l := len([]rune(b)); l > maxLen {
		maxLen = l
	}

	dist := levenshtein.ComputeDistance(a, b)
	return 1.0 - float64(dist)/float64(maxLen)
}

// StripPunctuation removes punctuation and symbol runes, keeping letters,
// digits and whitespace.
func StripPunctuation(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
