package router

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Normalize prepares an utterance for rule matching: NFKC normalization,
// lowercasing, collapsing runs of 3+ identical characters (typo tolerance,
// "bachelorvvvv" -> "bachelorv" -> matched as bachelor), and folding known
// synonyms into canonical wording. Pure function.
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	text = norm.NFKC.String(text)
	text = collapseRepeats(text)
	text = strings.ToLower(text)

	for _, syn := range synonymTable {
		text = syn.pattern.ReplaceAllString(text, syn.replacement)
	}

	return strings.TrimSpace(text)
}

// collapseRepeats reduces any run of three or more identical runes to a
// single rune. Digit runs are kept intact: amounts like "30000" carry
// their repeats as value, not as typos. RE2 has no backreferences, so
// this is done with a scan.
func collapseRepeats(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	var prev rune = -1
	run := 0
	var pending []rune

	flush := func() {
		if run >= 3 && !unicode.IsDigit(prev) {
			b.WriteRune(prev)
		} else {
			for _, r := range pending {
				b.WriteRune(r)
			}
		}
		pending = pending[:0]
	}

	for _, r := range s {
		if r == prev {
			run++
			pending = append(pending, r)
			continue
		}
		if prev != -1 {
			flush()
		}
		prev = r
		run = 1
		pending = append(pending[:0], r)
	}
	if prev != -1 {
		flush()
	}

	return b.String()
}
