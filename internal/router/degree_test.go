package router

import "testing"

func TestMatchDegreeLevel(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		// Literal families.
		{"bachelor", "Bachelor"},
		{"bsc", "Bachelor"},
		{"undergraduate", "Bachelor"},
		{"master", "Master"},
		{"masters", "Master"},
		{"msc", "Master"},
		{"MBA", "Master"},
		{"phd", "PhD"},
		{"Ph.D", "PhD"},
		{"doctorate", "PhD"},
		{"doctoral", "PhD"},
		{"non-degree", "Language"},
		{"foundation", "Language"},
		{"diploma", "Diploma"},
		{"associate", "Diploma"},

		// Fuzzy matches at ratio >= 0.75.
		{"bachelov", "Bachelor"},
		{"bachlor", "Bachelor"},
		{"mastr", "Master"},

		// Typo tolerance through repeat collapsing.
		{"bachelorvvvv", "Bachelor"},

		// Punctuation stripped before matching.
		{"bachelor!", "Bachelor"},
		{"phd?", "PhD"},

		// Rejections.
		{"computer science", ""},
		{"i want a bachelor degree please", ""}, // too long for a whole-utterance match
		{"xyz", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := MatchDegreeLevel(tt.input); got != tt.want {
				t.Errorf("MatchDegreeLevel(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsDegreeWord(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"master", true},
		{"bachelors", true},
		{"masterz", true}, // fuzzy
		{"business master", true},
		{"computer science", false},
		{"nursing", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := isDegreeWord(tt.input); got != tt.want {
			t.Errorf("isDegreeWord(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
