package router

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercases", "Bachelor Programs", "bachelor programs"},
		{"collapses repeated runes", "bachelorvvvv", "bachelorv"},
		{"keeps double letters", "college fees", "college fees"},
		{"folds uni synonym", "show me the uni list", "show me the university list"},
		{"folds fall to september", "fall intake", "september intake"},
		{"folds autumn to september", "autumn 2026", "september 2026"},
		{"folds spring to march", "spring intake", "march intake"},
		{"folds asap to earliest", "i need it asap", "i need it earliest"},
		{"folds soonest to earliest", "soonest intake please", "earliest intake please"},
		{"no synonym inside word", "unique fees", "unique fees"},
		{"keeps amounts intact", "budget under 30000 rmb", "budget under 30000 rmb"},
		{"trims whitespace", "  phd  ", "phd"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCollapseRepeats(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"aaa", "a"},
		{"aa", "aa"},
		{"aaaa", "a"},
		{"heyyyy there", "hey there"},
		{"bookkeeper", "bookkeeper"},
		{"30000", "30000"},
		{"5000 usd", "5000 usd"},
		{"nooooo 1000", "no 1000"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := collapseRepeats(tt.input); got != tt.want {
			t.Errorf("collapseRepeats(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
