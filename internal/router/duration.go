package router

import (
	"strconv"

	"github.com/studygate/partner-bot-go/internal/slots"
)

// ParseDuration extracts a study-duration target from normalized text.
// Returns the duration as a year fraction plus its constraint, or ok=false
// if the text carries no duration.
//
// A constraint keyword is detected first (exact/approx/min/max synonym
// groups), then a number+unit pair is converted: months/12, weeks/52,
// years as-is, semesters*0.5. A bare number with a constraint keyword is
// treated as years. A bare number without any constraint is ignored.
func ParseDuration(text string) (years float64, constraint slots.DurationConstraint, ok bool) {
	var found slots.DurationConstraint
	switch {
	case durationExact.MatchString(text):
		found = slots.ConstraintExact
	case durationApprox.MatchString(text):
		found = slots.ConstraintApprox
	case durationMin.MatchString(text):
		found = slots.ConstraintMin
	case durationMax.MatchString(text):
		found = slots.ConstraintMax
	}

	for _, unit := range durationUnits {
		m := unit.pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		value, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		if found == "" {
			found = slots.ConstraintExact
		}
		return value * unit.toYears, found, true
	}

	// Bare number, only meaningful alongside an explicit constraint.
	if found != "" {
		if m := bareNumber.FindStringSubmatch(text); m != nil {
			value, err := strconv.ParseFloat(m[1], 64)
			if err == nil {
				return value, found, true
			}
		}
	}

	return 0, "", false
}
