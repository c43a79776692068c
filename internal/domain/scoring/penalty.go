package scoring

import (
	"math"

	"github.com/wtthornton/tappscheck/internal/domain"
)

// Score starts at 100, subtracts a fixed penalty per violation kind, and
// clamps to [0,100]. The reduction is a plain sum, so it does not depend on
// the order of violations.
func Score(violations []domain.Violation, p domain.Penalties) float64 {
	var deduction float64
	for _, v := range violations {
		deduction += p.For(v.Kind)
	}
	return clamp(100 - deduction)
}

// ScoreCounts computes the same score from per-kind counts. Kinds are summed
// in a fixed order so fractional penalties round identically on every run.
func ScoreCounts(counts map[domain.Kind]int, p domain.Penalties) float64 {
	var deduction float64
	for _, k := range domain.ValidKinds {
		deduction += float64(counts[k]) * p.For(k)
	}
	return clamp(100 - deduction)
}

func clamp(s float64) float64 {
	return math.Max(0, math.Min(100, s))
}

// Grade maps a score to a letter grade.
func Grade(score float64) string {
	switch {
	case score >= 90:
		return "A+"
	case score >= 80:
		return "A"
	case score >= 70:
		return "B"
	case score >= 60:
		return "C"
	case score >= 50:
		return "D"
	default:
		return "F"
	}
}

// BadgeColor maps a score to a shields.io color.
func BadgeColor(score float64) string {
	switch {
	case score >= 90:
		return "brightgreen"
	case score >= 80:
		return "green"
	case score >= 70:
		return "yellow"
	case score >= 60:
		return "orange"
	case score >= 50:
		return "red"
	default:
		return "critical"
	}
}
