package analytics

import (
	"fmt"

	"github.com/wtthornton/tappscheck/internal/domain"
)

// Risk thresholds.
const (
	riskMediumScore       = 85.0
	riskHighScore         = 70.0
	riskVolatility        = 15.0
	riskViolationSlope    = 2.0
	riskRecentDrop        = 10.0
	riskRecentWindow      = 3
	reasonInsufficientRun = "insufficient history"
)

// AssessRisk classifies a history as LOW, MEDIUM, or HIGH. Each rule is
// evaluated independently and the level is the maximum of what the rules
// produce, so adding a trigger never lowers the result.
func AssessRisk(scores, violations []float64) domain.RiskAssessment {
	if len(scores) < 2 {
		return domain.RiskAssessment{Level: domain.RiskLow, Reasons: []string{reasonInsufficientRun}}
	}

	ra := domain.RiskAssessment{Level: domain.RiskLow}
	raise := func(level domain.RiskLevel, reason string) {
		ra.Level = domain.MaxRisk(ra.Level, level)
		ra.Reasons = append(ra.Reasons, reason)
	}

	avg := Mean(scores)
	switch {
	case avg < riskHighScore:
		raise(domain.RiskHigh, fmt.Sprintf("average score %.1f below %.0f", avg, riskHighScore))
	case avg < riskMediumScore:
		raise(domain.RiskMedium, fmt.Sprintf("average score %.1f below %.0f", avg, riskMediumScore))
	}

	if sd := StdDev(scores); sd > riskVolatility {
		raise(domain.RiskMedium, fmt.Sprintf("score volatility %.1f above %.0f", sd, riskVolatility))
	}

	if slope := Trend(violations); slope > riskViolationSlope {
		raise(domain.RiskHigh, fmt.Sprintf("violations rising by %.1f per run", slope))
	}

	for _, s := range lastN(scores, riskRecentWindow) {
		if s < avg-riskRecentDrop {
			raise(domain.RiskMedium, fmt.Sprintf("recent score %.1f more than %.0f below average %.1f", s, riskRecentDrop, avg))
			break
		}
	}

	return ra
}
