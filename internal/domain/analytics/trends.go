package analytics

import (
	"sort"

	"github.com/wtthornton/tappscheck/internal/domain"
)

// DefaultDaysAhead is the forecast horizon when none is given.
const DefaultDaysAhead = 7

// Options tunes Analyze.
type Options struct {
	// DaysAhead is the forecast horizon. Nil uses DefaultDaysAhead; zero
	// forecasts the current score.
	DaysAhead *int
}

// Horizon returns Options with an explicit forecast horizon.
func Horizon(days int) Options {
	return Options{DaysAhead: &days}
}

// Analyze computes the trend report for a chronological history.
func Analyze(entries []domain.HistoryEntry, opts Options) domain.TrendReport {
	days := DefaultDaysAhead
	if opts.DaysAhead != nil {
		days = max(*opts.DaysAhead, 0)
	}

	scores := domain.Scores(entries)
	violations := domain.ViolationCounts(entries)

	scoreSummary := summarize(scores)
	tr := domain.TrendReport{
		Entries:     len(entries),
		Scores:      scoreSummary,
		Violations:  summarize(violations),
		Direction:   ComplianceDirection(scoreSummary.Slope),
		Outliers:    []domain.Outlier{},
		Correlation: Correlation(scores, violations),
		Prediction: domain.Prediction{
			DaysAhead:  days,
			Score:      Predict(scores, days),
			Confidence: Confidence(scores),
		},
		Standards: standardTrends(entries),
		Risk:      AssessRisk(scores, violations),
	}

	for _, i := range Outliers(scores) {
		tr.Outliers = append(tr.Outliers, domain.Outlier{
			Index:     i,
			RunID:     entries[i].RunID,
			Timestamp: entries[i].Timestamp,
			Value:     scores[i],
		})
	}

	return tr
}

func summarize(values []float64) domain.SeriesSummary {
	s := domain.SeriesSummary{
		Count:   len(values),
		Mean:    Mean(values),
		Median:  Median(values),
		StdDev:  StdDev(values),
		Slope:   Trend(values),
		Pattern: ClassifyPattern(Trend(values)),
	}
	if len(values) == 0 {
		return s
	}
	s.Current = values[len(values)-1]
	s.Min, s.Max = values[0], values[0]
	for _, v := range values[1:] {
		if v < s.Min {
			s.Min = v
		}
		if v > s.Max {
			s.Max = v
		}
	}
	return s
}

// standardTrends tracks each standard's pass rate over the entries that
// recorded it. Standards are returned sorted by id.
func standardTrends(entries []domain.HistoryEntry) []domain.StandardTrend {
	series := make(map[string][]float64)
	for _, e := range entries {
		for std, eff := range e.StandardEffectiveness {
			series[std] = append(series[std], eff.Rate)
		}
	}
	if len(series) == 0 {
		return nil
	}

	ids := make([]string, 0, len(series))
	for id := range series {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]domain.StandardTrend, 0, len(ids))
	for _, id := range ids {
		rates := series[id]
		slope := Trend(rates)
		out = append(out, domain.StandardTrend{
			Standard:  id,
			Current:   rates[len(rates)-1],
			Slope:     slope,
			Direction: ComplianceDirection(slope),
		})
	}
	return out
}
