package scoring

import (
	"time"

	"github.com/wtthornton/tappscheck/internal/domain"
)

// Aggregate reduces per-file results into one RunResult. It runs on a single
// goroutine after all workers have joined. Every total is a counting or sum
// reduction, so the result does not depend on how files were partitioned or
// in which order they completed; only the violation list keeps input order.
func Aggregate(results []domain.FileResult, p domain.Penalties, metrics *domain.RunMetrics) domain.RunResult {
	run := domain.RunResult{
		Violations: []domain.Violation{},
		Breakdown:  domain.NewBreakdown(),
	}

	for _, fr := range results {
		run.FilesScanned++
		if fr.Failed {
			run.FilesFailed++
		}
		run.TotalChecks += fr.Checks
		run.PassedChecks += fr.Passed
		run.Timings = append(run.Timings, fr.Timing)

		for _, st := range fr.CheckStats {
			tally(run.Breakdown.CategoryEffectiveness, st.Category, st.Passed)
			if st.Standard != "" {
				tally(run.Breakdown.StandardEffectiveness, st.Standard, st.Passed)
			}
		}

		for _, v := range fr.Violations {
			run.Violations = append(run.Violations, v)
			b := run.Breakdown
			b.BySeverity[v.Severity]++
			b.ByKind[v.Kind]++
			b.ByCategory[v.Category]++
			b.ByFile[v.File]++
			if v.Standard != "" {
				b.ByStandard[v.Standard]++
			}
			countViolation(b.CategoryEffectiveness, v.Category)
			if v.Standard != "" {
				countViolation(b.StandardEffectiveness, v.Standard)
			}
		}
	}

	finishRates(run.Breakdown.CategoryEffectiveness)
	finishRates(run.Breakdown.StandardEffectiveness)
	run.Score = ScoreCounts(run.Breakdown.ByKind, p)

	if metrics != nil {
		metrics.FilesProcessed += run.FilesScanned
		metrics.FilesFailed += run.FilesFailed
		metrics.ChecksRun += run.TotalChecks
		metrics.Violations += len(run.Violations)
		for _, t := range run.Timings {
			metrics.BytesRead += int64(t.Bytes)
		}
	}

	return run
}

// Finish stamps identity and wall-clock fields onto an aggregated run.
func Finish(run domain.RunResult, runID string, started time.Time, elapsed time.Duration) domain.RunResult {
	run.RunID = runID
	run.StartedAt = started
	run.Duration = elapsed
	return run
}

func tally(m map[string]domain.Effectiveness, key string, passed bool) {
	e := m[key]
	e.Checks++
	if passed {
		e.Passed++
	}
	m[key] = e
}

func countViolation(m map[string]domain.Effectiveness, key string) {
	e := m[key]
	e.Violations++
	m[key] = e
}

func finishRates(m map[string]domain.Effectiveness) {
	for k, e := range m {
		if e.Checks > 0 {
			e.Rate = float64(e.Passed) / float64(e.Checks) * 100
		}
		m[k] = e
	}
}
