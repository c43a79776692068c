package domain

import "time"

// Report is the full output of a compliance run, consumed by renderers.
type Report struct {
	ProjectPath  string             `json:"project_path"`
	Run          RunResult          `json:"run"`
	Entry        *HistoryEntry      `json:"history_entry,omitempty"`
	HistoryError string             `json:"history_error,omitempty"`
	HistoryStats LoadStats          `json:"history_stats"`
	Trends       *TrendReport       `json:"trends,omitempty"`
	Performance  *PerformanceReport `json:"performance,omitempty"`
	Metrics      RunMetrics         `json:"metrics"`
	Disabled     []string           `json:"disabled_rules,omitempty"`
	GeneratedAt  time.Time          `json:"generated_at"`
}

// RiskLevel is a coarse risk classification ordered LOW < MEDIUM < HIGH.
type RiskLevel int

const (
	RiskLow RiskLevel = iota
	RiskMedium
	RiskHigh
)

func (r RiskLevel) String() string {
	switch r {
	case RiskHigh:
		return "HIGH"
	case RiskMedium:
		return "MEDIUM"
	default:
		return "LOW"
	}
}

// MarshalText renders the level by name.
func (r RiskLevel) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText parses a level by name; unknown names are LOW.
func (r *RiskLevel) UnmarshalText(b []byte) error {
	switch string(b) {
	case "HIGH":
		*r = RiskHigh
	case "MEDIUM":
		*r = RiskMedium
	default:
		*r = RiskLow
	}
	return nil
}

// MaxRisk returns the more severe of two levels.
func MaxRisk(a, b RiskLevel) RiskLevel {
	if b > a {
		return b
	}
	return a
}

// RiskAssessment is a risk level plus the rules that triggered it.
type RiskAssessment struct {
	Level   RiskLevel `json:"level"`
	Reasons []string  `json:"reasons,omitempty"`
}

// SeriesSummary holds descriptive statistics of a series.
type SeriesSummary struct {
	Count   int     `json:"count"`
	Current float64 `json:"current"`
	Mean    float64 `json:"mean"`
	Median  float64 `json:"median"`
	StdDev  float64 `json:"std_dev"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Slope   float64 `json:"slope"`
	Pattern string  `json:"pattern"`
}

// Outlier is a history point outside the IQR fences.
type Outlier struct {
	Index     int     `json:"index"`
	RunID     string  `json:"run_id,omitempty"`
	Timestamp string  `json:"timestamp,omitempty"`
	Value     float64 `json:"value"`
}

// Prediction is a short-horizon score forecast. Confidence is a heuristic
// derived from recent volatility, not a statistical interval.
type Prediction struct {
	DaysAhead  int     `json:"days_ahead"`
	Score      float64 `json:"score"`
	Confidence float64 `json:"confidence"`
}

// StandardTrend tracks one standard's pass rate across history.
type StandardTrend struct {
	Standard  string  `json:"standard"`
	Current   float64 `json:"current"`
	Slope     float64 `json:"slope"`
	Direction string  `json:"direction"`
}

// TrendReport is the statistical analysis of a project's history.
type TrendReport struct {
	Entries     int             `json:"entries"`
	Scores      SeriesSummary   `json:"scores"`
	Violations  SeriesSummary   `json:"violations"`
	Direction   string          `json:"direction"`
	Outliers    []Outlier       `json:"outliers"`
	Correlation float64         `json:"correlation"`
	Prediction  Prediction      `json:"prediction"`
	Standards   []StandardTrend `json:"standards,omitempty"`
	Risk        RiskAssessment  `json:"risk"`
}

// PerformanceStatus classifies observed timing against a baseline.
type PerformanceStatus string

const (
	PerformanceFast   PerformanceStatus = "fast"
	PerformanceNormal PerformanceStatus = "normal"
	PerformanceSlow   PerformanceStatus = "slow"
)

// BucketPerformance compares one bucket's observed timings to its baseline.
type BucketPerformance struct {
	Bucket   string            `json:"bucket"`
	Files    int               `json:"files"`
	AvgMs    float64           `json:"avg_ms"`
	MinMs    float64           `json:"min_ms"`
	MaxMs    float64           `json:"max_ms"`
	Baseline Baseline          `json:"baseline"`
	Status   PerformanceStatus `json:"status"`
}

// PerformanceReport classifies a run's timings against baselines.
type PerformanceReport struct {
	Sizes      []BucketPerformance `json:"sizes"`
	Categories []BucketPerformance `json:"categories,omitempty"`
	SlowFiles  []FileTiming        `json:"slow_files,omitempty"`
}

// CheckReport is the result of evaluating a single file.
type CheckReport struct {
	Path     string     `json:"path"`
	Result   FileResult `json:"result"`
	Score    float64    `json:"score"`
	Disabled []string   `json:"disabled_rules,omitempty"`
}

// HistoryReport lists stored entries with load diagnostics.
type HistoryReport struct {
	Entries []HistoryEntry `json:"entries"`
	Stats   LoadStats      `json:"stats"`
}
