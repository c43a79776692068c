package domain

import (
	"fmt"
	"strings"
	"time"
)

// Kind classifies how a violation weighs on the compliance score.
type Kind string

const (
	KindCritical Kind = "CRITICAL"
	KindError    Kind = "ERROR"
	KindWarning  Kind = "WARNING"
)

// ValidKinds enumerates all violation kinds.
var ValidKinds = []Kind{KindCritical, KindError, KindWarning}

// ParseKind accepts a kind in any letter case.
func ParseKind(s string) (Kind, bool) {
	k := Kind(strings.ToUpper(strings.TrimSpace(s)))
	for _, v := range ValidKinds {
		if k == v {
			return k, true
		}
	}
	return "", false
}

// DefaultSeverity maps a kind to the severity used when a rule does not set one.
func (k Kind) DefaultSeverity() Severity {
	switch k {
	case KindCritical:
		return SeverityCritical
	case KindError:
		return SeverityHigh
	default:
		return SeverityMedium
	}
}

// Severity is the reporting priority of a violation.
type Severity string

const (
	SeverityCritical Severity = "CRITICAL"
	SeverityHigh     Severity = "HIGH"
	SeverityMedium   Severity = "MEDIUM"
	SeverityLow      Severity = "LOW"
)

// ValidSeverities enumerates all severities from most to least urgent.
var ValidSeverities = []Severity{SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow}

// ParseSeverity accepts a severity in any letter case.
func ParseSeverity(s string) (Severity, bool) {
	sev := Severity(strings.ToUpper(strings.TrimSpace(s)))
	for _, v := range ValidSeverities {
		if sev == v {
			return sev, true
		}
	}
	return "", false
}

// Rank orders severities; lower is more urgent.
func (s Severity) Rank() int {
	for i, v := range ValidSeverities {
		if s == v {
			return i
		}
	}
	return len(ValidSeverities)
}

// CategoryProcessing is the category of violations synthesized from read or
// evaluation failures.
const CategoryProcessing = "processing"

// Violation is a single rule-check failure on a specific file and line.
// Line 0 means the finding applies to the whole file.
type Violation struct {
	File     string   `json:"file"`
	Line     int      `json:"line"`
	Kind     Kind     `json:"kind"`
	Category string   `json:"category"`
	Message  string   `json:"message"`
	Standard string   `json:"standard"`
	Rule     string   `json:"rule"`
	Severity Severity `json:"severity"`
}

// NewViolation validates every field and returns an immutable value.
// An empty severity falls back to the kind's default.
func NewViolation(file string, line int, kind Kind, category, message, standard, rule string, severity Severity) (Violation, error) {
	if severity == "" {
		severity = kind.DefaultSeverity()
	}
	v := Violation{
		File:     file,
		Line:     line,
		Kind:     kind,
		Category: category,
		Message:  message,
		Standard: standard,
		Rule:     rule,
		Severity: severity,
	}
	if err := v.Validate(); err != nil {
		return Violation{}, err
	}
	return v, nil
}

// Validate checks the structural invariants of a violation.
func (v Violation) Validate() error {
	var problems []string
	if v.File == "" {
		problems = append(problems, "file is empty")
	}
	if v.Line < 0 {
		problems = append(problems, fmt.Sprintf("line %d is negative", v.Line))
	}
	if _, ok := ParseKind(string(v.Kind)); !ok {
		problems = append(problems, fmt.Sprintf("unknown kind %q", v.Kind))
	}
	if _, ok := ParseSeverity(string(v.Severity)); !ok {
		problems = append(problems, fmt.Sprintf("unknown severity %q", v.Severity))
	}
	if v.Message == "" {
		problems = append(problems, "message is empty")
	}
	if v.Rule == "" {
		problems = append(problems, "rule is empty")
	}
	if len(problems) > 0 {
		return &ValidationError{File: v.File, Reason: "invalid violation: " + strings.Join(problems, "; ")}
	}
	return nil
}

// ProcessingViolation converts a per-file failure into the single ERROR
// violation recorded for that file.
func ProcessingViolation(path string, err error) Violation {
	return Violation{
		File:     path,
		Kind:     KindError,
		Category: CategoryProcessing,
		Message:  err.Error(),
		Standard: CategoryProcessing,
		Rule:     "file-processing",
		Severity: SeverityHigh,
	}
}

// FileTiming is per-file telemetry. It never feeds into scoring.
type FileTiming struct {
	Path       string                   `json:"path"`
	Bytes      int                      `json:"bytes"`
	Lines      int                      `json:"lines"`
	Duration   time.Duration            `json:"duration_ns"`
	Categories map[string]time.Duration `json:"categories_ns,omitempty"`
}

// FileResult is what one worker produces for one file.
type FileResult struct {
	Path       string      `json:"path"`
	Violations []Violation `json:"violations,omitempty"`
	Checks     int         `json:"checks"`
	Passed     int         `json:"passed"`
	// CheckStats counts checks per category and per standard.
	CheckStats []CheckStat `json:"check_stats,omitempty"`
	Timing     FileTiming  `json:"timing"`
	Failed     bool        `json:"failed,omitempty"`
	Error      string      `json:"error,omitempty"`
}

// CheckStat records the outcome of one rule on one file.
type CheckStat struct {
	Category string `json:"category"`
	Standard string `json:"standard"`
	Passed   bool   `json:"passed"`
}

// Effectiveness summarizes how often checks in a bucket passed.
type Effectiveness struct {
	Checks     int     `json:"checks"`
	Passed     int     `json:"passed"`
	Violations int     `json:"violations"`
	Rate       float64 `json:"rate"`
}

// Breakdown holds counting reductions over a run's violations.
type Breakdown struct {
	BySeverity map[Severity]int `json:"by_severity"`
	ByKind     map[Kind]int     `json:"by_kind"`
	ByCategory map[string]int   `json:"by_category"`
	ByStandard map[string]int   `json:"by_standard"`
	ByFile     map[string]int   `json:"by_file"`

	CategoryEffectiveness map[string]Effectiveness `json:"category_effectiveness"`
	StandardEffectiveness map[string]Effectiveness `json:"standard_effectiveness"`
}

// NewBreakdown returns a breakdown with all maps allocated.
func NewBreakdown() Breakdown {
	return Breakdown{
		BySeverity:            make(map[Severity]int),
		ByKind:                make(map[Kind]int),
		ByCategory:            make(map[string]int),
		ByStandard:            make(map[string]int),
		ByFile:                make(map[string]int),
		CategoryEffectiveness: make(map[string]Effectiveness),
		StandardEffectiveness: make(map[string]Effectiveness),
	}
}

// RunResult is the aggregate of one full scan. Read-only once built.
type RunResult struct {
	RunID        string        `json:"run_id"`
	StartedAt    time.Time     `json:"started_at"`
	Score        float64       `json:"score"`
	Violations   []Violation   `json:"violations"`
	TotalChecks  int           `json:"total_checks"`
	PassedChecks int           `json:"passed_checks"`
	FilesScanned int           `json:"files_scanned"`
	FilesFailed  int           `json:"files_failed"`
	Duration     time.Duration `json:"duration_ns"`
	Timings      []FileTiming  `json:"timings,omitempty"`
	Breakdown    Breakdown     `json:"breakdown"`
	CommitHash   string        `json:"commit_hash,omitempty"`
}

// Count returns how many violations of the given kind the run produced.
func (r RunResult) Count(kind Kind) int {
	return r.Breakdown.ByKind[kind]
}
