package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/cespare/xxhash/v2"
)

// HistorySchemaVersion is the schema written by this build.
const HistorySchemaVersion = 1

// DefaultHistoryLimit is how many entries the history log retains.
const DefaultHistoryLimit = 30

// TimestampLayout is ISO-8601 with millisecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// HistoryEntry is one persisted snapshot of a run. Entries are never edited
// after they are sealed.
type HistoryEntry struct {
	Timestamp             string                   `json:"timestamp"`
	RunID                 string                   `json:"runId"`
	CommitHash            string                   `json:"commitHash,omitempty"`
	ComplianceScore       float64                  `json:"complianceScore"`
	TotalChecks           int                      `json:"totalChecks"`
	PassedChecks          int                      `json:"passedChecks"`
	ViolationCount        int                      `json:"violationCount"`
	CriticalCount         int                      `json:"criticalCount"`
	WarningCount          int                      `json:"warningCount"`
	ErrorCount            int                      `json:"errorCount"`
	CategoryEffectiveness map[string]Effectiveness `json:"categoryEffectiveness,omitempty"`
	StandardEffectiveness map[string]Effectiveness `json:"standardEffectiveness,omitempty"`
	Checksum              string                   `json:"checksum"`
	SchemaVersion         int                      `json:"schemaVersion"`
}

// NewHistoryEntry builds a sealed entry from a finished run.
func NewHistoryEntry(run RunResult, now time.Time) HistoryEntry {
	e := HistoryEntry{
		Timestamp:             now.UTC().Format(TimestampLayout),
		RunID:                 run.RunID,
		CommitHash:            run.CommitHash,
		ComplianceScore:       run.Score,
		TotalChecks:           run.TotalChecks,
		PassedChecks:          run.PassedChecks,
		ViolationCount:        len(run.Violations),
		CriticalCount:         run.Count(KindCritical),
		WarningCount:          run.Count(KindWarning),
		ErrorCount:            run.Count(KindError),
		CategoryEffectiveness: run.Breakdown.CategoryEffectiveness,
		StandardEffectiveness: run.Breakdown.StandardEffectiveness,
		SchemaVersion:         HistorySchemaVersion,
	}
	e.Checksum = e.ComputeChecksum()
	return e
}

// Time parses the entry timestamp.
func (e HistoryEntry) Time() (time.Time, error) {
	return time.Parse(time.RFC3339Nano, e.Timestamp)
}

// ComputeChecksum fingerprints every field except the checksum itself.
// It detects accidental corruption and is not a security boundary.
func (e HistoryEntry) ComputeChecksum() string {
	e.Checksum = ""
	data, err := json.Marshal(e)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%016x", xxhash.Sum64(data))
}

// Integrity invariants checked by Validate.
const (
	InvariantRequiredFields = "required_fields"
	InvariantScoreRange     = "score_range"
	InvariantChecks         = "checks_non_negative"
	InvariantPassedChecks   = "passed_le_total"
	InvariantCounts         = "counts_consistent"
	InvariantTimestamp      = "timestamp_format"
	InvariantSchemaVersion  = "schema_version"
	InvariantChecksum       = "checksum"
)

// Validate runs the structural and bounds checks an entry must pass before
// it may be persisted or trusted after loading.
func (e HistoryEntry) Validate() error {
	fail := func(invariant string, err error) error {
		return &AnalyticsError{Op: "validate entry", Invariant: invariant, Err: err}
	}

	switch {
	case e.Timestamp == "":
		return fail(InvariantRequiredFields, errors.New("timestamp is missing"))
	case e.RunID == "":
		return fail(InvariantRequiredFields, errors.New("run id is missing"))
	case e.Checksum == "":
		return fail(InvariantRequiredFields, errors.New("checksum is missing"))
	}

	if e.ComplianceScore < 0 || e.ComplianceScore > 100 || math.IsNaN(e.ComplianceScore) {
		return fail(InvariantScoreRange, fmt.Errorf("compliance score %v outside [0,100]", e.ComplianceScore))
	}
	if e.TotalChecks < 0 || e.PassedChecks < 0 {
		return fail(InvariantChecks, fmt.Errorf("total %d, passed %d", e.TotalChecks, e.PassedChecks))
	}
	if e.PassedChecks > e.TotalChecks {
		return fail(InvariantPassedChecks, fmt.Errorf("passed %d exceeds total %d", e.PassedChecks, e.TotalChecks))
	}
	if e.ViolationCount < 0 || e.CriticalCount < 0 || e.WarningCount < 0 || e.ErrorCount < 0 {
		return fail(InvariantCounts, errors.New("negative violation count"))
	}
	if e.CriticalCount+e.WarningCount+e.ErrorCount > e.ViolationCount {
		return fail(InvariantCounts, fmt.Errorf("kind counts %d exceed violation count %d",
			e.CriticalCount+e.WarningCount+e.ErrorCount, e.ViolationCount))
	}
	if _, err := e.Time(); err != nil {
		return fail(InvariantTimestamp, err)
	}
	if e.SchemaVersion < 1 || e.SchemaVersion > HistorySchemaVersion {
		return fail(InvariantSchemaVersion, fmt.Errorf("unsupported schema version %d", e.SchemaVersion))
	}
	if got := e.ComputeChecksum(); got != e.Checksum {
		return fail(InvariantChecksum, fmt.Errorf("stored %s, computed %s", e.Checksum, got))
	}
	return nil
}

// Scores extracts the compliance score series.
func Scores(entries []HistoryEntry) []float64 {
	out := make([]float64, len(entries))
	for i, e := range entries {
		out[i] = e.ComplianceScore
	}
	return out
}

// ViolationCounts extracts the violation count series.
func ViolationCounts(entries []HistoryEntry) []float64 {
	out := make([]float64, len(entries))
	for i, e := range entries {
		out[i] = float64(e.ViolationCount)
	}
	return out
}
