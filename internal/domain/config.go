package domain

import (
	"fmt"
	"math"
	"regexp"
	"time"
)

// RuleType identifies the check a rule performs.
type RuleType string

const (
	RuleForbidPattern      RuleType = "forbid_pattern"
	RuleRequirePattern     RuleType = "require_pattern"
	RuleMaxLineLength      RuleType = "max_line_length"
	RuleMaxLines           RuleType = "max_lines"
	RuleMinWords           RuleType = "min_words"
	RuleRequireHeading     RuleType = "require_heading"
	RuleUnclosedFence      RuleType = "unclosed_fence"
	RuleTrailingWhitespace RuleType = "trailing_whitespace"
)

// ValidRuleTypes enumerates all recognized rule types.
var ValidRuleTypes = []RuleType{
	RuleForbidPattern, RuleRequirePattern, RuleMaxLineLength, RuleMaxLines,
	RuleMinWords, RuleRequireHeading, RuleUnclosedFence, RuleTrailingWhitespace,
}

// RuleSpec declares one named check.
type RuleSpec struct {
	ID             string   `yaml:"id"                         json:"id"`
	Type           RuleType `yaml:"type"                       json:"type"`
	Standard       string   `yaml:"standard"                   json:"standard"`
	Category       string   `yaml:"category"                   json:"category"`
	Kind           string   `yaml:"kind"                       json:"kind"`
	Severity       string   `yaml:"severity,omitempty"         json:"severity,omitempty"`
	Message        string   `yaml:"message,omitempty"          json:"message,omitempty"`
	Pattern        string   `yaml:"pattern,omitempty"          json:"pattern,omitempty"`
	Max            int      `yaml:"max,omitempty"              json:"max,omitempty"`
	Min            int      `yaml:"min,omitempty"              json:"min,omitempty"`
	Paths          []string `yaml:"paths,omitempty"            json:"paths,omitempty"`
	SkipCodeBlocks bool     `yaml:"skip_code_blocks,omitempty" json:"skip_code_blocks,omitempty"`
	Gate           bool     `yaml:"gate,omitempty"             json:"gate,omitempty"`
}

// Validate checks a single rule declaration.
func (r RuleSpec) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("rule id must not be empty")
	}
	if !isValidRuleType(r.Type) {
		return fmt.Errorf("rule %q: unknown type %q", r.ID, r.Type)
	}
	if _, ok := ParseKind(r.Kind); !ok {
		return fmt.Errorf("rule %q: unknown kind %q (valid: critical, error, warning)", r.ID, r.Kind)
	}
	if r.Severity != "" {
		if _, ok := ParseSeverity(r.Severity); !ok {
			return fmt.Errorf("rule %q: unknown severity %q (valid: critical, high, medium, low)", r.ID, r.Severity)
		}
	}

	switch r.Type {
	case RuleForbidPattern, RuleRequirePattern:
		if r.Pattern == "" {
			return fmt.Errorf("rule %q: %s requires a pattern", r.ID, r.Type)
		}
		if _, err := regexp.Compile(r.Pattern); err != nil {
			return fmt.Errorf("rule %q: invalid pattern: %w", r.ID, err)
		}
	case RuleMaxLineLength, RuleMaxLines:
		if r.Max <= 0 {
			return fmt.Errorf("rule %q: %s requires max > 0 (got %d)", r.ID, r.Type, r.Max)
		}
	case RuleMinWords:
		if r.Min <= 0 {
			return fmt.Errorf("rule %q: %s requires min > 0 (got %d)", r.ID, r.Type, r.Min)
		}
	}
	return nil
}

// Penalties are the score deductions per violation kind.
type Penalties struct {
	Critical float64 `yaml:"critical" json:"critical"`
	Error    float64 `yaml:"error"    json:"error"`
	Warning  float64 `yaml:"warning"  json:"warning"`
}

// DefaultPenalties deducts 10 per critical, 5 per error, 2 per warning.
func DefaultPenalties() Penalties {
	return Penalties{Critical: 10, Error: 5, Warning: 2}
}

// For returns the deduction for one violation of the given kind.
func (p Penalties) For(k Kind) float64 {
	switch k {
	case KindCritical:
		return p.Critical
	case KindError:
		return p.Error
	case KindWarning:
		return p.Warning
	default:
		return 0
	}
}

const (
	DefaultWorkers      = 4
	DefaultFileTimeout  = 10 * time.Second
	DefaultMaxFileBytes = 1 << 20
	DefaultStandardsDir = ".tappscheck/standards"
)

// DefaultInclude lists the file extensions scanned when none are configured.
var DefaultInclude = []string{".md", ".mdc", ".go", ".ts", ".tsx", ".js", ".py", ".yaml", ".yml"}

// ProjectConfig holds project-level configuration loaded from .tappscheck.yaml.
type ProjectConfig struct {
	Include      []string      `yaml:"include"        json:"include,omitempty"`
	ExcludePaths []string      `yaml:"exclude_paths"  json:"exclude_paths,omitempty"`
	Workers      int           `yaml:"workers"        json:"workers,omitempty"`
	FileTimeout  time.Duration `yaml:"file_timeout"   json:"file_timeout,omitempty"`
	MaxFileBytes int           `yaml:"max_file_bytes" json:"max_file_bytes,omitempty"`
	HistoryLimit int           `yaml:"history_limit"  json:"history_limit,omitempty"`
	Penalties    *Penalties    `yaml:"penalties"      json:"penalties,omitempty"`
	MinScore     float64       `yaml:"min_score"      json:"min_score,omitempty"`
	StandardsDir string        `yaml:"standards_dir"  json:"standards_dir,omitempty"`
	Rules        []RuleSpec    `yaml:"rules"          json:"rules,omitempty"`
}

// DefaultConfig returns a zero-value config; Effective* accessors supply defaults.
func DefaultConfig() ProjectConfig {
	return ProjectConfig{}
}

// EffectiveWorkers returns the configured worker count or the default.
func (c ProjectConfig) EffectiveWorkers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return DefaultWorkers
}

// EffectiveFileTimeout returns the per-file timeout or the default.
func (c ProjectConfig) EffectiveFileTimeout() time.Duration {
	if c.FileTimeout > 0 {
		return c.FileTimeout
	}
	return DefaultFileTimeout
}

// EffectiveMaxFileBytes returns the read cap per file or the default.
func (c ProjectConfig) EffectiveMaxFileBytes() int {
	if c.MaxFileBytes > 0 {
		return c.MaxFileBytes
	}
	return DefaultMaxFileBytes
}

// EffectiveHistoryLimit returns the retention bound or the default of 30.
func (c ProjectConfig) EffectiveHistoryLimit() int {
	if c.HistoryLimit > 0 {
		return c.HistoryLimit
	}
	return DefaultHistoryLimit
}

// EffectivePenalties returns configured penalties or the defaults.
func (c ProjectConfig) EffectivePenalties() Penalties {
	if c.Penalties != nil {
		return *c.Penalties
	}
	return DefaultPenalties()
}

// EffectiveInclude returns configured extensions or the defaults.
func (c ProjectConfig) EffectiveInclude() []string {
	if len(c.Include) > 0 {
		return c.Include
	}
	return DefaultInclude
}

// EffectiveStandardsDir returns the standards directory relative to the project.
func (c ProjectConfig) EffectiveStandardsDir() string {
	if c.StandardsDir != "" {
		return c.StandardsDir
	}
	return DefaultStandardsDir
}

// Validate checks the config for invalid values and returns a descriptive error.
func (c ProjectConfig) Validate() error {
	// 1. numeric bounds
	if c.Workers < 0 || c.Workers > 64 {
		return fmt.Errorf("workers = %d (must be between 1 and 64)", c.Workers)
	}
	if c.FileTimeout < 0 {
		return fmt.Errorf("file_timeout must not be negative (got %s)", c.FileTimeout)
	}
	if c.MaxFileBytes < 0 {
		return fmt.Errorf("max_file_bytes must not be negative (got %d)", c.MaxFileBytes)
	}
	if c.HistoryLimit < 0 || c.HistoryLimit > 1000 {
		return fmt.Errorf("history_limit = %d (must be between 1 and 1000)", c.HistoryLimit)
	}
	if !(c.MinScore >= 0 && c.MinScore <= 100) {
		return fmt.Errorf("min_score = %.1f (must be between 0 and 100)", c.MinScore)
	}

	// 2. penalties must be finite and not negative
	if p := c.Penalties; p != nil {
		if !validPenalty(p.Critical) || !validPenalty(p.Error) || !validPenalty(p.Warning) {
			return fmt.Errorf("penalties must be finite and not negative (critical %.1f, error %.1f, warning %.1f)",
				p.Critical, p.Error, p.Warning)
		}
	}

	// 3. include entries must be extensions
	for _, ext := range c.Include {
		if len(ext) < 2 || ext[0] != '.' {
			return fmt.Errorf("include entry %q must be a file extension like \".md\"", ext)
		}
	}

	// 4. rules must be valid and unique
	seen := make(map[string]bool, len(c.Rules))
	for i, r := range c.Rules {
		if err := r.Validate(); err != nil {
			return fmt.Errorf("rules[%d]: %w", i, err)
		}
		if seen[r.ID] {
			return fmt.Errorf("rules[%d]: duplicate rule id %q", i, r.ID)
		}
		seen[r.ID] = true
	}

	return nil
}

func isValidRuleType(t RuleType) bool {
	for _, v := range ValidRuleTypes {
		if t == v {
			return true
		}
	}
	return false
}

func validPenalty(v float64) bool {
	return v >= 0 && !math.IsInf(v, 1)
}
