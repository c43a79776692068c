package rules

import (
	"fmt"

	"github.com/wtthornton/tappscheck/internal/domain"
)

// Build compiles rule specs into an Evaluator. When standards is non-empty,
// rules bound to a standard that was not loaded are left out and their ids
// returned as disabled. An empty spec list selects DefaultSpecs.
func Build(specs []domain.RuleSpec, standards map[string]string) (*Evaluator, []string, error) {
	if len(specs) == 0 {
		specs = DefaultSpecs()
	}

	ev := &Evaluator{}
	var disabled []string
	seen := make(map[string]bool, len(specs))

	for i, spec := range specs {
		if err := spec.Validate(); err != nil {
			return nil, nil, &domain.ConfigurationError{Source: fmt.Sprintf("rules[%d]", i), Err: err}
		}
		if seen[spec.ID] {
			return nil, nil, &domain.ConfigurationError{
				Source: fmt.Sprintf("rules[%d]", i),
				Err:    fmt.Errorf("duplicate rule id %q", spec.ID),
			}
		}
		seen[spec.ID] = true

		if len(standards) > 0 && spec.Standard != "" {
			if _, ok := standards[spec.Standard]; !ok {
				disabled = append(disabled, spec.ID)
				continue
			}
		}

		if spec.Category == "" {
			spec.Category = "general"
		}
		r, err := compile(spec)
		if err != nil {
			return nil, nil, &domain.ConfigurationError{Source: "rule " + spec.ID, Err: err}
		}
		ev.rules = append(ev.rules, r)
	}

	return ev, disabled, nil
}

// DefaultSpecs is the built-in rule set used when a project declares none.
func DefaultSpecs() []domain.RuleSpec {
	codeFiles := []string{"*.go", "*.ts", "*.tsx", "*.js", "*.py"}
	docFiles := []string{"*.md", "*.mdc"}

	return []domain.RuleSpec{
		{
			ID: "hardcoded-secret", Type: domain.RuleForbidPattern,
			Standard: "security", Category: "security", Kind: "critical",
			Message: "possible hardcoded secret",
			Pattern: `(?i)\b(api[_-]?key|secret|passw(or)?d|access[_-]?token)\b\s*[:=]\s*["'][^"'\s]{8,}["']`,
		},
		{
			ID: "private-key", Type: domain.RuleForbidPattern,
			Standard: "security", Category: "security", Kind: "critical",
			Message: "private key material",
			Pattern: `-----BEGIN ([A-Z]+ )?PRIVATE KEY-----`,
		},
		{
			ID: "line-length", Type: domain.RuleMaxLineLength,
			Standard: "code-quality", Category: "style", Kind: "warning", Severity: "low",
			Max: 120, Paths: codeFiles,
		},
		{
			ID: "unresolved-marker", Type: domain.RuleForbidPattern,
			Standard: "code-quality", Category: "maintainability", Kind: "warning", Severity: "low",
			Message: "unresolved work marker",
			Pattern: `\b(FIXME|XXX)\b`, Paths: codeFiles,
		},
		{
			ID: "doc-min-words", Type: domain.RuleMinWords,
			Standard: "documentation", Category: "documentation", Kind: "warning",
			Min: 50, Paths: docFiles, Gate: true,
		},
		{
			ID: "doc-heading", Type: domain.RuleRequireHeading,
			Standard: "documentation", Category: "documentation", Kind: "warning",
			Paths: docFiles,
		},
		{
			ID: "doc-unclosed-fence", Type: domain.RuleUnclosedFence,
			Standard: "documentation", Category: "documentation", Kind: "error",
			Paths: docFiles,
		},
	}
}
