package rules

import (
	"fmt"
	"path"
	"path/filepath"
	"time"

	"github.com/wtthornton/tappscheck/internal/domain"
)

// Evaluation is the outcome of running every applicable rule on one file.
type Evaluation struct {
	Violations []domain.Violation
	Checks     int
	Passed     int
	Stats      []domain.CheckStat
	Lines      int
	Categories map[string]time.Duration
}

// Evaluator applies a fixed, ordered rule set. It holds no mutable state and
// is safe for concurrent use.
type Evaluator struct {
	rules []Rule
}

// Rules returns the specs of the active rules in evaluation order.
func (e *Evaluator) Rules() []domain.RuleSpec {
	out := make([]domain.RuleSpec, len(e.rules))
	for i, r := range e.rules {
		out[i] = r.Spec()
	}
	return out
}

// Evaluate runs the rules over one file's content. Violations come out in
// rule order, then line order. A gate rule that fails stops evaluation of
// the rules after it; skipped rules do not count as checks.
func (e *Evaluator) Evaluate(filePath string, content []byte) (Evaluation, error) {
	doc, err := NewDocument(filePath, content)
	if err != nil {
		return Evaluation{}, err
	}

	ev := Evaluation{Lines: len(doc.Lines), Categories: make(map[string]time.Duration)}
	for _, r := range e.rules {
		spec := r.Spec()
		if !appliesTo(spec.Paths, filePath) {
			continue
		}

		start := time.Now()
		findings := r.Check(doc)
		ev.Categories[spec.Category] += time.Since(start)

		ev.Checks++
		ev.Stats = append(ev.Stats, domain.CheckStat{
			Category: spec.Category,
			Standard: spec.Standard,
			Passed:   len(findings) == 0,
		})
		if len(findings) == 0 {
			ev.Passed++
			continue
		}

		kind, _ := domain.ParseKind(spec.Kind)
		sev, _ := domain.ParseSeverity(spec.Severity)
		for _, f := range findings {
			msg := f.Message
			if spec.Message != "" {
				msg = spec.Message + ": " + f.Message
			}
			v, err := domain.NewViolation(filePath, f.Line, kind, spec.Category, msg, spec.Standard, spec.ID, sev)
			if err != nil {
				return Evaluation{}, fmt.Errorf("rule %s: %w", spec.ID, err)
			}
			ev.Violations = append(ev.Violations, v)
		}

		if spec.Gate {
			break
		}
	}
	return ev, nil
}

// appliesTo matches globs against both the slash path and the base name.
// An empty glob list applies everywhere.
func appliesTo(globs []string, filePath string) bool {
	if len(globs) == 0 {
		return true
	}
	slashed := filepath.ToSlash(filePath)
	name := path.Base(slashed)
	for _, g := range globs {
		if ok, _ := path.Match(g, slashed); ok {
			return true
		}
		if ok, _ := path.Match(g, name); ok {
			return true
		}
	}
	return false
}
