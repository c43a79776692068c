package rules

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/wtthornton/tappscheck/internal/domain"
)

// Finding is a raw rule hit before it is turned into a violation.
type Finding struct {
	Line    int
	Message string
}

// Rule is a named check over one document.
type Rule interface {
	Spec() domain.RuleSpec
	Check(doc *Document) []Finding
}

type base struct{ spec domain.RuleSpec }

func (b base) Spec() domain.RuleSpec { return b.spec }

type forbidPattern struct {
	base
	re *regexp.Regexp
}

func (r forbidPattern) Check(doc *Document) []Finding {
	var out []Finding
	for _, ln := range doc.Lines {
		if r.spec.SkipCodeBlocks && ln.InFence {
			continue
		}
		if r.re.MatchString(ln.Text) {
			out = append(out, Finding{Line: ln.Number, Message: fmt.Sprintf("forbidden pattern %q matched", r.spec.Pattern)})
		}
	}
	return out
}

type requirePattern struct {
	base
	re *regexp.Regexp
}

func (r requirePattern) Check(doc *Document) []Finding {
	for _, ln := range doc.Lines {
		if r.spec.SkipCodeBlocks && ln.InFence {
			continue
		}
		if r.re.MatchString(ln.Text) {
			return nil
		}
	}
	return []Finding{{Message: fmt.Sprintf("missing required marker %q", r.spec.Pattern)}}
}

type maxLineLength struct{ base }

func (r maxLineLength) Check(doc *Document) []Finding {
	var out []Finding
	for _, ln := range doc.Lines {
		if r.spec.SkipCodeBlocks && ln.InFence {
			continue
		}
		if n := utf8.RuneCountInString(ln.Text); n > r.spec.Max {
			out = append(out, Finding{Line: ln.Number, Message: fmt.Sprintf("line exceeds %d characters (%d)", r.spec.Max, n)})
		}
	}
	return out
}

type maxLines struct{ base }

func (r maxLines) Check(doc *Document) []Finding {
	if n := len(doc.Lines); n > r.spec.Max {
		return []Finding{{Message: fmt.Sprintf("file has %d lines (max %d)", n, r.spec.Max)}}
	}
	return nil
}

type minWords struct{ base }

func (r minWords) Check(doc *Document) []Finding {
	if doc.Words < r.spec.Min {
		return []Finding{{Message: fmt.Sprintf("document too short: %d words (min %d)", doc.Words, r.spec.Min)}}
	}
	return nil
}

type requireHeading struct{ base }

func (r requireHeading) Check(doc *Document) []Finding {
	if doc.HasHeading {
		return nil
	}
	return []Finding{{Message: "document has no heading"}}
}

type unclosedFence struct{ base }

func (r unclosedFence) Check(doc *Document) []Finding {
	if doc.OpenFence == 0 {
		return nil
	}
	return []Finding{{Line: doc.OpenFence, Message: "code block is never closed"}}
}

type trailingWhitespace struct{ base }

func (r trailingWhitespace) Check(doc *Document) []Finding {
	var out []Finding
	for _, ln := range doc.Lines {
		if r.spec.SkipCodeBlocks && ln.InFence {
			continue
		}
		if ln.Text != strings.TrimRight(ln.Text, " \t") {
			out = append(out, Finding{Line: ln.Number, Message: "trailing whitespace"})
		}
	}
	return out
}

// compile turns a validated spec into a rule.
func compile(spec domain.RuleSpec) (Rule, error) {
	b := base{spec: spec}
	switch spec.Type {
	case domain.RuleForbidPattern:
		re, err := regexp.Compile(spec.Pattern)
		if err != nil {
			return nil, err
		}
		return forbidPattern{base: b, re: re}, nil
	case domain.RuleRequirePattern:
		re, err := regexp.Compile(spec.Pattern)
		if err != nil {
			return nil, err
		}
		return requirePattern{base: b, re: re}, nil
	case domain.RuleMaxLineLength:
		return maxLineLength{b}, nil
	case domain.RuleMaxLines:
		return maxLines{b}, nil
	case domain.RuleMinWords:
		return minWords{b}, nil
	case domain.RuleRequireHeading:
		return requireHeading{b}, nil
	case domain.RuleUnclosedFence:
		return unclosedFence{b}, nil
	case domain.RuleTrailingWhitespace:
		return trailingWhitespace{b}, nil
	default:
		return nil, fmt.Errorf("unknown rule type %q", spec.Type)
	}
}
