package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/wtthornton/tappscheck/internal/domain"
	"github.com/wtthornton/tappscheck/internal/domain/scoring"
)

var (
	sectionHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	hintStyle          = lipgloss.NewStyle().Foreground(dim).Italic(true)
)

// RenderCheck renders the result of checking a single file.
func RenderCheck(report *domain.CheckReport) string {
	var b strings.Builder

	grade := scoring.Grade(report.Score)
	scoreStyled := lipgloss.NewStyle().
		Bold(true).
		Foreground(gradeColor(grade)).
		Render(fmt.Sprintf("%.1f/100  %s", report.Score, grade))

	fileLine := titleStyle.Render(report.Path) + "  " + scoreStyled
	checksLine := dimStyle.Render(fmt.Sprintf("%d/%d checks passed", report.Result.Passed, report.Result.Checks))

	b.WriteString(boxStyle.Render(fileLine + "\n" + checksLine))
	b.WriteString("\n\n")

	if report.Result.Failed {
		fmt.Fprintf(&b, "  %s %s\n\n", errorTagStyle.Render("error"), dimStyle.Render(report.Result.Error))
	}

	if len(report.Result.Violations) == 0 {
		b.WriteString("  " + passStyle.Render("No violations found.") + "\n")
	} else {
		fmt.Fprintf(&b, "  %s %s\n\n",
			sectionHeaderStyle.Render("Violations"),
			dimStyle.Render(fmt.Sprintf("(%d)", len(report.Result.Violations))),
		)
		for _, v := range sortViolations(report.Result.Violations) {
			renderViolation(&b, v)
		}
	}

	if len(report.Disabled) > 0 {
		b.WriteString("\n")
		b.WriteString("  " + hintStyle.Render("Disabled rules: "+strings.Join(report.Disabled, ", ")))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	return b.String()
}
