package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/wtthornton/tappscheck/internal/domain"
)

var sparkTicks = []rune("▁▂▃▄▅▆▇█")

// RenderHistory formats stored runs as a table, oldest first, with the
// change from the previous run.
func RenderHistory(report *domain.HistoryReport) string {
	var b strings.Builder

	b.WriteString("\n  " + titleStyle.Render("Score History") + "\n\n")

	if len(report.Entries) == 0 {
		b.WriteString("  " + dimStyle.Render("No history yet. Run `tappscheck scan` to record one.") + "\n\n")
		return b.String()
	}

	for i, e := range report.Entries {
		score := int(e.ComplianceScore + 0.5)
		scoreText := lipgloss.NewStyle().Bold(true).Foreground(scoreColor(score)).Render(fmt.Sprintf("%5.1f", e.ComplianceScore))

		diff := ""
		if i > 0 {
			d := e.ComplianceScore - report.Entries[i-1].ComplianceScore
			switch {
			case d > 0:
				diff = passStyle.Render(fmt.Sprintf("↑%.1f", d))
			case d < 0:
				diff = failStyle.Render(fmt.Sprintf("↓%.1f", -d))
			}
		}

		ts := e.Timestamp
		if len(ts) > 16 {
			ts = ts[:16]
		}
		ref := e.CommitHash
		if len(ref) > 7 {
			ref = ref[:7]
		}
		counts := dimStyle.Render(fmt.Sprintf("%dc %de %dw", e.CriticalCount, e.ErrorCount, e.WarningCount))

		fmt.Fprintf(&b, "  %s  %s  %s %s  %s %s\n",
			dimStyle.Render(ts), faintStyle.Render(padRight(ref, 7)),
			coloredBar(score, 20), scoreText, counts, diff)
	}

	if report.Stats.Discarded > 0 {
		fmt.Fprintf(&b, "\n  %s %s\n", warnTagStyle.Render("note "),
			dimStyle.Render(fmt.Sprintf("%d of %d entries failed integrity checks", report.Stats.Discarded, report.Stats.Total)))
	}
	b.WriteString("\n")
	return b.String()
}

// RenderTrends formats the statistical analysis of a project's history.
func RenderTrends(t *domain.TrendReport, scores []float64) string {
	var b strings.Builder

	b.WriteString("\n  " + titleStyle.Render("Compliance Trends") + "  " +
		dimStyle.Render(fmt.Sprintf("%d runs", t.Entries)) + "\n\n")

	if t.Entries < 2 {
		b.WriteString("  " + dimStyle.Render("Not enough history for trend analysis (need at least 2 runs).") + "\n")
	}
	if len(scores) > 0 {
		b.WriteString("  " + Sparkline(scores) + "\n\n")
	}
	if t.Entries >= 2 {
		renderTrendSummary(&b, t)
	}

	if len(t.Outliers) > 0 {
		b.WriteString("\n  " + sectionHeaderStyle.Render("Outliers") + "\n")
		for _, o := range t.Outliers {
			fmt.Fprintf(&b, "    %s run %d  %s  %s\n", warnStyle.Render("●"), o.Index+1,
				fmt.Sprintf("%.1f", o.Value), faintStyle.Render(o.Timestamp))
		}
	}

	if len(t.Standards) > 0 {
		b.WriteString("\n  " + sectionHeaderStyle.Render("Standards") + "\n")
		for _, s := range t.Standards {
			fmt.Fprintf(&b, "    %s %s %s\n", catNameStyle.Render(padRight(Label(s.Standard), 20)),
				fmt.Sprintf("%5.1f%%", s.Current), directionText(s.Direction))
		}
	}
	b.WriteString("\n")
	return b.String()
}

func renderTrendSummary(b *strings.Builder, t *domain.TrendReport) {
	fmt.Fprintf(b, "  %s %s\n", padRight("Direction", 14), directionText(t.Direction))
	fmt.Fprintf(b, "  %s %.1f avg · %.1f median · σ %.1f · range %.1f–%.1f\n",
		padRight("Scores", 14), t.Scores.Mean, t.Scores.Median, t.Scores.StdDev, t.Scores.Min, t.Scores.Max)
	fmt.Fprintf(b, "  %s %.1f avg · slope %+.2f per run\n",
		padRight("Violations", 14), t.Violations.Mean, t.Violations.Slope)
	fmt.Fprintf(b, "  %s %.1f in %d days %s\n",
		padRight("Prediction", 14), t.Prediction.Score, t.Prediction.DaysAhead,
		dimStyle.Render(fmt.Sprintf("(confidence %.0f%%)", t.Prediction.Confidence)))
	fmt.Fprintf(b, "  %s %s\n", padRight("Risk", 14), riskText(t.Risk.Level))
	for _, r := range t.Risk.Reasons {
		fmt.Fprintf(b, "  %s %s\n", strings.Repeat(" ", 14), dimStyle.Render("· "+r))
	}
}

func directionText(d string) string {
	switch d {
	case "improving":
		return passStyle.Render("↑ improving")
	case "declining":
		return failStyle.Render("↓ declining")
	case "":
		return skipStyle.Render("–")
	default:
		return dimStyle.Render("→ " + d)
	}
}

func riskText(level domain.RiskLevel) string {
	switch level {
	case domain.RiskHigh:
		return errorTagStyle.Render(level.String())
	case domain.RiskMedium:
		return warnTagStyle.Render(level.String())
	default:
		return passStyle.Render(level.String())
	}
}

// Sparkline draws scores on a fixed 0-100 scale, one tick per run.
func Sparkline(scores []float64) string {
	var b strings.Builder
	for _, s := range scores {
		i := int(s / 100 * float64(len(sparkTicks)-1))
		i = max(0, min(i, len(sparkTicks)-1))
		b.WriteString(lipgloss.NewStyle().Foreground(scoreColor(int(s))).Render(string(sparkTicks[i])))
	}
	return b.String()
}
