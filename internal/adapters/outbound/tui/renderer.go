package tui

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/camelcase"

	"github.com/wtthornton/tappscheck/internal/domain"
	"github.com/wtthornton/tappscheck/internal/domain/scoring"
)

// ── warm palette ──
var (
	accent    = lipgloss.Color("#D97706") // amber
	fg        = lipgloss.Color("#E8E6E3") // warm light gray
	dim       = lipgloss.Color("#6B7280") // muted gray
	faint     = lipgloss.Color("#3F3F46") // very dim
	success   = lipgloss.Color("#22C55E") // green
	danger    = lipgloss.Color("#EF4444") // red
	warning   = lipgloss.Color("#F59E0B") // amber-yellow
	info      = lipgloss.Color("#8B949E") // soft blue-gray
	skipColor = lipgloss.Color("#4B5563") // dark gray
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(68)

	gradeColors = map[string]lipgloss.Color{
		"A+": success,
		"A":  success,
		"B":  lipgloss.Color("#A3E635"), // lime
		"C":  warning,
		"D":  lipgloss.Color("#FB923C"), // orange
		"F":  danger,
	}

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Foreground(success)
	failStyle     = lipgloss.NewStyle().Foreground(danger)
	warnStyle     = lipgloss.NewStyle().Foreground(warning)
	skipStyle     = lipgloss.NewStyle().Foreground(skipColor)
	errorTagStyle = lipgloss.NewStyle().Foreground(danger).Bold(true)
	warnTagStyle  = lipgloss.NewStyle().Foreground(warning).Bold(true)
	infoTagStyle  = lipgloss.NewStyle().Foreground(info)
	fileStyle     = lipgloss.NewStyle().Foreground(dim)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	catNameStyle  = lipgloss.NewStyle().Bold(true).Foreground(fg)
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))
)

// maxListedViolations caps the violation list in the terminal report.
const maxListedViolations = 40

// RenderReport formats a full compliance run for terminal output.
func RenderReport(r *domain.Report) string {
	var b strings.Builder
	run := r.Run

	// ── Header ──
	grade := scoring.Grade(run.Score)
	title := headerStyle.Render("tappscheck")
	subtitle := dimStyle.Render("Compliance Score")
	scoreStyled := lipgloss.NewStyle().
		Bold(true).
		Foreground(gradeColor(grade)).
		Render(fmt.Sprintf("%.1f / 100", run.Score))
	gradeStyled := lipgloss.NewStyle().
		Bold(true).
		Foreground(gradeColor(grade)).
		Render(grade)
	stats := dimStyle.Render(fmt.Sprintf("%d files  ·  %d/%d checks passed  ·  %s",
		run.FilesScanned, run.PassedChecks, run.TotalChecks, run.Duration.Round(1e6)))

	b.WriteString(boxStyle.Render(title + "\n" + subtitle + "\n\n" + scoreStyled + "  " + gradeStyled + "\n" + stats))
	b.WriteString("\n\n")

	// ── Categories ──
	renderEffectiveness(&b, run.Breakdown.CategoryEffectiveness)

	b.WriteString("\n")
	b.WriteString("  " + separatorLine)
	b.WriteString("\n\n")

	// ── Violations ──
	renderViolations(&b, run.Violations)

	// ── Trend summary ──
	if r.Trends != nil && r.Trends.Entries >= 2 {
		b.WriteString("\n  " + separatorLine + "\n\n")
		renderTrendSummary(&b, r.Trends)
	}

	// ── Performance ──
	if r.Performance != nil {
		renderSlowBuckets(&b, r.Performance)
	}

	// ── Notices ──
	if len(r.Disabled) > 0 {
		fmt.Fprintf(&b, "\n  %s %s\n", warnTagStyle.Render("note "),
			dimStyle.Render("rules disabled by missing standards: "+strings.Join(r.Disabled, ", ")))
	}
	if r.HistoryStats.Discarded > 0 {
		fmt.Fprintf(&b, "\n  %s %s\n", warnTagStyle.Render("note "),
			dimStyle.Render(fmt.Sprintf("%d history entries failed integrity checks and were ignored", r.HistoryStats.Discarded)))
	}
	if r.HistoryError != "" {
		fmt.Fprintf(&b, "\n  %s %s\n", errorTagStyle.Render("error"),
			dimStyle.Render("history not recorded: "+r.HistoryError))
	}

	b.WriteString("\n")
	return b.String()
}

func renderEffectiveness(b *strings.Builder, eff map[string]domain.Effectiveness) {
	if len(eff) == 0 {
		b.WriteString("  " + dimStyle.Render("No checks ran.") + "\n")
		return
	}
	names := make([]string, 0, len(eff))
	for n := range eff {
		names = append(names, n)
	}
	sort.Strings(names)

	for _, n := range names {
		e := eff[n]
		rate := int(e.Rate + 0.5)
		scoreText := lipgloss.NewStyle().Bold(true).Foreground(scoreColor(rate)).Render(fmt.Sprintf("%3d%%", rate))
		counts := dimStyle.Render(fmt.Sprintf("%d/%d", e.Passed, e.Checks))
		name := catNameStyle.Render(padRight(Label(n), 20))
		fmt.Fprintf(b, "  %s %s  %s %s\n", name, coloredBar(rate, 20), scoreText, counts)
	}
}

func renderViolations(b *strings.Builder, violations []domain.Violation) {
	if len(violations) == 0 {
		b.WriteString("  " + passStyle.Render("No violations found.") + "\n")
		return
	}

	sorted := sortViolations(violations)
	critical, errs, warns := countKinds(sorted)

	b.WriteString("  ")
	b.WriteString(titleStyle.Render("Violations"))
	b.WriteString("  ")
	if critical > 0 {
		b.WriteString(errorTagStyle.Render(fmt.Sprintf("%d critical", critical)))
		b.WriteString("  ")
	}
	if errs > 0 {
		b.WriteString(errorTagStyle.Render(fmt.Sprintf("%d errors", errs)))
		b.WriteString("  ")
	}
	if warns > 0 {
		b.WriteString(warnTagStyle.Render(fmt.Sprintf("%d warnings", warns)))
	}
	b.WriteString("\n\n")

	for i, v := range sorted {
		if i == maxListedViolations {
			fmt.Fprintf(b, "    %s\n", faintStyle.Render(fmt.Sprintf("… and %d more (use --json for the full list)", len(sorted)-i)))
			break
		}
		renderViolation(b, v)
	}
}

func renderViolation(b *strings.Builder, v domain.Violation) {
	loc := v.File
	if v.Line > 0 {
		loc = fmt.Sprintf("%s:%d", v.File, v.Line)
	}
	fmt.Fprintf(b, "    %s %s  %s\n", kindTag(v.Kind), fileStyle.Render(loc), faintStyle.Render(v.Rule))
	fmt.Fprintf(b, "          %s\n", dimStyle.Render(v.Message))
}

func kindTag(k domain.Kind) string {
	switch k {
	case domain.KindCritical:
		return errorTagStyle.Render("crit ")
	case domain.KindError:
		return errorTagStyle.Render("error")
	default:
		return warnTagStyle.Render("warn ")
	}
}

func countKinds(vs []domain.Violation) (critical, errs, warns int) {
	for _, v := range vs {
		switch v.Kind {
		case domain.KindCritical:
			critical++
		case domain.KindError:
			errs++
		default:
			warns++
		}
	}
	return
}

// sortViolations orders by severity, then file, then line, without
// modifying the input.
func sortViolations(vs []domain.Violation) []domain.Violation {
	out := append([]domain.Violation(nil), vs...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Severity.Rank() != b.Severity.Rank() {
			return a.Severity.Rank() < b.Severity.Rank()
		}
		if a.File != b.File {
			return a.File < b.File
		}
		return a.Line < b.Line
	})
	return out
}

func renderSlowBuckets(b *strings.Builder, p *domain.PerformanceReport) {
	var slow []domain.BucketPerformance
	for _, bp := range append(append([]domain.BucketPerformance(nil), p.Sizes...), p.Categories...) {
		if bp.Status == domain.PerformanceSlow {
			slow = append(slow, bp)
		}
	}
	if len(slow) == 0 {
		return
	}
	b.WriteString("\n  " + titleStyle.Render("Performance") + "\n")
	for _, bp := range slow {
		fmt.Fprintf(b, "    %s %s %s\n", warnStyle.Render("●"), padRight(Label(bp.Bucket), 18),
			dimStyle.Render(fmt.Sprintf("avg %.1fms over baseline max %.1fms (%d files)", bp.AvgMs, bp.Baseline.Max, bp.Files)))
	}
}

func coloredBar(score, width int) string {
	filled := max(0, min(score*width/100, width))
	empty := width - filled

	color := scoreColor(score)
	filledStr := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled))
	emptyStr := lipgloss.NewStyle().Foreground(faint).Render(strings.Repeat("░", empty))
	return filledStr + emptyStr
}

func scoreColor(score int) lipgloss.Color {
	switch {
	case score >= 80:
		return success
	case score >= 60:
		return lipgloss.Color("#A3E635") // lime
	case score >= 40:
		return warning
	default:
		return danger
	}
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

func gradeColor(grade string) lipgloss.Color {
	if c, ok := gradeColors[grade]; ok {
		return c
	}
	return fg
}

// Label turns an identifier such as "doc-min-words" or "codeQuality" into
// a display label ("Doc Min Words", "Code Quality").
func Label(id string) string {
	var words []string
	for _, part := range camelcase.Split(id) {
		if strings.IndexFunc(part, func(r rune) bool { return unicode.IsLetter(r) || unicode.IsDigit(r) }) < 0 {
			continue
		}
		r := []rune(part)
		r[0] = unicode.ToUpper(r[0])
		words = append(words, string(r))
	}
	if len(words) == 0 {
		return id
	}
	return strings.Join(words, " ")
}
