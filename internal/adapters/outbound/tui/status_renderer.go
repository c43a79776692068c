package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/wtthornton/tappscheck/internal/domain"
)

// RenderValidation formats the result of `tappscheck validate`.
func RenderValidation(r *domain.ValidationReport) string {
	var b strings.Builder

	b.WriteString("\n  " + titleStyle.Render("Validation") + "  " + statusTag(r.Status) + "\n\n")
	for _, c := range r.Checks {
		line := fmt.Sprintf("    %s %s", statusDot(c.Status), padRight(c.Name, 12))
		if c.Message != "" {
			line += dimStyle.Render(c.Message)
		}
		b.WriteString(line + "\n")
	}
	if len(r.Disabled) > 0 {
		b.WriteString("\n  " + sectionHeaderStyle.Render("Disabled rules") + "\n")
		for _, id := range r.Disabled {
			fmt.Fprintf(&b, "    %s %s\n", skipStyle.Render("○"), id)
		}
	}
	if len(r.Suggestions) > 0 {
		b.WriteString("\n")
		for _, s := range r.Suggestions {
			b.WriteString("  " + hintStyle.Render("→ "+s) + "\n")
		}
	}
	b.WriteString("\n")
	return b.String()
}

func statusTag(status string) string {
	switch status {
	case domain.StatusFail:
		return errorTagStyle.Render("FAIL")
	case domain.StatusWarn:
		return warnTagStyle.Render("WARN")
	default:
		return passStyle.Bold(true).Render("PASS")
	}
}

func statusDot(status string) string {
	switch status {
	case domain.StatusFail:
		return failStyle.Render("✗")
	case domain.StatusWarn:
		return warnStyle.Render("!")
	default:
		return passStyle.Render("✓")
	}
}

// RenderBaselines formats stored performance baselines.
func RenderBaselines(bl *domain.PerformanceBaselines) string {
	var b strings.Builder

	b.WriteString("\n  " + titleStyle.Render("Performance Baselines"))
	if bl.UpdatedAt != "" {
		b.WriteString("  " + dimStyle.Render("updated "+bl.UpdatedAt))
	} else {
		b.WriteString("  " + dimStyle.Render("defaults"))
	}
	b.WriteString("\n\n")

	b.WriteString("  " + sectionHeaderStyle.Render("File size") + "\n")
	for _, bucket := range []string{domain.BucketSmall, domain.BucketMedium, domain.BucketLarge} {
		renderBaseline(&b, bucket, bl.SizeBaseline(bucket))
	}

	if len(bl.Categories) > 0 {
		b.WriteString("\n  " + sectionHeaderStyle.Render("Category") + "\n")
		names := make([]string, 0, len(bl.Categories))
		for n := range bl.Categories {
			names = append(names, n)
		}
		sort.Strings(names)
		for _, n := range names {
			renderBaseline(&b, n, bl.Categories[n])
		}
	}
	b.WriteString("\n")
	return b.String()
}

func renderBaseline(b *strings.Builder, name string, bl domain.Baseline) {
	fmt.Fprintf(b, "    %s %s\n", catNameStyle.Render(padRight(Label(name), 16)),
		dimStyle.Render(fmt.Sprintf("avg %.1fms  min %.1fms  max %.1fms  (%d samples)", bl.Avg, bl.Min, bl.Max, bl.Samples)))
}
