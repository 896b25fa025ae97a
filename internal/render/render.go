// Package render produces Markdown output from an assessment result.
package render

import (
	"fmt"
	"strings"

	"github.com/dshills/fitcheck/internal/assessment"
)

// Markdown renders a result as a Markdown report.
func Markdown(r *assessment.Result) string {
	var b strings.Builder

	// Summary
	b.WriteString("# Career Fit Assessment\n\n")
	if r.Instrument != "" {
		fmt.Fprintf(&b, "**Instrument:** %s\n", r.Instrument)
	}
	fmt.Fprintf(&b, "**Overall:** %d / 100\n", r.Overall)
	fmt.Fprintf(&b, "**Recommendation:** %s (%s)\n", r.Recommendation, r.Status)
	if r.AssessmentID != "" {
		fmt.Fprintf(&b, "**Assessment ID:** %s\n", r.AssessmentID)
	}
	b.WriteString("\n")

	if r.Guidance.Headline != "" {
		fmt.Fprintf(&b, "## %s\n\n", r.Guidance.Headline)
	}
	if r.Guidance.Narrative != "" {
		fmt.Fprintf(&b, "%s\n\n", r.Guidance.Narrative)
	}

	// Scores
	b.WriteString("## Scores\n\n")
	b.WriteString("| Section | Score |\n|---|---|\n")
	for _, sec := range r.Sections {
		fmt.Fprintf(&b, "| %s | %d%% |\n", sec.Title, sec.Score)
	}
	b.WriteString("\n")

	for _, sec := range r.Sections {
		renderSection(&b, sec)
	}

	if len(r.Guidance.NextSteps) > 0 {
		b.WriteString("## Next Steps\n\n")
		for i, s := range r.Guidance.NextSteps {
			fmt.Fprintf(&b, "%d. %s\n", i+1, s)
		}
		b.WriteString("\n")
	}

	if len(r.Guidance.AlternativeRoles) > 0 {
		b.WriteString("## Alternative Roles\n\n")
		for _, role := range r.Guidance.AlternativeRoles {
			fmt.Fprintf(&b, "- %s\n", role)
		}
		b.WriteString("\n")
	}

	// Input
	if r.Input.RecordFile != "" {
		b.WriteString("## Input\n\n")
		fmt.Fprintf(&b, "- %s (%s)\n", r.Input.RecordFile, r.Input.RecordHash)
		if !r.Input.Strict {
			b.WriteString("- Scored in permissive mode\n")
		}
		b.WriteString("\n")
	}

	return b.String()
}

func renderSection(b *strings.Builder, sec assessment.SectionResult) {
	fmt.Fprintf(b, "### %s: %d%%\n\n", sec.Title, sec.Score)
	for _, cat := range sec.Categories {
		fmt.Fprintf(b, "- %s: %d%% %s\n", cat.Title, cat.Score, bar(cat.Score))
	}
	b.WriteString("\n")
}

// bar draws a ten-cell text gauge for a percentage.
func bar(score int) string {
	filled := max(0, min(score/10, 10))
	return "`" + strings.Repeat("█", filled) + strings.Repeat("░", 10-filled) + "`"
}
