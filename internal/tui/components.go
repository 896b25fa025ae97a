package tui

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/dshills/fitcheck/internal/assessment"
	"github.com/dshills/fitcheck/internal/instrument"
)

// progressBar renders a horizontal bar for percent in [0,1].
func progressBar(label string, percent float64, width int) string {
	var b strings.Builder
	if label != "" {
		b.WriteString(bodyStyle.Render(label) + "  ")
	}
	barWidth := width - lipgloss.Width(b.String()) - 6
	if barWidth < 4 {
		barWidth = 4
	}
	filled := int(float64(barWidth) * percent)
	filled = max(0, min(filled, barWidth))

	b.WriteString(lipgloss.NewStyle().Background(colorSecondary).Render(strings.Repeat(" ", filled)))
	b.WriteString(lipgloss.NewStyle().Background(colorBorder).Render(strings.Repeat(" ", barWidth-filled)))
	b.WriteString(subtitleStyle.Render(fmt.Sprintf("  %d%%", int(percent*100+0.5))))
	return b.String()
}

// likertRow renders a question with its 1..5 scale. value 0 means unanswered.
func likertRow(q instrument.Question, n, value int, focused bool, scale instrument.Scale) string {
	prompt := fmt.Sprintf("%d. %s", n, q.Prompt)
	if focused {
		prompt = selectedStyle.Render("▸ " + prompt)
	} else {
		prompt = bodyStyle.Render("  " + prompt)
	}

	var cells []string
	for v := int(assessment.MinLikert); v <= int(assessment.MaxLikert); v++ {
		cell := fmt.Sprintf(" %d ", v)
		switch {
		case v == value:
			cells = append(cells, lipgloss.NewStyle().Background(colorPrimary).Foreground(colorText).Bold(true).Render(cell))
		case focused:
			cells = append(cells, bodyStyle.Render(cell))
		default:
			cells = append(cells, subtitleStyle.Render(cell))
		}
	}
	scaleLine := "    " + hintStyle.Render(scale.Low) + " " + strings.Join(cells, "") + " " + hintStyle.Render(scale.High)
	return prompt + "\n" + scaleLine
}

// choiceRow renders a multiple-choice question. selected is an option index
// or assessment.NoSelection.
func choiceRow(q instrument.Question, n, selected int, focused bool) string {
	prompt := fmt.Sprintf("%d. %s", n, q.Prompt)
	if focused {
		prompt = selectedStyle.Render("▸ " + prompt)
	} else {
		prompt = bodyStyle.Render("  " + prompt)
	}
	lines := []string{prompt}
	for i, opt := range q.Options {
		marker := "○"
		style := subtitleStyle
		if focused {
			style = bodyStyle
		}
		if i == selected {
			marker = "●"
			style = selectedStyle
		}
		lines = append(lines, style.Render(fmt.Sprintf("    %s %s) %s", marker, instrument.OptionLabel(i), opt)))
	}
	return strings.Join(lines, "\n")
}
