package instrument

import (
	"fmt"
	"strings"
)

var optionLabels = []string{"A", "B", "C", "D", "E", "F", "G", "H"}

// OptionLabel returns the letter shown before option i.
func OptionLabel(i int) string {
	if i >= 0 && i < len(optionLabels) {
		return optionLabels[i]
	}
	return fmt.Sprint(i + 1)
}

// FormatMarkdown renders the instrument as a Markdown questionnaire. Answer
// keys are only included when withKey is set.
func FormatMarkdown(inst *Instrument, withKey bool) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", inst.Title)
	if inst.Tagline != "" {
		fmt.Fprintf(&b, "_%s_\n\n", inst.Tagline)
	}
	if inst.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", strings.TrimSpace(inst.Description))
	}
	if inst.Duration != "" {
		fmt.Fprintf(&b, "**Duration:** %s, %d questions\n\n", inst.Duration, inst.QuestionCount())
	}

	writeList(&b, "Career Outcomes", inst.CareerOutcomes)
	writeList(&b, "Key Success Traits", inst.SuccessTraits)

	for i, sec := range inst.Sections {
		fmt.Fprintf(&b, "## %d. %s\n\n", i+1, sec.Title)
		if sec.Kind == KindLikert {
			fmt.Fprintf(&b, "Answer each statement from 1 (%s) to 5 (%s).\n\n", sec.Scale.Low, sec.Scale.High)
		}
		for _, cat := range sec.Categories {
			fmt.Fprintf(&b, "### %s\n\n", cat.Title)
			for k, q := range cat.Questions {
				fmt.Fprintf(&b, "%d. %s\n", k+1, q.Prompt)
				for o, opt := range q.Options {
					marker := ""
					if withKey && o == q.Correct {
						marker = " (correct)"
					}
					fmt.Fprintf(&b, "   - %s) %s%s\n", OptionLabel(o), opt, marker)
				}
			}
			b.WriteString("\n")
		}
	}

	return b.String()
}

func writeList(b *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "### %s\n\n", title)
	for _, it := range items {
		fmt.Fprintf(b, "- %s\n", it)
	}
	b.WriteString("\n")
}
