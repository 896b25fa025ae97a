package tui

import (
	"charm.land/lipgloss/v2"

	"github.com/dshills/fitcheck/internal/assessment"
)

// Palette
var (
	colorPrimary   = lipgloss.Color("#2563EB") // Blue
	colorSecondary = lipgloss.Color("#0EA5E9") // Sky
	colorSuccess   = lipgloss.Color("#22C55E") // Green
	colorWarning   = lipgloss.Color("#F59E0B") // Amber
	colorError     = lipgloss.Color("#F43F5E") // Rose
	colorText      = lipgloss.Color("#F8FAFC")
	colorTextDim   = lipgloss.Color("#94A3B8")
	colorBorder    = lipgloss.Color("#334155")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(colorTextDim)

	bodyStyle = lipgloss.NewStyle().
			Foreground(colorText)

	hintStyle = lipgloss.NewStyle().
			Foreground(colorTextDim).
			Italic(true)

	selectedStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorError)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(1, 2)
)

// recommendationStyle colors a recommendation badge by tier.
func recommendationStyle(r assessment.Recommendation) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	switch r {
	case assessment.RecommendationStrongFit:
		return base.Background(colorSuccess).Foreground(lipgloss.Color("#0F172A"))
	case assessment.RecommendationPotentialFit:
		return base.Background(colorWarning).Foreground(lipgloss.Color("#0F172A"))
	default:
		return base.Background(colorError).Foreground(colorText)
	}
}
