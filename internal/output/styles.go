// Package output provides styled terminal rendering for vitalwatch reports.
package output

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/vitalwatch/vitalwatch/internal/vitals"
)

// Color constants for consistent styling across the CLI.
var (
	// ColorPrimary is used for headers and emphasis.
	ColorPrimary = lipgloss.Color("#64b5f6")

	// ColorGood is used for good ratings and improvements.
	ColorGood = lipgloss.Color("#66bb6a")

	// ColorPoor is used for poor ratings and regressions.
	ColorPoor = lipgloss.Color("#ef5350")

	// ColorWarn is used for needs-improvement ratings.
	ColorWarn = lipgloss.Color("#fff59d")

	// ColorMuted is used for secondary text and borders.
	ColorMuted = lipgloss.Color("#888888")
)

// Styles reused across report sections.
var (
	StyleHeader = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	StyleGood = lipgloss.NewStyle().
			Foreground(ColorGood)

	StylePoor = lipgloss.NewStyle().
			Foreground(ColorPoor)

	StyleWarn = lipgloss.NewStyle().
			Foreground(ColorWarn)

	StyleMuted = lipgloss.NewStyle().
			Foreground(ColorMuted)

	StyleBold = lipgloss.NewStyle().
			Bold(true)

	StyleLabel = lipgloss.NewStyle().Width(26)
)

// noColor tracks whether color output is disabled.
var noColor bool

// SetNoColor disables or enables color output globally. When disabled,
// all package-level styles are reassigned to unstyled renderers.
func SetNoColor(disabled bool) {
	noColor = disabled
	if disabled {
		plain := lipgloss.NewStyle()
		StyleHeader = plain
		StyleGood = plain
		StylePoor = plain
		StyleWarn = plain
		StyleMuted = plain
		StyleBold = plain
		StyleLabel = plain.Width(26)
	}
}

// IsNoColor returns whether color output is currently disabled.
func IsNoColor() bool {
	return noColor
}

// RatingStyle returns the style matching a rating band.
func RatingStyle(r vitals.Rating) lipgloss.Style {
	switch r {
	case vitals.RatingGood:
		return StyleGood
	case vitals.RatingNeedsImprovement:
		return StyleWarn
	case vitals.RatingPoor:
		return StylePoor
	default:
		return StyleMuted
	}
}
