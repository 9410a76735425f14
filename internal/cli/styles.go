// Package cli renders larder output for the terminal using lipgloss.
package cli

import (
	"github.com/charmbracelet/lipgloss"
)

// Kitchen palette. The browser reuses these so both surfaces agree.
var (
	PrimaryColor = lipgloss.Color("#6A994E") // basil
	SuccessColor = lipgloss.Color("#A7C957") // fresh herb
	WarningColor = lipgloss.Color("#E9C46A") // saffron
	ErrorColor   = lipgloss.Color("#BC4749") // tomato
	SubtleColor  = lipgloss.Color("#7D7D7D")
)

var (
	SuccessStyle = lipgloss.NewStyle().Foreground(SuccessColor)
	WarningStyle = lipgloss.NewStyle().Foreground(WarningColor)
	ErrorStyle   = lipgloss.NewStyle().Foreground(ErrorColor)
	SubtleStyle  = lipgloss.NewStyle().Foreground(SubtleColor)

	// RecipeNameStyle highlights recipe names in listings.
	RecipeNameStyle = lipgloss.NewStyle().Bold(true)

	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(PrimaryColor)
	sectionStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(PrimaryColor).
			Padding(0, 1)
)

const (
	LarderIcon  = "🧺"
	SuccessIcon = "✓"
	ErrorIcon   = "✗"
	ExpiryIcon  = "⏳"
	ClockIcon   = "⏱️"
)

// Match percentage bands used to colour scores.
const (
	ReadyBand = 90
	CloseBand = 50
)

// PercentStyle colours a match percentage by band.
func PercentStyle(pct int) lipgloss.Style {
	switch {
	case pct >= ReadyBand:
		return SuccessStyle
	case pct >= CloseBand:
		return WarningStyle
	default:
		return ErrorStyle
	}
}

// ExpiryStyle colours an expiry date: red once expired, saffron while inside
// the near-expiry window, plain otherwise.
func ExpiryStyle(expired, nearExpiry bool) lipgloss.Style {
	switch {
	case expired:
		return ErrorStyle
	case nearExpiry:
		return WarningStyle
	default:
		return lipgloss.NewStyle()
	}
}

func FormatSuccess(message string) string { return SuccessStyle.Render(SuccessIcon + " " + message) }
func FormatError(message string) string   { return ErrorStyle.Render(ErrorIcon + " " + message) }
func FormatWarning(message string) string { return WarningStyle.Render("! " + message) }

// FormatInfo renders a hint the user can act on but need not.
func FormatInfo(message string) string { return SubtleStyle.Render(message) }

// FormatTitle renders a command heading.
func FormatTitle(title string) string { return headingStyle.Render(LarderIcon+" "+title) + "\n" }

// Section renders a titled panel, one per discovery section or recipe detail.
func Section(title, body string) string {
	return sectionStyle.Render(lipgloss.JoinVertical(lipgloss.Left, headingStyle.Render(title), body))
}
