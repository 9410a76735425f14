package tui

import (
	"github.com/Veraticus/larder/internal/cli"
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the visual style for the browser.
type Theme struct {
	Title     lipgloss.Style
	Tab       lipgloss.Style
	ActiveTab lipgloss.Style
	Cursor    lipgloss.Style
	Detail    lipgloss.Style
	Muted     lipgloss.Style
	Error     lipgloss.Style
	Warning   lipgloss.Style
	Success   lipgloss.Style
	Spinner   lipgloss.Style
}

// DefaultTheme matches the palette of the command line output.
var DefaultTheme = Theme{
	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(cli.PrimaryColor),
	Tab: lipgloss.NewStyle().
		Foreground(cli.SubtleColor).
		Padding(0, 1),
	ActiveTab: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#fafafa")).
		Background(cli.PrimaryColor).
		Padding(0, 1),
	Cursor: lipgloss.NewStyle().
		Bold(true).
		Foreground(cli.PrimaryColor),
	Detail: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#404040")).
		Padding(0, 1),
	Muted: lipgloss.NewStyle().
		Foreground(cli.SubtleColor),
	Error: lipgloss.NewStyle().
		Foreground(cli.ErrorColor).
		Bold(true),
	Warning: lipgloss.NewStyle().
		Foreground(cli.WarningColor),
	Success: lipgloss.NewStyle().
		Foreground(cli.SuccessColor),
	Spinner: lipgloss.NewStyle().
		Foreground(cli.PrimaryColor),
}
