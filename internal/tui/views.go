package tui

import (
	"fmt"
	"strings"

	"github.com/Veraticus/larder/internal/cli"
	"github.com/Veraticus/larder/internal/model"
	"github.com/charmbracelet/lipgloss"
)

// View renders the browser.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	parts := []string{
		m.theme.Title.Render(cli.LarderIcon + " larder"),
		m.renderStatus(),
		"",
		m.renderTabs(),
		"",
		m.renderList(),
	}

	if score, ok := m.Selected(); ok {
		parts = append(parts, "", m.theme.Detail.Render(cli.RenderScore(score)))
	}
	if m.lastErr != nil {
		parts = append(parts, "", m.theme.Error.Render(cli.ErrorIcon+" "+m.lastErr.Error()))
	}
	parts = append(parts, "", m.help.View(m.keymap))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// renderStatus renders the run state line.
func (m Model) renderStatus() string {
	counts := fmt.Sprintf("%d/%d", m.progress.Done, m.progress.Total)

	switch m.status {
	case model.JobRunning:
		ratio := 0.0
		if m.progress.Total > 0 {
			ratio = float64(m.progress.Done) / float64(m.progress.Total)
		}
		return fmt.Sprintf("%s Matching recipes %s %s", m.spinner.View(), m.bar.ViewAs(ratio), counts)
	case model.JobCompleted:
		return m.theme.Success.Render(fmt.Sprintf("%s %s recipes scored against inventory version %d",
			cli.SuccessIcon, counts, m.version))
	case model.JobCancelled:
		return m.theme.Warning.Render(fmt.Sprintf("Scoring stopped at %s; results are partial", counts))
	default:
		if m.refreshing || m.version == 0 {
			return m.spinner.View() + " Loading inventory..."
		}
		return m.theme.Muted.Render("Idle")
	}
}

func (m Model) renderTabs() string {
	tabs := make([]string, 0, len(m.sections))
	for i, section := range m.sections {
		label := fmt.Sprintf("%s (%d)", section.Title, len(section.Recipes))
		if i == m.section {
			tabs = append(tabs, m.theme.ActiveTab.Render(label))
			continue
		}
		tabs = append(tabs, m.theme.Tab.Render(label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) renderList() string {
	recipes := m.current().Recipes
	if len(recipes) == 0 {
		return m.theme.Muted.Render("Nothing here yet.")
	}

	lines := make([]string, 0, len(recipes))
	for i, score := range recipes {
		marker := "  "
		if i == m.cursor {
			marker = m.theme.Cursor.Render("› ")
		}
		lines = append(lines, marker+cli.RenderScoreLine(score))
	}
	return strings.Join(lines, "\n")
}
