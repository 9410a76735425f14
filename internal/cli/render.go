package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/larder/internal/model"
	"github.com/Veraticus/larder/internal/ranking"
	"github.com/charmbracelet/lipgloss"
)

// RenderSections renders every non-empty discovery section. Empty sections
// are listed once at the end so the user can see they were considered.
func RenderSections(sections ranking.Sections) string {
	var blocks []string
	var empty []string

	for _, section := range sections.List() {
		if len(section.Recipes) == 0 {
			empty = append(empty, section.Title)
			continue
		}
		lines := make([]string, 0, len(section.Recipes))
		for _, score := range section.Recipes {
			lines = append(lines, RenderScoreLine(score))
		}
		blocks = append(blocks, Section(
			fmt.Sprintf("%s (%d)", section.Title, len(section.Recipes)),
			strings.Join(lines, "\n"),
		))
	}

	if len(blocks) == 0 {
		return FormatInfo("No recipes to show yet. Import recipes and inventory first.")
	}
	if len(empty) > 0 {
		blocks = append(blocks, SubtleStyle.Render("Nothing in: "+strings.Join(empty, ", ")))
	}
	return lipgloss.JoinVertical(lipgloss.Left, blocks...)
}

// RenderScoreLine renders one recipe as a single summary line.
func RenderScoreLine(score model.RecipeScore) string {
	var b strings.Builder

	b.WriteString(PercentStyle(score.MatchPercentage).Render(fmt.Sprintf("%3d%%", score.MatchPercentage)))
	b.WriteString("  ")
	b.WriteString(RecipeNameStyle.Render(score.Recipe.Name))

	if n := len(score.NearExpiryItems); n > 0 {
		b.WriteString(WarningStyle.Render(fmt.Sprintf("  %s %d expiring", ExpiryIcon, n)))
	}
	if total := score.Recipe.TotalTime(); total > 0 {
		b.WriteString(SubtleStyle.Render(fmt.Sprintf("  %s %s", ClockIcon, total.Round(time.Minute))))
	}
	if len(score.MissingIngredients) > 0 {
		b.WriteString(SubtleStyle.Render("  missing: " + strings.Join(score.MissingIngredients, ", ")))
	}

	return b.String()
}

// RenderScore renders a recipe's full score breakdown.
func RenderScore(score model.RecipeScore) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Match: %s (%d of %d ingredients)\n",
		PercentStyle(score.MatchPercentage).Render(fmt.Sprintf("%d%%", score.MatchPercentage)),
		len(score.AvailableIngredients), len(score.Recipe.Ingredients))
	fmt.Fprintf(&b, "Score: %.1f  (base %.1f, expiring %.1f, category %.1f)\n",
		score.TotalScore, score.Breakdown.BaseMatch, score.Breakdown.ExpiringBonus, score.Breakdown.CategoryBonus)

	for _, m := range score.Matches {
		icon := SuccessStyle.Render(SuccessIcon)
		if !m.Available {
			icon = ErrorStyle.Render(ErrorIcon)
		}
		line := fmt.Sprintf("  %s %s", icon, m.Name)
		if m.Match.Matched() {
			line += SubtleStyle.Render(fmt.Sprintf("  → %s (%s %.2f)", m.Match.ID(), m.Match.Reason, m.Match.Confidence))
		}
		if m.Note != "" {
			line += SubtleStyle.Render("  " + m.Note)
		}
		b.WriteString(line + "\n")
	}

	return Section(score.Recipe.Name, strings.TrimRight(b.String(), "\n"))
}

// RenderTrace renders the tiers the matcher tried for one name.
func RenderTrace(name string, result model.MatchResult) string {
	var b strings.Builder

	if result.Matched() {
		fmt.Fprintf(&b, "%s\n", FormatSuccess(fmt.Sprintf("%s → %s", name, *result.CanonicalID)))
	} else {
		fmt.Fprintf(&b, "%s\n", FormatWarning(fmt.Sprintf("%s → no match", name)))
	}
	fmt.Fprintf(&b, "Reason: %s  Confidence: %.2f\n", result.Reason, result.Confidence)

	for i, step := range result.DebugPath {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, SubtleStyle.Render(step.String()))
	}

	return strings.TrimRight(b.String(), "\n")
}
