package components

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/allowance/internal/tui/theme"
)

// ColorForFraction returns green/yellow/orange/red by how much of a budget
// is used. Anything over budget is red.
func ColorForFraction(f float64, over bool) lipgloss.Color {
	t := theme.Active
	switch {
	case over || f >= 1:
		return t.Red
	case f >= 0.8:
		return t.Orange
	case f >= 0.5:
		return t.Yellow
	default:
		return t.Green
	}
}

// BudgetBar renders a labeled bar filled to fraction (capped at 1) with
// the uncapped percentage beside it.
func BudgetBar(label string, fraction float64, percent int64, over bool, labelW, barWidth int) string {
	t := theme.Active
	fraction = min(max(fraction, 0), 1)
	color := ColorForFraction(fraction, over)

	bar := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithWidth(max(barWidth, 4)),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	pctStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface).Bold(true)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	out := ""
	if labelW > 0 {
		out = labelStyle.Render(fmt.Sprintf("%-*s", labelW, label)) + spaceStyle.Render(" ")
	}
	return out + bar.ViewAs(fraction) + spaceStyle.Render(" ") + pctStyle.Render(fmt.Sprintf("%4d%%", percent))
}
