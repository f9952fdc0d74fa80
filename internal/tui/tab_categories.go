package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/allowance/internal/cli"
	"github.com/theirongolddev/allowance/internal/report"
	"github.com/theirongolddev/allowance/internal/tui/components"
	"github.com/theirongolddev/allowance/internal/tui/theme"
)

const categoryNameWidth = 26

func (a App) renderCategoriesTab(cw, h int) string {
	t := theme.Active
	rows := report.Categories(a.svc.Book().Active())
	inner := components.CardInnerWidth(cw)

	if len(rows) == 0 {
		dim := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
		return components.ContentCard("Categories", dim.Render("No categories. Press n to add one."), cw)
	}

	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	hint := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	// name, bar, amounts
	amountW := 28
	barW := max(inner-categoryNameWidth-amountW-10, 8)

	// Each category takes one line; keep the cursor visible.
	visible := max(h-4, 1)
	start := max(a.catCursor-visible+1, 0)

	var lines []string
	for i := start; i < len(rows) && i < start+visible; i++ {
		row := rows[i]
		marker := "  "
		bg := t.Surface
		if i == a.catCursor {
			marker = "▸ "
			bg = t.SurfaceHover
		}
		nameStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(bg)
		amountStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(bg)
		if row.OverBudget {
			amountStyle = amountStyle.Foreground(t.Red)
		}

		name := cli.Truncate(row.Icon+" "+row.Name, categoryNameWidth)
		name += strings.Repeat(" ", max(categoryNameWidth-lipgloss.Width(name), 0))
		amounts := fmt.Sprintf("%s / %s", cli.FormatYen(row.Spent), cli.FormatYen(row.Budget))

		line := nameStyle.Render(marker+name+" ") +
			components.BudgetBar("", row.Fraction, row.Percent, row.OverBudget, 0, barW) +
			amountStyle.Render(fmt.Sprintf("  %*s", amountW, amounts))
		lines = append(lines, lipgloss.PlaceHorizontal(inner, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg)))
	}

	body := strings.Join(lines, "\n") + "\n\n" +
		muted.Render(fmt.Sprintf("%d categories", len(rows))) +
		hint.Render("  ·  e edit budget  ·  d delete  ·  a add expense")
	return components.ContentCard("Categories", body, cw)
}
