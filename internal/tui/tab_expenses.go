package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/allowance/internal/cli"
	"github.com/theirongolddev/allowance/internal/model"
	"github.com/theirongolddev/allowance/internal/report"
	"github.com/theirongolddev/allowance/internal/tui/components"
	"github.com/theirongolddev/allowance/internal/tui/theme"
)

func (a App) renderExpensesTab(cw, h int) string {
	t := theme.Active
	list := report.Expenses(a.svc.Book().Active())
	inner := components.CardInnerWidth(cw)

	if len(list) == 0 {
		dim := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
		return components.ContentCard("Expenses", dim.Render("No expenses this period. Press a to add one."), cw)
	}

	hint := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	head := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Bold(true)

	const (
		dateW     = 6
		idW       = 8
		categoryW = 24
		amountW   = 12
	)
	descW := max(inner-dateW-idW-categoryW-amountW-10, 10)

	row := func(date, id, category, desc, amount string) string {
		return fmt.Sprintf("  %-*s  %-*s  %s  %s  %*s",
			dateW, date, idW, id,
			fit(category, categoryW), fit(desc, descW),
			amountW, amount)
	}

	visible := max(h-6, 1)
	start := max(a.expCursor-visible+1, 0)

	lines := []string{head.Render(row("Date", "ID", "Category", "Description", "Amount"))}
	for i := start; i < len(list) && i < start+visible; i++ {
		e := list[i]
		bg := t.Surface
		text := row(cli.FormatDate(e.Date), cli.ShortID(e.ID), e.Category, e.Description, cli.FormatYen(e.Amount))
		if i == a.expCursor {
			bg = t.SurfaceHover
			text = "▸" + text[1:]
		}
		style := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(bg)
		lines = append(lines, lipgloss.PlaceHorizontal(inner, lipgloss.Left, style.Render(text),
			lipgloss.WithWhitespaceBackground(bg)))
	}

	body := strings.Join(lines, "\n") + "\n\n" +
		hint.Render(fmt.Sprintf("%d expenses · %s total  ·  d delete", len(list), cli.FormatYen(total(list))))
	return components.ContentCard("Expenses", body, cw)
}

// fit truncates or pads s to exactly w display cells.
func fit(s string, w int) string {
	s = cli.Truncate(s, w)
	return s + strings.Repeat(" ", max(w-lipgloss.Width(s), 0))
}

func total(list []model.Expense) int64 {
	var sum int64
	for _, e := range list {
		sum += e.Amount
	}
	return sum
}
