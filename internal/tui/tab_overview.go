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

func (a App) renderOverviewTab(cw int) string {
	t := theme.Active
	book := a.svc.Book()
	r := book.Active()
	sum := report.Summarize(r)
	alloc := report.Allocation(r)
	rows := report.Categories(r)

	remainingTone := components.ToneGood
	if sum.Remaining < 0 {
		remainingTone = components.ToneBad
	}
	usageTone := components.ToneNormal
	switch {
	case sum.TotalBudget > 0 && sum.UsageRate >= 100:
		usageTone = components.ToneBad
	case sum.UsageRate >= 80:
		usageTone = components.ToneWarn
	}

	var b strings.Builder
	b.WriteString(components.MetricCardRow([]components.Metric{
		{Label: "Total budget", Value: cli.FormatYen(sum.TotalBudget)},
		{Label: "Spent", Value: cli.FormatYen(sum.TotalSpent), Note: fmt.Sprintf("%d expenses", len(r.Expenses))},
		{Label: "Remaining", Value: cli.FormatYen(sum.Remaining), Tone: remainingTone},
		{Label: "Usage", Value: cli.FormatPercent(sum.UsageRate), Tone: usageTone},
	}, cw))
	b.WriteString("\n")

	half := components.LayoutRow(cw, 2)
	b.WriteString(components.CardRow([]string{
		components.ContentCard("Allocation", a.renderAllocation(alloc, components.CardInnerWidth(half[0])), half[0]),
		components.ContentCard("Over budget", renderOverBudget(report.OverBudget(rows)), half[1]),
	}))
	b.WriteString("\n")

	days := report.Daily(r, book.Period())
	amounts := make([]int64, len(days))
	for i, d := range days {
		amounts[i] = d.Amount
	}
	inner := components.CardInnerWidth(cw)
	dim := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	chart := components.Sparkline(amounts, inner)
	if len(days) > 0 {
		first, last := cli.FormatDate(days[0].Date), cli.FormatDate(days[len(days)-1].Date)
		gap := max(min(len(days), inner)-lipgloss.Width(first)-lipgloss.Width(last), 1)
		chart += "\n" + dim.Render(first+strings.Repeat(" ", gap)+last)
	}
	b.WriteString(components.ContentCard("Daily spending", chart, cw))

	return b.String()
}

func (a App) renderAllocation(v report.AllocationView, innerW int) string {
	t := theme.Active
	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	warn := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface).Bold(true)

	barW := max(innerW-16, 8)
	lines := []string{
		components.BudgetBar("Allocated", float64(v.BarPercent)/100, v.Percent, v.Overage > 0, 9, barW),
		muted.Render(fmt.Sprintf("%s of %s allocated", cli.FormatYen(v.Allocated), cli.FormatYen(v.Total))),
	}
	if v.Overage > 0 {
		lines = append(lines, warn.Render("⚠ Categories exceed the total budget by "+cli.FormatYen(v.Overage)))
	} else {
		lines = append(lines, muted.Render(cli.FormatYen(v.Remaining)+" left to allocate"))
	}
	return strings.Join(lines, "\n")
}

func renderOverBudget(rows []report.CategoryRow) string {
	t := theme.Active
	if len(rows) == 0 {
		return lipgloss.NewStyle().Foreground(t.Green).Background(t.Surface).
			Render("All categories within budget")
	}
	red := lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface)
	lines := make([]string, len(rows))
	for i, row := range rows {
		lines[i] = red.Render(fmt.Sprintf("%s %s  %s over", row.Icon, row.Name, cli.FormatYen(-row.Remaining)))
	}
	return strings.Join(lines, "\n")
}
