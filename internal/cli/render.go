package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/allowance/internal/model"
	"github.com/theirongolddev/allowance/internal/report"
)

// Theme colors (Flexoki Dark)
var (
	ColorBorder    = lipgloss.Color("#282726")
	ColorTextDim   = lipgloss.Color("#575653")
	ColorTextMuted = lipgloss.Color("#6F6E69")
	ColorText      = lipgloss.Color("#FFFCF0")
	ColorAccent    = lipgloss.Color("#3AA99F")
	ColorGreen     = lipgloss.Color("#879A39")
	ColorOrange    = lipgloss.Color("#DA702C")
	ColorRed       = lipgloss.Color("#D14D41")
	ColorYellow    = lipgloss.Color("#D0A215")
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText).
			Align(lipgloss.Center)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	valueStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	mutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	goodStyle = lipgloss.NewStyle().
			Foreground(ColorGreen)

	warnStyle = lipgloss.NewStyle().
			Foreground(ColorOrange)

	overStyle = lipgloss.NewStyle().
			Foreground(ColorRed).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(ColorTextDim)
)

// Table represents a bordered text table for CLI output.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
	Widths  []int // optional column widths, auto-calculated if nil
}

// RenderTitle renders a centered title bar in a bordered box.
func RenderTitle(title string) string {
	width := 55
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Width(width).
		Align(lipgloss.Center).
		Padding(0, 1)

	return border.Render(titleStyle.Render(title))
}

// RenderTable renders a bordered table with headers and rows. The first
// column is left-aligned, the rest right-aligned. A row holding the single
// cell "---" draws a separator.
func RenderTable(t Table) string {
	if len(t.Rows) == 0 && len(t.Headers) == 0 {
		return ""
	}

	numCols := len(t.Headers)
	if numCols == 0 && len(t.Rows) > 0 {
		numCols = len(t.Rows[0])
	}

	widths := make([]int, numCols)
	if t.Widths != nil {
		copy(widths, t.Widths)
	} else {
		for i, h := range t.Headers {
			widths[i] = max(widths[i], lipgloss.Width(h))
		}
		for _, row := range t.Rows {
			for i, cell := range row {
				if i < numCols {
					widths[i] = max(widths[i], lipgloss.Width(cell))
				}
			}
		}
	}

	rule := func(left, mid, right string) string {
		var b strings.Builder
		b.WriteString(dimStyle.Render(left))
		for i, w := range widths {
			b.WriteString(dimStyle.Render(strings.Repeat("─", w+2)))
			if i < numCols-1 {
				b.WriteString(dimStyle.Render(mid))
			}
		}
		b.WriteString(dimStyle.Render(right))
		b.WriteString("\n")
		return b.String()
	}

	var b strings.Builder

	if t.Title != "" {
		b.WriteString("  ")
		b.WriteString(headerStyle.Render(t.Title))
		b.WriteString("\n")
	}

	b.WriteString(rule("╭", "┬", "╮"))

	if len(t.Headers) > 0 {
		b.WriteString(dimStyle.Render("│"))
		for i, h := range t.Headers {
			b.WriteString(headerStyle.Render(" " + padRight(h, widths[i]) + " "))
			if i < numCols-1 {
				b.WriteString(dimStyle.Render("│"))
			}
		}
		b.WriteString(dimStyle.Render("│"))
		b.WriteString("\n")
		b.WriteString(rule("├", "┼", "┤"))
	}

	for _, row := range t.Rows {
		if len(row) == 1 && row[0] == "---" {
			b.WriteString(rule("├", "┼", "┤"))
			continue
		}

		b.WriteString(dimStyle.Render("│"))
		for i := 0; i < numCols; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			var padded string
			if i == 0 {
				padded = " " + padRight(cell, widths[i]) + " "
			} else {
				padded = " " + padLeft(cell, widths[i]) + " "
			}
			b.WriteString(valueStyle.Render(padded))
			if i < numCols-1 {
				b.WriteString(dimStyle.Render("│"))
			}
		}
		b.WriteString(dimStyle.Render("│"))
		b.WriteString("\n")
	}

	b.WriteString(rule("╰", "┴", "╯"))
	return b.String()
}

// RenderProgressBar renders a text bar filled to fraction (0..1).
func RenderProgressBar(fraction float64, width int) string {
	fraction = min(max(fraction, 0), 1)
	filled := min(int(fraction*float64(width)+0.5), width)
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// RenderSparkline generates a unicode block sparkline from a series of values.
func RenderSparkline(values []int64) string {
	if len(values) == 0 {
		return ""
	}

	blocks := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	peak := values[0]
	for _, v := range values[1:] {
		peak = max(peak, v)
	}
	if peak == 0 {
		peak = 1
	}

	var b strings.Builder
	for _, v := range values {
		idx := int(v * int64(len(blocks)-1) / peak)
		idx = min(max(idx, 0), len(blocks)-1)
		b.WriteRune(blocks[idx])
	}
	return b.String()
}

// SummaryTable lays out the headline totals.
func SummaryTable(s report.Summary) Table {
	remaining := FormatYen(s.Remaining)
	if s.Remaining < 0 {
		remaining = overStyle.Render(remaining)
	}
	return Table{
		Title:   "Summary",
		Headers: []string{"", "Amount"},
		Rows: [][]string{
			{"Total budget", FormatYen(s.TotalBudget)},
			{"Spent", FormatYen(s.TotalSpent)},
			{"Remaining", remaining},
			{"---"},
			{"Usage", FormatPercent(s.UsageRate)},
		},
	}
}

// CategoryTable lists every category with its budget, spending and bar.
func CategoryTable(rows []report.CategoryRow) Table {
	t := Table{
		Title:   "Categories",
		Headers: []string{"Category", "Budget", "Spent", "Remaining", "Used"},
	}
	for _, r := range rows {
		bar := RenderProgressBar(r.Fraction, 12)
		switch {
		case r.OverBudget:
			bar = overStyle.Render(bar)
		case r.Fraction >= 0.8:
			bar = warnStyle.Render(bar)
		default:
			bar = goodStyle.Render(bar)
		}
		remaining := FormatYen(r.Remaining)
		if r.OverBudget {
			remaining = overStyle.Render(remaining)
		}
		t.Rows = append(t.Rows, []string{
			r.Icon + " " + r.Name,
			FormatYen(r.Budget),
			FormatYen(r.Spent),
			remaining,
			bar + " " + padLeft(FormatPercent(r.Percent), 4),
		})
	}
	return t
}

// ExpenseTable lists expenses in the order given.
func ExpenseTable(expenses []model.Expense) Table {
	t := Table{
		Title:   "Expenses",
		Headers: []string{"Date", "ID", "Category", "Description", "Amount"},
	}
	for _, e := range expenses {
		t.Rows = append(t.Rows, []string{
			FormatDate(e.Date),
			ShortID(e.ID),
			model.CategoryIcon(e.Category) + " " + Truncate(e.Category, 24),
			Truncate(e.Description, 32),
			FormatYen(e.Amount),
		})
	}
	return t
}

// RenderAllocation renders the allocation bar and, when categories claim
// more than the total budget, a warning line.
func RenderAllocation(v report.AllocationView, width int) string {
	var b strings.Builder
	b.WriteString("  ")
	b.WriteString(headerStyle.Render("Allocation"))
	b.WriteString("\n  ")

	bar := RenderProgressBar(float64(v.BarPercent)/100, width)
	if v.Overage > 0 {
		bar = overStyle.Render(bar)
	} else {
		bar = goodStyle.Render(bar)
	}
	b.WriteString(bar)
	fmt.Fprintf(&b, " %s\n", FormatPercent(v.Percent))

	fmt.Fprintf(&b, "  %s %s   %s %s   %s %s\n",
		mutedStyle.Render("Allocated"), valueStyle.Render(FormatYen(v.Allocated)),
		mutedStyle.Render("Total"), valueStyle.Render(FormatYen(v.Total)),
		mutedStyle.Render("Unallocated"), valueStyle.Render(FormatYen(v.Remaining)))

	if v.Overage > 0 {
		b.WriteString("  ")
		b.WriteString(warnStyle.Render(fmt.Sprintf("⚠ Categories exceed the total budget by %s", FormatYen(v.Overage))))
		b.WriteString("\n")
	}
	return b.String()
}

// RenderDaily renders a one-line sparkline of spending per day.
func RenderDaily(days []report.DaySpend) string {
	if len(days) == 0 {
		return ""
	}
	values := make([]int64, len(days))
	var total int64
	for i, d := range days {
		values[i] = d.Amount
		total += d.Amount
	}
	return fmt.Sprintf("  %s %s %s  %s\n",
		mutedStyle.Render(FormatDate(days[0].Date)),
		goodStyle.Render(RenderSparkline(values)),
		mutedStyle.Render(FormatDate(days[len(days)-1].Date)),
		valueStyle.Render(FormatYen(total)))
}
