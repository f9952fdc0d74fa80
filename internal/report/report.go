// Package report derives every displayed figure from a budget record.
// Nothing here is cached: each call recomputes from the record it is given.
package report

import (
	"sort"
	"time"

	"github.com/theirongolddev/allowance/internal/model"
	"github.com/theirongolddev/allowance/internal/money"
)

// Summary is the headline view of a record.
type Summary struct {
	TotalBudget int64
	TotalSpent  int64
	Remaining   int64 // may be negative
	UsageRate   int64 // whole percent, 0 when TotalBudget is 0
}

// CategoryRow is one line of the category breakdown.
type CategoryRow struct {
	Name       string
	Icon       string
	Budget     int64
	Spent      int64
	Remaining  int64
	Fraction   float64 // progress, capped at 1
	Percent    int64   // spent/budget, uncapped
	OverBudget bool
}

// AllocationView compares the sum of category budgets with the total.
type AllocationView struct {
	Total      int64
	Allocated  int64
	Remaining  int64
	BarPercent int64 // capped at 100
	Percent    int64 // uncapped
	// Overage is how far allocation exceeds the total; 0 when it does not.
	Overage int64
}

// DaySpend is the amount spent on one calendar day.
type DaySpend struct {
	Date   time.Time
	Amount int64
}

// Summarize computes the headline totals of r.
func Summarize(r *model.Record) Summary {
	spent := r.TotalSpent()
	return Summary{
		TotalBudget: r.TotalBudget,
		TotalSpent:  spent,
		Remaining:   r.TotalBudget - spent,
		UsageRate:   money.Percent(spent, r.TotalBudget),
	}
}

// Categories returns one row per category in display order.
func Categories(r *model.Record) []CategoryRow {
	rows := make([]CategoryRow, 0, len(r.Order))
	for _, name := range r.Order {
		budget, spent := r.Budgets[name], r.Spending[name]
		rows = append(rows, CategoryRow{
			Name:       name,
			Icon:       model.CategoryIcon(name),
			Budget:     budget,
			Spent:      spent,
			Remaining:  budget - spent,
			Fraction:   money.Fraction(spent, budget),
			Percent:    money.Percent(spent, budget),
			OverBudget: spent > budget,
		})
	}
	return rows
}

// Expenses returns a copy of the expense log, newest date first. Expenses
// sharing a date keep their insertion order.
func Expenses(r *model.Record) []model.Expense {
	out := make([]model.Expense, len(r.Expenses))
	copy(out, r.Expenses)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}

// Allocation reports how much of the total budget categories have claimed.
func Allocation(r *model.Record) AllocationView {
	allocated := r.Allocated()
	v := AllocationView{
		Total:     r.TotalBudget,
		Allocated: allocated,
		Remaining: r.TotalBudget - allocated,
		Percent:   money.Percent(allocated, r.TotalBudget),
	}
	v.BarPercent = min(v.Percent, 100)
	if v.Remaining < 0 {
		v.Overage = -v.Remaining
	}
	return v
}

// Daily returns spending per day across period p, oldest first. Days with
// no expenses are included as zeros so charts show gaps.
func Daily(r *model.Record, p model.Period) []DaySpend {
	byDay := make(map[string]int64)
	for _, e := range r.Expenses {
		byDay[e.Date.Format("2006-01-02")] += e.Amount
	}

	var days []DaySpend
	for day := p.Start(); !day.After(p.End()); day = day.AddDate(0, 0, 1) {
		days = append(days, DaySpend{Date: day, Amount: byDay[day.Format("2006-01-02")]})
	}
	return days
}

// OverBudget returns the categories whose spending exceeds their budget.
func OverBudget(rows []CategoryRow) []CategoryRow {
	var out []CategoryRow
	for _, row := range rows {
		if row.OverBudget {
			out = append(out, row)
		}
	}
	return out
}
