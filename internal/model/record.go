package model

import (
	"slices"
	"time"
)

// Expense is a single dated spend against one category.
type Expense struct {
	ID          string
	Date        time.Time
	Category    string
	Description string
	Amount      int64
}

// Record is one user's budget: a total, per-category sub-budgets with their
// spending accumulators, and the expense log of the current period.
//
// Order, Budgets and Spending always share one key set. Callers outside
// this package mutate a Record only through budget.Book.
type Record struct {
	TotalBudget int64
	Order       []string
	Budgets     map[string]int64
	Spending    map[string]int64
	Expenses    []Expense
}

// NewRecord returns an empty record with no categories.
func NewRecord() *Record {
	return &Record{
		Budgets:  make(map[string]int64),
		Spending: make(map[string]int64),
	}
}

// CategoryNames returns category names in display order.
func (r *Record) CategoryNames() []string {
	return slices.Clone(r.Order)
}

// HasCategory reports whether name is a known category.
func (r *Record) HasCategory(name string) bool {
	_, ok := r.Budgets[name]
	return ok
}

// AddCategory inserts a category with zero spending.
func (r *Record) AddCategory(name string, budget int64) {
	if !r.HasCategory(name) {
		r.Order = append(r.Order, name)
	}
	r.Budgets[name] = budget
	r.Spending[name] = 0
}

// RemoveCategory deletes a category and every expense filed under it.
func (r *Record) RemoveCategory(name string) {
	delete(r.Budgets, name)
	delete(r.Spending, name)
	r.Order = slices.DeleteFunc(r.Order, func(n string) bool { return n == name })
	r.Expenses = slices.DeleteFunc(r.Expenses, func(e Expense) bool { return e.Category == name })
}

// Allocated is the sum of every category budget.
func (r *Record) Allocated() int64 {
	var sum int64
	for _, b := range r.Budgets {
		sum += b
	}
	return sum
}

// TotalSpent is the sum of every expense amount.
func (r *Record) TotalSpent() int64 {
	var sum int64
	for _, e := range r.Expenses {
		sum += e.Amount
	}
	return sum
}

// FindExpense returns the index of the expense with id, or -1.
func (r *Record) FindExpense(id string) int {
	return slices.IndexFunc(r.Expenses, func(e Expense) bool { return e.ID == id })
}

// Normalize re-establishes the record invariants: every category named by
// a budget, a spending entry or an expense gets a budget (0 if missing),
// and every spending accumulator is recomputed from the expense log.
func (r *Record) Normalize() {
	if r.Budgets == nil {
		r.Budgets = make(map[string]int64)
	}

	seen := make(map[string]bool, len(r.Order))
	order := make([]string, 0, len(r.Order))
	add := func(name string) {
		if seen[name] {
			return
		}
		seen[name] = true
		order = append(order, name)
		if _, ok := r.Budgets[name]; !ok {
			r.Budgets[name] = 0
		}
	}

	for _, name := range r.Order {
		add(name)
	}
	// Map iteration order is random; sort the stragglers for stable output.
	var extra []string
	for name := range r.Budgets {
		if !seen[name] {
			extra = append(extra, name)
		}
	}
	for name := range r.Spending {
		if !seen[name] && !slices.Contains(extra, name) {
			extra = append(extra, name)
		}
	}
	slices.Sort(extra)
	for _, name := range extra {
		add(name)
	}
	for _, e := range r.Expenses {
		add(e.Category)
	}

	r.Order = order
	r.Spending = make(map[string]int64, len(order))
	for _, name := range order {
		r.Spending[name] = 0
	}
	for _, e := range r.Expenses {
		r.Spending[e.Category] += e.Amount
	}
}

// Clone returns a deep copy of r.
func (r *Record) Clone() *Record {
	c := &Record{
		TotalBudget: r.TotalBudget,
		Order:       slices.Clone(r.Order),
		Budgets:     make(map[string]int64, len(r.Budgets)),
		Spending:    make(map[string]int64, len(r.Spending)),
		Expenses:    slices.Clone(r.Expenses),
	}
	for k, v := range r.Budgets {
		c.Budgets[k] = v
	}
	for k, v := range r.Spending {
		c.Spending[k] = v
	}
	return c
}
