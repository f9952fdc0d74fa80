package model

import "time"

// Built-in category names seeded for a user with no saved data.
const (
	CategoryFood          = "Food & Cafe"
	CategoryEntertainment = "Entertainment & Hobbies"
	CategoryTransport     = "Transport"
	CategoryOther         = "Other"
)

// BuiltinCategories lists the seeded categories in display order.
var BuiltinCategories = []string{
	CategoryFood,
	CategoryEntertainment,
	CategoryTransport,
	CategoryOther,
}

var categoryIcons = map[string]string{
	CategoryFood:          "🍽️",
	CategoryEntertainment: "🎮",
	CategoryTransport:     "🚗",
	CategoryOther:         "🛍️",
}

// CategoryIcon returns the display icon for a category name.
func CategoryIcon(name string) string {
	if icon, ok := categoryIcons[name]; ok {
		return icon
	}
	return "📝"
}

// CategorySnapshot is one persisted category row.
type CategorySnapshot struct {
	Name   string
	Budget int64
	Spent  int64
}

// Snapshot is the persisted form of a Record.
type Snapshot struct {
	TotalBudget int64
	Categories  []CategorySnapshot
	Expenses    []Expense
	SavedAt     time.Time
}

// DefaultSnapshot is used when no prior data exists: the built-in
// categories with zero budget and zero spending.
func DefaultSnapshot() Snapshot {
	s := Snapshot{}
	for _, name := range BuiltinCategories {
		s.Categories = append(s.Categories, CategorySnapshot{Name: name})
	}
	return s
}

// Snapshot captures r for persistence.
func (r *Record) Snapshot() Snapshot {
	s := Snapshot{
		TotalBudget: r.TotalBudget,
		Expenses:    append([]Expense(nil), r.Expenses...),
	}
	for _, name := range r.Order {
		s.Categories = append(s.Categories, CategorySnapshot{
			Name:   name,
			Budget: r.Budgets[name],
			Spent:  r.Spending[name],
		})
	}
	return s
}

// RecordFromSnapshot rebuilds a Record and normalizes it, so stored
// spending values never override what the expense log says.
func RecordFromSnapshot(s Snapshot) *Record {
	r := NewRecord()
	r.TotalBudget = s.TotalBudget
	for _, c := range s.Categories {
		if _, dup := r.Budgets[c.Name]; !dup {
			r.Order = append(r.Order, c.Name)
		}
		r.Budgets[c.Name] = c.Budget
		r.Spending[c.Name] = c.Spent
	}
	r.Expenses = append(r.Expenses, s.Expenses...)
	r.Normalize()
	return r
}
