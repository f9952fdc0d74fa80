package budget

import (
	"fmt"
	"slices"
	"strings"

	"github.com/theirongolddev/allowance/internal/model"
	"github.com/theirongolddev/allowance/internal/money"
)

// Action is a destructive operation whose preconditions have passed. It
// changes nothing until Apply is called; dropping it is how a declined
// confirmation is expressed.
type Action struct {
	// Title is a short heading for the confirmation surface.
	Title string
	// Prompt is the yes/no question shown to the user.
	Prompt string
	// Strong is set when the operation destroys recorded spending.
	Strong bool
	// Success is the notification to show once applied.
	Success string

	apply func()
}

// Apply performs the operation and returns the success message. Apply
// re-resolves its target, so applying after the target is gone is a no-op.
func (a *Action) Apply() string {
	a.apply()
	return a.Success
}

// AddExpense validates in and appends it to the active record.
func (b *Book) AddExpense(in ExpenseInput) (model.Expense, error) {
	date, amount, err := ValidateExpense(in)
	if err != nil {
		return model.Expense{}, err
	}

	r := b.Active()
	category := strings.TrimSpace(in.Category)
	if !r.HasCategory(category) {
		return model.Expense{}, categoryNotFound(category)
	}

	e := model.Expense{
		ID:          b.newID(),
		Date:        date,
		Category:    category,
		Description: strings.TrimSpace(in.Description),
		Amount:      amount,
	}
	r.Expenses = append(r.Expenses, e)
	r.Spending[category] += amount
	return e, nil
}

// DeleteExpense prepares removal of the expense with id.
func (b *Book) DeleteExpense(id string) (*Action, error) {
	user := b.active
	r := b.Active()
	idx := r.FindExpense(id)
	if idx < 0 {
		return nil, withMessage(ErrNotFound, "expense to delete was not found")
	}
	e := r.Expenses[idx]

	return &Action{
		Title:   "Delete expense",
		Prompt:  fmt.Sprintf("Delete %q?", e.Description),
		Success: "Expense deleted",
		apply: func() {
			r := b.records[user]
			idx := r.FindExpense(id)
			if idx < 0 {
				return
			}
			e := r.Expenses[idx]
			r.Spending[e.Category] -= e.Amount
			r.Expenses = slices.Delete(r.Expenses, idx, idx+1)
		},
	}, nil
}

// SetTotalBudget validates amount and stores it as the total budget. A
// total below the current allocation is accepted and surfaces as an
// over-allocation warning.
func (b *Book) SetTotalBudget(amount string) (int64, error) {
	n, err := ValidateTotalBudget(amount)
	if err != nil {
		return 0, err
	}
	b.Active().TotalBudget = n
	return n, nil
}

// AddCategory validates and inserts a category with zero spending.
func (b *Book) AddCategory(name, budget string) (string, int64, error) {
	r := b.Active()
	name, n, err := ValidateCategory(r, name, budget)
	if err != nil {
		return "", 0, err
	}
	r.AddCategory(name, n)
	return name, n, nil
}

// CategoryBudget returns the current budget of a category, used as the
// default when prompting for a new value.
func (b *Book) CategoryBudget(name string) (int64, error) {
	name = strings.TrimSpace(name)
	r := b.Active()
	if !r.HasCategory(name) {
		return 0, categoryNotFound(name)
	}
	return r.Budgets[name], nil
}

// EditCategoryBudget replaces a category's budget. Spending is untouched.
func (b *Book) EditCategoryBudget(name, budget string) (int64, error) {
	name = strings.TrimSpace(name)
	r := b.Active()
	n, err := ValidateCategoryEdit(r, name, budget)
	if err != nil {
		return 0, err
	}
	r.Budgets[name] = n
	return n, nil
}

// DeleteCategory prepares removal of a category and all its expenses.
func (b *Book) DeleteCategory(name string) (*Action, error) {
	name = strings.TrimSpace(name)
	user := b.active
	r := b.Active()
	if !r.HasCategory(name) {
		return nil, categoryNotFound(name)
	}

	a := &Action{
		Title:   "Delete category",
		Prompt:  fmt.Sprintf("Delete category %q?", name),
		Success: fmt.Sprintf("Category %q deleted", name),
		apply: func() {
			r := b.records[user]
			if r.HasCategory(name) {
				r.RemoveCategory(name)
			}
		},
	}
	if r.Spending[name] > 0 {
		a.Strong = true
		a.Prompt = fmt.Sprintf("Category %q has recorded expenses. Deleting it also deletes those expenses. Continue?", name)
	}
	return a, nil
}

// ResetPeriod prepares clearing the expense log and every spending
// accumulator. Categories and budgets are kept.
func (b *Book) ResetPeriod() *Action {
	user := b.active
	p := b.Period()
	return &Action{
		Title: "Reset period",
		Prompt: fmt.Sprintf("Reset data for %s?\n\n"+
			"This deletes:\n  • every expense\n  • each category's spending\n\n"+
			"Categories and budgets are kept.", p.RangeLabel()),
		Success: fmt.Sprintf("Data for %s reset", p.Label()),
		apply: func() {
			r := b.records[user]
			r.Expenses = nil
			for name := range r.Spending {
				r.Spending[name] = 0
			}
		},
	}
}

// ResetAll prepares clearing the active record entirely.
func (b *Book) ResetAll() *Action {
	user := b.active
	return &Action{
		Title: "Reset everything",
		Prompt: "Reset all data?\n\n" +
			"This deletes:\n  • every expense\n  • every category\n  • the total budget",
		Strong:  true,
		Success: "All data reset",
		apply: func() {
			b.records[user] = model.NewRecord()
		},
	}
}

// Describe returns a one-line summary of an expense for notifications.
func Describe(e model.Expense) string {
	return fmt.Sprintf("%s %s %s", money.ShortDate(e.Date), e.Description, money.Format(e.Amount))
}

// MatchExpense resolves an id or a unique id prefix to a full expense id.
func (b *Book) MatchExpense(prefix string) (string, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return "", withMessage(ErrNotFound, "expense id is required")
	}
	var match string
	for _, e := range b.Active().Expenses {
		if e.ID == prefix {
			return e.ID, nil
		}
		if strings.HasPrefix(e.ID, prefix) {
			if match != "" {
				return "", withMessage(ErrNotFound, fmt.Sprintf("expense id %q is ambiguous", prefix))
			}
			match = e.ID
		}
	}
	if match == "" {
		return "", withMessage(ErrNotFound, fmt.Sprintf("no expense with id %q", prefix))
	}
	return match, nil
}
