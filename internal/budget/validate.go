package budget

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/theirongolddev/allowance/internal/model"
	"github.com/theirongolddev/allowance/internal/money"
)

// Upper bounds for user-entered amounts.
const (
	MaxExpenseAmount  = 100_000
	MaxCategoryBudget = 1_000_000
	MaxTotalBudget    = 10_000_000
)

// DateLayout is the accepted expense date format.
const DateLayout = "2006-01-02"

var validate = validator.New(validator.WithRequiredStructEnabled())

// ExpenseInput is an expense as entered by the user.
type ExpenseInput struct {
	Date        string
	Category    string
	Description string
	Amount      string
}

type expenseFields struct {
	Date        string `validate:"required,datetime=2006-01-02"`
	Description string `validate:"required"`
	Amount      int64  `validate:"gt=0,lte=100000"`
}

type categoryFields struct {
	Name   string `validate:"required"`
	Budget int64  `validate:"gt=0,lte=1000000"`
}

type totalFields struct {
	Amount int64 `validate:"gt=0,lte=10000000"`
}

// violations maps struct field -> validator tag -> error.
type violations map[string]map[string]*Error

var (
	expenseViolations = violations{
		"Date":        {"required": ErrEmptyDate, "datetime": ErrInvalidDate},
		"Description": {"required": ErrEmptyDescription},
		"Amount": {
			"gt":  ErrInvalidAmount,
			"lte": withMessage(ErrAmountTooLarge, "amount is too large (max "+money.Format(MaxExpenseAmount)+")"),
		},
	}
	categoryViolations = violations{
		"Name": {"required": ErrEmptyName},
		"Budget": {
			"gt":  ErrInvalidBudget,
			"lte": withMessage(ErrBudgetTooLarge, "budget is too large (max "+money.Format(MaxCategoryBudget)+")"),
		},
	}
	totalViolations = violations{
		"Amount": {
			"gt":  ErrInvalidAmount,
			"lte": withMessage(ErrAmountTooLarge, "total budget is too large (max "+money.Format(MaxTotalBudget)+")"),
		},
	}
)

// check validates v and returns the first violation per field, keyed by
// struct field name, in declaration order.
func check(v any, table violations) (map[string]*Error, []string, error) {
	err := validate.Struct(v)
	if err == nil {
		return nil, nil, nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, nil, fmt.Errorf("validating input: %w", err)
	}

	found := make(map[string]*Error)
	var order []string
	for _, fe := range verrs {
		field := fe.StructField()
		if _, seen := found[field]; seen {
			continue
		}
		e, ok := table[field][fe.Tag()]
		if !ok {
			return nil, nil, fmt.Errorf("unmapped validation tag %s on %s", fe.Tag(), field)
		}
		found[field] = e
		order = append(order, field)
	}
	return found, order, nil
}

func first(v any, table violations) error {
	found, order, err := check(v, table)
	if err != nil {
		return err
	}
	if len(order) == 0 {
		return nil
	}
	return found[order[0]]
}

// parseAmount turns unparsable input into 0 so the range tags reject it
// as an invalid amount.
func parseAmount(s string) int64 {
	n, err := money.Parse(s)
	if err != nil {
		return 0
	}
	return n
}

// ValidateExpense checks an expense input against rules that do not need
// a record. It returns the parsed date and amount.
func ValidateExpense(in ExpenseInput) (time.Time, int64, error) {
	f := expenseFields{
		Date:        strings.TrimSpace(in.Date),
		Description: strings.TrimSpace(in.Description),
		Amount:      parseAmount(in.Amount),
	}
	if err := first(f, expenseViolations); err != nil {
		return time.Time{}, 0, err
	}
	d, err := time.Parse(DateLayout, f.Date)
	if err != nil {
		return time.Time{}, 0, ErrInvalidDate
	}
	return d, f.Amount, nil
}

// ValidateCategory checks a new category against r.
func ValidateCategory(r *model.Record, name, budget string) (string, int64, error) {
	f := categoryFields{
		Name:   strings.TrimSpace(name),
		Budget: parseAmount(budget),
	}
	found, _, err := check(f, categoryViolations)
	if err != nil {
		return "", 0, err
	}
	if e := found["Name"]; e != nil {
		return "", 0, e
	}
	if r.HasCategory(f.Name) {
		return "", 0, withMessage(ErrDuplicateName, fmt.Sprintf("category %q already exists", f.Name))
	}
	if e := found["Budget"]; e != nil {
		return "", 0, e
	}

	if r.TotalBudget > 0 {
		allocated := r.Allocated()
		if allocated+f.Budget > r.TotalBudget {
			remaining := r.TotalBudget - allocated
			return "", 0, &Error{
				Kind:    KindAllocationExceeded,
				Message: "exceeds the total budget; remaining: " + money.Format(remaining),
				Limit:   remaining,
			}
		}
	}
	return f.Name, f.Budget, nil
}

// ValidateCategoryEdit checks a new budget for an existing category. The
// category's own current budget does not count against the ceiling.
func ValidateCategoryEdit(r *model.Record, name, budget string) (int64, error) {
	name = strings.TrimSpace(name)
	if !r.HasCategory(name) {
		return 0, categoryNotFound(name)
	}
	f := categoryFields{Name: name, Budget: parseAmount(budget)}
	if err := first(f, categoryViolations); err != nil {
		return 0, err
	}

	if r.TotalBudget > 0 {
		others := r.Allocated() - r.Budgets[name]
		if others+f.Budget > r.TotalBudget {
			ceiling := r.TotalBudget - others
			return 0, &Error{
				Kind:    KindAllocationExceeded,
				Message: "exceeds the total budget; limit for this category: " + money.Format(ceiling),
				Limit:   ceiling,
			}
		}
	}
	return f.Budget, nil
}

// ValidateTotalBudget checks a total budget amount.
func ValidateTotalBudget(amount string) (int64, error) {
	f := totalFields{Amount: parseAmount(amount)}
	if err := first(f, totalViolations); err != nil {
		return 0, err
	}
	return f.Amount, nil
}

func categoryNotFound(name string) *Error {
	return withMessage(ErrNotFound, fmt.Sprintf("category %q not found", name))
}
