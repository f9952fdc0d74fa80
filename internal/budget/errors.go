package budget

import "errors"

// Kind classifies a rejected operation.
type Kind string

// Error kinds.
const (
	KindEmptyDate          Kind = "EMPTY_DATE"
	KindInvalidDate        Kind = "INVALID_DATE"
	KindEmptyDescription   Kind = "EMPTY_DESCRIPTION"
	KindInvalidAmount      Kind = "INVALID_AMOUNT"
	KindAmountTooLarge     Kind = "AMOUNT_TOO_LARGE"
	KindEmptyName          Kind = "EMPTY_NAME"
	KindDuplicateName      Kind = "DUPLICATE_NAME"
	KindInvalidBudget      Kind = "INVALID_BUDGET"
	KindBudgetTooLarge     Kind = "BUDGET_TOO_LARGE"
	KindAllocationExceeded Kind = "ALLOCATION_EXCEEDED"
	KindNotFound           Kind = "NOT_FOUND"
	KindUnknownUser        Kind = "UNKNOWN_USER"
)

// Error is a user-facing validation failure. Every Error is raised before
// any state changes.
type Error struct {
	Kind    Kind
	Message string
	// Limit carries the allocatable amount for KindAllocationExceeded:
	// the remaining total on create, the per-category ceiling on edit.
	Limit int64
}

// Error implements the error interface.
func (e *Error) Error() string { return e.Message }

// Is matches any *Error of the same kind, so errors.Is(err, ErrNotFound)
// works for customised messages too.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

func withMessage(sentinel *Error, message string) *Error {
	return &Error{Kind: sentinel.Kind, Message: message}
}

// Sentinel errors, one per kind.
var (
	ErrEmptyDate          = &Error{Kind: KindEmptyDate, Message: "date is required"}
	ErrInvalidDate        = &Error{Kind: KindInvalidDate, Message: "date must be YYYY-MM-DD"}
	ErrEmptyDescription   = &Error{Kind: KindEmptyDescription, Message: "description is required"}
	ErrInvalidAmount      = &Error{Kind: KindInvalidAmount, Message: "enter a valid amount"}
	ErrAmountTooLarge     = &Error{Kind: KindAmountTooLarge, Message: "amount is too large"}
	ErrEmptyName          = &Error{Kind: KindEmptyName, Message: "category name is required"}
	ErrDuplicateName      = &Error{Kind: KindDuplicateName, Message: "that category already exists"}
	ErrInvalidBudget      = &Error{Kind: KindInvalidBudget, Message: "enter a valid budget"}
	ErrBudgetTooLarge     = &Error{Kind: KindBudgetTooLarge, Message: "budget is too large"}
	ErrAllocationExceeded = &Error{Kind: KindAllocationExceeded, Message: "exceeds the total budget"}
	ErrNotFound           = &Error{Kind: KindNotFound, Message: "not found"}
	ErrUnknownUser        = &Error{Kind: KindUnknownUser, Message: "unknown user"}
)

// KindOf returns the kind of err, or "" when err is not a budget error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
