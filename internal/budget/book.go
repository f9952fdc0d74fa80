// Package budget holds every user's budget record, validates input, and
// applies the mutations the allowance surfaces expose.
package budget

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/theirongolddev/allowance/internal/model"
)

// Book owns one Record per user and tracks which user is active. All
// operations read and write the active user's record through Active, so
// switching users never leaves a stale alias behind.
//
// A Book is not safe for concurrent use.
type Book struct {
	records map[model.UserID]*model.Record
	active  model.UserID
	now     func() time.Time
	newID   func() string
}

// Option configures a Book.
type Option func(*Book)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(b *Book) { b.now = now }
}

// WithIDs replaces the expense id generator.
func WithIDs(newID func() string) Option {
	return func(b *Book) { b.newID = newID }
}

// NewBook returns a book with an empty record per user and user1 active.
func NewBook(opts ...Option) *Book {
	b := &Book{
		records: make(map[model.UserID]*model.Record, len(model.Users)),
		active:  model.User1,
		now:     time.Now,
		newID:   newExpenseID,
	}
	for _, u := range model.Users {
		b.records[u] = model.NewRecord()
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// newExpenseID returns a random (v4) UUID. Leading characters are random,
// so short display prefixes rarely collide.
func newExpenseID() string {
	return uuid.NewString()
}

// ActiveUser returns the active user id.
func (b *Book) ActiveUser() model.UserID {
	return b.active
}

// Active returns the active user's record.
func (b *Book) Active() *model.Record {
	return b.records[b.active]
}

// Record returns the record of user id.
func (b *Book) Record(id model.UserID) (*model.Record, bool) {
	r, ok := b.records[id]
	return r, ok
}

// Load installs r as the record of user id. It is used when restoring
// from a snapshot; r is normalized first.
func (b *Book) Load(id model.UserID, r *model.Record) error {
	if !id.Valid() {
		return unknownUser(id)
	}
	r.Normalize()
	b.records[id] = r
	return nil
}

// SwitchUser makes id the active user. An id outside the fixed set is
// rejected and the active user stays as it was.
func (b *Book) SwitchUser(id model.UserID) error {
	if !id.Valid() {
		return unknownUser(id)
	}
	b.active = id
	return nil
}

// Period returns the budget cycle containing the book's current time.
func (b *Book) Period() model.Period {
	return model.CurrentPeriod(b.now())
}

// Today returns the current date formatted for ExpenseInput.
func (b *Book) Today() string {
	return b.now().Format(DateLayout)
}

func unknownUser(id model.UserID) *Error {
	return withMessage(ErrUnknownUser, fmt.Sprintf("unknown user %q", id))
}
