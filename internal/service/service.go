// Package service runs budget operations end to end: validate, confirm,
// apply, notify, then save a snapshot of the active record.
package service

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/theirongolddev/allowance/internal/budget"
	"github.com/theirongolddev/allowance/internal/model"
	"github.com/theirongolddev/allowance/internal/money"
	"github.com/theirongolddev/allowance/internal/prompt"
)

// Cache persists snapshots between runs. Every Cache error is logged and
// swallowed.
type Cache interface {
	SaveSnapshot(user model.UserID, snap model.Snapshot) error
	LoadSnapshot(user model.UserID) (model.Snapshot, bool, error)
	SaveActiveUser(user model.UserID) error
	LoadActiveUser() (model.UserID, bool, error)
}

// Options wires a Service's collaborators. Nil fields get safe defaults:
// no cache, a discarding notifier, AssumeYes prompts and a no-op logger.
type Options struct {
	Cache     Cache
	Notifier  prompt.Notifier
	Confirmer prompt.Confirmer
	Prompter  prompt.Prompter
	Logger    *zap.SugaredLogger
	// Label returns a user's display name.
	Label func(model.UserID) string
	Now   func() time.Time
}

// Service orchestrates every user-facing operation on a Book.
type Service struct {
	book    *budget.Book
	cache   Cache
	notify  prompt.Notifier
	confirm prompt.Confirmer
	input   prompt.Prompter
	log     *zap.SugaredLogger
	label   func(model.UserID) string
	now     func() time.Time
}

type discard struct{}

func (discard) Notify(string, prompt.Severity) {}

// New returns a Service over book.
func New(book *budget.Book, opts Options) *Service {
	s := &Service{
		book:    book,
		cache:   opts.Cache,
		notify:  opts.Notifier,
		confirm: opts.Confirmer,
		input:   opts.Prompter,
		log:     opts.Logger,
		label:   opts.Label,
		now:     opts.Now,
	}
	if s.notify == nil {
		s.notify = discard{}
	}
	if s.confirm == nil {
		s.confirm = prompt.AssumeYes{}
	}
	if s.input == nil {
		s.input = prompt.AssumeYes{}
	}
	if s.log == nil {
		s.log = zap.NewNop().Sugar()
	}
	if s.label == nil {
		s.label = func(id model.UserID) string { return string(id) }
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Book returns the underlying book for read-only views.
func (s *Service) Book() *budget.Book {
	return s.book
}

// Label returns the display name of user id.
func (s *Service) Label(id model.UserID) string {
	return s.label(id)
}

// Load restores every user's record from the cache, falling back to the
// built-in defaults, and activates start. When start is empty the last
// active user from the cache is used, then user1.
func (s *Service) Load(start model.UserID) {
	for _, u := range model.Users {
		snap := model.DefaultSnapshot()
		if s.cache != nil {
			cached, found, err := s.cache.LoadSnapshot(u)
			switch {
			case err != nil:
				s.log.Warnw("loading snapshot failed", "user", u, "error", err)
			case found:
				snap = cached
			}
		}
		// Users are from the fixed set, so Load cannot fail.
		_ = s.book.Load(u, model.RecordFromSnapshot(snap))
	}

	if start == "" && s.cache != nil {
		last, found, err := s.cache.LoadActiveUser()
		if err != nil {
			s.log.Warnw("loading active user failed", "error", err)
		}
		if found && last.Valid() {
			start = last
		}
	}
	if start == "" {
		start = model.User1
	}
	if err := s.book.SwitchUser(start); err != nil {
		s.log.Warnw("ignoring start user", "user", start, "error", err)
	}
}

// AddExpense records a new expense on the active user.
func (s *Service) AddExpense(in budget.ExpenseInput) (model.Expense, error) {
	e, err := s.book.AddExpense(in)
	if err != nil {
		return model.Expense{}, s.fail("add expense", err)
	}
	s.log.Debugw("expense added", "user", s.book.ActiveUser(), "category", e.Category, "amount", e.Amount, "id", e.ID)
	s.succeed("Expense added: " + budget.Describe(e))
	return e, nil
}

// PrepareDeleteExpense resolves idPrefix and returns the pending delete.
// Failures are notified.
func (s *Service) PrepareDeleteExpense(idPrefix string) (*budget.Action, error) {
	id, err := s.book.MatchExpense(idPrefix)
	if err != nil {
		return nil, s.fail("delete expense", err)
	}
	a, err := s.book.DeleteExpense(id)
	if err != nil {
		return nil, s.fail("delete expense", err)
	}
	return a, nil
}

// DeleteExpense asks for confirmation and removes the expense whose id
// starts with idPrefix. It reports whether the expense was deleted.
func (s *Service) DeleteExpense(idPrefix string) (bool, error) {
	a, err := s.PrepareDeleteExpense(idPrefix)
	if err != nil {
		return false, err
	}
	return s.confirmAndApply(a)
}

// SetTotalBudget replaces the active user's total budget.
func (s *Service) SetTotalBudget(amount string) (int64, error) {
	n, err := s.book.SetTotalBudget(amount)
	if err != nil {
		return 0, s.fail("set total budget", err)
	}
	s.log.Debugw("total budget set", "user", s.book.ActiveUser(), "amount", n)
	s.succeed("Total budget set to " + money.Format(n))
	return n, nil
}

// AddCategory creates a category on the active user.
func (s *Service) AddCategory(name, amount string) (string, error) {
	name, n, err := s.book.AddCategory(name, amount)
	if err != nil {
		return "", s.fail("add category", err)
	}
	s.log.Debugw("category added", "user", s.book.ActiveUser(), "category", name, "amount", n)
	s.succeed(fmt.Sprintf("Category %q added with budget %s", name, money.Format(n)))
	return name, nil
}

// EditCategoryBudget sets a category's budget. An empty amount prompts
// for one, offering the current budget as the default; cancelling the
// prompt returns prompt.ErrCanceled and changes nothing.
func (s *Service) EditCategoryBudget(name, amount string) (int64, error) {
	if amount == "" {
		current, err := s.book.CategoryBudget(name)
		if err != nil {
			return 0, s.fail("edit category budget", err)
		}
		amount, err = s.input.Input(fmt.Sprintf("New budget for %q", name), fmt.Sprint(current))
		if err != nil {
			return 0, err
		}
	}
	n, err := s.book.EditCategoryBudget(name, amount)
	if err != nil {
		return 0, s.fail("edit category budget", err)
	}
	s.log.Debugw("category budget changed", "user", s.book.ActiveUser(), "category", name, "amount", n)
	s.succeed(fmt.Sprintf("Budget for %q set to %s", name, money.Format(n)))
	return n, nil
}

// PrepareDeleteCategory returns the pending removal of a category.
// Failures are notified.
func (s *Service) PrepareDeleteCategory(name string) (*budget.Action, error) {
	a, err := s.book.DeleteCategory(name)
	if err != nil {
		return nil, s.fail("delete category", err)
	}
	return a, nil
}

// DeleteCategory asks for confirmation and removes a category together
// with its expenses.
func (s *Service) DeleteCategory(name string) (bool, error) {
	a, err := s.PrepareDeleteCategory(name)
	if err != nil {
		return false, err
	}
	return s.confirmAndApply(a)
}

// ResetPeriod asks for confirmation and clears the expense log.
func (s *Service) ResetPeriod() (bool, error) {
	return s.confirmAndApply(s.book.ResetPeriod())
}

// ResetAll asks for confirmation and clears the active record.
func (s *Service) ResetAll() (bool, error) {
	return s.confirmAndApply(s.book.ResetAll())
}

// SwitchUser saves the outgoing user's record and activates id.
func (s *Service) SwitchUser(id model.UserID) error {
	if !id.Valid() {
		return s.fail("switch user", s.book.SwitchUser(id))
	}
	s.persist()
	if err := s.book.SwitchUser(id); err != nil {
		return s.fail("switch user", err)
	}
	s.saveActiveUser()
	s.succeed("Switched to " + s.label(id))
	return nil
}

// Apply runs an already confirmed action, notifies and persists.
func (s *Service) Apply(a *budget.Action) {
	msg := a.Apply()
	s.log.Debugw("action applied", "user", s.book.ActiveUser(), "action", a.Title)
	s.succeed(msg)
}

func (s *Service) confirmAndApply(a *budget.Action) (bool, error) {
	ok, err := s.confirm.Confirm(a.Title, a.Prompt)
	if errors.Is(err, prompt.ErrCanceled) {
		ok, err = false, nil
	}
	if err != nil {
		return false, fmt.Errorf("confirming %s: %w", a.Title, err)
	}
	if !ok {
		s.log.Debugw("action declined", "action", a.Title)
		return false, nil
	}
	s.Apply(a)
	return true, nil
}

func (s *Service) succeed(msg string) {
	s.notify.Notify(msg, prompt.Success)
	s.persist()
}

func (s *Service) fail(op string, err error) error {
	s.log.Debugw(op+" rejected", "user", s.book.ActiveUser(), "kind", budget.KindOf(err), "error", err)
	s.notify.Notify(err.Error(), prompt.Error)
	return err
}

// persist saves the active record. Failures are logged, never returned.
func (s *Service) persist() {
	if s.cache == nil {
		return
	}
	snap := s.book.Active().Snapshot()
	snap.SavedAt = s.now()
	if err := s.cache.SaveSnapshot(s.book.ActiveUser(), snap); err != nil {
		s.log.Warnw("saving snapshot failed", "user", s.book.ActiveUser(), "error", err)
	}
}

func (s *Service) saveActiveUser() {
	if s.cache == nil {
		return
	}
	if err := s.cache.SaveActiveUser(s.book.ActiveUser()); err != nil {
		s.log.Warnw("saving active user failed", "error", err)
	}
}
