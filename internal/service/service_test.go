package service

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/theirongolddev/allowance/internal/budget"
	"github.com/theirongolddev/allowance/internal/model"
	"github.com/theirongolddev/allowance/internal/prompt"
)

type fakeCache struct {
	snaps  map[model.UserID]model.Snapshot
	active model.UserID
	fail   error
	saves  int
}

func newFakeCache() *fakeCache {
	return &fakeCache{snaps: make(map[model.UserID]model.Snapshot)}
}

func (c *fakeCache) SaveSnapshot(u model.UserID, s model.Snapshot) error {
	if c.fail != nil {
		return c.fail
	}
	c.saves++
	c.snaps[u] = s
	return nil
}

func (c *fakeCache) LoadSnapshot(u model.UserID) (model.Snapshot, bool, error) {
	if c.fail != nil {
		return model.Snapshot{}, false, c.fail
	}
	s, ok := c.snaps[u]
	return s, ok, nil
}

func (c *fakeCache) SaveActiveUser(u model.UserID) error {
	if c.fail != nil {
		return c.fail
	}
	c.active = u
	return nil
}

func (c *fakeCache) LoadActiveUser() (model.UserID, bool, error) {
	if c.fail != nil {
		return "", false, c.fail
	}
	return c.active, c.active != "", nil
}

type fixture struct {
	svc    *Service
	cache  *fakeCache
	notes  *prompt.Recorder
	script *prompt.Scripted
	logs   *observer.ObservedLogs
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	f := &fixture{
		cache:  newFakeCache(),
		notes:  &prompt.Recorder{},
		script: &prompt.Scripted{},
		logs:   logs,
	}
	clock := func() time.Time { return time.Date(2024, time.June, 20, 8, 0, 0, 0, time.UTC) }
	f.svc = New(budget.NewBook(budget.WithClock(clock)), Options{
		Cache:     f.cache,
		Notifier:  f.notes,
		Confirmer: f.script,
		Prompter:  f.script,
		Logger:    zap.New(core).Sugar(),
		Now:       clock,
	})
	f.svc.Load("")
	return f
}

func (f *fixture) lastNotice(t *testing.T) prompt.Notice {
	t.Helper()
	n, ok := f.notes.Last()
	if !ok {
		t.Fatal("no notification sent")
	}
	return n
}

func (f *fixture) addExpense(t *testing.T, category, amount string) model.Expense {
	t.Helper()
	e, err := f.svc.AddExpense(budget.ExpenseInput{
		Date: "2024-06-18", Category: category, Description: "item", Amount: amount,
	})
	if err != nil {
		t.Fatalf("AddExpense: %v", err)
	}
	return e
}

func TestLoadSeedsBuiltinCategories(t *testing.T) {
	f := newFixture(t)
	r := f.svc.Book().Active()
	if !reflect.DeepEqual(r.Order, model.BuiltinCategories) {
		t.Fatalf("Order = %v, want built-ins", r.Order)
	}
	for _, name := range r.Order {
		if r.Budgets[name] != 0 || r.Spending[name] != 0 {
			t.Fatalf("%s = budget %d spent %d, want zeros", name, r.Budgets[name], r.Spending[name])
		}
	}
}

func TestAddExpenseNotifiesAndPersists(t *testing.T) {
	f := newFixture(t)
	f.addExpense(t, model.CategoryFood, "500")

	if n := f.lastNotice(t); n.Severity != prompt.Success {
		t.Fatalf("notice = %+v", n)
	}
	snap, ok := f.cache.snaps[model.User1]
	if !ok {
		t.Fatal("snapshot not saved")
	}
	if len(snap.Expenses) != 1 || snap.Expenses[0].Amount != 500 {
		t.Fatalf("saved expenses = %+v", snap.Expenses)
	}
	if !snap.SavedAt.Equal(time.Date(2024, time.June, 20, 8, 0, 0, 0, time.UTC)) {
		t.Fatalf("SavedAt = %s", snap.SavedAt)
	}
}

func TestValidationErrorNotifiesWithoutPersisting(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.AddExpense(budget.ExpenseInput{Date: "2024-06-18", Category: model.CategoryFood, Description: "x", Amount: "200000"})
	if !errors.Is(err, budget.ErrAmountTooLarge) {
		t.Fatalf("err = %v, want AmountTooLarge", err)
	}
	if n := f.lastNotice(t); n.Severity != prompt.Error || n.Msg != err.Error() {
		t.Fatalf("notice = %+v", n)
	}
	if f.cache.saves != 0 {
		t.Fatalf("saves = %d, want 0", f.cache.saves)
	}
}

func TestDeclinedDeleteLeavesStateUnchanged(t *testing.T) {
	f := newFixture(t)
	e := f.addExpense(t, model.CategoryFood, "500")
	before := f.svc.Book().Active().Clone()
	notices := len(f.notes.Notices)
	saves := f.cache.saves

	f.script.Answers = []bool{false}
	deleted, err := f.svc.DeleteExpense(e.ID[:8])
	if err != nil || deleted {
		t.Fatalf("DeleteExpense = %v, %v; want declined", deleted, err)
	}
	if !reflect.DeepEqual(before, f.svc.Book().Active()) {
		t.Fatal("declined delete changed the record")
	}
	if len(f.notes.Notices) != notices {
		t.Fatal("declined delete sent a notification")
	}
	if f.cache.saves != saves {
		t.Fatal("declined delete saved a snapshot")
	}
}

func TestCanceledConfirmIsADecline(t *testing.T) {
	f := newFixture(t)
	f.addExpense(t, model.CategoryFood, "500")

	// empty script: Confirm returns ErrCanceled
	reset, err := f.svc.ResetPeriod()
	if err != nil || reset {
		t.Fatalf("ResetPeriod = %v, %v", reset, err)
	}
	if len(f.svc.Book().Active().Expenses) != 1 {
		t.Fatal("canceled reset cleared expenses")
	}
}

func TestConfirmedDeleteCategory(t *testing.T) {
	f := newFixture(t)
	f.addExpense(t, model.CategoryFood, "500")

	f.script.Answers = []bool{true}
	deleted, err := f.svc.DeleteCategory(model.CategoryFood)
	if err != nil || !deleted {
		t.Fatalf("DeleteCategory = %v, %v", deleted, err)
	}
	if f.script.Asked[0] != "Delete category" {
		t.Fatalf("Asked = %v", f.script.Asked)
	}
	r := f.svc.Book().Active()
	if r.HasCategory(model.CategoryFood) || len(r.Expenses) != 0 {
		t.Fatal("category or its expenses survived")
	}
	if snap := f.cache.snaps[model.User1]; len(snap.Categories) != 3 {
		t.Fatalf("saved categories = %d, want 3", len(snap.Categories))
	}
}

func TestEditCategoryBudgetPromptsWithDefault(t *testing.T) {
	f := newFixture(t)
	if _, err := f.svc.AddCategory("Books", "800"); err != nil {
		t.Fatal(err)
	}

	f.script.Inputs = []string{"1200"}
	n, err := f.svc.EditCategoryBudget("Books", "")
	if err != nil || n != 1200 {
		t.Fatalf("EditCategoryBudget = %d, %v", n, err)
	}

	_, err = f.svc.EditCategoryBudget("Books", "")
	if !errors.Is(err, prompt.ErrCanceled) {
		t.Fatalf("err = %v, want ErrCanceled", err)
	}
	if got := f.svc.Book().Active().Budgets["Books"]; got != 1200 {
		t.Fatalf("Budgets[Books] = %d after cancel, want 1200", got)
	}

	_, err = f.svc.EditCategoryBudget("Missing", "")
	if !errors.Is(err, budget.ErrNotFound) {
		t.Fatalf("err = %v, want NotFound", err)
	}
}

func TestCacheFailureIsSwallowed(t *testing.T) {
	f := newFixture(t)
	f.cache.fail = errors.New("disk full")

	if _, err := f.svc.SetTotalBudget("5000"); err != nil {
		t.Fatalf("SetTotalBudget with failing cache: %v", err)
	}
	if f.svc.Book().Active().TotalBudget != 5000 {
		t.Fatal("mutation lost when cache failed")
	}
	if n := f.lastNotice(t); n.Severity != prompt.Success {
		t.Fatalf("notice = %+v, want success", n)
	}
	if f.logs.FilterMessage("saving snapshot failed").FilterLevelExact(zapcore.WarnLevel).Len() != 1 {
		t.Fatalf("warn log missing: %v", f.logs.All())
	}
}

func TestLoadFallsBackWhenCacheFails(t *testing.T) {
	f := newFixture(t)
	f.cache.fail = errors.New("corrupt")
	f.svc.Load("")

	if f.svc.Book().ActiveUser() != model.User1 {
		t.Fatalf("ActiveUser = %s", f.svc.Book().ActiveUser())
	}
	if len(f.svc.Book().Active().Order) != len(model.BuiltinCategories) {
		t.Fatal("defaults not applied")
	}
}

func TestSwitchUserPersistsAcrossLoads(t *testing.T) {
	f := newFixture(t)
	if _, err := f.svc.SetTotalBudget("3000"); err != nil {
		t.Fatal(err)
	}
	if err := f.svc.SwitchUser(model.User2); err != nil {
		t.Fatal(err)
	}
	f.addExpense(t, model.CategoryTransport, "250")

	if f.cache.active != model.User2 {
		t.Fatalf("saved active user = %s", f.cache.active)
	}

	// a fresh process over the same cache
	next := New(budget.NewBook(), Options{Cache: f.cache})
	next.Load("")
	if next.Book().ActiveUser() != model.User2 {
		t.Fatalf("ActiveUser = %s, want user2", next.Book().ActiveUser())
	}
	if got := next.Book().Active().Spending[model.CategoryTransport]; got != 250 {
		t.Fatalf("user2 transport spending = %d, want 250", got)
	}
	u1, _ := next.Book().Record(model.User1)
	if u1.TotalBudget != 3000 {
		t.Fatalf("user1 total = %d, want 3000", u1.TotalBudget)
	}

	next.Load(model.User1)
	if next.Book().ActiveUser() != model.User1 {
		t.Fatal("explicit start user ignored")
	}
}

func TestSwitchUserUnknown(t *testing.T) {
	f := newFixture(t)
	err := f.svc.SwitchUser("user3")
	if !errors.Is(err, budget.ErrUnknownUser) {
		t.Fatalf("err = %v, want UnknownUser", err)
	}
	if f.svc.Book().ActiveUser() != model.User1 {
		t.Fatal("active user changed")
	}
	if n := f.lastNotice(t); n.Severity != prompt.Error {
		t.Fatalf("notice = %+v", n)
	}
}

func TestResetAllConfirmed(t *testing.T) {
	f := newFixture(t)
	f.addExpense(t, model.CategoryFood, "500")
	f.script.Answers = []bool{true}

	reset, err := f.svc.ResetAll()
	if err != nil || !reset {
		t.Fatalf("ResetAll = %v, %v", reset, err)
	}
	snap := f.cache.snaps[model.User1]
	if len(snap.Categories) != 0 || len(snap.Expenses) != 0 {
		t.Fatalf("saved snapshot not empty: %+v", snap)
	}
	if n := f.lastNotice(t); n.Msg != "All data reset" {
		t.Fatalf("notice = %+v", n)
	}
}
