package budget

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/theirongolddev/allowance/internal/model"
)

func newTestBook(t *testing.T) *Book {
	t.Helper()
	n := 0
	return NewBook(
		WithClock(func() time.Time { return time.Date(2024, time.June, 20, 12, 0, 0, 0, time.UTC) }),
		WithIDs(func() string {
			n++
			return fmt.Sprintf("exp-%03d", n)
		}),
	)
}

func mustAddCategory(t *testing.T, b *Book, name string, budget int64) {
	t.Helper()
	if _, _, err := b.AddCategory(name, fmt.Sprint(budget)); err != nil {
		t.Fatalf("AddCategory(%s, %d): %v", name, budget, err)
	}
}

func mustAddExpense(t *testing.T, b *Book, category, desc string, amount int64) model.Expense {
	t.Helper()
	e, err := b.AddExpense(ExpenseInput{
		Date:        "2024-06-18",
		Category:    category,
		Description: desc,
		Amount:      fmt.Sprint(amount),
	})
	if err != nil {
		t.Fatalf("AddExpense(%s, %s, %d): %v", category, desc, amount, err)
	}
	return e
}

func assertKind(t *testing.T, err error, want Kind) {
	t.Helper()
	if err == nil {
		t.Fatalf("err = nil, want %s", want)
	}
	if got := KindOf(err); got != want {
		t.Fatalf("kind = %s (%v), want %s", got, err, want)
	}
}

// checkInvariants verifies that spending matches the expense log per
// category and that budgets and spending share one key set.
func checkInvariants(t *testing.T, r *model.Record) {
	t.Helper()
	perCategory := make(map[string]int64)
	for _, e := range r.Expenses {
		perCategory[e.Category] += e.Amount
	}
	if len(r.Spending) != len(r.Budgets) || len(r.Order) != len(r.Budgets) {
		t.Fatalf("key sets differ: order=%d budgets=%d spending=%d", len(r.Order), len(r.Budgets), len(r.Spending))
	}
	for name := range r.Budgets {
		if _, ok := r.Spending[name]; !ok {
			t.Fatalf("Spending missing key %q", name)
		}
		if r.Spending[name] != perCategory[name] {
			t.Fatalf("Spending[%s] = %d, want %d", name, r.Spending[name], perCategory[name])
		}
	}
}

func TestAllocationScenario(t *testing.T) {
	b := newTestBook(t)

	if _, err := b.SetTotalBudget("5000"); err != nil {
		t.Fatalf("SetTotalBudget: %v", err)
	}
	mustAddCategory(t, b, "Food", 2000)

	r := b.Active()
	if got := r.TotalBudget - r.Allocated(); got != 3000 {
		t.Fatalf("allocatable remaining = %d, want 3000", got)
	}

	_, _, err := b.AddCategory("Fun", "3500")
	assertKind(t, err, KindAllocationExceeded)
	var be *Error
	if !errors.As(err, &be) || be.Limit != 3000 {
		t.Fatalf("Limit = %v, want 3000", be)
	}
	if !strings.Contains(err.Error(), "3,000") {
		t.Fatalf("message %q does not report remaining ¥3,000", err.Error())
	}
	if r.HasCategory("Fun") {
		t.Fatal("rejected category was inserted")
	}

	mustAddExpense(t, b, "Food", "lunch", 500)
	if got := r.Spending["Food"]; got != 500 {
		t.Fatalf("Spending[Food] = %d, want 500", got)
	}
	if got := r.TotalBudget - r.TotalSpent(); got != 4500 {
		t.Fatalf("remaining = %d, want 4500", got)
	}
	checkInvariants(t, r)
}

func TestEditCategoryBudgetCeiling(t *testing.T) {
	b := newTestBook(t)
	if _, err := b.SetTotalBudget("1000"); err != nil {
		t.Fatal(err)
	}
	mustAddCategory(t, b, "A", 400)
	mustAddCategory(t, b, "B", 300)

	_, err := b.EditCategoryBudget("A", "701")
	assertKind(t, err, KindAllocationExceeded)
	if !strings.Contains(err.Error(), "700") {
		t.Fatalf("message %q does not report ceiling 700", err.Error())
	}
	var be *Error
	if errors.As(err, &be) && be.Limit != 700 {
		t.Fatalf("Limit = %d, want 700", be.Limit)
	}
	if got := b.Active().Budgets["A"]; got != 400 {
		t.Fatalf("Budgets[A] = %d after rejected edit, want 400", got)
	}

	if _, err := b.EditCategoryBudget("A", "700"); err != nil {
		t.Fatalf("EditCategoryBudget(A, 700): %v", err)
	}
	if got := b.Active().Budgets["A"]; got != 700 {
		t.Fatalf("Budgets[A] = %d, want 700", got)
	}
}

func TestCategoryNameTrimmedOnEditAndDelete(t *testing.T) {
	b := newTestBook(t)
	mustAddCategory(t, b, " Fun ", 100)

	if n, err := b.CategoryBudget("  Fun"); err != nil || n != 100 {
		t.Fatalf("CategoryBudget = %d, %v, want 100", n, err)
	}
	if _, err := b.EditCategoryBudget(" Fun ", "200"); err != nil {
		t.Fatalf("EditCategoryBudget: %v", err)
	}
	r := b.Active()
	if got := r.Budgets["Fun"]; got != 200 {
		t.Fatalf("Budgets[Fun] = %d, want 200", got)
	}
	if _, ok := r.Budgets[" Fun "]; ok {
		t.Fatal("edit created an untrimmed key")
	}

	a, err := b.DeleteCategory("Fun ")
	if err != nil {
		t.Fatalf("DeleteCategory: %v", err)
	}
	if !strings.Contains(a.Prompt, `"Fun"`) {
		t.Fatalf("prompt %q does not name the trimmed category", a.Prompt)
	}
	a.Apply()
	if r.HasCategory("Fun") {
		t.Fatal("Fun still in budgets")
	}
	checkInvariants(t, r)
}

func TestEditCategoryBudgetKeepsSpending(t *testing.T) {
	b := newTestBook(t)
	mustAddCategory(t, b, "Food", 1000)
	mustAddExpense(t, b, "Food", "tea", 120)

	if _, err := b.EditCategoryBudget("Food", "50"); err != nil {
		t.Fatal(err)
	}
	if got := b.Active().Spending["Food"]; got != 120 {
		t.Fatalf("Spending[Food] = %d, want 120", got)
	}

	_, err := b.EditCategoryBudget("Nope", "50")
	assertKind(t, err, KindNotFound)
	_, err = b.EditCategoryBudget("Food", "0")
	assertKind(t, err, KindInvalidBudget)
	_, err = b.EditCategoryBudget("Food", "1000001")
	assertKind(t, err, KindBudgetTooLarge)
}

func TestAddCategoryValidation(t *testing.T) {
	b := newTestBook(t)
	mustAddCategory(t, b, "Food", 100)
	before := b.Active().Clone()

	cases := []struct {
		name, budget string
		want         Kind
	}{
		{"  ", "100", KindEmptyName},
		{"Food", "100", KindDuplicateName},
		{" Food ", "100", KindDuplicateName},
		{"Books", "", KindInvalidBudget},
		{"Books", "-5", KindInvalidBudget},
		{"Books", "abc", KindInvalidBudget},
		{"Books", "1000001", KindBudgetTooLarge},
		{"Books", "99999999999999999999", KindBudgetTooLarge},
		{"", "0", KindEmptyName},
	}
	for _, c := range cases {
		_, _, err := b.AddCategory(c.name, c.budget)
		assertKind(t, err, c.want)
	}

	if !reflect.DeepEqual(before, b.Active()) {
		t.Fatal("rejected AddCategory calls mutated the record")
	}

	name, n, err := b.AddCategory("  Books ", "1,000000")
	if err != nil {
		t.Fatal(err)
	}
	if name != "Books" || n != 1_000_000 {
		t.Fatalf("AddCategory = (%q, %d), want (Books, 1000000)", name, n)
	}
	if got := b.Active().Spending["Books"]; got != 0 {
		t.Fatalf("Spending[Books] = %d, want 0", got)
	}
}

func TestAddCategoryNoCeilingWithoutTotal(t *testing.T) {
	b := newTestBook(t)
	mustAddCategory(t, b, "A", 1_000_000)
	mustAddCategory(t, b, "B", 1_000_000)
	if got := b.Active().Allocated(); got != 2_000_000 {
		t.Fatalf("Allocated = %d, want 2000000", got)
	}
}

func TestAddExpenseValidation(t *testing.T) {
	b := newTestBook(t)
	mustAddCategory(t, b, "Food", 1000)

	valid := ExpenseInput{Date: "2024-06-18", Category: "Food", Description: "lunch", Amount: "500"}
	cases := []struct {
		mutate func(*ExpenseInput)
		want   Kind
	}{
		{func(in *ExpenseInput) { in.Date = "" }, KindEmptyDate},
		{func(in *ExpenseInput) { in.Date = "18/06/2024" }, KindInvalidDate},
		{func(in *ExpenseInput) { in.Description = "   " }, KindEmptyDescription},
		{func(in *ExpenseInput) { in.Amount = "" }, KindInvalidAmount},
		{func(in *ExpenseInput) { in.Amount = "0" }, KindInvalidAmount},
		{func(in *ExpenseInput) { in.Amount = "-3" }, KindInvalidAmount},
		{func(in *ExpenseInput) { in.Amount = "12.5" }, KindInvalidAmount},
		{func(in *ExpenseInput) { in.Amount = "100001" }, KindAmountTooLarge},
		{func(in *ExpenseInput) { in.Amount = "100000000000000000000" }, KindAmountTooLarge},
		{func(in *ExpenseInput) { in.Amount = "-100000000000000000000" }, KindInvalidAmount},
		{func(in *ExpenseInput) { in.Category = "Travel" }, KindNotFound},
		// date is checked before description and amount
		{func(in *ExpenseInput) { in.Date = ""; in.Description = ""; in.Amount = "x" }, KindEmptyDate},
		{func(in *ExpenseInput) { in.Description = ""; in.Amount = "x" }, KindEmptyDescription},
	}
	for i, c := range cases {
		in := valid
		c.mutate(&in)
		_, err := b.AddExpense(in)
		if got := KindOf(err); got != c.want {
			t.Errorf("case %d: kind = %s (%v), want %s", i, got, err, c.want)
		}
	}
	if len(b.Active().Expenses) != 0 {
		t.Fatal("rejected expenses were recorded")
	}

	in := valid
	in.Amount = "100000"
	in.Description = "  trip  "
	e, err := b.AddExpense(in)
	if err != nil {
		t.Fatalf("AddExpense at the limit: %v", err)
	}
	if e.Description != "trip" {
		t.Fatalf("Description = %q, want trimmed", e.Description)
	}
	if e.Date.Format(DateLayout) != "2024-06-18" {
		t.Fatalf("Date = %s", e.Date)
	}
}

func TestExpenseIDsAreUnique(t *testing.T) {
	b := NewBook()
	mustAddCategory(t, b, "Food", 1000)

	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		e := mustAddExpense(t, b, "Food", "x", 1)
		if seen[e.ID] {
			t.Fatalf("duplicate expense id %s", e.ID)
		}
		seen[e.ID] = true
	}
}

func TestAddDeleteSequenceKeepsInvariant(t *testing.T) {
	b := newTestBook(t)
	mustAddCategory(t, b, "Food", 10_000)
	mustAddCategory(t, b, "Fun", 10_000)

	var ids []string
	for i := 1; i <= 10; i++ {
		cat := "Food"
		if i%3 == 0 {
			cat = "Fun"
		}
		ids = append(ids, mustAddExpense(t, b, cat, fmt.Sprintf("item %d", i), int64(i*100)).ID)
		checkInvariants(t, b.Active())
	}

	for i, id := range ids {
		if i%2 == 1 {
			continue
		}
		a, err := b.DeleteExpense(id)
		if err != nil {
			t.Fatalf("DeleteExpense(%s): %v", id, err)
		}
		a.Apply()
		checkInvariants(t, b.Active())
	}

	if got := len(b.Active().Expenses); got != 5 {
		t.Fatalf("expenses = %d, want 5", got)
	}
	_, err := b.DeleteExpense(ids[0])
	assertKind(t, err, KindNotFound)
}

func TestDeleteExpenseNotAppliedChangesNothing(t *testing.T) {
	b := newTestBook(t)
	mustAddCategory(t, b, "Food", 1000)
	e := mustAddExpense(t, b, "Food", "lunch", 300)
	before := b.Active().Clone()

	a, err := b.DeleteExpense(e.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(a.Prompt, "lunch") {
		t.Fatalf("Prompt = %q, want it to name the expense", a.Prompt)
	}
	if !reflect.DeepEqual(before, b.Active()) {
		t.Fatal("preparing a delete mutated the record")
	}

	a.Apply()
	a.Apply() // second apply finds nothing and is a no-op
	checkInvariants(t, b.Active())
}

func TestDeleteCategoryRemovesExpenses(t *testing.T) {
	b := newTestBook(t)
	mustAddCategory(t, b, "Food", 1000)
	mustAddCategory(t, b, "Fun", 1000)
	mustAddExpense(t, b, "Food", "lunch", 300)
	mustAddExpense(t, b, "Fun", "movie", 1500)
	mustAddExpense(t, b, "Food", "dinner", 700)

	a, err := b.DeleteCategory("Food")
	if err != nil {
		t.Fatal(err)
	}
	if !a.Strong {
		t.Fatal("Strong = false for a category with spending")
	}
	a.Apply()

	r := b.Active()
	if r.HasCategory("Food") {
		t.Fatal("Food still in budgets")
	}
	if _, ok := r.Spending["Food"]; ok {
		t.Fatal("Food still in spending")
	}
	for _, e := range r.Expenses {
		if e.Category == "Food" {
			t.Fatalf("expense %s still references Food", e.ID)
		}
	}
	checkInvariants(t, r)

	_, err = b.DeleteCategory("Food")
	assertKind(t, err, KindNotFound)

	mustAddCategory(t, b, "Empty", 10)
	a, err = b.DeleteCategory("Empty")
	if err != nil {
		t.Fatal(err)
	}
	if a.Strong {
		t.Fatal("Strong = true for a category without spending")
	}
}

func TestSetTotalBudgetValidation(t *testing.T) {
	b := newTestBook(t)

	for _, c := range []struct {
		in   string
		want Kind
	}{
		{"", KindInvalidAmount},
		{"0", KindInvalidAmount},
		{"-1", KindInvalidAmount},
		{"ten", KindInvalidAmount},
		{"10000001", KindAmountTooLarge},
		{"99999999999999999999", KindAmountTooLarge},
	} {
		_, err := b.SetTotalBudget(c.in)
		assertKind(t, err, c.want)
	}
	if b.Active().TotalBudget != 0 {
		t.Fatal("rejected total budget was stored")
	}

	if _, err := b.SetTotalBudget("10000000"); err != nil {
		t.Fatal(err)
	}
}

func TestLoweringTotalBelowAllocationIsAllowed(t *testing.T) {
	b := newTestBook(t)
	if _, err := b.SetTotalBudget("1000"); err != nil {
		t.Fatal(err)
	}
	mustAddCategory(t, b, "A", 800)

	if _, err := b.SetTotalBudget("500"); err != nil {
		t.Fatalf("SetTotalBudget below allocation: %v", err)
	}
	if r := b.Active(); r.Allocated() <= r.TotalBudget {
		t.Fatal("expected over-allocation to persist")
	}
}

func TestResetPeriodKeepsBudgets(t *testing.T) {
	b := newTestBook(t)
	mustAddCategory(t, b, "Food", 1000)
	mustAddCategory(t, b, "Fun", 2000)
	mustAddExpense(t, b, "Food", "lunch", 300)
	mustAddExpense(t, b, "Fun", "game", 900)
	budgets := b.Active().Clone().Budgets

	a := b.ResetPeriod()
	if !strings.Contains(a.Prompt, "2024/6/16 – 2024/7/15") {
		t.Fatalf("Prompt = %q, want the period range", a.Prompt)
	}
	a.Apply()

	r := b.Active()
	if len(r.Expenses) != 0 {
		t.Fatalf("expenses = %d, want 0", len(r.Expenses))
	}
	for name, spent := range r.Spending {
		if spent != 0 {
			t.Fatalf("Spending[%s] = %d, want 0", name, spent)
		}
	}
	if !reflect.DeepEqual(budgets, r.Budgets) {
		t.Fatalf("Budgets = %v, want %v", r.Budgets, budgets)
	}
}

func TestResetAllClearsEverything(t *testing.T) {
	b := newTestBook(t)
	if _, err := b.SetTotalBudget("5000"); err != nil {
		t.Fatal(err)
	}
	mustAddCategory(t, b, "Food", 1000)
	mustAddExpense(t, b, "Food", "lunch", 300)

	b.ResetAll().Apply()

	r := b.Active()
	if r.TotalBudget != 0 || len(r.Budgets) != 0 || len(r.Spending) != 0 || len(r.Expenses) != 0 || len(r.Order) != 0 {
		t.Fatalf("record not empty after ResetAll: %+v", r)
	}
}

func TestSwitchUserRoundTrip(t *testing.T) {
	b := newTestBook(t)
	if _, err := b.SetTotalBudget("3000"); err != nil {
		t.Fatal(err)
	}
	mustAddCategory(t, b, "Food", 1000)
	mustAddExpense(t, b, "Food", "lunch", 300)
	user1 := b.Active().Clone()

	if err := b.SwitchUser(model.User2); err != nil {
		t.Fatal(err)
	}
	if b.Active().TotalBudget != 0 || len(b.Active().Expenses) != 0 {
		t.Fatal("user2 sees user1 data")
	}
	mustAddCategory(t, b, "Golf", 5000)
	mustAddExpense(t, b, "Golf", "balls", 2000)

	if err := b.SwitchUser(model.User1); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(user1, b.Active()) {
		t.Fatalf("user1 record changed across switch:\n got %+v\nwant %+v", b.Active(), user1)
	}
}

func TestSwitchUserRejectsUnknown(t *testing.T) {
	b := newTestBook(t)
	err := b.SwitchUser("user3")
	assertKind(t, err, KindUnknownUser)
	if !errors.Is(err, ErrUnknownUser) {
		t.Fatal("errors.Is(err, ErrUnknownUser) = false")
	}
	if b.ActiveUser() != model.User1 {
		t.Fatalf("ActiveUser = %s, want user1", b.ActiveUser())
	}
}

func TestLoadNormalizesRecord(t *testing.T) {
	b := newTestBook(t)
	r := model.RecordFromSnapshot(model.DefaultSnapshot())
	r.Expenses = append(r.Expenses, model.Expense{ID: "x", Category: model.CategoryFood, Amount: 50})

	if err := b.Load(model.User2, r); err != nil {
		t.Fatal(err)
	}
	got, _ := b.Record(model.User2)
	if got.Spending[model.CategoryFood] != 50 {
		t.Fatalf("Spending[Food] = %d, want 50", got.Spending[model.CategoryFood])
	}
	assertKind(t, b.Load("nobody", model.NewRecord()), KindUnknownUser)
}

func TestMatchExpense(t *testing.T) {
	b := NewBook(WithIDs(func() func() string {
		ids := []string{"0190aa-1", "0190ab-2", "0191ff-3"}
		return func() string {
			id := ids[0]
			ids = ids[1:]
			return id
		}
	}()))
	mustAddCategory(t, b, "Food", 1000)
	for i := 0; i < 3; i++ {
		mustAddExpense(t, b, "Food", "x", 1)
	}

	if id, err := b.MatchExpense("0191"); err != nil || id != "0191ff-3" {
		t.Fatalf("MatchExpense(0191) = %q, %v", id, err)
	}
	if id, err := b.MatchExpense("0190ab-2"); err != nil || id != "0190ab-2" {
		t.Fatalf("MatchExpense(full) = %q, %v", id, err)
	}
	_, err := b.MatchExpense("0190")
	assertKind(t, err, KindNotFound)
	if !strings.Contains(err.Error(), "ambiguous") {
		t.Fatalf("err = %v, want ambiguous", err)
	}
	_, err = b.MatchExpense("ffff")
	assertKind(t, err, KindNotFound)
	_, err = b.MatchExpense(" ")
	assertKind(t, err, KindNotFound)
}
