package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/theirongolddev/allowance/internal/budget"
	"github.com/theirongolddev/allowance/internal/prompt"
	"github.com/theirongolddev/allowance/internal/tui/theme"
)

type formKind int

const (
	formNone formKind = iota
	formAddExpense
	formNewCategory
	formEditBudget
	formTotalBudget
	formConfirm
)

// formValues is bound by pointer into the active huh form, so it must
// outlive the App value copies Bubble Tea passes around.
type formValues struct {
	Date        string
	Category    string
	Description string
	Amount      string
	Name        string
	Confirm     bool
}

const maxFormWidth = 64

func formTheme() *huh.Theme {
	t := theme.Active
	ht := huh.ThemeBase()
	ht.Focused.Title = ht.Focused.Title.Foreground(t.AccentBright).Bold(true)
	ht.Focused.Description = ht.Focused.Description.Foreground(t.TextMuted)
	ht.Focused.ErrorMessage = ht.Focused.ErrorMessage.Foreground(t.Red)
	ht.Focused.SelectSelector = ht.Focused.SelectSelector.Foreground(t.Accent)
	ht.Focused.SelectedOption = ht.Focused.SelectedOption.Foreground(t.Green)
	ht.Focused.FocusedButton = ht.Focused.FocusedButton.Background(t.Accent).Foreground(t.Background)
	ht.Focused.BlurredButton = ht.Focused.BlurredButton.Background(t.SurfaceHover).Foreground(t.TextMuted)
	return ht
}

// openForm makes form the active overlay. Esc cancels it.
func (a *App) openForm(kind formKind, form *huh.Form) tea.Cmd {
	km := huh.NewDefaultKeyMap()
	km.Quit = key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "cancel"))

	a.formKind = kind
	a.form = form.
		WithKeyMap(km).
		WithTheme(formTheme()).
		WithShowHelp(true).
		WithWidth(min(maxFormWidth, max(a.width-8, 30)))
	return a.form.Init()
}

func (a *App) startAddExpense() tea.Cmd {
	names := a.svc.Book().Active().CategoryNames()
	if len(names) == 0 {
		a.notes.Notify("Add a category first", prompt.Error)
		return nil
	}
	a.vals = &formValues{Date: a.svc.Book().Today(), Category: names[0]}
	if a.activeTab == tabCategories && a.catCursor < len(names) {
		a.vals.Category = names[a.catCursor]
	}

	return a.openForm(formAddExpense, huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Category").
			Options(huh.NewOptions(names...)...).
			Value(&a.vals.Category),
		huh.NewInput().
			Title("Amount").
			Placeholder("1200").
			Value(&a.vals.Amount),
		huh.NewInput().
			Title("Description").
			Value(&a.vals.Description),
		huh.NewInput().
			Title("Date").
			Description("YYYY-MM-DD").
			Value(&a.vals.Date),
	).Title("Add expense")))
}

func (a *App) startNewCategory() tea.Cmd {
	a.vals = &formValues{}
	return a.openForm(formNewCategory, huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Name").
			Value(&a.vals.Name),
		huh.NewInput().
			Title("Budget").
			Placeholder("10000").
			Value(&a.vals.Amount),
	).Title("New category")))
}

func (a *App) startEditBudget(name string) tea.Cmd {
	current, err := a.svc.Book().CategoryBudget(name)
	if err != nil {
		a.notes.Notify(err.Error(), prompt.Error)
		return nil
	}
	a.vals = &formValues{Name: name, Amount: fmt.Sprint(current)}
	return a.openForm(formEditBudget, huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title(fmt.Sprintf("New budget for %q", name)).
			Value(&a.vals.Amount),
	)))
}

func (a *App) startTotalBudget() tea.Cmd {
	a.vals = &formValues{Amount: fmt.Sprint(a.svc.Book().Active().TotalBudget)}
	return a.openForm(formTotalBudget, huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Total budget").
			Value(&a.vals.Amount),
	)))
}

// startConfirm asks before applying act. Nothing changes unless the user
// affirms.
func (a *App) startConfirm(act *budget.Action) tea.Cmd {
	a.pending = act
	a.vals = &formValues{}
	affirm := "Yes"
	if act.Strong {
		affirm = "Delete"
	}
	return a.openForm(formConfirm, huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(act.Title).
			Description(act.Prompt).
			Affirmative(affirm).
			Negative("Cancel").
			Value(&a.vals.Confirm),
	)))
}

// completeForm runs the operation behind a submitted form. Failures are
// reported through the notifier by the service.
func (a *App) completeForm() {
	v := a.vals
	switch a.formKind {
	case formAddExpense:
		_, _ = a.svc.AddExpense(budget.ExpenseInput{
			Date:        v.Date,
			Category:    v.Category,
			Description: v.Description,
			Amount:      v.Amount,
		})
	case formNewCategory:
		_, _ = a.svc.AddCategory(v.Name, v.Amount)
	case formEditBudget:
		if strings.TrimSpace(v.Amount) == "" {
			// an empty field would make the service prompt again
			a.notes.Notify(budget.ErrInvalidBudget.Error(), prompt.Error)
			break
		}
		_, _ = a.svc.EditCategoryBudget(v.Name, v.Amount)
	case formTotalBudget:
		_, _ = a.svc.SetTotalBudget(v.Amount)
	case formConfirm:
		if v.Confirm && a.pending != nil {
			a.svc.Apply(a.pending)
		}
	}
	a.closeForm()
	a.clampCursors()
}

func (a *App) closeForm() {
	a.form = nil
	a.formKind = formNone
	a.pending = nil
}

func (a App) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.form = f
	}

	switch a.form.State {
	case huh.StateCompleted:
		a.completeForm()
		return a, nil
	case huh.StateAborted:
		a.closeForm()
		return a, nil
	}
	return a, cmd
}
