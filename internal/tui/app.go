// Package tui provides the interactive Bubble Tea dashboard for allowance.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/allowance/internal/budget"
	"github.com/theirongolddev/allowance/internal/model"
	"github.com/theirongolddev/allowance/internal/prompt"
	"github.com/theirongolddev/allowance/internal/report"
	"github.com/theirongolddev/allowance/internal/service"
	"github.com/theirongolddev/allowance/internal/tui/components"
	"github.com/theirongolddev/allowance/internal/tui/theme"
)

// Tab indices, matching components.Tabs.
const (
	tabOverview = iota
	tabCategories
	tabExpenses
)

// App is the root Bubble Tea model.
type App struct {
	svc   *service.Service
	notes *prompt.Recorder

	keys keyMap
	help help.Model

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool
	catCursor int
	expCursor int

	// Active overlay form; nil when none is open.
	form     *huh.Form
	formKind formKind
	vals     *formValues
	pending  *budget.Action
}

const (
	minTerminalWidth = 60
	maxContentWidth  = 140
	minContentHeight = 5
)

// NewApp creates the dashboard over svc. notes must be the notifier svc
// reports to; its latest entry is shown in the status bar.
func NewApp(svc *service.Service, notes *prompt.Recorder) App {
	return App{
		svc:   svc,
		notes: notes,
		keys:  defaultKeyMap(),
		help:  newHelp(),
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		a.width = ws.Width
		a.height = ws.Height
		if a.form != nil {
			a.form = a.form.WithWidth(min(maxFormWidth, max(ws.Width-8, 30)))
		}
		return a, nil
	}

	// An open form intercepts everything else.
	if a.form != nil {
		return a.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tea.MouseMsg:
		return a.updateMouse(msg), nil
	case tea.KeyMsg:
		return a.updateKey(msg)
	}
	return a, nil
}

func (a App) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}
	if key.Matches(msg, a.keys.Help) {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.User1):
		a.switchUser(model.User1)
	case key.Matches(msg, a.keys.User2):
		a.switchUser(model.User2)

	case key.Matches(msg, a.keys.NextTab):
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)
	case key.Matches(msg, a.keys.PrevTab):
		a.activeTab = (a.activeTab + len(components.Tabs) - 1) % len(components.Tabs)
	case key.Matches(msg, a.keys.Up):
		a.moveCursor(-1)
	case key.Matches(msg, a.keys.Down):
		a.moveCursor(1)

	case key.Matches(msg, a.keys.AddExpense):
		return a, a.startAddExpense()
	case key.Matches(msg, a.keys.NewCategory):
		return a, a.startNewCategory()
	case key.Matches(msg, a.keys.TotalBudget):
		return a, a.startTotalBudget()
	case key.Matches(msg, a.keys.EditBudget):
		if a.activeTab != tabCategories {
			a.activeTab = tabCategories
			return a, nil
		}
		if name, ok := a.selectedCategory(); ok {
			return a, a.startEditBudget(name)
		}
	case key.Matches(msg, a.keys.Delete):
		return a, a.startDelete()
	case key.Matches(msg, a.keys.ResetPeriod):
		return a, a.startConfirm(a.svc.Book().ResetPeriod())
	case key.Matches(msg, a.keys.ResetAll):
		return a, a.startConfirm(a.svc.Book().ResetAll())

	default:
		if len(msg.Runes) == 1 {
			if idx := components.TabIdxByKey(msg.Runes[0]); idx >= 0 {
				a.activeTab = idx
			}
		}
	}
	return a, nil
}

func (a App) updateMouse(msg tea.MouseMsg) App {
	if a.showHelp {
		return a
	}
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		a.moveCursor(-1)
	case tea.MouseButtonWheelDown:
		a.moveCursor(1)
	case tea.MouseButtonLeft:
		// Tab bar is the first line
		if msg.Action == tea.MouseActionPress && msg.Y == 0 {
			if tab := a.tabAtX(msg.X); tab >= 0 {
				a.activeTab = tab
			}
		}
	}
	return a
}

func (a *App) switchUser(id model.UserID) {
	if id == a.svc.Book().ActiveUser() {
		return
	}
	if err := a.svc.SwitchUser(id); err != nil {
		return
	}
	a.catCursor, a.expCursor = 0, 0
}

// startDelete confirms deletion of whatever the cursor is on.
func (a *App) startDelete() tea.Cmd {
	var (
		act *budget.Action
		err error
	)
	switch a.activeTab {
	case tabCategories:
		name, ok := a.selectedCategory()
		if !ok {
			return nil
		}
		act, err = a.svc.PrepareDeleteCategory(name)
	case tabExpenses:
		e, ok := a.selectedExpense()
		if !ok {
			return nil
		}
		act, err = a.svc.PrepareDeleteExpense(e.ID)
	default:
		return nil
	}
	if err != nil {
		return nil
	}
	return a.startConfirm(act)
}

func (a *App) moveCursor(delta int) {
	switch a.activeTab {
	case tabCategories:
		a.catCursor += delta
	case tabExpenses:
		a.expCursor += delta
	}
	a.clampCursors()
}

func (a *App) clampCursors() {
	r := a.svc.Book().Active()
	a.catCursor = clamp(a.catCursor, len(r.Order))
	a.expCursor = clamp(a.expCursor, len(r.Expenses))
}

func clamp(cursor, n int) int {
	if n == 0 || cursor < 0 {
		return 0
	}
	return min(cursor, n-1)
}

func (a App) selectedCategory() (string, bool) {
	names := a.svc.Book().Active().CategoryNames()
	if a.catCursor >= len(names) {
		return "", false
	}
	return names[a.catCursor], true
}

func (a App) selectedExpense() (model.Expense, bool) {
	list := report.Expenses(a.svc.Book().Active())
	if a.expCursor >= len(list) {
		return model.Expense{}, false
	}
	return list[a.expCursor], true
}

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}
	if a.form != nil {
		return a.viewForm()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := max(a.height, 5)
	msg := fmt.Sprintf("\n  Terminal too narrow (%d cols)\n\n  allowance needs at least %d columns.\n",
		a.width, minTerminalWidth)
	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewForm() string {
	t := theme.Active
	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Padding(1, 2)
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center,
		cardStyle.Render(a.form.View()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewHelp() string {
	t := theme.Active
	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)
	titleStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Surface).
		Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	body := titleStyle.Render("Keybindings") + "\n\n" +
		a.help.View(a.keys) + "\n\n" +
		dimStyle.Render("Press any key to close")

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center,
		cardStyle.Render(body),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	header := components.RenderTabBar(a.activeTab, w) + "\n" + a.renderInfoRow(w)

	notice, isErr := "", false
	if n, ok := a.notes.Last(); ok {
		notice, isErr = n.Msg, n.Severity == prompt.Error
	}
	statusBar := components.RenderStatusBar(w, notice, isErr)

	contentH := max(h-lipgloss.Height(header)-lipgloss.Height(statusBar), minContentHeight)

	var content string
	switch a.activeTab {
	case tabOverview:
		content = a.renderOverviewTab(cw)
	case tabCategories:
		content = a.renderCategoriesTab(cw, contentH)
	case tabExpenses:
		content = a.renderExpensesTab(cw, contentH)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// renderInfoRow shows the budget period and the two user pills.
func (a App) renderInfoRow(w int) string {
	t := theme.Active
	dim := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	accent := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	activePill := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceHover).Bold(true)
	idlePill := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	book := a.svc.Book()
	p := book.Period()
	left := dim.Render(" ") + accent.Render(p.Label()) + dim.Render(" · "+p.RangeLabel())

	var pills []string
	for i, u := range model.Users {
		label := fmt.Sprintf(" %d %s ", i+1, a.svc.Label(u))
		if u == book.ActiveUser() {
			pills = append(pills, activePill.Render(label))
		} else {
			pills = append(pills, idlePill.Render(label))
		}
	}
	right := strings.Join(pills, dim.Render(" ")) + dim.Render(" ")

	gap := max(w-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + dim.Render(strings.Repeat(" ", gap)) + right
}

// ─── Helpers ────────────────────────────────────────────────────

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
	}
	return strings.Join(lines, "\n")
}

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes are derived from the same width rules used by RenderTabBar.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW
		// one column separator
		if i < len(components.Tabs)-1 {
			pos++
		}
	}
	return -1
}
