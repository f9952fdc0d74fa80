package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/allowance/internal/tui/theme"
)

type keyMap struct {
	User1       key.Binding
	User2       key.Binding
	AddExpense  key.Binding
	NewCategory key.Binding
	EditBudget  key.Binding
	Delete      key.Binding
	TotalBudget key.Binding
	ResetPeriod key.Binding
	ResetAll    key.Binding
	Up          key.Binding
	Down        key.Binding
	NextTab     key.Binding
	PrevTab     key.Binding
	Help        key.Binding
	Quit        key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		User1:       key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "first user")),
		User2:       key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "second user")),
		AddExpense:  key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add expense")),
		NewCategory: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new category")),
		EditBudget:  key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit budget")),
		Delete:      key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete selected")),
		TotalBudget: key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "total budget")),
		ResetPeriod: key.NewBinding(key.WithKeys("P"), key.WithHelp("P", "reset period")),
		ResetAll:    key.NewBinding(key.WithKeys("X"), key.WithHelp("X", "reset everything")),
		Up:          key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("j/k", "move")),
		Down:        key.NewBinding(key.WithKeys("j", "down")),
		NextTab:     key.NewBinding(key.WithKeys("right", "l", "tab"), key.WithHelp("←/→ o/c/x", "switch tab")),
		PrevTab:     key.NewBinding(key.WithKeys("left", "h", "shift+tab")),
		Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.AddExpense, k.NewCategory, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.AddExpense, k.NewCategory, k.EditBudget, k.TotalBudget, k.Delete},
		{k.User1, k.User2, k.ResetPeriod, k.ResetAll},
		{k.NextTab, k.Up, k.Help, k.Quit},
	}
}

func newHelp() help.Model {
	t := theme.Active
	h := help.New()
	keyStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	sepStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	h.Styles.ShortKey = keyStyle
	h.Styles.FullKey = keyStyle
	h.Styles.ShortDesc = descStyle
	h.Styles.FullDesc = descStyle
	h.Styles.ShortSeparator = sepStyle
	h.Styles.FullSeparator = sepStyle
	h.ShowAll = true
	return h
}
