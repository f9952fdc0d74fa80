package prompt

import (
	"errors"

	"github.com/charmbracelet/huh"
)

// Huh prompts interactively on the terminal.
type Huh struct {
	// Accessible switches huh to plain line-based prompts, for screen
	// readers and dumb terminals.
	Accessible bool
}

// Confirm shows a yes/no form. Declining is not an error.
func (h Huh) Confirm(title, detail string) (bool, error) {
	var ok bool
	field := huh.NewConfirm().
		Title(title).
		Description(detail).
		Affirmative("Yes").
		Negative("No").
		Value(&ok)
	if err := h.run(field); err != nil {
		return false, err
	}
	return ok, nil
}

// Input shows a single-line text form pre-filled with def.
func (h Huh) Input(title, def string) (string, error) {
	v := def
	field := huh.NewInput().
		Title(title).
		Placeholder(def).
		Value(&v)
	if err := h.run(field); err != nil {
		return "", err
	}
	return v, nil
}

func (h Huh) run(field huh.Field) error {
	err := huh.NewForm(huh.NewGroup(field)).
		WithAccessible(h.Accessible).
		WithShowHelp(false).
		Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return ErrCanceled
	}
	return err
}
