// Package prompt defines how allowance asks the user for confirmation and
// input, and how it reports the outcome of an operation.
package prompt

import "errors"

// ErrCanceled is returned when the user aborts a prompt.
var ErrCanceled = errors.New("canceled")

// Confirmer asks a yes/no question.
type Confirmer interface {
	Confirm(title, detail string) (bool, error)
}

// Prompter asks for a line of text, offering def as the starting value.
type Prompter interface {
	Input(title, def string) (string, error)
}

// Severity classifies a notification.
type Severity int

const (
	Success Severity = iota
	Error
)

func (s Severity) String() string {
	if s == Error {
		return "error"
	}
	return "success"
}

// Notifier reports the outcome of an operation to the user.
type Notifier interface {
	Notify(msg string, sev Severity)
}

// AssumeYes accepts every confirmation and every default. It backs the
// --yes flag and non-interactive use.
type AssumeYes struct{}

func (AssumeYes) Confirm(string, string) (bool, error) { return true, nil }

func (AssumeYes) Input(_, def string) (string, error) {
	if def == "" {
		return "", ErrCanceled
	}
	return def, nil
}

// Scripted replays canned answers in order. Once an answer list runs out,
// further prompts return ErrCanceled.
type Scripted struct {
	Answers []bool
	Inputs  []string
	// Asked records every title shown, in order.
	Asked []string
}

func (s *Scripted) Confirm(title, _ string) (bool, error) {
	s.Asked = append(s.Asked, title)
	if len(s.Answers) == 0 {
		return false, ErrCanceled
	}
	ok := s.Answers[0]
	s.Answers = s.Answers[1:]
	return ok, nil
}

func (s *Scripted) Input(title, _ string) (string, error) {
	s.Asked = append(s.Asked, title)
	if len(s.Inputs) == 0 {
		return "", ErrCanceled
	}
	v := s.Inputs[0]
	s.Inputs = s.Inputs[1:]
	return v, nil
}
