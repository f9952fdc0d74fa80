package prompt

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#879A39"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#D14D41")).Bold(true)
)

// Console prints notifications: successes to Out, errors to Err.
type Console struct {
	Out, Err io.Writer
	// Quiet drops success notifications.
	Quiet bool
}

// NewConsole returns a Console on stdout and stderr.
func NewConsole(quiet bool) *Console {
	return &Console{Out: os.Stdout, Err: os.Stderr, Quiet: quiet}
}

func (c *Console) Notify(msg string, sev Severity) {
	if sev == Error {
		fmt.Fprintf(c.Err, "  %s %s\n", errorStyle.Render("✗"), msg)
		return
	}
	if c.Quiet {
		return
	}
	fmt.Fprintf(c.Out, "  %s %s\n", successStyle.Render("✓"), msg)
}

// Notice is one recorded notification.
type Notice struct {
	Msg      string
	Severity Severity
}

// Recorder keeps every notification in memory.
type Recorder struct {
	Notices []Notice
}

func (r *Recorder) Notify(msg string, sev Severity) {
	r.Notices = append(r.Notices, Notice{Msg: msg, Severity: sev})
}

// Last returns the most recent notification.
func (r *Recorder) Last() (Notice, bool) {
	if len(r.Notices) == 0 {
		return Notice{}, false
	}
	return r.Notices[len(r.Notices)-1], true
}

// Reset forgets recorded notifications.
func (r *Recorder) Reset() {
	r.Notices = nil
}
