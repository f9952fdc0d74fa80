package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/allowance/internal/tui/theme"
)

// RenderStatusBar renders the bottom status bar: key hints on the left,
// the latest notification on the right.
func RenderStatusBar(width int, notice string, isError bool) string {
	t := theme.Active

	base := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	noticeStyle := base.Foreground(t.Green)
	if isError {
		noticeStyle = base.Foreground(t.Red).Bold(true)
	}

	left := base.Render(" [a]dd  [n]ew category  [?]help  [q]uit")
	right := ""
	if notice != "" {
		mark := "✓ "
		if isError {
			mark = "✗ "
		}
		right = noticeStyle.Render(mark+notice) + base.Render(" ")
	}

	padding := max(width-lipgloss.Width(left)-lipgloss.Width(right), 0)
	if padding == 0 && right != "" {
		// not enough room for both; the notification wins
		left = ""
		padding = max(width-lipgloss.Width(right), 0)
	}

	return left + base.Render(strings.Repeat(" ", padding)) + right
}
