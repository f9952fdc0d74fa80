// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/allowance/internal/money"
)

// shortIDLen is how many leading characters of an expense id are shown.
// `expense delete` accepts any unique prefix.
const shortIDLen = 8

// FormatYen formats an amount, e.g. 1234 -> "¥1,234".
func FormatYen(n int64) string {
	return money.Format(n)
}

// FormatPercent formats a whole percentage.
func FormatPercent(p int64) string {
	return fmt.Sprintf("%d%%", p)
}

// FormatDate formats an expense date as "M/D".
func FormatDate(d time.Time) string {
	return money.ShortDate(d)
}

// ShortID returns the display prefix of an expense id.
func ShortID(id string) string {
	if len(id) <= shortIDLen {
		return id
	}
	return id[:shortIDLen]
}

// Truncate shortens s to at most limit display cells, marking the cut
// with an ellipsis.
func Truncate(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= limit {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > limit {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}

// padRight pads s with spaces to w display cells.
func padRight(s string, w int) string {
	if gap := w - lipgloss.Width(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

// padLeft right-aligns s in w display cells.
func padLeft(s string, w int) string {
	if gap := w - lipgloss.Width(s); gap > 0 {
		return strings.Repeat(" ", gap) + s
	}
	return s
}
