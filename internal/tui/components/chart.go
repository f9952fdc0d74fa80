package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/allowance/internal/tui/theme"
)

var blocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline renders one block per value, scaled to the largest value.
// When there are more values than width, adjacent values are summed into
// buckets.
func Sparkline(values []int64, width int) string {
	if len(values) == 0 || width <= 0 {
		return ""
	}
	values = bucket(values, width)

	peak := int64(0)
	for _, v := range values {
		peak = max(peak, v)
	}

	t := theme.Active
	on := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface)
	off := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	var b strings.Builder
	for _, v := range values {
		if v <= 0 || peak == 0 {
			b.WriteString(off.Render(string(blocks[0])))
			continue
		}
		idx := int(v * int64(len(blocks)-1) / peak)
		b.WriteString(on.Render(string(blocks[idx])))
	}
	return b.String()
}

func bucket(values []int64, width int) []int64 {
	if len(values) <= width {
		return values
	}
	out := make([]int64, width)
	for i, v := range values {
		out[i*width/len(values)] += v
	}
	return out
}
