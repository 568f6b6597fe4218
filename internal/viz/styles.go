package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/particlesim/internal/particle"
)

// styles are derived from the active theme on every render.
type styles struct {
	header  lipgloss.Style
	label   lipgloss.Style
	value   lipgloss.Style
	active  lipgloss.Style
	muted   lipgloss.Style
	running lipgloss.Style
	graph   lipgloss.Style
	pane    lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		header:  lipgloss.NewStyle().Foreground(t.Secondary).Bold(true),
		label:   lipgloss.NewStyle().Foreground(t.Muted).Width(12),
		value:   lipgloss.NewStyle().Foreground(t.Text),
		active:  lipgloss.NewStyle().Foreground(t.Primary).Bold(true),
		muted:   lipgloss.NewStyle().Foreground(t.Muted),
		running: lipgloss.NewStyle().Foreground(t.Success).Bold(true),
		graph:   lipgloss.NewStyle().Foreground(t.Accent),
		pane: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(t.Muted).
			Padding(0, 1).
			Width(statsWidth - 1),
	}
}

// GradientText colours each rune of text along a Lab blend from start to
// end.
func GradientText(text string, start, end particle.RGB) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}

	var result strings.Builder
	for i, c := range runes {
		t := 0.0
		if len(runes) > 1 {
			t = float64(i) / float64(len(runes)-1)
		}
		color := lipgloss.Color(start.Blend(end, t).Hex())
		result.WriteString(lipgloss.NewStyle().Foreground(color).Bold(true).Render(string(c)))
	}
	return result.String()
}

// ProgressBar renders the position of v within [lo, hi].
func ProgressBar(v, lo, hi float64, width int) string {
	percent := 0.0
	if hi > lo {
		percent = (v - lo) / (hi - lo)
	}
	filled := int(percent * float64(width))
	filled = max(0, min(width, filled))
	return "[" + strings.Repeat("=", filled) + strings.Repeat("-", width-filled) + "]"
}

// SparklineChart renders a mini sparkline of the last width values.
func SparklineChart(values []float64, width int) string {
	if len(values) == 0 {
		return strings.Repeat("─", width)
	}
	if len(values) > width {
		values = values[len(values)-width:]
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	rng := hi - lo
	if rng == 0 {
		rng = 1
	}

	var result strings.Builder
	for _, v := range values {
		idx := int((v - lo) / rng * float64(len(chars)-1))
		result.WriteRune(chars[max(0, min(len(chars)-1, idx))])
	}
	return result.String()
}
