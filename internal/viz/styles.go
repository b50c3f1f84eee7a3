package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles is the set of lipgloss styles derived from a Theme.
type Styles struct {
	Title   lipgloss.Style
	Label   lipgloss.Style
	Value   lipgloss.Style
	Active  lipgloss.Style
	Joints  lipgloss.Style
	Fixed   lipgloss.Style
	Subtle  lipgloss.Style
	KeyHint lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Panel   lipgloss.Style
}

func NewStyles(t Theme) Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Primary).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(t.Muted),
		Label:   lipgloss.NewStyle().Foreground(t.Muted).Width(14),
		Value:   lipgloss.NewStyle().Foreground(t.Text),
		Active:  lipgloss.NewStyle().Foreground(t.Accent).Bold(true),
		Joints:  lipgloss.NewStyle().Foreground(t.Primary),
		Fixed:   lipgloss.NewStyle().Foreground(t.Fixed).Italic(true),
		Subtle:  lipgloss.NewStyle().Foreground(t.Muted),
		KeyHint: lipgloss.NewStyle().Foreground(t.Muted).Italic(true),
		Warning: lipgloss.NewStyle().Foreground(t.Warning).Bold(true),
		Error:   lipgloss.NewStyle().Foreground(t.Error).Bold(true),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Muted).
			Padding(0, 1),
	}
}

// RenderHierarchy colors a hierarchy report line by line: DOF brackets in
// the joint color and fixed bodies in the fixed color. Line structure and
// indentation are preserved.
func (s Styles) RenderHierarchy(text string) string {
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	for i, line := range lines {
		indent := len(line) - len(strings.TrimLeft(line, " "))
		body := line[indent:]
		switch {
		case strings.HasSuffix(body, " [fixed]"):
			body = s.Fixed.Render(body)
		case strings.Contains(body, " [ "):
			k := strings.Index(body, " [ ")
			body = s.Value.Render(body[:k]) + s.Joints.Render(body[k:])
		default:
			body = s.Active.Render(body)
		}
		lines[i] = line[:indent] + body
	}
	return strings.Join(lines, "\n") + "\n"
}

// KeyValue renders one aligned "label value" line.
func (s Styles) KeyValue(label string, format string, args ...any) string {
	return s.Label.Render(label) + s.Value.Render(fmt.Sprintf(format, args...))
}

// Separator renders a muted rule of the given width.
func (s Styles) Separator(width int) string {
	if width < 8 {
		width = 8
	}
	mid := width / 2
	return s.Subtle.Render(strings.Repeat("─", mid-2) + " ◆ " + strings.Repeat("─", width-mid-3))
}

// SparklineChart renders values as a one-line bar chart of at most width
// cells.
func SparklineChart(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return strings.Repeat("─", max(width, 0))
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo, hi = min(lo, v), max(hi, v)
	}
	rng := hi - lo
	if rng == 0 {
		rng = 1
	}

	step := max(len(values)/width, 1)

	var b strings.Builder
	for i := 0; i < width && i*step < len(values); i++ {
		norm := (values[i*step] - lo) / rng
		idx := int(norm * float64(len(chars)-1))
		idx = min(max(idx, 0), len(chars)-1)
		b.WriteRune(chars[idx])
	}
	return b.String()
}
