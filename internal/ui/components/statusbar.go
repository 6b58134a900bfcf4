package components

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

var (
	hintDescStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9ba0bf"))
	keyCapStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#16161d")).
			Background(lipgloss.Color("#888ba4")).
			Bold(true).
			Padding(0, 1)
	hintGap = "  "
)

// StatusBar renders hints on one line, wrapping onto more lines when they do
// not fit in width.
func StatusBar(hints []string, width int) string {
	rows := wrapSegments(hints, width)
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// Hint formats a single hint like "Scroll ↑/↓".
func Hint(key, desc string) string {
	return hintDescStyle.Render(desc+" ") + keyCapStyle.Render(key)
}

// BindingHints turns enabled key bindings into hints.
func BindingHints(bindings ...key.Binding) []string {
	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		if !b.Enabled() {
			continue
		}
		h := b.Help()
		if h.Key == "" {
			continue
		}
		hints = append(hints, Hint(h.Key, h.Desc))
	}
	return hints
}

func wrapSegments(segments []string, width int) []string {
	if len(segments) == 0 {
		return nil
	}
	gap := lipgloss.Width(hintGap)
	rows := make([]string, 0, 2)
	current := ""
	currentWidth := 0
	for _, seg := range segments {
		segWidth := lipgloss.Width(seg)
		if currentWidth > 0 && width > 0 && currentWidth+gap+segWidth > width {
			rows = append(rows, current)
			current, currentWidth = seg, segWidth
			continue
		}
		if currentWidth > 0 {
			current += hintGap
			currentWidth += gap
		}
		current += seg
		currentWidth += segWidth
	}
	return append(rows, current)
}
