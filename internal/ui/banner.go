package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/gravitrone/nebula-dash/internal/ui/components"
)

const (
	headerMark  = "◆"
	headerTitle = "nebula"
	headerSub   = "dashboard"
)

// RenderHeader returns the one-line title bar. The API root is shown on the
// right when it fits.
func RenderHeader(apiURL string, width int) string {
	left := TitleStyle.Render(headerMark+" "+headerTitle) + " " + HeaderAccentStyle.Render(headerSub)
	if apiURL == "" || width <= 0 {
		return left
	}
	right := MutedStyle.Render(components.SanitizeOneLine(apiURL))
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 2 {
		return left
	}
	return left + strings.Repeat(" ", gap) + right
}
