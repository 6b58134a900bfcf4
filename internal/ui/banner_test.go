package ui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"github.com/gravitrone/nebula-dash/internal/ui/components"
)

func TestRenderHeaderFillsWidth(t *testing.T) {
	out := RenderHeader("http://localhost:8000", 80)
	assert.Equal(t, 80, lipgloss.Width(out))
	assert.Equal(t, 1, lipgloss.Height(out))

	clean := components.SanitizeText(out)
	assert.Contains(t, clean, "nebula")
	assert.Contains(t, clean, "http://localhost:8000")
}

func TestRenderHeaderDropsURLWhenNarrow(t *testing.T) {
	out := components.SanitizeText(RenderHeader("http://localhost:8000", 20))
	assert.NotContains(t, out, "localhost")
	assert.Contains(t, out, "nebula")
}

func TestRenderHeaderStripsEscapes(t *testing.T) {
	out := RenderHeader("http://evil\x1b]0;title\x07", 80)
	assert.NotContains(t, out, "\x1b]")
}
