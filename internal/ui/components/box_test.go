package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func maxLineWidth(s string) int {
	w := 0
	for _, line := range strings.Split(s, "\n") {
		if lw := lipgloss.Width(line); lw > w {
			w = lw
		}
	}
	return w
}

func TestPanelIsExactlyWidth(t *testing.T) {
	for _, width := range []int{12, 40, 97} {
		out := Panel("hello", width)
		for _, line := range strings.Split(out, "\n") {
			assert.Equal(t, width, lipgloss.Width(line))
		}
	}
}

func TestPanelZeroWidthFitsContent(t *testing.T) {
	out := Panel("abc", 0)
	assert.Equal(t, lipgloss.Width("abc")+4, maxLineWidth(out))
}

func TestContentWidth(t *testing.T) {
	assert.Equal(t, 0, ContentWidth(0))
	assert.Equal(t, 36, ContentWidth(40))
	assert.Equal(t, 0, ContentWidth(2))
}

func TestTitledPanelIncludesTitle(t *testing.T) {
	out := TitledPanel("Entities", "Content", 40)
	first := strings.Split(out, "\n")[0]
	assert.Contains(t, first, "Entities")
	assert.Equal(t, 40, lipgloss.Width(first))
	assert.Contains(t, out, "Content")
}

func TestTitledPanelTruncatesLongTitle(t *testing.T) {
	out := TitledPanel(strings.Repeat("x", 50), "c", 20)
	assert.Equal(t, 20, maxLineWidth(out))
}

func TestTitledPanelEmptyTitleFallsBack(t *testing.T) {
	assert.Equal(t, Panel("Content", 30), TitledPanel("", "Content", 30))
}

func TestActivePanelClampsWidth(t *testing.T) {
	out := ActivePanel("hello\nworld", 40)
	assert.Equal(t, 40, maxLineWidth(out))
}

func TestErrorPanelIncludesMessage(t *testing.T) {
	out := ErrorPanel("Error", "Something\x1b[2J broke", 60)
	assert.Contains(t, out, "Error")
	assert.Contains(t, out, "Something broke")
	assert.NotContains(t, out, "\x1b[2J")
}

func TestClampTextWidth(t *testing.T) {
	assert.Equal(t, "hello", ClampTextWidth("hello", 10))
	assert.Equal(t, "hel…", ClampTextWidth("hello", 4))
	assert.Equal(t, "…", ClampTextWidth("hello", 1))
	assert.Equal(t, "a b", ClampTextWidth("a\nb", 0))
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "", truncateRunes("hello", 0))
	assert.Equal(t, "he", truncateRunes("hello", 2))
	assert.Equal(t, "你", truncateRunes("你好", 1))
}

func TestInfoRowSanitizesLabelAndValue(t *testing.T) {
	out := InfoRow("na\u202eme\x1b]0;evil\x07", "va\x1b[2Jlu\u202ee")
	assert.NotContains(t, out, "\u202e")
	assert.NotContains(t, out, "\x1b]")
	assert.NotContains(t, out, "\x1b[2J")
	assert.Contains(t, SanitizeText(out), "name: value")
}

func TestKeyValuesAlignsAndClamps(t *testing.T) {
	out := KeyValues([]KeyValue{
		{Key: "api", Value: "http://localhost:8000"},
		{Key: "dev mode", Value: strings.Repeat("v", 80)},
	}, 30)
	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(SanitizeText(lines[0]), "api     "))
	for _, line := range lines {
		assert.LessOrEqual(t, lipgloss.Width(line), 30)
	}
	assert.Equal(t, "", KeyValues(nil, 30))
}

func TestIndentPreservesLineCountAndAddsPadding(t *testing.T) {
	lines := strings.Split(Indent("a\nb\nc", 2), "\n")
	assert.Len(t, lines, 3)
	for _, line := range lines {
		assert.True(t, strings.HasPrefix(line, "  "))
	}
}
