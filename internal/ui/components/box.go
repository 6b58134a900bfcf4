package components

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
)

const (
	colorBorder       = lipgloss.Color("#273540")
	colorBorderActive = lipgloss.Color("#7f57b4")
)

var (
	panelBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	panelBorderActive = panelBorder.
				BorderForeground(colorBorderActive)

	panelTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7f57b4")).
			Bold(true)

	panelMutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9ba0bf"))

	panelValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d7d9da"))

	panelLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#436b77")).
			Bold(true)

	errorBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7a2f3a")).
			Padding(0, 1)

	errorTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e06c75")).
			Bold(true)

	errorBodyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d6b5b5"))
)

// frameWidth is the width lipgloss should lay the box out at so that the
// rendered box, border included, is exactly width cells wide.
func frameWidth(style lipgloss.Style, width int) int {
	if width <= 0 {
		return 0
	}
	inner := width - style.GetHorizontalBorderSize()
	if inner < 1 {
		inner = 1
	}
	return inner
}

// ContentWidth returns the usable text width inside a panel of width cells.
func ContentWidth(width int) int {
	if width <= 0 {
		return 0
	}
	inner := width - panelBorder.GetHorizontalFrameSize()
	if inner < 0 {
		return 0
	}
	return inner
}

// Panel renders content inside a bordered box exactly width cells wide.
// A width of 0 sizes the box to its content.
func Panel(content string, width int) string {
	return panelBorder.Width(frameWidth(panelBorder, width)).Render(content)
}

// ActivePanel is Panel with the highlighted border.
func ActivePanel(content string, width int) string {
	return panelBorderActive.Width(frameWidth(panelBorderActive, width)).Render(content)
}

// ErrorPanel renders a red bordered box for errors.
func ErrorPanel(title, message string, width int) string {
	body := errorBodyStyle.Render(SanitizeText(message))
	if title != "" {
		body = errorTitleStyle.Render(title) + "\n" + body
	}
	return errorBorder.Width(frameWidth(errorBorder, width)).Render(body)
}

// TitledPanel renders a panel with its title set into the top border.
func TitledPanel(title, content string, width int) string {
	boxed := Panel(content, width)
	if title == "" {
		return boxed
	}
	lines := strings.Split(boxed, "\n")
	lineWidth := lipgloss.Width(lines[0])
	if lineWidth < 4 {
		return boxed
	}

	border := lipgloss.RoundedBorder()
	middle := lineWidth - 2
	label := fmt.Sprintf(" %s ", SanitizeOneLine(title))
	if lipgloss.Width(label) > middle-1 {
		label = truncateRunes(label, middle-1)
	}
	right := middle - 1 - lipgloss.Width(label)
	if right < 0 {
		right = 0
	}

	edge := lipgloss.NewStyle().Foreground(colorBorder)
	lines[0] = edge.Render(border.TopLeft+border.Top) +
		panelTitleStyle.Render(label) +
		edge.Render(strings.Repeat(border.Top, right)+border.TopRight)
	return strings.Join(lines, "\n")
}

// ClampTextWidth truncates text to the given visual width.
func ClampTextWidth(text string, width int) string {
	cleaned := SanitizeOneLine(text)
	if width <= 0 || lipgloss.Width(cleaned) <= width {
		return cleaned
	}
	if width == 1 {
		return "…"
	}
	return truncateRunes(cleaned, width-1) + "…"
}

func truncateRunes(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	var b strings.Builder
	n := 0
	for _, r := range s {
		if n >= max {
			break
		}
		b.WriteRune(r)
		n++
	}
	return b.String()
}

func padRight(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// InfoRow renders a "label: value" line.
func InfoRow(label, value string) string {
	return panelMutedStyle.Render(SanitizeOneLine(label)+": ") + panelValueStyle.Render(SanitizeOneLine(value))
}

// KeyValue is a single row of a KeyValues table.
type KeyValue struct {
	Key   string
	Value string
}

// KeyValues renders aligned label/value rows clamped to width.
func KeyValues(rows []KeyValue, width int) string {
	if len(rows) == 0 {
		return ""
	}
	labelWidth := 0
	for _, r := range rows {
		if w := lipgloss.Width(SanitizeOneLine(r.Key)); w > labelWidth {
			labelWidth = w
		}
	}
	if labelWidth > 20 {
		labelWidth = 20
	}
	valueWidth := 0
	if width > 0 {
		valueWidth = width - labelWidth - 2
		if valueWidth < 4 {
			valueWidth = 4
		}
	}

	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		label := panelLabelStyle.Render(padRight(ClampTextWidth(r.Key, labelWidth), labelWidth))
		lines = append(lines, label+"  "+panelValueStyle.Render(ClampTextWidth(r.Value, valueWidth)))
	}
	return strings.Join(lines, "\n")
}

// Indent adds left padding to every line of a multi-line string.
func Indent(s string, spaces int) string {
	pad := strings.Repeat(" ", spaces)
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = pad + l
	}
	return strings.Join(lines, "\n")
}
