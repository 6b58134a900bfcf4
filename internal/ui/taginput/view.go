package taginput

import (
	"fmt"
	"hash/fnv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/gravitrone/nebula-dash/internal/ui/components"
)

var (
	pillMutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9ba0bf"))
	rowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d7d9da"))
	rowActiveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7f57b4")).
			Bold(true)
	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9ba0bf"))
	createStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#3f866b"))
)

// fallbackPalette colors tags the directory has no color for.
var fallbackPalette = []string{
	"#e74c3c",
	"#3498db",
	"#2ecc71",
	"#f39c12",
	"#9b59b6",
	"#1abc9c",
	"#e67e22",
	"#16a085",
	"#f1c40f",
	"#2980b9",
}

// TagColor returns the directory color for name, or a stable palette color.
func TagColor(dir Directory, name string) string {
	if color, ok := dir.LookupColor(name); ok {
		return color
	}
	h := fnv.New32a()
	h.Write([]byte(strings.ToLower(name)))
	return fallbackPalette[int(h.Sum32()%uint32(len(fallbackPalette)))]
}

type pillSpan struct {
	name   string
	start  int
	closeX int
}

// hitsClose is true for the "×" cell and the bracket after it.
func (p pillSpan) hitsClose(col int) bool {
	return col == p.closeX || col == p.closeX+1
}

// pillSpans lays out the selected tags on row 0 as "[name ×]" separated
// by single spaces, starting at column 0.
func (m Model) pillSpans() []pillSpan {
	if m.disabled {
		return nil
	}
	spans := make([]pillSpan, 0, len(m.value))
	x := 0
	for _, name := range m.value {
		w := lipgloss.Width(components.SanitizeOneLine(name))
		spans = append(spans, pillSpan{name: name, start: x, closeX: x + w + 2})
		x += w + 4 + 1
	}
	return spans
}

func (m Model) renderPills() string {
	parts := make([]string, 0, len(m.value))
	for _, name := range m.value {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(TagColor(m.dir, name)))
		label := components.SanitizeOneLine(name)
		if m.disabled {
			parts = append(parts, pillMutedStyle.Render("["+label+"]"))
			continue
		}
		parts = append(parts, style.Render("["+label+" ×]"))
	}
	return strings.Join(parts, " ")
}

func (m Model) renderPanel() []string {
	rows := make([]string, 0, m.sugg.Len())
	for i, tag := range m.sugg.Tags {
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(TagColor(m.dir, tag.Name))).Render("●")
		label := components.SanitizeOneLine(tag.Name)
		if tag.UsageCount > 0 {
			label += countStyle.Render(fmt.Sprintf("  %d", tag.UsageCount))
		}
		rows = append(rows, m.renderRow(i, swatch+" "+label))
	}
	if m.sugg.OfferCreate {
		rows = append(rows, m.renderRow(len(m.sugg.Tags), createStyle.Render(fmt.Sprintf("+ create %q", components.SanitizeOneLine(m.sugg.Draft)))))
	}
	return rows
}

func (m Model) renderRow(idx int, content string) string {
	if idx == m.highlight {
		return rowActiveStyle.Render("› ") + content
	}
	return rowStyle.Render("  ") + content
}

// View renders the pills and draft on the first line and, while visible,
// one suggestion per following line.
func (m Model) View() string {
	line := m.renderPills()
	if !m.disabled {
		if line != "" {
			line += " "
		}
		line += m.input.View()
	} else if line == "" {
		line = pillMutedStyle.Render("-")
	}
	if m.width > 0 {
		line = lipgloss.NewStyle().MaxWidth(m.width).Render(line)
	}

	if !m.PanelVisible() {
		return line
	}
	rows := m.renderPanel()
	if m.width > 0 {
		clamp := lipgloss.NewStyle().MaxWidth(m.width)
		for i := range rows {
			rows[i] = clamp.Render(rows[i])
		}
	}
	return line + "\n" + strings.Join(rows, "\n")
}

// Bounds is the rectangle View occupies at the owner's origin.
func (m Model) Bounds() Rect {
	view := m.View()
	width := lipgloss.Width(view)
	if m.width > width {
		width = m.width
	}
	return Rect{
		X:      m.origin.X,
		Y:      m.origin.Y,
		Width:  width,
		Height: lipgloss.Height(view),
	}
}
