package ui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gravitrone/nebula-dash/internal/api"
	"github.com/gravitrone/nebula-dash/internal/ui/components"
)

type loopsLoadedMsg struct{ items []api.OpenLoop }

// --- Open Loops Model ---

type LoopsModel struct {
	client  *api.Client
	items   []api.OpenLoop
	list    *components.List
	loading bool
	errText string
	now     func() time.Time
	width   int
	height  int
}

func NewLoopsModel(client *api.Client) LoopsModel {
	return LoopsModel{
		client: client,
		list:   components.NewList(15),
		now:    time.Now,
	}
}

func (m *LoopsModel) Init() tea.Cmd {
	m.loading = m.client != nil
	m.errText = ""
	return m.loadLoops()
}

func (m *LoopsModel) SetSize(width, height int) {
	m.width, m.height = width, height
	// Count line, blank and the detail box sit around the list.
	m.list.Resize(height - 9)
}

func (m LoopsModel) Update(msg tea.Msg) (LoopsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case loopsLoadedMsg:
		m.loading = false
		m.items = msg.items
		m.list.Reset(len(msg.items))
		return m, nil
	case errMsg:
		m.loading = false
		m.errText = msg.err.Error()
		return m, nil
	case tea.KeyMsg:
		switch {
		case isDown(msg):
			m.list.Down()
		case isUp(msg):
			m.list.Up()
		case isKey(msg, "r"):
			cmd := m.Init()
			return m, cmd
		}
	}
	return m, nil
}

func (m LoopsModel) View() string {
	switch {
	case m.errText != "":
		return components.ErrorPanel("Error", m.errText, m.width)
	case m.loading:
		return MutedStyle.Render("Loading open loops...")
	case len(m.items) == 0:
		return MutedStyle.Render("Nothing open. Nice.")
	}

	lines := []string{MutedStyle.Render(fmt.Sprintf("%d open", len(m.items))), ""}
	start, end := m.list.Window()
	now := m.now()
	for i := start; i < end; i++ {
		lines = append(lines, m.renderLoop(m.items[i], i == m.list.Cursor, now))
	}
	if m.list.Cursor < len(m.items) {
		lines = append(lines, "", m.renderDetail(m.items[m.list.Cursor]))
	}
	return strings.Join(lines, "\n")
}

// renderDetail boxes the selected loop's fields.
func (m LoopsModel) renderDetail(loop api.OpenLoop) string {
	rows := []string{components.InfoRow("title", loop.Title)}
	if loop.Kind != "" {
		rows = append(rows, components.InfoRow("kind", loop.Kind))
	}
	if loop.EntityName != nil && *loop.EntityName != "" {
		rows = append(rows, components.InfoRow("entity", *loop.EntityName))
	}
	if loop.DueAt != nil && !loop.DueAt.IsZero() {
		rows = append(rows, components.InfoRow("due", loop.DueAt.In(m.now().Location()).Format("Mon Jan 2 15:04")))
	}
	return components.ActivePanel(strings.Join(rows, "\n"), m.width)
}

func (m LoopsModel) renderLoop(loop api.OpenLoop, selected bool, now time.Time) string {
	prefix := "  "
	style := NormalStyle
	if selected {
		prefix = "› "
		style = SelectedStyle
	}

	due := formatDue(loop.DueAt, now)
	title := components.SanitizeOneLine(loop.Title)
	if loop.EntityName != nil && *loop.EntityName != "" {
		title += " · " + components.SanitizeOneLine(*loop.EntityName)
	}
	title = components.ClampTextWidth(title, m.width-lenDue(due)-4)

	line := style.Render(prefix + title)
	switch {
	case due == "":
		return line
	case strings.HasPrefix(due, "overdue"):
		return line + "  " + ErrorStyle.Render(due)
	default:
		return line + "  " + MutedStyle.Render(due)
	}
}

func lenDue(due string) int {
	if due == "" {
		return 0
	}
	return len([]rune(due)) + 2
}

// formatDue renders a due date relative to now.
func formatDue(due *time.Time, now time.Time) string {
	if due == nil || due.IsZero() {
		return ""
	}
	dueDay := truncateDay(due.In(now.Location()))
	today := truncateDay(now)
	days := int(math.Round(dueDay.Sub(today).Hours() / 24))
	switch {
	case days < 0:
		return fmt.Sprintf("overdue %dd", -days)
	case days == 0:
		return "due today"
	case days == 1:
		return "due tomorrow"
	case days < 7:
		return "due " + dueDay.Weekday().String()[:3]
	}
	return "due " + dueDay.Format("Jan 2")
}

func truncateDay(t time.Time) time.Time {
	y, mo, d := t.Date()
	return time.Date(y, mo, d, 0, 0, 0, 0, t.Location())
}

func (m LoopsModel) loadLoops() tea.Cmd {
	client := m.client
	if client == nil {
		return nil
	}
	return func() tea.Msg {
		items, err := client.ListOpenLoops()
		if err != nil {
			return errMsg{view: viewLoops, err: err}
		}
		return loopsLoadedMsg{items: items}
	}
}

func (m LoopsModel) hints() []string {
	return []string{
		components.Hint("↑/↓", "Select"),
		components.Hint("r", "Refresh"),
	}
}
