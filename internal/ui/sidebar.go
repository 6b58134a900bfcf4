package ui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	sidebarCollapsedWidth = 4
	sidebarExpandedWidth  = 18
	sidebarHoverDelay     = 400 * time.Millisecond
)

type viewID int

const (
	viewEntities viewID = iota
	viewChat
	viewLoops
	viewSettings
)

type sidebarItem struct {
	id    viewID
	icon  string
	label string
}

func sidebarItems(devMode bool) []sidebarItem {
	items := []sidebarItem{
		{id: viewEntities, icon: "◆", label: "Entities"},
		{id: viewChat, icon: "✦", label: "Chat"},
		{id: viewLoops, icon: "○", label: "Open Loops"},
	}
	if devMode {
		items = append(items, sidebarItem{id: viewSettings, icon: "≡", label: "Settings"})
	}
	return items
}

// sidebarHoverMsg fires after the hover delay; seq drops ticks from an
// earlier hover.
type sidebarHoverMsg struct{ seq int }

// SidebarModel is the view switcher. It shows icons only and expands to show
// labels once the pointer has rested on it for the hover delay.
type SidebarModel struct {
	items    []sidebarItem
	active   int
	top      int
	hovering bool
	expanded bool
	seq      int
	delay    time.Duration
}

// NewSidebarModel builds the sidebar. Settings is listed only in dev mode.
func NewSidebarModel(devMode bool) SidebarModel {
	return SidebarModel{
		items: sidebarItems(devMode),
		delay: sidebarHoverDelay,
	}
}

// Width is the number of columns the sidebar occupies, edge included.
func (s SidebarModel) Width() int {
	if s.expanded {
		return sidebarExpandedWidth
	}
	return sidebarCollapsedWidth
}

// Active returns the selected view.
func (s SidebarModel) Active() viewID {
	return s.items[s.active].id
}

// Select moves the selection to position idx.
func (s *SidebarModel) Select(idx int) bool {
	if idx < 0 || idx >= len(s.items) {
		return false
	}
	s.active = idx
	return true
}

// Step moves the selection by delta, wrapping around.
func (s *SidebarModel) Step(delta int) {
	n := len(s.items)
	s.active = ((s.active+delta)%n + n) % n
}

// SetTop records the screen row of the first item.
func (s *SidebarModel) SetTop(row int) {
	s.top = row
}

func (s SidebarModel) contains(x, y int) bool {
	return x >= 0 && x < s.Width() && y >= s.top
}

func (s SidebarModel) itemAt(y int) (int, bool) {
	idx := y - s.top
	if idx < 0 || idx >= len(s.items) {
		return 0, false
	}
	return idx, true
}

func (s SidebarModel) Update(msg tea.Msg) (SidebarModel, tea.Cmd) {
	switch msg := msg.(type) {
	case sidebarHoverMsg:
		if msg.seq == s.seq && s.hovering {
			s.expanded = true
		}
		return s, nil

	case tea.MouseMsg:
		inside := s.contains(msg.X, msg.Y)
		var cmd tea.Cmd
		switch {
		case inside && !s.hovering:
			s.hovering = true
			s.seq++
			seq := s.seq
			cmd = tea.Tick(s.delay, func(time.Time) tea.Msg {
				return sidebarHoverMsg{seq: seq}
			})
		case !inside && s.hovering:
			s.hovering = false
			s.expanded = false
			s.seq++
		}
		if inside && msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			if idx, ok := s.itemAt(msg.Y); ok {
				s.active = idx
			}
		}
		return s, cmd
	}
	return s, nil
}

// View renders the sidebar height rows tall.
func (s SidebarModel) View(height int) string {
	if height < len(s.items) {
		height = len(s.items)
	}
	inner := s.Width() - 1
	edge := SidebarEdgeStyle.Render("│")
	lines := make([]string, 0, height)
	for i, item := range s.items {
		cell := " " + item.icon + " "
		if s.expanded {
			cell += item.label
		}
		cell = padCell(cell, inner)
		if i == s.active {
			cell = SidebarActiveStyle.Render(cell)
		} else {
			cell = SidebarItemStyle.Render(cell)
		}
		lines = append(lines, cell+edge)
	}
	blank := strings.Repeat(" ", inner) + edge
	for len(lines) < height {
		lines = append(lines, blank)
	}
	return strings.Join(lines, "\n")
}

func padCell(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}
