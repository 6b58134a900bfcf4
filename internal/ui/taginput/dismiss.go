package taginput

import tea "github.com/charmbracelet/bubbletea"

// Rect is a cell rectangle on screen.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Contains reports whether the cell (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// MouseMode is the reporting level a subscriber needs.
type MouseMode int

const (
	// MouseClicks reports presses, releases and drags.
	MouseClicks MouseMode = iota + 1
	// MouseHover additionally reports motion with no button held.
	MouseHover
)

// Watcher owns terminal mouse reporting. Subscribers acquire it on mount and
// release it on unmount; the terminal is switched to the highest mode any
// live subscriber needs and mouse reporting is turned off when none remain.
type Watcher struct {
	clicks int
	hover  int
}

// NewWatcher returns a watcher with no subscribers.
func NewWatcher() *Watcher {
	return &Watcher{}
}

// Mode returns the mode currently in force, or 0 when reporting is off.
func (w *Watcher) Mode() MouseMode {
	switch {
	case w == nil:
		return 0
	case w.hover > 0:
		return MouseHover
	case w.clicks > 0:
		return MouseClicks
	}
	return 0
}

// Acquire registers a subscriber. It returns the command to run now (nil
// when the terminal mode does not change) and a release func. Calling
// release more than once is a no-op.
func (w *Watcher) Acquire(mode MouseMode) (tea.Cmd, func() tea.Cmd) {
	if w == nil {
		return nil, func() tea.Cmd { return nil }
	}
	before := w.Mode()
	w.adjust(mode, 1)
	cmd := modeCmd(before, w.Mode())

	released := false
	return cmd, func() tea.Cmd {
		if released {
			return nil
		}
		released = true
		prev := w.Mode()
		w.adjust(mode, -1)
		return modeCmd(prev, w.Mode())
	}
}

func (w *Watcher) adjust(mode MouseMode, delta int) {
	if mode == MouseHover {
		w.hover += delta
		return
	}
	w.clicks += delta
}

func modeCmd(before, after MouseMode) tea.Cmd {
	if before == after {
		return nil
	}
	switch after {
	case MouseHover:
		return tea.EnableMouseAllMotion
	case MouseClicks:
		return tea.EnableMouseCellMotion
	}
	return tea.DisableMouse
}

// isOutsidePress reports a left-button press outside bounds.
func isOutsidePress(msg tea.MouseMsg, bounds Rect) bool {
	return isPrimaryPress(msg) && !bounds.Contains(msg.X, msg.Y)
}

func isPrimaryPress(msg tea.MouseMsg) bool {
	return msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft
}
