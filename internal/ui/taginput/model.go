// Package taginput is a tag-editing field: a free-text draft, a live
// suggestion panel fed by the remote tag directory, and an ordered,
// duplicate-free set of selected tags owned by the caller.
package taginput

import (
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/gravitrone/nebula-dash/internal/diag"
)

var instanceSeq atomic.Uint64

// State of the suggestion panel.
type State int

const (
	Idle State = iota
	Browsing
)

func (s State) String() string {
	if s == Browsing {
		return "browsing"
	}
	return "idle"
}

// ChangedMsg is emitted after every accepted change. Tags is always the
// complete new set, never a patch.
type ChangedMsg struct {
	Key  string
	Tags []string
}

// ProposeFunc lets the owner accept, transform or reject a proposed set.
// Returning ok=false rejects the change.
type ProposeFunc func(next []string) (accepted []string, ok bool)

func acceptAll(next []string) ([]string, bool) {
	return next, true
}

// KeyMap holds the controller's bindings.
type KeyMap struct {
	Commit     key.Binding
	Next       key.Binding
	Prev       key.Binding
	Close      key.Binding
	RemoveLast key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Commit:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "add tag")),
		Next:       key.NewBinding(key.WithKeys("down", "ctrl+n"), key.WithHelp("↓", "next")),
		Prev:       key.NewBinding(key.WithKeys("up", "ctrl+p"), key.WithHelp("↑", "previous")),
		Close:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		RemoveLast: key.NewBinding(key.WithKeys("backspace"), key.WithHelp("⌫", "remove last")),
	}
}

// Option configures a Model.
type Option func(*Model)

// WithSource sets where the directory is fetched from on mount.
func WithSource(src TagSource) Option {
	return func(m *Model) { m.source = src }
}

// WithDiagnostics routes directory failures to ch.
func WithDiagnostics(ch *diag.Channel) Option {
	return func(m *Model) { m.diag = ch }
}

// WithWatcher shares mouse reporting with other mounted components.
func WithWatcher(w *Watcher) Option {
	return func(m *Model) { m.watcher = w }
}

// WithPropose installs the owner's change gate.
func WithPropose(fn ProposeFunc) Option {
	return func(m *Model) {
		if fn != nil {
			m.propose = fn
		}
	}
}

// WithPlaceholder sets the text shown while the draft is empty.
func WithPlaceholder(text string) Option {
	return func(m *Model) { m.input.Placeholder = text }
}

// Model is the tag input. The zero value is not usable; call New.
type Model struct {
	Key  string
	Keys KeyMap

	input   textinput.Model
	value   []string
	dir     Directory
	sugg    Suggestions
	source  TagSource
	diag    *diag.Channel
	watcher *Watcher
	propose ProposeFunc
	release func() tea.Cmd

	instance  uint64
	mounted   bool
	focused   bool
	open      bool
	disabled  bool
	highlight int

	origin Rect
	width  int
}

// New builds an unmounted input. key identifies it in ChangedMsg.
func New(key string, opts ...Option) Model {
	ti := textinput.New()
	ti.Prompt = ""
	m := Model{
		Key:     key,
		Keys:    DefaultKeyMap(),
		input:   ti,
		propose: acceptAll,
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.recompute()
	return m
}

// --- Lifecycle ---

// Mount attaches the input to a visible view. It starts the one directory
// fetch for this mount and subscribes to mouse reporting.
func (m *Model) Mount() tea.Cmd {
	if m.mounted {
		return nil
	}
	m.mounted = true
	m.instance = instanceSeq.Add(1)
	m.dir = Directory{}
	m.closePanel()

	var cmds []tea.Cmd
	if m.source != nil {
		cmds = append(cmds, loadDirectory(m.source, m.diag, m.instance))
	}
	if m.watcher != nil {
		cmd, release := m.watcher.Acquire(MouseClicks)
		m.release = release
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// Unmount detaches the input. Late directory results for this mount are
// dropped and the mouse subscription is released.
func (m *Model) Unmount() tea.Cmd {
	if !m.mounted {
		return nil
	}
	m.mounted = false
	m.Blur()
	var cmd tea.Cmd
	if m.release != nil {
		cmd = m.release()
		m.release = nil
	}
	return cmd
}

// Mounted reports whether the input is attached.
func (m Model) Mounted() bool {
	return m.mounted
}

// Focus gives the text field focus and opens the panel.
func (m *Model) Focus() tea.Cmd {
	if m.disabled {
		return nil
	}
	m.focused = true
	m.open = true
	m.recompute()
	return m.input.Focus()
}

// Blur removes focus and closes the panel.
func (m *Model) Blur() {
	m.focused = false
	m.closePanel()
	m.input.Blur()
}

// Focused reports whether keys reach the field.
func (m Model) Focused() bool {
	return m.focused
}

// --- Owner-facing accessors ---

// SetValue replaces the selected set with the owner's value. Duplicates are
// dropped, keeping the first occurrence.
func (m *Model) SetValue(tags []string) {
	m.value = dedupe(tags)
	m.recompute()
}

// Value returns a copy of the selected set.
func (m Model) Value() []string {
	return clone(m.value)
}

// SetDisabled toggles the disabled flag. A disabled input never opens.
func (m *Model) SetDisabled(disabled bool) {
	m.disabled = disabled
	if disabled {
		m.Blur()
	}
}

// Disabled reports the disabled flag.
func (m Model) Disabled() bool {
	return m.disabled
}

// SetWidth bounds the rendered width.
func (m *Model) SetWidth(width int) {
	m.width = width
}

// SetOrigin records where the owner drew the input, for hit-testing.
func (m *Model) SetOrigin(x, y int) {
	m.origin.X = x
	m.origin.Y = y
}

// Draft returns the uncommitted text.
func (m Model) Draft() string {
	return m.input.Value()
}

// Directory returns the cached tag directory.
func (m Model) Directory() Directory {
	return m.dir
}

// Suggestions returns the current candidate list.
func (m Model) Suggestions() Suggestions {
	return m.sugg
}

// Highlight returns the highlighted candidate index.
func (m Model) Highlight() int {
	return m.highlight
}

// State reports Browsing while the panel is open.
func (m Model) State() State {
	if m.open {
		return Browsing
	}
	return Idle
}

// PanelVisible is true while the panel is open and has at least one row.
func (m Model) PanelVisible() bool {
	return m.mounted && m.focused && m.open && !m.disabled && m.sugg.Len() > 0
}

// --- Mutations ---

// Commit adds name to the selected set. Empty names and names already
// selected (exact match) are ignored.
func (m *Model) Commit(name string) tea.Cmd {
	name = strings.TrimSpace(name)
	if name == "" || containsExact(m.value, name) {
		return nil
	}
	next := append(clone(m.value), name)
	cmd, ok := m.apply(next)
	if !ok {
		return nil
	}
	m.input.SetValue("")
	m.highlight = 0
	m.recompute()
	if !m.mounted || m.disabled || m.focused {
		return cmd
	}
	m.focused = true
	return tea.Batch(cmd, m.input.Focus())
}

// Remove drops name from the selected set. Draft and panel are untouched.
func (m *Model) Remove(name string) tea.Cmd {
	if !containsExact(m.value, name) {
		return nil
	}
	next := make([]string, 0, len(m.value)-1)
	for _, t := range m.value {
		if t != name {
			next = append(next, t)
		}
	}
	cmd, _ := m.apply(next)
	return cmd
}

func (m *Model) apply(next []string) (tea.Cmd, bool) {
	accepted, ok := m.propose(clone(next))
	if !ok {
		return nil, false
	}
	m.value = dedupe(accepted)
	m.recompute()
	changed := ChangedMsg{Key: m.Key, Tags: clone(m.value)}
	return func() tea.Msg { return changed }, true
}

// --- Update ---

// Update handles directory results, keys and mouse events.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case DirectoryLoadedMsg:
		if !m.mounted || msg.Instance != m.instance {
			return m, nil
		}
		if msg.Err != nil {
			m.dir = failedDirectory()
		} else {
			m.dir = NewDirectory(msg.Tags)
		}
		m.recompute()
		return m, nil

	case tea.MouseMsg:
		if !m.mounted || m.disabled {
			return m, nil
		}
		return m.handleMouse(msg)

	case tea.KeyMsg:
		if !m.mounted || !m.focused || m.disabled {
			return m, nil
		}
		return m.handleKey(msg)
	}

	if m.focused {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if key.Matches(msg, m.Keys.Close) {
		m.closePanel()
		return m, nil
	}

	if !m.open && key.Matches(msg, m.Keys.Commit) {
		// Enter from Idle reopens the panel without committing.
		m.open = true
		m.recompute()
		return m, nil
	}

	m.open = true
	switch {
	case key.Matches(msg, m.Keys.Commit):
		cmd := m.commitHighlighted()
		return m, cmd
	case key.Matches(msg, m.Keys.Next):
		m.moveHighlight(1)
		return m, nil
	case key.Matches(msg, m.Keys.Prev):
		m.moveHighlight(-1)
		return m, nil
	case key.Matches(msg, m.Keys.RemoveLast) && m.input.Value() == "":
		if len(m.value) == 0 {
			return m, nil
		}
		cmd := m.Remove(m.value[len(m.value)-1])
		return m, cmd
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.recompute()
	}
	return m, cmd
}

func (m *Model) commitHighlighted() tea.Cmd {
	switch {
	case m.highlight < len(m.sugg.Tags):
		return m.Commit(m.sugg.Tags[m.highlight].Name)
	case m.sugg.OfferCreate:
		return m.Commit(m.sugg.Draft)
	}
	return nil
}

func (m *Model) moveHighlight(delta int) {
	total := m.sugg.Len()
	if total == 0 {
		m.highlight = 0
		return
	}
	m.highlight += delta
	if m.highlight > total-1 {
		m.highlight = total - 1
	}
	if m.highlight < 0 {
		m.highlight = 0
	}
}

func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	if !isPrimaryPress(msg) {
		return m, nil
	}
	bounds := m.Bounds()
	if isOutsidePress(msg, bounds) {
		if m.open {
			m.closePanel()
		}
		return m, nil
	}

	row := msg.Y - bounds.Y
	col := msg.X - bounds.X
	if row == 0 {
		for _, span := range m.pillSpans() {
			if span.hitsClose(col) {
				cmd := m.Remove(span.name)
				return m, cmd
			}
		}
		if !m.focused {
			cmd := m.Focus()
			return m, cmd
		}
		m.open = true
		return m, nil
	}

	if !m.PanelVisible() {
		return m, nil
	}
	idx := row - 1
	if idx < 0 || idx >= m.sugg.Len() {
		return m, nil
	}
	m.highlight = idx
	cmd := m.commitHighlighted()
	return m, cmd
}

// closePanel moves to Idle; the draft and highlight reset with it.
func (m *Model) closePanel() {
	m.open = false
	m.input.SetValue("")
	m.highlight = 0
	m.recompute()
}

// recompute refreshes the candidates. The highlight resets when the
// candidate count changes and is clamped otherwise.
func (m *Model) recompute() {
	prev := m.sugg.Len()
	m.sugg = Suggest(m.dir.Tags(), m.input.Value(), m.value)
	total := m.sugg.Len()
	if total != prev {
		m.highlight = 0
	}
	if total == 0 || m.highlight < 0 {
		m.highlight = 0
	} else if m.highlight > total-1 {
		m.highlight = total - 1
	}
}

func clone(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	out := make([]string, len(tags))
	copy(out, tags)
	return out
}

func dedupe(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
