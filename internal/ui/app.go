package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/gravitrone/nebula-dash/internal/api"
	"github.com/gravitrone/nebula-dash/internal/config"
	"github.com/gravitrone/nebula-dash/internal/diag"
	"github.com/gravitrone/nebula-dash/internal/ui/components"
	"github.com/gravitrone/nebula-dash/internal/ui/taginput"
)

const (
	// Screen row where the sidebar and the active view start.
	bodyTop    = 2
	contentGap = 2
	toastWidth = 60
)

// --- Messages ---

type errMsg struct {
	view viewID
	err  error
}

type clearToastMsg struct{}

type appToast struct {
	level string
	text  string
}

// --- App Model ---

// App is the root TUI model. It lays out the sidebar and the active view and
// routes messages between them.
type App struct {
	client  *api.Client
	config  *config.Config
	diag    *diag.Channel
	watcher *taginput.Watcher
	keys    appKeyMap

	sidebar SidebarModel
	width   int
	height  int
	toast   *appToast

	entities EntitiesModel
	chat     ChatModel
	loops    LoopsModel
	settings SettingsModel
}

// NewApp creates the root application model.
func NewApp(client *api.Client, cfg *config.Config, ch *diag.Channel) App {
	if cfg == nil {
		cfg = config.Default()
	}
	if ch == nil {
		ch = diag.Discard()
	}
	placeholder := cfg.TagPlaceholder
	if placeholder == "" {
		placeholder = config.DefaultTagPlaceholder
	}
	watcher := taginput.NewWatcher()

	a := App{
		client:   client,
		config:   cfg,
		diag:     ch,
		watcher:  watcher,
		keys:     defaultAppKeys(),
		sidebar:  NewSidebarModel(cfg.DevMode),
		entities: NewEntitiesModel(client, ch, watcher, placeholder),
		chat:     NewChatModel(client, ch),
		loops:    NewLoopsModel(client),
		settings: NewSettingsModel(client, cfg, ch),
	}
	a.entities.loading = client != nil
	a.sidebar.SetTop(bodyTop)
	a.relayout()
	return a
}

// Init subscribes the sidebar to hover reporting and loads the first view.
func (a App) Init() tea.Cmd {
	mouse, _ := a.watcher.Acquire(taginput.MouseHover)
	return tea.Batch(mouse, a.entities.Init())
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.relayout()
		return a, nil

	case clearToastMsg:
		a.toast = nil
		return a, nil

	case sidebarHoverMsg:
		a.sidebar, _ = a.sidebar.Update(msg)
		a.relayout()
		return a, nil

	case errMsg:
		return a.routeTo(msg.view, msg)

	case entitiesLoadedMsg, taginput.DirectoryLoadedMsg, taginput.ChangedMsg:
		var cmd tea.Cmd
		a.entities, cmd = a.entities.Update(msg)
		return a, cmd

	case entityTagsSavedMsg:
		var cmd tea.Cmd
		a.entities, cmd = a.entities.Update(msg)
		a.diag.Info("entities", "tags saved", zap.String("entity_id", msg.entity.ID), zap.Int("tags", len(msg.entity.Tags)))
		toast := a.setToast("success", "Tags saved.")
		return a, tea.Batch(cmd, toast)

	case chatReplyMsg, spinner.TickMsg:
		var cmd tea.Cmd
		a.chat, cmd = a.chat.Update(msg)
		return a, cmd

	case loopsLoadedMsg:
		var cmd tea.Cmd
		a.loops, cmd = a.loops.Update(msg)
		return a, cmd

	case healthLoadedMsg:
		var cmd tea.Cmd
		a.settings, cmd = a.settings.Update(msg)
		return a, cmd

	case diagnosticsCopiedMsg:
		var cmd tea.Cmd
		a.settings, cmd = a.settings.Update(msg)
		if msg.err != nil {
			a.diag.Report("settings", msg.err)
			return a, cmd
		}
		toast := a.setToast("info", "Diagnostics copied to clipboard.")
		return a, tea.Batch(cmd, toast)

	case tea.MouseMsg:
		return a.handleMouse(msg)

	case tea.KeyMsg:
		return a.handleKeys(msg)
	}

	return a.routeTo(a.sidebar.Active(), msg)
}

func (a App) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if isKey(msg, "ctrl+c") {
		return a, tea.Quit
	}
	if !a.capturing() {
		switch {
		case isQuit(msg):
			return a, tea.Quit
		case key.Matches(msg, a.keys.NextView):
			return a.step(1)
		case key.Matches(msg, a.keys.PrevView):
			return a.step(-1)
		}
		if idx, ok := viewIndexForKey(msg.String()); ok {
			return a.switchTo(idx)
		}
	}
	return a.routeTo(a.sidebar.Active(), msg)
}

func (a App) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	prev := a.sidebar.Active()
	prevWidth := a.sidebar.Width()

	var sidebarCmd tea.Cmd
	a.sidebar, sidebarCmd = a.sidebar.Update(msg)
	if a.sidebar.Width() != prevWidth {
		a.relayout()
	}
	if a.sidebar.Active() != prev {
		cmd := a.activate(prev)
		return a, tea.Batch(sidebarCmd, cmd)
	}

	if prev != viewEntities {
		return a, sidebarCmd
	}
	var cmd tea.Cmd
	a.entities, cmd = a.entities.Update(msg)
	return a, tea.Batch(sidebarCmd, cmd)
}

// capturing is true while the active view owns every printable key.
func (a App) capturing() bool {
	switch a.sidebar.Active() {
	case viewEntities:
		return a.entities.Editing()
	case viewChat:
		return a.chat.Capturing()
	}
	return false
}

func (a App) routeTo(view viewID, msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch view {
	case viewEntities:
		a.entities, cmd = a.entities.Update(msg)
	case viewChat:
		a.chat, cmd = a.chat.Update(msg)
	case viewLoops:
		a.loops, cmd = a.loops.Update(msg)
	case viewSettings:
		a.settings, cmd = a.settings.Update(msg)
	}
	return a, cmd
}

func (a App) step(delta int) (tea.Model, tea.Cmd) {
	prev := a.sidebar.Active()
	a.sidebar.Step(delta)
	if a.sidebar.Active() == prev {
		return a, nil
	}
	cmd := a.activate(prev)
	return a, cmd
}

func (a App) switchTo(idx int) (tea.Model, tea.Cmd) {
	prev := a.sidebar.Active()
	if !a.sidebar.Select(idx) || a.sidebar.Active() == prev {
		return a, nil
	}
	cmd := a.activate(prev)
	return a, cmd
}

// activate hides prev and shows the newly selected view.
func (a *App) activate(prev viewID) tea.Cmd {
	var cmds []tea.Cmd
	switch prev {
	case viewEntities:
		cmds = append(cmds, a.entities.Hide())
	case viewChat:
		a.chat.Hide()
	}
	switch a.sidebar.Active() {
	case viewEntities:
		cmds = append(cmds, a.entities.Show())
	case viewChat:
		cmds = append(cmds, a.chat.Show())
	case viewLoops:
		cmds = append(cmds, a.loops.Init())
	case viewSettings:
		cmds = append(cmds, a.settings.Init())
	}
	return tea.Batch(cmds...)
}

func (a App) bodyHeight() int {
	h := a.height - bodyTop - 4
	if h < 8 {
		h = 8
	}
	return h
}

// relayout pushes the current geometry down to every view.
func (a *App) relayout() {
	x := a.sidebar.Width() + contentGap
	w := a.width - x
	if w < 0 {
		w = 0
	}
	h := a.bodyHeight()
	a.entities.SetOrigin(x, bodyTop)
	a.entities.SetSize(w, h)
	a.chat.SetSize(w, h)
	a.loops.SetSize(w, h)
	a.settings.SetSize(w, h)
}

func (a App) View() string {
	apiURL := ""
	if a.client != nil {
		apiURL = a.client.BaseURL()
	}
	header := RenderHeader(apiURL, a.width)

	var content string
	switch a.sidebar.Active() {
	case viewEntities:
		content = a.entities.View()
	case viewChat:
		content = a.chat.View()
	case viewLoops:
		content = a.loops.View()
	case viewSettings:
		content = a.settings.View()
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		a.sidebar.View(a.bodyHeight()),
		strings.Repeat(" ", contentGap),
		content,
	)

	out := header + "\n\n" + body + "\n\n" + components.StatusBar(a.statusHints(), a.width)
	if a.toast != nil {
		out += "\n" + a.renderToast()
	}
	return out
}

func (a App) statusHints() []string {
	var hints []string
	switch a.sidebar.Active() {
	case viewEntities:
		hints = a.entities.hints()
	case viewChat:
		hints = a.chat.hints()
	case viewLoops:
		hints = a.loops.hints()
	case viewSettings:
		hints = a.settings.hints()
	}
	if a.capturing() {
		return append(hints, components.Hint("ctrl+c", "Quit"))
	}
	return append(hints, components.BindingHints(a.keys.NextView, a.keys.Jump, a.keys.Quit)...)
}

func (a *App) setToast(level, text string) tea.Cmd {
	a.toast = &appToast{
		level: level,
		text:  components.SanitizeOneLine(text),
	}
	return tea.Tick(2500*time.Millisecond, func(time.Time) tea.Msg {
		return clearToastMsg{}
	})
}

func (a App) renderToast() string {
	if a.toast == nil {
		return ""
	}
	width := toastWidth
	if a.width > 0 && a.width < width {
		width = a.width
	}
	switch a.toast.level {
	case "error":
		return components.ErrorPanel("Error", a.toast.text, width)
	case "success":
		return components.TitledPanel("Success", SuccessStyle.Render(a.toast.text), width)
	}
	return components.TitledPanel("Info", a.toast.text, width)
}
