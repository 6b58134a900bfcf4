package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/gravitrone/nebula-dash/internal/api"
	"github.com/gravitrone/nebula-dash/internal/config"
	"github.com/gravitrone/nebula-dash/internal/diag"
	"github.com/gravitrone/nebula-dash/internal/ui/components"
)

type healthLoadedMsg struct{ report api.HealthReport }

type diagnosticsCopiedMsg struct {
	events int
	err    error
}

// --- Developer Settings Model ---

type SettingsModel struct {
	client    *api.Client
	config    *config.Config
	diag      *diag.Channel
	copyText  func(string) error
	health    *api.HealthReport
	healthErr string
	checking  bool
	copyErr   string
	width     int
	height    int
}

func NewSettingsModel(client *api.Client, cfg *config.Config, ch *diag.Channel) SettingsModel {
	if ch == nil {
		ch = diag.Discard()
	}
	return SettingsModel{
		client:   client,
		config:   cfg,
		diag:     ch,
		copyText: clipboard.WriteAll,
	}
}

func (m *SettingsModel) Init() tea.Cmd {
	m.checking = m.client != nil
	m.healthErr = ""
	return m.checkHealth()
}

func (m *SettingsModel) SetSize(width, height int) {
	m.width, m.height = width, height
}

func (m SettingsModel) Update(msg tea.Msg) (SettingsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case healthLoadedMsg:
		m.checking = false
		report := msg.report
		m.health = &report
		m.healthErr = ""
		return m, nil
	case errMsg:
		m.checking = false
		m.health = nil
		m.healthErr = msg.err.Error()
		return m, nil
	case diagnosticsCopiedMsg:
		m.copyErr = ""
		if msg.err != nil {
			m.copyErr = msg.err.Error()
		}
		return m, nil
	case tea.KeyMsg:
		switch {
		case isKey(msg, "r"):
			cmd := m.Init()
			return m, cmd
		case isKey(msg, "c"):
			return m, m.copyDiagnostics()
		}
	}
	return m, nil
}

func (m SettingsModel) View() string {
	width := m.width
	sections := []string{
		components.TitledPanel("Config", components.KeyValues(m.configRows(), components.ContentWidth(width)), width),
		components.TitledPanel("API", m.renderHealth(), width),
		components.TitledPanel("Diagnostics", m.renderEvents(), width),
	}
	if m.copyErr != "" {
		sections = append(sections, ErrorStyle.Render("copy failed: "+components.SanitizeOneLine(m.copyErr)))
	}
	return strings.Join(sections, "\n")
}

func (m SettingsModel) configRows() []components.KeyValue {
	cfg := m.config
	if cfg == nil {
		cfg = &config.Config{}
	}
	return []components.KeyValue{
		{Key: "file", Value: config.Path()},
		{Key: "api_url", Value: cfg.APIURL},
		{Key: "api_key", Value: config.MaskKey(cfg.APIKey)},
		{Key: "dev_mode", Value: fmt.Sprintf("%t", cfg.DevMode)},
		{Key: "log_path", Value: cfg.LogPath},
		{Key: "tag_placeholder", Value: cfg.TagPlaceholder},
	}
}

func (m SettingsModel) renderHealth() string {
	switch {
	case m.checking:
		return MutedStyle.Render("checking...")
	case m.healthErr != "":
		return ErrorStyle.Render("unreachable") + MutedStyle.Render(" · ") + components.SanitizeOneLine(m.healthErr)
	case m.health == nil:
		return MutedStyle.Render("not checked")
	}
	status := SuccessStyle.Render(components.SanitizeOneLine(m.health.Status))
	if m.health.Status != "ok" && m.health.Status != "healthy" {
		status = WarningStyle.Render(components.SanitizeOneLine(m.health.Status))
	}
	line := status + MutedStyle.Render(fmt.Sprintf(" · %s", m.health.Latency.Round(time.Millisecond)))
	if m.health.Version != "" {
		line += MutedStyle.Render(" · v" + components.SanitizeOneLine(m.health.Version))
	}
	return line
}

func (m SettingsModel) renderEvents() string {
	events := m.diag.Events()
	if len(events) == 0 {
		return MutedStyle.Render("No diagnostic events.")
	}
	limit := m.height - 16
	if limit < 5 {
		limit = 5
	}
	if len(events) > limit {
		events = events[len(events)-limit:]
	}
	inner := components.ContentWidth(m.width)
	lines := make([]string, 0, len(events))
	for _, e := range events {
		line := components.ClampTextWidth(e.String(), inner)
		if e.Level == diag.LevelError {
			lines = append(lines, ErrorStyle.Render(line))
		} else {
			lines = append(lines, NormalStyle.Render(line))
		}
	}
	return strings.Join(lines, "\n")
}

func (m SettingsModel) checkHealth() tea.Cmd {
	client := m.client
	if client == nil {
		return nil
	}
	return func() tea.Msg {
		report, err := client.Health()
		if err != nil {
			return errMsg{view: viewSettings, err: err}
		}
		return healthLoadedMsg{report: *report}
	}
}

func (m SettingsModel) copyDiagnostics() tea.Cmd {
	events := m.diag.Events()
	dump := m.diag.Dump()
	copyText := m.copyText
	return func() tea.Msg {
		return diagnosticsCopiedMsg{events: len(events), err: copyText(dump)}
	}
}

func (m SettingsModel) hints() []string {
	return []string{
		components.Hint("r", "Recheck API"),
		components.Hint("c", "Copy diagnostics"),
	}
}
