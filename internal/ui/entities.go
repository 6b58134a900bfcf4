package ui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/gravitrone/nebula-dash/internal/api"
	"github.com/gravitrone/nebula-dash/internal/diag"
	"github.com/gravitrone/nebula-dash/internal/ui/components"
	"github.com/gravitrone/nebula-dash/internal/ui/taginput"
)

// --- Messages ---

type entitiesLoadedMsg struct {
	filter string
	items  []api.Entity
}

type entityTagsSavedMsg struct{ entity api.Entity }

// --- View States ---

type entitiesView int

const (
	entitiesViewList entitiesView = iota
	entitiesViewTags
)

const (
	filterAll = "all"

	// maxEntityTags caps the tag set the editor will propose to the API.
	maxEntityTags = 24

	// Rows above the first list entry: filter line, count line, blank.
	entitiesListHeader = 3
	// Rows above the tag field in the editor: title, meta line, blank.
	entitiesEditHeader = 3
	// Metadata keys shown under the editor.
	maxDetailRows = 6
)

var entityFilters = append([]string{filterAll}, api.EntityTypes...)

// --- Entities Model ---

type EntitiesModel struct {
	client      *api.Client
	diag        *diag.Channel
	watcher     *taginput.Watcher
	placeholder string
	keys        tagEditKeyMap

	items     []api.Entity
	list      *components.List
	filterIdx int
	loading   bool
	errText   string
	view      entitiesView

	editing *api.Entity
	tags    taginput.Model
	pending []string
	saving  bool
	hidden  bool

	x, y   int
	width  int
	height int
}

func NewEntitiesModel(client *api.Client, ch *diag.Channel, watcher *taginput.Watcher, placeholder string) EntitiesModel {
	if ch == nil {
		ch = diag.Discard()
	}
	return EntitiesModel{
		client:      client,
		diag:        ch,
		watcher:     watcher,
		placeholder: placeholder,
		keys:        defaultTagEditKeys(),
		list:        components.NewList(15),
		view:        entitiesViewList,
	}
}

func (m *EntitiesModel) Init() tea.Cmd {
	m.loading = m.client != nil
	m.errText = ""
	return m.loadEntities(m.filter())
}

// SetOrigin records where the App draws this view.
func (m *EntitiesModel) SetOrigin(x, y int) {
	m.x, m.y = x, y
	m.tags.SetOrigin(m.x, m.y+entitiesEditHeader)
}

// SetSize sets the space available to the view.
func (m *EntitiesModel) SetSize(width, height int) {
	m.width, m.height = width, height
	m.list.Resize(height - entitiesListHeader - 2)
	m.tags.SetWidth(width)
}

// Editing reports whether the tag editor is open.
func (m EntitiesModel) Editing() bool {
	return m.view == entitiesViewTags
}

// Hide detaches the tag editor while another view is shown.
func (m *EntitiesModel) Hide() tea.Cmd {
	if m.hidden {
		return nil
	}
	m.hidden = true
	if m.view != entitiesViewTags {
		return nil
	}
	return m.tags.Unmount()
}

// Show re-attaches the tag editor. The directory is fetched again.
func (m *EntitiesModel) Show() tea.Cmd {
	if !m.hidden {
		return nil
	}
	m.hidden = false
	if m.view != entitiesViewTags {
		return nil
	}
	return tea.Batch(m.tags.Mount(), m.tags.Focus())
}

func (m EntitiesModel) filter() string {
	return entityFilters[m.filterIdx]
}

func (m EntitiesModel) Update(msg tea.Msg) (EntitiesModel, tea.Cmd) {
	switch msg := msg.(type) {
	case entitiesLoadedMsg:
		if msg.filter != m.filter() {
			return m, nil
		}
		m.loading = false
		m.errText = ""
		m.items = msg.items
		m.list.Reset(len(msg.items))
		return m, nil

	case entityTagsSavedMsg:
		m.saving = false
		m.errText = ""
		m.applyEntityUpdate(msg.entity)
		if m.editing != nil && m.editing.ID == msg.entity.ID {
			updated := msg.entity
			m.editing = &updated
			m.pending = slices.Clone(updated.Tags)
			m.tags.SetValue(updated.Tags)
		}
		return m, nil

	case errMsg:
		m.loading = false
		m.saving = false
		m.errText = msg.err.Error()
		return m, nil

	case taginput.ChangedMsg:
		if m.editing == nil || msg.Key != m.tags.Key {
			return m, nil
		}
		m.pending = msg.Tags
		return m, nil

	case taginput.DirectoryLoadedMsg:
		var cmd tea.Cmd
		m.tags, cmd = m.tags.Update(msg)
		return m, cmd

	case tea.MouseMsg:
		if m.view == entitiesViewTags {
			var cmd tea.Cmd
			m.tags, cmd = m.tags.Update(msg)
			return m, cmd
		}
		return m.handleListMouse(msg)

	case tea.KeyMsg:
		if m.view == entitiesViewTags {
			return m.handleTagKeys(msg)
		}
		return m.handleListKeys(msg)
	}

	if m.view == entitiesViewTags {
		var cmd tea.Cmd
		m.tags, cmd = m.tags.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m EntitiesModel) View() string {
	if m.view == entitiesViewTags && m.editing != nil {
		return m.renderTagEditor()
	}
	return m.renderList()
}

// --- List View ---

func (m EntitiesModel) handleListKeys(msg tea.KeyMsg) (EntitiesModel, tea.Cmd) {
	switch {
	case isDown(msg):
		m.list.Down()
	case isUp(msg):
		m.list.Up()
	case isKey(msg, "left", "h"):
		m.filterIdx = (m.filterIdx - 1 + len(entityFilters)) % len(entityFilters)
		cmd := m.Init()
		return m, cmd
	case isKey(msg, "right", "l"):
		m.filterIdx = (m.filterIdx + 1) % len(entityFilters)
		cmd := m.Init()
		return m, cmd
	case isKey(msg, "r"):
		cmd := m.Init()
		return m, cmd
	case isEnter(msg):
		if len(m.items) == 0 {
			return m, nil
		}
		cmd := m.openTagEditor(m.items[m.list.Cursor])
		return m, cmd
	}
	return m, nil
}

func (m EntitiesModel) handleListMouse(msg tea.MouseMsg) (EntitiesModel, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	rel := msg.Y - m.y - entitiesListHeader
	start, end := m.list.Window()
	if msg.X < m.x || rel < 0 || rel >= end-start {
		return m, nil
	}
	idx := m.list.RelToAbs(rel)
	if idx == m.list.Cursor {
		cmd := m.openTagEditor(m.items[idx])
		return m, cmd
	}
	m.list.Select(idx)
	return m, nil
}

func (m EntitiesModel) renderFilterLine() string {
	parts := make([]string, 0, len(entityFilters))
	for i, f := range entityFilters {
		if i == m.filterIdx {
			parts = append(parts, FilterActiveStyle.Render(f))
		} else {
			parts = append(parts, FilterInactiveStyle.Render(f))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m EntitiesModel) renderList() string {
	lines := []string{m.renderFilterLine()}

	switch {
	case m.errText != "":
		lines = append(lines, "", components.ErrorPanel("Error", m.errText, m.width))
		return strings.Join(lines, "\n")
	case m.loading:
		lines = append(lines, MutedStyle.Render("Loading entities..."))
		return strings.Join(lines, "\n")
	case len(m.items) == 0:
		lines = append(lines, MutedStyle.Render("No entities found."))
		return strings.Join(lines, "\n")
	}

	lines = append(lines, MutedStyle.Render(fmt.Sprintf("%d entities", len(m.items))), "")
	start, end := m.list.Window()
	for i := start; i < end; i++ {
		line := formatEntityLine(m.items[i], m.width-2)
		if i == m.list.Cursor {
			lines = append(lines, SelectedStyle.Render("› "+line))
		} else {
			lines = append(lines, NormalStyle.Render("  "+line))
		}
	}
	return strings.Join(lines, "\n")
}

func formatEntityLine(e api.Entity, width int) string {
	name := components.SanitizeOneLine(e.Name)
	if name == "" {
		name = e.ID
	}
	meta := e.Type
	if e.Status != "" && e.Status != "active" {
		meta += " · " + e.Status
	}
	line := name
	if meta != "" {
		line += "  " + components.SanitizeOneLine(meta)
	}
	if len(e.Tags) > 0 {
		tags := make([]string, len(e.Tags))
		for i, t := range e.Tags {
			tags[i] = components.SanitizeOneLine(t)
		}
		line += "  #" + strings.Join(tags, " #")
	}
	return components.ClampTextWidth(line, width)
}

// --- Tag Editor ---

func (m *EntitiesModel) openTagEditor(e api.Entity) tea.Cmd {
	entity := e
	m.editing = &entity
	m.pending = slices.Clone(e.Tags)
	m.saving = false
	m.view = entitiesViewTags

	opts := []taginput.Option{
		taginput.WithDiagnostics(m.diag),
		taginput.WithWatcher(m.watcher),
		taginput.WithPlaceholder(m.placeholder),
		taginput.WithPropose(limitTags),
	}
	if m.client != nil {
		opts = append(opts, taginput.WithSource(m.client))
	}
	m.tags = taginput.New("entity:"+e.ID, opts...)
	m.tags.SetValue(e.Tags)
	m.tags.SetOrigin(m.x, m.y+entitiesEditHeader)
	m.tags.SetWidth(m.width)

	m.diag.Info("entities", "tag editor opened", zap.String("entity_id", e.ID))
	return tea.Batch(m.tags.Mount(), m.tags.Focus())
}

func (m *EntitiesModel) closeTagEditor() tea.Cmd {
	cmd := m.tags.Unmount()
	m.view = entitiesViewList
	m.editing = nil
	m.pending = nil
	m.errText = ""
	return cmd
}

func limitTags(next []string) ([]string, bool) {
	if len(next) > maxEntityTags {
		return nil, false
	}
	return next, true
}

func (m EntitiesModel) dirty() bool {
	return m.editing != nil && !slices.Equal(m.pending, m.editing.Tags)
}

func (m EntitiesModel) handleTagKeys(msg tea.KeyMsg) (EntitiesModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Save):
		return m.saveTags()
	case key.Matches(msg, m.keys.Close) && !m.tags.PanelVisible():
		cmd := m.closeTagEditor()
		return m, cmd
	}
	var cmd tea.Cmd
	m.tags, cmd = m.tags.Update(msg)
	return m, cmd
}

func (m EntitiesModel) saveTags() (EntitiesModel, tea.Cmd) {
	if m.editing == nil || m.saving || !m.dirty() {
		return m, nil
	}
	if m.client == nil {
		return m, nil
	}
	m.saving = true
	id := m.editing.ID
	tags := slices.Clone(m.pending)
	client := m.client
	ch := m.diag
	return m, func() tea.Msg {
		updated, err := client.UpdateEntityTags(id, tags)
		if err != nil {
			ch.Report("entities", err, zap.String("entity_id", id))
			return errMsg{view: viewEntities, err: fmt.Errorf("save tags: %w", err)}
		}
		return entityTagsSavedMsg{entity: *updated}
	}
}

func (m EntitiesModel) renderTagEditor() string {
	e := m.editing
	title := TitleStyle.Render("Edit tags") + MutedStyle.Render(" · ") + NormalStyle.Render(components.SanitizeOneLine(e.Name))
	meta := e.Type
	if e.Status != "" {
		meta += " · " + e.Status
	}
	lines := []string{
		title,
		MutedStyle.Render(components.SanitizeOneLine(meta)),
		"",
		m.tags.View(),
		"",
	}

	switch {
	case m.saving:
		lines = append(lines, MutedStyle.Render("Saving..."))
	case m.errText != "":
		lines = append(lines, ErrorStyle.Render(components.ClampTextWidth(m.errText, m.width)))
	case m.dirty():
		lines = append(lines, WarningStyle.Render("Unsaved changes"))
	}
	if m.tags.Directory().CreateOnly() {
		lines = append(lines, MutedStyle.Render("Tag directory unavailable, new tags only."))
	}
	if details := entityDetails(*e); details != "" {
		lines = append(lines, "", components.TitledPanel("Details", details, m.width))
	}
	return strings.Join(lines, "\n")
}

// entityDetails lists the summary and the first metadata keys in key order.
func entityDetails(e api.Entity) string {
	var rows []string
	if e.Summary != "" {
		rows = append(rows, components.InfoRow("summary", e.Summary))
	}
	keys := make([]string, 0, len(e.Metadata))
	for k := range e.Metadata {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for i, k := range keys {
		if i == maxDetailRows {
			rows = append(rows, MutedStyle.Render(fmt.Sprintf("+%d more", len(keys)-i)))
			break
		}
		rows = append(rows, components.InfoRow(k, fmt.Sprint(e.Metadata[k])))
	}
	return strings.Join(rows, "\n")
}

func (m EntitiesModel) hints() []string {
	if m.view == entitiesViewTags {
		hints := components.BindingHints(m.tags.Keys.Commit, m.tags.Keys.Next, m.tags.Keys.RemoveLast)
		return append(hints, components.BindingHints(m.keys.Save, m.keys.Close)...)
	}
	return []string{
		components.Hint("↑/↓", "Select"),
		components.Hint("←/→", "Type"),
		components.Hint("enter", "Edit tags"),
		components.Hint("r", "Reload"),
	}
}

// --- Commands ---

func (m EntitiesModel) loadEntities(filter string) tea.Cmd {
	client := m.client
	if client == nil {
		return nil
	}
	return func() tea.Msg {
		params := api.QueryParams{}
		if filter != filterAll {
			params["type"] = filter
		}
		items, err := client.QueryEntities(params)
		if err != nil {
			return errMsg{view: viewEntities, err: err}
		}
		return entitiesLoadedMsg{filter: filter, items: items}
	}
}

func (m *EntitiesModel) applyEntityUpdate(updated api.Entity) {
	for i := range m.items {
		if m.items[i].ID == updated.ID {
			m.items[i] = updated
			return
		}
	}
}
