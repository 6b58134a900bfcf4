package ui

import (
	"errors"
	"net/http"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gravitrone/nebula-dash/internal/api"
)

func TestFormatDue(t *testing.T) {
	now := time.Date(2026, time.March, 10, 15, 0, 0, 0, time.UTC)
	at := func(month time.Month, day, hour int) *time.Time {
		v := time.Date(2026, month, day, hour, 0, 0, 0, time.UTC)
		return &v
	}

	tests := []struct {
		name string
		due  *time.Time
		want string
	}{
		{name: "none", due: nil, want: ""},
		{name: "zero", due: &time.Time{}, want: ""},
		{name: "overdue", due: at(time.March, 8, 9), want: "overdue 2d"},
		{name: "earlier today", due: at(time.March, 10, 1), want: "due today"},
		{name: "later today", due: at(time.March, 10, 23), want: "due today"},
		{name: "tomorrow", due: at(time.March, 11, 1), want: "due tomorrow"},
		{name: "this week", due: at(time.March, 13, 12), want: "due Fri"},
		{name: "later", due: at(time.March, 20, 12), want: "due Mar 20"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatDue(tt.due, now))
		})
	}
}

func TestLoopsLoadAndRender(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/open-loops", r.URL.Path)
		writeData(w, []map[string]any{
			{"id": "l1", "title": "Call Ada back", "entity_name": "Ada", "due_at": "2026-03-09T10:00:00Z"},
			{"id": "l2", "title": "Renew domain"},
		})
	})
	m := NewLoopsModel(client)
	m.SetSize(70, 20)
	m.now = func() time.Time { return time.Date(2026, time.March, 10, 8, 0, 0, 0, time.UTC) }

	cmd := m.Init()
	require.NotNil(t, cmd)
	assert.True(t, m.loading)
	assert.Contains(t, stripANSI(m.View()), "Loading open loops")

	m, _ = m.Update(cmd())
	assert.False(t, m.loading)
	require.Len(t, m.items, 2)

	out := stripANSI(m.View())
	assert.Contains(t, out, "2 open")
	assert.Contains(t, out, "› Call Ada back · Ada  overdue 1d")
	assert.Contains(t, out, "  Renew domain")

	assert.Contains(t, out, "entity: Ada")
	assert.Contains(t, out, "due: Mon Mar 9 10:00")

	m, _ = m.Update(keyRunes("j"))
	assert.Equal(t, 1, m.list.Cursor)
	out = stripANSI(m.View())
	assert.Contains(t, out, "title: Renew domain")
	assert.NotContains(t, out, "entity:")
}

func TestLoopsEmptyAndError(t *testing.T) {
	m := NewLoopsModel(nil)
	m.SetSize(60, 20)
	assert.Nil(t, m.Init())
	assert.Contains(t, stripANSI(m.View()), "Nothing open.")

	m, _ = m.Update(errMsg{view: viewLoops, err: errors.New("api down")})
	assert.Contains(t, stripANSI(m.View()), "api down")

	m, _ = m.Update(keyRunes("r"))
	assert.Equal(t, "", m.errText)
}

func TestLoopsRefreshKeyReloads(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeData(w, []map[string]any{})
	})
	m := NewLoopsModel(client)
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	require.NotNil(t, cmd)
	assert.True(t, m.loading)
	_, ok := cmd().(loopsLoadedMsg)
	assert.True(t, ok)
}

func TestLoopsStripControlSequences(t *testing.T) {
	name := "Ada\x1b]0;pwned\x07"
	m := NewLoopsModel(nil)
	m.SetSize(70, 20)
	m, _ = m.Update(loopsLoadedMsg{items: []api.OpenLoop{{ID: "l1", Title: "Call\x1b[2J back", EntityName: &name}}})

	raw := m.View()
	assert.NotContains(t, raw, "[2J")
	assert.NotContains(t, raw, "pwned")
	assert.Contains(t, stripANSI(raw), "› Call back · Ada")
}
