package ui

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gravitrone/nebula-dash/internal/config"
	"github.com/gravitrone/nebula-dash/internal/diag"
)

func TestSettingsShowsConfigWithMaskedKey(t *testing.T) {
	cfg := &config.Config{APIURL: "http://localhost:8000", APIKey: "nbl_secretsecret", DevMode: true}
	m := NewSettingsModel(nil, cfg, nil)
	m.SetSize(70, 40)

	out := stripANSI(m.View())
	assert.Contains(t, out, "http://localhost:8000")
	assert.Contains(t, out, "nbl_••••cret")
	assert.NotContains(t, out, "nbl_secretsecret")
	assert.Contains(t, out, "not checked")
	assert.Contains(t, out, "No diagnostic events.")
}

func TestSettingsHealthCheck(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/health", r.URL.Path)
		_, _ = w.Write([]byte(`{"status":"ok","version":"1.4.0"}`))
	})
	m := NewSettingsModel(client, &config.Config{}, nil)
	m.SetSize(70, 40)

	cmd := m.Init()
	require.NotNil(t, cmd)
	assert.Contains(t, stripANSI(m.View()), "checking...")

	m, _ = m.Update(cmd())
	require.NotNil(t, m.health)
	out := stripANSI(m.View())
	assert.Contains(t, out, "ok · ")
	assert.Contains(t, out, "v1.4.0")
}

func TestSettingsHealthFailure(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	m := NewSettingsModel(client, &config.Config{}, nil)
	m.SetSize(70, 40)

	cmd := m.Init()
	m, _ = m.Update(cmd())
	assert.Nil(t, m.health)
	assert.Contains(t, stripANSI(m.View()), "unreachable")
}

func TestSettingsCopiesDiagnostics(t *testing.T) {
	ch := diag.Discard()
	ch.Info("entities", "tag editor opened")
	ch.Report("tag-directory", errors.New("timeout"))

	var copied string
	m := NewSettingsModel(nil, &config.Config{}, ch)
	m.copyText = func(s string) error {
		copied = s
		return nil
	}

	_, cmd := m.Update(keyRunes("c"))
	require.NotNil(t, cmd)
	msg, ok := cmd().(diagnosticsCopiedMsg)
	require.True(t, ok)
	assert.Equal(t, 2, msg.events)
	assert.NoError(t, msg.err)
	assert.Equal(t, ch.Dump(), copied)
	assert.Contains(t, copied, "tag-directory: timeout")
}

func TestSettingsCopyFailureShown(t *testing.T) {
	m := NewSettingsModel(nil, &config.Config{}, nil)
	m.SetSize(70, 40)
	m.copyText = func(string) error { return errors.New("no clipboard utility") }

	_, cmd := m.Update(keyRunes("c"))
	m, _ = m.Update(cmd())
	assert.Contains(t, stripANSI(m.View()), "copy failed: no clipboard utility")
}

func TestSettingsRendersDiagnosticEvents(t *testing.T) {
	ch := diag.Discard()
	ch.Report("chat", errors.New("upstream 502"))
	m := NewSettingsModel(nil, &config.Config{}, ch)
	m.SetSize(80, 40)

	assert.Contains(t, stripANSI(m.View()), "chat: upstream 502")
}
