package ui

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func TestIsQuit(t *testing.T) {
	assert.True(t, isQuit(tea.KeyMsg{Type: tea.KeyCtrlC}))
	assert.True(t, isQuit(keyRunes("q")))
	assert.False(t, isQuit(keyRunes("a")))
}

func TestIsBack(t *testing.T) {
	assert.True(t, isBack(tea.KeyMsg{Type: tea.KeyEsc}))
	assert.False(t, isBack(tea.KeyMsg{Type: tea.KeyEnter}))
}

func TestIsUpDownAcceptVimKeys(t *testing.T) {
	assert.True(t, isDown(tea.KeyMsg{Type: tea.KeyDown}))
	assert.True(t, isDown(keyRunes("j")))
	assert.False(t, isDown(tea.KeyMsg{Type: tea.KeyUp}))

	assert.True(t, isUp(tea.KeyMsg{Type: tea.KeyUp}))
	assert.True(t, isUp(keyRunes("k")))
	assert.False(t, isUp(keyRunes("j")))
}

func TestIsKey(t *testing.T) {
	assert.True(t, isKey(keyRunes("s"), "s"))
	assert.True(t, isKey(tea.KeyMsg{Type: tea.KeyLeft}, "right", "left"))
	assert.True(t, isKey(tea.KeyMsg{Type: tea.KeyCtrlS}, "ctrl+s"))
	assert.False(t, isKey(keyRunes("s"), "a"))
}

func TestViewIndexForKey(t *testing.T) {
	idx, ok := viewIndexForKey("1")
	assert.True(t, ok)
	assert.Equal(t, 0, idx)

	idx, ok = viewIndexForKey("4")
	assert.True(t, ok)
	assert.Equal(t, 3, idx)

	_, ok = viewIndexForKey("0")
	assert.False(t, ok)
	_, ok = viewIndexForKey("12")
	assert.False(t, ok)
	_, ok = viewIndexForKey("a")
	assert.False(t, ok)
}

func TestDefaultKeyMaps(t *testing.T) {
	app := defaultAppKeys()
	assert.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyTab}, app.NextView))
	assert.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyShiftTab}, app.PrevView))
	assert.True(t, key.Matches(keyRunes("3"), app.Jump))

	edit := defaultTagEditKeys()
	assert.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyCtrlS}, edit.Save))
	assert.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyEsc}, edit.Close))
	assert.Equal(t, "ctrl+s", edit.Save.Help().Key)
}
