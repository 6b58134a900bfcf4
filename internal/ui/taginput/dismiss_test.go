package taginput

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRectContains(t *testing.T) {
	r := Rect{X: 2, Y: 3, Width: 4, Height: 2}
	assert.True(t, r.Contains(2, 3))
	assert.True(t, r.Contains(5, 4))
	assert.False(t, r.Contains(6, 4))
	assert.False(t, r.Contains(2, 5))
	assert.False(t, r.Contains(1, 3))
}

func TestWatcherEnablesOnFirstAndDisablesOnLast(t *testing.T) {
	w := NewWatcher()

	cmd1, release1 := w.Acquire(MouseClicks)
	require.NotNil(t, cmd1)
	assert.Equal(t, tea.EnableMouseCellMotion(), cmd1())

	cmd2, release2 := w.Acquire(MouseClicks)
	assert.Nil(t, cmd2)

	assert.Nil(t, release1())
	assert.Equal(t, MouseClicks, w.Mode())

	off := release2()
	require.NotNil(t, off)
	assert.Equal(t, tea.DisableMouse(), off())
	assert.Equal(t, MouseMode(0), w.Mode())
}

func TestWatcherReleaseIsIdempotent(t *testing.T) {
	w := NewWatcher()
	_, release := w.Acquire(MouseClicks)
	_, keep := w.Acquire(MouseClicks)

	assert.Nil(t, release())
	assert.Nil(t, release())
	assert.Equal(t, MouseClicks, w.Mode(), "double release must not drop another subscriber")

	require.NotNil(t, keep())
}

func TestWatcherHoverOutranksClicks(t *testing.T) {
	w := NewWatcher()
	_, releaseClicks := w.Acquire(MouseClicks)

	cmd, releaseHover := w.Acquire(MouseHover)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.EnableMouseAllMotion(), cmd())

	down := releaseHover()
	require.NotNil(t, down)
	assert.Equal(t, tea.EnableMouseCellMotion(), down())

	off := releaseClicks()
	require.NotNil(t, off)
	assert.Equal(t, tea.DisableMouse(), off())
}

func TestNilWatcherIsInert(t *testing.T) {
	var w *Watcher
	cmd, release := w.Acquire(MouseClicks)
	assert.Nil(t, cmd)
	assert.Nil(t, release())
	assert.Equal(t, MouseMode(0), w.Mode())
}
