package components

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewListClampsPageSize(t *testing.T) {
	assert.Equal(t, 10, NewList(10).PageSize)
	assert.Equal(t, 1, NewList(0).PageSize)
}

func TestListDownScrolls(t *testing.T) {
	l := NewList(3)
	l.Reset(5)

	l.Down()
	l.Down()
	assert.Equal(t, 2, l.Cursor)
	assert.Equal(t, 0, l.Offset)

	l.Down()
	assert.Equal(t, 3, l.Cursor)
	assert.Equal(t, 1, l.Offset)

	l.Down()
	l.Down()
	assert.Equal(t, 4, l.Cursor)
	assert.Equal(t, 2, l.Offset)
}

func TestListUpScrolls(t *testing.T) {
	l := NewList(3)
	l.Reset(5)
	l.Select(4)
	assert.Equal(t, 2, l.Offset)

	l.Up()
	l.Up()
	assert.Equal(t, 2, l.Cursor)
	assert.Equal(t, 2, l.Offset)

	l.Up()
	assert.Equal(t, 1, l.Offset)

	l.Up()
	l.Up()
	assert.Equal(t, 0, l.Cursor)
	assert.Equal(t, 0, l.Offset)
}

func TestListWindow(t *testing.T) {
	l := NewList(3)
	start, end := l.Window()
	assert.Equal(t, 0, start)
	assert.Equal(t, 0, end)

	l.Reset(5)
	start, end = l.Window()
	assert.Equal(t, 0, start)
	assert.Equal(t, 3, end)

	l.Select(4)
	start, end = l.Window()
	assert.Equal(t, 2, start)
	assert.Equal(t, 5, end)
	assert.Equal(t, 3, l.RelToAbs(1))
}

func TestListSelectIgnoresOutOfRange(t *testing.T) {
	l := NewList(3)
	l.Reset(2)
	l.Select(5)
	l.Select(-1)
	assert.Equal(t, 0, l.Cursor)
}

func TestListResizeKeepsCursorVisible(t *testing.T) {
	l := NewList(10)
	l.Reset(20)
	l.Select(9)
	l.Resize(4)
	start, end := l.Window()
	assert.GreaterOrEqual(t, l.Cursor, start)
	assert.Less(t, l.Cursor, end)
}
