package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// --- Key Helpers ---

func isKey(msg tea.KeyMsg, keys ...string) bool {
	for _, k := range keys {
		if msg.String() == k {
			return true
		}
	}
	return false
}

func isQuit(msg tea.KeyMsg) bool {
	return isKey(msg, "q", "ctrl+c")
}

func isBack(msg tea.KeyMsg) bool {
	if msg.Type == tea.KeyEsc {
		return true
	}
	return isKey(msg, "esc", "ctrl+[")
}

func isUp(msg tea.KeyMsg) bool {
	return isKey(msg, "up", "k")
}

func isDown(msg tea.KeyMsg) bool {
	return isKey(msg, "down", "j")
}

func isEnter(msg tea.KeyMsg) bool {
	return isKey(msg, "enter")
}

// viewIndexForKey maps the number row to sidebar positions.
func viewIndexForKey(k string) (int, bool) {
	if len(k) != 1 || k[0] < '1' || k[0] > '9' {
		return 0, false
	}
	return int(k[0] - '1'), true
}

// --- Bindings ---

type appKeyMap struct {
	NextView key.Binding
	PrevView key.Binding
	Jump     key.Binding
	Quit     key.Binding
}

func defaultAppKeys() appKeyMap {
	return appKeyMap{
		NextView: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "Next view")),
		PrevView: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "Prev view")),
		Jump:     key.NewBinding(key.WithKeys("1", "2", "3", "4"), key.WithHelp("1-4", "Jump")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "Quit")),
	}
}

type tagEditKeyMap struct {
	Save  key.Binding
	Close key.Binding
}

func defaultTagEditKeys() tagEditKeyMap {
	return tagEditKeyMap{
		Save:  key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "Save")),
		Close: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "Close")),
	}
}
