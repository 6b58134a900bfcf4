package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/wordwrap"
	"go.uber.org/zap"

	"github.com/gravitrone/nebula-dash/internal/api"
	"github.com/gravitrone/nebula-dash/internal/diag"
	"github.com/gravitrone/nebula-dash/internal/ui/components"
)

// --- Messages ---

type chatReplyMsg struct {
	mode  string
	reply api.ChatReply
}

type chatTurn struct {
	user    bool
	mode    string
	text    string
	created []api.Entity
	failed  bool
}

const chatMinWrap = 20

var chatPlaceholders = map[string]string{
	api.ChatModeChat: "ask about your graph…",
	api.ChatModeAdd:  "describe something to add…",
}

// --- Chat Model ---

type ChatModel struct {
	client  *api.Client
	diag    *diag.Channel
	input   textinput.Model
	spinner spinner.Model
	mode    string
	waiting bool
	turns   []chatTurn
	width   int
	height  int
}

func NewChatModel(client *api.Client, ch *diag.Channel) ChatModel {
	if ch == nil {
		ch = diag.Discard()
	}
	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 2000
	ti.Placeholder = chatPlaceholders[api.ChatModeChat]
	return ChatModel{
		client:  client,
		diag:    ch,
		input:   ti,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(AccentStyle)),
		mode:    api.ChatModeChat,
	}
}

// Show focuses the input when the view becomes visible.
func (m *ChatModel) Show() tea.Cmd {
	return m.input.Focus()
}

// Hide blurs the input.
func (m *ChatModel) Hide() {
	m.input.Blur()
}

// Capturing is true while keystrokes belong to the text field.
func (m ChatModel) Capturing() bool {
	return m.input.Focused()
}

func (m *ChatModel) SetSize(width, height int) {
	m.width, m.height = width, height
	m.input.Width = width - 4
}

func (m ChatModel) Update(msg tea.Msg) (ChatModel, tea.Cmd) {
	switch msg := msg.(type) {
	case chatReplyMsg:
		m.waiting = false
		m.turns = append(m.turns, chatTurn{mode: msg.mode, text: msg.reply.Reply, created: msg.reply.Created})
		return m, nil

	case errMsg:
		m.waiting = false
		m.turns = append(m.turns, chatTurn{mode: m.mode, text: msg.err.Error(), failed: true})
		return m, nil

	case spinner.TickMsg:
		if !m.waiting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKeys(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m ChatModel) handleKeys(msg tea.KeyMsg) (ChatModel, tea.Cmd) {
	if !m.input.Focused() {
		if isEnter(msg) || isKey(msg, "i") {
			cmd := m.input.Focus()
			return m, cmd
		}
		return m, nil
	}

	switch {
	case isBack(msg):
		m.input.Blur()
		return m, nil
	case isKey(msg, "tab"):
		m.toggleMode()
		return m, nil
	case isEnter(msg):
		return m.send()
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *ChatModel) toggleMode() {
	if m.mode == api.ChatModeChat {
		m.mode = api.ChatModeAdd
	} else {
		m.mode = api.ChatModeChat
	}
	m.input.Placeholder = chatPlaceholders[m.mode]
}

func (m ChatModel) send() (ChatModel, tea.Cmd) {
	text := strings.TrimSpace(m.input.Value())
	if text == "" || m.waiting || m.client == nil {
		return m, nil
	}
	m.turns = append(m.turns, chatTurn{user: true, mode: m.mode, text: text})
	m.input.SetValue("")
	m.waiting = true

	client := m.client
	ch := m.diag
	mode := m.mode
	request := func() tea.Msg {
		reply, err := client.SendChat(api.ChatInput{Message: text, Mode: mode})
		if err != nil {
			ch.Report("chat", err, zap.String("mode", mode))
			return errMsg{view: viewChat, err: err}
		}
		return chatReplyMsg{mode: mode, reply: *reply}
	}
	return m, tea.Batch(request, m.spinner.Tick)
}

func (m ChatModel) View() string {
	lines := []string{m.renderModeLine(), ""}

	transcript := m.renderTranscript()
	if limit := m.height - 5; limit > 0 && len(transcript) > limit {
		transcript = transcript[len(transcript)-limit:]
	}
	if len(transcript) == 0 {
		transcript = []string{MutedStyle.Render("No messages yet.")}
	}
	lines = append(lines, transcript...)
	lines = append(lines, "")

	if m.waiting {
		lines = append(lines, m.spinner.View()+MutedStyle.Render(" thinking..."))
	} else {
		lines = append(lines, m.input.View())
	}
	return strings.Join(lines, "\n")
}

func (m ChatModel) renderModeLine() string {
	chat := FilterInactiveStyle.Render(api.ChatModeChat)
	add := FilterInactiveStyle.Render(api.ChatModeAdd)
	if m.mode == api.ChatModeAdd {
		add = FilterActiveStyle.Render(api.ChatModeAdd)
	} else {
		chat = FilterActiveStyle.Render(api.ChatModeChat)
	}
	return MutedStyle.Render("Mode ") + chat + add
}

func (m ChatModel) wrapWidth() int {
	w := m.width - 2
	if w < chatMinWrap {
		w = chatMinWrap
	}
	return w
}

func (m ChatModel) renderTranscript() []string {
	var lines []string
	width := m.wrapWidth()
	for _, turn := range m.turns {
		label := AssistantTurnStyle.Render("nebula")
		if turn.user {
			label = UserTurnStyle.Render("you")
			if turn.mode == api.ChatModeAdd {
				label += MutedStyle.Render(" (add)")
			}
		}
		lines = append(lines, label)

		body := wordwrap.String(components.SanitizeText(turn.text), width)
		for _, line := range strings.Split(body, "\n") {
			if turn.failed {
				lines = append(lines, ErrorStyle.Render(line))
			} else {
				lines = append(lines, NormalStyle.Render(line))
			}
		}
		if len(turn.created) > 0 {
			created := make([]string, 0, len(turn.created))
			for _, e := range turn.created {
				created = append(created, SuccessStyle.Render(fmt.Sprintf("+ created %s: %s", e.Type, components.SanitizeOneLine(e.Name))))
			}
			lines = append(lines, strings.Split(components.Indent(strings.Join(created, "\n"), 2), "\n")...)
		}
		lines = append(lines, "")
	}
	if len(lines) > 0 {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func (m ChatModel) hints() []string {
	if !m.input.Focused() {
		return []string{components.Hint("i", "Type")}
	}
	return []string{
		components.Hint("enter", "Send"),
		components.Hint("tab", "Mode"),
		components.Hint("esc", "Leave input"),
	}
}
