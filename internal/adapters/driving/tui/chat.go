// Package tui provides an interactive terminal chat client built on
// Bubble Tea. It drives the chat service directly, without going
// through the HTTP layer.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/scenechat/scenechat/internal/adapters/driving/tui/styles"
	"github.com/scenechat/scenechat/internal/core/domain"
	"github.com/scenechat/scenechat/internal/core/ports/driving"
)

const sendTimeout = 2 * time.Minute

// replyMsg carries a completed chat turn back into the update loop.
type replyMsg struct {
	reply domain.ChatReply
}

// errMsg carries a failed chat turn back into the update loop.
type errMsg struct {
	err error
}

// line is one rendered transcript entry.
type line struct {
	sender string
	text   string
	isUser bool
}

// Model is the Bubble Tea model for the chat client. One model talks
// to one persona over one session.
type Model struct {
	chat      driving.ChatService
	sessionID string
	persona   string
	styles    *styles.Styles

	input    textinput.Model
	viewport viewport.Model
	lines    []line
	status   string
	waiting  bool
	ready    bool
}

// New creates a chat model for the given persona. The session must
// already exist.
func New(chat driving.ChatService, sessionID, persona string) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Say something to " + persona
	ti.Focus()
	ti.CharLimit = 0

	return Model{
		chat:      chat,
		sessionID: sessionID,
		persona:   persona,
		styles:    styles.NewStyles(nil),
		input:     ti,
		viewport:  viewport.New(0, 0),
		status:    "Connected. Esc or Ctrl+C to quit.",
	}
}

// Init initialises the model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles key, window and reply events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, frame := m.styles.Transcript.GetFrameSize()
		_, inputFrame := m.styles.InputField.GetFrameSize()
		height := msg.Height - frame - inputFrame - 3 // header, status, spacer
		if height < 3 {
			height = 3
		}
		m.viewport.Width = msg.Width
		m.viewport.Height = height
		m.viewport.SetContent(m.renderTranscript())
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			if m.waiting {
				return m, nil
			}
			text := strings.TrimSpace(m.input.Value())
			if text == "" {
				return m, nil
			}
			m.lines = append(m.lines, line{sender: domain.SenderUser, text: text, isUser: true})
			m.input.Reset()
			m.waiting = true
			m.status = m.persona + " is thinking..."
			m.refreshViewport()
			return m, m.sendCmd(text)
		}

	case replyMsg:
		m.waiting = false
		m.status = "Connected. Esc or Ctrl+C to quit."
		m.lines = append(m.lines, line{sender: msg.reply.Persona, text: msg.reply.Text})
		m.refreshViewport()
		return m, nil

	case errMsg:
		m.waiting = false
		m.status = m.styles.Error.Render("Error: " + msg.err.Error())
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the chat layout.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.styles.Title.Render(fmt.Sprintf("Scenechat: talking to %s", m.persona))
	transcript := m.styles.Transcript.Render(m.viewport.View())
	input := m.styles.InputField.Render(m.input.View())
	status := m.styles.Muted.Render(m.status)

	return header + "\n" + transcript + "\n" + input + "\n" + status
}

// sendCmd runs the chat turn off the update loop.
func (m Model) sendCmd(text string) tea.Cmd {
	chat, sessionID, persona := m.chat, m.sessionID, m.persona
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		defer cancel()

		reply, err := chat.SendMessage(ctx, sessionID, persona, text)
		if err != nil {
			return errMsg{err: err}
		}
		return replyMsg{reply: reply}
	}
}

func (m *Model) refreshViewport() {
	m.viewport.SetContent(m.renderTranscript())
	m.viewport.GotoBottom()
}

func (m Model) renderTranscript() string {
	if len(m.lines) == 0 {
		return m.styles.Muted.Render("No messages yet.")
	}

	var b strings.Builder
	for i, l := range m.lines {
		if i > 0 {
			b.WriteString("\n\n")
		}
		label := m.styles.PersonaLabel.Render(l.sender)
		if l.isUser {
			label = m.styles.UserLabel.Render(l.sender)
		}
		b.WriteString(label + ": " + m.styles.Normal.Render(l.text))
	}
	return b.String()
}
