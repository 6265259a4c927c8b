package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tomvds/opsdesk/internal/chat"
)

var (
	chatAuthorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	chatTimeStyle   = lipgloss.NewStyle().Faint(true)
)

type ChatModel struct {
	CommonModel
	chatService *chat.Service
	author      string

	messages []chat.Message
	input    textinput.Model

	live   <-chan chat.Message
	cancel func()

	loading bool
	err     error
}

func NewChatModel(chatSvc *chat.Service, author string) ChatModel {
	ti := textinput.New()
	ti.Placeholder = "Message #general"
	ti.CharLimit = 500
	ti.Focus()

	live, cancel := chatSvc.Subscribe()

	return ChatModel{
		chatService: chatSvc,
		author:      author,
		input:       ti,
		live:        live,
		cancel:      cancel,
		loading:     true,
	}
}

func (m ChatModel) Title() string     { return "Team Chat" }
func (m ChatModel) ShortHelp() string { return "Esc: back | Enter: send" }

func (m ChatModel) Init() tea.Cmd {
	return tea.Batch(m.loadHistoryCmd(), m.waitForMessageCmd())
}

func (m ChatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case chatHistoryMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.messages = m.messages[:0]
		for _, hm := range msg.messages {
			m.messages = append(m.messages, *hm)
		}

		return m, nil

	case chatLiveMsg:
		if !msg.open {
			return m, nil
		}

		m.messages = append(m.messages, msg.message)

		return m, m.waitForMessageCmd()

	case chatPostedMsg:
		if msg.err != nil {
			m.err = msg.err
		}

		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEsc:
			m.cancel()
			return m, Back
		case tea.KeyEnter:
			body := strings.TrimSpace(m.input.Value())
			if body == "" {
				return m, nil
			}

			m.input.Reset()

			return m, m.postCmd(body)
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m ChatModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading chat...")
	}

	var sb strings.Builder

	if m.err != nil {
		sb.WriteString(lipgloss.NewStyle().Faint(true).Render(fmt.Sprintf("Error: %v", m.err)) + "\n\n")
	}

	visible := m.messages
	if limit := 20; len(visible) > limit {
		visible = visible[len(visible)-limit:]
	}

	for _, msg := range visible {
		sb.WriteString(fmt.Sprintf("%s %s %s\n",
			chatTimeStyle.Render(msg.CreatedAt.Format("15:04")),
			chatAuthorStyle.Render(msg.Author+":"),
			msg.Body,
		))
	}

	if len(visible) == 0 {
		sb.WriteString(lipgloss.NewStyle().Faint(true).Render("No messages yet.") + "\n")
	}

	sb.WriteString("\n" + m.input.View())

	return lipgloss.NewStyle().Padding(1).Render(sb.String())
}

// Messages

type chatHistoryMsg struct {
	messages []*chat.Message
	err      error
}

func (m ChatModel) loadHistoryCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		messages, err := m.chatService.History(ctx, "")
		return chatHistoryMsg{messages: messages, err: err}
	}
}

type chatLiveMsg struct {
	message chat.Message
	open    bool
}

func (m ChatModel) waitForMessageCmd() tea.Cmd {
	return func() tea.Msg {
		message, open := <-m.live
		return chatLiveMsg{message: message, open: open}
	}
}

type chatPostedMsg struct {
	err error
}

func (m ChatModel) postCmd(body string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		_, err := m.chatService.Post(ctx, chat.PostParams{Author: m.author, Body: body})
		return chatPostedMsg{err: err}
	}
}
