package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/tomvds/opsdesk/cmd/tui/internal/view"
	"github.com/tomvds/opsdesk/internal/chat"
	chatStore "github.com/tomvds/opsdesk/internal/chat/store"
	"github.com/tomvds/opsdesk/internal/client"
	clientStore "github.com/tomvds/opsdesk/internal/client/store"
	"github.com/tomvds/opsdesk/internal/config"
	"github.com/tomvds/opsdesk/internal/database"
	"github.com/tomvds/opsdesk/internal/schedule"
	scheduleStore "github.com/tomvds/opsdesk/internal/schedule/store"
)

type model struct {
	clientService   *client.Service
	scheduleService *schedule.Service
	chatService     *chat.Service
	author          string

	currentView View

	dashboardView view.DashboardModel
	clientsView   view.ClientsModel
	chatView      view.ChatModel
}

type View int

const (
	ViewMenu      View = 0
	ViewDashboard View = 1
	ViewClients   View = 2
	ViewChat      View = 3
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	clientSvc := client.NewService(clientStore.New(db))
	scheduleSvc := schedule.NewService(scheduleStore.New(db))
	chatSvc := chat.NewService(chatStore.New(db), chat.NewHub(), cfg.Chat.HistoryLimit)

	author := os.Getenv("USER")
	if author == "" {
		author = "tui"
	}

	return model{
		clientService:   clientSvc,
		scheduleService: scheduleSvc,
		chatService:     chatSvc,
		author:          author,
		currentView:     ViewMenu,
		dashboardView:   view.NewDashboardModel(clientSvc, scheduleSvc),
		clientsView:     view.NewClientsModel(clientSvc),
		chatView:        view.NewChatModel(chatSvc, author),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewDashboard
				m.dashboardView = view.NewDashboardModel(m.clientService, m.scheduleService)

				return m, m.dashboardView.Init()
			case "2":
				m.currentView = ViewClients
				m.clientsView = view.NewClientsModel(m.clientService)

				return m, m.clientsView.Init()
			case "3":
				m.currentView = ViewChat
				m.chatView = view.NewChatModel(m.chatService, m.author)

				return m, m.chatView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewDashboard:
		var newModel tea.Model
		newModel, cmd = m.dashboardView.Update(msg)
		m.dashboardView = newModel.(view.DashboardModel)
	case ViewClients:
		var newModel tea.Model
		newModel, cmd = m.clientsView.Update(msg)
		m.clientsView = newModel.(view.ClientsModel)
	case ViewChat:
		var newModel tea.Model
		newModel, cmd = m.chatView.Update(msg)
		m.chatView = newModel.(view.ChatModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Opsdesk TUI\n\n" +
				"1. Dashboard\n" +
				"2. Clients\n" +
				"3. Team Chat\n\n" +
				"q. Quit",
		)
	case ViewDashboard:
		return m.dashboardView.View()
	case ViewClients:
		return m.clientsView.View()
	case ViewChat:
		return m.chatView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
