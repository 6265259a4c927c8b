package view

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tomvds/opsdesk/internal/analytics"
	"github.com/tomvds/opsdesk/internal/client"
	"github.com/tomvds/opsdesk/internal/schedule"
)

var (
	dashTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	dashLabelStyle = lipgloss.NewStyle().Faint(true)
	dashBoxStyle   = lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240"))
)

type DashboardModel struct {
	CommonModel
	clientService   *client.Service
	scheduleService *schedule.Service

	dashboard *analytics.Dashboard
	loading   bool
	err       error
}

func NewDashboardModel(clientSvc *client.Service, scheduleSvc *schedule.Service) DashboardModel {
	return DashboardModel{
		clientService:   clientSvc,
		scheduleService: scheduleSvc,
		loading:         true,
	}
}

func (m DashboardModel) Title() string     { return "Dashboard" }
func (m DashboardModel) ShortHelp() string { return "Esc: back | r: refresh" }

func (m DashboardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.dashboard = msg.dashboard

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		}
	}

	return m, nil
}

func (m DashboardModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading dashboard...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	d := m.dashboard

	var pipeline strings.Builder

	pipeline.WriteString(dashTitleStyle.Render("Pipeline") + "\n\n")

	for _, s := range d.ClientsByStage {
		pipeline.WriteString(fmt.Sprintf("%-12s %3d  %12s\n", s.Stage, s.Count, FormatAmount(s.Value)))
	}

	if len(d.ClientsByStage) == 0 {
		pipeline.WriteString(dashLabelStyle.Render("no clients yet") + "\n")
	}

	var revenue strings.Builder

	revenue.WriteString(dashTitleStyle.Render("Revenue") + "\n\n")
	revenue.WriteString(fmt.Sprintf("%s %s\n", dashLabelStyle.Render("Total:        "), FormatAmount(d.TotalRevenue)))
	revenue.WriteString(fmt.Sprintf("%s %.1f%%\n", dashLabelStyle.Render("MoM growth:   "), d.MoMGrowth))
	revenue.WriteString(fmt.Sprintf("%s %s\n", dashLabelStyle.Render("Pipeline:     "), FormatAmount(d.PipelineValue)))
	revenue.WriteString(fmt.Sprintf("%s %s\n", dashLabelStyle.Render("Forecast:     "), FormatAmount(d.Forecast)))
	revenue.WriteString(fmt.Sprintf("%s %.1f%%\n", dashLabelStyle.Render("Conversion:   "), d.ConversionRate))
	revenue.WriteString("\n" + dashTitleStyle.Render("Last months") + "\n\n")

	for _, mr := range d.MonthlyRevenue {
		revenue.WriteString(fmt.Sprintf("%s  %12s\n", mr.Month.Format("2006-01"), FormatAmount(mr.Revenue)))
	}

	var activity strings.Builder

	activity.WriteString(dashTitleStyle.Render("Activity") + "\n\n")
	activity.WriteString(fmt.Sprintf("%s %d\n", dashLabelStyle.Render("Tasks open:     "), d.TasksOpen))
	activity.WriteString(fmt.Sprintf("%s %d\n", dashLabelStyle.Render("Tasks overdue:  "), d.TasksOverdue))
	activity.WriteString(fmt.Sprintf("%s %d\n", dashLabelStyle.Render("Tasks completed:"), d.TasksCompleted))
	activity.WriteString(fmt.Sprintf("%s %d\n", dashLabelStyle.Render("Events held:    "), d.EventsHeld))
	activity.WriteString(fmt.Sprintf("%s %d\n", dashLabelStyle.Render("Events upcoming:"), d.EventsUpcoming))

	boxes := lipgloss.JoinHorizontal(lipgloss.Top,
		dashBoxStyle.Render(pipeline.String()),
		dashBoxStyle.Render(revenue.String()),
		dashBoxStyle.Render(activity.String()),
	)

	content := boxes

	if len(d.Recommendations) > 0 {
		var recs strings.Builder

		recs.WriteString(dashTitleStyle.Render("Recommendations") + "\n\n")

		for _, r := range d.Recommendations {
			recs.WriteString("* " + r + "\n")
		}

		content = lipgloss.JoinVertical(lipgloss.Left, boxes, dashBoxStyle.Render(recs.String()))
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

type dashboardLoadedMsg struct {
	dashboard *analytics.Dashboard
	err       error
}

func (m DashboardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		clients, err := m.clientService.List(ctx, client.ListFilter{})
		if err != nil {
			return dashboardLoadedMsg{err: err}
		}

		tasks, err := m.scheduleService.ListTasks(ctx, schedule.TaskFilter{})
		if err != nil {
			return dashboardLoadedMsg{err: err}
		}

		events, err := m.scheduleService.ListEvents(ctx, schedule.EventFilter{})
		if err != nil {
			return dashboardLoadedMsg{err: err}
		}

		dashboard := analytics.Build(analytics.Input{
			Clients: clients,
			Tasks:   tasks,
			Events:  events,
		}, time.Now())

		return dashboardLoadedMsg{dashboard: dashboard}
	}
}
