package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/tomvds/opsdesk/internal/client"
)

type clientsState int

const (
	clientsStateBrowse clientsState = iota
	clientsStateEdit
)

type ClientsModel struct {
	CommonModel
	clientService *client.Service

	state   clientsState
	table   table.Model
	clients []*client.Client
	form    *huh.Form

	stageFilterIdx int

	filter  client.ListFilter
	loading bool
	err     error
	status  string

	// Form bindings
	formCompany  string
	formContact  string
	formValue    string
	formAssigned string
}

func NewClientsModel(clientSvc *client.Service) ClientsModel {
	columns := []table.Column{
		{Title: "Company", Width: 28},
		{Title: "Contact", Width: 20},
		{Title: "Stage", Width: 12},
		{Title: "Deal Value", Width: 12},
		{Title: "Assigned", Width: 14},
		{Title: "Closed", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return ClientsModel{
		clientService: clientSvc,
		table:         t,
		filter:        client.ListFilter{},
	}
}

func (m ClientsModel) Title() string { return "Clients" }
func (m ClientsModel) ShortHelp() string {
	if m.state == clientsStateEdit {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | e: edit | +: advance stage | s: stage filter | r: refresh"
}

func (m ClientsModel) Init() tea.Cmd {
	return m.loadClientsCmd()
}

func (m ClientsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadClientsMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.clients = msg.clients
		m.status = ""
		m.refreshTable()

		return m, nil

	case clientSaveMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error saving: %v", msg.err)
		}

		m.state = clientsStateBrowse
		m.form = nil
		m.table.Focus()

		return m, m.loadClientsCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case clientsStateBrowse:
		return m.updateBrowse(msg)
	case clientsStateEdit:
		return m.updateEdit(msg)
	}

	return m, nil
}

func (m ClientsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadClientsCmd()
		case "e":
			return m.enterEditMode()
		case "+":
			return m, m.advanceStageCmd()
		case "s":
			m.stageFilterIdx = (m.stageFilterIdx + 1) % (len(client.Stages) + 1)
			m.applyFilter()

			return m, m.loadClientsCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m ClientsModel) enterEditMode() (tea.Model, tea.Cmd) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.clients) {
		return m, nil
	}

	c := m.clients[idx]
	m.formCompany = c.Company
	m.formContact = c.ContactName
	m.formValue = FormatAmount(c.DealValue)
	m.formAssigned = c.AssignedTo

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("company").
				Title("Company").
				Value(&m.formCompany).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("company cannot be empty")
					}
					return nil
				}),

			huh.NewInput().
				Key("contact").
				Title("Contact").
				Value(&m.formContact),

			huh.NewInput().
				Key("deal_value").
				Title("Deal Value").
				Value(&m.formValue).
				Validate(func(s string) error {
					if _, err := decimal.NewFromString(strings.TrimSpace(s)); err != nil {
						return fmt.Errorf("invalid amount")
					}
					return nil
				}),

			huh.NewInput().
				Key("assigned_to").
				Title("Assigned To").
				Value(&m.formAssigned),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = clientsStateEdit
	m.table.Blur()

	return m, m.form.Init()
}

func (m ClientsModel) updateEdit(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = clientsStateBrowse
			m.form = nil
			m.table.Focus()

			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.saveCmd()
}

func (m ClientsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading clients...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	stageLabel := "All"
	if m.stageFilterIdx > 0 {
		stageLabel = string(client.Stages[m.stageFilterIdx-1])
	}

	header := fmt.Sprintf("Filter: [s] Stage: %s", activeStyle(stageLabel))

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	if m.state == clientsStateEdit && m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render("Edit Client\n\n" + m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}

func (m *ClientsModel) applyFilter() {
	if m.stageFilterIdx == 0 {
		m.filter.Stage = nil
		return
	}

	m.filter.Stage = &client.Stages[m.stageFilterIdx-1]
}

func (m *ClientsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.clients))
	for _, c := range m.clients {
		closed := ""
		if c.ClosedAt != nil {
			closed = FormatDate(*c.ClosedAt)
		}

		rows = append(rows, table.Row{
			c.Company,
			c.ContactName,
			string(c.Stage),
			FormatAmount(c.DealValue),
			c.AssignedTo,
			closed,
		})
	}

	m.table.SetRows(rows)
}

// Messages

type loadClientsMsg struct {
	clients []*client.Client
	err     error
}

func (m ClientsModel) loadClientsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		clients, err := m.clientService.List(ctx, m.filter)
		return loadClientsMsg{clients: clients, err: err}
	}
}

type clientSaveMsg struct {
	err error
}

func (m ClientsModel) saveCmd() tea.Cmd {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.clients) {
		return nil
	}

	c := m.clients[idx]
	company := m.formCompany
	contact := m.formContact
	value := m.formValue
	assigned := m.formAssigned

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		d, err := decimal.NewFromString(strings.TrimSpace(value))
		if err != nil {
			return clientSaveMsg{err: err}
		}

		c.Company = company
		c.ContactName = contact
		c.DealValue = d.Shift(2).IntPart()
		c.AssignedTo = assigned

		if err := m.clientService.Update(ctx, c); err != nil {
			return clientSaveMsg{err: err}
		}

		return clientSaveMsg{}
	}
}

// advanceStageCmd moves the selected client one step down the funnel.
// Lost clients stay lost; closed clients stay closed.
func (m ClientsModel) advanceStageCmd() tea.Cmd {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.clients) {
		return nil
	}

	c := m.clients[idx]
	if !c.Stage.Active() {
		return nil
	}

	var next client.Stage

	for i, stage := range client.Stages {
		if stage == c.Stage && i+1 < len(client.Stages) {
			next = client.Stages[i+1]
			break
		}
	}

	if next == "" || next == client.StageLost {
		return nil
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if err := m.clientService.UpdateStage(ctx, c.ID, next); err != nil {
			return clientSaveMsg{err: err}
		}

		return clientSaveMsg{}
	}
}
