package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nioxtec/facturer/internal/api"
	"github.com/nioxtec/facturer/internal/contract"
)

type contractsState int

const (
	contractsStateTemplates contractsState = iota
	contractsStateCustomers
	contractsStatePreview
	contractsStateGenerating
	contractsStateDone
)

type templateItem struct {
	template api.ContractTemplate
}

func (i templateItem) Title() string { return i.template.Name }

func (i templateItem) Description() string {
	return fmt.Sprintf("%d campos", len(contract.Placeholders(i.template.Body)))
}

func (i templateItem) FilterValue() string { return i.template.Name }

type ContractsModel struct {
	CommonModel
	client *api.Client

	state        contractsState
	templates    list.Model
	customers    list.Model
	template     api.ContractTemplate
	customer     api.Customer
	filled       string
	missing      []string
	loading      bool
	status       string
	generatedURL string
}

func NewContractsModel(client *api.Client) ContractsModel {
	tl := list.New([]list.Item{}, list.NewDefaultDelegate(), 80, 20)
	tl.Title = "Plantillas de contrato"
	tl.SetShowStatusBar(false)
	tl.SetFilteringEnabled(false)
	tl.SetShowHelp(false)

	cl := list.New([]list.Item{}, list.NewDefaultDelegate(), 80, 20)
	cl.Title = "Cliente del contrato"
	cl.SetShowStatusBar(false)
	cl.SetFilteringEnabled(true)
	cl.SetShowHelp(false)

	return ContractsModel{client: client, templates: tl, customers: cl}
}

func (m ContractsModel) Title() string { return "Contratos" }

func (m ContractsModel) ShortHelp() string {
	switch m.state {
	case contractsStatePreview:
		return "Enter: generar | Esc: atrás"
	}

	return "Esc: atrás | Enter: seleccionar"
}

func (m ContractsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m ContractsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case contractsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		templateItems := make([]list.Item, len(msg.templates))
		for i, t := range msg.templates {
			templateItems[i] = templateItem{template: t}
		}

		customerItems := make([]list.Item, len(msg.customers))
		for i, c := range msg.customers {
			customerItems[i] = customerItem{customer: c}
		}

		m.templates.SetItems(templateItems)
		m.customers.SetItems(customerItems)

		return m, nil

	case contractGeneratedMsg:
		if msg.err != nil {
			m.state = contractsStatePreview
			m.status = fmt.Sprintf("Error al generar: %v", msg.err)

			return m, nil
		}

		m.state = contractsStateDone
		m.generatedURL = msg.url

		return m, nil

	case tea.WindowSizeMsg:
		m.templates.SetSize(msg.Width-4, msg.Height-8)
		m.customers.SetSize(msg.Width-4, msg.Height-8)

		return m, nil

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}

	return m, nil
}

func (m ContractsModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.state {
	case contractsStateTemplates:
		switch msg.Type {
		case tea.KeyEsc:
			return m, Back
		case tea.KeyEnter:
			if item, ok := m.templates.SelectedItem().(templateItem); ok {
				m.template = item.template
				m.state = contractsStateCustomers
			}

			return m, nil
		}

		var cmd tea.Cmd
		m.templates, cmd = m.templates.Update(msg)

		return m, cmd

	case contractsStateCustomers:
		switch msg.Type {
		case tea.KeyEsc:
			if m.customers.FilterState() != list.Filtering {
				m.state = contractsStateTemplates
				return m, nil
			}
		case tea.KeyEnter:
			if m.customers.FilterState() == list.Filtering {
				break
			}

			if item, ok := m.customers.SelectedItem().(customerItem); ok {
				m.customer = item.customer
				m.filled, m.missing = contract.Fill(
					m.template.Body,
					contract.CustomerFields(m.customer, time.Now()),
				)
				m.state = contractsStatePreview
				m.status = ""
			}

			return m, nil
		}

		var cmd tea.Cmd
		m.customers, cmd = m.customers.Update(msg)

		return m, cmd

	case contractsStatePreview:
		switch msg.Type {
		case tea.KeyEsc:
			m.state = contractsStateCustomers
			return m, nil
		case tea.KeyEnter:
			if len(m.missing) > 0 {
				m.status = "Faltan campos: " + strings.Join(m.missing, ", ")
				return m, nil
			}

			m.state = contractsStateGenerating

			return m, m.generateCmd()
		}

	case contractsStateDone:
		if msg.Type == tea.KeyEsc {
			m.state = contractsStateTemplates
			m.generatedURL = ""

			return m, nil
		}
	}

	return m, nil
}

func (m ContractsModel) View() string {
	switch m.state {
	case contractsStateTemplates:
		if m.loading {
			return lipgloss.NewStyle().Padding(2).Render("Cargando plantillas...")
		}

		statusLine := ""
		if m.status != "" {
			statusLine = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n"
		}

		return lipgloss.NewStyle().Padding(1).Render(statusLine + m.templates.View())

	case contractsStateCustomers:
		return lipgloss.NewStyle().Padding(1).Render(m.customers.View())

	case contractsStatePreview:
		return m.previewView()

	case contractsStateGenerating:
		return lipgloss.NewStyle().Padding(2).Render("Generando contrato...")

	case contractsStateDone:
		return lipgloss.NewStyle().Padding(2).Render(
			lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Render("Contrato generado.") +
				"\n\n" + m.generatedURL + "\n\n(Esc para volver)",
		)
	}

	return ""
}

func (m ContractsModel) previewView() string {
	header := fmt.Sprintf("%s — %s", m.template.Name, m.customer.Name)

	body := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1).
		Width(78).
		Render(Truncate(m.filled, 1500))

	footer := "Enter para generar el PDF en el servidor."
	if len(m.missing) > 0 {
		footer = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).
			Render("Faltan campos: " + strings.Join(m.missing, ", "))
	}

	if m.status != "" {
		footer += "\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(m.status)
	}

	return lipgloss.NewStyle().Padding(1).Render(header + "\n\n" + body + "\n" + footer)
}

// Messages

type contractsLoadedMsg struct {
	templates []api.ContractTemplate
	customers []api.Customer
	err       error
}

type contractGeneratedMsg struct {
	url string
	err error
}

func (m ContractsModel) loadCmd() tea.Cmd {
	client := m.client

	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		templates, err := client.ListContractTemplates(ctx)
		if err != nil {
			return contractsLoadedMsg{err: err}
		}

		customers, err := client.ListCustomers(ctx)
		if err != nil {
			return contractsLoadedMsg{err: err}
		}

		return contractsLoadedMsg{templates: templates, customers: customers}
	}
}

func (m ContractsModel) generateCmd() tea.Cmd {
	client := m.client
	params := api.GenerateContractParams{
		TemplateID: m.template.ID,
		ClientID:   m.customer.ID,
		Fields:     contract.CustomerFields(m.customer, time.Now()),
	}

	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		generated, err := client.GenerateContract(ctx, params)
		if err != nil {
			return contractGeneratedMsg{err: err}
		}

		return contractGeneratedMsg{url: generated.URL}
	}
}
