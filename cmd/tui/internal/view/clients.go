package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nioxtec/facturer/internal/api"
)

type clientsState int

const (
	clientsStateBrowse clientsState = iota
	clientsStateCreate
)

type customerItem struct {
	customer api.Customer
}

func (i customerItem) Title() string {
	return fmt.Sprintf("%s  %s", i.customer.Name, lipgloss.NewStyle().Faint(true).Render(i.customer.CIF))
}

func (i customerItem) Description() string {
	parts := []string{}
	if i.customer.Email != "" {
		parts = append(parts, i.customer.Email)
	}

	if i.customer.Phone != "" {
		parts = append(parts, i.customer.Phone)
	}

	return strings.Join(parts, " | ")
}

func (i customerItem) FilterValue() string { return i.customer.Name }

type ClientsModel struct {
	CommonModel
	client *api.Client

	state     clientsState
	list      list.Model
	customers []api.Customer
	form      *huh.Form
	loading   bool
	status    string

	// Form bindings
	formName    string
	formCIF     string
	formEmail   string
	formPhone   string
	formAddress string
	formIBAN    string
}

func NewClientsModel(client *api.Client) ClientsModel {
	l := list.New([]list.Item{}, list.NewDefaultDelegate(), 80, 20)
	l.Title = "Clientes"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	return ClientsModel{client: client, list: l}
}

func (m ClientsModel) Title() string { return "Clientes" }

func (m ClientsModel) ShortHelp() string {
	if m.state == clientsStateCreate {
		return "Enter/Tab: navegar formulario | Esc: cancelar"
	}

	return "Esc: volver | a: nuevo | x: eliminar | /: filtrar"
}

func (m ClientsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m ClientsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case customersLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.customers = msg.items
		m.refreshList()

		return m, nil

	case customerSavedMsg:
		m.state = clientsStateBrowse
		m.form = nil

		if msg.err != nil {
			m.status = fmt.Sprintf("Error al guardar: %v", msg.err)
			return m, nil
		}

		m.status = "Cliente guardado."

		return m, m.loadCmd()

	case customerDeletedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error al eliminar: %v", msg.err)
			return m, nil
		}

		m.status = "Cliente eliminado."

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width-4, msg.Height-8)
		return m, nil
	}

	switch m.state {
	case clientsStateBrowse:
		return m.updateBrowse(msg)
	case clientsStateCreate:
		return m.updateCreate(msg)
	}

	return m, nil
}

func (m ClientsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			if m.list.FilterState() == list.Filtering {
				break
			}

			return m, Back
		case "a":
			return m.startCreate()
		case "x":
			if item, ok := m.list.SelectedItem().(customerItem); ok {
				return m, m.deleteCmd(item.customer.ID)
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)

	return m, cmd
}

func (m ClientsModel) startCreate() (tea.Model, tea.Cmd) {
	m.formName = ""
	m.formCIF = ""
	m.formEmail = ""
	m.formPhone = ""
	m.formAddress = ""
	m.formIBAN = ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("name").
				Title("Nombre / Razón social").
				Value(&m.formName).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("el nombre es obligatorio")
					}
					return nil
				}),

			huh.NewInput().
				Key("cif").
				Title("CIF/NIF").
				Value(&m.formCIF).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("el CIF/NIF es obligatorio")
					}
					return nil
				}),

			huh.NewInput().Key("email").Title("Email").Value(&m.formEmail),
			huh.NewInput().Key("phone").Title("Teléfono").Value(&m.formPhone),
			huh.NewInput().Key("address").Title("Dirección").Value(&m.formAddress),
			huh.NewInput().Key("iban").Title("IBAN").Value(&m.formIBAN),
		),
	).WithWidth(60).WithShowHelp(false)

	m.state = clientsStateCreate

	return m, m.form.Init()
}

func (m ClientsModel) updateCreate(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = clientsStateBrowse
			m.form = nil

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

func (m *ClientsModel) refreshList() {
	items := make([]list.Item, len(m.customers))
	for i, c := range m.customers {
		items[i] = customerItem{customer: c}
	}

	m.list.SetItems(items)
}

func (m ClientsModel) View() string {
	switch m.state {
	case clientsStateBrowse:
		if m.loading {
			return lipgloss.NewStyle().Padding(2).Render("Cargando clientes...")
		}

		statusLine := ""
		if m.status != "" {
			statusLine = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n"
		}

		return lipgloss.NewStyle().Padding(1).Render(statusLine + m.list.View())

	case clientsStateCreate:
		if m.form == nil {
			return ""
		}

		return lipgloss.NewStyle().Padding(1).Render(m.form.View())
	}

	return ""
}

// Messages

type customersLoadedMsg struct {
	items []api.Customer
	err   error
}

type customerSavedMsg struct {
	err error
}

type customerDeletedMsg struct {
	err error
}

func (m ClientsModel) loadCmd() tea.Cmd {
	client := m.client

	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		items, err := client.ListCustomers(ctx)

		return customersLoadedMsg{items: items, err: err}
	}
}

func (m ClientsModel) saveCmd() tea.Cmd {
	client := m.client
	params := api.CreateCustomerParams{
		Name:    strings.TrimSpace(m.formName),
		CIF:     strings.TrimSpace(m.formCIF),
		Email:   strings.TrimSpace(m.formEmail),
		Phone:   strings.TrimSpace(m.formPhone),
		Address: strings.TrimSpace(m.formAddress),
		IBAN:    strings.TrimSpace(m.formIBAN),
	}

	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		_, err := client.CreateCustomer(ctx, params)

		return customerSavedMsg{err: err}
	}
}

func (m ClientsModel) deleteCmd(id int) tea.Cmd {
	client := m.client

	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		return customerDeletedMsg{err: client.DeleteCustomer(ctx, id)}
	}
}
