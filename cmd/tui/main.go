package main

import (
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/nioxtec/facturer/cmd/tui/internal/view"
	"github.com/nioxtec/facturer/internal/api"
	"github.com/nioxtec/facturer/internal/auth"
	"github.com/nioxtec/facturer/internal/config"
)

type model struct {
	client   *api.Client
	defaults view.ImportDefaults

	currentView View

	importView    view.ImportModel
	expensesView  view.ExpensesModel
	clientsView   view.ClientsModel
	invoicesView  view.InvoicesModel
	productsView  view.ProductsModel
	reportsView   view.ReportsModel
	contractsView view.ContractsModel

	tokenWarning string
}

type View int

const (
	ViewMenu      View = 0
	ViewImport    View = 1
	ViewExpenses  View = 2
	ViewClients   View = 3
	ViewInvoices  View = 4
	ViewProducts  View = 5
	ViewReports   View = 6
	ViewContracts View = 7
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	client := api.New(cfg.API.BaseURL, cfg.API.Token, cfg.API.Timeout)

	defaults := view.ImportDefaults{
		Category: cfg.Import.Category,
		Supplier: cfg.Import.Supplier,
		TaxRate:  cfg.Import.TaxRate,
		PageSize: cfg.Import.IndexPageSize,
	}

	warning := ""
	if auth.Expired(cfg.API.Token, time.Now()) {
		warning = "El token de la API ha caducado; inicia sesión de nuevo antes de importar."
	}

	return model{
		client:       client,
		defaults:     defaults,
		currentView:  ViewMenu,
		tokenWarning: warning,
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
				m.currentView = ViewImport
				m.importView = view.NewImportModel(m.client, m.defaults)

				return m, m.importView.Init()
			case "2":
				m.currentView = ViewExpenses
				m.expensesView = view.NewExpensesModel(m.client)

				return m, m.expensesView.Init()
			case "3":
				m.currentView = ViewClients
				m.clientsView = view.NewClientsModel(m.client)

				return m, m.clientsView.Init()
			case "4":
				m.currentView = ViewInvoices
				m.invoicesView = view.NewInvoicesModel(m.client)

				return m, m.invoicesView.Init()
			case "5":
				m.currentView = ViewProducts
				m.productsView = view.NewProductsModel(m.client)

				return m, m.productsView.Init()
			case "6":
				m.currentView = ViewReports
				m.reportsView = view.NewReportsModel(m.client)

				return m, m.reportsView.Init()
			case "7":
				m.currentView = ViewContracts
				m.contractsView = view.NewContractsModel(m.client)

				return m, m.contractsView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewImport:
		var newModel tea.Model
		newModel, cmd = m.importView.Update(msg)
		m.importView = newModel.(view.ImportModel)
	case ViewExpenses:
		var newModel tea.Model
		newModel, cmd = m.expensesView.Update(msg)
		m.expensesView = newModel.(view.ExpensesModel)
	case ViewClients:
		var newModel tea.Model
		newModel, cmd = m.clientsView.Update(msg)
		m.clientsView = newModel.(view.ClientsModel)
	case ViewInvoices:
		var newModel tea.Model
		newModel, cmd = m.invoicesView.Update(msg)
		m.invoicesView = newModel.(view.InvoicesModel)
	case ViewProducts:
		var newModel tea.Model
		newModel, cmd = m.productsView.Update(msg)
		m.productsView = newModel.(view.ProductsModel)
	case ViewReports:
		var newModel tea.Model
		newModel, cmd = m.reportsView.Update(msg)
		m.reportsView = newModel.(view.ReportsModel)
	case ViewContracts:
		var newModel tea.Model
		newModel, cmd = m.contractsView.Update(msg)
		m.contractsView = newModel.(view.ContractsModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		menu := "Facturer\n\n" +
			"1. Importar extracto bancario\n" +
			"2. Gastos\n" +
			"3. Clientes\n" +
			"4. Facturas\n" +
			"5. Productos\n" +
			"6. Informes\n" +
			"7. Contratos\n\n" +
			"q. Salir"

		if m.tokenWarning != "" {
			menu += "\n\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Render("⚠ "+m.tokenWarning)
		}

		return lipgloss.NewStyle().Padding(2).Render(menu)
	case ViewImport:
		return m.importView.View()
	case ViewExpenses:
		return m.expensesView.View()
	case ViewClients:
		return m.clientsView.View()
	case ViewInvoices:
		return m.invoicesView.View()
	case ViewProducts:
		return m.productsView.View()
	case ViewReports:
		return m.reportsView.View()
	case ViewContracts:
		return m.contractsView.View()
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
