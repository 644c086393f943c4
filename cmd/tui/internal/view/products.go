package view

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nioxtec/facturer/internal/api"
)

type ProductsModel struct {
	CommonModel
	client *api.Client

	table    table.Model
	products []api.Product
	loading  bool
	status   string
}

func NewProductsModel(client *api.Client) ProductsModel {
	columns := []table.Column{
		{Title: "SKU", Width: 14},
		{Title: "Nombre", Width: 34},
		{Title: "Categoría", Width: 18},
		{Title: "Precio", Width: 10},
		{Title: "Stock", Width: 6},
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

	return ProductsModel{client: client, table: t}
}

func (m ProductsModel) Title() string { return "Productos" }

func (m ProductsModel) ShortHelp() string { return "Esc: volver | r: recargar" }

func (m ProductsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m ProductsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case productsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.products = msg.items
		m.status = ""
		m.refreshTable()

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		}

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m *ProductsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.products))

	for _, p := range m.products {
		rows = append(rows, table.Row{
			p.SKU,
			Truncate(p.Name, 34),
			Truncate(p.Category, 18),
			p.Price.StringFixed(2),
			strconv.Itoa(p.Stock),
		})
	}

	m.table.SetRows(rows)
	m.table.SetCursor(0)
}

func (m ProductsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Cargando productos...")
	}

	statusLine := ""
	if m.status != "" {
		statusLine = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n"
	}

	return lipgloss.NewStyle().Padding(1).Render(statusLine + m.table.View())
}

// Messages

type productsLoadedMsg struct {
	items []api.Product
	err   error
}

func (m ProductsModel) loadCmd() tea.Cmd {
	client := m.client

	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		items, err := client.ListProducts(ctx)

		return productsLoadedMsg{items: items, err: err}
	}
}
