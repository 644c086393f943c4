package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nioxtec/facturer/internal/api"
)

const expensesPageSize = 50

type ExpensesModel struct {
	CommonModel
	client *api.Client

	table    table.Model
	expenses []api.Expense
	offset   int
	loading  bool
	status   string
}

func NewExpensesModel(client *api.Client) ExpensesModel {
	columns := []table.Column{
		{Title: "Fecha", Width: 10},
		{Title: "Base", Width: 10},
		{Title: "Total", Width: 10},
		{Title: "Categoría", Width: 18},
		{Title: "Proveedor", Width: 18},
		{Title: "Concepto", Width: 40},
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

	return ExpensesModel{client: client, table: t}
}

func (m ExpensesModel) Title() string { return "Gastos" }

func (m ExpensesModel) ShortHelp() string {
	return "Esc: volver | n/p: página | x: eliminar | r: recargar"
}

func (m ExpensesModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m ExpensesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case expensesLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.expenses = msg.items
		m.status = ""
		m.refreshTable()

		return m, nil

	case expenseDeletedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error al eliminar: %v", msg.err)
			return m, nil
		}

		m.status = "Gasto eliminado."

		return m, m.loadCmd()

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "n":
			if len(m.expenses) == expensesPageSize {
				m.offset += expensesPageSize
				m.loading = true

				return m, m.loadCmd()
			}
		case "p":
			if m.offset > 0 {
				m.offset -= expensesPageSize
				if m.offset < 0 {
					m.offset = 0
				}

				m.loading = true

				return m, m.loadCmd()
			}
		case "x":
			if e, ok := m.selected(); ok {
				return m, m.deleteCmd(e.ID)
			}
		}

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m ExpensesModel) selected() (api.Expense, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.expenses) {
		return api.Expense{}, false
	}

	return m.expenses[idx], true
}

func (m *ExpensesModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.expenses))

	for _, e := range m.expenses {
		rows = append(rows, table.Row{
			e.Date,
			e.BaseAmount.StringFixed(2),
			e.Total.StringFixed(2),
			Truncate(e.Category, 18),
			Truncate(e.Supplier, 18),
			Truncate(e.Description, 40),
		})
	}

	m.table.SetRows(rows)
	m.table.SetCursor(0)
}

func (m ExpensesModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Cargando gastos...")
	}

	statusLine := ""
	if m.status != "" {
		statusLine = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n"
	}

	page := fmt.Sprintf("Página %d", m.offset/expensesPageSize+1)

	return lipgloss.NewStyle().Padding(1).Render(
		statusLine + m.table.View() + "\n" + lipgloss.NewStyle().Faint(true).Render(page),
	)
}

// Messages

type expensesLoadedMsg struct {
	items []api.Expense
	err   error
}

type expenseDeletedMsg struct {
	err error
}

func (m ExpensesModel) loadCmd() tea.Cmd {
	client := m.client
	offset := m.offset

	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		items, err := client.ListExpenses(ctx, api.ListExpensesParams{
			Limit:  expensesPageSize,
			Offset: offset,
			Sort:   "date",
			Dir:    "desc",
		})

		return expensesLoadedMsg{items: items, err: err}
	}
}

func (m ExpensesModel) deleteCmd(id int) tea.Cmd {
	client := m.client

	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		return expenseDeletedMsg{err: client.DeleteExpense(ctx, id)}
	}
}
