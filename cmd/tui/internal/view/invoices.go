package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/nioxtec/facturer/internal/api"
	"github.com/nioxtec/facturer/internal/bankcsv"
	"github.com/nioxtec/facturer/internal/invoice"
)

type invoicesState int

const (
	invoicesStateBrowse invoicesState = iota
	invoicesStateCreate
)

type InvoicesModel struct {
	CommonModel
	client *api.Client

	state     invoicesState
	table     table.Model
	invoices  []api.Invoice
	customers []api.Customer
	form      *huh.Form
	loading   bool
	status    string

	// Form bindings
	formClientID  int
	formType      api.DocType
	formDesc      string
	formUnits     string
	formUnitPrice string
	formIVA       string
	formIRPF      string
}

func NewInvoicesModel(client *api.Client) InvoicesModel {
	columns := []table.Column{
		{Title: "Número", Width: 12},
		{Title: "Fecha", Width: 10},
		{Title: "Tipo", Width: 9},
		{Title: "Base", Width: 10},
		{Title: "IVA", Width: 9},
		{Title: "Total", Width: 10},
		{Title: "Pagada", Width: 7},
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

	return InvoicesModel{client: client, table: t}
}

func (m InvoicesModel) Title() string { return "Facturas" }

func (m InvoicesModel) ShortHelp() string {
	if m.state == invoicesStateCreate {
		return "Enter/Tab: navegar formulario | Esc: cancelar"
	}

	return "Esc: volver | a: nueva | r: recargar"
}

func (m InvoicesModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m InvoicesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case invoicesLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.invoices = msg.invoices
		m.customers = msg.customers
		m.refreshTable()

		return m, nil

	case invoiceSavedMsg:
		m.state = invoicesStateBrowse
		m.form = nil

		if msg.err != nil {
			m.status = fmt.Sprintf("Error al guardar: %v", msg.err)
			return m, nil
		}

		m.status = fmt.Sprintf("Factura %s creada (total %s).", msg.number, msg.total)

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case invoicesStateBrowse:
		return m.updateBrowse(msg)
	case invoicesStateCreate:
		return m.updateCreate(msg)
	}

	return m, nil
}

func (m InvoicesModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "a":
			if len(m.customers) == 0 {
				m.status = "No hay clientes; crea uno antes de facturar."
				return m, nil
			}

			return m.startCreate()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m InvoicesModel) startCreate() (tea.Model, tea.Cmd) {
	m.formClientID = m.customers[0].ID
	m.formType = api.DocInvoice
	m.formDesc = ""
	m.formUnits = "1"
	m.formUnitPrice = ""
	m.formIVA = "21"
	m.formIRPF = "0"

	clientOptions := make([]huh.Option[int], 0, len(m.customers))
	for _, c := range m.customers {
		clientOptions = append(clientOptions, huh.NewOption(c.Name, c.ID))
	}

	amountValidator := func(s string) error {
		if _, ok := bankcsv.ParseAmount(s); !ok {
			return fmt.Errorf("número inválido")
		}
		return nil
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Key("client").
				Title("Cliente").
				Options(clientOptions...).
				Value(&m.formClientID),

			huh.NewSelect[api.DocType]().
				Key("type").
				Title("Tipo").
				Options(
					huh.NewOption("Factura", api.DocInvoice),
					huh.NewOption("Proforma", api.DocProforma),
				).
				Value(&m.formType),

			huh.NewInput().
				Key("desc").
				Title("Concepto").
				Value(&m.formDesc).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("el concepto es obligatorio")
					}
					return nil
				}),

			huh.NewInput().Key("units").Title("Unidades").Value(&m.formUnits).Validate(amountValidator),
			huh.NewInput().Key("unit_price").Title("Precio unitario").Value(&m.formUnitPrice).Validate(amountValidator),
			huh.NewInput().Key("iva").Title("IVA (%)").Value(&m.formIVA).Validate(amountValidator),
			huh.NewInput().Key("irpf").Title("IRPF (%)").Value(&m.formIRPF).Validate(amountValidator),
		),
	).WithWidth(60).WithShowHelp(false)

	m.state = invoicesStateCreate

	return m, m.form.Init()
}

func (m InvoicesModel) updateCreate(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = invoicesStateBrowse
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

// formLine builds the single line item from the form bindings. The zero
// value comes back when a numeric field does not parse; validators make
// that unreachable through the form itself.
func (m InvoicesModel) formLine() invoice.Line {
	units, _ := bankcsv.ParseAmount(m.formUnits)
	price, _ := bankcsv.ParseAmount(m.formUnitPrice)

	return invoice.Line{
		Description: strings.TrimSpace(m.formDesc),
		Units:       units,
		UnitPrice:   price,
	}
}

func (m InvoicesModel) formTotals() invoice.Totals {
	iva, _ := bankcsv.ParseAmount(m.formIVA)
	irpf, _ := bankcsv.ParseAmount(m.formIRPF)

	return invoice.Compute([]invoice.Line{m.formLine()}, iva, irpf)
}

func (m *InvoicesModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.invoices))

	for _, inv := range m.invoices {
		paid := "no"
		if inv.Paid {
			paid = "sí"
		}

		rows = append(rows, table.Row{
			inv.Number,
			inv.Date,
			string(inv.Type),
			inv.Base.StringFixed(2),
			inv.IVA.StringFixed(2),
			inv.Total.StringFixed(2),
			paid,
		})
	}

	m.table.SetRows(rows)
	m.table.SetCursor(0)
}

func (m InvoicesModel) View() string {
	switch m.state {
	case invoicesStateBrowse:
		if m.loading {
			return lipgloss.NewStyle().Padding(2).Render("Cargando facturas...")
		}

		statusLine := ""
		if m.status != "" {
			statusLine = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n"
		}

		return lipgloss.NewStyle().Padding(1).Render(statusLine + m.table.View())

	case invoicesStateCreate:
		if m.form == nil {
			return ""
		}

		return lipgloss.NewStyle().Padding(1).Render(
			m.form.View() + "\n" + m.totalsView(),
		)
	}

	return ""
}

// totalsView previews the tax breakdown live while the form is edited.
func (m InvoicesModel) totalsView() string {
	t := m.formTotals()

	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1).
		Render(fmt.Sprintf(
			"Base: %s  |  IVA: %s  |  IRPF: -%s  |  Total: %s",
			FormatMoney(t.Base), FormatMoney(t.IVA), FormatMoney(t.IRPF), FormatMoney(t.Total),
		))
}

// Messages

type invoicesLoadedMsg struct {
	invoices  []api.Invoice
	customers []api.Customer
	err       error
}

type invoiceSavedMsg struct {
	number string
	total  string
	err    error
}

func (m InvoicesModel) loadCmd() tea.Cmd {
	client := m.client

	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		invoices, err := client.ListInvoices(ctx, api.ListInvoicesParams{Limit: 100})
		if err != nil {
			return invoicesLoadedMsg{err: err}
		}

		customers, err := client.ListCustomers(ctx)
		if err != nil {
			return invoicesLoadedMsg{err: err}
		}

		return invoicesLoadedMsg{invoices: invoices, customers: customers}
	}
}

func (m InvoicesModel) saveCmd() tea.Cmd {
	client := m.client
	line := m.formLine()

	iva, _ := bankcsv.ParseAmount(m.formIVA)
	irpf, _ := bankcsv.ParseAmount(m.formIRPF)

	params := api.CreateInvoiceParams{
		Date:     time.Now().Format(time.DateOnly),
		Type:     m.formType,
		ClientID: m.formClientID,
		IVARate:  toFloat(iva),
		IRPFRate: toFloat(irpf),
		Items: []api.InvoiceItem{{
			Description: line.Description,
			Units:       line.Units,
			UnitPrice:   line.UnitPrice,
			Subtotal:    line.Subtotal(),
		}},
	}

	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		created, err := client.CreateInvoice(ctx, params)
		if err != nil {
			return invoiceSavedMsg{err: err}
		}

		return invoiceSavedMsg{number: created.Number, total: FormatMoney(created.Total)}
	}
}

func toFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}
