package view

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/nioxtec/facturer/internal/api"
)

// heatScale is the lipgloss color ramp for the expense heatmap, from
// no activity to heaviest.
var heatScale = []lipgloss.Color{"236", "22", "28", "34", "40", "46"}

var weekdayLabels = []string{"Lun", "Mar", "Mié", "Jue", "Vie", "Sáb", "Dom"}

type ReportsModel struct {
	CommonModel
	client *api.Client

	year    int
	months  []api.MonthSummary
	cells   []api.HeatmapCell
	loading bool
	status  string
}

func NewReportsModel(client *api.Client) ReportsModel {
	return ReportsModel{client: client, year: time.Now().Year()}
}

func (m ReportsModel) Title() string { return "Informes" }

func (m ReportsModel) ShortHelp() string { return "Esc: volver | ←/→: año | r: recargar" }

func (m ReportsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m ReportsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case reportsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.months = msg.months
		m.cells = msg.cells
		m.status = ""

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "left":
			m.year--
			m.loading = true

			return m, m.loadCmd()
		case "right":
			if m.year < time.Now().Year() {
				m.year++
				m.loading = true

				return m, m.loadCmd()
			}
		}
	}

	return m, nil
}

func (m ReportsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Cargando informes de %d...", m.year))
	}

	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("Resumen %d", m.year)))
	b.WriteString("\n\n")
	b.WriteString(m.monthsView())
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Bold(true).Render("Mapa de gasto (día × hora)"))
	b.WriteString("\n\n")
	b.WriteString(m.heatmapView())

	if m.status != "" {
		b.WriteString("\n" + lipgloss.NewStyle().Faint(true).Render(m.status))
	}

	return lipgloss.NewStyle().Padding(1).Render(b.String())
}

func (m ReportsModel) monthsView() string {
	if len(m.months) == 0 {
		return lipgloss.NewStyle().Faint(true).Render("Sin datos.") + "\n"
	}

	var (
		b     strings.Builder
		total api.MonthSummary
	)

	b.WriteString(fmt.Sprintf("%-9s %12s %12s %12s\n", "Mes", "Ingresos", "Gastos", "Neto"))

	for _, ms := range m.months {
		b.WriteString(fmt.Sprintf("%-9s %12s %12s %12s\n",
			ms.Month, ms.Income.StringFixed(2), ms.Expenses.StringFixed(2), colorNet(ms.Net)))

		total.Income = total.Income.Add(ms.Income)
		total.Expenses = total.Expenses.Add(ms.Expenses)
		total.Net = total.Net.Add(ms.Net)
	}

	b.WriteString(fmt.Sprintf("%-9s %12s %12s %12s\n",
		"Total", total.Income.StringFixed(2), total.Expenses.StringFixed(2), colorNet(total.Net)))

	return b.String()
}

func colorNet(net decimal.Decimal) string {
	color := lipgloss.Color("46")
	if net.IsNegative() {
		color = lipgloss.Color("196")
	}

	return lipgloss.NewStyle().Foreground(color).Render(net.StringFixed(2))
}

// heatmapView renders a 7×24 grid, one block per weekday/hour bucket,
// shaded by that bucket's share of the maximum.
func (m ReportsModel) heatmapView() string {
	if len(m.cells) == 0 {
		return lipgloss.NewStyle().Faint(true).Render("Sin datos.")
	}

	grid := map[[2]int]decimal.Decimal{}
	max := decimal.Zero

	for _, c := range m.cells {
		if c.Weekday < 0 || c.Weekday > 6 || c.Hour < 0 || c.Hour > 23 {
			continue
		}

		grid[[2]int{c.Weekday, c.Hour}] = c.Total

		if c.Total.GreaterThan(max) {
			max = c.Total
		}
	}

	var b strings.Builder

	b.WriteString("     ")

	for hour := 0; hour < 24; hour += 3 {
		b.WriteString(fmt.Sprintf("%-6d", hour))
	}

	b.WriteString("\n")

	for day := 0; day < 7; day++ {
		b.WriteString(fmt.Sprintf("%-4s ", weekdayLabels[day]))

		for hour := 0; hour < 24; hour++ {
			b.WriteString(heatBlock(grid[[2]int{day, hour}], max))
		}

		b.WriteString("\n")
	}

	return b.String()
}

func heatBlock(value, max decimal.Decimal) string {
	idx := 0

	if max.IsPositive() && value.IsPositive() {
		// Map the bucket's share of the maximum onto the ramp, keeping
		// index 0 for truly empty buckets.
		share, _ := value.Div(max).Float64()

		idx = 1 + int(share*float64(len(heatScale)-2))
		if idx >= len(heatScale) {
			idx = len(heatScale) - 1
		}
	}

	return lipgloss.NewStyle().Foreground(heatScale[idx]).Render("██")
}

// Messages

type reportsLoadedMsg struct {
	months []api.MonthSummary
	cells  []api.HeatmapCell
	err    error
}

func (m ReportsModel) loadCmd() tea.Cmd {
	client := m.client
	year := m.year

	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		months, err := client.ReportSummary(ctx, year)
		if err != nil {
			return reportsLoadedMsg{err: err}
		}

		cells, err := client.ReportHeatmap(ctx, year)
		if err != nil {
			return reportsLoadedMsg{err: err}
		}

		return reportsLoadedMsg{months: months, cells: cells}
	}
}
