package view

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nioxtec/facturer/internal/bankcsv"
	"github.com/nioxtec/facturer/internal/reconcile"
)

// importState is the import session state machine:
// select(file) → configure → planning → preview → importing → done,
// with importing → preview on partial failure. Closing the view discards
// the session; re-opening starts over at file selection.
type importState int

const (
	importStateFilePick importState = iota
	importStateConfigure
	importStatePlanning
	importStatePreview
	importStateImporting
	importStateDone
)

// ImportDefaults seeds the configure form.
type ImportDefaults struct {
	Category string
	Supplier string
	TaxRate  float64
	PageSize int
}

// ImportedMsg tells the rest of the app to refresh after a successful batch.
type ImportedMsg struct {
	Count int
}

type ImportModel struct {
	CommonModel
	store    reconcile.ExpenseStore
	defaults ImportDefaults

	state      importState
	filePicker filepicker.Model
	form       *huh.Form
	preview    table.Model

	parsed  *bankcsv.ParseResult
	summary bankcsv.Summary
	index   reconcile.Index
	plan    reconcile.Plan

	// Form field bindings
	formCategory string
	formSupplier string
	formTaxRate  string
	formPolicy   reconcile.Policy

	status string
	err    error
}

func NewImportModel(store reconcile.ExpenseStore, defaults ImportDefaults) ImportModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.AllowedTypes = []string{".csv", ".txt"}
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.SetHeight(15)

	return ImportModel{
		store:      store,
		defaults:   defaults,
		filePicker: fp,
	}
}

func (m ImportModel) Title() string { return "Importar extracto bancario" }

func (m ImportModel) ShortHelp() string {
	switch m.state {
	case importStatePreview:
		return "Enter: importar | p: cambiar política | Esc: cancelar"
	case importStateConfigure:
		return "Enter/Tab: navegar formulario | Esc: cancelar"
	}

	return "Esc: volver | Enter: seleccionar"
}

func (m ImportModel) Init() tea.Cmd {
	return m.filePicker.Init()
}

func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m.handleEsc()
		}

	case parsedMsg:
		if msg.err != nil {
			m.state = importStateDone
			m.err = msg.err
			m.status = fmt.Sprintf("Error: %v", msg.err)

			return m, nil
		}

		m.parsed = msg.result
		m.summary = bankcsv.Summarize(msg.result.Candidates)

		return m.startConfigure()

	case planMsg:
		m.index = msg.index
		m.plan = msg.plan
		m.state = importStatePreview
		m.refreshPreview()

		return m, nil

	case importDoneMsg:
		if msg.err != nil {
			// Partial failure drops back to the preview for a retry.
			m.state = importStatePreview
			m.status = fmt.Sprintf("Importadas %d de %d. Error: %v",
				msg.result.Imported, len(m.plan.ToImport), msg.err)

			return m, nil
		}

		m.state = importStateDone
		m.err = nil
		m.status = fmt.Sprintf("Importadas %d filas (%d reemplazadas).",
			msg.result.Imported, msg.result.Deleted)

		return m, func() tea.Msg { return ImportedMsg{Count: msg.result.Imported} }
	}

	switch m.state {
	case importStateFilePick:
		return m.updateFilePick(msg)
	case importStateConfigure:
		return m.updateConfigure(msg)
	case importStatePreview:
		return m.updatePreview(msg)
	}

	return m, nil
}

func (m ImportModel) handleEsc() (tea.Model, tea.Cmd) {
	switch m.state {
	case importStateFilePick:
		return m, Back
	case importStateImporting, importStatePlanning:
		// Let in-flight work finish; its message moves the state on.
		return m, nil
	}

	// Any other state restarts the session from file selection.
	m.state = importStateFilePick
	m.parsed = nil
	m.form = nil
	m.plan = reconcile.Plan{}
	m.index = nil
	m.status = ""
	m.err = nil

	return m, m.filePicker.Init()
}

func (m ImportModel) updateFilePick(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.filePicker, cmd = m.filePicker.Update(msg)

	if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
		m.status = fmt.Sprintf("Leyendo %s...", path)
		return m, parseCmd(path)
	}

	return m, cmd
}

func (m ImportModel) startConfigure() (tea.Model, tea.Cmd) {
	m.formCategory = m.defaults.Category
	m.formSupplier = m.defaults.Supplier
	m.formTaxRate = strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", m.defaults.TaxRate), "0"), ".")
	m.formPolicy = reconcile.PolicyOmit

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("category").
				Title("Categoría").
				Value(&m.formCategory).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("la categoría es obligatoria")
					}
					return nil
				}),

			huh.NewInput().
				Key("supplier").
				Title("Proveedor (opcional)").
				Value(&m.formSupplier),

			huh.NewInput().
				Key("tax_rate").
				Title("Tipo de IVA (%)").
				Value(&m.formTaxRate).
				Validate(func(s string) error {
					if _, ok := bankcsv.ParseAmount(s); !ok {
						return fmt.Errorf("porcentaje inválido")
					}
					return nil
				}),

			huh.NewSelect[reconcile.Policy]().
				Key("policy").
				Title("Duplicados").
				Options(
					huh.NewOption("Omitir duplicados", reconcile.PolicyOmit),
					huh.NewOption("Reemplazar duplicados", reconcile.PolicyReplace),
				).
				Value(&m.formPolicy),
		),
	).WithWidth(60).WithShowHelp(false)

	m.state = importStateConfigure

	return m, m.form.Init()
}

func (m ImportModel) updateConfigure(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.state = importStatePlanning
	m.status = "Consultando gastos existentes..."

	return m, m.planCmd()
}

func (m ImportModel) updatePreview(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			if len(m.plan.ToImport) == 0 {
				return m, nil
			}

			m.state = importStateImporting
			m.status = fmt.Sprintf("Importando %d filas...", len(m.plan.ToImport))

			return m, m.importCmd()
		case "p":
			// Re-plan against the same index snapshot under the other policy.
			if m.formPolicy == reconcile.PolicyOmit {
				m.formPolicy = reconcile.PolicyReplace
			} else {
				m.formPolicy = reconcile.PolicyOmit
			}

			m.plan = reconcile.Build(m.parsed.Candidates, m.index, m.formPolicy)
			m.refreshPreview()

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.preview, cmd = m.preview.Update(msg)

	return m, cmd
}

func (m *ImportModel) refreshPreview() {
	columns := []table.Column{
		{Title: "Fecha", Width: 10},
		{Title: "Importe", Width: 12},
		{Title: "Estado", Width: 26},
		{Title: "Concepto", Width: 44},
	}

	rows := make([]table.Row, 0, len(m.plan.Rows))

	for _, r := range m.plan.Rows {
		date := r.Candidate.AccountingDate
		if date == "" {
			date = "—"
		}

		amount := "—"
		if r.Candidate.Amount != nil {
			amount = r.Candidate.Amount.StringFixed(2)
		}

		status := r.Status.String()
		if r.Status == reconcile.StatusHasErrors {
			status = strings.Join(r.Candidate.Errors, "; ")
		}

		rows = append(rows, table.Row{
			date,
			amount,
			Truncate(status, 26),
			Truncate(r.Candidate.Description, 44),
		})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
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

	m.preview = t
	m.status = ""
}

func (m ImportModel) View() string {
	switch m.state {
	case importStateFilePick:
		return lipgloss.NewStyle().Padding(1).Render(
			"Selecciona el extracto (.csv):\n\n" + m.filePicker.View(),
		)

	case importStateConfigure:
		if m.form == nil {
			return ""
		}

		return lipgloss.NewStyle().Padding(1).Render(
			m.summaryView() + "\n" + m.form.View(),
		)

	case importStatePlanning, importStateImporting:
		return lipgloss.NewStyle().Padding(2).Render(m.status)

	case importStatePreview:
		return lipgloss.NewStyle().Padding(1).Render(m.previewView())

	case importStateDone:
		return m.doneView()
	}

	return ""
}

func (m ImportModel) summaryView() string {
	s := m.summary

	lines := []string{
		fmt.Sprintf("Gastos importables: %d", s.Count),
		fmt.Sprintf("Total: %s (abs %s)", s.SumNeg.StringFixed(2), s.SumAbs.StringFixed(2)),
	}

	if s.MinDate != "" {
		lines = append(lines, fmt.Sprintf("Rango: %s — %s", s.MinDate, s.MaxDate))
	}

	for _, e := range m.parsed.Errors {
		lines = append(lines, lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Render("⚠ "+e))
	}

	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}

func (m ImportModel) previewView() string {
	header := m.summaryView()

	var footer string

	switch {
	case m.plan.AllDuplicates():
		footer = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).
			Render("Todas las filas ya están importadas: no hay nada que importar con la política actual.")
	case len(m.plan.ToImport) == 0:
		footer = lipgloss.NewStyle().Faint(true).
			Render("No hay filas importables en este fichero.")
	default:
		footer = fmt.Sprintf("Se importarán %d filas (política: %s). Enter para confirmar.",
			len(m.plan.ToImport), policyLabel(m.formPolicy))
	}

	if m.status != "" {
		footer += "\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(m.status)
	}

	return header + "\n" + m.preview.View() + "\n" + footer
}

func (m ImportModel) doneView() string {
	style := lipgloss.NewStyle().Padding(2)

	color := lipgloss.Color("46")
	if m.err != nil {
		color = lipgloss.Color("196")
	}

	return style.Render(
		lipgloss.NewStyle().Foreground(color).Render(m.status) +
			"\n\n(Esc para volver)",
	)
}

func policyLabel(p reconcile.Policy) string {
	if p == reconcile.PolicyReplace {
		return "reemplazar duplicados"
	}

	return "omitir duplicados"
}

// Messages

type parsedMsg struct {
	result *bankcsv.ParseResult
	err    error
}

type planMsg struct {
	index reconcile.Index
	plan  reconcile.Plan
}

type importDoneMsg struct {
	result reconcile.Result
	err    error
}

func parseCmd(path string) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return parsedMsg{err: err}
		}
		defer f.Close()

		result, err := bankcsv.Parse(f)
		if err != nil {
			return parsedMsg{err: err}
		}

		return parsedMsg{result: result}
	}
}

func (m ImportModel) planCmd() tea.Cmd {
	candidates := m.parsed.Candidates
	store := m.store
	policy := m.formPolicy
	pageSize := m.defaults.PageSize

	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		idx := reconcile.BuildIndex(ctx, store, pageSize)

		return planMsg{index: idx, plan: reconcile.Build(candidates, idx, policy)}
	}
}

func (m ImportModel) importCmd() tea.Cmd {
	store := m.store
	plan := m.plan
	defaults := reconcile.Defaults{
		Category: strings.TrimSpace(m.formCategory),
		Supplier: strings.TrimSpace(m.formSupplier),
		TaxRate:  taxRate(m.formTaxRate),
	}

	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		result, err := reconcile.Execute(ctx, store, plan, defaults)

		return importDoneMsg{result: result, err: err}
	}
}

func taxRate(s string) float64 {
	d, ok := bankcsv.ParseAmount(s)
	if !ok {
		return 0
	}

	f, _ := d.Float64()

	return f
}
