package reconcile

import (
	"github.com/nioxtec/facturer/internal/api"
	"github.com/nioxtec/facturer/internal/bankcsv"
)

// Policy is the user-selected handling for rows whose signature already
// exists in the store.
type Policy string

const (
	// PolicyOmit skips duplicates and imports only unseen rows.
	PolicyOmit Policy = "omit"
	// PolicyReplace deletes the stored record and re-imports the row.
	PolicyReplace Policy = "replace"
)

// RowStatus is the user-facing classification of one row. Statuses are
// mutually exclusive and assigned in this priority order.
type RowStatus int

const (
	StatusNotExpense RowStatus = iota
	StatusHasErrors
	StatusDuplicateSkip
	StatusDuplicateReplace
	StatusWillImport
)

func (s RowStatus) String() string {
	switch s {
	case StatusNotExpense:
		return "no es gasto"
	case StatusHasErrors:
		return "con errores"
	case StatusDuplicateSkip:
		return "duplicado (se omitirá)"
	case StatusDuplicateReplace:
		return "duplicado (se reemplazará)"
	case StatusWillImport:
		return "se importará"
	}

	return "desconocido"
}

// PlannedRow pairs a candidate with its decided status. Existing is set
// for both duplicate statuses.
type PlannedRow struct {
	Candidate bankcsv.Candidate
	Status    RowStatus
	Existing  *api.Expense
}

// Plan is the full reconciliation decision for one statement file.
type Plan struct {
	Policy   Policy
	Rows     []PlannedRow
	Eligible int // importable candidates, before duplicate handling

	ToImport []bankcsv.Candidate
	ToDelete []api.Expense // superseded records, replace policy only
}

// AllDuplicates reports the "everything already imported" outcome: there
// were eligible rows but the omit policy excluded every one of them. The
// UI surfaces this explicitly instead of a silent no-op.
func (p Plan) AllDuplicates() bool {
	return p.Eligible > 0 && len(p.ToImport) == 0
}

// Build classifies every candidate against the index under the given
// policy and collects the import and delete sets.
func Build(candidates []bankcsv.Candidate, idx Index, policy Policy) Plan {
	plan := Plan{
		Policy: policy,
		Rows:   make([]PlannedRow, 0, len(candidates)),
	}

	for _, c := range candidates {
		row := PlannedRow{Candidate: c}

		switch {
		case !c.IsExpense():
			row.Status = StatusNotExpense
		case len(c.Errors) > 0:
			row.Status = StatusHasErrors
		default:
			plan.Eligible++

			existing, dup := idx[FromCandidate(c)]
			switch {
			case dup && policy == PolicyReplace:
				row.Status = StatusDuplicateReplace
				row.Existing = &existing
				plan.ToDelete = append(plan.ToDelete, existing)
				plan.ToImport = append(plan.ToImport, c)
			case dup:
				row.Status = StatusDuplicateSkip
				row.Existing = &existing
			default:
				row.Status = StatusWillImport
				plan.ToImport = append(plan.ToImport, c)
			}
		}

		plan.Rows = append(plan.Rows, row)
	}

	return plan
}
