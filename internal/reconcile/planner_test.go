package reconcile_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nioxtec/facturer/internal/api"
	"github.com/nioxtec/facturer/internal/bankcsv"
	"github.com/nioxtec/facturer/internal/reconcile"
)

func expenseCandidate(date, description, signedAmount string) bankcsv.Candidate {
	return bankcsv.Candidate{
		AccountingDate: date,
		ValueDate:      date,
		Description:    description,
		Amount:         amount(signedAmount),
	}
}

func indexOf(expenses ...api.Expense) reconcile.Index {
	idx := make(reconcile.Index, len(expenses))
	for _, e := range expenses {
		idx[reconcile.FromRecord(e)] = e
	}

	return idx
}

func TestBuild_Statuses(t *testing.T) {
	stored := api.Expense{
		ID:          7,
		Date:        "2025-09-30",
		BaseAmount:  decimal.RequireFromString("87.61"),
		Description: "TGSS",
	}

	income := expenseCandidate("2025-10-01", "NOMINA", "1500.00")
	broken := expenseCandidate("2025-10-02", "ROTA", "-1.00")
	broken.Errors = []string{"Moneda debe ser EUR"}
	duplicate := expenseCandidate("2025-09-30", "TGSS", "-87.61")
	fresh := expenseCandidate("2025-10-03", "COMISION", "-3.50")

	candidates := []bankcsv.Candidate{income, broken, duplicate, fresh}

	t.Run("omit policy", func(t *testing.T) {
		plan := reconcile.Build(candidates, indexOf(stored), reconcile.PolicyOmit)

		require.Len(t, plan.Rows, 4)
		assert.Equal(t, reconcile.StatusNotExpense, plan.Rows[0].Status)
		assert.Equal(t, reconcile.StatusHasErrors, plan.Rows[1].Status)
		assert.Equal(t, reconcile.StatusDuplicateSkip, plan.Rows[2].Status)
		assert.Equal(t, reconcile.StatusWillImport, plan.Rows[3].Status)

		require.NotNil(t, plan.Rows[2].Existing)
		assert.Equal(t, 7, plan.Rows[2].Existing.ID)

		assert.Equal(t, 2, plan.Eligible)
		require.Len(t, plan.ToImport, 1)
		assert.Equal(t, "COMISION", plan.ToImport[0].Description)
		assert.Empty(t, plan.ToDelete)
	})

	t.Run("replace policy", func(t *testing.T) {
		plan := reconcile.Build(candidates, indexOf(stored), reconcile.PolicyReplace)

		assert.Equal(t, reconcile.StatusDuplicateReplace, plan.Rows[2].Status)
		assert.Equal(t, 2, plan.Eligible)

		require.Len(t, plan.ToDelete, 1)
		assert.Equal(t, 7, plan.ToDelete[0].ID)

		require.Len(t, plan.ToImport, 2)
		assert.Equal(t, "TGSS", plan.ToImport[0].Description)
		assert.Equal(t, "COMISION", plan.ToImport[1].Description)
	})
}

// Errored rows never reach duplicate detection, even when their signature
// would match a stored record.
func TestBuild_ErrorsBeforeDuplicates(t *testing.T) {
	stored := api.Expense{
		Date:        "2025-09-30",
		BaseAmount:  decimal.RequireFromString("87.61"),
		Description: "TGSS",
	}

	c := expenseCandidate("2025-09-30", "TGSS", "-87.61")
	c.Errors = []string{"Fecha valor inválida"}

	plan := reconcile.Build([]bankcsv.Candidate{c}, indexOf(stored), reconcile.PolicyReplace)

	assert.Equal(t, reconcile.StatusHasErrors, plan.Rows[0].Status)
	assert.Zero(t, plan.Eligible)
	assert.Empty(t, plan.ToDelete)
}

func TestBuild_AllDuplicates(t *testing.T) {
	stored := api.Expense{
		Date:        "2025-09-30",
		BaseAmount:  decimal.RequireFromString("87.61"),
		Description: "TGSS",
	}

	candidates := []bankcsv.Candidate{expenseCandidate("2025-09-30", "TGSS", "-87.61")}

	t.Run("omit leaves nothing to import", func(t *testing.T) {
		plan := reconcile.Build(candidates, indexOf(stored), reconcile.PolicyOmit)

		assert.True(t, plan.AllDuplicates())
	})

	t.Run("replace re-imports everything", func(t *testing.T) {
		plan := reconcile.Build(candidates, indexOf(stored), reconcile.PolicyReplace)

		assert.False(t, plan.AllDuplicates())
	})

	t.Run("no eligible rows is not all-duplicates", func(t *testing.T) {
		plan := reconcile.Build(nil, indexOf(stored), reconcile.PolicyOmit)

		assert.False(t, plan.AllDuplicates())
	})
}

func TestBuild_EmptyIndexImportsEverything(t *testing.T) {
	candidates := []bankcsv.Candidate{
		expenseCandidate("2025-09-30", "TGSS", "-87.61"),
		expenseCandidate("2025-10-03", "COMISION", "-3.50"),
	}

	plan := reconcile.Build(candidates, reconcile.Index{}, reconcile.PolicyOmit)

	assert.Equal(t, 2, plan.Eligible)
	assert.Len(t, plan.ToImport, 2)
}

// Importing a statement and then re-importing the same file under the omit
// policy must plan zero creates: the records persisted by the first run key
// identically to the rows of the second.
func TestBuild_ReimportIsIdempotent(t *testing.T) {
	candidates := []bankcsv.Candidate{
		expenseCandidate("2025-09-30", "052107281319  TGSS.  COTIZACION 005", "-87.61"),
		expenseCandidate("2025-10-03", "COMISION MANTENIMIENTO", "-3.50"),
	}

	first := reconcile.Build(candidates, reconcile.Index{}, reconcile.PolicyOmit)
	require.Len(t, first.ToImport, 2)

	// Persist the first run the way the executor does: absolute amount,
	// normalized description.
	persisted := make([]api.Expense, len(first.ToImport))
	for i, c := range first.ToImport {
		persisted[i] = api.Expense{
			ID:          i + 1,
			Date:        c.AccountingDate,
			BaseAmount:  c.AmountAbs(),
			Description: c.Description,
		}
	}

	second := reconcile.Build(candidates, indexOf(persisted...), reconcile.PolicyOmit)

	assert.Empty(t, second.ToImport)
	assert.True(t, second.AllDuplicates())
}

func TestRowStatusString(t *testing.T) {
	assert.Equal(t, "no es gasto", reconcile.StatusNotExpense.String())
	assert.Equal(t, "con errores", reconcile.StatusHasErrors.String())
	assert.Equal(t, "duplicado (se omitirá)", reconcile.StatusDuplicateSkip.String())
	assert.Equal(t, "duplicado (se reemplazará)", reconcile.StatusDuplicateReplace.String())
	assert.Equal(t, "se importará", reconcile.StatusWillImport.String())
}
