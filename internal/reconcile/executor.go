package reconcile

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nioxtec/facturer/internal/api"
)

// Defaults are the session-wide values applied to every created expense.
// They come from the import form, not from the statement rows.
type Defaults struct {
	Category string
	Supplier string
	TaxRate  float64
}

// Result reports how far an execution got. Imported is accurate even when
// Execute returns an error: it counts the creates that succeeded before
// the batch was aborted.
type Result struct {
	Imported int
	Deleted  int
}

// Execute commits a plan against the store. Under the replace policy the
// superseded records are deleted first, best-effort: a failed delete is
// logged and skipped, never fatal. Creates then run strictly sequentially
// and the first failure aborts the remaining batch so the caller can drop
// back to the preview with an accurate partial count.
func Execute(ctx context.Context, store ExpenseStore, plan Plan, defaults Defaults) (Result, error) {
	var res Result

	if plan.Policy == PolicyReplace {
		for _, e := range plan.ToDelete {
			if err := store.DeleteExpense(ctx, e.ID); err != nil {
				slog.Error("failed to delete superseded expense", "id", e.ID, "error", err)
				continue
			}

			res.Deleted++
		}
	}

	for _, c := range plan.ToImport {
		_, err := store.CreateExpense(ctx, api.CreateExpenseParams{
			Date:        c.AccountingDate,
			Category:    defaults.Category,
			Description: c.Description,
			Supplier:    defaults.Supplier,
			BaseAmount:  c.AmountAbs(), // the store keeps absolute amounts
			TaxRate:     defaults.TaxRate,
			Paid:        true,
		})
		if err != nil {
			return res, fmt.Errorf("importing row %q (%s): %w", c.Description, c.AccountingDate, err)
		}

		res.Imported++
	}

	return res, nil
}
