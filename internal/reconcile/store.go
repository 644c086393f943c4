// Package reconcile decides what happens to each parsed statement row:
// import it, skip it as a known duplicate, or replace the stored record.
package reconcile

import (
	"context"

	"github.com/nioxtec/facturer/internal/api"
)

//go:generate mockgen -source=store.go -destination=store_mock.go -package=reconcile

// ExpenseStore is the slice of the backend the import flow needs.
// *api.Client satisfies it.
type ExpenseStore interface {
	ListExpenses(ctx context.Context, p api.ListExpensesParams) ([]api.Expense, error)
	CreateExpense(ctx context.Context, p api.CreateExpenseParams) (*api.Expense, error)
	DeleteExpense(ctx context.Context, id int) error
}
