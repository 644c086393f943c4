package reconcile

import (
	"context"
	"log/slog"

	"github.com/nioxtec/facturer/internal/api"
)

// DefaultPageSize bounds the bulk fetch behind the index. Statement files
// are a few thousand rows at most, so one page is plenty.
const DefaultPageSize = 10000

// Index maps reconciliation signatures to the persisted expense they match.
// It is built once per import session and never refreshed; the session is
// short-lived and single-user.
type Index map[string]api.Expense

// BuildIndex bulk-fetches existing expenses and folds them into an Index.
// A fetch failure degrades to an empty index — duplicate detection becomes
// unavailable but the import itself must not be blocked.
func BuildIndex(ctx context.Context, store ExpenseStore, pageSize int) Index {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	items, err := store.ListExpenses(ctx, api.ListExpensesParams{
		Limit: pageSize,
		Sort:  "date",
		Dir:   "desc",
	})
	if err != nil {
		slog.Warn("existing-expense fetch failed, duplicate detection disabled", "error", err)
		return Index{}
	}

	idx := make(Index, len(items))
	for _, e := range items {
		idx[FromRecord(e)] = e
	}

	return idx
}
