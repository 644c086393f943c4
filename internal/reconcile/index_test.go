package reconcile_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/nioxtec/facturer/internal/api"
	"github.com/nioxtec/facturer/internal/reconcile"
)

func TestBuildIndex(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := reconcile.NewMockExpenseStore(ctrl)

	expenses := []api.Expense{
		{ID: 1, Date: "2025-09-30", BaseAmount: decimal.RequireFromString("87.61"), Description: "TGSS"},
		{ID: 2, Date: "2025-10-03", BaseAmount: decimal.RequireFromString("3.50"), Description: "COMISION"},
	}

	store.EXPECT().
		ListExpenses(gomock.Any(), api.ListExpensesParams{Limit: 500, Sort: "date", Dir: "desc"}).
		Return(expenses, nil)

	idx := reconcile.BuildIndex(context.Background(), store, 500)

	require.Len(t, idx, 2)

	got, ok := idx["2025-09-30|-87.61|TGSS"]
	require.True(t, ok)
	assert.Equal(t, 1, got.ID)
}

func TestBuildIndex_DefaultPageSize(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := reconcile.NewMockExpenseStore(ctrl)

	store.EXPECT().
		ListExpenses(gomock.Any(), api.ListExpensesParams{
			Limit: reconcile.DefaultPageSize,
			Sort:  "date",
			Dir:   "desc",
		}).
		Return(nil, nil)

	idx := reconcile.BuildIndex(context.Background(), store, 0)

	assert.Empty(t, idx)
}

func TestBuildIndex_FetchFailureDegradesToEmpty(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := reconcile.NewMockExpenseStore(ctrl)

	store.EXPECT().
		ListExpenses(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("backend down"))

	idx := reconcile.BuildIndex(context.Background(), store, 100)

	assert.NotNil(t, idx)
	assert.Empty(t, idx)
}
