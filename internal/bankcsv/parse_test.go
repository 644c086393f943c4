package bankcsv_test

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nioxtec/facturer/internal/bankcsv"
)

func TestParseRow_Expense(t *testing.T) {
	row := []string{
		"30/09/2025",
		"30/09/2025",
		"052107281319  TGSS.   COTIZACION 005",
		"-87,61",
		"EUR",
		"1000,00",
		"EUR",
		"RECIBO SEGURIDAD SOCIAL",
	}

	c := bankcsv.ParseRow(row)

	assert.Empty(t, c.Errors)
	assert.Equal(t, "2025-09-30", c.AccountingDate)
	assert.Equal(t, "2025-09-30", c.ValueDate)
	assert.Equal(t, "052107281319 TGSS. COTIZACION 005", c.Description)
	assert.Equal(t, "RECIBO SEGURIDAD SOCIAL", c.ExtendedDescription)

	require.NotNil(t, c.Amount)
	assert.Equal(t, "-87.61", c.Amount.StringFixed(2))
	require.NotNil(t, c.Balance)
	assert.Equal(t, "1000.00", c.Balance.StringFixed(2))

	assert.True(t, c.IsExpense())
	assert.True(t, c.Importable())
	assert.Equal(t, "87.61", c.AmountAbs().StringFixed(2))
}

func TestParseRow_IncomeIsNotExpense(t *testing.T) {
	row := []string{"01/10/2025", "01/10/2025", "TRANSFERENCIA RECIBIDA", "50,00", "EUR", "1050,00", "EUR", ""}

	c := bankcsv.ParseRow(row)

	assert.Empty(t, c.Errors)
	assert.False(t, c.IsExpense())
	assert.False(t, c.Importable())
}

func TestParseRow_Errors(t *testing.T) {
	tests := []struct {
		name string
		row  []string
		want []string
	}{
		{
			name: "bad amount",
			row:  []string{"30/09/2025", "30/09/2025", "X", "abc", "EUR", "1,00", "EUR", ""},
			want: []string{"Importe inválido"},
		},
		{
			name: "bad accounting date",
			row:  []string{"31/02/2025", "30/09/2025", "X", "-1,00", "EUR", "1,00", "EUR", ""},
			want: []string{"Fecha ctble inválida"},
		},
		{
			name: "bad value date",
			row:  []string{"30/09/2025", "", "X", "-1,00", "EUR", "1,00", "EUR", ""},
			want: []string{"Fecha valor inválida"},
		},
		{
			name: "foreign amount currency",
			row:  []string{"30/09/2025", "30/09/2025", "X", "-1,00", "USD", "1,00", "EUR", ""},
			want: []string{"Moneda debe ser EUR"},
		},
		{
			name: "foreign balance currency",
			row:  []string{"30/09/2025", "30/09/2025", "X", "-1,00", "EUR", "1,00", "GBP", ""},
			want: []string{"Moneda debe ser EUR"},
		},
		{
			name: "errors accumulate",
			row:  []string{"bad", "bad", "X", "bad", "", "1,00", "", ""},
			want: []string{"Importe inválido", "Fecha ctble inválida", "Fecha valor inválida", "Moneda debe ser EUR"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := bankcsv.ParseRow(tt.row)

			assert.Equal(t, tt.want, c.Errors)
			assert.False(t, c.Importable())
		})
	}
}

func TestParseRow_NormalizesCurrencyCase(t *testing.T) {
	row := []string{"30/09/2025", "30/09/2025", "X", "-1,00", " eur ", "1,00", "Eur", ""}

	c := bankcsv.ParseRow(row)

	assert.Empty(t, c.Errors)
	assert.Equal(t, "EUR", c.AmountCurrency)
	assert.Equal(t, "EUR", c.BalanceCurrency)
}

func TestParseRow_PadsShortRows(t *testing.T) {
	c := bankcsv.ParseRow([]string{"30/09/2025", "30/09/2025", "X", "-1,00", "EUR"})

	assert.Contains(t, c.Errors, "Moneda debe ser EUR")
	assert.Empty(t, c.ExtendedDescription)
}

func TestParse_EndToEnd(t *testing.T) {
	csv := "Fecha ctble;Fecha valor;Concepto;Importe;Moneda;Saldo;Moneda;Concepto ampliado\n" +
		"30/09/2025;30/09/2025;052107281319 TGSS. COTIZACION 005;-87,61;EUR;1000,00;EUR;\n" +
		"01/10/2025;01/10/2025;TRANSFERENCIA RECIBIDA;50,00;EUR;1050,00;EUR;\n" +
		"02/10/2025;02/10/2025;COMISION;-3,50;EUR;1046,50;EUR;\n"

	result, err := bankcsv.Parse(strings.NewReader(csv))

	require.NoError(t, err)
	assert.Empty(t, result.Errors)
	require.Len(t, result.Candidates, 3)

	assert.True(t, result.Candidates[0].Importable())
	assert.False(t, result.Candidates[1].Importable())
	assert.True(t, result.Candidates[2].Importable())
}

func TestParse_EmptyFile(t *testing.T) {
	result, err := bankcsv.Parse(strings.NewReader(""))

	require.NoError(t, err)
	assert.Equal(t, []string{"CSV vacío"}, result.Errors)
	assert.Empty(t, result.Candidates)
}

func TestSummarize(t *testing.T) {
	csv := "Fecha ctble;Fecha valor;Concepto;Importe;Moneda;Saldo;Moneda;Concepto ampliado\n" +
		"30/09/2025;30/09/2025;TGSS;-87,61;EUR;1000,00;EUR;\n" +
		"01/10/2025;01/10/2025;NOMINA;1500,00;EUR;2500,00;EUR;\n" +
		"15/09/2025;15/09/2025;COMISION;-3,50;EUR;900,00;EUR;\n" +
		"bad;bad;ROTA;bad;EUR;1,00;EUR;\n"

	result, err := bankcsv.Parse(strings.NewReader(csv))
	require.NoError(t, err)

	s := bankcsv.Summarize(result.Candidates)

	assert.Equal(t, 2, s.Count)
	assert.True(t, s.SumNeg.Equal(decimal.RequireFromString("-91.11")), "SumNeg = %s", s.SumNeg)
	assert.True(t, s.SumAbs.Equal(decimal.RequireFromString("91.11")), "SumAbs = %s", s.SumAbs)
	assert.Equal(t, "2025-09-15", s.MinDate)
	assert.Equal(t, "2025-09-30", s.MaxDate)
	assert.Len(t, s.Preview, 2)
}

func TestSummarize_PreviewCap(t *testing.T) {
	amount := decimal.NewFromInt(-1)

	var candidates []bankcsv.Candidate
	for i := 0; i < bankcsv.PreviewLimit+5; i++ {
		candidates = append(candidates, bankcsv.Candidate{
			AccountingDate: "2025-01-01",
			ValueDate:      "2025-01-01",
			Amount:         &amount,
		})
	}

	s := bankcsv.Summarize(candidates)

	assert.Equal(t, bankcsv.PreviewLimit+5, s.Count)
	assert.Len(t, s.Preview, bankcsv.PreviewLimit)
}
