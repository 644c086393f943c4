package bankcsv_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nioxtec/facturer/internal/bankcsv"
)

const validHeader = "Fecha ctble;Fecha valor;Concepto;Importe;Moneda;Saldo;Moneda;Concepto ampliado"

func TestTokenize_EmptyInput(t *testing.T) {
	for _, input := range []string{"", "\n\n", "  \n \r\n"} {
		result := bankcsv.Tokenize(input)

		assert.Empty(t, result.Rows)
		assert.Equal(t, []string{"CSV vacío"}, result.Errors)
	}
}

func TestTokenize_DelimiterSniffing(t *testing.T) {
	tests := []struct {
		name   string
		header string
		row    string
		want   []string
	}{
		{
			name:   "semicolon",
			header: "a;b;c;d",
			row:    "1;2;3;4",
			want:   []string{"1", "2", "3", "4", "", "", "", ""},
		},
		{
			name:   "comma",
			header: "a,b,c,d",
			row:    "1,2,3,4",
			want:   []string{"1", "2", "3", "4", "", "", "", ""},
		},
		{
			name:   "tab",
			header: "a\tb\tc\td",
			row:    "1\t2\t3\t4",
			want:   []string{"1", "2", "3", "4", "", "", "", ""},
		},
		{
			name:   "tie resolves to comma first",
			header: "a,b;c,d;e",
			row:    "1,2;3,4;5",
			want:   []string{"1", "2;3", "4;5", "", "", "", "", ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := bankcsv.Tokenize(tt.header + "\n" + tt.row)

			require.Len(t, result.Rows, 1)
			assert.Equal(t, tt.want, result.Rows[0])
		})
	}
}

func TestTokenize_QuotedFields(t *testing.T) {
	csv := validHeader + "\n" +
		`30/09/2025;30/09/2025;"TRANSFERENCIA; URGENTE";-10,00;EUR;100,00;EUR;"dijo ""hola"""`

	result := bankcsv.Tokenize(csv)

	require.Len(t, result.Rows, 1)
	assert.Equal(t, "TRANSFERENCIA; URGENTE", result.Rows[0][2])
	assert.Equal(t, `dijo "hola"`, result.Rows[0][7])
}

func TestTokenize_HeaderValidation(t *testing.T) {
	t.Run("valid header passes", func(t *testing.T) {
		result := bankcsv.Tokenize(validHeader + "\n1;2;3;4;5;6;7;8")
		assert.Empty(t, result.Errors)
	})

	t.Run("case-insensitive prefixes", func(t *testing.T) {
		header := "FECHA CONTABLE;FECHA VALOR;CONCEPTO;IMPORTE;MONEDA;SALDO;MONEDA"
		result := bankcsv.Tokenize(header + "\n1;2;3;4;5;6;7")
		assert.Empty(t, result.Errors)
	})

	t.Run("wrong column order flagged", func(t *testing.T) {
		header := "Concepto;Fecha;Fecha;Importe;Moneda;Saldo;Moneda"
		result := bankcsv.Tokenize(header + "\n1;2;3;4;5;6;7")
		assert.Equal(t, []string{"Encabezados inválidos o faltantes"}, result.Errors)
	})

	t.Run("too few columns flagged", func(t *testing.T) {
		result := bankcsv.Tokenize("Fecha;Fecha;Concepto;Importe;Moneda;Saldo\n1;2;3;4;5;6")
		assert.Equal(t, []string{"Encabezados inválidos o faltantes"}, result.Errors)
	})

	t.Run("bad header is non-fatal", func(t *testing.T) {
		result := bankcsv.Tokenize("x;y\n1;2")

		assert.NotEmpty(t, result.Errors)
		require.Len(t, result.Rows, 1)
		assert.Len(t, result.Rows[0], 8)
	})
}

func TestTokenize_PadsAndSkipsBlankLines(t *testing.T) {
	csv := validHeader + "\n\n1;2;3\n\n\n4;5;6;7;8;9;10;11\n"

	result := bankcsv.Tokenize(csv)

	require.Len(t, result.Rows, 2)
	assert.Equal(t, []string{"1", "2", "3", "", "", "", "", ""}, result.Rows[0])
	assert.Equal(t, []string{"4", "5", "6", "7", "8", "9", "10", "11"}, result.Rows[1])
}

func TestTokenize_StripsBOM(t *testing.T) {
	result := bankcsv.Tokenize("\uFEFF" + validHeader + "\n1;2;3;4;5;6;7;8")

	assert.Empty(t, result.Errors)
	require.Len(t, result.Rows, 1)
}

func TestTokenize_CRLF(t *testing.T) {
	result := bankcsv.Tokenize(validHeader + "\r\n1;2;3;4;5;6;7;8\r\n")

	assert.Empty(t, result.Errors)
	require.Len(t, result.Rows, 1)
	assert.Equal(t, "8", result.Rows[0][7])
}
