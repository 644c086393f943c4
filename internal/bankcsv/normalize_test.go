package bankcsv_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nioxtec/facturer/internal/bankcsv"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{name: "slashes four-digit year", input: "30/09/2025", want: "2025-09-30", ok: true},
		{name: "two-digit year maps to 2000s", input: "30/09/25", want: "2025-09-30", ok: true},
		{name: "single-digit day and month", input: "1/2/24", want: "2024-02-01", ok: true},
		{name: "dashes", input: "30-9-25", want: "2025-09-30", ok: true},
		{name: "dots", input: "30.09.2025", want: "2025-09-30", ok: true},
		{name: "mixed separator run", input: "30. 09. 2025", want: "2025-09-30", ok: true},
		{name: "surrounding whitespace", input: "  30/09/2025  ", want: "2025-09-30", ok: true},
		{name: "leap day on leap year", input: "29/02/24", want: "2024-02-29", ok: true},
		{name: "leap day on non-leap year", input: "29/02/23", ok: false},
		{name: "nonexistent calendar date", input: "31/02/24", ok: false},
		{name: "month out of range", input: "10/13/24", ok: false},
		{name: "day out of range", input: "32/01/24", ok: false},
		{name: "three-digit year", input: "30/09/202", ok: false},
		{name: "missing separators", input: "30092025", ok: false},
		{name: "empty", input: "", ok: false},
		{name: "garbage", input: "fecha", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := bankcsv.ParseDate(tt.input)

			if !tt.ok {
				assert.False(t, ok)
				return
			}

			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{name: "thousands dot and decimal comma", input: "1.234,56", want: "1234.56", ok: true},
		{name: "decimal comma only", input: "1234,56", want: "1234.56", ok: true},
		{name: "negative", input: "-87,61", want: "-87.61", ok: true},
		{name: "plain integer", input: "1000", want: "1000", ok: true},
		{name: "plain dot decimal", input: "12.5", want: "12.5", ok: true},
		{name: "internal whitespace", input: "1 234,56", want: "1234.56", ok: true},
		{name: "surrounding whitespace", input: "  -87,61 ", want: "-87.61", ok: true},
		{name: "multiple thousands groups", input: "1.234.567,89", want: "1234567.89", ok: true},
		{name: "letters", input: "abc", ok: false},
		{name: "empty", input: "", ok: false},
		{name: "whitespace only", input: "   ", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := bankcsv.ParseAmount(tt.input)

			if !tt.ok {
				assert.False(t, ok)
				return
			}

			require.True(t, ok)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestNormalizeText(t *testing.T) {
	assert.Equal(t, "TGSS. COTIZACION 005", bankcsv.NormalizeText("TGSS.  COTIZACION   005"))
	assert.Equal(t, "TGSS. COTIZACION 005", bankcsv.NormalizeText("  TGSS. COTIZACION 005  "))
	assert.Equal(t, "a b c", bankcsv.NormalizeText("a\tb\n c"))
	assert.Equal(t, "", bankcsv.NormalizeText("   "))
}
