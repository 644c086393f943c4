package contract_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/nioxtec/facturer/internal/api"
	"github.com/nioxtec/facturer/internal/contract"
)

const rentalTemplate = `CONTRATO DE RENTING

Entre NIOXTEC S.L. y {{ nombre }}, con CIF {{cif}} y domicilio en
{{direccion}}, a fecha {{fecha}}.

El cliente {{ nombre }} domicilia los pagos en la cuenta {{iban}}.`

func TestPlaceholders(t *testing.T) {
	got := contract.Placeholders(rentalTemplate)

	assert.Equal(t, []string{"nombre", "cif", "direccion", "fecha", "iban"}, got)
}

func TestPlaceholders_None(t *testing.T) {
	assert.Empty(t, contract.Placeholders("sin marcadores"))
}

func TestFill(t *testing.T) {
	filled, missing := contract.Fill(rentalTemplate, map[string]string{
		"nombre":    "Acme S.L.",
		"cif":       "B12345678",
		"direccion": "Calle Mayor 1, Madrid",
		"fecha":     "30/09/2025",
		"iban":      "ES9121000418450200051332",
	})

	assert.Empty(t, missing)
	assert.NotContains(t, filled, "{{")
	assert.Contains(t, filled, "Entre NIOXTEC S.L. y Acme S.L., con CIF B12345678")
	assert.Contains(t, filled, "El cliente Acme S.L. domicilia los pagos en la cuenta ES9121000418450200051332.")
}

func TestFill_MissingValuesStayIntact(t *testing.T) {
	filled, missing := contract.Fill("{{nombre}} / {{cif}} / {{nombre}}", map[string]string{
		"nombre": "Acme S.L.",
	})

	assert.Equal(t, []string{"cif"}, missing)
	assert.Equal(t, "Acme S.L. / {{cif}} / Acme S.L.", filled)
}

func TestCustomerFields(t *testing.T) {
	c := api.Customer{
		Name:    "Acme S.L.",
		CIF:     "B12345678",
		Email:   "admin@acme.es",
		Phone:   "600123456",
		Address: "Calle Mayor 1, Madrid",
		IBAN:    "ES9121000418450200051332",
	}

	now := time.Date(2025, time.September, 30, 12, 0, 0, 0, time.UTC)

	fields := contract.CustomerFields(c, now)

	assert.Equal(t, "Acme S.L.", fields["nombre"])
	assert.Equal(t, "B12345678", fields["cif"])
	assert.Equal(t, "admin@acme.es", fields["email"])
	assert.Equal(t, "600123456", fields["telefono"])
	assert.Equal(t, "Calle Mayor 1, Madrid", fields["direccion"])
	assert.Equal(t, "ES9121000418450200051332", fields["iban"])
	assert.Equal(t, "30/09/2025", fields["fecha"])
}
