package billing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/invoice-bot/internal/domain/billing"
)

// ──────────────────────────────────────────────────────────────────────────────
// TestFormatAmount valida la agrupación de dígitos por moneda. La numeración
// india (lakhs/crores) es parte del contrato del documento: el mismo monto se
// agrupa distinto en INR que en cualquier otra moneda.
// ──────────────────────────────────────────────────────────────────────────────

func TestFormatAmount_AgrupacionIndia(t *testing.T) {
	cases := []struct {
		amount   string
		expected string
	}{
		{"1234567.8", "INR 12,34,567.80"},
		{"12345678.9", "INR 1,23,45,678.90"},
		{"123456.78", "INR 1,23,456.78"},
		{"1234.5", "INR 1,234.50"},
		{"999", "INR 999.00"},
		{"0", "INR 0.00"},
		{"10620", "INR 10,620.00"},
	}
	for _, c := range cases {
		amt, err := decimal.NewFromString(c.amount)
		assert.NoError(t, err)
		assert.Equal(t, c.expected, billing.FormatAmount(amt, "INR"),
			"agrupación india incorrecta para %s", c.amount)
	}
}

func TestFormatAmount_AgrupacionOccidental(t *testing.T) {
	cases := []struct {
		amount   string
		code     string
		expected string
	}{
		{"1234567.8", "USD", "USD 1,234,567.80"},
		{"12345678.9", "EUR", "EUR 12,345,678.90"},
		{"1000", "GBP", "GBP 1,000.00"},
		{"999.99", "USD", "USD 999.99"},
		{"0", "USD", "USD 0.00"},
	}
	for _, c := range cases {
		amt, err := decimal.NewFromString(c.amount)
		assert.NoError(t, err)
		assert.Equal(t, c.expected, billing.FormatAmount(amt, c.code),
			"agrupación de miles incorrecta para %s %s", c.code, c.amount)
	}
}

// TestFormatAmount_MismoMontoDistintaMoneda es el vector de ida y vuelta del
// contrato: 1234567.8 agrupa distinto en INR y USD.
func TestFormatAmount_MismoMontoDistintaMoneda(t *testing.T) {
	amt := decimal.NewFromFloat(1234567.8)
	assert.Equal(t, "INR 12,34,567.80", billing.FormatAmount(amt, "INR"))
	assert.Equal(t, "USD 1,234,567.80", billing.FormatAmount(amt, "USD"))
}

func TestFormatAmount_Negativo(t *testing.T) {
	amt := decimal.NewFromInt(-1000)
	assert.Equal(t, "INR -1,000.00", billing.FormatAmount(amt, "INR"),
		"el signo debe ir delante de los dígitos agrupados")
}
