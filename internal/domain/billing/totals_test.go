package billing_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/invoice-bot/internal/domain/billing"
	"github.com/jhoicas/invoice-bot/internal/domain/entity"
)

func testNow() time.Time {
	return time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
}

func item(desc string, qty int, rate float64) entity.LineItem {
	return entity.LineItem{Description: desc, Quantity: qty, UnitRate: decimal.NewFromFloat(rate)}
}

// TestComputeTotals_VectorReferencia: 1 ítem {qty:2, rate:5000}, tax=18,
// discount=10 → subtotal=10000.00, descuento=1000.00, impuesto=1620.00,
// total=10620.00. El impuesto se aplica al subtotal descontado: sobre el bruto
// daría 1800.00 y el test fallaría.
func TestComputeTotals_VectorReferencia(t *testing.T) {
	items := []entity.LineItem{item("Consulting", 2, 5000)}

	tot := billing.ComputeTotals(items, decimal.NewFromInt(18), decimal.NewFromInt(10))

	assert.Equal(t, "10000.00", tot.Subtotal.StringFixed(2))
	assert.Equal(t, "1000.00", tot.DiscountAmount.StringFixed(2))
	assert.Equal(t, "1620.00", tot.TaxAmount.StringFixed(2),
		"el impuesto debe calcularse sobre el subtotal post-descuento")
	assert.Equal(t, "10620.00", tot.Total.StringFixed(2))
}

// TestComputeTotals_Identidad verifica total == subtotal − descuento + impuesto
// para varios juegos de porcentajes.
func TestComputeTotals_Identidad(t *testing.T) {
	items := []entity.LineItem{
		item("Design", 3, 1250.50),
		item("Hosting", 12, 99.99),
		item("Support", 1, 10000),
	}
	percents := [][2]int64{{0, 0}, {18, 0}, {0, 25}, {18, 10}, {100, 100}, {5, 50}}

	for _, p := range percents {
		tot := billing.ComputeTotals(items, decimal.NewFromInt(p[0]), decimal.NewFromInt(p[1]))
		expected := tot.Subtotal.Sub(tot.DiscountAmount).Add(tot.TaxAmount)
		assert.True(t, tot.Total.Equal(expected),
			"total inconsistente con tax=%d discount=%d: %s != %s", p[0], p[1], tot.Total, expected)
	}
}

// TestComputeTotals_SubtotalIndependienteDelOrden: el subtotal es una suma,
// reordenar los ítems no lo cambia.
func TestComputeTotals_SubtotalIndependienteDelOrden(t *testing.T) {
	a := []entity.LineItem{item("A", 2, 10), item("B", 5, 3.33), item("C", 1, 999)}
	b := []entity.LineItem{a[2], a[0], a[1]}

	ta := billing.ComputeTotals(a, decimal.Zero, decimal.Zero)
	tb := billing.ComputeTotals(b, decimal.Zero, decimal.Zero)

	assert.True(t, ta.Subtotal.Equal(tb.Subtotal))
}

func TestComputeTotals_SinItems(t *testing.T) {
	tot := billing.ComputeTotals(nil, decimal.NewFromInt(18), decimal.NewFromInt(10))
	assert.True(t, tot.Total.IsZero(), "sin ítems el total es cero")
}

func TestRecordTotals_UsaPorcentajesDelRegistro(t *testing.T) {
	rec := entity.NewInvoiceRecord(testNow())
	rec.LineItems = []entity.LineItem{item("Consulting", 2, 5000)}
	rec.TaxPercent = decimal.NewFromInt(18)
	rec.DiscountPercent = decimal.NewFromInt(10)

	tot := billing.RecordTotals(rec)
	require.Equal(t, "10620.00", tot.Total.StringFixed(2))
}
