package billing

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/invoice-bot/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// Totals montos calculados de la factura.
type Totals struct {
	Subtotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	TaxAmount      decimal.Decimal
	Total          decimal.Decimal
}

// ComputeTotals aplica la fórmula de totales:
//
//	subtotal       = Σ cantidad_i × tarifa_i
//	descuento      = subtotal × discountPercent / 100
//	impuesto       = (subtotal − descuento) × taxPercent / 100
//	total          = subtotal − descuento + impuesto
//
// El impuesto se calcula sobre el subtotal YA descontado, no sobre el bruto.
func ComputeTotals(items []entity.LineItem, taxPercent, discountPercent decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(it.Amount())
	}

	discountAmount := subtotal.Mul(discountPercent).Div(hundred)
	taxAmount := subtotal.Sub(discountAmount).Mul(taxPercent).Div(hundred)

	return Totals{
		Subtotal:       subtotal,
		DiscountAmount: discountAmount,
		TaxAmount:      taxAmount,
		Total:          subtotal.Sub(discountAmount).Add(taxAmount),
	}
}

// RecordTotals calcula los totales de un registro completo.
func RecordTotals(rec *entity.InvoiceRecord) Totals {
	return ComputeTotals(rec.LineItems, rec.TaxPercent, rec.DiscountPercent)
}
