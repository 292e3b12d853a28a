package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estilos de renderizado del PDF.
type Style string

const (
	StyleColor      Style = "COLOR"
	StyleMonochrome Style = "MONOCHROME"
)

// DueDays plazo de pago por defecto: vencimiento = emisión + 30 días.
const DueDays = 30

// DefaultNotes nota fija cuando el usuario omite las notas con el token skip.
const DefaultNotes = "Thank you for your business!"

// Party emisor o receptor de la factura. Email y Address vacíos significan
// "omitido explícitamente": el panel del PDF no deja filas en blanco.
type Party struct {
	Name    string
	Email   string
	Address string
}

// LineItem una línea facturable. Quantity y UnitRate se validan al momento de
// la captura; aquí ya llegan dentro de rango.
type LineItem struct {
	Description string
	Quantity    int
	UnitRate    decimal.Decimal
}

// Amount importe de la línea (cantidad × tarifa unitaria).
func (li LineItem) Amount() decimal.Decimal {
	return decimal.NewFromInt(int64(li.Quantity)).Mul(li.UnitRate)
}

// InvoiceRecord el registro que el diálogo construye paso a paso. Una vez
// confirmado se consume exactamente una vez por el renderizador y se descarta.
type InvoiceRecord struct {
	InvoiceNumber   string
	Currency        Currency
	IssueDate       time.Time
	DueDate         time.Time
	Seller          Party
	Buyer           Party
	LineItems       []LineItem
	TaxPercent      decimal.Decimal
	DiscountPercent decimal.Decimal
	Notes           string
	Style           Style
}

// NewInvoiceRecord crea un registro vacío con fechas derivadas: emisión = ahora,
// vencimiento = ahora + 30 días. El resto se llena estado a estado.
func NewInvoiceRecord(now time.Time) *InvoiceRecord {
	return &InvoiceRecord{
		IssueDate: now,
		DueDate:   now.AddDate(0, 0, DueDays),
		LineItems: make([]LineItem, 0, 4),
		Style:     StyleColor,
	}
}

// IsComplete indica si todos los campos obligatorios están poblados y hay al
// menos una línea. El renderizador lo exige antes de generar.
func (r *InvoiceRecord) IsComplete() bool {
	return r.InvoiceNumber != "" &&
		r.Currency.Code != "" &&
		r.Seller.Name != "" &&
		r.Buyer.Name != "" &&
		len(r.LineItems) > 0
}
