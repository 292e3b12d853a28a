// Package pdf implementa el renderizado del documento de factura con Maroto v2.
//
// Layout de la página A4, de arriba hacia abajo y en orden fijo:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  INVOICE  (título, color de acento según estilo)            │
//	│  INVOICE NO. + fecha de emisión   │   DUE DATE              │
//	│  FROM (nombre, email?, dirección?) │ BILL TO (ídem)         │
//	│  TABLA: Description | Qty | Rate | Amount                   │
//	│  Subtotal / Discount (solo si > 0) / Tax                    │
//	│  ───────────────  Total (grande, acento)                    │
//	│  Notes (solo si hay notas)                                  │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/invoice-bot/internal/domain/billing"
	"github.com/jhoicas/invoice-bot/internal/domain/entity"
)

// ── Paletas por estilo ────────────────────────────────────────────────────────

var (
	colorAccentBlue = &props.Color{Red: 29, Green: 78, Blue: 216}
	colorBlack      = &props.Color{Red: 0, Green: 0, Blue: 0}
	colorGray       = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorNotesGray  = &props.Color{Red: 84, Green: 84, Blue: 84}

	bgLightBlue = &props.Color{Red: 239, Green: 246, Blue: 255}
	bgLightGray = &props.Color{Red: 245, Green: 245, Blue: 245}
)

// palette colores de acento y fondo según el estilo elegido.
func palette(style entity.Style) (accent, background *props.Color) {
	if style == entity.StyleMonochrome {
		return colorBlack, bgLightGray
	}
	return colorAccentBlue, bgLightBlue
}

// ── Renderer ──────────────────────────────────────────────────────────────────

// MarotoInvoiceRenderer implementa billing.InvoicePDFRenderer usando Maroto v2.
type MarotoInvoiceRenderer struct{}

// NewMarotoInvoiceRenderer construye el renderizador.
func NewMarotoInvoiceRenderer() *MarotoInvoiceRenderer { return &MarotoInvoiceRenderer{} }

// Render genera el PDF de un registro completo y devuelve sus bytes.
func (r *MarotoInvoiceRenderer) Render(_ context.Context, rec *entity.InvoiceRecord) ([]byte, error) {
	accent, background := palette(rec.Style)

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(20).WithRightMargin(20).
		WithTopMargin(20).WithBottomMargin(20).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 10}).
		WithTitle("Invoice "+rec.InvoiceNumber, true).
		WithAuthor(rec.Seller.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(titleRow(accent))
	m.AddRows(metadataRows(rec)...)
	m.AddRows(partiesRow(rec))
	m.AddRows(itemsHeaderRow(background))
	m.AddRows(itemRows(rec)...)
	m.AddRows(totalsRows(rec)...)
	m.AddRows(totalRow(rec, accent)...)
	m.AddRows(notesRows(rec)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// titleRow el encabezado fijo "INVOICE" en el color de acento.
func titleRow(accent *props.Color) core.Row {
	return row.New(22).Add(
		col.New(12).Add(
			text.New("INVOICE", props.Text{
				Style: fontstyle.Bold, Size: 32, Color: accent, Top: 2,
			}),
		),
	)
}

// metadataRows número de factura + fecha de emisión en una fila, vencimiento
// en una posterior; la columna de fechas va alineada a la derecha.
func metadataRows(rec *entity.InvoiceRecord) []core.Row {
	label := func(s string, a align.Type) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Color: colorGray, Align: a})
	}
	value := func(s string, a align.Type) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 12, Top: 5, Align: a})
	}

	return []core.Row{
		row.New(12).Add(
			col.New(6).Add(
				label("INVOICE NO.", align.Left),
				value(rec.InvoiceNumber, align.Left),
			),
			col.New(6).Add(
				label("DATE", align.Right),
				value(formatDate(rec.IssueDate), align.Right),
			),
		),
		row.New(12).Add(
			col.New(6),
			col.New(6).Add(
				label("DUE DATE", align.Right),
				value(formatDate(rec.DueDate), align.Right),
			),
		),
	}
}

// partiesRow paneles FROM y BILL TO lado a lado. Las líneas opcionales
// omitidas no dejan filas en blanco: cada línea presente baja el offset.
func partiesRow(rec *entity.InvoiceRecord) core.Row {
	return row.New(30).Add(
		partyCol("FROM", rec.Seller),
		partyCol("BILL TO", rec.Buyer),
	)
}

func partyCol(header string, p entity.Party) core.Col {
	components := []core.Component{
		text.New(header, props.Text{Style: fontstyle.Bold, Size: 9, Color: colorGray, Top: 2}),
		text.New(p.Name, props.Text{Style: fontstyle.Bold, Size: 12, Top: 7}),
	}
	top := 14.0
	if p.Email != "" {
		components = append(components, text.New(p.Email, props.Text{Size: 10, Top: top}))
		top += 5
	}
	if p.Address != "" {
		components = append(components, text.New(p.Address, props.Text{Size: 10, Top: top}))
	}
	return col.New(6).Add(components...)
}

// itemsHeaderRow cabecera de la tabla de líneas sobre el fondo del estilo.
func itemsHeaderRow(background *props.Color) core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: a, Top: 2, Left: 2, Right: 2,
		}))
	}
	return row.New(9).WithStyle(&props.Cell{BackgroundColor: background}).Add(
		h("Description", 6, align.Left),
		h("Qty", 2, align.Center),
		h("Rate", 2, align.Right),
		h("Amount", 2, align.Right),
	)
}

// itemRows una fila por línea, en orden de inserción. Amount = qty × rate.
func itemRows(rec *entity.InvoiceRecord) []core.Row {
	code := rec.Currency.Code
	rows := make([]core.Row, 0, len(rec.LineItems))
	for _, it := range rec.LineItems {
		rows = append(rows, row.New(8).Add(
			col.New(6).Add(text.New(it.Description, props.Text{
				Size: 10, Align: align.Left, Top: 1.5, Left: 2,
			})),
			col.New(2).Add(text.New(fmt.Sprintf("%d", it.Quantity), props.Text{
				Size: 10, Align: align.Center, Top: 1.5,
			})),
			col.New(2).Add(text.New(billing.FormatAmount(it.UnitRate, code), props.Text{
				Size: 10, Align: align.Right, Top: 1.5, Right: 2,
			})),
			col.New(2).Add(text.New(billing.FormatAmount(it.Amount(), code), props.Text{
				Size: 10, Align: align.Right, Top: 1.5, Right: 2,
			})),
		))
	}
	return rows
}

// totalsRows Subtotal siempre; Discount solo si el porcentaje es > 0, con el
// monto en negativo; Tax siempre, con el monto en positivo.
func totalsRows(rec *entity.InvoiceRecord) []core.Row {
	tot := billing.RecordTotals(rec)
	code := rec.Currency.Code

	pair := func(label, value string) core.Row {
		return row.New(6).Add(
			col.New(6),
			col.New(3).Add(text.New(label, props.Text{
				Size: 10, Align: align.Right, Right: 2,
			})),
			col.New(3).Add(text.New(value, props.Text{
				Size: 10, Align: align.Right, Right: 2,
			})),
		)
	}

	rows := []core.Row{
		row.New(3),
		pair("Subtotal", billing.FormatAmount(tot.Subtotal, code)),
	}
	if rec.DiscountPercent.IsPositive() {
		rows = append(rows, pair(
			fmt.Sprintf("Discount (%s%%)", rec.DiscountPercent.String()),
			"-"+billing.FormatAmount(tot.DiscountAmount, code),
		))
	}
	rows = append(rows, pair(
		fmt.Sprintf("Tax (%s%%)", rec.TaxPercent.String()),
		"+"+billing.FormatAmount(tot.TaxAmount, code),
	))
	return rows
}

// totalRow el total final: regla de acento encima, tipografía mayor y en el
// color de acento. Se muestra siempre, también cuando vale cero.
func totalRow(rec *entity.InvoiceRecord, accent *props.Color) []core.Row {
	tot := billing.RecordTotals(rec)
	return []core.Row{
		row.New(2).Add(
			col.New(6),
			line.NewCol(6, props.Line{Color: accent, Thickness: 0.8, SizePercent: 100}),
		),
		row.New(10).Add(
			col.New(4),
			col.New(4).Add(text.New("Total", props.Text{
				Style: fontstyle.Bold, Size: 14, Align: align.Right, Color: accent, Top: 1, Right: 2,
			})),
			col.New(4).Add(text.New(billing.FormatAmount(tot.Total, rec.Currency.Code), props.Text{
				Style: fontstyle.Bold, Size: 14, Align: align.Right, Color: accent, Top: 1, Right: 2,
			})),
		),
	}
}

// notesRows bloque de notas, solo si hay notas.
func notesRows(rec *entity.InvoiceRecord) []core.Row {
	if rec.Notes == "" {
		return nil
	}
	return []core.Row{
		row.New(6),
		row.New(5).Add(col.New(12).Add(
			text.New("Notes", props.Text{Style: fontstyle.Bold, Size: 9}),
		)),
		row.New(10).Add(col.New(12).Add(
			text.New(rec.Notes, props.Text{Size: 10, Color: colorNotesGray}),
		)),
	}
}

// ── helpers ───────────────────────────────────────────────────────────────────

// formatDate fecha como "02 Jan 2006".
func formatDate(t time.Time) string {
	return t.Format("02 Jan 2006")
}
