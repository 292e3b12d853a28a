package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/jhoicas/invoice-bot/internal/domain/entity"
	"github.com/jhoicas/invoice-bot/internal/infrastructure/pdf"
)

// newSampleCmd renderiza una factura de prueba sin tocar Telegram. Sirve para
// revisar el layout del PDF en local.
func newSampleCmd() *cobra.Command {
	var out string
	var mono bool

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Genera una factura de ejemplo en disco",
		RunE: func(_ *cobra.Command, _ []string) error {
			rec := sampleRecord(mono)

			renderer := pdf.NewMarotoInvoiceRenderer()
			doc, err := renderer.Render(context.Background(), rec)
			if err != nil {
				return fmt.Errorf("renderizar ejemplo: %w", err)
			}
			if err := os.WriteFile(out, doc, 0o644); err != nil {
				return fmt.Errorf("escribir %s: %w", out, err)
			}
			fmt.Printf("PDF generado: %s (%d bytes)\n", out, len(doc))
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "invoice_sample.pdf", "ruta del PDF de salida")
	cmd.Flags().BoolVar(&mono, "mono", false, "estilo blanco y negro")
	return cmd
}

func sampleRecord(mono bool) *entity.InvoiceRecord {
	now := time.Now()
	inr, _ := entity.CurrencyByCode("INR")

	rec := entity.NewInvoiceRecord(now)
	rec.InvoiceNumber = "INV-001"
	rec.Currency = inr
	rec.Seller = entity.Party{
		Name:    "Test Company Pvt Ltd",
		Email:   "contact@testcompany.com",
		Address: "Mumbai, Maharashtra, India",
	}
	rec.Buyer = entity.Party{
		Name:    "Client Corporation",
		Email:   "client@example.com",
		Address: "Delhi, India",
	}
	rec.LineItems = []entity.LineItem{
		{Description: "Web Development", Quantity: 1, UnitRate: decimal.NewFromInt(50000)},
		{Description: "Logo Design", Quantity: 2, UnitRate: decimal.NewFromInt(5000)},
	}
	rec.TaxPercent = decimal.NewFromInt(18)
	rec.DiscountPercent = decimal.NewFromInt(10)
	rec.Notes = entity.DefaultNotes
	if mono {
		rec.Style = entity.StyleMonochrome
	}
	return rec
}
