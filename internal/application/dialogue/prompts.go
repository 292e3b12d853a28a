package dialogue

import (
	"fmt"

	"github.com/jhoicas/invoice-bot/internal/domain/billing"
	"github.com/jhoicas/invoice-bot/internal/domain/entity"
)

// IDs de callback de los botones. Son contrato con el transporte: el webhook
// los devuelve tal cual en HandleOption.
const (
	OptionNewInvoice = "new_invoice"
	OptionHelp       = "help"
	OptionContact    = "contact_us"

	currencyOptionPrefix = "curr_"

	OptionAddItem   = "add_item"
	OptionDoneItems = "done_items"

	OptionStyleColor = "style_color"
	OptionStyleBW    = "style_bw"

	OptionGenerate = "generate"
	OptionCancel   = "cancel"
)

// CurrencyOptionID arma el callback de una moneda (ej. "curr_INR").
func CurrencyOptionID(code string) string { return currencyOptionPrefix + code }

// ── Textos fijos ──────────────────────────────────────────────────────────────

const (
	msgTimeout = "⏰ Session expired due to inactivity.\n\nUse /start to create a new invoice."

	msgCancelled = "❌ Operation cancelled. Use /start to begin again."

	msgCancelledAtConfirm = "❌ Invoice generation cancelled. Use /start to create a new one."

	msgGenerating = "⏳ Generating your professional invoice PDF..."

	msgRenderFailed = "❌ Error generating PDF. Please try again with /start\n\n" +
		"If the problem persists, contact support."

	msgSent = "🎉 Invoice sent successfully!\n\nUse /start to create another invoice."

	msgUnknown = "❌ Sorry, I didn't understand that.\n\n👉 Use /start to create an invoice"

	msgUseButtons = "❌ Please use the buttons above to continue."

	MsgWelcome = "🎉 *Welcome to Invoice Generator Bot!*\n\n" +
		"Generate professional PDF invoices instantly!\n\n" +
		"✅ Multiple currencies\n" +
		"✅ Auto calculations\n" +
		"✅ Professional PDFs\n\n" +
		"Click below to start 👇"

	MsgHelp = "📚 *How to Use:*\n\n" +
		"1️⃣ Click 'Generate Invoice'\n" +
		"2️⃣ Select currency\n" +
		"3️⃣ Enter details step by step\n" +
		"4️⃣ Add items with quantity & rate\n" +
		"5️⃣ Set tax & discount\n" +
		"6️⃣ Get your PDF!\n\n" +
		"💡 *Tip:* Type 'skip' for optional fields.\n\n" +
		"Start again with /start"

	MsgContact = "📞 *Contact Us:*\n\n" +
		"For support or inquiries, reach out at:\n" +
		"✉️ Email: support@localtools.app\n" +
		"🌐 Website: https://localtools.app"
)

// WelcomeOptions menú del comando /start, previo al diálogo.
func WelcomeOptions() []Option {
	return []Option{
		{Label: "📄 Generate Invoice", ID: OptionNewInvoice},
		{Label: "📞 Contact Us", ID: OptionContact},
		{Label: "❓ How To Use", ID: OptionHelp},
	}
}

// ── Prompts por estado ────────────────────────────────────────────────────────

func promptCurrency() Prompt {
	opts := make([]Option, 0, len(entity.Currencies))
	for _, c := range entity.Currencies {
		opts = append(opts, Option{
			Label: fmt.Sprintf("%s %s", c.Symbol, c.Name),
			ID:    CurrencyOptionID(c.Code),
		})
	}
	return Prompt{Text: "💰 *Step 1: Select Currency*\n\nChoose your currency:", Options: opts}
}

func promptInvoiceNumber(c entity.Currency) Prompt {
	return Prompt{Text: fmt.Sprintf(
		"✅ Currency set to: *%s %s*\n\n📝 *Step 2: Invoice Number*\n\nEnter invoice number (e.g., INV-001):",
		c.Symbol, c.Name)}
}

func promptSellerName() Prompt {
	return Prompt{Text: "🏢 *Step 3: Your Company Details*\n\nEnter your company name:"}
}

func promptSellerEmail() Prompt {
	return Prompt{Text: "📧 Enter your company email (or type 'skip'):"}
}

func promptSellerAddress() Prompt {
	return Prompt{Text: "🏠 Enter your company address (or type 'skip'):"}
}

func promptBuyerName() Prompt {
	return Prompt{Text: "👤 *Step 4: Client Details*\n\nEnter client name:"}
}

func promptBuyerEmail() Prompt {
	return Prompt{Text: "📧 Enter client email (or type 'skip'):"}
}

func promptBuyerAddress() Prompt {
	return Prompt{Text: "🏠 Enter client address (or type 'skip'):"}
}

func promptFirstItem() Prompt {
	return Prompt{Text: "📦 *Step 5: Add Items*\n\nEnter item description:"}
}

func promptNextItem() Prompt {
	return Prompt{Text: "📦 Enter next item description:"}
}

func promptQuantity() Prompt {
	return Prompt{Text: fmt.Sprintf("🔢 Enter quantity (%d-%d):", billing.MinQuantity, billing.MaxQuantity)}
}

func promptRate() Prompt {
	return Prompt{Text: fmt.Sprintf("💵 Enter rate/price per unit (max %d):", billing.MaxRate)}
}

func promptMoreItems(count int) Prompt {
	return Prompt{
		Text: fmt.Sprintf("✅ Item added! (%d item(s) total)\n\nWant to add more items?", count),
		Options: []Option{
			{Label: "➕ Add Another Item", ID: OptionAddItem},
			{Label: "✅ Done, Continue", ID: OptionDoneItems},
		},
	}
}

func promptCapacityReached() Prompt {
	return Prompt{Text: fmt.Sprintf("❌ Maximum %d items reached. Continuing to next step...", billing.MaxLineItems)}
}

func promptTax() Prompt {
	return Prompt{Text: "💰 *Step 6: Tax & Discount*\n\nEnter tax percentage (e.g., 18 for 18%):"}
}

func promptDiscount() Prompt {
	return Prompt{Text: "💸 Enter discount percentage (0-100, or 0 for no discount):"}
}

func promptNotes() Prompt {
	return Prompt{Text: "📝 *Step 7: Notes*\n\nEnter any notes (or type 'skip'):"}
}

func promptStyle() Prompt {
	return Prompt{
		Text: "🎨 *Step 8: PDF Style*\n\nChoose PDF style:",
		Options: []Option{
			{Label: "🎨 Color PDF", ID: OptionStyleColor},
			{Label: "⚫ Black & White", ID: OptionStyleBW},
		},
	}
}

// promptConfirm resume la factura con los totales calculados y ofrece
// generar o cancelar. Usa la misma fórmula que la generación final.
func promptConfirm(rec *entity.InvoiceRecord) Prompt {
	tot := billing.RecordTotals(rec)
	code := rec.Currency.Code

	styleLabel := "Color"
	if rec.Style == entity.StyleMonochrome {
		styleLabel = "Black & White"
	}

	text := fmt.Sprintf(
		"📄 *Invoice Preview*\n\n"+
			"📋 Invoice: %s\n"+
			"💰 Currency: %s\n\n"+
			"🏢 *From:* %s\n"+
			"👤 *Bill To:* %s\n\n"+
			"📦 *Items:* %d item(s)\n\n"+
			"💵 *Summary:*\n"+
			"  Subtotal: %s\n"+
			"  Discount (%s%%): -%s\n"+
			"  Tax (%s%%): +%s\n\n"+
			"  *Total: %s*\n\n"+
			"🎨 Style: %s\n\n"+
			"Ready to generate?",
		rec.InvoiceNumber, code,
		rec.Seller.Name, rec.Buyer.Name,
		len(rec.LineItems),
		billing.FormatAmount(tot.Subtotal, code),
		rec.DiscountPercent.String(), billing.FormatAmount(tot.DiscountAmount, code),
		rec.TaxPercent.String(), billing.FormatAmount(tot.TaxAmount, code),
		billing.FormatAmount(tot.Total, code),
		styleLabel,
	)

	return Prompt{
		Text: text,
		Options: []Option{
			{Label: "✅ Generate PDF", ID: OptionGenerate},
			{Label: "❌ Cancel", ID: OptionCancel},
		},
	}
}

// errorPrompt antepone la marca de error al mensaje de validación.
func errorPrompt(msg string) Prompt {
	return Prompt{Text: "❌ " + msg}
}
