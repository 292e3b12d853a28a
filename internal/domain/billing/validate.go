// Package billing contiene los servicios puros del dominio de facturación:
// validación de entradas del diálogo, fórmula de totales y formateo monetario.
package billing

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/invoice-bot/internal/domain"
)

// Límites de captura. Se validan al momento de la entrada; el registro ya
// construido no se re-valida campo a campo.
const (
	MaxInvoiceNumberLen = 50
	MaxPartyNameLen     = 200
	MaxAddressLen       = 300
	MaxDescriptionLen   = 300
	MaxNotesLen         = 500
	MaxLineItems        = 50
	MinQuantity         = 1
	MaxQuantity         = 100000
	MaxRate             = 10000000
)

// SkipToken literal (case-insensitive) que deja vacío un campo opcional.
// Cualquier otra grafía ("Skip!", "skipp") se almacena literalmente.
const SkipToken = "skip"

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Sanitize normaliza la entrada de texto del usuario.
func Sanitize(text string) string {
	return strings.TrimSpace(text)
}

// IsSkip reconoce el token skip (solo coincidencia exacta, sin distinguir mayúsculas).
func IsSkip(text string) bool {
	return strings.EqualFold(strings.TrimSpace(text), SkipToken)
}

// ValidateRequiredText exige texto no vacío de longitud máxima maxLen.
func ValidateRequiredText(text, field string, maxLen int) error {
	t := Sanitize(text)
	if t == "" || len([]rune(t)) > maxLen {
		return domain.NewValidationError(
			fmt.Sprintf("Invalid %s. Please enter a valid %s (max %d characters):", field, field, maxLen))
	}
	return nil
}

// ValidateOptionalText solo limita la longitud; vacío es válido.
// label capitalizado para el mensaje, ej. "Address", "Notes".
func ValidateOptionalText(text, label string, maxLen int) error {
	if len([]rune(Sanitize(text))) > maxLen {
		return domain.NewValidationError(
			fmt.Sprintf("%s too long. Please enter a shorter %s (max %d characters):",
				label, strings.ToLower(label), maxLen))
	}
	return nil
}

// ValidateEmail exige la forma local@dominio.tld. El token skip se acepta
// aguas arriba, antes de llamar aquí.
func ValidateEmail(text string) error {
	if !emailPattern.MatchString(Sanitize(text)) {
		return domain.NewValidationError(
			"Invalid email format. Please enter a valid email or type 'skip':")
	}
	return nil
}

// ParseQuantity interpreta una cantidad entera en [1, 100000].
func ParseQuantity(text string) (int, error) {
	qty, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || qty < MinQuantity || qty > MaxQuantity {
		return 0, domain.NewValidationError(
			fmt.Sprintf("Invalid quantity! Please enter a number between %d and %d:", MinQuantity, MaxQuantity))
	}
	return qty, nil
}

// ParseRate interpreta la tarifa unitaria en [0, 10000000].
func ParseRate(text string) (decimal.Decimal, error) {
	rate, err := decimal.NewFromString(strings.TrimSpace(text))
	if err != nil || rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(MaxRate)) {
		return decimal.Zero, domain.NewValidationError(
			fmt.Sprintf("Invalid rate! Please enter a valid number (0-%d):", MaxRate))
	}
	return rate, nil
}

// ParsePercent interpreta un porcentaje en [0, 100] (impuesto o descuento).
func ParsePercent(text, field string) (decimal.Decimal, error) {
	pct, err := decimal.NewFromString(strings.TrimSpace(text))
	if err != nil || pct.IsNegative() || pct.GreaterThan(decimal.NewFromInt(100)) {
		return decimal.Zero, domain.NewValidationError(
			fmt.Sprintf("Invalid %s! Please enter a number between 0 and 100:", field))
	}
	return pct, nil
}
