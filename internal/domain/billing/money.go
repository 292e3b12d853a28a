package billing

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatAmount formatea un monto como "<CODE> <dígitos agrupados>.<2 decimales>".
//
// Para INR la agrupación sigue la numeración india: los últimos tres dígitos
// enteros forman un grupo y hacia la izquierda se agrupa de dos en dos
// (12345678.9 → "INR 1,23,45,678.90"). El resto de monedas agrupa de tres en
// tres (→ "USD 12,345,678.90"). La distinción es contractual, no cosmética.
func FormatAmount(amount decimal.Decimal, code string) string {
	s := amount.StringFixed(2)

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign = "-"
		s = s[1:]
	}

	intPart, fracPart, _ := strings.Cut(s, ".")
	if code == "INR" {
		intPart = groupIndian(intPart)
	} else {
		intPart = groupThousands(intPart)
	}

	return code + " " + sign + intPart + "." + fracPart
}

// groupThousands inserta comas de miles cada tres dígitos desde la derecha.
// Ej: "1234567" → "1,234,567"
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i := 0; i < n; i++ {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, s[i])
	}
	return string(buf)
}

// groupIndian agrupa según lakhs/crores: último grupo de tres, luego pares.
// Ej: "12345678" → "1,23,45,678"
func groupIndian(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	head, tail := s[:n-3], s[n-3:]

	buf := make([]byte, 0, len(head)+len(head)/2)
	m := len(head)
	for i := 0; i < m; i++ {
		if i > 0 && (m-i)%2 == 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, head[i])
	}
	return string(buf) + "," + tail
}
