package entity

// Currency una moneda soportada por el bot.
type Currency struct {
	Symbol string // símbolo para mostrar en botones (₹, $, €, £)
	Code   string // código ISO 4217
	Name   string // nombre para mostrar
}

// Currencies lista fija de monedas ofrecidas en el primer paso del diálogo.
// El orden es el orden de los botones.
var Currencies = []Currency{
	{Symbol: "₹", Code: "INR", Name: "Indian Rupee"},
	{Symbol: "$", Code: "USD", Name: "US Dollar"},
	{Symbol: "€", Code: "EUR", Name: "Euro"},
	{Symbol: "£", Code: "GBP", Name: "British Pound"},
}

// CurrencyByCode busca una moneda por su código ISO.
func CurrencyByCode(code string) (Currency, bool) {
	for _, c := range Currencies {
		if c.Code == code {
			return c, true
		}
	}
	return Currency{}, false
}
