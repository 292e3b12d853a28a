package dialogue

// State un estado de la máquina del diálogo. La secuencia es fija; la única
// bifurcación está en StateMoreItems (volver a capturar ítems o seguir).
type State string

const (
	StateIdle            State = "IDLE"
	StateSelectCurrency  State = "SELECT_CURRENCY"
	StateInvoiceNumber   State = "INVOICE_NUMBER"
	StateSellerName      State = "SELLER_NAME"
	StateSellerEmail     State = "SELLER_EMAIL"
	StateSellerAddress   State = "SELLER_ADDRESS"
	StateBuyerName       State = "BUYER_NAME"
	StateBuyerEmail      State = "BUYER_EMAIL"
	StateBuyerAddress    State = "BUYER_ADDRESS"
	StateItemDescription State = "ITEM_DESCRIPTION"
	StateItemQuantity    State = "ITEM_QUANTITY"
	StateItemRate        State = "ITEM_RATE"
	StateMoreItems       State = "MORE_ITEMS"
	StateTax             State = "TAX"
	StateDiscount        State = "DISCOUNT"
	StateNotes           State = "NOTES"
	StateStyleSelect     State = "STYLE_SELECT"
	StateConfirm         State = "CONFIRM"

	// Terminales: la sesión ya no existe cuando se alcanzan.
	StateDone      State = "DONE"
	StateCancelled State = "CANCELLED"
	StateTimedOut  State = "TIMED_OUT"
)

// IsTerminal indica si el estado cierra el diálogo.
func (s State) IsTerminal() bool {
	switch s {
	case StateDone, StateCancelled, StateTimedOut:
		return true
	}
	return false
}

// ExpectsOption indica si el estado se alimenta de un botón (callback) en vez
// de texto libre.
func (s State) ExpectsOption() bool {
	switch s {
	case StateSelectCurrency, StateMoreItems, StateStyleSelect, StateConfirm:
		return true
	}
	return false
}
