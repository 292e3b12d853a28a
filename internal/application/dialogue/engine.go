// Package dialogue implementa la máquina de estados finita que recolecta los
// datos de la factura pregunta a pregunta. Cada estado tiene una función de
// transición propia: entrada inválida es una arista explícita de auto-bucle
// (mismo estado + mensaje de error), entrada válida escribe en el registro y
// avanza. Las transiciones son puras y testeables sin transporte vivo.
package dialogue

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/invoice-bot/internal/domain"
	"github.com/jhoicas/invoice-bot/internal/domain/billing"
	"github.com/jhoicas/invoice-bot/internal/domain/entity"
	"github.com/jhoicas/invoice-bot/pkg/logger"
)

// DefaultSessionTimeout ventana de inactividad antes de expirar un diálogo.
const DefaultSessionTimeout = 900 * time.Second

// Deps dependencias del motor.
type Deps struct {
	Store          Store
	Messenger      Messenger
	Documents      DocumentGenerator
	Log            *logger.Logger
	SessionTimeout time.Duration
	Clock          func() time.Time // nil = time.Now; inyectable para tests
}

// Engine el motor del diálogo. Procesa cada entrada como un paso síncrono
// corto: validar → mutar registro → emitir siguiente prompt. Ningún error
// sale del motor hacia el proceso anfitrión.
type Engine struct {
	store     Store
	messenger Messenger
	docs      DocumentGenerator
	log       *logger.Logger
	timeout   time.Duration
	clock     func() time.Time
}

// NewEngine construye el motor inyectando sus dependencias.
func NewEngine(d Deps) *Engine {
	if d.Clock == nil {
		d.Clock = time.Now
	}
	if d.SessionTimeout <= 0 {
		d.SessionTimeout = DefaultSessionTimeout
	}
	if d.Log == nil {
		d.Log = logger.Nop()
	}
	return &Engine{
		store:     d.Store,
		messenger: d.Messenger,
		docs:      d.Documents,
		log:       d.Log,
		timeout:   d.SessionTimeout,
		clock:     d.Clock,
	}
}

// ── API de entrada (una transición por llamada) ───────────────────────────────

// Start inicia un diálogo nuevo: borra cualquier sesión previa de la identidad,
// crea el registro con fechas derivadas y pregunta la moneda.
func (e *Engine) Start(ctx context.Context, chatID int64) {
	now := e.clock()
	e.store.Clear(chatID)

	sess := &Session{
		ChatID:       chatID,
		State:        StateSelectCurrency,
		Record:       entity.NewInvoiceRecord(now),
		LastActivity: now,
	}
	e.store.Put(chatID, sess)

	e.log.Info().Int64("chat_id", chatID).Msg("diálogo iniciado")
	e.send(ctx, chatID, promptCurrency())
}

// HandleText procesa texto libre del usuario en el estado actual.
func (e *Engine) HandleText(ctx context.Context, chatID int64, text string) {
	sess := e.liveSession(ctx, chatID)
	if sess == nil {
		return
	}
	if sess.State.ExpectsOption() {
		// El estado espera botón; el texto no avanza la máquina.
		e.send(ctx, chatID, Prompt{Text: msgUseButtons})
		return
	}

	handler, ok := textTransitions[sess.State]
	if !ok {
		e.send(ctx, chatID, Prompt{Text: msgUnknown})
		return
	}
	e.apply(ctx, sess, handler(sess, text))
}

// HandleOption procesa la selección de un botón en el estado actual.
func (e *Engine) HandleOption(ctx context.Context, chatID int64, optionID string) {
	sess := e.liveSession(ctx, chatID)
	if sess == nil {
		return
	}
	if sess.State == StateConfirm {
		e.finishConfirm(ctx, sess, optionID)
		return
	}
	if !sess.State.ExpectsOption() {
		e.send(ctx, chatID, Prompt{Text: msgUseButtons})
		return
	}

	handler, ok := optionTransitions[sess.State]
	if !ok {
		e.send(ctx, chatID, Prompt{Text: msgUnknown})
		return
	}
	e.apply(ctx, sess, handler(sess, optionID))
}

// HandleCancel cancela el diálogo desde cualquier estado no terminal: descarta
// registro y sesión, sin exigir invariantes (puede cancelarse a mitad de ítem).
func (e *Engine) HandleCancel(ctx context.Context, chatID int64) {
	if _, ok := e.store.Get(chatID); ok {
		e.store.Clear(chatID)
		e.log.Info().Int64("chat_id", chatID).Str("to", string(StateCancelled)).Msg("diálogo cancelado")
	}
	e.send(ctx, chatID, Prompt{Text: msgCancelled})
}

// Reset descarta la sesión de la identidad sin emitir mensajes. Lo usa el
// comando /start antes de mostrar el menú de bienvenida.
func (e *Engine) Reset(chatID int64) {
	e.store.Clear(chatID)
}

// CurrentState expone el estado actual de una identidad (StateIdle si no hay
// sesión). Pensado para tests y diagnóstico.
func (e *Engine) CurrentState(chatID int64) State {
	sess, ok := e.store.Get(chatID)
	if !ok {
		return StateIdle
	}
	return sess.State
}

// ── Ciclo interno ─────────────────────────────────────────────────────────────

// liveSession recupera la sesión aplicando primero la transición de timeout:
// una sesión vencida se limpia, se notifica y se descarta en el acto. La
// expiración se decide al recibir entrada, no con barridos en segundo plano.
func (e *Engine) liveSession(ctx context.Context, chatID int64) *Session {
	sess, ok := e.store.Get(chatID)
	if !ok {
		e.send(ctx, chatID, Prompt{Text: msgUnknown})
		return nil
	}

	now := e.clock()
	if sess.Expired(now, e.timeout) {
		e.store.Clear(chatID)
		e.log.Info().Int64("chat_id", chatID).
			Str("from", string(sess.State)).Str("to", string(StateTimedOut)).
			Msg("sesión expirada por inactividad")
		e.send(ctx, chatID, Prompt{Text: msgTimeout})
		return nil
	}

	sess.Touch(now)
	return sess
}

// apply persiste el resultado de una transición y emite sus prompts.
func (e *Engine) apply(ctx context.Context, sess *Session, st step) {
	if st.next != sess.State {
		e.log.Debug().Int64("chat_id", sess.ChatID).
			Str("from", string(sess.State)).Str("to", string(st.next)).
			Msg("transición")
	}
	sess.State = st.next
	e.store.Put(sess.ChatID, sess)

	for _, p := range st.prompts {
		e.send(ctx, sess.ChatID, p)
	}
}

// finishConfirm resuelve el estado Confirm: generar el documento o descartar.
// En ambos caminos (y también si la generación falla) la sesión queda limpia.
func (e *Engine) finishConfirm(ctx context.Context, sess *Session, optionID string) {
	switch optionID {
	case OptionCancel:
		e.store.Clear(sess.ChatID)
		e.log.Info().Int64("chat_id", sess.ChatID).Msg("generación cancelada en confirmación")
		e.send(ctx, sess.ChatID, Prompt{Text: msgCancelledAtConfirm})

	case OptionGenerate:
		e.send(ctx, sess.ChatID, Prompt{Text: msgGenerating})
		defer e.store.Clear(sess.ChatID)

		rec := sess.Record
		pdf, filename, err := e.docs.Generate(ctx, rec)
		if err != nil {
			e.log.Error().Err(err).Int64("chat_id", sess.ChatID).
				Str("invoice", rec.InvoiceNumber).Msg("generación de PDF fallida")
			e.send(ctx, sess.ChatID, Prompt{Text: msgRenderFailed})
			return
		}

		tot := billing.RecordTotals(rec)
		caption := fmt.Sprintf("✅ Invoice generated successfully!\n\n📄 %s\n💰 Total: %s",
			rec.InvoiceNumber, billing.FormatAmount(tot.Total, rec.Currency.Code))

		if err := e.messenger.SendDocument(ctx, sess.ChatID, pdf, filename, caption); err != nil {
			// El transporte ya reintentó una vez; aquí solo queda registrar.
			e.log.Error().Err(err).Int64("chat_id", sess.ChatID).Msg("entrega del documento fallida")
			e.send(ctx, sess.ChatID, Prompt{Text: msgRenderFailed})
			return
		}

		e.log.Info().Int64("chat_id", sess.ChatID).
			Str("invoice", rec.InvoiceNumber).Msg("factura generada y enviada")
		e.send(ctx, sess.ChatID, Prompt{Text: msgSent})

	default:
		e.send(ctx, sess.ChatID, Prompt{Text: msgUseButtons})
	}
}

// send entrega un prompt con mejor esfuerzo: un fallo de envío se registra y
// se traga, nunca tumba el proceso anfitrión.
func (e *Engine) send(ctx context.Context, chatID int64, p Prompt) {
	if err := e.messenger.SendPrompt(ctx, chatID, p.Text, p.Options); err != nil {
		e.log.Error().Err(err).Int64("chat_id", chatID).Msg("envío de prompt fallido")
	}
}

// ── Tabla de transiciones ─────────────────────────────────────────────────────

// step resultado de una transición: estado siguiente y prompts a emitir.
type step struct {
	next    State
	prompts []Prompt
}

func stay(s State, prompts ...Prompt) step    { return step{next: s, prompts: prompts} }
func advance(s State, prompts ...Prompt) step { return step{next: s, prompts: prompts} }

// validationPrompt convierte un error de validación en su prompt de reintento.
func validationPrompt(err error) Prompt {
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		return errorPrompt(vErr.Message)
	}
	return errorPrompt("Invalid input. Please try again:")
}

// textTransitions función de transición por estado de texto libre.
var textTransitions = map[State]func(*Session, string) step{
	StateInvoiceNumber:   handleInvoiceNumber,
	StateSellerName:      handleSellerName,
	StateSellerEmail:     handleSellerEmail,
	StateSellerAddress:   handleSellerAddress,
	StateBuyerName:       handleBuyerName,
	StateBuyerEmail:      handleBuyerEmail,
	StateBuyerAddress:    handleBuyerAddress,
	StateItemDescription: handleItemDescription,
	StateItemQuantity:    handleItemQuantity,
	StateItemRate:        handleItemRate,
	StateTax:             handleTax,
	StateDiscount:        handleDiscount,
	StateNotes:           handleNotes,
}

// optionTransitions función de transición por estado de botones. Confirm se
// resuelve aparte porque dispara la generación del documento.
var optionTransitions = map[State]func(*Session, string) step{
	StateSelectCurrency: handleSelectCurrency,
	StateMoreItems:      handleMoreItems,
	StateStyleSelect:    handleStyleSelect,
}

func handleSelectCurrency(s *Session, optionID string) step {
	code := strings.TrimPrefix(optionID, currencyOptionPrefix)
	c, ok := entity.CurrencyByCode(code)
	if !ok || code == optionID {
		return stay(StateSelectCurrency,
			errorPrompt("Invalid currency. Please choose one of the options:"),
			promptCurrency())
	}
	s.Record.Currency = c
	return advance(StateInvoiceNumber, promptInvoiceNumber(c))
}

func handleInvoiceNumber(s *Session, text string) step {
	if err := billing.ValidateRequiredText(text, "invoice number", billing.MaxInvoiceNumberLen); err != nil {
		return stay(StateInvoiceNumber, validationPrompt(err))
	}
	s.Record.InvoiceNumber = billing.Sanitize(text)
	return advance(StateSellerName, promptSellerName())
}

func handleSellerName(s *Session, text string) step {
	if err := billing.ValidateRequiredText(text, "company name", billing.MaxPartyNameLen); err != nil {
		return stay(StateSellerName, validationPrompt(err))
	}
	s.Record.Seller.Name = billing.Sanitize(text)
	return advance(StateSellerEmail, promptSellerEmail())
}

func handleSellerEmail(s *Session, text string) step {
	if billing.IsSkip(text) {
		s.Record.Seller.Email = ""
		return advance(StateSellerAddress, promptSellerAddress())
	}
	if err := billing.ValidateEmail(text); err != nil {
		return stay(StateSellerEmail, validationPrompt(err))
	}
	s.Record.Seller.Email = billing.Sanitize(text)
	return advance(StateSellerAddress, promptSellerAddress())
}

func handleSellerAddress(s *Session, text string) step {
	if billing.IsSkip(text) {
		s.Record.Seller.Address = ""
		return advance(StateBuyerName, promptBuyerName())
	}
	if err := billing.ValidateOptionalText(text, "Address", billing.MaxAddressLen); err != nil {
		return stay(StateSellerAddress, validationPrompt(err))
	}
	// Texto literal: solo el token exacto "skip" vacía el campo.
	s.Record.Seller.Address = billing.Sanitize(text)
	return advance(StateBuyerName, promptBuyerName())
}

func handleBuyerName(s *Session, text string) step {
	if err := billing.ValidateRequiredText(text, "client name", billing.MaxPartyNameLen); err != nil {
		return stay(StateBuyerName, validationPrompt(err))
	}
	s.Record.Buyer.Name = billing.Sanitize(text)
	return advance(StateBuyerEmail, promptBuyerEmail())
}

func handleBuyerEmail(s *Session, text string) step {
	if billing.IsSkip(text) {
		s.Record.Buyer.Email = ""
		return advance(StateBuyerAddress, promptBuyerAddress())
	}
	if err := billing.ValidateEmail(text); err != nil {
		return stay(StateBuyerEmail, validationPrompt(err))
	}
	s.Record.Buyer.Email = billing.Sanitize(text)
	return advance(StateBuyerAddress, promptBuyerAddress())
}

func handleBuyerAddress(s *Session, text string) step {
	if billing.IsSkip(text) {
		s.Record.Buyer.Address = ""
		return advance(StateItemDescription, promptFirstItem())
	}
	if err := billing.ValidateOptionalText(text, "Address", billing.MaxAddressLen); err != nil {
		return stay(StateBuyerAddress, validationPrompt(err))
	}
	s.Record.Buyer.Address = billing.Sanitize(text)
	return advance(StateItemDescription, promptFirstItem())
}

func handleItemDescription(s *Session, text string) step {
	if len(s.Record.LineItems) >= billing.MaxLineItems {
		// Tope alcanzado por fuera del flujo normal: se reencauza sin bloquear.
		return advance(StateMoreItems, Prompt{
			Text:    fmt.Sprintf("❌ Maximum %d items allowed. Please continue to next step.", billing.MaxLineItems),
			Options: promptMoreItems(len(s.Record.LineItems)).Options,
		})
	}
	if err := billing.ValidateRequiredText(text, "item description", billing.MaxDescriptionLen); err != nil {
		return stay(StateItemDescription, validationPrompt(err))
	}
	s.PendingItem = entity.LineItem{Description: billing.Sanitize(text)}
	return advance(StateItemQuantity, promptQuantity())
}

func handleItemQuantity(s *Session, text string) step {
	qty, err := billing.ParseQuantity(text)
	if err != nil {
		return stay(StateItemQuantity, validationPrompt(err))
	}
	s.PendingItem.Quantity = qty
	return advance(StateItemRate, promptRate())
}

func handleItemRate(s *Session, text string) step {
	rate, err := billing.ParseRate(text)
	if err != nil {
		return stay(StateItemRate, validationPrompt(err))
	}
	s.PendingItem.UnitRate = rate
	s.Record.LineItems = append(s.Record.LineItems, s.PendingItem)
	s.PendingItem = entity.LineItem{}
	return advance(StateMoreItems, promptMoreItems(len(s.Record.LineItems)))
}

func handleMoreItems(s *Session, optionID string) step {
	switch optionID {
	case OptionAddItem:
		if len(s.Record.LineItems) >= billing.MaxLineItems {
			// Capacidad llena: avance forzado, no se bloquea al usuario.
			return advance(StateTax, promptCapacityReached(), promptTax())
		}
		return advance(StateItemDescription, promptNextItem())
	case OptionDoneItems:
		return advance(StateTax, promptTax())
	}
	return stay(StateMoreItems, Prompt{Text: msgUseButtons})
}

func handleTax(s *Session, text string) step {
	pct, err := billing.ParsePercent(text, "tax")
	if err != nil {
		return stay(StateTax, validationPrompt(err))
	}
	s.Record.TaxPercent = pct
	return advance(StateDiscount, promptDiscount())
}

func handleDiscount(s *Session, text string) step {
	pct, err := billing.ParsePercent(text, "discount")
	if err != nil {
		return stay(StateDiscount, validationPrompt(err))
	}
	s.Record.DiscountPercent = pct
	return advance(StateNotes, promptNotes())
}

func handleNotes(s *Session, text string) step {
	if billing.IsSkip(text) {
		s.Record.Notes = entity.DefaultNotes
		return advance(StateStyleSelect, promptStyle())
	}
	if err := billing.ValidateOptionalText(text, "Notes", billing.MaxNotesLen); err != nil {
		return stay(StateNotes, validationPrompt(err))
	}
	s.Record.Notes = billing.Sanitize(text)
	return advance(StateStyleSelect, promptStyle())
}

func handleStyleSelect(s *Session, optionID string) step {
	switch optionID {
	case OptionStyleColor:
		s.Record.Style = entity.StyleColor
	case OptionStyleBW:
		s.Record.Style = entity.StyleMonochrome
	default:
		return stay(StateStyleSelect, Prompt{Text: msgUseButtons})
	}
	// La vista previa usa la misma fórmula de totales que la generación final.
	return advance(StateConfirm, promptConfirm(s.Record))
}
