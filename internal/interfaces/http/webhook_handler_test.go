package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/invoice-bot/internal/application/dialogue"
	"github.com/jhoicas/invoice-bot/internal/domain/entity"
	"github.com/jhoicas/invoice-bot/internal/infrastructure/memory"
	"github.com/jhoicas/invoice-bot/internal/infrastructure/telegram"
	httpRouter "github.com/jhoicas/invoice-bot/internal/interfaces/http"
)

// ── Dobles de prueba ──────────────────────────────────────────────────────────

type recordedPrompt struct {
	chatID  int64
	text    string
	options []dialogue.Option
}

type fakeMessenger struct {
	mu      sync.Mutex
	prompts []recordedPrompt
}

func (m *fakeMessenger) SendPrompt(_ context.Context, chatID int64, text string, options []dialogue.Option) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prompts = append(m.prompts, recordedPrompt{chatID: chatID, text: text, options: options})
	return nil
}

func (m *fakeMessenger) SendDocument(_ context.Context, _ int64, _ []byte, _, _ string) error {
	return nil
}

func (m *fakeMessenger) last() recordedPrompt {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.prompts) == 0 {
		return recordedPrompt{}
	}
	return m.prompts[len(m.prompts)-1]
}

func (m *fakeMessenger) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.prompts)
}

type fakeAnswerer struct {
	mu       sync.Mutex
	answered []string
}

func (a *fakeAnswerer) AnswerCallbackQuery(_ context.Context, callbackID string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.answered = append(a.answered, callbackID)
}

type nopGenerator struct{}

func (nopGenerator) Generate(_ context.Context, rec *entity.InvoiceRecord) ([]byte, string, error) {
	return []byte("%PDF"), rec.InvoiceNumber + ".pdf", nil
}

type harness struct {
	app       *fiber.App
	engine    *dialogue.Engine
	messenger *fakeMessenger
	answerer  *fakeAnswerer
}

func newHarness() *harness {
	h := &harness{
		app:       fiber.New(),
		messenger: &fakeMessenger{},
		answerer:  &fakeAnswerer{},
	}
	h.engine = dialogue.NewEngine(dialogue.Deps{
		Store:     memory.NewSessionStore(),
		Messenger: h.messenger,
		Documents: nopGenerator{},
	})

	webhook := httpRouter.NewWebhookHandler(
		h.engine, h.messenger, h.answerer,
		memory.NewCooldown(2*time.Second, nil), nil)
	httpRouter.Router(h.app, httpRouter.RouterDeps{Webhook: webhook, AppName: "invoice-bot-test"})
	return h
}

func (h *harness) post(t *testing.T, upd telegram.Update) *http.Response {
	t.Helper()
	body, err := json.Marshal(upd)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.app.Test(req)
	require.NoError(t, err)
	return resp
}

func textUpdate(chatID int64, text string) telegram.Update {
	return telegram.Update{
		UpdateID: 1,
		Message:  &telegram.Message{Chat: telegram.Chat{ID: chatID}, Text: text},
	}
}

func callbackUpdate(chatID int64, data string) telegram.Update {
	return telegram.Update{
		UpdateID: 1,
		CallbackQuery: &telegram.CallbackQuery{
			ID:      "cb-1",
			From:    telegram.User{ID: chatID},
			Message: &telegram.Message{Chat: telegram.Chat{ID: chatID}},
			Data:    data,
		},
	}
}

// ── Casos ─────────────────────────────────────────────────────────────────────

func TestReceive_CuerpoInvalido(t *testing.T) {
	h := newHarness()

	req := httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewReader([]byte("{no json")))
	req.Header.Set("Content-Type", "application/json")
	resp, err := h.app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestReceive_StartMuestraElMenu(t *testing.T) {
	h := newHarness()

	resp := h.post(t, textUpdate(42, "/start"))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	p := h.messenger.last()
	assert.Equal(t, int64(42), p.chatID)
	assert.Contains(t, p.text, "Welcome to Invoice Generator Bot")
	require.Len(t, p.options, 3)
	assert.Equal(t, "new_invoice", p.options[0].ID)
}

func TestReceive_StartRepetido_SeDescartaEnSilencio(t *testing.T) {
	h := newHarness()

	h.post(t, textUpdate(42, "/start"))
	before := h.messenger.count()

	// Dentro de la ventana anti-spam: sin respuesta, sin error
	resp := h.post(t, textUpdate(42, "/start"))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, before, h.messenger.count())
}

func TestReceive_StartDescartaDialogoEnCurso(t *testing.T) {
	h := newHarness()

	h.post(t, callbackUpdate(42, "new_invoice"))
	h.post(t, callbackUpdate(42, "curr_INR"))
	require.Equal(t, dialogue.StateInvoiceNumber, h.engine.CurrentState(42))

	h.post(t, textUpdate(42, "/start"))

	assert.Equal(t, dialogue.StateIdle, h.engine.CurrentState(42),
		"/start vuelve al menú, el diálogo anterior se descarta")
}

func TestReceive_CallbackNuevaFactura_IniciaDialogo(t *testing.T) {
	h := newHarness()

	resp := h.post(t, callbackUpdate(42, "new_invoice"))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, dialogue.StateSelectCurrency, h.engine.CurrentState(42))
	assert.Equal(t, []string{"cb-1"}, h.answerer.answered, "el botón se confirma siempre")
	assert.Contains(t, h.messenger.last().text, "Select Currency")
}

func TestReceive_CallbackAyudaYContacto(t *testing.T) {
	h := newHarness()

	h.post(t, callbackUpdate(42, "help"))
	assert.Contains(t, h.messenger.last().text, "How to Use")

	h.post(t, callbackUpdate(42, "contact_us"))
	assert.Contains(t, h.messenger.last().text, "Contact Us")

	// Los botones del menú no crean sesión
	assert.Equal(t, dialogue.StateIdle, h.engine.CurrentState(42))
}

func TestReceive_TextoAvanzaElDialogo(t *testing.T) {
	h := newHarness()

	h.post(t, callbackUpdate(42, "new_invoice"))
	h.post(t, callbackUpdate(42, "curr_INR"))
	h.post(t, textUpdate(42, "INV-001"))

	assert.Equal(t, dialogue.StateSellerName, h.engine.CurrentState(42))
	assert.Contains(t, h.messenger.last().text, "company name")
}

func TestReceive_CancelDescartaLaSesion(t *testing.T) {
	h := newHarness()

	h.post(t, callbackUpdate(42, "new_invoice"))
	h.post(t, textUpdate(42, "/cancel"))

	assert.Equal(t, dialogue.StateIdle, h.engine.CurrentState(42))
	assert.Contains(t, h.messenger.last().text, "Operation cancelled")
}

func TestReceive_ComandoDesconocido(t *testing.T) {
	h := newHarness()

	h.post(t, textUpdate(42, "/ayuda"))

	assert.Contains(t, h.messenger.last().text, "didn't understand")
}

func TestReceive_UpdateVacio_RespondeOK(t *testing.T) {
	h := newHarness()

	resp := h.post(t, telegram.Update{UpdateID: 9})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Zero(t, h.messenger.count())
}

func TestRouter_Salud(t *testing.T) {
	h := newHarness()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp, err := h.app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Bot Running", body["status"])
	assert.Equal(t, "invoice-bot-test", body["app"])
}
