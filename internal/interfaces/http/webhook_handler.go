// Package http expone el endpoint que recibe los updates del Bot API y los
// traduce a transiciones del motor de diálogo.
package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/invoice-bot/internal/application/dialogue"
	"github.com/jhoicas/invoice-bot/internal/infrastructure/memory"
	"github.com/jhoicas/invoice-bot/internal/infrastructure/telegram"
	"github.com/jhoicas/invoice-bot/pkg/logger"
)

// CallbackAnswerer confirma pulsaciones de botones (quita el spinner).
type CallbackAnswerer interface {
	AnswerCallbackQuery(ctx context.Context, callbackID string)
}

// WebhookHandler maneja los updates entrantes. Siempre responde 200 al Bot
// API: un update que no se pudo procesar se registra, no se reentrega.
type WebhookHandler struct {
	engine    *dialogue.Engine
	messenger dialogue.Messenger
	callbacks CallbackAnswerer
	cooldown  *memory.Cooldown
	log       *logger.Logger
}

// NewWebhookHandler construye el handler.
func NewWebhookHandler(
	engine *dialogue.Engine,
	messenger dialogue.Messenger,
	callbacks CallbackAnswerer,
	cooldown *memory.Cooldown,
	log *logger.Logger,
) *WebhookHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &WebhookHandler{
		engine:    engine,
		messenger: messenger,
		callbacks: callbacks,
		cooldown:  cooldown,
		log:       log,
	}
}

// Receive procesa un update del Bot API.
// POST /webhook
func (h *WebhookHandler) Receive(c *fiber.Ctx) error {
	var upd telegram.Update
	if err := c.BodyParser(&upd); err != nil {
		h.log.Warn().Err(err).Msg("update con cuerpo inválido")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"ok": false})
	}

	h.dispatch(c.Context(), &upd)
	return c.JSON(fiber.Map{"ok": true})
}

// dispatch enruta el update a la transición que corresponde.
func (h *WebhookHandler) dispatch(ctx context.Context, upd *telegram.Update) {
	switch {
	case upd.CallbackQuery != nil:
		h.handleCallback(ctx, upd.CallbackQuery)
	case upd.Message != nil && upd.Message.Text != "":
		h.handleMessage(ctx, upd.Message)
	default:
		h.log.Debug().Int64("update_id", upd.UpdateID).Msg("update sin contenido procesable")
	}
}

func (h *WebhookHandler) handleCallback(ctx context.Context, cq *telegram.CallbackQuery) {
	chatID := cq.From.ID
	if cq.Message != nil {
		chatID = cq.Message.Chat.ID
	}

	h.callbacks.AnswerCallbackQuery(ctx, cq.ID)

	// Botones del menú de bienvenida, por fuera del diálogo.
	switch cq.Data {
	case dialogue.OptionNewInvoice:
		h.engine.Start(ctx, chatID)
	case dialogue.OptionHelp:
		h.send(ctx, chatID, dialogue.MsgHelp)
	case dialogue.OptionContact:
		h.send(ctx, chatID, dialogue.MsgContact)
	default:
		h.engine.HandleOption(ctx, chatID, cq.Data)
	}
}

func (h *WebhookHandler) handleMessage(ctx context.Context, msg *telegram.Message) {
	chatID := msg.Chat.ID
	text := strings.TrimSpace(msg.Text)

	switch {
	case text == "/start":
		if !h.cooldown.Allow(chatID) {
			// Dentro de la ventana anti-spam el comando se descarta en silencio.
			return
		}
		h.engine.Reset(chatID)
		if err := h.messenger.SendPrompt(ctx, chatID, dialogue.MsgWelcome, dialogue.WelcomeOptions()); err != nil {
			h.log.Error().Err(err).Int64("chat_id", chatID).Msg("envío de bienvenida fallido")
		}
	case text == "/cancel":
		h.engine.HandleCancel(ctx, chatID)
	case strings.HasPrefix(text, "/"):
		h.send(ctx, chatID, "❌ Sorry, I didn't understand that.\n\n👉 Use /start to create an invoice")
	default:
		h.engine.HandleText(ctx, chatID, text)
	}
}

func (h *WebhookHandler) send(ctx context.Context, chatID int64, text string) {
	if err := h.messenger.SendPrompt(ctx, chatID, text, nil); err != nil {
		h.log.Error().Err(err).Int64("chat_id", chatID).Msg("envío de mensaje fallido")
	}
}
