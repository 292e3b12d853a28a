// Package telegram implementa el puerto Messenger del diálogo contra el Bot
// API de Telegram. Usa net/http de la stdlib; no requiere librerías de
// terceros.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/jhoicas/invoice-bot/internal/application/dialogue"
	"github.com/jhoicas/invoice-bot/pkg/logger"
)

const defaultBaseURL = "https://api.telegram.org"

// Client cliente del Bot API. Cada envío reintenta una vez con mejor esfuerzo;
// si el reintento también falla el error sube para que el motor lo registre y
// lo trague — un mensaje perdido nunca tumba el proceso.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	log        *logger.Logger
}

// NewClient construye el cliente con un timeout de red de 30 s (la subida del
// documento puede tardar).
func NewClient(token string, log *logger.Logger) *Client {
	if log == nil {
		log = logger.Nop()
	}
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    defaultBaseURL,
		token:      token,
		log:        log,
	}
}

// WithBaseURL reemplaza la URL base (tests contra un servidor local).
func (c *Client) WithBaseURL(u string) *Client {
	c.baseURL = u
	return c
}

// SendPrompt envía texto con botones inline opcionales (uno por fila, como
// los menús del diálogo).
func (c *Client) SendPrompt(ctx context.Context, chatID int64, text string, options []dialogue.Option) error {
	payload := sendMessagePayload{
		ChatID:    chatID,
		Text:      text,
		ParseMode: "Markdown",
	}
	if len(options) > 0 {
		markup := &inlineKeyboardMarkup{InlineKeyboard: make([][]inlineKeyboardButton, 0, len(options))}
		for _, opt := range options {
			markup.InlineKeyboard = append(markup.InlineKeyboard,
				[]inlineKeyboardButton{{Text: opt.Label, CallbackData: opt.ID}})
		}
		payload.ReplyMarkup = markup
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("telegram: serializar sendMessage: %w", err)
	}
	return c.post(ctx, "sendMessage", "application/json", body)
}

// SendDocument sube el PDF como documento adjunto con su caption.
func (c *Client) SendDocument(ctx context.Context, chatID int64, document []byte, filename, caption string) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if err := w.WriteField("chat_id", fmt.Sprintf("%d", chatID)); err != nil {
		return fmt.Errorf("telegram: armar multipart: %w", err)
	}
	if caption != "" {
		if err := w.WriteField("caption", caption); err != nil {
			return fmt.Errorf("telegram: armar multipart: %w", err)
		}
	}
	part, err := w.CreateFormFile("document", filename)
	if err != nil {
		return fmt.Errorf("telegram: armar multipart: %w", err)
	}
	if _, err := part.Write(document); err != nil {
		return fmt.Errorf("telegram: armar multipart: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("telegram: cerrar multipart: %w", err)
	}

	return c.post(ctx, "sendDocument", w.FormDataContentType(), buf.Bytes())
}

// AnswerCallbackQuery confirma la pulsación de un botón (quita el spinner del
// cliente de Telegram). Fallo no crítico: se registra y se ignora.
func (c *Client) AnswerCallbackQuery(ctx context.Context, callbackID string) {
	body, err := json.Marshal(answerCallbackPayload{CallbackQueryID: callbackID})
	if err != nil {
		return
	}
	if err := c.post(ctx, "answerCallbackQuery", "application/json", body); err != nil {
		c.log.Warn().Err(err).Msg("answerCallbackQuery fallido")
	}
}

// SetWebhook registra la URL pública del webhook en el Bot API.
func (c *Client) SetWebhook(ctx context.Context, url string) error {
	body, err := json.Marshal(setWebhookPayload{URL: url})
	if err != nil {
		return fmt.Errorf("telegram: serializar setWebhook: %w", err)
	}
	return c.post(ctx, "setWebhook", "application/json", body)
}

// ── transporte ────────────────────────────────────────────────────────────────

func (c *Client) apiURL(method string) string {
	return fmt.Sprintf("%s/bot%s/%s", c.baseURL, c.token, method)
}

// post ejecuta el método del Bot API con un reintento de mejor esfuerzo.
func (c *Client) post(ctx context.Context, method, contentType string, body []byte) error {
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		if attempt > 0 {
			c.log.Warn().Err(lastErr).Str("method", method).Msg("reintentando envío a Telegram")
		}
		lastErr = c.postOnce(ctx, method, contentType, body)
		if lastErr == nil {
			return nil
		}
	}
	return lastErr
}

func (c *Client) postOnce(ctx context.Context, method, contentType string, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL(method), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("telegram: crear petición %s: %w", method, err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("telegram: %s: %w", method, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("telegram: leer respuesta de %s: %w", method, err)
	}

	var ar apiResponse
	if err := json.Unmarshal(data, &ar); err != nil {
		return fmt.Errorf("telegram: %s respondió %d con cuerpo no JSON", method, resp.StatusCode)
	}
	if !ar.OK {
		return fmt.Errorf("telegram: %s respondió %d: %s", method, resp.StatusCode, ar.Description)
	}
	return nil
}
