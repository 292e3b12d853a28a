package telegram_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/invoice-bot/internal/application/dialogue"
	"github.com/jhoicas/invoice-bot/internal/infrastructure/telegram"
)

func okResponse(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"ok":true}`))
}

func TestSendPrompt_ArmaElPayload(t *testing.T) {
	var captured map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/botTOKEN/sendMessage", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &captured))
		okResponse(w)
	}))
	defer srv.Close()

	c := telegram.NewClient("TOKEN", nil).WithBaseURL(srv.URL)

	err := c.SendPrompt(context.Background(), 42, "Choose:", []dialogue.Option{
		{Label: "A", ID: "opt_a"},
		{Label: "B", ID: "opt_b"},
	})
	require.NoError(t, err)

	assert.EqualValues(t, 42, captured["chat_id"])
	assert.Equal(t, "Choose:", captured["text"])
	assert.Equal(t, "Markdown", captured["parse_mode"])

	// Un botón por fila
	markup := captured["reply_markup"].(map[string]any)
	rows := markup["inline_keyboard"].([]any)
	require.Len(t, rows, 2)
	first := rows[0].([]any)[0].(map[string]any)
	assert.Equal(t, "A", first["text"])
	assert.Equal(t, "opt_a", first["callback_data"])
}

func TestSendPrompt_SinBotones_OmiteElTeclado(t *testing.T) {
	var captured map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &captured))
		okResponse(w)
	}))
	defer srv.Close()

	c := telegram.NewClient("TOKEN", nil).WithBaseURL(srv.URL)

	require.NoError(t, c.SendPrompt(context.Background(), 1, "hola", nil))
	_, hasMarkup := captured["reply_markup"]
	assert.False(t, hasMarkup)
}

func TestSendDocument_MultipartCompleto(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/botTOKEN/sendDocument", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		assert.Equal(t, "42", r.FormValue("chat_id"))
		assert.Equal(t, "Your invoice", r.FormValue("caption"))

		file, header, err := r.FormFile("document")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "INV-001.pdf", header.Filename)
		data, _ := io.ReadAll(file)
		assert.Equal(t, []byte("%PDF-1.7"), data)

		okResponse(w)
	}))
	defer srv.Close()

	c := telegram.NewClient("TOKEN", nil).WithBaseURL(srv.URL)

	err := c.SendDocument(context.Background(), 42, []byte("%PDF-1.7"), "INV-001.pdf", "Your invoice")
	require.NoError(t, err)
}

// El primer fallo se reintenta una vez; si el segundo intento responde bien la
// llamada es exitosa.
func TestPost_ReintentaUnaVez(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte(`{"ok":false,"description":"bad gateway"}`))
			return
		}
		okResponse(w)
	}))
	defer srv.Close()

	c := telegram.NewClient("TOKEN", nil).WithBaseURL(srv.URL)

	err := c.SendPrompt(context.Background(), 1, "hola", nil)
	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
}

func TestPost_DosFallosDevuelveError(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		attempts++
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"ok":false,"description":"chat not found"}`))
	}))
	defer srv.Close()

	c := telegram.NewClient("TOKEN", nil).WithBaseURL(srv.URL)

	err := c.SendPrompt(context.Background(), 1, "hola", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chat not found")
	assert.Equal(t, 2, attempts, "exactamente un reintento, nunca más")
}

func TestSetWebhook(t *testing.T) {
	var captured map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/botTOKEN/setWebhook", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &captured))
		okResponse(w)
	}))
	defer srv.Close()

	c := telegram.NewClient("TOKEN", nil).WithBaseURL(srv.URL)

	require.NoError(t, c.SetWebhook(context.Background(), "https://bot.example.com/webhook"))
	assert.Equal(t, "https://bot.example.com/webhook", captured["url"])
}

// El fallo al confirmar un botón es no crítico: no hay error que propagar.
func TestAnswerCallbackQuery_FalloSilencioso(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"ok":false}`))
	}))
	defer srv.Close()

	c := telegram.NewClient("TOKEN", nil).WithBaseURL(srv.URL)

	c.AnswerCallbackQuery(context.Background(), "cb-1")
}
