package dialogue

import (
	"context"

	"github.com/jhoicas/invoice-bot/internal/domain/entity"
)

// Option un botón seleccionable. ID viaja como callback data del transporte.
type Option struct {
	Label string
	ID    string
}

// Prompt un mensaje saliente del motor: texto y, opcionalmente, botones.
type Prompt struct {
	Text    string
	Options []Option
}

// Messenger puerto de salida hacia el chat. La implementación concreta habla
// con el Bot API de Telegram; para tests se inyecta un fake.
type Messenger interface {
	// SendPrompt envía texto con botones opcionales (options puede ser nil).
	SendPrompt(ctx context.Context, chatID int64, text string, options []Option) error
	// SendDocument entrega el PDF terminado.
	SendDocument(ctx context.Context, chatID int64, document []byte, filename, caption string) error
}

// DocumentGenerator puerto hacia la generación del PDF. Cualquier fallo llega
// envuelto en domain.ErrRenderFailure; el motor no distingue causas.
type DocumentGenerator interface {
	Generate(ctx context.Context, rec *entity.InvoiceRecord) (pdf []byte, filename string, err error)
}

// Store puerto del almacén de sesiones, con clave por identidad de chat.
// El motor es el único dueño del ciclo de vida de las sesiones.
type Store interface {
	Get(chatID int64) (*Session, bool)
	Put(chatID int64, s *Session)
	Clear(chatID int64)
}
