package dialogue

import (
	"time"

	"github.com/jhoicas/invoice-bot/internal/domain/entity"
)

// Session el diálogo en curso de un usuario. Una sesión por identidad; un
// nuevo /start la sobreescribe, nunca se fusionan.
type Session struct {
	ChatID       int64
	State        State
	Record       *entity.InvoiceRecord
	PendingItem  entity.LineItem // línea en captura (descripción/cantidad ya validadas, tarifa pendiente)
	LastActivity time.Time
}

// Expired indica si la sesión superó la ventana de inactividad.
func (s *Session) Expired(now time.Time, timeout time.Duration) bool {
	return now.Sub(s.LastActivity) > timeout
}

// Touch registra actividad.
func (s *Session) Touch(now time.Time) {
	s.LastActivity = now
}
