package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound         = errors.New("recurso no encontrado")
	ErrInvalidInput     = errors.New("entrada inválida")
	ErrCapacityReached  = errors.New("límite de capacidad alcanzado")
	ErrSessionExpired   = errors.New("sesión expirada por inactividad")
	ErrRenderFailure    = errors.New("generación del documento fallida")
	ErrIncompleteRecord = errors.New("factura incompleta")
)

// ValidationError error de validación de un campo con mensaje accionable para
// el usuario (nombra el límite o formato violado). El motor de diálogo lo usa
// para re-preguntar sin avanzar de estado.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Unwrap permite errors.Is(err, ErrInvalidInput) sobre cualquier ValidationError.
func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// NewValidationError construye un ValidationError con el mensaje dado.
func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}
