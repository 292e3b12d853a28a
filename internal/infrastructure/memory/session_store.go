// Package memory implementa los almacenes en memoria del proceso: sesiones de
// diálogo y la ventana anti-spam de /start. Estado no durable por diseño: un
// reinicio del proceso lo descarta todo.
package memory

import (
	"sync"

	"github.com/jhoicas/invoice-bot/internal/application/dialogue"
)

// SessionStore implementa dialogue.Store sobre un mapa protegido por RWMutex.
// Una entrada por identidad de chat; Put sobreescribe, nunca fusiona.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[int64]*dialogue.Session
}

// NewSessionStore construye el almacén vacío.
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[int64]*dialogue.Session)}
}

// Get devuelve la sesión de la identidad, si existe.
func (st *SessionStore) Get(chatID int64) (*dialogue.Session, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[chatID]
	return s, ok
}

// Put guarda (o reemplaza) la sesión de la identidad.
func (st *SessionStore) Put(chatID int64, s *dialogue.Session) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.sessions[chatID] = s
}

// Clear elimina la sesión de la identidad. Idempotente.
func (st *SessionStore) Clear(chatID int64) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, chatID)
}

// Len cantidad de sesiones vivas (diagnóstico).
func (st *SessionStore) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}
