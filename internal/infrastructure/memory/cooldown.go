package memory

import (
	"sync"
	"time"
)

// Cooldown limita la frecuencia de un comando por identidad: dentro de la
// ventana la llamada se descarta en silencio. Objeto propio en lugar de un
// mapa global mutable.
type Cooldown struct {
	mu     sync.Mutex
	window time.Duration
	last   map[int64]time.Time
	clock  func() time.Time
}

// NewCooldown construye la ventana. clock nil usa time.Now.
func NewCooldown(window time.Duration, clock func() time.Time) *Cooldown {
	if clock == nil {
		clock = time.Now
	}
	return &Cooldown{
		window: window,
		last:   make(map[int64]time.Time),
		clock:  clock,
	}
}

// Allow devuelve true si la identidad puede ejecutar el comando ahora, y en
// ese caso registra el instante.
func (c *Cooldown) Allow(chatID int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock()
	if prev, ok := c.last[chatID]; ok && now.Sub(prev) < c.window {
		return false
	}
	c.last[chatID] = now
	return true
}
