package sales

import (
	"sync"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/farmacia-pro/internal/domain/cart"
	"github.com/tu-usuario/farmacia-pro/internal/domain/entity"
)

// SessionStore guarda en memoria el carrito activo de cada cuenta. El carrito
// es de un solo dueño; el mutex solo protege el mapa frente a peticiones HTTP
// concurrentes de la misma instancia. Los carritos se descartan al cancelar o
// tras un commit exitoso, nunca se persisten.
type SessionStore struct {
	mu    sync.RWMutex
	carts map[string]*cart.Cart
}

// NewSessionStore construye el almacén de carritos.
func NewSessionStore() *SessionStore {
	return &SessionStore{carts: make(map[string]*cart.Cart)}
}

// Add agrega al carrito de la cuenta, creándolo si no existe.
func (s *SessionStore) Add(userID string, med *entity.Medicine, qty int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.carts[userID]
	if !ok {
		c = cart.New()
		s.carts[userID] = c
	}
	return c.Add(med, qty)
}

// Remove quita la línea del carrito de la cuenta (idempotente).
func (s *SessionStore) Remove(userID, medicineID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.carts[userID]; ok {
		c.Remove(medicineID)
	}
}

// Snapshot devuelve una copia de las líneas y el total del carrito.
func (s *SessionStore) Snapshot(userID string) ([]cart.Line, decimal.Decimal) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.carts[userID]
	if !ok {
		return nil, decimal.Zero
	}
	return c.Lines(), c.Total()
}

// Clear descarta el carrito de la cuenta.
func (s *SessionStore) Clear(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, userID)
}
