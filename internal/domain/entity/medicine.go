package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Medicine representa un medicamento del catálogo de la farmacia.
// QuantityInStock nunca es negativo: las ventas lo descuentan con un
// decremento condicional dentro de la transacción de commit.
type Medicine struct {
	ID              string
	UserID          string // cuenta propietaria; todo acceso se filtra por ella
	Name            string
	GenericName     string
	Manufacturer    string
	QuantityInStock int64
	ReorderLevel    int64           // umbral bajo el cual el stock se considera bajo
	UnitPrice       decimal.Decimal // precio de venta por unidad
	ExpiryDate      time.Time
	BatchNumber     string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsLowStock indica si el stock está por debajo del nivel de reorden.
func (m *Medicine) IsLowStock() bool {
	return m.QuantityInStock < m.ReorderLevel
}

// ExpiresWithin indica si el medicamento vence dentro de los próximos `days`
// días contados desde `now` (excluye los ya vencidos).
func (m *Medicine) ExpiresWithin(now time.Time, days int) bool {
	if m.ExpiryDate.IsZero() {
		return false
	}
	limit := now.AddDate(0, 0, days)
	return m.ExpiryDate.After(now) && !m.ExpiryDate.After(limit)
}
