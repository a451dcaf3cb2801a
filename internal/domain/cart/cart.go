// Package cart implementa el carrito de venta en memoria: agregación por
// sesión de líneas solicitadas contra snapshots del catálogo. El carrito es
// de un solo dueño (la sesión que intenta la venta); no se comparte entre
// sesiones concurrentes.
package cart

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/farmacia-pro/internal/domain"
	"github.com/tu-usuario/farmacia-pro/internal/domain/entity"
)

// Line es una entrada del carrito previa al commit. UnitPrice es el snapshot
// tomado al momento del primer Add de ese medicamento; los merges posteriores
// recalculan LineTotal con ese mismo precio, nunca con una relectura.
type Line struct {
	MedicineID   string
	MedicineName string
	Quantity     int64
	UnitPrice    decimal.Decimal
	LineTotal    decimal.Decimal
}

// Cart acumula líneas en orden de inserción. Un medicamento aparece a lo sumo
// una vez: agregarlo de nuevo suma cantidades sobre la línea existente.
type Cart struct {
	lines []*Line
	index map[string]*Line
}

// New construye un carrito vacío.
func New() *Cart {
	return &Cart{index: make(map[string]*Line)}
}

// Add valida y agrega `qty` unidades del medicamento al carrito.
// La validación de stock es contra el valor leído al construir el carrito
// (el snapshot `med`); el commit re-valida contra el catálogo actual.
func (c *Cart) Add(med *entity.Medicine, qty int64) error {
	if qty <= 0 {
		return domain.ErrInvalidQuantity
	}
	if med == nil {
		return domain.ErrUnknownMedicine
	}
	if existing, ok := c.index[med.ID]; ok {
		// Cantidad acumulada (lo ya pedido más lo nuevo) contra el stock actual.
		cumulative := existing.Quantity + qty
		if cumulative > med.QuantityInStock {
			return domain.ErrInsufficientStock
		}
		existing.Quantity = cumulative
		existing.LineTotal = existing.UnitPrice.Mul(decimal.NewFromInt(cumulative))
		return nil
	}
	if qty > med.QuantityInStock {
		return domain.ErrInsufficientStock
	}
	line := &Line{
		MedicineID:   med.ID,
		MedicineName: med.Name,
		Quantity:     qty,
		UnitPrice:    med.UnitPrice,
		LineTotal:    med.UnitPrice.Mul(decimal.NewFromInt(qty)),
	}
	c.lines = append(c.lines, line)
	c.index[med.ID] = line
	return nil
}

// Remove quita la línea del medicamento. Idempotente: no falla si no existe.
func (c *Cart) Remove(medicineID string) {
	if _, ok := c.index[medicineID]; !ok {
		return
	}
	delete(c.index, medicineID)
	for i, line := range c.lines {
		if line.MedicineID == medicineID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// Total devuelve la suma de los totales de línea. Nunca negativo: las líneas
// solo admiten cantidades y precios no negativos.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.lines {
		total = total.Add(line.LineTotal)
	}
	return total
}

// Lines devuelve una copia de las líneas en orden de inserción (snapshot
// read-only; mutar la copia no afecta al carrito).
func (c *Cart) Lines() []Line {
	out := make([]Line, 0, len(c.lines))
	for _, line := range c.lines {
		out = append(out, *line)
	}
	return out
}

// Len devuelve el número de líneas.
func (c *Cart) Len() int { return len(c.lines) }

// Empty indica si el carrito no tiene líneas.
func (c *Cart) Empty() bool { return len(c.lines) == 0 }
