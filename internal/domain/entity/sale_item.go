package entity

import "github.com/shopspring/decimal"

// SaleItem representa una línea persistida de una venta: copia congelada de
// la entrada del carrito. Nunca se edita después de creada.
type SaleItem struct {
	ID         string
	SaleID     string
	MedicineID string
	Quantity   int64
	UnitPrice  decimal.Decimal // precio snapshot al momento de agregar al carrito
	LineTotal  decimal.Decimal // Quantity × UnitPrice
}
