package entity

import "time"

// Customer representa un cliente de la farmacia. El motor de ventas solo lo
// lee: una venta puede o no referenciar un cliente.
type Customer struct {
	ID        string
	UserID    string
	Name      string
	Email     string
	Phone     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
