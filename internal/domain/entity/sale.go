package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago aceptados.
const (
	PaymentMethodCash      = "cash"
	PaymentMethodCard      = "card"
	PaymentMethodCheck     = "check"
	PaymentMethodInsurance = "insurance"
)

// Estados de pago de una venta.
const (
	PaymentStatusCompleted = "completed"
)

// ValidPaymentMethod indica si el método de pago está en el enumerado.
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodCheck, PaymentMethodInsurance:
		return true
	}
	return false
}

// Sale representa la cabecera de una venta ya confirmada. Inmutable después
// del commit: TotalAmount es la suma exacta de los totales de sus líneas.
type Sale struct {
	ID            string
	UserID        string
	InvoiceNumber string // único por cuenta, generado dentro del commit
	SaleDate      time.Time
	CustomerID    string // opcional; vacío si la venta fue sin cliente
	TotalAmount   decimal.Decimal
	PaymentMethod string
	PaymentStatus string
	CreatedAt     time.Time
}
