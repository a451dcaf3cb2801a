package dto

import "github.com/shopspring/decimal"

// AddToCartRequest body para POST /api/cart/items.
type AddToCartRequest struct {
	MedicineID string `json:"medicine_id"`
	Quantity   int64  `json:"quantity"`
}

// CartLineResponse línea del carrito en respuestas.
type CartLineResponse struct {
	MedicineID   string          `json:"medicine_id"`
	MedicineName string          `json:"medicine_name"`
	Quantity     int64           `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	LineTotal    decimal.Decimal `json:"line_total"`
}

// CartResponse snapshot del carrito (líneas + total).
type CartResponse struct {
	Items []CartLineResponse `json:"items"`
	Total decimal.Decimal    `json:"total"`
}

// CommitSaleRequest body para POST /api/sales.
// CustomerID opcional: una venta de mostrador puede no tener cliente.
type CommitSaleRequest struct {
	PaymentMethod string `json:"payment_method"`
	CustomerID    string `json:"customer_id,omitempty"`
}

// SaleItemResponse línea persistida de una venta.
type SaleItemResponse struct {
	ID         string          `json:"id"`
	MedicineID string          `json:"medicine_id"`
	Quantity   int64           `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	LineTotal  decimal.Decimal `json:"line_total"`
}

// SaleResponse venta confirmada con su detalle.
type SaleResponse struct {
	ID            string             `json:"id"`
	InvoiceNumber string             `json:"invoice_number"`
	SaleDate      string             `json:"sale_date"`
	CustomerID    string             `json:"customer_id,omitempty"`
	TotalAmount   decimal.Decimal    `json:"total_amount"`
	PaymentMethod string             `json:"payment_method"`
	PaymentStatus string             `json:"payment_status"`
	Items         []SaleItemResponse `json:"items,omitempty"`
}
