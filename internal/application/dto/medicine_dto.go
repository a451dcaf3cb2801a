package dto

import "github.com/shopspring/decimal"

// CreateMedicineRequest body para POST /api/medicines.
// ExpiryDate en formato "2006-01-02".
type CreateMedicineRequest struct {
	Name            string          `json:"name"`
	GenericName     string          `json:"generic_name"`
	Manufacturer    string          `json:"manufacturer"`
	QuantityInStock int64           `json:"quantity_in_stock"`
	ReorderLevel    int64           `json:"reorder_level"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	ExpiryDate      string          `json:"expiry_date"`
	BatchNumber     string          `json:"batch_number"`
}

// UpdateMedicineRequest body para PUT /api/medicines/:id. Mismos campos que
// la creación; el stock se actualiza por edición de inventario (las ventas lo
// descuentan por su cuenta).
type UpdateMedicineRequest = CreateMedicineRequest

// MedicineResponse medicamento en respuestas.
type MedicineResponse struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	GenericName     string          `json:"generic_name"`
	Manufacturer    string          `json:"manufacturer"`
	QuantityInStock int64           `json:"quantity_in_stock"`
	ReorderLevel    int64           `json:"reorder_level"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	ExpiryDate      string          `json:"expiry_date"`
	BatchNumber     string          `json:"batch_number"`
	LowStock        bool            `json:"low_stock"`
}
