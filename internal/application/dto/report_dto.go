package dto

import "github.com/shopspring/decimal"

// DailySaleDTO un punto de la tendencia de ventas diarias.
type DailySaleDTO struct {
	Date   string          `json:"date"` // 2006-01-02, fecha local de la venta
	Amount decimal.Decimal `json:"amount"`
}

// TopMedicineDTO unidades acumuladas por nombre de medicamento.
type TopMedicineDTO struct {
	Name     string `json:"name"`
	Quantity int64  `json:"quantity"`
}

// InventoryBucketDTO conteo de un bucket de stock (low/normal/high).
type InventoryBucketDTO struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// ReportDTO respuesta de GET /api/reports. Derivado, no almacenado: se
// recalcula por petición desde las ventas, líneas y catálogo de la cuenta.
type ReportDTO struct {
	DailySales        []DailySaleDTO       `json:"daily_sales"`
	TopMedicines      []TopMedicineDTO     `json:"top_medicines"`
	InventoryStatus   []InventoryBucketDTO `json:"inventory_status"`
	TotalRevenue      decimal.Decimal      `json:"total_revenue"`
	TotalTransactions int                  `json:"total_transactions"`
}

// DashboardSummaryDTO respuesta de GET /api/dashboard.
type DashboardSummaryDTO struct {
	TotalMedicines int             `json:"total_medicines"`
	LowStockItems  int             `json:"low_stock_items"`
	TotalCustomers int             `json:"total_customers"`
	TotalSales     int             `json:"total_sales"`
	TotalRevenue   decimal.Decimal `json:"total_revenue"`
	ExpiringItems  int             `json:"expiring_items"` // vencen en ≤ 30 días
}
