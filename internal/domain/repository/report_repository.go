package repository

import (
	"context"

	"github.com/tu-usuario/farmacia-pro/internal/domain/entity"
)

// ReportRepository define las lecturas para el agregador de reportes.
// Las implementaciones son read-only y no requieren locking: los reportes
// toleran leer un estado que un commit concurrente está mutando.
type ReportRepository interface {
	// ListSales devuelve todas las ventas confirmadas de la cuenta.
	ListSales(ctx context.Context, userID string) ([]*entity.Sale, error)
	// ListSaleItems devuelve todas las líneas de venta de la cuenta.
	ListSaleItems(ctx context.Context, userID string) ([]*entity.SaleItem, error)
	// ListMedicines devuelve el catálogo completo de la cuenta.
	ListMedicines(ctx context.Context, userID string) ([]*entity.Medicine, error)
	// CountCustomers devuelve el número de clientes de la cuenta.
	CountCustomers(ctx context.Context, userID string) (int, error)
}
