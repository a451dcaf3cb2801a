package repository

import "github.com/tu-usuario/farmacia-pro/internal/domain/entity"

// SaleRepository define el puerto de persistencia para Sale y sus líneas.
// Create/CreateItem/NextInvoiceSeq se invocan solo dentro de la transacción
// de commit; las lecturas corren fuera de ella (read skew aceptado).
type SaleRepository interface {
	Create(sale *entity.Sale) error
	CreateItem(item *entity.SaleItem) error
	GetByID(id string) (*entity.Sale, error)
	ListByUser(userID string, limit, offset int) ([]*entity.Sale, error)
	GetItemsBySaleID(saleID string) ([]*entity.SaleItem, error)

	// NextInvoiceSeq incrementa y devuelve el consecutivo de factura de la
	// cuenta. Se ejecuta dentro del commit: si la venta se revierte, el
	// consecutivo consumido se revierte con ella.
	NextInvoiceSeq(userID string) (int64, error)
}
