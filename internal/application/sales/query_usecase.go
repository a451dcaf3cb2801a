package sales

import (
	"fmt"

	"github.com/tu-usuario/farmacia-pro/internal/application/dto"
	"github.com/tu-usuario/farmacia-pro/internal/domain"
	"github.com/tu-usuario/farmacia-pro/internal/domain/entity"
	"github.com/tu-usuario/farmacia-pro/internal/domain/repository"
)

// SaleQueryUseCase lecturas sobre ventas ya confirmadas (listado e
// inspección). No muta nada.
type SaleQueryUseCase struct {
	saleRepo repository.SaleRepository
}

// NewSaleQueryUseCase construye el caso de uso.
func NewSaleQueryUseCase(saleRepo repository.SaleRepository) *SaleQueryUseCase {
	return &SaleQueryUseCase{saleRepo: saleRepo}
}

// List lista las ventas de la cuenta, más recientes primero.
func (uc *SaleQueryUseCase) List(userID string, limit, offset int) ([]*dto.SaleResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	sales, err := uc.saleRepo.ListByUser(userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listar ventas: %w", err)
	}
	out := make([]*dto.SaleResponse, 0, len(sales))
	for _, sale := range sales {
		out = append(out, toSaleResponse(sale, nil))
	}
	return out, nil
}

// Get devuelve una venta con su detalle completo.
func (uc *SaleQueryUseCase) Get(userID, saleID string) (*dto.SaleResponse, error) {
	sale, items, err := uc.loadSale(userID, saleID)
	if err != nil {
		return nil, err
	}
	return toSaleResponse(sale, items), nil
}

// loadSale carga y autoriza la venta con sus líneas (compartido con el recibo).
func (uc *SaleQueryUseCase) loadSale(userID, saleID string) (*entity.Sale, []*entity.SaleItem, error) {
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, nil, fmt.Errorf("obtener venta: %w", err)
	}
	if sale == nil {
		return nil, nil, domain.ErrNotFound
	}
	if sale.UserID != userID {
		return nil, nil, domain.ErrForbidden
	}
	items, err := uc.saleRepo.GetItemsBySaleID(saleID)
	if err != nil {
		return nil, nil, fmt.Errorf("obtener líneas de venta: %w", err)
	}
	return sale, items, nil
}
