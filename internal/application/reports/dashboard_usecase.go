package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/tu-usuario/farmacia-pro/internal/application/dto"
	"github.com/tu-usuario/farmacia-pro/internal/domain/entity"
	"github.com/tu-usuario/farmacia-pro/internal/domain/repository"
)

// expiringSoonDays ventana de "vence pronto" del tablero.
const expiringSoonDays = 30

// DashboardUseCase genera el resumen del tablero de la farmacia: tamaños del
// catálogo y la clientela, conteo de ventas, ingresos acumulados, ítems en
// stock bajo y medicamentos que vencen dentro de los próximos 30 días.
type DashboardUseCase struct {
	reportRepo repository.ReportRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(reportRepo repository.ReportRepository) *DashboardUseCase {
	return &DashboardUseCase{reportRepo: reportRepo}
}

// GetSummary construye el DashboardSummaryDTO de la cuenta.
//
// Tres lecturas en paralelo:
//  1. ListMedicines → total catálogo + stock bajo + vencen pronto
//  2. ListSales     → conteo de ventas + ingresos
//  3. CountCustomers
func (uc *DashboardUseCase) GetSummary(ctx context.Context, userID string) (*dto.DashboardSummaryDTO, error) {
	type medicinesResult struct {
		medicines []*entity.Medicine
		err       error
	}
	type salesResult struct {
		sales []*entity.Sale
		err   error
	}
	type customersResult struct {
		count int
		err   error
	}

	medsCh := make(chan medicinesResult, 1)
	salesCh := make(chan salesResult, 1)
	custCh := make(chan customersResult, 1)

	go func() {
		meds, err := uc.reportRepo.ListMedicines(ctx, userID)
		medsCh <- medicinesResult{meds, err}
	}()
	go func() {
		sales, err := uc.reportRepo.ListSales(ctx, userID)
		salesCh <- salesResult{sales, err}
	}()
	go func() {
		count, err := uc.reportRepo.CountCustomers(ctx, userID)
		custCh <- customersResult{count, err}
	}()

	meds := <-medsCh
	sales := <-salesCh
	customers := <-custCh

	if meds.err != nil {
		return nil, fmt.Errorf("dashboard: catálogo: %w", meds.err)
	}
	if sales.err != nil {
		return nil, fmt.Errorf("dashboard: ventas: %w", sales.err)
	}
	if customers.err != nil {
		return nil, fmt.Errorf("dashboard: clientes: %w", customers.err)
	}

	now := time.Now()
	var lowStock, expiring int
	for _, med := range meds.medicines {
		if med.IsLowStock() {
			lowStock++
		}
		if med.ExpiresWithin(now, expiringSoonDays) {
			expiring++
		}
	}

	return &dto.DashboardSummaryDTO{
		TotalMedicines: len(meds.medicines),
		LowStockItems:  lowStock,
		TotalCustomers: customers.count,
		TotalSales:     len(sales.sales),
		TotalRevenue:   totalRevenue(sales.sales).Round(2),
		ExpiringItems:  expiring,
	}, nil
}
