// Package reports contiene el agregador de reportes del negocio: tendencia
// de ventas diarias, medicamentos más vendidos, distribución de stock y
// totales. Todo es derivado: se recalcula por petición desde las ventas,
// líneas y catálogo persistidos de la cuenta, sin mutar nada.
package reports

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/farmacia-pro/internal/application/dto"
	"github.com/tu-usuario/farmacia-pro/internal/domain/entity"
	"github.com/tu-usuario/farmacia-pro/internal/domain/repository"
)

const (
	// DefaultTrendDays fechas distintas emitidas en la tendencia diaria.
	DefaultTrendDays = 7
	// TopMedicinesLimit máximo de entradas en el ranking de más vendidos.
	TopMedicinesLimit = 5

	cacheTTL = 30 * time.Second
)

// Buckets de distribución de inventario.
const (
	BucketLow    = "low"
	BucketNormal = "normal"
	BucketHigh   = "high"
)

// ReportUseCase deriva el reporte de la cuenta. Las agregaciones son
// estables y reproducibles: mismo estado persistido, misma salida, con
// desempates explícitos (nunca dependen del orden de iteración de mapas).
type ReportUseCase struct {
	reportRepo repository.ReportRepository
	cache      ReportCache
}

// NewReportUseCase construye el caso de uso. `cache` puede ser NoopReportCache.
func NewReportUseCase(reportRepo repository.ReportRepository, cache ReportCache) *ReportUseCase {
	if cache == nil {
		cache = NoopReportCache{}
	}
	return &ReportUseCase{reportRepo: reportRepo, cache: cache}
}

// GetReport calcula el reporte completo de la cuenta. `days` acota la
// tendencia diaria (<= 0 usa el default de 7 fechas).
//
// Nunca falla por ausencia de datos: sin ventas ni catálogo devuelve listas
// vacías, buckets en cero y totales en cero.
func (uc *ReportUseCase) GetReport(ctx context.Context, userID string, days int) (*dto.ReportDTO, error) {
	if days <= 0 {
		days = DefaultTrendDays
	}

	key := fmt.Sprintf("reports:%s:%d", userID, days)
	if cached, ok, err := uc.cache.Get(ctx, key); err == nil && ok {
		return cached, nil
	}

	sales, err := uc.reportRepo.ListSales(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("reporte: leer ventas: %w", err)
	}
	items, err := uc.reportRepo.ListSaleItems(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("reporte: leer líneas de venta: %w", err)
	}
	medicines, err := uc.reportRepo.ListMedicines(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("reporte: leer catálogo: %w", err)
	}

	report := &dto.ReportDTO{
		DailySales:        dailySalesTrend(sales, days),
		TopMedicines:      topMedicines(items, medicines),
		InventoryStatus:   inventoryBuckets(medicines),
		TotalRevenue:      totalRevenue(sales),
		TotalTransactions: len(sales),
	}

	// Cacheo best-effort: un fallo del cache nunca tumba el reporte.
	_ = uc.cache.Set(ctx, key, report, cacheTTL)
	return report, nil
}

// dailySalesTrend agrupa las ventas por fecha local de venta, suma el total
// por fecha y devuelve las últimas `days` fechas PRESENTES en orden
// ascendente. Las fechas sin ventas no se emiten (sin zero-fill).
func dailySalesTrend(sales []*entity.Sale, days int) []dto.DailySaleDTO {
	byDate := make(map[string]decimal.Decimal)
	for _, sale := range sales {
		date := sale.SaleDate.Format("2006-01-02")
		byDate[date] = byDate[date].Add(sale.TotalAmount)
	}
	dates := make([]string, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	if len(dates) > days {
		dates = dates[len(dates)-days:]
	}
	out := make([]dto.DailySaleDTO, 0, len(dates))
	for _, date := range dates {
		out = append(out, dto.DailySaleDTO{Date: date, Amount: byDate[date]})
	}
	return out
}

// topMedicines acumula unidades vendidas por nombre de medicamento y devuelve
// los TopMedicinesLimit más vendidos. Orden: cantidad descendente, desempate
// por nombre ascendente (determinismo). Las líneas cuyo medicamento ya no
// existe en el catálogo se omiten, igual que en el reporte original.
func topMedicines(items []*entity.SaleItem, medicines []*entity.Medicine) []dto.TopMedicineDTO {
	nameByID := make(map[string]string, len(medicines))
	for _, med := range medicines {
		nameByID[med.ID] = med.Name
	}
	qtyByName := make(map[string]int64)
	for _, item := range items {
		name, ok := nameByID[item.MedicineID]
		if !ok {
			continue
		}
		qtyByName[name] += item.Quantity
	}
	ranked := make([]dto.TopMedicineDTO, 0, len(qtyByName))
	for name, qty := range qtyByName {
		ranked = append(ranked, dto.TopMedicineDTO{Name: name, Quantity: qty})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Quantity != ranked[j].Quantity {
			return ranked[i].Quantity > ranked[j].Quantity
		}
		return ranked[i].Name < ranked[j].Name
	})
	if len(ranked) > TopMedicinesLimit {
		ranked = ranked[:TopMedicinesLimit]
	}
	return ranked
}

// inventoryBuckets clasifica cada medicamento en exactamente un bucket:
// low (< reorden), high (>= 2×reorden), normal el resto. Siempre emite los
// tres conteos, incluso en cero; la suma es el total del catálogo.
func inventoryBuckets(medicines []*entity.Medicine) []dto.InventoryBucketDTO {
	var low, normal, high int
	for _, med := range medicines {
		switch {
		case med.QuantityInStock < med.ReorderLevel:
			low++
		case med.QuantityInStock >= 2*med.ReorderLevel:
			high++
		default:
			normal++
		}
	}
	return []dto.InventoryBucketDTO{
		{Status: BucketLow, Count: low},
		{Status: BucketNormal, Count: normal},
		{Status: BucketHigh, Count: high},
	}
}

// totalRevenue suma exacta (decimal) del total de todas las ventas.
func totalRevenue(sales []*entity.Sale) decimal.Decimal {
	total := decimal.Zero
	for _, sale := range sales {
		total = total.Add(sale.TotalAmount)
	}
	return total
}
