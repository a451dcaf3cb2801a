package reports

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/farmacia-pro/internal/application/dto"
	"github.com/tu-usuario/farmacia-pro/internal/domain/entity"
)

// fakeReportRepo sirve datos fijos; los tests comprueban la agregación, no
// la lectura.
type fakeReportRepo struct {
	sales     []*entity.Sale
	items     []*entity.SaleItem
	medicines []*entity.Medicine
	customers int
}

func (r *fakeReportRepo) ListSales(_ context.Context, _ string) ([]*entity.Sale, error) {
	return r.sales, nil
}
func (r *fakeReportRepo) ListSaleItems(_ context.Context, _ string) ([]*entity.SaleItem, error) {
	return r.items, nil
}
func (r *fakeReportRepo) ListMedicines(_ context.Context, _ string) ([]*entity.Medicine, error) {
	return r.medicines, nil
}
func (r *fakeReportRepo) CountCustomers(_ context.Context, _ string) (int, error) {
	return r.customers, nil
}

// countingCache cuenta hits/sets para verificar el cacheo del reporte.
type countingCache struct {
	stored map[string]*dto.ReportDTO
	gets   int
	sets   int
}

func newCountingCache() *countingCache {
	return &countingCache{stored: make(map[string]*dto.ReportDTO)}
}

func (c *countingCache) Get(_ context.Context, key string) (*dto.ReportDTO, bool, error) {
	c.gets++
	v, ok := c.stored[key]
	return v, ok, nil
}

func (c *countingCache) Set(_ context.Context, key string, value *dto.ReportDTO, _ time.Duration) error {
	c.sets++
	c.stored[key] = value
	return nil
}

func amount(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func day(s string) time.Time {
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		panic(err)
	}
	return t
}

func reportSale(id, date, total string) *entity.Sale {
	return &entity.Sale{ID: id, UserID: "user-1", SaleDate: day(date), TotalAmount: amount(total)}
}

func reportMedicine(id, name string, stock, reorder int64) *entity.Medicine {
	return &entity.Medicine{ID: id, UserID: "user-1", Name: name, QuantityInStock: stock, ReorderLevel: reorder}
}

func saleItem(medicineID string, qty int64) *entity.SaleItem {
	return &entity.SaleItem{SaleID: "s", MedicineID: medicineID, Quantity: qty}
}

func TestGetReport_SinDatosDevuelveCeros(t *testing.T) {
	uc := NewReportUseCase(&fakeReportRepo{}, nil)

	out, err := uc.GetReport(context.Background(), "user-1", 0)
	require.NoError(t, err)

	assert.Empty(t, out.DailySales)
	assert.Empty(t, out.TopMedicines)
	assert.True(t, out.TotalRevenue.IsZero())
	assert.Zero(t, out.TotalTransactions)

	require.Len(t, out.InventoryStatus, 3, "los tres buckets se emiten siempre")
	for _, bucket := range out.InventoryStatus {
		assert.Zero(t, bucket.Count)
	}
}

func TestGetReport_TendenciaDiaria(t *testing.T) {
	repo := &fakeReportRepo{
		sales: []*entity.Sale{
			reportSale("s1", "2026-08-20", "10.00"),
			reportSale("s2", "2026-08-20", "5.50"),
			reportSale("s3", "2026-08-22", "3.00"),
			reportSale("s4", "2026-08-10", "100.00"),
		},
	}
	uc := NewReportUseCase(repo, nil)

	out, err := uc.GetReport(context.Background(), "user-1", 2)
	require.NoError(t, err)

	// Solo las últimas 2 fechas presentes, ascendentes, sin zero-fill.
	require.Len(t, out.DailySales, 2)
	assert.Equal(t, "2026-08-20", out.DailySales[0].Date)
	assert.True(t, out.DailySales[0].Amount.Equal(amount("15.50")))
	assert.Equal(t, "2026-08-22", out.DailySales[1].Date)
	assert.True(t, out.DailySales[1].Amount.Equal(amount("3.00")))

	assert.True(t, out.TotalRevenue.Equal(amount("118.50")), "los ingresos totales sí incluyen todas las ventas")
	assert.Equal(t, 4, out.TotalTransactions)
}

func TestGetReport_TopMedicamentos(t *testing.T) {
	repo := &fakeReportRepo{
		medicines: []*entity.Medicine{
			reportMedicine("m1", "Amoxicilina", 10, 2),
			reportMedicine("m2", "Ibuprofeno", 10, 2),
			reportMedicine("m3", "Paracetamol", 10, 2),
			reportMedicine("m4", "Loratadina", 10, 2),
			reportMedicine("m5", "Omeprazol", 10, 2),
			reportMedicine("m6", "Salbutamol", 10, 2),
		},
		items: []*entity.SaleItem{
			saleItem("m1", 3), saleItem("m1", 4), // Amoxicilina: 7
			saleItem("m2", 7),  // Ibuprofeno: 7 (empata, desempate por nombre)
			saleItem("m3", 9),  // Paracetamol: 9
			saleItem("m4", 1),  // Loratadina: 1
			saleItem("m5", 2),  // Omeprazol: 2
			saleItem("m6", 5),  // Salbutamol: 5
			saleItem("borrado", 99), // medicamento fuera de catálogo: se omite
		},
	}
	uc := NewReportUseCase(repo, nil)

	out, err := uc.GetReport(context.Background(), "user-1", 7)
	require.NoError(t, err)

	require.Len(t, out.TopMedicines, TopMedicinesLimit)
	assert.Equal(t, "Paracetamol", out.TopMedicines[0].Name)
	assert.Equal(t, "Amoxicilina", out.TopMedicines[1].Name, "empate 7-7 resuelto por nombre")
	assert.Equal(t, "Ibuprofeno", out.TopMedicines[2].Name)
	assert.Equal(t, "Salbutamol", out.TopMedicines[3].Name)
	assert.Equal(t, "Omeprazol", out.TopMedicines[4].Name)
}

func TestGetReport_BucketsDeInventario(t *testing.T) {
	repo := &fakeReportRepo{
		medicines: []*entity.Medicine{
			reportMedicine("m1", "A", 1, 5),  // low: 1 < 5
			reportMedicine("m2", "B", 0, 5),  // low
			reportMedicine("m3", "C", 5, 5),  // normal: 5 < 10
			reportMedicine("m4", "D", 9, 5),  // normal
			reportMedicine("m5", "E", 10, 5), // high: 10 >= 2×5
		},
	}
	uc := NewReportUseCase(repo, nil)

	out, err := uc.GetReport(context.Background(), "user-1", 7)
	require.NoError(t, err)

	require.Len(t, out.InventoryStatus, 3)
	byStatus := make(map[string]int)
	total := 0
	for _, bucket := range out.InventoryStatus {
		byStatus[bucket.Status] = bucket.Count
		total += bucket.Count
	}
	assert.Equal(t, 2, byStatus[BucketLow])
	assert.Equal(t, 2, byStatus[BucketNormal])
	assert.Equal(t, 1, byStatus[BucketHigh])
	assert.Equal(t, len(repo.medicines), total, "cada medicamento cae en exactamente un bucket")
}

func TestGetReport_Determinista(t *testing.T) {
	repo := &fakeReportRepo{
		sales: []*entity.Sale{
			reportSale("s1", "2026-08-20", "10.00"),
			reportSale("s2", "2026-08-21", "5.00"),
		},
		medicines: []*entity.Medicine{
			reportMedicine("m1", "Amoxicilina", 10, 2),
			reportMedicine("m2", "Ibuprofeno", 10, 2),
			reportMedicine("m3", "Paracetamol", 10, 2),
		},
		items: []*entity.SaleItem{
			saleItem("m1", 4), saleItem("m2", 4), saleItem("m3", 4),
		},
	}
	uc := NewReportUseCase(repo, nil)

	first, err := uc.GetReport(context.Background(), "user-1", 7)
	require.NoError(t, err)
	second, err := uc.GetReport(context.Background(), "user-1", 7)
	require.NoError(t, err)

	assert.Equal(t, first, second, "mismo estado persistido, misma salida")
}

func TestGetReport_UsaCache(t *testing.T) {
	repo := &fakeReportRepo{
		sales: []*entity.Sale{reportSale("s1", "2026-08-20", "10.00")},
	}
	cache := newCountingCache()
	uc := NewReportUseCase(repo, cache)

	first, err := uc.GetReport(context.Background(), "user-1", 7)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.sets)

	// Segunda petición: hit, sin recalcular ni re-cachear.
	second, err := uc.GetReport(context.Background(), "user-1", 7)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 2, cache.gets)
	assert.Equal(t, 1, cache.sets)

	// Una ventana distinta usa otra clave.
	_, err = uc.GetReport(context.Background(), "user-1", 30)
	require.NoError(t, err)
	assert.Equal(t, 2, cache.sets)
}
