package reports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/farmacia-pro/internal/domain/entity"
)

func TestGetSummary_ResumenCompleto(t *testing.T) {
	now := time.Now()
	bajoStock := reportMedicine("m1", "Amoxicilina", 1, 5)
	bajoStock.ExpiryDate = now.AddDate(1, 0, 0)
	vencePronto := reportMedicine("m2", "Ibuprofeno", 20, 5)
	vencePronto.ExpiryDate = now.AddDate(0, 0, 10)
	sano := reportMedicine("m3", "Paracetamol", 20, 5)
	sano.ExpiryDate = now.AddDate(2, 0, 0)

	repo := &fakeReportRepo{
		medicines: []*entity.Medicine{bajoStock, vencePronto, sano},
		sales: []*entity.Sale{
			reportSale("s1", "2026-08-20", "10.00"),
			reportSale("s2", "2026-08-21", "5.555"),
		},
		customers: 4,
	}
	uc := NewDashboardUseCase(repo)

	out, err := uc.GetSummary(context.Background(), "user-1")
	require.NoError(t, err)

	assert.Equal(t, 3, out.TotalMedicines)
	assert.Equal(t, 1, out.LowStockItems)
	assert.Equal(t, 1, out.ExpiringItems)
	assert.Equal(t, 4, out.TotalCustomers)
	assert.Equal(t, 2, out.TotalSales)
	assert.Equal(t, "15.56", out.TotalRevenue.StringFixed(2), "ingresos redondeados a 2 decimales")
}

func TestGetSummary_SinDatos(t *testing.T) {
	uc := NewDashboardUseCase(&fakeReportRepo{})

	out, err := uc.GetSummary(context.Background(), "user-1")
	require.NoError(t, err)

	assert.Zero(t, out.TotalMedicines)
	assert.Zero(t, out.LowStockItems)
	assert.Zero(t, out.ExpiringItems)
	assert.Zero(t, out.TotalCustomers)
	assert.Zero(t, out.TotalSales)
	assert.True(t, out.TotalRevenue.IsZero())
}
