package cart_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/farmacia-pro/internal/domain"
	"github.com/tu-usuario/farmacia-pro/internal/domain/cart"
	"github.com/tu-usuario/farmacia-pro/internal/domain/entity"
)

// medicamento de prueba: stock 10, precio 2.00
func testMedicine(id, name string, stock int64, price string) *entity.Medicine {
	return &entity.Medicine{
		ID:              id,
		UserID:          "user-1",
		Name:            name,
		QuantityInStock: stock,
		ReorderLevel:    5,
		UnitPrice:       decimal.RequireFromString(price),
		ExpiryDate:      time.Now().AddDate(1, 0, 0),
	}
}

func TestAdd_LineaNueva(t *testing.T) {
	c := cart.New()
	med := testMedicine("med-a", "Paracetamol", 10, "2.00")

	require.NoError(t, c.Add(med, 4))

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "med-a", lines[0].MedicineID)
	assert.EqualValues(t, 4, lines[0].Quantity)
	assert.True(t, lines[0].LineTotal.Equal(decimal.RequireFromString("8.00")),
		"total de línea = cantidad × precio snapshot")
	assert.True(t, c.Total().Equal(decimal.RequireFromString("8.00")))
}

func TestAdd_CantidadInvalida(t *testing.T) {
	c := cart.New()
	med := testMedicine("med-a", "Paracetamol", 10, "2.00")

	assert.ErrorIs(t, c.Add(med, 0), domain.ErrInvalidQuantity)
	assert.ErrorIs(t, c.Add(med, -3), domain.ErrInvalidQuantity)
	assert.True(t, c.Empty(), "el carrito no debe admitir líneas con cantidad inválida")
}

func TestAdd_MedicamentoDesconocido(t *testing.T) {
	c := cart.New()
	assert.ErrorIs(t, c.Add(nil, 2), domain.ErrUnknownMedicine)
	assert.True(t, c.Empty())
}

func TestAdd_StockInsuficiente(t *testing.T) {
	c := cart.New()
	med := testMedicine("med-b", "Amoxicilina", 3, "5.00")

	assert.ErrorIs(t, c.Add(med, 5), domain.ErrInsufficientStock)
	assert.True(t, c.Empty(), "un add rechazado no deja rastro en el carrito")
}

// Agregar dos veces el mismo medicamento fusiona en una sola línea con la
// cantidad sumada; nunca produce líneas duplicadas.
func TestAdd_FusionaLineaExistente(t *testing.T) {
	c := cart.New()
	med := testMedicine("med-a", "Paracetamol", 10, "2.00")

	require.NoError(t, c.Add(med, 4))
	require.NoError(t, c.Add(med, 3))

	lines := c.Lines()
	require.Len(t, lines, 1, "el mismo medicamento nunca genera dos líneas")
	assert.EqualValues(t, 7, lines[0].Quantity)
	assert.True(t, lines[0].LineTotal.Equal(decimal.RequireFromString("14.00")))
}

// La fusión usa el precio snapshot original, no una relectura del catálogo.
func TestAdd_FusionUsaPrecioSnapshotOriginal(t *testing.T) {
	c := cart.New()
	med := testMedicine("med-a", "Paracetamol", 10, "2.00")
	require.NoError(t, c.Add(med, 2))

	// El catálogo cambió de precio entre los dos adds.
	repriced := testMedicine("med-a", "Paracetamol", 10, "9.99")
	require.NoError(t, c.Add(repriced, 3))

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.True(t, lines[0].UnitPrice.Equal(decimal.RequireFromString("2.00")),
		"el precio de la línea es el snapshot del primer add")
	assert.True(t, lines[0].LineTotal.Equal(decimal.RequireFromString("10.00")))
}

// La cantidad acumulada (línea existente + nuevo add) se valida contra el
// stock; si lo excede, el add falla y la línea queda como estaba.
func TestAdd_StockInsuficienteAcumulado(t *testing.T) {
	c := cart.New()
	med := testMedicine("med-b", "Amoxicilina", 3, "5.00")
	require.NoError(t, c.Add(med, 2))

	assert.ErrorIs(t, c.Add(med, 2), domain.ErrInsufficientStock)

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.EqualValues(t, 2, lines[0].Quantity, "la línea previa no se modifica en un add rechazado")
}

func TestRemove_Idempotente(t *testing.T) {
	c := cart.New()
	med := testMedicine("med-a", "Paracetamol", 10, "2.00")
	require.NoError(t, c.Add(med, 1))

	c.Remove("med-a")
	assert.True(t, c.Empty())

	// Quitar algo ausente no es un error.
	c.Remove("med-a")
	c.Remove("no-existe")
	assert.True(t, c.Empty())
}

// El total siempre es la suma de cantidad × precio unitario de cada línea,
// recalculado después de cada add/remove.
func TestTotal_RecalculadoTrasCadaOperacion(t *testing.T) {
	c := cart.New()
	a := testMedicine("med-a", "Paracetamol", 10, "2.00")
	b := testMedicine("med-b", "Amoxicilina", 3, "5.00")

	require.NoError(t, c.Add(a, 4))
	require.NoError(t, c.Add(b, 3))
	assert.True(t, c.Total().Equal(decimal.RequireFromString("23.00")))

	c.Remove("med-b")
	assert.True(t, c.Total().Equal(decimal.RequireFromString("8.00")))

	c.Remove("med-a")
	assert.True(t, c.Total().IsZero(), "carrito vacío suma cero")
}

// Lines devuelve una copia: mutarla no afecta el estado interno.
func TestLines_EsSnapshot(t *testing.T) {
	c := cart.New()
	med := testMedicine("med-a", "Paracetamol", 10, "2.00")
	require.NoError(t, c.Add(med, 4))

	lines := c.Lines()
	lines[0].Quantity = 999

	again := c.Lines()
	assert.EqualValues(t, 4, again[0].Quantity)
}
