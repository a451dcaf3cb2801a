package sales

import (
	"context"

	"github.com/tu-usuario/farmacia-pro/internal/domain/entity"
	"github.com/tu-usuario/farmacia-pro/internal/domain/repository"
)

// SalesTxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza la atomicidad del commit de venta:
// cabecera, líneas y decrementos de stock se confirman todos o ninguno.
type SalesTxRunner interface {
	RunSale(ctx context.Context, fn func(
		medRepo repository.MedicineRepository,
		saleRepo repository.SaleRepository,
	) error) error
}

// ReceiptLine línea de venta enriquecida con el nombre del medicamento para
// la representación impresa.
type ReceiptLine struct {
	Item         entity.SaleItem
	MedicineName string
}

// ReceiptPDFGenerator genera el recibo PDF de una venta confirmada.
type ReceiptPDFGenerator interface {
	GenerateReceiptPDF(ctx context.Context, sale *entity.Sale, lines []ReceiptLine) ([]byte, error)
}
