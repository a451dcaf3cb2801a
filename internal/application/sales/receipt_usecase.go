package sales

import (
	"context"
	"fmt"

	"github.com/tu-usuario/farmacia-pro/internal/domain"
	"github.com/tu-usuario/farmacia-pro/internal/domain/repository"
)

// ReceiptUseCase genera la representación impresa (PDF) de una venta.
type ReceiptUseCase struct {
	saleRepo     repository.SaleRepository
	medicineRepo repository.MedicineRepository
	generator    ReceiptPDFGenerator
}

// NewReceiptUseCase construye el caso de uso.
func NewReceiptUseCase(
	saleRepo repository.SaleRepository,
	medicineRepo repository.MedicineRepository,
	generator ReceiptPDFGenerator,
) *ReceiptUseCase {
	return &ReceiptUseCase{
		saleRepo:     saleRepo,
		medicineRepo: medicineRepo,
		generator:    generator,
	}
}

// DownloadReceiptPDF recupera la venta con sus líneas, las enriquece con el
// nombre de cada medicamento y genera el recibo PDF.
//
// Retorna:
//   - (pdfBytes, filename, nil) si todo sale bien.
//   - domain.ErrNotFound        si la venta no existe.
//   - domain.ErrForbidden       si la venta no pertenece a la cuenta.
func (uc *ReceiptUseCase) DownloadReceiptPDF(ctx context.Context, userID, saleID string) (pdfBytes []byte, filename string, err error) {
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, "", fmt.Errorf("recibo: obtener venta: %w", err)
	}
	if sale == nil {
		return nil, "", domain.ErrNotFound
	}
	if sale.UserID != userID {
		return nil, "", domain.ErrForbidden
	}

	items, err := uc.saleRepo.GetItemsBySaleID(saleID)
	if err != nil {
		return nil, "", fmt.Errorf("recibo: obtener líneas: %w", err)
	}

	lines := make([]ReceiptLine, 0, len(items))
	for _, item := range items {
		name := "Medicamento " + item.MedicineID // fallback si ya fue borrado del catálogo
		if med, mErr := uc.medicineRepo.GetByID(item.MedicineID); mErr == nil && med != nil {
			name = med.Name
		}
		lines = append(lines, ReceiptLine{Item: *item, MedicineName: name})
	}

	pdfBytes, err = uc.generator.GenerateReceiptPDF(ctx, sale, lines)
	if err != nil {
		return nil, "", fmt.Errorf("recibo: generación fallida: %w", err)
	}
	filename = fmt.Sprintf("recibo_%s.pdf", sale.InvoiceNumber)
	return pdfBytes, filename, nil
}
