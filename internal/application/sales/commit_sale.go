package sales

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/farmacia-pro/internal/application/dto"
	"github.com/tu-usuario/farmacia-pro/internal/domain"
	"github.com/tu-usuario/farmacia-pro/internal/domain/cart"
	"github.com/tu-usuario/farmacia-pro/internal/domain/entity"
	"github.com/tu-usuario/farmacia-pro/internal/domain/repository"
	"github.com/tu-usuario/farmacia-pro/pkg/logger"
)

// CommitSaleUseCase convierte un carrito validado en una venta persistida:
// cabecera, líneas y decrementos de stock en una sola transacción.
//
// Contrato de consistencia: si cualquier paso falla (típicamente la
// re-validación de stock contra el catálogo actual), la transacción se
// revierte completa. Nunca queda una venta sin sus decrementos ni un
// decremento sin su venta. El carrito solo se descarta tras un commit
// exitoso; en cualquier fallo queda intacto para que el caller lo
// reconstruya y reintente.
type CommitSaleUseCase struct {
	txRunner     SalesTxRunner
	sessions     *SessionStore
	customerRepo repository.CustomerRepository
	log          *logger.Logger
}

// NewCommitSaleUseCase construye el caso de uso.
func NewCommitSaleUseCase(
	txRunner SalesTxRunner,
	sessions *SessionStore,
	customerRepo repository.CustomerRepository,
	log *logger.Logger,
) *CommitSaleUseCase {
	return &CommitSaleUseCase{
		txRunner:     txRunner,
		sessions:     sessions,
		customerRepo: customerRepo,
		log:          log,
	}
}

// Commit confirma la venta del carrito actual de la cuenta.
//
// Dentro de la transacción:
//  1. Consecutivo de factura de la cuenta (se revierte con la venta).
//  2. Cabecera con total = suma de los totales de línea del carrito.
//  3. Una línea persistida por entrada del carrito.
//  4. Por cada línea, relectura con lock y decremento condicional del stock
//     contra el catálogo ACTUAL (no el snapshot del carrito). Si alguna
//     re-validación falla, todo lo anterior se revierte (ErrStockRaceLost).
func (uc *CommitSaleUseCase) Commit(ctx context.Context, userID string, in dto.CommitSaleRequest) (*dto.SaleResponse, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	method := in.PaymentMethod
	if method == "" {
		method = entity.PaymentMethodCash
	}
	if !entity.ValidPaymentMethod(method) {
		return nil, domain.ErrInvalidInput
	}
	if in.CustomerID != "" {
		customer, err := uc.customerRepo.GetByID(in.CustomerID)
		if err != nil {
			return nil, fmt.Errorf("venta: leer cliente: %w", err)
		}
		if customer == nil || customer.UserID != userID {
			return nil, domain.ErrNotFound
		}
	}

	lines, total := uc.sessions.Snapshot(userID)
	if len(lines) == 0 {
		return nil, domain.ErrEmptyCart
	}

	now := time.Now()
	sale := &entity.Sale{
		ID:            uuid.New().String(),
		UserID:        userID,
		SaleDate:      now,
		CustomerID:    in.CustomerID,
		TotalAmount:   total,
		PaymentMethod: method,
		PaymentStatus: entity.PaymentStatusCompleted,
		CreatedAt:     now,
	}
	var items []*entity.SaleItem

	err := uc.txRunner.RunSale(ctx, func(
		medRepo repository.MedicineRepository,
		saleRepo repository.SaleRepository,
	) error {
		seq, err := saleRepo.NextInvoiceSeq(userID)
		if err != nil {
			return fmt.Errorf("consecutivo de factura: %w", err)
		}
		sale.InvoiceNumber = formatInvoiceNumber(now, seq)

		if err := saleRepo.Create(sale); err != nil {
			return err
		}
		for _, line := range lines {
			item := &entity.SaleItem{
				ID:         uuid.New().String(),
				SaleID:     sale.ID,
				MedicineID: line.MedicineID,
				Quantity:   line.Quantity,
				UnitPrice:  line.UnitPrice,
				LineTotal:  line.LineTotal,
			}
			if err := saleRepo.CreateItem(item); err != nil {
				return err
			}
			items = append(items, item)
		}
		// Re-validación y decremento contra el catálogo actual, no contra el
		// snapshot del carrito. El lock de fila serializa commits concurrentes
		// que tocan el mismo medicamento.
		for _, line := range lines {
			if err := uc.depleteStock(medRepo, userID, line); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrStockRaceLost) {
			uc.log.Warn().
				Str("user_id", userID).
				Msg("commit de venta perdió la carrera de stock; carrito intacto")
		}
		// El carrito queda como estaba: el caller decide re-armar y reintentar.
		return nil, err
	}

	uc.sessions.Clear(userID)
	uc.log.Info().
		Str("user_id", userID).
		Str("invoice", sale.InvoiceNumber).
		Str("total", sale.TotalAmount.StringFixed(2)).
		Int("items", len(items)).
		Msg("venta confirmada")

	return toSaleResponse(sale, items), nil
}

// depleteStock relee el medicamento con lock de fila y descuenta la cantidad
// de la línea si el stock actual alcanza.
func (uc *CommitSaleUseCase) depleteStock(medRepo repository.MedicineRepository, userID string, line cart.Line) error {
	med, err := medRepo.GetForUpdate(line.MedicineID)
	if err != nil {
		return fmt.Errorf("releer medicamento %s: %w", line.MedicineID, err)
	}
	// Un medicamento borrado o ajeno entre armado y commit también pierde la
	// carrera: el caller debe re-armar el carrito con catálogo fresco.
	if med == nil || med.UserID != userID {
		return domain.ErrStockRaceLost
	}
	if med.QuantityInStock < line.Quantity {
		return domain.ErrStockRaceLost
	}
	return medRepo.DecrementStock(line.MedicineID, line.Quantity)
}

// formatInvoiceNumber arma el número de factura: fecha + consecutivo por
// cuenta. Único por cuenta; el índice en BD lo garantiza.
func formatInvoiceNumber(t time.Time, seq int64) string {
	return fmt.Sprintf("INV-%s-%06d", t.Format("20060102"), seq)
}

func toSaleResponse(sale *entity.Sale, items []*entity.SaleItem) *dto.SaleResponse {
	resp := &dto.SaleResponse{
		ID:            sale.ID,
		InvoiceNumber: sale.InvoiceNumber,
		SaleDate:      sale.SaleDate.Format("2006-01-02"),
		CustomerID:    sale.CustomerID,
		TotalAmount:   sale.TotalAmount,
		PaymentMethod: sale.PaymentMethod,
		PaymentStatus: sale.PaymentStatus,
		Items:         make([]dto.SaleItemResponse, 0, len(items)),
	}
	for _, item := range items {
		resp.Items = append(resp.Items, dto.SaleItemResponse{
			ID:         item.ID,
			MedicineID: item.MedicineID,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
			LineTotal:  item.LineTotal,
		})
	}
	return resp
}
