package sales

import (
	"fmt"

	"github.com/tu-usuario/farmacia-pro/internal/application/dto"
	"github.com/tu-usuario/farmacia-pro/internal/domain"
	"github.com/tu-usuario/farmacia-pro/internal/domain/repository"
)

// CartUseCase arma el carrito de venta contra snapshots del catálogo.
// El stock se valida con el valor leído en el momento del add; no se toma
// ningún lock sobre el catálogo entre el armado y el commit (el commit
// re-valida y puede perder la carrera con ErrStockRaceLost).
type CartUseCase struct {
	medicineRepo repository.MedicineRepository
	sessions     *SessionStore
}

// NewCartUseCase construye el caso de uso.
func NewCartUseCase(medicineRepo repository.MedicineRepository, sessions *SessionStore) *CartUseCase {
	return &CartUseCase{medicineRepo: medicineRepo, sessions: sessions}
}

// Add agrega `qty` unidades del medicamento al carrito de la cuenta y
// devuelve el snapshot resultante.
func (uc *CartUseCase) Add(userID, medicineID string, qty int64) (*dto.CartResponse, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	med, err := uc.medicineRepo.GetByID(medicineID)
	if err != nil {
		return nil, fmt.Errorf("carrito: leer catálogo: %w", err)
	}
	// Un medicamento de otra cuenta no existe para esta sesión.
	if med == nil || med.UserID != userID {
		return nil, domain.ErrUnknownMedicine
	}
	if err := uc.sessions.Add(userID, med, qty); err != nil {
		return nil, err
	}
	return uc.snapshot(userID), nil
}

// Remove quita la línea del medicamento del carrito. Idempotente.
func (uc *CartUseCase) Remove(userID, medicineID string) (*dto.CartResponse, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	uc.sessions.Remove(userID, medicineID)
	return uc.snapshot(userID), nil
}

// Get devuelve el snapshot del carrito (líneas + total).
func (uc *CartUseCase) Get(userID string) (*dto.CartResponse, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	return uc.snapshot(userID), nil
}

// Cancel descarta el carrito completo de la cuenta.
func (uc *CartUseCase) Cancel(userID string) error {
	if userID == "" {
		return domain.ErrUnauthorized
	}
	uc.sessions.Clear(userID)
	return nil
}

func (uc *CartUseCase) snapshot(userID string) *dto.CartResponse {
	lines, total := uc.sessions.Snapshot(userID)
	resp := &dto.CartResponse{
		Items: make([]dto.CartLineResponse, 0, len(lines)),
		Total: total,
	}
	for _, line := range lines {
		resp.Items = append(resp.Items, dto.CartLineResponse{
			MedicineID:   line.MedicineID,
			MedicineName: line.MedicineName,
			Quantity:     line.Quantity,
			UnitPrice:    line.UnitPrice,
			LineTotal:    line.LineTotal,
		})
	}
	return resp
}
