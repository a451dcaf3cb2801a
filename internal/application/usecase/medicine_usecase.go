package usecase

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/farmacia-pro/internal/application/dto"
	"github.com/tu-usuario/farmacia-pro/internal/domain"
	"github.com/tu-usuario/farmacia-pro/internal/domain/entity"
	"github.com/tu-usuario/farmacia-pro/internal/domain/repository"
)

// MedicineUseCase casos de uso CRUD del catálogo de medicamentos. Las ventas
// no pasan por aquí: el commit descuenta stock por su propio camino
// transaccional.
type MedicineUseCase struct {
	repo repository.MedicineRepository
}

// NewMedicineUseCase construye el caso de uso.
func NewMedicineUseCase(repo repository.MedicineRepository) *MedicineUseCase {
	return &MedicineUseCase{repo: repo}
}

// Create da de alta un medicamento. Las restricciones del modelo se validan
// en la construcción: stock y nivel de reorden no negativos, precio no
// negativo, fecha de vencimiento en formato 2006-01-02.
func (uc *MedicineUseCase) Create(userID string, in dto.CreateMedicineRequest) (*dto.MedicineResponse, error) {
	med, err := buildMedicine(userID, in)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	med.ID = uuid.New().String()
	med.CreatedAt = now
	med.UpdatedAt = now
	if err := uc.repo.Create(med); err != nil {
		return nil, fmt.Errorf("crear medicamento: %w", err)
	}
	return toMedicineResponse(med), nil
}

// GetByID obtiene un medicamento de la cuenta.
func (uc *MedicineUseCase) GetByID(userID, id string) (*dto.MedicineResponse, error) {
	med, err := uc.getOwned(userID, id)
	if err != nil {
		return nil, err
	}
	return toMedicineResponse(med), nil
}

// List lista el catálogo de la cuenta con paginación.
func (uc *MedicineUseCase) List(userID string, limit, offset int) ([]*dto.MedicineResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	list, err := uc.repo.ListByUser(userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listar medicamentos: %w", err)
	}
	out := make([]*dto.MedicineResponse, 0, len(list))
	for _, med := range list {
		out = append(out, toMedicineResponse(med))
	}
	return out, nil
}

// Update reemplaza los campos editables del medicamento.
func (uc *MedicineUseCase) Update(userID, id string, in dto.UpdateMedicineRequest) (*dto.MedicineResponse, error) {
	current, err := uc.getOwned(userID, id)
	if err != nil {
		return nil, err
	}
	med, err := buildMedicine(userID, in)
	if err != nil {
		return nil, err
	}
	med.ID = current.ID
	med.CreatedAt = current.CreatedAt
	med.UpdatedAt = time.Now()
	if err := uc.repo.Update(med); err != nil {
		return nil, fmt.Errorf("actualizar medicamento: %w", err)
	}
	return toMedicineResponse(med), nil
}

// Delete elimina un medicamento de la cuenta.
func (uc *MedicineUseCase) Delete(userID, id string) error {
	if _, err := uc.getOwned(userID, id); err != nil {
		return err
	}
	if err := uc.repo.Delete(id); err != nil {
		return fmt.Errorf("eliminar medicamento: %w", err)
	}
	return nil
}

func (uc *MedicineUseCase) getOwned(userID, id string) (*entity.Medicine, error) {
	med, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("obtener medicamento: %w", err)
	}
	if med == nil {
		return nil, domain.ErrNotFound
	}
	if med.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return med, nil
}

// buildMedicine valida el request y arma la entidad (sin ID ni timestamps).
func buildMedicine(userID string, in dto.CreateMedicineRequest) (*entity.Medicine, error) {
	if in.Name == "" || in.GenericName == "" || in.Manufacturer == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.QuantityInStock < 0 || in.ReorderLevel < 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.UnitPrice.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	var expiry time.Time
	if in.ExpiryDate != "" {
		parsed, err := time.Parse("2006-01-02", in.ExpiryDate)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		expiry = parsed
	}
	return &entity.Medicine{
		UserID:          userID,
		Name:            in.Name,
		GenericName:     in.GenericName,
		Manufacturer:    in.Manufacturer,
		QuantityInStock: in.QuantityInStock,
		ReorderLevel:    in.ReorderLevel,
		UnitPrice:       in.UnitPrice,
		ExpiryDate:      expiry,
		BatchNumber:     in.BatchNumber,
	}, nil
}

func toMedicineResponse(med *entity.Medicine) *dto.MedicineResponse {
	expiry := ""
	if !med.ExpiryDate.IsZero() {
		expiry = med.ExpiryDate.Format("2006-01-02")
	}
	return &dto.MedicineResponse{
		ID:              med.ID,
		Name:            med.Name,
		GenericName:     med.GenericName,
		Manufacturer:    med.Manufacturer,
		QuantityInStock: med.QuantityInStock,
		ReorderLevel:    med.ReorderLevel,
		UnitPrice:       med.UnitPrice,
		ExpiryDate:      expiry,
		BatchNumber:     med.BatchNumber,
		LowStock:        med.IsLowStock(),
	}
}
