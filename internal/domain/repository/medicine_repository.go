package repository

import "github.com/tu-usuario/farmacia-pro/internal/domain/entity"

// MedicineRepository define el puerto de persistencia para Medicine (DIP).
// El motor de ventas solo usa GetByID, GetForUpdate y DecrementStock; el
// resto sirve al CRUD de catálogo.
type MedicineRepository interface {
	Create(med *entity.Medicine) error
	GetByID(id string) (*entity.Medicine, error)
	ListByUser(userID string, limit, offset int) ([]*entity.Medicine, error)
	Update(med *entity.Medicine) error
	Delete(id string) error

	// GetForUpdate relee el medicamento bloqueando la fila (SELECT FOR UPDATE)
	// dentro de la transacción de commit. Devuelve nil si ya no existe.
	GetForUpdate(id string) (*entity.Medicine, error)

	// DecrementStock descuenta `qty` unidades solo si el stock actual alcanza
	// (decremento condicional). Devuelve domain.ErrStockRaceLost si la fila no
	// se afectó porque el stock es insuficiente.
	DecrementStock(id string, qty int64) error
}
