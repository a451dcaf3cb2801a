package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/farmacia-pro/internal/domain"
	"github.com/tu-usuario/farmacia-pro/internal/domain/entity"
	"github.com/tu-usuario/farmacia-pro/internal/domain/repository"
)

var _ repository.MedicineRepository = (*MedicineRepo)(nil)

// MedicineRepo implementación del puerto MedicineRepository sobre PostgreSQL
// (usable con pool o tx).
type MedicineRepo struct {
	q Querier
}

// NewMedicineRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMedicineRepository(q Querier) *MedicineRepo {
	return &MedicineRepo{q: q}
}

const medicineColumns = `id, user_id, name, generic_name, manufacturer, quantity_in_stock, reorder_level, unit_price, expiry_date, batch_number, created_at, updated_at`

// Create persiste un medicamento nuevo.
func (r *MedicineRepo) Create(med *entity.Medicine) error {
	query := `
		INSERT INTO medicines (` + medicineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		med.ID, med.UserID, med.Name, med.GenericName, med.Manufacturer,
		med.QuantityInStock, med.ReorderLevel, med.UnitPrice, med.ExpiryDate,
		med.BatchNumber, med.CreatedAt, med.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert medicine: %w", err)
	}
	return nil
}

// GetByID obtiene un medicamento por ID. Devuelve nil si no existe.
func (r *MedicineRepo) GetByID(id string) (*entity.Medicine, error) {
	query := `SELECT ` + medicineColumns + ` FROM medicines WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get medicine")
}

// GetForUpdate obtiene el medicamento bloqueando la fila (SELECT FOR UPDATE).
// Serializa commits concurrentes que tocan el mismo medicamento.
func (r *MedicineRepo) GetForUpdate(id string) (*entity.Medicine, error) {
	query := `SELECT ` + medicineColumns + ` FROM medicines WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get medicine for update")
}

// DecrementStock descuenta stock con decremento condicional: la fila solo se
// afecta si el stock actual alcanza, de modo que quantity_in_stock nunca
// puede quedar negativo. Cero filas afectadas = carrera perdida.
func (r *MedicineRepo) DecrementStock(id string, qty int64) error {
	query := `
		UPDATE medicines
		SET quantity_in_stock = quantity_in_stock - $2, updated_at = now()
		WHERE id = $1 AND quantity_in_stock >= $2`
	cmd, err := r.q.Exec(context.Background(), query, id, qty)
	if err != nil {
		return fmt.Errorf("decrement stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrStockRaceLost
	}
	return nil
}

// ListByUser lista el catálogo de la cuenta con paginación.
func (r *MedicineRepo) ListByUser(userID string, limit, offset int) ([]*entity.Medicine, error) {
	query := `
		SELECT ` + medicineColumns + ` FROM medicines
		WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list medicines: %w", err)
	}
	defer rows.Close()
	return scanMedicines(rows)
}

// Update actualiza los campos editables del medicamento.
func (r *MedicineRepo) Update(med *entity.Medicine) error {
	query := `
		UPDATE medicines
		SET name = $2, generic_name = $3, manufacturer = $4, quantity_in_stock = $5,
		    reorder_level = $6, unit_price = $7, expiry_date = $8, batch_number = $9,
		    updated_at = $10
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		med.ID, med.Name, med.GenericName, med.Manufacturer, med.QuantityInStock,
		med.ReorderLevel, med.UnitPrice, med.ExpiryDate, med.BatchNumber, med.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update medicine: %w", err)
	}
	return nil
}

// Delete elimina un medicamento por ID.
func (r *MedicineRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM medicines WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete medicine: %w", err)
	}
	return nil
}

func (r *MedicineRepo) scanOne(row pgx.Row, op string) (*entity.Medicine, error) {
	var m entity.Medicine
	err := row.Scan(
		&m.ID, &m.UserID, &m.Name, &m.GenericName, &m.Manufacturer,
		&m.QuantityInStock, &m.ReorderLevel, &m.UnitPrice, &m.ExpiryDate,
		&m.BatchNumber, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &m, nil
}

func scanMedicines(rows pgx.Rows) ([]*entity.Medicine, error) {
	var list []*entity.Medicine
	for rows.Next() {
		var m entity.Medicine
		if err := rows.Scan(
			&m.ID, &m.UserID, &m.Name, &m.GenericName, &m.Manufacturer,
			&m.QuantityInStock, &m.ReorderLevel, &m.UnitPrice, &m.ExpiryDate,
			&m.BatchNumber, &m.CreatedAt, &m.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan medicine: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
