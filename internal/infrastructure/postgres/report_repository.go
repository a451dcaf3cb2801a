package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/farmacia-pro/internal/domain/entity"
	"github.com/tu-usuario/farmacia-pro/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo lecturas agregadas para reportes y dashboard. Siempre corre
// sobre el pool, fuera de la tx de ventas.
type ReportRepo struct {
	pool *pgxpool.Pool
}

func NewReportRepository(pool *pgxpool.Pool) *ReportRepo {
	return &ReportRepo{pool: pool}
}

func (r *ReportRepo) ListSales(ctx context.Context, userID string) ([]*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE user_id = $1 ORDER BY sale_date`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("report sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(
			&s.ID, &s.UserID, &s.InvoiceNumber, &s.SaleDate, &s.CustomerID,
			&s.TotalAmount, &s.PaymentMethod, &s.PaymentStatus, &s.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

func (r *ReportRepo) ListSaleItems(ctx context.Context, userID string) ([]*entity.SaleItem, error) {
	query := `
		SELECT i.id, i.sale_id, i.medicine_id, i.quantity, i.unit_price, i.line_total
		FROM sale_items i
		JOIN sales s ON s.id = i.sale_id
		WHERE s.user_id = $1`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("report sale items: %w", err)
	}
	defer rows.Close()
	var list []*entity.SaleItem
	for rows.Next() {
		var it entity.SaleItem
		if err := rows.Scan(&it.ID, &it.SaleID, &it.MedicineID, &it.Quantity, &it.UnitPrice, &it.LineTotal); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

func (r *ReportRepo) ListMedicines(ctx context.Context, userID string) ([]*entity.Medicine, error) {
	query := `SELECT ` + medicineColumns + ` FROM medicines WHERE user_id = $1 ORDER BY name`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("report medicines: %w", err)
	}
	defer rows.Close()
	return scanMedicines(rows)
}

func (r *ReportRepo) CountCustomers(ctx context.Context, userID string) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM customers WHERE user_id = $1`, userID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count customers: %w", err)
	}
	return n, nil
}
