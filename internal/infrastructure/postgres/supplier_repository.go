package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/domain"
	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/domain/entity"
	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/domain/repository"
)

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

const supplierColumns = `id, name, contact_email, contact_phone, address, status, performance_score,
	total_orders, on_time_deliveries, quality_rating, cost_savings, created_at, updated_at`

// SupplierRepo SupplierRepository over PostgreSQL (pool or tx).
type SupplierRepo struct {
	q Querier
}

// NewSupplierRepository builds the adapter. Pass a pool or a tx.
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

func scanSupplier(row pgx.Row, s *entity.Supplier) error {
	return row.Scan(
		&s.ID, &s.Name, &s.ContactEmail, &s.ContactPhone, &s.Address, &s.Status,
		&s.PerformanceScore, &s.TotalOrders, &s.OnTimeDeliveries, &s.QualityRating,
		&s.CostSavings, &s.CreatedAt, &s.UpdatedAt,
	)
}

// Create inserts a supplier.
func (r *SupplierRepo) Create(ctx context.Context, s *entity.Supplier) error {
	query := `
		INSERT INTO suppliers (` + supplierColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.Name, s.ContactEmail, s.ContactPhone, s.Address, s.Status,
		s.PerformanceScore, s.TotalOrders, s.OnTimeDeliveries, s.QualityRating,
		s.CostSavings, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return classify("insert supplier", err)
	}
	return nil
}

// GetByID returns nil, nil when the supplier does not exist.
func (r *SupplierRepo) GetByID(ctx context.Context, id string) (*entity.Supplier, error) {
	return r.get(ctx, `SELECT `+supplierColumns+` FROM suppliers WHERE id = $1`, id)
}

// GetForUpdate same as GetByID but locks the row (SELECT FOR UPDATE).
func (r *SupplierRepo) GetForUpdate(ctx context.Context, id string) (*entity.Supplier, error) {
	return r.get(ctx, `SELECT `+supplierColumns+` FROM suppliers WHERE id = $1 FOR UPDATE`, id)
}

func (r *SupplierRepo) get(ctx context.Context, query, id string) (*entity.Supplier, error) {
	var s entity.Supplier
	if err := scanSupplier(r.q.QueryRow(ctx, query, id), &s); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, classify("get supplier", err)
	}
	return &s, nil
}

// List every supplier with related-record counts, best performance first.
func (r *SupplierRepo) List(ctx context.Context) ([]entity.SupplierWithCounts, error) {
	query := `
		SELECT s.id, s.name, s.contact_email, s.contact_phone, s.address, s.status, s.performance_score,
		       s.total_orders, s.on_time_deliveries, s.quality_rating, s.cost_savings, s.created_at, s.updated_at,
		       (SELECT COUNT(*) FROM shipments sh WHERE sh.supplier_id = s.id),
		       (SELECT COUNT(*) FROM inventory_items i WHERE i.supplier_id = s.id),
		       (SELECT COUNT(*) FROM alerts a WHERE a.supplier_id = s.id)
		FROM suppliers s
		ORDER BY s.performance_score DESC, s.name`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, classify("list suppliers", err)
	}
	defer rows.Close()

	var out []entity.SupplierWithCounts
	for rows.Next() {
		var s entity.SupplierWithCounts
		if err := rows.Scan(
			&s.ID, &s.Name, &s.ContactEmail, &s.ContactPhone, &s.Address, &s.Status,
			&s.PerformanceScore, &s.TotalOrders, &s.OnTimeDeliveries, &s.QualityRating,
			&s.CostSavings, &s.CreatedAt, &s.UpdatedAt,
			&s.Counts.Shipments, &s.Counts.InventoryItems, &s.Counts.Alerts,
		); err != nil {
			return nil, fmt.Errorf("scan supplier: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// ListByStatus suppliers in the given status, best performance first.
func (r *SupplierRepo) ListByStatus(ctx context.Context, status entity.SupplierStatus) ([]entity.Supplier, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+supplierColumns+` FROM suppliers WHERE status = $1 ORDER BY performance_score DESC, name`,
		status,
	)
	if err != nil {
		return nil, classify("list suppliers by status", err)
	}
	defer rows.Close()

	var out []entity.Supplier
	for rows.Next() {
		var s entity.Supplier
		if err := scanSupplier(rows, &s); err != nil {
			return nil, fmt.Errorf("scan supplier: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Update writes the editable columns and the derived scores.
func (r *SupplierRepo) Update(ctx context.Context, s *entity.Supplier) error {
	query := `
		UPDATE suppliers SET name = $2, contact_email = $3, contact_phone = $4, address = $5, status = $6,
		       performance_score = $7, quality_rating = $8, cost_savings = $9, updated_at = $10
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		s.ID, s.Name, s.ContactEmail, s.ContactPhone, s.Address, s.Status,
		s.PerformanceScore, s.QualityRating, s.CostSavings, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return classify("update supplier", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ApplyDelivery persists the three delivery-derived fields in a single statement.
func (r *SupplierRepo) ApplyDelivery(ctx context.Context, id string, onTimeDeliveries int, performanceScore float64, savingsDelta decimal.Decimal) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE suppliers
		SET on_time_deliveries = $2, performance_score = $3, cost_savings = cost_savings + $4, updated_at = now()
		WHERE id = $1`,
		id, onTimeDeliveries, performanceScore, savingsDelta,
	)
	if err != nil {
		return classify("apply delivery", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// IncrementTotalOrders adds one order to the supplier.
func (r *SupplierRepo) IncrementTotalOrders(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE suppliers SET total_orders = total_orders + 1, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return classify("increment total orders", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes the supplier; shipments, items and alerts cascade.
func (r *SupplierRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM suppliers WHERE id = $1`, id)
	if err != nil {
		return classify("delete supplier", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
