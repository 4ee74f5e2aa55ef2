package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/domain"
	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/domain/entity"
	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/domain/repository"
)

var _ repository.ShipmentRepository = (*ShipmentRepo)(nil)

const shipmentSelect = `
	SELECT sh.id, sh.tracking_number, sh.supplier_id, s.name, sh.status, sh.expected_date, sh.actual_date,
	       sh.origin, sh.destination, sh.total_value, sh.weight, sh.items, sh.notes, sh.created_at, sh.updated_at
	FROM shipments sh
	JOIN suppliers s ON s.id = sh.supplier_id`

// ShipmentRepo ShipmentRepository over PostgreSQL (pool or tx).
type ShipmentRepo struct {
	q Querier
}

// NewShipmentRepository builds the adapter. Pass a pool or a tx.
func NewShipmentRepository(q Querier) *ShipmentRepo {
	return &ShipmentRepo{q: q}
}

func scanShipment(row pgx.Row) (*entity.Shipment, error) {
	var sh entity.Shipment
	var supplierName string
	err := row.Scan(
		&sh.ID, &sh.TrackingNumber, &sh.SupplierID, &supplierName, &sh.Status, &sh.ExpectedDate, &sh.ActualDate,
		&sh.Origin, &sh.Destination, &sh.TotalValue, &sh.Weight, &sh.Items, &sh.Notes, &sh.CreatedAt, &sh.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	sh.Supplier = &entity.SupplierSummary{ID: sh.SupplierID, Name: supplierName}
	return &sh, nil
}

func (r *ShipmentRepo) list(ctx context.Context, op, query string, args ...any) ([]entity.Shipment, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, classify(op, err)
	}
	defer rows.Close()

	var out []entity.Shipment
	for rows.Next() {
		sh, err := scanShipment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan shipment: %w", err)
		}
		out = append(out, *sh)
	}
	return out, rows.Err()
}

// Create inserts a shipment. Unknown supplier → ErrNotFound, duplicated tracking number → ErrDuplicate.
func (r *ShipmentRepo) Create(ctx context.Context, sh *entity.Shipment) error {
	items := sh.Items
	if items == nil {
		items = []entity.ShipmentItem{}
	}
	query := `
		INSERT INTO shipments (id, tracking_number, supplier_id, status, expected_date, actual_date,
		                       origin, destination, total_value, weight, items, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		sh.ID, sh.TrackingNumber, sh.SupplierID, sh.Status, sh.ExpectedDate, sh.ActualDate,
		sh.Origin, sh.Destination, sh.TotalValue, sh.Weight, items, sh.Notes, sh.CreatedAt, sh.UpdatedAt,
	)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return domain.ErrDuplicate
		case isForeignKeyViolation(err):
			return domain.ErrNotFound
		}
		return classify("insert shipment", err)
	}
	return nil
}

// GetByID returns nil, nil when the shipment does not exist.
func (r *ShipmentRepo) GetByID(ctx context.Context, id string) (*entity.Shipment, error) {
	return r.get(ctx, shipmentSelect+` WHERE sh.id = $1`, id)
}

// GetForUpdate locks the shipment row.
func (r *ShipmentRepo) GetForUpdate(ctx context.Context, id string) (*entity.Shipment, error) {
	return r.get(ctx, shipmentSelect+` WHERE sh.id = $1 FOR UPDATE OF sh`, id)
}

func (r *ShipmentRepo) get(ctx context.Context, query, id string) (*entity.Shipment, error) {
	sh, err := scanShipment(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, classify("get shipment", err)
	}
	return sh, nil
}

// List newest first.
func (r *ShipmentRepo) List(ctx context.Context, f repository.ShipmentFilter) ([]entity.Shipment, error) {
	var (
		where []string
		args  []any
	)
	if f.Status != "" {
		args = append(args, f.Status)
		where = append(where, "sh.status = $"+strconv.Itoa(len(args)))
	}
	if f.SupplierID != "" {
		args = append(args, f.SupplierID)
		where = append(where, "sh.supplier_id = $"+strconv.Itoa(len(args)))
	}
	query := shipmentSelect
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY sh.created_at DESC"
	return r.list(ctx, "list shipments", query, args...)
}

// ListRecentBySupplier newest first, at most limit rows.
func (r *ShipmentRepo) ListRecentBySupplier(ctx context.Context, supplierID string, limit int) ([]entity.Shipment, error) {
	return r.list(ctx, "list supplier shipments",
		shipmentSelect+` WHERE sh.supplier_id = $1 ORDER BY sh.created_at DESC LIMIT $2`,
		supplierID, limit,
	)
}

// ListDeliveredBySupplier every DELIVERED shipment of the supplier.
func (r *ShipmentRepo) ListDeliveredBySupplier(ctx context.Context, supplierID string) ([]entity.Shipment, error) {
	return r.list(ctx, "list delivered shipments",
		shipmentSelect+` WHERE sh.supplier_id = $1 AND sh.status = $2 ORDER BY sh.actual_date`,
		supplierID, entity.ShipmentDelivered,
	)
}

// UpdateStatus writes status, actual date and notes.
func (r *ShipmentRepo) UpdateStatus(ctx context.Context, id string, status entity.ShipmentStatus, actualDate *time.Time, notes string) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE shipments SET status = $2, actual_date = $3, notes = $4, updated_at = now()
		WHERE id = $1`,
		id, status, actualDate, notes,
	)
	if err != nil {
		return classify("update shipment", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes the shipment and its alerts.
func (r *ShipmentRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM shipments WHERE id = $1`, id)
	if err != nil {
		return classify("delete shipment", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
