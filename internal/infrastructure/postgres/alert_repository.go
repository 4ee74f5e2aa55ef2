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

var _ repository.AlertRepository = (*AlertRepo)(nil)

const alertSelect = `
	SELECT a.id, a.type, a.severity, a.title, a.message, a.supplier_id, a.shipment_id, a.inventory_item_id,
	       a.is_read, a.is_resolved, a.created_at, a.updated_at,
	       s.name, sh.tracking_number, i.sku, i.name
	FROM alerts a
	LEFT JOIN suppliers s ON s.id = a.supplier_id
	LEFT JOIN shipments sh ON sh.id = a.shipment_id
	LEFT JOIN inventory_items i ON i.id = a.inventory_item_id`

const severityRank = `CASE a.severity WHEN 'CRITICAL' THEN 4 WHEN 'HIGH' THEN 3 WHEN 'MEDIUM' THEN 2 ELSE 1 END`

// AlertRepo AlertRepository over PostgreSQL (pool or tx).
type AlertRepo struct {
	q Querier
}

// NewAlertRepository builds the adapter. Pass a pool or a tx.
func NewAlertRepository(q Querier) *AlertRepo {
	return &AlertRepo{q: q}
}

func scanAlert(row pgx.Row) (*entity.Alert, error) {
	var (
		a                      entity.Alert
		supplierName, tracking *string
		itemSKU, itemName      *string
	)
	err := row.Scan(
		&a.ID, &a.Type, &a.Severity, &a.Title, &a.Message, &a.SupplierID, &a.ShipmentID, &a.InventoryItemID,
		&a.IsRead, &a.IsResolved, &a.CreatedAt, &a.UpdatedAt,
		&supplierName, &tracking, &itemSKU, &itemName,
	)
	if err != nil {
		return nil, err
	}
	if a.SupplierID != nil && supplierName != nil {
		a.Supplier = &entity.SupplierSummary{ID: *a.SupplierID, Name: *supplierName}
	}
	if a.ShipmentID != nil && tracking != nil {
		a.Shipment = &entity.ShipmentSummary{ID: *a.ShipmentID, TrackingNumber: *tracking}
	}
	if a.InventoryItemID != nil && itemSKU != nil {
		a.InventoryItem = &entity.InventoryItemSummary{ID: *a.InventoryItemID, SKU: *itemSKU, Name: deref(itemName)}
	}
	return &a, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Create inserts an alert. A dangling reference → ErrNotFound.
func (r *AlertRepo) Create(ctx context.Context, a *entity.Alert) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO alerts (id, type, severity, title, message, supplier_id, shipment_id, inventory_item_id,
		                    is_read, is_resolved, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		a.ID, a.Type, a.Severity, a.Title, a.Message,
		optionalUUID(a.SupplierID), optionalUUID(a.ShipmentID), optionalUUID(a.InventoryItemID),
		a.IsRead, a.IsResolved, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return classify("insert alert", err)
	}
	return nil
}

// GetByID returns nil, nil when the alert does not exist.
func (r *AlertRepo) GetByID(ctx context.Context, id string) (*entity.Alert, error) {
	a, err := scanAlert(r.q.QueryRow(ctx, alertSelect+` WHERE a.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, classify("get alert", err)
	}
	return a, nil
}

// List unresolved first, then critical first, then newest first.
func (r *AlertRepo) List(ctx context.Context, f repository.AlertFilter) ([]entity.Alert, error) {
	var (
		where []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, cond+" = $"+strconv.Itoa(len(args)))
	}
	if f.Severity != nil {
		add("a.severity", *f.Severity)
	}
	if f.Type != nil {
		add("a.type", *f.Type)
	}
	if f.IsRead != nil {
		add("a.is_read", *f.IsRead)
	}
	if f.IsResolved != nil {
		add("a.is_resolved", *f.IsResolved)
	}
	if f.SupplierID != "" {
		add("a.supplier_id", f.SupplierID)
	}

	query := alertSelect
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY a.is_resolved ASC, " + severityRank + " DESC, a.created_at DESC"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, classify("list alerts", err)
	}
	defer rows.Close()

	var out []entity.Alert
	for rows.Next() {
		a, err := scanAlert(rows)
		if err != nil {
			return nil, fmt.Errorf("scan alert: %w", err)
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

// UpdateFlags changes only the flags that are set.
func (r *AlertRepo) UpdateFlags(ctx context.Context, id string, flags repository.AlertFlags) error {
	n, err := r.BulkUpdateFlags(ctx, []string{id}, flags)
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// BulkUpdateFlags COALESCE keeps the stored value for unset flags.
func (r *AlertRepo) BulkUpdateFlags(ctx context.Context, ids []string, flags repository.AlertFlags) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	cmd, err := r.q.Exec(ctx, `
		UPDATE alerts
		SET is_read = COALESCE($2, is_read), is_resolved = COALESCE($3, is_resolved), updated_at = now()
		WHERE id = ANY($1::uuid[])`,
		ids, flags.IsRead, flags.IsResolved,
	)
	if err != nil {
		return 0, classify("update alerts", err)
	}
	return cmd.RowsAffected(), nil
}

// Delete removes an alert.
func (r *AlertRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM alerts WHERE id = $1`, id)
	if err != nil {
		return classify("delete alert", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ExistsUnresolvedSince looks for an open alert with the same type, title and references.
func (r *AlertRepo) ExistsUnresolvedSince(ctx context.Context, fp repository.AlertFingerprint, since time.Time) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM alerts
			WHERE type = $1 AND title = $2 AND is_resolved = false AND created_at >= $3
			  AND supplier_id IS NOT DISTINCT FROM $4::uuid
			  AND shipment_id IS NOT DISTINCT FROM $5::uuid
			  AND inventory_item_id IS NOT DISTINCT FROM $6::uuid
		)`,
		fp.Type, fp.Title, since,
		optionalUUID(fp.Refs.SupplierID), optionalUUID(fp.Refs.ShipmentID), optionalUUID(fp.Refs.InventoryItemID),
	).Scan(&exists)
	if err != nil {
		return false, classify("find recent alert", err)
	}
	return exists, nil
}
