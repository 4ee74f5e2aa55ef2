package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/domain"
	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/domain/entity"
	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/domain/metric"
	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

const inventorySelect = `
	SELECT i.id, i.sku, i.name, i.description, i.category, i.supplier_id, s.name, i.current_stock,
	       i.min_stock_level, i.max_stock_level, i.unit_cost, i.total_value, i.location, i.last_restocked,
	       i.created_at, i.updated_at
	FROM inventory_items i
	JOIN suppliers s ON s.id = i.supplier_id`

// InventoryRepo InventoryRepository over PostgreSQL (pool or tx).
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository builds the adapter. Pass a pool or a tx.
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

func scanItem(row pgx.Row) (*entity.InventoryItem, error) {
	var it entity.InventoryItem
	var supplierName string
	err := row.Scan(
		&it.ID, &it.SKU, &it.Name, &it.Description, &it.Category, &it.SupplierID, &supplierName, &it.CurrentStock,
		&it.MinStockLevel, &it.MaxStockLevel, &it.UnitCost, &it.TotalValue, &it.Location, &it.LastRestocked,
		&it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	it.Supplier = &entity.SupplierSummary{ID: it.SupplierID, Name: supplierName}
	return &it, nil
}

func (r *InventoryRepo) list(ctx context.Context, op, query string, args ...any) ([]entity.InventoryItem, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, classify(op, err)
	}
	defer rows.Close()

	var out []entity.InventoryItem
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory item: %w", err)
		}
		out = append(out, *it)
	}
	return out, rows.Err()
}

// Create inserts an item. Duplicated SKU → ErrDuplicate, unknown supplier → ErrNotFound.
func (r *InventoryRepo) Create(ctx context.Context, it *entity.InventoryItem) error {
	query := `
		INSERT INTO inventory_items (id, sku, name, description, category, supplier_id, current_stock,
		                             min_stock_level, max_stock_level, unit_cost, total_value, location,
		                             last_restocked, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		it.ID, it.SKU, it.Name, it.Description, it.Category, it.SupplierID, it.CurrentStock,
		it.MinStockLevel, it.MaxStockLevel, it.UnitCost, it.TotalValue, it.Location,
		it.LastRestocked, it.CreatedAt, it.UpdatedAt,
	)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return domain.ErrDuplicate
		case isForeignKeyViolation(err):
			return domain.ErrNotFound
		}
		return classify("insert inventory item", err)
	}
	return nil
}

// GetByID returns nil, nil when the item does not exist.
func (r *InventoryRepo) GetByID(ctx context.Context, id string) (*entity.InventoryItem, error) {
	return r.get(ctx, inventorySelect+` WHERE i.id = $1`, id)
}

// GetForUpdate locks the item row (SELECT FOR UPDATE).
func (r *InventoryRepo) GetForUpdate(ctx context.Context, id string) (*entity.InventoryItem, error) {
	return r.get(ctx, inventorySelect+` WHERE i.id = $1 FOR UPDATE OF i`, id)
}

func (r *InventoryRepo) get(ctx context.Context, query, id string) (*entity.InventoryItem, error) {
	it, err := scanItem(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, classify("get inventory item", err)
	}
	return it, nil
}

// List ordered by name.
func (r *InventoryRepo) List(ctx context.Context, f repository.InventoryFilter) ([]entity.InventoryItem, error) {
	var (
		where []string
		args  []any
	)
	if f.Category != "" {
		args = append(args, f.Category)
		where = append(where, "i.category = $"+strconv.Itoa(len(args)))
	}
	if f.SupplierID != "" {
		args = append(args, f.SupplierID)
		where = append(where, "i.supplier_id = $"+strconv.Itoa(len(args)))
	}
	if f.LowStockOnly {
		where = append(where, "i.current_stock <= i.min_stock_level")
	}
	query := inventorySelect
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY i.name"
	return r.list(ctx, "list inventory", query, args...)
}

// ListRecentBySupplier newest first, at most limit rows.
func (r *InventoryRepo) ListRecentBySupplier(ctx context.Context, supplierID string, limit int) ([]entity.InventoryItem, error) {
	return r.list(ctx, "list supplier inventory",
		inventorySelect+` WHERE i.supplier_id = $1 ORDER BY i.created_at DESC LIMIT $2`,
		supplierID, limit,
	)
}

// Update writes every mutable column.
func (r *InventoryRepo) Update(ctx context.Context, it *entity.InventoryItem) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE inventory_items
		SET name = $2, description = $3, category = $4, current_stock = $5, min_stock_level = $6,
		    max_stock_level = $7, unit_cost = $8, total_value = $9, location = $10,
		    last_restocked = $11, updated_at = $12
		WHERE id = $1`,
		it.ID, it.Name, it.Description, it.Category, it.CurrentStock, it.MinStockLevel,
		it.MaxStockLevel, it.UnitCost, it.TotalValue, it.Location, it.LastRestocked, it.UpdatedAt,
	)
	if err != nil {
		return classify("update inventory item", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes the item and its alerts.
func (r *InventoryRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM inventory_items WHERE id = $1`, id)
	if err != nil {
		return classify("delete inventory item", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Summary aggregates value and stock levels in one pass.
func (r *InventoryRepo) Summary(ctx context.Context) (metric.InventorySummary, error) {
	var s metric.InventorySummary
	err := r.q.QueryRow(ctx, `
		SELECT COALESCE(SUM(total_value), 0),
		       COUNT(*) FILTER (WHERE current_stock <= min_stock_level),
		       COUNT(*) FILTER (WHERE current_stock = 0),
		       COUNT(*)
		FROM inventory_items`,
	).Scan(&s.TotalValue, &s.LowStockItems, &s.OutOfStockItems, &s.TotalItems)
	if err != nil {
		return metric.InventorySummary{}, classify("inventory summary", err)
	}
	return s, nil
}
