package repository

import (
	"context"

	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/domain/entity"
	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/domain/metric"
)

// InventoryFilter optional list filters.
type InventoryFilter struct {
	Category     string
	SupplierID   string
	LowStockOnly bool
}

// InventoryRepository persistence port for InventoryItem.
type InventoryRepository interface {
	Create(ctx context.Context, item *entity.InventoryItem) error
	GetByID(ctx context.Context, id string) (*entity.InventoryItem, error)
	GetForUpdate(ctx context.Context, id string) (*entity.InventoryItem, error)
	List(ctx context.Context, f InventoryFilter) ([]entity.InventoryItem, error)
	ListRecentBySupplier(ctx context.Context, supplierID string, limit int) ([]entity.InventoryItem, error)
	// Update writes every mutable column, stock and value included.
	Update(ctx context.Context, item *entity.InventoryItem) error
	Delete(ctx context.Context, id string) error
	// Summary aggregates value and stock levels over all items.
	Summary(ctx context.Context) (metric.InventorySummary, error)
}
