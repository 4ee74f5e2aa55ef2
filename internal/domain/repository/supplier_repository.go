package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/domain/entity"
)

// SupplierRepository persistence port for Supplier.
// GetByID and GetForUpdate return nil, nil when the supplier does not exist.
type SupplierRepository interface {
	Create(ctx context.Context, s *entity.Supplier) error
	GetByID(ctx context.Context, id string) (*entity.Supplier, error)
	// GetForUpdate locks the row until the surrounding transaction ends.
	GetForUpdate(ctx context.Context, id string) (*entity.Supplier, error)
	// List returns every supplier ordered by performance score, best first.
	List(ctx context.Context) ([]entity.SupplierWithCounts, error)
	ListByStatus(ctx context.Context, status entity.SupplierStatus) ([]entity.Supplier, error)
	Update(ctx context.Context, s *entity.Supplier) error
	// ApplyDelivery writes the recomputed delivery figures and adds savingsDelta to cost savings.
	ApplyDelivery(ctx context.Context, id string, onTimeDeliveries int, performanceScore float64, savingsDelta decimal.Decimal) error
	IncrementTotalOrders(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}
