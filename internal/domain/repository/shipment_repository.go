package repository

import (
	"context"
	"time"

	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/domain/entity"
)

// ShipmentFilter optional list filters; zero values match everything.
type ShipmentFilter struct {
	Status     entity.ShipmentStatus
	SupplierID string
}

// ShipmentRepository persistence port for Shipment.
type ShipmentRepository interface {
	Create(ctx context.Context, s *entity.Shipment) error
	GetByID(ctx context.Context, id string) (*entity.Shipment, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Shipment, error)
	List(ctx context.Context, f ShipmentFilter) ([]entity.Shipment, error)
	// ListRecentBySupplier newest first, at most limit rows.
	ListRecentBySupplier(ctx context.Context, supplierID string, limit int) ([]entity.Shipment, error)
	ListDeliveredBySupplier(ctx context.Context, supplierID string) ([]entity.Shipment, error)
	UpdateStatus(ctx context.Context, id string, status entity.ShipmentStatus, actualDate *time.Time, notes string) error
	Delete(ctx context.Context, id string) error
}
