package shipment

import (
	"context"

	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/domain/repository"
)

// TxRunner runs fn inside one store transaction with repos bound to it.
type TxRunner interface {
	RunShipment(ctx context.Context, fn func(
		shipments repository.ShipmentRepository,
		suppliers repository.SupplierRepository,
		kpis repository.KPIRepository,
	) error) error
}
