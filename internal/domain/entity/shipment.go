package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ShipmentStatus state of a shipment.
type ShipmentStatus string

const (
	ShipmentPending   ShipmentStatus = "PENDING"
	ShipmentInTransit ShipmentStatus = "IN_TRANSIT"
	ShipmentDelivered ShipmentStatus = "DELIVERED"
	ShipmentDelayed   ShipmentStatus = "DELAYED"
	ShipmentCancelled ShipmentStatus = "CANCELLED"
	ShipmentReturned  ShipmentStatus = "RETURNED"
)

// Valid reports whether s is a known status.
func (s ShipmentStatus) Valid() bool {
	switch s {
	case ShipmentPending, ShipmentInTransit, ShipmentDelivered,
		ShipmentDelayed, ShipmentCancelled, ShipmentReturned:
		return true
	}
	return false
}

// ShipmentItem line item carried by a shipment (stored as JSONB).
type ShipmentItem struct {
	SKU       string          `json:"sku"`
	Name      string          `json:"name,omitempty"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

// Shipment is an inbound delivery from a supplier.
// ActualDate is set only while Status is DELIVERED.
type Shipment struct {
	ID             string
	TrackingNumber string
	SupplierID     string
	Supplier       *SupplierSummary
	Status         ShipmentStatus
	ExpectedDate   time.Time
	ActualDate     *time.Time
	Origin         string
	Destination    string
	TotalValue     decimal.Decimal
	Weight         float64
	Items          []ShipmentItem
	Notes          string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsDelivered reports whether the shipment has been delivered with a recorded date.
func (s *Shipment) IsDelivered() bool {
	return s.Status == ShipmentDelivered && s.ActualDate != nil
}
