package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/domain/entity"
)

// ShipmentItemDTO line item of a shipment.
type ShipmentItemDTO struct {
	SKU       string          `json:"sku" validate:"required"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity" validate:"gte=0"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

// CreateShipmentRequest body of POST /api/shipments. New shipments start PENDING.
type CreateShipmentRequest struct {
	TrackingNumber string            `json:"trackingNumber" validate:"required,max=100"`
	SupplierID     string            `json:"supplierId" validate:"required,uuid"`
	ExpectedDate   Date              `json:"expectedDate" validate:"required"`
	Origin         string            `json:"origin" validate:"required,max=200"`
	Destination    string            `json:"destination" validate:"required,max=200"`
	TotalValue     decimal.Decimal   `json:"totalValue"`
	Weight         float64           `json:"weight" validate:"gte=0"`
	Items          []ShipmentItemDTO `json:"items" validate:"dive"`
	Notes          string            `json:"notes"`
}

// UpdateShipmentRequest body of PUT /api/shipments/:id.
// ActualDate is required when Status is DELIVERED and ignored otherwise.
type UpdateShipmentRequest struct {
	Status     entity.ShipmentStatus `json:"status" validate:"required,oneof=PENDING IN_TRANSIT DELIVERED DELAYED CANCELLED RETURNED"`
	ActualDate *Date                 `json:"actualDate"`
	Notes      *string               `json:"notes"`
}

// ShipmentResponse shipment as returned by the API.
type ShipmentResponse struct {
	ID             string                `json:"id"`
	TrackingNumber string                `json:"trackingNumber"`
	SupplierID     string                `json:"supplierId"`
	Supplier       *SupplierRef          `json:"supplier,omitempty"`
	Status         entity.ShipmentStatus `json:"status"`
	ExpectedDate   time.Time             `json:"expectedDate"`
	ActualDate     *time.Time            `json:"actualDate"`
	Origin         string                `json:"origin"`
	Destination    string                `json:"destination"`
	TotalValue     decimal.Decimal       `json:"totalValue"`
	Weight         float64               `json:"weight"`
	Items          []ShipmentItemDTO     `json:"items"`
	Notes          string                `json:"notes"`
	CreatedAt      time.Time             `json:"createdAt"`
	UpdatedAt      time.Time             `json:"updatedAt"`
}

// ShipmentRef compact shipment embedded in alerts.
type ShipmentRef struct {
	ID             string `json:"id"`
	TrackingNumber string `json:"trackingNumber"`
}

// NewShipmentResponse maps the entity.
func NewShipmentResponse(s *entity.Shipment) ShipmentResponse {
	items := make([]ShipmentItemDTO, 0, len(s.Items))
	for _, it := range s.Items {
		items = append(items, ShipmentItemDTO(it))
	}
	return ShipmentResponse{
		ID:             s.ID,
		TrackingNumber: s.TrackingNumber,
		SupplierID:     s.SupplierID,
		Supplier:       newSupplierRef(s.Supplier),
		Status:         s.Status,
		ExpectedDate:   s.ExpectedDate,
		ActualDate:     s.ActualDate,
		Origin:         s.Origin,
		Destination:    s.Destination,
		TotalValue:     s.TotalValue,
		Weight:         s.Weight,
		Items:          items,
		Notes:          s.Notes,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}

// NewShipmentResponses maps a slice, never returning nil.
func NewShipmentResponses(in []entity.Shipment) []ShipmentResponse {
	out := make([]ShipmentResponse, 0, len(in))
	for i := range in {
		out = append(out, NewShipmentResponse(&in[i]))
	}
	return out
}

// ToShipmentItems converts request items to entity items.
func ToShipmentItems(in []ShipmentItemDTO) []entity.ShipmentItem {
	out := make([]entity.ShipmentItem, 0, len(in))
	for _, it := range in {
		out = append(out, entity.ShipmentItem(it))
	}
	return out
}
