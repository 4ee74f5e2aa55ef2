package dto

import (
	"time"

	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/domain/entity"
)

// Bulk actions accepted by PUT /api/alerts/bulk.
const (
	BulkMarkAsRead   = "markAsRead"
	BulkMarkAsUnread = "markAsUnread"
	BulkResolve      = "resolve"
	BulkUnresolve    = "unresolve"
)

// AlertListQuery filters of GET /api/alerts; empty or "all" means no filter.
type AlertListQuery struct {
	Severity   string `query:"severity"`
	Type       string `query:"type"`
	IsRead     string `query:"isRead"`
	IsResolved string `query:"isResolved"`
}

// CreateAlertRequest body of POST /api/alerts (manual alerts).
type CreateAlertRequest struct {
	Type            entity.AlertType     `json:"type" validate:"required,oneof=LOW_STOCK SHIPMENT_DELAY SUPPLIER_PERFORMANCE QUALITY_ISSUE COST_VARIANCE SYSTEM_NOTIFICATION"`
	Severity        entity.AlertSeverity `json:"severity" validate:"required,oneof=LOW MEDIUM HIGH CRITICAL"`
	Title           string               `json:"title" validate:"required,max=200"`
	Message         string               `json:"message" validate:"required,max=2000"`
	SupplierID      *string              `json:"supplierId" validate:"omitempty,uuid"`
	ShipmentID      *string              `json:"shipmentId" validate:"omitempty,uuid"`
	InventoryItemID *string              `json:"inventoryItemId" validate:"omitempty,uuid"`
}

// UpdateAlertRequest body of PUT /api/alerts/:id. Only present flags change.
type UpdateAlertRequest struct {
	IsRead     *bool `json:"isRead"`
	IsResolved *bool `json:"isResolved"`
}

// BulkAlertRequest body of PUT /api/alerts/bulk.
type BulkAlertRequest struct {
	AlertIDs []string `json:"alertIds" validate:"dive,uuid"`
	Action   string   `json:"action"`
}

// BulkAlertResponse result of a bulk action.
type BulkAlertResponse struct {
	Message string `json:"message"`
	Count   int64  `json:"count"`
}

// AlertResponse alert as returned by the API.
type AlertResponse struct {
	ID              string               `json:"id"`
	Type            entity.AlertType     `json:"type"`
	Severity        entity.AlertSeverity `json:"severity"`
	Title           string               `json:"title"`
	Message         string               `json:"message"`
	SupplierID      *string              `json:"supplierId"`
	ShipmentID      *string              `json:"shipmentId"`
	InventoryItemID *string              `json:"inventoryItemId"`
	IsRead          bool                 `json:"isRead"`
	IsResolved      bool                 `json:"isResolved"`
	CreatedAt       time.Time            `json:"createdAt"`
	UpdatedAt       time.Time            `json:"updatedAt"`
	Supplier        *SupplierRef         `json:"supplier,omitempty"`
	Shipment        *ShipmentRef         `json:"shipment,omitempty"`
	InventoryItem   *InventoryItemRef    `json:"inventoryItem,omitempty"`
}

// NewAlertResponse maps the entity.
func NewAlertResponse(a *entity.Alert) AlertResponse {
	out := AlertResponse{
		ID:              a.ID,
		Type:            a.Type,
		Severity:        a.Severity,
		Title:           a.Title,
		Message:         a.Message,
		SupplierID:      a.SupplierID,
		ShipmentID:      a.ShipmentID,
		InventoryItemID: a.InventoryItemID,
		IsRead:          a.IsRead,
		IsResolved:      a.IsResolved,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
		Supplier:        newSupplierRef(a.Supplier),
	}
	if a.Shipment != nil {
		out.Shipment = &ShipmentRef{ID: a.Shipment.ID, TrackingNumber: a.Shipment.TrackingNumber}
	}
	if a.InventoryItem != nil {
		out.InventoryItem = &InventoryItemRef{ID: a.InventoryItem.ID, SKU: a.InventoryItem.SKU, Name: a.InventoryItem.Name}
	}
	return out
}

// NewAlertResponses maps a slice, never returning nil.
func NewAlertResponses(in []entity.Alert) []AlertResponse {
	out := make([]AlertResponse, 0, len(in))
	for i := range in {
		out = append(out, NewAlertResponse(&in[i]))
	}
	return out
}
