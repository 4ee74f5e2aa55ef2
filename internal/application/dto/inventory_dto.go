package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/domain/entity"
	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/domain/metric"
)

// CreateInventoryItemRequest body of POST /api/inventory. TotalValue is derived.
type CreateInventoryItemRequest struct {
	SKU           string          `json:"sku" validate:"required,max=100"`
	Name          string          `json:"name" validate:"required,max=200"`
	Description   string          `json:"description"`
	Category      string          `json:"category" validate:"required,max=100"`
	SupplierID    string          `json:"supplierId" validate:"required,uuid"`
	CurrentStock  int             `json:"currentStock" validate:"gte=0,max=2147483647"`
	MinStockLevel int             `json:"minStockLevel" validate:"gte=0,max=2147483647"`
	MaxStockLevel int             `json:"maxStockLevel" validate:"gte=0,max=2147483647"`
	UnitCost      decimal.Decimal `json:"unitCost"`
	Location      string          `json:"location" validate:"max=200"`
}

// UpdateInventoryItemRequest body of PUT /api/inventory/:id. Stock changes go through /adjust.
type UpdateInventoryItemRequest struct {
	Name          *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description   *string          `json:"description"`
	Category      *string          `json:"category" validate:"omitempty,min=1,max=100"`
	MinStockLevel *int             `json:"minStockLevel" validate:"omitempty,gte=0,max=2147483647"`
	MaxStockLevel *int             `json:"maxStockLevel" validate:"omitempty,gte=0,max=2147483647"`
	UnitCost      *decimal.Decimal `json:"unitCost"`
	Location      *string          `json:"location" validate:"omitempty,max=200"`
}

// AdjustStockRequest body of POST /api/inventory/:id/adjust. Adjustment is a signed delta
// within the range of the stock column.
type AdjustStockRequest struct {
	Adjustment *int   `json:"adjustment" validate:"required,min=-2147483648,max=2147483647"`
	Reason     string `json:"reason" validate:"max=200"`
	Notes      string `json:"notes" validate:"max=1000"`
}

// InventoryItemResponse item as returned by the API.
type InventoryItemResponse struct {
	ID            string          `json:"id"`
	SKU           string          `json:"sku"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Category      string          `json:"category"`
	SupplierID    string          `json:"supplierId"`
	Supplier      *SupplierRef    `json:"supplier,omitempty"`
	CurrentStock  int             `json:"currentStock"`
	MinStockLevel int             `json:"minStockLevel"`
	MaxStockLevel int             `json:"maxStockLevel"`
	UnitCost      decimal.Decimal `json:"unitCost"`
	TotalValue    decimal.Decimal `json:"totalValue"`
	Location      string          `json:"location"`
	LastRestocked *time.Time      `json:"lastRestocked"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// InventoryItemRef compact item embedded in alerts.
type InventoryItemRef struct {
	ID   string `json:"id"`
	SKU  string `json:"sku"`
	Name string `json:"name"`
}

// AdjustmentDTO what an adjustment changed.
type AdjustmentDTO struct {
	OldStock    int             `json:"oldStock"`
	NewStock    int             `json:"newStock"`
	Adjustment  int             `json:"adjustment"`
	Reason      string          `json:"reason"`
	Notes       string          `json:"notes"`
	ValueChange decimal.Decimal `json:"valueChange"`
}

// InventorySummaryDTO process-wide inventory figures after an adjustment.
type InventorySummaryDTO struct {
	TotalInventoryValue decimal.Decimal `json:"totalInventoryValue"`
	LowStockItems       int             `json:"lowStockItems"`
	OutOfStockItems     int             `json:"outOfStockItems"`
}

// AdjustStockResponse response of POST /api/inventory/:id/adjust.
type AdjustStockResponse struct {
	Item       InventoryItemResponse `json:"item"`
	Adjustment AdjustmentDTO         `json:"adjustment"`
	Summary    InventorySummaryDTO   `json:"summary"`
}

// NewInventoryItemResponse maps the entity.
func NewInventoryItemResponse(i *entity.InventoryItem) InventoryItemResponse {
	return InventoryItemResponse{
		ID:            i.ID,
		SKU:           i.SKU,
		Name:          i.Name,
		Description:   i.Description,
		Category:      i.Category,
		SupplierID:    i.SupplierID,
		Supplier:      newSupplierRef(i.Supplier),
		CurrentStock:  i.CurrentStock,
		MinStockLevel: i.MinStockLevel,
		MaxStockLevel: i.MaxStockLevel,
		UnitCost:      i.UnitCost,
		TotalValue:    i.TotalValue,
		Location:      i.Location,
		LastRestocked: i.LastRestocked,
		CreatedAt:     i.CreatedAt,
		UpdatedAt:     i.UpdatedAt,
	}
}

// NewInventoryItemResponses maps a slice, never returning nil.
func NewInventoryItemResponses(in []entity.InventoryItem) []InventoryItemResponse {
	out := make([]InventoryItemResponse, 0, len(in))
	for i := range in {
		out = append(out, NewInventoryItemResponse(&in[i]))
	}
	return out
}

// NewInventorySummaryDTO maps the aggregate.
func NewInventorySummaryDTO(s metric.InventorySummary) InventorySummaryDTO {
	return InventorySummaryDTO{
		TotalInventoryValue: s.TotalValue,
		LowStockItems:       s.LowStockItems,
		OutOfStockItems:     s.OutOfStockItems,
	}
}
