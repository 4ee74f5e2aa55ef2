package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/domain/entity"
)

// CreateSupplierRequest body of POST /api/suppliers. Status defaults to ACTIVE.
type CreateSupplierRequest struct {
	Name         string                `json:"name" validate:"required,max=200"`
	ContactEmail string                `json:"contactEmail" validate:"required,email"`
	ContactPhone string                `json:"contactPhone" validate:"omitempty,max=50"`
	Address      string                `json:"address" validate:"omitempty,max=500"`
	Status       entity.SupplierStatus `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE SUSPENDED PENDING_APPROVAL"`
}

// UpdateSupplierRequest body of PUT /api/suppliers/:id. Absent fields are left unchanged.
type UpdateSupplierRequest struct {
	Name             *string                `json:"name" validate:"omitempty,min=1,max=200"`
	ContactEmail     *string                `json:"contactEmail" validate:"omitempty,email"`
	ContactPhone     *string                `json:"contactPhone" validate:"omitempty,max=50"`
	Address          *string                `json:"address" validate:"omitempty,max=500"`
	Status           *entity.SupplierStatus `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE SUSPENDED PENDING_APPROVAL"`
	QualityRating    *float64               `json:"qualityRating" validate:"omitempty,gte=0,lte=5"`
	PerformanceScore *float64               `json:"performanceScore" validate:"omitempty,gte=0,lte=100"`
	CostSavings      *decimal.Decimal       `json:"costSavings"`
}

// SupplierResponse supplier as returned by the API.
type SupplierResponse struct {
	ID               string                `json:"id"`
	Name             string                `json:"name"`
	ContactEmail     string                `json:"contactEmail"`
	ContactPhone     string                `json:"contactPhone"`
	Address          string                `json:"address"`
	Status           entity.SupplierStatus `json:"status"`
	PerformanceScore float64               `json:"performanceScore"`
	TotalOrders      int                   `json:"totalOrders"`
	OnTimeDeliveries int                   `json:"onTimeDeliveries"`
	QualityRating    float64               `json:"qualityRating"`
	CostSavings      decimal.Decimal       `json:"costSavings"`
	CreatedAt        time.Time             `json:"createdAt"`
	UpdatedAt        time.Time             `json:"updatedAt"`
}

// SupplierCountsResponse related-record counts (`_count` in listings).
type SupplierCountsResponse struct {
	Shipments      int `json:"shipments"`
	InventoryItems int `json:"inventoryItems"`
	Alerts         int `json:"alerts"`
}

// SupplierListItemResponse row of GET /api/suppliers.
type SupplierListItemResponse struct {
	SupplierResponse
	Count SupplierCountsResponse `json:"_count"`
}

// SupplierDetailResponse GET /api/suppliers/:id: recent activity and open alerts.
type SupplierDetailResponse struct {
	SupplierResponse
	Shipments      []ShipmentResponse      `json:"shipments"`
	InventoryItems []InventoryItemResponse `json:"inventoryItems"`
	Alerts         []AlertResponse         `json:"alerts"`
}

// SupplierRef compact supplier embedded in other resources.
type SupplierRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// NewSupplierResponse maps the entity.
func NewSupplierResponse(s *entity.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:               s.ID,
		Name:             s.Name,
		ContactEmail:     s.ContactEmail,
		ContactPhone:     s.ContactPhone,
		Address:          s.Address,
		Status:           s.Status,
		PerformanceScore: s.PerformanceScore,
		TotalOrders:      s.TotalOrders,
		OnTimeDeliveries: s.OnTimeDeliveries,
		QualityRating:    s.QualityRating,
		CostSavings:      s.CostSavings,
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
	}
}

func newSupplierRef(s *entity.SupplierSummary) *SupplierRef {
	if s == nil {
		return nil
	}
	return &SupplierRef{ID: s.ID, Name: s.Name}
}
