package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SupplierStatus lifecycle state of a supplier.
type SupplierStatus string

const (
	SupplierActive          SupplierStatus = "ACTIVE"
	SupplierInactive        SupplierStatus = "INACTIVE"
	SupplierSuspended       SupplierStatus = "SUSPENDED"
	SupplierPendingApproval SupplierStatus = "PENDING_APPROVAL"
)

// Valid reports whether s is a known status.
func (s SupplierStatus) Valid() bool {
	switch s {
	case SupplierActive, SupplierInactive, SupplierSuspended, SupplierPendingApproval:
		return true
	}
	return false
}

// Supplier is a vendor of shipments and inventory items.
// PerformanceScore, OnTimeDeliveries and CostSavings are derived by the metric engine;
// TotalOrders grows by one per created shipment.
type Supplier struct {
	ID               string
	Name             string
	ContactEmail     string
	ContactPhone     string
	Address          string
	Status           SupplierStatus
	PerformanceScore float64 // 0-100
	TotalOrders      int
	OnTimeDeliveries int
	QualityRating    float64 // 0-5
	CostSavings      decimal.Decimal
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// SupplierSummary is the compact form embedded in other resources.
type SupplierSummary struct {
	ID   string
	Name string
}

// SupplierCounts related-record counts shown in supplier listings.
type SupplierCounts struct {
	Shipments      int
	InventoryItems int
	Alerts         int
}

// SupplierWithCounts listing row.
type SupplierWithCounts struct {
	Supplier
	Counts SupplierCounts
}
