package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItem is a stocked SKU. TotalValue must equal CurrentStock × UnitCost at rest.
type InventoryItem struct {
	ID            string
	SKU           string
	Name          string
	Description   string
	Category      string
	SupplierID    string
	Supplier      *SupplierSummary
	CurrentStock  int
	MinStockLevel int
	MaxStockLevel int
	UnitCost      decimal.Decimal
	TotalValue    decimal.Decimal
	Location      string
	LastRestocked *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// RecomputeValue sets TotalValue from CurrentStock and UnitCost.
func (i *InventoryItem) RecomputeValue() {
	i.TotalValue = i.UnitCost.Mul(decimal.NewFromInt(int64(i.CurrentStock)))
}

// IsLowStock reports stock at or below the minimum level (out-of-stock included).
func (i *InventoryItem) IsLowStock() bool {
	return i.CurrentStock <= i.MinStockLevel
}

// IsOutOfStock reports zero stock.
func (i *InventoryItem) IsOutOfStock() bool {
	return i.CurrentStock == 0
}

// InventoryItemSummary compact form embedded in alerts.
type InventoryItemSummary struct {
	ID   string
	SKU  string
	Name string
}
