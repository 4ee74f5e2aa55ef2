package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/domain/entity"
)

// KPISnapshotResponse body of GET /api/kpis. On store trouble the figures are zero and
// Error/Message/SetupRequired describe what went wrong; the status stays 200.
type KPISnapshotResponse struct {
	TotalCostSavings   decimal.Decimal `json:"totalCostSavings"`
	OnTimeDeliveryRate float64         `json:"onTimeDeliveryRate"`
	InventoryValue     decimal.Decimal `json:"inventoryValue"`
	ActiveSuppliers    int             `json:"activeSuppliers"`
	LowStockItems      int             `json:"lowStockItems"`
	CriticalAlerts     int             `json:"criticalAlerts"`
	HighAlerts         int             `json:"highAlerts"`
	TotalShipments     int             `json:"totalShipments"`
	OnTimeDeliveries   int             `json:"onTimeDeliveries"`

	SetupRequired bool       `json:"setupRequired,omitempty"`
	Error         string     `json:"error,omitempty"`
	Message       string     `json:"message,omitempty"`
	Timestamp     *time.Time `json:"timestamp,omitempty"`
}

// KPIResponse stored KPI row (GET /api/kpis/history).
type KPIResponse struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Value     float64          `json:"value"`
	Target    *float64         `json:"target"`
	Unit      string           `json:"unit"`
	Category  string           `json:"category"`
	Period    entity.KPIPeriod `json:"period"`
	Date      time.Time        `json:"date"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

// NewKPIResponses maps a slice, never returning nil.
func NewKPIResponses(in []entity.KPI) []KPIResponse {
	out := make([]KPIResponse, 0, len(in))
	for _, k := range in {
		out = append(out, KPIResponse{
			ID:        k.ID,
			Name:      k.Name,
			Value:     k.Value,
			Target:    k.Target,
			Unit:      k.Unit,
			Category:  k.Category,
			Period:    k.Period,
			Date:      k.Date,
			UpdatedAt: k.UpdatedAt,
		})
	}
	return out
}
