package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/domain/entity"
)

// DeliveryStats delivered shipments and how many arrived on time.
type DeliveryStats struct {
	OnTime    int
	Delivered int
}

// SupplierScorecard raw per-supplier figures for risk scoring.
type SupplierScorecard struct {
	Supplier entity.Supplier
	Delivery DeliveryStats
	// OpenSevereAlerts unresolved HIGH and CRITICAL alerts referencing the supplier.
	OpenSevereAlerts int
}

// SupplierTotals aggregates over the supplier table.
type SupplierTotals struct {
	Active           int
	TotalCostSavings decimal.Decimal // every supplier, any status
}

// AnalyticsRepository read-only aggregate queries.
type AnalyticsRepository interface {
	Ping(ctx context.Context) error
	// FleetDeliveryStats counts every delivered shipment.
	FleetDeliveryStats(ctx context.Context) (DeliveryStats, error)
	// OpenAlertCounts unresolved alerts per severity.
	OpenAlertCounts(ctx context.Context) (map[entity.AlertSeverity]int, error)
	SupplierTotals(ctx context.Context) (SupplierTotals, error)
	// SupplierScorecards active suppliers, best performance first.
	SupplierScorecards(ctx context.Context) ([]SupplierScorecard, error)
}
