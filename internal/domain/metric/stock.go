package metric

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/domain/entity"
)

// MaxStock is the largest quantity the stock columns hold.
const MaxStock = math.MaxInt32

// AdjustStock applies delta to current and clamps the result to [0, MaxStock].
// The sum saturates instead of wrapping.
func AdjustStock(current, delta int) int {
	if delta > 0 && current > MaxStock-delta {
		return MaxStock
	}
	n := current + delta
	switch {
	case n < 0:
		return 0
	case n > MaxStock:
		return MaxStock
	}
	return n
}

// StockOverflows reports whether current+delta would exceed MaxStock.
func StockOverflows(current, delta int) bool {
	return delta > 0 && current > MaxStock-delta
}

// StockValue is stock × unitCost.
func StockValue(stock int, unitCost decimal.Decimal) decimal.Decimal {
	return unitCost.Mul(decimal.NewFromInt(int64(stock)))
}

// StockPercentage is stock as a percentage of the minimum level.
func StockPercentage(stock, minLevel int) float64 {
	if minLevel <= 0 {
		return 100
	}
	return 100 * float64(stock) / float64(minLevel)
}

// LowStockSeverity tiers a low-stock percentage: <25 CRITICAL, <50 HIGH, otherwise MEDIUM.
func LowStockSeverity(pct float64) entity.AlertSeverity {
	switch {
	case pct < 25:
		return entity.SeverityCritical
	case pct < 50:
		return entity.SeverityHigh
	default:
		return entity.SeverityMedium
	}
}

// EvaluateStockLevel decides the alert raised after a stock adjustment.
// Out of stock wins over the percentage tiers; stock above the minimum raises nothing.
func EvaluateStockLevel(name, sku string, stock, minLevel int) *AlertDraft {
	if stock == 0 {
		return &AlertDraft{
			Type:     entity.AlertLowStock,
			Severity: entity.SeverityCritical,
			Title:    "Out of Stock",
			Message:  fmt.Sprintf("%s (%s) is completely out of stock", name, sku),
		}
	}
	if stock > minLevel {
		return nil
	}
	pct := StockPercentage(stock, minLevel)
	return &AlertDraft{
		Type:     entity.AlertLowStock,
		Severity: LowStockSeverity(pct),
		Title:    "Low Stock Alert",
		Message: fmt.Sprintf("%s (%s) has %d units remaining (%.1f%% of minimum threshold)",
			name, sku, stock, pct),
	}
}

// EvaluateInitialStock decides the alert raised when an item is created at or below its minimum.
// Creation uses a single HIGH tier.
func EvaluateInitialStock(name, sku string, stock, minLevel int) *AlertDraft {
	if stock > minLevel {
		return nil
	}
	return &AlertDraft{
		Type:     entity.AlertLowStock,
		Severity: entity.SeverityHigh,
		Title:    "Low Stock Alert",
		Message:  fmt.Sprintf("%s (%s) stock is below minimum threshold", name, sku),
	}
}

// InventorySummary process-wide inventory aggregates.
type InventorySummary struct {
	TotalValue      decimal.Decimal
	LowStockItems   int
	OutOfStockItems int
	TotalItems      int
}

// SummarizeInventory aggregates items; low stock counts items with stock ≤ min.
func SummarizeInventory(items []entity.InventoryItem) InventorySummary {
	s := InventorySummary{TotalValue: decimal.Zero, TotalItems: len(items)}
	for i := range items {
		s.TotalValue = s.TotalValue.Add(items[i].TotalValue)
		if items[i].IsLowStock() {
			s.LowStockItems++
		}
		if items[i].IsOutOfStock() {
			s.OutOfStockItems++
		}
	}
	return s
}
