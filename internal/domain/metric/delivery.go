package metric

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/domain/entity"
)

var (
	onTimeSavingsRate = decimal.RequireFromString("0.02")
	lateImpactRate    = decimal.RequireFromString("0.05")
)

// lateHighSeverityDays deliveries later than this raise a HIGH alert instead of MEDIUM.
const lateHighSeverityDays = 7

func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// IsOnTime compares calendar dates: delivery on the expected day counts as on time.
func IsOnTime(actual, expected time.Time) bool {
	return !dateOnly(actual).After(dateOnly(expected))
}

// DaysLate whole days between expected and actual delivery, 0 when on time.
func DaysLate(actual, expected time.Time) int {
	diff := dateOnly(actual).Sub(dateOnly(expected))
	if diff <= 0 {
		return 0
	}
	return int(math.Ceil(diff.Hours() / 24))
}

// DeliverySavings is 2% of the shipment value for on-time deliveries and zero otherwise.
func DeliverySavings(totalValue decimal.Decimal, onTime bool) decimal.Decimal {
	if !onTime {
		return decimal.Zero
	}
	return totalValue.Mul(onTimeSavingsRate)
}

// LateCostImpact estimated impact of a late delivery (5% of the shipment value).
func LateCostImpact(totalValue decimal.Decimal) decimal.Decimal {
	return totalValue.Mul(lateImpactRate)
}

// PerformanceScore 100 × onTime / delivered, 0 when nothing was delivered.
func PerformanceScore(onTime, delivered int) float64 {
	if delivered <= 0 {
		return 0
	}
	return 100 * float64(onTime) / float64(delivered)
}

// DeliveryStats counts delivered shipments and how many of them were on time.
func DeliveryStats(shipments []entity.Shipment) (onTime, delivered int) {
	for i := range shipments {
		s := &shipments[i]
		if !s.IsDelivered() {
			continue
		}
		delivered++
		if IsOnTime(*s.ActualDate, s.ExpectedDate) {
			onTime++
		}
	}
	return onTime, delivered
}

// DelaySeverity HIGH beyond a week late, MEDIUM otherwise.
func DelaySeverity(daysLate int) entity.AlertSeverity {
	if daysLate > lateHighSeverityDays {
		return entity.SeverityHigh
	}
	return entity.SeverityMedium
}

// EvaluateLateDelivery builds the SHIPMENT_DELAY alert for a late delivery.
func EvaluateLateDelivery(trackingNumber string, totalValue decimal.Decimal, daysLate int) *AlertDraft {
	if daysLate <= 0 {
		return nil
	}
	return &AlertDraft{
		Type:     entity.AlertShipmentDelay,
		Severity: DelaySeverity(daysLate),
		Title:    "Late Delivery",
		Message: fmt.Sprintf("Shipment %s was delivered %d days late. Potential cost impact: $%s",
			trackingNumber, daysLate, LateCostImpact(totalValue).StringFixed(2)),
	}
}

// DeliveryOutcome result of applying a delivery to its supplier.
type DeliveryOutcome struct {
	OnTime           bool
	DaysLate         int
	Savings          decimal.Decimal
	OnTimeDeliveries int
	PerformanceScore float64
	Alert            *AlertDraft
}

// EvaluateDelivery scores a delivered shipment against the supplier's delivered history,
// which must already include the shipment itself.
func EvaluateDelivery(shipment entity.Shipment, delivered []entity.Shipment) DeliveryOutcome {
	out := DeliveryOutcome{Savings: decimal.Zero}
	if shipment.ActualDate == nil {
		return out
	}
	out.OnTime = IsOnTime(*shipment.ActualDate, shipment.ExpectedDate)
	out.Savings = DeliverySavings(shipment.TotalValue, out.OnTime)
	onTime, total := DeliveryStats(delivered)
	out.OnTimeDeliveries = onTime
	out.PerformanceScore = PerformanceScore(onTime, total)
	if !out.OnTime {
		out.DaysLate = DaysLate(*shipment.ActualDate, shipment.ExpectedDate)
		out.Alert = EvaluateLateDelivery(shipment.TrackingNumber, shipment.TotalValue, out.DaysLate)
	}
	return out
}
