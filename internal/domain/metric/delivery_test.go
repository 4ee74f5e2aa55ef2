package metric_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/domain/entity"
	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/domain/metric"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func delivered(expected, actual time.Time, value string) entity.Shipment {
	a := actual
	return entity.Shipment{
		TrackingNumber: "TRK-1",
		Status:         entity.ShipmentDelivered,
		ExpectedDate:   expected,
		ActualDate:     &a,
		TotalValue:     decimal.RequireFromString(value),
	}
}

func TestIsOnTime_DateOnlyInclusive(t *testing.T) {
	expected := day(2024, 1, 10)
	assert.True(t, metric.IsOnTime(day(2024, 1, 9), expected))
	assert.True(t, metric.IsOnTime(expected, expected))
	// Later the same day still counts.
	assert.True(t, metric.IsOnTime(expected.Add(23*time.Hour), expected))
	assert.False(t, metric.IsOnTime(day(2024, 1, 11), expected))
}

func TestDaysLate(t *testing.T) {
	expected := day(2024, 1, 10)
	assert.Equal(t, 0, metric.DaysLate(day(2024, 1, 10), expected))
	assert.Equal(t, 1, metric.DaysLate(day(2024, 1, 11), expected))
	assert.Equal(t, 8, metric.DaysLate(day(2024, 1, 18), expected))
}

func TestDeliverySavings(t *testing.T) {
	value := decimal.NewFromInt(10000)
	assert.True(t, metric.DeliverySavings(value, true).Equal(decimal.NewFromInt(200)))
	assert.True(t, metric.DeliverySavings(value, false).IsZero())
}

func TestPerformanceScore(t *testing.T) {
	assert.Equal(t, 0.0, metric.PerformanceScore(0, 0))
	assert.Equal(t, 80.0, metric.PerformanceScore(8, 10))
	assert.Equal(t, 100.0, metric.PerformanceScore(3, 3))
}

func TestEvaluateDelivery_OnTime(t *testing.T) {
	s := delivered(day(2024, 1, 10), day(2024, 1, 10), "10000")
	out := metric.EvaluateDelivery(s, []entity.Shipment{s})
	assert.True(t, out.OnTime)
	assert.True(t, out.Savings.Equal(decimal.NewFromInt(200)))
	assert.Equal(t, 1, out.OnTimeDeliveries)
	assert.Equal(t, 100.0, out.PerformanceScore)
	assert.Nil(t, out.Alert)
}

func TestEvaluateDelivery_OneDayLate(t *testing.T) {
	s := delivered(day(2024, 1, 10), day(2024, 1, 11), "10000")
	out := metric.EvaluateDelivery(s, []entity.Shipment{s})
	assert.False(t, out.OnTime)
	assert.True(t, out.Savings.IsZero())
	assert.Equal(t, 1, out.DaysLate)
	require.NotNil(t, out.Alert)
	assert.Equal(t, entity.AlertShipmentDelay, out.Alert.Type)
	assert.Equal(t, entity.SeverityMedium, out.Alert.Severity)
	assert.Equal(t, "Late Delivery", out.Alert.Title)
	assert.Equal(t, "Shipment TRK-1 was delivered 1 days late. Potential cost impact: $500.00", out.Alert.Message)
}

func TestEvaluateDelivery_MoreThanAWeekLateIsHigh(t *testing.T) {
	s := delivered(day(2024, 1, 10), day(2024, 1, 18), "15000")
	out := metric.EvaluateDelivery(s, []entity.Shipment{s})
	require.NotNil(t, out.Alert)
	assert.Equal(t, entity.SeverityHigh, out.Alert.Severity)

	s = delivered(day(2024, 1, 10), day(2024, 1, 17), "15000")
	out = metric.EvaluateDelivery(s, []entity.Shipment{s})
	require.NotNil(t, out.Alert)
	assert.Equal(t, entity.SeverityMedium, out.Alert.Severity)
}

func TestEvaluateDelivery_RecountsHistoryFresh(t *testing.T) {
	var history []entity.Shipment
	for i := 0; i < 8; i++ {
		history = append(history, delivered(day(2024, 2, 10), day(2024, 2, 9), "100"))
	}
	for i := 0; i < 2; i++ {
		history = append(history, delivered(day(2024, 2, 10), day(2024, 2, 12), "100"))
	}
	// Shipments that are not delivered are ignored.
	history = append(history, entity.Shipment{Status: entity.ShipmentInTransit, ExpectedDate: day(2024, 2, 10)})

	out := metric.EvaluateDelivery(history[0], history)
	assert.Equal(t, 8, out.OnTimeDeliveries)
	assert.Equal(t, 80.0, out.PerformanceScore)
}
