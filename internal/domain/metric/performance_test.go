package metric_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/domain/entity"
	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/domain/metric"
)

func TestOverall_WeightedIndex(t *testing.T) {
	in := metric.OverallInput{
		OnTimeRate:       90,
		AvgQualityRating: 4.2,
		TotalCostSavings: 310000,
		LowStockItems:    1,
		TotalItems:       10,
	}
	s := metric.Overall(in)
	assert.InDelta(t, 90.0, s.Delivery, 1e-9)
	assert.InDelta(t, 84.0, s.Quality, 1e-9)
	assert.InDelta(t, 100.0, s.Cost, 1e-9)
	assert.InDelta(t, 90.0, s.Inventory, 1e-9)
	assert.InDelta(t, 91.0, s.Overall, 1e-9)

	// Pure: same input, same output.
	assert.Equal(t, s, metric.Overall(in))
}

func TestOverall_NoInventoryScoresFull(t *testing.T) {
	s := metric.Overall(metric.OverallInput{})
	assert.Equal(t, 100.0, s.Inventory)
	assert.InDelta(t, 20.0, s.Overall, 1e-9)
}

func TestOverall_Caps(t *testing.T) {
	s := metric.Overall(metric.OverallInput{OnTimeRate: 140, TotalCostSavings: 1e9, LowStockItems: 12, TotalItems: 10})
	assert.Equal(t, 100.0, s.Delivery)
	assert.Equal(t, 100.0, s.Cost)
	assert.Equal(t, 0.0, s.Inventory)
}

func TestComputeTrends(t *testing.T) {
	up := metric.ComputeTrends(86, 250001, 4.0, 90)
	assert.Equal(t, metric.Trends{PerformanceChange: 2.1, CostSavingsChange: 12.5, QualityChange: 0.2, DeliveryChange: 1.2}, up)

	down := metric.ComputeTrends(85, 250000, 3.99, 89.9)
	assert.Equal(t, metric.Trends{PerformanceChange: -1.5, CostSavingsChange: -5.2, QualityChange: -0.1, DeliveryChange: -2.1}, down)
}

func TestRound(t *testing.T) {
	assert.Equal(t, 91.1, metric.Round(91.06, 1))
	assert.Equal(t, 87.5, metric.Round(87.4999, 2))
	assert.Equal(t, 0.0, metric.Mean(nil))
	assert.Equal(t, 2.0, metric.Mean([]float64{1, 2, 3}))
}

func TestSupplierRisk(t *testing.T) {
	cases := []struct {
		name                  string
		perf, quality, onTime float64
		alerts                int
		score                 int
		category              metric.RiskCategory
	}{
		{name: "healthy", perf: 92, quality: 4.7, onTime: 95, score: 0, category: metric.RiskLow},
		{name: "late only", perf: 90, quality: 4.5, onTime: 80, score: 25, category: metric.RiskLow},
		{name: "low performance and quality", perf: 70, quality: 3.9, onTime: 90, score: 50, category: metric.RiskMedium},
		{name: "everything bad", perf: 70, quality: 3.9, onTime: 50, score: 75, category: metric.RiskHigh},
		{name: "capped", perf: 10, quality: 1, onTime: 0, alerts: 5, score: 100, category: metric.RiskHigh},
		{name: "alerts alone", perf: 90, quality: 4.5, onTime: 90, alerts: 4, score: 40, category: metric.RiskMedium},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			score, cat := metric.SupplierRisk(tc.perf, tc.quality, tc.onTime, tc.alerts)
			assert.Equal(t, tc.score, score)
			assert.Equal(t, tc.category, cat)
		})
	}
}

func TestBuildPerformanceSeries(t *testing.T) {
	jan := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	kpis := []entity.KPI{
		{Name: metric.KPIOnTimeDeliveryRate, Value: 90, Date: jan},
		{Name: metric.KPIQualityScore, Value: 4.5, Date: jan},
		{Name: metric.KPITotalCostSavings, Value: 300000, Date: jan},
		{Name: "Active Suppliers", Value: 3, Date: feb},
	}
	points := metric.BuildPerformanceSeries(kpis)
	require.Len(t, points, 2)

	assert.Equal(t, "2024-01", points[0].Period)
	assert.Equal(t, "Jan", points[0].Month)
	assert.Equal(t, 90.0, points[0].OnTime)
	assert.Equal(t, 4.5, points[0].Quality)
	assert.Equal(t, 300000.0, points[0].Cost)
	assert.InDelta(t, (90+90+30)/3.0, points[0].Performance, 1e-9)

	assert.Equal(t, "2024-02", points[1].Period)
	assert.Equal(t, "Feb", points[1].Month)
	assert.Equal(t, 0.0, points[1].Performance)
}

func TestSeriesLimit(t *testing.T) {
	assert.Equal(t, 6, metric.SeriesLimit(entity.PeriodMonthly))
	assert.Equal(t, 4, metric.SeriesLimit(entity.PeriodQuarterly))
}
