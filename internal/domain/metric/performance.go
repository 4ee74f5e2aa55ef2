package metric

import "math"

// Weights of the overall performance index; they sum to 1.
const (
	WeightDelivery  = 0.30
	WeightQuality   = 0.25
	WeightCost      = 0.25
	WeightInventory = 0.20

	// CostSavingsTarget savings that earn a full cost score.
	CostSavingsTarget = 300000.0
	maxQualityRating  = 5.0
)

// OverallInput current store state feeding the performance index.
type OverallInput struct {
	OnTimeRate       float64 // 0-100, fleet wide
	AvgQualityRating float64 // 0-5, active suppliers
	TotalCostSavings float64 // active suppliers
	LowStockItems    int
	TotalItems       int
}

// OverallScores component scores and the weighted index.
type OverallScores struct {
	Delivery  float64
	Quality   float64
	Cost      float64
	Inventory float64
	Overall   float64
}

// Overall computes the weighted performance index. No inventory items scores 100 on inventory.
func Overall(in OverallInput) OverallScores {
	s := OverallScores{
		Delivery:  math.Min(in.OnTimeRate, 100),
		Quality:   in.AvgQualityRating / maxQualityRating * 100,
		Cost:      math.Min(in.TotalCostSavings/CostSavingsTarget*100, 100),
		Inventory: 100,
	}
	if in.TotalItems > 0 {
		s.Inventory = math.Max(100-float64(in.LowStockItems)/float64(in.TotalItems)*100, 0)
	}
	s.Overall = WeightDelivery*s.Delivery +
		WeightQuality*s.Quality +
		WeightCost*s.Cost +
		WeightInventory*s.Inventory
	return s
}

// OnTimeRate 100 × onTime / delivered, 0 when nothing was delivered.
func OnTimeRate(onTime, delivered int) float64 {
	return PerformanceScore(onTime, delivered)
}

// Trends two-branch heuristics shown next to the overview figures.
type Trends struct {
	PerformanceChange float64
	CostSavingsChange float64
	QualityChange     float64
	DeliveryChange    float64
}

// ComputeTrends picks the fixed deltas for the current values.
func ComputeTrends(overall, totalSavings, avgQuality, onTimeRate float64) Trends {
	t := Trends{
		PerformanceChange: -1.5,
		CostSavingsChange: -5.2,
		QualityChange:     -0.1,
		DeliveryChange:    -2.1,
	}
	if overall > 85 {
		t.PerformanceChange = 2.1
	}
	if totalSavings > 250000 {
		t.CostSavingsChange = 12.5
	}
	if avgQuality >= 4.0 {
		t.QualityChange = 0.2
	}
	if onTimeRate >= 90 {
		t.DeliveryChange = 1.2
	}
	return t
}

// Round rounds half away from zero to the given decimal places.
func Round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// Mean of values, 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
