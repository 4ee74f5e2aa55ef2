package metric

import "github.com/Gaurav-0801/Manufacturing-Dashboard/internal/domain/entity"

// PeriodPoint one month of the performance chart.
type PeriodPoint struct {
	Period      string // YYYY-MM
	Month       string // short month name
	OnTime      float64
	Quality     float64
	Cost        float64
	Performance float64
}

// PerformanceSeries groups KPI rows by month, preserving first-seen order.
type PerformanceSeries struct {
	order  []string
	points map[string]*PeriodPoint
}

// NewPerformanceSeries returns an empty series.
func NewPerformanceSeries() *PerformanceSeries {
	return &PerformanceSeries{points: make(map[string]*PeriodPoint)}
}

// Add merges a KPI row into its month. Rows for other KPI names only open the month.
func (s *PerformanceSeries) Add(k entity.KPI) {
	key := k.Date.UTC().Format("2006-01")
	p, ok := s.points[key]
	if !ok {
		p = &PeriodPoint{Period: key, Month: k.Date.UTC().Format("Jan")}
		s.points[key] = p
		s.order = append(s.order, key)
	}
	switch k.Name {
	case KPIOnTimeDeliveryRate:
		p.OnTime = k.Value
	case KPIQualityScore:
		p.Quality = k.Value
	case KPITotalCostSavings:
		p.Cost = k.Value
	}
	p.Performance = (p.OnTime + p.Quality*20 + p.Cost/10000) / 3
}

// Points returns the months in insertion order.
func (s *PerformanceSeries) Points() []PeriodPoint {
	out := make([]PeriodPoint, 0, len(s.order))
	for _, key := range s.order {
		out = append(out, *s.points[key])
	}
	return out
}

// BuildPerformanceSeries groups rows already ordered by date.
func BuildPerformanceSeries(kpis []entity.KPI) []PeriodPoint {
	s := NewPerformanceSeries()
	for _, k := range kpis {
		s.Add(k)
	}
	return s.Points()
}

// SeriesLimit number of KPI rows read for a timeframe: 6 monthly, 4 quarterly.
func SeriesLimit(period entity.KPIPeriod) int {
	if period == entity.PeriodQuarterly {
		return 4
	}
	return 6
}
