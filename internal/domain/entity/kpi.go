package entity

import "time"

// KPIPeriod aggregation window of a KPI row.
type KPIPeriod string

const (
	PeriodDaily     KPIPeriod = "daily"
	PeriodMonthly   KPIPeriod = "monthly"
	PeriodQuarterly KPIPeriod = "quarterly"
)

// Valid reports whether p is a known period.
func (p KPIPeriod) Valid() bool {
	return p == PeriodDaily || p == PeriodMonthly || p == PeriodQuarterly
}

// KPI named aggregate metric; Name is the upsert key.
type KPI struct {
	ID        string
	Name      string
	Value     float64
	Target    *float64
	Unit      string
	Category  string
	Period    KPIPeriod
	Date      time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}
