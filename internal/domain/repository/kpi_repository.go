package repository

import (
	"context"

	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/domain/entity"
)

// KPIFilter list filters; Limit 0 means no limit. Rows are ordered by date ascending.
type KPIFilter struct {
	Period   entity.KPIPeriod
	Category string
	Limit    int
}

// KPIRepository persistence port for KPI rows keyed by name.
type KPIRepository interface {
	// Upsert creates the KPI or overwrites its value.
	Upsert(ctx context.Context, k *entity.KPI) error
	// Increment creates the KPI with k.Value or adds k.Value to the stored value.
	Increment(ctx context.Context, k *entity.KPI) error
	// SetValue overwrites the value of an existing KPI; missing names are ignored.
	SetValue(ctx context.Context, name string, value float64) error
	List(ctx context.Context, f KPIFilter) ([]entity.KPI, error)
}
