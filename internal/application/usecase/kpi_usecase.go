package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/application/dto"
	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/domain"
	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/domain/entity"
	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/domain/metric"
	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/domain/repository"
	"github.com/Gaurav-0801/Manufacturing-Dashboard/pkg/logger"
	"github.com/Gaurav-0801/Manufacturing-Dashboard/pkg/telemetry"
)

const (
	kpiRefreshLockKey = "mfg-dashboard:kpi-refresh"
	kpiRefreshLockTTL = 10 * time.Second
)

// ErrLockHeld another holder owns the lock.
var ErrLockHeld = errors.New("lock held")

// RefreshLocker serializes KPI refreshes across replicas. Obtain returns ErrLockHeld when the
// lock is taken; the returned func releases it.
type RefreshLocker interface {
	Obtain(ctx context.Context, key string, ttl time.Duration) (release func(context.Context) error, err error)
}

// KPIUseCase dashboard KPI snapshot and stored KPI history.
type KPIUseCase struct {
	analytics repository.AnalyticsRepository
	items     repository.InventoryRepository
	kpis      repository.KPIRepository
	locker    RefreshLocker
	metrics   *telemetry.Metrics
	log       *logger.Logger
	now       func() time.Time
}

// NewKPIUseCase builds the use-case. locker and metrics may be nil.
func NewKPIUseCase(
	analytics repository.AnalyticsRepository,
	items repository.InventoryRepository,
	kpis repository.KPIRepository,
	locker RefreshLocker,
	metrics *telemetry.Metrics,
	log *logger.Logger,
) *KPIUseCase {
	return &KPIUseCase{
		analytics: analytics,
		items:     items,
		kpis:      kpis,
		locker:    locker,
		metrics:   metrics,
		log:       log.Named("kpis"),
		now:       time.Now,
	}
}

// Snapshot computes the dashboard figures and refreshes the stored daily KPIs.
// It never fails: store trouble yields zeroed figures with Error and Message set.
func (uc *KPIUseCase) Snapshot(ctx context.Context) dto.KPISnapshotResponse {
	if err := uc.analytics.Ping(ctx); err != nil {
		return uc.softFailure(err)
	}
	totals, err := uc.analytics.SupplierTotals(ctx)
	if err != nil {
		return uc.softFailure(err)
	}
	fleet, err := uc.analytics.FleetDeliveryStats(ctx)
	if err != nil {
		return uc.softFailure(err)
	}
	summary, err := uc.items.Summary(ctx)
	if err != nil {
		return uc.softFailure(err)
	}
	open, err := uc.analytics.OpenAlertCounts(ctx)
	if err != nil {
		return uc.softFailure(err)
	}

	out := dto.KPISnapshotResponse{
		TotalCostSavings:   totals.TotalCostSavings,
		OnTimeDeliveryRate: metric.Round(metric.OnTimeRate(fleet.OnTime, fleet.Delivered), 2),
		InventoryValue:     summary.TotalValue,
		ActiveSuppliers:    totals.Active,
		LowStockItems:      summary.LowStockItems,
		CriticalAlerts:     open[entity.SeverityCritical],
		HighAlerts:         open[entity.SeverityHigh],
		TotalShipments:     fleet.Delivered,
		OnTimeDeliveries:   fleet.OnTime,
	}
	uc.refresh(ctx, out, metric.OnTimeRate(fleet.OnTime, fleet.Delivered))
	return out
}

func (uc *KPIUseCase) softFailure(err error) dto.KPISnapshotResponse {
	out := dto.KPISnapshotResponse{
		TotalCostSavings: decimal.Zero,
		InventoryValue:   decimal.Zero,
	}
	switch {
	case errors.Is(err, domain.ErrStoreUnavailable):
		out.Error = "Database not accessible"
		out.Message = "Database may not be running. Please check DATABASE_URL and run the seed command."
		out.SetupRequired = true
		uc.metrics.KPISnapshotFailed("unavailable")
	case errors.Is(err, domain.ErrStoreNotInitialized):
		out.Error = "Database not initialized"
		out.Message = "Please run the database initialization script first"
		out.SetupRequired = true
		uc.metrics.KPISnapshotFailed("not_initialized")
	default:
		ts := uc.now().UTC()
		out.Error = "Unexpected server error"
		out.Message = err.Error()
		out.Timestamp = &ts
		uc.metrics.KPISnapshotFailed("unexpected")
	}
	uc.log.Error().Err(err).Str("reason", out.Error).Msg("kpi snapshot degraded")
	return out
}

// refresh upserts the six snapshot KPIs. With a locker, a refresh already running elsewhere wins.
func (uc *KPIUseCase) refresh(ctx context.Context, s dto.KPISnapshotResponse, onTimeRate float64) {
	if uc.locker != nil {
		release, err := uc.locker.Obtain(ctx, kpiRefreshLockKey, kpiRefreshLockTTL)
		if errors.Is(err, ErrLockHeld) {
			uc.metrics.KPIRefreshSkipped()
			return
		}
		if err != nil {
			uc.log.Warn().Err(err).Msg("kpi refresh lock unavailable, refreshing without it")
		} else {
			defer func() {
				if err := release(context.WithoutCancel(ctx)); err != nil {
					uc.log.Warn().Err(err).Msg("kpi refresh lock release failed")
				}
			}()
		}
	}

	savings, _ := s.TotalCostSavings.Float64()
	inventory, _ := s.InventoryValue.Float64()
	rows := []entity.KPI{
		metric.NewKPI(metric.KPITotalCostSavings, savings),
		metric.NewKPI(metric.KPIOnTimeDeliveryRate, onTimeRate),
		metric.NewKPI(metric.KPIInventoryValue, inventory),
		metric.NewKPI(metric.KPIActiveSuppliers, float64(s.ActiveSuppliers)),
		metric.NewKPI(metric.KPILowStockItems, float64(s.LowStockItems)),
		metric.NewKPI(metric.KPICriticalAlerts, float64(s.CriticalAlerts)),
	}
	for i := range rows {
		if err := uc.kpis.Upsert(ctx, &rows[i]); err != nil {
			uc.log.Warn().Err(err).Str("kpi", rows[i].Name).Msg("kpi upsert failed, continuing with calculated values")
			return
		}
	}
}

// History stored KPI rows, oldest first, optionally limited to a category and period.
func (uc *KPIUseCase) History(ctx context.Context, category string, period entity.KPIPeriod) ([]dto.KPIResponse, error) {
	if period != "" && !period.Valid() {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.kpis.List(ctx, repository.KPIFilter{Category: category, Period: period})
	if err != nil {
		return nil, fmt.Errorf("kpis.History: %w", err)
	}
	return dto.NewKPIResponses(list), nil
}
