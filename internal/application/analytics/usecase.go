// Package analytics computes the read-only dashboard aggregates: the overall
// performance index, the monthly/quarterly performance series and supplier risk.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"

	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/application/dto"
	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/domain"
	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/domain/entity"
	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/domain/metric"
	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/domain/repository"
	"github.com/Gaurav-0801/Manufacturing-Dashboard/pkg/telemetry"
)

// UseCase analytics reads. Nothing here writes to the store.
type UseCase struct {
	analytics repository.AnalyticsRepository
	suppliers repository.SupplierRepository
	items     repository.InventoryRepository
	kpis      repository.KPIRepository
	renderer  ReportRenderer
	now       func() time.Time
}

// NewUseCase builds the use-case. renderer may be nil when reports are not served.
func NewUseCase(
	analytics repository.AnalyticsRepository,
	suppliers repository.SupplierRepository,
	items repository.InventoryRepository,
	kpis repository.KPIRepository,
	renderer ReportRenderer,
) *UseCase {
	return &UseCase{
		analytics: analytics,
		suppliers: suppliers,
		items:     items,
		kpis:      kpis,
		renderer:  renderer,
		now:       time.Now,
	}
}

// Overview computes the overall performance index from the current store state.
//
// Four independent reads run in parallel:
//  1. ACTIVE suppliers   → avg performance, avg quality, cost savings
//  2. fleet deliveries   → on-time rate
//  3. inventory summary  → value and low-stock share
//  4. open alert counts  → critical/high
func (uc *UseCase) Overview(ctx context.Context) (*dto.OverviewResponse, error) {
	ctx, span := telemetry.Tracer().Start(ctx, "analytics.Overview")
	defer span.End()

	type suppliersResult struct {
		list []entity.Supplier
		err  error
	}
	type fleetResult struct {
		stats repository.DeliveryStats
		err   error
	}
	type inventoryResult struct {
		summary metric.InventorySummary
		err     error
	}
	type alertsResult struct {
		counts map[entity.AlertSeverity]int
		err    error
	}

	supCh := make(chan suppliersResult, 1)
	fleetCh := make(chan fleetResult, 1)
	invCh := make(chan inventoryResult, 1)
	alertCh := make(chan alertsResult, 1)

	go func() {
		list, err := uc.suppliers.ListByStatus(ctx, entity.SupplierActive)
		supCh <- suppliersResult{list, err}
	}()
	go func() {
		stats, err := uc.analytics.FleetDeliveryStats(ctx)
		fleetCh <- fleetResult{stats, err}
	}()
	go func() {
		summary, err := uc.items.Summary(ctx)
		invCh <- inventoryResult{summary, err}
	}()
	go func() {
		counts, err := uc.analytics.OpenAlertCounts(ctx)
		alertCh <- alertsResult{counts, err}
	}()

	sup := <-supCh
	fleet := <-fleetCh
	inv := <-invCh
	alerts := <-alertCh

	if sup.err != nil {
		return nil, fmt.Errorf("analytics.Overview: suppliers: %w", sup.err)
	}
	if fleet.err != nil {
		return nil, fmt.Errorf("analytics.Overview: deliveries: %w", fleet.err)
	}
	if inv.err != nil {
		return nil, fmt.Errorf("analytics.Overview: inventory: %w", inv.err)
	}
	if alerts.err != nil {
		return nil, fmt.Errorf("analytics.Overview: alerts: %w", alerts.err)
	}

	perf := make([]float64, 0, len(sup.list))
	quality := make([]float64, 0, len(sup.list))
	savings := decimal.Zero
	for _, s := range sup.list {
		perf = append(perf, s.PerformanceScore)
		quality = append(quality, s.QualityRating)
		savings = savings.Add(s.CostSavings)
	}
	avgQuality := metric.Mean(quality)
	totalSavings, _ := savings.Float64()
	onTimeRate := metric.OnTimeRate(fleet.stats.OnTime, fleet.stats.Delivered)

	scores := metric.Overall(metric.OverallInput{
		OnTimeRate:       onTimeRate,
		AvgQualityRating: avgQuality,
		TotalCostSavings: totalSavings,
		LowStockItems:    inv.summary.LowStockItems,
		TotalItems:       inv.summary.TotalItems,
	})
	trends := metric.ComputeTrends(scores.Overall, totalSavings, avgQuality, onTimeRate)
	span.SetAttributes(attribute.Float64("overall", scores.Overall))

	return &dto.OverviewResponse{
		OverallPerformance:  metric.Round(scores.Overall, 1),
		CostSavings:         savings,
		QualityScore:        metric.Round(avgQuality, 1),
		DeliveryPerformance: metric.Round(onTimeRate, 1),
		TotalSuppliers:      len(sup.list),
		AvgPerformanceScore: metric.Round(metric.Mean(perf), 1),
		TotalInventoryValue: inv.summary.TotalValue,
		LowStockItems:       inv.summary.LowStockItems,
		CriticalAlerts:      alerts.counts[entity.SeverityCritical],
		HighAlerts:          alerts.counts[entity.SeverityHigh],
		Trends: dto.TrendsDTO{
			PerformanceChange: trends.PerformanceChange,
			CostSavingsChange: trends.CostSavingsChange,
			QualityChange:     trends.QualityChange,
			DeliveryChange:    trends.DeliveryChange,
		},
	}, nil
}

// ParseTimeframe accepts monthly (default) and quarterly.
func ParseTimeframe(s string) (entity.KPIPeriod, error) {
	switch entity.KPIPeriod(s) {
	case "", entity.PeriodMonthly:
		return entity.PeriodMonthly, nil
	case entity.PeriodQuarterly:
		return entity.PeriodQuarterly, nil
	}
	return "", domain.ErrInvalidInput
}

// Performance groups the timeframe's KPI rows by month.
func (uc *UseCase) Performance(ctx context.Context, timeframe string) ([]dto.PerformancePointDTO, error) {
	period, err := ParseTimeframe(timeframe)
	if err != nil {
		return nil, err
	}
	rows, err := uc.kpis.List(ctx, repository.KPIFilter{Period: period, Limit: metric.SeriesLimit(period)})
	if err != nil {
		return nil, fmt.Errorf("analytics.Performance: %w", err)
	}
	points := metric.BuildPerformanceSeries(rows)
	out := make([]dto.PerformancePointDTO, 0, len(points))
	for _, p := range points {
		out = append(out, dto.PerformancePointDTO{
			Period:      p.Period,
			Month:       p.Month,
			OnTime:      p.OnTime,
			Quality:     p.Quality,
			Cost:        p.Cost,
			Performance: metric.Round(p.Performance, 1),
		})
	}
	return out, nil
}

// Suppliers risk-scores every ACTIVE supplier, best performance first.
func (uc *UseCase) Suppliers(ctx context.Context) ([]dto.SupplierAnalyticsDTO, error) {
	cards, err := uc.analytics.SupplierScorecards(ctx)
	if err != nil {
		return nil, fmt.Errorf("analytics.Suppliers: %w", err)
	}
	out := make([]dto.SupplierAnalyticsDTO, 0, len(cards))
	for _, c := range cards {
		rate := metric.OnTimeRate(c.Delivery.OnTime, c.Delivery.Delivered)
		score, category := metric.SupplierRisk(c.Supplier.PerformanceScore, c.Supplier.QualityRating, rate, c.OpenSevereAlerts)
		out = append(out, dto.SupplierAnalyticsDTO{
			ID:           c.Supplier.ID,
			Name:         c.Supplier.Name,
			Score:        c.Supplier.PerformanceScore,
			Orders:       c.Supplier.TotalOrders,
			OnTime:       metric.Round(rate, 1),
			Quality:      c.Supplier.QualityRating,
			Savings:      c.Supplier.CostSavings,
			RiskScore:    score,
			RiskCategory: string(category),
			Alerts:       c.OpenSevereAlerts,
		})
	}
	return out, nil
}

// SupplierReportPDF renders the overview and supplier risk table as a PDF.
func (uc *UseCase) SupplierReportPDF(ctx context.Context) ([]byte, error) {
	if uc.renderer == nil {
		return nil, fmt.Errorf("analytics.SupplierReportPDF: no renderer configured")
	}
	ctx, span := telemetry.Tracer().Start(ctx, "analytics.SupplierReportPDF")
	defer span.End()

	type suppliersResult struct {
		rows []dto.SupplierAnalyticsDTO
		err  error
	}
	supCh := make(chan suppliersResult, 1)
	go func() {
		rows, err := uc.Suppliers(ctx)
		supCh <- suppliersResult{rows, err}
	}()
	overview, err := uc.Overview(ctx)
	sup := <-supCh
	if err != nil {
		return nil, err
	}
	if sup.err != nil {
		return nil, sup.err
	}

	b, err := uc.renderer.SupplierScorecardPDF(ctx, SupplierReport{
		GeneratedAt: uc.now().UTC(),
		Overview:    *overview,
		Suppliers:   sup.rows,
	})
	if err != nil {
		return nil, fmt.Errorf("analytics.SupplierReportPDF: %w", err)
	}
	return b, nil
}
