package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/domain/entity"
	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo read-only aggregates. Needs the pool itself for Ping.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository builds the read-only adapter.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// Ping checks connectivity.
func (r *AnalyticsRepo) Ping(ctx context.Context) error {
	if err := r.pool.Ping(ctx); err != nil {
		return classify("ping", err)
	}
	return nil
}

// onTimeCondition date-only comparison, inclusive.
const onTimeCondition = `(actual_date AT TIME ZONE 'UTC')::date <= (expected_date AT TIME ZONE 'UTC')::date`

// FleetDeliveryStats counts every delivered shipment.
func (r *AnalyticsRepo) FleetDeliveryStats(ctx context.Context) (repository.DeliveryStats, error) {
	var st repository.DeliveryStats
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FILTER (WHERE actual_date IS NOT NULL AND `+onTimeCondition+`), COUNT(*)
		FROM shipments WHERE status = $1`,
		entity.ShipmentDelivered,
	).Scan(&st.OnTime, &st.Delivered)
	if err != nil {
		return repository.DeliveryStats{}, classify("fleet delivery stats", err)
	}
	return st, nil
}

// OpenAlertCounts unresolved alerts per severity.
func (r *AnalyticsRepo) OpenAlertCounts(ctx context.Context) (map[entity.AlertSeverity]int, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT severity, COUNT(*) FROM alerts WHERE is_resolved = false GROUP BY severity`)
	if err != nil {
		return nil, classify("open alert counts", err)
	}
	defer rows.Close()

	out := make(map[entity.AlertSeverity]int)
	for rows.Next() {
		var (
			sev entity.AlertSeverity
			n   int
		)
		if err := rows.Scan(&sev, &n); err != nil {
			return nil, fmt.Errorf("scan alert count: %w", err)
		}
		out[sev] = n
	}
	return out, rows.Err()
}

// SupplierTotals active count and savings over every supplier.
func (r *AnalyticsRepo) SupplierTotals(ctx context.Context) (repository.SupplierTotals, error) {
	var t repository.SupplierTotals
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FILTER (WHERE status = $1), COALESCE(SUM(cost_savings), 0)
		FROM suppliers`,
		entity.SupplierActive,
	).Scan(&t.Active, &t.TotalCostSavings)
	if err != nil {
		return repository.SupplierTotals{}, classify("supplier totals", err)
	}
	return t, nil
}

// SupplierScorecards active suppliers with delivery stats and open severe alerts.
func (r *AnalyticsRepo) SupplierScorecards(ctx context.Context) ([]repository.SupplierScorecard, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT s.id, s.name, s.contact_email, s.contact_phone, s.address, s.status, s.performance_score,
		       s.total_orders, s.on_time_deliveries, s.quality_rating, s.cost_savings, s.created_at, s.updated_at,
		       (SELECT COUNT(*) FROM shipments WHERE supplier_id = s.id AND status = 'DELIVERED'
		            AND actual_date IS NOT NULL AND `+onTimeCondition+`),
		       (SELECT COUNT(*) FROM shipments WHERE supplier_id = s.id AND status = 'DELIVERED'),
		       (SELECT COUNT(*) FROM alerts WHERE supplier_id = s.id AND is_resolved = false
		            AND severity IN ('HIGH', 'CRITICAL'))
		FROM suppliers s
		WHERE s.status = $1
		ORDER BY s.performance_score DESC, s.name`,
		entity.SupplierActive,
	)
	if err != nil {
		return nil, classify("supplier scorecards", err)
	}
	defer rows.Close()

	var out []repository.SupplierScorecard
	for rows.Next() {
		var c repository.SupplierScorecard
		s := &c.Supplier
		if err := rows.Scan(
			&s.ID, &s.Name, &s.ContactEmail, &s.ContactPhone, &s.Address, &s.Status,
			&s.PerformanceScore, &s.TotalOrders, &s.OnTimeDeliveries, &s.QualityRating,
			&s.CostSavings, &s.CreatedAt, &s.UpdatedAt,
			&c.Delivery.OnTime, &c.Delivery.Delivered, &c.OpenSevereAlerts,
		); err != nil {
			return nil, fmt.Errorf("scan scorecard: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
