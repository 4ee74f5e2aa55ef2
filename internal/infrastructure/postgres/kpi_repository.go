package postgres

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/domain/entity"
	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/domain/repository"
)

var _ repository.KPIRepository = (*KPIRepo)(nil)

// KPIRepo KPIRepository over PostgreSQL (pool or tx).
type KPIRepo struct {
	q Querier
}

// NewKPIRepository builds the adapter. Pass a pool or a tx.
func NewKPIRepository(q Querier) *KPIRepo {
	return &KPIRepo{q: q}
}

func kpiDefaults(k *entity.KPI) {
	if k.ID == "" {
		k.ID = uuid.NewString()
	}
	if k.Period == "" {
		k.Period = entity.PeriodDaily
	}
	if k.Date.IsZero() {
		k.Date = time.Now().UTC()
	}
}

// Upsert by name; an existing row keeps its metadata and gets the new value.
func (r *KPIRepo) Upsert(ctx context.Context, k *entity.KPI) error {
	return r.upsert(ctx, k, "EXCLUDED.value")
}

// Increment by name; an existing row adds k.Value to its value.
func (r *KPIRepo) Increment(ctx context.Context, k *entity.KPI) error {
	return r.upsert(ctx, k, "kpis.value + EXCLUDED.value")
}

func (r *KPIRepo) upsert(ctx context.Context, k *entity.KPI, valueExpr string) error {
	kpiDefaults(k)
	query := `
		INSERT INTO kpis (id, name, value, target, unit, category, period, date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now(), now())
		ON CONFLICT (name) DO UPDATE SET value = ` + valueExpr + `, updated_at = now()`
	_, err := r.q.Exec(ctx, query,
		k.ID, k.Name, k.Value, k.Target, k.Unit, k.Category, k.Period, k.Date,
	)
	if err != nil {
		return classify("upsert kpi "+k.Name, err)
	}
	return nil
}

// SetValue updates an existing KPI; a missing name is not an error.
func (r *KPIRepo) SetValue(ctx context.Context, name string, value float64) error {
	_, err := r.q.Exec(ctx, `UPDATE kpis SET value = $2, updated_at = now() WHERE name = $1`, name, value)
	if err != nil {
		return classify("set kpi "+name, err)
	}
	return nil
}

// List ordered by date ascending.
func (r *KPIRepo) List(ctx context.Context, f repository.KPIFilter) ([]entity.KPI, error) {
	var (
		where []string
		args  []any
	)
	if f.Period != "" {
		args = append(args, f.Period)
		where = append(where, "period = $"+strconv.Itoa(len(args)))
	}
	if f.Category != "" {
		args = append(args, f.Category)
		where = append(where, "category = $"+strconv.Itoa(len(args)))
	}
	query := `SELECT id, name, value, target, unit, category, period, date, created_at, updated_at FROM kpis`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY date ASC, name"
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += " LIMIT $" + strconv.Itoa(len(args))
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, classify("list kpis", err)
	}
	defer rows.Close()

	var out []entity.KPI
	for rows.Next() {
		var k entity.KPI
		if err := rows.Scan(&k.ID, &k.Name, &k.Value, &k.Target, &k.Unit, &k.Category, &k.Period,
			&k.Date, &k.CreatedAt, &k.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan kpi: %w", err)
		}
		out = append(out, k)
	}
	return out, rows.Err()
}
