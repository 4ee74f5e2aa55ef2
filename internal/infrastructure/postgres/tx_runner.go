package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/application/inventory"
	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/application/shipment"
	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)
var _ shipment.TxRunner = (*TxRunner)(nil)

// TxRunner runs callbacks inside a PostgreSQL transaction.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner builds the runner on top of the pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

func (r *TxRunner) inTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return classify("begin transaction", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Run opens a transaction with the inventory and KPI repos bound to it.
func (r *TxRunner) Run(ctx context.Context, fn func(
	items repository.InventoryRepository,
	kpis repository.KPIRepository,
) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(NewInventoryRepository(tx), NewKPIRepository(tx))
	})
}

// RunShipment opens a transaction with the shipment, supplier and KPI repos (delivery rule).
func (r *TxRunner) RunShipment(ctx context.Context, fn func(
	shipments repository.ShipmentRepository,
	suppliers repository.SupplierRepository,
	kpis repository.KPIRepository,
) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(NewShipmentRepository(tx), NewSupplierRepository(tx), NewKPIRepository(tx))
	})
}
