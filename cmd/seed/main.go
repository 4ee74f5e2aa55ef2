// seed applies the embedded schema and loads the demo dataset.
//
// Usage: go run ./cmd/seed [-schema-only]
//
// The dataset is skipped when suppliers already exist, so the command can be rerun safely.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/infrastructure/postgres"
	"github.com/Gaurav-0801/Manufacturing-Dashboard/pkg/config"
	"github.com/Gaurav-0801/Manufacturing-Dashboard/pkg/logger"
)

var errAlreadySeeded = errors.New("suppliers already present")

func main() {
	schemaOnly := flag.Bool("schema-only", false, "apply the schema without loading demo data")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level}).Named("seed")

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.ApplySchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("apply schema")
	}
	log.Info().Msg("schema applied")
	if *schemaOnly {
		return
	}

	ds := demoDataset(time.Now().UTC())
	err = pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error { return load(ctx, tx, ds) })
	switch {
	case errors.Is(err, errAlreadySeeded):
		log.Info().Msg("demo data already present, nothing to do")
	case err != nil:
		log.Fatal().Err(err).Msg("load demo data")
	default:
		log.Info().
			Int("suppliers", len(ds.suppliers)).
			Int("shipments", len(ds.shipments)).
			Int("inventory_items", len(ds.items)).
			Int("alerts", len(ds.alerts)).
			Int("kpis", len(ds.kpis)).
			Msg("demo data loaded")
	}
}

func load(ctx context.Context, q postgres.Querier, ds dataset) error {
	suppliers := postgres.NewSupplierRepository(q)
	existing, err := suppliers.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return errAlreadySeeded
	}

	for i := range ds.suppliers {
		if err := suppliers.Create(ctx, &ds.suppliers[i]); err != nil {
			return fmt.Errorf("supplier %s: %w", ds.suppliers[i].Name, err)
		}
	}
	shipments := postgres.NewShipmentRepository(q)
	for i := range ds.shipments {
		if err := shipments.Create(ctx, &ds.shipments[i]); err != nil {
			return fmt.Errorf("shipment %s: %w", ds.shipments[i].TrackingNumber, err)
		}
	}
	items := postgres.NewInventoryRepository(q)
	for i := range ds.items {
		if err := items.Create(ctx, &ds.items[i]); err != nil {
			return fmt.Errorf("inventory item %s: %w", ds.items[i].SKU, err)
		}
	}
	alerts := postgres.NewAlertRepository(q)
	for i := range ds.alerts {
		if err := alerts.Create(ctx, &ds.alerts[i]); err != nil {
			return fmt.Errorf("alert %q: %w", ds.alerts[i].Title, err)
		}
	}
	kpis := postgres.NewKPIRepository(q)
	for i := range ds.kpis {
		if err := kpis.Upsert(ctx, &ds.kpis[i]); err != nil {
			return fmt.Errorf("kpi %s: %w", ds.kpis[i].Name, err)
		}
	}
	return nil
}
