package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	goredis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/application/alerting"
	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/application/analytics"
	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/application/inventory"
	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/application/shipment"
	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/application/usecase"
	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/infrastructure/export"
	infrapdf "github.com/Gaurav-0801/Manufacturing-Dashboard/internal/infrastructure/pdf"
	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/infrastructure/postgres"
	infraredis "github.com/Gaurav-0801/Manufacturing-Dashboard/internal/infrastructure/redis"
	httpRouter "github.com/Gaurav-0801/Manufacturing-Dashboard/internal/interfaces/http"
	"github.com/Gaurav-0801/Manufacturing-Dashboard/pkg/config"
	"github.com/Gaurav-0801/Manufacturing-Dashboard/pkg/logger"
	"github.com/Gaurav-0801/Manufacturing-Dashboard/pkg/telemetry"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load config: " + err.Error())
	}

	// Money goes out as JSON numbers, as the dashboard expects.
	decimal.MarshalJSONWithoutQuotes = true

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting")

	ctx := context.Background()

	shutdownTracer, err := telemetry.InitTracer(ctx, cfg.Telemetry.OTLPEndpoint, cfg.App.Name, version)
	if err != nil {
		log.Warn().Err(err).Msg("tracing disabled")
	}

	pool, err := postgres.OpenPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("postgres pool")
	}
	defer pool.Close()
	// The API still starts without the database: /api/kpis degrades to setupRequired
	// and /health reports the outage.
	if err := pool.Ping(ctx); err != nil {
		log.Error().Err(err).Msg("postgres unreachable at startup")
	}

	var metrics *telemetry.Metrics
	if cfg.Telemetry.MetricsEnabled {
		metrics = telemetry.NewMetrics()
	}

	var rdb *goredis.Client
	if cfg.Redis.Addr != "" {
		rdb, err = infraredis.NewClient(ctx, cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, continuing without it")
			rdb = nil
		} else {
			defer rdb.Close()
		}
	}

	supplierRepo := postgres.NewSupplierRepository(pool)
	shipmentRepo := postgres.NewShipmentRepository(pool)
	inventoryRepo := postgres.NewInventoryRepository(pool)
	alertRepo := postgres.NewAlertRepository(pool)
	kpiRepo := postgres.NewKPIRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	var emitterOpts []alerting.Option
	var locker usecase.RefreshLocker
	if cfg.Alerts.DedupWindow > 0 {
		storeDeduper := alerting.NewStoreDeduper(alertRepo)
		var deduper alerting.Deduper = storeDeduper
		if rdb != nil {
			deduper = infraredis.NewDeduper(rdb, storeDeduper)
		}
		emitterOpts = append(emitterOpts, alerting.WithDedup(deduper, cfg.Alerts.DedupWindow))
	}
	if rdb != nil {
		locker = infraredis.NewLocker(rdb)
	}
	emitter := alerting.NewEmitter(alertRepo, log, metrics, emitterOpts...)

	inventoryUC := inventory.NewUseCase(txRunner, inventoryRepo, supplierRepo, emitter, export.NewWorkbook(), metrics, log)
	shipmentUC := shipment.NewUseCase(txRunner, shipmentRepo, emitter, metrics, log)
	supplierUC := usecase.NewSupplierUseCase(supplierRepo, shipmentRepo, inventoryRepo, alertRepo, kpiRepo, log)
	alertUC := usecase.NewAlertUseCase(alertRepo)
	kpiUC := usecase.NewKPIUseCase(analyticsRepo, inventoryRepo, kpiRepo, locker, metrics, log)
	analyticsUC := analytics.NewUseCase(analyticsRepo, supplierRepo, inventoryRepo, kpiRepo,
		infrapdf.NewScorecardRenderer(cfg.App.Name))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Named("http")))
	if metrics != nil {
		app.Use(httpRouter.Metrics(metrics))
	}

	// Swagger UI at /docs
	if _, err := os.Stat(cfg.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.SwaggerFile,
			Path:     "docs",
			Title:    "Manufacturing Dashboard API",
		}))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		ServiceName: cfg.App.Name,
		AlertUC:     alertUC,
		SupplierUC:  supplierUC,
		KPIUC:       kpiUC,
		ShipmentUC:  shipmentUC,
		InventoryUC: inventoryUC,
		AnalyticsUC: analyticsUC,
		Store:       analyticsRepo,
		Metrics:     metrics,
		JWTSecret:   cfg.JWT.Secret,
	})
	if !cfg.JWT.Enabled() {
		log.Warn().Msg("JWT_SECRET empty: mutating routes are open")
	}

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("http server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	if err := shutdownTracer(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("tracer shutdown")
	}

	log.Info().Msg("stopped")
}
