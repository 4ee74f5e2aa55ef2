package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/application/analytics"
	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/application/inventory"
	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/application/shipment"
	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/application/usecase"
	"github.com/Gaurav-0801/Manufacturing-Dashboard/pkg/telemetry"
)

// RouterDeps router dependencies.
type RouterDeps struct {
	ServiceName string
	AlertUC     *usecase.AlertUseCase
	SupplierUC  *usecase.SupplierUseCase
	KPIUC       *usecase.KPIUseCase
	ShipmentUC  *shipment.UseCase
	InventoryUC *inventory.UseCase
	AnalyticsUC *analytics.UseCase
	Store       Pinger
	Metrics     *telemetry.Metrics
	// JWTSecret empty leaves mutating routes open.
	JWTSecret string
}

// Router registers the API routes.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", Health(deps.ServiceName, deps.Store))
	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics.Handler()))
	}

	api := app.Group("/api", MutationAuth(deps.JWTSecret))
	destructive := DestructiveGuard(deps.JWTSecret)

	alertHandler := NewAlertHandler(deps.AlertUC)
	alerts := api.Group("/alerts")
	alerts.Get("/", alertHandler.List)
	alerts.Post("/", alertHandler.Create)
	// registered before /:id
	alerts.Put("/bulk", destructive, alertHandler.Bulk)
	alerts.Put("/:id", alertHandler.Update)
	alerts.Delete("/:id", destructive, alertHandler.Delete)

	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers := api.Group("/suppliers")
	suppliers.Get("/", supplierHandler.List)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/:id", supplierHandler.Update)
	suppliers.Delete("/:id", destructive, supplierHandler.Delete)

	shipmentHandler := NewShipmentHandler(deps.ShipmentUC)
	shipments := api.Group("/shipments")
	shipments.Get("/", shipmentHandler.List)
	shipments.Post("/", shipmentHandler.Create)
	shipments.Get("/:id", shipmentHandler.GetByID)
	shipments.Put("/:id", shipmentHandler.Update)
	shipments.Delete("/:id", destructive, shipmentHandler.Delete)

	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	inv := api.Group("/inventory")
	inv.Get("/", inventoryHandler.List)
	inv.Post("/", inventoryHandler.Create)
	inv.Get("/export.xlsx", inventoryHandler.Export)
	inv.Get("/:id", inventoryHandler.GetByID)
	inv.Put("/:id", inventoryHandler.Update)
	inv.Delete("/:id", destructive, inventoryHandler.Delete)
	inv.Post("/:id/adjust", inventoryHandler.Adjust)

	analyticsHandler := NewAnalyticsHandler(deps.AnalyticsUC)
	an := api.Group("/analytics")
	an.Get("/overview", analyticsHandler.Overview)
	an.Get("/performance", analyticsHandler.Performance)
	an.Get("/suppliers", analyticsHandler.Suppliers)
	an.Get("/suppliers/report.pdf", analyticsHandler.SupplierReport)

	kpiHandler := NewKPIHandler(deps.KPIUC)
	kpis := api.Group("/kpis")
	kpis.Get("/", kpiHandler.Snapshot)
	kpis.Get("/history", kpiHandler.History)
}
