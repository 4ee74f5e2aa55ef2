package main

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/domain/entity"
	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/domain/metric"
)

type dataset struct {
	suppliers []entity.Supplier
	shipments []entity.Shipment
	items     []entity.InventoryItem
	alerts    []entity.Alert
	kpis      []entity.KPI
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func ptr[T any](v T) *T { return &v }

func demoDataset(now time.Time) dataset {
	mkSupplier := func(name, email, phone, addr string, perf float64, orders, onTime int, quality float64, savings int64) entity.Supplier {
		return entity.Supplier{
			ID: uuid.NewString(), Name: name, ContactEmail: email, ContactPhone: phone, Address: addr,
			Status: entity.SupplierActive, PerformanceScore: perf, TotalOrders: orders,
			OnTimeDeliveries: onTime, QualityRating: quality, CostSavings: decimal.NewFromInt(savings),
			CreatedAt: now, UpdatedAt: now,
		}
	}
	steel := mkSupplier("SteelCorp Industries", "orders@steelcorp.com", "+1-555-0101",
		"123 Industrial Blvd, Detroit, MI 48201", 87.5, 156, 142, 4.2, 125000)
	global := mkSupplier("Global Components Ltd", "supply@globalcomp.com", "+1-555-0202",
		"456 Manufacturing Way, Chicago, IL 60601", 92.3, 203, 195, 4.6, 89000)
	precision := mkSupplier("Precision Parts Co", "info@precisionparts.com", "+1-555-0303",
		"789 Factory St, Cleveland, OH 44101", 78.9, 98, 82, 3.8, 45000)

	item := func(sku string, qty int, price int64, name string) entity.ShipmentItem {
		return entity.ShipmentItem{SKU: sku, Name: name, Quantity: qty, UnitPrice: decimal.NewFromInt(price)}
	}
	shipments := []entity.Shipment{
		{
			ID: uuid.NewString(), TrackingNumber: "SCM-2024-001", SupplierID: steel.ID,
			Status: entity.ShipmentInTransit, ExpectedDate: day("2024-01-15"),
			Origin: "Detroit, MI", Destination: "Manufacturing Plant A",
			TotalValue: decimal.NewFromInt(45000), Weight: 2500.5,
			Items: []entity.ShipmentItem{item("STL-001", 50, 850, "Steel Beams"), item("STL-002", 25, 320, "Steel Plates")},
		},
		{
			ID: uuid.NewString(), TrackingNumber: "SCM-2024-002", SupplierID: global.ID,
			Status: entity.ShipmentDelivered, ExpectedDate: day("2024-01-10"), ActualDate: ptr(day("2024-01-09")),
			Origin: "Chicago, IL", Destination: "Manufacturing Plant B",
			TotalValue: decimal.NewFromInt(28000), Weight: 1200,
			Items: []entity.ShipmentItem{item("CMP-001", 100, 280, "Electronic Components")},
		},
		{
			ID: uuid.NewString(), TrackingNumber: "SCM-2024-003", SupplierID: precision.ID,
			Status: entity.ShipmentDelayed, ExpectedDate: day("2024-01-12"),
			Origin: "Cleveland, OH", Destination: "Manufacturing Plant C",
			TotalValue: decimal.NewFromInt(15000), Weight: 800,
			Items: []entity.ShipmentItem{item("PRC-001", 200, 75, "Precision Gears")},
		},
	}
	for i := range shipments {
		shipments[i].CreatedAt, shipments[i].UpdatedAt = now, now
	}

	mkItem := func(sku, name, desc, category, supplierID string, stock, min, max int, cost int64, loc string) entity.InventoryItem {
		it := entity.InventoryItem{
			ID: uuid.NewString(), SKU: sku, Name: name, Description: desc, Category: category,
			SupplierID: supplierID, CurrentStock: stock, MinStockLevel: min, MaxStockLevel: max,
			UnitCost: decimal.NewFromInt(cost), Location: loc, LastRestocked: ptr(now),
			CreatedAt: now, UpdatedAt: now,
		}
		it.RecomputeValue()
		return it
	}
	items := []entity.InventoryItem{
		mkItem("STL-001", "Steel Beams", "High-grade structural steel beams", "Raw Materials",
			steel.ID, 150, 50, 500, 850, "Warehouse A-1"),
		mkItem("CMP-001", "Electronic Components", "Microprocessors and circuit boards", "Electronics",
			global.ID, 25, 100, 1000, 280, "Warehouse B-2"),
		mkItem("PRC-001", "Precision Gears", "High-precision mechanical gears", "Mechanical Parts",
			precision.ID, 300, 200, 800, 75, "Warehouse C-3"),
	}

	alerts := []entity.Alert{
		{
			Type: entity.AlertLowStock, Severity: entity.SeverityHigh, Title: "Low Stock Alert",
			Message:         "Electronic Components (CMP-001) stock is below minimum threshold",
			InventoryItemID: ptr(items[1].ID), SupplierID: ptr(global.ID),
		},
		{
			Type: entity.AlertShipmentDelay, Severity: entity.SeverityMedium, Title: "Shipment Delayed",
			Message:    "Shipment SCM-2024-003 from Precision Parts Co is delayed",
			ShipmentID: ptr(shipments[2].ID), SupplierID: ptr(precision.ID),
		},
		{
			Type: entity.AlertSupplierPerformance, Severity: entity.SeverityLow, Title: "Performance Review",
			Message:    "Precision Parts Co performance score dropped below 80%",
			SupplierID: ptr(precision.ID),
		},
	}
	for i := range alerts {
		alerts[i].ID = uuid.NewString()
		alerts[i].CreatedAt, alerts[i].UpdatedAt = now, now
	}

	kpi := func(name string, value, target float64) entity.KPI {
		k := metric.NewKPI(name, value)
		k.ID, k.Target = uuid.NewString(), ptr(target)
		k.Date, k.CreatedAt, k.UpdatedAt = now, now, now
		return k
	}
	kpis := []entity.KPI{
		kpi(metric.KPITotalCostSavings, 259000, 300000),
		kpi(metric.KPIOnTimeDeliveryRate, 89.2, 95),
		kpi(metric.KPIInventoryTurnover, 4.2, 6),
		kpi(metric.KPIQualityScore, 4.2, 4.5),
	}

	return dataset{
		suppliers: []entity.Supplier{steel, global, precision},
		shipments: shipments,
		items:     items,
		alerts:    alerts,
		kpis:      kpis,
	}
}
