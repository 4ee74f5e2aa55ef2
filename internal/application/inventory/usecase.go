package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/application/alerting"
	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/application/dto"
	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/domain"
	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/domain/entity"
	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/domain/metric"
	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/domain/repository"
	"github.com/Gaurav-0801/Manufacturing-Dashboard/pkg/logger"
	"github.com/Gaurav-0801/Manufacturing-Dashboard/pkg/telemetry"
)

// ErrStockOverflow an increase would take stock past metric.MaxStock.
var ErrStockOverflow = fmt.Errorf("%w: adjusted stock exceeds %d", domain.ErrInvalidInput, metric.MaxStock)

// UseCase inventory CRUD, stock adjustment and export.
type UseCase struct {
	tx        TxRunner
	items     repository.InventoryRepository
	suppliers repository.SupplierRepository
	alerts    *alerting.Emitter
	workbook  WorkbookWriter
	metrics   *telemetry.Metrics
	log       *logger.Logger
	now       func() time.Time
}

// NewUseCase builds the use-case. metrics may be nil.
func NewUseCase(
	tx TxRunner,
	items repository.InventoryRepository,
	suppliers repository.SupplierRepository,
	alerts *alerting.Emitter,
	workbook WorkbookWriter,
	metrics *telemetry.Metrics,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		tx:        tx,
		items:     items,
		suppliers: suppliers,
		alerts:    alerts,
		workbook:  workbook,
		metrics:   metrics,
		log:       log.Named("inventory"),
		now:       time.Now,
	}
}

// List items with their supplier, ordered by name.
func (uc *UseCase) List(ctx context.Context, f repository.InventoryFilter) ([]dto.InventoryItemResponse, error) {
	items, err := uc.items.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("inventory.List: %w", err)
	}
	return dto.NewInventoryItemResponses(items), nil
}

// Create stores a new item; stock at or below the minimum raises one HIGH LOW_STOCK alert.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateInventoryItemRequest) (*dto.InventoryItemResponse, error) {
	if in.SKU == "" || in.Name == "" || in.Category == "" || in.SupplierID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.CurrentStock < 0 || in.MinStockLevel < 0 || in.MaxStockLevel < 0 || in.UnitCost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	supplier, err := uc.suppliers.GetByID(ctx, in.SupplierID)
	if err != nil {
		return nil, fmt.Errorf("inventory.Create: %w", err)
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}

	now := uc.now().UTC()
	item := &entity.InventoryItem{
		ID:            uuid.NewString(),
		SKU:           in.SKU,
		Name:          in.Name,
		Description:   in.Description,
		Category:      in.Category,
		SupplierID:    in.SupplierID,
		CurrentStock:  in.CurrentStock,
		MinStockLevel: in.MinStockLevel,
		MaxStockLevel: in.MaxStockLevel,
		UnitCost:      in.UnitCost,
		Location:      in.Location,
		LastRestocked: &now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	item.RecomputeValue()
	if err := uc.items.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("inventory.Create: %w", err)
	}
	item.Supplier = &entity.SupplierSummary{ID: supplier.ID, Name: supplier.Name}

	uc.alerts.Emit(ctx,
		metric.EvaluateInitialStock(item.Name, item.SKU, item.CurrentStock, item.MinStockLevel),
		itemRefs(item),
	)

	out := dto.NewInventoryItemResponse(item)
	return &out, nil
}

// GetByID returns domain.ErrNotFound for unknown ids.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.InventoryItemResponse, error) {
	item, err := uc.items.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("inventory.GetByID: %w", err)
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.NewInventoryItemResponse(item)
	return &out, nil
}

// Update edits descriptive fields, levels and unit cost; total value follows the cost.
func (uc *UseCase) Update(ctx context.Context, id string, in dto.UpdateInventoryItemRequest) (*dto.InventoryItemResponse, error) {
	item, err := uc.items.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("inventory.Update: %w", err)
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		item.Name = *in.Name
	}
	if in.Description != nil {
		item.Description = *in.Description
	}
	if in.Category != nil {
		item.Category = *in.Category
	}
	if in.MinStockLevel != nil {
		if *in.MinStockLevel < 0 {
			return nil, domain.ErrInvalidInput
		}
		item.MinStockLevel = *in.MinStockLevel
	}
	if in.MaxStockLevel != nil {
		if *in.MaxStockLevel < 0 {
			return nil, domain.ErrInvalidInput
		}
		item.MaxStockLevel = *in.MaxStockLevel
	}
	if in.UnitCost != nil {
		if in.UnitCost.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		item.UnitCost = *in.UnitCost
	}
	if in.Location != nil {
		item.Location = *in.Location
	}
	item.RecomputeValue()
	item.UpdatedAt = uc.now().UTC()

	if err := uc.items.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("inventory.Update: %w", err)
	}
	out := dto.NewInventoryItemResponse(item)
	return &out, nil
}

// Delete removes the item and its alerts.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	if err := uc.items.Delete(ctx, id); err != nil {
		return fmt.Errorf("inventory.Delete: %w", err)
	}
	return nil
}

// Adjust applies a signed stock delta. The item row is locked, the new stock is clamped at
// zero, and the inventory KPIs are refreshed in the same transaction. The stock alert is
// written after commit and never fails the adjustment.
func (uc *UseCase) Adjust(ctx context.Context, id string, in dto.AdjustStockRequest) (*dto.AdjustStockResponse, error) {
	if in.Adjustment == nil {
		return nil, domain.ErrInvalidInput
	}
	delta := *in.Adjustment

	ctx, span := telemetry.Tracer().Start(ctx, "inventory.Adjust")
	defer span.End()
	span.SetAttributes(attribute.String("item.id", id), attribute.Int("stock.delta", delta))

	var (
		before, after entity.InventoryItem
		summary       metric.InventorySummary
	)
	err := uc.tx.Run(ctx, func(items repository.InventoryRepository, kpis repository.KPIRepository) error {
		item, err := items.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		before = *item
		if metric.StockOverflows(before.CurrentStock, delta) {
			return ErrStockOverflow
		}

		now := uc.now().UTC()
		item.CurrentStock = metric.AdjustStock(before.CurrentStock, delta)
		item.RecomputeValue()
		if delta > 0 {
			item.LastRestocked = &now
		}
		item.UpdatedAt = now
		if err := items.Update(ctx, item); err != nil {
			return err
		}

		summary, err = items.Summary(ctx)
		if err != nil {
			return err
		}
		if err := refreshInventoryKPIs(ctx, kpis, summary); err != nil {
			return err
		}
		after = *item
		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "adjust failed")
		return nil, fmt.Errorf("inventory.Adjust: %w", err)
	}
	uc.metrics.StockAdjusted(delta)

	uc.alerts.Emit(ctx,
		metric.EvaluateStockLevel(after.Name, after.SKU, after.CurrentStock, after.MinStockLevel),
		itemRefs(&after),
	)

	return &dto.AdjustStockResponse{
		Item: dto.NewInventoryItemResponse(&after),
		Adjustment: dto.AdjustmentDTO{
			OldStock:    before.CurrentStock,
			NewStock:    after.CurrentStock,
			Adjustment:  delta,
			Reason:      in.Reason,
			Notes:       in.Notes,
			ValueChange: after.TotalValue.Sub(before.TotalValue),
		},
		Summary: dto.NewInventorySummaryDTO(summary),
	}, nil
}

func refreshInventoryKPIs(ctx context.Context, kpis repository.KPIRepository, s metric.InventorySummary) error {
	value, _ := s.TotalValue.Round(2).Float64()
	inventoryValue := metric.NewKPI(metric.KPIInventoryValue, value)
	if err := kpis.Upsert(ctx, &inventoryValue); err != nil {
		return err
	}
	lowStock := metric.NewKPI(metric.KPILowStockItems, float64(s.LowStockItems))
	return kpis.Upsert(ctx, &lowStock)
}

// ExportXLSX renders every item as a spreadsheet.
func (uc *UseCase) ExportXLSX(ctx context.Context) ([]byte, error) {
	items, err := uc.items.List(ctx, repository.InventoryFilter{})
	if err != nil {
		return nil, fmt.Errorf("inventory.ExportXLSX: %w", err)
	}
	b, err := uc.workbook.InventoryWorkbook(items)
	if err != nil {
		return nil, fmt.Errorf("inventory.ExportXLSX: %w", err)
	}
	return b, nil
}

func itemRefs(item *entity.InventoryItem) entity.AlertRefs {
	id, supplierID := item.ID, item.SupplierID
	return entity.AlertRefs{InventoryItemID: &id, SupplierID: &supplierID}
}

