// Package shipment holds shipment CRUD and the delivery rule: marking a shipment
// DELIVERED rescores its supplier, accrues on-time savings and flags late arrivals.
package shipment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
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

// UseCase shipment operations.
type UseCase struct {
	tx        TxRunner
	shipments repository.ShipmentRepository
	alerts    *alerting.Emitter
	metrics   *telemetry.Metrics
	log       *logger.Logger
	now       func() time.Time
}

// NewUseCase builds the use-case. metrics may be nil.
func NewUseCase(
	tx TxRunner,
	shipments repository.ShipmentRepository,
	alerts *alerting.Emitter,
	metrics *telemetry.Metrics,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		tx:        tx,
		shipments: shipments,
		alerts:    alerts,
		metrics:   metrics,
		log:       log.Named("shipment"),
		now:       time.Now,
	}
}

// List shipments newest first.
func (uc *UseCase) List(ctx context.Context, f repository.ShipmentFilter) ([]dto.ShipmentResponse, error) {
	if f.Status != "" && !f.Status.Valid() {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.shipments.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("shipment.List: %w", err)
	}
	return dto.NewShipmentResponses(list), nil
}

// GetByID returns domain.ErrNotFound for unknown ids.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.ShipmentResponse, error) {
	sh, err := uc.shipments.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("shipment.GetByID: %w", err)
	}
	if sh == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.NewShipmentResponse(sh)
	return &out, nil
}

// Create stores a PENDING shipment and counts it against the supplier's orders.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateShipmentRequest) (*dto.ShipmentResponse, error) {
	if in.TrackingNumber == "" || in.SupplierID == "" || in.ExpectedDate.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	if in.TotalValue.IsNegative() || in.Weight < 0 {
		return nil, domain.ErrInvalidInput
	}

	now := uc.now().UTC()
	sh := &entity.Shipment{
		ID:             uuid.NewString(),
		TrackingNumber: in.TrackingNumber,
		SupplierID:     in.SupplierID,
		Status:         entity.ShipmentPending,
		ExpectedDate:   in.ExpectedDate.Time,
		Origin:         in.Origin,
		Destination:    in.Destination,
		TotalValue:     in.TotalValue,
		Weight:         in.Weight,
		Items:          dto.ToShipmentItems(in.Items),
		Notes:          in.Notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	err := uc.tx.RunShipment(ctx, func(shipments repository.ShipmentRepository, suppliers repository.SupplierRepository, _ repository.KPIRepository) error {
		sup, err := suppliers.GetForUpdate(ctx, sh.SupplierID)
		if err != nil {
			return err
		}
		if sup == nil {
			return domain.ErrNotFound
		}
		if err := shipments.Create(ctx, sh); err != nil {
			return err
		}
		sh.Supplier = &entity.SupplierSummary{ID: sup.ID, Name: sup.Name}
		return suppliers.IncrementTotalOrders(ctx, sh.SupplierID)
	})
	if err != nil {
		return nil, fmt.Errorf("shipment.Create: %w", err)
	}
	out := dto.NewShipmentResponse(sh)
	return &out, nil
}

// Update changes status, actual date and notes. A DELIVERED update recomputes the supplier's
// on-time count and performance score from all its delivered shipments; savings, the
// "Total Cost Savings" KPI and the late-delivery alert only follow the first transition into
// DELIVERED so that repeating the update does not accrue twice.
func (uc *UseCase) Update(ctx context.Context, id string, in dto.UpdateShipmentRequest) (*dto.ShipmentResponse, error) {
	if !in.Status.Valid() {
		return nil, domain.ErrInvalidInput
	}
	delivering := in.Status == entity.ShipmentDelivered
	var actual *time.Time
	if delivering {
		actual = in.ActualDate.Ptr()
		if actual == nil {
			return nil, domain.ErrInvalidInput
		}
	}

	ctx, span := telemetry.Tracer().Start(ctx, "shipment.Update")
	defer span.End()
	span.SetAttributes(attribute.String("shipment.id", id), attribute.String("shipment.status", string(in.Status)))

	var (
		result     entity.Shipment
		outcome    metric.DeliveryOutcome
		transition bool
	)
	err := uc.tx.RunShipment(ctx, func(shipments repository.ShipmentRepository, suppliers repository.SupplierRepository, kpis repository.KPIRepository) error {
		sh, err := shipments.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if sh == nil {
			return domain.ErrNotFound
		}
		transition = delivering && sh.Status != entity.ShipmentDelivered

		var sup *entity.Supplier
		if delivering {
			if sup, err = suppliers.GetForUpdate(ctx, sh.SupplierID); err != nil {
				return err
			}
			if sup == nil {
				return domain.ErrNotFound
			}
		}

		notes := sh.Notes
		if in.Notes != nil {
			notes = *in.Notes
		}
		if err := shipments.UpdateStatus(ctx, id, in.Status, actual, notes); err != nil {
			return err
		}
		sh.Status, sh.ActualDate, sh.Notes = in.Status, actual, notes
		sh.UpdatedAt = uc.now().UTC()
		result = *sh
		if !delivering {
			return nil
		}

		delivered, err := shipments.ListDeliveredBySupplier(ctx, sup.ID)
		if err != nil {
			return err
		}
		outcome = metric.EvaluateDelivery(*sh, delivered)

		savings := decimal.Zero
		if transition {
			savings = outcome.Savings
		}
		if err := suppliers.ApplyDelivery(ctx, sup.ID, outcome.OnTimeDeliveries, outcome.PerformanceScore, savings); err != nil {
			return err
		}
		if !transition {
			return nil
		}
		value, _ := savings.Float64()
		accrued := metric.NewKPI(metric.KPITotalCostSavings, value)
		return kpis.Increment(ctx, &accrued)
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "update failed")
		return nil, fmt.Errorf("shipment.Update: %w", err)
	}

	if transition {
		span.SetAttributes(attribute.Bool("delivery.on_time", outcome.OnTime), attribute.Int("delivery.days_late", outcome.DaysLate))
		uc.metrics.ShipmentDelivered(outcome.OnTime)
		uc.log.Debug().
			Str("shipment_id", id).
			Bool("on_time", outcome.OnTime).
			Str("savings", outcome.Savings.StringFixed(2)).
			Float64("performance_score", outcome.PerformanceScore).
			Msg("delivery recorded")

		shipmentID, supplierID := result.ID, result.SupplierID
		uc.alerts.Emit(ctx, outcome.Alert, entity.AlertRefs{ShipmentID: &shipmentID, SupplierID: &supplierID})
	}

	out := dto.NewShipmentResponse(&result)
	return &out, nil
}

// Delete removes the shipment and its alerts. The supplier's counters are left as they are.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	if err := uc.shipments.Delete(ctx, id); err != nil {
		return fmt.Errorf("shipment.Delete: %w", err)
	}
	return nil
}
