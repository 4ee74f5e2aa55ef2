package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/application/dto"
	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/domain"
	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/domain/entity"
	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/domain/metric"
	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/domain/repository"
	"github.com/Gaurav-0801/Manufacturing-Dashboard/pkg/logger"
)

// recentLimit rows of each related list on the supplier detail view.
const recentLimit = 10

// SupplierUseCase supplier CRUD and the detail view.
type SupplierUseCase struct {
	suppliers repository.SupplierRepository
	shipments repository.ShipmentRepository
	items     repository.InventoryRepository
	alerts    repository.AlertRepository
	kpis      repository.KPIRepository
	log       *logger.Logger
}

// NewSupplierUseCase builds the use-case.
func NewSupplierUseCase(
	suppliers repository.SupplierRepository,
	shipments repository.ShipmentRepository,
	items repository.InventoryRepository,
	alerts repository.AlertRepository,
	kpis repository.KPIRepository,
	log *logger.Logger,
) *SupplierUseCase {
	return &SupplierUseCase{
		suppliers: suppliers,
		shipments: shipments,
		items:     items,
		alerts:    alerts,
		kpis:      kpis,
		log:       log.Named("suppliers"),
	}
}

// List every supplier, best performance first, with related-record counts.
func (uc *SupplierUseCase) List(ctx context.Context) ([]dto.SupplierListItemResponse, error) {
	list, err := uc.suppliers.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("suppliers.List: %w", err)
	}
	out := make([]dto.SupplierListItemResponse, 0, len(list))
	for i := range list {
		out = append(out, dto.SupplierListItemResponse{
			SupplierResponse: dto.NewSupplierResponse(&list[i].Supplier),
			Count: dto.SupplierCountsResponse{
				Shipments:      list[i].Counts.Shipments,
				InventoryItems: list[i].Counts.InventoryItems,
				Alerts:         list[i].Counts.Alerts,
			},
		})
	}
	return out, nil
}

// Create stores a supplier with zeroed derived fields.
func (uc *SupplierUseCase) Create(ctx context.Context, in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	if in.Name == "" || in.ContactEmail == "" {
		return nil, domain.ErrInvalidInput
	}
	status := in.Status
	if status == "" {
		status = entity.SupplierActive
	}
	if !status.Valid() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now().UTC()
	s := &entity.Supplier{
		ID:           uuid.NewString(),
		Name:         in.Name,
		ContactEmail: in.ContactEmail,
		ContactPhone: in.ContactPhone,
		Address:      in.Address,
		Status:       status,
		CostSavings:  decimal.Zero,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.suppliers.Create(ctx, s); err != nil {
		return nil, fmt.Errorf("suppliers.Create: %w", err)
	}
	out := dto.NewSupplierResponse(s)
	return &out, nil
}

// GetByID supplier with its latest shipments and items and its open alerts.
func (uc *SupplierUseCase) GetByID(ctx context.Context, id string) (*dto.SupplierDetailResponse, error) {
	s, err := uc.suppliers.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("suppliers.GetByID: %w", err)
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	shipments, err := uc.shipments.ListRecentBySupplier(ctx, id, recentLimit)
	if err != nil {
		return nil, fmt.Errorf("suppliers.GetByID: %w", err)
	}
	items, err := uc.items.ListRecentBySupplier(ctx, id, recentLimit)
	if err != nil {
		return nil, fmt.Errorf("suppliers.GetByID: %w", err)
	}
	unresolved := false
	alerts, err := uc.alerts.List(ctx, repository.AlertFilter{SupplierID: id, IsResolved: &unresolved})
	if err != nil {
		return nil, fmt.Errorf("suppliers.GetByID: %w", err)
	}
	sort.SliceStable(alerts, func(i, j int) bool { return alerts[i].CreatedAt.After(alerts[j].CreatedAt) })

	return &dto.SupplierDetailResponse{
		SupplierResponse: dto.NewSupplierResponse(s),
		Shipments:        dto.NewShipmentResponses(shipments),
		InventoryItems:   dto.NewInventoryItemResponses(items),
		Alerts:           dto.NewAlertResponses(alerts),
	}, nil
}

// Update applies the present fields. Editing performanceScore or costSavings re-derives the
// fleet KPIs from the ACTIVE suppliers.
func (uc *SupplierUseCase) Update(ctx context.Context, id string, in dto.UpdateSupplierRequest) (*dto.SupplierResponse, error) {
	s, err := uc.suppliers.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("suppliers.Update: %w", err)
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		s.Name = *in.Name
	}
	if in.ContactEmail != nil {
		s.ContactEmail = *in.ContactEmail
	}
	if in.ContactPhone != nil {
		s.ContactPhone = *in.ContactPhone
	}
	if in.Address != nil {
		s.Address = *in.Address
	}
	if in.Status != nil {
		if !in.Status.Valid() {
			return nil, domain.ErrInvalidInput
		}
		s.Status = *in.Status
	}
	if in.QualityRating != nil {
		if *in.QualityRating < 0 || *in.QualityRating > 5 {
			return nil, domain.ErrInvalidInput
		}
		s.QualityRating = *in.QualityRating
	}
	if in.PerformanceScore != nil {
		if *in.PerformanceScore < 0 || *in.PerformanceScore > 100 {
			return nil, domain.ErrInvalidInput
		}
		s.PerformanceScore = *in.PerformanceScore
	}
	if in.CostSavings != nil {
		s.CostSavings = *in.CostSavings
	}
	s.UpdatedAt = time.Now().UTC()

	if err := uc.suppliers.Update(ctx, s); err != nil {
		return nil, fmt.Errorf("suppliers.Update: %w", err)
	}
	if in.PerformanceScore != nil || in.CostSavings != nil {
		uc.refreshFleetKPIs(ctx)
	}
	out := dto.NewSupplierResponse(s)
	return &out, nil
}

// refreshFleetKPIs rewrites the on-time rate and savings KPIs; failures are logged only.
func (uc *SupplierUseCase) refreshFleetKPIs(ctx context.Context) {
	active, err := uc.suppliers.ListByStatus(ctx, entity.SupplierActive)
	if err != nil {
		uc.log.Warn().Err(err).Msg("kpi refresh: list active suppliers")
		return
	}
	scores := make([]float64, 0, len(active))
	savings := decimal.Zero
	for _, s := range active {
		scores = append(scores, s.PerformanceScore)
		savings = savings.Add(s.CostSavings)
	}
	total, _ := savings.Float64()
	if err := uc.kpis.SetValue(ctx, metric.KPIOnTimeDeliveryRate, metric.Mean(scores)); err != nil {
		uc.log.Warn().Err(err).Str("kpi", metric.KPIOnTimeDeliveryRate).Msg("kpi refresh failed")
	}
	if err := uc.kpis.SetValue(ctx, metric.KPITotalCostSavings, total); err != nil {
		uc.log.Warn().Err(err).Str("kpi", metric.KPITotalCostSavings).Msg("kpi refresh failed")
	}
}

// Delete removes the supplier with its shipments, items and alerts.
func (uc *SupplierUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.suppliers.Delete(ctx, id); err != nil {
		return fmt.Errorf("suppliers.Delete: %w", err)
	}
	return nil
}
