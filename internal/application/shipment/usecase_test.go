package shipment_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/application/alerting"
	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/application/dto"
	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/application/shipment"
	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/domain"
	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/domain/entity"
	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/domain/metric"
	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/domain/repository"
	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/testutil/memstore"
	"github.com/Gaurav-0801/Manufacturing-Dashboard/pkg/logger"
)

// ─── fixtures ────────────────────────────────────────────────────────────────

var expected = time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

type fixture struct {
	store    *memstore.Store
	uc       *shipment.UseCase
	supplier entity.Supplier
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memstore.New()
	log := logger.Nop()
	sup := entity.Supplier{
		ID:               uuid.NewString(),
		Name:             "Global Parts Supply",
		ContactEmail:     "ops@globalparts.example",
		Status:           entity.SupplierActive,
		PerformanceScore: 12,
		CostSavings:      decimal.RequireFromString("1000"),
	}
	require.NoError(t, store.Suppliers().Create(context.Background(), &sup))
	uc := shipment.NewUseCase(store.TxRunner(), store.Shipments(), alerting.NewEmitter(store.Alerts(), log, nil), nil, log)
	return &fixture{store: store, uc: uc, supplier: sup}
}

func (f *fixture) create(t *testing.T, tracking, value string) dto.ShipmentResponse {
	t.Helper()
	out, err := f.uc.Create(context.Background(), dto.CreateShipmentRequest{
		TrackingNumber: tracking,
		SupplierID:     f.supplier.ID,
		ExpectedDate:   dto.Date{Time: expected},
		Origin:         "Pittsburgh, PA",
		Destination:    "Detroit, MI",
		TotalValue:     decimal.RequireFromString(value),
		Weight:         1200,
		Items:          []dto.ShipmentItemDTO{{SKU: "STL-001", Name: "Steel Sheet", Quantity: 100, UnitPrice: decimal.RequireFromString("25")}},
	})
	require.NoError(t, err)
	return *out
}

// seedDelivered stores an already delivered shipment, bypassing the use-case.
func (f *fixture) seedDelivered(t *testing.T, onTime bool) {
	t.Helper()
	actual := expected
	if !onTime {
		actual = expected.AddDate(0, 0, 3)
	}
	require.NoError(t, f.store.Shipments().Create(context.Background(), &entity.Shipment{
		ID:             uuid.NewString(),
		TrackingNumber: fmt.Sprintf("HIST-%s", uuid.NewString()[:8]),
		SupplierID:     f.supplier.ID,
		Status:         entity.ShipmentDelivered,
		ExpectedDate:   expected,
		ActualDate:     &actual,
		TotalValue:     decimal.RequireFromString("500"),
	}))
}

func deliver(at time.Time) dto.UpdateShipmentRequest {
	return dto.UpdateShipmentRequest{Status: entity.ShipmentDelivered, ActualDate: &dto.Date{Time: at}}
}

func (f *fixture) supplierNow(t *testing.T) *entity.Supplier {
	t.Helper()
	sup, err := f.store.Suppliers().GetByID(context.Background(), f.supplier.ID)
	require.NoError(t, err)
	require.NotNil(t, sup)
	return sup
}

// ─── Create ──────────────────────────────────────────────────────────────────

func TestCreate_PendingAndCountsOrder(t *testing.T) {
	f := newFixture(t)

	out := f.create(t, "TRK-2024-001", "15000")

	assert.Equal(t, entity.ShipmentPending, out.Status)
	assert.Nil(t, out.ActualDate)
	require.NotNil(t, out.Supplier)
	assert.Equal(t, f.supplier.Name, out.Supplier.Name)
	require.Len(t, out.Items, 1)
	assert.Equal(t, 1, f.supplierNow(t).TotalOrders)
}

func TestCreate_UnknownSupplier(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.Create(context.Background(), dto.CreateShipmentRequest{
		TrackingNumber: "TRK-X", SupplierID: uuid.NewString(), ExpectedDate: dto.Date{Time: expected},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreate_DuplicateTrackingKeepsOrderCount(t *testing.T) {
	f := newFixture(t)
	f.create(t, "TRK-2024-001", "100")

	_, err := f.uc.Create(context.Background(), dto.CreateShipmentRequest{
		TrackingNumber: "TRK-2024-001", SupplierID: f.supplier.ID, ExpectedDate: dto.Date{Time: expected},
	})

	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Equal(t, 1, f.supplierNow(t).TotalOrders)
}

// ─── Update: delivery rule ───────────────────────────────────────────────────

func TestUpdate_OnTimeDeliveryAccruesTwoPercent(t *testing.T) {
	f := newFixture(t)
	sh := f.create(t, "TRK-2024-001", "10000")

	out, err := f.uc.Update(context.Background(), sh.ID, deliver(expected))

	require.NoError(t, err)
	assert.Equal(t, entity.ShipmentDelivered, out.Status)
	require.NotNil(t, out.ActualDate)

	sup := f.supplierNow(t)
	assert.True(t, decimal.RequireFromString("1200").Equal(sup.CostSavings), "1000 + 200.00, got %s", sup.CostSavings)
	assert.Equal(t, 1, sup.OnTimeDeliveries)
	assert.InDelta(t, 100.0, sup.PerformanceScore, 1e-9)

	kpi, ok := f.store.KPI(metric.KPITotalCostSavings)
	require.True(t, ok)
	assert.InDelta(t, 200.0, kpi.Value, 1e-9)
	assert.Equal(t, entity.PeriodMonthly, kpi.Period)
	assert.Empty(t, f.store.AllAlerts())
}

func TestUpdate_SameDayLaterHourIsOnTime(t *testing.T) {
	f := newFixture(t)
	sh := f.create(t, "TRK-2024-001", "10000")

	_, err := f.uc.Update(context.Background(), sh.ID, deliver(expected.Add(23*time.Hour)))

	require.NoError(t, err)
	assert.Equal(t, 1, f.supplierNow(t).OnTimeDeliveries)
	assert.Empty(t, f.store.AllAlerts())
}

func TestUpdate_LateDeliveryKeepsSavingsAndAlerts(t *testing.T) {
	f := newFixture(t)
	sh := f.create(t, "TRK-2024-002", "10000")

	_, err := f.uc.Update(context.Background(), sh.ID, deliver(expected.AddDate(0, 0, 1)))
	require.NoError(t, err)

	sup := f.supplierNow(t)
	assert.True(t, decimal.RequireFromString("1000").Equal(sup.CostSavings))
	assert.Equal(t, 0, sup.OnTimeDeliveries)
	assert.InDelta(t, 0.0, sup.PerformanceScore, 1e-9)

	alerts := f.store.AllAlerts()
	require.Len(t, alerts, 1)
	a := alerts[0]
	assert.Equal(t, entity.AlertShipmentDelay, a.Type)
	assert.Equal(t, entity.SeverityMedium, a.Severity)
	assert.Equal(t, "Late Delivery", a.Title)
	assert.Equal(t, "Shipment TRK-2024-002 was delivered 1 days late. Potential cost impact: $500.00", a.Message)
	require.NotNil(t, a.ShipmentID)
	assert.Equal(t, sh.ID, *a.ShipmentID)
	require.NotNil(t, a.SupplierID)
	assert.Equal(t, f.supplier.ID, *a.SupplierID)
}

func TestUpdate_VeryLateIsHigh(t *testing.T) {
	f := newFixture(t)
	sh := f.create(t, "TRK-2024-003", "2000")

	_, err := f.uc.Update(context.Background(), sh.ID, deliver(expected.AddDate(0, 0, 8)))
	require.NoError(t, err)

	alerts := f.store.AllAlerts()
	require.Len(t, alerts, 1)
	assert.Equal(t, entity.SeverityHigh, alerts[0].Severity)
}

func TestUpdate_PerformanceRecomputedFromHistory(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 7; i++ {
		f.seedDelivered(t, true)
	}
	for i := 0; i < 2; i++ {
		f.seedDelivered(t, false)
	}
	sh := f.create(t, "TRK-2024-010", "100")

	_, err := f.uc.Update(context.Background(), sh.ID, deliver(expected))
	require.NoError(t, err)

	sup := f.supplierNow(t)
	assert.Equal(t, 8, sup.OnTimeDeliveries)
	assert.InDelta(t, 80.0, sup.PerformanceScore, 1e-9, "stored 12 is replaced")
}

func TestUpdate_RepeatedDeliveryDoesNotAccrueTwice(t *testing.T) {
	f := newFixture(t)
	sh := f.create(t, "TRK-2024-001", "10000")

	_, err := f.uc.Update(context.Background(), sh.ID, deliver(expected))
	require.NoError(t, err)
	_, err = f.uc.Update(context.Background(), sh.ID, deliver(expected))
	require.NoError(t, err)

	sup := f.supplierNow(t)
	assert.True(t, decimal.RequireFromString("1200").Equal(sup.CostSavings))
	kpi, _ := f.store.KPI(metric.KPITotalCostSavings)
	assert.InDelta(t, 200.0, kpi.Value, 1e-9)
}

func TestUpdate_RedeliveryLateOnlyRescores(t *testing.T) {
	f := newFixture(t)
	sh := f.create(t, "TRK-2024-001", "10000")
	_, err := f.uc.Update(context.Background(), sh.ID, deliver(expected))
	require.NoError(t, err)

	_, err = f.uc.Update(context.Background(), sh.ID, deliver(expected.AddDate(0, 0, 2)))
	require.NoError(t, err)

	sup := f.supplierNow(t)
	assert.Equal(t, 0, sup.OnTimeDeliveries)
	assert.InDelta(t, 0.0, sup.PerformanceScore, 1e-9)
	assert.True(t, decimal.RequireFromString("1200").Equal(sup.CostSavings), "earned savings are never taken back")
	assert.Empty(t, f.store.AllAlerts(), "no late alert outside the transition")
}

func TestUpdate_DeliveredWithoutDate(t *testing.T) {
	f := newFixture(t)
	sh := f.create(t, "TRK-2024-001", "10000")

	_, err := f.uc.Update(context.Background(), sh.ID, dto.UpdateShipmentRequest{Status: entity.ShipmentDelivered})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdate_NonDeliveredStatusDropsActualDate(t *testing.T) {
	f := newFixture(t)
	sh := f.create(t, "TRK-2024-001", "10000")
	notes := "customs hold"

	out, err := f.uc.Update(context.Background(), sh.ID, dto.UpdateShipmentRequest{
		Status:     entity.ShipmentDelayed,
		ActualDate: &dto.Date{Time: expected},
		Notes:      &notes,
	})

	require.NoError(t, err)
	assert.Equal(t, entity.ShipmentDelayed, out.Status)
	assert.Nil(t, out.ActualDate)
	assert.Equal(t, "customs hold", out.Notes)
	sup := f.supplierNow(t)
	assert.True(t, decimal.RequireFromString("1000").Equal(sup.CostSavings))
	assert.InDelta(t, 12.0, sup.PerformanceScore, 1e-9)
}

func TestUpdate_NotFound(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.Update(context.Background(), uuid.NewString(), deliver(expected))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdate_KPIFailureRollsBack(t *testing.T) {
	f := newFixture(t)
	sh := f.create(t, "TRK-2024-001", "10000")
	f.store.KPIWriteErr = errors.New("kpi write failed")

	_, err := f.uc.Update(context.Background(), sh.ID, deliver(expected))
	require.Error(t, err)

	got, err := f.uc.GetByID(context.Background(), sh.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ShipmentPending, got.Status)
	assert.True(t, decimal.RequireFromString("1000").Equal(f.supplierNow(t).CostSavings))
}

func TestUpdate_AlertFailureDoesNotFailDelivery(t *testing.T) {
	f := newFixture(t)
	sh := f.create(t, "TRK-2024-002", "10000")
	f.store.AlertCreateErr = errors.New("alerts table unavailable")

	out, err := f.uc.Update(context.Background(), sh.ID, deliver(expected.AddDate(0, 0, 4)))

	require.NoError(t, err)
	assert.Equal(t, entity.ShipmentDelivered, out.Status)
	assert.Empty(t, f.store.AllAlerts())
}

// ─── List / Delete ───────────────────────────────────────────────────────────

func TestList_StatusFilter(t *testing.T) {
	f := newFixture(t)
	a := f.create(t, "TRK-A", "100")
	f.create(t, "TRK-B", "100")
	_, err := f.uc.Update(context.Background(), a.ID, deliver(expected))
	require.NoError(t, err)

	got, err := f.uc.List(context.Background(), repository.ShipmentFilter{Status: entity.ShipmentDelivered})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, a.ID, got[0].ID)

	_, err = f.uc.List(context.Background(), repository.ShipmentFilter{Status: "LOST"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDelete(t *testing.T) {
	f := newFixture(t)
	sh := f.create(t, "TRK-A", "100")

	require.NoError(t, f.uc.Delete(context.Background(), sh.ID))
	assert.ErrorIs(t, f.uc.Delete(context.Background(), sh.ID), domain.ErrNotFound)
	_, err := f.uc.GetByID(context.Background(), sh.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
