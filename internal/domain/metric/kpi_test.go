package metric_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/domain/entity"
	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/domain/metric"
)

func TestNewKPI_CarriesFixedMetadata(t *testing.T) {
	cases := []struct {
		name     string
		category string
		unit     string
		period   entity.KPIPeriod
	}{
		{metric.KPITotalCostSavings, metric.CategoryCost, metric.UnitUSD, entity.PeriodMonthly},
		{metric.KPIOnTimeDeliveryRate, metric.CategoryPerformance, metric.UnitPercent, entity.PeriodMonthly},
		{metric.KPIInventoryValue, metric.CategoryInventory, metric.UnitUSD, entity.PeriodDaily},
		{metric.KPILowStockItems, metric.CategoryInventory, metric.UnitItems, entity.PeriodDaily},
		{metric.KPIActiveSuppliers, metric.CategorySuppliers, metric.UnitCount, entity.PeriodDaily},
		{metric.KPICriticalAlerts, metric.CategoryAlerts, metric.UnitCount, entity.PeriodDaily},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			k := metric.NewKPI(tc.name, 42)
			assert.Equal(t, tc.name, k.Name)
			assert.InDelta(t, 42.0, k.Value, 1e-9)
			assert.Equal(t, tc.category, k.Category)
			assert.Equal(t, tc.unit, k.Unit)
			assert.Equal(t, tc.period, k.Period)
		})
	}
}

func TestNewKPI_UnknownName(t *testing.T) {
	k := metric.NewKPI("Scrap Rate", 1.5)
	assert.Equal(t, "Scrap Rate", k.Name)
	assert.Equal(t, entity.PeriodDaily, k.Period)
	assert.Empty(t, k.Unit)

	_, ok := metric.LookupKPI("Scrap Rate")
	assert.False(t, ok)
}

func TestLookupKPI_DefinitionsAreValid(t *testing.T) {
	for _, name := range []string{
		metric.KPIInventoryValue, metric.KPILowStockItems, metric.KPITotalCostSavings,
		metric.KPIOnTimeDeliveryRate, metric.KPIActiveSuppliers, metric.KPICriticalAlerts,
		metric.KPIQualityScore, metric.KPIInventoryTurnover,
	} {
		def, ok := metric.LookupKPI(name)
		require.True(t, ok, name)
		assert.Equal(t, name, def.Name)
		assert.True(t, def.Period.Valid(), name)
		assert.NotEmpty(t, def.Unit, name)
	}
}
