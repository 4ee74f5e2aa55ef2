package main

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/domain/entity"
	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/domain/metric"
)

func TestDemoDataset_Consistent(t *testing.T) {
	ds := demoDataset(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))

	require.Len(t, ds.suppliers, 3)
	require.Len(t, ds.shipments, 3)
	require.Len(t, ds.items, 3)
	require.Len(t, ds.alerts, 3)
	require.Len(t, ds.kpis, 4)

	supplierIDs := map[string]bool{}
	for _, s := range ds.suppliers {
		supplierIDs[s.ID] = true
	}
	for _, sh := range ds.shipments {
		assert.True(t, supplierIDs[sh.SupplierID], sh.TrackingNumber)
		assert.Equal(t, sh.Status == entity.ShipmentDelivered, sh.ActualDate != nil,
			"actual date only on delivered shipments")
	}
	for _, it := range ds.items {
		assert.True(t, supplierIDs[it.SupplierID], it.SKU)
		assert.True(t, it.TotalValue.Equal(it.UnitCost.Mul(decimalInt(it.CurrentStock))), it.SKU)
	}
	assert.Equal(t, "127500", ds.items[0].TotalValue.String())

	for _, a := range ds.alerts {
		assert.True(t, a.Type.Valid())
		assert.True(t, a.Severity.Valid())
		require.NotNil(t, a.SupplierID)
		assert.True(t, supplierIDs[*a.SupplierID])
	}

	names := map[string]bool{}
	for _, k := range ds.kpis {
		assert.False(t, names[k.Name], "kpi names are unique: %s", k.Name)
		names[k.Name] = true
		assert.True(t, k.Period.Valid())

		def, ok := metric.LookupKPI(k.Name)
		require.True(t, ok, k.Name)
		assert.Equal(t, def.Unit, k.Unit, k.Name)
		assert.Equal(t, def.Period, k.Period, k.Name)
		assert.Equal(t, def.Category, k.Category, k.Name)
	}
}

func decimalInt(n int) decimal.Decimal { return decimal.NewFromInt(int64(n)) }
