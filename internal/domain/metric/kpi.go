package metric

import "github.com/Gaurav-0801/Manufacturing-Dashboard/internal/domain/entity"

// KPI names, categories and units.
const (
	KPIInventoryValue     = "Inventory Value"
	KPILowStockItems      = "Low Stock Items"
	KPITotalCostSavings   = "Total Cost Savings"
	KPIOnTimeDeliveryRate = "On-Time Delivery Rate"
	KPIActiveSuppliers    = "Active Suppliers"
	KPICriticalAlerts     = "Critical Alerts"
	KPIQualityScore       = "Quality Score"
	KPIInventoryTurnover  = "Inventory Turnover"

	CategoryInventory   = "inventory"
	CategoryCost        = "cost"
	CategoryPerformance = "performance"
	CategorySuppliers   = "suppliers"
	CategoryAlerts      = "alerts"
	CategoryQuality     = "quality"

	UnitUSD     = "USD"
	UnitPercent = "%"
	UnitItems   = "items"
	UnitCount   = "count"
	UnitRating  = "rating"
	UnitTimes   = "times"
)

// KPIDefinition is the fixed metadata stored with a KPI row. Every writer of a
// given name uses the same definition, so the row looks the same whichever path
// created it.
type KPIDefinition struct {
	Name     string
	Category string
	Unit     string
	Period   entity.KPIPeriod
}

// Cost savings and on-time rate are monthly: the performance chart reads them by period.
var kpiDefinitions = map[string]KPIDefinition{
	KPITotalCostSavings:   {KPITotalCostSavings, CategoryCost, UnitUSD, entity.PeriodMonthly},
	KPIOnTimeDeliveryRate: {KPIOnTimeDeliveryRate, CategoryPerformance, UnitPercent, entity.PeriodMonthly},
	KPIQualityScore:       {KPIQualityScore, CategoryQuality, UnitRating, entity.PeriodMonthly},
	KPIInventoryTurnover:  {KPIInventoryTurnover, CategoryInventory, UnitTimes, entity.PeriodQuarterly},
	KPIInventoryValue:     {KPIInventoryValue, CategoryInventory, UnitUSD, entity.PeriodDaily},
	KPILowStockItems:      {KPILowStockItems, CategoryInventory, UnitItems, entity.PeriodDaily},
	KPIActiveSuppliers:    {KPIActiveSuppliers, CategorySuppliers, UnitCount, entity.PeriodDaily},
	KPICriticalAlerts:     {KPICriticalAlerts, CategoryAlerts, UnitCount, entity.PeriodDaily},
}

// LookupKPI returns the definition of a known KPI name.
func LookupKPI(name string) (KPIDefinition, bool) {
	d, ok := kpiDefinitions[name]
	return d, ok
}

// NewKPI builds a row carrying the fixed metadata of name. Unknown names get a daily row
// with no category or unit.
func NewKPI(name string, value float64) entity.KPI {
	d, ok := kpiDefinitions[name]
	if !ok {
		d = KPIDefinition{Name: name, Period: entity.PeriodDaily}
	}
	return entity.KPI{
		Name:     d.Name,
		Value:    value,
		Category: d.Category,
		Unit:     d.Unit,
		Period:   d.Period,
	}
}
