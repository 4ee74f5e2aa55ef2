package dto

import "github.com/shopspring/decimal"

// TrendsDTO fixed indicator deltas shown beside the overview figures.
type TrendsDTO struct {
	PerformanceChange float64 `json:"performanceChange"`
	CostSavingsChange float64 `json:"costSavingsChange"`
	QualityChange     float64 `json:"qualityChange"`
	DeliveryChange    float64 `json:"deliveryChange"`
}

// OverviewResponse GET /api/analytics/overview.
type OverviewResponse struct {
	OverallPerformance  float64         `json:"overallPerformance"`
	CostSavings         decimal.Decimal `json:"costSavings"`
	QualityScore        float64         `json:"qualityScore"`
	DeliveryPerformance float64         `json:"deliveryPerformance"`
	TotalSuppliers      int             `json:"totalSuppliers"`
	AvgPerformanceScore float64         `json:"avgPerformanceScore"`
	TotalInventoryValue decimal.Decimal `json:"totalInventoryValue"`
	LowStockItems       int             `json:"lowStockItems"`
	CriticalAlerts      int             `json:"criticalAlerts"`
	HighAlerts          int             `json:"highAlerts"`
	Trends              TrendsDTO       `json:"trends"`
}

// PerformancePointDTO one period of GET /api/analytics/performance.
type PerformancePointDTO struct {
	Period      string  `json:"period"`
	Month       string  `json:"month"`
	OnTime      float64 `json:"onTime"`
	Quality     float64 `json:"quality"`
	Cost        float64 `json:"cost"`
	Performance float64 `json:"performance"`
}

// SupplierAnalyticsDTO row of GET /api/analytics/suppliers.
type SupplierAnalyticsDTO struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Score        float64         `json:"score"`
	Orders       int             `json:"orders"`
	OnTime       float64         `json:"onTime"`
	Quality      float64         `json:"quality"`
	Savings      decimal.Decimal `json:"savings"`
	RiskScore    int             `json:"riskScore"`
	RiskCategory string          `json:"riskCategory"`
	Alerts       int             `json:"alerts"`
}
