package metric

// RiskCategory bucket of a supplier risk score.
type RiskCategory string

const (
	RiskHigh   RiskCategory = "High Risk"
	RiskMedium RiskCategory = "Medium Risk"
	RiskLow    RiskCategory = "Low Risk"
)

// SupplierRisk scores a supplier: +30 below 80 performance, +20 below 4.0 quality,
// +25 below 85% on-time, +10 per open HIGH/CRITICAL alert, capped at 100.
func SupplierRisk(performanceScore, qualityRating, onTimeRate float64, openAlerts int) (int, RiskCategory) {
	score := 0
	if performanceScore < 80 {
		score += 30
	}
	if qualityRating < 4.0 {
		score += 20
	}
	if onTimeRate < 85 {
		score += 25
	}
	if openAlerts > 0 {
		score += openAlerts * 10
	}
	if score > 100 {
		score = 100
	}
	return score, RiskCategoryFor(score)
}

// RiskCategoryFor maps a score to its category: >50 high, >30 medium, else low.
func RiskCategoryFor(score int) RiskCategory {
	switch {
	case score > 50:
		return RiskHigh
	case score > 30:
		return RiskMedium
	default:
		return RiskLow
	}
}
