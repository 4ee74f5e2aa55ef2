package entity

import "time"

// AlertType category of an alert.
type AlertType string

const (
	AlertLowStock            AlertType = "LOW_STOCK"
	AlertShipmentDelay       AlertType = "SHIPMENT_DELAY"
	AlertSupplierPerformance AlertType = "SUPPLIER_PERFORMANCE"
	AlertQualityIssue        AlertType = "QUALITY_ISSUE"
	AlertCostVariance        AlertType = "COST_VARIANCE"
	AlertSystemNotification  AlertType = "SYSTEM_NOTIFICATION"
)

// Valid reports whether t is a known type.
func (t AlertType) Valid() bool {
	switch t {
	case AlertLowStock, AlertShipmentDelay, AlertSupplierPerformance,
		AlertQualityIssue, AlertCostVariance, AlertSystemNotification:
		return true
	}
	return false
}

// AlertSeverity severity tier of an alert.
type AlertSeverity string

const (
	SeverityLow      AlertSeverity = "LOW"
	SeverityMedium   AlertSeverity = "MEDIUM"
	SeverityHigh     AlertSeverity = "HIGH"
	SeverityCritical AlertSeverity = "CRITICAL"
)

// Rank orders severities: LOW=1 … CRITICAL=4, 0 for unknown values.
func (s AlertSeverity) Rank() int {
	switch s {
	case SeverityLow:
		return 1
	case SeverityMedium:
		return 2
	case SeverityHigh:
		return 3
	case SeverityCritical:
		return 4
	}
	return 0
}

// Valid reports whether s is a known severity.
func (s AlertSeverity) Valid() bool { return s.Rank() > 0 }

// Alert is a notification produced by the alert emitter or created manually.
type Alert struct {
	ID              string
	Type            AlertType
	Severity        AlertSeverity
	Title           string
	Message         string
	SupplierID      *string
	ShipmentID      *string
	InventoryItemID *string
	IsRead          bool
	IsResolved      bool
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// Populated by list queries only.
	Supplier      *SupplierSummary
	Shipment      *ShipmentSummary
	InventoryItem *InventoryItemSummary
}

// ShipmentSummary compact form embedded in alerts.
type ShipmentSummary struct {
	ID             string
	TrackingNumber string
}

// AlertRefs optional references attached to an emitted alert.
type AlertRefs struct {
	SupplierID      *string
	ShipmentID      *string
	InventoryItemID *string
}
