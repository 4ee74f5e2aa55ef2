// Package metric holds the derived-metric rules of the dashboard: stock clamping,
// delivery scoring, the overall performance index, supplier risk and the
// conditions under which an alert has to be raised. Everything here is pure;
// persistence and side effects live in the application layer.
package metric

import "github.com/Gaurav-0801/Manufacturing-Dashboard/internal/domain/entity"

// AlertDraft is an alert decided by a rule but not yet persisted.
type AlertDraft struct {
	Type     entity.AlertType
	Severity entity.AlertSeverity
	Title    string
	Message  string
}
