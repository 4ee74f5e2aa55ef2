package repository

import (
	"context"
	"time"

	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/domain/entity"
)

// AlertFilter nil fields match everything.
type AlertFilter struct {
	Severity   *entity.AlertSeverity
	Type       *entity.AlertType
	IsRead     *bool
	IsResolved *bool
	SupplierID string
}

// AlertFlags partial update of the read/resolved flags; nil leaves a flag unchanged.
type AlertFlags struct {
	IsRead     *bool
	IsResolved *bool
}

// AlertFingerprint identifies "the same" alert for de-duplication.
type AlertFingerprint struct {
	Type  entity.AlertType
	Title string
	Refs  entity.AlertRefs
}

// AlertRepository persistence port for Alert.
type AlertRepository interface {
	Create(ctx context.Context, a *entity.Alert) error
	GetByID(ctx context.Context, id string) (*entity.Alert, error)
	// List orders unresolved first, then by severity (critical first), newest first.
	List(ctx context.Context, f AlertFilter) ([]entity.Alert, error)
	UpdateFlags(ctx context.Context, id string, flags AlertFlags) error
	// BulkUpdateFlags returns the number of rows changed.
	BulkUpdateFlags(ctx context.Context, ids []string, flags AlertFlags) (int64, error)
	Delete(ctx context.Context, id string) error
	// ExistsUnresolvedSince reports an unresolved alert with the fingerprint created at or after since.
	ExistsUnresolvedSince(ctx context.Context, fp AlertFingerprint, since time.Time) (bool, error)
}
