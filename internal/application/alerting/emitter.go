// Package alerting persists the alerts decided by the metric rules.
//
// Writes are best-effort: a failed write is logged and counted, never returned,
// so the mutation that triggered it still succeeds. An optional de-dup window
// drops an alert when an identical unresolved one was raised recently.
package alerting

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/domain/entity"
	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/domain/metric"
	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/domain/repository"
	"github.com/Gaurav-0801/Manufacturing-Dashboard/pkg/logger"
	"github.com/Gaurav-0801/Manufacturing-Dashboard/pkg/telemetry"
)

// Deduper decides whether an alert with the given fingerprint may be written now.
type Deduper interface {
	// Claim returns true when no identical alert was claimed within window.
	Claim(ctx context.Context, fp repository.AlertFingerprint, window time.Duration) (bool, error)
}

// Emitter writes alert drafts.
type Emitter struct {
	repo    repository.AlertRepository
	log     *logger.Logger
	metrics *telemetry.Metrics
	dedup   Deduper
	window  time.Duration
	now     func() time.Time
}

// Option configures an Emitter.
type Option func(*Emitter)

// WithDedup enables the de-dup window. A zero window or nil deduper keeps it off.
func WithDedup(d Deduper, window time.Duration) Option {
	return func(e *Emitter) {
		e.dedup = d
		e.window = window
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(e *Emitter) { e.now = now }
}

// NewEmitter builds the emitter. metrics may be nil.
func NewEmitter(repo repository.AlertRepository, log *logger.Logger, metrics *telemetry.Metrics, opts ...Option) *Emitter {
	e := &Emitter{
		repo:    repo,
		log:     log.Named("alerting"),
		metrics: metrics,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Emitter) dedupEnabled() bool {
	return e.dedup != nil && e.window > 0
}

// Emit persists draft with its references. It returns the stored alert, or nil when the
// draft was nil, suppressed by the de-dup window, or could not be written.
func (e *Emitter) Emit(ctx context.Context, draft *metric.AlertDraft, refs entity.AlertRefs) *entity.Alert {
	if draft == nil {
		return nil
	}
	typ := string(draft.Type)

	if e.dedupEnabled() {
		fp := repository.AlertFingerprint{Type: draft.Type, Title: draft.Title, Refs: refs}
		ok, err := e.dedup.Claim(ctx, fp, e.window)
		switch {
		case err != nil:
			// de-dup backend down: write anyway
			e.log.Warn().Err(err).Str("alert_type", typ).Msg("alert de-dup check failed")
		case !ok:
			e.metrics.AlertSuppressed(typ)
			e.log.Debug().Str("alert_type", typ).Str("title", draft.Title).Msg("alert suppressed by de-dup window")
			return nil
		}
	}

	now := e.now().UTC()
	a := &entity.Alert{
		ID:              uuid.NewString(),
		Type:            draft.Type,
		Severity:        draft.Severity,
		Title:           draft.Title,
		Message:         draft.Message,
		SupplierID:      refs.SupplierID,
		ShipmentID:      refs.ShipmentID,
		InventoryItemID: refs.InventoryItemID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := e.repo.Create(ctx, a); err != nil {
		e.metrics.AlertWriteFailed(typ)
		ev := e.log.Error().Err(err).Str("alert_type", typ).Str("severity", string(draft.Severity))
		if refs.InventoryItemID != nil {
			ev = ev.Str("item_id", *refs.InventoryItemID)
		}
		if refs.ShipmentID != nil {
			ev = ev.Str("shipment_id", *refs.ShipmentID)
		}
		if refs.SupplierID != nil {
			ev = ev.Str("supplier_id", *refs.SupplierID)
		}
		ev.Msg("alert write failed")
		return nil
	}
	e.metrics.AlertEmitted(typ, string(draft.Severity))
	return a
}

// StoreDeduper checks the alert table for an unresolved identical alert inside the window.
// Used when no Redis is configured.
type StoreDeduper struct {
	repo repository.AlertRepository
	now  func() time.Time
}

// NewStoreDeduper builds the store-backed deduper.
func NewStoreDeduper(repo repository.AlertRepository) *StoreDeduper {
	return &StoreDeduper{repo: repo, now: time.Now}
}

// Claim implements Deduper.
func (d *StoreDeduper) Claim(ctx context.Context, fp repository.AlertFingerprint, window time.Duration) (bool, error) {
	exists, err := d.repo.ExistsUnresolvedSince(ctx, fp, d.now().Add(-window))
	if err != nil {
		return false, err
	}
	return !exists, nil
}
