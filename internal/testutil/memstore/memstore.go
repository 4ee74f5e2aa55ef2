// Package memstore is an in-memory implementation of the repository ports used by
// use-case and handler tests. It mirrors the PostgreSQL adapters' contracts:
// missing rows return nil, nil from GetByID, unique keys map to domain.ErrDuplicate,
// dangling references to domain.ErrNotFound, and a failed transaction is rolled back.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/domain"
	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/domain/entity"
	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/domain/metric"
	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/domain/repository"
)

// Store holds every table. The zero value is not usable; call New.
type Store struct {
	mu   sync.Mutex
	txMu sync.Mutex

	suppliers map[string]entity.Supplier
	shipments map[string]entity.Shipment
	items     map[string]entity.InventoryItem
	alerts    map[string]entity.Alert
	kpis      map[string]entity.KPI // keyed by name

	// Err, when set, is returned by every repository call.
	Err error
	// AlertCreateErr, when set, is returned by AlertRepository.Create only.
	AlertCreateErr error
	// KPIWriteErr, when set, is returned by KPI Upsert/Increment/SetValue.
	KPIWriteErr error
}

// New returns an empty store.
func New() *Store {
	return &Store{
		suppliers: make(map[string]entity.Supplier),
		shipments: make(map[string]entity.Shipment),
		items:     make(map[string]entity.InventoryItem),
		alerts:    make(map[string]entity.Alert),
		kpis:      make(map[string]entity.KPI),
	}
}

func (s *Store) Suppliers() *SupplierRepo   { return &SupplierRepo{s} }
func (s *Store) Shipments() *ShipmentRepo   { return &ShipmentRepo{s} }
func (s *Store) Inventory() *InventoryRepo  { return &InventoryRepo{s} }
func (s *Store) Alerts() *AlertRepo         { return &AlertRepo{s} }
func (s *Store) KPIs() *KPIRepo             { return &KPIRepo{s} }
func (s *Store) Analytics() *AnalyticsRepo  { return &AnalyticsRepo{s} }
func (s *Store) TxRunner() *TxRunner        { return &TxRunner{s} }

// AllAlerts snapshot of the alert table, oldest first.
func (s *Store) AllAlerts() []entity.Alert {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.Alert, 0, len(s.alerts))
	for _, a := range s.alerts {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

// KPI returns the stored KPI by name.
func (s *Store) KPI(name string) (entity.KPI, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	k, ok := s.kpis[name]
	return k, ok
}

// PutKPI stores a KPI row as is (history fixtures).
func (s *Store) PutKPI(k entity.KPI) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.kpis[k.Name+"@"+k.Date.Format(time.RFC3339)] = k
}

type snapshot struct {
	suppliers map[string]entity.Supplier
	shipments map[string]entity.Shipment
	items     map[string]entity.InventoryItem
	alerts    map[string]entity.Alert
	kpis      map[string]entity.KPI
}

func cloneMap[V any](m map[string]V) map[string]V {
	out := make(map[string]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (s *Store) snapshot() snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot{
		suppliers: cloneMap(s.suppliers),
		shipments: cloneMap(s.shipments),
		items:     cloneMap(s.items),
		alerts:    cloneMap(s.alerts),
		kpis:      cloneMap(s.kpis),
	}
}

func (s *Store) restore(sn snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.suppliers, s.shipments, s.items, s.alerts, s.kpis = sn.suppliers, sn.shipments, sn.items, sn.alerts, sn.kpis
}

func (s *Store) supplierSummary(id string) *entity.SupplierSummary {
	sup, ok := s.suppliers[id]
	if !ok {
		return nil
	}
	return &entity.SupplierSummary{ID: sup.ID, Name: sup.Name}
}

// ─── Suppliers ───────────────────────────────────────────────────────────────

// SupplierRepo in-memory SupplierRepository.
type SupplierRepo struct{ s *Store }

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

func (r *SupplierRepo) Create(_ context.Context, sup *entity.Supplier) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	for _, existing := range r.s.suppliers {
		if existing.Name == sup.Name {
			return domain.ErrDuplicate
		}
	}
	r.s.suppliers[sup.ID] = *sup
	return nil
}

func (r *SupplierRepo) GetByID(_ context.Context, id string) (*entity.Supplier, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	sup, ok := r.s.suppliers[id]
	if !ok {
		return nil, nil
	}
	return &sup, nil
}

func (r *SupplierRepo) GetForUpdate(ctx context.Context, id string) (*entity.Supplier, error) {
	return r.GetByID(ctx, id)
}

func sortSuppliers(out []entity.Supplier) {
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].PerformanceScore != out[j].PerformanceScore {
			return out[i].PerformanceScore > out[j].PerformanceScore
		}
		return out[i].Name < out[j].Name
	})
}

func (r *SupplierRepo) List(_ context.Context) ([]entity.SupplierWithCounts, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	sups := make([]entity.Supplier, 0, len(r.s.suppliers))
	for _, sup := range r.s.suppliers {
		sups = append(sups, sup)
	}
	sortSuppliers(sups)

	out := make([]entity.SupplierWithCounts, 0, len(sups))
	for _, sup := range sups {
		var c entity.SupplierCounts
		for _, sh := range r.s.shipments {
			if sh.SupplierID == sup.ID {
				c.Shipments++
			}
		}
		for _, it := range r.s.items {
			if it.SupplierID == sup.ID {
				c.InventoryItems++
			}
		}
		for _, a := range r.s.alerts {
			if a.SupplierID != nil && *a.SupplierID == sup.ID {
				c.Alerts++
			}
		}
		out = append(out, entity.SupplierWithCounts{Supplier: sup, Counts: c})
	}
	return out, nil
}

func (r *SupplierRepo) ListByStatus(_ context.Context, status entity.SupplierStatus) ([]entity.Supplier, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	var out []entity.Supplier
	for _, sup := range r.s.suppliers {
		if sup.Status == status {
			out = append(out, sup)
		}
	}
	sortSuppliers(out)
	return out, nil
}

func (r *SupplierRepo) Update(_ context.Context, sup *entity.Supplier) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	cur, ok := r.s.suppliers[sup.ID]
	if !ok {
		return domain.ErrNotFound
	}
	cur.Name, cur.ContactEmail, cur.ContactPhone, cur.Address = sup.Name, sup.ContactEmail, sup.ContactPhone, sup.Address
	cur.Status, cur.PerformanceScore, cur.QualityRating, cur.CostSavings = sup.Status, sup.PerformanceScore, sup.QualityRating, sup.CostSavings
	cur.UpdatedAt = sup.UpdatedAt
	r.s.suppliers[sup.ID] = cur
	return nil
}

func (r *SupplierRepo) ApplyDelivery(_ context.Context, id string, onTime int, perf float64, delta decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	cur, ok := r.s.suppliers[id]
	if !ok {
		return domain.ErrNotFound
	}
	cur.OnTimeDeliveries = onTime
	cur.PerformanceScore = perf
	cur.CostSavings = cur.CostSavings.Add(delta)
	cur.UpdatedAt = time.Now().UTC()
	r.s.suppliers[id] = cur
	return nil
}

func (r *SupplierRepo) IncrementTotalOrders(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	cur, ok := r.s.suppliers[id]
	if !ok {
		return domain.ErrNotFound
	}
	cur.TotalOrders++
	r.s.suppliers[id] = cur
	return nil
}

func (r *SupplierRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	if _, ok := r.s.suppliers[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.suppliers, id)
	for k, sh := range r.s.shipments {
		if sh.SupplierID == id {
			delete(r.s.shipments, k)
		}
	}
	for k, it := range r.s.items {
		if it.SupplierID == id {
			delete(r.s.items, k)
		}
	}
	for k, a := range r.s.alerts {
		if a.SupplierID != nil && *a.SupplierID == id {
			delete(r.s.alerts, k)
		}
	}
	return nil
}

// ─── Shipments ───────────────────────────────────────────────────────────────

// ShipmentRepo in-memory ShipmentRepository.
type ShipmentRepo struct{ s *Store }

var _ repository.ShipmentRepository = (*ShipmentRepo)(nil)

func (r *ShipmentRepo) withSupplier(sh entity.Shipment) entity.Shipment {
	sh.Supplier = r.s.supplierSummary(sh.SupplierID)
	return sh
}

func (r *ShipmentRepo) Create(_ context.Context, sh *entity.Shipment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	if _, ok := r.s.suppliers[sh.SupplierID]; !ok {
		return domain.ErrNotFound
	}
	for _, existing := range r.s.shipments {
		if existing.TrackingNumber == sh.TrackingNumber {
			return domain.ErrDuplicate
		}
	}
	r.s.shipments[sh.ID] = *sh
	return nil
}

func (r *ShipmentRepo) GetByID(_ context.Context, id string) (*entity.Shipment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	sh, ok := r.s.shipments[id]
	if !ok {
		return nil, nil
	}
	sh = r.withSupplier(sh)
	return &sh, nil
}

func (r *ShipmentRepo) GetForUpdate(ctx context.Context, id string) (*entity.Shipment, error) {
	return r.GetByID(ctx, id)
}

func (r *ShipmentRepo) filter(keep func(entity.Shipment) bool) []entity.Shipment {
	var out []entity.Shipment
	for _, sh := range r.s.shipments {
		if keep(sh) {
			out = append(out, r.withSupplier(sh))
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r *ShipmentRepo) List(_ context.Context, f repository.ShipmentFilter) ([]entity.Shipment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	return r.filter(func(sh entity.Shipment) bool {
		return (f.Status == "" || sh.Status == f.Status) && (f.SupplierID == "" || sh.SupplierID == f.SupplierID)
	}), nil
}

func (r *ShipmentRepo) ListRecentBySupplier(_ context.Context, supplierID string, limit int) ([]entity.Shipment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	out := r.filter(func(sh entity.Shipment) bool { return sh.SupplierID == supplierID })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *ShipmentRepo) ListDeliveredBySupplier(_ context.Context, supplierID string) ([]entity.Shipment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	return r.filter(func(sh entity.Shipment) bool {
		return sh.SupplierID == supplierID && sh.Status == entity.ShipmentDelivered
	}), nil
}

func (r *ShipmentRepo) UpdateStatus(_ context.Context, id string, status entity.ShipmentStatus, actualDate *time.Time, notes string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	sh, ok := r.s.shipments[id]
	if !ok {
		return domain.ErrNotFound
	}
	sh.Status, sh.ActualDate, sh.Notes, sh.UpdatedAt = status, actualDate, notes, time.Now().UTC()
	r.s.shipments[id] = sh
	return nil
}

func (r *ShipmentRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	if _, ok := r.s.shipments[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.shipments, id)
	for k, a := range r.s.alerts {
		if a.ShipmentID != nil && *a.ShipmentID == id {
			delete(r.s.alerts, k)
		}
	}
	return nil
}

// ─── Inventory ───────────────────────────────────────────────────────────────

// InventoryRepo in-memory InventoryRepository.
type InventoryRepo struct{ s *Store }

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

func (r *InventoryRepo) Create(_ context.Context, it *entity.InventoryItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	if _, ok := r.s.suppliers[it.SupplierID]; !ok {
		return domain.ErrNotFound
	}
	for _, existing := range r.s.items {
		if existing.SKU == it.SKU {
			return domain.ErrDuplicate
		}
	}
	r.s.items[it.ID] = *it
	return nil
}

func (r *InventoryRepo) GetByID(_ context.Context, id string) (*entity.InventoryItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	it, ok := r.s.items[id]
	if !ok {
		return nil, nil
	}
	it.Supplier = r.s.supplierSummary(it.SupplierID)
	return &it, nil
}

func (r *InventoryRepo) GetForUpdate(ctx context.Context, id string) (*entity.InventoryItem, error) {
	return r.GetByID(ctx, id)
}

func (r *InventoryRepo) collect(keep func(entity.InventoryItem) bool, less func(a, b entity.InventoryItem) bool) []entity.InventoryItem {
	var out []entity.InventoryItem
	for _, it := range r.s.items {
		if keep(it) {
			it.Supplier = r.s.supplierSummary(it.SupplierID)
			out = append(out, it)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

func (r *InventoryRepo) List(_ context.Context, f repository.InventoryFilter) ([]entity.InventoryItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	return r.collect(func(it entity.InventoryItem) bool {
		return (f.Category == "" || it.Category == f.Category) &&
			(f.SupplierID == "" || it.SupplierID == f.SupplierID) &&
			(!f.LowStockOnly || it.IsLowStock())
	}, func(a, b entity.InventoryItem) bool { return a.Name < b.Name }), nil
}

func (r *InventoryRepo) ListRecentBySupplier(_ context.Context, supplierID string, limit int) ([]entity.InventoryItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	out := r.collect(func(it entity.InventoryItem) bool { return it.SupplierID == supplierID },
		func(a, b entity.InventoryItem) bool { return a.CreatedAt.After(b.CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *InventoryRepo) Update(_ context.Context, it *entity.InventoryItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	cur, ok := r.s.items[it.ID]
	if !ok {
		return domain.ErrNotFound
	}
	next := *it
	next.SKU, next.SupplierID, next.CreatedAt, next.Supplier = cur.SKU, cur.SupplierID, cur.CreatedAt, nil
	r.s.items[it.ID] = next
	return nil
}

func (r *InventoryRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	if _, ok := r.s.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.items, id)
	for k, a := range r.s.alerts {
		if a.InventoryItemID != nil && *a.InventoryItemID == id {
			delete(r.s.alerts, k)
		}
	}
	return nil
}

func (r *InventoryRepo) Summary(_ context.Context) (metric.InventorySummary, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return metric.InventorySummary{}, r.s.Err
	}
	items := make([]entity.InventoryItem, 0, len(r.s.items))
	for _, it := range r.s.items {
		items = append(items, it)
	}
	return metric.SummarizeInventory(items), nil
}

// ─── Alerts ──────────────────────────────────────────────────────────────────

// AlertRepo in-memory AlertRepository.
type AlertRepo struct{ s *Store }

var _ repository.AlertRepository = (*AlertRepo)(nil)

func (r *AlertRepo) Create(_ context.Context, a *entity.Alert) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	if r.s.AlertCreateErr != nil {
		return r.s.AlertCreateErr
	}
	if a.SupplierID != nil {
		if _, ok := r.s.suppliers[*a.SupplierID]; !ok {
			return domain.ErrNotFound
		}
	}
	if a.ShipmentID != nil {
		if _, ok := r.s.shipments[*a.ShipmentID]; !ok {
			return domain.ErrNotFound
		}
	}
	if a.InventoryItemID != nil {
		if _, ok := r.s.items[*a.InventoryItemID]; !ok {
			return domain.ErrNotFound
		}
	}
	r.s.alerts[a.ID] = *a
	return nil
}

func (r *AlertRepo) decorate(a entity.Alert) entity.Alert {
	if a.SupplierID != nil {
		a.Supplier = r.s.supplierSummary(*a.SupplierID)
	}
	if a.ShipmentID != nil {
		if sh, ok := r.s.shipments[*a.ShipmentID]; ok {
			a.Shipment = &entity.ShipmentSummary{ID: sh.ID, TrackingNumber: sh.TrackingNumber}
		}
	}
	if a.InventoryItemID != nil {
		if it, ok := r.s.items[*a.InventoryItemID]; ok {
			a.InventoryItem = &entity.InventoryItemSummary{ID: it.ID, SKU: it.SKU, Name: it.Name}
		}
	}
	return a
}

func (r *AlertRepo) GetByID(_ context.Context, id string) (*entity.Alert, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	a, ok := r.s.alerts[id]
	if !ok {
		return nil, nil
	}
	a = r.decorate(a)
	return &a, nil
}

func (r *AlertRepo) List(_ context.Context, f repository.AlertFilter) ([]entity.Alert, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	var out []entity.Alert
	for _, a := range r.s.alerts {
		switch {
		case f.Severity != nil && a.Severity != *f.Severity,
			f.Type != nil && a.Type != *f.Type,
			f.IsRead != nil && a.IsRead != *f.IsRead,
			f.IsResolved != nil && a.IsResolved != *f.IsResolved,
			f.SupplierID != "" && (a.SupplierID == nil || *a.SupplierID != f.SupplierID):
			continue
		}
		out = append(out, r.decorate(a))
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.IsResolved != b.IsResolved {
			return !a.IsResolved
		}
		if a.Severity.Rank() != b.Severity.Rank() {
			return a.Severity.Rank() > b.Severity.Rank()
		}
		return a.CreatedAt.After(b.CreatedAt)
	})
	return out, nil
}

func (r *AlertRepo) UpdateFlags(ctx context.Context, id string, flags repository.AlertFlags) error {
	n, err := r.BulkUpdateFlags(ctx, []string{id}, flags)
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *AlertRepo) BulkUpdateFlags(_ context.Context, ids []string, flags repository.AlertFlags) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return 0, r.s.Err
	}
	var n int64
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		a, ok := r.s.alerts[id]
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		if flags.IsRead != nil {
			a.IsRead = *flags.IsRead
		}
		if flags.IsResolved != nil {
			a.IsResolved = *flags.IsResolved
		}
		a.UpdatedAt = time.Now().UTC()
		r.s.alerts[id] = a
		n++
	}
	return n, nil
}

func (r *AlertRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	if _, ok := r.s.alerts[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.alerts, id)
	return nil
}

func sameRef(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func (r *AlertRepo) ExistsUnresolvedSince(_ context.Context, fp repository.AlertFingerprint, since time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return false, r.s.Err
	}
	for _, a := range r.s.alerts {
		if a.Type == fp.Type && a.Title == fp.Title && !a.IsResolved && !a.CreatedAt.Before(since) &&
			sameRef(a.SupplierID, fp.Refs.SupplierID) &&
			sameRef(a.ShipmentID, fp.Refs.ShipmentID) &&
			sameRef(a.InventoryItemID, fp.Refs.InventoryItemID) {
			return true, nil
		}
	}
	return false, nil
}

// ─── KPIs ────────────────────────────────────────────────────────────────────

// KPIRepo in-memory KPIRepository keyed by name.
type KPIRepo struct{ s *Store }

var _ repository.KPIRepository = (*KPIRepo)(nil)

func (r *KPIRepo) write(k *entity.KPI, add bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	if r.s.KPIWriteErr != nil {
		return r.s.KPIWriteErr
	}
	now := time.Now().UTC()
	cur, ok := r.s.kpis[k.Name]
	if !ok {
		next := *k
		if next.Period == "" {
			next.Period = entity.PeriodDaily
		}
		if next.Date.IsZero() {
			next.Date = now
		}
		next.CreatedAt, next.UpdatedAt = now, now
		r.s.kpis[k.Name] = next
		return nil
	}
	if add {
		cur.Value += k.Value
	} else {
		cur.Value = k.Value
	}
	cur.UpdatedAt = now
	r.s.kpis[k.Name] = cur
	return nil
}

func (r *KPIRepo) Upsert(_ context.Context, k *entity.KPI) error    { return r.write(k, false) }
func (r *KPIRepo) Increment(_ context.Context, k *entity.KPI) error { return r.write(k, true) }

func (r *KPIRepo) SetValue(_ context.Context, name string, value float64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	if r.s.KPIWriteErr != nil {
		return r.s.KPIWriteErr
	}
	if cur, ok := r.s.kpis[name]; ok {
		cur.Value = value
		cur.UpdatedAt = time.Now().UTC()
		r.s.kpis[name] = cur
	}
	return nil
}

func (r *KPIRepo) List(_ context.Context, f repository.KPIFilter) ([]entity.KPI, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	var out []entity.KPI
	for _, k := range r.s.kpis {
		if (f.Period == "" || k.Period == f.Period) && (f.Category == "" || k.Category == f.Category) {
			out = append(out, k)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].Name < out[j].Name
	})
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

// ─── Analytics ───────────────────────────────────────────────────────────────

// AnalyticsRepo in-memory AnalyticsRepository.
type AnalyticsRepo struct{ s *Store }

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

func (r *AnalyticsRepo) Ping(context.Context) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.Err
}

func (r *AnalyticsRepo) delivered(keep func(entity.Shipment) bool) repository.DeliveryStats {
	var list []entity.Shipment
	for _, sh := range r.s.shipments {
		if keep(sh) {
			list = append(list, sh)
		}
	}
	onTime, total := metric.DeliveryStats(list)
	return repository.DeliveryStats{OnTime: onTime, Delivered: total}
}

func (r *AnalyticsRepo) FleetDeliveryStats(context.Context) (repository.DeliveryStats, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return repository.DeliveryStats{}, r.s.Err
	}
	return r.delivered(func(entity.Shipment) bool { return true }), nil
}

func (r *AnalyticsRepo) OpenAlertCounts(context.Context) (map[entity.AlertSeverity]int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	out := make(map[entity.AlertSeverity]int)
	for _, a := range r.s.alerts {
		if !a.IsResolved {
			out[a.Severity]++
		}
	}
	return out, nil
}

func (r *AnalyticsRepo) SupplierTotals(context.Context) (repository.SupplierTotals, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return repository.SupplierTotals{}, r.s.Err
	}
	t := repository.SupplierTotals{TotalCostSavings: decimal.Zero}
	for _, sup := range r.s.suppliers {
		if sup.Status == entity.SupplierActive {
			t.Active++
		}
		t.TotalCostSavings = t.TotalCostSavings.Add(sup.CostSavings)
	}
	return t, nil
}

func (r *AnalyticsRepo) SupplierScorecards(context.Context) ([]repository.SupplierScorecard, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	var sups []entity.Supplier
	for _, sup := range r.s.suppliers {
		if sup.Status == entity.SupplierActive {
			sups = append(sups, sup)
		}
	}
	sortSuppliers(sups)

	out := make([]repository.SupplierScorecard, 0, len(sups))
	for _, sup := range sups {
		id := sup.ID
		c := repository.SupplierScorecard{
			Supplier: sup,
			Delivery: r.delivered(func(sh entity.Shipment) bool { return sh.SupplierID == id }),
		}
		for _, a := range r.s.alerts {
			if !a.IsResolved && a.SupplierID != nil && *a.SupplierID == id &&
				(a.Severity == entity.SeverityHigh || a.Severity == entity.SeverityCritical) {
				c.OpenSevereAlerts++
			}
		}
		out = append(out, c)
	}
	return out, nil
}

// ─── Transactions ────────────────────────────────────────────────────────────

// TxRunner serializes transactions and restores the previous state when fn fails.
type TxRunner struct{ s *Store }

func (t *TxRunner) run(fn func() error) error {
	t.s.txMu.Lock()
	defer t.s.txMu.Unlock()
	sn := t.s.snapshot()
	if err := fn(); err != nil {
		t.s.restore(sn)
		return err
	}
	return nil
}

func (t *TxRunner) Run(_ context.Context, fn func(items repository.InventoryRepository, kpis repository.KPIRepository) error) error {
	return t.run(func() error { return fn(t.s.Inventory(), t.s.KPIs()) })
}

func (t *TxRunner) RunShipment(_ context.Context, fn func(
	shipments repository.ShipmentRepository,
	suppliers repository.SupplierRepository,
	kpis repository.KPIRepository,
) error) error {
	return t.run(func() error { return fn(t.s.Shipments(), t.s.Suppliers(), t.s.KPIs()) })
}
