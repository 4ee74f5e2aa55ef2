// Package telemetry holds the Prometheus collectors and the OpenTelemetry tracer setup.
package telemetry

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "mfg_dashboard"

// Metrics owns its registry so several instances (tests) never collide.
// Every method is safe on a nil *Metrics.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	alertsEmitted       *prometheus.CounterVec
	alertsSuppressed    *prometheus.CounterVec
	alertWriteFailures  *prometheus.CounterVec
	stockAdjustments    *prometheus.CounterVec
	deliveries          *prometheus.CounterVec
	kpiRefreshSkipped   prometheus.Counter
	kpiSnapshotFailures *prometheus.CounterVec
}

// NewMetrics registers the collectors on a fresh registry (plus Go and process collectors).
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		httpRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),
		httpDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path"}),
		alertsEmitted: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "alerts_emitted_total",
			Help:      "Alerts written by the alert emitter",
		}, []string{"type", "severity"}),
		alertsSuppressed: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "alerts_suppressed_total",
			Help:      "Alerts dropped by the de-dup window",
		}, []string{"type"}),
		alertWriteFailures: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "alert_write_failures_total",
			Help:      "Alert writes that failed and were discarded",
		}, []string{"type"}),
		stockAdjustments: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stock_adjustments_total",
			Help:      "Stock adjustments by direction",
		}, []string{"direction"}),
		deliveries: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "shipment_deliveries_total",
			Help:      "Shipments transitioned into DELIVERED",
		}, []string{"on_time"}),
		kpiRefreshSkipped: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "kpi_refresh_skipped_total",
			Help:      "KPI upsert passes skipped because another replica held the lock",
		}),
		kpiSnapshotFailures: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "kpi_snapshot_failures_total",
			Help:      "KPI snapshots that degraded to the soft-failure body",
		}, []string{"reason"}),
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry (tests gather from it).
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) ObserveHTTP(method, path string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, path).Observe(elapsed.Seconds())
}

func (m *Metrics) AlertEmitted(alertType, severity string) {
	if m == nil {
		return
	}
	m.alertsEmitted.WithLabelValues(alertType, severity).Inc()
}

func (m *Metrics) AlertSuppressed(alertType string) {
	if m == nil {
		return
	}
	m.alertsSuppressed.WithLabelValues(alertType).Inc()
}

func (m *Metrics) AlertWriteFailed(alertType string) {
	if m == nil {
		return
	}
	m.alertWriteFailures.WithLabelValues(alertType).Inc()
}

func (m *Metrics) StockAdjusted(delta int) {
	if m == nil {
		return
	}
	dir := "in"
	if delta < 0 {
		dir = "out"
	}
	m.stockAdjustments.WithLabelValues(dir).Inc()
}

func (m *Metrics) ShipmentDelivered(onTime bool) {
	if m == nil {
		return
	}
	m.deliveries.WithLabelValues(strconv.FormatBool(onTime)).Inc()
}

func (m *Metrics) KPIRefreshSkipped() {
	if m == nil {
		return
	}
	m.kpiRefreshSkipped.Inc()
}

func (m *Metrics) KPISnapshotFailed(reason string) {
	if m == nil {
		return
	}
	m.kpiSnapshotFailures.WithLabelValues(reason).Inc()
}
