package telemetry

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	m := NewMetrics()
	m.AlertEmitted("LOW_STOCK", "HIGH")
	m.AlertEmitted("LOW_STOCK", "HIGH")
	m.AlertSuppressed("LOW_STOCK")
	m.StockAdjusted(-3)
	m.ShipmentDelivered(true)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.alertsEmitted.WithLabelValues("LOW_STOCK", "HIGH")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.alertsSuppressed.WithLabelValues("LOW_STOCK")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.stockAdjustments.WithLabelValues("out")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.deliveries.WithLabelValues("true")))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.AlertEmitted("LOW_STOCK", "HIGH")
		m.ObserveHTTP("GET", "/api/kpis", 200, time.Millisecond)
		m.KPIRefreshSkipped()
	})
}

func TestMetrics_Handler(t *testing.T) {
	m := NewMetrics()
	m.ObserveHTTP("GET", "/api/kpis", 200, 10*time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, 200, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), `mfg_dashboard_http_requests_total{method="GET",path="/api/kpis",status="200"} 1`))
}

func TestInitTracer_DisabledWithoutEndpoint(t *testing.T) {
	shutdown, err := InitTracer(context.Background(), "", "svc", "test")
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}
