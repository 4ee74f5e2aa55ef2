package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/application/alerting"
	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/application/analytics"
	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/application/inventory"
	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/application/shipment"
	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/application/usecase"
	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/domain"
	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/domain/entity"
	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/domain/metric"
	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/infrastructure/export"
	apphttp "github.com/Gaurav-0801/Manufacturing-Dashboard/internal/interfaces/http"
	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/testutil/memstore"
	pkgjwt "github.com/Gaurav-0801/Manufacturing-Dashboard/pkg/jwt"
	"github.com/Gaurav-0801/Manufacturing-Dashboard/pkg/logger"
	"github.com/Gaurav-0801/Manufacturing-Dashboard/pkg/telemetry"
)

// ─── Helpers ─────────────────────────────────────────────────────────────────

const testJWTSecret = "test-secret-key-for-unit-tests"

const unknownID = "00000000-0000-0000-0000-00000000dead"

type testServer struct {
	app     *fiber.App
	store   *memstore.Store
	metrics *telemetry.Metrics
}

func newServer(t *testing.T, jwtSecret string) *testServer {
	t.Helper()
	st := memstore.New()
	log := logger.Nop()
	m := telemetry.NewMetrics()
	emitter := alerting.NewEmitter(st.Alerts(), log, m)

	app := fiber.New()
	app.Use(apphttp.Metrics(m))
	apphttp.Router(app, apphttp.RouterDeps{
		ServiceName: "manufacturing-dashboard",
		AlertUC:     usecase.NewAlertUseCase(st.Alerts()),
		SupplierUC:  usecase.NewSupplierUseCase(st.Suppliers(), st.Shipments(), st.Inventory(), st.Alerts(), st.KPIs(), log),
		KPIUC:       usecase.NewKPIUseCase(st.Analytics(), st.Inventory(), st.KPIs(), nil, m, log),
		ShipmentUC:  shipment.NewUseCase(st.TxRunner(), st.Shipments(), emitter, m, log),
		InventoryUC: inventory.NewUseCase(st.TxRunner(), st.Inventory(), st.Suppliers(), emitter, export.NewWorkbook(), m, log),
		AnalyticsUC: analytics.NewUseCase(st.Analytics(), st.Suppliers(), st.Inventory(), st.KPIs(), nil),
		Store:       st.Analytics(),
		Metrics:     m,
		JWTSecret:   jwtSecret,
	})
	return &testServer{app: app, store: st, metrics: m}
}

func (s *testServer) do(t *testing.T, method, path string, body any, headers ...string) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func decode(t *testing.T, data []byte) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out), string(data))
	return out
}

func (s *testServer) createSupplier(t *testing.T, name string) string {
	t.Helper()
	resp, data := s.do(t, http.MethodPost, "/api/suppliers", map[string]any{
		"name": name, "contactEmail": "ops@example.com",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(data))
	return decode(t, data)["id"].(string)
}

func (s *testServer) createItem(t *testing.T, supplierID string, stock, min int) string {
	t.Helper()
	resp, data := s.do(t, http.MethodPost, "/api/inventory", map[string]any{
		"sku": "BRG-002", "name": "Ball Bearings", "category": "Components",
		"supplierId": supplierID, "currentStock": stock, "minStockLevel": min,
		"maxStockLevel": 500, "unitCost": "10.00", "location": "Warehouse B",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(data))
	return decode(t, data)["id"].(string)
}

// ─── Suppliers ───────────────────────────────────────────────────────────────

func TestSuppliers_CreateListGet(t *testing.T) {
	s := newServer(t, "")
	id := s.createSupplier(t, "Steel Corp Industries")

	resp, data := s.do(t, http.MethodGet, "/api/suppliers", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(data, &list))
	require.Len(t, list, 1)
	assert.Equal(t, "ACTIVE", list[0]["status"])

	resp, data = s.do(t, http.MethodGet, "/api/suppliers/"+id, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Steel Corp Industries", decode(t, data)["name"])
}

func TestSuppliers_Validation(t *testing.T) {
	s := newServer(t, "")

	resp, data := s.do(t, http.MethodPost, "/api/suppliers", map[string]any{"name": "No Email"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, decode(t, data)["error"], "ContactEmail")

	req := httptest.NewRequest(http.MethodPost, "/api/suppliers", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	raw, err := s.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, raw.StatusCode)
}

func TestSuppliers_DuplicateIs409(t *testing.T) {
	s := newServer(t, "")
	s.createSupplier(t, "Steel Corp Industries")

	resp, _ := s.do(t, http.MethodPost, "/api/suppliers", map[string]any{
		"name": "Steel Corp Industries", "contactEmail": "other@example.com",
	})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestNotFound(t *testing.T) {
	s := newServer(t, "")
	cases := []struct {
		method, path, msg string
	}{
		{http.MethodGet, "/api/suppliers/" + unknownID, "Supplier not found"},
		{http.MethodGet, "/api/suppliers/not-a-uuid", "Supplier not found"},
		{http.MethodGet, "/api/inventory/" + unknownID, "Inventory item not found"},
		{http.MethodDelete, "/api/shipments/" + unknownID, "Shipment not found"},
		{http.MethodDelete, "/api/alerts/" + unknownID, "Alert not found"},
	}
	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			resp, data := s.do(t, tc.method, tc.path, nil)
			assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
			assert.Equal(t, tc.msg, decode(t, data)["error"])
		})
	}
}

// ─── Inventory ───────────────────────────────────────────────────────────────

func TestInventory_AdjustRaisesAlert(t *testing.T) {
	s := newServer(t, "")
	supplierID := s.createSupplier(t, "Precision Parts Co")
	itemID := s.createItem(t, supplierID, 100, 40)

	resp, data := s.do(t, http.MethodPost, "/api/inventory/"+itemID+"/adjust", map[string]any{
		"adjustment": -95, "reason": "production draw",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(data))
	body := decode(t, data)
	adj := body["adjustment"].(map[string]any)
	assert.EqualValues(t, 100, adj["oldStock"])
	assert.EqualValues(t, 5, adj["newStock"])

	alerts := s.store.AllAlerts()
	require.Len(t, alerts, 1)
	assert.Equal(t, entity.AlertLowStock, alerts[0].Type)
	assert.Equal(t, entity.SeverityCritical, alerts[0].Severity)
}

func TestInventory_AdjustRequiresAdjustment(t *testing.T) {
	s := newServer(t, "")
	supplierID := s.createSupplier(t, "Precision Parts Co")
	itemID := s.createItem(t, supplierID, 100, 40)

	resp, _ := s.do(t, http.MethodPost, "/api/inventory/"+itemID+"/adjust", map[string]any{"reason": "x"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestInventory_AdjustOutOfRange(t *testing.T) {
	s := newServer(t, "")
	supplierID := s.createSupplier(t, "Precision Parts Co")
	itemID := s.createItem(t, supplierID, 10, 40)

	resp, data := s.do(t, http.MethodPost, "/api/inventory/"+itemID+"/adjust", map[string]any{
		"adjustment": int64(9223372036854775807),
	})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode, string(data))
	assert.Equal(t, "invalid field Adjustment: failed max", decode(t, data)["error"])

	resp, data = s.do(t, http.MethodPost, "/api/inventory/"+itemID+"/adjust", map[string]any{
		"adjustment": 3000000000,
	})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode, string(data))

	resp, data = s.do(t, http.MethodPost, "/api/inventory/"+itemID+"/adjust", map[string]any{
		"adjustment": 2147483647,
	})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode, string(data))
	assert.Contains(t, decode(t, data)["error"], "adjusted stock exceeds")

	resp, data = s.do(t, http.MethodGet, "/api/inventory/"+itemID, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 10, decode(t, data)["currentStock"])
	assert.Len(t, s.store.AllAlerts(), 1, "only the creation alert")
}

func TestInventory_ListFiltersAndBadSupplier(t *testing.T) {
	s := newServer(t, "")
	supplierID := s.createSupplier(t, "Precision Parts Co")
	s.createItem(t, supplierID, 100, 40)

	resp, data := s.do(t, http.MethodGet, "/api/inventory?lowStock=true", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(data, &list))
	assert.Empty(t, list)

	resp, _ = s.do(t, http.MethodGet, "/api/inventory?supplierId=nope", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestInventory_Export(t *testing.T) {
	s := newServer(t, "")
	supplierID := s.createSupplier(t, "Precision Parts Co")
	s.createItem(t, supplierID, 100, 40)

	resp, data := s.do(t, http.MethodGet, "/api/inventory/export.xlsx", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "spreadsheetml")
	assert.True(t, bytes.HasPrefix(data, []byte("PK")), "xlsx is a zip archive")
}

// ─── Shipments ───────────────────────────────────────────────────────────────

func TestShipments_LateDelivery(t *testing.T) {
	s := newServer(t, "")
	supplierID := s.createSupplier(t, "Global Logistics Ltd")

	resp, data := s.do(t, http.MethodPost, "/api/shipments", map[string]any{
		"trackingNumber": "TRK-2024-002", "supplierId": supplierID,
		"expectedDate": "2024-03-10", "origin": "Detroit, MI", "destination": "Chicago, IL",
		"totalValue": "10000",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(data))
	created := decode(t, data)
	assert.Equal(t, "PENDING", created["status"])
	id := created["id"].(string)

	resp, data = s.do(t, http.MethodPut, "/api/shipments/"+id, map[string]any{
		"status": "DELIVERED", "actualDate": "2024-03-12",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(data))
	assert.Equal(t, "DELIVERED", decode(t, data)["status"])

	alerts := s.store.AllAlerts()
	require.Len(t, alerts, 1)
	assert.Equal(t, entity.AlertShipmentDelay, alerts[0].Type)
	assert.Equal(t, "Shipment TRK-2024-002 was delivered 2 days late. Potential cost impact: $500.00", alerts[0].Message)
}

func TestShipments_DeliveredWithoutDate(t *testing.T) {
	s := newServer(t, "")
	supplierID := s.createSupplier(t, "Global Logistics Ltd")
	resp, data := s.do(t, http.MethodPost, "/api/shipments", map[string]any{
		"trackingNumber": "TRK-1", "supplierId": supplierID,
		"expectedDate": "2024-03-10", "origin": "A", "destination": "B",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(data))
	id := decode(t, data)["id"].(string)

	resp, _ = s.do(t, http.MethodPut, "/api/shipments/"+id, map[string]any{"status": "DELIVERED"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestShipments_MissingExpectedDate(t *testing.T) {
	s := newServer(t, "")
	supplierID := s.createSupplier(t, "Global Logistics Ltd")
	resp, _ := s.do(t, http.MethodPost, "/api/shipments", map[string]any{
		"trackingNumber": "TRK-1", "supplierId": supplierID, "origin": "A", "destination": "B",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

// ─── Alerts ──────────────────────────────────────────────────────────────────

func TestAlerts_CreateAndBulk(t *testing.T) {
	s := newServer(t, "")
	resp, data := s.do(t, http.MethodPost, "/api/alerts", map[string]any{
		"type": "QUALITY_ISSUE", "severity": "HIGH", "title": "Batch defect", "message": "Lot 42 failed QA",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(data))
	id := decode(t, data)["id"].(string)

	resp, data = s.do(t, http.MethodPut, "/api/alerts/bulk", map[string]any{
		"alertIds": []string{id}, "action": "resolve",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(data))
	body := decode(t, data)
	assert.Equal(t, "Successfully updated 1 alerts", body["message"])
	assert.EqualValues(t, 1, body["count"])

	alerts := s.store.AllAlerts()
	require.Len(t, alerts, 1)
	assert.True(t, alerts[0].IsResolved)
	assert.True(t, alerts[0].IsRead)
}

func TestAlerts_BulkInvalidAction(t *testing.T) {
	s := newServer(t, "")
	resp, data := s.do(t, http.MethodPut, "/api/alerts/bulk", map[string]any{
		"alertIds": []string{}, "action": "archive",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid action", decode(t, data)["error"])
}

func TestAlerts_ListBadFilter(t *testing.T) {
	s := newServer(t, "")
	resp, _ := s.do(t, http.MethodGet, "/api/alerts?severity=URGENT", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, _ = s.do(t, http.MethodGet, "/api/alerts?severity=all&isRead=false", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

// ─── Analytics & KPIs ────────────────────────────────────────────────────────

func TestAnalytics_Endpoints(t *testing.T) {
	s := newServer(t, "")
	s.createSupplier(t, "Steel Corp Industries")

	resp, data := s.do(t, http.MethodGet, "/api/analytics/overview", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(data))
	assert.Contains(t, decode(t, data), "overallPerformance")

	resp, _ = s.do(t, http.MethodGet, "/api/analytics/performance?timeframe=quarterly", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, data = s.do(t, http.MethodGet, "/api/analytics/performance?timeframe=weekly", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "timeframe must be monthly or quarterly", decode(t, data)["error"])

	resp, data = s.do(t, http.MethodGet, "/api/analytics/suppliers", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var rows []map[string]any
	require.NoError(t, json.Unmarshal(data, &rows))
	require.Len(t, rows, 1)
	assert.Contains(t, rows[0], "riskCategory")
}

func TestAnalytics_ReportWithoutRendererIs500(t *testing.T) {
	s := newServer(t, "")
	resp, data := s.do(t, http.MethodGet, "/api/analytics/suppliers/report.pdf", nil)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Failed to render supplier report", decode(t, data)["error"])
}

func TestKPIs_SoftFailureIs200(t *testing.T) {
	s := newServer(t, "")
	s.store.Err = domain.ErrStoreUnavailable

	resp, data := s.do(t, http.MethodGet, "/api/kpis", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decode(t, data)
	assert.Equal(t, true, body["setupRequired"])
	assert.Equal(t, "Database not accessible", body["error"])
}

func TestKPIs_HistoryBadPeriod(t *testing.T) {
	s := newServer(t, "")
	resp, _ := s.do(t, http.MethodGet, "/api/kpis/history?period=hourly", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, _ = s.do(t, http.MethodGet, "/api/kpis/history?period=daily", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestKPIs_SameMetadataWhicheverPathWritesFirst(t *testing.T) {
	s := newServer(t, "")
	supplierID := s.createSupplier(t, "Precision Parts Co")
	itemID := s.createItem(t, supplierID, 100, 40)

	// the snapshot creates the rows first
	resp, _ := s.do(t, http.MethodGet, "/api/kpis", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, data := s.do(t, http.MethodPost, "/api/inventory/"+itemID+"/adjust", map[string]any{"adjustment": -70})
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(data))

	resp, data = s.do(t, http.MethodPost, "/api/shipments", map[string]any{
		"trackingNumber": "TRK-2024-010", "supplierId": supplierID,
		"expectedDate": "2024-03-10", "origin": "Detroit, MI", "destination": "Chicago, IL",
		"totalValue": "10000",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(data))
	shipmentID := decode(t, data)["id"].(string)
	resp, data = s.do(t, http.MethodPut, "/api/shipments/"+shipmentID, map[string]any{
		"status": "DELIVERED", "actualDate": "2024-03-10",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(data))

	resp, data = s.do(t, http.MethodGet, "/api/kpis/history", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var rows []map[string]any
	require.NoError(t, json.Unmarshal(data, &rows), string(data))

	byName := map[string]map[string]any{}
	for _, r := range rows {
		byName[r["name"].(string)] = r
	}
	for _, name := range []string{metric.KPILowStockItems, metric.KPITotalCostSavings, metric.KPIInventoryValue} {
		row, ok := byName[name]
		require.True(t, ok, name)
		def, _ := metric.LookupKPI(name)
		assert.Equal(t, def.Unit, row["unit"], name)
		assert.Equal(t, string(def.Period), row["period"], name)
		assert.Equal(t, def.Category, row["category"], name)
	}
	assert.Equal(t, metric.UnitItems, byName[metric.KPILowStockItems]["unit"])
	assert.Equal(t, "monthly", byName[metric.KPITotalCostSavings]["period"])
}

// ─── Health & metrics ────────────────────────────────────────────────────────

func TestHealth(t *testing.T) {
	s := newServer(t, "")
	resp, _ := s.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	s.store.Err = domain.ErrStoreUnavailable
	resp, data := s.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "unreachable", decode(t, data)["database"])
}

func TestMetricsEndpoint(t *testing.T) {
	s := newServer(t, "")
	s.do(t, http.MethodGet, "/api/suppliers", nil)

	resp, data := s.do(t, http.MethodGet, "/metrics", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, string(data), "http_requests_total")
	assert.Contains(t, string(data), `path="/api/suppliers`)
}

// ─── Auth ────────────────────────────────────────────────────────────────────

func bearer(t *testing.T, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, "ops", role, "manufacturing-dashboard-test", 5)
	require.NoError(t, err)
	return "Bearer " + tok
}

func TestAuth_MutationsNeedToken(t *testing.T) {
	s := newServer(t, testJWTSecret)
	body := map[string]any{"name": "Steel Corp Industries", "contactEmail": "ops@example.com"}

	resp, data := s.do(t, http.MethodPost, "/api/suppliers", body)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "MISSING_TOKEN", decode(t, data)["code"])

	resp, _ = s.do(t, http.MethodPost, "/api/suppliers", body, "Authorization", "Bearer garbage")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, _ = s.do(t, http.MethodPost, "/api/suppliers", body, "Authorization", "Token abc")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, _ = s.do(t, http.MethodPost, "/api/suppliers", body, "Authorization", bearer(t, "operator"))
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, _ = s.do(t, http.MethodGet, "/api/suppliers", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode, "reads stay public")
}

func TestAuth_DestructiveRoutesNeedOperatorRole(t *testing.T) {
	s := newServer(t, testJWTSecret)
	viewer, operator, admin := bearer(t, "viewer"), bearer(t, "operator"), bearer(t, "admin")

	resp, data := s.do(t, http.MethodPost, "/api/suppliers", map[string]any{
		"name": "Steel Corp Industries", "contactEmail": "ops@example.com",
	}, "Authorization", viewer)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(data))
	supplierID := decode(t, data)["id"].(string)

	resp, data = s.do(t, http.MethodPost, "/api/alerts", map[string]any{
		"type": "QUALITY_ISSUE", "severity": "HIGH", "title": "Batch defect", "message": "Lot 42 failed QA",
	}, "Authorization", viewer)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(data))
	alertID := decode(t, data)["id"].(string)
	bulk := map[string]any{"alertIds": []string{alertID}, "action": "resolve"}

	resp, data = s.do(t, http.MethodDelete, "/api/suppliers/"+supplierID, nil, "Authorization", viewer)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", decode(t, data)["code"])

	resp, _ = s.do(t, http.MethodPut, "/api/alerts/bulk", bulk, "Authorization", viewer)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.False(t, s.store.AllAlerts()[0].IsResolved)

	resp, _ = s.do(t, http.MethodDelete, "/api/suppliers/"+supplierID, nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, "no token stops before the role check")

	resp, _ = s.do(t, http.MethodPut, "/api/alerts/bulk", bulk, "Authorization", admin)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, _ = s.do(t, http.MethodDelete, "/api/suppliers/"+supplierID, nil, "Authorization", operator)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAuth_DestructiveRoutesOpenWithoutSecret(t *testing.T) {
	s := newServer(t, "")
	id := s.createSupplier(t, "Steel Corp Industries")
	resp, _ := s.do(t, http.MethodDelete, "/api/suppliers/"+id, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequestLogger_RecordsSubject(t *testing.T) {
	var buf bytes.Buffer
	app := fiber.New()
	app.Use(apphttp.RequestLogger(logger.FromWriter(&buf)))
	app.Use(apphttp.MutationAuth(testJWTSecret))
	app.Post("/api/things", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusCreated) })
	app.Get("/api/things", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	req := httptest.NewRequest(http.MethodPost, "/api/things", nil)
	req.Header.Set("Authorization", bearer(t, "operator"))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Contains(t, buf.String(), `"subject":"ops"`)

	buf.Reset()
	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/things", nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotContains(t, buf.String(), `"subject"`)
	assert.Contains(t, buf.String(), `"path":"/api/things"`)
}

func TestRequireRole(t *testing.T) {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireRole("operator", "admin"),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"subject": apphttp.GetSubject(c), "role": apphttp.GetRole(c)})
		},
	)

	cases := []struct {
		role   string
		status int
	}{
		{"operator", fiber.StatusOK},
		{"ADMIN", fiber.StatusOK},
		{"viewer", fiber.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.role, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			req.Header.Set("Authorization", bearer(t, tc.role))
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, tc.status, resp.StatusCode)
		})
	}
}
