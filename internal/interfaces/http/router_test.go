package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/templecycle/templecycle-api/internal/application/analytics"
	"github.com/templecycle/templecycle-api/internal/application/auth"
	"github.com/templecycle/templecycle-api/internal/application/catalog"
	"github.com/templecycle/templecycle-api/internal/application/impact"
	"github.com/templecycle/templecycle-api/internal/application/order"
	"github.com/templecycle/templecycle-api/internal/application/rfq"
	"github.com/templecycle/templecycle-api/internal/domain/entity"
	"github.com/templecycle/templecycle-api/internal/infrastructure/memory"
	"github.com/templecycle/templecycle-api/internal/infrastructure/pdf"
	apphttp "github.com/templecycle/templecycle-api/internal/interfaces/http"
)

// buildAPIApp wires the full router over the in-process store, the same
// shape cmd/api builds for STORE_DRIVER=memory.
func buildAPIApp() *fiber.App {
	store := memory.NewStore()
	users := memory.NewUserRepository(store)
	products := memory.NewProductRepository(store)
	rfqs := memory.NewRFQRepository(store)
	orders := memory.NewOrderRepository(store)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC: auth.NewUseCase(users, auth.TokenConfig{
			Secret:            testJWTSecret,
			Issuer:            testIssuer,
			ExpirationMinutes: testExpMin,
		}),
		CatalogUC:   catalog.NewUseCase(products, users),
		RFQUC:       rfq.NewUseCase(rfqs, products, users),
		OrderUC:     order.NewUseCase(orders, rfqs, products, users, memory.NewTxRunner(store), pdf.NewMarotoInvoiceRenderer()),
		DashboardUC: analytics.NewUseCase(memory.NewAnalyticsRepository(store)),
		ImpactUC:    impact.NewUseCase(memory.NewImpactRepository(store), memory.NewTraceabilityRepository(store)),
		JWTSecret:   testJWTSecret,
	})
	return app
}

func get(t *testing.T, app *fiber.App, path, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Impact route authentication
// ──────────────────────────────────────────────────────────────────────────────

// Metrics and traceability carry aggregated business data and require a
// token; only the headline summary and the QR scan resolver are open.
func TestImpactRoutes_MetricsRequiresToken(t *testing.T) {
	app := buildAPIApp()

	resp := get(t, app, "/api/impact/metrics", "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode,
		"unauthenticated metrics request must be rejected")

	resp = get(t, app, "/api/impact/metrics", tokenForRole(t, entity.RoleCSR))
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"any authenticated role may read metrics")
}

func TestImpactRoutes_TraceabilityRequiresToken(t *testing.T) {
	app := buildAPIApp()

	resp := get(t, app, "/api/impact/traceability/p1", "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode,
		"unauthenticated traceability request must be rejected")

	resp = get(t, app, "/api/impact/traceability/p1", tokenForRole(t, entity.RoleBuyer))
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestImpactRoutes_PublicSummaryStaysOpen(t *testing.T) {
	app := buildAPIApp()

	resp := get(t, app, "/api/impact/public", "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"the public summary backs the marketing site and stays open")
}

func TestImpactRoutes_QRScanStaysOpen(t *testing.T) {
	app := buildAPIApp()

	req := httptest.NewRequest(http.MethodPost, "/api/impact/qr/TC-20250801-0001", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	// No token needed; the unknown batch is a 404, never a 401.
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
