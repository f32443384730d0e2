package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/templecycle/templecycle-api/internal/application/analytics"
	"github.com/templecycle/templecycle-api/internal/application/auth"
	"github.com/templecycle/templecycle-api/internal/application/catalog"
	"github.com/templecycle/templecycle-api/internal/application/impact"
	"github.com/templecycle/templecycle-api/internal/application/order"
	"github.com/templecycle/templecycle-api/internal/application/rfq"
	"github.com/templecycle/templecycle-api/internal/domain/entity"
)

// RouterDeps dependencies for the router.
type RouterDeps struct {
	AuthUC      *auth.UseCase
	CatalogUC   *catalog.UseCase
	RFQUC       *rfq.UseCase
	OrderUC     *order.UseCase
	DashboardUC *analytics.UseCase
	ImpactUC    *impact.UseCase
	JWTSecret   string
}

// Router registers the API routes. Role gates only narrow who can reach a
// handler; ownership is always re-checked in the use case.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	authed := AuthMiddleware(deps.JWTSecret)

	// Auth
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/me", authed, authHandler.Me)
	authGroup.Put("/profile", authed, authHandler.UpdateProfile)
	authGroup.Put("/password", authed, authHandler.ChangePassword)

	// Catalog (public reads, shg/admin writes)
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.CatalogUC)
	products.Get("/", productHandler.List)
	products.Get("/my", authed, RequireRole(entity.RoleSHG, entity.RoleAdmin), productHandler.ListMine)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", authed, RequireRole(entity.RoleSHG, entity.RoleAdmin), productHandler.Create)
	products.Put("/:id", authed, RequireRole(entity.RoleSHG, entity.RoleAdmin), productHandler.Update)
	products.Delete("/:id", authed, RequireRole(entity.RoleSHG, entity.RoleAdmin), productHandler.Delete)

	// RFQ workflow (authenticated)
	rfqs := api.Group("/rfq", authed)
	rfqHandler := NewRFQHandler(deps.RFQUC)
	rfqs.Post("/", RequireRole(entity.RoleBuyer, entity.RoleAdmin), rfqHandler.Create)
	rfqs.Get("/", rfqHandler.List)
	rfqs.Get("/my", RequireRole(entity.RoleBuyer, entity.RoleAdmin), rfqHandler.ListMine)
	rfqs.Get("/:id", rfqHandler.GetByID)
	rfqs.Post("/:id/quote", RequireRole(entity.RoleSHG), rfqHandler.SubmitQuote)
	rfqs.Put("/:id/status", RequireRole(entity.RoleBuyer, entity.RoleAdmin), rfqHandler.UpdateStatus)

	// Orders (authenticated)
	orders := api.Group("/orders", authed)
	orderHandler := NewOrderHandler(deps.OrderUC)
	orders.Post("/", RequireRole(entity.RoleBuyer, entity.RoleAdmin), orderHandler.Create)
	orders.Get("/", orderHandler.List)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Get("/:id/invoice.pdf", orderHandler.Invoice)
	orders.Put("/:id/status", orderHandler.UpdateStatus)
	orders.Post("/:id/payment", RequireRole(entity.RoleBuyer, entity.RoleAdmin), orderHandler.AddPayment)
	orders.Post("/:id/documents", RequireRole(entity.RoleSHG, entity.RoleAdmin), orderHandler.UploadDocument)

	// Dashboards (authenticated, one per role)
	dashboards := api.Group("/dashboard", authed)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboards.Get("/admin", RequireRole(entity.RoleAdmin), dashboardHandler.Admin)
	dashboards.Get("/shg", RequireRole(entity.RoleSHG, entity.RoleAdmin), dashboardHandler.SHG)
	dashboards.Get("/buyer", RequireRole(entity.RoleBuyer, entity.RoleAdmin), dashboardHandler.Buyer)

	// Impact and traceability. The summary and QR scan endpoints back
	// printed QR codes and the public site, so they stay open; the rest
	// require a token.
	impactGroup := api.Group("/impact")
	impactHandler := NewImpactHandler(deps.ImpactUC)
	impactGroup.Get("/metrics", authed, impactHandler.Metrics)
	impactGroup.Get("/public", impactHandler.Summary)
	impactGroup.Get("/traceability/:productId", authed, impactHandler.Traceability)
	impactGroup.Post("/qr/:batchNumber", impactHandler.Scan)
}
