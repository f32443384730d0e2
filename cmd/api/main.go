package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/templecycle/templecycle-api/internal/application/analytics"
	"github.com/templecycle/templecycle-api/internal/application/auth"
	"github.com/templecycle/templecycle-api/internal/application/catalog"
	"github.com/templecycle/templecycle-api/internal/application/impact"
	"github.com/templecycle/templecycle-api/internal/application/order"
	"github.com/templecycle/templecycle-api/internal/application/rfq"
	"github.com/templecycle/templecycle-api/internal/domain/repository"
	"github.com/templecycle/templecycle-api/internal/infrastructure/memory"
	infrapdf "github.com/templecycle/templecycle-api/internal/infrastructure/pdf"
	"github.com/templecycle/templecycle-api/internal/infrastructure/postgres"
	httpRouter "github.com/templecycle/templecycle-api/internal/interfaces/http"
	"github.com/templecycle/templecycle-api/pkg/config"
	"github.com/templecycle/templecycle-api/pkg/logger"
	"github.com/templecycle/templecycle-api/pkg/metrics"
)

// repos bundles every persistence port behind one struct so the driver
// selection stays in one place.
type repos struct {
	users     repository.UserRepository
	products  repository.ProductRepository
	rfqs      repository.RFQRepository
	orders    repository.OrderRepository
	impacts   repository.ImpactRepository
	traces    repository.TraceabilityRepository
	analytics repository.AnalyticsRepository
	txRunner  order.TxRunner
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("starting application")

	ctx := context.Background()

	var r repos
	switch cfg.Store.Driver {
	case "memory":
		store := memory.NewStore()
		r = repos{
			users:     memory.NewUserRepository(store),
			products:  memory.NewProductRepository(store),
			rfqs:      memory.NewRFQRepository(store),
			orders:    memory.NewOrderRepository(store),
			impacts:   memory.NewImpactRepository(store),
			traces:    memory.NewTraceabilityRepository(store),
			analytics: memory.NewAnalyticsRepository(store),
			txRunner:  memory.NewTxRunner(store),
		}
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("PostgreSQL connection")
		}
		defer pool.Close()
		r = repos{
			users:     postgres.NewUserRepository(pool),
			products:  postgres.NewProductRepository(pool),
			rfqs:      postgres.NewRFQRepository(pool),
			orders:    postgres.NewOrderRepository(pool),
			impacts:   postgres.NewImpactRepository(pool),
			traces:    postgres.NewTraceabilityRepository(pool),
			analytics: postgres.NewAnalyticsRepository(pool),
			txRunner:  postgres.NewTxRunner(pool),
		}
	}

	authUC := auth.NewUseCase(r.users, auth.TokenConfig{
		Secret:            cfg.JWT.Secret,
		Issuer:            cfg.JWT.Issuer,
		ExpirationMinutes: cfg.JWT.Expiration,
	})
	catalogUC := catalog.NewUseCase(r.products, r.users)
	rfqUC := rfq.NewUseCase(r.rfqs, r.products, r.users)
	orderUC := order.NewUseCase(r.orders, r.rfqs, r.products, r.users, r.txRunner, infrapdf.NewMarotoInvoiceRenderer())
	dashboardUC := analytics.NewUseCase(r.analytics)
	impactUC := impact.NewUseCase(r.impacts, r.traces)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	httpMetrics := metrics.NewHTTPMetrics(cfg.App.Name)
	app.Use(httpMetrics.Middleware())

	// Swagger UI: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "TempleCycle TN API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		CatalogUC:   catalogUC,
		RFQUC:       rfqUC,
		OrderUC:     orderUC,
		DashboardUC: dashboardUC,
		ImpactUC:    impactUC,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, closing server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}
