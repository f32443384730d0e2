// seed loads demo data for local development: one account per role, the
// Meenakshi SHG catalog, a monthly impact snapshot and a traceability batch.
//
// Usage: go run ./cmd/seed
// Safe to re-run; existing accounts are reused instead of duplicated.
package main

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/templecycle/templecycle-api/internal/domain"
	"github.com/templecycle/templecycle-api/internal/domain/entity"
	"github.com/templecycle/templecycle-api/internal/infrastructure/postgres"
	"github.com/templecycle/templecycle-api/pkg/config"
	"github.com/templecycle/templecycle-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})
	ctx := context.Background()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("PostgreSQL connection")
	}
	defer pool.Close()

	users := postgres.NewUserRepository(pool)
	products := postgres.NewProductRepository(pool)
	impacts := postgres.NewImpactRepository(pool)
	traces := postgres.NewTraceabilityRepository(pool)

	now := time.Now()

	accounts := []struct {
		user     entity.User
		password string
	}{
		{
			user: entity.User{
				Name: "Admin User", Email: "admin@templecycle.com", Role: entity.RoleAdmin,
				Phone: "9876543210", Organization: "TempleCycle TN",
				Address: entity.Address{Street: "123 Admin Street", City: "Chennai", District: "Chennai", State: "Tamil Nadu", Pincode: "600001"},
			},
			password: "admin123",
		},
		{
			user: entity.User{
				Name: "SHG Meenakshi", Email: "shg@templecycle.com", Role: entity.RoleSHG,
				Phone: "9876543211", Organization: "Meenakshi SHG",
				Address: entity.Address{Street: "45 SHG Road", City: "Madurai", District: "Madurai", State: "Tamil Nadu", Pincode: "625001"},
			},
			password: "shg123",
		},
		{
			user: entity.User{
				Name: "Buyer Company", Email: "buyer@templecycle.com", Role: entity.RoleBuyer,
				Phone: "9876543212", Organization: "Sri Ganesh Agarbatti",
				Address: entity.Address{Street: "78 Industrial Estate", City: "Salem", District: "Salem", State: "Tamil Nadu", Pincode: "636001"},
			},
			password: "buyer123",
		},
		{
			user: entity.User{
				Name: "CSR Representative", Email: "csr@templecycle.com", Role: entity.RoleCSR,
				Phone: "9876543213", Organization: "CSR Foundation",
				Address: entity.Address{Street: "CSR Office", City: "Chennai", District: "Chennai", State: "Tamil Nadu", Pincode: "600002"},
			},
			password: "csr123",
		},
	}

	var shgID string
	for _, a := range accounts {
		hash, err := bcrypt.GenerateFromPassword([]byte(a.password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal().Err(err).Msg("hash password")
		}
		u := a.user
		u.ID = uuid.NewString()
		u.PasswordHash = string(hash)
		u.IsActive = true
		u.CreatedAt = now
		u.UpdatedAt = now

		switch err := users.Create(ctx, &u); {
		case err == nil:
			log.Info().Str("email", u.Email).Str("role", u.Role).Msg("user created")
		case errors.Is(err, domain.ErrEmailAlreadyExists):
			existing, err := users.GetByEmail(ctx, u.Email)
			if err != nil {
				log.Fatal().Err(err).Msg("look up existing user")
			}
			u = *existing
			log.Info().Str("email", u.Email).Msg("user already exists, reusing")
		default:
			log.Fatal().Err(err).Msg("create user")
		}
		if u.Role == entity.RoleSHG {
			shgID = u.ID
		}
	}

	catalog := demoProducts(shgID, now)
	for i := range catalog {
		if err := products.Create(ctx, &catalog[i]); err != nil {
			log.Fatal().Err(err).Str("product", catalog[i].Name).Msg("create product")
		}
		log.Info().Str("product", catalog[i].Name).Msg("product created")
	}

	metric := demoImpactMetric(now)
	if err := impacts.Create(ctx, metric); err != nil {
		log.Fatal().Err(err).Msg("create impact metric")
	}
	log.Info().Msg("impact metric created")

	batch := demoTraceability(catalog[0].ID, shgID, now)
	if err := traces.Create(ctx, batch); err != nil {
		log.Fatal().Err(err).Msg("create traceability batch")
	}
	log.Info().Str("batch", batch.BatchNumber).Msg("traceability batch created")

	log.Info().Msg("seeding completed")
	log.Info().Msg("admin@templecycle.com / admin123, shg@templecycle.com / shg123, buyer@templecycle.com / buyer123, csr@templecycle.com / csr123")
}

func demoProducts(shgID string, now time.Time) []entity.Product {
	return []entity.Product{
		{
			ID:          uuid.NewString(),
			SHGID:       shgID,
			Name:        "Premium Incense-Grade Marigold Powder",
			Category:    entity.CategoryIncensePowder,
			Description: "Fine-ground marigold powder ideal for agarbatti manufacturing. Sourced from temple offerings across Thanjavur district.",
			Specifications: entity.ProductSpecs{
				MoistureContent: 8, MeshSize: "80-100 mesh", Purity: 98,
				ShelfLife: "12 months", StorageConditions: "Cool, dry place away from sunlight",
			},
			Availability:   entity.Availability{MonthlyAvailabilityTonnes: 25, MOQKg: 500, LeadTimeDays: 7},
			Pricing:        entity.Pricing{PriceMin: decimal.NewFromInt(45), PriceMax: decimal.NewFromInt(65)},
			Certifications: []string{"ISO 9001", "NPOP Organic"},
			Status:         entity.ProductAvailable,
			Images:         []string{"https://images.unsplash.com/photo-1600298881974-6be191ceeda1?w=400&h=300&fit=crop"},
			Temple:         entity.TempleInfo{Name: "Sri Meenakshi Temple", Location: "Madurai", District: "Madurai"},
			Sustainability: entity.Sustainability{WasteDivertedKg: 25000, CO2SavedKg: 1250, WaterSavedL: 5000},
			CreatedAt:      now,
			UpdatedAt:      now,
		},
		{
			ID:          uuid.NewString(),
			SHGID:       shgID,
			Name:        "Temple Flower Vermicompost",
			Category:    entity.CategoryCompost,
			Description: "Nutrient-rich organic vermicompost processed from temple floral waste. NPK balanced for optimal plant growth.",
			Specifications: entity.ProductSpecs{
				MoistureContent: 35, Purity: 95,
				ShelfLife: "24 months", StorageConditions: "Dry storage, protected from rain",
			},
			Availability:   entity.Availability{MonthlyAvailabilityTonnes: 120, MOQKg: 1000, LeadTimeDays: 5},
			Pricing:        entity.Pricing{PriceMin: decimal.NewFromInt(8), PriceMax: decimal.NewFromInt(12)},
			Certifications: []string{"NPOP Organic", "FSSAI"},
			Status:         entity.ProductAvailable,
			Images:         []string{"https://images.unsplash.com/photo-1416879595882-3373a0480b5b?w=400&h=300&fit=crop"},
			Temple:         entity.TempleInfo{Name: "Thiruparankundram Temple", Location: "Madurai", District: "Madurai"},
			Sustainability: entity.Sustainability{WasteDivertedKg: 120000, CO2SavedKg: 6000, WaterSavedL: 24000},
			CreatedAt:      now,
			UpdatedAt:      now,
		},
		{
			ID:          uuid.NewString(),
			SHGID:       shgID,
			Name:        "Marigold Yellow Dye Extract",
			Category:    entity.CategoryNaturalDye,
			Description: "Natural yellow-orange dye extracted from temple marigolds. Ideal for textile and fabric dyeing.",
			Specifications: entity.ProductSpecs{
				MoistureContent: 5, MeshSize: "Liquid concentrate", Purity: 92,
				ShelfLife: "18 months", StorageConditions: "Refrigerated storage at 4C",
			},
			Availability:   entity.Availability{MonthlyAvailabilityTonnes: 5, MOQKg: 50, LeadTimeDays: 14},
			Pricing:        entity.Pricing{PriceMin: decimal.NewFromInt(450), PriceMax: decimal.NewFromInt(600)},
			Certifications: []string{"GOTS", "OEKO-TEX"},
			Status:         entity.ProductLimited,
			Images:         []string{"https://images.unsplash.com/photo-1558618666-fcd25c85cd64?w=400&h=300&fit=crop"},
			Temple:         entity.TempleInfo{Name: "Alagar Kovil", Location: "Madurai", District: "Madurai"},
			Sustainability: entity.Sustainability{WasteDivertedKg: 5000, CO2SavedKg: 250, WaterSavedL: 1000},
			CreatedAt:      now,
			UpdatedAt:      now,
		},
	}
}

func demoImpactMetric(now time.Time) *entity.ImpactMetric {
	return &entity.ImpactMetric{
		ID:     uuid.NewString(),
		Date:   now,
		Period: entity.PeriodMonthly,
		Waste: entity.WasteManagement{
			FlowersCollectedKg:          520,
			FlowersProcessedKg:          495,
			WasteDivertedFromLandfillKg: 495,
		},
		Environmental: entity.EnvironmentalImpact{
			CO2EmissionsAvoidedKg:      1842,
			WaterSavedLiters:           19800,
			ChemicalFertilizersAvoided: 2475,
		},
		Social: entity.SocialImpact{
			WomenEmployed:       12450,
			SHGUnitsActive:      456,
			TemplesOnboarded:    2847,
			DistrictsActive:     32,
			FairWageJobsCreated: 8900,
		},
		Economic: entity.EconomicImpact{
			RevenueGeneratedINR:      4250000,
			SHGEarningsINR:           2125000,
			CostSavingsForTemplesINR: 850000,
		},
		Districts: []entity.DistrictData{
			{DistrictName: "Thanjavur", TemplesCount: 485, FlowersCollectedKg: 120, SHGUnits: 85, WomenEmployed: 3200},
			{DistrictName: "Madurai", TemplesCount: 412, FlowersCollectedKg: 145, SHGUnits: 92, WomenEmployed: 3450},
			{DistrictName: "Tirunelveli", TemplesCount: 328, FlowersCollectedKg: 98, SHGUnits: 68, WomenEmployed: 2560},
			{DistrictName: "Salem", TemplesCount: 296, FlowersCollectedKg: 87, SHGUnits: 61, WomenEmployed: 1890},
			{DistrictName: "Trichy", TemplesCount: 275, FlowersCollectedKg: 70, SHGUnits: 54, WomenEmployed: 1350},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func demoTraceability(productID, shgID string, now time.Time) *entity.Traceability {
	batchNumber := "TC-" + now.Format("20060102") + "-0001"
	return &entity.Traceability{
		ID:          uuid.NewString(),
		ProductID:   productID,
		BatchNumber: batchNumber,
		SupplyChain: []entity.SupplyChainStage{
			{
				Stage:     entity.StageCollection,
				Location:  entity.StageLocation{Name: "Sri Meenakshi Temple", Address: "Meenakshi Temple, Madurai"},
				Timestamp: now.Add(-72 * time.Hour),
				Details:   "85 kg fresh marigold, rose and jasmine collected and segregated",
			},
			{
				Stage:     entity.StageProcessing,
				Location:  entity.StageLocation{Name: "Madurai SHG Center"},
				Timestamp: now.Add(-24 * time.Hour),
				HandlerID: shgID,
				Details:   "Solar drying 48h, industrial grinding 4h, 12 workers",
			},
		},
		Temple: entity.TempleSource{
			TempleName:      "Sri Meenakshi Temple",
			District:        "Madurai",
			CollectionDate:  now.Add(-72 * time.Hour).Format("2006-01-02"),
			FlowersWeightKg: 85,
		},
		Processing: entity.SHGProcessing{
			SHGID:            shgID,
			ProcessingMethod: "Solar drying and grinding",
			ProcessingDate:   now.Add(-24 * time.Hour).Format("2006-01-02"),
		},
		QR: entity.QRCode{
			URL: "https://templecycle.example/api/impact/qr/" + batchNumber,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}
