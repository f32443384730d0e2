package catalog_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/templecycle/templecycle-api/internal/application/catalog"
	"github.com/templecycle/templecycle-api/internal/application/dto"
	"github.com/templecycle/templecycle-api/internal/domain"
	"github.com/templecycle/templecycle-api/internal/domain/authz"
	"github.com/templecycle/templecycle-api/internal/domain/entity"
	"github.com/templecycle/templecycle-api/internal/infrastructure/memory"
)

type catalogFixture struct {
	uc  *catalog.UseCase
	shg authz.Actor
}

func newCatalogFixture(t *testing.T) *catalogFixture {
	t.Helper()
	store := memory.NewStore()
	users := memory.NewUserRepository(store)
	products := memory.NewProductRepository(store)

	now := time.Now()
	shg := &entity.User{ID: uuid.NewString(), Name: "Meenakshi SHG", Email: "shg@test.in", Role: entity.RoleSHG, Organization: "Meenakshi SHG", IsActive: true, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, users.Create(context.Background(), shg))

	return &catalogFixture{
		uc:  catalog.NewUseCase(products, users),
		shg: authz.Actor{ID: shg.ID, Role: shg.Role},
	}
}

func (f *catalogFixture) createProduct(t *testing.T, name, category string, min, max int64) *dto.ProductResponse {
	t.Helper()
	out, err := f.uc.Create(context.Background(), f.shg, dto.CreateProductRequest{
		Name:     name,
		Category: category,
		Status:   entity.ProductAvailable,
		Pricing: entity.Pricing{
			PriceMin: decimal.NewFromInt(min),
			PriceMax: decimal.NewFromInt(max),
		},
	})
	require.NoError(t, err)
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// CRUD and ownership
// ──────────────────────────────────────────────────────────────────────────────

func TestCatalogCreate_OwnedByActor(t *testing.T) {
	f := newCatalogFixture(t)
	out := f.createProduct(t, "Marigold Powder", entity.CategoryIncensePowder, 45, 65)

	require.NotNil(t, out.SHG)
	assert.Equal(t, f.shg.ID, out.SHG.ID, "the creating shg owns the product")
	assert.Equal(t, "Meenakshi SHG", out.SHG.Organization)
}

func TestCatalogUpdate_ForeignSHGRefused(t *testing.T) {
	f := newCatalogFixture(t)
	created := f.createProduct(t, "Marigold Powder", entity.CategoryIncensePowder, 45, 65)

	stranger := authz.Actor{ID: uuid.NewString(), Role: entity.RoleSHG}
	name := "Hijacked"
	_, err := f.uc.Update(context.Background(), stranger, created.ID, dto.UpdateProductRequest{Name: &name})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestCatalogUpdate_PartialPatch(t *testing.T) {
	f := newCatalogFixture(t)
	created := f.createProduct(t, "Marigold Powder", entity.CategoryIncensePowder, 45, 65)

	status := entity.ProductOutOfStock
	out, err := f.uc.Update(context.Background(), f.shg, created.ID, dto.UpdateProductRequest{Status: &status})
	require.NoError(t, err)

	assert.Equal(t, entity.ProductOutOfStock, out.Status)
	assert.Equal(t, "Marigold Powder", out.Name, "untouched fields keep their values")
	assert.True(t, out.Pricing.PriceMin.Equal(decimal.NewFromInt(45)))
}

func TestCatalogDelete_AdminBypassesOwnership(t *testing.T) {
	f := newCatalogFixture(t)
	created := f.createProduct(t, "Marigold Powder", entity.CategoryIncensePowder, 45, 65)

	admin := authz.Actor{ID: uuid.NewString(), Role: entity.RoleAdmin}
	require.NoError(t, f.uc.Delete(context.Background(), admin, created.ID))

	_, err := f.uc.GetByID(context.Background(), created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Listing and filters
// ──────────────────────────────────────────────────────────────────────────────

func TestCatalogList_CategoryAndPriceFilters(t *testing.T) {
	f := newCatalogFixture(t)
	f.createProduct(t, "Marigold Powder", entity.CategoryIncensePowder, 45, 65)
	f.createProduct(t, "Vermicompost", entity.CategoryCompost, 8, 12)
	f.createProduct(t, "Dye Extract", entity.CategoryNaturalDye, 450, 600)
	ctx := context.Background()

	out, err := f.uc.List(ctx, dto.ProductListQuery{Category: entity.CategoryCompost})
	require.NoError(t, err)
	require.Len(t, out.Products, 1)
	assert.Equal(t, "Vermicompost", out.Products[0].Name)

	// Range queries match on overlap with [minPrice, maxPrice].
	out, err = f.uc.List(ctx, dto.ProductListQuery{
		MinPrice: decimal.NewFromInt(40),
		MaxPrice: decimal.NewFromInt(100),
	})
	require.NoError(t, err)
	require.Len(t, out.Products, 1)
	assert.Equal(t, "Marigold Powder", out.Products[0].Name)
}

func TestCatalogList_SearchMatchesName(t *testing.T) {
	f := newCatalogFixture(t)
	f.createProduct(t, "Marigold Powder", entity.CategoryIncensePowder, 45, 65)
	f.createProduct(t, "Vermicompost", entity.CategoryCompost, 8, 12)

	out, err := f.uc.List(context.Background(), dto.ProductListQuery{Search: "marigold"})
	require.NoError(t, err)
	require.Len(t, out.Products, 1, "search is case-insensitive")
	assert.Equal(t, "Marigold Powder", out.Products[0].Name)
}

func TestCatalogList_Pagination(t *testing.T) {
	f := newCatalogFixture(t)
	for i := 0; i < 5; i++ {
		f.createProduct(t, "Product "+string(rune('A'+i)), entity.CategoryCompost, 10, 20)
	}

	q := dto.ProductListQuery{}
	q.Page = 2
	q.Limit = 2
	out, err := f.uc.List(context.Background(), q)
	require.NoError(t, err)

	assert.Len(t, out.Products, 2)
	assert.Equal(t, int64(5), out.Pagination.Total)
	assert.Equal(t, 3, out.Pagination.Pages)
	assert.Equal(t, 2, out.Pagination.Current)
}

func TestCatalogListMine_OnlyOwnProducts(t *testing.T) {
	f := newCatalogFixture(t)
	f.createProduct(t, "Marigold Powder", entity.CategoryIncensePowder, 45, 65)

	out, err := f.uc.ListMine(context.Background(), f.shg.ID, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, out.Products, 1)

	out, err = f.uc.ListMine(context.Background(), uuid.NewString(), dto.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, out.Products)
}

// ──────────────────────────────────────────────────────────────────────────────
// Request validation
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateProductRequest_Validate(t *testing.T) {
	r := dto.CreateProductRequest{
		Name:     "Marigold Powder",
		Category: entity.CategoryIncensePowder,
		Pricing:  entity.Pricing{PriceMin: decimal.NewFromInt(45), PriceMax: decimal.NewFromInt(65)},
	}
	assert.Empty(t, r.Validate())
	assert.Equal(t, entity.ProductAvailable, r.Status, "status defaults to available")

	bad := dto.CreateProductRequest{
		Name:     "x",
		Category: "pottery",
		Pricing:  entity.Pricing{PriceMin: decimal.NewFromInt(65), PriceMax: decimal.NewFromInt(45)},
	}
	errs := bad.Validate()
	assert.Len(t, errs, 3, "short name, unknown category and inverted range all reported")
}
