package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/templecycle/templecycle-api/internal/application/dto"
	"github.com/templecycle/templecycle-api/internal/domain"
	"github.com/templecycle/templecycle-api/internal/domain/authz"
	"github.com/templecycle/templecycle-api/internal/domain/entity"
	"github.com/templecycle/templecycle-api/internal/domain/repository"
)

// UseCase catalog CRUD. Writes are gated on product ownership via the
// authz predicate; reads are public.
type UseCase struct {
	products repository.ProductRepository
	users    repository.UserRepository
}

// NewUseCase builds the catalog use case.
func NewUseCase(products repository.ProductRepository, users repository.UserRepository) *UseCase {
	return &UseCase{products: products, users: users}
}

// Create registers a product owned by the shg actor. Admins may create too;
// the product is then owned by the admin account, matching the ownership
// rules everywhere else.
func (uc *UseCase) Create(ctx context.Context, actor authz.Actor, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	now := time.Now()
	product := &entity.Product{
		ID:             uuid.New().String(),
		SHGID:          actor.ID,
		Name:           in.Name,
		Category:       in.Category,
		Description:    in.Description,
		Specifications: in.Specifications,
		Availability:   in.Availability,
		Pricing:        in.Pricing,
		Certifications: in.Certifications,
		Status:         in.Status,
		Images:         in.Images,
		Temple:         in.Temple,
		Sustainability: in.Sustainability,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.products.Create(ctx, product); err != nil {
		return nil, err
	}
	return uc.toResponse(ctx, product), nil
}

// GetByID returns one product with its shg summary populated.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return uc.toResponse(ctx, product), nil
}

// List returns the filtered, paged catalog.
func (uc *UseCase) List(ctx context.Context, q dto.ProductListQuery) (*dto.ProductListResponse, error) {
	q.Normalize()
	f := repository.ProductFilter{
		Category: q.Category,
		Status:   q.Status,
		Search:   q.Search,
		SHGID:    q.SHG,
		MinPrice: q.MinPrice,
		MaxPrice: q.MaxPrice,
		HasPrice: !q.MinPrice.IsZero() || !q.MaxPrice.IsZero(),
		Limit:    q.Limit,
		Offset:   q.Offset(),
		SortBy:   q.SortBy,
		SortDesc: q.Order != "asc",
	}
	return uc.list(ctx, f, q.Page, q.Limit)
}

// ListMine returns the actor's own products, paged.
func (uc *UseCase) ListMine(ctx context.Context, actorID string, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.Normalize()
	f := repository.ProductFilter{
		SHGID:    actorID,
		Limit:    page.Limit,
		Offset:   page.Offset(),
		SortDesc: true,
	}
	return uc.list(ctx, f, page.Page, page.Limit)
}

func (uc *UseCase) list(ctx context.Context, f repository.ProductFilter, page, limit int) (*dto.ProductListResponse, error) {
	list, err := uc.products.List(ctx, f)
	if err != nil {
		return nil, err
	}
	total, err := uc.products.Count(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *uc.toResponse(ctx, p))
	}
	return &dto.ProductListResponse{
		Products:   items,
		Pagination: dto.NewPagination(page, limit, total),
	}, nil
}

// Update mutates the whitelisted fields. Owner or admin only.
func (uc *UseCase) Update(ctx context.Context, actor authz.Actor, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if !authz.Can(actor, authz.ActionManageProduct, authz.ProductResource(product)) {
		return nil, domain.ErrForbidden
	}

	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Specifications != nil {
		product.Specifications = *in.Specifications
	}
	if in.Availability != nil {
		product.Availability = *in.Availability
	}
	if in.Pricing != nil {
		product.Pricing = *in.Pricing
	}
	if in.Certifications != nil {
		product.Certifications = *in.Certifications
	}
	if in.Status != nil {
		product.Status = *in.Status
	}
	if in.Images != nil {
		product.Images = *in.Images
	}
	if in.Temple != nil {
		product.Temple = *in.Temple
	}
	if in.Sustainability != nil {
		product.Sustainability = *in.Sustainability
	}
	product.UpdatedAt = time.Now()

	if err := uc.products.Update(ctx, product); err != nil {
		return nil, err
	}
	return uc.toResponse(ctx, product), nil
}

// Delete removes a product. Owner or admin only.
func (uc *UseCase) Delete(ctx context.Context, actor authz.Actor, id string) error {
	product, err := uc.products.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	if !authz.Can(actor, authz.ActionManageProduct, authz.ProductResource(product)) {
		return domain.ErrForbidden
	}
	return uc.products.Delete(ctx, id)
}

// toResponse maps a product and best-effort populates the owning shg. A
// missing owner record never fails the read.
func (uc *UseCase) toResponse(ctx context.Context, p *entity.Product) *dto.ProductResponse {
	resp := &dto.ProductResponse{
		ID:             p.ID,
		Name:           p.Name,
		Category:       p.Category,
		Description:    p.Description,
		Specifications: p.Specifications,
		Availability:   p.Availability,
		Pricing:        p.Pricing,
		Certifications: p.Certifications,
		Status:         p.Status,
		Images:         p.Images,
		Temple:         p.Temple,
		Sustainability: p.Sustainability,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
	if shg, err := uc.users.GetByID(ctx, p.SHGID); err == nil && shg != nil {
		resp.SHG = &dto.UserSummary{
			ID:           shg.ID,
			Name:         shg.Name,
			Organization: shg.Organization,
		}
	}
	return resp
}
