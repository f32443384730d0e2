package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/templecycle/templecycle-api/internal/application/catalog"
	"github.com/templecycle/templecycle-api/internal/application/dto"
)

// ProductHandler handles catalog requests. Reads are public, writes are
// gated on shg/admin plus ownership in the use case.
type ProductHandler struct {
	uc *catalog.UseCase
}

// NewProductHandler builds the handler.
func NewProductHandler(uc *catalog.UseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// Create godoc
// @Summary      Create product
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Product data"
// @Success      201   {object}  dto.Envelope{data=dto.ProductResponse}
// @Failure      400   {object}  dto.Envelope
// @Failure      403   {object}  dto.Envelope
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return respondInvalid(c, []string{"invalid request body"})
	}
	if errs := in.Validate(); len(errs) > 0 {
		return respondInvalid(c, errs)
	}
	out, err := h.uc.Create(c.UserContext(), GetActor(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusCreated, "product created", out)
}

// List godoc
// @Summary      Browse catalog
// @Tags         products
// @Produce      json
// @Param        category  query  string  false  "Category filter"
// @Param        status    query  string  false  "Status filter"
// @Param        search    query  string  false  "Name/description search"
// @Param        minPrice  query  number  false  "Minimum price (INR/kg)"
// @Param        maxPrice  query  number  false  "Maximum price (INR/kg)"
// @Param        page      query  int     false  "Page"   default(1)
// @Param        limit     query  int     false  "Limit"  default(20)
// @Success      200  {object}  dto.Envelope{data=dto.ProductListResponse}
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	var q dto.ProductListQuery
	if err := c.QueryParser(&q); err != nil {
		return respondInvalid(c, []string{"invalid query parameters"})
	}
	out, err := h.uc.List(c.UserContext(), q)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "products", out)
}

// ListMine godoc
// @Summary      Own products
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        page   query  int  false  "Page"   default(1)
// @Param        limit  query  int  false  "Limit"  default(20)
// @Success      200  {object}  dto.Envelope{data=dto.ProductListResponse}
// @Router       /api/products/my [get]
func (h *ProductHandler) ListMine(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return respondInvalid(c, []string{"invalid query parameters"})
	}
	out, err := h.uc.ListMine(c.UserContext(), GetUserID(c), page)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "products", out)
}

// GetByID godoc
// @Summary      Product details
// @Tags         products
// @Produce      json
// @Param        id   path  string  true  "Product id"
// @Success      200  {object}  dto.Envelope{data=dto.ProductResponse}
// @Failure      404  {object}  dto.Envelope
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "product", out)
}

// Update godoc
// @Summary      Update product
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Product id"
// @Param        body  body  dto.UpdateProductRequest  true  "Fields to update"
// @Success      200   {object}  dto.Envelope{data=dto.ProductResponse}
// @Failure      403   {object}  dto.Envelope
// @Failure      404   {object}  dto.Envelope
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return respondInvalid(c, []string{"invalid request body"})
	}
	if errs := in.Validate(); len(errs) > 0 {
		return respondInvalid(c, errs)
	}
	out, err := h.uc.Update(c.UserContext(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "product updated", out)
}

// Delete godoc
// @Summary      Delete product
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "Product id"
// @Success      200  {object}  dto.Envelope
// @Failure      403  {object}  dto.Envelope
// @Failure      404  {object}  dto.Envelope
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetActor(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "product deleted", nil)
}
