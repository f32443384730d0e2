package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/templecycle/templecycle-api/internal/application/dto"
	"github.com/templecycle/templecycle-api/internal/application/order"
)

// OrderHandler handles the order lifecycle.
type OrderHandler struct {
	uc *order.UseCase
}

// NewOrderHandler builds the handler.
func NewOrderHandler(uc *order.UseCase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// Create godoc
// @Summary      Create order from accepted RFQ
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "Order data"
// @Success      201   {object}  dto.Envelope{data=dto.OrderResponse}
// @Failure      400   {object}  dto.Envelope
// @Failure      403   {object}  dto.Envelope
// @Failure      404   {object}  dto.Envelope
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
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
	return respond(c, fiber.StatusCreated, "order created", out)
}

// List godoc
// @Summary      List visible orders
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "Status filter"
// @Param        page    query  int     false  "Page"   default(1)
// @Param        limit   query  int     false  "Limit"  default(20)
// @Success      200  {object}  dto.Envelope{data=dto.OrderListResponse}
// @Router       /api/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	var q dto.OrderListQuery
	if err := c.QueryParser(&q); err != nil {
		return respondInvalid(c, []string{"invalid query parameters"})
	}
	out, err := h.uc.List(c.UserContext(), GetActor(c), q)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "orders", out)
}

// GetByID godoc
// @Summary      Order details
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "Order id"
// @Success      200  {object}  dto.Envelope{data=dto.OrderResponse}
// @Failure      403  {object}  dto.Envelope
// @Failure      404  {object}  dto.Envelope
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), GetActor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "order", out)
}

// UpdateStatus godoc
// @Summary      Move order status
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Order id"
// @Param        body  body  dto.UpdateOrderStatusRequest  true  "Target status"
// @Success      200   {object}  dto.Envelope{data=dto.OrderResponse}
// @Failure      400   {object}  dto.Envelope
// @Failure      403   {object}  dto.Envelope
// @Router       /api/orders/{id}/status [put]
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateOrderStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return respondInvalid(c, []string{"invalid request body"})
	}
	if errs := in.Validate(); len(errs) > 0 {
		return respondInvalid(c, errs)
	}
	out, err := h.uc.UpdateStatus(c.UserContext(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "order status updated", out)
}

// AddPayment godoc
// @Summary      Record a payment
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Order id"
// @Param        body  body  dto.AddPaymentRequest  true  "Payment data"
// @Success      200   {object}  dto.Envelope{data=dto.OrderResponse}
// @Failure      400   {object}  dto.Envelope
// @Failure      403   {object}  dto.Envelope
// @Router       /api/orders/{id}/payment [post]
func (h *OrderHandler) AddPayment(c *fiber.Ctx) error {
	var in dto.AddPaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return respondInvalid(c, []string{"invalid request body"})
	}
	if errs := in.Validate(); len(errs) > 0 {
		return respondInvalid(c, errs)
	}
	out, err := h.uc.AddPayment(c.UserContext(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "payment recorded", out)
}

// UploadDocument godoc
// @Summary      Attach a document
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Order id"
// @Param        body  body  dto.UploadDocumentRequest  true  "Document type and URL"
// @Success      200   {object}  dto.Envelope{data=dto.OrderResponse}
// @Failure      400   {object}  dto.Envelope
// @Failure      403   {object}  dto.Envelope
// @Router       /api/orders/{id}/documents [post]
func (h *OrderHandler) UploadDocument(c *fiber.Ctx) error {
	var in dto.UploadDocumentRequest
	if err := c.BodyParser(&in); err != nil {
		return respondInvalid(c, []string{"invalid request body"})
	}
	if errs := in.Validate(); len(errs) > 0 {
		return respondInvalid(c, errs)
	}
	out, err := h.uc.UploadDocument(c.UserContext(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "document attached", out)
}

// Invoice godoc
// @Summary      Order invoice PDF
// @Tags         orders
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "Order id"
// @Success      200  {file}    binary
// @Failure      403  {object}  dto.Envelope
// @Failure      404  {object}  dto.Envelope
// @Router       /api/orders/{id}/invoice.pdf [get]
func (h *OrderHandler) Invoice(c *fiber.Ctx) error {
	pdfBytes, err := h.uc.Invoice(c.UserContext(), GetActor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="invoice.pdf"`)
	return c.Send(pdfBytes)
}
