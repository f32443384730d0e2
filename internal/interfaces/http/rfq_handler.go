package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/templecycle/templecycle-api/internal/application/dto"
	"github.com/templecycle/templecycle-api/internal/application/rfq"
)

// RFQHandler handles the request-for-quote workflow.
type RFQHandler struct {
	uc *rfq.UseCase
}

// NewRFQHandler builds the handler.
func NewRFQHandler(uc *rfq.UseCase) *RFQHandler {
	return &RFQHandler{uc: uc}
}

// Create godoc
// @Summary      Open an RFQ
// @Tags         rfq
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateRFQRequest  true  "RFQ data"
// @Success      201   {object}  dto.Envelope{data=dto.RFQResponse}
// @Failure      400   {object}  dto.Envelope
// @Failure      404   {object}  dto.Envelope
// @Router       /api/rfq [post]
func (h *RFQHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateRFQRequest
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
	return respond(c, fiber.StatusCreated, "rfq created", out)
}

// List godoc
// @Summary      List visible RFQs
// @Tags         rfq
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "Status filter"
// @Param        page    query  int     false  "Page"   default(1)
// @Param        limit   query  int     false  "Limit"  default(20)
// @Success      200  {object}  dto.Envelope{data=dto.RFQListResponse}
// @Router       /api/rfq [get]
func (h *RFQHandler) List(c *fiber.Ctx) error {
	var q dto.RFQListQuery
	if err := c.QueryParser(&q); err != nil {
		return respondInvalid(c, []string{"invalid query parameters"})
	}
	out, err := h.uc.List(c.UserContext(), GetActor(c), q)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "rfqs", out)
}

// ListMine godoc
// @Summary      Own RFQs
// @Tags         rfq
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "Status filter"
// @Param        page    query  int     false  "Page"   default(1)
// @Param        limit   query  int     false  "Limit"  default(20)
// @Success      200  {object}  dto.Envelope{data=dto.RFQListResponse}
// @Router       /api/rfq/my [get]
func (h *RFQHandler) ListMine(c *fiber.Ctx) error {
	var q dto.RFQListQuery
	if err := c.QueryParser(&q); err != nil {
		return respondInvalid(c, []string{"invalid query parameters"})
	}
	out, err := h.uc.ListMine(c.UserContext(), GetUserID(c), q)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "rfqs", out)
}

// GetByID godoc
// @Summary      RFQ details
// @Tags         rfq
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "RFQ id"
// @Success      200  {object}  dto.Envelope{data=dto.RFQResponse}
// @Failure      403  {object}  dto.Envelope
// @Failure      404  {object}  dto.Envelope
// @Router       /api/rfq/{id} [get]
func (h *RFQHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), GetActor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "rfq", out)
}

// SubmitQuote godoc
// @Summary      Submit a quote
// @Tags         rfq
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "RFQ id"
// @Param        body  body  dto.SubmitQuoteRequest  true  "Quote data"
// @Success      200   {object}  dto.Envelope{data=dto.RFQResponse}
// @Failure      400   {object}  dto.Envelope
// @Failure      403   {object}  dto.Envelope
// @Failure      409   {object}  dto.Envelope
// @Router       /api/rfq/{id}/quote [post]
func (h *RFQHandler) SubmitQuote(c *fiber.Ctx) error {
	var in dto.SubmitQuoteRequest
	if err := c.BodyParser(&in); err != nil {
		return respondInvalid(c, []string{"invalid request body"})
	}
	if errs := in.Validate(); len(errs) > 0 {
		return respondInvalid(c, errs)
	}
	out, err := h.uc.SubmitQuote(c.UserContext(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "quote submitted", out)
}

// UpdateStatus godoc
// @Summary      Move RFQ status
// @Tags         rfq
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "RFQ id"
// @Param        body  body  dto.UpdateRFQStatusRequest  true  "Target status"
// @Success      200   {object}  dto.Envelope{data=dto.RFQResponse}
// @Failure      400   {object}  dto.Envelope
// @Failure      403   {object}  dto.Envelope
// @Router       /api/rfq/{id}/status [put]
func (h *RFQHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateRFQStatusRequest
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
	return respond(c, fiber.StatusOK, "rfq status updated", out)
}
