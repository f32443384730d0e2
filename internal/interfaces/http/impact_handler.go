package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/templecycle/templecycle-api/internal/application/dto"
	"github.com/templecycle/templecycle-api/internal/application/impact"
)

// ImpactHandler serves the impact and traceability endpoints. The summary
// and QR scan routes are public; metrics and traceability require a token.
type ImpactHandler struct {
	uc *impact.UseCase
}

// NewImpactHandler builds the handler.
func NewImpactHandler(uc *impact.UseCase) *ImpactHandler {
	return &ImpactHandler{uc: uc}
}

// Metrics godoc
// @Summary      Impact metrics
// @Tags         impact
// @Produce      json
// @Security     Bearer
// @Param        period  query  string  false  "daily|weekly|monthly|yearly"  default(monthly)
// @Param        from    query  string  false  "Window start (YYYY-MM-DD)"
// @Param        to      query  string  false  "Window end (YYYY-MM-DD)"
// @Success      200  {object}  dto.Envelope{data=dto.ImpactMetricsResponse}
// @Failure      400  {object}  dto.Envelope
// @Router       /api/impact/metrics [get]
func (h *ImpactHandler) Metrics(c *fiber.Ctx) error {
	var q dto.ImpactQuery
	if err := c.QueryParser(&q); err != nil {
		return respondInvalid(c, []string{"invalid query parameters"})
	}
	out, err := h.uc.Metrics(c.UserContext(), q)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "impact metrics", out)
}

// Summary godoc
// @Summary      Public impact headline figures
// @Tags         impact
// @Produce      json
// @Success      200  {object}  dto.Envelope{data=dto.ImpactSummaryResponse}
// @Router       /api/impact/public [get]
func (h *ImpactHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.Summary(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "impact summary", out)
}

// Traceability godoc
// @Summary      Batches for a product
// @Tags         impact
// @Produce      json
// @Security     Bearer
// @Param        productId  path  string  true  "Product id"
// @Success      200  {object}  dto.Envelope{data=[]dto.TraceabilityResponse}
// @Router       /api/impact/traceability/{productId} [get]
func (h *ImpactHandler) Traceability(c *fiber.Ctx) error {
	out, err := h.uc.TraceabilityByProduct(c.UserContext(), c.Params("productId"))
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "traceability", out)
}

// Scan godoc
// @Summary      Resolve a QR batch scan
// @Tags         impact
// @Produce      json
// @Param        batchNumber  path  string  true  "Batch number"
// @Success      200  {object}  dto.Envelope{data=dto.ScanResponse}
// @Failure      404  {object}  dto.Envelope
// @Router       /api/impact/qr/{batchNumber} [post]
func (h *ImpactHandler) Scan(c *fiber.Ctx) error {
	out, err := h.uc.Scan(c.UserContext(), c.Params("batchNumber"))
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "batch", out)
}
