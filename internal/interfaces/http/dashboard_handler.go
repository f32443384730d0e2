package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/templecycle/templecycle-api/internal/application/analytics"
)

// DashboardHandler serves the role dashboards.
type DashboardHandler struct {
	uc *analytics.UseCase
}

// NewDashboardHandler builds the handler.
func NewDashboardHandler(uc *analytics.UseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Admin godoc
// @Summary      Admin dashboard
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.Envelope{data=dto.AdminDashboardResponse}
// @Failure      403  {object}  dto.Envelope
// @Router       /api/dashboard/admin [get]
func (h *DashboardHandler) Admin(c *fiber.Ctx) error {
	out, err := h.uc.Admin(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "admin dashboard", out)
}

// SHG godoc
// @Summary      SHG dashboard
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.Envelope{data=dto.SHGDashboardResponse}
// @Failure      403  {object}  dto.Envelope
// @Router       /api/dashboard/shg [get]
func (h *DashboardHandler) SHG(c *fiber.Ctx) error {
	out, err := h.uc.SHG(c.UserContext(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "shg dashboard", out)
}

// Buyer godoc
// @Summary      Buyer dashboard
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.Envelope{data=dto.BuyerDashboardResponse}
// @Failure      403  {object}  dto.Envelope
// @Router       /api/dashboard/buyer [get]
func (h *DashboardHandler) Buyer(c *fiber.Ctx) error {
	out, err := h.uc.Buyer(c.UserContext(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "buyer dashboard", out)
}
