package handlers

import (
	"hcf-givehub/internal/core/services"
	"hcf-givehub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DashboardHandler handles dashboard endpoints
type DashboardHandler struct {
	dashboardService *services.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

// GetOverview returns staff dashboard data
// @Summary Staff Dashboard
// @Description Get campaign, project and donation overview (staff only)
// @Tags Dashboard
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /dashboard [get]
func (h *DashboardHandler) GetOverview(c *fiber.Ctx) error {
	data, err := h.dashboardService.GetOverview(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to get dashboard")
	}

	return response.Success(c, "Dashboard retrieved successfully", data)
}
