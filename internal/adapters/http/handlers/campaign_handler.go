package handlers

import (
	"errors"
	"strings"

	"hcf-givehub/internal/core/services"
	"hcf-givehub/internal/pkg/pagination"
	"hcf-givehub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// CampaignHandler handles campaign endpoints
type CampaignHandler struct {
	campaignService *services.CampaignService
}

// NewCampaignHandler creates a new campaign handler
func NewCampaignHandler(campaignService *services.CampaignService) *CampaignHandler {
	return &CampaignHandler{campaignService: campaignService}
}

// CreateCampaignRequest represents create campaign request body
type CreateCampaignRequest struct {
	Name       string  `json:"name"`
	GoalAmount float64 `json:"goal_amount"`
	StartDate  string  `json:"start_date"`
	EndDate    string  `json:"end_date"`
}

// SetStatusRequest represents set status request body
type SetStatusRequest struct {
	Status string `json:"status"`
}

// Create handles campaign creation
// @Summary Create campaign
// @Description Create a new fundraising campaign (staff only)
// @Tags Campaigns
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateCampaignRequest true "Campaign data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /campaigns [post]
func (h *CampaignHandler) Create(c *fiber.Ctx) error {
	var req CreateCampaignRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	// Validate required fields
	if strings.TrimSpace(req.Name) == "" {
		return response.BadRequest(c, "Campaign name is required")
	}
	if req.GoalAmount <= 0 {
		return response.BadRequest(c, "Goal amount must be greater than zero")
	}
	if req.StartDate == "" || req.EndDate == "" {
		return response.BadRequest(c, "Start date and end date are required")
	}

	// Get staff profile ID from context (set by auth middleware)
	staffID, ok := c.Locals("profileID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	input := &services.CreateCampaignInput{
		Name:       strings.TrimSpace(req.Name),
		GoalAmount: req.GoalAmount,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
	}

	campaign, err := h.campaignService.Create(c.Context(), input, staffID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidGoalAmount):
			return response.BadRequest(c, "Goal amount must be greater than zero")
		case errors.Is(err, services.ErrInvalidDate):
			return response.BadRequest(c, "Dates must be in YYYY-MM-DD format")
		case errors.Is(err, services.ErrInvalidDateRange):
			return response.BadRequest(c, "Start date must be before end date")
		case errors.Is(err, services.ErrCampaignNameTaken):
			return response.Conflict(c, "Campaign name already used")
		default:
			return response.InternalServerError(c, "Failed to create campaign")
		}
	}

	return response.Created(c, "Campaign created successfully", fiber.Map{
		"campaign": campaign,
	})
}

// List handles campaign listing
// @Summary List campaigns
// @Description List all campaigns with pagination
// @Tags Campaigns
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Router /campaigns [get]
func (h *CampaignHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	campaigns, total, err := h.campaignService.List(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list campaigns")
	}

	return response.Success(c, "Campaigns retrieved successfully",
		pagination.NewResponse(campaigns, params, total))
}

// ListActive handles active campaign listing
// @Summary List active campaigns
// @Description List campaigns currently accepting donations
// @Tags Campaigns
// @Accept json
// @Produce json
// @Success 200 {object} response.Response
// @Router /campaigns/active [get]
func (h *CampaignHandler) ListActive(c *fiber.Ctx) error {
	campaigns, err := h.campaignService.ListActive(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list active campaigns")
	}

	return response.Success(c, "Active campaigns retrieved successfully", fiber.Map{
		"campaigns": campaigns,
	})
}

// FinancialSummary handles the financial summary report
// @Summary Campaign financial summary
// @Description Goal attainment report across all campaigns (staff only)
// @Tags Campaigns
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /campaigns/financial-summary [get]
func (h *CampaignHandler) FinancialSummary(c *fiber.Ctx) error {
	summary, err := h.campaignService.FinancialSummary(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to build financial summary")
	}

	return response.Success(c, "Financial summary retrieved successfully", fiber.Map{
		"campaigns": summary,
	})
}

// GetByID handles fetching one campaign
// @Summary Get campaign
// @Description Get a campaign by ID
// @Tags Campaigns
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Campaign ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /campaigns/{id} [get]
func (h *CampaignHandler) GetByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid campaign ID")
	}

	campaign, err := h.campaignService.GetByID(c.Context(), uint(id))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCampaignNotFound):
			return response.NotFound(c, "Campaign not found")
		default:
			return response.InternalServerError(c, "Failed to get campaign")
		}
	}

	return response.Success(c, "Campaign retrieved successfully", fiber.Map{
		"campaign": campaign,
	})
}

// SetStatus handles campaign status changes
// @Summary Set campaign status
// @Description Move a campaign to ACTIVE, COMPLETED or CANCELLED (staff only)
// @Tags Campaigns
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Campaign ID"
// @Param body body SetStatusRequest true "New status"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /campaigns/{id}/status [patch]
func (h *CampaignHandler) SetStatus(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid campaign ID")
	}

	var req SetStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Status == "" {
		return response.BadRequest(c, "Status is required")
	}

	campaign, err := h.campaignService.SetStatus(c.Context(), uint(id), strings.ToUpper(strings.TrimSpace(req.Status)))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidStatus):
			return response.BadRequest(c, "Status must be ACTIVE, COMPLETED or CANCELLED")
		case errors.Is(err, services.ErrCampaignNotFound):
			return response.NotFound(c, "Campaign not found")
		default:
			return response.InternalServerError(c, "Failed to set campaign status")
		}
	}

	return response.Success(c, "Campaign status updated successfully", fiber.Map{
		"campaign": campaign,
	})
}
