package handlers

import (
	"errors"
	"strings"

	"hcf-givehub/internal/core/domain"
	"hcf-givehub/internal/core/services"
	"hcf-givehub/internal/pkg/pagination"
	"hcf-givehub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ProjectHandler handles project endpoints
type ProjectHandler struct {
	projectService *services.ProjectService
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(projectService *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

// CreateProjectRequest represents create project request body
type CreateProjectRequest struct {
	Name       string  `json:"name"`
	Budget     float64 `json:"budget"`
	StartDate  string  `json:"start_date"`
	CampaignID *uint   `json:"campaign_id"`
}

// RecordExpenseRequest represents record expense request body
type RecordExpenseRequest struct {
	Amount float64 `json:"amount"`
}

// LinkCampaignRequest represents link campaign request body
type LinkCampaignRequest struct {
	CampaignID uint `json:"campaign_id"`
}

// Create handles project creation
// @Summary Create project
// @Description Create a new spending project (staff only)
// @Tags Projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateProjectRequest true "Project data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /projects [post]
func (h *ProjectHandler) Create(c *fiber.Ctx) error {
	var req CreateProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	// Validate required fields
	if strings.TrimSpace(req.Name) == "" {
		return response.BadRequest(c, "Project name is required")
	}
	if req.Budget <= 0 {
		return response.BadRequest(c, "Budget must be greater than zero")
	}
	if req.StartDate == "" {
		return response.BadRequest(c, "Start date is required")
	}

	// Get staff profile ID from context (set by auth middleware)
	staffID, ok := c.Locals("profileID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	input := &services.CreateProjectInput{
		Name:       strings.TrimSpace(req.Name),
		Budget:     req.Budget,
		StartDate:  req.StartDate,
		CampaignID: req.CampaignID,
	}

	project, err := h.projectService.Create(c.Context(), input, staffID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidBudget):
			return response.BadRequest(c, "Budget must be greater than zero")
		case errors.Is(err, services.ErrInvalidDate):
			return response.BadRequest(c, "Start date must be in YYYY-MM-DD format")
		case errors.Is(err, services.ErrCampaignNotFound):
			return response.NotFound(c, "Campaign not found")
		default:
			return response.InternalServerError(c, "Failed to create project")
		}
	}

	return response.Created(c, "Project created successfully", fiber.Map{
		"project": project,
	})
}

// List handles project listing
// @Summary List projects
// @Description List all projects with pagination (staff only)
// @Tags Projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Router /projects [get]
func (h *ProjectHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	projects, total, err := h.projectService.List(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list projects")
	}

	return response.Success(c, "Projects retrieved successfully",
		pagination.NewResponse(projects, params, total))
}

// Progress handles the budget progress report
// @Summary Project progress
// @Description Budget consumption report across all projects (staff only)
// @Tags Projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /projects/progress [get]
func (h *ProjectHandler) Progress(c *fiber.Ctx) error {
	report, err := h.projectService.Progress(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to build progress report")
	}

	return response.Success(c, "Project progress retrieved successfully", fiber.Map{
		"projects": report,
	})
}

// GetByID handles fetching one project
// @Summary Get project
// @Description Get a project by ID (staff only)
// @Tags Projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /projects/{id} [get]
func (h *ProjectHandler) GetByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid project ID")
	}

	project, err := h.projectService.GetByID(c.Context(), uint(id))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrProjectNotFound):
			return response.NotFound(c, "Project not found")
		default:
			return response.InternalServerError(c, "Failed to get project")
		}
	}

	return response.Success(c, "Project retrieved successfully", fiber.Map{
		"project": project,
	})
}

// RecordExpense handles booking an expense against a project
// @Summary Record expense
// @Description Record an expense against a project budget (staff only)
// @Tags Projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Param body body RecordExpenseRequest true "Expense amount"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /projects/{id}/expense [patch]
func (h *ProjectHandler) RecordExpense(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid project ID")
	}

	var req RecordExpenseRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Amount <= 0 {
		return response.BadRequest(c, "Expense amount must be greater than zero")
	}

	project, err := h.projectService.RecordExpense(c.Context(), uint(id), req.Amount)
	if err != nil {
		var budgetErr *domain.BudgetExceededError
		switch {
		case errors.Is(err, services.ErrInvalidExpense):
			return response.BadRequest(c, "Expense amount must be greater than zero")
		case errors.Is(err, services.ErrProjectNotFound):
			return response.NotFound(c, "Project not found")
		case errors.As(err, &budgetErr):
			return response.ErrorWithData(c, fiber.StatusConflict, "Expense exceeds remaining budget", fiber.Map{
				"remaining": budgetErr.Remaining,
				"attempted": budgetErr.Attempted,
			})
		default:
			return response.InternalServerError(c, "Failed to record expense")
		}
	}

	return response.Success(c, "Expense recorded successfully", fiber.Map{
		"project": project,
	})
}

// LinkCampaign handles attaching a project to a campaign
// @Summary Link project to campaign
// @Description Attach a project to the campaign funding it (staff only)
// @Tags Projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Param body body LinkCampaignRequest true "Campaign to link"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /projects/{id}/link-campaign [patch]
func (h *ProjectHandler) LinkCampaign(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid project ID")
	}

	var req LinkCampaignRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.CampaignID < 1 {
		return response.BadRequest(c, "Campaign ID is required")
	}

	project, err := h.projectService.LinkCampaign(c.Context(), uint(id), req.CampaignID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrProjectNotFound):
			return response.NotFound(c, "Project not found")
		case errors.Is(err, services.ErrCampaignNotFound):
			return response.NotFound(c, "Campaign not found")
		default:
			return response.InternalServerError(c, "Failed to link project to campaign")
		}
	}

	return response.Success(c, "Project linked to campaign successfully", fiber.Map{
		"project": project,
	})
}
