package handlers

import (
	"errors"

	"hcf-givehub/internal/adapters/persistence/models"
	"hcf-givehub/internal/core/services"
	"hcf-givehub/internal/pkg/pagination"
	"hcf-givehub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DonationHandler handles donation endpoints
type DonationHandler struct {
	donationService *services.DonationService
}

// NewDonationHandler creates a new donation handler
func NewDonationHandler(donationService *services.DonationService) *DonationHandler {
	return &DonationHandler{donationService: donationService}
}

// RecordDonationRequest represents record donation request body
type RecordDonationRequest struct {
	CampaignID    uint    `json:"campaign_id"`
	Amount        float64 `json:"amount"`
	PaymentMethod string  `json:"payment_method"`
}

// Record handles donation recording
// @Summary Record donation
// @Description Donate to an active campaign (donor only)
// @Tags Donations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body RecordDonationRequest true "Donation data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /donations [post]
func (h *DonationHandler) Record(c *fiber.Ctx) error {
	var req RecordDonationRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	// Validate required fields
	if req.CampaignID < 1 {
		return response.BadRequest(c, "Campaign ID is required")
	}
	if req.Amount <= 0 {
		return response.BadRequest(c, "Donation amount must be greater than zero")
	}

	// Get donor profile ID from context (set by auth middleware)
	donorID, ok := c.Locals("profileID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	input := &services.RecordDonationInput{
		CampaignID:    req.CampaignID,
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
	}

	donation, err := h.donationService.Record(c.Context(), input, donorID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidAmount):
			return response.BadRequest(c, "Donation amount must be greater than zero")
		case errors.Is(err, services.ErrCampaignNotFound):
			return response.NotFound(c, "Campaign not found")
		case errors.Is(err, services.ErrCampaignNotActive):
			return response.Conflict(c, "Campaign is not accepting donations")
		default:
			return response.InternalServerError(c, "Failed to record donation")
		}
	}

	return response.Created(c, "Donation recorded successfully", fiber.Map{
		"donation": donation.ToResponse(),
	})
}

// History handles donation history listing. Donors see their own donations,
// staff see everyone's.
// @Summary Donation history
// @Description List donations with pagination
// @Tags Donations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Router /donations/history [get]
func (h *DonationHandler) History(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	role, _ := c.Locals("role").(string)
	profileID, ok := c.Locals("profileID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var donations []*models.Donation
	var total int64
	var err error

	if role == "STAFF" {
		donations, total, err = h.donationService.List(c.Context(), params.Offset, params.Limit)
	} else {
		donations, total, err = h.donationService.History(c.Context(), profileID, params.Offset, params.Limit)
	}
	if err != nil {
		return response.InternalServerError(c, "Failed to list donations")
	}

	items := make([]*models.DonationResponse, len(donations))
	for i, d := range donations {
		items[i] = d.ToResponse()
	}

	return response.Success(c, "Donations retrieved successfully",
		pagination.NewResponse(items, params, total))
}

// Receipt handles fetching a donation receipt
// @Summary Get donation receipt
// @Description Get the receipt for a donation. Donors can only fetch their own.
// @Tags Donations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Donation ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /donations/{id} [get]
func (h *DonationHandler) Receipt(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid donation ID")
	}

	profileID, ok := c.Locals("profileID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	role, _ := c.Locals("role").(string)

	receipt, err := h.donationService.Receipt(c.Context(), uint(id), profileID, role)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrDonationNotFound):
			return response.NotFound(c, "Donation not found")
		case errors.Is(err, services.ErrReceiptForbidden):
			return response.Forbidden(c, "Receipt belongs to another donor")
		default:
			return response.InternalServerError(c, "Failed to get receipt")
		}
	}

	return response.Success(c, "Receipt retrieved successfully", fiber.Map{
		"receipt": receipt,
	})
}
