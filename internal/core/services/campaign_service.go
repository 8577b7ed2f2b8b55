package services

import (
	"context"
	"errors"
	"log"
	"math"
	"time"

	"hcf-givehub/internal/adapters/persistence/models"
	"hcf-givehub/internal/adapters/persistence/repositories"
	"hcf-givehub/internal/core/domain"

	"gorm.io/gorm"
)

// Campaign service errors
var (
	ErrCampaignNotFound  = errors.New("campaign not found")
	ErrCampaignNameTaken = errors.New("campaign name already used")
	ErrInvalidGoalAmount = errors.New("goal amount must be greater than zero")
	ErrInvalidDate       = errors.New("invalid date, want YYYY-MM-DD")
	ErrInvalidDateRange  = errors.New("start date must be before end date")
	ErrInvalidStatus     = errors.New("invalid campaign status")
)

const dateLayout = "2006-01-02"

// CampaignService handles fundraising campaign business logic
type CampaignService struct {
	campaignRepo repositories.CampaignRepository
}

// NewCampaignService creates a new campaign service
func NewCampaignService(campaignRepo repositories.CampaignRepository) *CampaignService {
	return &CampaignService{campaignRepo: campaignRepo}
}

// CreateCampaignInput represents create campaign input
type CreateCampaignInput struct {
	Name       string  `json:"name" validate:"required,max=150"`
	GoalAmount float64 `json:"goal_amount" validate:"required,gt=0"`
	StartDate  string  `json:"start_date" validate:"required"`
	EndDate    string  `json:"end_date" validate:"required"`
}

// Create creates a new campaign managed by a staff member
func (s *CampaignService) Create(ctx context.Context, input *CreateCampaignInput, staffID uint) (*models.Campaign, error) {
	// 1. Validate goal amount
	if input.GoalAmount <= 0 {
		return nil, ErrInvalidGoalAmount
	}

	// 2. Parse and validate date window
	startDate, err := time.Parse(dateLayout, input.StartDate)
	if err != nil {
		return nil, ErrInvalidDate
	}
	endDate, err := time.Parse(dateLayout, input.EndDate)
	if err != nil {
		return nil, ErrInvalidDate
	}
	if !startDate.Before(endDate) {
		return nil, ErrInvalidDateRange
	}

	// 3. Check name uniqueness
	exists, err := s.campaignRepo.ExistsByName(ctx, input.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrCampaignNameTaken
	}

	// 4. Create campaign (opens as ACTIVE with nothing raised)
	campaign := &models.Campaign{
		Name:         input.Name,
		Status:       models.CampaignStatusActive,
		StartDate:    startDate,
		EndDate:      endDate,
		GoalAmount:   input.GoalAmount,
		RaisedAmount: 0,
		ManagedBy:    staffID,
	}

	if err := s.campaignRepo.Create(ctx, campaign); err != nil {
		return nil, err
	}

	log.Printf("✅ Campaign created: %s (goal: %.2f)", campaign.Name, campaign.GoalAmount)

	return campaign, nil
}

// GetByID gets a campaign by ID
func (s *CampaignService) GetByID(ctx context.Context, id uint) (*models.Campaign, error) {
	campaign, err := s.campaignRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCampaignNotFound
		}
		return nil, err
	}
	return campaign, nil
}

// SetStatus moves a campaign to a new lifecycle status. Every transition is
// allowed, including reopening a completed or cancelled campaign.
func (s *CampaignService) SetStatus(ctx context.Context, id uint, status string) (*models.Campaign, error) {
	// 1. Validate status value
	if !domain.CampaignStatus(status).IsValid() {
		return nil, ErrInvalidStatus
	}

	// 2. Check campaign exists
	campaign, err := s.campaignRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCampaignNotFound
		}
		return nil, err
	}

	// 3. Apply new status
	if err := s.campaignRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	campaign.Status = status

	log.Printf("✅ Campaign %d status set to %s", id, status)

	return campaign, nil
}

// ListActive lists campaigns currently accepting donations
func (s *CampaignService) ListActive(ctx context.Context) ([]*models.Campaign, error) {
	return s.campaignRepo.ListActive(ctx)
}

// List lists campaigns with pagination
func (s *CampaignService) List(ctx context.Context, offset, limit int) ([]*models.Campaign, int64, error) {
	return s.campaignRepo.List(ctx, offset, limit)
}

// CampaignFinancialSummary represents one row of the financial summary
type CampaignFinancialSummary struct {
	CampaignID   uint    `json:"campaign_id"`
	Name         string  `json:"name"`
	Status       string  `json:"status"`
	GoalAmount   float64 `json:"goal_amount"`
	RaisedAmount float64 `json:"raised_amount"`
	PercentMet   float64 `json:"percent_met"`
}

// FinancialSummary reports goal attainment across all campaigns
func (s *CampaignService) FinancialSummary(ctx context.Context) ([]*CampaignFinancialSummary, error) {
	campaigns, err := s.campaignRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]*CampaignFinancialSummary, 0, len(campaigns))
	for _, c := range campaigns {
		summaries = append(summaries, &CampaignFinancialSummary{
			CampaignID:   c.ID,
			Name:         c.Name,
			Status:       c.Status,
			GoalAmount:   c.GoalAmount,
			RaisedAmount: c.RaisedAmount,
			PercentMet:   percentMet(c.RaisedAmount, c.GoalAmount),
		})
	}
	return summaries, nil
}

// percentMet returns raised as a percentage of goal, rounded to two decimal
// places. A zero goal reports zero percent rather than dividing by zero.
func percentMet(raised, goal float64) float64 {
	if goal <= 0 {
		return 0
	}
	return math.Round(raised/goal*100*100) / 100
}
