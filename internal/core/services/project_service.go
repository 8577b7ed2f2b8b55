package services

import (
	"context"
	"errors"
	"log"
	"time"

	"hcf-givehub/internal/adapters/persistence/models"
	"hcf-givehub/internal/adapters/persistence/repositories"
	"hcf-givehub/internal/core/domain"

	"gorm.io/gorm"
)

// Project service errors
var (
	ErrProjectNotFound = errors.New("project not found")
	ErrInvalidBudget   = errors.New("budget must be greater than zero")
	ErrInvalidExpense  = errors.New("expense amount must be greater than zero")
)

// ProjectService handles spending project business logic
type ProjectService struct {
	projectRepo  repositories.ProjectRepository
	campaignRepo repositories.CampaignRepository
}

// NewProjectService creates a new project service
func NewProjectService(
	projectRepo repositories.ProjectRepository,
	campaignRepo repositories.CampaignRepository,
) *ProjectService {
	return &ProjectService{
		projectRepo:  projectRepo,
		campaignRepo: campaignRepo,
	}
}

// CreateProjectInput represents create project input
type CreateProjectInput struct {
	Name       string  `json:"name" validate:"required,max=150"`
	Budget     float64 `json:"budget" validate:"required,gt=0"`
	StartDate  string  `json:"start_date" validate:"required"`
	CampaignID *uint   `json:"campaign_id,omitempty"`
}

// Create creates a new project managed by a staff member
func (s *ProjectService) Create(ctx context.Context, input *CreateProjectInput, staffID uint) (*models.Project, error) {
	// 1. Validate budget
	if input.Budget <= 0 {
		return nil, ErrInvalidBudget
	}

	// 2. Parse start date
	startDate, err := time.Parse(dateLayout, input.StartDate)
	if err != nil {
		return nil, ErrInvalidDate
	}

	// 3. Validate funding campaign when given
	if input.CampaignID != nil {
		if _, err := s.campaignRepo.GetByID(ctx, *input.CampaignID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCampaignNotFound
			}
			return nil, err
		}
	}

	// 4. Create project (opens as ONGOING with nothing spent)
	project := &models.Project{
		Name:       input.Name,
		Budget:     input.Budget,
		Spent:      0,
		Status:     models.ProjectStatusOngoing,
		StartDate:  startDate,
		ManagedBy:  staffID,
		CampaignID: input.CampaignID,
	}

	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, err
	}

	log.Printf("✅ Project created: %s (budget: %.2f)", project.Name, project.Budget)

	return project, nil
}

// GetByID gets a project by ID
func (s *ProjectService) GetByID(ctx context.Context, id uint) (*models.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return project, nil
}

// RecordExpense books an expense against a project budget. When the amount
// does not fit into what is left, the returned error carries how much
// remained and how much was attempted so the caller can report both.
func (s *ProjectService) RecordExpense(ctx context.Context, projectID uint, amount float64) (*models.Project, error) {
	// 1. Validate amount
	if amount <= 0 {
		return nil, ErrInvalidExpense
	}

	// 2. Apply the guarded increment
	project, applied, err := s.projectRepo.ApplyExpense(ctx, projectID, amount)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}

	// 3. Guard rejected: the amount exceeds what is left
	if !applied {
		return nil, &domain.BudgetExceededError{
			ProjectID: projectID,
			Remaining: project.Budget - project.Spent,
			Attempted: amount,
		}
	}

	log.Printf("✅ Expense %.2f recorded on project %d (spent: %.2f/%.2f)",
		amount, projectID, project.Spent, project.Budget)

	return project, nil
}

// LinkCampaign attaches a project to the campaign funding it
func (s *ProjectService) LinkCampaign(ctx context.Context, projectID, campaignID uint) (*models.Project, error) {
	// 1. Check project exists
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}

	// 2. Check campaign exists
	if _, err := s.campaignRepo.GetByID(ctx, campaignID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCampaignNotFound
		}
		return nil, err
	}

	// 3. Link
	if err := s.projectRepo.LinkCampaign(ctx, projectID, campaignID); err != nil {
		return nil, err
	}
	project.CampaignID = &campaignID

	log.Printf("✅ Project %d linked to campaign %d", projectID, campaignID)

	return project, nil
}

// List lists projects with pagination
func (s *ProjectService) List(ctx context.Context, offset, limit int) ([]*models.Project, int64, error) {
	return s.projectRepo.List(ctx, offset, limit)
}

// ProjectProgress represents one row of the progress report
type ProjectProgress struct {
	ProjectID   uint    `json:"project_id"`
	Name        string  `json:"name"`
	Status      string  `json:"status"`
	Budget      float64 `json:"budget"`
	Spent       float64 `json:"spent"`
	Remaining   float64 `json:"remaining"`
	PercentUsed float64 `json:"percent_used"`
}

// Progress reports budget consumption across all projects
func (s *ProjectService) Progress(ctx context.Context) ([]*ProjectProgress, error) {
	projects, err := s.projectRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	report := make([]*ProjectProgress, 0, len(projects))
	for _, p := range projects {
		report = append(report, &ProjectProgress{
			ProjectID:   p.ID,
			Name:        p.Name,
			Status:      p.Status,
			Budget:      p.Budget,
			Spent:       p.Spent,
			Remaining:   p.Budget - p.Spent,
			PercentUsed: percentMet(p.Spent, p.Budget),
		})
	}
	return report, nil
}
