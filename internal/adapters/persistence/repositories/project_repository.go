package repositories

import (
	"context"

	"hcf-givehub/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// projectRepository implements ProjectRepository interface
type projectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

// Create creates a new project
func (r *projectRepository) Create(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

// GetByID gets a project by ID
func (r *projectRepository) GetByID(ctx context.Context, id uint) (*models.Project, error) {
	var project models.Project
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&project).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// ApplyExpense increments the spent total of a project if the budget allows it.
// The increment is guarded in SQL so two concurrent expenses cannot jointly
// push spent past budget; the loser of the race sees applied=false. When the
// increment lands the project on its full budget the status flips to
// COMPLETED inside the same transaction.
func (r *projectRepository) ApplyExpense(ctx context.Context, id uint, amount float64) (*models.Project, bool, error) {
	var project models.Project
	applied := false

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Project{}).
			Where("id = ?", id).
			Where("spent + ? <= budget", amount).
			Update("spent", gorm.Expr("spent + ?", amount))
		if res.Error != nil {
			return res.Error
		}
		applied = res.RowsAffected > 0

		// Reload so the caller sees the post-update numbers, or the current
		// ones when the guard rejected the increment.
		if err := tx.Where("id = ?", id).First(&project).Error; err != nil {
			return err
		}

		if applied && project.Spent >= project.Budget && project.Status != models.ProjectStatusCompleted {
			if err := tx.Model(&models.Project{}).
				Where("id = ?", id).
				Update("status", models.ProjectStatusCompleted).Error; err != nil {
				return err
			}
			project.Status = models.ProjectStatusCompleted
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return &project, applied, nil
}

// LinkCampaign attaches a project to a campaign
func (r *projectRepository) LinkCampaign(ctx context.Context, projectID, campaignID uint) error {
	return r.db.WithContext(ctx).
		Model(&models.Project{}).
		Where("id = ?", projectID).
		Update("campaign_id", campaignID).Error
}

// ListAll lists all projects without pagination
func (r *projectRepository) ListAll(ctx context.Context) ([]*models.Project, error) {
	var projects []*models.Project
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}

// List lists projects with pagination
func (r *projectRepository) List(ctx context.Context, offset, limit int) ([]*models.Project, int64, error) {
	var projects []*models.Project
	var total int64

	// Count total
	if err := r.db.WithContext(ctx).Model(&models.Project{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Get projects with pagination
	if err := r.db.WithContext(ctx).Order("created_at DESC").Offset(offset).Limit(limit).Find(&projects).Error; err != nil {
		return nil, 0, err
	}

	return projects, total, nil
}
