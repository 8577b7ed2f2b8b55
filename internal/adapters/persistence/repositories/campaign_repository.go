package repositories

import (
	"context"
	"time"

	"hcf-givehub/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// campaignRepository implements CampaignRepository interface
type campaignRepository struct {
	db *gorm.DB
}

// NewCampaignRepository creates a new campaign repository
func NewCampaignRepository(db *gorm.DB) CampaignRepository {
	return &campaignRepository{db: db}
}

// Create creates a new campaign
func (r *campaignRepository) Create(ctx context.Context, campaign *models.Campaign) error {
	return r.db.WithContext(ctx).Create(campaign).Error
}

// GetByID gets a campaign by ID
func (r *campaignRepository) GetByID(ctx context.Context, id uint) (*models.Campaign, error) {
	var campaign models.Campaign
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&campaign).Error
	if err != nil {
		return nil, err
	}
	return &campaign, nil
}

// ExistsByName checks if a campaign name exists
func (r *campaignRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Campaign{}).Where("name = ?", name).Count(&count).Error
	return count > 0, err
}

// UpdateStatus updates a campaign status
func (r *campaignRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	return r.db.WithContext(ctx).
		Model(&models.Campaign{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// ListActive lists campaigns currently open for donations
func (r *campaignRepository) ListActive(ctx context.Context) ([]*models.Campaign, error) {
	var campaigns []*models.Campaign
	err := r.db.WithContext(ctx).
		Where("status = ?", models.CampaignStatusActive).
		Order("start_date DESC").
		Find(&campaigns).Error
	if err != nil {
		return nil, err
	}
	return campaigns, nil
}

// ListAll lists all campaigns without pagination
func (r *campaignRepository) ListAll(ctx context.Context) ([]*models.Campaign, error) {
	var campaigns []*models.Campaign
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&campaigns).Error
	if err != nil {
		return nil, err
	}
	return campaigns, nil
}

// List lists campaigns with pagination
func (r *campaignRepository) List(ctx context.Context, offset, limit int) ([]*models.Campaign, int64, error) {
	var campaigns []*models.Campaign
	var total int64

	// Count total
	if err := r.db.WithContext(ctx).Model(&models.Campaign{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Get campaigns with pagination
	if err := r.db.WithContext(ctx).Order("created_at DESC").Offset(offset).Limit(limit).Find(&campaigns).Error; err != nil {
		return nil, 0, err
	}

	return campaigns, total, nil
}

// CompleteExpired marks active campaigns past their end date as completed (sweep job)
func (r *campaignRepository) CompleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Campaign{}).
		Where("status = ?", models.CampaignStatusActive).
		Where("end_date < ?", now).
		Update("status", models.CampaignStatusCompleted)
	return res.RowsAffected, res.Error
}
