package repositories

import (
	"context"

	"hcf-givehub/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// donationRepository implements DonationRepository interface
type donationRepository struct {
	db *gorm.DB
}

// NewDonationRepository creates a new donation repository
func NewDonationRepository(db *gorm.DB) DonationRepository {
	return &donationRepository{db: db}
}

// Record inserts a donation and adds its amount to the campaign raised total
// in one transaction. The increment only matches an ACTIVE campaign row, so a
// donation can never land on a closed or missing campaign; in that case
// nothing is written and recorded is false.
func (r *donationRepository) Record(ctx context.Context, donation *models.Donation) (bool, error) {
	recorded := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Campaign{}).
			Where("id = ?", donation.CampaignID).
			Where("status = ?", models.CampaignStatusActive).
			Update("raised_amount", gorm.Expr("raised_amount + ?", donation.Amount))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		if err := tx.Create(donation).Error; err != nil {
			return err
		}
		recorded = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return recorded, nil
}

// GetReceipt builds the receipt view for a donation. The campaign join skips
// the soft delete scope on purpose, a receipt stays valid after its campaign
// is removed.
func (r *donationRepository) GetReceipt(ctx context.Context, id uint) (*models.ReceiptView, error) {
	var receipt models.ReceiptView
	res := r.db.WithContext(ctx).
		Table("donations").
		Select(`donations.id AS donation_id,
			donations.reference_no,
			donations.donor_id,
			CONCAT(donor_profiles.first_name, ' ', donor_profiles.last_name) AS donor_name,
			credentials.email AS donor_email,
			donations.campaign_id,
			campaigns.name AS campaign_name,
			donations.amount,
			donations.payment_method,
			donations.donated_at`).
		Joins("JOIN donor_profiles ON donor_profiles.id = donations.donor_id").
		Joins("JOIN credentials ON credentials.id = donor_profiles.credential_id").
		Joins("JOIN campaigns ON campaigns.id = donations.campaign_id").
		Where("donations.id = ?", id).
		Scan(&receipt)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &receipt, nil
}

// ListByDonor lists donations made by one donor with pagination
func (r *donationRepository) ListByDonor(ctx context.Context, donorID uint, offset, limit int) ([]*models.Donation, int64, error) {
	var donations []*models.Donation
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Donation{}).Where("donor_id = ?", donorID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Preload("Campaign").
		Where("donor_id = ?", donorID).
		Order("donated_at DESC").
		Offset(offset).Limit(limit).
		Find(&donations).Error; err != nil {
		return nil, 0, err
	}

	return donations, total, nil
}

// List lists all donations with pagination
func (r *donationRepository) List(ctx context.Context, offset, limit int) ([]*models.Donation, int64, error) {
	var donations []*models.Donation
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Donation{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Preload("Campaign").
		Order("donated_at DESC").
		Offset(offset).Limit(limit).
		Find(&donations).Error; err != nil {
		return nil, 0, err
	}

	return donations, total, nil
}
