package repositories

import (
	"context"

	"hcf-givehub/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// credentialRepository implements CredentialRepository interface
type credentialRepository struct {
	db *gorm.DB
}

// NewCredentialRepository creates a new credential repository
func NewCredentialRepository(db *gorm.DB) CredentialRepository {
	return &credentialRepository{db: db}
}

// CreateWithStaffProfile creates a credential and its staff profile in one transaction
func (r *credentialRepository) CreateWithStaffProfile(ctx context.Context, cred *models.Credential, profile *models.StaffProfile) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(cred).Error; err != nil {
			return err
		}
		profile.CredentialID = cred.ID
		return tx.Create(profile).Error
	})
}

// CreateWithDonorProfile creates a credential and its donor profile in one transaction
func (r *credentialRepository) CreateWithDonorProfile(ctx context.Context, cred *models.Credential, profile *models.DonorProfile) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(cred).Error; err != nil {
			return err
		}
		profile.CredentialID = cred.ID
		return tx.Create(profile).Error
	})
}

// GetByID gets a credential by ID
func (r *credentialRepository) GetByID(ctx context.Context, id uint) (*models.Credential, error) {
	var cred models.Credential
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&cred).Error
	if err != nil {
		return nil, err
	}
	return &cred, nil
}

// GetByEmail gets a credential by email
func (r *credentialRepository) GetByEmail(ctx context.Context, email string) (*models.Credential, error) {
	var cred models.Credential
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&cred).Error
	if err != nil {
		return nil, err
	}
	return &cred, nil
}

// ExistsByEmail checks if email exists
func (r *credentialRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Credential{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

// ExistsByNationalID checks if national ID exists
func (r *credentialRepository) ExistsByNationalID(ctx context.Context, nationalID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Credential{}).Where("national_id = ?", nationalID).Count(&count).Error
	return count > 0, err
}

// GetStaffProfile gets the staff profile owned by a credential
func (r *credentialRepository) GetStaffProfile(ctx context.Context, credentialID uint) (*models.StaffProfile, error) {
	var profile models.StaffProfile
	err := r.db.WithContext(ctx).Where("credential_id = ?", credentialID).First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetDonorProfile gets the donor profile owned by a credential
func (r *credentialRepository) GetDonorProfile(ctx context.Context, credentialID uint) (*models.DonorProfile, error) {
	var profile models.DonorProfile
	err := r.db.WithContext(ctx).Where("credential_id = ?", credentialID).First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}
