package repositories

import (
	"context"
	"time"

	"hcf-givehub/internal/adapters/persistence/models"
)

// CredentialRepository defines credential repository interface.
// The Create* methods insert the credential and its role profile in one
// transaction; a credential never exists without exactly one profile.
type CredentialRepository interface {
	CreateWithStaffProfile(ctx context.Context, cred *models.Credential, profile *models.StaffProfile) error
	CreateWithDonorProfile(ctx context.Context, cred *models.Credential, profile *models.DonorProfile) error
	GetByID(ctx context.Context, id uint) (*models.Credential, error)
	GetByEmail(ctx context.Context, email string) (*models.Credential, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByNationalID(ctx context.Context, nationalID string) (bool, error)
	GetStaffProfile(ctx context.Context, credentialID uint) (*models.StaffProfile, error)
	GetDonorProfile(ctx context.Context, credentialID uint) (*models.DonorProfile, error)
}

// RefreshTokenRepository defines refresh token repository interface
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	Revoke(ctx context.Context, id uint) error
	RevokeByTokenHash(ctx context.Context, tokenHash string) error
	RevokeAllByCredentialID(ctx context.Context, credentialID uint) error
	DeleteExpired(ctx context.Context) (int64, error)
}

// CampaignRepository defines campaign repository interface
type CampaignRepository interface {
	Create(ctx context.Context, campaign *models.Campaign) error
	GetByID(ctx context.Context, id uint) (*models.Campaign, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
	ListActive(ctx context.Context) ([]*models.Campaign, error)
	ListAll(ctx context.Context) ([]*models.Campaign, error)
	List(ctx context.Context, offset, limit int) ([]*models.Campaign, int64, error)
	CompleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// ProjectRepository defines project repository interface.
// ApplyExpense is the budget-enforcement point: the spent increment is a
// single conditional update so concurrent submissions can never jointly
// overshoot the budget. applied=false means the guard rejected the write.
type ProjectRepository interface {
	Create(ctx context.Context, project *models.Project) error
	GetByID(ctx context.Context, id uint) (*models.Project, error)
	ApplyExpense(ctx context.Context, id uint, amount float64) (project *models.Project, applied bool, err error)
	LinkCampaign(ctx context.Context, projectID, campaignID uint) error
	ListAll(ctx context.Context) ([]*models.Project, error)
	List(ctx context.Context, offset, limit int) ([]*models.Project, int64, error)
}

// DonationRepository defines donation repository interface.
// Record inserts the donation and increments the campaign raised total in
// one transaction; recorded=false means the campaign was gone or not ACTIVE
// at commit time and nothing was written.
type DonationRepository interface {
	Record(ctx context.Context, donation *models.Donation) (recorded bool, err error)
	GetReceipt(ctx context.Context, id uint) (*models.ReceiptView, error)
	ListByDonor(ctx context.Context, donorID uint, offset, limit int) ([]*models.Donation, int64, error)
	List(ctx context.Context, offset, limit int) ([]*models.Donation, int64, error)
}
