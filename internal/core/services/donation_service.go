package services

import (
	"context"
	"errors"
	"log"
	"time"

	"hcf-givehub/internal/adapters/persistence/models"
	"hcf-givehub/internal/adapters/persistence/repositories"
	"hcf-givehub/internal/core/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Donation service errors
var (
	ErrDonationNotFound  = errors.New("donation not found")
	ErrInvalidAmount     = errors.New("donation amount must be greater than zero")
	ErrCampaignNotActive = errors.New("campaign is not accepting donations")
	ErrReceiptForbidden  = errors.New("receipt belongs to another donor")
)

// DonationService handles donation business logic
type DonationService struct {
	donationRepo repositories.DonationRepository
	campaignRepo repositories.CampaignRepository
}

// NewDonationService creates a new donation service
func NewDonationService(
	donationRepo repositories.DonationRepository,
	campaignRepo repositories.CampaignRepository,
) *DonationService {
	return &DonationService{
		donationRepo: donationRepo,
		campaignRepo: campaignRepo,
	}
}

// RecordDonationInput represents record donation input
type RecordDonationInput struct {
	CampaignID    uint    `json:"campaign_id" validate:"required"`
	Amount        float64 `json:"amount" validate:"required,gt=0"`
	PaymentMethod string  `json:"payment_method,omitempty"`
}

// Record books a donation from a donor to a campaign. The insert and the
// campaign raised total move together or not at all.
func (s *DonationService) Record(ctx context.Context, input *RecordDonationInput, donorID uint) (*models.Donation, error) {
	// 1. Validate amount
	if input.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	// 2. Build the donation fact
	donation := &models.Donation{
		ReferenceNo:   uuid.New().String(),
		DonorID:       donorID,
		CampaignID:    input.CampaignID,
		Amount:        input.Amount,
		PaymentMethod: input.PaymentMethod,
		DonatedAt:     time.Now(),
	}

	// 3. Record atomically against an ACTIVE campaign
	recorded, err := s.donationRepo.Record(ctx, donation)
	if err != nil {
		return nil, err
	}

	// 4. Rejected: tell missing campaign apart from a closed one
	if !recorded {
		if _, err := s.campaignRepo.GetByID(ctx, input.CampaignID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCampaignNotFound
			}
			return nil, err
		}
		return nil, ErrCampaignNotActive
	}

	log.Printf("✅ Donation %.2f recorded on campaign %d (ref: %s)",
		donation.Amount, donation.CampaignID, donation.ReferenceNo)

	return donation, nil
}

// Receipt returns the receipt for a donation. Donors only ever see their own
// receipts; staff can fetch any receipt.
func (s *DonationService) Receipt(ctx context.Context, donationID, requesterID uint, requesterRole string) (*models.ReceiptView, error) {
	receipt, err := s.donationRepo.GetReceipt(ctx, donationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDonationNotFound
		}
		return nil, err
	}

	if domain.Role(requesterRole) != domain.RoleStaff && receipt.DonorID != requesterID {
		return nil, ErrReceiptForbidden
	}

	return receipt, nil
}

// History lists donations made by one donor with pagination
func (s *DonationService) History(ctx context.Context, donorID uint, offset, limit int) ([]*models.Donation, int64, error) {
	return s.donationRepo.ListByDonor(ctx, donorID, offset, limit)
}

// List lists all donations with pagination
func (s *DonationService) List(ctx context.Context, offset, limit int) ([]*models.Donation, int64, error) {
	return s.donationRepo.List(ctx, offset, limit)
}
