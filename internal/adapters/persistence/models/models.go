package models

import (
	"time"

	"gorm.io/gorm"
)

// ============================================================
// Identity Tables
// ============================================================

// Credential represents credentials table (login identity)
type Credential struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	Email      string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	NationalID string         `gorm:"uniqueIndex;size:20;not null" json:"national_id"`
	Password   string         `gorm:"size:255;not null" json:"-"`
	Role       string         `gorm:"size:20;not null" json:"role"`
	IsActive   bool           `gorm:"default:true" json:"is_active"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Credential) TableName() string {
	return "credentials"
}

// CredentialResponse DTO
type CredentialResponse struct {
	ID         uint      `json:"id"`
	Email      string    `json:"email"`
	NationalID string    `json:"national_id"`
	Role       string    `json:"role"`
	IsActive   bool      `json:"is_active"`
	ProfileID  uint      `json:"profile_id,omitempty"`
	FirstName  string    `json:"first_name,omitempty"`
	LastName   string    `json:"last_name,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func (c *Credential) ToResponse() *CredentialResponse {
	return &CredentialResponse{
		ID:         c.ID,
		Email:      c.Email,
		NationalID: c.NationalID,
		Role:       c.Role,
		IsActive:   c.IsActive,
		CreatedAt:  c.CreatedAt,
	}
}

// StaffProfile represents staff_profiles table (1:1 with credentials)
type StaffProfile struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	CredentialID uint      `gorm:"uniqueIndex;not null" json:"credential_id"`
	FirstName    string    `gorm:"size:100;not null" json:"first_name"`
	LastName     string    `gorm:"size:100;not null" json:"last_name"`
	DateJoined   time.Time `gorm:"type:date;not null" json:"date_joined"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Credential *Credential `gorm:"foreignKey:CredentialID" json:"-"`
}

func (StaffProfile) TableName() string {
	return "staff_profiles"
}

// DonorProfile represents donor_profiles table (1:1 with credentials)
type DonorProfile struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	CredentialID uint      `gorm:"uniqueIndex;not null" json:"credential_id"`
	FirstName    string    `gorm:"size:100;not null" json:"first_name"`
	LastName     string    `gorm:"size:100;not null" json:"last_name"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Credential *Credential `gorm:"foreignKey:CredentialID" json:"-"`
}

func (DonorProfile) TableName() string {
	return "donor_profiles"
}

// RefreshToken represents refresh_tokens table
type RefreshToken struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	CredentialID uint       `gorm:"index;not null" json:"credential_id"`
	TokenHash    string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt    time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt    *time.Time `gorm:"index" json:"revoked_at"`

	Credential Credential `gorm:"foreignKey:CredentialID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// ============================================================
// Ledger Tables
// ============================================================

// Campaign Status
const (
	CampaignStatusActive    = "ACTIVE"
	CampaignStatusCompleted = "COMPLETED"
	CampaignStatusCancelled = "CANCELLED"
)

// Campaign represents campaigns table (ตารางหลัก)
type Campaign struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Name         string         `gorm:"uniqueIndex;size:150;not null" json:"name"`
	Status       string         `gorm:"size:20;not null;default:'ACTIVE'" json:"status"`
	StartDate    time.Time      `gorm:"type:date;not null" json:"start_date"`
	EndDate      time.Time      `gorm:"type:date;not null" json:"end_date"`
	GoalAmount   float64        `gorm:"type:decimal(15,2);not null" json:"goal_amount"`
	RaisedAmount float64        `gorm:"type:decimal(15,2);not null;default:0" json:"raised_amount"`
	ManagedBy    uint           `gorm:"not null;index" json:"managed_by"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Manager *StaffProfile `gorm:"foreignKey:ManagedBy" json:"manager,omitempty"`
}

func (Campaign) TableName() string {
	return "campaigns"
}

// Project Status
const (
	ProjectStatusOngoing   = "ONGOING"
	ProjectStatusCompleted = "COMPLETED"
)

// Project represents projects table. Spent only ever grows through the
// expense rule and never exceeds Budget.
type Project struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	Name       string         `gorm:"size:150;not null" json:"name"`
	Budget     float64        `gorm:"type:decimal(15,2);not null" json:"budget"`
	Spent      float64        `gorm:"type:decimal(15,2);not null;default:0" json:"spent"`
	Status     string         `gorm:"size:20;not null;default:'ONGOING'" json:"status"`
	StartDate  time.Time      `gorm:"type:date;not null" json:"start_date"`
	ManagedBy  uint           `gorm:"not null;index" json:"managed_by"`
	CampaignID *uint          `gorm:"index" json:"campaign_id"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Manager  *StaffProfile `gorm:"foreignKey:ManagedBy" json:"manager,omitempty"`
	Campaign *Campaign     `gorm:"foreignKey:CampaignID" json:"campaign,omitempty"`
}

func (Project) TableName() string {
	return "projects"
}

// Donation represents donations table. Rows are append-only facts: the
// application never updates or deletes a donation.
type Donation struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	ReferenceNo   string    `gorm:"uniqueIndex;size:36;not null" json:"reference_no"`
	DonorID       uint      `gorm:"not null;index" json:"donor_id"`
	CampaignID    uint      `gorm:"not null;index" json:"campaign_id"`
	Amount        float64   `gorm:"type:decimal(15,2);not null" json:"amount"`
	PaymentMethod string    `gorm:"size:50" json:"payment_method"`
	DonatedAt     time.Time `gorm:"not null" json:"donated_at"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relations
	Donor    *DonorProfile `gorm:"foreignKey:DonorID" json:"donor,omitempty"`
	Campaign *Campaign     `gorm:"foreignKey:CampaignID" json:"campaign,omitempty"`
}

func (Donation) TableName() string {
	return "donations"
}

// DonationResponse DTO
type DonationResponse struct {
	ID            uint      `json:"id"`
	ReferenceNo   string    `json:"reference_no"`
	CampaignID    uint      `json:"campaign_id"`
	CampaignName  string    `json:"campaign_name,omitempty"`
	Amount        float64   `json:"amount"`
	PaymentMethod string    `json:"payment_method"`
	DonatedAt     time.Time `json:"donated_at"`
}

func (d *Donation) ToResponse() *DonationResponse {
	resp := &DonationResponse{
		ID:            d.ID,
		ReferenceNo:   d.ReferenceNo,
		CampaignID:    d.CampaignID,
		Amount:        d.Amount,
		PaymentMethod: d.PaymentMethod,
		DonatedAt:     d.DonatedAt,
	}

	if d.Campaign != nil {
		resp.CampaignName = d.Campaign.Name
	}

	return resp
}

// ReceiptView is the denormalized projection of one donation used for
// display and export. DonorID is carried for the ownership check.
type ReceiptView struct {
	DonationID    uint      `json:"donation_id"`
	ReferenceNo   string    `json:"reference_no"`
	DonorID       uint      `json:"donor_id"`
	DonorName     string    `json:"donor_name"`
	DonorEmail    string    `json:"donor_email"`
	CampaignID    uint      `json:"campaign_id"`
	CampaignName  string    `json:"campaign_name"`
	Amount        float64   `json:"amount"`
	PaymentMethod string    `json:"payment_method"`
	DonatedAt     time.Time `json:"donated_at"`
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		// Identity
		&Credential{},
		&StaffProfile{},
		&DonorProfile{},
		&RefreshToken{},
		// Ledger
		&Campaign{},
		&Project{},
		&Donation{},
	)
}
