package domain

import "time"

// Role represents user role in the system
type Role string

const (
	RoleStaff Role = "STAFF"
	RoleDonor Role = "DONOR"
)

// IsValid reports whether the role is one of the known roles
func (r Role) IsValid() bool {
	return r == RoleStaff || r == RoleDonor
}

// CampaignStatus represents the lifecycle state of a campaign
type CampaignStatus string

const (
	CampaignActive    CampaignStatus = "ACTIVE"
	CampaignCompleted CampaignStatus = "COMPLETED"
	CampaignCancelled CampaignStatus = "CANCELLED"
)

// IsValid reports whether the status is part of the campaign enum.
// Any status may transition to any other; the enum is the only constraint.
func (s CampaignStatus) IsValid() bool {
	switch s {
	case CampaignActive, CampaignCompleted, CampaignCancelled:
		return true
	}
	return false
}

// ProjectStatus represents the lifecycle state of a project
type ProjectStatus string

const (
	ProjectOngoing   ProjectStatus = "ONGOING"
	ProjectCompleted ProjectStatus = "COMPLETED"
)

// Credential represents a login identity in the domain layer
type Credential struct {
	ID         uint
	Email      string
	NationalID string
	Password   string // Hashed
	Role       Role
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// RefreshToken represents a refresh token in the domain
type RefreshToken struct {
	ID           uint
	CredentialID uint
	TokenHash    string
	ExpiresAt    time.Time
	CreatedAt    time.Time
	RevokedAt    *time.Time
}

// TokenPair represents access and refresh tokens
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}
