package services

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// DashboardService handles dashboard operations
type DashboardService struct {
	db *gorm.DB
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db}
}

// ============================================================
// Staff Dashboard
// ============================================================

// DashboardData represents staff dashboard data
type DashboardData struct {
	// People Statistics
	TotalDonors int64 `json:"total_donors"`
	TotalStaff  int64 `json:"total_staff"`

	// Campaign Statistics
	TotalCampaigns     int64   `json:"total_campaigns"`
	ActiveCampaigns    int64   `json:"active_campaigns"`
	CompletedCampaigns int64   `json:"completed_campaigns"`
	CancelledCampaigns int64   `json:"cancelled_campaigns"`
	TotalRaised        float64 `json:"total_raised"`

	// Project Statistics
	TotalProjects     int64   `json:"total_projects"`
	OngoingProjects   int64   `json:"ongoing_projects"`
	CompletedProjects int64   `json:"completed_projects"`
	TotalBudget       float64 `json:"total_budget"`
	TotalSpent        float64 `json:"total_spent"`

	// Monthly Statistics
	DonationsThisMonth int64   `json:"donations_this_month"`
	AmountThisMonth    float64 `json:"amount_this_month"`
	TotalDonations     int64   `json:"total_donations"`

	// Recent Activity
	RecentDonations []DonationSummary `json:"recent_donations"`

	// Top Campaigns
	TopCampaigns []CampaignStats `json:"top_campaigns"`
}

// DonationSummary represents donation summary
type DonationSummary struct {
	ID           uint      `json:"id"`
	ReferenceNo  string    `json:"reference_no"`
	DonorName    string    `json:"donor_name"`
	CampaignName string    `json:"campaign_name"`
	Amount       float64   `json:"amount"`
	DonatedAt    time.Time `json:"donated_at"`
}

// CampaignStats represents campaign statistics
type CampaignStats struct {
	CampaignID    uint    `json:"campaign_id"`
	Name          string  `json:"name"`
	Status        string  `json:"status"`
	GoalAmount    float64 `json:"goal_amount"`
	RaisedAmount  float64 `json:"raised_amount"`
	DonationCount int64   `json:"donation_count"`
}

// GetOverview returns staff dashboard data
func (s *DashboardService) GetOverview(ctx context.Context) (*DashboardData, error) {
	data := &DashboardData{}

	// People counts by role
	s.db.WithContext(ctx).Table("credentials").Where("role = ? AND deleted_at IS NULL", "DONOR").Count(&data.TotalDonors)
	s.db.WithContext(ctx).Table("credentials").Where("role = ? AND deleted_at IS NULL", "STAFF").Count(&data.TotalStaff)

	// Campaign counts
	s.db.WithContext(ctx).Table("campaigns").Where("deleted_at IS NULL").Count(&data.TotalCampaigns)
	s.db.WithContext(ctx).Table("campaigns").Where("status = ? AND deleted_at IS NULL", "ACTIVE").Count(&data.ActiveCampaigns)
	s.db.WithContext(ctx).Table("campaigns").Where("status = ? AND deleted_at IS NULL", "COMPLETED").Count(&data.CompletedCampaigns)
	s.db.WithContext(ctx).Table("campaigns").Where("status = ? AND deleted_at IS NULL", "CANCELLED").Count(&data.CancelledCampaigns)

	// Total raised across campaigns
	s.db.WithContext(ctx).Table("campaigns").
		Where("deleted_at IS NULL").
		Select("COALESCE(SUM(raised_amount), 0)").
		Scan(&data.TotalRaised)

	// Project counts
	s.db.WithContext(ctx).Table("projects").Where("deleted_at IS NULL").Count(&data.TotalProjects)
	s.db.WithContext(ctx).Table("projects").Where("status = ? AND deleted_at IS NULL", "ONGOING").Count(&data.OngoingProjects)
	s.db.WithContext(ctx).Table("projects").Where("status = ? AND deleted_at IS NULL", "COMPLETED").Count(&data.CompletedProjects)

	// Budget totals
	s.db.WithContext(ctx).Table("projects").
		Where("deleted_at IS NULL").
		Select("COALESCE(SUM(budget), 0)").
		Scan(&data.TotalBudget)

	s.db.WithContext(ctx).Table("projects").
		Where("deleted_at IS NULL").
		Select("COALESCE(SUM(spent), 0)").
		Scan(&data.TotalSpent)

	// Donation counts
	s.db.WithContext(ctx).Table("donations").Count(&data.TotalDonations)

	// This month statistics
	startOfMonth := time.Now().AddDate(0, 0, -time.Now().Day()+1).Truncate(24 * time.Hour)
	s.db.WithContext(ctx).Table("donations").
		Where("donated_at >= ?", startOfMonth).
		Count(&data.DonationsThisMonth)

	s.db.WithContext(ctx).Table("donations").
		Where("donated_at >= ?", startOfMonth).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&data.AmountThisMonth)

	// Recent donations
	var recentDonations []struct {
		ID           uint
		ReferenceNo  string
		DonorName    string
		CampaignName string
		Amount       float64
		DonatedAt    time.Time
	}
	s.db.WithContext(ctx).Table("donations").
		Select(`donations.id, donations.reference_no,
			CONCAT(donor_profiles.first_name, ' ', donor_profiles.last_name) as donor_name,
			campaigns.name as campaign_name, donations.amount, donations.donated_at`).
		Joins("LEFT JOIN donor_profiles ON donations.donor_id = donor_profiles.id").
		Joins("LEFT JOIN campaigns ON donations.campaign_id = campaigns.id").
		Order("donations.donated_at DESC").
		Limit(10).
		Scan(&recentDonations)

	data.RecentDonations = make([]DonationSummary, len(recentDonations))
	for i, d := range recentDonations {
		data.RecentDonations[i] = DonationSummary{
			ID:           d.ID,
			ReferenceNo:  d.ReferenceNo,
			DonorName:    d.DonorName,
			CampaignName: d.CampaignName,
			Amount:       d.Amount,
			DonatedAt:    d.DonatedAt,
		}
	}

	// Top campaigns by raised amount
	var topCampaigns []struct {
		CampaignID    uint
		Name          string
		Status        string
		GoalAmount    float64
		RaisedAmount  float64
		DonationCount int64
	}
	s.db.WithContext(ctx).Table("campaigns").
		Select(`campaigns.id as campaign_id, campaigns.name, campaigns.status,
			campaigns.goal_amount, campaigns.raised_amount,
			COUNT(donations.id) as donation_count`).
		Joins("LEFT JOIN donations ON donations.campaign_id = campaigns.id").
		Where("campaigns.deleted_at IS NULL").
		Group("campaigns.id, campaigns.name, campaigns.status, campaigns.goal_amount, campaigns.raised_amount").
		Order("campaigns.raised_amount DESC").
		Limit(5).
		Scan(&topCampaigns)

	data.TopCampaigns = make([]CampaignStats, len(topCampaigns))
	for i, c := range topCampaigns {
		data.TopCampaigns[i] = CampaignStats{
			CampaignID:    c.CampaignID,
			Name:          c.Name,
			Status:        c.Status,
			GoalAmount:    c.GoalAmount,
			RaisedAmount:  c.RaisedAmount,
			DonationCount: c.DonationCount,
		}
	}

	return data, nil
}
