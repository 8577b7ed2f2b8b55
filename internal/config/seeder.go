package config

import (
	"log"
	"time"

	"hcf-givehub/internal/adapters/persistence/models"
	"hcf-givehub/internal/pkg/password"

	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// Run executes all seeders
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedBootstrapStaff(); err != nil {
		log.Printf("⚠️ Staff seeder skipped: %v", err)
	}

	if AppConfig != nil && AppConfig.IsDev() {
		if err := s.seedDemoCampaigns(); err != nil {
			log.Printf("⚠️ Demo campaign seeder skipped: %v", err)
		}
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedBootstrapStaff seeds the first staff account so campaigns can be
// managed on a fresh install. Change the password after first login.
func (s *Seeder) seedBootstrapStaff() error {
	// Check if any staff already exists
	var count int64
	s.db.Model(&models.Credential{}).Where("role = ?", "STAFF").Count(&count)
	if count > 0 {
		return nil // Staff already exists
	}

	hashedPassword, err := password.Hash("givehub123456")
	if err != nil {
		return err
	}

	cred := &models.Credential{
		Email:      "staff@hcf.or.th",
		NationalID: "1100000000000", // Placeholder - replace with real national id
		Password:   hashedPassword,
		Role:       "STAFF",
		IsActive:   true,
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(cred).Error; err != nil {
			return err
		}

		profile := &models.StaffProfile{
			CredentialID: cred.ID,
			FirstName:    "GiveHub",
			LastName:     "Admin",
			DateJoined:   time.Now(),
		}
		if err := tx.Create(profile).Error; err != nil {
			return err
		}

		log.Printf("✅ Bootstrap staff created: %s", cred.Email)
		log.Println("⚠️ Default password in use - change it after first login")
		return nil
	})
}

// seedDemoCampaigns seeds a few campaigns for development
func (s *Seeder) seedDemoCampaigns() error {
	var count int64
	s.db.Model(&models.Campaign{}).Count(&count)
	if count > 0 {
		return nil // Campaigns already exist
	}

	var staff models.StaffProfile
	if err := s.db.First(&staff).Error; err != nil {
		return err
	}

	now := time.Now()
	campaigns := []*models.Campaign{
		{
			Name:       "ทุนการศึกษาเด็กดอย 2569",
			Status:     models.CampaignStatusActive,
			StartDate:  now.AddDate(0, -1, 0),
			EndDate:    now.AddDate(0, 5, 0),
			GoalAmount: 250000,
			ManagedBy:  staff.ID,
		},
		{
			Name:       "Clean Water for Mae Hong Son",
			Status:     models.CampaignStatusActive,
			StartDate:  now.AddDate(0, 0, -7),
			EndDate:    now.AddDate(0, 3, 0),
			GoalAmount: 480000,
			ManagedBy:  staff.ID,
		},
		{
			Name:       "ซ่อมหลังคาศูนย์เด็กเล็ก",
			Status:     models.CampaignStatusCompleted,
			StartDate:  now.AddDate(0, -6, 0),
			EndDate:    now.AddDate(0, -1, 0),
			GoalAmount: 120000,
			ManagedBy:  staff.ID,
		},
	}

	for _, c := range campaigns {
		if err := s.db.Create(c).Error; err != nil {
			return err
		}
	}

	log.Printf("✅ Seeded %d demo campaigns", len(campaigns))
	return nil
}
