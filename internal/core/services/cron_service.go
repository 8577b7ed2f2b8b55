package services

import (
	"context"
	"log"
	"time"

	"hcf-givehub/internal/adapters/persistence/repositories"
	"hcf-givehub/internal/config"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// CronService runs scheduled background jobs
type CronService struct {
	cron             *cron.Cron
	campaignRepo     repositories.CampaignRepository
	refreshTokenRepo repositories.RefreshTokenRepository
	cfg              *config.Config
}

// NewCronService creates a new cron service
func NewCronService(db *gorm.DB, cfg *config.Config) *CronService {
	return &CronService{
		cron:             cron.New(),
		campaignRepo:     repositories.NewCampaignRepository(db),
		refreshTokenRepo: repositories.NewRefreshTokenRepository(db),
		cfg:              cfg,
	}
}

// Start registers and starts the scheduled jobs
func (s *CronService) Start() error {
	// Close out campaigns that ran past their end date
	if _, err := s.cron.AddFunc(s.cfg.Cron.CampaignSweep, s.sweepExpiredCampaigns); err != nil {
		return err
	}

	// Remove refresh tokens past their expiry
	if _, err := s.cron.AddFunc(s.cfg.Cron.TokenPurge, s.purgeExpiredTokens); err != nil {
		return err
	}

	s.cron.Start()
	log.Printf("✅ Cron jobs started (sweep: %q, purge: %q)", s.cfg.Cron.CampaignSweep, s.cfg.Cron.TokenPurge)
	return nil
}

// Stop stops the scheduler and waits for running jobs to finish
func (s *CronService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("🛑 Cron jobs stopped")
}

// sweepExpiredCampaigns marks active campaigns past their end date as completed
func (s *CronService) sweepExpiredCampaigns() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	n, err := s.campaignRepo.CompleteExpired(ctx, time.Now())
	if err != nil {
		log.Printf("❌ Campaign sweep failed: %v", err)
		return
	}
	if n > 0 {
		log.Printf("✅ Campaign sweep: %d campaign(s) completed", n)
	}
}

// purgeExpiredTokens deletes refresh tokens past their expiry
func (s *CronService) purgeExpiredTokens() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	n, err := s.refreshTokenRepo.DeleteExpired(ctx)
	if err != nil {
		log.Printf("❌ Token purge failed: %v", err)
		return
	}
	if n > 0 {
		log.Printf("✅ Token purge: %d token(s) removed", n)
	}
}
