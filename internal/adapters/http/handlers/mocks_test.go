package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"hcf-givehub/internal/adapters/persistence/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Map-backed repository stubs so handler tests can drive real services
// over HTTP without a database.

type stubCredentialRepo struct {
	creds         map[uint]*models.Credential
	staffProfiles map[uint]*models.StaffProfile
	donorProfiles map[uint]*models.DonorProfile
	nextCredID    uint
	nextProfileID uint
}

func newStubCredentialRepo() *stubCredentialRepo {
	return &stubCredentialRepo{
		creds:         make(map[uint]*models.Credential),
		staffProfiles: make(map[uint]*models.StaffProfile),
		donorProfiles: make(map[uint]*models.DonorProfile),
	}
}

func (s *stubCredentialRepo) CreateWithStaffProfile(ctx context.Context, cred *models.Credential, profile *models.StaffProfile) error {
	s.nextCredID++
	cred.ID = s.nextCredID
	s.nextProfileID++
	profile.ID = s.nextProfileID
	profile.CredentialID = cred.ID
	s.creds[cred.ID] = cred
	s.staffProfiles[cred.ID] = profile
	return nil
}

func (s *stubCredentialRepo) CreateWithDonorProfile(ctx context.Context, cred *models.Credential, profile *models.DonorProfile) error {
	s.nextCredID++
	cred.ID = s.nextCredID
	s.nextProfileID++
	profile.ID = s.nextProfileID
	profile.CredentialID = cred.ID
	s.creds[cred.ID] = cred
	s.donorProfiles[cred.ID] = profile
	return nil
}

func (s *stubCredentialRepo) GetByID(ctx context.Context, id uint) (*models.Credential, error) {
	if cred, ok := s.creds[id]; ok {
		return cred, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubCredentialRepo) GetByEmail(ctx context.Context, email string) (*models.Credential, error) {
	for _, cred := range s.creds {
		if cred.Email == email {
			return cred, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubCredentialRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	for _, cred := range s.creds {
		if cred.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (s *stubCredentialRepo) ExistsByNationalID(ctx context.Context, nationalID string) (bool, error) {
	for _, cred := range s.creds {
		if cred.NationalID == nationalID {
			return true, nil
		}
	}
	return false, nil
}

func (s *stubCredentialRepo) GetStaffProfile(ctx context.Context, credentialID uint) (*models.StaffProfile, error) {
	if profile, ok := s.staffProfiles[credentialID]; ok {
		return profile, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubCredentialRepo) GetDonorProfile(ctx context.Context, credentialID uint) (*models.DonorProfile, error) {
	if profile, ok := s.donorProfiles[credentialID]; ok {
		return profile, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type stubRefreshTokenRepo struct {
	tokens map[uint]*models.RefreshToken
	nextID uint
}

func newStubRefreshTokenRepo() *stubRefreshTokenRepo {
	return &stubRefreshTokenRepo{tokens: make(map[uint]*models.RefreshToken)}
}

func (s *stubRefreshTokenRepo) Create(ctx context.Context, token *models.RefreshToken) error {
	s.nextID++
	token.ID = s.nextID
	s.tokens[token.ID] = token
	return nil
}

func (s *stubRefreshTokenRepo) GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error) {
	for _, token := range s.tokens {
		if token.TokenHash == tokenHash && token.RevokedAt == nil {
			return token, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubRefreshTokenRepo) Revoke(ctx context.Context, id uint) error {
	if token, ok := s.tokens[id]; ok {
		now := time.Now()
		token.RevokedAt = &now
	}
	return nil
}

func (s *stubRefreshTokenRepo) RevokeByTokenHash(ctx context.Context, tokenHash string) error {
	for _, token := range s.tokens {
		if token.TokenHash == tokenHash {
			now := time.Now()
			token.RevokedAt = &now
		}
	}
	return nil
}

func (s *stubRefreshTokenRepo) RevokeAllByCredentialID(ctx context.Context, credentialID uint) error {
	for _, token := range s.tokens {
		if token.CredentialID == credentialID && token.RevokedAt == nil {
			now := time.Now()
			token.RevokedAt = &now
		}
	}
	return nil
}

func (s *stubRefreshTokenRepo) DeleteExpired(ctx context.Context) (int64, error) {
	return 0, nil
}

type stubCampaignRepo struct {
	campaigns map[uint]*models.Campaign
	nextID    uint
}

func newStubCampaignRepo() *stubCampaignRepo {
	return &stubCampaignRepo{campaigns: make(map[uint]*models.Campaign)}
}

func (s *stubCampaignRepo) Create(ctx context.Context, campaign *models.Campaign) error {
	s.nextID++
	campaign.ID = s.nextID
	s.campaigns[campaign.ID] = campaign
	return nil
}

func (s *stubCampaignRepo) GetByID(ctx context.Context, id uint) (*models.Campaign, error) {
	if campaign, ok := s.campaigns[id]; ok {
		return campaign, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubCampaignRepo) ExistsByName(ctx context.Context, name string) (bool, error) {
	for _, campaign := range s.campaigns {
		if campaign.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (s *stubCampaignRepo) UpdateStatus(ctx context.Context, id uint, status string) error {
	if campaign, ok := s.campaigns[id]; ok {
		campaign.Status = status
	}
	return nil
}

func (s *stubCampaignRepo) ListActive(ctx context.Context) ([]*models.Campaign, error) {
	var active []*models.Campaign
	for _, campaign := range s.sorted() {
		if campaign.Status == models.CampaignStatusActive {
			active = append(active, campaign)
		}
	}
	return active, nil
}

func (s *stubCampaignRepo) ListAll(ctx context.Context) ([]*models.Campaign, error) {
	return s.sorted(), nil
}

func (s *stubCampaignRepo) List(ctx context.Context, offset, limit int) ([]*models.Campaign, int64, error) {
	all := s.sorted()
	total := int64(len(all))
	if offset >= len(all) {
		return []*models.Campaign{}, total, nil
	}
	all = all[offset:]
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, total, nil
}

func (s *stubCampaignRepo) CompleteExpired(ctx context.Context, now time.Time) (int64, error) {
	return 0, nil
}

func (s *stubCampaignRepo) sorted() []*models.Campaign {
	all := make([]*models.Campaign, 0, len(s.campaigns))
	for _, campaign := range s.campaigns {
		all = append(all, campaign)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all
}

func (s *stubCampaignRepo) seed(name, status string, goal, raised float64) *models.Campaign {
	s.nextID++
	campaign := &models.Campaign{
		ID:           s.nextID,
		Name:         name,
		Status:       status,
		StartDate:    time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2026, time.December, 31, 0, 0, 0, 0, time.UTC),
		GoalAmount:   goal,
		RaisedAmount: raised,
		ManagedBy:    1,
	}
	s.campaigns[campaign.ID] = campaign
	return campaign
}

type stubProjectRepo struct {
	projects map[uint]*models.Project
	nextID   uint
}

func newStubProjectRepo() *stubProjectRepo {
	return &stubProjectRepo{projects: make(map[uint]*models.Project)}
}

func (s *stubProjectRepo) Create(ctx context.Context, project *models.Project) error {
	s.nextID++
	project.ID = s.nextID
	s.projects[project.ID] = project
	return nil
}

func (s *stubProjectRepo) GetByID(ctx context.Context, id uint) (*models.Project, error) {
	if project, ok := s.projects[id]; ok {
		return project, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubProjectRepo) ApplyExpense(ctx context.Context, id uint, amount float64) (*models.Project, bool, error) {
	project, ok := s.projects[id]
	if !ok {
		return nil, false, gorm.ErrRecordNotFound
	}
	if project.Spent+amount > project.Budget {
		return project, false, nil
	}
	project.Spent += amount
	if project.Spent >= project.Budget {
		project.Status = models.ProjectStatusCompleted
	}
	return project, true, nil
}

func (s *stubProjectRepo) LinkCampaign(ctx context.Context, projectID, campaignID uint) error {
	if project, ok := s.projects[projectID]; ok {
		id := campaignID
		project.CampaignID = &id
	}
	return nil
}

func (s *stubProjectRepo) ListAll(ctx context.Context) ([]*models.Project, error) {
	all := make([]*models.Project, 0, len(s.projects))
	for _, project := range s.projects {
		all = append(all, project)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all, nil
}

func (s *stubProjectRepo) List(ctx context.Context, offset, limit int) ([]*models.Project, int64, error) {
	all, _ := s.ListAll(ctx)
	total := int64(len(all))
	if offset >= len(all) {
		return []*models.Project{}, total, nil
	}
	all = all[offset:]
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, total, nil
}

func (s *stubProjectRepo) seed(name, status string, budget, spent float64) *models.Project {
	s.nextID++
	project := &models.Project{
		ID:        s.nextID,
		Name:      name,
		Budget:    budget,
		Spent:     spent,
		Status:    status,
		StartDate: time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC),
		ManagedBy: 1,
	}
	s.projects[project.ID] = project
	return project
}

type stubDonationRepo struct {
	donations []*models.Donation
	campaigns *stubCampaignRepo
	nextID    uint
}

func newStubDonationRepo(campaigns *stubCampaignRepo) *stubDonationRepo {
	return &stubDonationRepo{campaigns: campaigns}
}

func (s *stubDonationRepo) Record(ctx context.Context, donation *models.Donation) (bool, error) {
	campaign, ok := s.campaigns.campaigns[donation.CampaignID]
	if !ok || campaign.Status != models.CampaignStatusActive {
		return false, nil
	}
	campaign.RaisedAmount += donation.Amount
	s.nextID++
	donation.ID = s.nextID
	s.donations = append(s.donations, donation)
	return true, nil
}

func (s *stubDonationRepo) GetReceipt(ctx context.Context, id uint) (*models.ReceiptView, error) {
	for _, donation := range s.donations {
		if donation.ID != id {
			continue
		}
		receipt := &models.ReceiptView{
			DonationID:    donation.ID,
			ReferenceNo:   donation.ReferenceNo,
			DonorID:       donation.DonorID,
			CampaignID:    donation.CampaignID,
			Amount:        donation.Amount,
			PaymentMethod: donation.PaymentMethod,
			DonatedAt:     donation.DonatedAt,
		}
		if campaign, ok := s.campaigns.campaigns[donation.CampaignID]; ok {
			receipt.CampaignName = campaign.Name
		}
		return receipt, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubDonationRepo) ListByDonor(ctx context.Context, donorID uint, offset, limit int) ([]*models.Donation, int64, error) {
	var owned []*models.Donation
	for _, donation := range s.donations {
		if donation.DonorID == donorID {
			owned = append(owned, donation)
		}
	}
	return slicePage(owned, offset, limit)
}

func (s *stubDonationRepo) List(ctx context.Context, offset, limit int) ([]*models.Donation, int64, error) {
	return slicePage(s.donations, offset, limit)
}

func slicePage(donations []*models.Donation, offset, limit int) ([]*models.Donation, int64, error) {
	total := int64(len(donations))
	if offset >= len(donations) {
		return []*models.Donation{}, total, nil
	}
	donations = donations[offset:]
	if limit > 0 && len(donations) > limit {
		donations = donations[:limit]
	}
	return donations, total, nil
}

// asUser injects the locals the auth middleware would have set
func asUser(role string, profileID uint) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("credentialID", uint(1))
		c.Locals("profileID", profileID)
		c.Locals("email", "test@hcf.or.th")
		c.Locals("role", role)
		return c.Next()
	}
}

func jsonRequest(method, target string, payload interface{}) *http.Request {
	var body io.Reader
	if payload != nil {
		raw, _ := json.Marshal(payload)
		body = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeJSON(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}
