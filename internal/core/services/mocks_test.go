package services

import (
	"context"
	"sort"
	"time"

	"hcf-givehub/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// In-memory repository fakes. Each method uses the XxxFunc override when
// set and otherwise falls back to map-backed behavior that mirrors the
// real repository contracts, including the revoked-row filter and the
// guarded increments.

// fakeCredentialRepo implements repositories.CredentialRepository
type fakeCredentialRepo struct {
	creds         map[uint]*models.Credential
	staffProfiles map[uint]*models.StaffProfile // keyed by credential ID
	donorProfiles map[uint]*models.DonorProfile // keyed by credential ID
	nextCredID    uint
	nextProfileID uint

	GetByEmailFunc func(ctx context.Context, email string) (*models.Credential, error)
}

func newFakeCredentialRepo() *fakeCredentialRepo {
	return &fakeCredentialRepo{
		creds:         make(map[uint]*models.Credential),
		staffProfiles: make(map[uint]*models.StaffProfile),
		donorProfiles: make(map[uint]*models.DonorProfile),
	}
}

func (f *fakeCredentialRepo) CreateWithStaffProfile(ctx context.Context, cred *models.Credential, profile *models.StaffProfile) error {
	f.nextCredID++
	cred.ID = f.nextCredID
	f.nextProfileID++
	profile.ID = f.nextProfileID
	profile.CredentialID = cred.ID
	f.creds[cred.ID] = cred
	f.staffProfiles[cred.ID] = profile
	return nil
}

func (f *fakeCredentialRepo) CreateWithDonorProfile(ctx context.Context, cred *models.Credential, profile *models.DonorProfile) error {
	f.nextCredID++
	cred.ID = f.nextCredID
	f.nextProfileID++
	profile.ID = f.nextProfileID
	profile.CredentialID = cred.ID
	f.creds[cred.ID] = cred
	f.donorProfiles[cred.ID] = profile
	return nil
}

func (f *fakeCredentialRepo) GetByID(ctx context.Context, id uint) (*models.Credential, error) {
	cred, ok := f.creds[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return cred, nil
}

func (f *fakeCredentialRepo) GetByEmail(ctx context.Context, email string) (*models.Credential, error) {
	if f.GetByEmailFunc != nil {
		return f.GetByEmailFunc(ctx, email)
	}
	for _, cred := range f.creds {
		if cred.Email == email {
			return cred, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCredentialRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	for _, cred := range f.creds {
		if cred.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeCredentialRepo) ExistsByNationalID(ctx context.Context, nationalID string) (bool, error) {
	for _, cred := range f.creds {
		if cred.NationalID == nationalID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeCredentialRepo) GetStaffProfile(ctx context.Context, credentialID uint) (*models.StaffProfile, error) {
	profile, ok := f.staffProfiles[credentialID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return profile, nil
}

func (f *fakeCredentialRepo) GetDonorProfile(ctx context.Context, credentialID uint) (*models.DonorProfile, error) {
	profile, ok := f.donorProfiles[credentialID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return profile, nil
}

// seedDonor inserts a ready-made donor credential for login tests
func (f *fakeCredentialRepo) seedDonor(email, nationalID, hashedPassword string, active bool) (*models.Credential, *models.DonorProfile) {
	cred := &models.Credential{
		Email:      email,
		NationalID: nationalID,
		Password:   hashedPassword,
		Role:       "DONOR",
		IsActive:   active,
	}
	profile := &models.DonorProfile{FirstName: "Malee", LastName: "Donor"}
	_ = f.CreateWithDonorProfile(context.Background(), cred, profile)
	return cred, profile
}

// fakeRefreshTokenRepo implements repositories.RefreshTokenRepository
type fakeRefreshTokenRepo struct {
	tokens map[uint]*models.RefreshToken
	nextID uint

	GetByTokenHashFunc func(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	CreateCount        int
}

func newFakeRefreshTokenRepo() *fakeRefreshTokenRepo {
	return &fakeRefreshTokenRepo{tokens: make(map[uint]*models.RefreshToken)}
}

func (f *fakeRefreshTokenRepo) Create(ctx context.Context, token *models.RefreshToken) error {
	f.nextID++
	token.ID = f.nextID
	token.CreatedAt = time.Now()
	f.tokens[token.ID] = token
	f.CreateCount++
	return nil
}

// GetByTokenHash never returns revoked rows, like the real query
func (f *fakeRefreshTokenRepo) GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error) {
	if f.GetByTokenHashFunc != nil {
		return f.GetByTokenHashFunc(ctx, tokenHash)
	}
	for _, token := range f.tokens {
		if token.TokenHash == tokenHash && token.RevokedAt == nil {
			return token, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRefreshTokenRepo) Revoke(ctx context.Context, id uint) error {
	if token, ok := f.tokens[id]; ok {
		now := time.Now()
		token.RevokedAt = &now
	}
	return nil
}

func (f *fakeRefreshTokenRepo) RevokeByTokenHash(ctx context.Context, tokenHash string) error {
	for _, token := range f.tokens {
		if token.TokenHash == tokenHash {
			now := time.Now()
			token.RevokedAt = &now
		}
	}
	return nil
}

func (f *fakeRefreshTokenRepo) RevokeAllByCredentialID(ctx context.Context, credentialID uint) error {
	for _, token := range f.tokens {
		if token.CredentialID == credentialID && token.RevokedAt == nil {
			now := time.Now()
			token.RevokedAt = &now
		}
	}
	return nil
}

func (f *fakeRefreshTokenRepo) DeleteExpired(ctx context.Context) (int64, error) {
	var deleted int64
	for id, token := range f.tokens {
		if time.Now().After(token.ExpiresAt) {
			delete(f.tokens, id)
			deleted++
		}
	}
	return deleted, nil
}

// findByHash returns the stored row regardless of revocation, for assertions
func (f *fakeRefreshTokenRepo) findByHash(tokenHash string) *models.RefreshToken {
	for _, token := range f.tokens {
		if token.TokenHash == tokenHash {
			return token
		}
	}
	return nil
}

// fakeCampaignRepo implements repositories.CampaignRepository
type fakeCampaignRepo struct {
	campaigns map[uint]*models.Campaign
	nextID    uint

	UpdateStatusFunc func(ctx context.Context, id uint, status string) error
}

func newFakeCampaignRepo() *fakeCampaignRepo {
	return &fakeCampaignRepo{campaigns: make(map[uint]*models.Campaign)}
}

func (f *fakeCampaignRepo) Create(ctx context.Context, campaign *models.Campaign) error {
	f.nextID++
	campaign.ID = f.nextID
	f.campaigns[campaign.ID] = campaign
	return nil
}

func (f *fakeCampaignRepo) GetByID(ctx context.Context, id uint) (*models.Campaign, error) {
	campaign, ok := f.campaigns[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return campaign, nil
}

func (f *fakeCampaignRepo) ExistsByName(ctx context.Context, name string) (bool, error) {
	for _, campaign := range f.campaigns {
		if campaign.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeCampaignRepo) UpdateStatus(ctx context.Context, id uint, status string) error {
	if f.UpdateStatusFunc != nil {
		return f.UpdateStatusFunc(ctx, id, status)
	}
	if campaign, ok := f.campaigns[id]; ok {
		campaign.Status = status
	}
	return nil
}

func (f *fakeCampaignRepo) ListActive(ctx context.Context) ([]*models.Campaign, error) {
	var active []*models.Campaign
	for _, campaign := range f.sorted() {
		if campaign.Status == models.CampaignStatusActive {
			active = append(active, campaign)
		}
	}
	return active, nil
}

func (f *fakeCampaignRepo) ListAll(ctx context.Context) ([]*models.Campaign, error) {
	return f.sorted(), nil
}

func (f *fakeCampaignRepo) List(ctx context.Context, offset, limit int) ([]*models.Campaign, int64, error) {
	all := f.sorted()
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

func (f *fakeCampaignRepo) CompleteExpired(ctx context.Context, now time.Time) (int64, error) {
	var swept int64
	for _, campaign := range f.campaigns {
		if campaign.Status == models.CampaignStatusActive && campaign.EndDate.Before(now) {
			campaign.Status = models.CampaignStatusCompleted
			swept++
		}
	}
	return swept, nil
}

func (f *fakeCampaignRepo) sorted() []*models.Campaign {
	all := make([]*models.Campaign, 0, len(f.campaigns))
	for _, campaign := range f.campaigns {
		all = append(all, campaign)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all
}

// seed inserts a campaign in an arbitrary state
func (f *fakeCampaignRepo) seed(name, status string, goal, raised float64) *models.Campaign {
	f.nextID++
	campaign := &models.Campaign{
		ID:           f.nextID,
		Name:         name,
		Status:       status,
		StartDate:    time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2026, time.December, 31, 0, 0, 0, 0, time.UTC),
		GoalAmount:   goal,
		RaisedAmount: raised,
		ManagedBy:    1,
	}
	f.campaigns[campaign.ID] = campaign
	return campaign
}

// fakeProjectRepo implements repositories.ProjectRepository
type fakeProjectRepo struct {
	projects map[uint]*models.Project
	nextID   uint

	ApplyExpenseFunc func(ctx context.Context, id uint, amount float64) (*models.Project, bool, error)
}

func newFakeProjectRepo() *fakeProjectRepo {
	return &fakeProjectRepo{projects: make(map[uint]*models.Project)}
}

func (f *fakeProjectRepo) Create(ctx context.Context, project *models.Project) error {
	f.nextID++
	project.ID = f.nextID
	f.projects[project.ID] = project
	return nil
}

func (f *fakeProjectRepo) GetByID(ctx context.Context, id uint) (*models.Project, error) {
	project, ok := f.projects[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return project, nil
}

// ApplyExpense mirrors the guarded increment: the write happens only when
// the amount fits, and filling the budget flips the status
func (f *fakeProjectRepo) ApplyExpense(ctx context.Context, id uint, amount float64) (*models.Project, bool, error) {
	if f.ApplyExpenseFunc != nil {
		return f.ApplyExpenseFunc(ctx, id, amount)
	}
	project, ok := f.projects[id]
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

func (f *fakeProjectRepo) LinkCampaign(ctx context.Context, projectID, campaignID uint) error {
	if project, ok := f.projects[projectID]; ok {
		id := campaignID
		project.CampaignID = &id
	}
	return nil
}

func (f *fakeProjectRepo) ListAll(ctx context.Context) ([]*models.Project, error) {
	return f.sorted(), nil
}

func (f *fakeProjectRepo) List(ctx context.Context, offset, limit int) ([]*models.Project, int64, error) {
	all := f.sorted()
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

func (f *fakeProjectRepo) sorted() []*models.Project {
	all := make([]*models.Project, 0, len(f.projects))
	for _, project := range f.projects {
		all = append(all, project)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all
}

// seed inserts a project in an arbitrary state
func (f *fakeProjectRepo) seed(name, status string, budget, spent float64) *models.Project {
	f.nextID++
	project := &models.Project{
		ID:        f.nextID,
		Name:      name,
		Budget:    budget,
		Spent:     spent,
		Status:    status,
		StartDate: time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC),
		ManagedBy: 1,
	}
	f.projects[project.ID] = project
	return project
}

// fakeDonationRepo implements repositories.DonationRepository. It shares
// the campaign fake so a recorded donation moves the raised total the way
// the real transaction does.
type fakeDonationRepo struct {
	donations []*models.Donation
	campaigns *fakeCampaignRepo
	nextID    uint

	GetReceiptFunc func(ctx context.Context, id uint) (*models.ReceiptView, error)
}

func newFakeDonationRepo(campaigns *fakeCampaignRepo) *fakeDonationRepo {
	return &fakeDonationRepo{campaigns: campaigns}
}

func (f *fakeDonationRepo) Record(ctx context.Context, donation *models.Donation) (bool, error) {
	campaign, ok := f.campaigns.campaigns[donation.CampaignID]
	if !ok || campaign.Status != models.CampaignStatusActive {
		return false, nil
	}
	campaign.RaisedAmount += donation.Amount
	f.nextID++
	donation.ID = f.nextID
	f.donations = append(f.donations, donation)
	return true, nil
}

func (f *fakeDonationRepo) GetReceipt(ctx context.Context, id uint) (*models.ReceiptView, error) {
	if f.GetReceiptFunc != nil {
		return f.GetReceiptFunc(ctx, id)
	}
	for _, donation := range f.donations {
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
		if campaign, ok := f.campaigns.campaigns[donation.CampaignID]; ok {
			receipt.CampaignName = campaign.Name
		}
		return receipt, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeDonationRepo) ListByDonor(ctx context.Context, donorID uint, offset, limit int) ([]*models.Donation, int64, error) {
	var owned []*models.Donation
	for _, donation := range f.donations {
		if donation.DonorID == donorID {
			owned = append(owned, donation)
		}
	}
	return paginateDonations(owned, offset, limit)
}

func (f *fakeDonationRepo) List(ctx context.Context, offset, limit int) ([]*models.Donation, int64, error) {
	return paginateDonations(f.donations, offset, limit)
}

func paginateDonations(donations []*models.Donation, offset, limit int) ([]*models.Donation, int64, error) {
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
