package services

import (
	"context"
	"testing"
	"time"

	"hcf-givehub/internal/adapters/persistence/models"
	"hcf-givehub/internal/config"
	"hcf-givehub/internal/pkg/jwt"
	"hcf-givehub/internal/pkg/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAuthConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:           "test-access-secret",
			RefreshSecret:    "test-refresh-secret",
			AccessTokenMins:  15,
			RefreshTokenDays: 7,
		},
	}
}

func newAuthService() (*AuthService, *fakeCredentialRepo, *fakeRefreshTokenRepo) {
	credRepo := newFakeCredentialRepo()
	refreshRepo := newFakeRefreshTokenRepo()
	return NewAuthService(credRepo, refreshRepo, testAuthConfig()), credRepo, refreshRepo
}

func donorInput() *RegisterInput {
	return &RegisterInput{
		Email:      "malee@example.com",
		NationalID: "1234567890123",
		Password:   "donor-password-1",
		Role:       "DONOR",
		FirstName:  "Malee",
		LastName:   "Jaidee",
	}
}

func TestAuthService_Register_Donor(t *testing.T) {
	t.Parallel()

	svc, credRepo, refreshRepo := newAuthService()

	resp, err := svc.Register(context.Background(), donorInput())

	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "DONOR", resp.Credential.Role)
	assert.Equal(t, "Malee", resp.Credential.FirstName)
	assert.NotZero(t, resp.Credential.ProfileID)
	assert.True(t, resp.Credential.IsActive)

	// Password is stored hashed, never as given
	stored := credRepo.creds[resp.Credential.ID]
	require.NotNil(t, stored)
	assert.NotEqual(t, "donor-password-1", stored.Password)
	assert.True(t, password.Verify("donor-password-1", stored.Password))

	// The refresh token is stored as a hash
	assert.Equal(t, 1, refreshRepo.CreateCount)
	row := refreshRepo.findByHash(password.HashToken(resp.RefreshToken))
	require.NotNil(t, row)
	assert.Equal(t, resp.Credential.ID, row.CredentialID)
	assert.True(t, row.ExpiresAt.After(time.Now()))
}

func TestAuthService_Register_Staff(t *testing.T) {
	t.Parallel()

	svc, credRepo, _ := newAuthService()

	resp, err := svc.Register(context.Background(), &RegisterInput{
		Email:      "somchai@hcf.or.th",
		NationalID: "9876543210987",
		Password:   "staff-password-1",
		Role:       "STAFF",
		FirstName:  "Somchai",
		LastName:   "Meesuk",
	})

	require.NoError(t, err)
	assert.Equal(t, "STAFF", resp.Credential.Role)

	profile := credRepo.staffProfiles[resp.Credential.ID]
	require.NotNil(t, profile)
	assert.Equal(t, "Somchai", profile.FirstName)
	assert.False(t, profile.DateJoined.IsZero())
}

func TestAuthService_Register_InvalidRole(t *testing.T) {
	t.Parallel()

	svc, _, _ := newAuthService()

	input := donorInput()
	input.Role = "ADMIN"

	resp, err := svc.Register(context.Background(), input)

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	t.Parallel()

	svc, _, _ := newAuthService()

	_, err := svc.Register(context.Background(), donorInput())
	require.NoError(t, err)

	second := donorInput()
	second.NationalID = "3210987654321"

	resp, err := svc.Register(context.Background(), second)

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrEmailAlreadyUsed)
}

func TestAuthService_Register_DuplicateNationalID(t *testing.T) {
	t.Parallel()

	svc, _, _ := newAuthService()

	_, err := svc.Register(context.Background(), donorInput())
	require.NoError(t, err)

	second := donorInput()
	second.Email = "other@example.com"

	resp, err := svc.Register(context.Background(), second)

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrNationalIDAlreadyUsed)
}

func TestAuthService_Login_Success(t *testing.T) {
	t.Parallel()

	svc, credRepo, refreshRepo := newAuthService()

	hashed, err := password.Hash("donor-password-1")
	require.NoError(t, err)
	credRepo.seedDonor("malee@example.com", "1234567890123", hashed, true)

	resp, err := svc.Login(context.Background(), &LoginInput{
		Email:    "malee@example.com",
		Password: "donor-password-1",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "Malee", resp.Credential.FirstName)
	assert.Equal(t, 1, refreshRepo.CreateCount)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	t.Parallel()

	svc, credRepo, _ := newAuthService()

	hashed, err := password.Hash("donor-password-1")
	require.NoError(t, err)
	credRepo.seedDonor("malee@example.com", "1234567890123", hashed, true)

	resp, err := svc.Login(context.Background(), &LoginInput{
		Email:    "malee@example.com",
		Password: "wrong-password",
	})

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	t.Parallel()

	svc, _, _ := newAuthService()

	resp, err := svc.Login(context.Background(), &LoginInput{
		Email:    "nobody@example.com",
		Password: "whatever-password",
	})

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Login_InactiveAccount(t *testing.T) {
	t.Parallel()

	svc, credRepo, _ := newAuthService()

	hashed, err := password.Hash("donor-password-1")
	require.NoError(t, err)
	credRepo.seedDonor("malee@example.com", "1234567890123", hashed, false)

	resp, err := svc.Login(context.Background(), &LoginInput{
		Email:    "malee@example.com",
		Password: "donor-password-1",
	})

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrAccountInactive)
}

func TestAuthService_RefreshToken_Rotation(t *testing.T) {
	t.Parallel()

	svc, _, refreshRepo := newAuthService()
	ctx := context.Background()

	registered, err := svc.Register(ctx, donorInput())
	require.NoError(t, err)
	firstRefresh := registered.RefreshToken

	refreshed, err := svc.RefreshToken(ctx, firstRefresh)

	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.NotEqual(t, firstRefresh, refreshed.RefreshToken)
	assert.Equal(t, 2, refreshRepo.CreateCount)

	// The used token is revoked in place
	oldRow := refreshRepo.findByHash(password.HashToken(firstRefresh))
	require.NotNil(t, oldRow)
	assert.NotNil(t, oldRow.RevokedAt)

	// Replaying the rotated token is refused
	replayed, err := svc.RefreshToken(ctx, firstRefresh)
	assert.Nil(t, replayed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthService_RefreshToken_Garbage(t *testing.T) {
	t.Parallel()

	svc, _, _ := newAuthService()

	resp, err := svc.RefreshToken(context.Background(), "not-a-jwt-at-all")

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthService_RefreshToken_ExpiredJWT(t *testing.T) {
	t.Parallel()

	svc, _, _ := newAuthService()

	expired, err := jwt.GenerateRefreshToken(1, "token-id-1", testAuthConfig().JWT.RefreshSecret, -1)
	require.NoError(t, err)

	resp, err := svc.RefreshToken(context.Background(), expired)

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestAuthService_RefreshToken_StoredRowExpired(t *testing.T) {
	t.Parallel()

	svc, _, refreshRepo := newAuthService()
	ctx := context.Background()

	registered, err := svc.Register(ctx, donorInput())
	require.NoError(t, err)

	row := refreshRepo.findByHash(password.HashToken(registered.RefreshToken))
	require.NotNil(t, row)
	row.ExpiresAt = time.Now().Add(-time.Hour)

	resp, err := svc.RefreshToken(ctx, registered.RefreshToken)

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestAuthService_RefreshToken_RevokedRow(t *testing.T) {
	t.Parallel()

	svc, _, refreshRepo := newAuthService()
	ctx := context.Background()

	registered, err := svc.Register(ctx, donorInput())
	require.NoError(t, err)

	// Surface the revoked row instead of filtering it out
	now := time.Now()
	refreshRepo.GetByTokenHashFunc = func(ctx context.Context, tokenHash string) (*models.RefreshToken, error) {
		return &models.RefreshToken{
			ID:           1,
			CredentialID: registered.Credential.ID,
			TokenHash:    tokenHash,
			ExpiresAt:    now.Add(time.Hour),
			RevokedAt:    &now,
		}, nil
	}

	resp, err := svc.RefreshToken(ctx, registered.RefreshToken)

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrTokenRevoked)
}

func TestAuthService_RefreshToken_InactiveAccount(t *testing.T) {
	t.Parallel()

	svc, credRepo, _ := newAuthService()
	ctx := context.Background()

	registered, err := svc.Register(ctx, donorInput())
	require.NoError(t, err)

	credRepo.creds[registered.Credential.ID].IsActive = false

	resp, err := svc.RefreshToken(ctx, registered.RefreshToken)

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrAccountInactive)
}

func TestAuthService_Logout(t *testing.T) {
	t.Parallel()

	svc, _, refreshRepo := newAuthService()
	ctx := context.Background()

	registered, err := svc.Register(ctx, donorInput())
	require.NoError(t, err)

	err = svc.Logout(ctx, registered.RefreshToken)

	require.NoError(t, err)
	row := refreshRepo.findByHash(password.HashToken(registered.RefreshToken))
	require.NotNil(t, row)
	assert.NotNil(t, row.RevokedAt)
}

func TestAuthService_LogoutAll(t *testing.T) {
	t.Parallel()

	svc, _, refreshRepo := newAuthService()
	ctx := context.Background()

	registered, err := svc.Register(ctx, donorInput())
	require.NoError(t, err)

	_, err = svc.Login(ctx, &LoginInput{Email: "malee@example.com", Password: "donor-password-1"})
	require.NoError(t, err)
	require.Equal(t, 2, refreshRepo.CreateCount)

	err = svc.LogoutAll(ctx, registered.Credential.ID)

	require.NoError(t, err)
	for _, row := range refreshRepo.tokens {
		assert.NotNil(t, row.RevokedAt)
	}
}

func TestAuthService_Me(t *testing.T) {
	t.Parallel()

	svc, _, _ := newAuthService()
	ctx := context.Background()

	registered, err := svc.Register(ctx, donorInput())
	require.NoError(t, err)

	me, err := svc.Me(ctx, registered.Credential.ID)

	require.NoError(t, err)
	assert.Equal(t, "malee@example.com", me.Email)
	assert.Equal(t, "Malee", me.FirstName)
	assert.Equal(t, registered.Credential.ProfileID, me.ProfileID)

	missing, err := svc.Me(ctx, 999)
	assert.Nil(t, missing)
	assert.ErrorIs(t, err, ErrCredentialNotFound)
}
