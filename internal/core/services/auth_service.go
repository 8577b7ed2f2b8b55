package services

import (
	"context"
	"errors"
	"log"
	"time"

	"hcf-givehub/internal/adapters/persistence/models"
	"hcf-givehub/internal/adapters/persistence/repositories"
	"hcf-givehub/internal/config"
	"hcf-givehub/internal/core/domain"
	"hcf-givehub/internal/pkg/jwt"
	"hcf-givehub/internal/pkg/password"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Auth errors
var (
	ErrCredentialNotFound    = errors.New("credential not found")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrEmailAlreadyUsed      = errors.New("email already registered")
	ErrNationalIDAlreadyUsed = errors.New("national id already registered")
	ErrInvalidRole           = errors.New("invalid role")
	ErrInvalidToken          = errors.New("invalid token")
	ErrTokenExpired          = errors.New("token expired")
	ErrTokenRevoked          = errors.New("token revoked")
	ErrAccountInactive       = errors.New("account is inactive")
)

// AuthService handles authentication business logic
type AuthService struct {
	credentialRepo   repositories.CredentialRepository
	refreshTokenRepo repositories.RefreshTokenRepository
	cfg              *config.Config
}

// NewAuthService creates a new auth service
func NewAuthService(
	credentialRepo repositories.CredentialRepository,
	refreshTokenRepo repositories.RefreshTokenRepository,
	cfg *config.Config,
) *AuthService {
	return &AuthService{
		credentialRepo:   credentialRepo,
		refreshTokenRepo: refreshTokenRepo,
		cfg:              cfg,
	}
}

// RegisterInput represents registration input
type RegisterInput struct {
	Email      string `json:"email" validate:"required,email"`
	NationalID string `json:"national_id" validate:"required,min=5,max=20"`
	Password   string `json:"password" validate:"required,min=8"`
	Role       string `json:"role" validate:"required,oneof=STAFF DONOR"`
	FirstName  string `json:"first_name" validate:"required,max=100"`
	LastName   string `json:"last_name" validate:"required,max=100"`
}

// LoginInput represents login input
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// TokenPair represents access and refresh tokens
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	Credential   *models.CredentialResponse `json:"credential"`
	AccessToken  string                     `json:"access_token"`
	RefreshToken string                     `json:"refresh_token"`
}

// Register registers a new credential with its role profile
func (s *AuthService) Register(ctx context.Context, input *RegisterInput) (*AuthResponse, error) {
	// 1. Validate role
	role := domain.Role(input.Role)
	if !role.IsValid() {
		return nil, ErrInvalidRole
	}

	// 2. Check if email already exists
	exists, err := s.credentialRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailAlreadyUsed
	}

	// 3. Check if national id already exists
	exists, err = s.credentialRepo.ExistsByNationalID(ctx, input.NationalID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrNationalIDAlreadyUsed
	}

	// 4. Hash password
	hashedPassword, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	// 5. Create credential with its profile in one transaction
	cred := &models.Credential{
		Email:      input.Email,
		NationalID: input.NationalID,
		Password:   hashedPassword,
		Role:       input.Role,
		IsActive:   true,
	}

	var profileID uint
	switch role {
	case domain.RoleStaff:
		profile := &models.StaffProfile{
			FirstName:  input.FirstName,
			LastName:   input.LastName,
			DateJoined: time.Now(),
		}
		if err := s.credentialRepo.CreateWithStaffProfile(ctx, cred, profile); err != nil {
			return nil, err
		}
		profileID = profile.ID
	case domain.RoleDonor:
		profile := &models.DonorProfile{
			FirstName: input.FirstName,
			LastName:  input.LastName,
		}
		if err := s.credentialRepo.CreateWithDonorProfile(ctx, cred, profile); err != nil {
			return nil, err
		}
		profileID = profile.ID
	}

	// 6. Generate tokens
	tokens, err := s.generateTokens(cred, profileID)
	if err != nil {
		return nil, err
	}

	// 7. Store refresh token
	if err := s.storeRefreshToken(ctx, cred.ID, tokens.RefreshToken); err != nil {
		return nil, err
	}

	// 8. Build response
	credResponse := cred.ToResponse()
	credResponse.ProfileID = profileID
	credResponse.FirstName = input.FirstName
	credResponse.LastName = input.LastName

	log.Printf("✅ Credential registered: %s (%s)", cred.Email, cred.Role)

	return &AuthResponse{
		Credential:   credResponse,
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}, nil
}

// Login authenticates a credential
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*AuthResponse, error) {
	// 1. Find credential by email
	cred, err := s.credentialRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	// 2. Check if account is active
	if !cred.IsActive {
		return nil, ErrAccountInactive
	}

	// 3. Verify password
	if !password.Verify(input.Password, cred.Password) {
		return nil, ErrInvalidCredentials
	}

	// 4. Load role profile
	profileID, firstName, lastName, err := s.loadProfile(ctx, cred)
	if err != nil {
		return nil, err
	}

	// 5. Generate tokens
	tokens, err := s.generateTokens(cred, profileID)
	if err != nil {
		return nil, err
	}

	// 6. Store refresh token
	if err := s.storeRefreshToken(ctx, cred.ID, tokens.RefreshToken); err != nil {
		return nil, err
	}

	// 7. Build response
	credResponse := cred.ToResponse()
	credResponse.ProfileID = profileID
	credResponse.FirstName = firstName
	credResponse.LastName = lastName

	log.Printf("✅ Credential logged in: %s", cred.Email)

	return &AuthResponse{
		Credential:   credResponse,
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}, nil
}

// RefreshToken refreshes the access token using refresh token
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	// 1. Validate refresh token JWT
	claims, err := jwt.ValidateRefreshToken(refreshToken, s.cfg.JWT.RefreshSecret)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	// 2. Hash the token to find in DB
	tokenHash := password.HashToken(refreshToken)

	// 3. Find token in DB
	storedToken, err := s.refreshTokenRepo.GetByTokenHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}

	// 4. Check if token is revoked
	if storedToken.IsRevoked() {
		return nil, ErrTokenRevoked
	}

	// 5. Check if token is expired
	if storedToken.IsExpired() {
		return nil, ErrTokenExpired
	}

	// 6. Get credential
	cred, err := s.credentialRepo.GetByID(ctx, claims.CredentialID)
	if err != nil {
		return nil, ErrCredentialNotFound
	}

	// 7. Check if account is active
	if !cred.IsActive {
		return nil, ErrAccountInactive
	}

	// 8. Revoke old refresh token (Token Rotation)
	if err := s.refreshTokenRepo.Revoke(ctx, storedToken.ID); err != nil {
		return nil, err
	}

	// 9. Load role profile
	profileID, firstName, lastName, err := s.loadProfile(ctx, cred)
	if err != nil {
		return nil, err
	}

	// 10. Generate new tokens
	tokens, err := s.generateTokens(cred, profileID)
	if err != nil {
		return nil, err
	}

	// 11. Store new refresh token
	if err := s.storeRefreshToken(ctx, cred.ID, tokens.RefreshToken); err != nil {
		return nil, err
	}

	// 12. Build response
	credResponse := cred.ToResponse()
	credResponse.ProfileID = profileID
	credResponse.FirstName = firstName
	credResponse.LastName = lastName

	log.Printf("✅ Token refreshed for: %s", cred.Email)

	return &AuthResponse{
		Credential:   credResponse,
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}, nil
}

// Logout revokes the refresh token
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	// Hash the token
	tokenHash := password.HashToken(refreshToken)

	// Revoke the token
	if err := s.refreshTokenRepo.RevokeByTokenHash(ctx, tokenHash); err != nil {
		return err
	}

	log.Printf("✅ Credential logged out")
	return nil
}

// LogoutAll revokes all refresh tokens for a credential
func (s *AuthService) LogoutAll(ctx context.Context, credentialID uint) error {
	if err := s.refreshTokenRepo.RevokeAllByCredentialID(ctx, credentialID); err != nil {
		return err
	}

	log.Printf("✅ All sessions revoked for credential ID: %d", credentialID)
	return nil
}

// ValidateAccessToken validates an access token
func (s *AuthService) ValidateAccessToken(accessToken string) (*jwt.Claims, error) {
	return jwt.ValidateAccessToken(accessToken, s.cfg.JWT.Secret)
}

// Me returns the credential and profile behind an access token
func (s *AuthService) Me(ctx context.Context, credentialID uint) (*models.CredentialResponse, error) {
	cred, err := s.credentialRepo.GetByID(ctx, credentialID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCredentialNotFound
		}
		return nil, err
	}

	profileID, firstName, lastName, err := s.loadProfile(ctx, cred)
	if err != nil {
		return nil, err
	}

	credResponse := cred.ToResponse()
	credResponse.ProfileID = profileID
	credResponse.FirstName = firstName
	credResponse.LastName = lastName
	return credResponse, nil
}

// loadProfile loads the role profile owned by a credential
func (s *AuthService) loadProfile(ctx context.Context, cred *models.Credential) (uint, string, string, error) {
	switch domain.Role(cred.Role) {
	case domain.RoleStaff:
		profile, err := s.credentialRepo.GetStaffProfile(ctx, cred.ID)
		if err != nil {
			return 0, "", "", err
		}
		return profile.ID, profile.FirstName, profile.LastName, nil
	case domain.RoleDonor:
		profile, err := s.credentialRepo.GetDonorProfile(ctx, cred.ID)
		if err != nil {
			return 0, "", "", err
		}
		return profile.ID, profile.FirstName, profile.LastName, nil
	}
	return 0, "", "", ErrInvalidRole
}

// generateTokens generates access and refresh tokens
func (s *AuthService) generateTokens(cred *models.Credential, profileID uint) (*TokenPair, error) {
	// Generate access token
	accessToken, err := jwt.GenerateAccessToken(
		cred.ID,
		profileID,
		cred.Email,
		cred.Role,
		s.cfg.JWT.Secret,
		s.cfg.JWT.AccessTokenMins,
	)
	if err != nil {
		return nil, err
	}

	// Generate unique token ID
	tokenID := uuid.New().String()

	// Generate refresh token
	refreshToken, err := jwt.GenerateRefreshToken(
		cred.ID,
		tokenID,
		s.cfg.JWT.RefreshSecret,
		s.cfg.JWT.RefreshTokenDays,
	)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// storeRefreshToken stores a refresh token in the database
func (s *AuthService) storeRefreshToken(ctx context.Context, credentialID uint, refreshToken string) error {
	tokenHash := password.HashToken(refreshToken)
	expiresAt := jwt.GetExpiryTime(s.cfg.JWT.RefreshTokenDays)

	token := &models.RefreshToken{
		CredentialID: credentialID,
		TokenHash:    tokenHash,
		ExpiresAt:    expiresAt,
	}

	return s.refreshTokenRepo.Create(ctx, token)
}
