package services

import (
	"context"
	"errors"
	"fmt"

	"wholesale-backend/internal/auth"
	"wholesale-backend/internal/cache"
	"wholesale-backend/internal/models"
	"wholesale-backend/internal/repositories"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountDisabled    = errors.New("account is disabled")
	// ErrTOTPRequired signals that step one of login succeeded and the
	// caller must present a TOTP code with the temp token
	ErrTOTPRequired = errors.New("2fa verification required")
)

type UserService struct {
	Repo *repositories.UserRepository
	JWT  *auth.JWTManager
	TOTP *TOTPService
}

func NewUserService(repo *repositories.UserRepository, jwt *auth.JWTManager, totp *TOTPService) *UserService {
	return &UserService{Repo: repo, JWT: jwt, TOTP: totp}
}

// LoginResult carries either a session token or a short-lived 2FA token
type LoginResult struct {
	Token        string       `json:"token,omitempty"`
	TempToken    string       `json:"temp_token,omitempty"`
	RequiresTOTP bool         `json:"requires_totp"`
	User         *models.User `json:"user,omitempty"`
}

// Login verifies credentials. Accounts with 2FA enabled get a temp token
// and must complete VerifyTOTPLogin; others get a session token directly.
// A Redis hit on the credential hash skips the bcrypt compare.
func (s *UserService) Login(ctx context.Context, req *models.LoginRequest) (*LoginResult, error) {
	user, err := s.Repo.GetByEmail(ctx, req.Email)
	if err != nil {
		if err == models.ErrNotFound {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if _, ok := cache.GetCachedAuth(ctx, req.Email, req.Password); !ok {
		if !auth.VerifyPassword(user.Password, req.Password) {
			return nil, ErrInvalidCredentials
		}
		cache.CacheAuth(ctx, req.Email, req.Password, user.ID)
	}

	if !user.IsActive {
		return nil, ErrAccountDisabled
	}

	if user.TOTPEnabled {
		tempToken, err := s.JWT.GenerateTempToken(user)
		if err != nil {
			return nil, err
		}
		return &LoginResult{TempToken: tempToken, RequiresTOTP: true}, nil
	}

	token, err := s.JWT.GenerateToken(user)
	if err != nil {
		return nil, err
	}

	logger.Info().Int("user_id", user.ID).Str("role", user.Role).Msg("staff login")
	return &LoginResult{Token: token, User: user}, nil
}

// VerifyTOTPLogin completes step two of a 2FA login
func (s *UserService) VerifyTOTPLogin(ctx context.Context, tempToken, code string) (*LoginResult, error) {
	claims, err := s.JWT.ValidateTempToken(tempToken)
	if err != nil {
		return nil, fmt.Errorf("invalid or expired login session")
	}

	user, err := s.Repo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}

	ok, err := s.TOTP.Verify(ctx, user.ID, code)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("invalid verification code")
	}

	token, err := s.JWT.GenerateToken(user)
	if err != nil {
		return nil, err
	}

	logger.Info().Int("user_id", user.ID).Msg("staff login with 2fa")
	return &LoginResult{Token: token, User: user}, nil
}

// Create adds a staff account
func (s *UserService) Create(ctx context.Context, req *models.CreateUserRequest) (*models.User, error) {
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	return s.Repo.Create(ctx, req, hash)
}

// List returns all staff accounts
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.Repo.GetAll(ctx)
}

// SetActive enables or disables an account
func (s *UserService) SetActive(ctx context.Context, id int, active bool) error {
	return s.Repo.SetActive(ctx, id, active)
}

// ChangePassword replaces a user's password after verifying the old one
func (s *UserService) ChangePassword(ctx context.Context, id int, oldPassword, newPassword string) error {
	user, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	withHash, err := s.Repo.GetByEmail(ctx, user.Email)
	if err != nil {
		return err
	}
	if !auth.VerifyPassword(withHash.Password, oldPassword) {
		return ErrInvalidCredentials
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.Repo.UpdatePassword(ctx, id, hash); err != nil {
		return err
	}

	cache.InvalidateAuth(ctx, user.Email, oldPassword)
	return nil
}

// EnsureAdmin creates the bootstrap admin account on an empty install
func (s *UserService) EnsureAdmin(ctx context.Context, email, password string) error {
	count, err := s.Repo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	_, err = s.Create(ctx, &models.CreateUserRequest{
		Name:     "Admin",
		Email:    email,
		Password: password,
		Role:     "admin",
	})
	if err != nil {
		return err
	}
	logger.Info().Str("email", email).Msg("bootstrap admin account created")
	return nil
}
