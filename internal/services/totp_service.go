package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image/png"

	"wholesale-backend/internal/models"
	"wholesale-backend/internal/repositories"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

const totpIssuer = "WholesaleStore"

// TOTPService manages optional 2FA for back-office accounts
type TOTPService struct {
	UserRepo *repositories.UserRepository
	TOTPRepo *repositories.TOTPRepository
}

func NewTOTPService(userRepo *repositories.UserRepository, totpRepo *repositories.TOTPRepository) *TOTPService {
	return &TOTPService{UserRepo: userRepo, TOTPRepo: totpRepo}
}

// TOTPSetup is what the settings screen needs to show the enrolment QR
type TOTPSetup struct {
	Secret      string `json:"secret"`
	QRCode      string `json:"qr_code"`
	Issuer      string `json:"issuer"`
	AccountName string `json:"account_name"`
}

// GenerateSetup creates a fresh secret and QR code for a user. The secret
// stays unconfirmed until the user verifies a first code.
func (s *TOTPService) GenerateSetup(ctx context.Context, user *models.User) (*TOTPSetup, error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      totpIssuer,
		AccountName: user.Email,
		Period:      30,
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return nil, err
	}

	if err := s.TOTPRepo.SaveSecret(ctx, user.ID, key.Secret()); err != nil {
		return nil, err
	}

	qrImage, err := key.Image(200, 200)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, qrImage); err != nil {
		return nil, err
	}

	return &TOTPSetup{
		Secret:      key.Secret(),
		QRCode:      "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()),
		Issuer:      totpIssuer,
		AccountName: user.Email,
	}, nil
}

// VerifyAndEnable confirms the first code and turns 2FA on for the user
func (s *TOTPService) VerifyAndEnable(ctx context.Context, userID int, code string) error {
	secret, _, err := s.TOTPRepo.GetSecret(ctx, userID)
	if err != nil {
		if err == models.ErrNotFound {
			return fmt.Errorf("2fa setup not initiated")
		}
		return err
	}

	if !totp.Validate(code, secret) {
		return fmt.Errorf("invalid verification code")
	}

	if err := s.TOTPRepo.Confirm(ctx, userID); err != nil {
		return err
	}
	if err := s.UserRepo.SetTOTPEnabled(ctx, userID, true); err != nil {
		return err
	}

	logger.Info().Int("user_id", userID).Msg("2fa enabled")
	return nil
}

// Verify validates a TOTP code during login
func (s *TOTPService) Verify(ctx context.Context, userID int, code string) (bool, error) {
	secret, confirmed, err := s.TOTPRepo.GetSecret(ctx, userID)
	if err != nil {
		if err == models.ErrNotFound {
			return false, fmt.Errorf("2fa is not enabled")
		}
		return false, err
	}
	if !confirmed {
		return false, fmt.Errorf("2fa is not enabled")
	}
	return totp.Validate(code, secret), nil
}

// Disable turns 2FA off after verifying a current code
func (s *TOTPService) Disable(ctx context.Context, userID int, code string) error {
	ok, err := s.Verify(ctx, userID, code)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("invalid verification code")
	}

	if err := s.TOTPRepo.Delete(ctx, userID); err != nil {
		return err
	}
	if err := s.UserRepo.SetTOTPEnabled(ctx, userID, false); err != nil {
		return err
	}

	logger.Info().Int("user_id", userID).Msg("2fa disabled")
	return nil
}
