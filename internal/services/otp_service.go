package services

import (
	"context"
	"fmt"

	"wholesale-backend/internal/config"
	"wholesale-backend/internal/models"
	"wholesale-backend/internal/repositories"
)

// OTPService implements the demo login flow. No SMS gateway is wired;
// the accepted codes come from configuration and the issued code is only
// logged, which is enough for pilot deployments behind a known buyer list.
type OTPService struct {
	cfg       *config.Config
	BuyerRepo *repositories.BuyerRepository
}

func NewOTPService(cfg *config.Config, buyerRepo *repositories.BuyerRepository) *OTPService {
	return &OTPService{cfg: cfg, BuyerRepo: buyerRepo}
}

// Request checks the mobile belongs to a registered buyer and logs the
// demo code that would otherwise go out by SMS.
func (s *OTPService) Request(ctx context.Context, mobile string) error {
	buyer, err := s.BuyerRepo.GetByMobile(ctx, mobile)
	if err != nil {
		if err == models.ErrNotFound {
			return fmt.Errorf("no buyer registered with this mobile number")
		}
		return err
	}

	switch buyer.Status {
	case models.BuyerStatusBlocked:
		return fmt.Errorf("this account has been blocked")
	case models.BuyerStatusRejected:
		return fmt.Errorf("this registration was not approved")
	case models.BuyerStatusPending:
		return fmt.Errorf("registration is awaiting approval")
	}

	logger.Info().Str("mobile", mobile).Str("otp", s.cfg.OTP.BuyerCode).Msg("demo OTP issued")
	return nil
}

// Verify checks the demo code and returns the approved buyer
func (s *OTPService) Verify(ctx context.Context, mobile, code string) (*models.Buyer, error) {
	if code != s.cfg.OTP.BuyerCode {
		return nil, fmt.Errorf("invalid OTP code")
	}

	buyer, err := s.BuyerRepo.GetByMobile(ctx, mobile)
	if err != nil {
		if err == models.ErrNotFound {
			return nil, fmt.Errorf("no buyer registered with this mobile number")
		}
		return nil, err
	}
	if buyer.Status != models.BuyerStatusApproved {
		return nil, fmt.Errorf("account is not approved for login")
	}

	return buyer, nil
}

// VerifyAdminCode checks the back-office demo code used by the admin
// mobile entrance
func (s *OTPService) VerifyAdminCode(code string) bool {
	return code == s.cfg.OTP.AdminCode
}
