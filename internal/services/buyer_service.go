package services

import (
	"context"
	"fmt"

	"wholesale-backend/internal/cache"
	"wholesale-backend/internal/feed"
	"wholesale-backend/internal/models"
	"wholesale-backend/internal/repositories"
)

// BuyerService handles storefront registration and the admin approval queue
type BuyerService struct {
	Repo     *repositories.BuyerRepository
	Settings *SettingService
	Feed     *feed.Hub
}

func NewBuyerService(repo *repositories.BuyerRepository, settings *SettingService, hub *feed.Hub) *BuyerService {
	return &BuyerService{Repo: repo, Settings: settings, Feed: hub}
}

// Register creates a buyer. The initial status comes from the auto_approve
// setting; a duplicate mobile is rejected up front.
func (s *BuyerService) Register(ctx context.Context, req *models.RegisterBuyerRequest) (*models.Buyer, error) {
	if existing, err := s.Repo.GetByMobile(ctx, req.Mobile); err == nil && existing != nil {
		return nil, fmt.Errorf("mobile %s is already registered", req.Mobile)
	}

	status := models.BuyerStatusPending
	if s.Settings != nil && s.Settings.AutoApprove(ctx) {
		status = models.BuyerStatusApproved
	}

	buyer, err := s.Repo.Create(ctx, req, status)
	if err != nil {
		return nil, err
	}

	cache.InvalidateBuyerCaches(ctx)
	if s.Feed != nil {
		s.Feed.Notify("buyer", fmt.Sprintf("New registration: %s (%s)", buyer.ShopName, buyer.City), buyer)
	}

	logger.Info().Int("buyer_id", buyer.ID).Str("mobile", buyer.Mobile).
		Str("status", string(buyer.Status)).Msg("buyer registered")
	return buyer, nil
}

// Get returns one buyer
func (s *BuyerService) Get(ctx context.Context, id int) (*models.Buyer, error) {
	return s.Repo.GetByID(ctx, id)
}

// GetByMobile looks a buyer up for login
func (s *BuyerService) GetByMobile(ctx context.Context, mobile string) (*models.Buyer, error) {
	return s.Repo.GetByMobile(ctx, mobile)
}

// List returns buyers, optionally filtered by status
func (s *BuyerService) List(ctx context.Context, status models.BuyerStatus) ([]models.Buyer, error) {
	return s.Repo.GetAll(ctx, status)
}

// SetStatus moves a buyer through the approval lifecycle
func (s *BuyerService) SetStatus(ctx context.Context, id int, status models.BuyerStatus) error {
	switch status {
	case models.BuyerStatusPending, models.BuyerStatusApproved,
		models.BuyerStatusRejected, models.BuyerStatusBlocked:
	default:
		return fmt.Errorf("unknown buyer status %q", status)
	}

	if err := s.Repo.UpdateStatus(ctx, id, status); err != nil {
		return err
	}
	cache.InvalidateBuyerCaches(ctx)
	logger.Info().Int("buyer_id", id).Str("status", string(status)).Msg("buyer status changed")
	return nil
}
