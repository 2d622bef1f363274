package services

import (
	"context"
	"strconv"

	"wholesale-backend/internal/cache"
	"wholesale-backend/internal/models"
	"wholesale-backend/internal/repositories"
)

type SettingService struct {
	Repo *repositories.SettingRepository
}

func NewSettingService(repo *repositories.SettingRepository) *SettingService {
	return &SettingService{Repo: repo}
}

// All returns every setting for the admin screen
func (s *SettingService) All(ctx context.Context) ([]models.Setting, error) {
	return s.Repo.GetAll(ctx)
}

// Set writes one setting and busts the settings cache
func (s *SettingService) Set(ctx context.Context, key, value string) error {
	if key == models.SettingAdvancePercent {
		v, err := strconv.Atoi(value)
		if err != nil {
			return err
		}
		value = strconv.Itoa(models.ClampAdvancePercent(v))
	}
	if err := s.Repo.Set(ctx, key, value); err != nil {
		return err
	}
	cache.InvalidateSettingCaches(ctx)
	return nil
}

// AdvancePercent returns the checkout advance ask, clamped to 0-50
func (s *SettingService) AdvancePercent(ctx context.Context) int {
	setting, err := s.Repo.Get(ctx, models.SettingAdvancePercent)
	if err != nil {
		return 0
	}
	v, err := strconv.Atoi(setting.Value)
	if err != nil {
		return 0
	}
	return models.ClampAdvancePercent(v)
}

// AutoApprove reports whether new buyer registrations skip manual review
func (s *SettingService) AutoApprove(ctx context.Context) bool {
	setting, err := s.Repo.Get(ctx, models.SettingAutoApprove)
	if err != nil {
		return false
	}
	return setting.Value == "true"
}
