package service

import (
	"context"
	"fmt"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/repository"
)

type settingsService struct {
	settingsRepo repository.SettingsRepository
}

func NewSettingsService(settingsRepo repository.SettingsRepository) SettingsService {
	return &settingsService{settingsRepo: settingsRepo}
}

func (s *settingsService) GetSettings(ctx context.Context, tenantID int32) (*domain.CompanySettings, error) {
	return s.settingsRepo.GetByTenant(ctx, tenantID)
}

func (s *settingsService) UpdateSettings(ctx context.Context, settings *domain.CompanySettings) error {
	if settings.TaxPercentage.IsNegative() {
		return fmt.Errorf("tax percentage must not be negative")
	}
	if settings.InvoiceDueDays < 0 {
		return fmt.Errorf("invoice due days must not be negative")
	}
	current, err := s.settingsRepo.GetByTenant(ctx, settings.TenantID)
	if err != nil {
		return err
	}
	// The counter only moves through invoice generation.
	settings.ID = current.ID
	settings.InvoiceCounter = current.InvoiceCounter
	return s.settingsRepo.Update(ctx, settings)
}
