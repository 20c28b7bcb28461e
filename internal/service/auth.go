package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/logger"
	"fleetrent-backend/internal/repository"
	"fleetrent-backend/internal/security"
)

type authService struct {
	userRepo     repository.UserRepository
	settingsRepo repository.SettingsRepository
	tokenMgr     security.TokenManager
	emailSvc     EmailService
}

func NewAuthService(
	userRepo repository.UserRepository,
	settingsRepo repository.SettingsRepository,
	tokenMgr security.TokenManager,
	emailSvc EmailService,
) AuthService {
	return &authService{
		userRepo:     userRepo,
		settingsRepo: settingsRepo,
		tokenMgr:     tokenMgr,
		emailSvc:     emailSvc,
	}
}

func (s *authService) Signup(ctx context.Context, name, email, phone, password, companyName string) (*domain.User, string, string, error) {
	if existing, err := s.userRepo.GetByEmail(ctx, email); err == nil && existing != nil {
		return nil, "", "", ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", "", err
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Phone:        phone,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", "", err
	}

	// Every tenant gets a settings row with billing defaults up front so the
	// invoice assembler never has to special-case a missing one.
	settings := &domain.CompanySettings{
		TenantID:          user.ID,
		CompanyName:       companyName,
		TaxPercentage:     decimal.NewFromFloat(11.00),
		CurrencyCode:      "IDR",
		InvoicePrefix:     "INV-",
		DefaultLateFeePct: decimal.NewFromInt(150),
		InvoiceDueDays:    14,
		NotificationEmail: email,
	}
	if err := s.settingsRepo.Create(ctx, settings); err != nil {
		return nil, "", "", err
	}

	access, err := s.tokenMgr.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return nil, "", "", err
	}
	refresh, err := s.tokenMgr.GenerateRefreshToken(user.ID, user.Email)
	if err != nil {
		return nil, "", "", err
	}

	if err := s.emailSvc.SendWelcome(ctx, user.Email, user.Name); err != nil {
		logger.Warn("welcome email failed", "user_id", user.ID, "error", err)
	}

	logger.Info("tenant signed up", "user_id", user.ID)
	return user, access, refresh, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*domain.User, string, string, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", "", ErrInvalidCredentials
		}
		return nil, "", "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", "", ErrInvalidCredentials
	}

	access, err := s.tokenMgr.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return nil, "", "", err
	}
	refresh, err := s.tokenMgr.GenerateRefreshToken(user.ID, user.Email)
	if err != nil {
		return nil, "", "", err
	}
	return user, access, refresh, nil
}

func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (string, string, error) {
	claims, err := s.tokenMgr.ValidateToken(refreshToken)
	if err != nil {
		return "", "", err
	}
	if claims.Type != security.TokenTypeRefresh {
		return "", "", security.ErrWrongTokenType
	}

	// Re-check the account still exists before minting fresh tokens.
	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return "", "", security.ErrInvalidToken
	}

	access, err := s.tokenMgr.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return "", "", err
	}
	refresh, err := s.tokenMgr.GenerateRefreshToken(user.ID, user.Email)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}
