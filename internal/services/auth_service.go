// internal/services/auth_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sisvmarcas/crm-backend/internal/config"
	"github.com/sisvmarcas/crm-backend/internal/models"
	"github.com/sisvmarcas/crm-backend/internal/utils"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrProfileNotFound    = errors.New("profile not found")
)

type AuthService struct {
	db  *gorm.DB
	cfg *config.Config
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Vendedor     *models.Vendedor `json:"vendedor"`
	AccessToken  string           `json:"access_token"`
	RefreshToken string           `json:"refresh_token"`
	TokenType    string           `json:"token_type"`
	ExpiresIn    int              `json:"expires_in"` // in seconds
}

func NewAuthService(db *gorm.DB, cfg *config.Config) *AuthService {
	return &AuthService{
		db:  db,
		cfg: cfg,
	}
}

func (s *AuthService) Login(req *LoginRequest) (*AuthResponse, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	// Find the seller profile by email
	var vendedor models.Vendedor
	if err := s.db.Where("email = ?", req.Email).First(&vendedor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	// Verify password
	if err := vendedor.CheckPassword(req.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	// Update last login time
	now := time.Now()
	vendedor.LastLoginAt = &now
	s.db.Save(&vendedor)

	return s.issueTokens(&vendedor)
}

func (s *AuthService) RefreshToken(refreshToken string) (*AuthResponse, error) {
	// Validate refresh token
	userIDStr, err := utils.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token: %w", err)
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID in token: %w", err)
	}

	vendedor, err := s.GetVendedorByID(userID)
	if err != nil {
		return nil, err
	}

	return s.issueTokens(vendedor)
}

// GetVendedorByID resolves the profile row behind a valid session. A
// missing row is reported as ErrProfileNotFound so callers can force a
// sign-out instead of retrying.
func (s *AuthService) GetVendedorByID(userID uuid.UUID) (*models.Vendedor, error) {
	var vendedor models.Vendedor
	if err := s.db.First(&vendedor, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &vendedor, nil
}

func (s *AuthService) ListVendedores() ([]models.Vendedor, error) {
	var vendedores []models.Vendedor
	if err := s.db.Order("nome ASC").Find(&vendedores).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return vendedores, nil
}

func (s *AuthService) issueTokens(vendedor *models.Vendedor) (*AuthResponse, error) {
	accessToken, err := utils.GenerateJWT(
		vendedor.ID,
		vendedor.Nome,
		string(vendedor.Role),
		s.cfg.JWT.AccessTokenTTL,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := utils.GenerateRefreshToken(vendedor.ID, s.cfg.JWT.RefreshTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &AuthResponse{
		Vendedor:     vendedor,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    s.cfg.JWT.AccessTokenTTL * 3600,
	}, nil
}
