package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/profrate/profrate/internal/app/models"
	"github.com/profrate/profrate/internal/app/models/dto"
	"github.com/profrate/profrate/internal/pkg/apperrors"
	"github.com/profrate/profrate/internal/pkg/auth"
	"github.com/profrate/profrate/internal/pkg/validation"
)

// AuthService handles registration, login and the refresh token lifecycle.
// Access tokens themselves are stateless; only refresh tokens are persisted.
type AuthService struct {
	userStore  UserStore
	tokenStore RefreshTokenStore
	jwtService *auth.JWTService
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(userStore UserStore, tokenStore RefreshTokenStore, jwtService *auth.JWTService, logger zerolog.Logger) *AuthService {
	return &AuthService{
		userStore:  userStore,
		tokenStore: tokenStore,
		jwtService: jwtService,
		logger:     logger,
	}
}

// Register creates a new user account and logs it in
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	username := strings.TrimSpace(req.Username)
	if !validation.IsValidUsername(username) {
		return nil, fmt.Errorf("%w: username must be 3-30 letters, digits or underscores", apperrors.ErrValidationFailed)
	}
	if !validation.IsValidEmail(req.Email) {
		return nil, fmt.Errorf("%w: invalid email format", apperrors.ErrValidationFailed)
	}
	if len(req.Password) < validation.PasswordMinLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", apperrors.ErrValidationFailed, validation.PasswordMinLength)
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Username: username,
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Password: hashed,
		IsActive: true,
	}

	if err := s.userStore.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Str("username", user.Username).Int64("userID", user.ID).Msg("User registered")

	return s.generateAuthResponse(ctx, user)
}

// Login authenticates a user by username and password
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userStore.GetByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			// Do not reveal whether the username exists
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if err := s.userStore.UpdateLastLogin(ctx, user.ID); err != nil {
		s.logger.Warn().Err(err).Int64("userID", user.ID).Msg("Failed to update last login")
	}

	return s.generateAuthResponse(ctx, user)
}

// Logout revokes the given refresh token. The stateless access token simply
// expires.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return apperrors.ErrTokenNotFound
	}
	return s.tokenStore.RevokeToken(ctx, refreshToken)
}

// RefreshToken exchanges a valid refresh token for a fresh token pair. The
// used refresh token is revoked (single use).
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.AuthResponse, error) {
	userID, _, err := s.tokenStore.GetTokenByValue(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !user.IsActive {
		// A deactivated account keeps no live sessions
		if err := s.tokenStore.RevokeAllUserTokens(ctx, user.ID); err != nil {
			s.logger.Warn().Err(err).Int64("userID", user.ID).Msg("Failed to revoke tokens for inactive user")
		}
		return nil, apperrors.ErrInvalidCredentials
	}

	if err := s.tokenStore.RevokeToken(ctx, refreshToken); err != nil {
		s.logger.Warn().Err(err).Int64("userID", userID).Msg("Failed to revoke used refresh token")
	}

	return s.generateAuthResponse(ctx, user)
}

// generateAuthResponse issues a token pair and persists the refresh token
func (s *AuthService) generateAuthResponse(ctx context.Context, user *models.User) (*dto.AuthResponse, error) {
	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		return nil, fmt.Errorf("error generating tokens: %w", err)
	}

	if err := s.tokenStore.CreateToken(ctx, refreshToken, user.ID, s.jwtService.GetRefreshTokenExpiry()); err != nil {
		return nil, fmt.Errorf("error storing refresh token: %w", err)
	}

	return &dto.AuthResponse{
		Token: dto.TokenResponse{
			AccessToken:           accessToken,
			TokenType:             "Bearer",
			ExpiresIn:             int64(expiresIn),
			RefreshToken:          refreshToken,
			RefreshTokenExpiresIn: int64(refreshExpiresIn),
		},
		User: dto.UserResponse{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
		},
	}, nil
}
