package identity

import (
	"context"
	"crypto/subtle"
	"errors"

	"github.com/tlsy/handicrafts/internal/domain/shared"
	"github.com/tlsy/handicrafts/internal/infrastructure/auth"
	"github.com/tlsy/handicrafts/internal/infrastructure/config"
	"github.com/tlsy/handicrafts/internal/infrastructure/telemetry"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Authentication errors
var (
	ErrInvalidCredentials = shared.NewDomainError("INVALID_CREDENTIALS", "Invalid username or password")
	ErrAdminNotConfigured = shared.NewDomainError("ADMIN_NOT_CONFIGURED", "Admin login is not configured")
	ErrTokenExpired       = shared.NewDomainError("TOKEN_EXPIRED", "Refresh token has expired")
	ErrTokenInvalid       = shared.NewDomainError("TOKEN_INVALID", "Invalid refresh token")
	ErrTokenRevoked       = shared.NewDomainError("TOKEN_REVOKED", "Token has been revoked")
)

// AuthService authenticates the single shop administrator
type AuthService struct {
	admin      config.AdminConfig
	jwtService *auth.JWTService
	blacklist  auth.TokenBlacklist
	metrics    *telemetry.StorefrontMetrics
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	admin config.AdminConfig,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	metrics *telemetry.StorefrontMetrics,
	logger *zap.Logger,
) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if blacklist == nil {
		blacklist = auth.NewInMemoryTokenBlacklist()
	}
	return &AuthService{
		admin:      admin,
		jwtService: jwtService,
		blacklist:  blacklist,
		metrics:    metrics,
		logger:     logger,
	}
}

// Login checks the admin credentials and returns a token pair
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*TokenResult, error) {
	s.logger.Info("Login attempt", zap.String("username", input.Username))

	if s.admin.Username == "" || (s.admin.Password == "" && s.admin.PasswordHash == "") {
		s.logger.Error("Login attempted but no admin credentials are configured")
		s.metrics.RecordLogin(ctx, telemetry.OutcomeFailure)
		return nil, ErrAdminNotConfigured
	}

	if !s.checkCredentials(input.Username, input.Password) {
		s.logger.Warn("Invalid login credentials", zap.String("username", input.Username))
		s.metrics.RecordLogin(ctx, telemetry.OutcomeInvalid)
		return nil, ErrInvalidCredentials
	}

	pair, err := s.jwtService.GenerateTokenPair(s.admin.Username)
	if err != nil {
		s.logger.Error("Failed to generate tokens", zap.Error(err))
		s.metrics.RecordLogin(ctx, telemetry.OutcomeFailure)
		return nil, err
	}

	s.metrics.RecordLogin(ctx, telemetry.OutcomeSuccess)
	s.logger.Info("Login successful", zap.String("username", s.admin.Username))
	return toTokenResult(pair, s.admin.Username), nil
}

// checkCredentials compares in constant time; a bcrypt hash takes precedence over the plain password
func (s *AuthService) checkCredentials(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.admin.Username)) == 1

	var passOK bool
	if s.admin.PasswordHash != "" {
		passOK = bcrypt.CompareHashAndPassword([]byte(s.admin.PasswordHash), []byte(password)) == nil
	} else {
		passOK = subtle.ConstantTimeCompare([]byte(password), []byte(s.admin.Password)) == 1
	}
	return userOK && passOK
}

// Refresh rotates a refresh token into a new pair; the old refresh token is revoked
func (s *AuthService) Refresh(ctx context.Context, input RefreshTokenInput) (*TokenResult, error) {
	claims, err := s.jwtService.ValidateRefreshToken(input.RefreshToken)
	if err != nil {
		s.logger.Warn("Refresh token validation failed", zap.Error(err))
		if errors.Is(err, auth.ErrExpiredToken) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	revoked, err := s.blacklist.IsBlacklisted(ctx, claims.ID)
	if err != nil {
		s.logger.Error("Failed to check token blacklist", zap.Error(err))
		return nil, err
	}
	if revoked {
		s.logger.Warn("Revoked refresh token presented", zap.String("jti", claims.ID))
		return nil, ErrTokenRevoked
	}

	if subtle.ConstantTimeCompare([]byte(claims.Username), []byte(s.admin.Username)) != 1 {
		return nil, ErrTokenInvalid
	}

	pair, err := s.jwtService.GenerateTokenPair(claims.Username)
	if err != nil {
		return nil, err
	}
	if err := s.blacklist.AddToBlacklist(ctx, claims.ID, claims.GetRemainingTTL()); err != nil {
		s.logger.Warn("Failed to revoke rotated refresh token", zap.Error(err))
	}

	s.logger.Info("Token refreshed", zap.String("username", claims.Username))
	return toTokenResult(pair, claims.Username), nil
}

// Logout revokes the access token and, when given, the refresh token until they expire
func (s *AuthService) Logout(ctx context.Context, input LogoutInput) error {
	if input.AccessTokenJTI != "" && input.AccessTokenTTL > 0 {
		if err := s.blacklist.AddToBlacklist(ctx, input.AccessTokenJTI, input.AccessTokenTTL); err != nil {
			return err
		}
	}

	if input.RefreshToken != "" {
		claims, err := s.jwtService.ValidateRefreshToken(input.RefreshToken)
		if err == nil {
			if err := s.blacklist.AddToBlacklist(ctx, claims.ID, claims.GetRemainingTTL()); err != nil {
				return err
			}
		}
	}

	s.logger.Info("Admin logged out", zap.String("jti", input.AccessTokenJTI))
	return nil
}

// HashPassword returns a bcrypt hash suitable for admin.password_hash
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", shared.NewDomainError("INVALID_PASSWORD", "Password cannot be empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func toTokenResult(pair *auth.TokenPair, username string) *TokenResult {
	return &TokenResult{
		AccessToken:           pair.AccessToken,
		RefreshToken:          pair.RefreshToken,
		AccessTokenExpiresAt:  pair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: pair.RefreshTokenExpiresAt,
		TokenType:             pair.TokenType,
		Username:              username,
	}
}
