package identity

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tlsy/handicrafts/internal/infrastructure/auth"
	"github.com/tlsy/handicrafts/internal/infrastructure/config"
	"golang.org/x/crypto/bcrypt"
)

func newTestAuthService(t *testing.T, admin config.AdminConfig) (*AuthService, *auth.JWTService, auth.TokenBlacklist) {
	t.Helper()
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-that-is-long-enough",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: time.Hour,
		Issuer:                 "tlsy-test",
	})
	blacklist := auth.NewInMemoryTokenBlacklist()
	return NewAuthService(admin, jwtService, blacklist, nil, nil), jwtService, blacklist
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("plain password", func(t *testing.T) {
		svc, jwtService, _ := newTestAuthService(t, config.AdminConfig{Username: "owner", Password: "s3cret"})

		result, err := svc.Login(ctx, LoginInput{Username: "owner", Password: "s3cret"})
		require.NoError(t, err)
		assert.Equal(t, "Bearer", result.TokenType)
		assert.Equal(t, "owner", result.Username)

		claims, err := jwtService.ValidateAccessToken(result.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, "owner", claims.Username)
	})

	t.Run("wrong password", func(t *testing.T) {
		svc, _, _ := newTestAuthService(t, config.AdminConfig{Username: "owner", Password: "s3cret"})

		_, err := svc.Login(ctx, LoginInput{Username: "owner", Password: "nope"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)

		_, err = svc.Login(ctx, LoginInput{Username: "other", Password: "s3cret"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("hash takes precedence", func(t *testing.T) {
		hash, err := bcrypt.GenerateFromPassword([]byte("hashed-pw"), bcrypt.MinCost)
		require.NoError(t, err)
		svc, _, _ := newTestAuthService(t, config.AdminConfig{Username: "owner", Password: "plain-pw", PasswordHash: string(hash)})

		_, err = svc.Login(ctx, LoginInput{Username: "owner", Password: "plain-pw"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)

		_, err = svc.Login(ctx, LoginInput{Username: "owner", Password: "hashed-pw"})
		assert.NoError(t, err)
	})

	t.Run("not configured", func(t *testing.T) {
		svc, _, _ := newTestAuthService(t, config.AdminConfig{})

		_, err := svc.Login(ctx, LoginInput{Username: "", Password: ""})
		assert.ErrorIs(t, err, ErrAdminNotConfigured)
	})
}

func TestAuthService_Refresh(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestAuthService(t, config.AdminConfig{Username: "owner", Password: "s3cret"})

	login, err := svc.Login(ctx, LoginInput{Username: "owner", Password: "s3cret"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(ctx, RefreshTokenInput{RefreshToken: login.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)

	t.Run("rotated token is revoked", func(t *testing.T) {
		_, err := svc.Refresh(ctx, RefreshTokenInput{RefreshToken: login.RefreshToken})
		assert.ErrorIs(t, err, ErrTokenRevoked)
	})

	t.Run("access token is not a refresh token", func(t *testing.T) {
		_, err := svc.Refresh(ctx, RefreshTokenInput{RefreshToken: login.AccessToken})
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.Refresh(ctx, RefreshTokenInput{RefreshToken: "not.a.jwt"})
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("username no longer configured", func(t *testing.T) {
		renamed := NewAuthService(config.AdminConfig{Username: "new-owner", Password: "s3cret"}, svc.jwtService, auth.NewInMemoryTokenBlacklist(), nil, nil)
		_, err := renamed.Refresh(ctx, RefreshTokenInput{RefreshToken: refreshed.RefreshToken})
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()
	svc, jwtService, blacklist := newTestAuthService(t, config.AdminConfig{Username: "owner", Password: "s3cret"})

	login, err := svc.Login(ctx, LoginInput{Username: "owner", Password: "s3cret"})
	require.NoError(t, err)
	access, err := jwtService.ValidateAccessToken(login.AccessToken)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, LogoutInput{
		AccessTokenJTI: access.ID,
		AccessTokenTTL: access.GetRemainingTTL(),
		RefreshToken:   login.RefreshToken,
	}))

	revoked, err := blacklist.IsBlacklisted(ctx, access.ID)
	require.NoError(t, err)
	assert.True(t, revoked)

	_, err = svc.Refresh(ctx, RefreshTokenInput{RefreshToken: login.RefreshToken})
	assert.ErrorIs(t, err, ErrTokenRevoked)
}

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("s3cret")))

	_, err = HashPassword("")
	assert.Error(t, err)
}
