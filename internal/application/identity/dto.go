package identity

import "time"

// LoginInput represents the admin login form
type LoginInput struct {
	Username string `json:"username" binding:"required,max=100"`
	Password string `json:"password" binding:"required,max=200"`
}

// RefreshTokenInput represents a token refresh request
type RefreshTokenInput struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// LogoutInput identifies the tokens to revoke
type LogoutInput struct {
	AccessTokenJTI string
	AccessTokenTTL time.Duration
	RefreshToken   string // optional
}

// TokenResult is returned after login and refresh
type TokenResult struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_expires_at"`
	TokenType             string    `json:"token_type"`
	Username              string    `json:"username"`
}
