package dto

import (
	"time"

	"budgetflow/internal/models"
)

// GoogleLoginRequest exchanges a Google OAuth authorization code for an API
// token.
type GoogleLoginRequest struct {
	Code string `json:"code" validate:"required"`
}

// TokenResponse is returned after a successful sign-in.
type TokenResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresAt   time.Time    `json:"expires_at"`
	IsNewUser   bool         `json:"is_new_user"`
	User        *models.User `json:"user"`
}
