package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// CustomClaims are the JWT claims minted after a successful Google sign-in.
type CustomClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}
