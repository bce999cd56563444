package dto

import (
	"time"

	"github.com/bloodlink-registry/models"
	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims represents our custom JWT claims
type TokenClaims struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"isAdmin"`
	jwt.RegisteredClaims
}

// LoginRequest represents login credentials
type LoginRequest struct {
	Username   string `json:"username" validate:"required"`
	Password   string `json:"password" validate:"required"`
	RememberMe bool   `json:"rememberMe"`
}

// RegisterRequest represents registration data
type RegisterRequest struct {
	Username  string `json:"username" validate:"required,max=64,excludesall=/"`
	Email     string `json:"email" validate:"required,email,max=120"`
	Phone     string `json:"phone" validate:"required,number,max=10"`
	Password  string `json:"password" validate:"required"`
	Password2 string `json:"password2" validate:"required,eqfield=Password"`
}

// AuthResponse represents the response after authentication
type AuthResponse struct {
	Token     string      `json:"token"`
	User      models.User `json:"user"`
	ExpiresAt time.Time   `json:"expiresAt"`
}
