package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bloodlink-registry/dto"
	"github.com/bloodlink-registry/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrInvalidToken covers malformed, expired and badly signed tokens
	ErrInvalidToken = errors.New("invalid token")
	// ErrTokenRevoked is returned for tokens that were logged out
	ErrTokenRevoked = errors.New("token has been revoked")
)

// TokenService issues and validates the HS256 session tokens
type TokenService struct {
	secret      []byte
	ttl         time.Duration
	revocations RevocationList
	now         func() time.Time
}

// NewTokenService creates a token service. The secret must not be empty.
func NewTokenService(secret string, ttl time.Duration, revocations RevocationList) (*TokenService, error) {
	if secret == "" {
		return nil, errors.New("JWT secret must be set")
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenService{
		secret:      []byte(secret),
		ttl:         ttl,
		revocations: revocations,
		now:         time.Now,
	}, nil
}

// TTL is the lifetime of newly issued tokens
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

// GenerateToken generates a new JWT token for a user
func (s *TokenService) GenerateToken(user models.User) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.ttl)

	claims := dto.TokenClaims{
		UserID:   user.ID,
		Username: user.Username,
		IsAdmin:  user.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, expiresAt, nil
}

// ValidateToken validates a JWT token and returns its claims if it is valid
// and not revoked
func (s *TokenService) ValidateToken(ctx context.Context, tokenString string) (*dto.TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &dto.TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*dto.TokenClaims)
	if !ok || !token.Valid || claims.UserID == "" {
		return nil, ErrInvalidToken
	}

	revoked, err := s.revocations.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check token revocation: %w", err)
	}
	if revoked {
		return nil, ErrTokenRevoked
	}
	return claims, nil
}

// Revoke invalidates the token for the rest of its lifetime
func (s *TokenService) Revoke(ctx context.Context, claims *dto.TokenClaims) error {
	if claims == nil || claims.ExpiresAt == nil {
		return nil
	}
	return s.revocations.Revoke(ctx, claims.ID, claims.ExpiresAt.Sub(s.now()))
}
