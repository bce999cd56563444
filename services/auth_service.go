package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/bloodlink-registry/apperrors"
	"github.com/bloodlink-registry/dto"
	"github.com/bloodlink-registry/metrics"
	"github.com/bloodlink-registry/models"
	"github.com/bloodlink-registry/repositories"
	"github.com/bloodlink-registry/validators"
	"go.uber.org/zap"
)

// ErrInvalidCredentials is returned by Login for an unknown username or a wrong password
var ErrInvalidCredentials = errors.New("Invalid username or password")

// dummyUser is checked against when the username is unknown so that both
// failure paths cost one bcrypt comparison
var dummyUser = sync.OnceValue(func() *models.User {
	user := &models.User{}
	_ = user.SetPassword("not-a-real-password")
	return user
})

// AuthService handles registration and sessions
type AuthService struct {
	users   repositories.UserRepository
	tokens  *TokenService
	metrics *metrics.Metrics
	log     *zap.Logger
}

// NewAuthService creates a new auth service instance
func NewAuthService(users repositories.UserRepository, tokens *TokenService, m *metrics.Metrics, log *zap.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, metrics: m, log: log}
}

// Register creates a new user account. Every field error of the submission is
// reported at once; unique fields already in use are reported per field.
func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest) (models.User, error) {
	fields := validators.ValidateStruct(req)
	if err := validators.ValidatePassword(req.Password); err != nil {
		fields.Add("password", err.Error())
	}

	conflicts, err := validators.CheckUnique(ctx, "", userUniqueRules(s.users, req.Username, req.Email, req.Phone)...)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to check account uniqueness: %w", err)
	}
	if err := submissionError(fields, conflicts); err != nil {
		return models.User{}, err
	}

	user := models.User{
		Username: req.Username,
		Email:    req.Email,
		Phone:    req.Phone,
	}
	if err := user.SetPassword(req.Password); err != nil {
		return models.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	// The unique indexes decide a lost race; their ConflictError passes through
	if err := s.users.Create(ctx, &user); err != nil {
		return models.User{}, err
	}

	s.metrics.IncrementRegistrations()
	s.log.Info("user registered", zap.String("user_id", user.ID), zap.String("username", user.Username))
	return user, nil
}

// Login checks the credentials and issues a session token
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	if fields := validators.ValidateStruct(req); len(fields) > 0 {
		return nil, &apperrors.ValidationError{Fields: fields}
	}

	user, err := s.users.FindByUsername(ctx, req.Username)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if err != nil {
		_ = dummyUser().CheckPassword(req.Password)
		s.metrics.ObserveLogin(false)
		return nil, ErrInvalidCredentials
	}
	if !user.CheckPassword(req.Password) {
		s.metrics.ObserveLogin(false)
		s.log.Info("login rejected", zap.String("username", req.Username))
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.GenerateToken(user)
	if err != nil {
		return nil, err
	}

	s.metrics.ObserveLogin(true)
	s.log.Info("user logged in", zap.String("user_id", user.ID))
	return &dto.AuthResponse{
		Token:     token,
		User:      user,
		ExpiresAt: expiresAt,
	}, nil
}

// Logout revokes the presented token
func (s *AuthService) Logout(ctx context.Context, claims *dto.TokenClaims) error {
	if claims == nil {
		return nil
	}
	if err := s.tokens.Revoke(ctx, claims); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	s.log.Info("user logged out", zap.String("user_id", claims.UserID))
	return nil
}

// Authenticate validates a token and loads the current state of its user, so
// a change of admin flag or username takes effect on the next request
func (s *AuthService) Authenticate(ctx context.Context, tokenString string) (models.User, *dto.TokenClaims, error) {
	claims, err := s.tokens.ValidateToken(ctx, tokenString)
	if err != nil {
		return models.User{}, nil, err
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if errors.Is(err, repositories.ErrNotFound) {
		return models.User{}, nil, ErrInvalidToken
	}
	if err != nil {
		return models.User{}, nil, fmt.Errorf("failed to load user: %w", err)
	}
	return user, claims, nil
}
