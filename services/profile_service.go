package services

import (
	"context"
	"errors"
	"time"

	"github.com/bloodlink-registry/apperrors"
	"github.com/bloodlink-registry/dto"
	"github.com/bloodlink-registry/metrics"
	"github.com/bloodlink-registry/models"
	"github.com/bloodlink-registry/policy"
	"github.com/bloodlink-registry/repositories"
	"github.com/bloodlink-registry/validators"
	"go.uber.org/zap"
)

// ProfileService handles the donor profiles of users
type ProfileService struct {
	users    repositories.UserRepository
	profiles repositories.ProfileRepository
	metrics  *metrics.Metrics
	log      *zap.Logger
}

// NewProfileService creates a new profile service instance
func NewProfileService(users repositories.UserRepository, profiles repositories.ProfileRepository, m *metrics.Metrics, log *zap.Logger) *ProfileService {
	return &ProfileService{users: users, profiles: profiles, metrics: m, log: log}
}

// GetProfile returns the profile of username. Only the owner and administrators may see it.
func (s *ProfileService) GetProfile(ctx context.Context, actor models.Actor, username string) (dto.ProfileResponse, error) {
	if err := policy.RequireAuthenticated(actor, policy.ActionViewProfile); err != nil {
		return dto.ProfileResponse{}, err
	}
	owner, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return dto.ProfileResponse{}, notFound(err, "user", username)
	}
	if err := policy.CanViewProfile(actor, owner.ID); err != nil {
		return dto.ProfileResponse{}, err
	}

	profile, err := s.profiles.FindByUserID(ctx, owner.ID)
	if err != nil {
		return dto.ProfileResponse{}, notFound(err, "profile", username)
	}
	return dto.ProfileResponse{Username: owner.Username, Profile: profile}, nil
}

// UpsertProfile creates the profile of username on first edit and updates it
// in place afterwards. Repeating the same request leaves one identical profile.
func (s *ProfileService) UpsertProfile(ctx context.Context, actor models.Actor, username string, req dto.ProfileRequest) (dto.ProfileResponse, error) {
	if err := policy.RequireAuthenticated(actor, policy.ActionEditProfile); err != nil {
		return dto.ProfileResponse{}, err
	}
	owner, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return dto.ProfileResponse{}, notFound(err, "user", username)
	}
	if err := policy.CanEditProfile(actor, owner.ID); err != nil {
		s.log.Warn("profile edit denied",
			zap.String("actor_id", actor.UserID), zap.String("owner_id", owner.ID))
		return dto.ProfileResponse{}, err
	}

	if fields := validators.ValidateStruct(req); len(fields) > 0 {
		return dto.ProfileResponse{}, &apperrors.ValidationError{Fields: fields}
	}

	// The validator has already accepted every value below
	dob, _ := time.Parse(dto.DateLayout, req.DOB)
	gender, _ := models.ParseGender(req.Gender)
	bloodGroup, _ := models.ParseBloodGroup(req.BloodGroup)

	profile := models.Profile{
		UserID:     owner.ID,
		DOB:        dob,
		Gender:     gender,
		BloodGroup: bloodGroup,
		Address:    req.Address,
		State:      req.State,
		ZipCode:    req.ZipCode,
	}
	if err := s.profiles.Upsert(ctx, &profile); err != nil {
		if errors.Is(err, repositories.ErrMissingOwner) {
			return dto.ProfileResponse{}, &apperrors.NotFoundError{Resource: "user", Key: username}
		}
		return dto.ProfileResponse{}, err
	}

	s.metrics.IncrementProfileUpserts()
	s.log.Info("profile saved", zap.String("user_id", owner.ID), zap.String("actor_id", actor.UserID))
	return dto.ProfileResponse{Username: owner.Username, Profile: profile}, nil
}
