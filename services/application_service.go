package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/bloodlink-registry/apperrors"
	"github.com/bloodlink-registry/dto"
	"github.com/bloodlink-registry/metrics"
	"github.com/bloodlink-registry/models"
	"github.com/bloodlink-registry/policy"
	"github.com/bloodlink-registry/repositories"
	"github.com/bloodlink-registry/validators"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const msgProfileRequired = "Complete your donor profile before applying."

// ApplicationService handles donor applications and their review
type ApplicationService struct {
	applications repositories.ApplicationRepository
	profiles     repositories.ProfileRepository
	metrics      *metrics.Metrics
	log          *zap.Logger
}

// NewApplicationService creates a new application service instance
func NewApplicationService(applications repositories.ApplicationRepository, profiles repositories.ProfileRepository, m *metrics.Metrics, log *zap.Logger) *ApplicationService {
	return &ApplicationService{applications: applications, profiles: profiles, metrics: m, log: log}
}

// Submit files a donor application for the acting user, who must have a profile
func (s *ApplicationService) Submit(ctx context.Context, actor models.Actor, req dto.ApplicationRequest) (models.DonorApplication, error) {
	if err := policy.RequireAuthenticated(actor, policy.ActionSubmitApplication); err != nil {
		return models.DonorApplication{}, err
	}

	fields := validators.ValidateStruct(req)
	if _, err := s.profiles.FindByUserID(ctx, actor.UserID); err != nil {
		if !errors.Is(err, repositories.ErrNotFound) {
			return models.DonorApplication{}, fmt.Errorf("failed to load profile: %w", err)
		}
		fields.Add("profile", msgProfileRequired)
	}
	if len(fields) > 0 {
		return models.DonorApplication{}, &apperrors.ValidationError{Fields: fields}
	}

	application := models.DonorApplication{
		UserID:   actor.UserID,
		HeightCM: req.HeightCM,
		WeightKG: req.WeightKG,
		Habits:   req.Habits,
		UIDN:     req.UIDN,
	}
	if err := s.applications.Create(ctx, &application); err != nil {
		return models.DonorApplication{}, err
	}

	s.metrics.IncrementApplications(string(application.Status))
	s.log.Info("donor application submitted",
		zap.String("application_id", application.ID), zap.String("user_id", actor.UserID))
	return application, nil
}

// ListMine returns the acting user's applications, newest first
func (s *ApplicationService) ListMine(ctx context.Context, actor models.Actor) (dto.ApplicationListResponse, error) {
	if err := policy.RequireAuthenticated(actor, policy.ActionSubmitApplication); err != nil {
		return dto.ApplicationListResponse{}, err
	}
	applications, err := s.applications.FindByUserID(ctx, actor.UserID)
	if err != nil {
		return dto.ApplicationListResponse{}, fmt.Errorf("failed to list applications: %w", err)
	}
	return dto.ApplicationListResponse{Applications: applications, TotalCount: len(applications)}, nil
}

// ListAll returns every application, oldest first, optionally filtered by status label
func (s *ApplicationService) ListAll(ctx context.Context, actor models.Actor, status string) (dto.ApplicationListResponse, error) {
	if err := policy.CanReviewApplications(actor); err != nil {
		return dto.ApplicationListResponse{}, err
	}

	var filter *models.ApplicationStatus
	if status != "" {
		parsed, err := models.ParseApplicationStatus(status)
		if err != nil {
			return dto.ApplicationListResponse{}, apperrors.NewValidationError("status", "Not a valid choice.")
		}
		filter = &parsed
	}

	applications, err := s.applications.FindAll(ctx, filter)
	if err != nil {
		return dto.ApplicationListResponse{}, fmt.Errorf("failed to list applications: %w", err)
	}
	return dto.ApplicationListResponse{Applications: applications, TotalCount: len(applications)}, nil
}

// SetStatus records an administrator's decision on an application
func (s *ApplicationService) SetStatus(ctx context.Context, actor models.Actor, id string, req dto.ApplicationStatusRequest) (models.DonorApplication, error) {
	if err := policy.CanReviewApplications(actor); err != nil {
		return models.DonorApplication{}, err
	}
	if fields := validators.ValidateStruct(req); len(fields) > 0 {
		return models.DonorApplication{}, &apperrors.ValidationError{Fields: fields}
	}
	status, _ := models.ParseApplicationStatus(req.Status)
	if _, err := uuid.Parse(id); err != nil {
		return models.DonorApplication{}, &apperrors.NotFoundError{Resource: "application", Key: id}
	}

	application, err := s.applications.UpdateStatus(ctx, id, status)
	if err != nil {
		return models.DonorApplication{}, notFound(err, "application", id)
	}

	s.metrics.IncrementApplications(string(status))
	s.log.Info("donor application reviewed",
		zap.String("application_id", id), zap.String("status", string(status)), zap.String("reviewer_id", actor.UserID))
	return application, nil
}
