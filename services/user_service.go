package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/bloodlink-registry/apperrors"
	"github.com/bloodlink-registry/dto"
	"github.com/bloodlink-registry/models"
	"github.com/bloodlink-registry/policy"
	"github.com/bloodlink-registry/repositories"
	"github.com/bloodlink-registry/storage"
	"github.com/bloodlink-registry/utils"
	"github.com/bloodlink-registry/validators"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const msgWrongPassword = "Invalid password"

// UserService handles account management of registered users
type UserService struct {
	users        repositories.UserRepository
	files        storage.FileStore
	uploadPolicy validators.UploadPolicy
	log          *zap.Logger
}

// NewUserService creates a new user service instance
func NewUserService(users repositories.UserRepository, files storage.FileStore, uploadPolicy validators.UploadPolicy, log *zap.Logger) *UserService {
	return &UserService{users: users, files: files, uploadPolicy: uploadPolicy, log: log}
}

// GetByUsername retrieves a user by username
func (s *UserService) GetByUsername(ctx context.Context, username string) (models.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return models.User{}, notFound(err, "user", username)
	}
	return user, nil
}

// Current returns the stored account of the acting user
func (s *UserService) Current(ctx context.Context, actor models.Actor) (models.User, error) {
	if err := policy.RequireAuthenticated(actor, policy.ActionEditAccount); err != nil {
		return models.User{}, err
	}
	user, err := s.users.FindByID(ctx, actor.UserID)
	if err != nil {
		return models.User{}, notFound(err, "user", actor.Username)
	}
	return user, nil
}

// UpdateAccount changes the username, email and phone of the acting user.
// The user's own current values never count as conflicts.
func (s *UserService) UpdateAccount(ctx context.Context, actor models.Actor, req dto.UpdateAccountRequest) (models.User, error) {
	user, err := s.Current(ctx, actor)
	if err != nil {
		return models.User{}, err
	}

	fields := validators.ValidateStruct(req)
	conflicts, err := validators.CheckUnique(ctx, user.ID, userUniqueRules(s.users, req.Username, req.Email, req.Phone)...)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to check account uniqueness: %w", err)
	}
	if err := submissionError(fields, conflicts); err != nil {
		return models.User{}, err
	}

	user.Username = req.Username
	user.Email = req.Email
	user.Phone = req.Phone
	if err := s.users.Update(ctx, &user); err != nil {
		return models.User{}, err
	}

	s.log.Info("account updated", zap.String("user_id", user.ID))
	return user, nil
}

// ChangePassword replaces the acting user's password after checking the current one
func (s *UserService) ChangePassword(ctx context.Context, actor models.Actor, req dto.ChangePasswordRequest) error {
	user, err := s.Current(ctx, actor)
	if err != nil {
		return err
	}

	fields := validators.ValidateStruct(req)
	if err := validators.ValidatePassword(req.NewPassword); err != nil {
		fields.Add("newPassword", err.Error())
	}
	if req.CurrentPassword != "" && !user.CheckPassword(req.CurrentPassword) {
		fields.Add("currentPassword", msgWrongPassword)
	}
	if len(fields) > 0 {
		return &apperrors.ValidationError{Fields: fields}
	}

	if err := user.SetPassword(req.NewPassword); err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.users.Update(ctx, &user); err != nil {
		return err
	}

	s.log.Info("password changed", zap.String("user_id", user.ID))
	return nil
}

// UploadAvatar stores a new avatar image for the acting user.
// The file is written before the account row; a failed row update leaves the file orphaned.
func (s *UserService) UploadAvatar(ctx context.Context, actor models.Actor, upload *dto.FileUpload) (models.User, error) {
	user, err := s.Current(ctx, actor)
	if err != nil {
		return models.User{}, err
	}

	if upload == nil {
		return models.User{}, apperrors.NewValidationError("avatar", "This field is required.")
	}
	if err := validators.ValidateUpload(upload, s.uploadPolicy); err != nil {
		return models.User{}, apperrors.NewValidationError("avatar", err.Error())
	}

	name := uuid.NewString() + "." + validators.Extension(upload.Filename)
	path, err := s.files.Save(ctx, storage.AvatarDir, name, upload.Data)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to store avatar: %w", err)
	}

	user.AvatarPath = &path
	if err := s.users.Update(ctx, &user); err != nil {
		s.log.Warn("avatar file orphaned", zap.String("path", path), zap.Error(err))
		return models.User{}, err
	}

	s.log.Info("avatar uploaded", zap.String("user_id", user.ID), zap.String("path", path))
	return user, nil
}

// Avatar returns the stored avatar of a user, or the identicon generated from
// their email when none was uploaded or the file has gone missing
func (s *UserService) Avatar(ctx context.Context, username string) (dto.Image, error) {
	user, err := s.GetByUsername(ctx, username)
	if err != nil {
		return dto.Image{}, err
	}

	if user.AvatarPath != nil {
		data, err := s.files.Open(ctx, *user.AvatarPath)
		if err == nil {
			return dto.Image{ContentType: imageContentType(*user.AvatarPath), Data: data}, nil
		}
		if !errors.Is(err, storage.ErrNotExist) {
			return dto.Image{}, fmt.Errorf("failed to read avatar: %w", err)
		}
		s.log.Warn("avatar file missing, using identicon",
			zap.String("user_id", user.ID), zap.String("path", *user.AvatarPath))
	}

	data, err := utils.GenerateIdenticon(user.Email)
	if err != nil {
		return dto.Image{}, fmt.Errorf("failed to generate identicon: %w", err)
	}
	return dto.Image{ContentType: utils.IdenticonContentType, Data: data}, nil
}

// SetAdmin grants or withdraws administrator rights. It is an operator
// action with no acting user.
func (s *UserService) SetAdmin(ctx context.Context, username string, isAdmin bool) (models.User, error) {
	user, err := s.GetByUsername(ctx, username)
	if err != nil {
		return models.User{}, err
	}
	user.IsAdmin = isAdmin
	if err := s.users.Update(ctx, &user); err != nil {
		return models.User{}, err
	}

	s.log.Info("admin flag changed", zap.String("user_id", user.ID), zap.Bool("is_admin", isAdmin))
	return user, nil
}
