package services

import (
	"context"
	"errors"
	"fmt"
	"mime"

	"github.com/bloodlink-registry/apperrors"
	"github.com/bloodlink-registry/models"
	"github.com/bloodlink-registry/repositories"
	"github.com/bloodlink-registry/validators"
)

// submissionError folds format errors and uniqueness conflicts of one
// submission into a single error. Format errors win: the caller gets a
// ValidationError carrying every field, otherwise a ConflictError.
func submissionError(fields, conflicts apperrors.FieldErrors) error {
	if len(fields) > 0 {
		fields.Merge(conflicts)
		return &apperrors.ValidationError{Fields: fields}
	}
	if len(conflicts) > 0 {
		return &apperrors.ConflictError{Fields: conflicts}
	}
	return nil
}

// notFound turns a repository miss into a NotFoundError and wraps anything else
func notFound(err error, resource, key string) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return &apperrors.NotFoundError{Resource: resource, Key: key}
	}
	return fmt.Errorf("failed to load %s %s: %w", resource, key, err)
}

func userLookup(find func(ctx context.Context, value string) (models.User, error)) validators.Lookup {
	return func(ctx context.Context, value string) (string, error) {
		user, err := find(ctx, value)
		if err != nil {
			return "", err
		}
		return user.ID, nil
	}
}

func hospitalLookup(find func(ctx context.Context, value string) (models.Hospital, error)) validators.Lookup {
	return func(ctx context.Context, value string) (string, error) {
		hospital, err := find(ctx, value)
		if err != nil {
			return "", err
		}
		return hospital.ID, nil
	}
}

func userUniqueRules(users repositories.UserRepository, username, email, phone string) []validators.UniqueRule {
	return []validators.UniqueRule{
		{Field: "username", Value: username, Message: repositories.MsgUsernameTaken, Lookup: userLookup(users.FindByUsername)},
		{Field: "email", Value: email, Message: repositories.MsgUserEmailTaken, Lookup: userLookup(users.FindByEmail)},
		{Field: "phone", Value: phone, Message: repositories.MsgUserPhoneTaken, Lookup: userLookup(users.FindByPhone)},
	}
}

// imageContentType derives the served media type from a stored file's extension
func imageContentType(path string) string {
	switch ext := validators.Extension(path); ext {
	case "jpg", "jpeg":
		return "image/jpeg"
	case "":
		return "application/octet-stream"
	default:
		if t := mime.TypeByExtension("." + ext); t != "" {
			return t
		}
		return "application/octet-stream"
	}
}
