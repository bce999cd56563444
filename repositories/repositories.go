package repositories

import (
	"context"
	"errors"

	"github.com/bloodlink-registry/apperrors"
	"github.com/bloodlink-registry/models"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned by every repository when the record does not exist
	ErrNotFound = errors.New("record not found")
	// ErrMissingOwner is returned when a dependent row references a user that does not exist
	ErrMissingOwner = errors.New("owning user does not exist")
)

// Conflict messages reported per field, by both the pre-checks and the store
const (
	MsgUsernameTaken      = "Please use a different username"
	MsgUserEmailTaken     = "Please use a different email address"
	MsgUserPhoneTaken     = "Please use a different phone number"
	MsgHospitalNameTaken  = "A hospital with this name already exists"
	MsgHRNTaken           = "A hospital with this registration number already exists"
	MsgHospitalPhoneTaken = "A hospital with this phone number already exists"
	MsgHospitalEmailTaken = "A hospital with this email address already exists"
	MsgProfileExists      = "A profile already exists for this user"
)

// UserRepository persists user accounts (the identity store)
type UserRepository interface {
	FindByID(ctx context.Context, id string) (models.User, error)
	FindByUsername(ctx context.Context, username string) (models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
	FindByPhone(ctx context.Context, phone string) (models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
}

// ProfileRepository persists donor profiles, at most one per user
type ProfileRepository interface {
	FindByUserID(ctx context.Context, userID string) (models.Profile, error)
	Upsert(ctx context.Context, profile *models.Profile) error
}

// HospitalRepository persists the hospital directory
type HospitalRepository interface {
	FindAll(ctx context.Context) ([]models.Hospital, error)
	FindByID(ctx context.Context, id string) (models.Hospital, error)
	FindByHRN(ctx context.Context, hrn string) (models.Hospital, error)
	FindByName(ctx context.Context, name string) (models.Hospital, error)
	FindByPhone(ctx context.Context, phone string) (models.Hospital, error)
	FindByEmail(ctx context.Context, email string) (models.Hospital, error)
	Create(ctx context.Context, hospital *models.Hospital) error
	Update(ctx context.Context, hospital *models.Hospital) error
}

// ApplicationRepository persists donor applications
type ApplicationRepository interface {
	Create(ctx context.Context, application *models.DonorApplication) error
	FindByID(ctx context.Context, id string) (models.DonorApplication, error)
	FindByUserID(ctx context.Context, userID string) ([]models.DonorApplication, error)
	FindAll(ctx context.Context, status *models.ApplicationStatus) ([]models.DonorApplication, error)
	UpdateStatus(ctx context.Context, id string, status models.ApplicationStatus) (models.DonorApplication, error)
}

type uniqueConstraint struct {
	field   string
	message string
}

// Unique index names declared on the models, mapped to the offending field
var uniqueConstraints = map[string]uniqueConstraint{
	"uq_users_username":   {"username", MsgUsernameTaken},
	"uq_users_email":      {"email", MsgUserEmailTaken},
	"uq_users_phone":      {"phone", MsgUserPhoneTaken},
	"uq_profiles_user_id": {"userId", MsgProfileExists},
	"uq_hospitals_name":   {"name", MsgHospitalNameTaken},
	"uq_hospitals_hrn":    {"hrn", MsgHRNTaken},
	"uq_hospitals_phone":  {"phone", MsgHospitalPhoneTaken},
	"uq_hospitals_email":  {"email", MsgHospitalEmailTaken},
}

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// translateError maps gorm and postgres errors onto repository and domain errors
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			if c, ok := uniqueConstraints[pgErr.ConstraintName]; ok {
				return apperrors.NewConflictError(c.field, c.message)
			}
			return apperrors.NewConflictError("record", "Record already exists")
		case pgForeignKeyViolation:
			return ErrMissingOwner
		}
	}
	return err
}
