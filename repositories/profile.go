package repositories

import (
	"context"

	"github.com/bloodlink-registry/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormProfileRepository handles database operations for donor profiles
type GormProfileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new profile repository instance
func NewProfileRepository(db *gorm.DB) *GormProfileRepository {
	return &GormProfileRepository{db: db}
}

// FindByUserID retrieves the profile owned by a user
func (r *GormProfileRepository) FindByUserID(ctx context.Context, userID string) (models.Profile, error) {
	var profile models.Profile
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile)
	return profile, translateError(result.Error)
}

// Upsert creates the user's profile or overwrites every field of the existing one.
// The insert-or-update decision is a single statement on the unique user_id index,
// so concurrent upserts for one user cannot produce two rows.
func (r *GormProfileRepository) Upsert(ctx context.Context, profile *models.Profile) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"dob", "gender", "blood_group", "address", "state", "zip_code", "updated_at",
			}),
		}).Create(profile).Error
		if err != nil {
			return err
		}
		// On the update path the generated id was discarded; reload the stored row
		return tx.Where("user_id = ?", profile.UserID).First(profile).Error
	})
	return translateError(err)
}
