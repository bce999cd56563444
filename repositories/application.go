package repositories

import (
	"context"

	"github.com/bloodlink-registry/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormApplicationRepository handles database operations for donor applications
type GormApplicationRepository struct {
	db *gorm.DB
}

// NewApplicationRepository creates a new donor application repository instance
func NewApplicationRepository(db *gorm.DB) *GormApplicationRepository {
	return &GormApplicationRepository{db: db}
}

// Create inserts a new application
func (r *GormApplicationRepository) Create(ctx context.Context, application *models.DonorApplication) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Omit(clause.Associations).Create(application).Error
	})
	return translateError(err)
}

// FindByID retrieves an application with its applicant
func (r *GormApplicationRepository) FindByID(ctx context.Context, id string) (models.DonorApplication, error) {
	var application models.DonorApplication
	result := r.db.WithContext(ctx).Preload("Applicant").First(&application, "id = ?", id)
	return application, translateError(result.Error)
}

// FindByUserID retrieves a user's applications, newest first
func (r *GormApplicationRepository) FindByUserID(ctx context.Context, userID string) ([]models.DonorApplication, error) {
	var applications []models.DonorApplication
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("submitted_at desc").
		Find(&applications)
	return applications, translateError(result.Error)
}

// FindAll retrieves every application, optionally filtered by status, oldest first
func (r *GormApplicationRepository) FindAll(ctx context.Context, status *models.ApplicationStatus) ([]models.DonorApplication, error) {
	var applications []models.DonorApplication
	db := r.db.WithContext(ctx).Preload("Applicant")
	if status != nil {
		db = db.Where("status = ?", *status)
	}
	result := db.Order("submitted_at asc").Find(&applications)
	return applications, translateError(result.Error)
}

// UpdateStatus records a review decision
func (r *GormApplicationRepository) UpdateStatus(ctx context.Context, id string, status models.ApplicationStatus) (models.DonorApplication, error) {
	var application models.DonorApplication
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.DonorApplication{}).Where("id = ?", id).Update("status", status)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Preload("Applicant").First(&application, "id = ?", id).Error
	})
	return application, translateError(err)
}
