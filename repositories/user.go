package repositories

import (
	"context"

	"github.com/bloodlink-registry/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormUserRepository handles database operations for users
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository instance
func NewUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// FindByID retrieves a user by its ID
func (r *GormUserRepository) FindByID(ctx context.Context, id string) (models.User, error) {
	return r.findBy(ctx, "id", id)
}

// FindByUsername retrieves a user by exact username
func (r *GormUserRepository) FindByUsername(ctx context.Context, username string) (models.User, error) {
	return r.findBy(ctx, "username", username)
}

// FindByEmail retrieves a user by exact (case-sensitive) email
func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	return r.findBy(ctx, "email", email)
}

// FindByPhone retrieves a user by phone number
func (r *GormUserRepository) FindByPhone(ctx context.Context, phone string) (models.User, error) {
	return r.findBy(ctx, "phone", phone)
}

// column is always one of the literals above
func (r *GormUserRepository) findBy(ctx context.Context, column, value string) (models.User, error) {
	var user models.User
	result := r.db.WithContext(ctx).Where(column+" = ?", value).First(&user)
	return user, translateError(result.Error)
}

// Create inserts a new user. Unique index violations come back as *apperrors.ConflictError.
func (r *GormUserRepository) Create(ctx context.Context, user *models.User) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Omit(clause.Associations).Create(user).Error
	})
	return translateError(err)
}

// Update overwrites every column of an existing user
func (r *GormUserRepository) Update(ctx context.Context, user *models.User) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(user).Select("*").Omit("id", "created_at", clause.Associations).Updates(user)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	return translateError(err)
}
