package repositories

import (
	"context"

	"github.com/bloodlink-registry/models"
	"gorm.io/gorm"
)

// GormHospitalRepository handles database operations for hospitals
type GormHospitalRepository struct {
	db *gorm.DB
}

// NewHospitalRepository creates a new hospital repository instance
func NewHospitalRepository(db *gorm.DB) *GormHospitalRepository {
	return &GormHospitalRepository{db: db}
}

// FindAll retrieves every hospital ordered by name
func (r *GormHospitalRepository) FindAll(ctx context.Context) ([]models.Hospital, error) {
	var hospitals []models.Hospital
	result := r.db.WithContext(ctx).Order("name asc").Order("id asc").Find(&hospitals)
	return hospitals, translateError(result.Error)
}

// FindByID retrieves a hospital by its ID
func (r *GormHospitalRepository) FindByID(ctx context.Context, id string) (models.Hospital, error) {
	return r.findBy(ctx, "id", id)
}

// FindByHRN retrieves a hospital by registration number
func (r *GormHospitalRepository) FindByHRN(ctx context.Context, hrn string) (models.Hospital, error) {
	return r.findBy(ctx, "hrn", hrn)
}

// FindByName retrieves a hospital by name
func (r *GormHospitalRepository) FindByName(ctx context.Context, name string) (models.Hospital, error) {
	return r.findBy(ctx, "name", name)
}

// FindByPhone retrieves a hospital by phone number
func (r *GormHospitalRepository) FindByPhone(ctx context.Context, phone string) (models.Hospital, error) {
	return r.findBy(ctx, "phone", phone)
}

// FindByEmail retrieves a hospital by email
func (r *GormHospitalRepository) FindByEmail(ctx context.Context, email string) (models.Hospital, error) {
	return r.findBy(ctx, "email", email)
}

func (r *GormHospitalRepository) findBy(ctx context.Context, column, value string) (models.Hospital, error) {
	var hospital models.Hospital
	result := r.db.WithContext(ctx).Where(column+" = ?", value).First(&hospital)
	return hospital, translateError(result.Error)
}

// Create inserts a new hospital
func (r *GormHospitalRepository) Create(ctx context.Context, hospital *models.Hospital) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(hospital).Error
	})
	return translateError(err)
}

// Update overwrites every column of an existing hospital
func (r *GormHospitalRepository) Update(ctx context.Context, hospital *models.Hospital) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(hospital).Select("*").Omit("id", "created_at").Updates(hospital)
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
