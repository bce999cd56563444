package database

import (
	"context"
	"fmt"

	"github.com/bloodlink-registry/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Models lists every persisted type in dependency order
func Models() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Profile{},
		&models.Hospital{},
		&models.DonorApplication{},
	}
}

// Migrate creates or updates the schema, including the unique indexes the
// repositories rely on for conflict detection
func Migrate(ctx context.Context, db *gorm.DB, log *zap.Logger) error {
	log.Info("migrating database schema")
	if err := db.WithContext(ctx).AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	log.Info("database schema migrated")
	return nil
}
