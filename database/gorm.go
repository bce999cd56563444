package database

import (
	"context"
	"fmt"
	"time"

	zaplog "github.com/bloodlink-registry/logger"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Open sets up the GORM connection pool for dbURL and logs the server version
func Open(ctx context.Context, dbURL string, log *zap.Logger) (*gorm.DB, error) {
	if dbURL == "" {
		return nil, fmt.Errorf("database URL cannot be empty")
	}

	db, err := gorm.Open(postgres.Open(dbURL), &gorm.Config{
		Logger: zaplog.NewGormLogger(log.Named("gorm"), time.Second),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get and configure the underlying SQL DB
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get SQL DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	var version string
	if err := db.WithContext(ctx).Raw("SELECT version()").Scan(&version).Error; err == nil {
		log.Info("connected to database", zap.String("version", version))
	}

	return db, nil
}

// Close releases the connection pool
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
