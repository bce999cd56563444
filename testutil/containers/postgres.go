//go:build integration

package containers

import (
	"context"
	"testing"

	"github.com/bloodlink-registry/database"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PostgresContainer wraps a migrated testcontainers Postgres instance
type PostgresContainer struct {
	Container testcontainers.Container
	DSN       string
	DB        *gorm.DB
}

// NewPostgresContainer starts Postgres, connects through the database package
// and migrates the schema. The container is terminated when the test ends.
func NewPostgresContainer(t *testing.T) *PostgresContainer {
	t.Helper()

	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("bloodlink"),
		tcpostgres.WithUsername("bloodlink"),
		tcpostgres.WithPassword("bloodlink"),
		tcpostgres.BasicWaitStrategies(),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get postgres connection string: %v", err)
	}

	log := zap.NewNop()
	db, err := database.Open(ctx, dsn, log)
	if err != nil {
		t.Fatalf("failed to open postgres: %v", err)
	}
	t.Cleanup(func() { _ = database.Close(db) })

	if err := database.Migrate(ctx, db, log); err != nil {
		t.Fatalf("failed to migrate postgres: %v", err)
	}

	return &PostgresContainer{Container: container, DSN: dsn, DB: db}
}

// Truncate empties every table. Use between tests to ensure isolation.
func (p *PostgresContainer) Truncate(ctx context.Context) error {
	return p.DB.WithContext(ctx).
		Exec("TRUNCATE donor_applications, profiles, hospitals, users CASCADE").Error
}
