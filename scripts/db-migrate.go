package main

import (
	"context"
	"flag"
	"time"

	"github.com/bloodlink-registry/config"
	"github.com/bloodlink-registry/database"
	zaplog "github.com/bloodlink-registry/logger"
	"github.com/bloodlink-registry/repositories"
	"github.com/bloodlink-registry/services"
	"github.com/bloodlink-registry/validators"
	"go.uber.org/zap"
)

// Applies the schema to DATABASE_URL and optionally grants admin rights to
// an existing account, e.g. `go run ./scripts -promote-admin alice`.
func main() {
	promote := flag.String("promote-admin", "", "username to grant admin privileges")
	demote := flag.String("demote-admin", "", "username to revoke admin privileges from")
	flag.Parse()

	config.LoadEnv()
	cfg := config.Load()

	log, err := zaplog.NewLogger(cfg.LogLevel, "console", "bloodlink-migrate")
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db, err := database.Open(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() { _ = database.Close(db) }()

	if err := database.Migrate(ctx, db, log); err != nil {
		log.Fatal("migration failed", zap.Error(err))
	}

	users := services.NewUserService(repositories.NewUserRepository(db), nil, validators.ImagePolicy, log)
	changes := []struct {
		username string
		admin    bool
	}{{*promote, true}, {*demote, false}}
	for _, change := range changes {
		if change.username == "" {
			continue
		}
		if _, err := users.SetAdmin(ctx, change.username, change.admin); err != nil {
			log.Fatal("failed to update admin flag", zap.String("username", change.username), zap.Error(err))
		}
		log.Info("admin flag updated", zap.String("username", change.username), zap.Bool("isAdmin", change.admin))
	}

	log.Info("database migration completed")
}
