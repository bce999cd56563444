package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	v1 "github.com/bloodlink-registry/api/v1"
	"github.com/bloodlink-registry/config"
	"github.com/bloodlink-registry/database"
	zaplog "github.com/bloodlink-registry/logger"
	"github.com/bloodlink-registry/metrics"
	"github.com/bloodlink-registry/middleware"
	"github.com/bloodlink-registry/repositories"
	"github.com/bloodlink-registry/services"
	"github.com/bloodlink-registry/storage"
	"github.com/bloodlink-registry/validators"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const serviceName = "bloodlink-registry"

// stores groups the repositories backing the services
type stores struct {
	users        repositories.UserRepository
	profiles     repositories.ProfileRepository
	hospitals    repositories.HospitalRepository
	applications repositories.ApplicationRepository
}

func main() {
	config.LoadEnv()
	cfg := config.Load()

	log, err := zaplog.NewLogger(cfg.LogLevel, cfg.LogFormat, serviceName)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg config.Config, log *zap.Logger) error {
	gin.SetMode(cfg.GinMode)
	ctx := context.Background()
	checks := map[string]v1.HealthCheck{}

	var repos stores
	switch cfg.StorageDriver {
	case config.StorageDriverMemory:
		log.Warn("using in-memory storage, data is lost on restart")
		users := repositories.NewInMemoryUserRepository()
		repos = stores{
			users:        users,
			profiles:     repositories.NewInMemoryProfileRepository(users),
			hospitals:    repositories.NewInMemoryHospitalRepository(),
			applications: repositories.NewInMemoryApplicationRepository(users),
		}
	case config.StorageDriverPostgres:
		db, err := database.Open(ctx, cfg.DatabaseURL, log)
		if err != nil {
			return err
		}
		defer func() { _ = database.Close(db) }()
		if err := database.Migrate(ctx, db, log); err != nil {
			return err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		checks["database"] = sqlDB.PingContext
		repos = stores{
			users:        repositories.NewUserRepository(db),
			profiles:     repositories.NewProfileRepository(db),
			hospitals:    repositories.NewHospitalRepository(db),
			applications: repositories.NewApplicationRepository(db),
		}
	default:
		return errors.New("unknown STORAGE_DRIVER " + cfg.StorageDriver)
	}

	var revocations services.RevocationList = services.NewInMemoryRevocationList()
	if cfg.RedisURL != "" {
		client, err := database.OpenRedis(ctx, cfg.RedisURL)
		if err != nil {
			return err
		}
		defer func() { _ = client.Close() }()
		checks["redis"] = func(ctx context.Context) error { return client.Ping(ctx).Err() }
		revocations = services.NewRedisRevocationList(client)
		log.Info("token revocation backed by redis")
	}

	files, err := storage.NewLocalFileStore(cfg.UploadRoot)
	if err != nil {
		return err
	}
	tokens, err := services.NewTokenService(cfg.JWTSecret, cfg.TokenTTL, revocations)
	if err != nil {
		return err
	}

	m := metrics.New(prometheus.DefaultRegisterer)
	uploadPolicy := validators.ImagePolicy
	uploadPolicy.MaxBytes = cfg.MaxUploadBytes

	deps := v1.Dependencies{
		Auth:           services.NewAuthService(repos.users, tokens, m, log),
		Users:          services.NewUserService(repos.users, files, uploadPolicy, log),
		Profiles:       services.NewProfileService(repos.users, repos.profiles, m, log),
		Hospitals:      services.NewHospitalService(repos.hospitals, files, uploadPolicy, m, log),
		Applications:   services.NewApplicationService(repos.applications, repos.profiles, m, log),
		HealthChecks:   checks,
		MaxUploadBytes: cfg.MaxUploadBytes,
		SecureCookies:  cfg.GinMode == gin.ReleaseMode,
		Log:            log,
	}

	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(log, m))
	router.Use(cors.New(corsConfig(cfg.CORSOrigins)))
	// Multipart bodies beyond this spill to temp files
	router.MaxMultipartMemory = cfg.MaxUploadBytes + 1<<20

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": serviceName,
			"version": "1.0.0",
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	v1.RegisterRoutes(router.Group("/api/v1"), deps)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", zap.String("addr", srv.Addr), zap.String("storage", cfg.StorageDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		log.Info("shutting down", zap.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		// Credentials cannot be combined with a wildcard origin
		cfg.AllowCredentials = false
		return cfg
	}
	cfg.AllowOrigins = origins
	return cfg
}
