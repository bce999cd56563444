package v1

import (
	"github.com/bloodlink-registry/middleware"
	"github.com/bloodlink-registry/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Dependencies are the services and settings the v1 API is built from
type Dependencies struct {
	Auth           *services.AuthService
	Users          *services.UserService
	Profiles       *services.ProfileService
	Hospitals      *services.HospitalService
	Applications   *services.ApplicationService
	HealthChecks   map[string]HealthCheck
	MaxUploadBytes int64
	SecureCookies  bool
	Log            *zap.Logger
}

// RegisterRoutes registers all v1 API routes. Every route sees the acting
// identity resolved by the auth middleware, anonymous when no token is sent.
func RegisterRoutes(router *gin.RouterGroup, deps Dependencies) {
	health := NewHealthController(deps.HealthChecks, deps.Log)
	router.GET("/health", health.HealthCheck)

	router.Use(middleware.AuthMiddleware(deps.Auth, deps.Log))

	NewAuthController(deps.Auth, deps.Users, deps.SecureCookies, deps.Log).RegisterRoutes(router)
	NewUserController(deps.Users, deps.MaxUploadBytes, deps.Log).RegisterRoutes(router)
	NewProfileController(deps.Profiles, deps.Log).RegisterRoutes(router)
	NewHospitalController(deps.Hospitals, deps.MaxUploadBytes, deps.Log).RegisterRoutes(router)
	NewApplicationController(deps.Applications, deps.Log).RegisterRoutes(router)
}
