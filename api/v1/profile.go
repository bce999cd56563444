package v1

import (
	"net/http"

	"github.com/bloodlink-registry/dto"
	"github.com/bloodlink-registry/middleware"
	"github.com/bloodlink-registry/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ProfileController handles donor profile endpoints
type ProfileController struct {
	profileService *services.ProfileService
	log            *zap.Logger
}

// NewProfileController creates a new profile controller
func NewProfileController(profileService *services.ProfileService, log *zap.Logger) *ProfileController {
	return &ProfileController{profileService: profileService, log: log}
}

// RegisterRoutes registers profile routes. Anonymous requests are turned away
// before the body is read; the owner-or-admin rule is applied by the profile service.
func (ctl *ProfileController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/users/:username/profile", middleware.RequireAuth(), ctl.GetProfile)
	router.PUT("/users/:username/profile", middleware.RequireAuth(), ctl.UpsertProfile)
}

// GetProfile returns a user's donor profile
func (ctl *ProfileController) GetProfile(c *gin.Context) {
	profile, err := ctl.profileService.GetProfile(c.Request.Context(), middleware.CurrentActor(c), c.Param("username"))
	if err != nil {
		respondError(c, ctl.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   profile,
	})
}

// UpsertProfile creates or updates a user's donor profile
func (ctl *ProfileController) UpsertProfile(c *gin.Context) {
	var req dto.ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	profile, err := ctl.profileService.UpsertProfile(c.Request.Context(), middleware.CurrentActor(c), c.Param("username"), req)
	if err != nil {
		respondError(c, ctl.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Your changes have been saved.",
		"data":    profile,
	})
}
