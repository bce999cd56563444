package v1

import (
	"net/http"

	"github.com/bloodlink-registry/dto"
	"github.com/bloodlink-registry/middleware"
	"github.com/bloodlink-registry/policy"
	"github.com/bloodlink-registry/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ApplicationController handles donor application endpoints
type ApplicationController struct {
	applicationService *services.ApplicationService
	log                *zap.Logger
}

// NewApplicationController creates a new application controller
func NewApplicationController(applicationService *services.ApplicationService, log *zap.Logger) *ApplicationController {
	return &ApplicationController{applicationService: applicationService, log: log}
}

// RegisterRoutes registers applicant and admin review routes
func (ctl *ApplicationController) RegisterRoutes(router *gin.RouterGroup) {
	applications := router.Group("/applications", middleware.RequireAuth())
	{
		applications.POST("", ctl.SubmitApplication)
		applications.GET("", ctl.ListMyApplications)
	}

	admin := router.Group("/admin", middleware.AdminMiddleware(policy.CanReviewApplications))
	{
		admin.GET("/applications", ctl.ListApplications)
		admin.PATCH("/applications/:id/status", ctl.SetApplicationStatus)
	}
}

// SubmitApplication files a donor application for the acting user
func (ctl *ApplicationController) SubmitApplication(c *gin.Context) {
	var req dto.ApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	application, err := ctl.applicationService.Submit(c.Request.Context(), middleware.CurrentActor(c), req)
	if err != nil {
		respondError(c, ctl.log, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": "Your application has been submitted.",
		"data":    application,
	})
}

// ListMyApplications returns the acting user's applications
func (ctl *ApplicationController) ListMyApplications(c *gin.Context) {
	response, err := ctl.applicationService.ListMine(c.Request.Context(), middleware.CurrentActor(c))
	if err != nil {
		respondError(c, ctl.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   response,
	})
}

// ListApplications returns every application, optionally filtered by ?status=
func (ctl *ApplicationController) ListApplications(c *gin.Context) {
	response, err := ctl.applicationService.ListAll(c.Request.Context(), middleware.CurrentActor(c), c.Query("status"))
	if err != nil {
		respondError(c, ctl.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   response,
	})
}

// SetApplicationStatus records a review decision
func (ctl *ApplicationController) SetApplicationStatus(c *gin.Context) {
	var req dto.ApplicationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	application, err := ctl.applicationService.SetStatus(c.Request.Context(), middleware.CurrentActor(c), c.Param("id"), req)
	if err != nil {
		respondError(c, ctl.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   application,
	})
}
