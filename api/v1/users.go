package v1

import (
	"net/http"

	"github.com/bloodlink-registry/dto"
	"github.com/bloodlink-registry/middleware"
	"github.com/bloodlink-registry/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserController handles account endpoints
type UserController struct {
	userService    *services.UserService
	maxUploadBytes int64
	log            *zap.Logger
}

// NewUserController creates a new user controller
func NewUserController(userService *services.UserService, maxUploadBytes int64, log *zap.Logger) *UserController {
	return &UserController{userService: userService, maxUploadBytes: maxUploadBytes, log: log}
}

// RegisterRoutes registers user routes
func (ctl *UserController) RegisterRoutes(router *gin.RouterGroup) {
	users := router.Group("/users")
	{
		users.GET("/:username/avatar", ctl.Avatar)

		me := users.Group("/me", middleware.RequireAuth())
		me.PUT("", ctl.UpdateAccount)
		me.PUT("/password", ctl.ChangePassword)
		me.POST("/avatar", middleware.BodyLimit(ctl.maxUploadBytes+uploadFormOverhead), ctl.UploadAvatar)
	}
}

// UpdateAccount edits the acting user's username, email and phone
func (ctl *UserController) UpdateAccount(c *gin.Context) {
	var req dto.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := ctl.userService.UpdateAccount(c.Request.Context(), middleware.CurrentActor(c), req)
	if err != nil {
		respondError(c, ctl.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Your changes have been saved.",
		"data":    user,
	})
}

// ChangePassword replaces the acting user's password
func (ctl *UserController) ChangePassword(c *gin.Context) {
	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := ctl.userService.ChangePassword(c.Request.Context(), middleware.CurrentActor(c), req); err != nil {
		respondError(c, ctl.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Your password has been changed.",
	})
}

// UploadAvatar stores the multipart "avatar" file as the acting user's avatar
func (ctl *UserController) UploadAvatar(c *gin.Context) {
	upload, err := readUpload(c, "avatar", ctl.maxUploadBytes)
	if err != nil {
		respondBindError(c, err)
		return
	}

	user, err := ctl.userService.UploadAvatar(c.Request.Context(), middleware.CurrentActor(c), upload)
	if err != nil {
		respondError(c, ctl.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Your avatar has been updated.",
		"data":    user,
	})
}

// Avatar serves a user's avatar image, generating an identicon when none was uploaded
func (ctl *UserController) Avatar(c *gin.Context) {
	img, err := ctl.userService.Avatar(c.Request.Context(), c.Param("username"))
	if err != nil {
		respondError(c, ctl.log, err)
		return
	}
	respondImage(c, img)
}
