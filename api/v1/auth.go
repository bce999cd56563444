package v1

import (
	"net/http"
	"time"

	"github.com/bloodlink-registry/dto"
	"github.com/bloodlink-registry/middleware"
	"github.com/bloodlink-registry/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthController handles registration and session endpoints
type AuthController struct {
	authService   *services.AuthService
	userService   *services.UserService
	secureCookies bool
	log           *zap.Logger
}

// NewAuthController creates a new auth controller
func NewAuthController(authService *services.AuthService, userService *services.UserService, secureCookies bool, log *zap.Logger) *AuthController {
	return &AuthController{authService: authService, userService: userService, secureCookies: secureCookies, log: log}
}

// RegisterRoutes registers auth routes
func (ctl *AuthController) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	{
		auth.POST("/register", ctl.Register)
		auth.POST("/login", ctl.Login)
		auth.POST("/logout", middleware.RequireAuth(), ctl.Logout)
		auth.GET("/me", middleware.RequireAuth(), ctl.Me)
	}
}

// Register handles user registration
func (ctl *AuthController) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := ctl.authService.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, ctl.log, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": "Congratulations, you are now a registered user!",
		"data":    user,
	})
}

// Login handles user authentication
func (ctl *AuthController) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	authResponse, err := ctl.authService.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, ctl.log, err)
		return
	}

	// Without "remember me" the cookie lasts for the browser session only
	maxAge := 0
	if req.RememberMe {
		maxAge = int(time.Until(authResponse.ExpiresAt).Seconds())
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AccessTokenCookie, authResponse.Token, maxAge, "/", "", ctl.secureCookies, true)

	// Also return token in response body for clients that prefer Bearer auth
	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   authResponse,
	})
}

// Logout revokes the presented token and clears the session cookie
func (ctl *AuthController) Logout(c *gin.Context) {
	if err := ctl.authService.Logout(c.Request.Context(), middleware.CurrentClaims(c)); err != nil {
		respondError(c, ctl.log, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AccessTokenCookie, "", -1, "/", "", ctl.secureCookies, true)
	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Logged out successfully",
	})
}

// Me returns the account of the acting user
func (ctl *AuthController) Me(c *gin.Context) {
	user, err := ctl.userService.Current(c.Request.Context(), middleware.CurrentActor(c))
	if err != nil {
		respondError(c, ctl.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   user,
	})
}
