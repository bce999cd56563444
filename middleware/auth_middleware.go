package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/bloodlink-registry/dto"
	"github.com/bloodlink-registry/models"
	"github.com/bloodlink-registry/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Context keys and the session cookie shared with the handlers
const (
	ActorKey          = "actor"
	ClaimsKey         = "claims"
	AccessTokenCookie = "access_token"
	// LoginPath is where unauthenticated clients are sent
	LoginPath = "/api/v1/auth/login"
)

// Authenticator resolves a session token to the current state of its user
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (models.User, *dto.TokenClaims, error)
}

// AuthMiddleware resolves the acting identity of every request. A request
// without a token continues as the anonymous actor; a bad or revoked token is
// rejected.
func AuthMiddleware(auth Authenticator, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.Set(ActorKey, models.Anonymous)
			c.Next()
			return
		}

		user, claims, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, services.ErrInvalidToken) || errors.Is(err, services.ErrTokenRevoked) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"status":   "error",
					"message":  "Invalid or expired token",
					"redirect": LoginPath,
				})
				return
			}
			log.Error("authentication failed", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"status":  "error",
				"message": "Internal server error",
			})
			return
		}

		c.Set(ActorKey, user.Actor())
		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// RequireAuth rejects anonymous requests. Use after AuthMiddleware.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !CurrentActor(c).IsAuthenticated() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"status":   "error",
				"message":  "Authentication required",
				"redirect": LoginPath,
			})
			return
		}
		c.Next()
	}
}

// CurrentActor returns the acting identity set by AuthMiddleware, or the
// anonymous actor
func CurrentActor(c *gin.Context) models.Actor {
	if value, exists := c.Get(ActorKey); exists {
		if actor, ok := value.(models.Actor); ok {
			return actor
		}
	}
	return models.Anonymous
}

// CurrentClaims returns the claims of the presented token, nil when anonymous
func CurrentClaims(c *gin.Context) *dto.TokenClaims {
	if value, exists := c.Get(ClaimsKey); exists {
		if claims, ok := value.(*dto.TokenClaims); ok {
			return claims
		}
	}
	return nil
}

// extractToken reads a Bearer token, falling back to the session cookie
func extractToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	if cookie, err := c.Cookie(AccessTokenCookie); err == nil {
		return cookie
	}
	return ""
}
