package middleware

import (
	"errors"
	"net/http"

	"github.com/bloodlink-registry/apperrors"
	"github.com/bloodlink-registry/models"
	"github.com/gin-gonic/gin"
)

// AdminMiddleware creates a middleware that ensures the actor passes an
// admin-only rule such as policy.CanReviewApplications.
// This middleware should be used after AuthMiddleware
func AdminMiddleware(rule func(models.Actor) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := rule(CurrentActor(c))
		if err == nil {
			c.Next()
			return
		}

		var authz *apperrors.AuthorizationError
		if errors.As(err, &authz) && authz.Unauthenticated {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"status":   "error",
				"message":  "Authentication required",
				"redirect": LoginPath,
			})
			return
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"status":  "error",
			"message": "Admin privileges required",
		})
	}
}
