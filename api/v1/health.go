package v1

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HealthCheck probes one backing service
type HealthCheck func(ctx context.Context) error

// HealthController reports service liveness and the state of its backing services
type HealthController struct {
	checks map[string]HealthCheck
	log    *zap.Logger
}

// NewHealthController creates a health controller running checks on every probe
func NewHealthController(checks map[string]HealthCheck, log *zap.Logger) *HealthController {
	return &HealthController{checks: checks, log: log}
}

// HealthCheck handles the health check endpoint
func (ctl *HealthController) HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	components := gin.H{}
	for name, check := range ctl.checks {
		if err := check(ctx); err != nil {
			ctl.log.Warn("health check failed", zap.String("component", name), zap.Error(err))
			components[name] = "unavailable"
			status = http.StatusServiceUnavailable
			continue
		}
		components[name] = "ok"
	}

	state := "ok"
	if status != http.StatusOK {
		state = "degraded"
	}
	c.JSON(status, gin.H{
		"status":     state,
		"service":    "bloodlink-registry",
		"version":    "1.0.0",
		"components": components,
	})
}
