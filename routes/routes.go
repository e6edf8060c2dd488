package routes

import (
	"time"

	"github.com/intelligensi-ai/intelligensi-bridge/config"
	"github.com/intelligensi-ai/intelligensi-bridge/domain/auth"
	"github.com/intelligensi-ai/intelligensi-bridge/domain/content"
	"github.com/intelligensi-ai/intelligensi-bridge/domain/health"
	"github.com/intelligensi-ai/intelligensi-bridge/domain/site"
	"github.com/intelligensi-ai/intelligensi-bridge/middleware"
	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo) {
	// Public routes
	e.POST("/login", auth.LoginHandler)
	e.GET("/site-info", site.InfoHandler)
	e.GET("/bulk-export", content.BulkExportHandler, middleware.OptionalJWTMiddleware)

	// Mutating content routes require an editor identity
	mutating := []echo.MiddlewareFunc{
		middleware.JWTMiddleware,
		middleware.RoleMiddleware(content.RoleEditor),
	}
	if config.DB != nil {
		mutating = append(mutating, middleware.RateLimiterMiddleware(middleware.RateLimiterConfig{
			MaxRequests:   60,
			Window:        time.Minute,
			BlockDuration: 5 * time.Minute,
			DB:            config.DB.DB,
		}))
	}
	e.POST("/homepage-update", content.HomepageUpdateHandler, mutating...)
	e.POST("/bulk-import", content.BulkImportHandler, mutating...)

	// Health routes
	e.GET("/health", health.HealthHandler)
	e.GET("/health/live", health.LivenessHandler)
	e.GET("/health/ready", health.ReadinessHandler)
	e.GET("/health/stats", health.StatsHandler)
}
