package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/johnquangdev/meeting-autopilot/internal/infrastructure/http/middleware"
	"github.com/johnquangdev/meeting-autopilot/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg         *config.Config
	jobsHandler *Jobs
	authmw      *middleware.TriggerAuth
}

// NewRouter creates a new router with all handlers
func NewRouter(cfg *config.Config, jobsHandler *Jobs, authmw *middleware.TriggerAuth) *Router {
	return &Router{
		cfg:         cfg,
		jobsHandler: jobsHandler,
		authmw:      authmw,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", rt.healthCheck)

	// API v1 group
	v1 := e.Group("/v1")
	rt.setupJobRoutes(v1)
}

// setupJobRoutes configures the trigger endpoints
func (rt *Router) setupJobRoutes(g *echo.Group) {
	jobGroup := g.Group("/jobs")
	if rt.authmw != nil {
		jobGroup.Use(rt.authmw.Authenticate)
	}
	jobGroup.POST("/:name", rt.jobsHandler.Trigger)
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status": "ok",
	})
}
