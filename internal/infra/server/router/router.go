// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/dashboard/internal/integration/entrypoint/controller"
	"github.com/finance-tracker/dashboard/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine              *gin.Engine
	healthController    *controller.HealthController
	authController      *controller.AuthController
	pageController      *controller.PageController
	dashboardController *controller.DashboardController
	recordController    *controller.RecordController
	loginRateLimiter    *middleware.RateLimiter
	authMiddleware      *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
// Controllers other than health may be nil when the database is unavailable.
func NewRouter(
	healthController *controller.HealthController,
	authController *controller.AuthController,
	pageController *controller.PageController,
	dashboardController *controller.DashboardController,
	recordController *controller.RecordController,
	loginRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:    healthController,
		authController:      authController,
		pageController:      pageController,
		dashboardController: dashboardController,
		recordController:    recordController,
		loginRateLimiter:    loginRateLimiter,
		authMiddleware:      authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	switch environment {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	}

	// Logger and recovery
	r.engine = gin.Default()

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")

	if r.authController != nil && r.authMiddleware != nil {
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.authController.Register)
			if r.loginRateLimiter != nil {
				auth.POST("/login", r.loginRateLimiter.Middleware("login"), r.authController.Login)
			} else {
				auth.POST("/login", r.authController.Login)
			}
			auth.POST("/refresh", r.authController.RefreshToken)
			auth.POST("/logout", r.authController.Logout)
		}

		v1.GET("/me", r.authMiddleware.Authenticate(), r.authController.Me)
	}

	// Guests get the landing view, so the token is optional here.
	if r.pageController != nil && r.authMiddleware != nil {
		v1.GET("/page", r.authMiddleware.OptionalAuthenticate(), r.pageController.Get)
	}

	if r.dashboardController != nil && r.authMiddleware != nil {
		dashboard := v1.Group("/dashboard")
		{
			dashboard.GET("/quick-actions", r.dashboardController.GetQuickActions)

			authenticated := dashboard.Group("")
			authenticated.Use(r.authMiddleware.Authenticate())
			authenticated.GET("/overview", r.dashboardController.GetOverview)
			authenticated.GET("/categories", r.dashboardController.GetCategoryBreakdown)
			authenticated.GET("/chart", r.dashboardController.GetChart)
			authenticated.GET("/insights", r.dashboardController.GetInsights)
		}
	}

	if r.recordController != nil && r.authMiddleware != nil {
		records := v1.Group("/records")
		records.Use(r.authMiddleware.Authenticate())
		{
			records.GET("", r.recordController.List)
			records.POST("", r.recordController.Create)
			records.PUT("/:id", r.recordController.Update)
			records.DELETE("/:id", r.recordController.Delete)
		}
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
