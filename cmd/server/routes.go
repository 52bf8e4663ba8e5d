package main

import (
	"github.com/gin-gonic/gin"
	"github.com/teamtrack/backend/internal/middleware"
	"github.com/teamtrack/backend/internal/models"
	"github.com/teamtrack/backend/pkg/logger"
)

// registerRoutes sets up all HTTP routes on the given Gin engine.
func registerRoutes(r *gin.Engine, svc *appServices) {
	r.Use(logger.GinLogger(), logger.GinRecovery())
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false
	r.Use(middleware.RequestID())
	r.Use(middleware.CORS())

	// Credential endpoints get a tight per-IP budget against brute force;
	// model drafting gets one against cost runaway.
	authLimiter := middleware.NewRateLimiter(5, 10)
	aiLimiter := middleware.NewRateLimiter(1, 5)

	r.GET("/health", svc.healthHandler.CheckHealth)

	// Auth routes (public)
	auth := r.Group("/auth", authLimiter.Middleware())
	{
		auth.POST("/register", svc.authHandler.Register)
		auth.POST("/login", svc.authHandler.Login)
	}

	// Protected routes
	protected := r.Group("")
	protected.Use(middleware.AuthRequired())
	protected.Use(middleware.Audit(models.GetDB()))
	{
		protected.GET("/auth/me", svc.authHandler.Me)
		protected.POST("/auth/logout", svc.authHandler.Logout)

		protected.GET("/projects", svc.projectHandler.List)
		protected.POST("/projects", svc.projectHandler.Create)
		protected.GET("/projects/:id", svc.projectHandler.GetByID)
		protected.PATCH("/projects/:id", svc.projectHandler.Update)
		protected.DELETE("/projects/:id", svc.projectHandler.Delete)

		protected.POST("/projects/:id/members", svc.memberHandler.Add)
		protected.DELETE("/projects/:id/members", svc.memberHandler.Remove)

		protected.GET("/tasks", svc.taskHandler.List)
		protected.POST("/tasks", svc.taskHandler.Create)
		protected.PATCH("/tasks", svc.taskHandler.UpdateStatus)
		protected.GET("/tasks/:id", svc.taskHandler.GetByID)
		protected.PATCH("/tasks/:id", svc.taskHandler.Update)
		protected.DELETE("/tasks/:id", svc.taskHandler.Delete)

		protected.GET("/users", svc.userHandler.List)
		protected.GET("/users/:id", svc.userHandler.GetByID)
		protected.PATCH("/users/:id", svc.userHandler.UpdateRole)
		protected.DELETE("/users/:id", svc.userHandler.Delete)

		protected.GET("/dashboard/stats", svc.dashboardHandler.Stats)

		ai := protected.Group("/ai", aiLimiter.Middleware())
		{
			ai.POST("/generate-stories", svc.aiHandler.GenerateStories)
			ai.POST("/generate-tasks", svc.aiHandler.GenerateTasks)
		}

		// Admin-only
		admin := protected.Group("", middleware.AdminRequired())
		{
			admin.GET("/system-logs", svc.auditLogHandler.List)
		}
	}
}
