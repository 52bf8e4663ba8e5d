package main

import (
	"github.com/teamtrack/backend/internal/config"
	"github.com/teamtrack/backend/internal/handlers"
	"github.com/teamtrack/backend/internal/models"
	"github.com/teamtrack/backend/internal/utils"
	"github.com/teamtrack/backend/pkg/logger"
)

// appServices holds the initialized handlers wired into the router.
type appServices struct {
	cfg              *config.Config
	authHandler      *handlers.AuthHandler
	projectHandler   *handlers.ProjectHandler
	memberHandler    *handlers.ProjectMemberHandler
	taskHandler      *handlers.TaskHandler
	userHandler      *handlers.UserHandler
	dashboardHandler *handlers.DashboardHandler
	aiHandler        *handlers.AIHandler
	auditLogHandler  *handlers.AuditLogHandler
	healthHandler    *handlers.HealthHandler
}

// bootstrap initializes the database and constructs every handler.
func bootstrap(cfg *config.Config) *appServices {
	utils.SetJWTSecret(cfg.JWT.Secret)

	if err := models.InitDB(&cfg.Database); err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	if err := models.AutoMigrate(); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}

	db := models.GetDB()

	return &appServices{
		cfg:              cfg,
		authHandler:      handlers.NewAuthHandler(db, &cfg.JWT),
		projectHandler:   handlers.NewProjectHandler(db),
		memberHandler:    handlers.NewProjectMemberHandler(db),
		taskHandler:      handlers.NewTaskHandler(db),
		userHandler:      handlers.NewUserHandler(db),
		dashboardHandler: handlers.NewDashboardHandler(db),
		aiHandler:        handlers.NewAIHandler(&cfg.AI),
		auditLogHandler:  handlers.NewAuditLogHandler(db),
		healthHandler:    handlers.NewHealthHandler(),
	}
}
