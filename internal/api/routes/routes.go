package routes

import (
	"fmt"
	"net/http"

	"team-task-backend/internal/api/handlers"
	"team-task-backend/internal/api/middleware"
	"team-task-backend/internal/auth"
	"team-task-backend/internal/config"
	"team-task-backend/internal/permission"
	"team-task-backend/internal/repository"
	"team-task-backend/internal/service"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// SetupRoutes configures all the routes for the application
func SetupRoutes(db *gorm.DB, cfg *config.Config) (*gin.Engine, error) {
	// Create router
	router := gin.New()

	// Add middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS(cfg.AllowedOrigins))

	// Initialize validator
	validator := service.NewValidator()

	// Initialize auth components
	tokenService, err := auth.NewTokenService(auth.NewAuthConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token service: %w", err)
	}
	passwordHasher := auth.NewPasswordHasher(cfg.BcryptCost)
	authMiddleware := auth.NewAuthMiddleware(tokenService)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	teamRepo := repository.NewTeamRepository(db)
	memberRepo := repository.NewTeamMemberRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	// Initialize services
	authService := service.NewAuthService(userRepo, passwordHasher, tokenService, validator)
	userService := service.NewUserService(userRepo)
	teamService := service.NewTeamService(teamRepo, memberRepo, userRepo, validator)
	taskService := service.NewTaskService(taskRepo, teamRepo, memberRepo, userRepo, validator)
	accessService := service.NewAccessService(teamRepo, memberRepo, taskRepo, teamService)
	teamGuard := middleware.NewTeamGuard(accessService)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db)
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	teamHandler := handlers.NewTeamHandler(teamService, accessService)
	taskHandler := handlers.NewTaskHandler(taskService, accessService)

	// Health check routes
	router.GET("/health", healthHandler.Health)
	router.GET("/health/ready", healthHandler.Ready)
	router.GET("/health/live", healthHandler.Live)

	// Swagger documentation route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/api/v1")

	// Public auth routes
	authRoutes := v1.Group("/auth")
	{
		authRoutes.POST("/register", authHandler.Register)
		authRoutes.POST("/login", authHandler.Login)
	}

	// Everything else requires a bearer token
	protected := v1.Group("")
	protected.Use(authMiddleware.RequireAuth())
	{
		protected.GET("/users/profile", userHandler.GetProfile)

		teams := protected.Group("/teams")
		{
			teams.POST("", teamHandler.CreateTeam)
			teams.GET("", teamHandler.ListTeams)
			teams.GET("/:teamId", teamGuard.RequireTeamAction(permission.ActionViewTeam), teamHandler.GetTeam)
			teams.POST("/:teamId/members", teamGuard.RequireTeamAction(permission.ActionInviteMember), teamHandler.InviteMember)
			teams.DELETE("/:teamId/members/:memberId", teamGuard.RequireTeamAction(permission.ActionManageTeam), teamHandler.RemoveMember)

			// Edit and delete are authorized per task in the handler
			tasks := teams.Group("/:teamId/tasks")
			{
				tasks.POST("", teamGuard.RequireTeamAction(permission.ActionCreateTask), taskHandler.CreateTask)
				tasks.GET("", teamGuard.RequireTeamAction(permission.ActionListTasks), taskHandler.ListTasks)
				tasks.GET("/:taskId", teamGuard.RequireTeamAction(permission.ActionViewTask), taskHandler.GetTask)
				tasks.PATCH("/:taskId", taskHandler.UpdateTask)
				tasks.DELETE("/:taskId", taskHandler.DeleteTask)
			}
		}
	}

	// Catch-all route for undefined endpoints
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":      "Endpoint not found",
			"path":       c.Request.URL.Path,
			"method":     c.Request.Method,
			"request_id": c.GetString("request_id"),
		})
	})

	return router, nil
}

// SetupHealthRoutes sets up only health check routes (useful for testing)
func SetupHealthRoutes(db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())

	healthHandler := handlers.NewHealthHandler(db)
	router.GET("/health", healthHandler.Health)
	router.GET("/health/ready", healthHandler.Ready)
	router.GET("/health/live", healthHandler.Live)

	return router
}
