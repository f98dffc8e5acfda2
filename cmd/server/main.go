package main

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/taskmaster/taskmaster-api/internal/config"
	"github.com/taskmaster/taskmaster-api/internal/database"
	"github.com/taskmaster/taskmaster-api/internal/handlers"
	"github.com/taskmaster/taskmaster-api/internal/middleware"
	"github.com/taskmaster/taskmaster-api/internal/repository"
	"github.com/taskmaster/taskmaster-api/internal/services"
)

func main() {
	// Optional .env for local development
	_ = godotenv.Load()

	cfg := config.Load()

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	gin.SetMode(cfg.GinMode)

	ctx := context.Background()

	awsCfg, err := database.LoadAWSConfig(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load AWS configuration")
	}

	var (
		taskRepo      repository.TaskRepository
		workspaceRepo repository.WorkspaceRepository
		userRepo      repository.UserRepository
	)

	switch cfg.StorageBackend {
	case config.StorageMemory:
		log.Info().Msg("using in-memory storage backend")
		taskRepo = repository.NewMemoryTaskRepository()
		workspaceRepo = repository.NewMemoryWorkspaceRepository()
		userRepo = repository.NewMemoryUserRepository()
	default:
		client := database.NewDynamoClient(awsCfg, cfg)
		if cfg.DynamoEndpoint != "" {
			log.Info().Str("endpoint", cfg.DynamoEndpoint).Msg("using local DynamoDB endpoint")
			if err := database.EnsureTables(ctx, client, cfg); err != nil {
				log.Fatal().Err(err).Msg("failed to ensure tables")
			}
		}
		taskRepo = repository.NewTaskRepository(client, cfg.TasksTable)
		workspaceRepo = repository.NewWorkspaceRepository(client, cfg.WorkspacesTable)
		userRepo = repository.NewUserRepository(client, cfg.UsersTable)
	}

	cognitoClient := database.NewCognitoClient(awsCfg)

	taskService := services.NewTaskService(taskRepo, workspaceRepo)
	workspaceService := services.NewWorkspaceService(workspaceRepo)
	authService := services.NewAuthService(cognitoClient, userRepo, cfg.CognitoClientID)

	taskHandler := handlers.NewTaskHandler(taskService)
	workspaceHandler := handlers.NewWorkspaceHandler(workspaceService)
	authHandler := handlers.NewAuthHandler(authService)

	r := gin.Default()
	r.Use(middleware.CORS())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "TaskMaster API is running",
		})
	})

	auth := r.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}

	users := r.Group("/users")
	users.Use(middleware.RequireAuth(cfg.JWTSecret))
	{
		users.GET("/me", authHandler.GetCurrentUser)
	}

	tasks := r.Group("/tasks")
	tasks.Use(middleware.RequireAuth(cfg.JWTSecret))
	{
		tasks.GET("", taskHandler.ListTasks)
		tasks.POST("", taskHandler.CreateTask)
		tasks.GET("/assigned", taskHandler.ListAssignedTasks)
		tasks.GET("/:taskId", taskHandler.GetTask)
		tasks.PUT("/:taskId", taskHandler.UpdateTask)
		tasks.DELETE("/:taskId", taskHandler.DeleteTask)
	}

	workspaces := r.Group("/workspaces")
	workspaces.Use(middleware.RequireAuth(cfg.JWTSecret))
	{
		workspaces.POST("", workspaceHandler.CreateWorkspace)
		workspaces.GET("/:id", workspaceHandler.GetWorkspace)
		workspaces.POST("/:id/members", workspaceHandler.AddMember)
		workspaces.DELETE("/:id/members/:userId", workspaceHandler.RemoveMember)
	}

	log.Info().Str("port", cfg.Port).Msg("server starting")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}
