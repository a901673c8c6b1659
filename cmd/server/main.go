package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/karashiro/task-assignment-api/internal/auth"
	"github.com/karashiro/task-assignment-api/internal/config"
	"github.com/karashiro/task-assignment-api/internal/constants"
	"github.com/karashiro/task-assignment-api/internal/database"
	"github.com/karashiro/task-assignment-api/internal/handlers"
	"github.com/karashiro/task-assignment-api/internal/middleware"
	"github.com/karashiro/task-assignment-api/internal/repository"
	"github.com/karashiro/task-assignment-api/internal/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Token service holds the injected signing secret
	tokens, err := auth.NewTokenService(cfg.JWTSecret, constants.TokenTTL)
	if err != nil {
		log.Fatalf("Failed to initialize token service: %v", err)
	}

	// Wire repositories, services and handlers
	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	authService := services.NewAuthService(userRepo, tokens)
	taskService := services.NewTaskService(taskRepo, userRepo)
	userService := services.NewUserService(userRepo, taskRepo)

	authHandler := handlers.NewAuthHandler(authService)
	taskHandler := handlers.NewTaskHandler(taskService, userService)
	userHandler := handlers.NewUserHandler(userService)

	// Initialize Gin router
	r := gin.Default()

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Task Assignment API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
		}

		// Task routes (protected)
		tasks := api.Group("/tasks")
		tasks.Use(middleware.RequireAuth(tokens))
		{
			tasks.POST("", taskHandler.CreateTask)
			tasks.GET("", taskHandler.ListTasks)
			tasks.GET("/users", taskHandler.ListEmployees)
			tasks.PATCH("/:id", taskHandler.UpdateTask)
		}

		// User management routes (protected)
		users := api.Group("/users")
		users.Use(middleware.RequireAuth(tokens))
		{
			users.PATCH("/:id", userHandler.UpdateUser)
			users.DELETE("/:id", userHandler.DeleteUser)
		}
	}

	// Start server
	log.Printf("Server starting on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
