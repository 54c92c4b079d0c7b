package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"lakshmi/internal/assistant"
	"lakshmi/internal/config"
	"lakshmi/internal/database"
	"lakshmi/internal/handlers"
	"lakshmi/internal/logger"
	"lakshmi/internal/middleware"
	"lakshmi/internal/scheduler"
	"lakshmi/internal/services"
	"lakshmi/internal/validator"

	_ "lakshmi/internal/docs" // Import swagger docs
)

// @title           Lakshmi API
// @version         1.0
// @description     Lakshmi is a personal finance tracker with an AI assistant: transactions, savings goals, dashboards, and finance-scoped chat.

// @host      localhost:8080
// @BasePath  /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Register custom request validators
	validator.Register()

	// Assistant: use Gemini when a key is configured, local replies otherwise
	var source assistant.ReplySource
	if appConfig.GeminiAPIKey != "" {
		source = assistant.NewGeminiSource(appConfig.GeminiAPIKey, appConfig.GeminiModel)
	} else {
		log.Warn("GEMINI_API_KEY not set, assistant replies are rendered locally")
	}
	replier := assistant.New(source)

	// Initialize services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	onboardingService := services.NewOnboardingService(db)
	transactionService := services.NewTransactionService(db)
	goalService := services.NewGoalService(db)
	chatService := services.NewChatService(db, replier)
	summaryService := services.NewSummaryService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	onboardingHandler := handlers.NewOnboardingHandler(onboardingService)
	transactionHandler := handlers.NewTransactionHandler(transactionService)
	goalHandler := handlers.NewGoalHandler(goalService)
	chatHandler := handlers.NewChatHandler(chatService)
	insightsHandler := handlers.NewInsightsHandler(summaryService)

	// Periodic summary refresh
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	refreshJob := scheduler.JobFunc{
		JobName: "summary-refresh",
		Fn:      summaryService.RefreshAll,
	}
	go scheduler.NewRunner(refreshJob, appConfig.SummaryRefreshInterval).Start(ctx)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-API-Key")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api")

	// Health check endpoint
	api.GET("/health", handlers.HealthCheck)

	// Public routes
	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// Protected routes
	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// Account and onboarding
	protected.GET("/auth/user", authHandler.GetUser)
	protected.PUT("/auth/user", authHandler.UpdateUser)
	protected.POST("/auth/onboarding", onboardingHandler.CompleteOnboarding)
	protected.GET("/auth/onboarding", onboardingHandler.GetOnboarding)
	protected.PUT("/auth/onboarding", onboardingHandler.UpdateOnboarding)

	// Transaction routes
	transactions := protected.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.GetUserTransactions)
	transactions.GET("/categories", transactionHandler.GetCategories)
	transactions.GET("/:id", transactionHandler.GetTransactionByID)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	// Goal routes
	goals := protected.Group("/goals")
	goals.POST("", goalHandler.CreateGoal)
	goals.GET("", goalHandler.GetUserGoals)
	goals.GET("/overview", goalHandler.GetGoalOverview)
	goals.POST("/:id/savings", goalHandler.AddSavings)
	goals.PUT("/:id", goalHandler.UpdateGoal)
	goals.DELETE("/:id", goalHandler.DeleteGoal)

	// Chat routes
	chats := protected.Group("/chats")
	chats.POST("/new", chatHandler.NewChat)
	chats.GET("/history", chatHandler.GetChatHistory)
	chats.POST("/:chatId/message", chatHandler.SendMessage)
	chats.PUT("/:chatId/title", chatHandler.RenameChat)
	chats.GET("/:chatId", chatHandler.GetChat)
	chats.DELETE("/:chatId", chatHandler.DeleteChat)

	// Insights routes
	insights := protected.Group("/insights")
	insights.GET("/dashboard", insightsHandler.GetDashboard)
	insights.GET("/ai-summary", insightsHandler.GetAISummary)

	// Internal maintenance routes
	internal := api.Group("/internal")
	internal.Use(middleware.InternalAuthMiddleware(appConfig.InternalAPIKey))
	internal.POST("/refresh-summaries", insightsHandler.RefreshSummaries)

	log.Infof("Starting Lakshmi backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
