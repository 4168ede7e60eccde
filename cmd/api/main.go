package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"dailytrack/internal/config"
	"dailytrack/internal/database"
	"dailytrack/internal/handlers"
	"dailytrack/internal/logger"
	"dailytrack/internal/middleware"
	"dailytrack/internal/services"
	"dailytrack/internal/validator"
)

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

	// Register custom binding validators
	validator.Register()

	// Initialize services
	db := dbManager.DB()
	accountService := services.NewAccountService(db, appConfig.DefaultAccountName)
	transactionService := services.NewTransactionService(db, accountService)
	savingService := services.NewSavingService(db, accountService)
	preferencesService := services.NewPreferencesService(db)
	taskService := services.NewTaskService(db, preferencesService)
	habitService := services.NewHabitService(db, appConfig.StreakLookbackDays)
	recurringService := services.NewRecurringService(db, accountService)
	dashboardService := services.NewDashboardService(db, accountService, savingService, habitService, preferencesService)
	reportService := services.NewReportService(db)
	csvService := services.NewCSVService(db)

	// Bootstrap the rows the tracker always expects: the default account
	// and the single preferences row.
	if _, err := accountService.EnsureDefaultAccount(); err != nil {
		return fmt.Errorf("failed to ensure default account: %w", err)
	}
	if _, err := preferencesService.Ensure(); err != nil {
		return fmt.Errorf("failed to ensure preferences: %w", err)
	}

	// Initialize handlers
	accountHandler := handlers.NewAccountHandler(accountService)
	transactionHandler := handlers.NewTransactionHandler(transactionService)
	savingHandler := handlers.NewSavingHandler(savingService)
	taskHandler := handlers.NewTaskHandler(taskService)
	habitHandler := handlers.NewHabitHandler(habitService)
	preferencesHandler := handlers.NewPreferencesHandler(preferencesService)
	recurringHandler := handlers.NewRecurringHandler(recurringService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService, reportService)
	csvHandler := handlers.NewCSVHandler(csvService, accountService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Dashboard and reports
	v1.GET("/dashboard", dashboardHandler.GetDashboard)
	v1.GET("/reports/monthly", dashboardHandler.GetMonthlyReport)

	// Account routes
	accounts := v1.Group("/accounts")
	accounts.POST("", accountHandler.CreateAccount)
	accounts.GET("", accountHandler.GetAccounts)
	accounts.GET("/:id", accountHandler.GetAccountByID)
	accounts.PUT("/:id", accountHandler.UpdateAccount)
	accounts.DELETE("/:id", accountHandler.DeleteAccount)

	// Transaction routes
	transactions := v1.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.GetTransactions)
	transactions.GET("/:id", transactionHandler.GetTransactionByID)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	// Saving routes
	savings := v1.Group("/savings")
	savings.POST("", savingHandler.CreateSaving)
	savings.GET("", savingHandler.GetSavings)
	savings.PUT("/:id", savingHandler.UpdateSaving)
	savings.DELETE("/:id", savingHandler.DeleteSaving)

	// Savings goal routes
	goals := v1.Group("/goals")
	goals.POST("", savingHandler.CreateGoal)
	goals.GET("", savingHandler.GetGoals)
	goals.GET("/:id", savingHandler.GetGoalByID)
	goals.PUT("/:id", savingHandler.UpdateGoal)
	goals.DELETE("/:id", savingHandler.DeleteGoal)

	// Daily task routes
	tasks := v1.Group("/tasks")
	tasks.POST("", taskHandler.CreateTask)
	tasks.GET("", taskHandler.GetTasks)
	tasks.PUT("/:id", taskHandler.UpdateTask)
	tasks.DELETE("/:id", taskHandler.DeleteTask)
	tasks.POST("/:id/toggle", taskHandler.ToggleTask)
	tasks.POST("/suggest", taskHandler.SuggestTasks)

	// Recurring template routes
	recurring := v1.Group("/recurring")
	recurringTransactions := recurring.Group("/transactions")
	recurringTransactions.POST("", recurringHandler.CreateTransactionTemplate)
	recurringTransactions.GET("", recurringHandler.GetTransactionTemplates)
	recurringTransactions.PUT("/:id", recurringHandler.UpdateTransactionTemplate)
	recurringTransactions.DELETE("/:id", recurringHandler.DeleteTransactionTemplate)
	recurringTransactions.POST("/generate", recurringHandler.GenerateTransactions)

	recurringTasks := recurring.Group("/tasks")
	recurringTasks.POST("", recurringHandler.CreateTaskTemplate)
	recurringTasks.GET("", recurringHandler.GetTaskTemplates)
	recurringTasks.PUT("/:id", recurringHandler.UpdateTaskTemplate)
	recurringTasks.DELETE("/:id", recurringHandler.DeleteTaskTemplate)
	recurringTasks.POST("/generate", recurringHandler.GenerateTasks)

	// Habit log routes
	learningLogs := v1.Group("/learning-logs")
	learningLogs.POST("", habitHandler.CreateLearningLog)
	learningLogs.GET("", habitHandler.GetLearningLogs)

	healthLogs := v1.Group("/health-logs")
	healthLogs.POST("", habitHandler.CreateHealthLog)
	healthLogs.GET("", habitHandler.GetHealthLogs)

	mindfulnessLogs := v1.Group("/mindfulness-logs")
	mindfulnessLogs.POST("", habitHandler.CreateMindfulnessLog)
	mindfulnessLogs.GET("", habitHandler.GetMindfulnessLogs)

	// Water intake routes
	water := v1.Group("/water")
	water.GET("/today", habitHandler.WaterToday)
	water.POST("/increment", habitHandler.AddWaterGlass)

	// Preferences routes
	preferences := v1.Group("/preferences")
	preferences.GET("", preferencesHandler.GetPreferences)
	preferences.PUT("", preferencesHandler.UpdatePreferences)

	// CSV export/import routes
	export := v1.Group("/export")
	export.GET("/transactions", csvHandler.ExportTransactions)
	export.GET("/savings", csvHandler.ExportSavings)

	importGroup := v1.Group("/import")
	importGroup.POST("/transactions", csvHandler.ImportTransactions)
	importGroup.POST("/savings", csvHandler.ImportSavings)

	log.Infof("Starting dailytrack server on port %s", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
