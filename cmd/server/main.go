package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"budgetflow/internal/config"
	"budgetflow/internal/database"
	"budgetflow/internal/handlers"
	custommiddleware "budgetflow/internal/middleware"
	"budgetflow/internal/repositories"
	"budgetflow/internal/services"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg := config.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	db, err := database.Initialize(&cfg.Database)
	if err != nil {
		logger.Error("failed to initialize database", "error", err)
		os.Exit(1)
	}

	// Repositories
	userRepo := repositories.NewUserRepository(db.DB)
	categoryRepo := repositories.NewCategoryRepository(db.DB)
	transactionRepo := repositories.NewTransactionRepository(db.DB)

	// Services
	metrics := services.NewMetricsRecorder()
	categoryResolver := services.NewCategoryResolver(categoryRepo, metrics, logger)
	incomeService := services.NewIncomeService(transactionRepo, userRepo, categoryResolver, metrics, logger)
	transactionService := services.NewTransactionService(transactionRepo, categoryResolver, incomeService, logger)
	userService := services.NewUserService(userRepo, logger)
	categoryService := services.NewCategoryService(categoryRepo, transactionRepo, logger)
	tokenService := services.NewTokenService(&cfg.JWT)
	googleAuthService := services.NewGoogleAuthService(&cfg.Google, userRepo, categoryRepo, metrics, logger)
	sampleDataService := services.NewSampleDataService(transactionRepo, categoryResolver, logger)

	// Handlers
	authHandler := handlers.NewAuthHandler(googleAuthService, tokenService)
	transactionHandler := handlers.NewTransactionHandler(transactionService, incomeService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	userHandler := handlers.NewUserHandler(userService)
	healthHandler := handlers.NewHealthCheckHandler(db.DB)
	devHandler := handlers.NewDevHandler(sampleDataService)

	e := echo.New()
	e.HideBanner = true
	e.Validator = handlers.NewValidator()

	e.Use(custommiddleware.RequestID())
	e.Use(custommiddleware.PanicRecovery())
	e.Use(custommiddleware.SecurityHeaders())
	e.Use(custommiddleware.RateLimiterWithConfig(cfg.Security.RateLimitPerSecond, cfg.Security.RateLimitBurst))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.Server.CORSAllowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAuthorization},
	}))

	e.GET("/health", healthHandler.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api/v1")

	auth := api.Group("/auth")
	auth.GET("/google/url", authHandler.GoogleLoginURL)
	auth.POST("/google", authHandler.GoogleLogin)

	protected := api.Group("", custommiddleware.RequireAuth(tokenService))

	protected.GET("/users/me", userHandler.GetProfile)
	protected.GET("/users/me/budget", userHandler.GetBudgetPreferences)
	protected.PUT("/users/me/budget", userHandler.UpdateBudgetPreferences)

	protected.POST("/transactions/income", transactionHandler.CreateIncome)
	protected.POST("/transactions", transactionHandler.CreateTransaction)
	protected.GET("/transactions", transactionHandler.ListTransactions)
	protected.GET("/transactions/:id", transactionHandler.GetTransaction)
	protected.PUT("/transactions/:id", transactionHandler.UpdateTransaction)
	protected.DELETE("/transactions/:id", transactionHandler.DeleteTransaction)

	protected.POST("/categories", categoryHandler.CreateCategory)
	protected.GET("/categories", categoryHandler.ListCategories)
	protected.PUT("/categories/:id", categoryHandler.UpdateCategory)
	protected.DELETE("/categories/:id", categoryHandler.DeleteCategory)

	if cfg.IsDevelopment() {
		protected.POST("/dev/seed", devHandler.SeedSampleData)
	}

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info("server starting", "port", cfg.Server.Port, "environment", cfg.Server.Environment)
		if err := e.StartServer(server); err != nil && err != http.ErrServerClosed {
			logger.Error("server stopped", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", "error", err)
	}

	if err := db.Close(); err != nil {
		logger.Error("failed to close database", "error", err)
	}

	logger.Info("server stopped")
}
