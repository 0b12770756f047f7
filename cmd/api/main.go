package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/regoline/nina-controle/internal/application/service"
	"github.com/regoline/nina-controle/internal/config"
	"github.com/regoline/nina-controle/internal/domain/pricing"
	"github.com/regoline/nina-controle/internal/infrastructure/database"
	"github.com/regoline/nina-controle/internal/infrastructure/repository"
	"github.com/regoline/nina-controle/internal/presentation/http/handler"
	"github.com/regoline/nina-controle/internal/presentation/http/routes"
	"github.com/regoline/nina-controle/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Make sure an admin account exists for first login
	if err := database.SeedAdminUser(db); err != nil {
		log.Fatalf("Failed to seed admin user: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	recipeRepo := repository.NewRecipeRepository(db)
	expenseRepo := repository.NewExpenseRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	reportRepo := repository.NewReportRepository(db)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager)
	userService := service.NewUserService(userRepo)
	recipeService := service.NewRecipeService(recipeRepo)
	expenseService := service.NewExpenseService(expenseRepo)
	saleService := service.NewSaleService(saleRepo, recipeRepo, pricing.NewRule(cfg.Business.BoxSize))
	reportService := service.NewReportService(reportRepo, cfg.Business.ReportWindowDays, cfg.Business.RecentLimit)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:    handler.NewAuthHandler(authService),
		User:    handler.NewUserHandler(userService),
		Recipe:  handler.NewRecipeHandler(recipeService),
		Expense: handler.NewExpenseHandler(expenseService),
		Sale:    handler.NewSaleHandler(saleService),
		Report:  handler.NewReportHandler(reportService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager: jwtManager,
		Cfg:        cfg,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
