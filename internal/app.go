// internal/app.go
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jmoiron/sqlx"

	router "fintrack/internal/api"
	"fintrack/internal/api/handler"
	"fintrack/internal/config"
	"fintrack/internal/repository"
	"fintrack/internal/repository/postgres"
	"fintrack/internal/service"
	"fintrack/internal/util"
	"fintrack/pkg/db"
)

// Application holds all the initialized components of the application.
type Application struct {
	Config *config.AppConfig
	Logger *slog.Logger
	DB     *sqlx.DB

	// Repositories
	CategoryRepository    repository.CategoryRepository
	TransactionRepository repository.TransactionRepository
	HistoryRepository     repository.HistoryRepository
	SettingsRepository    repository.SettingsRepository

	// Services
	TransactionService service.TransactionService
	CategoryService    service.CategoryService
	StatsService       service.StatsService
	SettingsService    service.SettingsService

	// HTTP API
	HTTPHandler http.Handler
}

// NewApplication creates a new Application instance.
func NewApplication() *Application {
	return &Application{}
}

// Initialize initializes all application components.
func (app *Application) Initialize(ctx context.Context) error {
	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	app.Config = cfg

	// 2. Initialize Logger
	util.InitLogger()
	app.Logger = util.GetLogger()
	app.Logger.Info("Application configuration loaded successfully.")

	// 3. Connect to Database and apply migrations
	database, err := db.NewPostgresDB(app.Config.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = database
	app.Logger.Info("Database connection established.")

	if err := db.RunMigrations(app.Config.DB); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	app.Logger.Info("Database migrations applied.")

	// 4. Initialize Repositories
	app.CategoryRepository = postgres.NewCategoryRepository(app.DB)
	app.TransactionRepository = postgres.NewTransactionRepository(app.DB)
	app.HistoryRepository = postgres.NewHistoryRepository(app.DB)
	app.SettingsRepository = postgres.NewSettingsRepository(app.DB)
	app.Logger.Info("Repositories initialized.")

	// 5. Initialize Services
	// Pass the concrete db.BeginTx, db.CommitTx, db.RollbackTx functions from pkg/db
	app.TransactionService = service.NewTransactionService(
		app.DB, // This is the DBTxBeginner
		app.DB, // This is the DBExecutor
		app.CategoryRepository,
		app.TransactionRepository,
		app.HistoryRepository,
		db.BeginTx,
		db.CommitTx,
		db.RollbackTx,
		app.Logger,
	)
	app.CategoryService = service.NewCategoryService(
		app.DB,
		app.DB,
		app.CategoryRepository,
		db.BeginTx,
		db.CommitTx,
		db.RollbackTx,
	)
	app.StatsService = service.NewStatsService(
		app.DB,
		app.TransactionRepository,
		app.HistoryRepository,
	)
	app.SettingsService = service.NewSettingsService(
		app.DB,
		app.DB,
		app.SettingsRepository,
		db.BeginTx,
		db.CommitTx,
		db.RollbackTx,
	)
	app.Logger.Info("Services initialized.")

	// 6. Initialize HTTP Handlers and Router
	transactionHandler := handler.NewTransactionHandler(app.TransactionService, app.Logger)
	categoryHandler := handler.NewCategoryHandler(app.CategoryService, app.Logger)
	statsHandler := handler.NewStatsHandler(app.StatsService, app.Logger)
	settingsHandler := handler.NewSettingsHandler(app.SettingsService, app.Logger)
	app.HTTPHandler = router.NewRouter(transactionHandler, categoryHandler, statsHandler, settingsHandler, app.Logger)
	app.Logger.Info("HTTP router and handlers initialized.")

	return nil
}

// Shutdown gracefully shuts down application resources.
func (app *Application) Shutdown(ctx context.Context) error {
	app.Logger.Info("Shutting down application...")
	if app.DB != nil {
		if err := app.DB.Close(); err != nil {
			app.Logger.Error("Failed to close database connection", "error", err)
			return fmt.Errorf("failed to close database connection: %w", err)
		}
		app.Logger.Info("Database connection closed.")
	}
	app.Logger.Info("Application shut down gracefully.")
	return nil
}
