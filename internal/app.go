// internal/app.go
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jmoiron/sqlx"

	router "bankist-ledger/internal/api"
	"bankist-ledger/internal/api/handler"
	"bankist-ledger/internal/config"
	"bankist-ledger/internal/domain"
	"bankist-ledger/internal/events"
	"bankist-ledger/internal/events/kafka"
	"bankist-ledger/internal/repository"
	"bankist-ledger/internal/repository/memory"
	"bankist-ledger/internal/repository/postgres"
	"bankist-ledger/internal/seed"
	"bankist-ledger/internal/service"
	"bankist-ledger/internal/session"
	"bankist-ledger/internal/util"
	"bankist-ledger/pkg/db"
)

// Application holds all the initialized components of the application.
type Application struct {
	Config *config.AppConfig
	Logger *slog.Logger
	DB     *sqlx.DB // Only set while seeding from PostgreSQL

	// Repositories
	AccountRepository repository.AccountRepository

	// Services
	LedgerService service.LedgerService
	Sessions      *session.Store
	Publisher     events.Publisher

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
	if err := util.InitLogger(cfg.LogLevel); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	app.Logger = util.GetLogger()
	app.Logger.Info("Application configuration loaded successfully.", "seed_source", cfg.SeedSource)

	// 3. Load seed accounts
	defs, err := app.loadSeed(ctx)
	if err != nil {
		return fmt.Errorf("failed to load seed accounts: %w", err)
	}

	// 4. Initialize Repositories
	store, err := memory.NewAccountStore(defs)
	if err != nil {
		return fmt.Errorf("failed to build account store: %w", err)
	}
	app.AccountRepository = store
	app.Logger.Info("Account store initialized.", "accounts", len(defs))

	// 5. Initialize event publisher and services
	if len(cfg.KafkaBrokers) > 0 {
		app.Publisher = kafka.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		app.Logger.Info("Publishing ledger events to Kafka.", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	} else {
		app.Publisher = events.NewLogPublisher(app.Logger)
	}
	app.LedgerService = service.NewLedgerService(app.AccountRepository, app.Publisher, app.Logger)
	app.Sessions = session.NewStore(app.LedgerService)
	app.Logger.Info("Services initialized.")

	// 6. Initialize HTTP Handlers and Router
	ledgerHandler := handler.NewLedgerHandler(app.LedgerService, app.Sessions, app.Logger)
	app.HTTPHandler = router.NewRouter(ledgerHandler, app.Logger)
	app.Logger.Info("HTTP router and handlers initialized.")

	return nil
}

// loadSeed reads the initial account definitions from the configured source.
// A PostgreSQL connection is closed as soon as the rows are read.
func (app *Application) loadSeed(ctx context.Context) ([]domain.AccountDefinition, error) {
	if app.Config.SeedSource != config.SeedPostgres {
		return seed.NewStatic().LoadAccounts(ctx)
	}

	database, err := db.NewPostgresDB(ctx, app.Config.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = database
	defer app.closeDB()

	app.Logger.Info("Database connection established.")
	return postgres.NewSeedRepository(app.DB).LoadAccounts(ctx)
}

func (app *Application) closeDB() {
	if app.DB == nil {
		return
	}
	if err := app.DB.Close(); err != nil {
		app.Logger.Error("Failed to close database connection", "error", err)
	}
	app.DB = nil
	app.Logger.Info("Database connection closed.")
}

// Shutdown gracefully shuts down application resources.
func (app *Application) Shutdown(ctx context.Context) error {
	app.Logger.Info("Shutting down application...")
	app.closeDB()
	if app.Publisher != nil {
		if err := app.Publisher.Close(); err != nil {
			app.Logger.Error("Failed to close event publisher", "error", err)
			return fmt.Errorf("failed to close event publisher: %w", err)
		}
	}
	app.Logger.Info("Application shut down gracefully.")
	return nil
}
