package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/fintrack/ledger-api/internal/config"
	"github.com/fintrack/ledger-api/internal/platform/postgres"
	"github.com/fintrack/ledger-api/internal/service"
	"github.com/fintrack/ledger-api/internal/service/auth"
	"github.com/fintrack/ledger-api/internal/store"
)

// application holds the shared dependencies of the server. Everything is
// constructed once at startup and wired by hand; handlers receive their
// dependencies through constructors.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	userStore  store.UserStore
	entryStore store.EntryStore

	jwtService   auth.JWTService
	userService  service.UserService
	entryService service.EntryService
}

// newApplication wires stores and services on top of the given database
// connection.
func newApplication(
	cfg *config.Config,
	db *sql.DB,
	logger *slog.Logger,
) (*application, error) {
	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}

	userStore := postgres.NewUserStore(db, logger)
	entryStore := postgres.NewEntryStore(db, logger)

	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)

	return &application{
		config:       cfg,
		logger:       logger,
		db:           db,
		userStore:    userStore,
		entryStore:   entryStore,
		jwtService:   jwtService,
		userService:  service.NewUserService(userStore, hasher, hasher, logger),
		entryService: service.NewEntryService(entryStore, logger),
	}, nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Failed to close database connection", "error", err)
		}
	}
}
