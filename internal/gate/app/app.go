package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nightowlmedia/doorman/internal/gate/domain"
	httpapi "github.com/nightowlmedia/doorman/internal/gate/http"
	"github.com/nightowlmedia/doorman/internal/gate/provision"
	"github.com/nightowlmedia/doorman/internal/gate/service"
	"github.com/nightowlmedia/doorman/internal/gate/store"
	"github.com/nightowlmedia/doorman/internal/gate/store/drivers/sqlite"
	"github.com/nightowlmedia/doorman/pkg/jwtx"
	"github.com/nightowlmedia/doorman/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the access service with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db   store.Store
	keys jwtx.Keypair

	authService         *service.AuthService
	inviteService       *service.InviteService
	ticketService       *service.TicketService
	userService         *service.UserService
	bootstrapService    *service.BootstrapService
	housekeepingService *service.HousekeepingService

	housekeepingCancel context.CancelFunc

	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "doorman",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if cfg.MediaServerURL == "" || cfg.MediaServerToken == "" {
		return nil, errors.New("MEDIA_SERVER_URL and MEDIA_SERVER_TOKEN must be set")
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	if err := app.initKeys(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	if err := app.initServices(); err != nil {
		_ = app.db.Close()
		return nil, err
	}
	app.initHTTP()

	// Seed the root admin into an empty store before accepting traffic.
	ctx := slogx.WithContext(context.Background(), app.logger)
	if err := app.bootstrapService.EnsureAdmin(ctx, domain.BootstrapData{
		AdminUsername: cfg.AdminUsername,
		AdminPassword: cfg.AdminPassword,
	}); err != nil {
		_ = app.db.Close()
		return nil, fmt.Errorf("failed to bootstrap admin: %w", err)
	}

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	// Start the expired session sweeper
	hkCtx, cancel := context.WithCancel(slogx.WithContext(context.Background(), app.logger))
	app.housekeepingCancel = cancel
	go app.housekeepingService.Run(hkCtx)

	app.logger.Info("doorman starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down doorman...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if app.housekeepingCancel != nil {
		app.housekeepingCancel()
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("doorman stopped")
	return nil
}

// initDatabase initializes the database and applies migrations.
func (app *Application) initDatabase() error {
	host := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(host)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

// initKeys loads the session signing keypair, generating one on first
// run. Without a configured key file the keypair is ephemeral and every
// restart logs all users out.
func (app *Application) initKeys() error {
	if app.cfg.SessionKeyFile == "" {
		keys, err := jwtx.GenerateKeypair()
		if err != nil {
			return fmt.Errorf("failed to generate session keys: %w", err)
		}
		app.keys = keys
		app.logger.Warn("using ephemeral session keys; sessions will not survive restarts")
		return nil
	}

	keys, err := jwtx.LoadKeypair(app.cfg.SessionKeyFile)
	if err == nil {
		app.keys = keys
		return nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load session keys: %w", err)
	}

	keys, err = jwtx.GenerateKeypair()
	if err != nil {
		return fmt.Errorf("failed to generate session keys: %w", err)
	}
	pem, err := keys.EncodePEM()
	if err != nil {
		return fmt.Errorf("failed to encode session keys: %w", err)
	}
	if err := os.WriteFile(app.cfg.SessionKeyFile, pem, 0o600); err != nil {
		return fmt.Errorf("failed to write session key file: %w", err)
	}
	app.keys = keys
	app.logger.Info("generated new session signing key", "path", app.cfg.SessionKeyFile)
	return nil
}

// initServices initializes all business logic services.
func (app *Application) initServices() error {
	signer, err := jwtx.NewSigner(app.keys)
	if err != nil {
		return fmt.Errorf("failed to initialize token signer: %w", err)
	}

	app.authService = &service.AuthService{
		Store:       app.db,
		Provisioner: provision.NewClient(app.cfg.MediaServerURL, app.cfg.MediaServerToken),
		Signer:      signer,
		Issuer:      app.cfg.Issuer,
		SessionTTL:  app.cfg.SessionTTL,
	}
	app.inviteService = &service.InviteService{Store: app.db}
	app.ticketService = &service.TicketService{Store: app.db}
	app.userService = &service.UserService{Store: app.db}
	app.bootstrapService = &service.BootstrapService{Store: app.db}
	app.housekeepingService = &service.HousekeepingService{
		Store:    app.db,
		Interval: app.cfg.HousekeepingInterval,
	}
	return nil
}

// initHTTP initializes the HTTP router and server.
func (app *Application) initHTTP() {
	verifier, err := jwtx.NewVerifier(app.keys, app.cfg.Issuer)
	if err != nil {
		// NewVerifier only fails on an invalid keypair, which initServices
		// already used successfully.
		panic(err)
	}

	router := httpapi.NewRouter(
		verifier,
		BuildVersion,
		app.cfg.SessionTTL,
		app.db,
		app.logger,
	)

	router.AuthService = app.authService
	router.InviteService = app.inviteService
	router.TicketService = app.ticketService
	router.UserService = app.userService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
