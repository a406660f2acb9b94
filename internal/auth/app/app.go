package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/gatekeephq/gatekeep/internal/auth/http"
	"github.com/gatekeephq/gatekeep/internal/auth/service"
	"github.com/gatekeephq/gatekeep/internal/auth/store"
	"github.com/gatekeephq/gatekeep/internal/auth/store/drivers/sqlite"
	"github.com/gatekeephq/gatekeep/pkg/cryptox"
	"github.com/gatekeephq/gatekeep/pkg/jwtx"
	"github.com/gatekeephq/gatekeep/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the gatekeep service with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db    store.Store
	codec *jwtx.Codec

	sessionService   *service.SessionService
	authorizeService *service.AuthorizeService
	accountService   *service.AccountService
	inviteService    *service.InviteService
	nodeService      *service.NodeService
	bootstrapService *service.BootstrapService

	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "gatekeep",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	// Set pepper path for password hashing
	cryptox.SetPepperPath(app.cfg.PepperFile)

	if err := app.initSecret(); err != nil {
		return nil, err
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	// Seed the super admin before accepting traffic.
	if app.cfg.BootstrapAdminEmail != "" {
		ctx := slogx.WithContext(context.Background(), app.logger)
		if _, err := app.bootstrapService.EnsureAdmin(ctx); err != nil {
			return fmt.Errorf("bootstrap failed: %w", err)
		}
	}

	app.logger.Info("gatekeep starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
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
	app.logger.Info("shutting down gatekeep...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("gatekeep stopped")
	return nil
}

// Handler exposes the fully wired router for in-process tests.
func (app *Application) Handler() http.Handler {
	return app.router
}

// initSecret resolves the session signing secret. A malformed value is
// fatal; an absent one gets a random replacement, which invalidates
// every outstanding session on restart.
func (app *Application) initSecret() error {
	if app.cfg.Secret == "" {
		secret, err := jwtx.NewRandomSecret()
		if err != nil {
			return fmt.Errorf("failed to generate session secret: %w", err)
		}
		app.codec = jwtx.NewCodec(secret)
		app.logger.Warn("GATEKEEP_SECRET not set; sessions will not survive a restart")
		return nil
	}

	secret, err := jwtx.SecretFromHex(app.cfg.Secret)
	if err != nil {
		return fmt.Errorf("invalid GATEKEEP_SECRET: %w", err)
	}
	app.codec = jwtx.NewCodec(secret)
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

// initServices initializes all business logic services.
func (app *Application) initServices() {
	policy := service.SignupInviteOnly
	if app.cfg.SignupPolicy == "open" {
		policy = service.SignupOpen
	}

	app.sessionService = &service.SessionService{
		Store:       app.db,
		Codec:       app.codec,
		SessionTTL:  app.cfg.SessionTTL,
		RememberTTL: app.cfg.RememberTTL,
	}
	app.authorizeService = &service.AuthorizeService{
		Store: app.db,
		Codec: app.codec,
	}
	app.accountService = &service.AccountService{
		Store:  app.db,
		Policy: policy,
	}
	app.inviteService = &service.InviteService{Store: app.db}
	app.nodeService = &service.NodeService{Store: app.db}
	app.bootstrapService = &service.BootstrapService{
		Store:         app.db,
		AdminEmail:    app.cfg.BootstrapAdminEmail,
		AdminPassword: app.cfg.BootstrapAdminPassword,
	}
}

// initHTTP initializes the HTTP router and server.
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		BuildVersion,
		app.cfg.CookieDomain,
		app.cfg.CORSOrigin,
		app.db,
		app.logger,
	)

	router.SessionService = app.sessionService
	router.AuthorizeService = app.authorizeService
	router.AccountService = app.accountService
	router.InviteService = app.inviteService
	router.NodeService = app.nodeService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
