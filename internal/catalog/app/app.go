// Package app wires configuration, storage, sessions, keys and the HTTP
// surface into a runnable application.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/clefworks/scorebook/internal/catalog/auth"
	"github.com/clefworks/scorebook/internal/catalog/service"
	"github.com/clefworks/scorebook/internal/catalog/session"
	"github.com/clefworks/scorebook/internal/catalog/session/drivers/memory"
	redisdriver "github.com/clefworks/scorebook/internal/catalog/session/drivers/redis"
	"github.com/clefworks/scorebook/internal/catalog/store"
	"github.com/clefworks/scorebook/internal/catalog/store/drivers/sqlite"
	"github.com/clefworks/scorebook/internal/catalog/web"
	"github.com/clefworks/scorebook/pkg/slogx"
)

const BuildVersion = "v0.1.0"

// Application encapsulates the catalog service with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db       store.Store
	sessions session.Store

	authService    *auth.Service
	userService    *service.UserService
	catalogService *service.CatalogService

	server *http.Server
	router *web.Router
}

// New creates an Application with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "scorebook",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}
	if err := app.initSessions(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	keys, err := InitAuthKeys(cfg, app.logger)
	if err != nil {
		_ = app.sessions.Close()
		_ = app.db.Close()
		return nil, fmt.Errorf("failed to initialize token keys: %w", err)
	}

	app.initServices(keys)
	if err := app.initHTTP(keys); err != nil {
		_ = app.sessions.Close()
		_ = app.db.Close()
		return nil, err
	}

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.logger.Info("scorebook starting", "port", app.cfg.Port, "version", BuildVersion)

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

// Shutdown gracefully stops the HTTP server, then the session store and the
// database.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down scorebook...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.sessions.Close(); err != nil {
		app.logger.Error("error closing session store", "error", err)
	}
	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("scorebook stopped")
	return nil
}

func (app *Application) initDatabase() error {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(dsn)
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

// initSessions picks the session driver: redis when an address is
// configured, otherwise the in-process store. The in-process store loses
// every session on restart, which for sessions is acceptable.
func (app *Application) initSessions() error {
	if app.cfg.RedisAddr == "" {
		app.logger.Info("no redis address configured, using in-process session store")
		app.sessions = memory.NewStore()
		return nil
	}

	sessions, err := redisdriver.NewStore(context.Background(), redisdriver.Config{
		Addr: app.cfg.RedisAddr,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to session store: %w", err)
	}

	app.logger.Info("connected to redis session store", "addr", app.cfg.RedisAddr)
	app.sessions = sessions
	return nil
}

func (app *Application) initServices(keys auth.Keys) {
	app.authService = &auth.Service{
		Keys:          keys,
		Sessions:      app.sessions,
		Users:         app.db.Users(),
		AccessTTL:     app.cfg.AccessTokenTTL,
		RefreshTTL:    app.cfg.RefreshTokenTTL,
		RotateRefresh: app.cfg.RotateRefresh,
	}

	app.userService = service.NewUserService(app.db)
	app.catalogService = service.NewCatalogService(app.db)
}

func (app *Application) initHTTP(keys auth.Keys) error {
	gate := &auth.Gate{
		Verifier:           keys.AccessVerifier,
		Sessions:           app.sessions,
		Users:              app.db.Users(),
		RoleMismatchStatus: app.cfg.RoleMismatchStatus,
	}

	router, err := web.NewRouter(
		app.userService,
		app.catalogService,
		app.authService,
		gate,
		[]byte(app.cfg.FlashKey),
		app.logger,
	)
	if err != nil {
		return fmt.Errorf("failed to initialize router: %w", err)
	}
	router.ApplyRoutes()
	app.router = router

	app.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", app.cfg.Port),
		Handler: app.router,
	}
	return nil
}
