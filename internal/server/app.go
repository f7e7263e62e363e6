// Package server initializes and runs the application server. It opens the
// database, applies migrations, wires the services into the HTTP API and
// handles graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jdgomezdev/declaratax/internal/logging"
	"github.com/jdgomezdev/declaratax/internal/server/config"
	"github.com/jdgomezdev/declaratax/internal/server/httpapi"
	"github.com/jdgomezdev/declaratax/internal/server/repositories/repomanager"
	"github.com/jdgomezdev/declaratax/internal/server/services"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	api         *httpapi.API
}

func NewApp(cfg *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm, err := repomanager.NewPostgresRepositoryManager(db)
	if err != nil {
		return nil, fmt.Errorf("repository manager init error: %w", err)
	}

	users := services.NewUserService(db, rm)
	declarations := services.NewDeclarationService(db, rm)
	sessions := services.NewSessionService(db, rm, cfg.SecretKey, cfg.SessionValidityDuration, cfg.RememberTokenValidityDuration)

	api := httpapi.New(logger, users, declarations, sessions, cfg.RememberTokenValidityDuration)

	return &App{config: cfg, logger: logger, db: db, repomanager: rm, api: api}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.initSignalHandler(cancelFunc)

	app.logger.Info(ctx, "Starting app...")

	if err := app.repomanager.RunMigrations(ctx, app.db); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	srv := &http.Server{
		Addr:    app.config.EndpointAddrHTTP,
		Handler: app.api.Routes(app.config.CORSAllowedOrigins),
	}

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info(ctx, "Starting HTTP server...", "addr", app.config.EndpointAddrHTTP)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
	}

	app.logger.Info(ctx, "Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown error: %w", err)
	}
	if err := app.db.Close(); err != nil {
		return fmt.Errorf("db close error: %w", err)
	}

	return nil
}
