package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"MarketDash/pkg/config"
	xhttp "MarketDash/pkg/http"
	applogger "MarketDash/pkg/logger"
)

// Initializer runs once after the HTTP server starts, e.g. the first data load.
type Initializer interface {
	Init(ctx context.Context) error
}

// App encapsulates the entire application lifecycle.
type App struct {
	cfg        *config.Config
	logger     *applogger.Logger
	httpServer *xhttp.Server
	starter    Initializer
}

// New creates a new App instance with all dependencies.
func New(cfg *config.Config, logger *applogger.Logger, httpServer *xhttp.Server, starter Initializer) *App {
	return &App{
		cfg:        cfg,
		logger:     logger,
		httpServer: httpServer,
		starter:    starter,
	}
}

// Run starts the application and blocks until SIGINT or SIGTERM.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return a.RunContext(ctx)
}

// RunContext starts the application and blocks until ctx is done.
func (a *App) RunContext(ctx context.Context) error {
	if err := a.httpServer.Start(); err != nil {
		a.logger.Error("http server start error", applogger.Error(err))
		return err
	}

	if a.starter != nil {
		go func() {
			if err := a.starter.Init(ctx); err != nil {
				a.logger.Warn("initial dashboard load failed", applogger.Error(err))
				return
			}
			a.logger.Info("initial dashboard load done")
		}()
	}

	<-ctx.Done()
	a.logger.Info("shutdown signal received")
	return a.shutdown()
}

// shutdown gracefully stops all services.
func (a *App) shutdown() error {
	timeout := a.cfg.Server.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := a.httpServer.Stop(ctx); err != nil {
		a.logger.Error("http shutdown error", applogger.Error(err))
		return err
	}

	a.logger.Info("shutdown complete")
	return nil
}
