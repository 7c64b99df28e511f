package app

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/searchktools/serwer/config"
	"github.com/searchktools/serwer/core"
)

// App wires configuration, logging and the engine together.
type App struct {
	cfg    *config.Config
	engine *core.Engine
	logger *slog.Logger
}

// New creates an application instance whose engine follows cfg.
func New(cfg *config.Config) (*App, error) {
	logger := NewLogger(cfg, os.Stderr)

	engine := core.NewEngine(
		core.WithLogger(logger),
		core.WithHost(cfg.Host),
		core.WithWorkers(cfg.Workers),
		core.WithReadTimeout(cfg.ReadTimeout),
		core.WithWriteTimeout(cfg.WriteTimeout),
		core.WithReusePort(cfg.ReusePort),
	)
	if cfg.PublicDir != "" {
		if err := engine.SetPublicDir(cfg.PublicDir); err != nil {
			return nil, err
		}
	}

	return &App{cfg: cfg, engine: engine, logger: logger}, nil
}

// NewWithEngine creates an application instance with a pre-configured engine
func NewWithEngine(cfg *config.Config, engine *core.Engine, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.Default()
	}
	return &App{cfg: cfg, engine: engine, logger: logger}
}

// Engine returns the underlying engine for route registration
func (a *App) Engine() *core.Engine {
	return a.engine
}

func (a *App) Logger() *slog.Logger {
	return a.logger
}

// Run serves on the configured port until ctx is done or SIGINT/SIGTERM
// arrives. A shutdown requested that way is not an error.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		a.logger.Info("shutting down", "cause", context.Cause(ctx))
		a.engine.Close()
	}()

	a.logger.Info("serwer starting", "host", a.cfg.Host, "port", a.cfg.Port, "env", a.cfg.Env)
	err := a.engine.Listen(a.cfg.Port)
	if errors.Is(err, core.ErrEngineClosed) {
		a.logger.Info("serwer stopped", "stats", a.engine.Stats().Monitor)
		return nil
	}
	return err
}
