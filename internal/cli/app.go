// Package cli provides the rconsh command tree and the interactive shell.
package cli

import (
	"context"
	"fmt"
	"os"

	"rconsh/internal/config"
	"rconsh/internal/log"
	"rconsh/internal/model"
	"rconsh/internal/secret"
	"rconsh/internal/storage"
	"rconsh/internal/ui"
)

// App holds the components shared by every subcommand.
type App struct {
	cfg    *model.Config
	logger *log.Logger
	store  *storage.Storage
	ui     *ui.UI
}

// newApp loads the configuration and opens the logger and storage.
func newApp(opts *rootOptions) (*App, error) {
	if opts.configPath != "" {
		config.SetPath(opts.configPath)
	}
	if err := config.ConfigLoad(); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	cfg := config.ConfigGet()

	logger, err := log.NewLogger(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	store, err := storage.NewStorage(cfg, logger)
	if err != nil {
		logger.Error(context.Background(), "Failed to initialize storage", log.Fields{"error": err})
		logger.Close()
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	color := !opts.noColor && ui.ColorEnabled(cfg.Color, os.Stdout)
	logger.Debug(context.Background(), "Application started", log.Fields{"config": config.Path()})

	return &App{
		cfg:    cfg,
		logger: logger,
		store:  store,
		ui:     ui.NewUI(os.Stdout, color),
	}, nil
}

// Close releases storage and flushes the logs.
func (a *App) Close() {
	if err := a.store.Close(); err != nil {
		a.logger.Error(context.Background(), "Failed to close storage", log.Fields{"error": err})
	}
	if err := a.logger.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to close logger: %v\n", err)
	}
}

// key returns the master key used to seal profile passwords.
func (a *App) key() ([]byte, error) {
	return secret.LoadOrCreateKey(config.DataPath(a.cfg, a.cfg.KeyFile))
}
