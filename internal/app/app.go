// Package app initializes and holds long-lived application services, acting as a dependency injection container.
package app

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/JakeFAU/sha256digest/internal/config"
	"github.com/JakeFAU/sha256digest/internal/digest"
	"github.com/JakeFAU/sha256digest/internal/dispatcher"
	"github.com/JakeFAU/sha256digest/internal/hash/sha256"
	"github.com/JakeFAU/sha256digest/internal/logging"
)

// App holds the shared services built once at startup: configuration,
// the logger and the hasher. The hasher's constant table is built here,
// before any concurrent digest work begins.
type App struct {
	cfg    config.Config
	logger *zap.Logger
	hasher digest.Hasher
}

// NewApp creates an App from a validated configuration and installs its
// logger as the zap global.
func NewApp(cfg config.Config) (*App, error) {
	logger, err := logging.New(cfg.Logging.Development)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	zap.ReplaceGlobals(logger)

	return &App{
		cfg:    cfg,
		logger: logger,
		hasher: sha256.New(),
	}, nil
}

// GetConfig returns the configuration the App was built from.
func (a *App) GetConfig() config.Config {
	return a.cfg
}

// GetLogger returns the shared zap logger.
func (a *App) GetLogger() *zap.Logger {
	return a.logger
}

// GetHasher returns the shared SHA-256 hasher.
func (a *App) GetHasher() digest.Hasher {
	return a.hasher
}

// NewDispatcher returns a dispatcher using the configured concurrency.
func (a *App) NewDispatcher(source digest.Source) *dispatcher.Dispatcher {
	return dispatcher.New(a.hasher, a.cfg.Digest.Concurrency, source, a.logger.Named(string(source)))
}

// Close flushes the logger.
func (a *App) Close() {
	// Sync on stderr reports EINVAL on some platforms; nothing useful to do with it.
	_ = a.logger.Sync()
}
