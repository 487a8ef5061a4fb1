// Package api wires configuration, logging, the task store and the task
// service into one container used by the command line and the browser.
package api

import (
	"fmt"

	"go.uber.org/zap"

	"todo/internal/config"
	"todo/internal/logging"
	"todo/internal/repository/sqlite"
	"todo/internal/services"
)

// Container owns the long-lived dependencies of one process.
type Container struct {
	Config   *config.Config
	Logger   *zap.Logger
	Store    sqlite.Repository
	Services *services.ServiceContainer
}

// New builds the logger and the SQLite store described by cfg.
func New(cfg *config.Config) (*Container, error) {
	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	store, err := config.CreateRepository(cfg)
	if err != nil {
		logger.Error("failed to open task store",
			zap.String("path", cfg.GetDatabasePath()),
			zap.Error(err),
		)
		_ = logger.Sync()
		return nil, err
	}

	logger.Debug("task store opened", zap.String("path", cfg.GetDatabasePath()))
	return NewWithStore(cfg, store, logger), nil
}

// NewWithStore builds a container around an existing store. A nil logger
// discards output.
func NewWithStore(cfg *config.Config, store sqlite.Repository, logger *zap.Logger) *Container {
	if logger == nil {
		logger = zap.NewNop()
	}

	store = sqlite.WithQueryTimeout(store, cfg.GetQueryTimeout())

	return &Container{
		Config: cfg,
		Logger: logger,
		Store:  store,
		Services: &services.ServiceContainer{
			TaskService: services.NewTaskService(store, logger),
		},
	}
}

// Tasks returns the task service.
func (c *Container) Tasks() services.TaskService {
	return c.Services.TaskService
}

// Close releases the store and flushes the logger.
func (c *Container) Close() error {
	err := c.Store.Close()
	// Sync fails on terminals; nothing useful to report.
	_ = c.Logger.Sync()
	return err
}
