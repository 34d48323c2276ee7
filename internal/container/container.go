package container

import (
	"fmt"

	"go.uber.org/zap"

	"rsmconfig/adapters/jsonfile"
	"rsmconfig/adapters/skll"
	"rsmconfig/domain/configuration"
	"rsmconfig/domain/core"
	"rsmconfig/internal"
	"rsmconfig/internal/config"
	"rsmconfig/ports"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	RunID  core.RunID
	Logger *zap.Logger

	// Adapters
	Source       ports.ConfigSourcePort
	Capabilities ports.ModelCapabilityPort

	// Domain services
	Parser *configuration.Parser
}

// New creates a new dependency injection container
func New(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	return NewWithLogger(cfg, internal.NewLogger(cfg.Log.Level))
}

// NewWithLogger wires the container around an existing logger
func NewWithLogger(cfg *config.Config, logger *zap.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	runID := core.NewRunID()
	logger = logger.With(zap.String("run_id", runID.String()))

	c := &Container{
		Config:       cfg,
		RunID:        runID,
		Logger:       logger,
		Source:       jsonfile.NewLoader(logger),
		Capabilities: skll.NewCatalog(),
	}
	c.Parser = configuration.NewParser(c.Source, c.Capabilities, logger)

	logger.Debug("container initialized",
		zap.String("context", cfg.Parser.Context.String()),
		zap.Int("workers", cfg.Parser.Workers))
	return c, nil
}

// Close flushes buffered log entries
func (c *Container) Close() error {
	_ = c.Logger.Sync()
	return nil
}
