package config

import (
	"os"
	"strconv"

	"rsmconfig/domain/schema"
	"rsmconfig/internal"
	"rsmconfig/internal/errors"
)

// Config holds the runtime settings of the command line tools
type Config struct {
	Log    LogConfig
	Parser ParserConfig
	Output OutputConfig
}

// LogConfig holds logging settings
type LogConfig struct {
	Level internal.LogLevel
}

// ParserConfig holds defaults for building configurations
type ParserConfig struct {
	Context schema.Context
	Workers int
}

// OutputConfig holds where snapshots are written
type OutputConfig struct {
	Dir string
}

// Load reads settings from environment variables and validates them
func Load() (*Config, error) {
	config := &Config{
		Log: LogConfig{
			Level: internal.ParseLogLevel(getEnvOrDefault("LOG_LEVEL", "INFO")),
		},
		Output: OutputConfig{
			Dir: getEnvOrDefault("RSMCONFIG_OUTPUT_DIR", ""),
		},
	}

	parserConfig, err := loadParserConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load parser configuration")
	}
	config.Parser = *parserConfig

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func loadParserConfig() (*ParserConfig, error) {
	ctx, err := schema.ParseContext(getEnvOrDefault("RSMCONFIG_CONTEXT", string(schema.ContextTool)))
	if err != nil {
		return nil, errors.WithCode(errors.CodeConfigInvalid, err)
	}
	return &ParserConfig{
		Context: ctx,
		Workers: getEnvIntOrDefault("RSMCONFIG_WORKERS", 4),
	}, nil
}

func validateConfig(config *Config) error {
	if config.Parser.Workers < 1 {
		return errors.ConfigInvalid("RSMCONFIG_WORKERS must be at least 1")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
