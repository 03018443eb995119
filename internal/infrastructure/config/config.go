// Package config provides configuration loading for the dirty application.
// Settings come from DIRTY_* environment variables with sensible defaults;
// command-line flags take precedence over everything loaded here.
package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"

	"github.com/iamkaf/dirty/internal/domain"
)

// Environment variable names.
const (
	// EnvMaxDepth overrides the default traversal depth bound.
	EnvMaxDepth = "DIRTY_MAX_DEPTH"

	// EnvWorkers bounds the inspection worker pool (0 means available
	// parallelism).
	EnvWorkers = "DIRTY_WORKERS"

	// EnvLogLevel is the log level (debug, info, warn, error).
	EnvLogLevel = "DIRTY_LOG_LEVEL"

	// EnvLogAppName is the application name for log context.
	EnvLogAppName = "DIRTY_LOG_APP_NAME"

	// EnvNoColor disables colorized report output.
	EnvNoColor = "DIRTY_NO_COLOR"
)

// Viper keys, mapped onto the environment variables above by the DIRTY prefix.
const (
	keyMaxDepth   = "max_depth"
	keyWorkers    = "workers"
	keyLogLevel   = "log_level"
	keyLogAppName = "log_app_name"
	keyNoColor    = "no_color"
)

// Default values.
const (
	DefaultLogLevel   = "info"
	DefaultLogAppName = "dirty"
)

// Configuration errors.
var (
	// ErrInvalidMaxDepth indicates a negative depth bound.
	ErrInvalidMaxDepth = errors.New("max depth must not be negative")

	// ErrInvalidWorkers indicates a negative worker count.
	ErrInvalidWorkers = errors.New("worker count must not be negative")
)

// Config holds all application configuration.
type Config struct {
	// MaxDepth is the default traversal depth bound, before flags.
	MaxDepth int

	// Workers bounds the inspection worker pool; 0 means available
	// parallelism.
	Workers int

	// LogLevel is the logging level (debug, info, warn, error).
	LogLevel string

	// LogAppName is the application name for log context.
	LogAppName string

	// NoColor disables colorized output.
	NoColor bool
}

// Load loads the application configuration from environment variables.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("DIRTY")
	v.AutomaticEnv()

	v.SetDefault(keyMaxDepth, domain.DefaultMaxDepth)
	v.SetDefault(keyWorkers, 0)
	v.SetDefault(keyLogLevel, DefaultLogLevel)
	v.SetDefault(keyLogAppName, DefaultLogAppName)
	v.SetDefault(keyNoColor, false)

	cfg := &Config{
		MaxDepth:   v.GetInt(keyMaxDepth),
		Workers:    v.GetInt(keyWorkers),
		LogLevel:   v.GetString(keyLogLevel),
		LogAppName: v.GetString(keyLogAppName),
		NoColor:    v.GetBool(keyNoColor),
	}

	if cfg.MaxDepth < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidMaxDepth, cfg.MaxDepth)
	}
	if cfg.Workers < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWorkers, cfg.Workers)
	}

	return cfg, nil
}
