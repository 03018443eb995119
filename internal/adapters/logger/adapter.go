// Package logger provides adapters for the logging interface.
package logger

import (
	"context"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EnvLogLevel is the environment variable consulted for the log level.
const EnvLogLevel = "DIRTY_LOG_LEVEL"

// Logger defines the logging interface used throughout the application.
type Logger interface {
	Info(ctx context.Context, msg string, fields map[string]any)
	Debug(ctx context.Context, msg string, fields map[string]any)
	Warn(ctx context.Context, msg string, fields map[string]any)
	Error(ctx context.Context, msg string, err error, fields map[string]any)
}

// ZapAdapter adapts a *zap.Logger to the application's logging interface.
type ZapAdapter struct {
	log *zap.Logger
}

// NewZapAdapter creates a new ZapAdapter wrapping the given zap logger.
func NewZapAdapter(log *zap.Logger) *ZapAdapter {
	return &ZapAdapter{log: log}
}

// NewZapLoggerFromEnv builds a production zap logger writing to stderr,
// honoring EnvLogLevel. Logs go to stderr because the scan report owns
// stdout. Unknown levels fall back to info.
func NewZapLoggerFromEnv() *zap.Logger {
	return NewZapLogger(os.Getenv(EnvLogLevel))
}

// NewZapLogger builds a production zap logger at the given level.
func NewZapLogger(level string) *zap.Logger {
	parsed, err := zapcore.ParseLevel(level)
	if err != nil {
		parsed = zapcore.InfoLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(parsed)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	log, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return log
}

// Info logs an info message.
func (a *ZapAdapter) Info(_ context.Context, msg string, fields map[string]any) {
	a.log.Info(msg, toZapFields(fields)...)
}

// Debug logs a debug message.
func (a *ZapAdapter) Debug(_ context.Context, msg string, fields map[string]any) {
	a.log.Debug(msg, toZapFields(fields)...)
}

// Warn logs a warning message.
func (a *ZapAdapter) Warn(_ context.Context, msg string, fields map[string]any) {
	a.log.Warn(msg, toZapFields(fields)...)
}

// Error logs an error message.
func (a *ZapAdapter) Error(_ context.Context, msg string, err error, fields map[string]any) {
	a.log.Error(msg, append(toZapFields(fields), zap.Error(err))...)
}

func toZapFields(fields map[string]any) []zap.Field {
	zapFields := make([]zap.Field, 0, len(fields))
	for key, value := range fields {
		zapFields = append(zapFields, zap.Any(key, value))
	}
	return zapFields
}
