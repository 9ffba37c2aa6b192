// Package logging builds the shared zap logger. JSON output by default so
// the load's progress lines land machine-readable in whatever collects
// stderr; SILVERPIPE_LOG=console switches to the human-friendly encoder for
// interactive runs.
package logging

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New constructs the process logger. level accepts the usual zap names
// ("debug", "info", "warn", "error"); empty means info.
func New(level string) (*zap.SugaredLogger, error) {
	lvl := zapcore.InfoLevel
	if level != "" {
		var err error
		lvl, err = zapcore.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("logging: bad level %q: %w", level, err)
		}
	}

	cfg := zap.NewProductionConfig()
	if os.Getenv("SILVERPIPE_LOG") == "console" {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("logging: build: %w", err)
	}
	return logger.Sugar(), nil
}
