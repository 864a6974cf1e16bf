// Package logging builds the converter's zap logger.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a production (JSON to stderr) logger, at debug level when
// verbose is set.
func New(verbose bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// Mission returns the fields every converter log line about a mission carries.
func Mission(id, day, year int) []zap.Field {
	return []zap.Field{zap.Int("mission", id), zap.Int("launch_day", day), zap.Int("year", year)}
}
