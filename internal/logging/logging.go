// Package logging builds the zap logger used by the showcase command.
package logging

import (
	"fmt"

	"go.uber.org/zap"
)

// New returns a JSON production logger for format "json" and a console
// development logger otherwise, both filtered at level.
func New(level, format string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("logging: %w", err)
	}

	var cfg zap.Config
	if format == "json" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}

	cfg.Level = lvl

	return cfg.Build()
}
