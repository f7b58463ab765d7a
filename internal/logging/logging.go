// Package logging builds the zap logger shared by all relmap components.
package logging

import (
	"fmt"

	"github.com/N3moAhead/relmap/internal/config"
	"go.uber.org/zap"
)

// New returns a production logger unless the environment says otherwise.
// Output goes to cfg.LogFile because the terminal belongs to the TUI; an
// empty LogFile logs to stderr.
func New(cfg config.Config) (*zap.Logger, error) {
	var zcfg zap.Config
	if cfg.Environment == "production" {
		zcfg = zap.NewProductionConfig()
	} else {
		zcfg = zap.NewDevelopmentConfig()
	}

	level, err := zap.ParseAtomicLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	zcfg.Level = level

	if cfg.LogFile != "" {
		zcfg.OutputPaths = []string{cfg.LogFile}
	} else {
		zcfg.OutputPaths = []string{"stderr"}
	}

	logger, err := zcfg.Build()
	if err != nil {
		return nil, err
	}
	return logger.Named("relmap"), nil
}
