package cli

import (
	"github.com/glorpus-work/getdriver/internal/logger"
	"github.com/glorpus-work/getdriver/pkg/config"
)

// initLogger configures the process logger from the loaded configuration.
func initLogger(cfg *config.Config) {
	logger.InitLogger(cfg.Settings.LogLevel, logger.OutputFormat(cfg.Settings.LogFormat))
}
