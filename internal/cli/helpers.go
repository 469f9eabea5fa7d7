package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/glorpus-work/getdriver/internal/logger"
	"github.com/glorpus-work/getdriver/pkg/config"
	"github.com/glorpus-work/getdriver/pkg/orchestrator"
)

// These variables will be set by the main package
var (
	ConfigPath *string
	Verbose    *bool
	NoColor    *bool
	Platform   *string
)

// reportedError marks an error whose user-facing message was already
// printed by the command.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }

func (e *reportedError) Unwrap() error { return e.err }

// IsReported reports whether err was already shown to the user.
func IsReported(err error) bool {
	var r *reportedError
	return errors.As(err, &r)
}

// report prints msg in the error style and returns err marked as reported.
func report(cmd *cobra.Command, msg string, err error) error {
	w := cmd.ErrOrStderr()
	_, _ = fmt.Fprintln(w, render(w, errorStyle, msg))
	logger.Debug(msg, logger.Fields{"error": err})
	return &reportedError{err: err}
}

// getConfigPath returns the config file to read: the --config flag, then
// GETDRIVER_CONFIG, then the per-user default.
func getConfigPath() string {
	if ConfigPath != nil && *ConfigPath != "" {
		return *ConfigPath
	}
	if env := os.Getenv(config.EnvConfigPath); env != "" {
		return env
	}

	defaultPath, err := config.GetDefaultConfigPath()
	if err != nil {
		logger.Warn("Failed to get default config path, using built-in defaults", logger.Fields{"error": err})
		return ""
	}
	return defaultPath
}

// loadConfig loads the configuration and applies the global flags.
func loadConfig() (*config.Config, error) {
	var cfg *config.Config
	path := getConfigPath()
	if path == "" {
		cfg = config.DefaultConfig()
	} else {
		var err error
		if cfg, err = config.LoadConfig(path); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	if Verbose != nil && *Verbose {
		cfg.Settings.LogLevel = "debug"
	}
	initLogger(cfg)
	return cfg, nil
}

func platformFlag() string {
	if Platform != nil {
		return *Platform
	}
	return ""
}

// newOrchestrator builds an orchestrator for label, or for the --platform
// flag when label is empty.
func newOrchestrator(label string) (*orchestrator.Orchestrator, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if label == "" {
		label = platformFlag()
	}

	return orchestrator.New(label,
		orchestrator.WithConfig(cfg),
		orchestrator.WithHooks(orchestrator.Hooks{OnEvent: logEvent}),
	)
}

func logEvent(e orchestrator.Event) {
	logger.Info(e.Phase, logger.Fields{"version": e.ID, "detail": e.Msg})
}
