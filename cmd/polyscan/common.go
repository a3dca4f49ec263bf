package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ludo-technologies/polyscan/internal/config"
	"github.com/ludo-technologies/polyscan/internal/logging"
	"github.com/ludo-technologies/polyscan/service"
)

// loadConfig loads the config file for target and applies command-line overrides
func loadConfig(configPath, target string, overrides service.ConfigOverrides) (*config.Config, error) {
	loader := service.NewConfigurationLoader()

	cfg, err := loader.LoadConfig(configPath, target)
	if err != nil {
		return nil, err
	}

	cfg = loader.MergeConfig(cfg, overrides)
	if err := loader.ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger builds the command logger. Logs always go to stderr so they never
// mix with report output.
func newLogger(cmd *cobra.Command, cfg *config.Config) *logrus.Logger {
	return logging.New(cfg.Logging, cmd.ErrOrStderr())
}

// signalContext derives a context cancelled on interrupt
func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt)
}
