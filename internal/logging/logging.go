// Package logging builds the logrus logger shared by the engine and CLI.
package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/ludo-technologies/polyscan/internal/config"
)

// New creates a logger configured from cfg. Output goes to w, or stderr when w is nil.
// Unknown levels fall back to warn.
func New(cfg config.LoggingConfig, w io.Writer) *logrus.Logger {
	logger := logrus.New()
	if w == nil {
		w = os.Stderr
	}
	logger.SetOutput(w)

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.WarnLevel
	}
	logger.SetLevel(level)

	if cfg.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			DisableTimestamp: true,
		})
	}

	return logger
}

// Discard returns a logger that drops every entry
func Discard() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}
