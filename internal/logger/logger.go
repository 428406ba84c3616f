// Package logger provides a wrapper around logrus for structured logging.
package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// NewLogger creates a new configured logger instance writing to stdout.
func NewLogger(logLevel string) *logrus.Logger {
	return newLogger(os.Stdout, logLevel, os.Getenv("ENVIRONMENT"))
}

// NewLoggerForEnvironment is NewLogger with the environment taken from configuration
// instead of the ENVIRONMENT variable. Output goes to w.
func NewLoggerForEnvironment(w io.Writer, logLevel, environment string) *logrus.Logger {
	return newLogger(w, logLevel, environment)
}

func newLogger(w io.Writer, logLevel, environment string) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)

	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logger.Warnf("Invalid log level '%s', defaulting to info", logLevel)
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	// JSON for production, colored text everywhere else
	if environment == "production" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
	}

	return logger
}
