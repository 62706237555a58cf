package helpers

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// NewLogger creates a configured Logrus logger
func NewLogger(appName, env string) *logrus.Logger {
	return newLogger(os.Stdout, appName, env)
}

func newLogger(out io.Writer, appName, env string) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(out)
	if env == "development" {
		logger.SetLevel(logrus.DebugLevel)
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetLevel(logrus.InfoLevel)
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	logger.WithFields(logrus.Fields{"app": appName, "env": env}).Info("logger initialized")
	return logger
}

// NewDiscardLogger returns a logger that writes nowhere; handy in tests and tools.
func NewDiscardLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// LogError logs msg at error level. A nil logger is a no-op and the caller's
// fields map is never modified.
func LogError(logger *logrus.Logger, msg string, err error, fields logrus.Fields) {
	entry(logger, err, fields).Error(msg)
}

// LogWarn is LogError at warn level.
func LogWarn(logger *logrus.Logger, msg string, err error, fields logrus.Fields) {
	entry(logger, err, fields).Warn(msg)
}

func entry(logger *logrus.Logger, err error, fields logrus.Fields) *logrus.Entry {
	if logger == nil {
		logger = discard
	}
	e := logger.WithFields(fields)
	if err != nil {
		e = e.WithError(err)
	}
	return e
}

var discard = NewDiscardLogger()
