package logging

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// New creates a JSON logrus.Logger writing to stdout at the given level.
func New(level string) *logrus.Logger {
	return NewWithOutput(level, os.Stdout)
}

// NewWithOutput is New with a custom destination. An unknown level falls back
// to info and is reported once on the new logger.
func NewWithOutput(level string, out io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(out)

	lvl, ok := parseLevel(level)
	logger.SetLevel(lvl)
	if !ok {
		logger.WithField("log_level", level).Warn("unknown log level, using info")
	}
	return logger
}

// parseLevel reports false for values logrus does not know. Empty means info.
func parseLevel(value string) (logrus.Level, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return logrus.InfoLevel, true
	}
	lvl, err := logrus.ParseLevel(value)
	if err != nil {
		return logrus.InfoLevel, false
	}
	return lvl, true
}
