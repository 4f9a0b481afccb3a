package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Config holds logger configuration
type Config struct {
	Verbose    bool
	JSONFormat bool
	Output     io.Writer // defaults to stderr
}

// NewLogger builds the process logger. Mining output goes to stdout, so
// log lines always go to stderr unless redirected.
func NewLogger(config Config) *logrus.Logger {
	logger := logrus.New()

	if config.Output != nil {
		logger.SetOutput(config.Output)
	} else {
		logger.SetOutput(os.Stderr)
	}

	if config.Verbose {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.WarnLevel)
	}

	if config.JSONFormat {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "15:04:05",
		})
	}

	return logger
}
