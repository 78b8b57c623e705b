package contract

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/huangsam/gitfolio/schema"
	"github.com/sirupsen/logrus"
)

var (
	logger     *logrus.Logger
	loggerOnce sync.Once
)

// Logger returns the process-wide logger, creating it on first use.
// It writes to stderr so stdout stays clean for results and MCP traffic.
func Logger() *logrus.Logger {
	loggerOnce.Do(func() {
		logger = logrus.New()
		logger.SetOutput(os.Stderr)
		logger.SetLevel(logrus.WarnLevel)
		logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	})
	return logger
}

// ConfigureLogger applies the level, format and output destination.
func ConfigureLogger(level string, format schema.LogFormat, out io.Writer) error {
	lvl, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	l := Logger()
	l.SetLevel(lvl)
	if out != nil {
		l.SetOutput(out)
	}
	switch format {
	case schema.JSONLogFormat:
		l.SetFormatter(&logrus.JSONFormatter{TimestampFormat: "2006-01-02 15:04:05"})
	default:
		l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	}
	return nil
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	Logger().WithError(err).Fatal(msg)
}

// LogWarn logs a warning message.
func LogWarn(msg string, err error) {
	Logger().WithError(err).Warn(msg)
}
