package observability

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// NewLogger creates a JSON-formatted logrus logger at the given level.
// Unknown levels fall back to info.
func NewLogger(level string) *logrus.Logger {
	return NewLoggerWithOutput(level, os.Stdout)
}

// NewLoggerWithOutput creates a logger writing to the given output.
func NewLoggerWithOutput(level string, output io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(output)
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetLevel(parseLevel(level))
	return logger
}

// NewTextLogger creates a text-formatted logger for command-line use,
// where structured JSON on stderr is just noise.
func NewTextLogger(level string, output io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(output)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	logger.SetLevel(parseLevel(level))
	return logger
}

func parseLevel(level string) logrus.Level {
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return logrus.InfoLevel
	}
	return parsed
}
