// Package logger provides a configured zerolog logger.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// New returns a zerolog.Logger tagged with the service name. Unknown levels fall back to info.
func New(serviceName, level string, pretty bool) zerolog.Logger {
	return NewWithWriter(os.Stderr, serviceName, level, pretty)
}

func NewWithWriter(w io.Writer, serviceName, level string, pretty bool) zerolog.Logger {
	if pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(w).Level(lvl).With().
		Str("service", serviceName).
		Timestamp().
		Logger()
}
