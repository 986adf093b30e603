// Package logging builds the debug logger. The TUI owns the terminal, so logs
// only ever go to a file.
package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config holds logger configuration
type Config struct {
	Enabled bool
	Level   string
	LogFile string
}

// New returns a file-backed logger when enabled, a disabled one otherwise
func New(cfg Config) *zerolog.Logger {
	if !cfg.Enabled || cfg.LogFile == "" {
		nop := zerolog.Nop()
		return &nop
	}

	var out io.Writer = io.Discard
	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0755); err == nil {
		out = &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    5, // MB
			MaxBackups: 3,
			MaxAge:     28, // days
		}
	}

	return NewWithWriter(out, cfg.Level)
}

// NewWithWriter creates a logger writing JSON lines to w
func NewWithWriter(w io.Writer, level string) *zerolog.Logger {
	logger := zerolog.New(w).
		Level(parseLevel(level)).
		With().
		Timestamp().
		Str("app", "linite").
		Logger()
	return &logger
}

// parseLevel converts string level to zerolog.Level
func parseLevel(level string) zerolog.Level {
	switch level {
	case "trace":
		return zerolog.TraceLevel
	case "debug", "":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
