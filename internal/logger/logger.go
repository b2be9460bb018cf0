// Package logger provides structured logging for the document engine.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger wraps zerolog with engine-specific component loggers.
type Logger struct {
	zlog zerolog.Logger
}

// Config holds logger configuration. Loggers are constructed explicitly and
// passed into components; there is no process-wide instance.
type Config struct {
	Level      string // debug, info, warn, error
	Pretty     bool   // pretty-print for development
	Output     io.Writer
	WithCaller bool
}

// New creates a structured logger.
func New(cfg Config) *Logger {
	level := zerolog.InfoLevel
	switch cfg.Level {
	case "debug":
		level = zerolog.DebugLevel
	case "info":
		level = zerolog.InfoLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}
	if cfg.Pretty {
		output = zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: time.RFC3339,
		}
	}

	zlog := zerolog.New(output).
		Level(level).
		With().
		Timestamp().
		Str("service", "substance").
		Logger()

	if cfg.WithCaller {
		zlog = zlog.With().Caller().Logger()
	}

	return &Logger{zlog: zlog}
}

// Nop returns a logger that discards everything, for tests and defaults.
func Nop() *Logger {
	return &Logger{zlog: zerolog.Nop()}
}

// Zerolog returns the underlying zerolog logger.
func (l *Logger) Zerolog() zerolog.Logger {
	return l.zlog
}

// Document returns a logger scoped to document arena operations.
func (l *Logger) Document() zerolog.Logger {
	return l.zlog.With().Str("component", "document").Logger()
}

// Clipboard returns a logger scoped to the copy/extract engine.
func (l *Logger) Clipboard() zerolog.Logger {
	return l.zlog.With().Str("component", "clipboard").Logger()
}

// Surface returns a logger scoped to the region state resolver.
func (l *Logger) Surface() zerolog.Logger {
	return l.zlog.With().Str("component", "surface").Logger()
}

// LogCopy logs a completed copy operation with structured fields.
func (l *Logger) LogCopy(kind string, duration time.Duration, nodeCount int, err error) {
	event := l.zlog.Debug().
		Str("component", "clipboard").
		Str("selection_kind", kind).
		Dur("duration_ms", duration).
		Int("node_count", nodeCount)

	if err != nil {
		event = l.zlog.Error().
			Str("component", "clipboard").
			Str("selection_kind", kind).
			Dur("duration_ms", duration).
			Err(err)
	}

	event.Msg("copy operation completed")
}
