// Package log provides the structured logging interface used across gaussnb.
//
// The Logger interface is deliberately small and slog-shaped: a message plus
// alternating key/value fields. Two backends implement it, zerolog (the
// default, see provider.go) and log/slog (see logger.go). Components obtain a
// logger from the package-level provider:
//
//	logger := log.GetLoggerWithName("naive_bayes").With(
//	    log.ModelNameKey, "GaussianNB",
//	)
//	logger.Info("training completed",
//	    log.SamplesKey, 90,
//	    log.ClassesKey, 3,
//	)
package log

import (
	"context"
)

// Logger defines a structured logging interface compatible with Go's log/slog.
type Logger interface {
	// Debug logs detailed diagnostic information.
	Debug(msg string, fields ...any)

	// Info logs general operational information.
	Info(msg string, fields ...any)

	// Warn logs a potentially problematic situation.
	Warn(msg string, fields ...any)

	// Error logs an error condition. An error value among the fields is
	// rendered with its message; backends that support it attach the stack
	// recorded by cockroachdb/errors.
	//
	//   logger.Error("training failed", "error", err, log.SamplesKey, n)
	Error(msg string, fields ...any)

	// With returns a new Logger that adds fields to every record.
	With(fields ...any) Logger

	// Enabled reports whether the logger emits records at the given level.
	// Use it to skip building expensive fields.
	Enabled(ctx context.Context, level Level) bool
}

// Level represents a logging level, compatible with slog.Level.
type Level int

// Standard logging levels, values are compatible with slog.Level.
const (
	LevelDebug Level = -4
	LevelInfo  Level = 0
	LevelWarn  Level = 4
	LevelError Level = 8
)

// String returns the string representation of the log level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel converts "debug", "info", "warn" or "error" to a Level.
func ParseLevel(level string) (Level, bool) {
	switch level {
	case "debug":
		return LevelDebug, true
	case "info":
		return LevelInfo, true
	case "warn":
		return LevelWarn, true
	case "error":
		return LevelError, true
	default:
		return LevelInfo, false
	}
}

// LoggerProvider creates loggers. Swapping the provider (SetProvider) lets
// tests capture everything the library logs.
type LoggerProvider interface {
	// GetLogger returns the default logger instance.
	GetLogger() Logger

	// GetLoggerWithName returns a logger tagged with a component name.
	GetLoggerWithName(name string) Logger

	// SetLevel sets the minimum log level for all loggers created by this provider.
	SetLevel(level Level)
}
