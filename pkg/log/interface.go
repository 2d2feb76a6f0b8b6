// Package log provides a structured logging interface for the iris
// classification pipeline.
//
// The interface is slog-compatible in shape (message plus alternating
// key/value fields) and backed by zerolog in production. Tests capture
// output with TestLogger.
//
// Example usage:
//
//	logger := log.GetLogger().With(
//	    log.ModelNameKey, "SVC",
//	    log.ComponentKey, "svm",
//	)
//	logger.Info("Training completed",
//	    log.SamplesKey, 135,
//	    log.SupportVectorsKey, 40,
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

	// Warn logs a situation that does not stop the run.
	Warn(msg string, fields ...any)

	// Error logs an error condition. If the first field is an error value it
	// is attached as the error and its stack trace, when present, is added
	// under StacktraceKey.
	//
	//   logger.Error("Training failed", err, log.OperationKey, "fit")
	Error(msg string, fields ...any)

	// With returns a new Logger with the given fields pre-populated.
	With(fields ...any) Logger

	// Enabled reports whether the logger emits records at the given level.
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
