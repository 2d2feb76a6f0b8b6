package log

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/YuminosukeSato/irisvc/pkg/errors"
)

var (
	mu            sync.RWMutex
	defaultLogger Logger = NewZerologLogger(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}, LevelInfo)
)

// GetLogger returns the process-wide logger.
func GetLogger() Logger {
	mu.RLock()
	defer mu.RUnlock()
	return defaultLogger
}

// GetLoggerWithName returns the process-wide logger tagged with a component name.
func GetLoggerWithName(name string) Logger {
	return GetLogger().With(ComponentKey, name)
}

// SetLogger replaces the process-wide logger. Tests use it with TestLogger.
func SetLogger(l Logger) {
	mu.Lock()
	defer mu.Unlock()
	defaultLogger = l
}

// SetupLogger configures the process-wide zerolog logger and routes
// library warnings (errors.Warn) into it.
//
// format is "console" for human readable output or "json" for JSON lines.
func SetupLogger(loglevel, format string, w io.Writer) error {
	level, err := ToLogLevel(loglevel)
	if err != nil {
		return err
	}

	if format == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	} else if format != "json" {
		return errors.NewValidationError("log_format", "must be console or json", format)
	}

	logger := NewZerologLogger(w, level)
	SetLogger(logger)
	errors.SetZerologWarnFunc(func(warning error) {
		event := logger.zl.Warn()
		if m, ok := warning.(zerolog.LogObjectMarshaler); ok {
			event = event.Object(ErrorDetailKey, m)
		}
		event.Msg(warning.Error())
	})
	return nil
}

// ToLogLevel parses a level name.
func ToLogLevel(level string) (Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, errors.NewValidationError("log_level", "must be debug, info, warn or error", level)
	}
}
