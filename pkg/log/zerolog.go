package log

import (
	"context"
	"fmt"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ZerologLogger implements Logger on top of zerolog.
type ZerologLogger struct {
	zl zerolog.Logger
}

// NewZerologLogger returns a Logger writing JSON lines to w.
// Wrap w in zerolog.ConsoleWriter for human readable output.
func NewZerologLogger(w io.Writer, level Level) *ZerologLogger {
	zl := zerolog.New(w).Level(toZerologLevel(level)).With().Timestamp().Logger()
	return &ZerologLogger{zl: zl}
}

// Debug implements Logger.Debug.
func (l *ZerologLogger) Debug(msg string, fields ...any) {
	l.write(l.zl.Debug(), msg, fields)
}

// Info implements Logger.Info.
func (l *ZerologLogger) Info(msg string, fields ...any) {
	l.write(l.zl.Info(), msg, fields)
}

// Warn implements Logger.Warn.
func (l *ZerologLogger) Warn(msg string, fields ...any) {
	l.write(l.zl.Warn(), msg, fields)
}

// Error implements Logger.Error.
func (l *ZerologLogger) Error(msg string, fields ...any) {
	event := l.zl.Error()
	if len(fields) > 0 {
		if err, ok := fields[0].(error); ok {
			fields = fields[1:]
			addError(event, err)
		}
	}
	l.write(event, msg, fields)
}

// With implements Logger.With.
func (l *ZerologLogger) With(fields ...any) Logger {
	return &ZerologLogger{zl: l.zl.With().Fields(normalizeFields(fields)).Logger()}
}

// Enabled implements Logger.Enabled.
func (l *ZerologLogger) Enabled(_ context.Context, level Level) bool {
	return toZerologLevel(level) >= l.zl.GetLevel()
}

func (l *ZerologLogger) write(event *zerolog.Event, msg string, fields []any) {
	if event == nil {
		return
	}
	event.Fields(normalizeFields(fields)).Msg(msg)
}

// addError attaches err, its structured detail when the error (or anything
// it wraps) marshals itself, and the stack recorded by cockroachdb/errors.
func addError(event *zerolog.Event, err error) {
	if event == nil {
		return
	}
	event.Err(err).Str(ErrorTypeKey, fmt.Sprintf("%T", errors.UnwrapAll(err)))

	var marshaler zerolog.LogObjectMarshaler
	if errors.As(err, &marshaler) {
		event.Object(ErrorDetailKey, marshaler)
	}
	if stack := extractStacktrace(err); stack != "" {
		event.Str(StacktraceKey, stack)
	}
}

func extractStacktrace(err error) string {
	safeDetails := errors.GetSafeDetails(err).SafeDetails
	if len(safeDetails) > 0 {
		return safeDetails[0]
	}
	return ""
}

// normalizeFields turns alternating key/value pairs into a map. A dangling
// key is kept with a nil value so nothing is silently dropped.
func normalizeFields(fields []any) map[string]interface{} {
	out := make(map[string]interface{}, len(fields)/2+1)
	for i := 0; i < len(fields); i += 2 {
		key := fmt.Sprintf("%v", fields[i])
		if i+1 >= len(fields) {
			out[key] = nil
			break
		}
		switch v := fields[i+1].(type) {
		case error:
			out[key] = v.Error()
		default:
			out[key] = v
		}
	}
	return out
}

func toZerologLevel(level Level) zerolog.Level {
	switch {
	case level <= LevelDebug:
		return zerolog.DebugLevel
	case level <= LevelInfo:
		return zerolog.InfoLevel
	case level <= LevelWarn:
		return zerolog.WarnLevel
	default:
		return zerolog.ErrorLevel
	}
}
