package log

import (
	"context"
	"fmt"
	"log/slog"
	"os"
)

// CloudLogging expects different names for slog's built-in keys.
var cloudLoggingKeys = map[string]string{
	slog.LevelKey:   "severity",
	slog.MessageKey: "message",
	slog.SourceKey:  "logging.googleapis.com/sourceLocation",
}

func renameForCloudLogging(groups []string, attr slog.Attr) slog.Attr {
	// Built-in keys only appear at the top level.
	if len(groups) == 0 {
		if k, ok := cloudLoggingKeys[attr.Key]; ok {
			attr.Key = k
		}
	}
	return attr
}

// SetupLogger installs the process-wide JSON logger at the given
// verbosity. Output goes to stdout with CloudLogging key names and
// source locations attached.
func SetupLogger(loglevel string) {
	ops := slog.HandlerOptions{
		AddSource:   true,
		Level:       ToLogLevel(loglevel),
		ReplaceAttr: renameForCloudLogging,
	}
	handler := WithStackTraces(slog.NewJSONHandler(os.Stdout, &ops))
	slog.SetDefault(slog.New(handler))
}

var levelNames = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// ToLogLevel maps a verbosity name to its slog level. Unknown names
// panic since they indicate a misconfigured caller.
func ToLogLevel(level string) slog.Level {
	l, ok := levelNames[level]
	if !ok {
		panic(fmt.Sprintf("log: unknown level %q", level))
	}
	return l
}

const (
	ErrAttrKey        = "error"
	StacktraceAttrKey = "stacktrace"
)

// ErrAttr is a wrapper to pass err to slog.
func ErrAttr(err error) slog.Attr {
	return slog.Any(ErrAttrKey, err)
}

// slogLogger adapts the process-wide *slog.Logger to the Logger interface.
type slogLogger struct {
	l *slog.Logger
}

func (s *slogLogger) Debug(msg string, fields ...any) { s.l.Debug(msg, fields...) }
func (s *slogLogger) Info(msg string, fields ...any)  { s.l.Info(msg, fields...) }
func (s *slogLogger) Warn(msg string, fields ...any)  { s.l.Warn(msg, fields...) }
func (s *slogLogger) Error(msg string, fields ...any) { s.l.Error(msg, fields...) }

func (s *slogLogger) With(fields ...any) Logger {
	return &slogLogger{l: s.l.With(fields...)}
}

func (s *slogLogger) Enabled(ctx context.Context, level Level) bool {
	return s.l.Enabled(ctx, slog.Level(level))
}

// GetLogger returns a Logger backed by the default slog logger.
func GetLogger() Logger {
	return &slogLogger{l: slog.Default()}
}

// GetLoggerWithName returns a Logger tagged with a component name.
//
// Example:
//
//	logger := log.GetLoggerWithName("boosting.trainer")
func GetLoggerWithName(name string) Logger {
	return &slogLogger{l: slog.Default().With(ComponentKey, name)}
}
