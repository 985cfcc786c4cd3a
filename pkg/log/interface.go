// Package log provides structured logging for training operations.
//
// The package defines a small slog-compatible Logger interface plus the
// attribute-key vocabulary training code logs with, so every component
// emits records a log pipeline can filter the same way. The default
// implementation rides on the process-wide log/slog logger configured
// by SetupLogger; tests swap in CaptureLogger.
//
// Typical use:
//
//	logger := log.GetLoggerWithName("boosting.trainer")
//	logger.Info("trained stump",
//	    log.OperationKey, log.OperationTrain,
//	    log.FeatureKey, stump.Feature,
//	    log.ScoreKey, stump.Z,
//	)

package log

import (
	"context"
)

// Logger is the structured logging surface training code depends on.
// Fields are alternating key-value pairs, the slog convention. The
// With method derives contextual loggers that stamp every record with
// pre-bound fields, which is how components tag their output.
type Logger interface {
	// Debug logs fine-grained diagnostics, such as per-search sweep
	// statistics. Usually disabled outside development.
	//
	// Example:
	//
	//	logger.Debug("split search finished",
	//	    log.CandidatesKey, 4096,
	//	    log.PrunedKey, 3871,
	//	)
	Debug(msg string, fields ...any)

	// Info logs normal operational events, such as a completed
	// training call with its winning split.
	Info(msg string, fields ...any)

	// Warn logs conditions training survives but an operator should
	// see, such as a feature that produced no usable split.
	//
	// Example:
	//
	//	logger.Warn("degenerate feature skipped",
	//	    log.FeatureKey, 3,
	//	    log.ExamplesKey, 128,
	//	)
	Warn(msg string, fields ...any)

	// Error logs failures. Pass the error through ErrAttr so the
	// stack-trace handler can surface its trace:
	//
	//	logger.Error("training failed", log.ErrAttr(err),
	//	    log.OperationKey, log.OperationTrain,
	//	)
	Error(msg string, fields ...any)

	// With returns a logger that adds the given fields to every
	// subsequent record. The receiver is unchanged.
	With(fields ...any) Logger

	// Enabled reports whether records at the given level would be
	// emitted. Guard expensive field construction with it:
	//
	//	if logger.Enabled(ctx, log.LevelDebug) {
	//	    logger.Debug("bucket state", "stats", stats.String())
	//	}
	Enabled(ctx context.Context, level Level) bool
}

// Level is a logging severity. Values mirror slog.Level so the two
// convert directly.
type Level int

const (
	LevelDebug Level = -4
	LevelInfo  Level = 0
	LevelWarn  Level = 4
	LevelError Level = 8
)

// String returns the conventional upper-case level name.
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

// LoggerProvider hands out loggers for components that take their
// logging via dependency injection instead of the package-level
// GetLogger functions. CaptureProvider implements it for tests.
type LoggerProvider interface {
	// GetLogger returns the provider's root logger.
	GetLogger() Logger

	// GetLoggerWithName returns a logger tagged with a component name.
	GetLoggerWithName(name string) Logger

	// SetLevel sets the minimum level for loggers the provider
	// creates afterwards.
	SetLevel(level Level)
}
