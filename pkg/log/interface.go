// Package log provides a structured logging interface for colorbayes.
//
// This package defines a minimal, slog-compatible logging interface that allows
// the histogram model, the evaluator and the CLI to log through one API while
// the backend (zerolog in production, an in-memory JSON buffer in tests) can be
// swapped.
//
// Key features:
//   - slog-compatible interface
//   - domain attribute keys (quantization, colour mode, thresholds, rates)
//   - context-aware logging with field chaining
//   - test-friendly in-memory logger
//
// Example usage:
//
//	logger := log.GetLoggerWithName("naive_bayes").With(
//	    log.ModelNameKey, "BayesModel",
//	    log.QuantizationKey, 16,
//	)
//	logger.Info("Training completed",
//	    log.OperationKey, log.OperationTrain,
//	    log.SamplesKey, 40,
//	    log.PriorKey, 0.5,
//	)

package log

import (
	"context"
)

// Logger defines a structured logging interface compatible with Go's log/slog.
//
// The interface supports method chaining through the With method, allowing
// for creation of contextual loggers with pre-populated fields.
type Logger interface {
	// Debug logs a debug-level message with optional structured fields.
	//
	// Example:
	//   logger.Debug("Image absorbed",
	//       log.ImagePathKey, "data/pos/001.bmp",
	//       log.PixelsKey, 4096,
	//   )
	Debug(msg string, fields ...any)

	// Info logs an info-level message with optional structured fields.
	Info(msg string, fields ...any)

	// Warn logs a warning-level message with optional structured fields.
	// Skipped dataset entries are reported at this level.
	//
	// Example:
	//   logger.Warn("Image not found, skipping",
	//       log.ImagePathKey, path,
	//   )
	Warn(msg string, fields ...any)

	// Error logs an error-level message with optional structured fields.
	// If the first field is an error, it is attached as the "error" field and
	// its stack trace (when recorded by cockroachdb/errors) is included.
	//
	// Example:
	//   logger.Error("Failed to open training list",
	//       err,
	//       log.DatasetPathKey, "train_pos.txt",
	//   )
	Error(msg string, fields ...any)

	// With returns a new Logger with the given fields pre-populated.
	With(fields ...any) Logger

	// Enabled reports whether the logger emits log records at the given level.
	// Use it to skip building expensive fields.
	Enabled(ctx context.Context, level Level) bool
}

// Level represents a logging level, compatible with slog.Level.
type Level int

// Standard logging levels, values are compatible with slog.Level.
const (
	LevelDebug Level = -4 // Detailed diagnostic information
	LevelInfo  Level = 0  // General operational information
	LevelWarn  Level = 4  // Warning conditions
	LevelError Level = 8  // Error conditions
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

// LoggerProvider defines an interface for creating and configuring loggers.
type LoggerProvider interface {
	// GetLogger returns the default logger instance.
	GetLogger() Logger

	// GetLoggerWithName returns a logger with a specific name/component identifier.
	GetLoggerWithName(name string) Logger

	// SetLevel sets the minimum log level for all loggers created by this provider.
	SetLevel(level Level)
}
