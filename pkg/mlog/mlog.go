// Package mlog provides structured logging for ML-KEM tooling. It
// wraps Go's log/slog with a "module" convenience for per-subsystem
// child loggers.
//
// Call sites in this repository log only public material: algorithm
// name, parameter set, key/ciphertext digests (via kdf.H), byte
// lengths, and elapsed time. Decapsulation keys, shared secrets, and
// intermediate polynomials must never be passed to a Logger method.
package mlog

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with an mlkem-specific "module" convenience.
type Logger struct {
	inner *slog.Logger
}

var defaultLogger *Logger

func init() {
	defaultLogger = New(LevelInfo)
}

// Operation names one of the four ML-KEM algorithms cmd/mlkemctl
// exposes as a subcommand; ForOperation tags a Logger with it so log
// lines can be filtered by algorithm across a run that exercises more
// than one.
type Operation string

// The four top-level ML-KEM operations logged by cmd/mlkemctl.
const (
	OpKeyGen   Operation = "keygen"
	OpEncaps   Operation = "encaps"
	OpDecaps   Operation = "decaps"
	OpValidate Operation = "validate"
)

// New creates a Logger that writes JSON to stderr at the given level.
func New(level Level) *Logger {
	h := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level.slogLevel(),
	})
	return &Logger{inner: slog.New(h)}
}

// NewWithHandler creates a Logger backed by the supplied slog.Handler,
// useful for tests or for writing to a custom destination.
func NewWithHandler(h slog.Handler) *Logger {
	return &Logger{inner: slog.New(h)}
}

// SetDefault replaces the package-level default logger.
func SetDefault(l *Logger) {
	if l != nil {
		defaultLogger = l
	}
}

// Default returns the current package-level default logger.
func Default() *Logger {
	return defaultLogger
}

// Module returns a child logger with an additional "module" attribute,
// e.g. "keygen", "encaps", "decaps", "cli.keygen".
func (l *Logger) Module(name string) *Logger {
	return &Logger{inner: l.inner.With("module", name)}
}

// ForOperation returns a child logger tagged with one of the four
// ML-KEM operations, optionally qualified by a caller-supplied prefix
// (ForOperation("cli", OpKeyGen) yields module "cli.keygen", the
// naming cmd/mlkemctl's subcommands use).
func (l *Logger) ForOperation(prefix string, op Operation) *Logger {
	name := string(op)
	if prefix != "" {
		name = prefix + "." + name
	}
	return l.Module(name)
}

// With returns a child logger with additional key-value context.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{inner: l.inner.With(args...)}
}

// log dispatches msg to the underlying slog.Logger at level; the four
// severity methods below are thin wrappers over it so they can't drift
// from one another.
func (l *Logger) log(level slog.Level, msg string, args ...any) {
	l.inner.Log(context.Background(), level, msg, args...)
}

// Debug logs at LevelDebug.
func (l *Logger) Debug(msg string, args ...any) { l.log(slog.LevelDebug, msg, args...) }

// Info logs at LevelInfo.
func (l *Logger) Info(msg string, args ...any) { l.log(slog.LevelInfo, msg, args...) }

// Warn logs at LevelWarn.
func (l *Logger) Warn(msg string, args ...any) { l.log(slog.LevelWarn, msg, args...) }

// Error logs at LevelError.
func (l *Logger) Error(msg string, args ...any) { l.log(slog.LevelError, msg, args...) }

// Debug logs at LevelDebug using the default logger.
func Debug(msg string, args ...any) { defaultLogger.Debug(msg, args...) }

// Info logs at LevelInfo using the default logger.
func Info(msg string, args ...any) { defaultLogger.Info(msg, args...) }

// Warn logs at LevelWarn using the default logger.
func Warn(msg string, args ...any) { defaultLogger.Warn(msg, args...) }

// Error logs at LevelError using the default logger.
func Error(msg string, args ...any) { defaultLogger.Error(msg, args...) }
