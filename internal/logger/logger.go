package logger

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// Logger wraps slog with package/function scoping so call sites can do
// logger.New("pkg").Function("DoThing").Err("failed", err, "key", value)
// and get both a structured log line and a returnable error.
type Logger struct {
	log *slog.Logger
}

func init() {
	level := slog.LevelInfo
	if strings.EqualFold(os.Getenv("LOG_LEVEL"), "debug") {
		level = slog.LevelDebug
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

func New(pkg string) Logger {
	return Logger{log: slog.Default().With("package", pkg)}
}

func (l Logger) Function(name string) Logger {
	return Logger{log: l.log.With("function", name)}
}

func (l Logger) File(name string) Logger {
	return Logger{log: l.log.With("file", name)}
}

func (l Logger) With(args ...any) Logger {
	return Logger{log: l.log.With(args...)}
}

func (l Logger) Debug(msg string, args ...any) {
	l.log.Debug(msg, args...)
}

func (l Logger) Info(msg string, args ...any) {
	l.log.Info(msg, args...)
}

func (l Logger) Warn(msg string, args ...any) {
	l.log.Warn(msg, args...)
}

// Err logs the error with context and returns a wrapped error for the caller
// to propagate.
func (l Logger) Err(msg string, err error, args ...any) error {
	l.log.Error(msg, append(args, "error", err)...)
	return fmt.Errorf("%s: %w", msg, err)
}

// Error logs and returns a new error when there is no underlying error value.
func (l Logger) Error(msg string, args ...any) error {
	l.log.Error(msg, args...)
	return errors.New(msg)
}

// ErrMsg is Error without structured context.
func (l Logger) ErrMsg(msg string) error {
	l.log.Error(msg)
	return errors.New(msg)
}

// Er logs an error without returning one, for paths that must continue.
func (l Logger) Er(msg string, err error, args ...any) {
	l.log.Error(msg, append(args, "error", err)...)
}

func (l Logger) ErMsg(msg string) {
	l.log.Error(msg)
}
