package logging

import (
	"context"
	"io"
	"log/slog"

	"boj-notion/internal/domain/ports"
)

// SLogger is an adapter around slog.Logger implementing ports.Logger.
// A nil slog.Logger discards everything.
type SLogger struct {
	logger *slog.Logger
}

var _ ports.Logger = (*SLogger)(nil)

// New creates a new SLogger.
func New(logger *slog.Logger) *SLogger {
	return &SLogger{logger: logger}
}

// NewJSON builds the JSON slog logger used by the service.
func NewJSON(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

// Info logs an informational message.
func (l *SLogger) Info(ctx context.Context, msg string, args ...any) {
	if l.logger == nil {
		return
	}
	l.logger.Log(ctx, slog.LevelInfo, msg, args...)
}

// Error logs an error message.
func (l *SLogger) Error(ctx context.Context, msg string, args ...any) {
	if l.logger == nil {
		return
	}
	l.logger.Log(ctx, slog.LevelError, msg, args...)
}

// With returns a child logger carrying args.
func (l *SLogger) With(args ...any) ports.Logger {
	if l.logger == nil {
		return l
	}
	return &SLogger{logger: l.logger.With(args...)}
}
