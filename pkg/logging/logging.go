// Package logging provides a small, context-aware logging facade.
//
// The default implementation delegates to a zap.SugaredLogger, so key/value
// pairs are passed the same way as to zap's "w" methods:
//
//	logger := logging.New(nil) // binds to zap.L()
//	logger.Info(ctx, "exchange finished", "agreed", true)
//
// Private scalars must never be logged; use Redacted in their place.
package logging

import (
	"context"

	"go.uber.org/zap"
)

const redactedPlaceholder = "[redacted]"

// Logger defines the subset of logging used by the curve packages. It is kept
// small so tests and applications can supply their own implementation.
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)
	With(args ...any) Logger
}

// New returns a Logger backed by the provided zap.Logger. Passing nil binds to
// zap.L(), which is a no-op logger until the application replaces it.
func New(logger *zap.Logger) Logger {
	if logger == nil {
		logger = zap.L()
	}
	return &zapLogger{s: logger.WithOptions(zap.AddCallerSkip(1)).Sugar()}
}

// Nop returns a Logger that discards everything.
func Nop() Logger {
	return &zapLogger{s: zap.NewNop().Sugar()}
}

type zapLogger struct {
	s *zap.SugaredLogger
}

func (l *zapLogger) Debug(_ context.Context, msg string, args ...any) { l.s.Debugw(msg, args...) }
func (l *zapLogger) Info(_ context.Context, msg string, args ...any)  { l.s.Infow(msg, args...) }
func (l *zapLogger) Warn(_ context.Context, msg string, args ...any)  { l.s.Warnw(msg, args...) }
func (l *zapLogger) Error(_ context.Context, msg string, args ...any) { l.s.Errorw(msg, args...) }

func (l *zapLogger) With(args ...any) Logger {
	return &zapLogger{s: l.s.With(args...)}
}

// Redacted marks a field whose value was intentionally left out of the log.
func Redacted(key string) zap.Field {
	return zap.String(key, redactedPlaceholder)
}

// Placeholder returns the string logged in place of redacted values.
func Placeholder() string {
	return redactedPlaceholder
}
