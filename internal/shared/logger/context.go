package logger

import (
	"context"
	"log/slog"
)

type contextKey struct{}

// WithLogger stores l as the request-scoped logger
func WithLogger(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// FromContext falls back to slog.Default outside a request
func FromContext(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(contextKey{}).(*slog.Logger); ok {
		return l
	}
	return slog.Default()
}

// With binds extra attributes to the logger carried by ctx
func With(ctx context.Context, args ...any) context.Context {
	return WithLogger(ctx, FromContext(ctx).With(args...))
}
