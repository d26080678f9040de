package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// FromContext returns the logger stored in ctx. Without one, the result is
// zerolog's disabled logger, so callers never need a nil check.
func FromContext(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}

// WithContext stores logger in ctx.
func WithContext(ctx context.Context, logger zerolog.Logger) context.Context {
	return logger.WithContext(ctx)
}

// WithComponent tags every later log line from ctx with component.
func WithComponent(ctx context.Context, component string) context.Context {
	return WithContext(ctx, FromContext(ctx).With().Str("component", component).Logger())
}
