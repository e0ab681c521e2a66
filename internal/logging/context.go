package logging

import (
	"context"

	"github.com/charmbracelet/log"
)

// ctxKey is unexported so only this package can install loggers.
type ctxKey struct{}

// FromContext returns the logger carried by ctx, falling back to the package
// default. Hosts that embed the filter attach their own logger with
// WithLogger; pass-scoped derivations such as the runner's pass ordinal
// travel the same way.
func FromContext(ctx context.Context) *log.Logger {
	if ctx == nil {
		return Default()
	}
	if logger, ok := ctx.Value(ctxKey{}).(*log.Logger); ok && logger != nil {
		return logger
	}
	return Default()
}

// WithLogger returns a context carrying logger.
func WithLogger(ctx context.Context, logger *log.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxKey{}, logger)
}
