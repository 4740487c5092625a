// Package ctxlog carries a Logger on a context.
package ctxlog

import (
	"context"

	"github.com/micromdm/nanoinv/log"
)

type loggerKey struct{}

// NewContext returns a copy of ctx that carries logger.
func NewContext(ctx context.Context, logger log.Logger) context.Context {
	if logger == nil {
		return ctx
	}
	return context.WithValue(ctx, loggerKey{}, logger)
}

// Logger returns the logger stored on ctx or fallback if none is present.
func Logger(ctx context.Context, fallback log.Logger) log.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(loggerKey{}).(log.Logger); ok {
			return logger
		}
	}
	if fallback == nil {
		return log.NopLogger
	}
	return fallback
}
