// Package logger centralises zap construction and request-scoped logging
// for the API.
package logger

import (
	"context"
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/billcraft/printgen/internal/config"
)

type ctxKey struct{}

// New builds a production zap logger at the named level.
func New(level string) (*zap.Logger, error) {
	parsed, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("logger: parse level %q: %w", level, err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(parsed)
	log, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("logger: build: %w", err)
	}
	return log, nil
}

// WithContext stores log on ctx for request-scoped retrieval.
func WithContext(ctx context.Context, log *zap.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

// FromContext returns the request-scoped logger, falling back to the
// process-global logger.
func FromContext(ctx context.Context) *zap.Logger {
	if ctx != nil {
		if log, ok := ctx.Value(ctxKey{}).(*zap.Logger); ok && log != nil {
			return log
		}
	}
	return zap.L()
}

// Module provides the zap logger and installs it as the global.
var Module = fx.Module("logger",
	fx.Provide(func(cfg *config.Config) (*zap.Logger, error) {
		log, err := New(cfg.Log.Level)
		if err != nil {
			return nil, err
		}
		zap.ReplaceGlobals(log)
		return log, nil
	}),
)
