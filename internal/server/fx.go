package server

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/billcraft/printgen/internal/config"
	"github.com/billcraft/printgen/pkg/preview"
)

// Module provides the HTTP server and starts it with the fx lifecycle.
var Module = fx.Module("server",
	fx.Provide(
		func() *preview.Orchestrator { return preview.New() },
		New,
	),
	fx.Invoke(func(lc fx.Lifecycle, shutdowner fx.Shutdowner, cfg *config.Config, srv *Server, log *zap.Logger) {
		runCtx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})

		lc.Append(fx.Hook{
			OnStart: func(context.Context) error {
				go func() {
					defer close(done)
					if err := srv.Run(runCtx, cfg.Addr); err != nil {
						log.Error("http server stopped", zap.Error(err))
						_ = shutdowner.Shutdown()
					}
				}()
				log.Info("http server listening", zap.String("addr", cfg.Addr))
				return nil
			},
			OnStop: func(ctx context.Context) error {
				cancel()
				select {
				case <-done:
				case <-ctx.Done():
				}
				return nil
			},
		})
	}),
)
