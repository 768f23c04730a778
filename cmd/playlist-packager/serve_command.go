package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ytget/playlist-packager/internal/logging"
	"github.com/ytget/playlist-packager/internal/platform"
	"github.com/ytget/playlist-packager/internal/server"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the web form and download endpoint",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger := logging.New(cfg.AppEnv, cfg.LogLevel)

			for _, status := range checkDependencies(cfg) {
				if !status.Available && !status.Optional {
					logger.Warn().Str("dependency", status.Name).Str("detail", status.Detail).
						Msg("required tool missing, every job will fail until it is installed")
				}
			}

			pipeline := newPipeline(cfg, logger)
			handler := server.NewHandler(pipeline, server.HandlerOptions{
				DefaultConcurrency: cfg.DefaultConcurrency,
				CeilingBytes:       pipeline.Ceiling(),
				CheckDeps:          func() []platform.Status { return checkDependencies(cfg) },
			}, logger)
			srv := server.NewHTTPServer(cfg, server.NewRouter(handler, cfg.MaxConcurrentJobs, logger))

			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				logger.Info().Str("addr", srv.Addr()).Str("version", version).Msg("listening")
				errCh <- srv.Start()
			}()

			select {
			case err := <-errCh:
				return err
			case <-runCtx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error().Err(err).Msg("shutdown deadline reached, running jobs were cancelled")
				return err
			}
			logger.Info().Msg("server stopped")
			return nil
		},
	}
}
