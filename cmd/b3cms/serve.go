package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"b3cms/internal/handlers"
	"b3cms/internal/middleware"
	"b3cms/internal/router"
)

func serveCmd() *cobra.Command {
	var (
		skipMigrate bool
		publishTick time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}
			logger.Info("configuration loaded",
				"env", cfg.Env,
				"addr", cfg.Addr(),
				"store", cfg.StoreBackend,
			)

			a, err := newApp(cfg, logger, !skipMigrate)
			if err != nil {
				return err
			}
			defer func() {
				if err := a.close(); err != nil {
					logger.Error("shutdown cleanup failed", "error", err)
				}
			}()

			reg := prometheus.NewRegistry()
			reg.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)

			var limiter *middleware.RateLimiter
			if cfg.RateLimit.Requests > 0 {
				var opts []middleware.RateLimitOption
				if cfg.RateLimit.TrustProxy {
					opts = append(opts, middleware.WithTrustedProxy())
				}
				limiter = middleware.NewRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window, opts...)
				defer limiter.Stop()
			}

			r := router.New(router.Deps{
				Content:        handlers.NewContent(a.content),
				Category:       handlers.NewCategory(a.category),
				Health:         handlers.NewHealth(version, a.checks),
				Registry:       reg,
				CounterLimiter: limiter,
			})

			srv := &http.Server{
				Addr:              cfg.Addr(),
				Handler:           r,
				ReadHeaderTimeout: 5 * time.Second,
				ReadTimeout:       10 * time.Second,
				WriteTimeout:      30 * time.Second,
				IdleTimeout:       120 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if publishTick > 0 {
				go runPublisher(ctx, a, logger, publishTick)
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Info("server starting", "addr", srv.Addr)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
				logger.Info("shutdown signal received")
			}

			// Give active requests up to 30 seconds to complete.
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				return err
			}
			logger.Info("server stopped gracefully")
			return nil
		},
	}

	cmd.Flags().BoolVar(&skipMigrate, "skip-migrate", false, "do not apply pending migrations on startup")
	cmd.Flags().DurationVar(&publishTick, "publish-interval", time.Minute, "how often to publish due scheduled content (0 disables)")
	return cmd
}

// runPublisher publishes due scheduled content every tick until ctx ends.
func runPublisher(ctx context.Context, a *app, logger *slog.Logger, tick time.Duration) {
	t := time.NewTicker(tick)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			n, err := a.content.PublishDue(ctx)
			if err != nil {
				logger.Error("scheduled publishing failed", "error", err, "published", n)
				continue
			}
			if n > 0 {
				logger.Info("scheduled content published", "count", n)
			}
		}
	}
}
