package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	cordova "github.com/maderarasto/cordova-jsx"
	"github.com/maderarasto/cordova-jsx/internal/config"
	"github.com/maderarasto/cordova-jsx/internal/demo"
	"github.com/maderarasto/cordova-jsx/pkg/remote"
	"github.com/maderarasto/cordova-jsx/pkg/telemetry"
)

func serveCmd(flags *globalFlags) *cobra.Command {
	var (
		addr      string
		anyOrigin bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the demo application over a websocket",
		Long: `Serve the demo application to remote clients.

Every websocket connection gets its own application instance. The
server exposes:

  • <server.path>   websocket endpoint (default /ws)
  • /metrics        Prometheus metrics
  • /healthz        liveness probe

Examples:
  cordova serve
  cordova serve --addr=127.0.0.1:9000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags.dir)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Address = addr
			}
			logger := newLogger(flags.verbose)

			var checkOrigin func(*http.Request) bool
			if anyOrigin {
				checkOrigin = func(*http.Request) bool { return true }
			}

			srv := &http.Server{
				Addr:              cfg.Server.Address,
				Handler:           newRouter(cfg, prometheus.NewRegistry(), checkOrigin, logger),
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errc := make(chan error, 1)
			go func() {
				logger.Info("serving", "addr", srv.Addr, "path", cfg.Server.Path)
				errc <- srv.ListenAndServe()
			}()

			select {
			case err := <-errc:
				return err
			case <-ctx.Done():
			}

			logger.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (default from cordova.json)")
	cmd.Flags().BoolVar(&anyOrigin, "any-origin", false, "Accept websocket connections from any origin")

	return cmd
}

// newRouter builds the serve routes. Metrics are registered on reg.
func newRouter(cfg *config.Config, reg *prometheus.Registry, checkOrigin func(*http.Request) bool, logger *slog.Logger) http.Handler {
	var observer cordova.Observer
	if cfg.Metrics.Enabled {
		observer = telemetry.NewRecorder(
			telemetry.WithNamespace(cfg.Metrics.Namespace),
			telemetry.WithRegistry(reg),
		)
	}

	start := func(ctx context.Context, s *remote.Surface) (func(), error) {
		app, err := cordova.New(cordova.Config{
			Render:    demo.Render,
			Surface:   s,
			Container: s.Root(),
			Namespace: cfg.Namespace,
			Logger:    logger,
			Observer:  observer,
		})
		if err != nil {
			return nil, err
		}
		if err := app.Mount(ctx); err != nil {
			return nil, err
		}
		stop := func() {
			if err := app.Unmount(); err != nil {
				logger.Warn("unmount on disconnect failed", "error", err)
			}
		}
		return stop, nil
	}

	r := chi.NewRouter()
	r.Handle(cfg.Server.Path, remote.NewHandler(start, remote.DefaultSessionConfig(), checkOrigin, logger))
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("ok"))
	})
	if cfg.Metrics.Enabled {
		r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	}
	return r
}
