package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aretw0/animclone"
	"github.com/aretw0/animclone/internal/presentation/tui"
	httpAdapter "github.com/aretw0/animclone/pkg/adapters/http"
	"github.com/aretw0/animclone/pkg/diagnostics"
	"github.com/aretw0/animclone/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP clone server",
		Long: `Starts animclone in server mode. POST an asset to /v1/clone to receive its copy;
metrics are exposed on /metrics.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			addr := e.cfg.Server.Addr
			if flagAddr, _ := cmd.Flags().GetString("addr"); flagAddr != "" {
				addr = flagAddr
			}

			container, closeFn, err := e.openContainer(cmd.Context())
			if err != nil {
				return err
			}
			defer func() {
				if err := closeFn(); err != nil {
					e.logger.Warn("failed to close container backend", "error", err)
				}
			}()

			registry := prometheus.NewRegistry()
			registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

			cloner := animclone.New(
				animclone.WithLogger(e.logger),
				animclone.WithBehaviours(e.behaviours()),
				animclone.WithContainer(container),
				animclone.WithDiagnostics(diagnostics.NewLogSink(e.logger)),
				animclone.WithMetrics(observability.NewMetrics(registry)),
			)

			srv := &http.Server{
				Addr: addr,
				Handler: httpAdapter.NewHandler(&httpAdapter.Server{
					Engine:   cloner,
					Codec:    e.store().Codec(),
					Gatherer: registry,
					Logger:   e.logger,
				}),
				ReadHeaderTimeout: 10 * time.Second,
			}

			tui.PrintBanner(cmd.ErrOrStderr())

			// Channel to listen for errors coming from the listener.
			serverErrors := make(chan error, 1)
			go func() {
				e.logger.Info("Starting animclone server", "addr", srv.Addr, "container", e.cfg.Container.Backend)
				serverErrors <- srv.ListenAndServe()
			}()

			shutdown := make(chan os.Signal, 1)
			signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
			defer signal.Stop(shutdown)

			select {
			case err := <-serverErrors:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err

			case sig := <-shutdown:
				e.logger.Info("Start shutdown", "signal", sig.String())

				// Give outstanding requests a deadline for completion.
				ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()

				if err := srv.Shutdown(ctx); err != nil {
					e.logger.Error("Graceful shutdown did not complete", "timeout", shutdownTimeout, "error", err)
					return srv.Close()
				}
				e.logger.Info("animclone server stopped gracefully")
				return nil
			}
		},
	}
	cmd.Flags().String("addr", "", "Address to listen on (overrides config)")
	cmd.Flags().String("container", "", "Ownership backend: memory, redis, sqlite, mysql (overrides config)")
	return cmd
}
