package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpAdapter "github.com/aretw0/planner/internal/adapters/http"
	"github.com/aretw0/planner/internal/config"
	"github.com/aretw0/planner/internal/presentation/tui"
	"github.com/aretw0/planner/internal/samples"
	"github.com/aretw0/planner/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Serves the built-in samples over a JSON API and exposes Prometheus metrics on /metrics.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runServe(cmd); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func runServe(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if cmd.Flags().Changed("port") {
		port, _ := cmd.Flags().GetString("port")
		cfg.Server.Addr = ":" + port
	}
	logger := newLogger(cfg)

	stores, err := config.OpenStores(cfg.Store, logger)
	if err != nil {
		return fmt.Errorf("failed to open node store: %w", err)
	}
	defer stores.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	handler := httpAdapter.NewHandler(&httpAdapter.Server{
		Samples:  samples.Default(),
		Config:   cfg,
		Stores:   stores.Factory(),
		Metrics:  observability.NewMetrics(reg),
		Gatherer: reg,
		Logger:   logger,
	})

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: handler,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)

	go func() {
		if tui.IsTerminal(os.Stdout) {
			tui.PrintBanner(os.Stdout)
		}
		logger.Info("starting planner server", "addr", srv.Addr, "store", stores.Kind())
		serverErrors <- srv.ListenAndServe()
	}()

	// Channel to listen for interrupt or terminate signals.
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Blocking main and waiting for shutdown.
	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info("shutting down", "signal", sig.String())

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		// Asking listener to shut down and shed load.
		if err := srv.Shutdown(ctx); err != nil {
			logger.Warn("graceful shutdown did not complete", "timeout", cfg.Server.ShutdownTimeout, "error", err)
			if err := srv.Close(); err != nil {
				return fmt.Errorf("failed to close server: %w", err)
			}
		}
		logger.Info("planner server stopped gracefully")
	}
	return nil
}

func init() {
	rootCmd.AddCommand(serveCmd)
	addSearchFlags(serveCmd)
	serveCmd.Flags().StringP("port", "p", "", "Port to listen on (overrides server.addr)")
}
