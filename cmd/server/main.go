// Command server runs the giftwish wish-list backend.
//
// Configuration is layered: built-in defaults, an optional YAML file
// (-config flag, GIFTWISH_CONFIG, ./config.yaml, /etc/giftwish/config.yaml),
// then GIFTWISH_* environment overrides. The token signing secret is
// required; see pkg/config for the full surface.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/giftwish/giftwish/pkg/auth/token"
	"github.com/giftwish/giftwish/pkg/config"
	"github.com/giftwish/giftwish/pkg/identity"
	"github.com/giftwish/giftwish/pkg/observability"
	"github.com/giftwish/giftwish/pkg/people"
	"github.com/giftwish/giftwish/pkg/storage"
	"github.com/giftwish/giftwish/pkg/storage/memory"
	"github.com/giftwish/giftwish/pkg/storage/postgres"
	"github.com/giftwish/giftwish/pkg/transport"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Storage. Connectivity failure at startup is fatal; the process never
	// serves degraded.
	var store storage.Store
	switch cfg.Storage.Type {
	case "postgres":
		pg, err := postgres.New(ctx, postgres.Config{
			DSN:            cfg.Storage.Postgres.DSN,
			MaxConns:       cfg.Storage.Postgres.MaxConns,
			MigrateOnStart: cfg.Storage.Postgres.MigrateOnStart,
		})
		if err != nil {
			return fmt.Errorf("connecting to postgres: %w", err)
		}
		defer pg.Close()
		store = pg
		slog.Info("storage enabled", "type", "postgres")
	default:
		store = memory.New()
		slog.Info("storage enabled", "type", "memory")
	}

	tokens := token.New(cfg.Auth.SigningSecret)
	identitySvc := identity.New(store, cfg.Auth.BcryptCost)
	peopleSvc := people.New(store, store)

	deps := transport.RouterDeps{
		Identity: identitySvc,
		People:   peopleSvc,
		Tokens:   tokens,
		Store:    store,
		APIKey:   cfg.Auth.APIKey,
	}

	if cfg.Observability.Metrics.Enabled {
		registry := prometheus.NewRegistry()
		observability.Register(registry)
		deps.MetricsHandler = observability.Handler(registry)
		deps.MetricsPath = cfg.Observability.Metrics.Path
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      transport.NewRouter(deps),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("shutting down gracefully")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}
