package cli

import (
	"context"
	"flag"
	"fmt"
	"net"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/modscope/modscope/pkg/api"
	"github.com/modscope/modscope/pkg/config"
	"github.com/modscope/modscope/pkg/httputil"
	"github.com/modscope/modscope/pkg/observability"
	"github.com/modscope/modscope/pkg/storage"
)

func newServeCommand() *Command {
	cmd := &Command{
		Name:        "serve",
		Description: "Run the HTTP server mode",
		Flags:       flag.NewFlagSet("serve", flag.ExitOnError),
		Run:         runServe,
	}

	cmd.Flags.String("path", "", "Project root directory (required)")

	return cmd
}

func runServe(args []string) error {
	flags := flag.NewFlagSet("serve", flag.ExitOnError)
	path := flags.String("path", "", "Project root directory (required)")

	if err := flags.Parse(args); err != nil {
		return err
	}
	if *path == "" {
		return fmt.Errorf("--path is required")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := observability.NewLogger(cfg.Observability.LogLevel)
	ctx := context.Background()

	providers, err := observability.InitOTel(ctx, observability.OTelConfig{
		Enabled:        cfg.Observability.OTelEnabled,
		Endpoint:       cfg.Observability.OTelEndpoint,
		ServiceName:    cfg.Observability.OTelServiceName,
		ServiceVersion: cfg.Observability.OTelServiceVersion,
		Insecure:       cfg.Observability.OTelInsecure,
	}, logger)
	if err != nil {
		return err
	}

	store, err := storage.NewStorage(cfg.Storage)
	if err != nil {
		return err
	}

	project, err := config.LoadProject(*path)
	if err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	metrics := observability.NewMetrics(registry)

	server, err := api.NewServer(api.Options{
		ProjectRoot:      *path,
		Scan:             project.ScanOptions(),
		Priorities:       priorityTable(project),
		CacheSize:        cfg.Server.CacheSize,
		CacheTTL:         cfg.Server.CacheTTL,
		RescanCron:       cfg.Server.RescanCron,
		WatchEnabled:     cfg.Server.WatchEnabled,
		SnapshotOnRescan: cfg.Server.SnapshotOnRescan,
	}, store, metrics, logger)
	if err != nil {
		return err
	}

	if err := server.Rescan(ctx, "startup"); err != nil {
		return err
	}

	serveCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	if err := server.StartBackground(serveCtx); err != nil {
		return err
	}

	if cfg.Observability.MetricsEnabled {
		server.Router().Handle("/metrics", observability.MetricsHandler(registry)).Methods("GET")
	}

	handler := httputil.LoggingMiddleware(logger)(server)
	httpServer := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.WithField("addr", httpServer.Addr).Info("server listening")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("server failed")
		}
	}()

	shutdown := observability.NewShutdownManager(logger, httpServer, cfg.Server.ShutdownTimeout)
	shutdown.RegisterShutdownFunc(func(ctx context.Context) error {
		cancel()
		return observability.ShutdownOTel(ctx, providers, logger)
	})
	return shutdown.WaitForShutdown()
}
