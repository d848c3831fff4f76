package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pdb-explorer/internal/config"
	"pdb-explorer/internal/infra/rcsb"
	"pdb-explorer/internal/observability/logging"
	"pdb-explorer/internal/observability/tracing"
	"pdb-explorer/internal/usecase/lookup"

	hhttp "pdb-explorer/internal/handler/http"
	hentry "pdb-explorer/internal/handler/http/entry"
	"pdb-explorer/internal/handler/http/requestid"
)

func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_PATH"), "path to YAML configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger := initLogger(cfg.LogLevel)
	version := getVersion()

	shutdownTracing := tracing.Init("pdb-explorer-api", version)
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Error("failed to shut down tracer provider", slog.Any("error", err))
		}
	}()

	limiter := newClientRateLimiter(logger, cfg.Server)
	handler := setupServer(logger, cfg, limiter, version)
	runServer(logger, cfg.Server, handler, limiter, version)
}

// initLogger initializes the process-wide JSON logger.
func initLogger(level string) *slog.Logger {
	logger := logging.NewJSONLogger(os.Stdout, logging.ParseLevel(level))
	slog.SetDefault(logger)
	return logger
}

// getVersion returns the application version from environment or default.
func getVersion() string {
	version := os.Getenv("VERSION")
	if version == "" {
		version = "dev"
	}
	return version
}

// setupServer wires the RCSB client, the lookup service and the routes, and
// returns the handler wrapped in the middleware chain.
func setupServer(logger *slog.Logger, cfg config.AppConfig, limiter *hhttp.ClientRateLimiter, version string) http.Handler {
	client := rcsb.NewClient(cfg.RCSB)
	svc := lookup.NewService(client, client, client, lookup.Config{Parallelism: cfg.RCSB.Parallelism})

	mux := http.NewServeMux()
	hentry.Register(mux, svc)
	mux.Handle("GET /health", &hhttp.HealthHandler{
		Version: version,
		Circuits: []hhttp.CircuitCheck{
			{Circuit: client.DataCircuit(), Critical: true},
			{Circuit: client.EntityCircuit()},
			{Circuit: client.FASTACircuit()},
		},
	})
	mux.Handle("GET /live", &hhttp.LiveHandler{})
	mux.Handle("GET /metrics", hhttp.MetricsHandler())

	logger.Info("routes registered",
		slog.String("entry_base_url", cfg.RCSB.EntryBaseURL),
		slog.String("fasta_base_url", cfg.RCSB.FASTABaseURL),
		slog.Int("parallelism", cfg.RCSB.Parallelism))

	// First listed is outermost: the request id must exist before the
	// logger and tracer read it, and Recover sits closest to the handlers.
	mws := []hhttp.Middleware{
		requestid.Middleware,
		tracing.Middleware,
		hhttp.Logging(logger),
		hhttp.MetricsMiddleware,
	}
	if limiter != nil {
		mws = append(mws, limiter.Middleware())
	}
	mws = append(mws,
		hhttp.Recover(logger),
		hhttp.RequestTimeout(cfg.Server.RequestTimeout),
	)
	return hhttp.Chain(mux, mws...)
}

// newClientRateLimiter returns nil when per-client limiting is disabled.
func newClientRateLimiter(logger *slog.Logger, cfg config.ServerConfig) *hhttp.ClientRateLimiter {
	if cfg.RateLimitRPS <= 0 {
		logger.Info("per-client rate limiting disabled")
		return nil
	}
	logger.Info("per-client rate limiting enabled",
		slog.Float64("rps", cfg.RateLimitRPS),
		slog.Int("burst", cfg.RateLimitBurst))
	return hhttp.NewClientRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, 0, 10*time.Minute)
}

// runServer starts the HTTP server and handles graceful shutdown.
func runServer(logger *slog.Logger, cfg config.ServerConfig, handler http.Handler, limiter *hhttp.ClientRateLimiter, version string) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if limiter != nil {
		go limiter.StartCleanup(ctx, time.Minute)
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout, // Prevent Slowloris attacks
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		logger.Info("server starting",
			slog.String("addr", cfg.Addr),
			slog.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	cancel()
	logger.Info("server stopped")
}
