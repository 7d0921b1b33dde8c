package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"eudash.dev/internal/app"
	"eudash.dev/internal/appconf"
	"eudash.dev/internal/catalog"
	"eudash.dev/internal/dataset"
	"eudash.dev/internal/logging"
	"eudash.dev/internal/restapi"
)

func main() {
	if err := appconf.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "loading .env: %v\n", err)
		os.Exit(1)
	}

	cfg, err := parseConfig(os.Args[1:], os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger := logging.NewStructuredLogger(os.Stdout, level)

	application, err := buildApplication(context.Background(), cfg, logger)
	if err != nil {
		os.Exit(1)
	}

	if err := run(application, logger); err != nil {
		logging.LogError(logger, "server stopped", err)
		os.Exit(1)
	}
}

// run serves the application until shutdown. The API's background work is
// released before run returns, on both the clean and the error path.
func run(application *app.Application, logger *slog.Logger) error {
	api := restapi.NewRestAPI(application)
	defer api.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", application.Config.Port),
		Handler:      api.Handler(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	return serve(srv, logger, application.Config)
}

// parseConfig reads command-line flags. Flag defaults come from the
// environment so a .env file or the process environment can configure the
// server without flags.
func parseConfig(args []string, output io.Writer) (appconf.Config, error) {
	var cfg appconf.Config
	var env string

	fs := flag.NewFlagSet("api", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.IntVar(&cfg.Port, "port", appconf.IntEnv("EUDASH_PORT", appconf.DefaultPort), "API server port")
	fs.StringVar(&env, "env", appconf.StringEnv("EUDASH_ENV", "development"), "Environment (development|test|production)")
	fs.StringVar(&cfg.SourceURL, "source", appconf.StringEnv("EUDASH_SOURCE", appconf.DefaultSourceURL), "World Bank API base URL or path to an observations CSV file")
	fs.IntVar(&cfg.RateLimit, "rate-limit", appconf.IntEnv("EUDASH_RATE_LIMIT", appconf.DefaultRateLimit), "API requests per second per client (-1 disables limiting)")
	fs.DurationVar(&cfg.FetchTimeout, "fetch-timeout", appconf.DurationEnv("EUDASH_FETCH_TIMEOUT", appconf.DefaultFetchTimeout), "Timeout for loading the indicator data")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Enable debug logging")
	fs.BoolVar(&cfg.TrustProxy, "trust-proxy", appconf.BoolEnv("EUDASH_TRUST_PROXY", false), "Rate limit on X-Forwarded-For (only behind a proxy that sets it)")

	if err := fs.Parse(args); err != nil {
		return appconf.Config{}, err
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return appconf.Config{}, fmt.Errorf("invalid port %d", cfg.Port)
	}
	if cfg.FetchTimeout <= 0 {
		return appconf.Config{}, fmt.Errorf("fetch timeout must be positive, got %s", cfg.FetchTimeout)
	}
	cfg.Env = appconf.EnvFlagToEnvironment(env)

	return cfg, nil
}

// buildApplication loads the snapshot once. Load failures are logged here and
// the server never starts without data.
func buildApplication(ctx context.Context, cfg appconf.Config, logger *slog.Logger) (*app.Application, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.FetchTimeout)
	defer cancel()

	cat := catalog.Default()
	src := dataset.NewSource(cfg.SourceURL, cfg.FetchTimeout, logger)

	snapshot, err := dataset.Load(ctx, src, cat, logger)
	if err != nil {
		return nil, logging.FatalError(logger, "failed to load indicator data", err)
	}
	snapshot.LogStatistics(logger)

	return &app.Application{
		Config:   cfg,
		Logger:   logger,
		Catalog:  cat,
		Snapshot: snapshot,
	}, nil
}

// serve runs the server until it fails or the process receives SIGINT or
// SIGTERM, then drains in-flight requests.
func serve(srv *http.Server, logger *slog.Logger, cfg appconf.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logging.LogOperation(logger, "starting_server",
			slog.String("addr", srv.Addr),
			slog.String("env", cfg.Env.String()))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logging.LogOperation(logger, "shutting_down_server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
