package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okian/mound/internal/adapters/http/api"
	"github.com/okian/mound/internal/adapters/statcast"
	app "github.com/okian/mound/internal/app"
	"github.com/okian/mound/internal/config"
	"github.com/okian/mound/internal/domain/model"
	"github.com/okian/mound/pkg/logger"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 120 * time.Second // similarity queries fetch upstream data
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func main() {
	// Initialize logging
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	source := statcast.NewHTTPSource(
		statcast.WithBaseURL(cfg.SavantBaseURL),
		statcast.WithTimeout(time.Duration(cfg.FetchTimeoutSec)*time.Second),
		statcast.WithPageSpan(cfg.FetchPageSpanDays),
		statcast.WithDedupeSize(cfg.DedupeSize),
	)
	resolver := statcast.NewHTTPResolver(
		statcast.WithResolverBaseURL(cfg.StatsAPIBaseURL),
	)

	svc := app.New(
		app.WithLogger(log),
		app.WithSource(source),
		app.WithResolver(resolver),
		app.WithFeatures(featureList(cfg.SimilarityFeatures)),
		app.WithNormalization(cfg.Normalize),
		app.WithDefaultTopN(cfg.DefaultTopN),
		app.WithMaxTopN(cfg.MaxTopN),
	)

	// HTTP mux and routes.
	mux := http.NewServeMux()
	apiServer := api.NewServer(svc, svc)
	apiServer.Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info(context.Background(), "shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(context.Background(), "graceful shutdown failed", logger.Error(err))
	}
}

// featureList converts configured feature names; empty input keeps the
// built-in six-feature default.
func featureList(names []string) []model.Feature {
	features := make([]model.Feature, len(names))
	for i, name := range names {
		features[i] = model.Feature(name)
	}
	return features
}
