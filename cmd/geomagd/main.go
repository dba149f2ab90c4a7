package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/couchcryptid/geomag-data-etl/internal/adapter/fetch"
	httpadapter "github.com/couchcryptid/geomag-data-etl/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/geomag-data-etl/internal/adapter/kafka"
	"github.com/couchcryptid/geomag-data-etl/internal/config"
	"github.com/couchcryptid/geomag-data-etl/internal/domain"
	"github.com/couchcryptid/geomag-data-etl/internal/iaga2002"
	"github.com/couchcryptid/geomag-data-etl/internal/observability"
	"github.com/couchcryptid/geomag-data-etl/internal/pipeline"
)

// factorySource adapts the retrieval factory to the pipeline's Extractor
// interface using the configured defaults.
type factorySource struct {
	factory *iaga2002.Factory
}

func (s factorySource) Extract(ctx context.Context, start, end time.Time) (domain.Timeseries, error) {
	return s.factory.GetTimeseries(ctx, start, end, iaga2002.Request{})
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	var fetcher fetch.Fetcher
	if strings.HasPrefix(cfg.URLTemplate, "file://") {
		fetcher = fetch.NewFileFetcher()
	} else {
		fetcher = fetch.NewHTTPFetcher(cfg.FetchTimeout, cfg.FetchRateLimit, logger)
	}

	factory, err := iaga2002.NewFactory(cfg.URLTemplate, fetcher, iaga2002.Defaults{
		Observatory: cfg.Observatory,
		Channels:    cfg.Channels,
		Type:        cfg.DataType,
		Interval:    cfg.Interval,
	}, cfg.FetchConcurrency, logger)
	if err != nil {
		logger.Error("failed to build factory", "error", err)
		os.Exit(1)
	}

	writer := kafkaadapter.NewWriter(cfg, logger)

	p := pipeline.New(factorySource{factory}, writer, logger, metrics, nil,
		cfg.SyncInterval, cfg.SyncLookback)

	srv := httpadapter.NewServer(cfg.HTTPAddr, p, httpadapter.SourceInfo{
		Observatory: cfg.Observatory,
		Channels:    cfg.Channels,
		DataType:    string(cfg.DataType),
		Interval:    string(cfg.Interval),
		URLTemplate: cfg.URLTemplate,
		SinkTopic:   cfg.KafkaSinkTopic,
	}, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start sync pipeline.
	go func() {
		if err := p.Run(ctx); err != nil {
			logger.Error("sync pipeline error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if err := writer.Close(); err != nil {
		logger.Error("kafka writer close error", "error", err)
	}

	logger.Info("shutdown complete")
}
