package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/fire-behaviour-advisory/internal/adapter/httpadapter"
	kafkaadapter "github.com/couchcryptid/fire-behaviour-advisory/internal/adapter/kafka"
	"github.com/couchcryptid/fire-behaviour-advisory/internal/config"
	"github.com/couchcryptid/fire-behaviour-advisory/internal/diurnal"
	"github.com/couchcryptid/fire-behaviour-advisory/internal/firebehaviour"
	"github.com/couchcryptid/fire-behaviour-advisory/internal/observability"
	"github.com/couchcryptid/fire-behaviour-advisory/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	table, err := diurnal.LoadFiles(cfg.DiurnalAfternoonTable, cfg.DiurnalMorningTable)
	if err != nil {
		logger.Error("failed to load diurnal tables", "error", err)
		os.Exit(1)
	}
	logger.Info("diurnal tables loaded",
		"afternoon", tableSource(cfg.DiurnalAfternoonTable),
		"morning", tableSource(cfg.DiurnalMorningTable),
		"station_timezone", cfg.StationLocation.String(),
	)

	calc := firebehaviour.NewCalculator(table, firebehaviour.CFFDRS{}, cfg.StationLocation, logger, metrics)

	reader := kafkaadapter.NewReader(cfg, logger)
	writer := kafkaadapter.NewWriter(cfg, logger)
	transformer := pipeline.NewTransformer(calc, logger)

	p := pipeline.New(reader, transformer, writer, logger, metrics, cfg.BatchSize)

	srv := httpadapter.NewServer(cfg.HTTPAddr, logger, p)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	go func() {
		if err := p.Run(ctx); err != nil {
			logger.Error("pipeline error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if err := reader.Close(); err != nil {
		logger.Error("kafka reader close error", "error", err)
	}
	if err := writer.Close(); err != nil {
		logger.Error("kafka writer close error", "error", err)
	}

	logger.Info("shutdown complete")
}

func tableSource(path string) string {
	if path == "" {
		return "bundled"
	}
	return path
}
