package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonboulle/clockwork"
	"github.com/nimbusworks/wxmodel/internal/adapter/httpapi"
	kafkaadapter "github.com/nimbusworks/wxmodel/internal/adapter/kafka"
	"github.com/nimbusworks/wxmodel/internal/adapter/nws"
	"github.com/nimbusworks/wxmodel/internal/adapter/wyoming"
	"github.com/nimbusworks/wxmodel/internal/alerts"
	"github.com/nimbusworks/wxmodel/internal/cache"
	"github.com/nimbusworks/wxmodel/internal/config"
	"github.com/nimbusworks/wxmodel/internal/observability"
	"github.com/nimbusworks/wxmodel/internal/sounding"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()
	clock := clockwork.NewRealClock()

	nwsCache := cache.New[json.RawMessage](cfg.NWSCacheTTL, cfg.NWSCacheMaxEntries, clock)
	weather := nws.NewClient(cfg, nwsCache, logger, metrics)

	// 30 stations at two launch hours each bounds the sounding cache.
	soundingCache := cache.New[sounding.Sounding](cfg.SoundingCacheTTL, 64, clock)
	observations := wyoming.NewClient(cfg, clock, logger, metrics)
	soundings := sounding.NewService(observations, soundingCache, logger, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Alert stream (feature-flagged via ALERT_STREAM_ENABLED / ALERT_AREA).
	var ready httpapi.ReadinessChecker = httpapi.ReadyAlways{}
	var writer *kafkaadapter.Writer
	if cfg.AlertStreamEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger)
		watcher := alerts.NewWatcher(weather, writer, cfg, clock, logger, metrics)
		ready = watcher
		logger.Info("alert stream enabled", "area", cfg.AlertArea, "topic", cfg.KafkaAlertTopic, "poll_interval", cfg.AlertPollInterval)

		go func() {
			if err := watcher.Run(ctx); err != nil {
				logger.Error("alert watcher error", "error", err)
			}
		}()
	} else {
		logger.Info("alert stream disabled")
	}

	srv := httpapi.NewServer(cfg, weather, soundings, ready, logger, metrics)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
