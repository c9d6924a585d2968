package alerts

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/nimbusworks/wxmodel/internal/config"
	"github.com/nimbusworks/wxmodel/internal/observability"
)

// Source fetches the active alert set for an area.
type Source interface {
	AlertsActiveByArea(ctx context.Context, area string) (json.RawMessage, error)
}

// Publisher delivers newly seen alerts downstream.
type Publisher interface {
	PublishAlerts(ctx context.Context, batch []Alert) error
}

// Watcher polls the active alert feed on an interval and publishes each
// alert once. Alerts drop out of the dedupe set when they expire, so a
// stale alert the feed keeps returning is republished at most once per
// lifetime.
type Watcher struct {
	source    Source
	publisher Publisher
	area      string
	interval  time.Duration
	clock     clockwork.Clock
	logger    *slog.Logger
	metrics   *observability.Metrics

	ready atomic.Bool
	seen  map[string]time.Time
}

// NewWatcher creates a Watcher for the configured alert area.
func NewWatcher(source Source, publisher Publisher, cfg *config.Config, clock clockwork.Clock, logger *slog.Logger, metrics *observability.Metrics) *Watcher {
	return &Watcher{
		source:    source,
		publisher: publisher,
		area:      cfg.AlertArea,
		interval:  cfg.AlertPollInterval,
		clock:     clock,
		logger:    logger,
		metrics:   metrics,
		seen:      make(map[string]time.Time),
	}
}

// CheckReadiness returns nil once the watcher has completed a poll.
func (w *Watcher) CheckReadiness(_ context.Context) error {
	if !w.ready.Load() {
		return errors.New("alert watcher has not completed a poll yet")
	}
	return nil
}

// Run polls immediately, then on every tick until the context is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	w.logger.Info("alert watcher started", "area", w.area, "interval", w.interval)
	w.metrics.WatcherRunning.Set(1)
	defer w.metrics.WatcherRunning.Set(0)

	ticker := w.clock.NewTicker(w.interval)
	defer ticker.Stop()

	w.poll(ctx)
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("alert watcher stopping", "reason", ctx.Err())
			return nil
		case <-ticker.Chan():
			w.poll(ctx)
		}
	}
}

func (w *Watcher) poll(ctx context.Context) {
	raw, err := w.source.AlertsActiveByArea(ctx, w.area)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		w.metrics.AlertPolls.WithLabelValues("error").Inc()
		w.logger.Error("alert poll failed", "area", w.area, "error", err)
		return
	}

	active, err := ParseActive(raw)
	if err != nil {
		w.metrics.AlertPolls.WithLabelValues("error").Inc()
		w.logger.Error("alert poll failed", "area", w.area, "error", err)
		return
	}

	fresh := w.unseen(active)
	if len(fresh) > 0 {
		if err := w.publisher.PublishAlerts(ctx, fresh); err != nil {
			w.metrics.AlertPolls.WithLabelValues("error").Inc()
			w.logger.Error("publish alerts failed", "count", len(fresh), "error", err)
			// Forget the batch so the next poll retries it.
			w.forget(fresh)
			return
		}
		w.metrics.AlertsPublished.Add(float64(len(fresh)))
		w.logger.Info("alerts published", "count", len(fresh), "area", w.area)
	}

	w.metrics.AlertPolls.WithLabelValues("success").Inc()
	w.ready.Store(true)
}

// unseen filters the active set to alerts not yet published and records
// them. Expired entries age out of the dedupe set; alerts without an
// expiry age out after a day.
func (w *Watcher) unseen(active []Alert) []Alert {
	now := w.clock.Now()
	for id, expires := range w.seen {
		if now.After(expires) {
			delete(w.seen, id)
		}
	}

	var fresh []Alert
	for _, a := range active {
		if _, ok := w.seen[a.ID]; ok {
			continue
		}
		expires := a.Expires
		if expires.IsZero() {
			expires = now.Add(24 * time.Hour)
		}
		w.seen[a.ID] = expires
		fresh = append(fresh, a)
	}
	return fresh
}

func (w *Watcher) forget(batch []Alert) {
	for _, a := range batch {
		delete(w.seen, a.ID)
	}
}
