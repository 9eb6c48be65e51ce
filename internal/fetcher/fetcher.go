// Package fetcher runs per-source fetches concurrently, bounds each by a
// timeout, isolates per-source failure, and aggregates items and statistics.
package fetcher

import (
	"context"
	"log/slog"
	"time"

	"github.com/feedgather/gather/internal/feed"
	"github.com/feedgather/gather/internal/metrics"
)

// DefaultTimeout is the per-source fetch bound when none is configured.
const DefaultTimeout = 10 * time.Second

// Config holds fetch cycle parameters.
type Config struct {
	// Timeout bounds each individual source fetch.
	Timeout time.Duration

	// MaxInFlight caps the number of concurrently running fetches.
	// Zero means no admission limit.
	MaxInFlight int
}

// DefaultConfig returns the default cycle parameters.
func DefaultConfig() Config {
	return Config{Timeout: DefaultTimeout}
}

// Fetcher coordinates concurrent fetches from many sources.
type Fetcher struct {
	cfg       Config
	logger    *slog.Logger
	collector *metrics.FetchCollector
}

// New creates a fetcher. The collector is optional and may be nil.
func New(cfg Config, logger *slog.Logger, collector *metrics.FetchCollector) *Fetcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Fetcher{cfg: cfg, logger: logger, collector: collector}
}

// FetchAll fetches every source concurrently and returns the merged item
// list plus cycle statistics. Items from successful sources are concatenated
// in completion order, which is not stable across runs. A failed source
// never cancels or blocks its siblings, and the call itself cannot fail:
// even a cycle where every source failed returns an empty list and stats.
func (f *Fetcher) FetchAll(ctx context.Context, sources []feed.Source) ([]feed.Item, Stats) {
	stats := NewStats(len(sources))
	if len(sources) == 0 {
		return []feed.Item{}, stats
	}

	start := time.Now()
	f.logger.Info("starting fetch cycle",
		"sources", len(sources),
		"timeout", f.cfg.Timeout,
		"max_in_flight", f.cfg.MaxInFlight,
	)

	var admit chan struct{}
	if f.cfg.MaxInFlight > 0 {
		admit = make(chan struct{}, f.cfg.MaxInFlight)
	}

	outcomes := make(chan Outcome, len(sources))
	for _, src := range sources {
		go func(src feed.Source) {
			if admit != nil {
				admit <- struct{}{}
				defer func() { <-admit }()
			}

			items, err := f.FetchOne(ctx, src)
			outcomes <- Outcome{SourceName: src.Name(), Items: items, Err: err}
		}(src)
	}

	// Join barrier: every outcome is observed exactly once before results
	// are merged, so no locking is needed around the item list or stats.
	items := make([]feed.Item, 0)
	for range sources {
		o := <-outcomes
		if o.Failed() {
			f.logger.Warn("source fetch failed", "source", o.SourceName, "error", o.Err)
		} else {
			f.logger.Debug("source fetch succeeded", "source", o.SourceName, "items", len(o.Items))
			items = append(items, o.Items...)
		}
		stats.Record(o)

		if f.collector != nil {
			f.collector.ObserveSource(!o.Failed())
			if !o.Failed() {
				f.collector.AddItems(len(o.Items))
			}
		}
	}

	if f.collector != nil {
		f.collector.ObserveCycle(time.Since(start))
	}

	f.logger.Info("fetch cycle complete",
		"items", stats.TotalItems,
		"succeeded", stats.Succeeded,
		"failed", stats.Failed,
		"duration", time.Since(start),
	)

	return items, stats
}

// FetchOne fetches a single source bounded by the configured timeout. The
// deadline context is passed to Fetch so a cooperative transport stops
// early, but when the bound elapses FetchOne stops waiting regardless: the
// fetch goroutine is abandoned, may finish its network I/O in the
// background, and its result is discarded.
func (f *Fetcher) FetchOne(ctx context.Context, src feed.Source) ([]feed.Item, error) {
	ctx, cancel := context.WithTimeout(ctx, f.cfg.Timeout)
	defer cancel()

	type result struct {
		items []feed.Item
		err   error
	}

	done := make(chan result, 1)
	go func() {
		items, err := src.Fetch(ctx)
		done <- result{items: items, err: err}
	}()

	select {
	case r := <-done:
		return r.items, r.err
	case <-ctx.Done():
		return nil, &feed.TimeoutError{Source: src.Name(), Timeout: f.cfg.Timeout}
	}
}
