// Package scheduler dispatches candidate batches across adapters under a
// fixed concurrency ceiling.
package scheduler

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/adpillai/hcp-harvester/internal/fetch"
	"github.com/adpillai/hcp-harvester/internal/harvester"
	"github.com/adpillai/hcp-harvester/internal/metrics"
	"github.com/adpillai/hcp-harvester/internal/registry"
)

// StaticFetcher retrieves raw HTML for static-strategy adapters.
type StaticFetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// BrowserRunner runs a browser session against one URL and applies fn to the
// prepared page.
type BrowserRunner interface {
	Run(ctx context.Context, url string, opts fetch.PageOptions, fn fetch.PageFunc) (*harvester.Record, error)
}

// Sink receives completed records. Implementations must be safe for
// concurrent use.
type Sink func(ctx context.Context, rec *harvester.Record)

// Stats summarizes one dispatched batch.
type Stats struct {
	Succeeded int64
	Failed    int64
	Skipped   int64
}

// Scheduler fans a batch of candidates out to their domain adapters, at most
// limit fetches in flight at once.
type Scheduler struct {
	reg       *registry.Registry
	static    StaticFetcher
	browser   BrowserRunner
	limit     int
	harvestID string
	logger    *zap.Logger
}

// New builds a scheduler. limit must be at least 1.
func New(reg *registry.Registry, static StaticFetcher, browser BrowserRunner, limit int, harvestID string, logger *zap.Logger) *Scheduler {
	if limit < 1 {
		limit = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		reg:       reg,
		static:    static,
		browser:   browser,
		limit:     limit,
		harvestID: harvestID,
		logger:    logger,
	}
}

// Run fetches every candidate with a registered adapter and emits each
// stamped record through sink. Candidates from unregistered domains are
// counted as skipped without consuming a concurrency slot. Run returns once
// the whole batch has settled; per-URL failures never abort the batch.
func (s *Scheduler) Run(ctx context.Context, cands []harvester.Candidate, sink Sink) Stats {
	var (
		stats Stats
		wg    sync.WaitGroup
		slots = make(chan struct{}, s.limit)
	)

	for _, cand := range cands {
		key, err := harvester.DomainKey(cand.URL)
		if err != nil {
			s.logger.Warn("candidate url unparseable",
				zap.String("url", cand.URL), zap.Error(err))
			atomic.AddInt64(&stats.Skipped, 1)
			metrics.URLSkipped()
			continue
		}
		adapter, ok := s.reg.Lookup(key)
		if !ok {
			s.logger.Debug("no adapter for domain",
				zap.String("domain", key), zap.String("url", cand.URL))
			atomic.AddInt64(&stats.Skipped, 1)
			metrics.URLSkipped()
			continue
		}

		wg.Add(1)
		go func(cand harvester.Candidate, adapter registry.Adapter) {
			defer wg.Done()
			slots <- struct{}{}
			defer func() { <-slots }()

			metrics.IncActiveFetches()
			start := time.Now()
			rec, err := s.harvest(ctx, cand, adapter)
			metrics.DecActiveFetches()
			metrics.ObserveFetch(adapter.Domain, time.Since(start))
			if err != nil {
				s.logger.Warn("harvest failed",
					zap.String("url", cand.URL),
					zap.String("domain", adapter.Domain),
					zap.Error(err))
				atomic.AddInt64(&stats.Failed, 1)
				metrics.URLFailed(adapter.Domain)
				return
			}
			if rec == nil {
				// Adapter contract violation; fail the URL, not the run.
				s.logger.Warn("adapter returned no record",
					zap.String("url", cand.URL),
					zap.String("domain", adapter.Domain))
				atomic.AddInt64(&stats.Failed, 1)
				metrics.URLFailed(adapter.Domain)
				return
			}
			rec.Stamp(cand, s.harvestID)
			sink(ctx, rec)
			atomic.AddInt64(&stats.Succeeded, 1)
			metrics.URLHarvested(adapter.Domain)
		}(cand, adapter)
	}

	wg.Wait()
	return stats
}

// harvest runs one adapter against one URL. A panic in adapter code is
// contained here so a single bad page cannot take the run down.
func (s *Scheduler) harvest(ctx context.Context, cand harvester.Candidate, adapter registry.Adapter) (rec *harvester.Record, err error) {
	defer func() {
		if r := recover(); r != nil {
			rec = nil
			err = newPanicError(adapter.Domain, r)
		}
	}()

	opts := fetch.PageOptions{
		WaitSelectors:  adapter.WaitSelectors,
		ClickSelectors: adapter.ClickSelectors,
		Scroll:         adapter.Scroll,
	}

	switch adapter.Strategy {
	case registry.StrategyStatic:
		html, err := s.static.Fetch(ctx, cand.URL)
		if err != nil {
			return nil, err
		}
		return adapter.Extract(html, cand.URL)

	default: // registry.StrategyBrowser, guaranteed by registry validation
		return s.browser.Run(ctx, cand.URL, opts, func(ctx context.Context, page harvester.Page) (*harvester.Record, error) {
			if adapter.Interact != nil {
				return adapter.Interact(ctx, page, cand.URL)
			}
			html, err := page.HTML(ctx)
			if err != nil {
				return nil, err
			}
			return adapter.Extract(html, cand.URL)
		})
	}
}
