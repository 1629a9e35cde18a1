package fetch

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/adpillai/hcp-harvester/internal/harvester"
)

// BrowserConfig holds the timing knobs for browser-driven fetches.
type BrowserConfig struct {
	// NavTimeout bounds the navigation plus initial document load.
	NavTimeout time.Duration
	// SelectorTimeout bounds each WaitVisible for a readiness selector.
	SelectorTimeout time.Duration
	// ClickSettle is how long the page gets to re-render after a
	// preparatory click.
	ClickSettle time.Duration
	// ScrollSteps and ScrollStepPx drive lazy-loaded content into the DOM.
	ScrollSteps  int
	ScrollStepPx int
	ScrollPause  time.Duration
	// DomainQPS caps fetches per second against a single domain. Zero
	// disables the limiter.
	DomainQPS float64
}

// DefaultBrowserConfig mirrors the timings the sites are known to tolerate.
func DefaultBrowserConfig() BrowserConfig {
	return BrowserConfig{
		NavTimeout:      60 * time.Second,
		SelectorTimeout: 10 * time.Second,
		ClickSettle:     1500 * time.Millisecond,
		ScrollSteps:     10,
		ScrollStepPx:    500,
		ScrollPause:     300 * time.Millisecond,
	}
}

// PageOptions describes the preparation a page needs before its content can
// be read: selectors to wait for, elements to click, and whether to scroll
// the page to force lazy content to load.
type PageOptions struct {
	WaitSelectors  []string
	ClickSelectors []string
	Scroll         bool
}

// PageFunc consumes a prepared page and produces a record. The page is only
// valid for the duration of the call.
type PageFunc func(ctx context.Context, page harvester.Page) (*harvester.Record, error)

// BrowserFetcher runs one browser session per URL: navigate, prepare the
// page per options, hand it to fn, then tear the session down.
type BrowserFetcher struct {
	factory SessionFactory
	cfg     BrowserConfig
	logger  *zap.Logger

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// NewBrowserFetcher builds a fetcher over the given session factory.
func NewBrowserFetcher(factory SessionFactory, cfg BrowserConfig, logger *zap.Logger) *BrowserFetcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BrowserFetcher{
		factory:  factory,
		cfg:      cfg,
		logger:   logger,
		limiters: make(map[string]*rate.Limiter),
	}
}

// Run fetches url in a fresh session and applies fn to the prepared page.
// The session is closed on every exit path, including a panic inside fn.
func (f *BrowserFetcher) Run(ctx context.Context, url string, opts PageOptions, fn PageFunc) (*harvester.Record, error) {
	if err := f.waitDomain(ctx, url); err != nil {
		return nil, err
	}

	session, err := f.factory.NewSession(ctx)
	if err != nil {
		return nil, fmt.Errorf("open session: %w", err)
	}
	defer session.Close()

	navCtx, cancel := context.WithTimeout(ctx, f.cfg.NavTimeout)
	err = session.Navigate(navCtx, url)
	cancel()
	if err != nil {
		return nil, fmt.Errorf("navigate %s: %w", url, err)
	}

	f.prepare(ctx, session, url, opts)

	return fn(ctx, session)
}

// prepare readies the page content. Wait and click failures are tolerated:
// a missing accordion or banner must not fail the whole fetch, the adapter
// decides what it can extract from whatever rendered.
func (f *BrowserFetcher) prepare(ctx context.Context, session Session, url string, opts PageOptions) {
	for _, sel := range opts.WaitSelectors {
		waitCtx, cancel := context.WithTimeout(ctx, f.cfg.SelectorTimeout)
		err := session.WaitVisible(waitCtx, sel)
		cancel()
		if err != nil {
			f.logger.Debug("selector never became visible",
				zap.String("url", url),
				zap.String("selector", sel),
				zap.Error(err))
		}
	}

	for _, sel := range opts.ClickSelectors {
		clickCtx, cancel := context.WithTimeout(ctx, f.cfg.SelectorTimeout)
		err := session.Click(clickCtx, sel)
		cancel()
		if err != nil {
			f.logger.Debug("click target missing",
				zap.String("url", url),
				zap.String("selector", sel),
				zap.Error(err))
			continue
		}
		pause(ctx, f.cfg.ClickSettle)
	}

	if opts.Scroll {
		for i := 0; i < f.cfg.ScrollSteps; i++ {
			if err := session.ScrollBy(ctx, f.cfg.ScrollStepPx); err != nil {
				f.logger.Debug("scroll failed", zap.String("url", url), zap.Error(err))
				break
			}
			pause(ctx, f.cfg.ScrollPause)
		}
	}
}

// waitDomain blocks until the per-domain limiter grants a slot.
func (f *BrowserFetcher) waitDomain(ctx context.Context, url string) error {
	if f.cfg.DomainQPS <= 0 {
		return nil
	}
	key, err := harvester.DomainKey(url)
	if err != nil {
		return err
	}
	f.mu.Lock()
	lim, ok := f.limiters[key]
	if !ok {
		lim = rate.NewLimiter(rate.Limit(f.cfg.DomainQPS), 1)
		f.limiters[key] = lim
	}
	f.mu.Unlock()
	return lim.Wait(ctx)
}

// pause sleeps for d or until ctx is done, whichever comes first.
func pause(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
