package fetch

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
)

// ChromedpFactory creates one headless Chrome process per session. Unpooled
// by design: slot counts upstream bound how many run at once, and a crashed
// page can never poison a later fetch.
type ChromedpFactory struct {
	userAgent string
}

// NewChromedpFactory builds a factory that stamps the given user agent onto
// every browsing context it creates.
func NewChromedpFactory(userAgent string) *ChromedpFactory {
	return &ChromedpFactory{userAgent: userAgent}
}

// NewSession launches a browser with a fresh isolated context and one tab.
func (f *ChromedpFactory) NewSession(ctx context.Context) (Session, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", "new"),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("hide-scrollbars", true),
	)
	if f.userAgent != "" {
		opts = append(opts, chromedp.UserAgent(f.userAgent))
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	tabCtx, tabCancel := chromedp.NewContext(allocCtx)
	return &chromedpSession{
		ctx:        tabCtx,
		tabCancel:  tabCancel,
		procCancel: allocCancel,
	}, nil
}

type chromedpSession struct {
	ctx        context.Context
	tabCancel  context.CancelFunc
	procCancel context.CancelFunc
	closeOnce  sync.Once
}

// run executes actions against the tab while honoring the caller's
// cancellation and deadline.
func (s *chromedpSession) run(ctx context.Context, actions ...chromedp.Action) error {
	runCtx, cancel := context.WithCancel(s.ctx)
	defer cancel()
	stop := forwardCancel(ctx, cancel)
	defer stop()
	return chromedp.Run(runCtx, actions...)
}

func (s *chromedpSession) Navigate(ctx context.Context, url string) error {
	if err := s.run(ctx,
		network.Enable(),
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
	); err != nil {
		return fmt.Errorf("chromedp navigate: %w", err)
	}
	return nil
}

func (s *chromedpSession) WaitVisible(ctx context.Context, selector string) error {
	if err := s.run(ctx, chromedp.WaitVisible(selector, chromedp.ByQuery)); err != nil {
		return fmt.Errorf("chromedp wait %q: %w", selector, err)
	}
	return nil
}

// Click accepts a CSS selector, an XPath expression, or plain text; the
// search semantics mirror the DevTools search box.
func (s *chromedpSession) Click(ctx context.Context, selector string) error {
	if err := s.run(ctx, chromedp.Click(selector, chromedp.BySearch)); err != nil {
		return fmt.Errorf("chromedp click %q: %w", selector, err)
	}
	return nil
}

// Sleep lets the page settle after an interaction, honoring cancellation.
func (s *chromedpSession) Sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-s.ctx.Done():
		return s.ctx.Err()
	case <-t.C:
		return nil
	}
}

func (s *chromedpSession) ScrollBy(ctx context.Context, pixels int) error {
	script := fmt.Sprintf("window.scrollBy(0, %d)", pixels)
	if err := s.run(ctx, chromedp.Evaluate(script, nil)); err != nil {
		return fmt.Errorf("chromedp scroll: %w", err)
	}
	return nil
}

func (s *chromedpSession) HTML(ctx context.Context) (string, error) {
	var html string
	if err := s.run(ctx, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return "", fmt.Errorf("chromedp outer html: %w", err)
	}
	return html, nil
}

// Close tears down the tab and the browser process. Idempotent.
func (s *chromedpSession) Close() error {
	s.closeOnce.Do(func() {
		s.tabCancel()
		s.procCancel()
	})
	return nil
}

// forwardCancel propagates cancellation of parent to cancel until the
// returned stop function is called.
func forwardCancel(parent context.Context, cancel context.CancelFunc) func() {
	if parent == nil {
		return func() {}
	}
	done := make(chan struct{})
	go func() {
		select {
		case <-parent.Done():
			cancel()
		case <-done:
		}
	}()
	return func() { close(done) }
}
