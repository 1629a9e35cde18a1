package fetch

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/adpillai/hcp-harvester/internal/harvester"
)

type fakeSession struct {
	html     string
	navErr   error
	waitErr  error
	clickErr error

	navigated []string
	waited    []string
	clicked   []string
	scrolls   int
	closes    int32
}

func (s *fakeSession) Navigate(_ context.Context, url string) error {
	s.navigated = append(s.navigated, url)
	return s.navErr
}

func (s *fakeSession) WaitVisible(_ context.Context, sel string) error {
	s.waited = append(s.waited, sel)
	return s.waitErr
}

func (s *fakeSession) Click(_ context.Context, sel string) error {
	s.clicked = append(s.clicked, sel)
	return s.clickErr
}

func (s *fakeSession) Sleep(context.Context, time.Duration) error { return nil }

func (s *fakeSession) ScrollBy(_ context.Context, _ int) error {
	s.scrolls++
	return nil
}

func (s *fakeSession) HTML(_ context.Context) (string, error) { return s.html, nil }

func (s *fakeSession) Close() error {
	atomic.AddInt32(&s.closes, 1)
	return nil
}

type fakeFactory struct {
	session *fakeSession
	err     error
	opened  int
}

func (f *fakeFactory) NewSession(_ context.Context) (Session, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.opened++
	return f.session, nil
}

func fastConfig() BrowserConfig {
	cfg := DefaultBrowserConfig()
	cfg.ClickSettle = time.Millisecond
	cfg.ScrollPause = time.Millisecond
	return cfg
}

func TestBrowserFetcherRunSuccess(t *testing.T) {
	t.Parallel()

	session := &fakeSession{html: "<html><body>doc</body></html>"}
	factory := &fakeFactory{session: session}
	f := NewBrowserFetcher(factory, fastConfig(), zap.NewNop())

	opts := PageOptions{
		WaitSelectors:  []string{"div.profile"},
		ClickSelectors: []string{"//a[contains(., 'More')]"},
		Scroll:         true,
	}
	rec, err := f.Run(context.Background(), "https://example.com/dr/1", opts, func(ctx context.Context, page harvester.Page) (*harvester.Record, error) {
		html, err := page.HTML(ctx)
		require.NoError(t, err)
		r := harvester.NewRecord("https://example.com/dr/1")
		r.Set("raw", html)
		return r, nil
	})

	require.NoError(t, err)
	require.Equal(t, "https://example.com/dr/1", rec.SourceURL())
	require.Equal(t, []string{"https://example.com/dr/1"}, session.navigated)
	require.Equal(t, []string{"div.profile"}, session.waited)
	require.Equal(t, []string{"//a[contains(., 'More')]"}, session.clicked)
	require.Equal(t, 10, session.scrolls)
	require.EqualValues(t, 1, session.closes)
}

func TestBrowserFetcherClosesSessionOnNavigateError(t *testing.T) {
	t.Parallel()

	session := &fakeSession{navErr: errors.New("net::ERR_TIMED_OUT")}
	factory := &fakeFactory{session: session}
	f := NewBrowserFetcher(factory, fastConfig(), zap.NewNop())

	_, err := f.Run(context.Background(), "https://example.com/x", PageOptions{}, func(context.Context, harvester.Page) (*harvester.Record, error) {
		t.Fatal("page func must not run after a failed navigation")
		return nil, nil
	})

	require.Error(t, err)
	require.EqualValues(t, 1, session.closes)
}

func TestBrowserFetcherClosesSessionOnPageFuncError(t *testing.T) {
	t.Parallel()

	session := &fakeSession{html: "<html></html>"}
	factory := &fakeFactory{session: session}
	f := NewBrowserFetcher(factory, fastConfig(), zap.NewNop())

	wantErr := errors.New("nothing extracted")
	_, err := f.Run(context.Background(), "https://example.com/x", PageOptions{}, func(context.Context, harvester.Page) (*harvester.Record, error) {
		return nil, wantErr
	})

	require.ErrorIs(t, err, wantErr)
	require.EqualValues(t, 1, session.closes)
}

func TestBrowserFetcherClosesSessionOnPageFuncPanic(t *testing.T) {
	t.Parallel()

	session := &fakeSession{html: "<html></html>"}
	factory := &fakeFactory{session: session}
	f := NewBrowserFetcher(factory, fastConfig(), zap.NewNop())

	require.Panics(t, func() {
		_, _ = f.Run(context.Background(), "https://example.com/x", PageOptions{}, func(context.Context, harvester.Page) (*harvester.Record, error) {
			panic("adapter bug")
		})
	})
	require.EqualValues(t, 1, session.closes)
}

func TestBrowserFetcherToleratesWaitAndClickFailures(t *testing.T) {
	t.Parallel()

	session := &fakeSession{
		html:     "<html><body>partial</body></html>",
		waitErr:  errors.New("deadline exceeded"),
		clickErr: errors.New("node not found"),
	}
	factory := &fakeFactory{session: session}
	f := NewBrowserFetcher(factory, fastConfig(), zap.NewNop())

	opts := PageOptions{
		WaitSelectors:  []string{"div.never-renders"},
		ClickSelectors: []string{"button.gone"},
	}
	rec, err := f.Run(context.Background(), "https://example.com/x", opts, func(ctx context.Context, page harvester.Page) (*harvester.Record, error) {
		return harvester.NewRecord("https://example.com/x"), nil
	})

	require.NoError(t, err)
	require.NotNil(t, rec)
	require.EqualValues(t, 1, session.closes)
}

func TestBrowserFetcherSessionFactoryError(t *testing.T) {
	t.Parallel()

	factory := &fakeFactory{err: errors.New("chrome not found")}
	f := NewBrowserFetcher(factory, fastConfig(), zap.NewNop())

	_, err := f.Run(context.Background(), "https://example.com/x", PageOptions{}, func(context.Context, harvester.Page) (*harvester.Record, error) {
		return nil, nil
	})
	require.ErrorContains(t, err, "open session")
}
