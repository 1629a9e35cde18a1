package scheduler

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/adpillai/hcp-harvester/internal/fetch"
	"github.com/adpillai/hcp-harvester/internal/harvester"
	"github.com/adpillai/hcp-harvester/internal/registry"
)

type stubStatic struct {
	html string
	err  error

	mu      sync.Mutex
	fetched []string

	inFlight    int32
	maxInFlight int32
	delay       time.Duration
}

func (s *stubStatic) Fetch(_ context.Context, url string) (string, error) {
	cur := atomic.AddInt32(&s.inFlight, 1)
	for {
		max := atomic.LoadInt32(&s.maxInFlight)
		if cur <= max || atomic.CompareAndSwapInt32(&s.maxInFlight, max, cur) {
			break
		}
	}
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	atomic.AddInt32(&s.inFlight, -1)

	s.mu.Lock()
	s.fetched = append(s.fetched, url)
	s.mu.Unlock()
	if s.err != nil {
		return "", s.err
	}
	return s.html, nil
}

type stubBrowser struct {
	err error
}

func (b *stubBrowser) Run(ctx context.Context, url string, _ fetch.PageOptions, fn fetch.PageFunc) (*harvester.Record, error) {
	if b.err != nil {
		return nil, b.err
	}
	return fn(ctx, fixedPage{html: "<html>rendered</html>"})
}

type fixedPage struct{ html string }

func (p fixedPage) WaitVisible(context.Context, string) error  { return nil }
func (p fixedPage) Click(context.Context, string) error        { return nil }
func (p fixedPage) Sleep(context.Context, time.Duration) error { return nil }
func (p fixedPage) HTML(context.Context) (string, error)       { return p.html, nil }

func nameExtractor(html, url string) (*harvester.Record, error) {
	rec := harvester.NewRecord(url)
	rec.Set("name", "Dr. Example")
	return rec, nil
}

func mustRegistry(t *testing.T, entries ...registry.Adapter) *registry.Registry {
	t.Helper()
	reg, err := registry.New(entries...)
	require.NoError(t, err)
	return reg
}

type recordSink struct {
	mu   sync.Mutex
	recs []*harvester.Record
}

func (s *recordSink) add(_ context.Context, rec *harvester.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recs = append(s.recs, rec)
}

func TestRunDispatchesByDomainAndSkipsUnregistered(t *testing.T) {
	t.Parallel()

	reg := mustRegistry(t,
		registry.Adapter{Domain: "quickerala.com", Strategy: registry.StrategyStatic, Extract: nameExtractor},
		registry.Adapter{Domain: "practo.com", Strategy: registry.StrategyBrowser, Extract: nameExtractor},
	)
	static := &stubStatic{html: "<html>static</html>"}
	sink := &recordSink{}
	s := New(reg, static, &stubBrowser{}, 5, "run-1", zap.NewNop())

	stats := s.Run(context.Background(), []harvester.Candidate{
		{URL: "https://www.quickerala.com/dr/x", RecordID: "r1"},
		{URL: "https://practo.com/bangalore/doctor/y", RecordID: "r2"},
		{URL: "https://unknown-site.org/z", RecordID: "r3"},
	}, sink.add)

	require.EqualValues(t, 2, stats.Succeeded)
	require.EqualValues(t, 0, stats.Failed)
	require.EqualValues(t, 1, stats.Skipped)
	require.Len(t, sink.recs, 2)
	require.Equal(t, []string{"https://www.quickerala.com/dr/x"}, static.fetched)

	for _, rec := range sink.recs {
		id, ok := rec.Get("harvest_id")
		require.True(t, ok)
		require.Equal(t, "run-1", id)
	}
}

func TestRunHonorsConcurrencyCeiling(t *testing.T) {
	t.Parallel()

	reg := mustRegistry(t,
		registry.Adapter{Domain: "quickerala.com", Strategy: registry.StrategyStatic, Extract: nameExtractor},
	)
	static := &stubStatic{html: "<html></html>", delay: 20 * time.Millisecond}
	sink := &recordSink{}
	s := New(reg, static, &stubBrowser{}, 3, "run-1", zap.NewNop())

	cands := make([]harvester.Candidate, 12)
	for i := range cands {
		cands[i] = harvester.Candidate{URL: "https://quickerala.com/dr/a"}
	}
	stats := s.Run(context.Background(), cands, sink.add)

	require.EqualValues(t, 12, stats.Succeeded)
	require.LessOrEqual(t, static.maxInFlight, int32(3))
}

func TestRunCountsFetchFailuresWithoutAborting(t *testing.T) {
	t.Parallel()

	reg := mustRegistry(t,
		registry.Adapter{Domain: "quickerala.com", Strategy: registry.StrategyStatic, Extract: nameExtractor},
		registry.Adapter{Domain: "practo.com", Strategy: registry.StrategyBrowser, Extract: nameExtractor},
	)
	static := &stubStatic{html: "<html></html>"}
	browser := &stubBrowser{err: errors.New("navigation timed out")}
	sink := &recordSink{}
	s := New(reg, static, browser, 5, "run-1", zap.NewNop())

	stats := s.Run(context.Background(), []harvester.Candidate{
		{URL: "https://practo.com/doctor/a"},
		{URL: "https://quickerala.com/dr/b"},
	}, sink.add)

	require.EqualValues(t, 1, stats.Succeeded)
	require.EqualValues(t, 1, stats.Failed)
	require.Len(t, sink.recs, 1)
	require.Equal(t, "https://quickerala.com/dr/b", sink.recs[0].SourceURL())
}

func TestRunRecoversAdapterPanic(t *testing.T) {
	t.Parallel()

	reg := mustRegistry(t,
		registry.Adapter{
			Domain:   "patakare.com",
			Strategy: registry.StrategyStatic,
			Extract: func(html, url string) (*harvester.Record, error) {
				panic("nil dereference in selector chain")
			},
		},
	)
	sink := &recordSink{}
	s := New(reg, &stubStatic{html: "<html></html>"}, &stubBrowser{}, 2, "run-1", zap.NewNop())

	stats := s.Run(context.Background(), []harvester.Candidate{
		{URL: "https://patakare.com/doctor/1"},
	}, sink.add)

	require.EqualValues(t, 1, stats.Failed)
	require.Empty(t, sink.recs)
}

func TestRunCountsNilRecordAsFailure(t *testing.T) {
	t.Parallel()

	reg := mustRegistry(t,
		registry.Adapter{
			Domain:   "patakare.com",
			Strategy: registry.StrategyStatic,
			Extract: func(html, url string) (*harvester.Record, error) {
				return nil, nil
			},
		},
		registry.Adapter{Domain: "quickerala.com", Strategy: registry.StrategyStatic, Extract: nameExtractor},
	)
	sink := &recordSink{}
	s := New(reg, &stubStatic{html: "<html></html>"}, &stubBrowser{}, 2, "run-1", zap.NewNop())

	stats := s.Run(context.Background(), []harvester.Candidate{
		{URL: "https://patakare.com/doctor/1"},
		{URL: "https://quickerala.com/dr/b"},
	}, sink.add)

	require.EqualValues(t, 1, stats.Failed)
	require.EqualValues(t, 1, stats.Succeeded)
	require.Len(t, sink.recs, 1)
	require.Equal(t, "https://quickerala.com/dr/b", sink.recs[0].SourceURL())
}

func TestRunInteractiveAdapterDrivesPage(t *testing.T) {
	t.Parallel()

	reg := mustRegistry(t,
		registry.Adapter{
			Domain:   "babymhospital.org",
			Strategy: registry.StrategyBrowser,
			Interact: func(ctx context.Context, page harvester.Page, url string) (*harvester.Record, error) {
				require.NoError(t, page.Click(ctx, "//a[contains(., 'Qualification')]"))
				html, err := page.HTML(ctx)
				if err != nil {
					return nil, err
				}
				rec := harvester.NewRecord(url)
				rec.Set("raw", html)
				return rec, nil
			},
		},
	)
	sink := &recordSink{}
	s := New(reg, &stubStatic{}, &stubBrowser{}, 2, "run-1", zap.NewNop())

	stats := s.Run(context.Background(), []harvester.Candidate{
		{URL: "https://www.babymhospital.org/doctors/5"},
	}, sink.add)

	require.EqualValues(t, 1, stats.Succeeded)
	require.Len(t, sink.recs, 1)
	raw, _ := sink.recs[0].Get("raw")
	require.Contains(t, raw, "rendered")
}
