package fetch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gocolly/colly/v2"
)

// StaticFetcher retrieves raw HTML over plain HTTP for pages that render
// their content server side.
type StaticFetcher struct {
	base *colly.Collector
}

// NewStaticFetcher builds a fetcher with the given user agent and per-request
// timeout applied to every fetch.
func NewStaticFetcher(userAgent string, timeout time.Duration) *StaticFetcher {
	c := colly.NewCollector(
		colly.UserAgent(userAgent),
		colly.IgnoreRobotsTxt(),
		colly.AllowURLRevisit(),
	)
	c.SetRequestTimeout(timeout)
	return &StaticFetcher{base: c}
}

// Fetch downloads the page body at url. The returned HTML is never empty on
// a nil error.
func (f *StaticFetcher) Fetch(ctx context.Context, url string) (string, error) {
	c := f.base.Clone()

	var (
		body     []byte
		fetchErr error
	)
	c.OnResponse(func(r *colly.Response) {
		body = r.Body
	})
	c.OnError(func(_ *colly.Response, err error) {
		fetchErr = err
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := c.Visit(url); err != nil && fetchErr == nil {
			fetchErr = err
		}
		c.Wait()
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-done:
	}

	if fetchErr != nil {
		return "", fmt.Errorf("fetch %s: %w", url, fetchErr)
	}
	if len(body) == 0 {
		return "", errors.New("fetch " + url + ": empty response body")
	}
	return string(body), nil
}
