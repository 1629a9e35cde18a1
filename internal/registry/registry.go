// Package registry holds the immutable domain-to-adapter dispatch table.
//
// The table is constructed once at startup and passed explicitly into the
// scheduler; there is no ambient global registry. Duplicate domain
// registrations are rejected at construction rather than silently resolved
// by registration order.
package registry

import (
	"context"
	"errors"
	"fmt"

	"github.com/adpillai/hcp-harvester/internal/harvester"
)

// Strategy selects how markup for a domain is obtained.
type Strategy string

// Fetch strategies.
const (
	// StrategyStatic retrieves raw HTML over plain HTTP, no JS execution.
	StrategyStatic Strategy = "static"
	// StrategyBrowser renders the page in an isolated headless browser.
	StrategyBrowser Strategy = "browser"
)

// SyncExtractor extracts a record from already-retrieved markup.
type SyncExtractor func(html string, url string) (*harvester.Record, error)

// InteractiveExtractor drives a live page (clicks, waits) before reading it.
// Only valid with StrategyBrowser.
type InteractiveExtractor func(ctx context.Context, page harvester.Page, url string) (*harvester.Record, error)

// Adapter binds one domain key to its extraction routine and fetch strategy.
// Exactly one of Extract or Interact must be set.
type Adapter struct {
	Domain   string
	Strategy Strategy
	Extract  SyncExtractor
	Interact InteractiveExtractor

	// Browser-strategy page interaction performed before extraction.
	// Failures to find or click a selector are logged and tolerated.
	WaitSelectors  []string
	ClickSelectors []string
	Scroll         bool
}

// ErrDuplicateDomain is returned by New when the same domain key is
// registered more than once.
var ErrDuplicateDomain = errors.New("duplicate domain registration")

func (a Adapter) validate() error {
	if (a.Extract == nil) == (a.Interact == nil) {
		return errors.New("exactly one of Extract or Interact must be set")
	}
	switch a.Strategy {
	case StrategyStatic:
		if a.Interact != nil {
			return errors.New("interactive extractors require the browser strategy")
		}
	case StrategyBrowser:
	default:
		return fmt.Errorf("unknown strategy %q", a.Strategy)
	}
	return nil
}

// Registry is the immutable lookup table. Safe for concurrent use.
type Registry struct {
	entries map[string]Adapter
}

// New builds a Registry, failing fast on duplicate or malformed entries.
func New(entries ...Adapter) (*Registry, error) {
	m := make(map[string]Adapter, len(entries))
	for _, e := range entries {
		if e.Domain == "" {
			return nil, errors.New("adapter domain must not be empty")
		}
		if _, dup := m[e.Domain]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateDomain, e.Domain)
		}
		if err := e.validate(); err != nil {
			return nil, fmt.Errorf("adapter %s: %w", e.Domain, err)
		}
		m[e.Domain] = e
	}
	return &Registry{entries: m}, nil
}

// Lookup returns the adapter registered for an exact domain key.
func (r *Registry) Lookup(domainKey string) (Adapter, bool) {
	a, ok := r.entries[domainKey]
	return a, ok
}

// Len reports the number of registered domains.
func (r *Registry) Len() int {
	return len(r.entries)
}
