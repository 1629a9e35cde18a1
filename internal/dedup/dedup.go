// Package dedup implements the persistent dedup fence: a URL is skipped when
// either record store already holds a row for it.
package dedup

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/adpillai/hcp-harvester/internal/harvester"
)

// Filter answers which candidate URLs still need fetching.
type Filter struct {
	master harvester.RecordStore
	target harvester.RecordStore
	logger *zap.Logger
}

// New builds a filter over the master and target stores.
func New(master, target harvester.RecordStore, logger *zap.Logger) *Filter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Filter{master: master, target: target, logger: logger}
}

// Fresh returns the candidates whose URLs appear in neither store, preserving
// input order. A lookup error aborts the whole page: proceeding without the
// fence would re-harvest everything it covered.
func (f *Filter) Fresh(ctx context.Context, cands []harvester.Candidate) ([]harvester.Candidate, error) {
	if len(cands) == 0 {
		return nil, nil
	}

	urls := make([]string, len(cands))
	for i, c := range cands {
		urls[i] = c.URL
	}

	inMaster, err := f.master.ProcessedURLs(ctx, urls)
	if err != nil {
		return nil, fmt.Errorf("dedup master lookup: %w", err)
	}
	inTarget, err := f.target.ProcessedURLs(ctx, urls)
	if err != nil {
		return nil, fmt.Errorf("dedup target lookup: %w", err)
	}

	fresh := cands[:0:0]
	for _, c := range cands {
		if _, ok := inMaster[c.URL]; ok {
			continue
		}
		if _, ok := inTarget[c.URL]; ok {
			continue
		}
		fresh = append(fresh, c)
	}

	f.logger.Debug("dedup fence applied",
		zap.Int("candidates", len(cands)),
		zap.Int("fresh", len(fresh)))
	return fresh, nil
}
